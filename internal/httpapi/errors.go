package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog/log"

	"clob/internal/coreerr"
)

// writeError maps a core error Kind to the HTTP status table in spec.md §6
// and writes a small JSON body. InvariantViolation is deliberately not
// mapped to a 4xx: it is a bug, and is surfaced as a 500 with a log line a
// human is expected to act on (spec.md §7).
func writeError(w http.ResponseWriter, err error) {
	ce, ok := err.(*coreerr.Error)
	if !ok {
		log.Error().Err(err).Msg("unmapped error reached the HTTP layer")
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	status := http.StatusInternalServerError
	switch ce.Kind {
	case coreerr.Malformed:
		status = http.StatusBadRequest
	case coreerr.NotFound:
		status = http.StatusNotFound
	case coreerr.Conflict:
		status = http.StatusConflict
	case coreerr.DuplicateNonce:
		status = http.StatusConflict
	case coreerr.UnknownTrader:
		status = http.StatusNotFound
	case coreerr.InsufficientBalance:
		status = http.StatusUnprocessableEntity
	case coreerr.HasOpenOrders:
		status = http.StatusConflict
	case coreerr.InvariantViolation:
		log.Error().Err(ce).Msg("invariant violation reached the HTTP layer")
		status = http.StatusInternalServerError
	}
	writeJSON(w, status, map[string]string{"error": ce.Error()})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Error().Err(err).Msg("failed encoding response body")
	}
}
