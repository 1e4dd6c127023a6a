package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"clob/internal/coreerr"
	"clob/internal/engine"
	"clob/internal/matcher"
	"clob/internal/types"
)

// Handler holds the one dependency every route needs: the engine facade.
// There is nothing else to inject because the core owns all state itself.
type Handler struct {
	Engine *engine.Engine
}

func NewHandler(e *engine.Engine) *Handler {
	return &Handler{Engine: e}
}

func (h *Handler) CreateAccount(w http.ResponseWriter, r *http.Request) {
	var req Account
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, coreerr.Newf(coreerr.Malformed, "invalid request body: %v", err))
		return
	}

	view, err := h.Engine.CreateAccount(req.TraderAddress, req.DDXBalance, req.USDBalance)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, accountFromView(view))
}

func (h *Handler) GetAccount(w http.ResponseWriter, r *http.Request) {
	trader, err := types.ParseAddress(chi.URLParam(r, "addr"))
	if err != nil {
		writeError(w, err)
		return
	}

	view, err := h.Engine.GetAccount(trader)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, accountFromView(view))
}

func (h *Handler) DeleteAccount(w http.ResponseWriter, r *http.Request) {
	trader, err := types.ParseAddress(chi.URLParam(r, "addr"))
	if err != nil {
		writeError(w, err)
		return
	}

	if err := h.Engine.DeleteAccount(trader); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	var req Order
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, coreerr.Newf(coreerr.Malformed, "invalid request body: %v", err))
		return
	}

	hash, fills, err := h.Engine.PlaceOrder(matcher.PlaceInput{
		TraderAddress: req.TraderAddress,
		Side:          req.Side,
		Price:         req.Price,
		Amount:        req.Amount,
		Nonce:         req.Nonce,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	_ = hash
	writeJSON(w, http.StatusOK, fillsFromMatcher(fills))
}

func (h *Handler) GetOrder(w http.ResponseWriter, r *http.Request) {
	hash, err := types.ParseHash(chi.URLParam(r, "hash"))
	if err != nil {
		writeError(w, err)
		return
	}

	order, err := h.Engine.GetOrder(hash)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, orderFromBook(order))
}

func (h *Handler) CancelOrder(w http.ResponseWriter, r *http.Request) {
	hash, err := types.ParseHash(chi.URLParam(r, "hash"))
	if err != nil {
		writeError(w, err)
		return
	}

	if _, err := h.Engine.CancelOrder(hash); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) GetBook(w http.ResponseWriter, r *http.Request) {
	bids, asks := h.Engine.BookSnapshot(0)
	writeJSON(w, http.StatusOK, L2OrderBook{Bids: l2Levels(bids), Asks: l2Levels(asks)})
}

// Healthz is pure ambient scaffolding, not a core operation — it reports
// process liveness for an operator or load balancer, never core state.
func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
