package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"

	"clob/internal/config"
	"clob/internal/engine"
	"clob/internal/hashing"
	"clob/internal/httpapi"
)

func main() {
	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGTERM,
		syscall.SIGINT,
	)
	defer stop()

	cfg, err := config.Parse(os.Args[1:])
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}

	eng := engine.New(hashing.Domain{Name: cfg.DomainName, Version: cfg.DomainVersion})
	srv := httpapi.New(cfg.ListenAddr, eng)

	if err := srv.Run(ctx); err != nil {
		log.Fatal().Err(err).Msg("server exited with error")
	}
}
