package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/Zachkp/portfolio/internal/config"
	"github.com/Zachkp/portfolio/internal/contact"
	"github.com/Zachkp/portfolio/internal/logger"
	"github.com/Zachkp/portfolio/internal/server"
	"github.com/Zachkp/portfolio/internal/session"
	"github.com/Zachkp/portfolio/internal/storage"
)

const (
	sessionSweepInterval = time.Minute
	maintenanceInterval  = time.Hour
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the portfolio site and chat API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			logger.Init(cfg.Logger)

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return serve(ctx, cfg)
		},
	}
}

func serve(ctx context.Context, cfg *config.Config) error {
	responder, err := loadResponder(cfg)
	if err != nil {
		return err
	}

	store, err := storage.Open(cfg.Storage.DataDir)
	if err != nil {
		return fmt.Errorf("opening storage: %w", err)
	}
	defer store.Close()

	relay := contact.NewSMTPRelay(contact.Config{
		Host:     cfg.SMTP.Host,
		Port:     cfg.SMTP.Port,
		User:     cfg.SMTP.User,
		Password: cfg.SMTP.Password,
		To:       cfg.SMTP.To,
	})
	if !relay.Configured() {
		logger.Warn().Msg("SMTP credentials not set, contact form will report errors")
	}

	sessions := session.NewStore(cfg.Chat.SessionTTL(), cfg.Chat.MaxSessions)
	srv, err := server.New(server.Deps{
		Config:    cfg,
		Responder: responder,
		Sessions:  sessions,
		Analytics: store,
		Relay:     relay,
		Pacing:    pacingFrom(cfg.Chat),
	})
	if err != nil {
		return err
	}

	go sessions.Run(ctx, sessionSweepInterval)
	go srv.RunMaintenance(ctx, maintenanceInterval)

	httpSrv := &http.Server{
		Addr:              cfg.Server.Address(),
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext: func(_ net.Listener) context.Context {
			return ctx
		},
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info().
			Str("addr", httpSrv.Addr).
			Str("profile", responder.Profile().Name).
			Str("version", version).
			Msg("portfolio listening")
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		logger.Info().Msg("shutting down")
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()
	return httpSrv.Shutdown(shutdownCtx)
}
