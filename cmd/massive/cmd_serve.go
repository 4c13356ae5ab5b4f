package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hazyhaar/massive-bench/pkg/api"
	"github.com/hazyhaar/massive-bench/pkg/chassis"
	"github.com/hazyhaar/massive-bench/pkg/classifier"
	"github.com/hazyhaar/massive-bench/pkg/logging"
	"github.com/hazyhaar/massive-bench/pkg/processor"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var serveFlags struct {
	watch bool
	tls   bool
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the trained models over HTTP",
	Long: `Loads every <locale>.gob of models_dir and answers classification requests.
SIGHUP reloads the models; --watch also reloads them when the directory changes.
With --tls the API is served over HTTPS on TCP and HTTP/3 on UDP, using
tls_cert/tls_key or a self-signed certificate.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().BoolVar(&serveFlags.watch, "watch", false, "reload models when models_dir changes")
	serveCmd.Flags().BoolVar(&serveFlags.tls, "tls", false, "serve HTTPS and HTTP/3 instead of plain HTTP")
}

// loadService builds the classification service over cfg.ModelsDir.
func loadService() (*api.Service, error) {
	if cfg.ModelsDir == "" {
		return nil, fmt.Errorf("models_dir is not set; run bench with models_dir first")
	}
	models := classifier.NewRegistry(cfg.ModelsDir)
	if err := models.Load(); err != nil {
		return nil, err
	}
	return api.NewService(models, processor.NewRegistry(cfg.Processor), cfg.NoneIntent), nil
}

func runServe(cmd *cobra.Command, _ []string) error {
	logger := logging.New("api")

	svc, err := loadService()
	if err != nil {
		return err
	}
	models := svc.Models()
	logger.Info("models loaded", "count", models.ModelCount())

	handler := api.NewRouter(svc, logger)
	g, ctx := errgroup.WithContext(cmd.Context())

	if serveFlags.tls {
		srv, err := chassis.New(chassis.Config{
			Addr:     cfg.Addr,
			CertFile: cfg.TLSCert,
			KeyFile:  cfg.TLSKey,
			Handler:  handler,
			Logger:   logging.New("chassis"),
		})
		if err != nil {
			return err
		}
		g.Go(func() error { return srv.Serve(ctx) })
	} else {
		srv := &http.Server{
			Addr:              cfg.Addr,
			Handler:           handler,
			ReadHeaderTimeout: 10 * time.Second,
		}
		g.Go(func() error {
			logger.Info("massive listening", "addr", cfg.Addr)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("http server: %w", err)
			}
			return nil
		})
		g.Go(func() error {
			<-ctx.Done()
			logger.Info("shutting down")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		})
	}

	g.Go(func() error {
		sighup := make(chan os.Signal, 1)
		signal.Notify(sighup, syscall.SIGHUP)
		defer signal.Stop(sighup)
		for {
			select {
			case <-ctx.Done():
				return nil
			case <-sighup:
				logger.Info("SIGHUP received, reloading models")
				if err := models.Reload(); err != nil {
					logger.Error("reload failed", "error", err)
					continue
				}
				logger.Info("models reloaded", "count", models.ModelCount())
			}
		}
	})

	if serveFlags.watch {
		g.Go(func() error {
			return classifier.NewWatcher(models, logging.New("classifier"), 500*time.Millisecond).Run(ctx)
		})
	}

	return g.Wait()
}
