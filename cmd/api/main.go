package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/thevarp19/rams-tech-task/internal/calculator"
	"github.com/thevarp19/rams-tech-task/internal/httpapi"
	"github.com/thevarp19/rams-tech-task/pkg/config"
)

func main() {
	cfg := config.Load()

	log := logrus.New()
	if cfg.AppEnv == "dev" {
		log.SetLevel(logrus.DebugLevel)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store := calculator.NewStore(calculator.Options{
		FullPrice:     cfg.FullPrice,
		ApartmentArea: cfg.ApartmentArea,
		DepositDate:   cfg.DepositDate,
	})

	router := httpapi.NewRouter(httpapi.Dependencies{
		Cfg:   cfg,
		Store: store,
		Log:   log,
	})

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.WithField("addr", cfg.HTTPAddr).Info("http listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Fatal("http serve")
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_ = srv.Shutdown(shutdownCtx)
}
