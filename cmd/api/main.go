package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"

	"github.com/Dwardyvennik/Backend-final-project-fittrakker/internal/api"
	"github.com/Dwardyvennik/Backend-final-project-fittrakker/internal/auth"
	"github.com/Dwardyvennik/Backend-final-project-fittrakker/internal/config"
	"github.com/Dwardyvennik/Backend-final-project-fittrakker/internal/domain"
	"github.com/Dwardyvennik/Backend-final-project-fittrakker/internal/logging"
	"github.com/Dwardyvennik/Backend-final-project-fittrakker/internal/persistence"
	httptransport "github.com/Dwardyvennik/Backend-final-project-fittrakker/internal/transport/http"
)

func main() {
	cfg := config.Load()
	logging.Setup(logging.SetupParams{
		FileName:   cfg.LogFile,
		ToStdout:   cfg.LogStdout,
		Level:      cfg.LogLevel,
		FormatJSON: cfg.LogJSON,
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	stores, err := persistence.Open(ctx, cfg)
	if err != nil {
		log.Fatalf("failed to open %s store: %v", cfg.StoreDriver, err)
	}

	service := domain.NewService(stores.Workouts, stores.Consultations)
	handler := api.NewHandler(service, api.WithLogger(log.WithField("component", "api")))

	router := mux.NewRouter()
	router.Handle("/metrics", promhttp.Handler())
	handler.RegisterRoutes(router)

	metrics := httptransport.NewMetrics(prometheus.DefaultRegisterer)
	authMiddleware := auth.NewMiddleware(auth.Config{Secret: cfg.JWTSecret, Issuer: cfg.JWTIssuer})

	server := httptransport.NewServer(httptransport.DefaultServerConfig(cfg.HTTPAddress), httptransport.Chain(router,
		httptransport.PanicRecovery(metrics),
		httptransport.RequestMetrics(metrics),
		httptransport.LogRequest(),
		httptransport.Cors(cfg.CORSOrigin),
		authMiddleware.Wrap,
	))

	shutdownCh := make(chan os.Signal, 1)
	signal.Notify(shutdownCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		log.WithFields(log.Fields{"address": cfg.HTTPAddress, "store": stores.Driver}).Info("workout service listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server error: %v", err)
		}
	}()

	<-shutdownCh
	log.Info("shutdown requested")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Errorf("graceful shutdown failed: %v", err)
	}
	if err := stores.Close(shutdownCtx); err != nil {
		log.Errorf("close store: %v", err)
	}
}
