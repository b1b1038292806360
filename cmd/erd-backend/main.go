package main

import (
	"context"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	flag "github.com/spf13/pflag"

	"github.com/talkdata/erd-backend/pkg/catalog"
	"github.com/talkdata/erd-backend/pkg/config"
	"github.com/talkdata/erd-backend/pkg/requestlogger"
	"github.com/talkdata/erd-backend/pkg/service/core"
	"github.com/talkdata/erd-backend/pkg/service/core/handlers"
	"github.com/talkdata/erd-backend/pkg/service/core/routes"
)

var configFilePath = flag.String("config", "config.yaml", "path to config file")

func main() {
	flag.Parse()

	log := zerolog.New(os.Stdout).With().Timestamp().Logger()

	fileParts, err := config.ProcessConfigPath(*configFilePath)
	if err != nil {
		log.Fatal().Err(err).Msg("processing config path")
	}

	cfg, err := config.NewFileSystemLoader().Load(fileParts.FileName, fileParts.Path, "TALKDATA", config.NewDefaultEnvBinder())
	if err != nil {
		log.Fatal().Err(err).Msg("loading config")
	}

	err = cfg.Validate()
	if err != nil {
		log.Fatal().Err(err).Msg("validating config")
	}

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		log.Fatal().Err(err).Msg("parsing log level")
	}
	log = log.Level(level)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	defer cancel()

	httpClient := &http.Client{
		Timeout: 10 * time.Second,
	}

	catalogClient := catalog.New(cfg.Catalog.APIURL, cfg.Catalog.Token, httpClient)

	promReg := prometheus.NewRegistry()
	metrics := core.NewMetrics(promReg)

	services := core.NewServices(cfg, catalogClient, metrics)
	h := handlers.NewHandlers(services)

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(requestlogger.Middleware(log.With().Str("subsystem", "http").Logger(), "/internal/metrics"))

	routes.Add(router,
		routes.NewDiagramRoutes(routes.NewDiagramEndpoints(log, h.DiagramHandler)),
		routes.NewMetricsRoutes(routes.NewMetricsEndpoints(promReg)),
	)

	if cfg.Debug {
		err = routes.Print(router, os.Stdout)
		if err != nil {
			log.Fatal().Err(err).Msg("printing routes")
		}
	}

	server := http.Server{
		Addr:    net.JoinHostPort(cfg.Server.Address, cfg.Server.Port),
		Handler: router,
	}

	log.Info().Msgf("Listening on %s:%s", cfg.Server.Address, cfg.Server.Port)

	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("serving http")
		}
	}()
	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	err = server.Shutdown(shutdownCtx)
	if err != nil {
		log.Error().Err(err).Msg("shutting down server")
	}
}
