package apps

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/sbilibin2017/prometheus2zabbix/internal/configs"
	"github.com/sbilibin2017/prometheus2zabbix/internal/runner"
	"go.uber.org/zap"

	httpHandlers "github.com/sbilibin2017/prometheus2zabbix/internal/handlers/http"
	httpMiddlewares "github.com/sbilibin2017/prometheus2zabbix/internal/middlewares/http"
)

// NewRouter builds the template server routes.
func NewRouter(converter httpHandlers.Converter, config *configs.ServerConfig, logger *zap.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(httpMiddlewares.LoggingMiddleware(logger))
	r.Use(httpMiddlewares.GzipMiddleware)

	r.Get("/template", httpHandlers.NewTemplateHandler(converter, config.Converter, logger))
	r.Get("/ping", httpHandlers.NewPingHandler())

	return r
}

// RunServer starts the template server and handles graceful shutdown.
func RunServer(
	ctx context.Context,
	config *configs.ServerConfig,
	logger *zap.Logger,
) error {
	svc, err := NewConverterService(config.Converter, logger)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	srv := &http.Server{
		Addr:    config.Address,
		Handler: NewRouter(svc, config, logger),
	}

	r := runner.NewRunner()
	r.AddHTTPServer(srv)

	logger.Info("starting template server", zap.String("address", config.Address))
	return r.Run(ctx)
}
