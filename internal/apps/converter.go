package apps

import (
	"context"
	"io"
	"time"

	"github.com/sbilibin2017/prometheus2zabbix/internal/configs"
	"github.com/sbilibin2017/prometheus2zabbix/internal/configs/address"
	"github.com/sbilibin2017/prometheus2zabbix/internal/encoder"
	"github.com/sbilibin2017/prometheus2zabbix/internal/identifier"
	"github.com/sbilibin2017/prometheus2zabbix/internal/repositories/file"
	"github.com/sbilibin2017/prometheus2zabbix/internal/services"
	"go.uber.org/zap"

	httpClient "github.com/sbilibin2017/prometheus2zabbix/internal/configs/transport/http"
	httpFacades "github.com/sbilibin2017/prometheus2zabbix/internal/facades/http"
)

// UserAgent identifies metric fetches to exporters.
const UserAgent = "prometheus2zabbix"

// NewGenerator returns the identifier generator selected by config.
func NewGenerator(config *configs.ConverterConfig) identifier.Generator {
	if config.DeterministicUUIDs {
		return identifier.NewDeterministic(config.UUIDSeed)
	}
	return identifier.NewRandom()
}

// NewConverterService wires the HTTP fetcher and identifier generator
// described by config into a ConverterService.
func NewConverterService(config *configs.ConverterConfig, logger *zap.Logger) (*services.ConverterService, error) {
	client, err := httpClient.New(
		"",
		httpClient.WithTimeout(config.Timeout),
		httpClient.WithUserAgent(UserAgent),
		httpClient.WithRetryPolicy(
			httpClient.RetryPolicy{
				Count:   config.Retries,
				Wait:    500 * time.Millisecond,
				MaxWait: 5 * time.Second,
			},
		),
	)
	if err != nil {
		return nil, err
	}

	fetcher := httpFacades.NewMetricsHTTPFacade(client)
	return services.NewConverterService(fetcher, NewGenerator(config), logger), nil
}

// RunConverter converts the configured metrics endpoint once. The document
// is written to config.Output, or to stdout when no output file is set.
func RunConverter(
	ctx context.Context,
	config *configs.ConverterConfig,
	logger *zap.Logger,
	stdout io.Writer,
) error {
	source, err := address.New(config.URL)
	if err != nil {
		return err
	}

	svc, err := NewConverterService(config, logger)
	if err != nil {
		return err
	}

	export, err := svc.Convert(ctx, source, config.Template())
	if err != nil {
		return err
	}

	if config.Output == "" {
		return encoder.Encode(stdout, export, config.Format)
	}

	repo := file.NewTemplateWriteRepository(config.Output, config.Format)
	if err := repo.Save(ctx, export); err != nil {
		return err
	}
	logger.Info("template written", zap.String("path", config.Output))
	return nil
}
