package services

import (
	"bytes"
	"context"
	"net/url"

	"github.com/sbilibin2017/prometheus2zabbix/internal/identifier"
	"github.com/sbilibin2017/prometheus2zabbix/internal/models"
	"github.com/sbilibin2017/prometheus2zabbix/internal/schema"
	"github.com/sbilibin2017/prometheus2zabbix/internal/template"
	"go.uber.org/zap"
)

//go:generate mockgen -source=converter.go -destination=mock_converter.go -package=services

// Fetcher defines the interface for downloading exposition text.
type Fetcher interface {
	// Fetch returns the body served at url.
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// ConverterService turns a metrics endpoint into a template export.
type ConverterService struct {
	fetcher Fetcher
	gen     identifier.Generator
	logger  *zap.Logger
}

// NewConverterService creates a new ConverterService.
func NewConverterService(
	fetcher Fetcher,
	gen identifier.Generator,
	logger *zap.Logger,
) *ConverterService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ConverterService{
		fetcher: fetcher,
		gen:     gen,
		logger:  logger,
	}
}

// Convert fetches source, parses the exposition text and builds the
// template described by cfg. Any failure aborts the conversion.
func (svc *ConverterService) Convert(
	ctx context.Context,
	source *url.URL,
	cfg template.Config,
) (*models.Export, error) {
	body, err := svc.fetcher.Fetch(ctx, source.String())
	if err != nil {
		return nil, err
	}
	svc.logger.Debug("fetched metrics",
		zap.String("url", source.Redacted()),
		zap.Int("bytes", len(body)),
	)

	return svc.ConvertText(body, source, cfg)
}

// ConvertText builds the template for already downloaded exposition text.
func (svc *ConverterService) ConvertText(
	body []byte,
	source *url.URL,
	cfg template.Config,
) (*models.Export, error) {
	families, err := schema.Parse(bytes.NewReader(body))
	if err != nil {
		return nil, err
	}

	schemas, err := schema.FromMetricFamilies(families)
	if err != nil {
		return nil, err
	}

	export := template.NewBuilder(cfg, svc.gen).Build(schemas, source)

	tmpl := export.Template()
	svc.logger.Info("built template",
		zap.String("template", tmpl.Name),
		zap.Int("families", len(schemas)),
		zap.Int("items", len(tmpl.Items)),
		zap.Int("discovery_rules", len(tmpl.DiscoveryRules)),
	)

	return export, nil
}
