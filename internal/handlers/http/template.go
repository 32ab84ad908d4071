package http

import (
	"bytes"
	"context"
	"net/http"
	"net/url"

	"github.com/sbilibin2017/prometheus2zabbix/internal/configs"
	"github.com/sbilibin2017/prometheus2zabbix/internal/configs/address"
	"github.com/sbilibin2017/prometheus2zabbix/internal/encoder"
	"github.com/sbilibin2017/prometheus2zabbix/internal/models"
	"github.com/sbilibin2017/prometheus2zabbix/internal/template"
	"go.uber.org/zap"
)

//go:generate mockgen -source=template.go -destination=mock_template.go -package=http

// Converter builds template exports for metrics endpoints.
type Converter interface {
	Convert(ctx context.Context, source *url.URL, cfg template.Config) (*models.Export, error)
}

// NewTemplateHandler renders the template for the metrics endpoint given in
// the url query parameter.
//
// Optional query parameters name, group, master_key, tag and format
// override the server defaults.
func NewTemplateHandler(
	converter Converter,
	defaults *configs.ConverterConfig,
	logger *zap.Logger,
) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()

		if q.Get("url") == "" {
			http.Error(w, "Bad request: url is required", http.StatusBadRequest)
			return
		}

		cfg, err := configs.NewConverterConfig(
			configs.WithURL(q.Get("url")),
			configs.WithTemplateName(q.Get("name"), defaults.TemplateName),
			configs.WithGroupName(q.Get("group"), defaults.GroupName),
			configs.WithMasterKey(q.Get("master_key"), defaults.MasterKey),
			configs.WithTag(q.Get("tag"), defaults.Tag),
			configs.WithFormat(q.Get("format"), string(defaults.Format)),
		)
		if err != nil {
			http.Error(w, "Bad request: "+err.Error(), http.StatusBadRequest)
			return
		}

		source, err := address.New(cfg.URL)
		if err != nil {
			http.Error(w, "Bad request: "+err.Error(), http.StatusBadRequest)
			return
		}

		export, err := converter.Convert(r.Context(), source, cfg.Template())
		if err != nil {
			logger.Warn("conversion failed",
				zap.String("url", source.Redacted()),
				zap.Error(err),
			)
			http.Error(w, "Bad gateway: "+err.Error(), http.StatusBadGateway)
			return
		}

		var buf bytes.Buffer
		if err := encoder.Encode(&buf, export, cfg.Format); err != nil {
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", cfg.Format.ContentType())
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(buf.Bytes())
	}
}

// NewPingHandler reports that the server is up.
func NewPingHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}
}
