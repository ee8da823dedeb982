package main

import (
	"context"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/custodia-labs/mineguard-cli/internal/adapters/driven/api"
	"github.com/custodia-labs/mineguard-cli/internal/adapters/driven/config/file"
	"github.com/custodia-labs/mineguard-cli/internal/adapters/driven/payload"
	"github.com/custodia-labs/mineguard-cli/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/mineguard-cli/internal/adapters/driving/cli"
	"github.com/custodia-labs/mineguard-cli/internal/core/ports/driven"
	"github.com/custodia-labs/mineguard-cli/internal/core/services"
	"github.com/custodia-labs/mineguard-cli/internal/logger"
	"github.com/custodia-labs/mineguard-cli/internal/normalisers"
	"github.com/custodia-labs/mineguard-cli/internal/normalisers/pdf"
	"github.com/custodia-labs/mineguard-cli/internal/postprocessors"
)

// newServices wires the adapters behind the command tree.
func newServices(_ context.Context, opts cli.Options) (*cli.Services, error) {
	config, err := file.NewConfigStore(opts.ConfigDir)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	var credentials driven.CredentialStore
	var watch func(ctx context.Context) (<-chan struct{}, error)
	if opts.Token != "" {
		credentials = memory.NewCredentialStore("", opts.Token)
	} else {
		saved := file.NewCredentialStore(config)
		credentials, watch = saved, saved.Watch
	}

	suggestions, err := file.NewSuggestionStore(opts.ConfigDir)
	if err != nil {
		return nil, fmt.Errorf("loading suggestions: %w", err)
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())

	baseURL := opts.APIURL
	if baseURL == "" {
		baseURL = config.GetString(driven.KeyAPIBaseURL)
	}
	gateway := api.NewClient(api.Options{
		BaseURL:   baseURL,
		Timeout:   time.Duration(config.GetInt(driven.KeyAPITimeout)) * time.Second,
		RateLimit: config.GetFloat(driven.KeyAPIRateLimit),
		Tokens:    api.CredentialTokenSource{Store: credentials},
		Metrics:   api.NewMetrics(reg),
	})
	logger.Debug("config %s, api %s", config.Path(), gateway.BaseURL())

	decoder, err := newDecoder(config)
	if err != nil {
		return nil, err
	}

	return &cli.Services{
		Documents:        services.NewDocumentService(gateway),
		Comparisons:      services.NewComparisonService(gateway),
		QA:               services.NewQAService(gateway),
		Auth:             services.NewAuthService(gateway, credentials),
		Payloads:         payload.NewTempStore(""),
		Decoder:          decoder,
		Suggestions:      suggestions,
		Metrics:          promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}),
		WatchCredentials: watch,
	}, nil
}

// newDecoder builds the viewer's decode pipeline: the built-in
// normalisers followed by the configured post-processors.
func newDecoder(config driven.ConfigStore) (*payload.Decoder, error) {
	tool := config.GetString(driven.KeyViewerPdftotext)
	if err := pdf.New(pdf.WithTool(tool)).CheckAvailable(); err != nil {
		logger.Warn("%v; PDF documents will show without page text.\n%s", err, pdf.InstallInstructions())
	}

	order := config.GetStringSlice(driven.KeyViewerPipeline)
	if len(order) == 0 {
		order = postprocessors.DefaultOrder
	}
	processors := postprocessors.NewRegistry()
	postprocessors.RegisterDefaults(processors)
	pipeline, err := processors.BuildPipeline(order, map[string]map[string]any{
		"paginate": {"page_size": config.GetInt(driven.KeyViewerPageChars)},
	})
	if err != nil {
		return nil, fmt.Errorf("building viewer pipeline: %w", err)
	}

	return payload.NewDecoder(normalisers.NewDefaultRegistry(tool), pipeline), nil
}
