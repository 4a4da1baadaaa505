package main

import (
	"fmt"
	"io/fs"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/dmitrymomot/ssrkit"
	"github.com/dmitrymomot/ssrkit/handlers"
	"github.com/dmitrymomot/ssrkit/middlewares"
	"github.com/dmitrymomot/ssrkit/pkg/assets"
	"github.com/dmitrymomot/ssrkit/pkg/config"
	"github.com/dmitrymomot/ssrkit/pkg/devreload"
	"github.com/dmitrymomot/ssrkit/pkg/health"
	"github.com/dmitrymomot/ssrkit/pkg/render"
	"github.com/dmitrymomot/ssrkit/pkg/shell"
	"github.com/dmitrymomot/ssrkit/views"
	"github.com/dmitrymomot/ssrkit/web"
)

const (
	metricsNamespace = "ssrkit"
	manifestPath     = "static/manifest.json"
)

type server struct {
	app    *ssrkit.App
	reload *devreload.Server // nil outside development
}

// newServer wires the application, serving static from /static/. A nil reg
// gets a fresh registry with the Go runtime and process collectors.
func newServer(cfg config.Config, log *slog.Logger, reg *prometheus.Registry, static fs.FS) (*server, error) {
	if reg == nil {
		reg = prometheus.NewRegistry()
		reg.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
	}

	manifest, err := assets.LoadFS(static, manifestPath)
	if err != nil {
		return nil, fmt.Errorf("load asset manifest: %w", err)
	}

	page := shell.DefaultConfig(cfg.Dev())
	page.Stylesheet = cfg.Stylesheet
	page.Assets = assets.NewResolver(manifest, shell.DefaultStaticPrefix)

	opts := []ssrkit.Option{
		ssrkit.WithCustomLogger(log.With(slog.String("component", "ssr"))),
		ssrkit.WithMiddleware(
			middlewares.RequestID(),
			middlewares.Tracing(),
			middlewares.Metrics(
				middlewares.WithMetricsRegistry(reg),
				middlewares.WithMetricsNamespace(metricsNamespace),
			),
			middlewares.RequestLogger("/health/live", "/health/ready", cfg.MetricsPath),
			middlewares.Recover(),
		),
		ssrkit.WithRenderOptions(
			render.WithTimeout(cfg.RenderTimeout),
			render.WithMetrics(render.NewMetrics(reg, metricsNamespace)),
		),
		ssrkit.WithStaticFiles(shell.DefaultStaticPrefix, static, "static"),
		ssrkit.WithMetricsHandler(cfg.MetricsPath, promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg})),
		ssrkit.WithHealthChecks(
			ssrkit.WithReadinessCheck("render", health.RenderCheck(views.App)),
			ssrkit.WithReadinessCheck("client_bundle", health.FileCheck(static, web.ClientFiles...)),
		),
		ssrkit.WithHandlers(handlers.NewSSR(page, views.App)),
	}

	srv := &server{}
	if cfg.Dev() {
		srv.reload = devreload.NewServer(devreload.WithLogger(log))
		opts = append(opts,
			ssrkit.WithDevFiles("/src/", cfg.SourceDir),
			ssrkit.WithMount(devreload.MountPath, srv.reload.Routes()),
		)
	}

	srv.app = ssrkit.New(opts...)
	return srv, nil
}
