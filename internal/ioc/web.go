package ioc

import (
	"net/http"
	"os"

	"WebNews/internal/config"
	"WebNews/internal/handlers"
	"WebNews/internal/logger"
	mw "WebNews/internal/middleware"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// InitWebServer mounts every route on one chi router.
// reg may be nil when metrics are disabled.
func InitWebServer(cfg config.Config, l logger.LoggerV1, reg *prometheus.Registry,
	articleHdl *handlers.ArticleHandler, publicHdl *handlers.PublicHandler) http.Handler {
	r := chi.NewRouter()
	r.Use(InitMiddlewares(cfg, l, reg)...)

	publicHdl.RegisterRoutes(r)
	articleHdl.RegisterRoutes(r)
	if reg != nil {
		r.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}))
	}
	return r
}

func InitMiddlewares(cfg config.Config, l logger.LoggerV1, reg *prometheus.Registry) []func(http.Handler) http.Handler {
	mdls := []func(http.Handler) http.Handler{
		middleware.RequestID,
		middleware.RealIP,
		mw.AccessLog(l),
		middleware.Recoverer,
		mw.CORS(),
	}
	if reg != nil {
		host, _ := os.Hostname()
		mdls = append(mdls, mw.NewMetricsBuilder(
			"webnews",
			"api",
			"http",
			"HTTP requests served by the article API",
			host).Registerer(reg).Build())
	}
	if cfg.Server.RequestTimeout > 0 {
		mdls = append(mdls, middleware.Timeout(cfg.Server.RequestTimeout))
	}
	// /path/ -> /path
	mdls = append(mdls, middleware.RedirectSlashes)
	return mdls
}

// InitRegistry returns nil when metrics are switched off.
func InitRegistry(cfg config.MetricsConfig) *prometheus.Registry {
	if !cfg.Enabled {
		return nil
	}
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return reg
}
