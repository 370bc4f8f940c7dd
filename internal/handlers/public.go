package handlers

import (
	"context"
	"embed"
	"html/template"
	"net/http"
	"time"

	"WebNews/internal/logger"
	"WebNews/internal/service"

	"github.com/go-chi/chi/v5"
)

/* ========= VIEWER ========= */

//go:embed web/index.html
var webFS embed.FS

var indexTmpl = template.Must(template.ParseFS(webFS, "web/index.html"))

type PublicHandler struct {
	svc service.ArticleService
	l   logger.LoggerV1
}

func NewPublicHandler(svc service.ArticleService, l logger.LoggerV1) *PublicHandler {
	return &PublicHandler{
		svc: svc,
		l:   l,
	}
}

func (h *PublicHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.ShowIndexPage)
	r.Get("/healthz", h.Health)
}

// ShowIndexPage serves the single-page reader that walks /api/articles.
func (h *PublicHandler) ShowIndexPage(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	err := indexTmpl.ExecuteTemplate(w, "index", map[string]any{
		"Title":   "Články",
		"APIPath": "/api/articles",
	})
	if err != nil {
		h.l.Error("render index failed", logger.Error(err))
	}
}

/* ========= HEALTH ========= */

const healthTimeout = 2 * time.Second

func (h *PublicHandler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), healthTimeout)
	defer cancel()
	if err := h.svc.Ping(ctx); err != nil {
		h.l.Warn("store ping failed", logger.Error(err))
		writeJSON(w, http.StatusServiceUnavailable, map[string]any{
			"status": "unavailable",
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"status": "ok",
	})
}
