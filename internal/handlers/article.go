package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"WebNews/internal/config"
	"WebNews/internal/logger"
	"WebNews/internal/service"

	"github.com/go-chi/chi/v5"
)

const (
	msgInvalidID   = "Invalid article ID"
	msgNotFound    = "Article not found"
	msgServerError = "Server error"
)

type ArticleHandler struct {
	svc service.ArticleService
	l   logger.LoggerV1

	notFound     string
	exposeErrors bool
}

func NewArticleHandler(svc service.ArticleService, l logger.LoggerV1, cfg config.APIConfig) *ArticleHandler {
	return &ArticleHandler{
		svc:          svc,
		l:            l,
		notFound:     cfg.NotFound,
		exposeErrors: cfg.ExposeErrors,
	}
}

func (h *ArticleHandler) RegisterRoutes(r chi.Router) {
	r.Get("/api/articles", h.GetArticles)
	r.Get("/api/articles/{id}", h.GetArticleByID)
}

// GET /api/articles/{id}
func (h *ArticleHandler) GetArticleByID(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	art, err := h.svc.GetByID(r.Context(), id)
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, art)
	case errors.Is(err, service.ErrNotFound):
		h.l.Debug("article not found", logger.String("id", id))
		if h.notFound == config.NotFoundEmpty {
			writeJSON(w, http.StatusOK, struct{}{})
			return
		}
		jsonError(w, http.StatusNotFound, msgNotFound)
	case errors.Is(err, service.ErrInvalidIdentifier):
		// kept as 500, existing clients rely on it
		h.l.Error("bad article id", logger.String("id", id), logger.Error(err))
		jsonError(w, http.StatusInternalServerError, h.message(err, msgInvalidID))
	default:
		h.l.Error("get article failed", logger.String("id", id), logger.Error(err))
		jsonError(w, http.StatusInternalServerError, h.message(err, msgServerError))
	}
}

// GET /api/articles?page=N
func (h *ArticleHandler) GetArticles(w http.ResponseWriter, r *http.Request) {
	page := ParsePage(r.URL.Query().Get("page"))
	res, err := h.svc.GetPage(r.Context(), page)
	if err != nil {
		h.l.Error("get page failed", logger.Int("page", page), logger.Error(err))
		jsonError(w, http.StatusInternalServerError, h.message(err, msgServerError))
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// message hides fault details unless api.expose_errors is on.
func (h *ArticleHandler) message(err error, generic string) string {
	if h.exposeErrors {
		return err.Error()
	}
	return generic
}

// ParsePage reads the leading digits of the page query value. Anything
// that is not a positive number, negatives included, is page 1.
// Values beyond int32 are capped.
func ParsePage(v string) int {
	v = strings.TrimLeft(v, " \t\n\r")
	end := 0
	if end < len(v) && (v[end] == '+' || v[end] == '-') {
		end++
	}
	digits := end
	for end < len(v) && v[end] >= '0' && v[end] <= '9' {
		end++
	}
	if end == digits {
		return 1
	}
	// on overflow ParseInt still returns the clamped bound
	n, _ := strconv.ParseInt(v[:end], 10, 32)
	if n < 1 {
		return 1
	}
	return int(n)
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func jsonError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]any{
		"error": msg,
	})
}
