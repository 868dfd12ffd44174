package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/yourusername/blog-cms/internal/models"
	"github.com/yourusername/blog-cms/internal/render"
)

// HandlerFunc is an http handler that reports failures to its caller
// instead of writing an error response itself.
type HandlerFunc func(http.ResponseWriter, *http.Request) error

// ErrorPage adapts a HandlerFunc for the router: a returned error is
// logged and answered with the generic 500 page. The admin page flows
// rely on this instead of handling store failures inline.
func ErrorPage(renderer render.Renderer, fn HandlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		err := fn(w, r)
		if err == nil {
			return
		}

		log.Error().Err(err).Str("path", r.URL.Path).Msg("Admin page failed")
		if rerr := renderer.HTML(w, http.StatusInternalServerError, "error/500.html", models.AdminErrorView{Message: "internal server error"}); rerr != nil {
			log.Error().Err(rerr).Msg("Failed to render 500 page")
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		}
	})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Error().Err(err).Msg("Failed to encode response body")
	}
}
