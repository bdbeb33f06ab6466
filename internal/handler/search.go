package handler

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"larder/internal/catalog"
)

type SearchHandler struct {
	catalog *catalog.Client
	logger  *slog.Logger
}

func NewSearchHandler(c *catalog.Client, logger *slog.Logger) *SearchHandler {
	return &SearchHandler{catalog: c, logger: logger}
}

// Search forwards the q term to the product catalog and returns the
// normalized records. Upstream failures map onto the response: a non-2xx
// catalog status is propagated, network trouble becomes 503, anything else
// a generic 500.
func (h *SearchHandler) Search(w http.ResponseWriter, r *http.Request) {
	term := r.URL.Query().Get("q")
	if term == "" {
		writeMsg(w, http.StatusBadRequest, "Missing search query 'q'")
		return
	}

	products, err := h.catalog.Search(r.Context(), term)
	if err != nil {
		var statusErr *catalog.StatusError
		switch {
		case errors.As(err, &statusErr):
			writeJSON(w, statusErr.Code, map[string]any{
				"msg":    fmt.Sprintf("External API HTTP error: status %d", statusErr.Code),
				"status": statusErr.Code,
			})
		case errors.Is(err, catalog.ErrUnavailable):
			writeMsg(w, http.StatusServiceUnavailable, "External API connection error")
		default:
			h.logger.Error("catalog search", "error", err)
			writeMsg(w, http.StatusInternalServerError, "An unexpected server error occurred.")
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"products": products})
}
