package language

import (
	"net/http"

	"bookcatalog/internal/httpx"
)

type HTTPHandler struct {
	service *Service
}

func NewHTTPHandler(service *Service) *HTTPHandler {
	return &HTTPHandler{service: service}
}

type languageRequest struct {
	Name string `json:"name"`
	Code string `json:"code"`
}

// List handles GET /v1/languages
func (h *HTTPHandler) List(w http.ResponseWriter, r *http.Request) {
	langs, err := h.service.List(r.Context())
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	if langs == nil {
		langs = []Language{}
	}
	httpx.JSONSuccess(w, r, langs, map[string]any{"total": len(langs)})
}

// Get handles GET /v1/languages/{id}
func (h *HTTPHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := httpx.PathID(r)
	if !ok {
		httpx.JSONError(w, r, http.StatusNotFound, "NOT_FOUND", "Language not found", nil)
		return
	}

	l, err := h.service.Get(r.Context(), id)
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	httpx.JSONSuccess(w, r, l, nil)
}

// Create handles POST /v1/languages
func (h *HTTPHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req languageRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.JSONError(w, r, http.StatusBadRequest, "INVALID_JSON", "Invalid request body", nil)
		return
	}

	l := Language{Name: req.Name, Code: req.Code}
	if err := h.service.Create(r.Context(), &l); err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	httpx.JSONCreated(w, r, l)
}

// Update handles PUT /v1/languages/{id}
func (h *HTTPHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := httpx.PathID(r)
	if !ok {
		httpx.JSONError(w, r, http.StatusNotFound, "NOT_FOUND", "Language not found", nil)
		return
	}

	var req languageRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.JSONError(w, r, http.StatusBadRequest, "INVALID_JSON", "Invalid request body", nil)
		return
	}

	l := Language{ID: id, Name: req.Name, Code: req.Code}
	if err := h.service.Update(r.Context(), &l); err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	httpx.JSONSuccess(w, r, l, nil)
}

// Delete handles DELETE /v1/languages/{id}
// Languages referenced by books cannot be deleted (409 IN_USE).
func (h *HTTPHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := httpx.PathID(r)
	if !ok {
		httpx.JSONError(w, r, http.StatusNotFound, "NOT_FOUND", "Language not found", nil)
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	httpx.JSONNoContent(w)
}
