package author

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

type authorRequest struct {
	FirstName  string `json:"first_name"`
	SecondName string `json:"second_name"`
	LastName   string `json:"last_name"`
}

// List handles GET /v1/authors
// @Summary List authors
// @Tags authors
// @Param last_name query string false "Case-insensitive last name"
// @Param page query int false "Page number"
// @Param page_size query int false "Page size"
// @Router /v1/authors [get]
func (h *HTTPHandler) List(w http.ResponseWriter, r *http.Request) {
	page, pageSize := httpx.Pagination(r)
	q := Query{
		LastName: r.URL.Query().Get("last_name"),
		Limit:    pageSize,
		Offset:   (page - 1) * pageSize,
	}

	authors, total, err := h.service.List(r.Context(), q)
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	if authors == nil {
		authors = []Author{}
	}
	httpx.JSONSuccess(w, r, authors, httpx.PageMeta(page, pageSize, total))
}

// Get handles GET /v1/authors/{id}
func (h *HTTPHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := httpx.PathID(r)
	if !ok {
		httpx.JSONError(w, r, http.StatusNotFound, "NOT_FOUND", "Author not found", nil)
		return
	}

	a, err := h.service.Get(r.Context(), id)
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	httpx.JSONSuccess(w, r, a, nil)
}

// Create handles POST /v1/authors
// @Summary Create an author
// @Tags authors
// @Security BearerAuth
// @Router /v1/authors [post]
func (h *HTTPHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req authorRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.JSONError(w, r, http.StatusBadRequest, "INVALID_JSON", "Invalid request body", nil)
		return
	}

	a := Author{FirstName: req.FirstName, SecondName: req.SecondName, LastName: req.LastName}
	if err := h.service.Create(r.Context(), &a); err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	httpx.JSONCreated(w, r, a)
}

// Update handles PUT /v1/authors/{id}
func (h *HTTPHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := httpx.PathID(r)
	if !ok {
		httpx.JSONError(w, r, http.StatusNotFound, "NOT_FOUND", "Author not found", nil)
		return
	}

	var req authorRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.JSONError(w, r, http.StatusBadRequest, "INVALID_JSON", "Invalid request body", nil)
		return
	}

	a := Author{ID: id, FirstName: req.FirstName, SecondName: req.SecondName, LastName: req.LastName}
	if err := h.service.Update(r.Context(), &a); err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	httpx.JSONSuccess(w, r, a, nil)
}

// Delete handles DELETE /v1/authors/{id}
func (h *HTTPHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := httpx.PathID(r)
	if !ok {
		httpx.JSONError(w, r, http.StatusNotFound, "NOT_FOUND", "Author not found", nil)
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	httpx.JSONNoContent(w)
}
