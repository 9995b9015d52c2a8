package book

import (
	"net/http"
	"net/url"
	"strconv"

	"bookcatalog/internal/catalog"
	"bookcatalog/internal/httpx"
)

type HTTPHandler struct {
	service *Service
}

func NewHTTPHandler(service *Service) *HTTPHandler {
	return &HTTPHandler{service: service}
}

type bookRequest struct {
	Title           string  `json:"title"`
	PublicationYear *int    `json:"publication_year"`
	ISBN            *int64  `json:"isbn"`
	PageCount       *int    `json:"page_count"`
	CoverLink       *string `json:"cover_link"`
	LanguageID      int64   `json:"language_id"`
	AuthorIDs       []int64 `json:"author_ids"`
}

func (req bookRequest) book(id int64) Book {
	return Book{
		ID: id,
		Draft: Draft{
			Title:           req.Title,
			PublicationYear: req.PublicationYear,
			ISBN:            req.ISBN,
			PageCount:       req.PageCount,
			CoverLink:       req.CoverLink,
		},
		LanguageID: req.LanguageID,
	}
}

func parseYear(query url.Values, key string, dst **int, errs *[]catalog.FieldError) {
	raw := query.Get(key)
	if raw == "" {
		return
	}
	val, err := strconv.Atoi(raw)
	if err != nil {
		*errs = append(*errs, catalog.FieldError{Field: key, Message: key + " must be an integer"})
		return
	}
	*dst = &val
}

// List handles GET /v1/books
// @Summary List books
// @Tags books
// @Param author_first_name query string false "Author first name (case-insensitive)"
// @Param author_second_name query string false "Author second name fragment (case-insensitive)"
// @Param author_last_name query string false "Author last name (case-insensitive)"
// @Param language query string false "Language code (case-insensitive)"
// @Param title query string false "Exact title (case-insensitive)"
// @Param title_contains query string false "Title fragment"
// @Param year_min query int false "Earliest publication year"
// @Param year_max query int false "Latest publication year"
// @Param page query int false "Page number"
// @Param page_size query int false "Page size"
// @Router /v1/books [get]
func (h *HTTPHandler) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	params := Query{
		AuthorFirstName:  query.Get("author_first_name"),
		AuthorSecondName: query.Get("author_second_name"),
		AuthorLastName:   query.Get("author_last_name"),
		Language:         query.Get("language"),
		Title:            query.Get("title"),
		TitleContains:    query.Get("title_contains"),
	}

	var errs []catalog.FieldError
	parseYear(query, "year_min", &params.YearMin, &errs)
	parseYear(query, "year_max", &params.YearMax, &errs)
	if len(errs) > 0 {
		httpx.JSONError(w, r, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid query parameters", errs)
		return
	}

	page, pageSize := httpx.Pagination(r)
	params.Limit = pageSize
	params.Offset = (page - 1) * pageSize

	books, total, err := h.service.List(r.Context(), params)
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	if books == nil {
		books = []Book{}
	}

	httpx.JSONSuccess(w, r, books, httpx.PageMeta(page, pageSize, total))
}

// Get handles GET /v1/books/{id}
func (h *HTTPHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := httpx.PathID(r)
	if !ok {
		httpx.JSONError(w, r, http.StatusNotFound, "NOT_FOUND", "Book not found", nil)
		return
	}

	b, err := h.service.Get(r.Context(), id)
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	httpx.JSONSuccess(w, r, b, nil)
}

// Create handles POST /v1/books
// @Summary Create a book
// @Tags books
// @Security BearerAuth
// @Router /v1/books [post]
func (h *HTTPHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req bookRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.JSONError(w, r, http.StatusBadRequest, "INVALID_JSON", "Invalid request body", nil)
		return
	}

	b := req.book(0)
	if err := h.service.Create(r.Context(), &b, req.AuthorIDs); err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	httpx.JSONCreated(w, r, b)
}

// Update handles PUT /v1/books/{id}
func (h *HTTPHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := httpx.PathID(r)
	if !ok {
		httpx.JSONError(w, r, http.StatusNotFound, "NOT_FOUND", "Book not found", nil)
		return
	}

	var req bookRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.JSONError(w, r, http.StatusBadRequest, "INVALID_JSON", "Invalid request body", nil)
		return
	}

	b := req.book(id)
	if err := h.service.Update(r.Context(), &b, req.AuthorIDs); err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	httpx.JSONSuccess(w, r, b, nil)
}

// Delete handles DELETE /v1/books/{id}
func (h *HTTPHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := httpx.PathID(r)
	if !ok {
		httpx.JSONError(w, r, http.StatusNotFound, "NOT_FOUND", "Book not found", nil)
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	httpx.JSONNoContent(w)
}
