package ingest

import (
	"errors"
	"net/http"
	"strconv"

	"bookcatalog/internal/catalog"
	"bookcatalog/internal/httpx"
)

type HTTPHandler struct {
	svc *Service
}

func NewHTTPHandler(svc *Service) *HTTPHandler {
	return &HTTPHandler{svc: svc}
}

type importRequest struct {
	URL string `json:"url"`
}

// Import handles POST /v1/imports
// @Summary Import books from the external volumes API
// @Description Fetches one page of volumes from url and stores the books that do not exist yet
// @Tags imports
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} httpx.SuccessResponse
// @Failure 400 {object} httpx.ErrorResponse
// @Failure 502 {object} httpx.ErrorResponse
// @Router /v1/imports [post]
func (h *HTTPHandler) Import(w http.ResponseWriter, r *http.Request) {
	var req importRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.JSONError(w, r, http.StatusBadRequest, "INVALID_JSON", "Invalid request body", nil)
		return
	}
	if req.URL == "" {
		httpx.JSONError(w, r, http.StatusBadRequest, "VALIDATION_ERROR", "Validation failed",
			[]catalog.FieldError{{Field: "url", Message: "url is required"}})
		return
	}

	res, err := h.svc.Import(r.Context(), req.URL)
	switch {
	case errors.Is(err, ErrHostNotAllowed):
		httpx.JSONError(w, r, http.StatusBadRequest, "HOST_NOT_ALLOWED", err.Error(), nil)
	case errors.Is(err, ErrFetchFailed):
		httpx.JSONErrorMeta(w, r, http.StatusBadGateway, "FETCH_FAILED", res.Reason, nil,
			map[string]any{"run_id": res.RunID, "created": res.Created})
	case err != nil:
		httpx.WriteError(w, r, err)
	default:
		httpx.JSONSuccess(w, r, res, nil)
	}
}

// Runs handles GET /v1/imports
func (h *HTTPHandler) Runs(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	switch {
	case limit <= 0:
		limit = 20
	case limit > 100:
		limit = 100
	}

	runs, err := h.svc.Runs(r.Context(), limit)
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	if runs == nil {
		runs = []Run{}
	}
	httpx.JSONSuccess(w, r, runs, map[string]any{"limit": limit})
}
