package catalog

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	validator "github.com/go-playground/validator/v10"

	"github.com/noah-isme/backend-billing/internal/common"
)

// Handler exposes the product management endpoints.
type Handler struct {
	Catalog  *Catalog
	Validate *validator.Validate
}

type productRequest struct {
	Name string `json:"name" validate:"required,max=64"`
}

type productResponse struct {
	Index int    `json:"index"`
	Name  string `json:"name"`
}

// List handles GET /api/v1/products.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	names := h.Catalog.Names()
	items := make([]productResponse, 0, len(names))
	for i, name := range names {
		items = append(items, productResponse{Index: i, Name: name})
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": items})
}

// Add handles POST /api/v1/products.
func (h *Handler) Add(w http.ResponseWriter, r *http.Request) {
	req, err := h.decode(r)
	if err != nil {
		common.WriteError(w, err)
		return
	}
	if _, err := h.Catalog.Add(req.Name); err != nil {
		common.WriteError(w, mapCatalogErr(err))
		return
	}
	common.JSON(w, http.StatusCreated, map[string]any{
		"data": productResponse{Index: h.Catalog.Len() - 1, Name: req.Name},
	})
}

// Rename handles PATCH /api/v1/products/{index}.
func (h *Handler) Rename(w http.ResponseWriter, r *http.Request) {
	index, err := parseIndex(r)
	if err != nil {
		common.WriteError(w, err)
		return
	}
	req, err := h.decode(r)
	if err != nil {
		common.WriteError(w, err)
		return
	}
	changed, err := h.Catalog.Rename(index, req.Name)
	if err != nil {
		common.WriteError(w, mapCatalogErr(err))
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{
		"data":    productResponse{Index: index, Name: req.Name},
		"changed": changed,
	})
}

// Remove handles DELETE /api/v1/products/{index}.
func (h *Handler) Remove(w http.ResponseWriter, r *http.Request) {
	index, err := parseIndex(r)
	if err != nil {
		common.WriteError(w, err)
		return
	}
	removed, err := h.Catalog.Remove(index)
	if err != nil {
		common.WriteError(w, mapCatalogErr(err))
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{
		"data":    productResponse{Index: index, Name: removed},
		"changed": true,
	})
}

func (h *Handler) decode(r *http.Request) (productRequest, error) {
	var req productRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return req, common.BadRequest("body", "invalid JSON payload", err)
	}
	if h.Validate != nil {
		if err := h.Validate.Struct(req); err != nil {
			return req, common.BadRequest("name", "name is required and at most 64 characters", err)
		}
	}
	return req, nil
}

func parseIndex(r *http.Request) (int, error) {
	raw := chi.URLParam(r, "index")
	index, err := strconv.Atoi(raw)
	if err != nil || index < 0 {
		return 0, common.BadRequest("index", "index must be a non-negative integer", err)
	}
	return index, nil
}

func mapCatalogErr(err error) error {
	switch {
	case errors.Is(err, ErrEmptyName):
		return common.BadRequest("name", "product name must not be empty", err)
	case errors.Is(err, ErrDuplicateName):
		return &common.AppError{Code: "DUPLICATE", Message: "product already exists", HTTPStatus: http.StatusConflict, Err: err}
	case errors.Is(err, ErrNotFound):
		return common.NotFound("product not found", err)
	default:
		return err
	}
}
