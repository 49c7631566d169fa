package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/oapi-codegen/runtime"
	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/pkordes/train-reservation/internal/domain"
)

// Pagination is the page envelope of every list response.
type Pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
}

// Page wraps one page of list results.
type Page[T any] struct {
	Data       []T        `json:"data"`
	Pagination Pagination `json:"pagination"`
}

// writeJSON encodes v as the response body with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	//nolint:errcheck // the client is gone if this fails; nothing left to report to.
	json.NewEncoder(w).Encode(v)
}

// decodeBody decodes a JSON request body into dst, rejecting unknown fields.
func decodeBody(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return errors.New("request body is required")
		}
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return errors.New("request body is too large")
		}
		return errors.New("malformed request body: " + err.Error())
	}
	return nil
}

// pathUUID binds the named path parameter as a UUID, the way the generated
// strict server binds `format: uuid` parameters.
func pathUUID(r *http.Request, name string) (uuid.UUID, error) {
	var id openapi_types.UUID
	err := runtime.BindStyledParameterWithOptions("simple", name, chi.URLParam(r, name), &id,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	return id, err
}

// pathString binds the named path parameter as a string.
func pathString(r *http.Request, name string) (string, error) {
	var v string
	err := runtime.BindStyledParameterWithOptions("simple", name, chi.URLParam(r, name), &v,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	return v, err
}

// paginationParams binds the optional ?page= and ?limit= query parameters.
func paginationParams(r *http.Request) (domain.PaginationParams, error) {
	var page, limit *int
	query := r.URL.Query()
	if err := runtime.BindQueryParameter("form", true, false, "page", query, &page); err != nil {
		return domain.PaginationParams{}, err
	}
	if err := runtime.BindQueryParameter("form", true, false, "limit", query, &limit); err != nil {
		return domain.PaginationParams{}, err
	}
	return domain.NewPaginationParams(page, limit), nil
}

// newPage slices items with p and wraps the window in a Page, mapping each
// element through conv.
func newPage[S, T any](items []S, p domain.PaginationParams, conv func(S) T) Page[T] {
	window := domain.Slice(items, p)
	data := make([]T, len(window))
	for i, item := range window {
		data[i] = conv(item)
	}
	return Page[T]{
		Data:       data,
		Pagination: Pagination{Page: p.Page, Limit: p.Limit, Total: len(items)},
	}
}
