package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/oapi-codegen/runtime"
	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/pkordes/hotel-booking/internal/domain"
)

// maxMultipartMemory is how much of a multipart body is buffered in memory
// before spilling to temporary files.
const maxMultipartMemory = 10 << 20

// pathID binds the int64 path parameter name.
func pathID(r *http.Request, name string) (int64, error) {
	var id int64
	err := runtime.BindStyledParameterWithOptions("simple", name, chi.URLParam(r, name), &id,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return 0, fmt.Errorf("invalid format for parameter %s: %w", name, err)
	}
	return id, nil
}

// queryDate binds an optional YYYY-MM-DD query parameter.
// It returns nil when the parameter is absent.
func queryDate(r *http.Request, name string) (*openapi_types.Date, error) {
	var d *openapi_types.Date
	if err := runtime.BindQueryParameter("form", true, false, name, r.URL.Query(), &d); err != nil {
		return nil, fmt.Errorf("invalid format for parameter %s: %w", name, err)
	}
	return d, nil
}

// decodeJSON decodes the request body into v. An empty body is an error.
func decodeJSON(r *http.Request, v any) error {
	if r.Body == nil || r.Body == http.NoBody {
		return errors.New("request body is required")
	}
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return fmt.Errorf("malformed request body: %w", err)
	}
	return nil
}

// formPhoto returns the uploaded "photo" part, or nil when none was sent.
// The caller must close the returned file when it is non-nil.
func formPhoto(r *http.Request) (*domain.Photo, multipart.File, error) {
	f, hdr, err := r.FormFile("photo")
	if errors.Is(err, http.ErrMissingFile) {
		return nil, nil, nil
	}
	if err != nil {
		return nil, nil, fmt.Errorf("read photo: %w", err)
	}
	return &domain.Photo{
		Name:        hdr.Filename,
		ContentType: hdr.Header.Get("Content-Type"),
		Size:        hdr.Size,
		Body:        f,
	}, f, nil
}

func formValue(r *http.Request, key string) string {
	return strings.TrimSpace(r.FormValue(key))
}
