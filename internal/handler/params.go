package handler

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/oapi-codegen/runtime"

	"github.com/pkordes/travel-log/internal/domain"
)

// travelID binds the {id} path parameter. ok is false for anything that is
// not a positive integer; callers treat that as "not found".
func travelID(r *http.Request) (id int64, ok bool) {
	err := runtime.BindStyledParameterWithOptions("simple", "id", chi.URLParam(r, "id"), &id,
		runtime.BindStyledParameterOptions{
			ParamLocation: runtime.ParamLocationPath,
			Explode:       false,
			Required:      true,
		})
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// queryString binds an optional query parameter. Missing or malformed values
// (e.g. the key repeated) come back as "".
func queryString(r *http.Request, name string) string {
	var v *string
	if err := runtime.BindQueryParameter("form", true, false, name, r.URL.Query(), &v); err != nil || v == nil {
		return ""
	}
	return *v
}

// listParams reads ?sort= and ?order=. Unknown values fall back to year/desc.
func listParams(r *http.Request) domain.ListParams {
	return domain.NewListParams(queryString(r, "sort"), queryString(r, "order"))
}

// formInput parses the travel form fields from a POST body.
func formInput(r *http.Request) (domain.TravelInput, error) {
	if err := r.ParseForm(); err != nil {
		return domain.TravelInput{}, err
	}
	return domain.TravelInput{
		City:        r.PostForm.Get("city"),
		Country:     r.PostForm.Get("country"),
		Year:        r.PostForm.Get("year"),
		Description: r.PostForm.Get("description"),
		Latitude:    r.PostForm.Get("latitude"),
		Longitude:   r.PostForm.Get("longitude"),
	}, nil
}

// formErrorMessage maps a ParseForm failure to a user-facing message and status.
func formErrorMessage(err error) (int, string) {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return http.StatusRequestEntityTooLarge, msgFormTooLarge
	}
	return http.StatusBadRequest, msgBadForm
}
