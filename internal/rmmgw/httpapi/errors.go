package httpapi

import (
	"net/http"

	"github.com/usnistgov/rmm-go/internal/rmmgw/apierr"
)

// ErrorInfo is the uniform error response shape (spec.md §3, §6).
type ErrorInfo struct {
	URL        string `json:"url"`
	Message    string `json:"message"`
	HTTPStatus int    `json:"httpStatus"`
}

// statusFor maps an apierr.Kind to its HTTP status (spec.md §4.8, §7).
// This is the only place a kind is translated to a status code.
func statusFor(kind apierr.Kind) int {
	switch kind {
	case apierr.InvalidArgument, apierr.MalformedStoreQuery:
		return http.StatusBadRequest
	case apierr.ResourceNotFound, apierr.ResourceEmpty:
		return http.StatusNotFound
	case apierr.StoreFailure, apierr.InternalError:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}

// notFound builds a ResourceNotFound error naming the lookup field.
func notFound(field string) error {
	return apierr.New(apierr.ResourceNotFound, "no document matches id").WithParam(field)
}

// errorInfoFor builds the ErrorInfo envelope for err, classifying it as
// apierr.InternalError when it is not already a classified *apierr.Error.
func errorInfoFor(url string, err error) ErrorInfo {
	e, ok := apierr.As(err)
	if !ok {
		e = apierr.Wrap(apierr.InternalError, err, "unexpected error")
	}
	return ErrorInfo{
		URL:        url,
		Message:    e.Error(),
		HTTPStatus: statusFor(e.Kind),
	}
}
