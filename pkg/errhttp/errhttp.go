// Package errhttp maps domain sentinel errors to HTTP status codes and the
// public message written in the error envelope.
// Add a case to classify for each new domain sentinel error.
package errhttp

import (
	"errors"
	"net/http"

	"github.com/ghuser/inventory/pkg/auth"
	"github.com/ghuser/inventory/pkg/httpx"
	"github.com/ghuser/inventory/pkg/logger"
	"github.com/ghuser/inventory/pkg/telemetry"
	categorydomain "github.com/ghuser/inventory/services/category/domain"
	productdomain "github.com/ghuser/inventory/services/product/domain"
	userdomain "github.com/ghuser/inventory/services/user/domain"
)

// Public messages for mapped errors.
const (
	MsgProductNotFound    = "Product not found"
	MsgDuplicateName      = "Product with this name already exists"
	MsgUnknownCategory    = "One or more categories do not exist"
	MsgCategoryNotFound   = "Category not found"
	MsgUserNotFound       = "User not found"
	MsgEmailTaken         = "User already exists"
	MsgInvalidCredentials = "Invalid email or password"
	MsgNotAuthorized      = "Not authorized"
)

// WriteError maps err to a status and writes {success:false, message}.
// Uses errors.Is() so wrapped sentinel errors are matched correctly.
// Unrecognized errors become 500 with a generic message; the real error is
// logged and reported to Sentry, never sent to the client.
func WriteError(w http.ResponseWriter, r *http.Request, err error, log logger.Logger) {
	status, msg := classify(err)
	if status == http.StatusInternalServerError {
		if log != nil {
			log.ErrorContext(r.Context(), "request failed",
				"method", r.Method,
				"path", r.URL.Path,
				"error", err,
			)
		}
		telemetry.CaptureError(r.Context(), err)
	}
	httpx.Fail(w, status, msg)
}

// classify returns the status and public message for err.
func classify(err error) (int, string) {
	switch {
	case errors.Is(err, productdomain.ErrProductNotFound):
		return http.StatusNotFound, MsgProductNotFound
	case errors.Is(err, categorydomain.ErrCategoryNotFound):
		return http.StatusNotFound, MsgCategoryNotFound
	case errors.Is(err, userdomain.ErrUserNotFound):
		return http.StatusNotFound, MsgUserNotFound

	case errors.Is(err, productdomain.ErrDuplicateName):
		return http.StatusBadRequest, MsgDuplicateName
	case errors.Is(err, productdomain.ErrUnknownCategory):
		return http.StatusBadRequest, MsgUnknownCategory
	case errors.Is(err, userdomain.ErrEmailTaken):
		return http.StatusBadRequest, MsgEmailTaken
	case errors.Is(err, productdomain.ErrInvalidProduct),
		errors.Is(err, userdomain.ErrInvalidUser):
		return http.StatusBadRequest, err.Error()

	case errors.Is(err, userdomain.ErrInvalidCredentials):
		return http.StatusUnauthorized, MsgInvalidCredentials
	case errors.Is(err, auth.ErrUnauthenticated),
		errors.Is(err, auth.ErrInvalidToken):
		return http.StatusUnauthorized, MsgNotAuthorized

	default:
		return http.StatusInternalServerError, httpx.InternalErrorMessage
	}
}
