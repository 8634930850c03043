package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/lamalex/odu-grants/internal/grants/domain"
	"github.com/lamalex/odu-grants/internal/grants/service"
	"github.com/lamalex/odu-grants/pkg/httpx"
	"github.com/lamalex/odu-grants/pkg/jwtx"
	"github.com/lamalex/odu-grants/pkg/slogx"
)

// writeServiceError maps a service error onto the wire. Business errors carry
// their message; anything unrecognized is a storage or programming fault and
// goes out as an opaque 500 so internals never leak.
func writeServiceError(ctx context.Context, w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, jwtx.ErrInvalidToken):
		httpx.WriteError(w, http.StatusUnauthorized, "invalid_token", "token verification failed")
	case errors.Is(err, service.ErrUnauthorized):
		httpx.WriteError(w, http.StatusForbidden, "unauthorized", service.ErrUnauthorized.Error())
	case errors.Is(err, service.ErrUserNotFound):
		httpx.WriteError(w, http.StatusNotFound, "user_not_found", service.ErrUserNotFound.Error())
	case errors.Is(err, service.ErrGrantNotFound):
		httpx.WriteError(w, http.StatusNotFound, "grant_not_found", service.ErrGrantNotFound.Error())
	case errors.Is(err, service.ErrDepartmentNotFound):
		httpx.WriteError(w, http.StatusNotFound, "department_not_found", service.ErrDepartmentNotFound.Error())
	case errors.Is(err, service.ErrIncorrectPassword):
		httpx.WriteError(w, http.StatusUnauthorized, "incorrect_password", service.ErrIncorrectPassword.Error())
	case errors.Is(err, service.ErrEmailExists):
		httpx.WriteError(w, http.StatusConflict, "email_exists", service.ErrEmailExists.Error())
	case errors.Is(err, service.ErrInvitationMismatch):
		httpx.WriteError(w, http.StatusBadRequest, "invitation_mismatch", service.ErrInvitationMismatch.Error())
	case errors.Is(err, domain.ErrUnknownStatus):
		httpx.WriteError(w, http.StatusBadRequest, "unknown_status", "status must be APPROVE, DENY, or PENDING")
	case errors.Is(err, service.ErrInvalidRequest):
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", err.Error())
	default:
		slogx.FromContext(ctx).Error("request failed", "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, "server_error", "internal server error")
	}
}

func writeBadJSON(w http.ResponseWriter) {
	httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
}

// requestClaims pulls the verified claims the authentication middleware
// attached. A miss means the route was wired without AuthnMiddleware.
func requestClaims(ctx context.Context, w http.ResponseWriter) (jwtx.Claims, bool) {
	claims, ok := httpx.ClaimsFromContext(ctx)
	if !ok {
		httpx.WriteError(w, http.StatusUnauthorized, "invalid_token", "authentication required")
		return jwtx.Claims{}, false
	}
	return claims, true
}
