package http

import (
	"net/http"

	"github.com/lamalex/odu-grants/internal/grants/service"
	"github.com/lamalex/odu-grants/pkg/httpx"
)

// GrantsListHandler serves the caller's own grants.
type GrantsListHandler struct {
	GrantService *service.GrantService
}

func (h *GrantsListHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	claims, ok := requestClaims(ctx, w)
	if !ok {
		return
	}

	grants, err := h.GrantService.ListForUser(ctx, claims)
	if err != nil {
		writeServiceError(ctx, w, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toGrantResponses(grants))
}

// AdminGrantsListHandler serves the grants the administrator oversees.
type AdminGrantsListHandler struct {
	GrantService *service.GrantService
}

func (h *AdminGrantsListHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	claims, ok := requestClaims(ctx, w)
	if !ok {
		return
	}

	grants, err := h.GrantService.ListAdministered(ctx, claims)
	if err != nil {
		writeServiceError(ctx, w, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toGrantResponses(grants))
}
