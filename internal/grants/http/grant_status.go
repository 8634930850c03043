package http

import (
	"encoding/json"
	"net/http"

	"github.com/lamalex/odu-grants/internal/grants/service"
	"github.com/lamalex/odu-grants/pkg/httpx"
)

// GrantStatusHandler applies an administrator's status decision to a grant.
type GrantStatusHandler struct {
	GrantService *service.GrantService
}

type grantStatusResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

func (h *GrantStatusHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	claims, ok := requestClaims(ctx, w)
	if !ok {
		return
	}

	grantID := r.PathValue("id")
	if grantID == "" {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "grant id is required")
		return
	}

	var req statusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadJSON(w)
		return
	}

	grant, err := h.GrantService.UpdateStatus(ctx, claims, grantID, req.Status)
	if err != nil {
		writeServiceError(ctx, w, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, grantStatusResponse{
		ID:     grant.ID,
		Status: string(grant.Status),
	})
}
