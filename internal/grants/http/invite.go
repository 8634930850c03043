package http

import (
	"encoding/json"
	"net/http"

	"github.com/lamalex/odu-grants/internal/grants/service"
	"github.com/lamalex/odu-grants/pkg/httpx"
)

type InviteHandler struct {
	AuthService *service.AuthService
}

func (h *InviteHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	claims, ok := requestClaims(ctx, w)
	if !ok {
		return
	}

	var req inviteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadJSON(w)
		return
	}
	if req.Email == "" {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "email is required")
		return
	}
	if req.Department == "" {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "department is required")
		return
	}

	err := h.AuthService.SendInvite(ctx, claims, service.InviteInput{
		Email:         req.Email,
		Name:          req.Name,
		DepartmentID:  req.Department,
		StartupAmount: req.StartupAmount,
	})
	if err != nil {
		writeServiceError(ctx, w, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, okResponse{OK: true})
}
