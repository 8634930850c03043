package http

import (
	"net/http"

	"github.com/lamalex/odu-grants/internal/grants/service"
	"github.com/lamalex/odu-grants/pkg/httpx"
)

type FacultyHandler struct {
	FacultyService *service.FacultyService
}

// HandleList returns active faculty in the administrator's department.
func (h *FacultyHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	claims, ok := requestClaims(ctx, w)
	if !ok {
		return
	}

	faculty, err := h.FacultyService.ListFaculty(ctx, claims)
	if err != nil {
		writeServiceError(ctx, w, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, faculty)
}

// HandleDelete soft-deletes a faculty member by id.
func (h *FacultyHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	claims, ok := requestClaims(ctx, w)
	if !ok {
		return
	}

	userID := r.PathValue("id")
	if userID == "" {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "user id is required")
		return
	}

	if err := h.FacultyService.DeleteFaculty(ctx, claims, userID); err != nil {
		writeServiceError(ctx, w, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, okResponse{OK: true})
}
