package http

import (
	"net/http"

	"github.com/lamalex/odu-grants/internal/grants/domain"
	"github.com/lamalex/odu-grants/internal/grants/service"
	"github.com/lamalex/odu-grants/pkg/httpx"
)

type DepartmentsHandler struct {
	DepartmentService *service.DepartmentService
}

type departmentResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func (h *DepartmentsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	claims, ok := requestClaims(ctx, w)
	if !ok {
		return
	}

	departments, err := h.DepartmentService.ListDepartments(ctx, claims)
	if err != nil {
		writeServiceError(ctx, w, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toDepartmentResponses(departments))
}

func toDepartmentResponses(departments []domain.Department) []departmentResponse {
	out := make([]departmentResponse, 0, len(departments))
	for _, d := range departments {
		out = append(out, departmentResponse{ID: d.ID, Name: d.Name})
	}
	return out
}
