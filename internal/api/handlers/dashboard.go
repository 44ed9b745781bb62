package handlers

import (
	"net/http"

	"github.com/gatherly/server/internal/api/problem"
	"github.com/gatherly/server/internal/domain/dashboard"
)

type DashboardHandler struct {
	Service *dashboard.Service
	Env     string
}

func NewDashboardHandler(service *dashboard.Service, env string) *DashboardHandler {
	return &DashboardHandler{Service: service, Env: env}
}

func (h *DashboardHandler) Summary(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.Service == nil {
		problem.Write(w, r, http.StatusInternalServerError, "https://gatherly.dev/problems/server-error", "Server error", nil, h.Env)
		return
	}

	summary, err := h.Service.Summary(r.Context())
	if err != nil {
		problem.Write(w, r, http.StatusInternalServerError, "https://gatherly.dev/problems/server-error", "Server error", err, h.Env)
		return
	}

	writeJSON(w, http.StatusOK, summary)
}
