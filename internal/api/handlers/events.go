package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gatherly/server/internal/api/middleware"
	"github.com/gatherly/server/internal/api/problem"
	"github.com/gatherly/server/internal/domain/events"
	"github.com/gatherly/server/internal/metrics"
)

type EventsHandler struct {
	Service *events.Service
	Env     string
}

func NewEventsHandler(service *events.Service, env string) *EventsHandler {
	return &EventsHandler{Service: service, Env: env}
}

type listResponse struct {
	Items []events.Event `json:"items"`
	Total int            `json:"total"`
}

func (h *EventsHandler) List(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.Service == nil {
		problem.Write(w, r, http.StatusInternalServerError, "https://gatherly.dev/problems/server-error", "Server error", nil, h.Env)
		return
	}

	filters, err := events.ParseFilters(r.URL.Query())
	if err != nil {
		problem.Write(w, r, http.StatusBadRequest, "https://gatherly.dev/problems/validation-error", "Invalid request", err, h.Env)
		return
	}

	items, err := h.Service.List(r.Context(), filters)
	if err != nil {
		problem.Write(w, r, http.StatusInternalServerError, "https://gatherly.dev/problems/server-error", "Server error", err, h.Env)
		return
	}
	if items == nil {
		items = []events.Event{}
	}

	writeJSON(w, http.StatusOK, listResponse{Items: items, Total: len(items)})
}

func (h *EventsHandler) Get(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.Service == nil {
		problem.Write(w, r, http.StatusInternalServerError, "https://gatherly.dev/problems/server-error", "Server error", nil, h.Env)
		return
	}

	event, err := h.Service.Get(r.Context(), pathParam(r, "id"))
	if err != nil {
		if errors.Is(err, events.ErrEventNotFound) {
			problem.Write(w, r, http.StatusNotFound, "https://gatherly.dev/problems/not-found", "Not found", err, h.Env)
			return
		}
		problem.Write(w, r, http.StatusInternalServerError, "https://gatherly.dev/problems/server-error", "Server error", err, h.Env)
		return
	}

	writeJSON(w, http.StatusOK, event)
}

func (h *EventsHandler) Create(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.Service == nil {
		problem.Write(w, r, http.StatusInternalServerError, "https://gatherly.dev/problems/server-error", "Server error", nil, h.Env)
		return
	}

	user := middleware.UserFromContext(r.Context())
	if user == nil {
		problem.Write(w, r, http.StatusUnauthorized, "https://gatherly.dev/problems/unauthorized", "Unauthorized", nil, h.Env)
		return
	}

	var input events.EventInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		problem.Write(w, r, http.StatusBadRequest, "https://gatherly.dev/problems/validation-error", "Invalid request", err, h.Env)
		return
	}

	event, err := h.Service.Create(r.Context(), user.ID, input)
	if err != nil {
		var vErr events.ValidationError
		if errors.As(err, &vErr) {
			problem.Write(w, r, http.StatusBadRequest, "https://gatherly.dev/problems/validation-error", "Invalid request", err, h.Env,
				problem.WithErrors(map[string]interface{}{vErr.Field: vErr.Message}))
			return
		}
		problem.Write(w, r, http.StatusInternalServerError, "https://gatherly.dev/problems/server-error", "Server error", err, h.Env)
		return
	}

	metrics.EventsCreated.Inc()
	writeJSON(w, http.StatusCreated, event)
}

// RSVP admits the authenticated user to the event in the path.
func (h *EventsHandler) RSVP(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.Service == nil {
		problem.Write(w, r, http.StatusInternalServerError, "https://gatherly.dev/problems/server-error", "Server error", nil, h.Env)
		return
	}

	user := middleware.UserFromContext(r.Context())
	if user == nil {
		problem.Write(w, r, http.StatusUnauthorized, "https://gatherly.dev/problems/unauthorized", "Unauthorized", nil, h.Env)
		return
	}

	rsvp, err := h.Service.RSVP(r.Context(), pathParam(r, "id"), user.ID)
	if err != nil {
		switch {
		case errors.Is(err, events.ErrEventNotFound):
			metrics.RSVPAdmissions.WithLabelValues("not_found").Inc()
			problem.Write(w, r, http.StatusNotFound, "https://gatherly.dev/problems/not-found", "Not found", err, h.Env)
		case errors.Is(err, events.ErrDuplicateRSVP):
			metrics.RSVPAdmissions.WithLabelValues("duplicate").Inc()
			problem.Write(w, r, http.StatusBadRequest, "https://gatherly.dev/problems/duplicate-rsvp", "Already registered", err, h.Env)
		case errors.Is(err, events.ErrEventFull):
			metrics.RSVPAdmissions.WithLabelValues("full").Inc()
			problem.Write(w, r, http.StatusBadRequest, "https://gatherly.dev/problems/event-full", "Event full", err, h.Env)
		default:
			metrics.RSVPAdmissions.WithLabelValues("error").Inc()
			problem.Write(w, r, http.StatusInternalServerError, "https://gatherly.dev/problems/server-error", "Server error", err, h.Env)
		}
		return
	}

	metrics.RSVPAdmissions.WithLabelValues("accepted").Inc()
	writeJSON(w, http.StatusCreated, rsvp)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func pathParam(r *http.Request, key string) string {
	if r == nil {
		return ""
	}
	return r.PathValue(key)
}
