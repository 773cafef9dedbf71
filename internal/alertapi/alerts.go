package alertapi

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/linnemanlabs/harken/internal/sound"
)

func (a *API) handleActiveAlerts(w http.ResponseWriter, r *http.Request) {
	alerts := a.svc.ActiveAlerts()
	if alerts == nil {
		alerts = []sound.Event{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"alerts": alerts})
}

func (a *API) handleTopAlert(w http.ResponseWriter, r *http.Request) {
	top, ok := a.svc.TopActiveAlert()
	if !ok {
		http.Error(w, `{"error":"no active alerts"}`, http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, top)
}

func (a *API) handleClearOne(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	span := trace.SpanFromContext(r.Context())
	span.SetAttributes(attribute.String("harken.alert.id", id))

	if !a.svc.ClearAlert(id) {
		http.Error(w, `{"error":"not found"}`, http.StatusNotFound)
		return
	}
	a.logger.Info(r.Context(), "alert cleared by client", "id", id)
	w.WriteHeader(http.StatusNoContent)
}

func (a *API) handleClearAll(w http.ResponseWriter, r *http.Request) {
	a.svc.ClearAllAlerts()
	a.logger.Info(r.Context(), "all alerts cleared by client")
	w.WriteHeader(http.StatusNoContent)
}

func (a *API) handleHistory(w http.ResponseWriter, r *http.Request) {
	history := a.svc.History()
	if history == nil {
		history = []sound.Event{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"history": history})
}

func (a *API) handleRecentEvents(w http.ResponseWriter, r *http.Request) {
	limit := 100
	if s := r.URL.Query().Get("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n <= 0 {
			http.Error(w, `{"error":"invalid limit"}`, http.StatusBadRequest)
			return
		}
		limit = n
	}

	events, err := a.svc.RecentEvents(r.Context(), limit)
	if err != nil {
		a.logger.Error(r.Context(), err, "failed to read recent events")
		http.Error(w, `{"error":"internal error"}`, http.StatusInternalServerError)
		return
	}
	if events == nil {
		events = []*sound.Event{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"events": events})
}
