package alertapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/linnemanlabs/harken/internal/monitor"
	"github.com/linnemanlabs/harken/internal/sound"
)

func (a *API) handleIngestFrame(w http.ResponseWriter, r *http.Request) {
	var fr sound.Frame
	if err := json.NewDecoder(r.Body).Decode(&fr); err != nil {
		http.Error(w, `{"error":"invalid payload"}`, http.StatusBadRequest)
		return
	}
	if fr.Time < 0 {
		http.Error(w, `{"error":"negative frame time"}`, http.StatusBadRequest)
		return
	}

	fired, err := a.svc.ProcessFrame(r.Context(), fr)
	if err != nil {
		if errors.Is(err, monitor.ErrTimeRegression) {
			http.Error(w, `{"error":"frame time regressed"}`, http.StatusUnprocessableEntity)
			return
		}
		a.logger.Error(r.Context(), err, "failed to process frame", "time", fr.Time)
		http.Error(w, `{"error":"internal error"}`, http.StatusInternalServerError)
		return
	}

	span := trace.SpanFromContext(r.Context())
	span.SetAttributes(attribute.Int("harken.frame.fired", len(fired)))

	if fired == nil {
		fired = []sound.Event{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"fired": fired})
}
