// Package alertapi exposes the monitor service over HTTP: frame ingest
// from the classifier collaborator, alert reads for the presentation layer,
// and profile/rule/session commands.
package alertapi

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/linnemanlabs/go-core/log"
	"github.com/linnemanlabs/go-core/xerrors"

	"github.com/linnemanlabs/harken/internal/profile"
	"github.com/linnemanlabs/harken/internal/rules"
	"github.com/linnemanlabs/harken/internal/sound"
)

// MonitorService defines the business operations alertapi needs.
type MonitorService interface {
	ProcessFrame(ctx context.Context, fr sound.Frame) ([]sound.Event, error)
	ActiveAlerts() []sound.Event
	TopActiveAlert() (sound.Event, bool)
	History() []sound.Event
	RecentEvents(ctx context.Context, limit int) ([]*sound.Event, error)
	ClearAlert(id string) bool
	ClearAllAlerts()
	ChangeProfile(level profile.Level) error
	ChangeProfileValue(v float64) profile.Level
	Level() profile.Level
	Reset()
	SetRule(r rules.Rule) error
	Rule(category string) (rules.Rule, bool)
	Rules() map[string]rules.Rule
}

// API holds dependencies for HTTP handlers.
type API struct {
	logger log.Logger
	svc    MonitorService
}

// New creates a new API handler.
func New(logger log.Logger, svc MonitorService) *API {
	if logger == nil {
		logger = log.Nop()
	}
	if svc == nil {
		panic(xerrors.New("monitor service is required"))
	}
	return &API{
		logger: logger,
		svc:    svc,
	}
}

// RegisterRoutes attaches API endpoints to the router.
func (a *API) RegisterRoutes(r chi.Router) {
	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/frames", a.handleIngestFrame)

		r.Get("/alerts", a.handleActiveAlerts)
		r.Get("/alerts/top", a.handleTopAlert)
		r.Delete("/alerts", a.handleClearAll)
		r.Delete("/alerts/{id}", a.handleClearOne)

		r.Get("/history", a.handleHistory)
		r.Get("/events", a.handleRecentEvents)

		r.Get("/profile", a.handleGetProfile)
		r.Put("/profile", a.handleSetProfile)

		r.Get("/rules", a.handleListRules)
		r.Get("/rules/{category}", a.handleGetRule)
		r.Put("/rules/{category}", a.handleSetRule)

		r.Post("/reset", a.handleReset)
	})
}

func (a *API) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"level": a.svc.Level()})
}

// setProfileRequest selects a level either by name or by a continuous
// sensitivity value in [0,1]; name wins when both are present.
type setProfileRequest struct {
	Level string   `json:"level,omitempty"`
	Value *float64 `json:"value,omitempty"`
}

func (a *API) handleSetProfile(w http.ResponseWriter, r *http.Request) {
	var req setProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"invalid payload"}`, http.StatusBadRequest)
		return
	}

	var level profile.Level
	switch {
	case req.Level != "":
		parsed, err := profile.Parse(req.Level)
		if err != nil {
			http.Error(w, `{"error":"unknown sensitivity level"}`, http.StatusBadRequest)
			return
		}
		if err := a.svc.ChangeProfile(parsed); err != nil {
			http.Error(w, `{"error":"unknown sensitivity level"}`, http.StatusBadRequest)
			return
		}
		level = parsed
	case req.Value != nil:
		level = a.svc.ChangeProfileValue(*req.Value)
	default:
		http.Error(w, `{"error":"level or value is required"}`, http.StatusBadRequest)
		return
	}

	a.logger.Info(r.Context(), "profile changed", "level", string(level))
	writeJSON(w, http.StatusOK, map[string]any{"level": level})
}

func (a *API) handleReset(w http.ResponseWriter, r *http.Request) {
	a.svc.Reset()
	a.logger.Info(r.Context(), "session reset")
	w.WriteHeader(http.StatusNoContent)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
