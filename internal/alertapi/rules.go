package alertapi

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/linnemanlabs/harken/internal/rules"
)

func (a *API) handleListRules(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"rules": a.svc.Rules()})
}

func (a *API) handleGetRule(w http.ResponseWriter, r *http.Request) {
	category := chi.URLParam(r, "category")

	rule, ok := a.svc.Rule(category)
	if !ok {
		http.Error(w, `{"error":"unknown category"}`, http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, rule)
}

// handleSetRule installs an externally supplied rule override for one
// category. The rule is validated before it reaches the engine; invalid
// rules never enter the hot path.
func (a *API) handleSetRule(w http.ResponseWriter, r *http.Request) {
	category := chi.URLParam(r, "category")

	if _, ok := a.svc.Rule(category); !ok {
		http.Error(w, `{"error":"unknown category"}`, http.StatusNotFound)
		return
	}

	var rule rules.Rule
	if err := json.NewDecoder(r.Body).Decode(&rule); err != nil {
		http.Error(w, `{"error":"invalid payload"}`, http.StatusBadRequest)
		return
	}
	rule.Category = category

	if err := a.svc.SetRule(rule); err != nil {
		a.logger.Warn(r.Context(), "rejected rule override", "category", category, "error", err)
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": err.Error()})
		return
	}

	a.logger.Info(r.Context(), "rule overridden", "category", category)
	writeJSON(w, http.StatusOK, rule)
}
