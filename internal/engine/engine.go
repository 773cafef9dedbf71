// Package engine implements the stateful alert decision core. One Engine
// consumes classification frames serially and decides, per sound category,
// whether an alert fires, stays active, or clears.
package engine

import (
	"context"
	"sort"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/linnemanlabs/go-core/log"
	"github.com/linnemanlabs/harken/internal/profile"
	"github.com/linnemanlabs/harken/internal/rules"
	"github.com/linnemanlabs/harken/internal/sound"
)

// maxHistory bounds the fired-event history; oldest entries are evicted.
const maxHistory = 100

// Engine is the per-category alert processor. It owns all mutable state and
// performs no I/O. It is not safe for concurrent use: the host must invoke
// ProcessFrame (and all other methods) from a single goroutine or under an
// external lock.
type Engine struct {
	level  profile.Level
	cfg    profile.Config
	rules  map[string]rules.Rule
	states map[string]*state

	active  []*sound.Event
	history []*sound.Event

	logger log.Logger
	hooks  Hooks
}

// New creates an engine at the given sensitivity level with one rule and
// one fresh state per catalog category.
func New(level profile.Level, logger log.Logger, hooks Hooks) *Engine {
	if logger == nil {
		logger = log.Nop()
	}
	e := &Engine{
		logger: logger,
		hooks:  hooks,
	}
	e.applyProfile(level)
	return e
}

func (e *Engine) applyProfile(level profile.Level) {
	e.level = level
	e.cfg = profile.ConfigFor(level)
	e.rules = rules.Generate(level)
	e.rebuildStates()
}

// rebuildStates discards all per-category state and clears active alerts.
// Stale smoothing or ring data must never leak across a rule change.
func (e *Engine) rebuildStates() {
	e.states = make(map[string]*state, len(e.rules))
	for cat, r := range e.rules {
		e.states[cat] = newState(r)
	}
	e.active = nil
}

// ProcessFrame consumes one classification frame and returns the categories
// that fired. Frame times must be monotonically non-decreasing across
// calls; that is a host precondition, not checked here.
func (e *Engine) ProcessFrame(t float64, probs map[string]float64, top sound.Top2) []string {
	uncertain := top.Score1 < e.cfg.UncertaintyThreshold ||
		top.Score1-top.Score2 < e.cfg.UncertaintyDifference

	var fired []string
	for cat, r := range e.rules {
		st := e.states[cat]

		// Dormant during cooldown: no smoothing, no ring updates.
		if t < st.cooldownUntil {
			continue
		}

		p := probs[cat] // absent category reads as 0, not skipped

		alpha := r.FrameHz / (r.FrameHz + 1)
		st.ema = alpha*p + (1-alpha)*st.ema

		if r.Windowed {
			// Uncertain frames dilute the window instead of feeding it.
			sample := p
			if uncertain {
				sample = 0
			}
			st.ring.push(sample)
		} else {
			// Hysteresis debounce: track the first frame the EMA crossed
			// On; any dip below On forfeits the accumulated time.
			if st.ema >= r.On {
				if !st.aboveOnSet {
					st.aboveOnSince = t
					st.aboveOnSet = true
				}
			} else {
				st.aboveOnSet = false
			}
		}

		if !uncertain && !st.active && e.shouldFire(r, st, t) {
			ev := e.fire(r, st, t)
			fired = append(fired, cat)
			if e.hooks.OnFire != nil {
				e.hooks.OnFire(ev)
			}
		} else if st.active && st.ema <= r.Off {
			e.deactivate(cat, st, t)
		}
	}

	if len(fired) > 0 {
		e.sortActive()
	}
	if e.hooks.OnFrame != nil {
		e.hooks.OnFrame(uncertain, len(fired))
	}
	return fired
}

func (e *Engine) shouldFire(r rules.Rule, st *state, t float64) bool {
	if r.Windowed {
		return st.ring.full() && st.ring.mean() >= r.WindowThresh
	}
	return st.aboveOnSet && t-st.aboveOnSince >= r.DebounceSec
}

func (e *Engine) fire(r rules.Rule, st *state, t float64) *sound.Event {
	confidence := st.ema
	if r.Windowed {
		confidence = st.ring.mean()
	}

	ev := &sound.Event{
		ID:         ulid.Make().String(),
		Category:   r.Category,
		Tier:       r.Tier,
		At:         t,
		Confidence: confidence,
		CreatedAt:  time.Now(),
	}

	st.active = true
	st.cooldownUntil = t + r.CooldownSec
	st.aboveOnSet = false
	st.event = ev

	e.active = append(e.active, ev)
	e.history = append(e.history, ev)
	if len(e.history) > maxHistory {
		e.history = e.history[len(e.history)-maxHistory:]
	}

	e.logger.Info(context.Background(), "alert fired",
		"category", r.Category,
		"tier", r.Tier.String(),
		"confidence", confidence,
		"at", t,
	)
	return ev
}

func (e *Engine) deactivate(category string, st *state, t float64) {
	st.active = false
	if st.event != nil {
		st.event.Duration = t - st.event.At
		st.event = nil
	}
	e.removeActive(category)

	if e.hooks.OnDeactivate != nil {
		e.hooks.OnDeactivate(category, t)
	}
	e.logger.Info(context.Background(), "alert cleared", "category", category, "at", t)
}

func (e *Engine) removeActive(category string) {
	for i, ev := range e.active {
		if ev.Category == category {
			e.active = append(e.active[:i], e.active[i+1:]...)
			return
		}
	}
}

// sortActive keeps the active list ordered by descending tier priority,
// earliest fire first within a tier.
func (e *Engine) sortActive() {
	sort.SliceStable(e.active, func(i, j int) bool {
		if e.active[i].Tier != e.active[j].Tier {
			return e.active[i].Tier > e.active[j].Tier
		}
		return e.active[i].At < e.active[j].At
	})
}

// ClearAlert removes one alert from the active list by event ID. Cooldown,
// EMA, and ring state are untouched, so the category may re-fire once its
// cooldown elapses. Returns false if no active alert has that ID.
func (e *Engine) ClearAlert(id string) bool {
	for i, ev := range e.active {
		if ev.ID == id {
			if st, ok := e.states[ev.Category]; ok {
				st.active = false
				st.event = nil
			}
			e.active = append(e.active[:i], e.active[i+1:]...)
			return true
		}
	}
	return false
}

// ClearAllAlerts empties the active list, leaving all per-category state
// untouched.
func (e *Engine) ClearAllAlerts() {
	for _, ev := range e.active {
		if st, ok := e.states[ev.Category]; ok {
			st.active = false
			st.event = nil
		}
	}
	e.active = nil
}

// TopActiveAlert returns the highest-priority active alert, if any.
func (e *Engine) TopActiveAlert() (sound.Event, bool) {
	if len(e.active) == 0 {
		return sound.Event{}, false
	}
	return *e.active[0], true
}

// ActiveAlerts returns a copy of the active list, tier-sorted.
func (e *Engine) ActiveAlerts() []sound.Event {
	out := make([]sound.Event, len(e.active))
	for i, ev := range e.active {
		out[i] = *ev
	}
	return out
}

// History returns a copy of the fired-event history in chronological order.
func (e *Engine) History() []sound.Event {
	out := make([]sound.Event, len(e.history))
	for i, ev := range e.history {
		out[i] = *ev
	}
	return out
}

// ChangeProfile switches the sensitivity level: rules are regenerated, all
// per-category state is discarded, and active alerts are cleared. History
// is preserved.
func (e *Engine) ChangeProfile(level profile.Level) {
	e.applyProfile(level)
	e.logger.Info(context.Background(), "profile changed", "level", string(level))
}

// Reset recreates per-category state and clears active alerts between
// monitoring sessions. Rules and history are preserved.
func (e *Engine) Reset() {
	e.rebuildStates()
	e.logger.Info(context.Background(), "engine reset")
}

// SetRule replaces a single category's rule after validating it. The
// category's state is recreated, since ring capacity and thresholds may
// have changed.
func (e *Engine) SetRule(r rules.Rule) error {
	if err := r.Validate(); err != nil {
		return err
	}
	e.rules[r.Category] = r
	e.states[r.Category] = newState(r)
	e.removeActive(r.Category)
	return nil
}

// Rule returns the current rule for a category.
func (e *Engine) Rule(category string) (rules.Rule, bool) {
	r, ok := e.rules[category]
	return r, ok
}

// Rules returns a copy of the full category→rule map.
func (e *Engine) Rules() map[string]rules.Rule {
	out := make(map[string]rules.Rule, len(e.rules))
	for cat, r := range e.rules {
		out[cat] = r
	}
	return out
}

// Level returns the active sensitivity level.
func (e *Engine) Level() profile.Level {
	return e.level
}
