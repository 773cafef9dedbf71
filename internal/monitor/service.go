// Package monitor provides the business boundary around the alert engine.
// The Service owns one Engine, enforces the single-writer frame contract,
// and dispatches fired events to storage and notification off the hot path.
package monitor

import (
	"context"
	"sync"

	"github.com/linnemanlabs/go-core/log"
	"github.com/linnemanlabs/go-core/xerrors"
	"github.com/linnemanlabs/harken/internal/engine"
	"github.com/linnemanlabs/harken/internal/profile"
	"github.com/linnemanlabs/harken/internal/rules"
	"github.com/linnemanlabs/harken/internal/sound"
)

// ErrTimeRegression is returned when a frame's timestamp is earlier than a
// previously processed frame. Monotonic time is a precondition of the
// engine's cooldown and debounce math, enforced here at the boundary.
var ErrTimeRegression = xerrors.New("frame time regressed")

// Service serializes access to the engine. The engine has no internal
// locking; every engine call goes through s.mu.
type Service struct {
	mu     sync.Mutex
	engine *engine.Engine

	lastTime float64
	hasTime  bool

	store    Store
	notifier Notifier
	metrics  *engine.Metrics
	logger   log.Logger
}

// New creates a monitor service around an engine. store and notifier may be
// nil; metrics may be nil.
func New(eng *engine.Engine, store Store, notifier Notifier, metrics *engine.Metrics, logger log.Logger) *Service {
	if eng == nil {
		panic(xerrors.New("engine is required"))
	}
	if logger == nil {
		logger = log.Nop()
	}
	return &Service{
		engine:   eng,
		store:    store,
		notifier: notifier,
		metrics:  metrics,
		logger:   logger,
	}
}

// ProcessFrame feeds one classification frame through the engine and
// returns copies of the events that fired. Probabilities and top scores are
// clamped to [0,1] here; the engine assumes clean input.
func (s *Service) ProcessFrame(ctx context.Context, fr sound.Frame) ([]sound.Event, error) {
	s.mu.Lock()

	if s.hasTime && fr.Time < s.lastTime {
		s.mu.Unlock()
		return nil, ErrTimeRegression
	}
	s.lastTime = fr.Time
	s.hasTime = true

	probs := make(map[string]float64, len(fr.Probs))
	for cat, p := range fr.Probs {
		probs[cat] = clamp01(p)
	}
	top := fr.Top
	top.Score1 = clamp01(top.Score1)
	top.Score2 = clamp01(top.Score2)

	firedCats := s.engine.ProcessFrame(fr.Time, probs, top)

	var fired []sound.Event
	if len(firedCats) > 0 {
		byCat := make(map[string]bool, len(firedCats))
		for _, c := range firedCats {
			byCat[c] = true
		}
		for _, ev := range s.engine.ActiveAlerts() {
			if byCat[ev.Category] && ev.At == fr.Time {
				fired = append(fired, ev)
			}
		}
	}
	s.mu.Unlock()

	// Storage and notification run off the frame path; a slow webhook must
	// never delay the next frame.
	for i := range fired {
		ev := fired[i]
		go s.dispatch(context.WithoutCancel(ctx), &ev)
	}

	return fired, nil
}

func (s *Service) dispatch(ctx context.Context, ev *sound.Event) {
	L := s.logger.With("event_id", ev.ID, "category", ev.Category, "tier", ev.Tier.String())

	if s.store != nil {
		if err := s.store.Append(ctx, ev); err != nil {
			L.Error(ctx, err, "failed to persist alert event")
		}
	}
	if s.notifier != nil {
		if err := s.notifier.Notify(ctx, ev); err != nil {
			L.Error(ctx, err, "failed to notify alert event")
		}
	}
}

// ActiveAlerts returns the tier-sorted active alert list.
func (s *Service) ActiveAlerts() []sound.Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine.ActiveAlerts()
}

// TopActiveAlert returns the highest-priority active alert, if any.
func (s *Service) TopActiveAlert() (sound.Event, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine.TopActiveAlert()
}

// History returns the engine's bounded in-session fire history.
func (s *Service) History() []sound.Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine.History()
}

// RecentEvents returns persisted events from the store, newest first.
func (s *Service) RecentEvents(ctx context.Context, limit int) ([]*sound.Event, error) {
	if s.store == nil {
		return nil, nil
	}
	return s.store.Recent(ctx, limit)
}

// ClearAlert removes one active alert by event ID.
func (s *Service) ClearAlert(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine.ClearAlert(id)
}

// ClearAllAlerts empties the active alert list.
func (s *Service) ClearAllAlerts() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.engine.ClearAllAlerts()
}

// ChangeProfile switches to a named sensitivity level.
func (s *Service) ChangeProfile(level profile.Level) error {
	if !level.Valid() {
		return xerrors.New("invalid sensitivity level")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.engine.ChangeProfile(level)
	if s.metrics != nil {
		s.metrics.ProfileChangesTotal.WithLabelValues(string(level)).Inc()
	}
	return nil
}

// ChangeProfileValue maps a continuous sensitivity value in [0,1] to the
// nearest level and applies it, returning the chosen level.
func (s *Service) ChangeProfileValue(v float64) profile.Level {
	level := profile.FromValue(v)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.engine.ChangeProfile(level)
	if s.metrics != nil {
		s.metrics.ProfileChangesTotal.WithLabelValues(string(level)).Inc()
	}
	return level
}

// Level returns the active sensitivity level.
func (s *Service) Level() profile.Level {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine.Level()
}

// Reset recreates per-category state between sessions. The frame clock
// restarts, so the monotonic-time guard resets too.
func (s *Service) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.engine.Reset()
	s.hasTime = false
	s.lastTime = 0
	if s.metrics != nil {
		s.metrics.SessionResetsTotal.Inc()
	}
}

// SetRule validates and installs a single category's rule override.
func (s *Service) SetRule(r rules.Rule) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine.SetRule(r)
}

// Rule returns the current rule for a category.
func (s *Service) Rule(category string) (rules.Rule, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine.Rule(category)
}

// Rules returns the full category→rule map.
func (s *Service) Rules() map[string]rules.Rule {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine.Rules()
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
