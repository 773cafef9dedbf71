package sound

import "time"

// Event is an immutable record of one alert firing. At and Duration are in
// session seconds (the classifier's monotonic clock); CreatedAt is wall
// clock so events remain meaningful once persisted across sessions.
type Event struct {
	ID         string    `json:"id"`
	Category   string    `json:"category"`
	Tier       Tier      `json:"tier"`
	At         float64   `json:"at"`
	Confidence float64   `json:"confidence"`
	Duration   float64   `json:"duration,omitempty"` // fire-to-clear, 0 until deactivated
	CreatedAt  time.Time `json:"created_at"`
}

// Frame is one classification result from the external sound classifier:
// a probability per category plus the two top-scoring labels from the same
// distribution. Time is seconds since session start, monotonically
// non-decreasing. Categories absent from Probs are treated as probability 0.
type Frame struct {
	Time  float64            `json:"time"`
	Probs map[string]float64 `json:"probs"`
	Top   Top2               `json:"top"`
}

// Top2 carries the top-1 and top-2 label/score pairs used by the global
// uncertainty gate.
type Top2 struct {
	Label1 string  `json:"label1"`
	Score1 float64 `json:"score1"`
	Label2 string  `json:"label2"`
	Score2 float64 `json:"score2"`
}
