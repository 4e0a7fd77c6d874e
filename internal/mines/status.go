package mines

import "encoding/json"

// Status is the board lifecycle state. The machine moves BeforeStart →
// Running on the first successful open, then Running → Victory or GameOver.
// Reset returns to BeforeStart from any state.
type Status int8

const (
	BeforeStart Status = iota
	Running
	Victory
	GameOver
)

func (s Status) String() string {
	switch s {
	case BeforeStart:
		return "before_start"
	case Running:
		return "running"
	case Victory:
		return "victory"
	case GameOver:
		return "game_over"
	}
	return "unknown"
}

// Terminal reports whether no further moves are accepted.
func (s Status) Terminal() bool {
	return s == Victory || s == GameOver
}

// [Status] implements [json.Marshaler]
func (s Status) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// OnStatusChange registers fn to be called on every status transition,
// including Reset back to BeforeStart. This notification is the board's
// only outbound side effect.
func (b *Board) OnStatusChange(fn func(Status)) {
	b.onStatus = fn
}

func (b *Board) setStatus(s Status) {
	b.status = s
	if b.onStatus != nil {
		b.onStatus(s)
	}
}
