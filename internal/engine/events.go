package engine

// EventType classifies what happened during a lock.
type EventType int

const (
	EventLock EventType = iota
	EventLinesCleared
	EventLevelUp
	EventGameOver
)

// String returns a short name for logging.
func (t EventType) String() string {
	switch t {
	case EventLock:
		return "lock"
	case EventLinesCleared:
		return "lines_cleared"
	case EventLevelUp:
		return "level_up"
	case EventGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// Event records a state transition the host may want to react to.
type Event struct {
	Type   EventType
	Kind   Kind // locked kind for EventLock, blocked kind for EventGameOver
	Rows   int  // rows cleared (EventLinesCleared)
	Points int  // points awarded by this event
	Level  int  // level after the event
	Score  int  // score after the event
}

// maxEvents bounds the queue when the host never drains it.
const maxEvents = 64

func (s *Session) emit(e Event) {
	e.Level = s.level
	e.Score = s.score
	if len(s.events) >= maxEvents {
		s.events = append(s.events[:0], s.events[1:]...)
	}
	s.events = append(s.events, e)
}

// DrainEvents returns the queued events in order and empties the queue.
func (s *Session) DrainEvents() []Event {
	if len(s.events) == 0 {
		return nil
	}
	out := s.events
	s.events = nil
	return out
}
