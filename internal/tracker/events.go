package tracker

type EventKind int

const (
	// EventFeedback marks a task the user just touched.
	EventFeedback EventKind = iota
	// EventProgress means aggregates changed and the view should redraw.
	EventProgress
	// EventSectionCompleted fires each time a section becomes complete.
	EventSectionCompleted
	// EventNotification carries a user-visible confirmation message.
	EventNotification
)

func (k EventKind) String() string {
	switch k {
	case EventFeedback:
		return "feedback"
	case EventProgress:
		return "progress"
	case EventSectionCompleted:
		return "section_completed"
	case EventNotification:
		return "notification"
	default:
		return "unknown"
	}
}

// Event is delivered synchronously to listeners during Hydrate, Set and
// Reset. Section and Index are -1 when the event is not about one task.
type Event struct {
	Kind    EventKind
	Section int
	Index   int
	Message string
}

type Listener interface {
	OnEvent(Event)
}

type ListenerFunc func(Event)

func (f ListenerFunc) OnEvent(e Event) { f(e) }

// Recorder collects events; callers drain it after each operation.
type Recorder struct {
	Events []Event
}

func (r *Recorder) OnEvent(e Event) { r.Events = append(r.Events, e) }

// Drain returns the collected events and empties the recorder.
func (r *Recorder) Drain() []Event {
	out := r.Events
	r.Events = nil
	return out
}

func (t *Tracker) emit(e Event) {
	for _, l := range t.listeners {
		l.OnEvent(e)
	}
}
