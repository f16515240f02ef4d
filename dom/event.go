package dom

// Event is a synchronous DOM event.
type Event struct {
	Type          string
	Target        *Element
	CurrentTarget *Element
	Key           string
	ShiftKey      bool
	Bubbles       bool

	// Files carries the dragged files of drag and drop events.
	Files []File

	defaultPrevented bool
	stopped          bool
}

// nonBubbling lists the event types that are delivered to the target only.
var nonBubbling = map[string]struct{}{
	"focus":      {},
	"blur":       {},
	"pageshow":   {},
	"hashchange": {},
}

// NewEvent returns an event with the bubbling flag set for its type.
func NewEvent(eventType string) *Event {
	_, skip := nonBubbling[eventType]
	return &Event{Type: eventType, Bubbles: !skip}
}

// NewKeyEvent returns a keyboard event.
func NewKeyEvent(eventType, key string, shift bool) *Event {
	ev := NewEvent(eventType)
	ev.Key = key
	ev.ShiftKey = shift
	return ev
}

// NewDragEvent returns a drag and drop event carrying files.
func NewDragEvent(eventType string, files ...File) *Event {
	ev := NewEvent(eventType)
	ev.Files = append([]File(nil), files...)
	return ev
}

// PreventDefault cancels the default action.
func (e *Event) PreventDefault() {
	e.defaultPrevented = true
}

// DefaultPrevented reports whether PreventDefault was called.
func (e *Event) DefaultPrevented() bool {
	return e.defaultPrevented
}

// StopPropagation stops bubbling after the current target.
func (e *Event) StopPropagation() {
	e.stopped = true
}

// Listener handles an event.
type Listener func(*Event)

type listenerOptions struct {
	once bool
}

// ListenerOption configures a listener registration.
type ListenerOption func(*listenerOptions)

// Once removes the listener after its first invocation.
func Once() ListenerOption {
	return func(o *listenerOptions) {
		o.once = true
	}
}

type listener struct {
	fn      Listener
	once    bool
	removed bool
}

type listenerSet struct {
	byType map[string][]*listener
}

func (s *listenerSet) add(eventType string, fn Listener, opts ...ListenerOption) func() {
	if fn == nil {
		return func() {}
	}
	var cfg listenerOptions
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	if s.byType == nil {
		s.byType = make(map[string][]*listener)
	}
	l := &listener{fn: fn, once: cfg.once}
	s.byType[eventType] = append(s.byType[eventType], l)
	return func() {
		s.remove(eventType, l)
	}
}

func (s *listenerSet) remove(eventType string, target *listener) {
	target.removed = true
	current := s.byType[eventType]
	for i, l := range current {
		if l == target {
			s.byType[eventType] = append(current[:i:i], current[i+1:]...)
			return
		}
	}
}

// fire invokes listeners registered before dispatch started, in order.
func (s *listenerSet) fire(ev *Event) {
	if s.byType == nil {
		return
	}
	snapshot := append([]*listener(nil), s.byType[ev.Type]...)
	for _, l := range snapshot {
		if l.removed {
			continue
		}
		if l.once {
			s.remove(ev.Type, l)
		}
		l.fn(ev)
	}
}

func (s *listenerSet) count(eventType string) int {
	if s.byType == nil {
		return 0
	}
	return len(s.byType[eventType])
}
