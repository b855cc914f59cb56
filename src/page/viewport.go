package page

import "sync"

// EventKind is a viewport change.
type EventKind int

const (
	Resize EventKind = iota
	OrientationChange
	FontResize
)

var eventNames = [...]string{"resize", "orientationchange", "fontresize"}

func (k EventKind) String() string {
	if k < 0 || int(k) >= len(eventNames) {
		return "unknown"
	}
	return eventNames[k]
}

// Event is delivered to viewport listeners. Width is the viewport width after
// the change.
type Event struct {
	Kind  EventKind
	Width float64
}

// Listener reacts to viewport events.
type Listener func(Event)

type subscription struct {
	id    uint64
	fn    Listener
	kinds []EventKind
}

// Viewport is an explicit source of resize style events. Listeners run
// synchronously, in registration order, on the dispatching goroutine.
type Viewport struct {
	mu    sync.Mutex
	width float64
	next  uint64
	subs  []subscription
}

// NewViewport returns a viewport of the given width.
func NewViewport(width float64) *Viewport {
	return &Viewport{width: width}
}

// Width is the current viewport width.
func (v *Viewport) Width() float64 {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.width
}

// Subscribe registers fn for the given kinds, or for every kind when none
// are given. The returned cancel func removes it and may be called twice.
func (v *Viewport) Subscribe(fn Listener, kinds ...EventKind) (cancel func()) {
	v.mu.Lock()
	v.next++
	id := v.next
	v.subs = append(v.subs, subscription{id: id, fn: fn, kinds: kinds})
	v.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			v.mu.Lock()
			defer v.mu.Unlock()
			for i, s := range v.subs {
				if s.id == id {
					v.subs = append(v.subs[:i], v.subs[i+1:]...)
					return
				}
			}
		})
	}
}

// Listeners is the number of registered listeners.
func (v *Viewport) Listeners() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return len(v.subs)
}

// Dispatch records the new width (when positive) and delivers e.
func (v *Viewport) Dispatch(e Event) {
	v.mu.Lock()
	if e.Width > 0 {
		v.width = e.Width
	}
	e.Width = v.width
	subs := make([]subscription, len(v.subs))
	copy(subs, v.subs)
	v.mu.Unlock()

	for _, s := range subs {
		if s.accepts(e.Kind) {
			s.fn(e)
		}
	}
}

// SetWidth dispatches a Resize to width.
func (v *Viewport) SetWidth(width float64) {
	v.Dispatch(Event{Kind: Resize, Width: width})
}

func (s subscription) accepts(k EventKind) bool {
	if len(s.kinds) == 0 {
		return true
	}
	for _, want := range s.kinds {
		if want == k {
			return true
		}
	}
	return false
}
