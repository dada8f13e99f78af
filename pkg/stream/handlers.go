package stream

// Handlers holds up to one callback per event type. Any slot may be nil.
// Dispatch invokes at most one callback per event, synchronously: the
// reader does not frame the next line until the callback returns.
type Handlers struct {
	OnStart   func(*Event)
	OnContent func(*Event)
	OnEnd     func(*Event)
	OnError   func(*Event)
}

// Dispatch routes ev to the single matching callback, if registered.
// Events with an unrecognized type are dropped silently.
func (h Handlers) Dispatch(ev *Event) {
	switch ev.Type {
	case EventStart:
		if h.OnStart != nil {
			h.OnStart(ev)
		}
	case EventContent:
		if h.OnContent != nil {
			h.OnContent(ev)
		}
	case EventEnd:
		if h.OnEnd != nil {
			h.OnEnd(ev)
		}
	case EventError:
		if h.OnError != nil {
			h.OnError(ev)
		}
	default:
		// Unknown event types are dropped, not treated as errors.
	}
}

// Consume drives the reader to exhaustion or to the first terminal event,
// dispatching every framed event along the way. It returns the terminal
// event type that fired, or "" if the stream ended without one. A non-nil
// error reports a transport-level read failure.
func Consume(r *Reader, h Handlers) (EventType, error) {
	for {
		ev, err := r.Next()
		if err != nil {
			return "", err
		}
		if ev == nil {
			return "", nil
		}

		h.Dispatch(ev)

		if ev.Terminal() {
			return ev.Type, nil
		}
	}
}
