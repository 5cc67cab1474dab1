package ecs

// Event is one message between systems within a tick. Type selects how Data
// is read.
type Event struct {
	Type string
	Data any
}

// EventTankDestroyed carries a TankDestroyedEvent. The health system pushes
// it and the round system drains it to decide who is left standing.
const EventTankDestroyed = "tank_destroyed"

// TankDestroyedEvent is pushed when a tank's health first reaches zero.
type TankDestroyedEvent struct {
	Entity Entity
	Player int
}

// EventQueue is the world's FIFO of pending events. Anything not drained by
// the end of a tick is dropped, so a destroyed tank is never counted twice.
type EventQueue struct {
	items []Event
}

// Push adds an event.
func (q *EventQueue) Push(evt Event) {
	if q == nil {
		return
	}
	q.items = append(q.items, evt)
}

// Drain returns all events and clears the queue. Only one system should drain
// a given event type.
func (q *EventQueue) Drain() []Event {
	if q == nil || len(q.items) == 0 {
		return nil
	}
	out := q.items
	q.items = nil
	return out
}

func (q *EventQueue) flush() {
	if q == nil {
		return
	}
	q.items = nil
}
