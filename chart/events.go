package chart

import "slices"

// ProgressEvent reports a change of the thumb's progress. FromUser
// distinguishes pointer gestures from programmatic updates; Final is false
// for the intermediate updates of a continuous drag.
type ProgressEvent struct {
	Progress int
	Final    bool
	FromUser bool
}

// Listener receives progress notifications on the goroutine that drives
// the chart.
type Listener func(ProgressEvent)

type subscription struct {
	fn Listener
}

// Notifier fans ProgressEvents out to registered listeners in
// registration order.
type Notifier struct {
	subs []*subscription
}

// Subscribe registers l and returns a function that removes it again.
func (n *Notifier) Subscribe(l Listener) (cancel func()) {
	sub := &subscription{fn: l}
	n.subs = append(n.subs, sub)
	return func() {
		n.subs = slices.DeleteFunc(n.subs, func(s *subscription) bool {
			return s == sub
		})
	}
}

// Notify delivers ev to every listener.
func (n *Notifier) Notify(ev ProgressEvent) {
	// Listeners may unsubscribe while being notified.
	for _, s := range slices.Clone(n.subs) {
		s.fn(ev)
	}
}
