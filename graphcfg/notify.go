package graphcfg

import "sync"

// Notifier delivers the single "configuration changed" event to registered
// observers. Delivery is synchronous and in registration order; the caller
// of Notify is blocked until every observer returns. There is no payload —
// observers re-read the store they care about.
type Notifier struct {
	mu     sync.Mutex
	nextID uint64
	subs   []subscriber
}

type subscriber struct {
	id uint64
	fn func()
}

// Subscription is a handle for removing a registered observer.
type Subscription struct {
	notifier *Notifier
	id       uint64
}

// Subscribe registers fn and returns its removal handle.
func (n *Notifier) Subscribe(fn func()) *Subscription {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.nextID++
	n.subs = append(n.subs, subscriber{id: n.nextID, fn: fn})
	return &Subscription{notifier: n, id: n.nextID}
}

// Unsubscribe removes the observer. Safe to call more than once.
func (s *Subscription) Unsubscribe() {
	if s == nil || s.notifier == nil {
		return
	}
	n := s.notifier
	n.mu.Lock()
	defer n.mu.Unlock()
	for i := range n.subs {
		if n.subs[i].id == s.id {
			n.subs = append(n.subs[:i], n.subs[i+1:]...)
			break
		}
	}
	s.notifier = nil
}

// Notify invokes every observer registered at the time of the call.
// The list is snapshotted first so an observer may unsubscribe itself.
func (n *Notifier) Notify() {
	n.mu.Lock()
	snapshot := make([]subscriber, len(n.subs))
	copy(snapshot, n.subs)
	n.mu.Unlock()

	for _, sub := range snapshot {
		sub.fn()
	}
}
