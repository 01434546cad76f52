package cart

import "sync"

// Observable holds a current value and fans it out to subscribers.
// A new subscriber receives the latest value immediately, then every
// subsequent Next.
type Observable[T any] struct {
	mu     sync.Mutex
	value  T
	nextID int
	subs   map[int]func(T)
}

func NewObservable[T any](initial T) *Observable[T] {
	return &Observable[T]{
		value: initial,
		subs:  map[int]func(T){},
	}
}

func (o *Observable[T]) Value() T {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.value
}

func (o *Observable[T]) Next(v T) {
	o.mu.Lock()
	o.value = v
	subs := make([]func(T), 0, len(o.subs))
	for _, fn := range o.subs {
		subs = append(subs, fn)
	}
	o.mu.Unlock()

	// Notify outside the lock so subscribers may read Value or subscribe.
	for _, fn := range subs {
		fn(v)
	}
}

// Subscribe registers fn and replays the current value to it before
// returning. The returned func removes the subscription.
func (o *Observable[T]) Subscribe(fn func(T)) func() {
	o.mu.Lock()
	id := o.nextID
	o.nextID++
	o.subs[id] = fn
	v := o.value
	o.mu.Unlock()

	fn(v)

	return func() {
		o.mu.Lock()
		delete(o.subs, id)
		o.mu.Unlock()
	}
}
