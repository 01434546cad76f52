package cart

import "sync"

// StatusView is a passive read model bound to the two cart totals. It
// tracks the latest broadcast values for display.
type StatusView struct {
	mu            sync.Mutex
	totalPrice    float64
	totalQuantity int

	unsubs []func()
}

// NewStatusView subscribes to the service's totals; the view reflects
// them from the moment of construction.
func NewStatusView(svc *Service) *StatusView {
	v := &StatusView{}
	v.unsubs = append(v.unsubs,
		svc.TotalPrice.Subscribe(func(p float64) {
			v.mu.Lock()
			v.totalPrice = p
			v.mu.Unlock()
		}),
		svc.TotalQuantity.Subscribe(func(q int) {
			v.mu.Lock()
			v.totalQuantity = q
			v.mu.Unlock()
		}),
	)
	return v
}

func (v *StatusView) TotalPrice() float64 {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.totalPrice
}

func (v *StatusView) TotalQuantity() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.totalQuantity
}

// Close detaches the view from the totals.
func (v *StatusView) Close() {
	for _, u := range v.unsubs {
		u()
	}
	v.unsubs = nil
}
