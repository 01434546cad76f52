package cart

import "sync"

// Service owns the session's cart items and the two derived totals.
// Totals are recomputed and broadcast after every mutation, so
// TotalPrice always equals the sum of unitPrice*quantity over the
// current items and TotalQuantity the sum of quantities.
type Service struct {
	mu    sync.Mutex
	items []Item

	TotalPrice    *Observable[float64]
	TotalQuantity *Observable[int]
}

func NewService() *Service {
	return &Service{
		TotalPrice:    NewObservable[float64](0),
		TotalQuantity: NewObservable[int](0),
	}
}

// AddItem merges by product id: an existing line gets its quantity
// bumped, a new product gets a new line.
func (s *Service) AddItem(it Item) {
	s.mu.Lock()
	found := false
	for i := range s.items {
		if s.items[i].ProductID == it.ProductID {
			s.items[i].Quantity += it.Quantity
			found = true
			break
		}
	}
	if !found {
		s.items = append(s.items, it)
	}
	s.mu.Unlock()

	s.ComputeTotals()
}

// DecrementQuantity lowers a line's quantity by one, removing the line
// when it reaches zero.
func (s *Service) DecrementQuantity(productID string) {
	s.mu.Lock()
	for i := range s.items {
		if s.items[i].ProductID == productID {
			s.items[i].Quantity--
			if s.items[i].Quantity <= 0 {
				s.items = append(s.items[:i], s.items[i+1:]...)
			}
			break
		}
	}
	s.mu.Unlock()

	s.ComputeTotals()
}

// Remove drops the line for productID entirely.
func (s *Service) Remove(productID string) {
	s.mu.Lock()
	for i := range s.items {
		if s.items[i].ProductID == productID {
			s.items = append(s.items[:i], s.items[i+1:]...)
			break
		}
	}
	s.mu.Unlock()

	s.ComputeTotals()
}

// Items returns a copy of the current lines. Callers may hold on to the
// slice; later cart mutations will not touch it.
func (s *Service) Items() []Item {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Item, len(s.items))
	copy(out, s.items)
	return out
}

// ReplaceItems swaps the whole item list and rebroadcasts totals.
func (s *Service) ReplaceItems(items []Item) {
	s.mu.Lock()
	s.items = make([]Item, len(items))
	copy(s.items, items)
	s.mu.Unlock()

	s.ComputeTotals()
}

// Clear empties the cart and zeroes both totals.
func (s *Service) Clear() {
	s.mu.Lock()
	s.items = nil
	s.mu.Unlock()

	s.ComputeTotals()
}

// ComputeTotals recomputes both totals from the item list and
// broadcasts them to every subscriber.
func (s *Service) ComputeTotals() {
	s.mu.Lock()
	price := 0.0
	qty := 0
	for _, it := range s.items {
		price += it.UnitPrice * float64(it.Quantity)
		qty += it.Quantity
	}
	s.mu.Unlock()

	s.TotalPrice.Next(price)
	s.TotalQuantity.Next(qty)
}
