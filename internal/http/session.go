package http

import (
	"sync"

	"go.uber.org/zap"

	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/cart"
	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/checkout"
	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/payment"
	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/reference"
	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/session"
)

// WidgetProcessor is a payment processor whose change events are fed in
// over the wire by the card widget running in the shopper's browser.
type WidgetProcessor interface {
	payment.Processor
	ReportChange(ev payment.ChangeEvent)
}

// Session is one shopper's server-side state: their cart, the totals
// view, and (once checkout starts) the orchestrator and widget.
type Session struct {
	ID        string
	Cart      *cart.Service
	Status    *cart.StatusView
	Processor WidgetProcessor

	mu   sync.Mutex
	orch *checkout.Orchestrator
}

func (s *Session) Orchestrator() *checkout.Orchestrator {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.orch
}

func (s *Session) setOrchestrator(o *checkout.Orchestrator) {
	s.mu.Lock()
	if s.orch != nil {
		s.orch.Close()
	}
	s.orch = o
	s.mu.Unlock()
}

// SessionDeps is everything a new session's orchestrator needs.
type SessionDeps struct {
	Reference    reference.Provider
	Gateway      checkout.OrderGateway
	Events       checkout.Events
	Store        session.Store
	NewProcessor func() WidgetProcessor
	Logger       *zap.Logger
}

type SessionManager struct {
	deps SessionDeps

	mu       sync.Mutex
	sessions map[string]*Session
}

func NewSessionManager(deps SessionDeps) *SessionManager {
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	return &SessionManager{deps: deps, sessions: map[string]*Session{}}
}

// GetOrCreate returns the session for id, building cart state for a
// first-time visitor.
func (m *SessionManager) GetOrCreate(id string) *Session {
	m.mu.Lock()
	defer m.mu.Unlock()

	if s, ok := m.sessions[id]; ok {
		return s
	}

	c := cart.NewService()
	s := &Session{
		ID:        id,
		Cart:      c,
		Status:    cart.NewStatusView(c),
		Processor: m.deps.NewProcessor(),
	}
	m.sessions[id] = s
	return s
}

// StartCheckout builds and initializes a fresh orchestrator for the
// session, replacing any previous checkout visit.
func (m *SessionManager) StartCheckout(s *Session) *checkout.Orchestrator {
	o := checkout.New(checkout.Config{
		Cart:      s.Cart,
		Reference: m.deps.Reference,
		Gateway:   m.deps.Gateway,
		Processor: s.Processor,
		Events:    m.deps.Events,
		Sessions:  m.deps.Store,
		SessionID: s.ID,
		Logger:    m.deps.Logger.With(zap.String("sessionId", s.ID)),
	})
	s.setOrchestrator(o)
	return o
}
