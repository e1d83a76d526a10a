package httpserver

import (
	"log"
	"sync"
	"time"

	"mobile-hospital-storefront/internal/cart"
	"mobile-hospital-storefront/internal/catalog"
	"mobile-hospital-storefront/internal/checkout"
	"mobile-hospital-storefront/internal/domain"
	"mobile-hospital-storefront/internal/orders"
	"mobile-hospital-storefront/internal/session"
)

// visitor bundles the per-session components: the persisted store and the
// stateful view/flow controllers layered over it.
type visitor struct {
	id       string
	store    *session.Store
	cart     *cart.Aggregate
	catalog  *catalog.Query
	orders   *orders.Query
	checkout *checkout.Coordinator
	shell    *shellState
	lastSeen time.Time
}

// visitorRegistry keeps visitor bundles alive across requests on the same
// session cookie, expiring them alongside the session manager's TTL.
type visitorRegistry struct {
	mu       sync.Mutex
	sessions *session.Manager
	backend  backendAPI
	ttl      time.Duration
	logger   *log.Logger
	byID     map[string]*visitor
}

func newVisitorRegistry(sessions *session.Manager, b backendAPI, ttl time.Duration, logger *log.Logger) *visitorRegistry {
	return &visitorRegistry{
		sessions: sessions,
		backend:  b,
		ttl:      ttl,
		logger:   logger,
		byID:     map[string]*visitor{},
	}
}

func (r *visitorRegistry) visitor(id string) *visitor {
	now := time.Now()
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.ttl > 0 {
		for vid, v := range r.byID {
			if now.Sub(v.lastSeen) > r.ttl {
				delete(r.byID, vid)
			}
		}
	}

	if v, ok := r.byID[id]; ok {
		v.lastSeen = now
		return v
	}

	store := r.sessions.Store(id)
	aggregate := cart.New(store)
	v := &visitor{
		id:       id,
		store:    store,
		cart:     aggregate,
		catalog:  catalog.NewQuery(r.backend),
		orders:   orders.NewQuery(r.backend),
		checkout: checkout.NewCoordinator(r.backend, aggregate, r.logger),
		shell:    newShellState(store),
		lastSeen: now,
	}
	r.byID[id] = v
	return v
}

func (r *visitorRegistry) drop(id string) {
	r.mu.Lock()
	delete(r.byID, id)
	r.mu.Unlock()
	r.sessions.Drop(id)
}

// shellState is the navigation shell's data: signed-in state and cart badge
// count, kept current through store subscription instead of polling.
type shellState struct {
	mu            sync.Mutex
	store         *session.Store
	authenticated bool
	name          string
	cartCount     int
}

func newShellState(store *session.Store) *shellState {
	s := &shellState{store: store}
	s.refresh(session.KeyUser)
	s.refresh(session.KeyCart)
	store.Subscribe(s.refresh)
	return s
}

func (s *shellState) refresh(key string) {
	switch key {
	case session.KeyUser, session.KeyToken:
		identity, _, ok := s.store.Identity()
		s.mu.Lock()
		s.authenticated = ok
		s.name = identity.Name
		s.mu.Unlock()
	case session.KeyCart:
		var c domain.Cart
		s.store.GetJSON(session.KeyCart, &c)
		s.mu.Lock()
		s.cartCount = c.Count()
		s.mu.Unlock()
	}
}

// shellView is the /api/me payload.
type shellView struct {
	Authenticated bool             `json:"authenticated"`
	User          *domain.Identity `json:"user,omitempty"`
	CartCount     int              `json:"cartCount"`
}

func (s *shellState) snapshot() shellView {
	s.mu.Lock()
	defer s.mu.Unlock()
	view := shellView{Authenticated: s.authenticated, CartCount: s.cartCount}
	if s.authenticated {
		view.User = &domain.Identity{Name: s.name}
	}
	return view
}
