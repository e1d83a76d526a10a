package checkout

import (
	"log"
	"sync"
)

// Coordinator holds one visitor's current checkout flow. Beginning a new
// flow abandons the previous one, so a late callback or response from an
// earlier attempt can never mutate the session.
type Coordinator struct {
	mu     sync.Mutex
	active *Flow

	backend orderAPI
	cart    cartAggregate
	logger  *log.Logger
}

func NewCoordinator(b orderAPI, cart cartAggregate, logger *log.Logger) *Coordinator {
	return &Coordinator{backend: b, cart: cart, logger: logger}
}

// Begin starts a fresh flow, abandoning any previous one.
func (c *Coordinator) Begin() *Flow {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.active != nil {
		c.active.abandon()
	}
	c.active = newFlow(c.backend, c.cart, c.logger)
	return c.active
}

// Flow returns the active flow when id matches it. Stale ids report false.
func (c *Coordinator) Flow(id string) (*Flow, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.active == nil || c.active.id != id {
		return nil, false
	}
	return c.active, true
}
