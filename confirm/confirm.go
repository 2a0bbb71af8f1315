// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package confirm

import (
	"sync"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/alnvdl/wcf-truco/models"
)

// DefaultTTL is how long a pending confirmation stays valid
const DefaultTTL = 5 * time.Minute

// Op names an operation that must be issued twice
type Op string

const (
	OpEnd Op = "end"
)

// State of a user's pending confirmation for one operation
type State int

const (
	Unconfirmed State = iota
	Confirmed
)

func (s State) String() string {
	if s == Confirmed {
		return "confirmed"
	}
	return "unconfirmed"
}

// Confirmer tracks per-user, per-operation confirmations in memory.
// Entries expire after the TTL.
type Confirmer struct {
	mu    sync.Mutex
	cache *cache.Cache
	ttl   time.Duration
}

// New creates a Confirmer whose entries live for ttl
func New(ttl time.Duration) *Confirmer {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Confirmer{
		cache: cache.New(ttl, 2*ttl),
		ttl:   ttl,
	}
}

func key(user models.Identity, op Op) string {
	return string(op) + ":" + string(user)
}

// State returns the current state without changing it
func (c *Confirmer) State(user models.Identity, op Op) State {
	if _, ok := c.cache.Get(key(user, op)); ok {
		return Confirmed
	}
	return Unconfirmed
}

// Arm moves the user to Confirmed; the next Check for op succeeds
func (c *Confirmer) Arm(user models.Identity, op Op) {
	c.cache.Set(key(user, op), true, c.ttl)
}

// Reset drops any pending confirmation
func (c *Confirmer) Reset(user models.Identity, op Op) {
	c.cache.Delete(key(user, op))
}

// Check consumes a pending confirmation and reports true, or arms one and
// reports false.
func (c *Confirmer) Check(user models.Identity, op Op) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	k := key(user, op)
	if _, ok := c.cache.Get(k); ok {
		c.cache.Delete(k)
		return true
	}
	c.cache.Set(k, true, c.ttl)
	return false
}
