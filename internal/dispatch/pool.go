// This file provides scratch-value pooling for mixed-type adapters.

package dispatch

import "sync"

// ─────────────────────────────────────────────────────────────────────────────
// Scratch Pool
// ─────────────────────────────────────────────────────────────────────────────

// Pool recycles scratch values used by adapters that convert a foreign
// operand into the module's own value type before dispatching. A scratch
// value is acquired and released within one adapter call and never escapes
// it. Pool is safe for concurrent use; the values it hands out are not.
type Pool[T any, S any] struct {
	traits Traits[T, S]
	pool   sync.Pool
}

// NewPool creates an empty pool over the given traits.
func NewPool[T any, S any](traits Traits[T, S]) *Pool[T, S] {
	return &Pool[T, S]{traits: traits}
}

// Acquire returns a scratch value of precision prec. Its value is
// unspecified; the caller must set it before use. prec must already be
// validated.
//
// The returned value should be released using Release, preferably with defer:
//
//	v := pool.Acquire(prec)
//	defer pool.Release(v)
func (p *Pool[T, S]) Acquire(prec uint) *T {
	v, _ := p.pool.Get().(*T)
	if v == nil {
		v = new(T)
	}
	switch {
	case !p.traits.Valid(v):
		p.traits.Alloc(v, prec)
	case p.traits.Prec(v) != prec:
		p.traits.Discard(v, prec)
	}
	return v
}

// Release returns v to the pool. Safe to call with nil. Values left empty
// (for instance because their storage was stolen) are dropped.
func (p *Pool[T, S]) Release(v *T) {
	if v == nil || !p.traits.Valid(v) {
		return
	}
	p.pool.Put(v)
}
