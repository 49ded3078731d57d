package series

import (
	"dealer/core"
)

// Registry registered series in registration order. Aggregations scan every
// series, so the registry is expected to stay in the tens.
type Registry struct {
	handles map[int64]core.IFYToken
	order   []int64
}

// New empty registry
func New() *Registry {
	return &Registry{
		handles: make(map[int64]core.IFYToken),
	}
}

// Check fails with core.ErrDuplicateSeries if the handle's maturity is registered
func (r *Registry) Check(handle core.IFYToken) error {
	if r.IsRegistered(handle.Maturity()) {
		return core.ErrDuplicateSeries
	}

	return nil
}

// Register add a series, keyed by its own maturity
func (r *Registry) Register(handle core.IFYToken) error {
	if err := r.Check(handle); err != nil {
		return err
	}

	maturity := handle.Maturity()
	r.handles[maturity] = handle
	r.order = append(r.order, maturity)
	return nil
}

// IsRegistered is a series with this maturity registered
func (r *Registry) IsRegistered(maturity int64) bool {
	_, ok := r.handles[maturity]
	return ok
}

// Get series handle by maturity
func (r *Registry) Get(maturity int64) (core.IFYToken, bool) {
	h, ok := r.handles[maturity]
	return h, ok
}

// Enumerate maturities in registration order
func (r *Registry) Enumerate() []int64 {
	order := make([]int64, len(r.order))
	copy(order, r.order)
	return order
}

// Len number of registered series
func (r *Registry) Len() int {
	return len(r.order)
}
