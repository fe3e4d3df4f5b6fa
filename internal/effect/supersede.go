package effect

import "sync"

// Operation categories with switch-to-latest semantics. When a new request of
// a category starts, any in-flight result of the same category is discarded.
const (
	categoryAdd     = "add-to-cart"
	categoryUpdate  = "update-quantity"
	categoryRemove  = "remove-item"
	categoryLoad    = "load-cart"
	categorySync    = "sync-cart"
	categoryClear   = "clear-cart"
	categoryCoupons = "fetch-coupons"
)

// tracker implements per-category supersession with generation counters.
// begin is called synchronously at trigger time, so generations follow
// dispatch order; current is checked after the async work resolves.
type tracker struct {
	mu  sync.Mutex
	gen map[string]uint64
}

func newTracker() *tracker {
	return &tracker{gen: make(map[string]uint64)}
}

// begin starts a new generation for the category and returns it.
func (t *tracker) begin(category string) uint64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.gen[category]++
	return t.gen[category]
}

// current reports whether gen is still the latest generation, i.e. no newer
// trigger of the same category has been dispatched since.
func (t *tracker) current(category string, gen uint64) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.gen[category] == gen
}
