package inventory

import (
	"hash/fnv"
	"sync"

	"shopcore/internal/domain/product"

	"github.com/google/uuid"
)

// Result reports the outcome of a single stock operation.
type Result struct {
	Success bool
	Stock   int
	Err     error
}

// Ledger applies stock operations to product records. Two concurrent
// deductions against the same product must not both succeed when their
// combined quantity exceeds available stock, so check-and-deduct runs under a
// per-product lock (striped to bound memory). The persistent write path adds
// the same guarantee at the store with a conditional update.
type Ledger struct {
	stripes [lockStripes]sync.Mutex
}

const lockStripes = 64

func NewLedger() *Ledger {
	return &Ledger{}
}

func (l *Ledger) lockFor(id uuid.UUID) *sync.Mutex {
	h := fnv.New32a()
	h.Write(id[:])
	return &l.stripes[h.Sum32()%lockStripes]
}

func (l *Ledger) CheckStock(p *product.Product, quantity int) bool {
	mu := l.lockFor(p.ID())
	mu.Lock()
	defer mu.Unlock()

	return p.HasStock(quantity)
}

func (l *Ledger) DeductStock(p *product.Product, quantity int) Result {
	mu := l.lockFor(p.ID())
	mu.Lock()
	defer mu.Unlock()

	stock, err := p.DeductStock(quantity)
	if err != nil {
		return Result{Success: false, Stock: stock, Err: err}
	}
	return Result{Success: true, Stock: stock}
}

func (l *Ledger) RestoreStock(p *product.Product, quantity int) Result {
	mu := l.lockFor(p.ID())
	mu.Lock()
	defer mu.Unlock()

	stock, err := p.RestoreStock(quantity)
	if err != nil {
		return Result{Success: false, Stock: stock, Err: err}
	}
	return Result{Success: true, Stock: stock}
}
