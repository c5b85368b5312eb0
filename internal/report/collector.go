package report

import (
	"sync"

	"github.com/banshee-data/minehint/internal/minefield"
)

// Collector is a parse sink that keeps every emitted field for reporting.
type Collector struct {
	mu     sync.Mutex
	fields []*minefield.Field
}

func (c *Collector) Emit(f *minefield.Field) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.fields = append(c.fields, f)
	return nil
}

// Fields returns the collected fields in emission order.
func (c *Collector) Fields() []*minefield.Field {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]*minefield.Field, len(c.fields))
	copy(out, c.fields)
	return out
}

// Len returns the number of collected fields.
func (c *Collector) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.fields)
}
