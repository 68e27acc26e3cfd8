package rain

import (
	"fmt"
	"math/rand"
	"slices"
)

// ColumnPool tracks the columns no stream is falling in.
//
// Every column is either free or owned by exactly one stream. Releasing a
// column that is not owned breaks that partition and panics.
type ColumnPool struct {
	free   []int
	owned  []bool
	random *rand.Rand
}

// NewColumnPool creates a pool with every column in 0..columns-1 free.
func NewColumnPool(columns int, random *rand.Rand) *ColumnPool {
	columns = max(columns, 0)
	p := &ColumnPool{
		free:   make([]int, columns),
		owned:  make([]bool, columns),
		random: random,
	}
	for i := range p.free {
		p.free[i] = i
	}
	return p
}

// Acquire removes a random free column from the pool. It reports false
// when every column is taken.
func (p *ColumnPool) Acquire() (int, bool) {
	n := len(p.free)
	if n == 0 {
		return -1, false
	}
	i := p.random.Intn(n)
	col := p.free[i]
	p.free[i] = p.free[n-1]
	p.free = p.free[:n-1]
	p.owned[col] = true
	return col, true
}

// Release returns an acquired column to the pool.
func (p *ColumnPool) Release(col int) {
	if col < 0 || col >= len(p.owned) {
		panic(fmt.Sprintf("rain: release of column %d outside 0..%d", col, len(p.owned)-1))
	}
	if !p.owned[col] {
		panic(fmt.Sprintf("rain: release of column %d which is not acquired", col))
	}
	p.owned[col] = false
	p.free = append(p.free, col)
}

// Len returns the number of free columns.
func (p *ColumnPool) Len() int {
	return len(p.free)
}

// Columns returns the total number of columns managed by the pool.
func (p *ColumnPool) Columns() int {
	return len(p.owned)
}

// Owned reports whether col is currently held by a stream.
func (p *ColumnPool) Owned(col int) bool {
	return col >= 0 && col < len(p.owned) && p.owned[col]
}

// FreeColumns returns the free columns in ascending order.
func (p *ColumnPool) FreeColumns() []int {
	cols := slices.Clone(p.free)
	slices.Sort(cols)
	return cols
}
