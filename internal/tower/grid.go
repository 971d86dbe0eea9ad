package tower

// Grid stores blocks by (row, col). Empty cells are nil.
type Grid struct {
	rows, cols int
	cells      []*Block
}

// NewGrid creates an empty rows x cols grid.
func NewGrid(rows, cols int) *Grid {
	if rows < 0 {
		rows = 0
	}
	if cols < 0 {
		cols = 0
	}
	return &Grid{rows: rows, cols: cols, cells: make([]*Block, rows*cols)}
}

func (g *Grid) key(row, col int) (int, bool) {
	if row < 0 || row >= g.rows || col < 0 || col >= g.cols {
		return 0, false
	}
	return row*g.cols + col, true
}

// Rows returns the grid height.
func (g *Grid) Rows() int { return g.rows }

// Cols returns the grid width.
func (g *Grid) Cols() int { return g.cols }

// At returns the block at (row, col), or nil.
func (g *Grid) At(row, col int) *Block {
	k, ok := g.key(row, col)
	if !ok {
		return nil
	}
	return g.cells[k]
}

// Set stores b at its own coordinate. It reports false if out of range.
func (g *Grid) Set(b *Block) bool {
	k, ok := g.key(b.Row, b.Col)
	if !ok {
		return false
	}
	g.cells[k] = b
	return true
}

// Clear empties a cell. It reports whether a block was there.
func (g *Grid) Clear(row, col int) bool {
	k, ok := g.key(row, col)
	if !ok || g.cells[k] == nil {
		return false
	}
	g.cells[k] = nil
	return true
}

// Row returns the blocks of one row in column order.
func (g *Grid) Row(row int) []*Block {
	if row < 0 || row >= g.rows {
		return nil
	}
	var out []*Block
	for _, b := range g.cells[row*g.cols : (row+1)*g.cols] {
		if b != nil {
			out = append(out, b)
		}
	}
	return out
}

// Blocks returns a row-major snapshot of all stored blocks.
func (g *Grid) Blocks() []*Block {
	out := make([]*Block, 0, len(g.cells))
	for _, b := range g.cells {
		if b != nil {
			out = append(out, b)
		}
	}
	return out
}

// BackToFront returns a snapshot starting from the top row.
func (g *Grid) BackToFront() []*Block {
	out := make([]*Block, 0, len(g.cells))
	for r := g.rows - 1; r >= 0; r-- {
		out = append(out, g.Row(r)...)
	}
	return out
}

// Live counts stored blocks.
func (g *Grid) Live() int {
	n := 0
	for _, b := range g.cells {
		if b != nil {
			n++
		}
	}
	return n
}
