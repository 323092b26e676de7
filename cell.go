package sview

// Flags control how a cell is decorated.
type Flags uint32

const (
	// FlagCrosshair draws a crosshair through the centre of the picture.
	FlagCrosshair Flags = 1 << iota

	// FlagCrosshairGreen draws the crosshair in green instead of black.
	FlagCrosshairGreen
)

// cellKey identifies a cell by grid position.
type cellKey struct {
	col, row int
}

// cell is a display slot. Cells are created on first submission and live
// for the lifetime of the viewer.
type cell struct {
	key     cellKey
	content textureSlot
	overlay textureSlot
	flags   Flags
	pitch   int
}

// cellTable is owned by the render goroutine.
type cellTable struct {
	cells []*cell
	index map[cellKey]*cell
}

func newCellTable() *cellTable {
	return &cellTable{index: make(map[cellKey]*cell)}
}

// lookup returns the cell at key, creating it if needed.
func (t *cellTable) lookup(key cellKey) *cell {
	if c, ok := t.index[key]; ok {
		return c
	}
	c := &cell{key: key}
	t.cells = append(t.cells, c)
	t.index[key] = c
	return c
}

// len returns the number of live cells.
func (t *cellTable) len() int {
	return len(t.cells)
}

// merge applies records in order. Each record's pictures are exchanged with
// the cell's pending sources, so after the loop a record holds either the
// picture it replaced or nothing. Releasing the records afterwards discards
// exactly the superseded pictures.
func (t *cellTable) merge(records []*pending) {
	for _, r := range records {
		c := t.lookup(r.key)
		c.content.source.swap(&r.content)
		c.overlay.source.swap(&r.overlay)
		c.flags = r.flags
		c.pitch = r.pitch
	}
	for _, r := range records {
		r.release()
	}
}

// shape returns the grid dimensions implied by the live cells.
func (t *cellTable) shape() (cols, rows int) {
	cols, rows = 1, 1
	for _, c := range t.cells {
		cols = max(cols, c.key.col+1)
		rows = max(rows, c.key.row+1)
	}
	return cols, rows
}
