// Package systems provides the world-free building blocks of the simulation.
package systems

import (
	"fmt"
	"math"

	"github.com/mlange-42/ark/ecs"
)

// DefaultCellSize is the edge of a grid cell in world units.
const DefaultCellSize = 20

// Empty marks a freed grid slot.
var Empty ecs.Entity

// neighborOffsets lists the 8 compass neighbors in search order (row-major, center skipped).
var neighborOffsets = [8][2]int{
	{-1, -1}, {0, -1}, {1, -1},
	{-1, 0}, {1, 0},
	{-1, 1}, {0, 1}, {1, 1},
}

// gridCell is a packed slot array plus the indices of its freed slots.
type gridCell struct {
	slots []ecs.Entity
	free  []int
}

// Grid partitions the surface into square cells holding agent slots.
// Slots are never compacted: an agent's (cell, slot) pair stays valid until it is removed.
type Grid struct {
	cellSize float32
	cols     int
	rows     int
	cells    []gridCell
}

// NewGrid creates a grid covering a width x height surface.
func NewGrid(width, height, cellSize float32) *Grid {
	cols := int(math.Ceil(float64(width / cellSize)))
	rows := int(math.Ceil(float64(height / cellSize)))

	cells := make([]gridCell, cols*rows)
	for i := range cells {
		cells[i].slots = make([]ecs.Entity, 0, 4)
	}

	return &Grid{
		cellSize: cellSize,
		cols:     cols,
		rows:     rows,
		cells:    cells,
	}
}

// Cols returns the number of columns.
func (g *Grid) Cols() int { return g.cols }

// Rows returns the number of rows.
func (g *Grid) Rows() int { return g.rows }

// Len returns the number of cells.
func (g *Grid) Len() int { return len(g.cells) }

// CellIndex returns the flat cell index for a world position.
// Positions outside the surface are a caller bug and panic.
func (g *Grid) CellIndex(x, y float32) int {
	col := int(x / g.cellSize)
	row := int(y / g.cellSize)
	if x < 0 || y < 0 || col >= g.cols || row >= g.rows {
		panic(fmt.Sprintf("systems: position (%v, %v) outside grid %dx%d", x, y, g.cols, g.rows))
	}
	return col + row*g.cols
}

// Insert stores e in the cell containing (x, y), reusing a freed slot when one exists.
func (g *Grid) Insert(e ecs.Entity, x, y float32) (cell, slot int) {
	cell = g.CellIndex(x, y)
	c := &g.cells[cell]

	if n := len(c.free); n > 0 {
		slot = c.free[n-1]
		c.free = c.free[:n-1]
		c.slots[slot] = e
		return cell, slot
	}

	c.slots = append(c.slots, e)
	return cell, len(c.slots) - 1
}

// Remove empties a slot and records it for reuse.
func (g *Grid) Remove(cell, slot int) {
	c := &g.cells[cell]
	if c.slots[slot] == Empty {
		panic(fmt.Sprintf("systems: removing empty slot %d of cell %d", slot, cell))
	}
	c.slots[slot] = Empty
	c.free = append(c.free, slot)
}

// CellLen returns the slot array length of a cell, empty slots included.
func (g *Grid) CellLen(cell int) int {
	return len(g.cells[cell].slots)
}

// At returns the occupant of a slot, or Empty.
func (g *Grid) At(cell, slot int) ecs.Entity {
	return g.cells[cell].slots[slot]
}

// Occupants returns the number of live occupants of a cell.
func (g *Grid) Occupants(cell int) int {
	c := &g.cells[cell]
	return len(c.slots) - len(c.free)
}

// Neighbors appends the cell itself followed by its in-bounds compass neighbors to dst.
func (g *Grid) Neighbors(cell int, dst []int) []int {
	col := cell % g.cols
	row := cell / g.cols

	dst = append(dst, cell)
	for _, off := range neighborOffsets {
		c, r := col+off[0], row+off[1]
		if c < 0 || c >= g.cols || r < 0 || r >= g.rows {
			continue
		}
		dst = append(dst, c+r*g.cols)
	}
	return dst
}
