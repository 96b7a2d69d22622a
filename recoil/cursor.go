package recoil

import "github.com/lixenwraith/recoil/profile"

// inactive is the cursor sentinel outside any playback
const inactive = -1

// Cursor walks a compensation table one micro-step per fire
// States: Inactive (index == -1) or Active(index) with 0 <= index <= len(table)
// Zero value is not ready; use newCursor
type Cursor struct {
	table []profile.AngleDelta
	index int
}

func newCursor(table []profile.AngleDelta) Cursor {
	return Cursor{table: table, index: inactive}
}

// Activate moves an inactive cursor to the first micro-step; no-op if already active
func (c *Cursor) Activate() {
	if c.index == inactive {
		c.index = 0
	}
}

// Deactivate returns the cursor to the inactive state from any state
func (c *Cursor) Deactivate() {
	c.index = inactive
}

// FireNext returns the current micro-step as whole pixels and advances
// Inactive or exhausted cursors return (0, 0) and stay where they are
func (c *Cursor) FireNext() (int, int) {
	if c.index < 0 || c.index >= len(c.table) {
		return 0, 0
	}
	step := c.table[c.index]
	c.index++
	return int(step.X), int(step.Y)
}

// IsActive reports whether a fire would yield a table entry
// An active cursor that ran off the end reports false
func (c *Cursor) IsActive() bool {
	return c.index >= 0 && c.index < len(c.table)
}

// Position returns the next index to fire, or -1 when inactive
func (c *Cursor) Position() int {
	return c.index
}

// Remaining returns the number of micro-steps left before exhaustion
// An inactive cursor reports the full table
func (c *Cursor) Remaining() int {
	if c.index < 0 {
		return len(c.table)
	}
	if c.index >= len(c.table) {
		return 0
	}
	return len(c.table) - c.index
}
