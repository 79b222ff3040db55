// Procedural warehouse layout: a fixed grid of typed cells computed once
// at initialization and never regenerated.

package sim

// Position is a grid coordinate.
type Position struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// ManhattanDistance returns the L1 distance between two positions.
func ManhattanDistance(a, b Position) int {
	return abs(a.Row-b.Row) + abs(a.Col-b.Col)
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

// CellType identifies the function of a grid cell.
type CellType string

const (
	CellFloor          CellType = "floor"
	CellCorridor       CellType = "corridor"
	CellRack           CellType = "rack"
	CellColdRack       CellType = "cold_rack"
	CellControlledCage CellType = "controlled_cage"
	CellReceivingDock  CellType = "receiving_dock"
	CellShippingDock   CellType = "shipping_dock"
	CellPackingArea    CellType = "packing_area"
)

// coldRackTemperature is the fixed storage temperature (°C) assigned to
// cold racks at layout time.
const coldRackTemperature = 4

// Cell is one grid position. Capacity counts inventory slots (lots), not
// item units: a rack holds up to Capacity distinct lots. Contents mutate
// only through the inventory commit operations.
type Cell struct {
	Position    Position        `json:"position"`
	Type        CellType        `json:"type"`
	Capacity    int             `json:"capacity"`
	Contents    []InventorySlot `json:"contents"`
	Temperature *int            `json:"temperature,omitempty"` // cold racks only
	Locked      bool            `json:"locked,omitempty"`      // controlled cages only
}

// slotCapacity maps a cell type to the number of lots it can hold.
func slotCapacity(t CellType) int {
	switch t {
	case CellRack:
		return 10
	case CellColdRack:
		return 8
	case CellControlledCage:
		return 5
	case CellReceivingDock, CellShippingDock, CellPackingArea:
		return 20 // staging areas
	default:
		return 0
	}
}

// newCell builds a cell of the given type with derived attributes.
func newCell(row, col int, t CellType) Cell {
	c := Cell{
		Position: Position{Row: row, Col: col},
		Type:     t,
		Capacity: slotCapacity(t),
	}
	if t == CellColdRack {
		temp := coldRackTemperature
		c.Temperature = &temp
	}
	if t == CellControlledCage {
		c.Locked = true
	}
	return c
}

// Grid is the warehouse floor plan, indexed [row][col].
type Grid struct {
	Rows  int      `json:"rows"`
	Cols  int      `json:"cols"`
	Cells [][]Cell `json:"cells"`
}

// cellTypeAt implements the fixed procedural layout:
//   - row 0, cols [0,4): receiving docks
//   - last row, last 4 cols: shipping docks
//   - second-to-last row, last 4 cols: packing area
//   - rows [1,3), last 3 cols: controlled cage
//   - rows [1,3), cols [5,8): cold racks
//   - interior rows/cols: every third column is a corridor, rest racks
//   - row 3: corridor where the interior rules left a gap
//
// Rule order matters: the interior corridor/rack rules run before the
// row-3 rule, so row 3's interior cells follow the column pattern.
func cellTypeAt(row, col, rows, cols int) CellType {
	switch {
	case row == 0 && col < 4:
		return CellReceivingDock
	case row == rows-1 && col >= cols-4:
		return CellShippingDock
	case row == rows-2 && col >= cols-4:
		return CellPackingArea
	case row >= 1 && row <= 2 && col >= cols-3:
		return CellControlledCage
	case row >= 1 && row <= 2 && col >= 5 && col < 8:
		return CellColdRack
	case col%3 == 0 && col > 0 && col < cols-1 && row > 2 && row < rows-2:
		return CellCorridor
	case col%3 != 0 && col > 0 && col < cols-1 && row > 2 && row < rows-2:
		return CellRack
	case row == 3 && col > 0 && col < cols-1:
		return CellCorridor
	default:
		return CellFloor
	}
}

// NewGrid computes the warehouse layout for the given dimensions.
func NewGrid(rows, cols int) Grid {
	g := Grid{Rows: rows, Cols: cols, Cells: make([][]Cell, rows)}
	for row := 0; row < rows; row++ {
		g.Cells[row] = make([]Cell, cols)
		for col := 0; col < cols; col++ {
			g.Cells[row][col] = newCell(row, col, cellTypeAt(row, col, rows, cols))
		}
	}
	return g
}

// CellAt returns the cell at (row, col), or nil if out of bounds.
func (g *Grid) CellAt(row, col int) *Cell {
	if row < 0 || row >= g.Rows || col < 0 || col >= g.Cols {
		return nil
	}
	return &g.Cells[row][col]
}

// FirstReceivingDock returns the position of the first receiving-dock
// cell in row-major scan order. ok is false when the layout has none
// (possible for degenerate custom layouts).
func (g *Grid) FirstReceivingDock() (Position, bool) {
	for row := 0; row < g.Rows; row++ {
		for col := 0; col < g.Cols; col++ {
			if g.Cells[row][col].Type == CellReceivingDock {
				return Position{Row: row, Col: col}, true
			}
		}
	}
	return Position{}, false
}

// clone returns a deep copy of the grid. Cell contents are copied so the
// clone shares no slot storage with the original.
func (g Grid) clone() Grid {
	out := Grid{Rows: g.Rows, Cols: g.Cols, Cells: make([][]Cell, len(g.Cells))}
	for r := range g.Cells {
		out.Cells[r] = make([]Cell, len(g.Cells[r]))
		for c := range g.Cells[r] {
			cell := g.Cells[r][c]
			if cell.Contents != nil {
				contents := make([]InventorySlot, len(cell.Contents))
				copy(contents, cell.Contents)
				cell.Contents = contents
			}
			if cell.Temperature != nil {
				temp := *cell.Temperature
				cell.Temperature = &temp
			}
			out.Cells[r][c] = cell
		}
	}
	return out
}
