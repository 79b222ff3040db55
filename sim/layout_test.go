package sim

import (
	"testing"
)

func TestNewGrid_ReferenceLayout(t *testing.T) {
	// GIVEN the default 12x20 dimensions
	g := NewGrid(12, 20)

	// THEN the fixed zones land where the layout rules put them
	cases := []struct {
		row, col int
		want     CellType
	}{
		{0, 0, CellReceivingDock},
		{0, 3, CellReceivingDock},
		{0, 4, CellFloor},
		{11, 16, CellShippingDock},
		{11, 19, CellShippingDock},
		{10, 16, CellPackingArea},
		{1, 17, CellControlledCage},
		{2, 19, CellControlledCage},
		{1, 5, CellColdRack},
		{2, 7, CellColdRack},
		{5, 6, CellCorridor}, // interior column divisible by 3
		{5, 7, CellRack},     // interior column between corridors
		{3, 1, CellRack},     // interior rules win over the row-3 corridor rule
		{3, 6, CellCorridor},
		{0, 10, CellFloor},
	}
	for _, tc := range cases {
		got := g.Cells[tc.row][tc.col].Type
		if got != tc.want {
			t.Errorf("cell (%d,%d): got %s, want %s", tc.row, tc.col, got, tc.want)
		}
	}
}

func TestNewGrid_DerivedAttributes(t *testing.T) {
	g := NewGrid(12, 20)

	rack := g.CellAt(5, 7)
	if rack.Capacity != 10 {
		t.Errorf("rack capacity: got %d, want 10", rack.Capacity)
	}

	cold := g.CellAt(1, 5)
	if cold.Capacity != 8 {
		t.Errorf("cold rack capacity: got %d, want 8", cold.Capacity)
	}
	if cold.Temperature == nil || *cold.Temperature != 4 {
		t.Errorf("cold rack temperature: got %v, want 4", cold.Temperature)
	}
	if cold.Locked {
		t.Error("cold rack must not be locked")
	}

	cage := g.CellAt(1, 17)
	if cage.Capacity != 5 {
		t.Errorf("controlled cage capacity: got %d, want 5", cage.Capacity)
	}
	if !cage.Locked {
		t.Error("controlled cage must be locked")
	}

	dock := g.CellAt(0, 0)
	if dock.Capacity != 20 {
		t.Errorf("receiving dock capacity: got %d, want 20", dock.Capacity)
	}

	corridor := g.CellAt(5, 6)
	if corridor.Capacity != 0 {
		t.Errorf("corridor capacity: got %d, want 0", corridor.Capacity)
	}
}

func TestGrid_FirstReceivingDock_RowMajor(t *testing.T) {
	// GIVEN the reference layout
	g := NewGrid(12, 20)

	// WHEN scanning for the first receiving dock
	pos, ok := g.FirstReceivingDock()

	// THEN it is the row-major first dock cell
	if !ok {
		t.Fatal("expected a receiving dock in the reference layout")
	}
	if pos != (Position{Row: 0, Col: 0}) {
		t.Errorf("first dock: got %+v, want (0,0)", pos)
	}
}

func TestGrid_CellAt_Bounds(t *testing.T) {
	g := NewGrid(4, 4)

	if g.CellAt(-1, 0) != nil || g.CellAt(0, -1) != nil || g.CellAt(4, 0) != nil || g.CellAt(0, 4) != nil {
		t.Error("out-of-bounds lookups must return nil")
	}
	if g.CellAt(3, 3) == nil {
		t.Error("in-bounds lookup returned nil")
	}
}

func TestManhattanDistance(t *testing.T) {
	a := Position{Row: 1, Col: 2}
	b := Position{Row: 4, Col: 0}
	if d := ManhattanDistance(a, b); d != 5 {
		t.Errorf("distance: got %d, want 5", d)
	}
	if d := ManhattanDistance(a, a); d != 0 {
		t.Errorf("distance to self: got %d, want 0", d)
	}
}

func TestGrid_CloneSharesNoStorage(t *testing.T) {
	// GIVEN a grid with a stored lot
	g := NewGrid(12, 20)
	g.Cells[0][0].Contents = append(g.Cells[0][0].Contents, InventorySlot{ItemID: "LATEX_GLOVES", Quantity: 5})

	// WHEN the grid is cloned and the clone mutated
	cl := g.clone()
	cl.Cells[0][0].Contents[0].Quantity = 99
	*cl.Cells[1][5].Temperature = -20

	// THEN the original is untouched
	if g.Cells[0][0].Contents[0].Quantity != 5 {
		t.Error("clone shares cell contents with original")
	}
	if *g.Cells[1][5].Temperature != 4 {
		t.Error("clone shares temperature pointer with original")
	}
}
