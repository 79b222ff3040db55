// Inventory slots and the commit operations that move stock in and out.
// Receiving writes lots into a cell and the index; picking consumes them
// FIFO by expiry. Both enforce their preconditions and fail loudly
// instead of silently corrupting counts.

package sim

import (
	"fmt"
	"sort"
)

// InventorySlot is one received lot of a single item.
type InventorySlot struct {
	ItemID     string `json:"itemId"`
	Quantity   int    `json:"quantity"`
	LotNumber  string `json:"lotNumber"`
	ExpiryDate int64  `json:"expiryDate"`   // sim timestamp (ms)
	ReceivedAt int64  `json:"receivedDate"` // sim timestamp (ms)
}

// Inventory indexes stored slots by item ID. Slots for one item are kept
// ordered by expiry so picking always consumes the soonest-to-expire lot
// first.
type Inventory map[string][]InventorySlot

// NewInventory returns an empty index.
func NewInventory() Inventory {
	return make(Inventory)
}

// clone returns a deep copy of the index.
func (inv Inventory) clone() Inventory {
	out := make(Inventory, len(inv))
	for id, slots := range inv {
		cp := make([]InventorySlot, len(slots))
		copy(cp, slots)
		out[id] = cp
	}
	return out
}

// Available returns the total stored quantity of one item.
func (inv Inventory) Available(itemID string) int {
	total := 0
	for _, s := range inv[itemID] {
		total += s.Quantity
	}
	return total
}

// Receive commits a slot into a cell and the index. It fails when the
// cell already holds Capacity lots; the caller decides what to do with
// the rejected cargo.
func (inv Inventory) Receive(cell *Cell, slot InventorySlot) error {
	if cell == nil {
		return fmt.Errorf("receive %s: nil cell", slot.ItemID)
	}
	if len(cell.Contents) >= cell.Capacity {
		return fmt.Errorf("receive %s into (%d,%d): cell full (%d/%d lots)",
			slot.ItemID, cell.Position.Row, cell.Position.Col, len(cell.Contents), cell.Capacity)
	}
	cell.Contents = append(cell.Contents, slot)
	slots := append(inv[slot.ItemID], slot)
	sort.SliceStable(slots, func(i, j int) bool {
		return slots[i].ExpiryDate < slots[j].ExpiryDate
	})
	inv[slot.ItemID] = slots
	return nil
}

// Pick consumes quantity units of an item from the index, draining the
// soonest-to-expire slots first. When stock runs short it consumes what
// exists and returns both the shortfall and an error.
func (inv Inventory) Pick(itemID string, quantity int) (short int, err error) {
	remaining := quantity
	slots := inv[itemID]
	for len(slots) > 0 && remaining > 0 {
		if slots[0].Quantity > remaining {
			slots[0].Quantity -= remaining
			remaining = 0
			break
		}
		remaining -= slots[0].Quantity
		slots = slots[1:]
	}
	if len(slots) == 0 {
		delete(inv, itemID)
	} else {
		inv[itemID] = slots
	}
	if remaining > 0 {
		return remaining, fmt.Errorf("pick %s: short %d of %d units", itemID, remaining, quantity)
	}
	return 0, nil
}
