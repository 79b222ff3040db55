// Inbound delivery trucks.

package sim

// CargoLine is one lot on a truck's manifest.
type CargoLine struct {
	ItemID     string `json:"itemId"`
	Quantity   int    `json:"quantity"`
	LotNumber  string `json:"lotNumber"`
	ExpiryDate int64  `json:"expiryDate"`
}

// Truck is one inbound delivery. A truck appears at a receiving dock,
// has its Unloaded flag flipped when a receiving task is allocated for
// it, and then stays in the active set as a historical record.
type Truck struct {
	ID           string      `json:"id"`
	ArrivalTime  int64       `json:"arrivalTime"`
	Cargo        []CargoLine `json:"items"`
	DockPosition Position    `json:"dockPosition"`
	Unloaded     bool        `json:"unloaded"`
}

// cloneTrucks deep-copies a truck slice.
func cloneTrucks(trucks []Truck) []Truck {
	out := make([]Truck, len(trucks))
	copy(out, trucks)
	for i := range out {
		if out[i].Cargo != nil {
			cargo := make([]CargoLine, len(out[i].Cargo))
			copy(cargo, out[i].Cargo)
			out[i].Cargo = cargo
		}
	}
	return out
}
