// Stochastic arrival generation for customer orders and inbound trucks.
// Each process is gated by a backlog ceiling, a business-hours window
// and a minimum inter-arrival floor, with fire probability growing
// linearly once past the floor.

package sim

import (
	"fmt"
	"math/rand"

	"github.com/sirupsen/logrus"
)

const (
	minuteMillis = 60 * 1000

	// Order arrivals: at most 10 live orders, business hours
	// 08:00-18:00, at least 2 sim-minutes between orders, probability
	// ramping to 0.9 over the following 8 minutes.
	maxActiveOrders     = 10
	orderWindowStartMin = 480
	orderWindowEndMin   = 1080
	orderMinGapMinutes  = 2.0
	orderRampMinutes    = 8.0
	orderMaxProbability = 0.9

	// Truck arrivals: at most 3 trucks waiting to unload, receiving
	// hours 06:00-14:00, at least 15 sim-minutes between trucks,
	// probability ramping to 0.8 over the following 25 minutes.
	maxWaitingTrucks    = 3
	truckWindowStartMin = 360
	truckWindowEndMin   = 840
	truckMinGapMinutes  = 15.0
	truckRampMinutes    = 25.0
	truckMaxProbability = 0.8
)

// shouldGenerateOrder decides whether a new order fires this tick.
// Evaluated at most once per tick.
func shouldGenerateOrder(activeOrders int, now, lastOrderTime int64, rng *rand.Rand) bool {
	if activeOrders >= maxActiveOrders {
		return false
	}
	minuteOfDay := (now / minuteMillis) % (24 * 60)
	if minuteOfDay < orderWindowStartMin || minuteOfDay > orderWindowEndMin {
		return false
	}
	minutesSince := float64(now-lastOrderTime) / minuteMillis
	if minutesSince < orderMinGapMinutes {
		return false
	}
	p := min((minutesSince-orderMinGapMinutes)/orderRampMinutes, orderMaxProbability)
	return rng.Float64() < p
}

// shouldGenerateTruck decides whether a new truck fires this tick.
// waitingTrucks counts only trucks that have not been unloaded yet.
func shouldGenerateTruck(waitingTrucks int, now, lastTruckTime int64, rng *rand.Rand) bool {
	if waitingTrucks >= maxWaitingTrucks {
		return false
	}
	minuteOfDay := (now / minuteMillis) % (24 * 60)
	if minuteOfDay < truckWindowStartMin || minuteOfDay > truckWindowEndMin {
		return false
	}
	minutesSince := float64(now-lastTruckTime) / minuteMillis
	if minutesSince < truckMinGapMinutes {
		return false
	}
	p := min((minutesSince-truckMinGapMinutes)/truckRampMinutes, truckMaxProbability)
	return rng.Float64() < p
}

// orderQuantityRange returns the inclusive order-line quantity bounds
// for a turnover class. Class A items move in bulk.
func orderQuantityRange(class TurnoverClass) (int, int) {
	switch class {
	case TurnoverA:
		return 1, 20
	case TurnoverB:
		return 1, 10
	default:
		return 1, 5
	}
}

// cargoQuantityRange returns the inclusive truck cargo quantity bounds
// for a turnover class.
func cargoQuantityRange(class TurnoverClass) (int, int) {
	switch class {
	case TurnoverA:
		return 50, 200
	case TurnoverB:
		return 30, 100
	default:
		return 10, 50
	}
}

// selectDistinctItems draws count distinct item IDs uniformly from the
// catalog. Rejection sampling terminates quickly; count is always far
// below the catalog size.
func selectDistinctItems(catalog *Catalog, count int, rng *rand.Rand) []string {
	ids := catalog.IDs()
	if count > len(ids) {
		count = len(ids)
	}
	chosen := make(map[string]bool, count)
	out := make([]string, 0, count)
	for len(out) < count {
		id := ids[rng.Intn(len(ids))]
		if chosen[id] {
			continue
		}
		chosen[id] = true
		out = append(out, id)
	}
	return out
}

// generateLotNumber synthesizes a lot code: two uppercase letters
// followed by a 4-digit number.
func generateLotNumber(rng *rand.Rand) string {
	const letters = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	return fmt.Sprintf("%c%c%d",
		letters[rng.Intn(26)], letters[rng.Intn(26)], randomInt(rng, 1000, 9999))
}

// generateOrder synthesizes a new customer order at the given time.
func generateOrder(now int64, seq int, catalog *Catalog, rng *rand.Rand) (Order, error) {
	priority := orderPriorities[rng.Intn(len(orderPriorities))]

	lines := make([]OrderLine, 0, 5)
	for _, itemID := range selectDistinctItems(catalog, randomInt(rng, 1, 5), rng) {
		item, err := catalog.Get(itemID)
		if err != nil {
			return Order{}, err
		}
		lo, hi := orderQuantityRange(item.TurnoverClass)
		lines = append(lines, OrderLine{ItemID: itemID, Quantity: randomInt(rng, lo, hi)})
	}

	return Order{
		ID:         fmt.Sprintf("ORD-%04d", seq),
		CustomerID: fmt.Sprintf("CUST-%d", randomInt(rng, 100, 999)),
		Lines:      lines,
		Priority:   priority,
		Deadline:   now + priority.DeadlineMillis(),
		CreatedAt:  now,
		Status:     OrderPending,
	}, nil
}

// generateTruck synthesizes a new inbound truck docked at the given
// receiving position.
func generateTruck(now int64, seq int, dock Position, catalog *Catalog, rng *rand.Rand) (Truck, error) {
	cargo := make([]CargoLine, 0, 6)
	for _, itemID := range selectDistinctItems(catalog, randomInt(rng, 2, 6), rng) {
		item, err := catalog.Get(itemID)
		if err != nil {
			return Truck{}, err
		}
		lo, hi := cargoQuantityRange(item.TurnoverClass)
		cargo = append(cargo, CargoLine{
			ItemID:     itemID,
			Quantity:   randomInt(rng, lo, hi),
			LotNumber:  generateLotNumber(rng),
			ExpiryDate: now + int64(item.ExpiryDays)*24*60*60*1000,
		})
	}

	return Truck{
		ID:           fmt.Sprintf("TRK-%04d", seq),
		ArrivalTime:  now,
		Cargo:        cargo,
		DockPosition: dock,
		Unloaded:     false,
	}, nil
}

// generateArrivals is the arrival stage of the tick pipeline. It runs
// both stochastic processes against the post-advance clock and returns a
// new snapshot with any arrivals appended and the generator state
// updated.
func generateArrivals(s *State, catalog *Catalog, rng *rand.Rand) (*State, error) {
	next := s.Clone()

	if shouldGenerateOrder(len(next.Orders), next.CurrentTime, next.Arrivals.LastOrderTime, rng) {
		order, err := generateOrder(next.CurrentTime, next.Arrivals.NextOrderSeq, catalog, rng)
		if err != nil {
			return nil, fmt.Errorf("generate order: %w", err)
		}
		next.Orders = append(next.Orders, order)
		next.Arrivals.NextOrderSeq++
		next.Arrivals.LastOrderTime = next.CurrentTime
		logrus.Infof("<< Arrival: order %s (%s, %d lines) at %dms", order.ID, order.Priority, len(order.Lines), next.CurrentTime)
	}

	waiting := 0
	for i := range next.Trucks {
		if !next.Trucks[i].Unloaded {
			waiting++
		}
	}
	if shouldGenerateTruck(waiting, next.CurrentTime, next.Arrivals.LastTruckTime, rng) {
		// No receiving dock means no truck this tick; degenerate custom
		// layouts simply never receive deliveries.
		if dock, ok := next.Warehouse.FirstReceivingDock(); ok {
			truck, err := generateTruck(next.CurrentTime, next.Arrivals.NextTruckSeq, dock, catalog, rng)
			if err != nil {
				return nil, fmt.Errorf("generate truck: %w", err)
			}
			next.Trucks = append(next.Trucks, truck)
			next.Arrivals.NextTruckSeq++
			next.Arrivals.LastTruckTime = next.CurrentTime
			logrus.Infof("<< Arrival: truck %s (%d lots) at dock (%d,%d)", truck.ID, len(truck.Cargo), dock.Row, dock.Col)
		} else {
			logrus.Debugf("truck arrival suppressed: layout has no receiving dock")
		}
	}

	return next, nil
}
