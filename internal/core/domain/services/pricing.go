package services

import (
	"fmt"
	"math"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// DeliveryZone is one distance band of the transport tariff. A zone carries
// the per-kilometre rate, the customer-facing delivery estimate and the
// delivery window used to bound handoff code expiry.
type DeliveryZone struct {
	// name is the zone label stored on the order ("local", "city", ...)
	name string

	// maxDistanceKm is the inclusive upper bound of the band,
	// +Inf for the open-ended farthest zone
	maxDistanceKm float64

	// ratePerKm is the transport rate inside the band
	ratePerKm decimal.Decimal

	// eta is the customer-facing delivery estimate
	eta string

	// window is the upper bound of the delivery estimate
	window time.Duration
}

// Name returns the zone label.
func (z DeliveryZone) Name() string {
	return z.name
}

// MaxDistanceKm returns the inclusive upper bound of the band.
func (z DeliveryZone) MaxDistanceKm() float64 {
	return z.maxDistanceKm
}

// RatePerKm returns the transport rate inside the band.
func (z DeliveryZone) RatePerKm() decimal.Decimal {
	return z.ratePerKm
}

// Eta returns the customer-facing delivery estimate.
func (z DeliveryZone) Eta() string {
	return z.eta
}

// Window returns the upper bound of the delivery estimate.
func (z DeliveryZone) Window() time.Duration {
	return z.window
}

// deliveryZones is the tariff table, nearest band first. A distance exactly
// on a boundary falls into the nearer, cheaper band.
func deliveryZones() []DeliveryZone {
	return []DeliveryZone{
		{name: "local", maxDistanceKm: 5, ratePerKm: decimal.NewFromInt(30), eta: "2-4 hours", window: 4 * time.Hour},
		{name: "city", maxDistanceKm: 10, ratePerKm: decimal.NewFromInt(40), eta: "4-8 hours", window: 8 * time.Hour},
		{name: "metro", maxDistanceKm: 20, ratePerKm: decimal.NewFromInt(50), eta: "8-24 hours", window: 24 * time.Hour},
		{name: "extended", maxDistanceKm: math.Inf(1), ratePerKm: decimal.NewFromInt(60), eta: "1-2 days", window: 48 * time.Hour},
	}
}

// DistancePricingEngine is a pure domain service that prices the transport
// leg of an order from the great-circle distance between its origin and
// destination.
//
// Business rules:
//   - distance bands: up to 5 km, up to 10 km, up to 20 km, and beyond
//   - an exact boundary distance belongs to the nearer band
//   - transport cost is distance times the band rate, never below the
//     configured minimum charge
//
// Example usage:
//
//	engine, _ := NewDistancePricingEngine(decimal.NewFromInt(150))
//	pricing, err := engine.Quote(origin, destination, itemsTotal)
//	if err != nil {
//	    // invalid coordinates
//	}
//	fmt.Printf("transport: %s (%s)", pricing.TransportCost(), pricing.Eta())
type DistancePricingEngine struct {
	zones         []DeliveryZone
	minimumCharge decimal.Decimal
}

// NewDistancePricingEngine creates a pricing engine with the standard zone
// table and the given minimum transport charge.
//
// Returns:
//   - DistancePricingEngine: ready for quoting
//   - error: validation error when the minimum charge is negative
func NewDistancePricingEngine(minimumCharge decimal.Decimal) (DistancePricingEngine, error) {
	if minimumCharge.IsNegative() {
		return DistancePricingEngine{}, errs.NewValueIsInvalidErrorWithCause(
			"minimumCharge",
			fmt.Errorf("%s is negative", minimumCharge),
		)
	}

	return DistancePricingEngine{
		zones:         deliveryZones(),
		minimumCharge: minimumCharge,
	}, nil
}

// MinimumCharge returns the configured floor for the transport cost.
func (e DistancePricingEngine) MinimumCharge() decimal.Decimal {
	return e.minimumCharge
}

// ZoneFor returns the delivery zone a distance falls into.
//
// Parameters:
//   - distanceKm: non-negative finite distance in kilometres
//
// Returns:
//   - DeliveryZone: the matching band; a distance exactly on a boundary
//     matches the nearer band
//   - error: validation error for negative or non-finite distances
func (e DistancePricingEngine) ZoneFor(distanceKm float64) (DeliveryZone, error) {
	if math.IsNaN(distanceKm) || math.IsInf(distanceKm, 0) || distanceKm < 0 {
		return DeliveryZone{}, errs.NewValueIsInvalidErrorWithCause(
			"distanceKm",
			fmt.Errorf("%v is not a non-negative finite distance", distanceKm),
		)
	}

	for _, zone := range e.zones {
		if distanceKm <= zone.maxDistanceKm {
			return zone, nil
		}
	}

	// unreachable: the last band is open-ended
	return e.zones[len(e.zones)-1], nil
}

// TransportCost prices a distance inside its zone: distance times the band
// rate, rounded to two decimals, never below the minimum charge.
func (e DistancePricingEngine) TransportCost(distanceKm float64) (decimal.Decimal, error) {
	zone, err := e.ZoneFor(distanceKm)
	if err != nil {
		return decimal.Decimal{}, err
	}

	cost := decimal.NewFromFloat(distanceKm).Mul(zone.ratePerKm).Round(2)
	if cost.LessThan(e.minimumCharge) {
		cost = e.minimumCharge
	}

	return cost, nil
}

// Quote prices the transport leg between two coordinates and attaches the
// goods total, producing the pricing record to store on a new order.
//
// Parameters:
//   - origin: pickup coordinates (validated)
//   - destination: delivery coordinates (validated)
//   - itemsTotal: non-negative goods total
//
// Returns:
//   - order.Pricing: the complete quote
//   - error: validation error for invalid coordinates or amounts
func (e DistancePricingEngine) Quote(
	origin kernel.Coordinates,
	destination kernel.Coordinates,
	itemsTotal decimal.Decimal,
) (order.Pricing, error) {
	distanceKm, err := origin.DistanceKmTo(destination)
	if err != nil {
		return order.Pricing{}, err
	}

	zone, err := e.ZoneFor(distanceKm)
	if err != nil {
		return order.Pricing{}, err
	}

	transportCost, err := e.TransportCost(distanceKm)
	if err != nil {
		return order.Pricing{}, err
	}

	return order.NewPricing(distanceKm, zone.name, zone.eta, zone.ratePerKm, transportCost, itemsTotal)
}
