package order

import (
	"fmt"
	"math"

	"dispatch/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// Pricing is the priced quote attached to an order at placement. It carries
// the transport-cost component next to the goods total so invoices and the
// order summary can show the breakdown.
//
// Pricing is immutable once attached; re-pricing an order means placing a new
// one.
type Pricing struct {
	// distanceKm is the great-circle distance between origin and destination
	distanceKm float64

	// zone is the delivery zone label the distance fell into
	zone string

	// eta is the human-readable delivery estimate of the zone
	eta string

	// ratePerKm is the per-kilometre rate of the zone
	ratePerKm decimal.Decimal

	// transportCost is max(distanceKm * ratePerKm, minimum charge)
	transportCost decimal.Decimal

	// itemsTotal is the goods total before transport
	itemsTotal decimal.Decimal

	// total is itemsTotal + transportCost
	total decimal.Decimal
}

// NewPricing creates a validated pricing record. The grand total is derived
// from itemsTotal and transportCost.
//
// Parameters:
//   - distanceKm: non-negative finite distance in kilometres
//   - zone: delivery zone label (required)
//   - eta: delivery estimate label (required)
//   - ratePerKm: non-negative per-kilometre rate
//   - transportCost: non-negative transport cost
//   - itemsTotal: non-negative goods total
//
// Returns:
//   - Pricing: the created record if validation passes
//   - error: validation error otherwise
func NewPricing(
	distanceKm float64,
	zone string,
	eta string,
	ratePerKm decimal.Decimal,
	transportCost decimal.Decimal,
	itemsTotal decimal.Decimal,
) (Pricing, error) {
	if math.IsNaN(distanceKm) || math.IsInf(distanceKm, 0) || distanceKm < 0 {
		return Pricing{}, errs.NewValueIsInvalidErrorWithCause(
			"distanceKm",
			fmt.Errorf("%v is not a non-negative finite distance", distanceKm),
		)
	}

	if zone == "" {
		return Pricing{}, errs.NewValueIsRequiredError("zone")
	}

	if eta == "" {
		return Pricing{}, errs.NewValueIsRequiredError("eta")
	}

	if ratePerKm.IsNegative() {
		return Pricing{}, errs.NewValueIsInvalidErrorWithCause(
			"ratePerKm",
			fmt.Errorf("%s is negative", ratePerKm),
		)
	}

	if transportCost.IsNegative() {
		return Pricing{}, errs.NewValueIsInvalidErrorWithCause(
			"transportCost",
			fmt.Errorf("%s is negative", transportCost),
		)
	}

	if itemsTotal.IsNegative() {
		return Pricing{}, errs.NewValueIsInvalidErrorWithCause(
			"itemsTotal",
			fmt.Errorf("%s is negative", itemsTotal),
		)
	}

	return Pricing{
		distanceKm:    distanceKm,
		zone:          zone,
		eta:           eta,
		ratePerKm:     ratePerKm,
		transportCost: transportCost,
		itemsTotal:    itemsTotal,
		total:         itemsTotal.Add(transportCost),
	}, nil
}

// DistanceKm returns the great-circle distance in kilometres.
func (p Pricing) DistanceKm() float64 {
	return p.distanceKm
}

// Zone returns the delivery zone label.
func (p Pricing) Zone() string {
	return p.zone
}

// Eta returns the human-readable delivery estimate.
func (p Pricing) Eta() string {
	return p.eta
}

// RatePerKm returns the per-kilometre rate of the zone.
func (p Pricing) RatePerKm() decimal.Decimal {
	return p.ratePerKm
}

// TransportCost returns the transport cost component.
func (p Pricing) TransportCost() decimal.Decimal {
	return p.transportCost
}

// ItemsTotal returns the goods total before transport.
func (p Pricing) ItemsTotal() decimal.Decimal {
	return p.itemsTotal
}

// Total returns the grand total (goods plus transport).
func (p Pricing) Total() decimal.Decimal {
	return p.total
}
