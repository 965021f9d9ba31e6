package services

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"

	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/errs"
)

// ErrInvalidCode is returned for every handoff verification failure. The
// wrapped detail distinguishes a mismatch from an expired or missing code
// for the logs; callers surface only the sentinel to the customer.
var ErrInvalidCode = errors.New("invalid handoff code")

// codeSpace is the number of possible handoff codes (000000 to 999999).
const codeSpace = 1000000

// HandoffCodeService issues and verifies the numeric code the customer
// reads to the pilot at the door.
//
// Business rules:
//   - a code is six decimal digits drawn from crypto/rand
//   - issuing is idempotent while an unexpired code exists
//   - the code lives for the delivery window of the order's zone plus a
//     configured slack
//   - verification requires a dispatched order, an unexpired code and an
//     exact match
//
// Example usage:
//
//	codes, _ := NewHandoffCodeService(engine, 2*time.Hour)
//	code, err := codes.Issue(o, time.Now().UTC())
//	...
//	if err := codes.Verify(o, presented, time.Now().UTC()); err != nil {
//	    // errors.Is(err, ErrInvalidCode)
//	}
type HandoffCodeService struct {
	pricing     DistancePricingEngine
	expirySlack time.Duration
}

// NewHandoffCodeService creates a handoff code service. The slack extends
// the code lifetime beyond the zone's delivery window so a late delivery
// can still be confirmed.
func NewHandoffCodeService(pricing DistancePricingEngine, expirySlack time.Duration) (HandoffCodeService, error) {
	if expirySlack < 0 {
		return HandoffCodeService{}, errs.NewValueIsInvalidErrorWithCause(
			"expirySlack",
			fmt.Errorf("%s is negative", expirySlack),
		)
	}

	return HandoffCodeService{
		pricing:     pricing,
		expirySlack: expirySlack,
	}, nil
}

// Issue mints a handoff code for the order, or returns the existing one
// while it is still unexpired.
//
// Parameters:
//   - o: the order to issue a code for (must not be terminal)
//   - now: current server time
//
// Returns:
//   - string: the six-digit code to show the customer
//   - error: validation error for invalid orders, or the order's refusal
//     to carry a code
func (s HandoffCodeService) Issue(o *order.Order, now time.Time) (string, error) {
	if o == nil {
		return "", errs.NewValueIsRequiredError("order")
	}

	if err := o.Validate(); err != nil {
		return "", err
	}

	delivery := o.Delivery()
	if code := delivery.HandoffCode(); code != nil {
		if expiresAt := delivery.HandoffCodeExpiresAt(); expiresAt != nil && now.Before(*expiresAt) {
			return *code, nil
		}
	}

	zone, err := s.pricing.ZoneFor(o.Pricing().DistanceKm())
	if err != nil {
		return "", err
	}

	code, err := generateHandoffCode()
	if err != nil {
		return "", err
	}

	expiresAt := now.Add(zone.Window() + s.expirySlack)
	if err := o.SetHandoffCode(code, expiresAt); err != nil {
		return "", err
	}

	return code, nil
}

// Verify checks the code the pilot presents against the order.
//
// Parameters:
//   - o: the order being handed off
//   - presented: the code read back by the customer
//   - now: current server time
//
// Returns:
//   - error: nil on an exact match against a dispatched order with an
//     unexpired code; otherwise ErrInvalidCode wrapped with the internal
//     reason
func (s HandoffCodeService) Verify(o *order.Order, presented string, now time.Time) error {
	if o == nil {
		return errs.NewValueIsRequiredError("order")
	}

	if err := o.Validate(); err != nil {
		return err
	}

	if o.Status() != order.Dispatched {
		return fmt.Errorf("%w: order %s is %s, not %s", ErrInvalidCode, o.ID(), o.Status(), order.Dispatched)
	}

	delivery := o.Delivery()

	code := delivery.HandoffCode()
	if code == nil {
		return fmt.Errorf("%w: order %s has no active code", ErrInvalidCode, o.ID())
	}

	expiresAt := delivery.HandoffCodeExpiresAt()
	if expiresAt == nil || !now.Before(*expiresAt) {
		return fmt.Errorf("%w: code for order %s expired", ErrInvalidCode, o.ID())
	}

	if *code != presented {
		return fmt.Errorf("%w: code mismatch for order %s", ErrInvalidCode, o.ID())
	}

	return nil
}

// generateHandoffCode draws a uniformly random six-digit code.
func generateHandoffCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(codeSpace))
	if err != nil {
		return "", fmt.Errorf("generate handoff code: %w", err)
	}

	return fmt.Sprintf("%06d", n.Int64()), nil
}
