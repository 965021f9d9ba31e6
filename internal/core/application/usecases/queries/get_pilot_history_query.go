package queries

import (
	"errors"
	"fmt"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

// MaxHistoryPageSize caps how many history rows one page may request.
const MaxHistoryPageSize = 100

var (
	ErrGetPilotHistoryQueryIsNotConstructed = errors.New(
		"GetPilotHistoryQuery must be created via NewGetPilotHistoryQuery constructor",
	)
)

// GetPilotHistoryQuery retrieves the paginated delivery history of one pilot:
// every order the pilot carried that reached a terminal state. The link is
// the driver snapshot taken at claim time, which survives delivery and
// cancellation, so cancelled-in-flight orders show up too.
//
// Example:
//
//	query, err := NewGetPilotHistoryQuery(pilotID, 1, 20)
//	if err != nil {
//	    return err
//	}
//
//	history, err := NewGetPilotHistoryQueryHandler(db).Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to get pilot history: %w", err)
//	}
//
//	fmt.Printf("%d of %d orders\n", len(history.Items), history.TotalCount)
type GetPilotHistoryQuery struct {
	pilotID  kernel.UUID
	page     int
	pageSize int
	guard    guard.ConstructorGuard
}

// NewGetPilotHistoryQuery creates a query for one pilot's delivery history.
// Pages are 1-based; the page size must lie within (0, MaxHistoryPageSize].
func NewGetPilotHistoryQuery(pilotID kernel.UUID, page int, pageSize int) (GetPilotHistoryQuery, error) {
	if err := pilotID.Validate(); err != nil {
		return GetPilotHistoryQuery{}, err
	}

	if page < 1 {
		return GetPilotHistoryQuery{}, errs.NewValueIsInvalidErrorWithCause(
			"page",
			fmt.Errorf("%d is not a positive page number", page),
		)
	}

	if pageSize < 1 || pageSize > MaxHistoryPageSize {
		return GetPilotHistoryQuery{}, errs.NewValueIsOutOfRangeError("pageSize", pageSize, 1, MaxHistoryPageSize)
	}

	return GetPilotHistoryQuery{
		pilotID:  pilotID,
		page:     page,
		pageSize: pageSize,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// PilotID returns the pilot whose history is requested.
func (q GetPilotHistoryQuery) PilotID() kernel.UUID {
	return q.pilotID
}

// Page returns the 1-based page number.
func (q GetPilotHistoryQuery) Page() int {
	return q.page
}

// PageSize returns the number of rows per page.
func (q GetPilotHistoryQuery) PageSize() int {
	return q.pageSize
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetPilotHistoryQueryIsNotConstructed if validation fails.
func (q GetPilotHistoryQuery) Validate() error {
	return q.guard.Validate(ErrGetPilotHistoryQueryIsNotConstructed)
}

// GetPilotHistoryQueryResponse represents one page of a pilot's history
// together with the paging echo and the total match count.
type GetPilotHistoryQueryResponse struct {
	Items      []PilotHistoryItem
	Page       int
	PageSize   int
	TotalCount int
}

// PilotHistoryItem represents one terminal order the pilot carried.
// DeliveredAt stays nil for orders cancelled mid-flight.
type PilotHistoryItem struct {
	OrderID     kernel.UUID
	Status      string
	Destination kernel.Coordinates
	Total       decimal.Decimal
	DeliveredAt *time.Time
	Notes       string
}
