package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var (
	ErrCreateOrderCommandIsNotConstructed = errors.New(
		"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
	)
	ErrCustomerContactIsRequired = errors.New("customer contact is required")
	ErrItemsAreRequired          = errors.New("at least one order item is required")
	ErrVolumeIsInvalid           = errors.New("volume must be greater than 0")
	ErrItemsTotalIsInvalid       = errors.New("items total must not be negative")
)

// CreateOrderCommand represents a request to register a new order.
// Encapsulates the customer contact, the goods, the pickup and delivery
// coordinates and the goods total to price the transport leg against.
//
// Example:
//
//	orderID := kernel.NewUUID()
//	cmd, err := NewCreateOrderCommand(orderID, "site@builder.example",
//	    []string{"cement 50kg"}, 100, origin, destination, decimal.NewFromInt(2000))
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//
//	handler := NewCreateOrderCommandHandler(uowFactory, pricing)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("failed to create order: %w", err)
//	}
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID         kernel.UUID
	customerContact string
	items           []string
	volume          int
	origin          kernel.Coordinates
	destination     kernel.Coordinates
	itemsTotal      decimal.Decimal

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand creates a command to register a new order.
// Validates that the order ID and coordinates are valid, the contact and
// items are present, the volume is positive and the goods total is not
// negative. Returns an error if any validation fails.
func NewCreateOrderCommand(
	orderID kernel.UUID,
	customerContact string,
	items []string,
	volume int,
	origin kernel.Coordinates,
	destination kernel.Coordinates,
	itemsTotal decimal.Decimal,
) (CreateOrderCommand, error) {
	orderCommand := CreateOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		orderCommand.setOrderID(orderID),
		orderCommand.setCustomerContact(customerContact),
		orderCommand.setItems(items),
		orderCommand.setVolume(volume),
		orderCommand.setOrigin(origin),
		orderCommand.setDestination(destination),
		orderCommand.setItemsTotal(itemsTotal),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return orderCommand, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrCreateOrderCommandIsNotConstructed if validation fails.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// OrderID returns the unique identifier for the order.
func (c CreateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// CustomerContact returns the contact the customer is notified on.
func (c CreateOrderCommand) CustomerContact() string {
	return c.customerContact
}

// Items returns the ordered goods.
func (c CreateOrderCommand) Items() []string {
	return c.items
}

// Volume returns the load volume in cubic units.
func (c CreateOrderCommand) Volume() int {
	return c.volume
}

// Origin returns the pickup coordinates.
func (c CreateOrderCommand) Origin() kernel.Coordinates {
	return c.origin
}

// Destination returns the delivery coordinates.
func (c CreateOrderCommand) Destination() kernel.Coordinates {
	return c.destination
}

// ItemsTotal returns the goods total before transport.
func (c CreateOrderCommand) ItemsTotal() decimal.Decimal {
	return c.itemsTotal
}

func (c *CreateOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *CreateOrderCommand) setCustomerContact(customerContact string) error {
	if customerContact == "" {
		return ErrCustomerContactIsRequired
	}

	c.customerContact = customerContact
	return nil
}

func (c *CreateOrderCommand) setItems(items []string) error {
	if len(items) == 0 {
		return ErrItemsAreRequired
	}

	for _, item := range items {
		if item == "" {
			return ErrItemsAreRequired
		}
	}

	c.items = items
	return nil
}

func (c *CreateOrderCommand) setVolume(volume int) error {
	if volume <= 0 {
		return ErrVolumeIsInvalid
	}

	c.volume = volume
	return nil
}

func (c *CreateOrderCommand) setOrigin(origin kernel.Coordinates) error {
	if err := origin.Validate(); err != nil {
		return err
	}

	c.origin = origin
	return nil
}

func (c *CreateOrderCommand) setDestination(destination kernel.Coordinates) error {
	if err := destination.Validate(); err != nil {
		return err
	}

	c.destination = destination
	return nil
}

func (c *CreateOrderCommand) setItemsTotal(itemsTotal decimal.Decimal) error {
	if itemsTotal.IsNegative() {
		return ErrItemsTotalIsInvalid
	}

	c.itemsTotal = itemsTotal
	return nil
}
