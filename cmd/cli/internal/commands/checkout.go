package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/iahmedd-k/Canton-Store/internal/client"
)

type CheckoutCmd struct {
	FullName   string `help:"Recipient name" required:""`
	Email      string `help:"Contact email" required:""`
	Address    string `help:"Street address" required:""`
	City       string `help:"City" required:""`
	PostalCode string `help:"Postal code" default:""`
	Country    string `help:"Country" default:"Pakistan"`
	Payment    string `help:"Payment method" enum:"cod,card" default:"cod"`
}

func (c *CheckoutCmd) Run(ctx context.Context, globals *Globals) error {
	env, err := globals.setup()
	if err != nil {
		return err
	}

	lines := env.cart.Lines()
	if len(lines) == 0 {
		return errors.New("cart is empty")
	}

	order := client.NewOrderRequest(lines, env.cart.Total(), client.ShippingAddress{
		Address:    c.Address,
		City:       c.City,
		PostalCode: c.PostalCode,
		Country:    c.Country,
		Email:      c.Email,
		FullName:   c.FullName,
	}, c.Payment, env.session.UserID())

	orderID, err := env.api.SubmitOrder(ctx, order)
	if err != nil {
		return fmt.Errorf("checkout failed: %w", err)
	}

	// Only clear once the backend has accepted the order.
	env.cart.Clear()

	fmt.Printf("Order %s placed, total %s\n", orderID, formatPrice(order.TotalPrice))
	return nil
}

type OrdersCmd struct{}

func (o *OrdersCmd) Run(ctx context.Context, globals *Globals) error {
	env, err := globals.setup()
	if err != nil {
		return err
	}

	if !env.session.IsLoggedIn() {
		return errors.New("log in to see order history")
	}

	orders, err := env.api.Orders(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch orders: %w", err)
	}

	if len(orders) == 0 {
		fmt.Println("No orders yet")
		return nil
	}

	for _, ord := range orders {
		fmt.Printf("%-24s  %-10s  %s\n", ord.ID, ord.Status, formatPrice(ord.TotalPrice))
	}

	return nil
}
