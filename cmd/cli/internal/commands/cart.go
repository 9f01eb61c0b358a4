package commands

import (
	"context"
	"fmt"
)

type CartCmd struct {
	Add   CartAddCmd    `cmd:"" help:"Add a product to the cart"`
	Inc   CartIncCmd    `cmd:"" help:"Add one unit of a product"`
	Dec   CartDecCmd    `cmd:"" help:"Remove one unit of a product"`
	Rm    CartRemoveCmd `cmd:"" help:"Remove a product from the cart"`
	Show  CartShowCmd   `cmd:"" default:"1" help:"Show the cart"`
	Clear CartClearCmd  `cmd:"" help:"Empty the cart"`
}

type CartAddCmd struct {
	ProductID string `arg:"" help:"Product id"`
}

func (c *CartAddCmd) Run(ctx context.Context, globals *Globals) error {
	env, err := globals.setup()
	if err != nil {
		return err
	}

	p, err := env.api.Product(ctx, c.ProductID)
	if err != nil {
		return fmt.Errorf("failed to fetch product %q: %w", c.ProductID, err)
	}

	env.cart.AddItem(p)
	fmt.Printf("Added %s, cart total %s\n", p.Name, formatPrice(env.cart.Total()))
	return nil
}

type CartIncCmd struct {
	ProductID string `arg:"" help:"Product id"`
}

func (c *CartIncCmd) Run(ctx context.Context, globals *Globals) error {
	env, err := globals.setup()
	if err != nil {
		return err
	}

	env.cart.Increment(c.ProductID)
	fmt.Printf("Cart total %s\n", formatPrice(env.cart.Total()))
	return nil
}

type CartDecCmd struct {
	ProductID string `arg:"" help:"Product id"`
}

func (c *CartDecCmd) Run(ctx context.Context, globals *Globals) error {
	env, err := globals.setup()
	if err != nil {
		return err
	}

	env.cart.Decrement(c.ProductID)
	fmt.Printf("Cart total %s\n", formatPrice(env.cart.Total()))
	return nil
}

type CartRemoveCmd struct {
	ProductID string `arg:"" help:"Product id"`
}

func (c *CartRemoveCmd) Run(ctx context.Context, globals *Globals) error {
	env, err := globals.setup()
	if err != nil {
		return err
	}

	env.cart.Remove(c.ProductID)
	fmt.Printf("Cart total %s\n", formatPrice(env.cart.Total()))
	return nil
}

type CartShowCmd struct{}

func (c *CartShowCmd) Run(ctx context.Context, globals *Globals) error {
	env, err := globals.setup()
	if err != nil {
		return err
	}

	lines := env.cart.Lines()
	if len(lines) == 0 {
		fmt.Println("Your cart is empty")
		return nil
	}

	for _, l := range lines {
		fmt.Printf("%-24s  %-30s  %3d x %-12s  %s\n",
			l.ProductID, l.Name, l.Quantity, formatPrice(l.UnitPrice),
			formatPrice(l.UnitPrice*float64(l.Quantity)))
	}
	fmt.Printf("Total: %s\n", formatPrice(env.cart.Total()))

	return nil
}

type CartClearCmd struct{}

func (c *CartClearCmd) Run(ctx context.Context, globals *Globals) error {
	env, err := globals.setup()
	if err != nil {
		return err
	}

	env.cart.Clear()
	fmt.Println("Cart cleared")
	return nil
}
