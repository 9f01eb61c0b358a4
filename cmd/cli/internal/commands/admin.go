package commands

import (
	"context"
	"fmt"

	"github.com/iahmedd-k/Canton-Store/internal/client"
)

// AdminCmd groups the dashboard operations. Each subcommand checks the
// local session before calling out, but the backend owns authorization.
type AdminCmd struct {
	AddProduct    AdminAddProductCmd    `cmd:"" help:"Add a product to the catalog"`
	UpdateProduct AdminUpdateProductCmd `cmd:"" help:"Update a product's details"`
	RmProduct     AdminRmProductCmd     `cmd:"" help:"Remove a product"`
	AddCategory   AdminAddCategoryCmd   `cmd:"" help:"Add a category"`
	RmCategory    AdminRmCategoryCmd    `cmd:"" help:"Remove a category"`
	OrderStatus   AdminOrderStatusCmd   `cmd:"" help:"Set an order's status"`
}

type productFlags struct {
	Name        string   `help:"Product name" required:""`
	Price       float64  `help:"Price" required:""`
	Stock       int      `help:"Units in stock" default:"0"`
	Category    string   `help:"Category id" default:""`
	Description string   `help:"Product description" default:""`
	Image       []string `help:"Image file to upload, repeatable" type:"existingfile"`
}

func (p *productFlags) input() client.ProductInput {
	return client.ProductInput{
		Name:        p.Name,
		Price:       p.Price,
		Stock:       p.Stock,
		Category:    p.Category,
		Description: p.Description,
		ImagePaths:  p.Image,
	}
}

type AdminAddProductCmd struct {
	productFlags
}

func (a *AdminAddProductCmd) Run(ctx context.Context, globals *Globals) error {
	env, err := globals.setup()
	if err != nil {
		return err
	}
	if err := env.requireAdmin(); err != nil {
		return err
	}

	if err := env.api.CreateProduct(ctx, a.input()); err != nil {
		return err
	}

	fmt.Printf("Added %s\n", a.Name)
	return nil
}

type AdminUpdateProductCmd struct {
	ProductID string `arg:"" help:"Product id"`
	productFlags
}

func (a *AdminUpdateProductCmd) Run(ctx context.Context, globals *Globals) error {
	env, err := globals.setup()
	if err != nil {
		return err
	}
	if err := env.requireAdmin(); err != nil {
		return err
	}

	if err := env.api.UpdateProduct(ctx, a.ProductID, a.input()); err != nil {
		return err
	}

	fmt.Printf("Updated %s\n", a.ProductID)
	return nil
}

type AdminRmProductCmd struct {
	ProductID string `arg:"" help:"Product id"`
}

func (a *AdminRmProductCmd) Run(ctx context.Context, globals *Globals) error {
	env, err := globals.setup()
	if err != nil {
		return err
	}
	if err := env.requireAdmin(); err != nil {
		return err
	}

	if err := env.api.DeleteProduct(ctx, a.ProductID); err != nil {
		return err
	}

	fmt.Printf("Removed %s\n", a.ProductID)
	return nil
}

type AdminAddCategoryCmd struct {
	Name string `arg:"" help:"Category name"`
}

func (a *AdminAddCategoryCmd) Run(ctx context.Context, globals *Globals) error {
	env, err := globals.setup()
	if err != nil {
		return err
	}
	if err := env.requireAdmin(); err != nil {
		return err
	}

	if err := env.api.CreateCategory(ctx, a.Name); err != nil {
		return err
	}

	fmt.Printf("Added category %s\n", a.Name)
	return nil
}

type AdminRmCategoryCmd struct {
	CategoryID string `arg:"" help:"Category id"`
}

func (a *AdminRmCategoryCmd) Run(ctx context.Context, globals *Globals) error {
	env, err := globals.setup()
	if err != nil {
		return err
	}
	if err := env.requireAdmin(); err != nil {
		return err
	}

	if err := env.api.DeleteCategory(ctx, a.CategoryID); err != nil {
		return err
	}

	fmt.Printf("Removed category %s\n", a.CategoryID)
	return nil
}

type AdminOrderStatusCmd struct {
	OrderID string `arg:"" help:"Order id"`
	Status  string `arg:"" help:"New status" enum:"pending,shipped,delivered,cancelled"`
}

func (a *AdminOrderStatusCmd) Run(ctx context.Context, globals *Globals) error {
	env, err := globals.setup()
	if err != nil {
		return err
	}
	if err := env.requireAdmin(); err != nil {
		return err
	}

	order, err := env.api.UpdateOrderStatus(ctx, a.OrderID, a.Status)
	if err != nil {
		return err
	}

	fmt.Printf("Order %s is now %s\n", order.ID, order.Status)
	return nil
}
