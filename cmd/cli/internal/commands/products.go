package commands

import (
	"context"
	"fmt"

	"github.com/iahmedd-k/Canton-Store/internal/catalog"
	"github.com/iahmedd-k/Canton-Store/internal/client"
)

type ProductsCmd struct {
	Category string `help:"Filter by category id" default:""`
}

func (p *ProductsCmd) Run(ctx context.Context, globals *Globals) error {
	env, err := globals.setup()
	if err != nil {
		return err
	}

	products, err := env.api.Products(ctx)
	if err != nil {
		return fmt.Errorf("failed to list products: %w", err)
	}

	shown := 0
	for _, prod := range products {
		if p.Category != "" && prod.CategoryID != p.Category {
			continue
		}
		shown++
		fmt.Printf("%-24s  %-30s  %s\n", prod.ID, prod.Name, formatPrice(prod.Price))
	}

	if shown == 0 {
		fmt.Println("No products found")
	}

	return nil
}

type ProductCmd struct {
	ProductID string `arg:"" help:"Product id"`
}

func (p *ProductCmd) Run(ctx context.Context, globals *Globals) error {
	env, err := globals.setup()
	if err != nil {
		return err
	}

	prod, err := env.api.Product(ctx, p.ProductID)
	if err != nil {
		return fmt.Errorf("failed to fetch product: %w", err)
	}

	reviews, err := env.api.Reviews(ctx, p.ProductID)
	if err != nil {
		return fmt.Errorf("failed to fetch reviews: %w", err)
	}

	fmt.Printf("Name:     %s\n", prod.Name)
	fmt.Printf("Price:    %s\n", formatPrice(prod.Price))
	fmt.Printf("Rating:   %.1f (%d reviews)\n", catalog.AverageRating(reviews), len(reviews))
	if prod.Description != "" {
		fmt.Printf("About:    %s\n", prod.Description)
	}

	for _, rev := range reviews {
		fmt.Printf("  [%d/5] %s: %s\n", rev.Rating, rev.Name, rev.Comment)
	}

	return nil
}

type ReviewCmd struct {
	ProductID string `arg:"" help:"Product id"`
	Rating    int    `help:"Rating from 1 to 5" required:""`
	Comment   string `help:"Review text" required:""`
}

func (r *ReviewCmd) Run(ctx context.Context, globals *Globals) error {
	env, err := globals.setup()
	if err != nil {
		return err
	}

	if r.Rating < 1 || r.Rating > 5 {
		return fmt.Errorf("rating must be between 1 and 5")
	}

	claims, ok := env.session.Claims()
	if !ok {
		return fmt.Errorf("log in before leaving a review")
	}

	review := client.ReviewInput{
		Rating:  r.Rating,
		Comment: r.Comment,
		Name:    claims.Email,
		Email:   claims.Email,
	}
	saved, err := env.api.SubmitReview(ctx, r.ProductID, review)
	if err != nil {
		return fmt.Errorf("failed to submit review: %w", err)
	}

	fmt.Printf("Review submitted [%d/5]\n", saved.Rating)
	return nil
}

type CategoriesCmd struct{}

func (c *CategoriesCmd) Run(ctx context.Context, globals *Globals) error {
	env, err := globals.setup()
	if err != nil {
		return err
	}

	categories, err := env.api.Categories(ctx)
	if err != nil {
		return fmt.Errorf("failed to list categories: %w", err)
	}

	for _, cat := range categories {
		fmt.Printf("%-24s  %s\n", cat.ID, cat.Name)
	}

	return nil
}
