package main

import (
	"context"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/iahmedd-k/Canton-Store/cmd/cli/internal/commands"
	"github.com/iahmedd-k/Canton-Store/internal/logger"
)

var (
	version = "dev"
	cli     struct {
		Login      commands.LoginCmd      `cmd:"" help:"Log in to the store"`
		Register   commands.RegisterCmd   `cmd:"" help:"Create an account"`
		Logout     commands.LogoutCmd     `cmd:"" help:"Log out and clear the session"`
		Whoami     commands.WhoamiCmd     `cmd:"" help:"Show the current session"`
		Products   commands.ProductsCmd   `cmd:"" help:"List products"`
		Product    commands.ProductCmd    `cmd:"" help:"Show a product with its reviews"`
		Review     commands.ReviewCmd     `cmd:"" help:"Leave a product review"`
		Categories commands.CategoriesCmd `cmd:"" help:"List categories"`
		Cart       commands.CartCmd       `cmd:"" help:"Manage the shopping cart"`
		Checkout   commands.CheckoutCmd   `cmd:"" help:"Place an order from the cart"`
		Orders     commands.OrdersCmd     `cmd:"" help:"Show order history"`
		Admin      commands.AdminCmd      `cmd:"" help:"Dashboard operations"`
		DataDir    string                 `help:"State directory." env:"CANTON_DATA_DIR"`
		Config     string                 `help:"Client config file." env:"CANTON_CONFIG"`
		Debug      bool                   `help:"Enable debug mode."`
		Version    kong.VersionFlag
	}
)

func main() {
	_ = godotenv.Load()

	ctx := context.Background()
	cmd := kong.Parse(&cli,
		kong.Vars{
			"version": version,
		},
		kong.BindTo(ctx, (*context.Context)(nil)))

	log.Logger = logger.Setup(cli.Debug)

	err := cmd.Run(&commands.Globals{
		Debug:   cli.Debug,
		DataDir: cli.DataDir,
		Config:  cli.Config,
		Version: version,
	})
	cmd.FatalIfErrorf(err)
}
