package commands

import (
	"context"
	"fmt"
)

type LoginCmd struct {
	Email    string `help:"Account email" required:""`
	Password string `help:"Account password" required:""`
}

func (l *LoginCmd) Run(ctx context.Context, globals *Globals) error {
	env, err := globals.setup()
	if err != nil {
		return err
	}

	token, userID, err := env.api.Login(ctx, l.Email, l.Password)
	if err != nil {
		return fmt.Errorf("login failed: %w", err)
	}

	env.session.Login(token, userID)

	fmt.Printf("Logged in as %s\n", l.Email)
	return nil
}

type RegisterCmd struct {
	Name     string `help:"Full name" required:""`
	Email    string `help:"Account email" required:""`
	Password string `help:"Account password" required:""`
}

func (r *RegisterCmd) Run(ctx context.Context, globals *Globals) error {
	env, err := globals.setup()
	if err != nil {
		return err
	}

	token, userID, err := env.api.Register(ctx, r.Name, r.Email, r.Password)
	if err != nil {
		return fmt.Errorf("signup failed: %w", err)
	}

	env.session.Login(token, userID)

	fmt.Printf("Account created, logged in as %s\n", r.Email)
	return nil
}

type LogoutCmd struct{}

func (l *LogoutCmd) Run(ctx context.Context, globals *Globals) error {
	env, err := globals.setup()
	if err != nil {
		return err
	}

	env.session.Logout()

	fmt.Println("Logged out")
	return nil
}

type WhoamiCmd struct{}

func (w *WhoamiCmd) Run(ctx context.Context, globals *Globals) error {
	env, err := globals.setup()
	if err != nil {
		return err
	}

	if !env.session.IsLoggedIn() {
		fmt.Println("Not logged in")
		return nil
	}

	fmt.Printf("User ID: %s\n", env.session.UserID())

	if claims, ok := env.session.Claims(); ok {
		if claims.Email != "" {
			fmt.Printf("Email:   %s\n", claims.Email)
		}
		if claims.Role != "" {
			fmt.Printf("Role:    %s\n", claims.Role)
		}
	}

	if env.session.IsAdmin() {
		// Display hint only; the backend re-authorizes every admin request.
		fmt.Println("Admin:   yes")
	}

	return nil
}
