package commands

import (
	"errors"
	"fmt"

	"github.com/iahmedd-k/Canton-Store/internal/cart"
	"github.com/iahmedd-k/Canton-Store/internal/client"
	"github.com/iahmedd-k/Canton-Store/internal/session"
	"github.com/iahmedd-k/Canton-Store/internal/store"
)

type Globals struct {
	Debug   bool
	DataDir string
	Config  string
	Version string
}

// env wires the engines and backend client a command works with. Both
// engines share one file store but own independent keys in it.
type env struct {
	session *session.Engine
	cart    *cart.Engine
	api     *client.Client
}

func (g *Globals) setup() (*env, error) {
	kv, err := store.NewFileStore(g.DataDir)
	if err != nil {
		return nil, fmt.Errorf("failed to open state store: %w", err)
	}

	cfg, err := client.LoadConfig(g.Config)
	if err != nil {
		return nil, err
	}

	sess := session.New(kv)

	return &env{
		session: sess,
		cart:    cart.New(kv),
		api:     client.New(cfg, client.WithTokenSource(sess.Token)),
	}, nil
}

// requireAdmin gates dashboard commands in the UI. The backend re-authorizes
// every request, so this is a convenience check, not the enforcement point.
func (e *env) requireAdmin() error {
	if !e.session.IsAdmin() {
		return errors.New("admin account required")
	}
	return nil
}

func formatPrice(v float64) string {
	return fmt.Sprintf("PKR %.2f", v)
}
