package cart

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iahmedd-k/Canton-Store/internal/catalog"
	"github.com/iahmedd-k/Canton-Store/internal/store"
)

var (
	chair = catalog.Product{ID: "p-chair", Name: "Oak Chair", Price: 1000}
	lamp  = catalog.Product{ID: "p-lamp", Name: "Brass Lamp", Price: 250}
)

// failingKV simulates an unavailable persistence layer.
type failingKV struct{}

func (failingKV) Get(string) (string, error) { return "", errors.New("storage unavailable") }
func (failingKV) Set(string, string) error   { return errors.New("storage unavailable") }
func (failingKV) Delete(string) error        { return errors.New("storage unavailable") }

func TestEngine_AddItem(t *testing.T) {
	t.Run("adding twice merges into one line with quantity 2", func(t *testing.T) {
		e := New(store.NewMemoryStore())

		e.AddItem(chair)
		e.AddItem(chair)

		lines := e.Lines()
		require.Len(t, lines, 1)
		assert.Equal(t, "p-chair", lines[0].ProductID)
		assert.Equal(t, 2, lines[0].Quantity)
	})

	t.Run("preserves insertion order across merges", func(t *testing.T) {
		e := New(store.NewMemoryStore())

		e.AddItem(chair)
		e.AddItem(lamp)
		e.AddItem(chair)

		lines := e.Lines()
		require.Len(t, lines, 2)
		assert.Equal(t, "p-chair", lines[0].ProductID)
		assert.Equal(t, "p-lamp", lines[1].ProductID)
	})

	t.Run("negative price is normalized to zero", func(t *testing.T) {
		e := New(store.NewMemoryStore())

		e.AddItem(catalog.Product{ID: "p-bad", Name: "Broken", Price: -50})

		lines := e.Lines()
		require.Len(t, lines, 1)
		assert.Zero(t, lines[0].UnitPrice)
		assert.Zero(t, e.Total())
	})

	t.Run("product without id is ignored", func(t *testing.T) {
		e := New(store.NewMemoryStore())

		e.AddItem(catalog.Product{Name: "No Identity", Price: 100})

		assert.Zero(t, e.Len())
	})
}

func TestEngine_IncrementDecrement(t *testing.T) {
	t.Run("increment bumps quantity", func(t *testing.T) {
		e := New(store.NewMemoryStore())

		e.AddItem(chair)
		e.Increment("p-chair")

		require.Equal(t, 1, e.Len())
		assert.Equal(t, 2, e.Lines()[0].Quantity)
	})

	t.Run("increment keeps line order", func(t *testing.T) {
		e := New(store.NewMemoryStore())

		e.AddItem(chair)
		e.AddItem(lamp)
		e.Increment("p-chair")

		lines := e.Lines()
		assert.Equal(t, "p-chair", lines[0].ProductID)
		assert.Equal(t, "p-lamp", lines[1].ProductID)
	})

	t.Run("decrement at quantity 1 removes the line", func(t *testing.T) {
		e := New(store.NewMemoryStore())

		e.AddItem(chair)
		e.Decrement("p-chair")

		assert.Zero(t, e.Len())
	})

	t.Run("no line ever has quantity below 1", func(t *testing.T) {
		e := New(store.NewMemoryStore())

		e.AddItem(chair)
		e.Decrement("p-chair")
		e.Decrement("p-chair")

		assert.Zero(t, e.Len())
		for _, l := range e.Lines() {
			assert.GreaterOrEqual(t, l.Quantity, 1)
		}
	})

	t.Run("increment and decrement on absent id are no-ops", func(t *testing.T) {
		e := New(store.NewMemoryStore())

		e.AddItem(chair)
		e.Increment("p-missing")
		e.Decrement("p-missing")

		require.Equal(t, 1, e.Len())
		assert.Equal(t, 1, e.Lines()[0].Quantity)
	})
}

func TestEngine_Remove(t *testing.T) {
	t.Run("removes the line unconditionally", func(t *testing.T) {
		e := New(store.NewMemoryStore())

		e.AddItem(chair)
		e.Increment("p-chair")
		e.Remove("p-chair")

		assert.Zero(t, e.Len())
	})

	t.Run("removal is idempotent", func(t *testing.T) {
		e := New(store.NewMemoryStore())

		e.AddItem(chair)
		e.AddItem(lamp)

		e.Remove("p-chair")
		once := e.Lines()

		e.Remove("p-chair")
		twice := e.Lines()

		assert.Equal(t, once, twice)
	})
}

func TestEngine_Clear(t *testing.T) {
	kv := store.NewMemoryStore()
	e := New(kv)

	e.AddItem(chair)
	e.AddItem(lamp)
	e.Clear()

	assert.Zero(t, e.Len())
	assert.Zero(t, e.Total())

	// A fresh engine against the same store also starts empty.
	assert.Zero(t, New(kv).Len())
}

func TestEngine_Total(t *testing.T) {
	t.Run("sums unit price times quantity over all lines", func(t *testing.T) {
		e := New(store.NewMemoryStore())

		e.AddItem(chair) // 1000
		e.Increment("p-chair")
		e.AddItem(lamp) // 250
		e.Increment("p-lamp")
		e.Increment("p-lamp")

		assert.Equal(t, float64(2750), e.Total())
	})

	t.Run("empty cart totals zero", func(t *testing.T) {
		e := New(store.NewMemoryStore())

		assert.Zero(t, e.Total())
	})

	t.Run("total tracks mutations", func(t *testing.T) {
		e := New(store.NewMemoryStore())

		e.AddItem(chair)
		assert.Equal(t, float64(1000), e.Total())

		e.Increment("p-chair")
		assert.Equal(t, float64(2000), e.Total())

		e.Remove("p-chair")
		assert.Zero(t, e.Total())
	})
}

func TestEngine_Persistence(t *testing.T) {
	t.Run("round trips through a fresh engine", func(t *testing.T) {
		kv := store.NewMemoryStore()

		e1 := New(kv)
		e1.AddItem(chair)
		e1.AddItem(lamp)
		e1.Increment("p-chair")

		e2 := New(kv)
		assert.Equal(t, e1.Lines(), e2.Lines())
		assert.Equal(t, e1.Total(), e2.Total())
	})

	t.Run("corrupt snapshot starts an empty cart", func(t *testing.T) {
		kv := store.NewMemoryStore()
		require.NoError(t, kv.Set("cart", "{not json"))

		e := New(kv)
		assert.Zero(t, e.Len())
	})

	t.Run("unavailable store falls back to memory only", func(t *testing.T) {
		e := New(failingKV{})

		e.AddItem(chair)
		e.Increment("p-chair")

		require.Equal(t, 1, e.Len())
		assert.Equal(t, 2, e.Lines()[0].Quantity)
		assert.Equal(t, float64(2000), e.Total())
	})
}

func TestEngine_LinesIsACopy(t *testing.T) {
	e := New(store.NewMemoryStore())
	e.AddItem(chair)

	lines := e.Lines()
	lines[0].Quantity = 99

	assert.Equal(t, 1, e.Lines()[0].Quantity)
}
