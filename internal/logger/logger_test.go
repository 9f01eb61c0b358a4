package logger

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestSetup(t *testing.T) {
	t.Run("defaults to info level", func(t *testing.T) {
		assert.Equal(t, zerolog.InfoLevel, Setup(false).GetLevel())
	})

	t.Run("debug mode lowers the level", func(t *testing.T) {
		assert.Equal(t, zerolog.DebugLevel, Setup(true).GetLevel())
	})
}
