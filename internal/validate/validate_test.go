package validate

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	perr "ticketlist/internal/errors"
)

type window struct {
	From time.Time `json:"start_date"`
	To   time.Time `json:"end_date" validate:"gtefield=From"`
}

type mode struct {
	Weekend string `toml:"weekend" validate:"oneof=current next"`
}

func TestStructAcceptsValid(t *testing.T) {
	from := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, Struct(window{From: from, To: from}))
	require.NoError(t, Struct(mode{Weekend: "next"}))
}

func TestStructReportsFieldByTagName(t *testing.T) {
	from := time.Date(2026, 5, 2, 0, 0, 0, 0, time.UTC)
	err := Struct(window{From: from, To: from.Add(-time.Hour)})
	require.Error(t, err)

	e, ok := perr.As(err)
	require.True(t, ok)
	assert.Equal(t, perr.KindValidation, e.Kind())
	assert.Equal(t, "end_date", e.Field())
	assert.Contains(t, e.Message(), "must not be before")
}

func TestStructFallsBackToTomlTag(t *testing.T) {
	err := Struct(mode{Weekend: "someday"})
	require.Error(t, err)

	e, ok := perr.As(err)
	require.True(t, ok)
	assert.Equal(t, "weekend", e.Field())
	assert.Contains(t, e.Message(), "current next")
}
