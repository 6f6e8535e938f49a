package valueobject

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	t.Run("calendar date", func(t *testing.T) {
		d, err := ParseDate("2024-03-15")
		require.NoError(t, err)
		assert.Equal(t, "2024-03-15", d.String())
	})

	t.Run("timestamp keeps the written date", func(t *testing.T) {
		d, err := ParseDate("2024-03-15T23:30:00-05:00")
		require.NoError(t, err)
		assert.Equal(t, "2024-03-15", d.String())
	})

	t.Run("rejects garbage", func(t *testing.T) {
		_, err := ParseDate("15/03/2024")
		assert.Error(t, err)
		_, err = ParseDate("")
		assert.Error(t, err)
	})
}

func TestDate_Within(t *testing.T) {
	start := MustParseDate("2024-01-01")
	end := MustParseDate("2024-01-31")

	assert.True(t, MustParseDate("2024-01-01").Within(start, end))
	assert.True(t, MustParseDate("2024-01-31").Within(start, end))
	assert.True(t, MustParseDate("2024-01-15").Within(start, end))
	assert.False(t, MustParseDate("2023-12-31").Within(start, end))
	assert.False(t, MustParseDate("2024-02-01").Within(start, end))
}

func TestDate_JSON(t *testing.T) {
	type wrapper struct {
		Date Date  `json:"date"`
		Opt  *Date `json:"opt,omitempty"`
	}

	var w wrapper
	require.NoError(t, json.Unmarshal([]byte(`{"date":"2024-06-01T10:00:00Z"}`), &w))
	assert.Equal(t, NewDate(2024, time.June, 1), w.Date)
	assert.Nil(t, w.Opt)

	out, err := json.Marshal(w)
	require.NoError(t, err)
	assert.JSONEq(t, `{"date":"2024-06-01"}`, string(out))

	var zero wrapper
	out, err = json.Marshal(zero)
	require.NoError(t, err)
	assert.JSONEq(t, `{"date":null}`, string(out))

	assert.Error(t, json.Unmarshal([]byte(`{"date":12}`), &w))
}

func TestAmount(t *testing.T) {
	t.Run("parses decimal strings exactly", func(t *testing.T) {
		a, err := NewAmountFromString("0.10")
		require.NoError(t, err)
		b, err := NewAmountFromString("0.20")
		require.NoError(t, err)
		assert.Equal(t, "0.30", FormatAmount(Sum(a, b)))
	})

	t.Run("rejects negative", func(t *testing.T) {
		_, err := NewAmount(decimal.NewFromInt(-1))
		assert.ErrorIs(t, err, ErrNegativeAmount)
	})

	t.Run("rejects non numeric", func(t *testing.T) {
		_, err := NewAmountFromString("abc")
		assert.Error(t, err)
	})

	t.Run("empty sum is zero", func(t *testing.T) {
		assert.True(t, Sum().IsZero())
	})
}
