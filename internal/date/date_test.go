package date

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddMonths(t *testing.T) {
	tests := []struct {
		start  string
		months int
		want   string
	}{
		{"2024-01-31", 1, "2024-02-29"},
		{"2023-01-31", 1, "2023-02-28"},
		{"2024-01-31", 2, "2024-03-31"},
		{"2024-01-31", 3, "2024-04-30"},
		{"2024-03-15", 0, "2024-03-15"},
		{"2024-11-30", 3, "2025-02-28"},
		{"2024-12-31", 12, "2025-12-31"},
		{"2024-02-29", 12, "2025-02-28"},
		{"2024-05-31", -3, "2024-02-29"},
	}
	for _, tt := range tests {
		t.Run(tt.start, func(t *testing.T) {
			got := MustParse(tt.start).AddMonths(tt.months)
			assert.Equal(t, tt.want, got.String())
		})
	}
}

func TestMonthsSince(t *testing.T) {
	start := MustParse("2020-01-01")
	assert.Equal(t, 0, MustParse("2020-01-31").MonthsSince(start))
	assert.Equal(t, 60, MustParse("2025-01-01").MonthsSince(start))
	assert.Equal(t, 71, MustParse("2025-12-15").MonthsSince(start))
	assert.Equal(t, -1, MustParse("2019-12-31").MonthsSince(start))
}

func TestCompare(t *testing.T) {
	a := MustParse("2024-01-15")
	b := MustParse("2024-01-20")
	assert.True(t, a.Before(b))
	assert.True(t, b.After(a))
	assert.False(t, a.After(a))
	assert.Equal(t, 0, a.Compare(New(2024, time.January, 15)))
}

func TestParse(t *testing.T) {
	d, err := Parse("2025-7-1")
	require.NoError(t, err)
	assert.Equal(t, "2025-07-01", d.String())

	_, err = Parse("01/07/2025")
	assert.Error(t, err)
}

func TestOfKeepsLocalCalendarDay(t *testing.T) {
	paris := time.FixedZone("CET", 3600)
	// 00:30 in Paris is still the previous day in UTC.
	t0 := time.Date(2024, time.March, 1, 0, 30, 0, 0, paris)
	assert.Equal(t, "2024-03-01", Of(t0).String())
}

func TestJSON(t *testing.T) {
	var v struct {
		On Date `json:"on"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"on":"2024-02-29"}`), &v))
	assert.Equal(t, New(2024, time.February, 29), v.On)

	b, err := json.Marshal(v)
	require.NoError(t, err)
	assert.JSONEq(t, `{"on":"2024-02-29"}`, string(b))
}

func TestScan(t *testing.T) {
	var d Date
	require.NoError(t, d.Scan(time.Date(2024, 1, 20, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "2024-01-20", d.String())

	require.NoError(t, d.Scan("2024-02-01T00:00:00Z"))
	assert.Equal(t, "2024-02-01", d.String())

	require.NoError(t, d.Scan([]byte("2023-12-31")))
	assert.Equal(t, "2023-12-31", d.String())

	assert.Error(t, d.Scan(42))

	v, err := d.Value()
	require.NoError(t, err)
	assert.Equal(t, "2023-12-31", v)
}
