package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimeString_AddMinutes(t *testing.T) {
	ts, err := NewTimeStringFromString("17:00")
	require.NoError(t, err)

	next, err := ts.AddMinutes(180)
	require.NoError(t, err)
	assert.Equal(t, TimeString("20:00"), next)

	_, err = ts.AddMinutes(8 * 60)
	assert.ErrorIs(t, err, ErrInvalidTimeString)
}

func TestTimeString_Validate(t *testing.T) {
	tests := []struct {
		in    string
		valid bool
	}{
		{"00:00", true},
		{"23:59", true},
		{"24:00", false},
		{"7:00", false},
		{"17-00", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			_, err := NewTimeStringFromString(tt.in)
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrInvalidTimeString)
			}
		})
	}
}

func TestParseTimeRange(t *testing.T) {
	tr, err := ParseTimeRange("17:00-20:00")
	require.NoError(t, err)
	assert.Equal(t, TimeString("17:00"), tr.Start)
	assert.Equal(t, TimeString("20:00"), tr.End)
	assert.Equal(t, "17:00-20:00", tr.String())
	assert.Equal(t, 180, tr.DurationMinutes())

	_, err = ParseTimeRange("20:00-17:00")
	assert.ErrorIs(t, err, ErrInvalidTimeRange)

	_, err = ParseTimeRange("17:00")
	assert.ErrorIs(t, err, ErrInvalidTimeRange)
}

func TestTimeRange_Scan(t *testing.T) {
	var tr TimeRange
	require.NoError(t, tr.Scan([]byte("14:00-17:00")))
	assert.Equal(t, "14:00-17:00", tr.String())

	require.NoError(t, tr.Scan(nil))
	assert.True(t, tr.IsZero())

	assert.Error(t, tr.Scan(42))
}
