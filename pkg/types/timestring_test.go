package types

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTimeStringFromString(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{name: "hh:mm", input: "08:30", want: "08:30"},
		{name: "with seconds from postgres", input: "18:00:00", want: "18:00"},
		{name: "padded spaces", input: " 09:05 ", want: "09:05"},
		{name: "garbage", input: "9am", wantErr: true},
		{name: "hour overflow", input: "25:00", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewTimeStringFromString(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidTimeString)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.String())
		})
	}
}

func TestTimeString_AddMinutes(t *testing.T) {
	start := MustTimeString("23:30")

	end, err := start.AddMinutes(30)
	require.NoError(t, err)
	assert.Equal(t, 24*60, end.Minutes())

	_, err = start.AddMinutes(31)
	assert.ErrorIs(t, err, ErrTimeOverflow)
}

func TestTimeString_On(t *testing.T) {
	loc := time.FixedZone("UTC-5", -5*3600)
	day := time.Date(2024, 5, 7, 15, 45, 10, 0, loc)

	got := MustTimeString("08:30").On(day)

	assert.Equal(t, time.Date(2024, 5, 7, 8, 30, 0, 0, loc), got)
}

func TestTimeString_JSONAndScan(t *testing.T) {
	ts := MustTimeString("07:15")

	data, err := json.Marshal(ts)
	require.NoError(t, err)
	assert.JSONEq(t, `"07:15"`, string(data))

	var decoded TimeString
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, ts, decoded)

	var scanned TimeString
	require.NoError(t, scanned.Scan([]byte("07:15:00")))
	assert.Equal(t, ts, scanned)

	assert.Error(t, scanned.Scan(42))
}
