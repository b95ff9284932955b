package models

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDate_JSON(t *testing.T) {
	d := NewDate(time.Date(2024, 1, 2, 15, 30, 0, 0, time.FixedZone("MSK", 3*3600)))

	data, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, `"2024-01-02"`, string(data))

	var back Date
	require.NoError(t, json.Unmarshal(data, &back))
	assert.True(t, d.Equal(back))
}

func TestDate_UnmarshalInvalid(t *testing.T) {
	var d Date
	err := json.Unmarshal([]byte(`"02.01.2024"`), &d)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrValidation))
}

func TestDate_Scan(t *testing.T) {
	tests := []struct {
		name    string
		src     any
		want    string
		wantErr bool
	}{
		{name: "time", src: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), want: "2024-03-01"},
		{name: "string", src: "2024-03-02", want: "2024-03-02"},
		{name: "bytes", src: []byte("2024-03-03"), want: "2024-03-03"},
		{name: "unsupported", src: 42, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d Date
			err := d.Scan(tt.src)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, d.String())
		})
	}
}

func TestDate_Between(t *testing.T) {
	start, _ := ParseDate("2024-01-01")
	end := start.AddDays(2)

	assert.True(t, start.Between(start, end))
	assert.True(t, start.AddDays(1).Between(start, end))
	assert.True(t, end.Between(start, end))
	assert.False(t, end.AddDays(1).Between(start, end))
	assert.False(t, start.AddDays(-1).Between(start, end))
}

func TestMealType_Valid(t *testing.T) {
	assert.True(t, Breakfast.Valid())
	assert.True(t, Lunch.Valid())
	assert.True(t, Dinner.Valid())
	assert.False(t, MealType("snack").Valid())
}
