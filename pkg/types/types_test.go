package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTemperatureRange(t *testing.T) {
	tests := []struct {
		in      string
		want    TemperatureRange
		wantErr bool
	}{
		{in: "15-35", want: TemperatureRange{Min: 15, Max: 35}},
		{in: " 20 - 32 ", want: TemperatureRange{Min: 20, Max: 32}},
		{in: "-5-10", want: TemperatureRange{Min: -5, Max: 10}},
		{in: "-12--3", want: TemperatureRange{Min: -12, Max: -3}},
		{in: "", wantErr: true},
		{in: "25", wantErr: true},
		{in: "hot-cold", wantErr: true},
		{in: "30-10", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseTemperatureRange(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTemperatureRange(t *testing.T) {
	r := TemperatureRange{Min: 15, Max: 30}
	assert.Equal(t, 22.5, r.Average())
	assert.Equal(t, "15-30", r.String())
}
