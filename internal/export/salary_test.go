package export

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSalary(t *testing.T) {
	tests := []struct {
		name  string
		input string
		min   float64
		max   float64
		ok    bool
	}{
		{"dollar range with thousands separators", "$80,000 - $120,000", 80000, 120000, true},
		{"plain range", "60000 - 90000", 60000, 90000, true},
		{"k suffix range", "80k - 120k", 80000, 120000, true},
		{"single value", "120000", 120000, 120000, true},
		{"single value with k", "$90k", 90000, 90000, true},
		{"hourly rate degrades to nil", "$50/hr - $70/hr", 0, 0, false},
		{"free text", "Competitive", 0, 0, false},
		{"empty string", "", 0, 0, false},
		{"whitespace", "   ", 0, 0, false},
		{"partial garbage range", "$80,000 - negotiable", 0, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			min, max := ParseSalary(tt.input)
			if !tt.ok {
				assert.Nil(t, min)
				assert.Nil(t, max)
				return
			}
			require.NotNil(t, min)
			require.NotNil(t, max)
			assert.Equal(t, tt.min, *min)
			assert.Equal(t, tt.max, *max)
		})
	}
}

func TestSalaryAverage(t *testing.T) {
	min, max := ParseSalary("$80,000 - $120,000")
	avg := SalaryAverage(min, max)
	require.NotNil(t, avg)
	assert.Equal(t, float64(100000), *avg)

	assert.Nil(t, SalaryAverage(nil, max))
	assert.Nil(t, SalaryAverage(min, nil))
	assert.Nil(t, SalaryAverage(nil, nil))
}
