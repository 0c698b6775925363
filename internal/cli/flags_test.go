package cli

import (
	"testing"

	"github.com/alexanderramin/trestle/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDateValue(t *testing.T) {
	var d dateValue
	assert.Equal(t, "", d.String())
	fallback := testutil.Date("2024-06-01")
	assert.Equal(t, fallback, d.orDefault(fallback))

	require.Error(t, d.Set("2025/01/01"))
	assert.False(t, d.set)

	require.NoError(t, d.Set("2025-03-09"))
	assert.Equal(t, "2025-03-09", d.String())
	assert.Equal(t, testutil.Date("2025-03-09"), d.orDefault(fallback))
	assert.Equal(t, "date", d.Type())
}

func TestMoneyValue(t *testing.T) {
	var m moneyValue
	require.Error(t, m.Set("abc"))
	require.Error(t, m.Set("-1"))
	require.NoError(t, m.Set("1250.50"))
	assert.Equal(t, "1250.5", m.String())
	assert.True(t, m.set)
}

func TestParentCode(t *testing.T) {
	tests := []struct {
		name     string
		code     string
		explicit string
		changed  bool
		want     string
	}{
		{"root code", "3", "", false, ""},
		{"inferred", "1.2.3", "", false, "1.2"},
		{"explicit wins", "1.2.3", "4", true, "4"},
		{"explicit root", "1.2", "", true, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, parentCode(tt.code, tt.explicit, tt.changed))
		})
	}
}

func TestDepFormValues_LagDays(t *testing.T) {
	assert.Equal(t, 0, depFormValues{}.lagDays())
	assert.Equal(t, -3, depFormValues{Lag: "-3"}.lagDays())
	require.NoError(t, validateLag("-3"))
	require.Error(t, validateLag("1.5"))
	require.NoError(t, validateDependencyType("SS"))
	require.Error(t, validateDependencyType("XX"))
}
