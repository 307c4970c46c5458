package mysql

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePrices(t *testing.T) {
	call, put, err := parsePrices("10.45061887", "5.57352602")
	require.NoError(t, err)
	assert.Equal(t, "10.45061887", call.String())
	assert.Equal(t, "5.57352602", put.String())
}

func TestParsePrices_CorruptRow(t *testing.T) {
	tests := []struct {
		name      string
		callPrice string
		putPrice  string
	}{
		{"corrupt call", "not-a-number", "5.57"},
		{"corrupt put", "10.45", ""},
		{"both corrupt", "", "garbage"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := parsePrices(tt.callPrice, tt.putPrice)
			// 损坏的行必须报错，而不是静默解析为零价格
			assert.Error(t, err)
		})
	}
}
