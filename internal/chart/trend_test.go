package chart

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wardwatch/tokyo-ward-stats/internal/domain"
)

func TestTrendPNG(t *testing.T) {
	trend := []domain.TrendPoint{
		{Year: 2000, Population: 36035},
		{Year: 2005, Population: 41683},
		{Year: 2010, Population: 47115},
		{Year: 2015, Population: 58406},
		{Year: 2020, Population: 66680},
	}

	var buf bytes.Buffer
	err := TrendPNG(&buf, "千代田区", trend)
	require.NoError(t, err)

	// PNG signature.
	require.GreaterOrEqual(t, buf.Len(), 8)
	assert.Equal(t, []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}, buf.Bytes()[:8])
}

func TestTrendPNGSinglePoint(t *testing.T) {
	var buf bytes.Buffer
	err := TrendPNG(&buf, "中央区", []domain.TrendPoint{{Year: 2020, Population: 169179}})
	require.NoError(t, err)
	assert.NotZero(t, buf.Len())
}

func TestTrendPNGEmpty(t *testing.T) {
	var buf bytes.Buffer
	err := TrendPNG(&buf, "新宿区", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "新宿区")
	assert.Zero(t, buf.Len())
}
