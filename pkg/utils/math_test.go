package utils_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dako7777777/rental-bidding-tool/pkg/utils"
)

func TestLinspace(t *testing.T) {
	got := utils.Linspace(0, 1, 5)
	require.Len(t, got, 5)
	assert.InDeltaSlice(t, []float64{0, 0.25, 0.5, 0.75, 1}, got, 1e-12)

	assert.Equal(t, []float64{3}, utils.Linspace(3, 9, 1))
	assert.Nil(t, utils.Linspace(3, 9, 0))
}

func TestClamp(t *testing.T) {
	assert.Equal(t, 1.0, utils.Clamp(4, -1, 1))
	assert.Equal(t, -1.0, utils.Clamp(-4, -1, 1))
	assert.Equal(t, 0.5, utils.Clamp(0.5, -1, 1))
}

func TestRoundTo(t *testing.T) {
	assert.Equal(t, 2134.44, utils.RoundTo(2134.4439, 2))
}

func TestGenerateRunID(t *testing.T) {
	id := utils.GenerateRunID("recommend", "Downtown Vancouver")
	assert.True(t, strings.HasPrefix(id, "recommend-downtown-vancouver-"), id)
	assert.Len(t, id, len("recommend-downtown-vancouver-")+8)

	bare := utils.GenerateRunID("final-round", "")
	assert.Len(t, bare, len("final-round-")+8)
}
