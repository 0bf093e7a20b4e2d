package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTierFor(t *testing.T) {
	// Ten SKUs: ranks 0-1 are A (top 20%), 2-4 are B (next 30%), rest C.
	n := 10
	assert.Equal(t, "A", TierFor(0, n))
	assert.Equal(t, "A", TierFor(1, n))
	assert.Equal(t, "B", TierFor(2, n))
	assert.Equal(t, "B", TierFor(4, n))
	assert.Equal(t, "C", TierFor(5, n))
	assert.Equal(t, "C", TierFor(9, n))
}

func TestTierForSmallCatalog(t *testing.T) {
	// With fewer than five SKUs the A bucket rounds down to zero, so
	// everything lands in B or C.
	assert.Equal(t, "B", TierFor(0, 3))
	assert.Equal(t, "C", TierFor(1, 3))
	assert.Equal(t, "C", TierFor(2, 3))

	assert.Equal(t, "C", TierFor(0, 1))
}

func TestRankSKUsByVelocityDescending(t *testing.T) {
	velocity := map[string]int{"SLOW": 2, "FAST": 90, "MEDIUM": 40}

	ranked := RankSKUs([]string{"SLOW", "MEDIUM", "FAST"}, velocity)

	assert.Equal(t, []string{"FAST", "MEDIUM", "SLOW"}, ranked)
}

func TestRankSKUsUnmovedRankLastAlphabetically(t *testing.T) {
	velocity := map[string]int{"MOVER": 10}

	ranked := RankSKUs([]string{"ZZZ", "MOVER", "AAA"}, velocity)

	assert.Equal(t, []string{"MOVER", "AAA", "ZZZ"}, ranked)
}

func TestRankSKUsDoesNotMutateInput(t *testing.T) {
	input := []string{"B", "A"}
	RankSKUs(input, map[string]int{"A": 5})

	assert.Equal(t, []string{"B", "A"}, input)
}
