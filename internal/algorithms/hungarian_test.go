package algorithms

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHungarianMinCostSimpleAssignment(t *testing.T) {
	cost := [][]float64{
		{4, 1, 3},
		{2, 0, 5},
		{3, 2, 2},
	}
	assignment, total := HungarianMinCost(cost)

	assert.Len(t, assignment, 3)
	seen := make(map[int]bool)
	for _, j := range assignment {
		assert.False(t, seen[j], "column %d assigned twice", j)
		seen[j] = true
	}
	assert.Equal(t, 5.0, total)
}

func TestHungarianMinCostSingleElement(t *testing.T) {
	assignment, total := HungarianMinCost([][]float64{{7}})
	assert.Equal(t, []int{0}, assignment)
	assert.Equal(t, 7.0, total)
}

func TestHungarianMinCostEmpty(t *testing.T) {
	assignment, total := HungarianMinCost(nil)
	assert.Nil(t, assignment)
	assert.Equal(t, 0.0, total)
}
