package internal

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWalkBack(t *testing.T) {
	cameFrom := map[int]int{2: 1, 3: 2, 4: 3}

	t.Run("full chain", func(t *testing.T) {
		assert.Equal(t, []int{1, 2, 3, 4}, WalkBack(cameFrom, 4, 3))
	})

	t.Run("zero steps", func(t *testing.T) {
		assert.Equal(t, []int{1}, WalkBack(cameFrom, 1, 0))
	})

	t.Run("stops after steps moves", func(t *testing.T) {
		assert.Equal(t, []int{3, 4}, WalkBack(cameFrom, 4, 1))
	})

	t.Run("chain shorter than steps", func(t *testing.T) {
		assert.Equal(t, []int{1, 2, 3}, WalkBack(cameFrom, 3, 5))
	})
}
