package manager

import (
	"golang.org/x/exp/rand"

	"term-snake/game/entity"
	"term-snake/game/types"
)

// maxSpawnTriesPerCell bounds rejection sampling before falling back to a scan.
const maxSpawnTriesPerCell = 8

type FoodManager struct {
	grid types.Grid
	rng  *rand.Rand
}

func NewFoodManager(grid types.Grid, rng *rand.Rand) *FoodManager {
	return &FoodManager{
		grid: grid,
		rng:  rng,
	}
}

// PlaceFood picks a uniformly random inner cell that the snake does not
// occupy. The outer ring stays free for the border even on wrapping boards.
func (fm *FoodManager) PlaceFood(snake *entity.Snake) types.Point {
	innerH := fm.grid.Height - 2
	innerW := fm.grid.Width - 2

	tries := innerH * innerW * maxSpawnTriesPerCell
	for i := 0; i < tries; i++ {
		food := types.Point{
			X: fm.rng.Intn(innerW) + 1,
			Y: fm.rng.Intn(innerH) + 1,
		}
		if !snake.Contains(food) {
			return food
		}
	}

	// The board is nearly full: take the first free inner cell.
	for y := 1; y <= innerH; y++ {
		for x := 1; x <= innerW; x++ {
			food := types.Point{X: x, Y: y}
			if !snake.Contains(food) {
				return food
			}
		}
	}
	return types.Point{X: 1, Y: 1}
}
