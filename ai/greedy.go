package ai

import (
	"golang.org/x/exp/rand"

	"term-snake/game/entity"
	"term-snake/game/manager"
	"term-snake/game/types"
)

// Policy picks the next direction for an autonomous snake.
type Policy interface {
	ChooseMove(snake *entity.Snake, food types.Point) types.Direction
}

// Greedy moves to whichever safe neighbour is closest to the food. It never
// looks further than one step, so it can trap itself.
type Greedy struct {
	grid       types.Grid
	collisions *manager.CollisionManager
	rng        *rand.Rand
}

func NewGreedy(grid types.Grid, collisions *manager.CollisionManager, rng *rand.Rand) *Greedy {
	return &Greedy{
		grid:       grid,
		collisions: collisions,
		rng:        rng,
	}
}

// ChooseMove returns the safe direction minimising the Manhattan distance
// from the new head to food. Ties go to the earliest of Up, Down, Left, Right.
// With no safe direction it picks one of the four at random.
func (g *Greedy) ChooseMove(snake *entity.Snake, food types.Point) types.Direction {
	head := snake.GetHead()

	best := types.Direction(-1)
	bestDist := 0
	for _, dir := range types.Directions {
		candidate := g.grid.Wrap(head, dir)
		if !g.collisions.IsSafe(snake, candidate) {
			continue
		}
		dist := types.Manhattan(candidate, food)
		if best < 0 || dist < bestDist {
			best = dir
			bestDist = dist
		}
	}

	if best < 0 {
		return types.Directions[g.rng.Intn(len(types.Directions))]
	}
	return best
}
