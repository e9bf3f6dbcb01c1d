package manager

import (
	"term-snake/game/entity"
	"term-snake/game/types"
)

// CollisionType represents the type of collision
type CollisionType int

const (
	NoCollision CollisionType = iota
	WallCollision
	SelfCollision
)

func (c CollisionType) String() string {
	switch c {
	case WallCollision:
		return "wall-collision"
	case SelfCollision:
		return "self-collision"
	default:
		return "none"
	}
}

type CollisionManager struct {
	grid      types.Grid
	hasBorder bool
}

func NewCollisionManager(grid types.Grid, hasBorder bool) *CollisionManager {
	return &CollisionManager{
		grid:      grid,
		hasBorder: hasBorder,
	}
}

// CheckCollision classifies what the head would hit at pos.
//
// Only Body[1:] counts as an obstacle. The current head is not, but the
// segment right behind it is, so reversing onto the neck is a self collision.
func (cm *CollisionManager) CheckCollision(snake *entity.Snake, pos types.Point) CollisionType {
	if snake.BodyContains(pos) {
		return SelfCollision
	}
	if cm.isWallCollision(pos) {
		return WallCollision
	}
	return NoCollision
}

// IsSafe reports whether pos is a legal next head position.
func (cm *CollisionManager) IsSafe(snake *entity.Snake, pos types.Point) bool {
	return cm.CheckCollision(snake, pos) == NoCollision
}

// isWallCollision checks if a position is on or beyond the outer ring. Boards
// without a border wrap, so nothing is a wall there.
func (cm *CollisionManager) isWallCollision(pos types.Point) bool {
	if !cm.hasBorder {
		return false
	}
	return !cm.grid.Inner(pos)
}

// HasBorder reports whether the outer ring is a wall.
func (cm *CollisionManager) HasBorder() bool {
	return cm.hasBorder
}
