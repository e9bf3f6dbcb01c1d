package entity

import (
	"term-snake/game/types"
)

// Snake is an ordered body, head first. Body[0] is the head and the last
// element is the tail.
type Snake struct {
	Body      []types.Point
	Direction types.Direction
}

// NewSnake lays out a straight snake of the given length with its head at
// head and the body trailing opposite to dir.
func NewSnake(head types.Point, dir types.Direction, length int) *Snake {
	if length < 1 {
		length = 1
	}
	step := dir.Opposite().Delta()
	body := make([]types.Point, 0, length)
	for i := 0; i < length; i++ {
		body = append(body, types.Point{X: head.X + step.X*i, Y: head.Y + step.Y*i})
	}
	return &Snake{
		Body:      body,
		Direction: dir,
	}
}

func (s *Snake) GetHead() types.Point {
	return s.Body[0]
}

func (s *Snake) Len() int {
	return len(s.Body)
}

// Move pushes newHead onto the front of the body.
func (s *Snake) Move(newHead types.Point) {
	s.Body = append(s.Body, types.Point{})
	copy(s.Body[1:], s.Body)
	s.Body[0] = newHead
}

// RemoveTail drops the last segment and returns the vacated cell.
func (s *Snake) RemoveTail() (types.Point, bool) {
	if len(s.Body) <= 1 {
		return types.Point{}, false
	}
	tail := s.Body[len(s.Body)-1]
	s.Body = s.Body[:len(s.Body)-1]
	return tail, true
}

// Contains reports whether any segment, head included, occupies p.
func (s *Snake) Contains(p types.Point) bool {
	for _, part := range s.Body {
		if part == p {
			return true
		}
	}
	return false
}

// BodyContains is like Contains but ignores the head.
func (s *Snake) BodyContains(p types.Point) bool {
	for _, part := range s.Body[1:] {
		if part == p {
			return true
		}
	}
	return false
}
