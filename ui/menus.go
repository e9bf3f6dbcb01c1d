package ui

import (
	"fmt"

	"term-snake/config"
	"term-snake/game"
	"term-snake/game/manager"
	"term-snake/game/types"
)

var mainMenuOptions = []string{"1. Free Mode", "2. Vs Computer", "3. High Scores", "4. Quit"}

var difficultyOptions = []string{"1. Easy", "2. Medium", "3. Hard"}

// MainMenu blocks until one of the menu keys 1-4 is pressed.
func (r *Renderer) MainMenu() types.MenuChoice {
	for {
		_, h := r.Size()
		r.Clear()
		r.DrawBorder()
		r.drawCentered(h/2-6, "SNAKE GAME", titleStyle)
		for i, opt := range mainMenuOptions {
			r.drawCentered(h/2-2+i, opt, optionStyle)
		}
		r.Show()

		key, _ := r.readKey(-1)
		switch {
		case key.Is('1'):
			return types.MenuFree
		case key.Is('2'):
			return types.MenuVsComputer
		case key.Is('3'):
			return types.MenuHighScores
		case key.Is('4'), r.closed():
			return types.MenuQuit
		}
	}
}

// SelectDifficulty blocks until 1, 2 or 3 is pressed and returns the preset
// name. A closed terminal selects easy.
func (r *Renderer) SelectDifficulty() string {
	for {
		_, h := r.Size()
		r.Clear()
		r.DrawBorder()
		r.drawCentered(h/2-4, "Select Difficulty:", titleStyle)
		for i, opt := range difficultyOptions {
			r.drawCentered(h/2-2+i, opt, optionStyle)
		}
		r.Show()

		key, _ := r.readKey(-1)
		switch {
		case key.Is('1'), r.closed():
			return config.Easy
		case key.Is('2'):
			return config.Medium
		case key.Is('3'):
			return config.Hard
		}
	}
}

// ShowHighScores lists ranked scores above a summary of the whole history
// and waits for any key.
func (r *Renderer) ShowHighScores(ranked []int, summary manager.ScoreSummary) {
	_, h := r.Size()
	r.Clear()
	r.DrawBorder()
	r.drawCentered(h/2-6, "HIGH SCORES", titleStyle)
	if summary.Games > 0 {
		line := fmt.Sprintf("GAMES %d  AVG %.1f  MEDIAN %.0f", summary.Games, summary.Mean, summary.Median)
		r.drawCentered(h/2-4, line, optionStyle)
	}
	for i, score := range ranked {
		r.drawCentered(h/2-2+i, fmt.Sprintf("%d. %04d", i+1, score), optionStyle)
	}
	r.drawCentered(h/2+4, "Press any key to go back", roleStyles[types.RoleBorder])
	r.Show()

	for {
		if _, pressed := r.readKey(-1); pressed || r.closed() {
			return
		}
	}
}

// ShowGameOver reports a finished game and returns true to replay or false
// to quit.
func (r *Renderer) ShowGameOver(out game.Outcome) bool {
	for {
		_, h := r.Size()
		r.Clear()
		r.drawFrame(borderCorner, borderEdge)
		r.drawCentered(h/2-4, "GAME OVER!", titleStyle)
		r.drawCentered(h/2-2, fmt.Sprintf("FINAL SCORE: %04d", out.Score), roleStyles[types.RoleScore])
		r.drawCentered(h/2, out.Reason, reasonStyle)
		r.drawCentered(h/2+2, fmt.Sprintf("TOTAL TIME: %04d SEC", out.Elapsed), titleStyle)
		r.drawCentered(h/2+4, "Press 'R' to replay or 'Q' to quit", roleStyles[types.RoleBorder])
		r.Show()

		key, _ := r.readKey(-1)
		switch {
		case key.Is('r', 'R'):
			return true
		case key.Is('q', 'Q'), r.closed():
			return false
		}
	}
}
