package manager

import (
	"fmt"

	"snake-duel/game/types"

	"golang.org/x/exp/slices"
)

// maxHistory caps the per-round winner history kept for the status line.
const maxHistory = 50

// ScoreManager keeps the tally of the current session in memory only.
type ScoreManager struct {
	rounds  int
	wins    [2]int
	draws   int
	longest int
	history []int
}

func NewScoreManager() *ScoreManager {
	return &ScoreManager{
		history: make([]int, 0, maxHistory),
	}
}

// Record adds a finished round.
func (sm *ScoreManager) Record(r types.RoundResult) {
	sm.rounds++
	switch r.Winner {
	case types.Draw:
		sm.draws++
	case 0, 1:
		sm.wins[r.Winner]++
	}
	if r.Steps > sm.longest {
		sm.longest = r.Steps
	}

	if len(sm.history) >= maxHistory {
		sm.history = sm.history[1:]
	}
	sm.history = append(sm.history, r.Winner)
}

func (sm *ScoreManager) Rounds() int {
	return sm.rounds
}

// Wins returns the rounds won by slot. Unknown slots have none.
func (sm *ScoreManager) Wins(slot int) int {
	if slot < 0 || slot >= len(sm.wins) {
		return 0
	}
	return sm.wins[slot]
}

func (sm *ScoreManager) Draws() int {
	return sm.draws
}

// Longest returns the most move steps any round lasted.
func (sm *ScoreManager) Longest() int {
	return sm.longest
}

// History returns the winners of the most recent rounds, oldest first.
func (sm *ScoreManager) History() []int {
	return slices.Clone(sm.history)
}

// Summary is the one-line status shown by the frontends.
func (sm *ScoreManager) Summary() string {
	return fmt.Sprintf("P1 %d  P2 %d  draws %d  round %d", sm.wins[0], sm.wins[1], sm.draws, sm.rounds+1)
}
