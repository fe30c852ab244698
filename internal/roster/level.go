package roster

import (
	"sort"

	"github.com/abhisek/rote/internal/question"
)

// Level is a view over the roster's flat question list: the positions of
// every question whose minimum score equals Score.
type Level struct {
	Score   int
	Indices []int
}

// Len returns the number of questions in the level.
func (l Level) Len() int {
	return len(l.Indices)
}

// sortByScore orders qs ascending by minimum score, keeping the relative
// order of equal scores.
func sortByScore(qs []question.Question) {
	sort.SliceStable(qs, func(i, j int) bool {
		return question.MinScore(qs[i]) < question.MinScore(qs[j])
	})
}

// normalize sorts qs and shifts every score so the lowest becomes zero.
// It returns the amount subtracted.
func normalize(qs []question.Question) int {
	if len(qs) == 0 {
		return 0
	}
	sortByScore(qs)
	floor := question.MinScore(qs[0])
	if floor != 0 {
		for _, q := range qs {
			question.DecreaseScore(q, floor)
		}
	}
	return floor
}

// partition groups an ascending, normalized list into levels. Starting from
// score zero it extracts every question at the running floor, skipping
// floors with no members.
func partition(qs []question.Question) []Level {
	var levels []Level
	for i := 0; i < len(qs); {
		score := question.MinScore(qs[i])
		lvl := Level{Score: score}
		for i < len(qs) && question.MinScore(qs[i]) == score {
			lvl.Indices = append(lvl.Indices, i)
			i++
		}
		levels = append(levels, lvl)
	}
	return levels
}
