package roster

import "errors"

// DefaultMinLevelSize is the smallest level worth a drill session.
const DefaultMinLevelSize = 3

// ErrNoQuestions is returned when there is nothing to drill.
var ErrNoQuestions = errors.New("no questions to drill")

// SelectLevel returns the index of the lowest level holding at least
// minSize questions. When no level is large enough it falls back to the
// lowest level and reports fallback=true.
func SelectLevel(levels []Level, minSize int) (idx int, fallback bool, err error) {
	if len(levels) == 0 {
		return 0, false, ErrNoQuestions
	}
	for i, l := range levels {
		if l.Len() >= minSize {
			return i, false, nil
		}
	}
	return 0, true, nil
}
