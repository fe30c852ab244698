package drill

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/abhisek/rote/internal/roster"
)

func TestRenderTally(t *testing.T) {
	var buf bytes.Buffer
	level := roster.Level{Score: 0, Indices: []int{0, 1, 2, 3}}
	RenderTally(&buf, level, Tally{Drilled: 4, FirstTry: 3, Missed: 1}, true)

	out := buf.String()
	assert.Contains(t, out, "Drilled level 0 (4 question(s))")
	assert.Contains(t, out, "first try 3 missed 1 skipped 0")
	assert.Contains(t, out, "accuracy [###############-----] 75%")
}

func TestRenderTally_NothingDrilled(t *testing.T) {
	var buf bytes.Buffer
	RenderTally(&buf, roster.Level{Score: 2, Indices: []int{0}}, Tally{}, true)
	assert.NotContains(t, buf.String(), "accuracy")
}

func TestRenderLevels(t *testing.T) {
	var buf bytes.Buffer
	RenderLevels(&buf, []roster.Level{{Score: 0, Indices: []int{0, 1}}, {Score: 3, Indices: []int{2}}}, true)
	assert.Equal(t, "Levels\n   0 2 question(s)\n   3 1 question(s)\n", buf.String())
}
