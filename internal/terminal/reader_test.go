package terminal

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScanner_ReadLine(t *testing.T) {
	out := &bytes.Buffer{}
	s := NewScanner(strings.NewReader("  Paris \n\nRome\n"), out)
	ctx := context.Background()

	got, err := s.ReadLine(ctx, "> ")
	require.NoError(t, err)
	assert.Equal(t, "Paris", got)

	got, err = s.ReadLine(ctx, "> ")
	require.NoError(t, err)
	assert.Equal(t, "", got)

	got, err = s.ReadLine(ctx, "> ")
	require.NoError(t, err)
	assert.Equal(t, "Rome", got)

	_, err = s.ReadLine(ctx, "> ")
	assert.ErrorIs(t, err, io.EOF)

	assert.True(t, strings.HasPrefix(out.String(), "> > > > "))
}

func TestScanner_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewScanner(strings.NewReader("x\n"), io.Discard).ReadLine(ctx, "")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestScanner_CancelWhileBlocked(t *testing.T) {
	pr, pw := io.Pipe()
	defer pw.Close()

	ctx, cancel := context.WithCancel(context.Background())
	s := NewScanner(pr, io.Discard)

	errc := make(chan error, 1)
	go func() {
		_, err := s.ReadLine(ctx, "> ")
		errc <- err
	}()

	time.Sleep(20 * time.Millisecond)
	cancel()

	select {
	case err := <-errc:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("ReadLine did not return after cancel")
	}
}

func TestScanner_ReadsAfterIdle(t *testing.T) {
	pr, pw := io.Pipe()
	s := NewScanner(pr, io.Discard)

	go func() {
		time.Sleep(20 * time.Millisecond)
		io.WriteString(pw, "late\n")
		pw.Close()
	}()

	got, err := s.ReadLine(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, "late", got)

	_, err = s.ReadLine(context.Background(), "")
	assert.ErrorIs(t, err, io.EOF)
}

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func typeText(m promptModel, s string) promptModel {
	for _, r := range s {
		updated, _ := m.Update(keyPress(r))
		m = updated.(promptModel)
	}
	return m
}

func TestPromptModel_Enter(t *testing.T) {
	m := typeText(newPromptModel("› ", nil), "Paris")

	updated, cmd := m.Update(specialKey(tea.KeyEnter))
	m = updated.(promptModel)

	assert.True(t, m.done)
	assert.Equal(t, "Paris", m.value)
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestPromptModel_CtrlC(t *testing.T) {
	m := newPromptModel("› ", nil)

	updated, cmd := m.Update(tea.KeyPressMsg{Code: 'c', Mod: tea.ModCtrl})
	m = updated.(promptModel)

	assert.True(t, m.interrupted)
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestPromptModel_History(t *testing.T) {
	m := newPromptModel("› ", []string{"first", "second"})
	m = typeText(m, "dra")

	step := func(code rune) {
		updated, _ := m.Update(specialKey(code))
		m = updated.(promptModel)
	}

	step(tea.KeyUp)
	assert.Equal(t, "second", m.input.Value())
	step(tea.KeyUp)
	assert.Equal(t, "first", m.input.Value())
	step(tea.KeyUp)
	assert.Equal(t, "first", m.input.Value(), "stays on oldest entry")
	step(tea.KeyDown)
	assert.Equal(t, "second", m.input.Value())
	step(tea.KeyDown)
	assert.Equal(t, "dra", m.input.Value(), "draft restored")
	step(tea.KeyDown)
	assert.Equal(t, "dra", m.input.Value())
}
