package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tiberius-s/fireside"
	"github.com/tiberius-s/fireside/internal/presentation/tui"
)

const presentDeck = `
title: CLI Deck
nodes:
  - id: one
    blocks:
      - kind: text
        text: First
  - id: fork
    branch-point:
      prompt: Pick
      options:
        - key: x
          label: Exit early
          target: three
  - id: two
    blocks:
      - kind: text
        text: Second
  - id: three
    blocks:
      - kind: text
        text: Third
`

func newPresenter(t *testing.T) (*presenter, *bytes.Buffer) {
	t.Helper()

	sess, err := fireside.Load([]byte(presentDeck))
	require.NoError(t, err)

	renderer, err := tui.NewRenderer()
	require.NoError(t, err)

	var buf bytes.Buffer
	return &presenter{
		session:  sess,
		renderer: renderer,
		out:      termenv.NewOutput(&buf),
	}, &buf
}

func TestPresenterLoop_AdvanceAndQuit(t *testing.T) {
	p, buf := newPresenter(t)

	// space advances, q quits.
	err := p.loop(strings.NewReader(" q"))
	require.NoError(t, err)

	assert.Equal(t, 1, p.session.Position())
	assert.Contains(t, buf.String(), "Pick")
}

func TestPresenterLoop_BranchKey(t *testing.T) {
	p, _ := newPresenter(t)

	// Advance to the fork, then take option x.
	err := p.loop(strings.NewReader(" xq"))
	require.NoError(t, err)

	assert.Equal(t, 3, p.session.Position())
	assert.Equal(t, "three", p.session.Current().ID)
}

func TestPresenterLoop_UnknownKeyIgnored(t *testing.T) {
	p, _ := newPresenter(t)

	err := p.loop(strings.NewReader("zq"))
	require.NoError(t, err)
	assert.Equal(t, 0, p.session.Position())
}

func TestPresenterLoop_Goto(t *testing.T) {
	p, _ := newPresenter(t)

	// g, then "4" + Enter jumps to the fourth slide.
	err := p.loop(strings.NewReader("g4\rq"))
	require.NoError(t, err)
	assert.Equal(t, 3, p.session.Position())
}

func TestPresenterLoop_BackAtStart(t *testing.T) {
	p, buf := newPresenter(t)

	err := p.loop(strings.NewReader("bq"))
	require.NoError(t, err)
	assert.Equal(t, 0, p.session.Position())
	assert.Contains(t, buf.String(), "no history")
}

func TestPresenterLoop_EOFEndsLoop(t *testing.T) {
	p, _ := newPresenter(t)

	err := p.loop(strings.NewReader(" "))
	require.NoError(t, err)
	assert.Equal(t, 1, p.session.Position())
}
