// Package cli implements the interactive presenter loop and shared
// command plumbing for the fireside binary.
package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/muesli/termenv"
	"golang.org/x/term"

	"github.com/tiberius-s/fireside"
	"github.com/tiberius-s/fireside/internal/logging"
	"github.com/tiberius-s/fireside/internal/presentation/tui"
	"github.com/tiberius-s/fireside/pkg/validate"
)

// PresentOptions configures the presenter loop.
type PresentOptions struct {
	DeckPath     string
	LogLevel     string
	NoBanner     bool
	HistoryLimit int
}

// presenter holds the loop state: the session, the renderer and the
// notes toggle.
type presenter struct {
	session  *fireside.Session
	renderer *tui.Renderer
	out      *termenv.Output
	notes    bool
	status   string
}

// RunPresent loads the deck and drives it from single keystrokes until
// the presenter quits.
func RunPresent(opts PresentOptions) error {
	logger := logging.New(logging.ParseLevel(opts.LogLevel))

	sessOpts := []fireside.Option{fireside.WithLogger(logger)}
	if opts.HistoryLimit > 0 {
		sessOpts = append(sessOpts, fireside.WithHistoryLimit(opts.HistoryLimit))
	}

	sess, err := fireside.LoadFile(opts.DeckPath, sessOpts...)
	if err != nil {
		return err
	}

	if !opts.NoBanner {
		tui.PrintBanner()
	}

	// Refuse to present a deck with structural errors; warnings are
	// shown and ignored.
	diags := sess.Validate()
	PrintDiagnostics(os.Stderr, diags)
	if validate.Errors(diags) {
		return errors.New("deck has structural errors")
	}

	renderer, err := tui.NewRenderer()
	if err != nil {
		return err
	}

	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return errors.New("present requires an interactive terminal")
	}
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return fmt.Errorf("entering raw mode: %w", err)
	}
	defer term.Restore(fd, oldState)

	p := &presenter{
		session:  sess,
		renderer: renderer,
		out:      termenv.NewOutput(os.Stdout),
	}
	return p.loop(os.Stdin)
}

func (p *presenter) loop(in io.Reader) error {
	if err := p.redraw(); err != nil {
		return err
	}

	buf := make([]byte, 1)
	for {
		if _, err := in.Read(buf); err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}

		switch key := buf[0]; key {
		case 'q', 3: // q or Ctrl-C
			p.out.ClearScreen()
			return nil
		case ' ', 'n', 13: // space, n, Enter
			if res := p.session.Advance(); !res.Moved {
				p.status = "end of deck"
			}
		case 'b':
			if res := p.session.Back(); !res.Moved {
				p.status = "no history"
			}
		case 'g':
			pos, err := p.readPosition(in)
			if err != nil {
				p.status = err.Error()
				break
			}
			if _, err := p.session.Jump(pos); err != nil {
				p.status = err.Error()
			}
		case 's':
			p.notes = !p.notes
		default:
			if _, err := p.session.Choose(rune(key)); err != nil {
				// Not a branch key either; ignore the keystroke.
				continue
			}
		}

		if err := p.redraw(); err != nil {
			return err
		}
	}
}

// readPosition collects digits until Enter. Escape aborts.
func (p *presenter) readPosition(in io.Reader) (int, error) {
	p.print("\ngo to: ")

	var digits strings.Builder
	buf := make([]byte, 1)
	for {
		if _, err := in.Read(buf); err != nil {
			return 0, err
		}
		switch b := buf[0]; {
		case b >= '0' && b <= '9':
			digits.WriteByte(b)
			p.print(string(b))
		case b == 13:
			if digits.Len() == 0 {
				return 0, errors.New("no position entered")
			}
			var pos int
			fmt.Sscanf(digits.String(), "%d", &pos)
			// Presenters count from 1.
			return pos - 1, nil
		case b == 27:
			return 0, errors.New("cancelled")
		}
	}
}

func (p *presenter) redraw() error {
	node := p.session.Current()
	if node == nil {
		return errors.New("deck has no nodes")
	}

	out, err := p.renderer.RenderNode(node, p.session.Position(), p.session.Graph().Len())
	if err != nil {
		return err
	}

	p.out.ClearScreen()
	p.print(out)

	if p.notes && node.SpeakerNotes != "" {
		profile := p.out.ColorProfile()
		p.print("\n" + termenv.String("notes: "+node.SpeakerNotes).Foreground(profile.Color("#6b7280")).String() + "\n")
	}
	if p.status != "" {
		p.print("\n[" + p.status + "]\n")
		p.status = ""
	}
	p.print("\nspace/n next · b back · g goto · s notes · q quit\n")
	return nil
}

// print writes to the terminal, normalizing newlines for raw mode.
func (p *presenter) print(s string) {
	fmt.Fprint(p.out, strings.ReplaceAll(s, "\n", "\r\n"))
}
