// Package prompt implements the interactive-I/O surface the rest of the
// tool depends on: Y/n confirmations, numbered menus, and a cooperative
// interrupt flag. It uses a plain bufio-based read-line loop rather than
// a full TUI framework, since the menus here are a handful of lines, not
// an application.
package prompt

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"sync/atomic"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"

	"github.com/apenwarr/git-subrebase/internal/errs"
)

var menuHeading = lipgloss.NewStyle().Bold(true)
var menuChoice = lipgloss.NewStyle().Faint(true)

// Interrupter is the process-wide cooperative cancellation flag: a
// signal handler sets it, and every blocking read-line clears it first,
// reads, then checks it again.
type Interrupter struct {
	tripped atomic.Bool
}

// NewInterrupter installs a SIGINT handler that sets the flag.
func NewInterrupter() *Interrupter {
	it := &Interrupter{}
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, os.Interrupt)
	go func() {
		for range ch {
			it.tripped.Store(true)
		}
	}()
	return it
}

func (it *Interrupter) clear() { it.tripped.Store(false) }
func (it *Interrupter) check() bool {
	return it.tripped.Load()
}

// Prompter is the narrow contract internal/preflight and internal/rebase
// use to interact with the user.
type Prompter interface {
	// Confirm asks a Y/n question, default Y. Returns
	// errs.ErrInteractiveCancel if the user answers No or is
	// interrupted.
	Confirm(question string) error
	// Menu presents a 1-based numbered menu and returns the chosen
	// index (0-based into choices). Returns
	// errs.ErrInteractiveCancel on an invalid index or interrupt.
	Menu(heading string, choices []string) (int, error)
	// PressEnter blocks for ENTER, used for conflict-resolution and
	// leftover-marker prompts. Returns errs.ErrInteractiveCancel on
	// interrupt.
	PressEnter(message string) error
}

// Terminal is the default Prompter, reading from in and writing to out.
type Terminal struct {
	in          *bufio.Reader
	out         io.Writer
	interrupter *Interrupter
}

// NewTerminal builds a Terminal prompter. If stdin is not a tty, prompts
// still work (useful for scripted/test harnesses that feed canned
// input), but callers are encouraged to check IsInteractive first so
// non-interactive runs can fail fast instead of blocking forever.
func NewTerminal(in io.Reader, out io.Writer, interrupter *Interrupter) *Terminal {
	return &Terminal{in: bufio.NewReader(in), out: out, interrupter: interrupter}
}

// IsInteractive reports whether stdin/stdout look like a real terminal.
func IsInteractive() bool {
	return isatty.IsTerminal(os.Stdin.Fd()) && isatty.IsTerminal(os.Stdout.Fd())
}

func (t *Terminal) readLine() (string, error) {
	t.interrupter.clear()
	line, err := t.in.ReadString('\n')
	if err != nil && err != io.EOF {
		return "", fmt.Errorf("%w: read-line: %v", errs.ErrStore, err)
	}
	if t.interrupter.check() {
		return "", fmt.Errorf("%w: interrupted", errs.ErrInteractiveCancel)
	}
	return strings.TrimSpace(line), nil
}

func (t *Terminal) Confirm(question string) error {
	fmt.Fprintf(t.out, "%s [Y/n] ", question)
	line, err := t.readLine()
	if err != nil {
		return err
	}
	if strings.HasPrefix(strings.ToLower(line), "n") {
		return fmt.Errorf("%w: user declined", errs.ErrInteractiveCancel)
	}
	return nil
}

func (t *Terminal) Menu(heading string, choices []string) (int, error) {
	fmt.Fprintln(t.out, menuHeading.Render(heading))
	for i, c := range choices {
		fmt.Fprintln(t.out, menuChoice.Render(fmt.Sprintf("[%d] %s", i+1, c)))
	}
	line, err := t.readLine()
	if err != nil {
		return 0, err
	}
	idx, err := strconv.Atoi(line)
	if err != nil || idx < 1 || idx > len(choices) {
		return 0, fmt.Errorf("%w: bad menu index %q", errs.ErrInteractiveCancel, line)
	}
	return idx - 1, nil
}

func (t *Terminal) PressEnter(message string) error {
	fmt.Fprintln(t.out, message)
	_, err := t.readLine()
	return err
}
