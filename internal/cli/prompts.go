package cli

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/manifoldco/promptui"
)

// ErrAborted is returned when the user cancels a prompt with Ctrl+C or Ctrl+D.
var ErrAborted = errors.New("prompt aborted")

// Prompts asks interactive questions on a terminal.
type Prompts struct {
	stdin  io.ReadCloser
	stdout io.WriteCloser
}

// NewPrompts creates prompts bound to the given streams; nil means the
// process terminal.
func NewPrompts(stdin io.ReadCloser, stdout io.WriteCloser) *Prompts {
	return &Prompts{stdin: stdin, stdout: stdout}
}

// Confirm asks a yes/no question. Anything but y/yes is a no.
func (p *Prompts) Confirm(label string) (bool, error) {
	prompt := promptui.Prompt{
		Label:     label,
		IsConfirm: true,
		Stdin:     p.stdin,
		Stdout:    p.stdout,
	}

	answer, err := prompt.Run()
	switch {
	case errors.Is(err, promptui.ErrAbort):
		// promptui reports a plain "no" as ErrAbort for confirm prompts.
		return false, nil
	case errors.Is(err, promptui.ErrInterrupt), errors.Is(err, promptui.ErrEOF):
		return false, ErrAborted
	case err != nil:
		return false, fmt.Errorf("confirm prompt failed: %w", err)
	}
	return isYes(answer), nil
}

// Select asks the user to pick one of items and returns its index.
func (p *Prompts) Select(label string, items []string) (int, error) {
	prompt := promptui.Select{
		Label:  label,
		Items:  items,
		Size:   len(items),
		Stdin:  p.stdin,
		Stdout: p.stdout,
	}

	index, _, err := prompt.Run()
	if err != nil {
		return -1, promptError(err)
	}
	return index, nil
}

// Text asks for free text, returning def when the answer is blank.
func (p *Prompts) Text(label, def string) (string, error) {
	prompt := promptui.Prompt{
		Label:  label,
		Stdin:  p.stdin,
		Stdout: p.stdout,
	}

	answer, err := prompt.Run()
	if err != nil {
		return "", promptError(err)
	}
	return orDefault(answer, def), nil
}

// Number asks for a positive integer, returning def when the answer is blank
// or not a positive number.
func (p *Prompts) Number(label string, def int) (int, error) {
	answer, err := p.Text(label, "")
	if err != nil {
		return 0, err
	}
	return ParsePositive(answer, def), nil
}

// ParsePositive parses s as a positive integer, falling back to def.
func ParsePositive(s string, def int) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n <= 0 {
		return def
	}
	return n
}

func orDefault(s, def string) string {
	if s = strings.TrimSpace(s); s == "" {
		return def
	}
	return s
}

func isYes(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "y", "yes":
		return true
	}
	return false
}

func promptError(err error) error {
	if errors.Is(err, promptui.ErrInterrupt) || errors.Is(err, promptui.ErrEOF) || errors.Is(err, promptui.ErrAbort) {
		return ErrAborted
	}
	return fmt.Errorf("prompt failed: %w", err)
}
