package prompt

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"
)

// ErrDeclined is returned by Require when the user answers no.
var ErrDeclined = errors.New("operation declined")

// Prompt asks the user yes/no questions.
type Prompt interface {
	Confirm(message string, def bool) (bool, error)
}

// Interactive asks through survey on a terminal.
type Interactive struct {
	in     terminal.FileReader
	out    terminal.FileWriter
	errOut io.Writer
}

// New returns an interactive prompt bound to the given streams.
func New(in terminal.FileReader, out terminal.FileWriter, errOut io.Writer) *Interactive {
	return &Interactive{in: in, out: out, errOut: errOut}
}

// Stdio returns an interactive prompt on the process streams.
func Stdio() *Interactive {
	return New(os.Stdin, os.Stdout, os.Stderr)
}

// Confirm shows a yes/no question. Ctrl+C is reported as ErrDeclined.
func (p *Interactive) Confirm(message string, def bool) (bool, error) {
	answer := def
	err := survey.AskOne(&survey.Confirm{Message: message, Default: def}, &answer, survey.WithStdio(p.in, p.out, p.errOut))
	if errors.Is(err, terminal.InterruptErr) {
		return false, ErrDeclined
	}
	if err != nil {
		return false, fmt.Errorf("prompt failed: %w", err)
	}
	return answer, nil
}

// Static answers every question with the same value, e.g. for --yes.
type Static bool

// Confirm returns the fixed answer.
func (s Static) Confirm(string, bool) (bool, error) {
	return bool(s), nil
}

// Require asks message and returns ErrDeclined unless the answer is yes.
func Require(p Prompt, message string) error {
	ok, err := p.Confirm(message, false)
	if err != nil {
		return err
	}
	if !ok {
		return ErrDeclined
	}
	return nil
}
