package clipboard

import (
	"errors"
	"fmt"
	"strings"

	"blendshape-presets/core/reconcile"

	"github.com/atotto/clipboard"
)

var (
	// ErrUnavailable is returned when the system clipboard cannot be used.
	ErrUnavailable = errors.New("clipboard unavailable")
	// ErrVerifyFailed is returned when the clipboard content differs from what was written.
	ErrVerifyFailed = errors.New("clipboard verification failed")
)

// Board is the minimal clipboard surface.
type Board interface {
	ReadAll() (string, error)
	WriteAll(text string) error
}

type system struct{}

func (system) ReadAll() (string, error) {
	return clipboard.ReadAll()
}

func (system) WriteAll(text string) error {
	return clipboard.WriteAll(text)
}

// Clipboard moves bundles through a Board.
type Clipboard struct {
	board Board
}

// New wraps board. A nil board means the OS clipboard.
func New(board Board) *Clipboard {
	if board == nil {
		if clipboard.Unsupported {
			board = unsupported{}
		} else {
			board = system{}
		}
	}
	return &Clipboard{board: board}
}

// Copy encodes bundle, writes it and reads it back to confirm the content.
// It returns the number of bytes written.
func (c *Clipboard) Copy(bundle *reconcile.Bundle) (int, error) {
	data, err := reconcile.Encode(bundle)
	if err != nil {
		return 0, err
	}
	text := string(data)
	if err := c.board.WriteAll(text); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	got, err := c.board.ReadAll()
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrVerifyFailed, err)
	}
	if got != text {
		return 0, fmt.Errorf("%w: wrote %d bytes, read back %d", ErrVerifyFailed, len(text), len(got))
	}
	return len(data), nil
}

// Paste reads and decodes a bundle from the clipboard.
func (c *Clipboard) Paste() (*reconcile.Bundle, error) {
	text, err := c.board.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("clipboard: %w", reconcile.ErrEmptyInput)
	}
	return reconcile.Decode([]byte(text))
}

type unsupported struct{}

func (unsupported) ReadAll() (string, error) {
	return "", ErrUnavailable
}

func (unsupported) WriteAll(string) error {
	return ErrUnavailable
}
