package translation

import (
	"errors"
	"io"
	"strings"
)

// Stream is a lazy, finite, non-restartable sequence of text fragments.
// Next returns io.EOF once the sequence is exhausted. Close releases the
// underlying connection and must be called on every exit path.
type Stream interface {
	Next() (string, error)
	Close() error
}

// Drain pulls every remaining fragment from s, calling fn for each one in
// arrival order. It returns nil when the stream ended normally.
func Drain(s Stream, fn func(chunk string) error) error {
	for {
		chunk, err := s.Next()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		if err := fn(chunk); err != nil {
			return err
		}
	}
}

// ReadAll concatenates the remaining fragments of s and closes it
func ReadAll(s Stream) (string, error) {
	defer s.Close()

	var sb strings.Builder
	err := Drain(s, func(chunk string) error {
		sb.WriteString(chunk)
		return nil
	})
	return sb.String(), err
}
