package client

import (
	"errors"
	"io"
	"strings"
	"unicode/utf8"
)

const readBufferSize = 4096

// BodyStream decodes a streamed HTTP body into text fragments. A
// multi-byte character split across reads is held back until complete.
type BodyStream struct {
	body  io.ReadCloser
	buf   []byte
	carry []byte
	done  bool
	err   error
}

// NewBodyStream wraps body. The stream owns body and closes it in Close.
func NewBodyStream(body io.ReadCloser) *BodyStream {
	return &BodyStream{
		body: body,
		buf:  make([]byte, readBufferSize),
	}
}

// Next returns the text decoded from the next read of the body
func (s *BodyStream) Next() (string, error) {
	for {
		if s.err != nil {
			return "", s.err
		}
		if s.done {
			return "", io.EOF
		}

		n, err := s.body.Read(s.buf)
		data := append(s.carry, s.buf[:n]...)
		s.carry = nil

		if errors.Is(err, io.EOF) {
			s.done = true
			if len(data) == 0 {
				return "", io.EOF
			}
			return strings.ToValidUTF8(string(data), "\uFFFD"), nil
		}

		cut := completePrefix(data)
		if cut < len(data) {
			s.carry = append([]byte(nil), data[cut:]...)
		}

		if cut > 0 {
			text := strings.ToValidUTF8(string(data[:cut]), "\uFFFD")
			// Report a read error on the following call
			s.err = err
			return text, nil
		}

		if err != nil {
			return "", err
		}
	}
}

// Close releases the HTTP body
func (s *BodyStream) Close() error {
	s.done = true
	return s.body.Close()
}

// completePrefix returns the length of data without a trailing
// incomplete UTF-8 sequence
func completePrefix(data []byte) int {
	// A sequence is at most utf8.UTFMax bytes, so only the tail needs checking
	for i := len(data) - 1; i >= 0 && i >= len(data)-utf8.UTFMax; i-- {
		if !utf8.RuneStart(data[i]) {
			continue
		}
		if utf8.FullRune(data[i:]) {
			return len(data)
		}
		return i
	}
	return len(data)
}
