// Package ipc provides a file-backed message channel between the
// controller and a worker process. Each direction is an append-only file
// of length-prefixed frames, written and read under an exclusive OS lock.
package ipc

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

const (
	headerPrefix = "size="

	// MaxFrameSize bounds the payload length a reader accepts.
	MaxFrameSize = 64 << 20
)

// EncodeFrame returns "size=<n>\n<payload>\n".
func EncodeFrame(payload []byte) []byte {
	header := headerPrefix + strconv.Itoa(len(payload)) + "\n"
	frame := make([]byte, 0, len(header)+len(payload)+1)
	frame = append(frame, header...)
	frame = append(frame, payload...)
	return append(frame, '\n')
}

// ReadFrame parses one frame from r and returns its payload together with
// the number of bytes the frame occupies. Any deviation from the framing
// is reported as ErrCorruptFrame.
func ReadFrame(r *bufio.Reader) ([]byte, int64, error) {
	header, err := r.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, 0, fmt.Errorf("%w: incomplete header %q", ErrCorruptFrame, header)
		}
		return nil, 0, err
	}

	length, err := parseHeader(header)
	if err != nil {
		return nil, 0, err
	}

	payload := make([]byte, length)
	if _, err := io.ReadFull(r, payload); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, 0, fmt.Errorf("%w: payload shorter than recorded length %d", ErrCorruptFrame, length)
		}
		return nil, 0, err
	}

	terminator, err := r.ReadByte()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, 0, fmt.Errorf("%w: missing frame terminator", ErrCorruptFrame)
		}
		return nil, 0, err
	}
	if terminator != '\n' {
		return nil, 0, fmt.Errorf("%w: payload longer than recorded length %d", ErrCorruptFrame, length)
	}

	consumed := int64(len(header)) + int64(length) + 1
	return payload, consumed, nil
}

// parseHeader validates "size=<decimal>\n" and returns the length.
func parseHeader(header string) (int, error) {
	if !strings.HasPrefix(header, headerPrefix) {
		return 0, fmt.Errorf("%w: bad header %q", ErrCorruptFrame, header)
	}

	digits := strings.TrimSuffix(header[len(headerPrefix):], "\n")
	if digits == "" {
		return 0, fmt.Errorf("%w: empty length", ErrCorruptFrame)
	}
	for _, r := range digits {
		if r < '0' || r > '9' {
			return 0, fmt.Errorf("%w: bad length %q", ErrCorruptFrame, digits)
		}
	}

	length, err := strconv.Atoi(digits)
	if err != nil || length > MaxFrameSize {
		return 0, fmt.Errorf("%w: length %q out of range", ErrCorruptFrame, digits)
	}
	return length, nil
}
