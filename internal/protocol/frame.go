package protocol

import (
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
)

// headerSize is the length of the frame prefix.
const headerSize = 4

// DefaultMaxFrameSize caps the declared length of an incoming frame.
const DefaultMaxFrameSize = 16 << 20

var (
	// ErrConnectionClosed is returned when the stream ends before a full
	// header or payload has been read.
	ErrConnectionClosed = errors.New("connection closed")
	// ErrMalformedFrame is returned when a frame does not hold valid JSON.
	ErrMalformedFrame = errors.New("malformed frame")
	// ErrFrameTooLarge is returned for frames above the configured cap.
	ErrFrameTooLarge = errors.New("frame too large")
)

// WriteFrame writes payload prefixed with its length.
func WriteFrame(w io.Writer, payload []byte) error {
	if uint64(len(payload)) > math.MaxUint32 {
		return fmt.Errorf("%w: %d bytes", ErrFrameTooLarge, len(payload))
	}

	buf := make([]byte, headerSize+len(payload))
	binary.BigEndian.PutUint32(buf, uint32(len(payload)))
	copy(buf[headerSize:], payload)

	if _, err := w.Write(buf); err != nil {
		return fmt.Errorf("write frame: %w", err)
	}
	return nil
}

// ReadFrame reads one frame from r. Frames declaring more than max bytes are
// rejected before any payload is read; max <= 0 selects DefaultMaxFrameSize.
func ReadFrame(r io.Reader, max int) ([]byte, error) {
	if max <= 0 {
		max = DefaultMaxFrameSize
	}

	var header [headerSize]byte
	if err := readFull(r, header[:]); err != nil {
		return nil, err
	}

	size := binary.BigEndian.Uint32(header[:])
	if uint64(size) > uint64(max) {
		return nil, fmt.Errorf("%w: %d > %d", ErrFrameTooLarge, size, max)
	}

	payload := make([]byte, size)
	if err := readFull(r, payload); err != nil {
		return nil, err
	}
	return payload, nil
}

func readFull(r io.Reader, buf []byte) error {
	_, err := io.ReadFull(r, buf)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, io.EOF), errors.Is(err, io.ErrUnexpectedEOF):
		return ErrConnectionClosed
	default:
		return fmt.Errorf("%w: %w", ErrConnectionClosed, err)
	}
}

// Send encodes msg as JSON and writes it as one frame.
func Send(w io.Writer, msg any) error {
	b, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("encode message: %w", err)
	}
	return WriteFrame(w, b)
}

// Recv reads one frame and decodes it into v.
func Recv(r io.Reader, v any, max int) error {
	b, err := ReadFrame(r, max)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(b, v); err != nil {
		return fmt.Errorf("%w: %w", ErrMalformedFrame, err)
	}
	return nil
}
