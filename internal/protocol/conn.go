package protocol

import (
	"io"
	"net"
	"time"
)

// Conn frames JSON messages over a stream with a fixed frame cap.
type Conn struct {
	rw      io.ReadWriter
	maxSize int
}

// NewConn wraps rw. maxSize <= 0 selects DefaultMaxFrameSize.
func NewConn(rw io.ReadWriter, maxSize int) *Conn {
	if maxSize <= 0 {
		maxSize = DefaultMaxFrameSize
	}
	return &Conn{rw: rw, maxSize: maxSize}
}

func (c *Conn) Send(msg any) error {
	return Send(c.rw, msg)
}

func (c *Conn) Recv(v any) error {
	return Recv(c.rw, v, c.maxSize)
}

// SetDeadline forwards to the underlying net.Conn, if any.
func (c *Conn) SetDeadline(t time.Time) error {
	if nc, ok := c.rw.(net.Conn); ok {
		return nc.SetDeadline(t)
	}
	return nil
}

// Close closes the underlying stream when it supports closing.
func (c *Conn) Close() error {
	if cl, ok := c.rw.(io.Closer); ok {
		return cl.Close()
	}
	return nil
}
