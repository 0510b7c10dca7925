//go:build unix

// Package slotclient implements just enough of the jobserver client side to
// exercise a pool from tests: rediscover the reservoir from a MAKEFLAGS
// value, acquire tokens, release them (or deliberately fail to).
package slotclient

import (
	"errors"
	"fmt"
	"time"

	"golang.org/x/sys/unix"

	"github.com/danmuck/poolctl/internal/protocol/makeflags"
)

// ErrAcquireTimeout reports that no token became available in time.
var ErrAcquireTimeout = errors.New("slotclient: acquire timed out")

// Client holds one protocol client's descriptors onto a FIFO reservoir.
type Client struct {
	readFD  int
	writeFD int
}

// Connect parses a MAKEFLAGS value and opens the advertised FIFO reservoir.
func Connect(value string) (*Client, error) {
	auth, err := makeflags.Parse(value)
	if err != nil {
		return nil, err
	}
	if auth.Kind != makeflags.KindFIFO {
		return nil, fmt.Errorf("slotclient: unsupported backend kind %d", auth.Kind)
	}
	readFD, err := unix.Open(auth.FifoPath, unix.O_RDONLY|unix.O_NONBLOCK, 0)
	if err != nil {
		return nil, fmt.Errorf("slotclient: open %q for read: %w", auth.FifoPath, err)
	}
	writeFD, err := unix.Open(auth.FifoPath, unix.O_WRONLY, 0)
	if err != nil {
		unix.Close(readFD)
		return nil, fmt.Errorf("slotclient: open %q for write: %w", auth.FifoPath, err)
	}
	return &Client{readFD: readFD, writeFD: writeFD}, nil
}

// TryAcquire removes one token if one is immediately available.
func (c *Client) TryAcquire() (bool, error) {
	buf := make([]byte, 1)
	for {
		n, err := unix.Read(c.readFD, buf)
		if n > 0 {
			return true, nil
		}
		switch {
		case err == nil:
			return false, nil
		case errors.Is(err, unix.EINTR):
			continue
		case errors.Is(err, unix.EAGAIN) || errors.Is(err, unix.EWOULDBLOCK):
			return false, nil
		default:
			return false, fmt.Errorf("slotclient: acquire: %w", err)
		}
	}
}

// Acquire polls for a token until timeout elapses.
func (c *Client) Acquire(timeout time.Duration) error {
	deadline := time.Now().Add(timeout)
	for {
		ok, err := c.TryAcquire()
		if err != nil {
			return err
		}
		if ok {
			return nil
		}
		if time.Now().After(deadline) {
			return ErrAcquireTimeout
		}
		time.Sleep(time.Millisecond)
	}
}

// Release returns one token to the reservoir. Calling it without a matching
// acquire is how tests model a misbehaving over-releasing client.
func (c *Client) Release() error {
	if _, err := unix.Write(c.writeFD, []byte{'x'}); err != nil {
		return fmt.Errorf("slotclient: release: %w", err)
	}
	return nil
}

func (c *Client) Close() error {
	errRead := unix.Close(c.readFD)
	errWrite := unix.Close(c.writeFD)
	if errRead != nil {
		return fmt.Errorf("slotclient: close read end: %w", errRead)
	}
	if errWrite != nil {
		return fmt.Errorf("slotclient: close write end: %w", errWrite)
	}
	return nil
}
