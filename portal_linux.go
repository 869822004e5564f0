//go:build linux

package trash

import (
	"context"
	"fmt"
	"sync"

	"github.com/godbus/dbus/v5"
	"golang.org/x/sys/unix"
)

const (
	portalDest      = "org.freedesktop.portal.Desktop"
	portalPath      = dbus.ObjectPath("/org/freedesktop/portal/desktop")
	portalTrashFile = "org.freedesktop.portal.Trash.TrashFile"
)

// Portal trashes files through org.freedesktop.portal.Trash on the session
// bus. The connection is opened on first use and kept until Close. The zero
// value is ready to use.
type Portal struct {
	mu     sync.Mutex
	conn   *dbus.Conn
	err    error
	closed bool
}

var defaultPortal = &Portal{}

func (p *Portal) connect() (*dbus.Conn, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return nil, fmt.Errorf("%w: connection closed", ErrPortalUnavailable)
	}
	if p.conn == nil && p.err == nil {
		conn, err := dbus.ConnectSessionBus()
		if err != nil {
			p.err = fmt.Errorf("%w: %w", ErrPortalUnavailable, err)
		} else {
			p.conn = conn
		}
	}
	return p.conn, p.err
}

func (p *Portal) Trash(ctx context.Context, path string) error {
	conn, err := p.connect()
	if err != nil {
		return err
	}

	fd, err := unix.Open(path, unix.O_PATH|unix.O_CLOEXEC, 0)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer unix.Close(fd)

	var result uint32
	call := conn.Object(portalDest, portalPath).CallWithContext(ctx, portalTrashFile, 0, dbus.UnixFD(fd))
	if err := call.Store(&result); err != nil {
		return fmt.Errorf("%w: %w", ErrPortalUnavailable, err)
	}
	if result != 1 {
		return fmt.Errorf("%w: portal refused %s", ErrMoveFailed, path)
	}
	return nil
}

// Close releases the session bus connection. The Portal cannot be used
// afterwards.
func (p *Portal) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.closed = true
	if p.conn == nil {
		return nil
	}
	err := p.conn.Close()
	p.conn = nil
	return err
}
