// Package trash moves files and directories to the trash instead of deleting
// them.
//
// On Linux the desktop portal is asked first; when it is missing or refuses,
// the FreeDesktop.org trash is written directly. Other Unix systems use the
// FreeDesktop.org trash only, macOS goes through Finder and Windows through
// the recycle bin.
package trash

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	platformerrors "github.com/jmgilman/go/errors"
)

var (
	ErrNoTrashAvailable  = platformerrors.New(platformerrors.CodeNotFound, "no trash directory available")
	ErrNamesExhausted    = platformerrors.New(platformerrors.CodeConflict, "no free name in trash directory")
	ErrInvalidPath       = platformerrors.New(platformerrors.CodeInvalidInput, "path cannot be moved to trash")
	ErrMoveFailed        = platformerrors.New(platformerrors.CodeExecutionFailed, "failed to move to trash")
	ErrCrossDevice       = platformerrors.New(platformerrors.CodeConflict, "cannot move across devices")
	ErrPortalUnavailable = platformerrors.New(platformerrors.CodeUnavailable, "trash portal unavailable")
	ErrUnsupported       = platformerrors.New(platformerrors.CodeNotImplemented, "trash is not supported on this platform")
)

// A Trasher moves a single path to the trash.
type Trasher interface {
	Trash(ctx context.Context, path string) error
}

// TrasherFunc adapts a function to the Trasher interface.
type TrasherFunc func(ctx context.Context, path string) error

func (f TrasherFunc) Trash(ctx context.Context, path string) error {
	return f(ctx, path)
}

// Chain tries each Trasher in order until one succeeds.
type Chain []Trasher

func (c Chain) Trash(ctx context.Context, path string) error {
	if len(c) == 0 {
		return ErrNoTrashAvailable
	}

	var errs []error
	for _, t := range c {
		err := t.Trash(ctx, path)
		if err == nil {
			return nil
		}
		errs = append(errs, err)
		if ctx.Err() != nil {
			break
		}
	}
	return errors.Join(errs...)
}

var defaultTrasher = sync.OnceValue(newDefaultTrasher)

// Move moves path, which may be relative, to the trash. It never panics and
// reports only whether the path ended up in the trash.
func Move(path string) bool {
	return MoveContext(context.Background(), path)
}

// MoveContext is like Move but stops early when ctx is done. Once the final
// rename has started it runs to completion.
func MoveContext(ctx context.Context, path string) (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			slog.Debug("trash: recovered while moving to trash", "path", path, "panic", r)
			ok = false
		}
	}()

	if path == "" {
		return false
	}

	if err := defaultTrasher().Trash(ctx, path); err != nil {
		slog.Debug("trash: failed to move to trash", "path", path, "err", err)
		return false
	}
	return true
}
