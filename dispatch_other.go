//go:build !unix && !windows

package trash

import "context"

func newDefaultTrasher() Trasher {
	return TrasherFunc(func(context.Context, string) error {
		return ErrUnsupported
	})
}

func Close() error {
	return nil
}
