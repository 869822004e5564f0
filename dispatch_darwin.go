//go:build darwin

package trash

func newDefaultTrasher() Trasher {
	return NewFinder()
}

func Close() error {
	return nil
}
