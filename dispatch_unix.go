//go:build unix && !linux && !darwin

package trash

func newDefaultTrasher() Trasher {
	return NewFreedesktop()
}

func Close() error {
	return nil
}
