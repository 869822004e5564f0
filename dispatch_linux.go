//go:build linux

package trash

func newDefaultTrasher() Trasher {
	return Chain{defaultPortal, NewFreedesktop()}
}

// Close tears down the portal connection used by Move. Call it once on
// shutdown; Move keeps working through the filesystem afterwards.
func Close() error {
	return defaultPortal.Close()
}
