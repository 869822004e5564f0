package trash

import (
	"errors"
	"fmt"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

const maxSuffix = math.MaxInt32

// Entry is a slot in a trash root. InfoPath and FilesPath share Name.
type Entry struct {
	Name      string
	InfoPath  string
	FilesPath string
}

// Entry returns the slot for name without checking whether it is free.
func (r Root) Entry(name string) Entry {
	return Entry{
		Name:      name,
		InfoPath:  filepath.Join(r.InfoDir(), name+".trashinfo"),
		FilesPath: filepath.Join(r.FilesDir(), name),
	}
}

// Allocate returns the first free entry for name. A candidate is free when
// neither its info file nor its files entry exists. Taken names are retried
// as "a.2.tar.gz", "a.3.tar.gz" and so on.
//
// The check is not atomic: another process may claim the same name before
// the entry is written.
func (r Root) Allocate(name string) (Entry, error) {
	entry, _, err := r.allocate(name, 1)
	return entry, err
}

// allocate starts searching at suffix n, where 1 is the plain name. It also
// returns the suffix of the entry found.
func (r Root) allocate(name string, n int) (Entry, int, error) {
	for ; n > 0 && n <= maxSuffix; n++ {
		entry := r.Entry(candidateName(name, n))

		taken, err := exists(entry.InfoPath)
		if err != nil {
			return Entry{}, 0, err
		}
		if !taken {
			taken, err = exists(entry.FilesPath)
			if err != nil {
				return Entry{}, 0, err
			}
		}
		if !taken {
			return entry, n, nil
		}
	}
	return Entry{}, 0, fmt.Errorf("%w: %s", ErrNamesExhausted, name)
}

// candidateName inserts ".n" before the first dot of name, or appends it when
// there is none. n below 2 leaves the name alone.
func candidateName(name string, n int) string {
	if n < 2 {
		return name
	}
	dot := strings.IndexByte(name, '.')
	if dot < 0 {
		dot = len(name)
	}
	return name[:dot] + "." + strconv.Itoa(n) + name[dot:]
}

func exists(path string) (bool, error) {
	_, err := os.Lstat(path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, err
}
