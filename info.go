package trash

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"
)

// DeletionDateLayout is the local, offset-free timestamp used in .trashinfo
// files.
const DeletionDateLayout = "2006-01-02T15:04:05"

const infoHeader = "[Trash Info]"

// Info is the content of a .trashinfo file.
type Info struct {
	// Path is recorded exactly as the caller gave it.
	Path         string
	DeletionDate time.Time
}

func (i Info) MarshalText() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(infoHeader + "\n")
	fmt.Fprintf(&buf, "Path=%s\n", i.Path)
	fmt.Fprintf(&buf, "DeletionDate=%s\n", i.DeletionDate.Format(DeletionDateLayout))
	buf.WriteString("\n")
	return buf.Bytes(), nil
}

// writeInfoFile creates path exclusively, so an existing record is never
// overwritten. A partially written file is removed.
func writeInfoFile(path string, data []byte) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0600)
	if err != nil {
		return err
	}

	if _, err := f.Write(data); err != nil {
		f.Close()
		os.Remove(path)
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(path)
		return err
	}
	return nil
}

func isExist(err error) bool {
	return errors.Is(err, fs.ErrExist)
}
