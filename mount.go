package trash

import (
	"bytes"
	"context"
	"os"
	"strings"
)

// DefaultMountTables are the mount tables consulted, in order. The first one
// that can be read wins.
var DefaultMountTables = []string{"/proc/mounts", "/etc/mtab"}

// MountEntry is a single decoded line of a mount table.
type MountEntry struct {
	Device     string
	MountPoint string
}

// ReadMountTable returns the contents of the first readable source. If none
// can be read, or ctx is done, it returns nil, which parses as an empty table.
func ReadMountTable(ctx context.Context, sources ...string) []byte {
	for _, src := range sources {
		if ctx.Err() != nil {
			return nil
		}
		data, err := os.ReadFile(src)
		if err == nil {
			return data
		}
	}
	return nil
}

// ParseMountTable parses fstab(5) formatted data. Comment lines, lines with
// fewer than two fields and lines with a broken escape sequence are skipped.
func ParseMountTable(data []byte) []MountEntry {
	var entries []MountEntry
	for _, line := range bytes.Split(data, []byte{'\n'}) {
		if len(line) > 0 && line[0] == '#' {
			continue
		}

		fields := bytes.FieldsFunc(line, isMountSeparator)
		if len(fields) < 2 {
			continue
		}

		mountPoint, ok := unescapeMountPoint(fields[1])
		if !ok {
			continue
		}
		entries = append(entries, MountEntry{
			Device:     string(fields[0]),
			MountPoint: mountPoint,
		})
	}
	return entries
}

// FindMount returns the most specific mount point containing the absolute
// path, or "" when no entry matches. The result has no trailing slash unless
// it is the root.
func FindMount(path string, entries []MountEntry) string {
	var longest string
	for _, entry := range entries {
		prefix := strings.TrimRight(entry.MountPoint, "/") + "/"
		if len(prefix) > len(longest) && strings.HasPrefix(path, prefix) {
			longest = prefix
		}
	}

	if len(longest) > 1 {
		return longest[:len(longest)-1]
	}
	return longest
}

func isMountSeparator(r rune) bool {
	return r == ' ' || r == '\t'
}

// unescapeMountPoint decodes the \NNN octal sequences the kernel uses for
// spaces, tabs, newlines and backslashes in mount points.
func unescapeMountPoint(s []byte) (string, bool) {
	result := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		if s[i] != '\\' {
			result = append(result, s[i])
			continue
		}
		if i+3 >= len(s) {
			return "", false
		}
		// The first digit is limited to 0-3 so the value fits in a byte.
		if s[i+1] < '0' || s[i+1] > '3' || !isOctal(s[i+2]) || !isOctal(s[i+3]) {
			return "", false
		}
		val := (s[i+1]-'0')*64 + (s[i+2]-'0')*8 + (s[i+3] - '0')
		result = append(result, val)
		i += 3
	}
	return string(result), true
}

func isOctal(c byte) bool {
	return c >= '0' && c <= '7'
}
