package trash

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Root is a trash directory. Entries are only written once both its info and
// files subdirectories exist.
type Root string

func (r Root) InfoDir() string {
	return filepath.Join(string(r), "info")
}

func (r Root) FilesDir() string {
	return filepath.Join(string(r), "files")
}

// Ensure creates the info and files subdirectories if they are missing.
func (r Root) Ensure() error {
	for _, dir := range []string{r.InfoDir(), r.FilesDir()} {
		if err := os.MkdirAll(dir, 0700); err != nil {
			return fmt.Errorf("failed to create trash directory %s: %w", dir, err)
		}
	}
	return nil
}

// A Locator finds the trash root an absolute path should be moved into. A
// returned root is ready for use.
type Locator interface {
	Locate(ctx context.Context, path string) (Root, error)
}

// HomeTrash is the trash in the user's data directory.
type HomeTrash struct {
	Home     string
	DataHome string
}

// Contains reports whether path is Home or lies below it.
func (h HomeTrash) Contains(path string) bool {
	if h.Home == "" {
		return false
	}
	rest, ok := strings.CutPrefix(path, strings.TrimRight(h.Home, "/"))
	return ok && (rest == "" || rest[0] == '/')
}

// Dir returns $XDG_DATA_HOME/Trash, or $HOME/.local/share/Trash when no data
// home is set.
func (h HomeTrash) Dir() string {
	if h.DataHome != "" {
		return filepath.Join(h.DataHome, "Trash")
	}
	if h.Home == "" {
		return ""
	}
	return filepath.Join(h.Home, ".local", "share", "Trash")
}

func (h HomeTrash) Locate(_ context.Context, _ string) (Root, error) {
	dir := h.Dir()
	if dir == "" {
		return "", fmt.Errorf("%w: home directory is not set", ErrNoTrashAvailable)
	}

	root := Root(dir)
	if err := root.Ensure(); err != nil {
		return "", err
	}
	return root, nil
}

// MountTrash is the per-user trash at the top of the mount containing a path:
// $mount/.Trash/$uid when the administrator provided $mount/.Trash, otherwise
// $mount/.Trash-$uid.
//
// A $mount/.Trash that is a symlink or lacks the sticky bit is ignored, as the
// FreeDesktop.org trash specification requires, even though being a directory
// would otherwise be enough to select it.
type MountTrash struct {
	Tables []string
	UID    int
}

func (m MountTrash) Locate(ctx context.Context, path string) (Root, error) {
	data := ReadMountTable(ctx, m.Tables...)
	if err := ctx.Err(); err != nil {
		return "", err
	}

	mount := FindMount(path, ParseMountTable(data))
	if mount == "" {
		return "", fmt.Errorf("%w: no mount point found for %s", ErrNoTrashAvailable, path)
	}

	root, err := m.create(mount)
	if err != nil {
		return "", err
	}
	if err := root.Ensure(); err != nil {
		return "", err
	}
	return root, nil
}

func (m MountTrash) create(mount string) (Root, error) {
	uid := strconv.Itoa(m.UID)

	shared := filepath.Join(mount, ".Trash")
	if isSharedTrash(shared) {
		dir := filepath.Join(shared, uid)
		if err := mkdirIfAbsent(dir); err == nil {
			return Root(dir), nil
		}
	}

	dir := filepath.Join(mount, ".Trash-"+uid)
	if err := mkdirIfAbsent(dir); err != nil {
		return "", fmt.Errorf("%w: %w", ErrNoTrashAvailable, err)
	}
	return Root(dir), nil
}

// isSharedTrash reports whether dir is usable as an administrator created
// $topdir/.Trash: a real directory with the sticky bit set.
func isSharedTrash(dir string) bool {
	info, err := os.Lstat(dir)
	if err != nil {
		return false
	}
	return info.IsDir() && info.Mode()&os.ModeSticky != 0
}

func mkdirIfAbsent(dir string) error {
	err := os.Mkdir(dir, 0700)
	if err == nil {
		return nil
	}
	if errors.Is(err, fs.ErrExist) {
		if info, statErr := os.Stat(dir); statErr == nil && info.IsDir() {
			return nil
		}
	}
	return err
}

// XDGLocator picks the home trash for paths below the home directory and the
// mount trash for everything else.
type XDGLocator struct {
	Home  HomeTrash
	Mount MountTrash
}

func (l XDGLocator) Locate(ctx context.Context, path string) (Root, error) {
	if l.Home.Contains(path) {
		return l.Home.Locate(ctx, path)
	}
	return l.Mount.Locate(ctx, path)
}
