package trash

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"
)

// Option configures a Freedesktop trasher.
type Option func(*config)

type config struct {
	home     *string
	dataHome *string
	tables   []string
	uid      *int
	locator  Locator
	logger   *slog.Logger
	now      func() time.Time
}

// WithHome overrides $HOME.
func WithHome(home string) Option {
	return func(c *config) {
		c.home = &home
	}
}

// WithDataHome overrides $XDG_DATA_HOME. An empty value selects
// $HOME/.local/share.
func WithDataHome(dataHome string) Option {
	return func(c *config) {
		c.dataHome = &dataHome
	}
}

// WithMountTables replaces DefaultMountTables.
func WithMountTables(tables ...string) Option {
	return func(c *config) {
		c.tables = tables
	}
}

// WithEUID overrides the effective user id used for per-mount trash names.
func WithEUID(uid int) Option {
	return func(c *config) {
		c.uid = &uid
	}
}

// WithLocator replaces the home/mount locator entirely.
func WithLocator(l Locator) Option {
	return func(c *config) {
		c.locator = l
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(c *config) {
		c.logger = logger
	}
}

// WithClock sets the source of deletion dates.
func WithClock(now func() time.Time) Option {
	return func(c *config) {
		c.now = now
	}
}

// locatorFor builds the locator for one call. Anything not set through
// options is read from the environment at that point.
func (c *config) locatorFor() Locator {
	if c.locator != nil {
		return c.locator
	}

	home := os.Getenv("HOME")
	if c.home != nil {
		home = *c.home
	}
	dataHome := os.Getenv("XDG_DATA_HOME")
	if c.dataHome != nil {
		dataHome = *c.dataHome
	}
	uid := effectiveUID()
	if c.uid != nil {
		uid = *c.uid
	}

	return XDGLocator{
		Home:  HomeTrash{Home: home, DataHome: dataHome},
		Mount: MountTrash{Tables: c.tables, UID: uid},
	}
}

// Freedesktop implements the FreeDesktop.org trash specification directly on
// the filesystem.
type Freedesktop struct {
	cfg config
}

func NewFreedesktop(opts ...Option) *Freedesktop {
	cfg := config{
		tables: DefaultMountTables,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Freedesktop{cfg: cfg}
}

// Trash moves path into the matching trash root and records it in a
// .trashinfo file. The record is written first; if the move then fails the
// record is removed again.
func (f *Freedesktop) Trash(ctx context.Context, path string) error {
	if path == "" {
		return ErrInvalidPath
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("failed to get absolute path: %w", err)
	}
	name := filepath.Base(absPath)
	if name == string(filepath.Separator) || name == "." {
		return fmt.Errorf("%w: %s", ErrInvalidPath, path)
	}

	if _, err := os.Lstat(absPath); err != nil {
		return fmt.Errorf("failed to stat file: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	root, err := f.cfg.locatorFor().Locate(ctx, absPath)
	if err != nil {
		return fmt.Errorf("failed to determine trash directory: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	entry, err := f.writeInfo(root, name, Info{Path: path, DeletionDate: f.cfg.now()})
	if err != nil {
		return err
	}

	if err := ctx.Err(); err != nil {
		f.rollback(entry)
		return err
	}
	if err := os.Rename(absPath, entry.FilesPath); err != nil {
		f.rollback(entry)
		return moveError(err)
	}

	f.logger().Debug("trash: file moved to trash", "path", path, "entry", entry.FilesPath)
	return nil
}

// writeInfo allocates an entry and creates its info file. Losing the race for
// a name to another process moves on to the next suffix.
func (f *Freedesktop) writeInfo(root Root, name string, info Info) (Entry, error) {
	data, err := info.MarshalText()
	if err != nil {
		return Entry{}, err
	}

	for n := 1; ; {
		entry, found, err := root.allocate(name, n)
		if err != nil {
			return Entry{}, fmt.Errorf("failed to allocate trash name: %w", err)
		}

		err = writeInfoFile(entry.InfoPath, data)
		if err == nil {
			return entry, nil
		}
		if !isExist(err) {
			return Entry{}, fmt.Errorf("failed to write trash info: %w", err)
		}
		n = found + 1
	}
}

func (f *Freedesktop) logger() *slog.Logger {
	if f.cfg.logger != nil {
		return f.cfg.logger
	}
	return slog.Default()
}

// rollback removes the info file of a failed move. If that fails too the
// record stays behind without a payload.
func (f *Freedesktop) rollback(entry Entry) error {
	if err := os.Remove(entry.InfoPath); err != nil {
		f.logger().Warn("trash: left orphaned trash info", "info", entry.InfoPath, "err", err)
		return err
	}
	return nil
}

func moveError(err error) error {
	if isCrossDeviceError(err) {
		return fmt.Errorf("%w: %w: %w", ErrMoveFailed, ErrCrossDevice, err)
	}
	return fmt.Errorf("%w: %w", ErrMoveFailed, err)
}
