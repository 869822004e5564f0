package trash

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/jmgilman/go/exec"
)

// Finder asks the macOS Finder to delete files through osascript, which
// moves them to the user's trash.
type Finder struct {
	executor exec.Executor
}

func NewFinder() *Finder {
	return &Finder{executor: exec.New()}
}

// NewFinderWithExecutor is NewFinder with a caller supplied executor.
func NewFinderWithExecutor(executor exec.Executor) *Finder {
	return &Finder{executor: executor}
}

func (f *Finder) Trash(ctx context.Context, path string) error {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("failed to get absolute path: %w", err)
	}

	script := fmt.Sprintf(`tell application "Finder" to delete POSIX file "%s"`, escapeAppleScript(absPath))
	if _, err := f.executor.Clone().WithContext(ctx).Run("osascript", "-e", script); err != nil {
		return fmt.Errorf("%w: %w", ErrMoveFailed, err)
	}
	return nil
}

var appleScriptEscaper = strings.NewReplacer(
	`\`, `\\`,
	`"`, `\"`,
	"\n", `\n`,
	"\r", `\r`,
	"\t", `\t`,
)

func escapeAppleScript(s string) string {
	return appleScriptEscaper.Replace(s)
}
