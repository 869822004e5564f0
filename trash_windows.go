//go:build windows

package trash

import (
	"context"
	"fmt"
	"path/filepath"
	"unsafe"

	"golang.org/x/sys/windows"
)

const (
	foDelete = 0x0003

	fofSilent          = 0x0004
	fofAllowUndo       = 0x0040
	fofWantNukeWarning = 0x4000
	recycleBinFlags    = fofSilent | fofAllowUndo | fofWantNukeWarning
)

var procSHFileOperationW = windows.NewLazySystemDLL("shell32.dll").NewProc("SHFileOperationW")

// shFileOpStruct mirrors SHFILEOPSTRUCTW. The layout matches the 64-bit
// headers; 32-bit shell32 packs the struct to one byte.
type shFileOpStruct struct {
	hwnd                  uintptr
	wFunc                 uint32
	pFrom                 *uint16
	pTo                   *uint16
	fFlags                uint16
	fAnyOperationsAborted int32
	hNameMappings         uintptr
	lpszProgressTitle     *uint16
}

// RecycleBin sends files to the Windows recycle bin through the shell.
type RecycleBin struct{}

func (RecycleBin) Trash(ctx context.Context, path string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("failed to get absolute path: %w", err)
	}
	if err := procSHFileOperationW.Find(); err != nil {
		return fmt.Errorf("%w: %w", ErrMoveFailed, err)
	}

	// pFrom is a list of names, terminated by an extra NUL.
	from, err := windows.UTF16FromString(absPath)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidPath, err)
	}
	from = append(from, 0)

	op := shFileOpStruct{
		wFunc:  foDelete,
		pFrom:  &from[0],
		fFlags: recycleBinFlags,
	}
	// The result is a shell error code, not a Win32 errno.
	r, _, _ := procSHFileOperationW.Call(uintptr(unsafe.Pointer(&op)))
	if r != 0 {
		return fmt.Errorf("%w: SHFileOperationW returned 0x%x", ErrMoveFailed, r)
	}
	if op.fAnyOperationsAborted != 0 {
		return fmt.Errorf("%w: operation aborted", ErrMoveFailed)
	}
	return nil
}

func newDefaultTrasher() Trasher {
	return RecycleBin{}
}

func Close() error {
	return nil
}
