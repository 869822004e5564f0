//go:build windows

package trash

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShFileOpStructLayout(t *testing.T) {
	if unsafe.Sizeof(uintptr(0)) != 8 {
		t.Skip("layout checked on 64-bit only")
	}
	var op shFileOpStruct
	assert.Equal(t, uintptr(56), unsafe.Sizeof(op))
	assert.Equal(t, uintptr(16), unsafe.Offsetof(op.pFrom))
	assert.Equal(t, uintptr(32), unsafe.Offsetof(op.fFlags))
	assert.Equal(t, uintptr(36), unsafe.Offsetof(op.fAnyOperationsAborted))
}

func TestRecycleBin(t *testing.T) {
	testFile := filepath.Join(t.TempDir(), "recycle me.txt")
	require.NoError(t, os.WriteFile(testFile, []byte("x"), 0644))

	require.NoError(t, RecycleBin{}.Trash(context.Background(), testFile))
	assert.NoFileExists(t, testFile)
}

func TestRecycleBinMissingFile(t *testing.T) {
	err := RecycleBin{}.Trash(context.Background(), filepath.Join(t.TempDir(), "missing.txt"))
	assert.ErrorIs(t, err, ErrMoveFailed)
}

func TestRecycleBinCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, RecycleBin{}.Trash(ctx, "C:\\nothing"), context.Canceled)
}
