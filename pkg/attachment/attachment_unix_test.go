//go:build unix

package attachment

import (
	"path/filepath"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_RejectsFIFO(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pipe.pdf")
	require.NoError(t, syscall.Mkfifo(path, 0600))

	// Opening a FIFO with no writer blocks, so a hang here means Load
	// tried to read it.
	done := make(chan error, 1)
	go func() {
		_, err := Load(path, MaxSize)
		done <- err
	}()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, ErrNotRegular)
	case <-time.After(2 * time.Second):
		t.Fatal("Load blocked on a FIFO")
	}
}

func TestLoad_RejectsCharDevice(t *testing.T) {
	_, err := Load("/dev/zero", MaxSize)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotRegular)
}
