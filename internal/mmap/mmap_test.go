package mmap

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapAnon(t *testing.T) {
	t.Run("read write", func(t *testing.T) {
		m, err := MapAnon(4096)
		require.NoError(t, err)
		defer m.Close()

		data := m.Bytes()
		require.Len(t, data, 4096)

		// Anonymous pages are zero-filled.
		assert.Equal(t, byte(0), data[0])
		assert.Equal(t, byte(0), data[4095])

		data[0] = 0xAB
		data[4095] = 0xCD
		assert.Equal(t, byte(0xAB), m.Bytes()[0])
		assert.Equal(t, byte(0xCD), m.Bytes()[4095])
	})

	t.Run("invalid size", func(t *testing.T) {
		_, err := MapAnon(0)
		assert.ErrorIs(t, err, ErrInvalidSize)

		_, err = MapAnon(-1)
		assert.ErrorIs(t, err, ErrInvalidSize)
	})

	t.Run("close idempotent", func(t *testing.T) {
		m, err := MapAnon(4096)
		require.NoError(t, err)

		assert.NoError(t, m.Close())
		assert.NoError(t, m.Close())
		assert.Nil(t, m.Bytes())
	})

	t.Run("advise", func(t *testing.T) {
		m, err := MapAnon(4096)
		require.NoError(t, err)
		defer m.Close()

		assert.NoError(t, m.Advise(AccessSequential))

		require.NoError(t, m.Close())
		assert.ErrorIs(t, m.Advise(AccessRandom), ErrClosed)
	})
}

func TestOpen(t *testing.T) {
	t.Run("existing file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "data.bin")
		content := []byte("column bytes")
		require.NoError(t, os.WriteFile(path, content, 0o600))

		m, err := Open(path)
		require.NoError(t, err)
		defer m.Close()

		assert.Equal(t, len(content), m.Size())
		assert.Equal(t, content, m.Bytes())
	})

	t.Run("empty file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "empty.bin")
		require.NoError(t, os.WriteFile(path, nil, 0o600))

		m, err := Open(path)
		require.NoError(t, err)
		defer m.Close()

		assert.Equal(t, 0, m.Size())
		assert.Nil(t, m.Bytes())
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := Open(filepath.Join(t.TempDir(), "nope.bin"))
		assert.Error(t, err)
	})
}
