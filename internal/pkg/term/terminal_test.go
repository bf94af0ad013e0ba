package term

import (
	"bytes"
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTerminal_TokenFromPipe(t *testing.T) {
	var out bytes.Buffer
	tt := newTerminal(strings.NewReader("  123:abc  \nignored\n"), &out, 0)
	tt.isTerminal = func(int) bool { return false }

	token, err := tt.Token()
	require.NoError(t, err)
	assert.Equal(t, "123:abc", token)
	assert.Empty(t, out.String(), "no prompt for piped input")
}

func TestTerminal_TokenWithoutTrailingNewline(t *testing.T) {
	tt := newTerminal(strings.NewReader("123:abc"), &bytes.Buffer{}, 0)
	tt.isTerminal = func(int) bool { return false }

	token, err := tt.Token()
	require.NoError(t, err)
	assert.Equal(t, "123:abc", token)
}

func TestTerminal_TokenInteractive(t *testing.T) {
	var out bytes.Buffer
	tt := newTerminal(strings.NewReader(""), &out, 7)
	tt.isTerminal = func(fd int) bool { return fd == 7 }
	tt.readPassword = func(fd int) ([]byte, error) {
		assert.Equal(t, 7, fd)
		return []byte("456:secret"), nil
	}

	token, err := tt.Token()
	require.NoError(t, err)
	assert.Equal(t, "456:secret", token)
	assert.Equal(t, "Enter bot token: \n", out.String())
}

func TestTerminal_TokenErrors(t *testing.T) {
	tt := newTerminal(strings.NewReader("\n"), &bytes.Buffer{}, 0)
	tt.isTerminal = func(int) bool { return false }
	_, err := tt.Token()
	assert.ErrorIs(t, err, ErrEmptyInput)

	readErr := errors.New("tty closed")
	tt = newTerminal(strings.NewReader(""), &bytes.Buffer{}, 0)
	tt.isTerminal = func(int) bool { return true }
	tt.readPassword = func(int) ([]byte, error) { return nil, readErr }
	_, err = tt.Token()
	assert.ErrorIs(t, err, readErr)
}

func TestWidth_Fallback(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "out")
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, 80, Width(f, 80))
}
