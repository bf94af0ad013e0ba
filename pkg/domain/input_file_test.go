package domain

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type closeTracker struct {
	io.Reader
	closed bool
}

func (c *closeTracker) Close() error {
	c.closed = true
	return nil
}

func TestFilePath_Open(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cat.jpg")
	require.NoError(t, os.WriteFile(path, []byte("jpeg"), 0o600))

	name, rc, err := FilePath(path).Open()
	require.NoError(t, err)
	defer rc.Close()

	assert.Equal(t, "cat.jpg", name)
	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "jpeg", string(data))
}

func TestFilePath_OpenMissing(t *testing.T) {
	_, _, err := FilePath(filepath.Join(t.TempDir(), "missing")).Open()
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestFileReader_Open(t *testing.T) {
	name, rc, err := FileReader{Reader: strings.NewReader("data")}.Open()
	require.NoError(t, err)
	assert.Equal(t, "file", name)
	data, _ := io.ReadAll(rc)
	assert.Equal(t, "data", string(data))

	tracker := &closeTracker{Reader: strings.NewReader("x")}
	name, rc, err = FileReader{Name: "voice.ogg", Reader: tracker}.Open()
	require.NoError(t, err)
	assert.Equal(t, "voice.ogg", name)
	require.NoError(t, rc.Close())
	assert.True(t, tracker.closed)

	_, _, err = FileReader{Name: "empty"}.Open()
	assert.Error(t, err)
}

func TestInputFile_Kinds(t *testing.T) {
	var files []InputFile = []InputFile{FileID("abc"), FilePath("/tmp/x"), FileReader{}}

	_, isUpload := files[0].(Uploadable)
	assert.False(t, isUpload)
	for _, f := range files[1:] {
		_, isUpload = f.(Uploadable)
		assert.True(t, isUpload)
	}
}

func TestChatAction_Known(t *testing.T) {
	for _, a := range ChatActions {
		assert.True(t, a.Known(), a)
	}
	assert.True(t, ChatActionUploadPhoto.Known())
	assert.False(t, ChatAction("dancing").Known())
	assert.False(t, ChatAction("").Known())
}
