package domain

import (
	"errors"
	"io"
	"os"
	"path/filepath"
)

// InputFile - содержимое для методов отправки: либо ссылка на уже
// загруженный файл (FileID), либо новые данные (FilePath, FileReader).
type InputFile interface {
	inputFile()
}

// Uploadable - InputFile, данные которого отправляются multipart-запросом.
type Uploadable interface {
	InputFile
	// Open возвращает имя файла для multipart-части и поток данных.
	// Вызывающий обязан закрыть поток.
	Open() (name string, r io.ReadCloser, err error)
}

// FileID ссылается на файл, уже загруженный на серверы Telegram.
type FileID string

// FilePath - путь к локальному файлу для загрузки.
type FilePath string

// Open открывает файл на диске.
func (p FilePath) Open() (string, io.ReadCloser, error) {
	f, err := os.Open(string(p))
	if err != nil {
		return "", nil, err
	}
	return filepath.Base(string(p)), f, nil
}

// FileReader загружает данные из произвольного потока.
type FileReader struct {
	Name   string
	Reader io.Reader
}

// Open возвращает поток; если Reader реализует io.Closer, он будет закрыт.
func (f FileReader) Open() (string, io.ReadCloser, error) {
	if f.Reader == nil {
		return "", nil, errors.New("file reader has no data")
	}
	name := f.Name
	if name == "" {
		name = "file"
	}
	if rc, ok := f.Reader.(io.ReadCloser); ok {
		return name, rc, nil
	}
	return name, io.NopCloser(f.Reader), nil
}

func (FileID) inputFile()     {}
func (FilePath) inputFile()   {}
func (FileReader) inputFile() {}
