// Package term запрашивает у пользователя секреты в терминале.
package term

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
	"golang.org/x/xerrors"
)

// ErrEmptyInput возвращается, если пользователь ничего не ввел.
var ErrEmptyInput = errors.New("empty input")

// Terminal читает токен бота: с отключенным эхо, если ввод идет
// из терминала, иначе - первой строкой потока.
type Terminal struct {
	in      *bufio.Reader
	out     io.Writer
	stdinfd int

	isTerminal   func(fd int) bool
	readPassword func(fd int) ([]byte, error)
}

// NewTerminal создает Terminal поверх стандартных потоков.
func NewTerminal() *Terminal {
	return newTerminal(os.Stdin, os.Stderr, int(os.Stdin.Fd()))
}

func newTerminal(in io.Reader, out io.Writer, fd int) *Terminal {
	return &Terminal{
		in:           bufio.NewReader(in),
		out:          out,
		stdinfd:      fd,
		isTerminal:   term.IsTerminal,
		readPassword: term.ReadPassword,
	}
}

// Interactive сообщает, подключен ли ввод к терминалу.
func (t *Terminal) Interactive() bool {
	return t.isTerminal(t.stdinfd)
}

// Token запрашивает токен бота.
func (t *Terminal) Token() (string, error) {
	var token string
	if t.Interactive() {
		fmt.Fprint(t.out, "Enter bot token: ")
		raw, err := t.readPassword(t.stdinfd)
		if err != nil {
			return "", xerrors.Errorf("failed to read token: %w", err)
		}
		fmt.Fprintln(t.out) // Новая строка после ввода
		token = string(raw)
	} else {
		line, err := t.in.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return "", xerrors.Errorf("failed to read token: %w", err)
		}
		token = line
	}

	token = strings.TrimSpace(token)
	if token == "" {
		return "", ErrEmptyInput
	}
	return token, nil
}

// Width возвращает ширину терминала, к которому подключен f,
// или fallback, если f не терминал.
func Width(f *os.File, fallback int) int {
	w, _, err := term.GetSize(int(f.Fd()))
	if err != nil || w <= 0 {
		return fallback
	}
	return w
}
