// Команда botctl вызывает методы Telegram Bot API из командной строки.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"

	"github.com/mephi-learn/telegram-bot-client/internal/log"
	"github.com/mephi-learn/telegram-bot-client/internal/pkg/term"
	"github.com/mephi-learn/telegram-bot-client/pkg/telegram"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a := &app{
		out:    os.Stdout,
		errOut: os.Stderr,
		tty:    term.NewTerminal(),
		width:  term.Width(os.Stdout, defaultWidth),
	}

	if err := newRootCmd(a).ExecuteContext(ctx); err != nil {
		printError(a.errOut, err)
		stop()
		os.Exit(1)
	}
}

// printError печатает ошибку без токенов бота.
func printError(w io.Writer, err error) {
	red := color.New(color.FgRed, color.Bold)

	var apiErr *telegram.APIError
	if errors.As(err, &apiErr) {
		red.Fprintf(w, "Telegram rejected the request (%d): ", apiErr.Code)
		fmt.Fprintln(w, log.MaskTokens(apiErr.Description))
		return
	}
	red.Fprint(w, "Error: ")
	fmt.Fprintln(w, log.MaskTokens(err.Error()))
}
