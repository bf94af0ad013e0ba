package main

import (
	"errors"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mephi-learn/telegram-bot-client/pkg/domain"
	"github.com/mephi-learn/telegram-bot-client/pkg/ports"
)

// sendFlags - флаги, общие для всех команд отправки.
type sendFlags struct {
	replyTo      int64
	keyboard     []string
	resize       bool
	oneTime      bool
	hideKeyboard bool
	forceReply   bool
	selective    bool
}

func (f *sendFlags) register(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.Int64Var(&f.replyTo, "reply-to", 0, "id of the message to reply to")
	flags.StringArrayVar(&f.keyboard, "keyboard", nil, "keyboard row, buttons separated by commas (repeatable)")
	flags.BoolVar(&f.resize, "resize", false, "ask clients to fit the keyboard height")
	flags.BoolVar(&f.oneTime, "one-time", false, "hide the keyboard after use")
	flags.BoolVar(&f.hideKeyboard, "hide-keyboard", false, "remove the custom keyboard")
	flags.BoolVar(&f.forceReply, "force-reply", false, "show the reply interface")
	flags.BoolVar(&f.selective, "selective", false, "apply the markup to mentioned users only")
}

// options собирает SendOptions. Допускается не более одного вида разметки.
func (f *sendFlags) options() (ports.SendOptions, error) {
	opts := ports.SendOptions{ReplyToMessageID: f.replyTo}

	kinds := 0
	for _, set := range []bool{len(f.keyboard) > 0, f.hideKeyboard, f.forceReply} {
		if set {
			kinds++
		}
	}
	if kinds > 1 {
		return opts, errors.New("--keyboard, --hide-keyboard and --force-reply are mutually exclusive")
	}

	switch {
	case len(f.keyboard) > 0:
		rows := make([][]string, 0, len(f.keyboard))
		for _, row := range f.keyboard {
			buttons := strings.Split(row, ",")
			for i := range buttons {
				buttons[i] = strings.TrimSpace(buttons[i])
			}
			rows = append(rows, buttons)
		}
		markup := domain.NewReplyKeyboard(rows...)
		markup.ResizeKeyboard = f.resize
		markup.OneTimeKeyboard = f.oneTime
		markup.Selective = f.selective
		opts.ReplyMarkup = markup
	case f.hideKeyboard:
		opts.ReplyMarkup = domain.ReplyKeyboardHide{Selective: f.selective}
	case f.forceReply:
		opts.ReplyMarkup = domain.ForceReply{Selective: f.selective}
	}

	return opts, nil
}
