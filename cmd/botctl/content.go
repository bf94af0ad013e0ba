package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mephi-learn/telegram-bot-client/pkg/domain"
	"github.com/mephi-learn/telegram-bot-client/pkg/ports"
)

// contentKinds - виды содержимого, для каждого есть своя команда.
var contentKinds = []string{"photo", "audio", "document", "sticker", "video", "voice"}

// contentFlags - флаги всех видов; каждая команда регистрирует только свои.
type contentFlags struct {
	caption   string
	duration  int
	performer string
	title     string
	name      string
	send      sendFlags
}

// inputFile определяет, что передано: "-" - stdin, существующий путь -
// файл для загрузки, иначе file_id уже загруженного файла.
func inputFile(arg, name string) (domain.InputFile, error) {
	if arg == "-" {
		return domain.FileReader{Name: name, Reader: os.Stdin}, nil
	}
	info, err := os.Stat(arg)
	switch {
	case err == nil && info.IsDir():
		return nil, fmt.Errorf("%s is a directory", arg)
	case err == nil:
		return domain.FilePath(arg), nil
	case errors.Is(err, fs.ErrNotExist):
		return domain.FileID(arg), nil
	default:
		return nil, err
	}
}

func newSendContentCmd(a *app, kind string) *cobra.Command {
	var f contentFlags

	cmd := &cobra.Command{
		Use:   kind + " <chat> <file|file_id|->",
		Short: fmt.Sprintf("Send a %s (send%s)", kind, exported(kind)),
		Long: fmt.Sprintf(`Send a %s.

An existing local path is uploaded, "-" uploads stdin, anything else is
treated as the file_id of a file already stored on Telegram servers.`, kind),
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			chat, err := parseChat(args[0])
			if err != nil {
				return err
			}
			file, err := inputFile(args[1], f.name)
			if err != nil {
				return err
			}
			send, err := f.send.options()
			if err != nil {
				return err
			}

			msg, err := a.sendContent(cmd, kind, chat, file, &f, send)
			if err != nil {
				return err
			}
			return a.printMessage("Sent", msg)
		},
	}

	flags := cmd.Flags()
	switch kind {
	case "photo":
		flags.StringVar(&f.caption, "caption", "", "photo caption")
	case "audio":
		flags.IntVar(&f.duration, "duration", 0, "duration in seconds")
		flags.StringVar(&f.performer, "performer", "", "performer")
		flags.StringVar(&f.title, "title", "", "track name")
	case "video":
		flags.IntVar(&f.duration, "duration", 0, "duration in seconds")
		flags.StringVar(&f.caption, "caption", "", "video caption")
	case "voice":
		flags.IntVar(&f.duration, "duration", 0, "duration in seconds")
	}
	flags.StringVar(&f.name, "name", kind, "file name for uploads from stdin")
	f.send.register(cmd)

	return cmd
}

func (a *app) sendContent(cmd *cobra.Command, kind string, chat domain.ChatID, file domain.InputFile, f *contentFlags, send ports.SendOptions) (*domain.Message, error) {
	ctx := cmd.Context()

	switch kind {
	case "photo":
		return a.api.SendPhoto(ctx, chat, file, &ports.SendPhotoOptions{Caption: f.caption, SendOptions: send})
	case "audio":
		return a.api.SendAudio(ctx, chat, file, &ports.SendAudioOptions{
			Duration:    f.duration,
			Performer:   f.performer,
			Title:       f.title,
			SendOptions: send,
		})
	case "document":
		return a.api.SendDocument(ctx, chat, file, &send)
	case "sticker":
		return a.api.SendSticker(ctx, chat, file, &send)
	case "video":
		return a.api.SendVideo(ctx, chat, file, &ports.SendVideoOptions{Duration: f.duration, Caption: f.caption, SendOptions: send})
	case "voice":
		return a.api.SendVoice(ctx, chat, file, &ports.SendVoiceOptions{Duration: f.duration, SendOptions: send})
	default:
		return nil, fmt.Errorf("unknown content kind %q", kind)
	}
}

func exported(kind string) string {
	if kind == "" {
		return ""
	}
	return strings.ToUpper(kind[:1]) + kind[1:]
}
