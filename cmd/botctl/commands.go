package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mephi-learn/telegram-bot-client/pkg/domain"
	"github.com/mephi-learn/telegram-bot-client/pkg/ports"
)

func parseChat(arg string) (domain.ChatID, error) {
	id, err := domain.ParseChatID(arg)
	if err != nil {
		return domain.ChatID{}, fmt.Errorf("invalid chat %q: %w", arg, err)
	}
	return id, nil
}

// optionalInt возвращает значение флага, только если он был указан.
func optionalInt(cmd *cobra.Command, name string, v int) *int {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	return &v
}

func newMeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "me",
		Short: "Show the bot account (getMe)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			me, err := a.api.GetMe(cmd.Context())
			if err != nil {
				return err
			}
			if a.asJSON {
				return a.printJSON(me)
			}
			okColor.Fprintf(a.out, "%s", userLabel(me))
			fmt.Fprintf(a.out, " id=%d name=%q\n", me.ID, strings.TrimSpace(me.FirstName+" "+me.LastName))
			return nil
		},
	}
}

func newUpdatesCmd(a *app) *cobra.Command {
	var offset, limit, timeout int

	cmd := &cobra.Command{
		Use:   "updates",
		Short: "Fetch incoming updates (getUpdates)",
		Long: `Fetch incoming updates with getUpdates.

Flags that are not given are not sent, so Telegram applies its own
defaults. --timeout enables long polling.`,
		Example: `  botctl updates
  botctl updates --offset 5 --limit 10 --timeout 0`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			updates, err := a.api.GetUpdates(cmd.Context(),
				optionalInt(cmd, "offset", offset),
				optionalInt(cmd, "limit", limit),
				optionalInt(cmd, "timeout", timeout),
			)
			if err != nil {
				return err
			}
			if a.asJSON {
				return a.printJSON(updates)
			}
			if len(updates) == 0 {
				fmt.Fprintln(a.out, "No pending updates.")
				return nil
			}
			a.printUpdatesTable(updates)
			return nil
		},
	}

	cmd.Flags().IntVar(&offset, "offset", 0, "identifier of the first update to return")
	cmd.Flags().IntVar(&limit, "limit", 0, "maximum number of updates (1-100)")
	cmd.Flags().IntVar(&timeout, "timeout", 0, "long polling timeout in seconds")
	return cmd
}

func newSendCmd(a *app) *cobra.Command {
	var (
		parseMode string
		noPreview bool
		send      sendFlags
	)

	cmd := &cobra.Command{
		Use:   "send <chat> <text>...",
		Short: "Send a text message (sendMessage)",
		Example: `  botctl send 12345 hello world
  botctl send @channel "*bold*" --parse-mode Markdown
  botctl send 12345 "Pick one" --keyboard "Yes,No" --keyboard "Later" --one-time`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			chat, err := parseChat(args[0])
			if err != nil {
				return err
			}
			sendOpts, err := send.options()
			if err != nil {
				return err
			}

			msg, err := a.api.SendMessage(cmd.Context(), chat, strings.Join(args[1:], " "), &ports.SendMessageOptions{
				ParseMode:             domain.ParseMode(parseMode),
				DisableWebPagePreview: noPreview,
				SendOptions:           sendOpts,
			})
			if err != nil {
				return err
			}
			return a.printMessage("Sent", msg)
		},
	}

	cmd.Flags().StringVar(&parseMode, "parse-mode", "", "Markdown or HTML")
	cmd.Flags().BoolVar(&noPreview, "no-preview", false, "disable link previews")
	send.register(cmd)
	return cmd
}

func newForwardCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "forward <chat> <from-chat> <message-id>",
		Short: "Forward a message (forwardMessage)",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			chat, err := parseChat(args[0])
			if err != nil {
				return err
			}
			from, err := parseChat(args[1])
			if err != nil {
				return err
			}
			messageID, err := strconv.ParseInt(args[2], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid message id %q: %w", args[2], err)
			}

			msg, err := a.api.ForwardMessage(cmd.Context(), chat, from, messageID)
			if err != nil {
				return err
			}
			return a.printMessage("Forwarded", msg)
		},
	}
}

func newLocationCmd(a *app) *cobra.Command {
	var send sendFlags

	cmd := &cobra.Command{
		Use:   "location <chat> <latitude> <longitude>",
		Short: "Send a point on the map (sendLocation)",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			chat, err := parseChat(args[0])
			if err != nil {
				return err
			}
			lat, err := strconv.ParseFloat(args[1], 64)
			if err != nil {
				return fmt.Errorf("invalid latitude %q: %w", args[1], err)
			}
			lon, err := strconv.ParseFloat(args[2], 64)
			if err != nil {
				return fmt.Errorf("invalid longitude %q: %w", args[2], err)
			}
			sendOpts, err := send.options()
			if err != nil {
				return err
			}

			msg, err := a.api.SendLocation(cmd.Context(), chat, lat, lon, &sendOpts)
			if err != nil {
				return err
			}
			return a.printMessage("Sent", msg)
		},
	}

	send.register(cmd)
	return cmd
}

func newActionCmd(a *app) *cobra.Command {
	names := make([]string, 0, len(domain.ChatActions))
	for _, action := range domain.ChatActions {
		names = append(names, string(action))
	}

	return &cobra.Command{
		Use:       "action <chat> <action>",
		Short:     "Show a chat action such as typing (sendChatAction)",
		Long:      "Show a chat action. Known actions: " + strings.Join(names, ", ") + ".",
		Args:      cobra.ExactArgs(2),
		ValidArgs: names,
		RunE: func(cmd *cobra.Command, args []string) error {
			chat, err := parseChat(args[0])
			if err != nil {
				return err
			}
			action := domain.ChatAction(args[1])
			if !action.Known() {
				warnColor.Fprintf(a.errOut, "Warning: %q is not a known chat action, sending anyway\n", action)
			}

			ok, err := a.api.SendChatAction(cmd.Context(), chat, action)
			if err != nil {
				return err
			}
			return a.printResult("sendChatAction", ok)
		},
	}
}

func newProfilePhotosCmd(a *app) *cobra.Command {
	var offset, limit int

	cmd := &cobra.Command{
		Use:   "profile-photos <user-id>",
		Short: "List profile pictures of a user (getUserProfilePhotos)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			userID, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid user id %q: %w", args[0], err)
			}

			photos, err := a.api.GetUserProfilePhotos(cmd.Context(), userID,
				optionalInt(cmd, "offset", offset),
				optionalInt(cmd, "limit", limit),
			)
			if err != nil {
				return err
			}
			if a.asJSON {
				return a.printJSON(photos)
			}

			fmt.Fprintf(a.out, "Total: %d\n", photos.TotalCount)
			for i, sizes := range photos.Photos {
				if len(sizes) == 0 {
					continue
				}
				largest := sizes[len(sizes)-1]
				fmt.Fprintf(a.out, "%3d  %dx%d  %s\n", i, largest.Width, largest.Height, largest.FileID)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&offset, "offset", 0, "sequential number of the first photo")
	cmd.Flags().IntVar(&limit, "limit", 0, "maximum number of photos (1-100)")
	return cmd
}

func newFileCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "file <file-id>",
		Short: "Show file info and download link (getFile)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			file, err := a.api.GetFile(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if a.asJSON {
				return a.printJSON(file)
			}

			fmt.Fprintf(a.out, "file_id:   %s\nfile_size: %d\nfile_path: %s\n", file.FileID, file.FileSize, file.FilePath)
			if u, err := a.client.FileURL(*file); err == nil {
				mutedColor.Fprintf(a.out, "url:       %s\n", u)
			}
			return nil
		},
	}
}

func newDownloadCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "download <file-id> [destination]",
		Short: "Download a file (getFile + file link)",
		Long: `Download a file. Without a destination the file is saved under
the base name of its Telegram path. "-" writes to stdout.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			file, err := a.api.GetFile(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if file.FilePath == "" {
				return fmt.Errorf("telegram returned no file_path for %s", file.FileID)
			}

			dest := file.FilePath[strings.LastIndex(file.FilePath, "/")+1:]
			if len(args) == 2 {
				dest = args[1]
			}

			if dest == "-" {
				_, err := a.api.DownloadFile(cmd.Context(), *file, a.out)
				return err
			}

			f, err := os.Create(dest)
			if err != nil {
				return fmt.Errorf("failed to create %s: %w", dest, err)
			}
			n, err := a.api.DownloadFile(cmd.Context(), *file, f)
			if closeErr := f.Close(); err == nil {
				err = closeErr
			}
			if err != nil {
				return err
			}

			okColor.Fprintf(a.errOut, "Saved %d bytes to %s\n", n, dest)
			return nil
		},
	}
}

func newWebhookCmd(a *app) *cobra.Command {
	var certificate string

	cmd := &cobra.Command{
		Use:   "webhook [url]",
		Short: "Set or remove the webhook (setWebhook)",
		Long: `Set the webhook URL. Without a URL the webhook is removed and
getUpdates works again.`,
		Example: `  botctl webhook https://example.com/hook --certificate cert.pem
  botctl webhook`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			url := ""
			if len(args) == 1 {
				url = args[0]
			}

			var cert domain.Uploadable
			if certificate != "" {
				cert = domain.FilePath(certificate)
			}

			ok, err := a.api.SetWebhook(cmd.Context(), url, cert)
			if err != nil {
				return err
			}
			return a.printResult("setWebhook", ok)
		},
	}

	cmd.Flags().StringVar(&certificate, "certificate", "", "public key certificate to upload")
	return cmd
}

func newAnswerInlineCmd(a *app) *cobra.Command {
	var (
		articles   []string
		photos     []string
		cacheTime  int
		personal   bool
		nextOffset string
	)

	cmd := &cobra.Command{
		Use:   "answer-inline <inline-query-id>",
		Short: "Answer an inline query (answerInlineQuery)",
		Example: `  botctl answer-inline 123 --article "Go=Go is an open source language"
  botctl answer-inline 123 --photo https://example.com/cat.jpg --cache-time 0`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			results := make([]domain.InlineQueryResult, 0, len(articles)+len(photos))
			for _, article := range articles {
				title, text, ok := strings.Cut(article, "=")
				if !ok {
					return fmt.Errorf("invalid --article %q: expected title=text", article)
				}
				results = append(results, domain.NewInlineQueryResultArticle(title, text))
			}
			for _, p := range photos {
				results = append(results, domain.NewInlineQueryResultPhoto(p, p))
			}

			ok, err := a.api.AnswerInlineQuery(cmd.Context(), args[0], results, &ports.AnswerInlineQueryOptions{
				CacheTime:  optionalInt(cmd, "cache-time", cacheTime),
				IsPersonal: personal,
				NextOffset: nextOffset,
			})
			if err != nil {
				return err
			}
			return a.printResult("answerInlineQuery", ok)
		},
	}

	cmd.Flags().StringArrayVar(&articles, "article", nil, "article result as title=text (repeatable)")
	cmd.Flags().StringArrayVar(&photos, "photo", nil, "photo result URL, also used as thumbnail (repeatable)")
	cmd.Flags().IntVar(&cacheTime, "cache-time", 0, "seconds the result may be cached on the server")
	cmd.Flags().BoolVar(&personal, "personal", false, "cache results only for the requesting user")
	cmd.Flags().StringVar(&nextOffset, "next-offset", "", "offset for the next page of results")
	return cmd
}
