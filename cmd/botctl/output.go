package main

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"github.com/mephi-learn/telegram-bot-client/pkg/domain"
)

var (
	okColor    = color.New(color.FgGreen)
	warnColor  = color.New(color.FgYellow)
	mutedColor = color.New(color.Faint)
	header     = color.New(color.Bold)
)

func (a *app) printJSON(v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal result to JSON: %w", err)
	}
	fmt.Fprintln(a.out, string(out))
	return nil
}

func (a *app) printMessage(verb string, msg *domain.Message) error {
	if a.asJSON {
		return a.printJSON(msg)
	}
	okColor.Fprintf(a.out, "%s ", verb)
	fmt.Fprintf(a.out, "message %d to %s\n", msg.MessageID, chatLabel(msg.Chat))
	return nil
}

func (a *app) printResult(what string, ok bool) error {
	if a.asJSON {
		return a.printJSON(ok)
	}
	if ok {
		okColor.Fprintf(a.out, "%s: ok\n", what)
	} else {
		warnColor.Fprintf(a.out, "%s: telegram returned false\n", what)
	}
	return nil
}

func chatLabel(c domain.Chat) string {
	if u, ok := c.AsUser(); ok {
		return userLabel(&u) + " (" + strconv.FormatInt(c.ID, 10) + ")"
	}
	if c.Title != "" {
		return strconv.Quote(c.Title) + " (" + strconv.FormatInt(c.ID, 10) + ")"
	}
	if c.Username != "" {
		return "@" + c.Username
	}
	return strconv.FormatInt(c.ID, 10)
}

func userLabel(u *domain.User) string {
	if u == nil {
		return ""
	}
	if u.Username != "" {
		return "@" + u.Username
	}
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// updateSummary кратко описывает содержимое обновления.
func updateSummary(u domain.Update) (chat, from, content string) {
	switch {
	case u.Message != nil:
		m := u.Message
		return chatLabel(m.Chat), userLabel(m.From), messageSummary(m)
	case u.InlineQuery != nil:
		return "-", userLabel(&u.InlineQuery.From), "inline query " + strconv.Quote(u.InlineQuery.Query)
	case u.ChosenInlineResult != nil:
		return "-", userLabel(&u.ChosenInlineResult.From), "chosen inline result " + u.ChosenInlineResult.ResultID
	default:
		return "-", "-", "unknown update"
	}
}

func messageSummary(m *domain.Message) string {
	switch {
	case m.Text != "":
		return m.Text
	case len(m.Photo) > 0:
		return withCaption("[photo]", m.Caption)
	case m.Audio != nil:
		return "[audio] " + m.Audio.Title
	case m.Document != nil:
		return withCaption("[document] "+m.Document.FileName, m.Caption)
	case m.Sticker != nil:
		return "[sticker]"
	case m.Video != nil:
		return withCaption("[video]", m.Caption)
	case m.Voice != nil:
		return fmt.Sprintf("[voice %ds]", m.Voice.Duration)
	case m.Contact != nil:
		return "[contact] " + m.Contact.PhoneNumber
	case m.Location != nil:
		return fmt.Sprintf("[location] %g,%g", m.Location.Latitude, m.Location.Longitude)
	case m.NewChatParticipant != nil:
		return "[joined] " + userLabel(m.NewChatParticipant)
	case m.LeftChatParticipant != nil:
		return "[left] " + userLabel(m.LeftChatParticipant)
	case m.NewChatTitle != "":
		return "[title] " + m.NewChatTitle
	default:
		return "[service message]"
	}
}

func withCaption(kind, caption string) string {
	if caption == "" {
		return kind
	}
	return kind + " " + caption
}

// printUpdatesTable печатает обновления таблицей, подгоняя последнюю
// колонку под ширину терминала.
func (a *app) printUpdatesTable(updates []domain.Update) {
	const (
		colID   = 10
		colChat = 24
		colFrom = 16
		minText = 20
	)

	textWidth := a.width - colID - colChat - colFrom - 6
	if textWidth < minText {
		textWidth = minText
	}

	header.Fprintf(a.out, "%s  %s  %s  %s\n",
		runewidth.FillRight("UPDATE", colID),
		runewidth.FillRight("CHAT", colChat),
		runewidth.FillRight("FROM", colFrom),
		"CONTENT")

	for _, u := range updates {
		chat, from, content := updateSummary(u)
		content = strings.ReplaceAll(content, "\n", " ")
		fmt.Fprintf(a.out, "%s  %s  %s  %s\n",
			runewidth.FillRight(strconv.FormatInt(u.UpdateID, 10), colID),
			cell(chat, colChat),
			cell(from, colFrom),
			runewidth.Truncate(content, textWidth, "…"))
	}

	if len(updates) > 0 {
		next := updates[len(updates)-1].UpdateID + 1
		mutedColor.Fprintf(a.out, "next offset: %d\n", next)
	}
}

func cell(s string, width int) string {
	return runewidth.FillRight(runewidth.Truncate(s, width, "…"), width)
}
