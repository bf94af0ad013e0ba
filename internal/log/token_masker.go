// Package log настраивает slog и скрывает токены ботов в записях журнала.
package log

import (
	"context"
	"log/slog"
	"regexp"
)

const (
	maskedURLToken  = "bot***:***masked-token***"
	maskedBareToken = "***:***masked-token***"
)

var (
	// urlTokenRegex находит токен в адресе Bot API: bot<id>:<secret>.
	urlTokenRegex = regexp.MustCompile(`\bbot\d+:[A-Za-z0-9_-]{35,}`)
	// bareTokenRegex находит токен без префикса, например в атрибуте token.
	bareTokenRegex = regexp.MustCompile(`\b\d{5,}:[A-Za-z0-9_-]{35,}`)
)

// MaskTokens заменяет все найденные токены на маску.
func MaskTokens(text string) string {
	text = urlTokenRegex.ReplaceAllString(text, maskedURLToken)
	return bareTokenRegex.ReplaceAllString(text, maskedBareToken)
}

// TokenMaskerHandler оборачивает slog.Handler и маскирует токены
// в сообщении и во всех атрибутах.
type TokenMaskerHandler struct {
	handler slog.Handler
}

var _ slog.Handler = (*TokenMaskerHandler)(nil)

// NewTokenMaskerHandler создает обработчик с маскировкой токенов.
func NewTokenMaskerHandler(handler slog.Handler) *TokenMaskerHandler {
	return &TokenMaskerHandler{handler: handler}
}

// Enabled реализует slog.Handler.
func (h *TokenMaskerHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.handler.Enabled(ctx, level)
}

// Handle реализует slog.Handler. Запись клонируется: slog может
// переиспользовать оригинал.
func (h *TokenMaskerHandler) Handle(ctx context.Context, record slog.Record) error {
	masked := slog.NewRecord(record.Time, record.Level, MaskTokens(record.Message), record.PC)
	record.Attrs(func(a slog.Attr) bool {
		masked.AddAttrs(maskAttr(a))
		return true
	})
	return h.handler.Handle(ctx, masked)
}

// WithAttrs реализует slog.Handler.
func (h *TokenMaskerHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	masked := make([]slog.Attr, len(attrs))
	for i, a := range attrs {
		masked[i] = maskAttr(a)
	}
	return &TokenMaskerHandler{handler: h.handler.WithAttrs(masked)}
}

// WithGroup реализует slog.Handler.
func (h *TokenMaskerHandler) WithGroup(name string) slog.Handler {
	return &TokenMaskerHandler{handler: h.handler.WithGroup(name)}
}

func maskAttr(a slog.Attr) slog.Attr {
	return slog.Attr{Key: a.Key, Value: maskValue(a.Value)}
}

// maskValue рекурсивно маскирует строки, ошибки и группы.
func maskValue(v slog.Value) slog.Value {
	switch v.Kind() {
	case slog.KindString:
		return slog.StringValue(MaskTokens(v.String()))
	case slog.KindAny:
		if err, ok := v.Any().(error); ok {
			return slog.StringValue(MaskTokens(err.Error()))
		}
		return v
	case slog.KindLogValuer:
		return maskValue(v.Resolve())
	case slog.KindGroup:
		group := v.Group()
		masked := make([]slog.Attr, len(group))
		for i, a := range group {
			masked[i] = maskAttr(a)
		}
		return slog.GroupValue(masked...)
	default:
		return v
	}
}
