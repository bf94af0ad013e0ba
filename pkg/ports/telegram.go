// Package ports описывает публичные контракты клиента Telegram Bot API.
package ports

import (
	"context"
	"encoding/json"
	"io"

	"github.com/mephi-learn/telegram-bot-client/pkg/domain"
)

// Params - упорядоченный набор параметров запроса.
// Реализация находится в пакете telegram; здесь нужен только обход пар.
type Params interface {
	// Each вызывает fn для каждой пары в порядке добавления.
	Each(fn func(key, value string))
	Len() int
}

// RequestExecutor выполняет запросы к Bot API и разворачивает конверт ответа.
// Все методы возвращают содержимое поля result.
type RequestExecutor interface {
	// Get отправляет GET с параметрами в строке запроса.
	Get(ctx context.Context, action string, params Params) (json.RawMessage, error)
	// Post отправляет POST с параметрами в виде полей формы.
	Post(ctx context.Context, action string, params Params) (json.RawMessage, error)
	// PostFile отправляет multipart POST: параметры - поля формы,
	// файл - часть с именем field.
	PostFile(ctx context.Context, action string, params Params, field string, file domain.Uploadable) (json.RawMessage, error)
}

// BotAPI определяет типизированный фасад над методами Bot API.
type BotAPI interface {
	GetMe(ctx context.Context) (*domain.User, error)
	GetUpdates(ctx context.Context, offset, limit, timeout *int) ([]domain.Update, error)
	SendMessage(ctx context.Context, chatID domain.ChatID, text string, opts *SendMessageOptions) (*domain.Message, error)
	ForwardMessage(ctx context.Context, chatID, fromChatID domain.ChatID, messageID int64) (*domain.Message, error)
	SendPhoto(ctx context.Context, chatID domain.ChatID, photo domain.InputFile, opts *SendPhotoOptions) (*domain.Message, error)
	SendAudio(ctx context.Context, chatID domain.ChatID, audio domain.InputFile, opts *SendAudioOptions) (*domain.Message, error)
	SendDocument(ctx context.Context, chatID domain.ChatID, document domain.InputFile, opts *SendOptions) (*domain.Message, error)
	SendSticker(ctx context.Context, chatID domain.ChatID, sticker domain.InputFile, opts *SendOptions) (*domain.Message, error)
	SendVideo(ctx context.Context, chatID domain.ChatID, video domain.InputFile, opts *SendVideoOptions) (*domain.Message, error)
	SendVoice(ctx context.Context, chatID domain.ChatID, voice domain.InputFile, opts *SendVoiceOptions) (*domain.Message, error)
	SendLocation(ctx context.Context, chatID domain.ChatID, latitude, longitude float64, opts *SendOptions) (*domain.Message, error)
	SendChatAction(ctx context.Context, chatID domain.ChatID, action domain.ChatAction) (bool, error)
	GetUserProfilePhotos(ctx context.Context, userID int64, offset, limit *int) (*domain.UserProfilePhotos, error)
	SetWebhook(ctx context.Context, url string, certificate domain.Uploadable) (bool, error)
	GetFile(ctx context.Context, fileID string) (*domain.File, error)
	AnswerInlineQuery(ctx context.Context, inlineQueryID string, results []domain.InlineQueryResult, opts *AnswerInlineQueryOptions) (bool, error)
	DownloadFile(ctx context.Context, file domain.File, w io.Writer) (int64, error)
}

// SendOptions - необязательные параметры, общие для методов отправки.
type SendOptions struct {
	ReplyToMessageID int64
	ReplyMarkup      domain.ReplyMarkup
}

// SendMessageOptions - необязательные параметры sendMessage.
type SendMessageOptions struct {
	ParseMode             domain.ParseMode
	DisableWebPagePreview bool
	SendOptions
}

// SendPhotoOptions - необязательные параметры sendPhoto.
type SendPhotoOptions struct {
	Caption string
	SendOptions
}

// SendAudioOptions - необязательные параметры sendAudio.
type SendAudioOptions struct {
	Duration  int
	Performer string
	Title     string
	SendOptions
}

// SendVideoOptions - необязательные параметры sendVideo.
type SendVideoOptions struct {
	Duration int
	Caption  string
	SendOptions
}

// SendVoiceOptions - необязательные параметры sendVoice.
type SendVoiceOptions struct {
	Duration int
	SendOptions
}

// AnswerInlineQueryOptions - необязательные параметры answerInlineQuery.
// CacheTime равный nil не передается, и Telegram использует значение по умолчанию.
type AnswerInlineQueryOptions struct {
	CacheTime  *int
	IsPersonal bool
	NextOffset string
}
