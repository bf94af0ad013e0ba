// Package telegram реализует клиент Telegram Bot API: построение параметров,
// выбор вида запроса (GET, POST формы, multipart) и разбор ответов в модели.
package telegram

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/mephi-learn/telegram-bot-client/internal/cache"
	"github.com/mephi-learn/telegram-bot-client/pkg/domain"
	"github.com/mephi-learn/telegram-bot-client/pkg/ports"
)

// DefaultAPIEndpoint - адрес Bot API по умолчанию.
const DefaultAPIEndpoint = "https://api.telegram.org"

// Client - типизированный фасад Bot API: по одному методу на каждый метод API.
// Клиент не хранит изменяемого состояния и безопасен для одновременного
// использования, если таков исполнитель запросов.
type Client struct {
	token       string
	apiEndpoint string
	exec        ports.RequestExecutor
	httpClient  *http.Client
	log         *slog.Logger
	files       *cache.Store[domain.File]
}

var _ ports.BotAPI = (*Client)(nil)

// ClientOption определяет функциональную опцию для конфигурации клиента.
type ClientOption func(*Client)

// WithExecutor подменяет исполнитель запросов, например для повторов или тестов.
func WithExecutor(e ports.RequestExecutor) ClientOption {
	return func(c *Client) {
		if e != nil {
			c.exec = e
		}
	}
}

// WithHTTPClient задает HTTP-клиент для запросов и скачивания файлов.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithAPIEndpoint задает адрес Bot API без завершающего слеша.
func WithAPIEndpoint(endpoint string) ClientOption {
	return func(c *Client) {
		if endpoint != "" {
			c.apiEndpoint = strings.TrimRight(endpoint, "/")
		}
	}
}

// WithLogger устанавливает логгер для клиента.
func WithLogger(l *slog.Logger) ClientOption {
	return func(c *Client) {
		if l != nil {
			c.log = l
		}
	}
}

// WithFileCache включает кэширование результатов GetFile на ttl.
// Telegram гарантирует, что ссылка на файл действует не меньше часа.
func WithFileCache(ttl time.Duration) ClientOption {
	return func(c *Client) {
		if ttl > 0 {
			c.files = cache.NewStore[domain.File](ttl)
		}
	}
}

// NewClient создает клиент для бота с указанным токеном.
func NewClient(token string, opts ...ClientOption) *Client {
	c := &Client{
		token:       token,
		apiEndpoint: DefaultAPIEndpoint,
		httpClient:  &http.Client{},
		log:         slog.Default().With("component", "telegram"),
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.exec == nil {
		c.exec = NewHTTPExecutor(c.apiEndpoint+"/bot"+c.token+"/",
			WithExecutorHTTPClient(c.httpClient),
			WithExecutorLogger(c.log),
		)
	}

	return c
}

// GetMe возвращает информацию о боте.
func (c *Client) GetMe(ctx context.Context) (*domain.User, error) {
	raw, err := c.exec.Get(ctx, "getMe", nil)
	if err != nil {
		return nil, c.failed(ctx, "getMe", err)
	}
	return decode[domain.User]("getMe", raw)
}

// GetUpdates получает входящие обновления (long polling).
// Параметры, равные nil, не передаются.
func (c *Client) GetUpdates(ctx context.Context, offset, limit, timeout *int) ([]domain.Update, error) {
	p := NewParams()
	p.SetOptionalInt("offset", offset)
	p.SetOptionalInt("limit", limit)
	p.SetOptionalInt("timeout", timeout)

	raw, err := c.exec.Get(ctx, "getUpdates", p)
	if err != nil {
		return nil, c.failed(ctx, "getUpdates", err)
	}
	updates, err := decode[[]domain.Update]("getUpdates", raw)
	if err != nil {
		return nil, err
	}
	return *updates, nil
}

// SendMessage отправляет текстовое сообщение.
func (c *Client) SendMessage(ctx context.Context, chatID domain.ChatID, text string, opts *ports.SendMessageOptions) (*domain.Message, error) {
	if text == "" {
		return nil, fmt.Errorf("%w: sendMessage: text is required", ErrInvalidArgument)
	}

	p := NewParams()
	if err := p.SetChatID("chat_id", chatID); err != nil {
		return nil, err
	}
	p.Set("text", text)

	var send *ports.SendOptions
	if opts != nil {
		p.SetNonEmpty("parse_mode", string(opts.ParseMode))
		p.SetTrue("disable_web_page_preview", opts.DisableWebPagePreview)
		send = &opts.SendOptions
	}
	if err := applySendOptions(p, send); err != nil {
		return nil, err
	}

	raw, err := c.exec.Post(ctx, "sendMessage", p)
	if err != nil {
		return nil, c.failed(ctx, "sendMessage", err)
	}
	return decode[domain.Message]("sendMessage", raw)
}

// ForwardMessage пересылает сообщение.
func (c *Client) ForwardMessage(ctx context.Context, chatID, fromChatID domain.ChatID, messageID int64) (*domain.Message, error) {
	p := NewParams()
	if err := p.SetChatID("chat_id", chatID); err != nil {
		return nil, err
	}
	if err := p.SetChatID("from_chat_id", fromChatID); err != nil {
		return nil, err
	}
	p.SetInt("message_id", messageID)

	raw, err := c.exec.Get(ctx, "forwardMessage", p)
	if err != nil {
		return nil, c.failed(ctx, "forwardMessage", err)
	}
	return decode[domain.Message]("forwardMessage", raw)
}

// SendPhoto отправляет фотографию.
func (c *Client) SendPhoto(ctx context.Context, chatID domain.ChatID, photo domain.InputFile, opts *ports.SendPhotoOptions) (*domain.Message, error) {
	p := NewParams()
	if err := p.SetChatID("chat_id", chatID); err != nil {
		return nil, err
	}
	var send *ports.SendOptions
	if opts != nil {
		p.SetNonEmpty("caption", opts.Caption)
		send = &opts.SendOptions
	}
	return c.sendContent(ctx, "sendPhoto", "photo", photo, p, send)
}

// SendAudio отправляет аудиофайл (mp3), который клиенты покажут в плеере.
func (c *Client) SendAudio(ctx context.Context, chatID domain.ChatID, audio domain.InputFile, opts *ports.SendAudioOptions) (*domain.Message, error) {
	p := NewParams()
	if err := p.SetChatID("chat_id", chatID); err != nil {
		return nil, err
	}
	var send *ports.SendOptions
	if opts != nil {
		p.SetNonZeroInt("duration", int64(opts.Duration))
		p.SetNonEmpty("performer", opts.Performer)
		p.SetNonEmpty("title", opts.Title)
		send = &opts.SendOptions
	}
	return c.sendContent(ctx, "sendAudio", "audio", audio, p, send)
}

// SendDocument отправляет файл общего вида.
func (c *Client) SendDocument(ctx context.Context, chatID domain.ChatID, document domain.InputFile, opts *ports.SendOptions) (*domain.Message, error) {
	p := NewParams()
	if err := p.SetChatID("chat_id", chatID); err != nil {
		return nil, err
	}
	return c.sendContent(ctx, "sendDocument", "document", document, p, opts)
}

// SendSticker отправляет стикер в формате .webp.
func (c *Client) SendSticker(ctx context.Context, chatID domain.ChatID, sticker domain.InputFile, opts *ports.SendOptions) (*domain.Message, error) {
	p := NewParams()
	if err := p.SetChatID("chat_id", chatID); err != nil {
		return nil, err
	}
	return c.sendContent(ctx, "sendSticker", "sticker", sticker, p, opts)
}

// SendVideo отправляет видео в формате mp4.
func (c *Client) SendVideo(ctx context.Context, chatID domain.ChatID, video domain.InputFile, opts *ports.SendVideoOptions) (*domain.Message, error) {
	p := NewParams()
	if err := p.SetChatID("chat_id", chatID); err != nil {
		return nil, err
	}
	var send *ports.SendOptions
	if opts != nil {
		p.SetNonZeroInt("duration", int64(opts.Duration))
		p.SetNonEmpty("caption", opts.Caption)
		send = &opts.SendOptions
	}
	return c.sendContent(ctx, "sendVideo", "video", video, p, send)
}

// SendVoice отправляет голосовое сообщение (.ogg, OPUS).
func (c *Client) SendVoice(ctx context.Context, chatID domain.ChatID, voice domain.InputFile, opts *ports.SendVoiceOptions) (*domain.Message, error) {
	p := NewParams()
	if err := p.SetChatID("chat_id", chatID); err != nil {
		return nil, err
	}
	var send *ports.SendOptions
	if opts != nil {
		p.SetNonZeroInt("duration", int64(opts.Duration))
		send = &opts.SendOptions
	}
	return c.sendContent(ctx, "sendVoice", "voice", voice, p, send)
}

// SendLocation отправляет точку на карте.
func (c *Client) SendLocation(ctx context.Context, chatID domain.ChatID, latitude, longitude float64, opts *ports.SendOptions) (*domain.Message, error) {
	p := NewParams()
	if err := p.SetChatID("chat_id", chatID); err != nil {
		return nil, err
	}
	p.SetFloat("latitude", latitude)
	p.SetFloat("longitude", longitude)
	if err := applySendOptions(p, opts); err != nil {
		return nil, err
	}

	raw, err := c.exec.Post(ctx, "sendLocation", p)
	if err != nil {
		return nil, c.failed(ctx, "sendLocation", err)
	}
	return decode[domain.Message]("sendLocation", raw)
}

// SendChatAction показывает пользователю статус бота на несколько секунд.
func (c *Client) SendChatAction(ctx context.Context, chatID domain.ChatID, action domain.ChatAction) (bool, error) {
	if action == "" {
		return false, fmt.Errorf("%w: sendChatAction: action is required", ErrInvalidArgument)
	}
	p := NewParams()
	if err := p.SetChatID("chat_id", chatID); err != nil {
		return false, err
	}
	p.Set("action", string(action))

	raw, err := c.exec.Get(ctx, "sendChatAction", p)
	if err != nil {
		return false, c.failed(ctx, "sendChatAction", err)
	}
	return parseBoolResult(raw), nil
}

// GetUserProfilePhotos возвращает фотографии профиля пользователя.
func (c *Client) GetUserProfilePhotos(ctx context.Context, userID int64, offset, limit *int) (*domain.UserProfilePhotos, error) {
	p := NewParams()
	p.SetInt("user_id", userID)
	p.SetOptionalInt("offset", offset)
	p.SetOptionalInt("limit", limit)

	raw, err := c.exec.Get(ctx, "getUserProfilePhotos", p)
	if err != nil {
		return nil, c.failed(ctx, "getUserProfilePhotos", err)
	}
	return decode[domain.UserProfilePhotos]("getUserProfilePhotos", raw)
}

// SetWebhook задает адрес для входящих обновлений. Пустой url не передается,
// и Telegram снимает webhook. Сертификат, если указан, загружается multipart-запросом.
func (c *Client) SetWebhook(ctx context.Context, url string, certificate domain.Uploadable) (bool, error) {
	p := NewParams()
	p.SetNonEmpty("url", url)

	var (
		raw json.RawMessage
		err error
	)
	if certificate == nil {
		raw, err = c.exec.Get(ctx, "setWebhook", p)
	} else {
		raw, err = c.exec.PostFile(ctx, "setWebhook", p, "certificate", certificate)
	}
	if err != nil {
		return false, c.failed(ctx, "setWebhook", err)
	}
	return parseBoolResult(raw), nil
}

// GetFile возвращает сведения о файле и путь для скачивания.
func (c *Client) GetFile(ctx context.Context, fileID string) (*domain.File, error) {
	if fileID == "" {
		return nil, fmt.Errorf("%w: getFile: file_id is required", ErrInvalidArgument)
	}
	if c.files != nil {
		if file, ok := c.files.Get(fileID); ok {
			return &file, nil
		}
	}

	p := NewParams()
	p.Set("file_id", fileID)

	raw, err := c.exec.Get(ctx, "getFile", p)
	if err != nil {
		return nil, c.failed(ctx, "getFile", err)
	}
	file, err := decode[domain.File]("getFile", raw)
	if err != nil {
		return nil, err
	}
	if c.files != nil && file.FilePath != "" {
		c.files.Put(fileID, *file)
	}
	return file, nil
}

// AnswerInlineQuery отправляет ответ на inline-запрос.
func (c *Client) AnswerInlineQuery(ctx context.Context, inlineQueryID string, results []domain.InlineQueryResult, opts *ports.AnswerInlineQueryOptions) (bool, error) {
	if inlineQueryID == "" {
		return false, fmt.Errorf("%w: answerInlineQuery: inline_query_id is required", ErrInvalidArgument)
	}
	for i, r := range results {
		if r == nil {
			return false, fmt.Errorf("%w: answerInlineQuery: result %d is nil", ErrInvalidArgument, i)
		}
		if r.ResultID() == "" {
			return false, fmt.Errorf("%w: answerInlineQuery: result %d has no id", ErrInvalidArgument, i)
		}
	}
	if results == nil {
		results = []domain.InlineQueryResult{}
	}

	p := NewParams()
	p.Set("inline_query_id", inlineQueryID)
	if err := p.SetJSON("results", results); err != nil {
		return false, newTransportError("answerInlineQuery", "could not serialize results", err)
	}
	if opts != nil {
		p.SetOptionalInt("cache_time", opts.CacheTime)
		p.SetTrue("is_personal", opts.IsPersonal)
		p.SetNonEmpty("next_offset", opts.NextOffset)
	}

	raw, err := c.exec.Post(ctx, "answerInlineQuery", p)
	if err != nil {
		return false, c.failed(ctx, "answerInlineQuery", err)
	}
	return parseBoolResult(raw), nil
}

// sendContent отправляет содержимое одного из видов photo, audio, document,
// sticker, video, voice. FileID уходит обычным полем формы, данные - multipart-частью.
func (c *Client) sendContent(ctx context.Context, action, field string, file domain.InputFile, p *Params, opts *ports.SendOptions) (*domain.Message, error) {
	if err := applySendOptions(p, opts); err != nil {
		return nil, err
	}

	var (
		raw json.RawMessage
		err error
	)
	switch f := file.(type) {
	case domain.FileID:
		if f == "" {
			return nil, fmt.Errorf("%w: %s: empty %s file_id", ErrInvalidArgument, action, field)
		}
		p.Set(field, string(f))
		raw, err = c.exec.Post(ctx, action, p)
	case domain.Uploadable:
		raw, err = c.exec.PostFile(ctx, action, p, field, f)
	default:
		return nil, fmt.Errorf("%w: %s: %s must be a file_id or file content, got %T", ErrInvalidArgument, action, field, file)
	}
	if err != nil {
		return nil, c.failed(ctx, action, err)
	}
	return decode[domain.Message](action, raw)
}

// applySendOptions добавляет reply_to_message_id и reply_markup.
func applySendOptions(p *Params, opts *ports.SendOptions) error {
	if opts == nil {
		return nil
	}
	p.SetNonZeroInt("reply_to_message_id", opts.ReplyToMessageID)
	if opts.ReplyMarkup == nil {
		return nil
	}
	markup, err := encodeReplyMarkup(opts.ReplyMarkup)
	if err != nil {
		return err
	}
	p.Set("reply_markup", markup)
	return nil
}

// encodeReplyMarkup кодирует reply markup в JSON-строку.
// Допустимы только ReplyKeyboardMarkup, ReplyKeyboardHide и ForceReply.
func encodeReplyMarkup(m domain.ReplyMarkup) (string, error) {
	var v any
	switch markup := m.(type) {
	case domain.ReplyKeyboardMarkup, domain.ReplyKeyboardHide, domain.ForceReply:
		v = markup
	case *domain.ReplyKeyboardMarkup:
		if markup != nil {
			v = *markup
		}
	case *domain.ReplyKeyboardHide:
		if markup != nil {
			v = *markup
		}
	case *domain.ForceReply:
		if markup != nil {
			v = *markup
		}
	}
	if v == nil {
		return "", fmt.Errorf("%w: reply markup must be ReplyKeyboardMarkup, ReplyKeyboardHide or ForceReply, got %T", ErrInvalidArgument, m)
	}

	data, err := json.Marshal(v)
	if err != nil {
		return "", newTransportError("reply_markup", "could not serialize reply markup", err)
	}
	return string(data), nil
}

// decode разбирает поле result. Ошибка содержит сырое тело для диагностики.
func decode[T any](action string, raw json.RawMessage) (*T, error) {
	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, newTransportError(action, "could not deserialize response", err).withResponse(0, raw)
	}
	return &v, nil
}

// parseBoolResult возвращает true, только если result равен "true" без учета регистра.
func parseBoolResult(raw json.RawMessage) bool {
	s := strings.TrimSpace(string(raw))
	if unquoted, err := strconv.Unquote(s); err == nil {
		s = unquoted
	}
	return strings.EqualFold(s, "true")
}

// failed логирует ошибку вызова и возвращает ее без изменений.
func (c *Client) failed(ctx context.Context, action string, err error) error {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		c.log.WarnContext(ctx, "API call rejected by telegram", "action", action, "error_code", apiErr.Code, "description", apiErr.Description)
	} else {
		c.log.WarnContext(ctx, "API call failed", "action", action, "error", err)
	}
	return err
}
