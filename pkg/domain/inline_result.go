package domain

import (
	"encoding/json"
	"strings"

	"github.com/google/uuid"
)

// Типы результатов inline-запроса.
const (
	InlineResultArticle  = "article"
	InlineResultPhoto    = "photo"
	InlineResultGif      = "gif"
	InlineResultMpeg4Gif = "mpeg4_gif"
	InlineResultVideo    = "video"
)

// InlineQueryResult - один из результатов ответа на inline-запрос.
// Реализуют только типы InlineQueryResult* этого пакета.
type InlineQueryResult interface {
	ResultType() string
	ResultID() string
	inlineQueryResult()
}

// NewInlineResultID генерирует уникальный идентификатор результата:
// 64 шестнадцатеричных символа, максимум, который допускает Telegram.
func NewInlineResultID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "") + strings.ReplaceAll(uuid.NewString(), "-", "")
}

// InlineQueryResultArticle - ссылка на статью или веб-страницу.
type InlineQueryResultArticle struct {
	ID                    string    `json:"id"`
	Title                 string    `json:"title"`
	MessageText           string    `json:"message_text"`
	ParseMode             ParseMode `json:"parse_mode,omitempty"`
	DisableWebPagePreview bool      `json:"disable_web_page_preview,omitempty"`
	URL                   string    `json:"url,omitempty"`
	HideURL               bool      `json:"hide_url,omitempty"`
	Description           string    `json:"description,omitempty"`
	ThumbURL              string    `json:"thumb_url,omitempty"`
	ThumbWidth            int       `json:"thumb_width,omitempty"`
	ThumbHeight           int       `json:"thumb_height,omitempty"`
}

// NewInlineQueryResultArticle создает статью со сгенерированным id.
func NewInlineQueryResultArticle(title, messageText string) *InlineQueryResultArticle {
	return &InlineQueryResultArticle{ID: NewInlineResultID(), Title: title, MessageText: messageText}
}

func (r InlineQueryResultArticle) ResultType() string { return InlineResultArticle }
func (r InlineQueryResultArticle) ResultID() string   { return r.ID }

func (r InlineQueryResultArticle) MarshalJSON() ([]byte, error) {
	type alias InlineQueryResultArticle
	return json.Marshal(struct {
		Type string `json:"type"`
		alias
	}{InlineResultArticle, alias(r)})
}

// InlineQueryResultPhoto - ссылка на фотографию в формате JPEG.
type InlineQueryResultPhoto struct {
	ID                    string    `json:"id"`
	PhotoURL              string    `json:"photo_url"`
	PhotoWidth            int       `json:"photo_width,omitempty"`
	PhotoHeight           int       `json:"photo_height,omitempty"`
	ThumbURL              string    `json:"thumb_url"`
	Title                 string    `json:"title,omitempty"`
	Description           string    `json:"description,omitempty"`
	Caption               string    `json:"caption,omitempty"`
	MessageText           string    `json:"message_text,omitempty"`
	ParseMode             ParseMode `json:"parse_mode,omitempty"`
	DisableWebPagePreview bool      `json:"disable_web_page_preview,omitempty"`
}

// NewInlineQueryResultPhoto создает фотографию со сгенерированным id.
func NewInlineQueryResultPhoto(photoURL, thumbURL string) *InlineQueryResultPhoto {
	return &InlineQueryResultPhoto{ID: NewInlineResultID(), PhotoURL: photoURL, ThumbURL: thumbURL}
}

func (r InlineQueryResultPhoto) ResultType() string { return InlineResultPhoto }
func (r InlineQueryResultPhoto) ResultID() string   { return r.ID }

func (r InlineQueryResultPhoto) MarshalJSON() ([]byte, error) {
	type alias InlineQueryResultPhoto
	return json.Marshal(struct {
		Type string `json:"type"`
		alias
	}{InlineResultPhoto, alias(r)})
}

// InlineQueryResultGif - ссылка на анимированный GIF.
type InlineQueryResultGif struct {
	ID                    string    `json:"id"`
	GifURL                string    `json:"gif_url"`
	GifWidth              int       `json:"gif_width,omitempty"`
	GifHeight             int       `json:"gif_height,omitempty"`
	ThumbURL              string    `json:"thumb_url"`
	Title                 string    `json:"title,omitempty"`
	Caption               string    `json:"caption,omitempty"`
	MessageText           string    `json:"message_text,omitempty"`
	ParseMode             ParseMode `json:"parse_mode,omitempty"`
	DisableWebPagePreview bool      `json:"disable_web_page_preview,omitempty"`
}

// NewInlineQueryResultGif создает GIF со сгенерированным id.
func NewInlineQueryResultGif(gifURL, thumbURL string) *InlineQueryResultGif {
	return &InlineQueryResultGif{ID: NewInlineResultID(), GifURL: gifURL, ThumbURL: thumbURL}
}

func (r InlineQueryResultGif) ResultType() string { return InlineResultGif }
func (r InlineQueryResultGif) ResultID() string   { return r.ID }

func (r InlineQueryResultGif) MarshalJSON() ([]byte, error) {
	type alias InlineQueryResultGif
	return json.Marshal(struct {
		Type string `json:"type"`
		alias
	}{InlineResultGif, alias(r)})
}

// InlineQueryResultMpeg4Gif - ссылка на анимацию в формате MPEG-4 без звука.
type InlineQueryResultMpeg4Gif struct {
	ID                    string    `json:"id"`
	Mpeg4URL              string    `json:"mpeg4_url"`
	Mpeg4Width            int       `json:"mpeg4_width,omitempty"`
	Mpeg4Height           int       `json:"mpeg4_height,omitempty"`
	ThumbURL              string    `json:"thumb_url"`
	Title                 string    `json:"title,omitempty"`
	Caption               string    `json:"caption,omitempty"`
	MessageText           string    `json:"message_text,omitempty"`
	ParseMode             ParseMode `json:"parse_mode,omitempty"`
	DisableWebPagePreview bool      `json:"disable_web_page_preview,omitempty"`
}

// NewInlineQueryResultMpeg4Gif создает MPEG-4 анимацию со сгенерированным id.
func NewInlineQueryResultMpeg4Gif(mpeg4URL, thumbURL string) *InlineQueryResultMpeg4Gif {
	return &InlineQueryResultMpeg4Gif{ID: NewInlineResultID(), Mpeg4URL: mpeg4URL, ThumbURL: thumbURL}
}

func (r InlineQueryResultMpeg4Gif) ResultType() string { return InlineResultMpeg4Gif }
func (r InlineQueryResultMpeg4Gif) ResultID() string   { return r.ID }

func (r InlineQueryResultMpeg4Gif) MarshalJSON() ([]byte, error) {
	type alias InlineQueryResultMpeg4Gif
	return json.Marshal(struct {
		Type string `json:"type"`
		alias
	}{InlineResultMpeg4Gif, alias(r)})
}

// InlineQueryResultVideo - ссылка на страницу со встроенным плеером или видеофайл.
type InlineQueryResultVideo struct {
	ID                    string    `json:"id"`
	VideoURL              string    `json:"video_url"`
	MimeType              string    `json:"mime_type"`
	MessageText           string    `json:"message_text"`
	ParseMode             ParseMode `json:"parse_mode,omitempty"`
	DisableWebPagePreview bool      `json:"disable_web_page_preview,omitempty"`
	VideoWidth            int       `json:"video_width,omitempty"`
	VideoHeight           int       `json:"video_height,omitempty"`
	VideoDuration         int       `json:"video_duration,omitempty"`
	ThumbURL              string    `json:"thumb_url"`
	Title                 string    `json:"title"`
	Description           string    `json:"description,omitempty"`
}

// NewInlineQueryResultVideo создает видео со сгенерированным id.
func NewInlineQueryResultVideo(videoURL, mimeType, messageText, thumbURL, title string) *InlineQueryResultVideo {
	return &InlineQueryResultVideo{
		ID:          NewInlineResultID(),
		VideoURL:    videoURL,
		MimeType:    mimeType,
		MessageText: messageText,
		ThumbURL:    thumbURL,
		Title:       title,
	}
}

func (r InlineQueryResultVideo) ResultType() string { return InlineResultVideo }
func (r InlineQueryResultVideo) ResultID() string   { return r.ID }

func (r InlineQueryResultVideo) MarshalJSON() ([]byte, error) {
	type alias InlineQueryResultVideo
	return json.Marshal(struct {
		Type string `json:"type"`
		alias
	}{InlineResultVideo, alias(r)})
}

func (InlineQueryResultArticle) inlineQueryResult()  {}
func (InlineQueryResultPhoto) inlineQueryResult()    {}
func (InlineQueryResultGif) inlineQueryResult()      {}
func (InlineQueryResultMpeg4Gif) inlineQueryResult() {}
func (InlineQueryResultVideo) inlineQueryResult()    {}

