package domain

import "golang.org/x/exp/slices"

// ParseMode задает разметку текста сообщения.
type ParseMode string

const (
	ParseModeMarkdown ParseMode = "Markdown"
	ParseModeHTML     ParseMode = "HTML"
)

// ChatAction - статус, который видит пользователь, пока бот готовит ответ.
// Допускается произвольная строка: ChatAction("typing").
type ChatAction string

const (
	ChatActionTyping         ChatAction = "typing"
	ChatActionUploadPhoto    ChatAction = "upload_photo"
	ChatActionRecordVideo    ChatAction = "record_video"
	ChatActionUploadVideo    ChatAction = "upload_video"
	ChatActionRecordAudio    ChatAction = "record_audio"
	ChatActionUploadAudio    ChatAction = "upload_audio"
	ChatActionUploadDocument ChatAction = "upload_document"
	ChatActionFindLocation   ChatAction = "find_location"
)

// ChatActions перечисляет все известные действия.
var ChatActions = []ChatAction{
	ChatActionTyping,
	ChatActionUploadPhoto,
	ChatActionRecordVideo,
	ChatActionUploadVideo,
	ChatActionRecordAudio,
	ChatActionUploadAudio,
	ChatActionUploadDocument,
	ChatActionFindLocation,
}

// Known сообщает, входит ли действие в перечисление.
func (a ChatAction) Known() bool {
	return slices.Contains(ChatActions, a)
}
