// Package domain содержит модели объектов Telegram Bot API.
//
// Все необязательные поля помечены omitempty: отсутствующее значение
// не попадает в сериализованный JSON.
package domain

// User представляет пользователя или бота Telegram.
type User struct {
	ID        int64  `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name,omitempty"`
	Username  string `json:"username,omitempty"`
}

// GroupChat представляет групповой чат в старом формате ответа.
type GroupChat struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
}

// Chat типы.
const (
	ChatTypePrivate    = "private"
	ChatTypeGroup      = "group"
	ChatTypeSupergroup = "supergroup"
	ChatTypeChannel    = "channel"
)

// Chat представляет чат, которому принадлежит сообщение.
// В старых ответах API это либо User, либо GroupChat без поля type,
// поэтому форма определяется методами AsUser и AsGroupChat.
type Chat struct {
	ID        int64  `json:"id"`
	Type      string `json:"type,omitempty"`
	Title     string `json:"title,omitempty"`
	Username  string `json:"username,omitempty"`
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
}

// IsPrivate сообщает, является ли чат личной перепиской.
// Наличие title означает группу, наличие first_name - личный чат,
// иначе решение принимается по полю type.
func (c Chat) IsPrivate() bool {
	switch {
	case c.Title != "":
		return false
	case c.FirstName != "":
		return true
	default:
		return c.Type == ChatTypePrivate
	}
}

// AsUser возвращает собеседника личного чата.
func (c Chat) AsUser() (User, bool) {
	if !c.IsPrivate() {
		return User{}, false
	}
	return User{
		ID:        c.ID,
		FirstName: c.FirstName,
		LastName:  c.LastName,
		Username:  c.Username,
	}, true
}

// AsGroupChat возвращает группу, если чат не является личным.
func (c Chat) AsGroupChat() (GroupChat, bool) {
	if c.IsPrivate() {
		return GroupChat{}, false
	}
	return GroupChat{ID: c.ID, Title: c.Title}, true
}

// Message представляет сообщение.
type Message struct {
	MessageID      int64       `json:"message_id"`
	From           *User       `json:"from,omitempty"`
	Date           int64       `json:"date"`
	Chat           Chat        `json:"chat"`
	ForwardFrom    *User       `json:"forward_from,omitempty"`
	ForwardDate    int64       `json:"forward_date,omitempty"`
	ReplyToMessage *Message    `json:"reply_to_message,omitempty"`
	Text           string      `json:"text,omitempty"`
	Audio          *Audio      `json:"audio,omitempty"`
	Document       *Document   `json:"document,omitempty"`
	Photo          []PhotoSize `json:"photo,omitempty"`
	Sticker        *Sticker    `json:"sticker,omitempty"`
	Video          *Video      `json:"video,omitempty"`
	Voice          *Voice      `json:"voice,omitempty"`
	Caption        string      `json:"caption,omitempty"`
	Contact        *Contact    `json:"contact,omitempty"`
	Location       *Location   `json:"location,omitempty"`

	NewChatParticipant  *User       `json:"new_chat_participant,omitempty"`
	LeftChatParticipant *User       `json:"left_chat_participant,omitempty"`
	NewChatTitle        string      `json:"new_chat_title,omitempty"`
	NewChatPhoto        []PhotoSize `json:"new_chat_photo,omitempty"`
	DeleteChatPhoto     bool        `json:"delete_chat_photo,omitempty"`
	GroupChatCreated    bool        `json:"group_chat_created,omitempty"`
}

// Update представляет входящее обновление.
// Заполнено не более одного из полей Message, InlineQuery, ChosenInlineResult.
type Update struct {
	UpdateID           int64               `json:"update_id"`
	Message            *Message            `json:"message,omitempty"`
	InlineQuery        *InlineQuery        `json:"inline_query,omitempty"`
	ChosenInlineResult *ChosenInlineResult `json:"chosen_inline_result,omitempty"`
}

// InlineQuery представляет входящий inline-запрос.
type InlineQuery struct {
	ID     string `json:"id"`
	From   User   `json:"from"`
	Query  string `json:"query"`
	Offset string `json:"offset"`
}

// ChosenInlineResult - результат inline-запроса, выбранный пользователем.
type ChosenInlineResult struct {
	ResultID string `json:"result_id"`
	From     User   `json:"from"`
	Query    string `json:"query"`
}
