package domain

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidChatID возвращается при попытке создать ChatID без значения.
var ErrInvalidChatID = errors.New("chat id must be a non-empty string or an integer")

// ChatID идентифицирует получателя: числовой id чата либо
// имя пользователя канала (в формате @channelusername).
// Ровно одно из значений задано; нулевое значение ChatID недействительно.
type ChatID struct {
	id       int64
	username string
	numeric  bool
}

// NewChatID создает числовой идентификатор чата.
func NewChatID(id int64) ChatID {
	return ChatID{id: id, numeric: true}
}

// NewChannelID создает идентификатор по имени канала.
func NewChannelID(username string) (ChatID, error) {
	if username == "" {
		return ChatID{}, ErrInvalidChatID
	}
	return ChatID{username: username}, nil
}

// ChatIDFrom создает ChatID из целого числа или строки.
func ChatIDFrom(v any) (ChatID, error) {
	switch id := v.(type) {
	case ChatID:
		if id.IsZero() {
			return ChatID{}, ErrInvalidChatID
		}
		return id, nil
	case int:
		return NewChatID(int64(id)), nil
	case int32:
		return NewChatID(int64(id)), nil
	case int64:
		return NewChatID(id), nil
	case string:
		return NewChannelID(id)
	case nil:
		return ChatID{}, ErrInvalidChatID
	default:
		return ChatID{}, fmt.Errorf("%w: got %T", ErrInvalidChatID, v)
	}
}

// ParseChatID разбирает строку: числа становятся числовым id,
// все остальное - именем канала.
func ParseChatID(s string) (ChatID, error) {
	s = strings.TrimSpace(s)
	if id, err := strconv.ParseInt(s, 10, 64); err == nil {
		return NewChatID(id), nil
	}
	return NewChannelID(s)
}

// Int возвращает числовой id, если он задан.
func (c ChatID) Int() (int64, bool) {
	return c.id, c.numeric
}

// Username возвращает имя канала, если оно задано.
func (c ChatID) Username() (string, bool) {
	return c.username, !c.numeric && c.username != ""
}

// IsZero сообщает, что ChatID не был инициализирован.
func (c ChatID) IsZero() bool {
	return !c.numeric && c.username == ""
}

// String возвращает значение в том виде, в котором оно передается в API.
func (c ChatID) String() string {
	if c.numeric {
		return strconv.FormatInt(c.id, 10)
	}
	return c.username
}
