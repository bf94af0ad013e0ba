package domain

import "encoding/json"

// ReplyMarkup - дополнительный интерфейс, прикрепляемый к исходящему сообщению.
// Реализуют только ReplyKeyboardMarkup, ReplyKeyboardHide и ForceReply.
type ReplyMarkup interface {
	replyMarkup()
}

// ReplyKeyboardMarkup задает пользовательскую клавиатуру.
type ReplyKeyboardMarkup struct {
	Keyboard        [][]string `json:"keyboard"`
	ResizeKeyboard  bool       `json:"resize_keyboard,omitempty"`
	OneTimeKeyboard bool       `json:"one_time_keyboard,omitempty"`
	Selective       bool       `json:"selective,omitempty"`
}

// NewReplyKeyboard создает клавиатуру из рядов кнопок.
func NewReplyKeyboard(rows ...[]string) ReplyKeyboardMarkup {
	return ReplyKeyboardMarkup{Keyboard: rows}
}

// ReplyKeyboardHide скрывает текущую пользовательскую клавиатуру.
type ReplyKeyboardHide struct {
	Selective bool
}

// MarshalJSON всегда выставляет hide_keyboard в true.
func (h ReplyKeyboardHide) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		HideKeyboard bool `json:"hide_keyboard"`
		Selective    bool `json:"selective,omitempty"`
	}{true, h.Selective})
}

// ForceReply показывает пользователю интерфейс ответа на сообщение бота.
type ForceReply struct {
	Selective bool
}

// MarshalJSON всегда выставляет force_reply в true.
func (f ForceReply) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		ForceReply bool `json:"force_reply"`
		Selective  bool `json:"selective,omitempty"`
	}{true, f.Selective})
}

func (ReplyKeyboardMarkup) replyMarkup() {}
func (ReplyKeyboardHide) replyMarkup()   {}
func (ForceReply) replyMarkup()          {}
