package telegram

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/mephi-learn/telegram-bot-client/pkg/domain"
	"github.com/mephi-learn/telegram-bot-client/pkg/ports"
)

// Params - упорядоченный набор параметров запроса с именами полей Bot API.
// Отсутствующие необязательные значения в набор не попадают.
type Params struct {
	keys   []string
	values map[string]string
}

var _ ports.Params = (*Params)(nil)

// NewParams создает пустой набор параметров.
func NewParams() *Params {
	return &Params{values: make(map[string]string)}
}

// Set добавляет параметр. Повторная запись сохраняет исходную позицию ключа.
func (p *Params) Set(key, value string) {
	if _, ok := p.values[key]; !ok {
		p.keys = append(p.keys, key)
	}
	p.values[key] = value
}

// SetNonEmpty добавляет строковый параметр, если он не пустой.
func (p *Params) SetNonEmpty(key, value string) {
	if value != "" {
		p.Set(key, value)
	}
}

// SetInt добавляет целочисленный параметр.
func (p *Params) SetInt(key string, value int64) {
	p.Set(key, strconv.FormatInt(value, 10))
}

// SetNonZeroInt добавляет целочисленный параметр, если он не равен нулю.
func (p *Params) SetNonZeroInt(key string, value int64) {
	if value != 0 {
		p.SetInt(key, value)
	}
}

// SetOptionalInt добавляет параметр, если указатель не nil. Ноль передается.
func (p *Params) SetOptionalInt(key string, value *int) {
	if value != nil {
		p.SetInt(key, int64(*value))
	}
}

// SetTrue добавляет булев флаг, только если он выставлен.
func (p *Params) SetTrue(key string, value bool) {
	if value {
		p.Set(key, "true")
	}
}

// SetFloat добавляет число с плавающей точкой в кратчайшей записи.
func (p *Params) SetFloat(key string, value float64) {
	p.Set(key, strconv.FormatFloat(value, 'f', -1, 64))
}

// SetChatID добавляет идентификатор чата. Нулевой ChatID - ошибка вызывающего.
func (p *Params) SetChatID(key string, id domain.ChatID) error {
	if id.IsZero() {
		return fmt.Errorf("%w: %s: %w", ErrInvalidArgument, key, domain.ErrInvalidChatID)
	}
	p.Set(key, id.String())
	return nil
}

// SetJSON добавляет значение, закодированное в JSON-строку.
func (p *Params) SetJSON(key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	p.Set(key, string(data))
	return nil
}

// Get возвращает значение параметра.
func (p *Params) Get(key string) (string, bool) {
	if p == nil {
		return "", false
	}
	v, ok := p.values[key]
	return v, ok
}

// Keys возвращает ключи в порядке добавления.
func (p *Params) Keys() []string {
	if p == nil {
		return nil
	}
	return append([]string(nil), p.keys...)
}

// Each реализует ports.Params.
func (p *Params) Each(fn func(key, value string)) {
	if p == nil {
		return
	}
	for _, k := range p.keys {
		fn(k, p.values[k])
	}
}

// Len реализует ports.Params.
func (p *Params) Len() int {
	if p == nil {
		return 0
	}
	return len(p.keys)
}

// Encode кодирует параметры для строки запроса или тела формы,
// сохраняя порядок добавления.
func (p *Params) Encode() string {
	return encodeParams(p)
}

func encodeParams(params ports.Params) string {
	if params == nil {
		return ""
	}
	var b strings.Builder
	params.Each(func(key, value string) {
		if b.Len() > 0 {
			b.WriteByte('&')
		}
		b.WriteString(url.QueryEscape(key))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(value))
	})
	return b.String()
}
