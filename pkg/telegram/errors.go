package telegram

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"golang.org/x/xerrors"
)

// ErrInvalidArgument означает ошибку в вызывающем коде: недопустимый
// reply markup, неподдерживаемое содержимое, пустой обязательный аргумент.
// Запрос в сеть при этом не отправляется.
var ErrInvalidArgument = errors.New("invalid argument")

// APIError возвращается, когда Telegram ответил с ok=false.
type APIError struct {
	// Code похож на HTTP-статус. Равен -1, если Telegram его не прислал.
	Code int
	// Type - краткое описание вида AUTH_KEY_UNREGISTERED. Может быть пустым.
	Type string
	// Description - подробности от Telegram. Может быть пустым.
	Description string
}

func (e *APIError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "telegram api error %d", e.Code)
	if e.Type != "" {
		b.WriteString(" " + e.Type)
	}
	if e.Description != "" {
		fmt.Fprintf(&b, " '%s'", e.Description)
	}
	return b.String()
}

// TransportError описывает сетевую ошибку или ошибку (де)сериализации.
// Body содержит сырое тело ответа, если оно было получено.
type TransportError struct {
	Op         string
	Msg        string
	StatusCode int
	Body       string
	Err        error

	frame xerrors.Frame
}

func newTransportError(op, msg string, err error) *TransportError {
	return &TransportError{
		Op:    op,
		Msg:   msg,
		Err:   err,
		frame: xerrors.Caller(1),
	}
}

func (e *TransportError) withResponse(statusCode int, body []byte) *TransportError {
	e.StatusCode = statusCode
	e.Body = string(body)
	return e
}

func (e *TransportError) Error() string {
	msg := e.Op + ": " + e.Msg
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// Format печатает тело ответа и место возникновения ошибки при %+v.
func (e *TransportError) Format(s fmt.State, v rune) {
	xerrors.FormatError(e, s, v)
}

// FormatError реализует xerrors.Formatter.
func (e *TransportError) FormatError(p xerrors.Printer) error {
	p.Print(e.Op + ": " + e.Msg)
	if p.Detail() {
		if e.StatusCode != 0 {
			p.Printf("http status: %d\n", e.StatusCode)
		}
		if e.Body != "" {
			p.Printf("response body: %s\n", e.Body)
		}
		e.frame.Format(p)
	}
	return e.Err
}

// maskedToken подставляется вместо токена в адресах из сетевых ошибок.
const maskedToken = "***masked-token***"

// redactToken убирает токен из адреса, который net/http кладет в *url.Error.
func redactToken(err error, token string) error {
	if token == "" {
		return err
	}
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		urlErr.URL = strings.ReplaceAll(urlErr.URL, token, maskedToken)
	}
	return err
}
