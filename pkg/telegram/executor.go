package telegram

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/mephi-learn/telegram-bot-client/pkg/domain"
	"github.com/mephi-learn/telegram-bot-client/pkg/ports"
)

// envelope - обертка, в которую Telegram помещает любой ответ.
type envelope struct {
	OK          *bool           `json:"ok"`
	Result      json.RawMessage `json:"result"`
	ErrorCode   *int            `json:"error_code"`
	ErrorType   string          `json:"error_type"`
	Description string          `json:"description"`
}

// HTTPExecutor выполняет запросы к Bot API поверх net/http.
// Повторов и собственных таймаутов нет: их задает переданный http.Client.
type HTTPExecutor struct {
	baseURL    string
	token      string
	httpClient *http.Client
	log        *slog.Logger
}

var _ ports.RequestExecutor = (*HTTPExecutor)(nil)

// ExecutorOption определяет функциональную опцию для HTTPExecutor.
type ExecutorOption func(*HTTPExecutor)

// WithExecutorHTTPClient задает HTTP-клиент.
func WithExecutorHTTPClient(hc *http.Client) ExecutorOption {
	return func(e *HTTPExecutor) {
		if hc != nil {
			e.httpClient = hc
		}
	}
}

// WithExecutorLogger задает логгер.
func WithExecutorLogger(l *slog.Logger) ExecutorOption {
	return func(e *HTTPExecutor) {
		if l != nil {
			e.log = l
		}
	}
}

// NewHTTPExecutor создает исполнитель для базового адреса вида
// https://api.telegram.org/bot<token>/.
func NewHTTPExecutor(baseURL string, opts ...ExecutorOption) *HTTPExecutor {
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}
	e := &HTTPExecutor{
		baseURL:    baseURL,
		token:      tokenFromBaseURL(baseURL),
		httpClient: &http.Client{},
		log:        slog.Default().With("component", "telegram"),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// tokenFromBaseURL возвращает сегмент пути после /bot.
func tokenFromBaseURL(baseURL string) string {
	i := strings.LastIndex(baseURL, "/bot")
	if i < 0 {
		return ""
	}
	return strings.TrimSuffix(baseURL[i+len("/bot"):], "/")
}

// Get реализует ports.RequestExecutor.
func (e *HTTPExecutor) Get(ctx context.Context, action string, params ports.Params) (json.RawMessage, error) {
	u := e.baseURL + action
	if q := encodeParams(params); q != "" {
		u += "?" + q
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, newTransportError(action, "could not build request", redactToken(err, e.token))
	}
	return e.do(req, action)
}

// Post реализует ports.RequestExecutor.
func (e *HTTPExecutor) Post(ctx context.Context, action string, params ports.Params) (json.RawMessage, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.baseURL+action, strings.NewReader(encodeParams(params)))
	if err != nil {
		return nil, newTransportError(action, "could not build request", redactToken(err, e.token))
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return e.do(req, action)
}

// PostFile реализует ports.RequestExecutor. Тело формы пишется в запрос
// потоком, файл целиком в память не читается.
func (e *HTTPExecutor) PostFile(ctx context.Context, action string, params ports.Params, field string, file domain.Uploadable) (json.RawMessage, error) {
	name, content, err := file.Open()
	if err != nil {
		return nil, newTransportError(action, "could not open "+field, err)
	}

	pr, pw := io.Pipe()
	w := multipart.NewWriter(pw)
	go func() {
		defer content.Close()
		pw.CloseWithError(writeMultipart(w, params, field, name, content))
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.baseURL+action, pr)
	if err != nil {
		pr.CloseWithError(err)
		return nil, newTransportError(action, "could not build request", redactToken(err, e.token))
	}
	req.Header.Set("Content-Type", w.FormDataContentType())
	return e.do(req, action)
}

// writeMultipart пишет поля и файл в w и закрывает его.
func writeMultipart(w *multipart.Writer, params ports.Params, field, name string, content io.Reader) error {
	var fieldErr error
	if params != nil {
		params.Each(func(key, value string) {
			if fieldErr == nil {
				fieldErr = w.WriteField(key, value)
			}
		})
	}
	if fieldErr != nil {
		return fmt.Errorf("write form field: %w", fieldErr)
	}

	fw, err := w.CreateFormFile(field, name)
	if err != nil {
		return fmt.Errorf("create form file: %w", err)
	}
	if _, err := io.Copy(fw, content); err != nil {
		return fmt.Errorf("copy %s content: %w", field, err)
	}
	return w.Close()
}

func (e *HTTPExecutor) do(req *http.Request, action string) (json.RawMessage, error) {
	ctx := req.Context()
	e.log.DebugContext(ctx, "telegram API request", "action", action, "http_method", req.Method, "content_type", req.Header.Get("Content-Type"))

	resp, err := e.httpClient.Do(req)
	if err != nil {
		return nil, newTransportError(action, "could not get a response", redactToken(err, e.token))
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, newTransportError(action, "could not read response body", err).withResponse(resp.StatusCode, nil)
	}

	result, err := unwrapEnvelope(action, resp.StatusCode, body)
	if err != nil {
		e.log.DebugContext(ctx, "telegram API request failed", "action", action, "status", resp.StatusCode, "error", err)
		return nil, err
	}
	e.log.DebugContext(ctx, "telegram API request succeeded", "action", action, "status", resp.StatusCode, "result_size", len(result))
	return result, nil
}

// unwrapEnvelope разбирает конверт ответа: при ok=false возвращает *APIError,
// при некорректном теле - *TransportError с сырым телом.
func unwrapEnvelope(action string, statusCode int, body []byte) (json.RawMessage, error) {
	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, newTransportError(action, "invalid response body", err).withResponse(statusCode, body)
	}
	if env.OK == nil {
		return nil, newTransportError(action, "response has no ok field", nil).withResponse(statusCode, body)
	}

	if !*env.OK {
		code := -1
		if env.ErrorCode != nil {
			code = *env.ErrorCode
		}
		return nil, &APIError{
			Code:        code,
			Type:        env.ErrorType,
			Description: env.Description,
		}
	}

	if len(env.Result) == 0 {
		return nil, newTransportError(action, "response has no result field", nil).withResponse(statusCode, body)
	}
	return env.Result, nil
}
