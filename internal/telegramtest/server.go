// Package telegramtest предоставляет поддельный сервер Bot API для тестов.
// Сервер записывает входящие запросы и отвечает заданными конвертами.
package telegramtest

import (
	"encoding/json"
	"io"
	"mime"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path"
	"strings"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
)

// Request - запись одного запроса к методу API.
type Request struct {
	Action      string
	Method      string
	ContentType string
	// RawQuery сохраняет порядок параметров строки запроса.
	RawQuery string
	Query    url.Values
	Form     url.Values
	Files    map[string]UploadedFile
}

// Multipart сообщает, пришел ли запрос как multipart/form-data.
func (r Request) Multipart() bool {
	return strings.HasPrefix(r.ContentType, "multipart/form-data")
}

// Param возвращает параметр из строки запроса или из формы.
func (r Request) Param(key string) string {
	if v := r.Form.Get(key); v != "" {
		return v
	}
	return r.Query.Get(key)
}

// UploadedFile - файл, пришедший multipart-частью.
type UploadedFile struct {
	FileName string
	Content  []byte
	// StoredPath - путь, по которому файл можно скачать через /file/bot<token>/.
	StoredPath string
}

// Response - ответ сервера на вызов метода.
// Raw, если задан, отправляется как есть вместо Body.
type Response struct {
	Status int
	Body   any
	Raw    string
}

// Handler формирует ответ на вызов метода.
type Handler func(Request) Response

// Server - поддельный сервер Bot API.
type Server struct {
	Token string

	srv *httptest.Server

	mu       sync.Mutex
	requests []Request
	handlers map[string]Handler
	files    map[string][]byte
}

// NewServer запускает сервер и останавливает его по завершении теста.
func NewServer(t testing.TB, token string) *Server {
	t.Helper()

	s := &Server{
		Token:    token,
		handlers: make(map[string]Handler),
		files:    make(map[string][]byte),
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Get("/file/bot{token}/*", s.handleFile)
	r.HandleFunc("/bot{token}/{action}", s.handleAction)

	s.srv = httptest.NewServer(r)
	t.Cleanup(s.srv.Close)
	return s
}

// URL возвращает адрес сервера, пригодный для telegram.WithAPIEndpoint.
func (s *Server) URL() string {
	return s.srv.URL
}

// Handle задает обработчик метода.
func (s *Server) Handle(action string, h Handler) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.handlers[action] = h
}

// Reply настраивает успешный ответ с указанным result.
func (s *Server) Reply(action string, result any) {
	s.Handle(action, func(Request) Response {
		return Response{Status: http.StatusOK, Body: map[string]any{"ok": true, "result": result}}
	})
}

// Fail настраивает ответ с ok=false.
func (s *Server) Fail(action string, code int, description string) {
	s.Handle(action, func(Request) Response {
		return Response{Status: code, Body: map[string]any{"ok": false, "error_code": code, "description": description}}
	})
}

// RawReply настраивает ответ с произвольным телом.
func (s *Server) RawReply(action string, status int, body string) {
	s.Handle(action, func(Request) Response {
		return Response{Status: status, Raw: body}
	})
}

// AddFile делает файл доступным для скачивания.
func (s *Server) AddFile(filePath string, content []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.files[filePath] = content
}

// Requests возвращает все записанные запросы.
func (s *Server) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Request(nil), s.requests...)
}

// LastRequest возвращает последний запрос.
func (s *Server) LastRequest() (Request, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.requests) == 0 {
		return Request{}, false
	}
	return s.requests[len(s.requests)-1], true
}

func (s *Server) handleAction(w http.ResponseWriter, r *http.Request) {
	if chi.URLParam(r, "token") != s.Token {
		writeJSON(w, http.StatusUnauthorized, map[string]any{"ok": false, "error_code": http.StatusUnauthorized, "description": "Unauthorized"})
		return
	}

	req, err := s.record(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	h, ok := s.handlers[req.Action]
	s.mu.Unlock()
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]any{"ok": false, "error_code": http.StatusNotFound, "description": "Not Found: method not found"})
		return
	}

	resp := h(req)
	if resp.Status == 0 {
		resp.Status = http.StatusOK
	}
	if resp.Raw != "" {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(resp.Status)
		_, _ = io.WriteString(w, resp.Raw)
		return
	}
	writeJSON(w, resp.Status, resp.Body)
}

func (s *Server) handleFile(w http.ResponseWriter, r *http.Request) {
	if chi.URLParam(r, "token") != s.Token {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	s.mu.Lock()
	content, ok := s.files[chi.URLParam(r, "*")]
	s.mu.Unlock()
	if !ok {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "application/octet-stream")
	_, _ = w.Write(content)
}

// record разбирает запрос и сохраняет его. Загруженные файлы
// становятся доступны для скачивания.
func (s *Server) record(r *http.Request) (Request, error) {
	req := Request{
		Action:      chi.URLParam(r, "action"),
		Method:      r.Method,
		ContentType: r.Header.Get("Content-Type"),
		RawQuery:    r.URL.RawQuery,
		Query:       r.URL.Query(),
		Form:        url.Values{},
		Files:       make(map[string]UploadedFile),
	}

	mediaType, _, _ := mime.ParseMediaType(req.ContentType)
	switch {
	case r.Method != http.MethodPost:
	case mediaType == "multipart/form-data":
		if err := r.ParseMultipartForm(32 << 20); err != nil {
			return Request{}, err
		}
		req.Form = url.Values(r.MultipartForm.Value)
		for field, headers := range r.MultipartForm.File {
			if len(headers) == 0 {
				continue
			}
			f, err := headers[0].Open()
			if err != nil {
				return Request{}, err
			}
			content, err := io.ReadAll(f)
			_ = f.Close()
			if err != nil {
				return Request{}, err
			}
			req.Files[field] = UploadedFile{
				FileName:   headers[0].Filename,
				Content:    content,
				StoredPath: path.Join(field, uuid.NewString()+path.Ext(headers[0].Filename)),
			}
		}
	default:
		if err := r.ParseForm(); err != nil {
			return Request{}, err
		}
		req.Form = r.PostForm
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, f := range req.Files {
		s.files[f.StoredPath] = f.Content
	}
	s.requests = append(s.requests, req)
	return req, nil
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
