package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mephi-learn/telegram-bot-client/internal/telegramtest"
	"github.com/mephi-learn/telegram-bot-client/pkg/telegram"
)

const testToken = "123456:TEST-botctl-token"

var sentMessage = map[string]any{
	"message_id": 77,
	"date":       1441645532,
	"chat":       map[string]any{"id": 42, "first_name": "Ann", "username": "ann"},
	"text":       "hi",
}

func newTestServer(t *testing.T) *telegramtest.Server {
	t.Helper()
	srv := telegramtest.NewServer(t, testToken)
	t.Setenv("TELEGRAM_BOT_TOKEN", testToken)
	t.Setenv("TELEGRAM_API_ENDPOINT", srv.URL())
	t.Setenv("LOG_LEVEL", "error")
	return srv
}

func run(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	color.NoColor = true

	var out, errOut bytes.Buffer
	a := &app{out: &out, errOut: &errOut, width: defaultWidth}

	cmd := newRootCmd(a)
	cmd.SetArgs(args)
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	err = cmd.ExecuteContext(context.Background())
	return out.String(), errOut.String(), err
}

func lastRequest(t *testing.T, srv *telegramtest.Server) telegramtest.Request {
	t.Helper()
	req, ok := srv.LastRequest()
	require.True(t, ok, "no request reached the server")
	return req
}

func TestMe(t *testing.T) {
	srv := newTestServer(t)
	srv.Reply("getMe", map[string]any{"id": 1, "first_name": "Test", "username": "test_bot"})

	out, _, err := run(t, "me")
	require.NoError(t, err)
	assert.Contains(t, out, "@test_bot id=1")
}

func TestMe_JSON(t *testing.T) {
	srv := newTestServer(t)
	srv.Reply("getMe", map[string]any{"id": 1, "first_name": "Test"})

	out, _, err := run(t, "me", "--json")
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":1,"first_name":"Test"}`, out)
}

func TestUpdates(t *testing.T) {
	srv := newTestServer(t)
	srv.Reply("getUpdates", []any{
		map[string]any{"update_id": 100, "message": sentMessage},
		map[string]any{"update_id": 101, "inline_query": map[string]any{
			"id": "q", "from": map[string]any{"id": 5, "first_name": "Bob"}, "query": "cats", "offset": "",
		}},
	})

	out, _, err := run(t, "updates", "--offset", "5", "--limit", "10", "--timeout", "0")
	require.NoError(t, err)

	assert.Equal(t, "offset=5&limit=10&timeout=0", lastRequest(t, srv).RawQuery)
	assert.Contains(t, out, "UPDATE")
	assert.Contains(t, out, "@ann (42)")
	assert.Contains(t, out, `inline query "cats"`)
	assert.Contains(t, out, "next offset: 102")
}

func TestUpdates_OmitsUnsetFlags(t *testing.T) {
	srv := newTestServer(t)
	srv.Reply("getUpdates", []any{})

	out, _, err := run(t, "updates")
	require.NoError(t, err)
	assert.Empty(t, lastRequest(t, srv).RawQuery)
	assert.Contains(t, out, "No pending updates.")
}

func TestSend_WithKeyboard(t *testing.T) {
	srv := newTestServer(t)
	srv.Reply("sendMessage", sentMessage)

	out, _, err := run(t, "send", "42", "hello", "world", "--keyboard", "Yes, No", "--keyboard", "Later", "--one-time")
	require.NoError(t, err)
	assert.Contains(t, out, "Sent message 77 to @ann (42)")

	req := lastRequest(t, srv)
	assert.Equal(t, http.MethodPost, req.Method)
	assert.Equal(t, "42", req.Form.Get("chat_id"))
	assert.Equal(t, "hello world", req.Form.Get("text"))
	assert.JSONEq(t, `{"keyboard":[["Yes","No"],["Later"]],"one_time_keyboard":true}`, req.Form.Get("reply_markup"))
}

func TestSend_ConflictingMarkup(t *testing.T) {
	srv := newTestServer(t)

	_, _, err := run(t, "send", "42", "hi", "--force-reply", "--hide-keyboard")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "mutually exclusive")
	assert.Empty(t, srv.Requests())
}

func TestSend_APIError(t *testing.T) {
	srv := newTestServer(t)
	srv.Fail("sendMessage", http.StatusBadRequest, "Bad Request: chat not found")

	_, _, err := run(t, "send", "@nowhere", "hi")

	var apiErr *telegram.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, 400, apiErr.Code)
	assert.Equal(t, "@nowhere", lastRequest(t, srv).Form.Get("chat_id"))
}

func TestPhoto_UploadAndFileID(t *testing.T) {
	srv := newTestServer(t)
	srv.Reply("sendPhoto", sentMessage)

	path := filepath.Join(t.TempDir(), "cat.jpg")
	require.NoError(t, os.WriteFile(path, []byte("jpeg"), 0o600))

	_, _, err := run(t, "photo", "42", path, "--caption", "cat")
	require.NoError(t, err)

	req := lastRequest(t, srv)
	assert.True(t, req.Multipart())
	assert.Equal(t, "cat", req.Form.Get("caption"))
	assert.Equal(t, "cat.jpg", req.Files["photo"].FileName)
	assert.Equal(t, "jpeg", string(req.Files["photo"].Content))

	_, _, err = run(t, "photo", "42", "AgADBAADq6cxG")
	require.NoError(t, err)

	req = lastRequest(t, srv)
	assert.False(t, req.Multipart())
	assert.Equal(t, "AgADBAADq6cxG", req.Form.Get("photo"))
}

func TestAudio_Options(t *testing.T) {
	srv := newTestServer(t)
	srv.Reply("sendAudio", sentMessage)

	_, _, err := run(t, "audio", "42", "CQADBAAD", "--duration", "180", "--performer", "Band", "--title", "Song", "--reply-to", "5")
	require.NoError(t, err)

	req := lastRequest(t, srv)
	assert.Equal(t, "180", req.Form.Get("duration"))
	assert.Equal(t, "Band", req.Form.Get("performer"))
	assert.Equal(t, "Song", req.Form.Get("title"))
	assert.Equal(t, "5", req.Form.Get("reply_to_message_id"))
	assert.Equal(t, "CQADBAAD", req.Form.Get("audio"))
}

func TestForwardAndLocation(t *testing.T) {
	srv := newTestServer(t)
	srv.Reply("forwardMessage", sentMessage)
	srv.Reply("sendLocation", sentMessage)

	_, _, err := run(t, "forward", "--", "42", "-100", "7")
	require.NoError(t, err)
	assert.Equal(t, "chat_id=42&from_chat_id=-100&message_id=7", lastRequest(t, srv).RawQuery)

	_, _, err = run(t, "location", "42", "52.52", "13.405")
	require.NoError(t, err)
	req := lastRequest(t, srv)
	assert.Equal(t, "52.52", req.Form.Get("latitude"))
	assert.Equal(t, "13.405", req.Form.Get("longitude"))
}

func TestAction_UnknownIsSentWithWarning(t *testing.T) {
	srv := newTestServer(t)
	srv.Reply("sendChatAction", true)

	out, stderr, err := run(t, "action", "42", "dancing")
	require.NoError(t, err)
	assert.Contains(t, stderr, `"dancing" is not a known chat action`)
	assert.Contains(t, out, "sendChatAction: ok")
	assert.Equal(t, "dancing", lastRequest(t, srv).Query.Get("action"))
}

func TestProfilePhotos(t *testing.T) {
	srv := newTestServer(t)
	srv.Reply("getUserProfilePhotos", map[string]any{
		"total_count": 1,
		"photos": [][]map[string]any{{
			{"file_id": "small", "width": 160, "height": 160},
			{"file_id": "big", "width": 640, "height": 640},
		}},
	})

	out, _, err := run(t, "profile-photos", "5", "--offset", "0")
	require.NoError(t, err)
	assert.Equal(t, "user_id=5&offset=0", lastRequest(t, srv).RawQuery)
	assert.Contains(t, out, "Total: 1")
	assert.Contains(t, out, "640x640  big")
}

func TestWebhook(t *testing.T) {
	srv := newTestServer(t)
	srv.Reply("setWebhook", true)

	_, _, err := run(t, "webhook")
	require.NoError(t, err)
	req := lastRequest(t, srv)
	assert.Equal(t, http.MethodGet, req.Method)
	assert.Empty(t, req.RawQuery)

	cert := filepath.Join(t.TempDir(), "cert.pem")
	require.NoError(t, os.WriteFile(cert, []byte("-----BEGIN CERTIFICATE-----"), 0o600))

	_, _, err = run(t, "webhook", "https://example.com/hook", "--certificate", cert)
	require.NoError(t, err)
	req = lastRequest(t, srv)
	assert.True(t, req.Multipart())
	assert.Equal(t, "https://example.com/hook", req.Form.Get("url"))
	assert.Equal(t, "cert.pem", req.Files["certificate"].FileName)
}

func TestFileAndDownload(t *testing.T) {
	srv := newTestServer(t)
	srv.AddFile("documents/report.pdf", []byte("%PDF-1.4"))
	srv.Reply("getFile", map[string]any{"file_id": "doc", "file_size": 8, "file_path": "documents/report.pdf"})

	out, _, err := run(t, "file", "doc")
	require.NoError(t, err)
	assert.Contains(t, out, "file_path: documents/report.pdf")
	assert.Contains(t, out, srv.URL()+"/file/bot"+testToken+"/documents/report.pdf")

	dest := filepath.Join(t.TempDir(), "report.pdf")
	_, stderr, err := run(t, "download", "doc", dest)
	require.NoError(t, err)
	assert.Contains(t, stderr, "Saved 8 bytes")

	data, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.4", string(data))

	out, _, err = run(t, "download", "doc", "-")
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.4", out)
}

func TestAnswerInline(t *testing.T) {
	srv := newTestServer(t)
	srv.Reply("answerInlineQuery", true)

	_, _, err := run(t, "answer-inline", "q1", "--article", "Go=gopher", "--cache-time", "0", "--personal")
	require.NoError(t, err)

	req := lastRequest(t, srv)
	assert.Equal(t, "q1", req.Form.Get("inline_query_id"))
	assert.Equal(t, "0", req.Form.Get("cache_time"))
	assert.Equal(t, "true", req.Form.Get("is_personal"))

	var results []map[string]any
	require.NoError(t, json.Unmarshal([]byte(req.Form.Get("results")), &results))
	require.Len(t, results, 1)
	assert.Equal(t, "article", results[0]["type"])
	assert.Equal(t, "Go", results[0]["title"])
	assert.Len(t, results[0]["id"], 64)
}

func TestMissingToken(t *testing.T) {
	newTestServer(t)
	t.Setenv("TELEGRAM_BOT_TOKEN", "")

	_, _, err := run(t, "me")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "telegram.token")
}

func TestPrintError_ConnectionRefusedHidesToken(t *testing.T) {
	const token = "123456789:AAEhBOweik6ad9r_QXMENQjcrGbqCr4K-Ms"
	t.Setenv("TELEGRAM_BOT_TOKEN", token)
	t.Setenv("TELEGRAM_API_ENDPOINT", "http://127.0.0.1:1")
	t.Setenv("LOG_LEVEL", "error")

	_, stderr, err := run(t, "me")
	require.Error(t, err)
	assert.NotContains(t, stderr, token)

	var buf bytes.Buffer
	printError(&buf, err)
	assert.Contains(t, buf.String(), "Error: getMe: could not get a response")
	assert.NotContains(t, buf.String(), token)
	assert.NotContains(t, buf.String(), "AAEhBOweik6ad9r_QXMENQjcrGbqCr4K-Ms")
}

func TestPrintError_MasksTokensInText(t *testing.T) {
	color.NoColor = true
	const token = "123456789:AAEhBOweik6ad9r_QXMENQjcrGbqCr4K-Ms"

	var buf bytes.Buffer
	printError(&buf, errors.New(`Get "https://api.telegram.org/bot`+token+`/getMe": EOF`))
	assert.NotContains(t, buf.String(), token)
	assert.Contains(t, buf.String(), "Error: Get ")

	buf.Reset()
	printError(&buf, &telegram.APIError{Code: 401, Description: "Unauthorized " + token})
	assert.Equal(t, "Telegram rejected the request (401): Unauthorized ***:***masked-token***\n", buf.String())
}
