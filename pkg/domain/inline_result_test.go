package domain

import (
	"encoding/json"
	"reflect"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var resultIDPattern = regexp.MustCompile(`^[0-9a-f]{64}$`)

func TestNewInlineResultID(t *testing.T) {
	seen := make(map[string]struct{})
	for n := 0; n < 100; n++ {
		id := NewInlineResultID()
		assert.Regexp(t, resultIDPattern, id)
		_, dup := seen[id]
		require.False(t, dup, "duplicate id %s", id)
		seen[id] = struct{}{}
	}
}

func TestInlineQueryResult_TypeAndID(t *testing.T) {
	results := map[string]InlineQueryResult{
		InlineResultArticle:  NewInlineQueryResultArticle("Title", "text"),
		InlineResultPhoto:    NewInlineQueryResultPhoto("https://example.com/p.jpg", "https://example.com/t.jpg"),
		InlineResultGif:      NewInlineQueryResultGif("https://example.com/a.gif", "https://example.com/t.jpg"),
		InlineResultMpeg4Gif: NewInlineQueryResultMpeg4Gif("https://example.com/a.mp4", "https://example.com/t.jpg"),
		InlineResultVideo: NewInlineQueryResultVideo(
			"https://example.com/v.mp4", "video/mp4", "watch", "https://example.com/t.jpg", "Video"),
	}

	for wantType, r := range results {
		t.Run(wantType, func(t *testing.T) {
			assert.Equal(t, wantType, r.ResultType())
			assert.Regexp(t, resultIDPattern, r.ResultID())

			raw, err := json.Marshal(r)
			require.NoError(t, err)

			var fields map[string]any
			require.NoError(t, json.Unmarshal(raw, &fields))
			assert.Equal(t, wantType, fields["type"])
			assert.Equal(t, r.ResultID(), fields["id"])
		})
	}
}

func TestInlineQueryResultArticle_JSON(t *testing.T) {
	article := InlineQueryResultArticle{
		ID:          "1",
		Title:       "Go",
		MessageText: "*gopher*",
		ParseMode:   ParseModeMarkdown,
		HideURL:     true,
		URL:         "https://go.dev",
	}

	raw, err := json.Marshal(article)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"type": "article",
		"id": "1",
		"title": "Go",
		"message_text": "*gopher*",
		"parse_mode": "Markdown",
		"url": "https://go.dev",
		"hide_url": true
	}`, string(raw))
}

func TestInlineQueryResultVideo_JSON(t *testing.T) {
	video := InlineQueryResultVideo{
		ID:            "v",
		VideoURL:      "https://example.com/v.mp4",
		MimeType:      "video/mp4",
		MessageText:   "watch",
		ThumbURL:      "https://example.com/t.jpg",
		Title:         "Video",
		VideoDuration: 30,
	}

	raw, err := json.Marshal([]InlineQueryResult{&video})
	require.NoError(t, err)
	assert.JSONEq(t, `[{
		"type": "video",
		"id": "v",
		"video_url": "https://example.com/v.mp4",
		"mime_type": "video/mp4",
		"message_text": "watch",
		"thumb_url": "https://example.com/t.jpg",
		"title": "Video",
		"video_duration": 30
	}]`, string(raw))
}

func TestInlineQueryResult_Sealed(t *testing.T) {
	sealed := reflect.TypeOf((*InlineQueryResult)(nil)).Elem()
	method, ok := sealed.MethodByName("inlineQueryResult")
	require.True(t, ok)
	assert.False(t, method.IsExported())

	variants := []any{
		InlineQueryResultArticle{},
		InlineQueryResultPhoto{},
		InlineQueryResultGif{},
		InlineQueryResultMpeg4Gif{},
		InlineQueryResultVideo{},
	}
	parseModeType := reflect.TypeOf(ParseModeHTML)
	for _, v := range variants {
		typ := reflect.TypeOf(v)
		t.Run(typ.Name(), func(t *testing.T) {
			assert.True(t, typ.Implements(sealed))
			assert.True(t, reflect.PointerTo(typ).Implements(sealed))

			field, ok := typ.FieldByName("ParseMode")
			require.True(t, ok)
			assert.Equal(t, parseModeType, field.Type)
		})
	}
}

func TestInlineQueryResultPhoto_ParseModeJSON(t *testing.T) {
	photo := InlineQueryResultPhoto{
		ID:          "p",
		PhotoURL:    "https://example.com/p.jpg",
		ThumbURL:    "https://example.com/t.jpg",
		MessageText: "<b>photo</b>",
		ParseMode:   ParseModeHTML,
	}

	raw, err := json.Marshal(photo)
	require.NoError(t, err)

	var fields map[string]any
	require.NoError(t, json.Unmarshal(raw, &fields))
	assert.Equal(t, "photo", fields["type"])
	assert.Equal(t, "HTML", fields["parse_mode"])
}
