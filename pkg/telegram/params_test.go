package telegram

import (
	"testing"

	"github.com/mephi-learn/telegram-bot-client/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int { return &v }

func TestParams_EncodeKeepsOrder(t *testing.T) {
	p := NewParams()
	p.SetOptionalInt("offset", intPtr(5))
	p.SetOptionalInt("limit", intPtr(10))
	p.SetOptionalInt("timeout", intPtr(0))

	assert.Equal(t, "offset=5&limit=10&timeout=0", p.Encode())
	assert.Equal(t, []string{"offset", "limit", "timeout"}, p.Keys())
	assert.Equal(t, 3, p.Len())
}

func TestParams_OptionalValuesAreOmitted(t *testing.T) {
	p := NewParams()
	p.SetOptionalInt("offset", nil)
	p.SetNonEmpty("caption", "")
	p.SetNonZeroInt("duration", 0)
	p.SetTrue("is_personal", false)

	assert.Zero(t, p.Len())
	assert.Empty(t, p.Encode())
}

func TestParams_Setters(t *testing.T) {
	p := NewParams()
	p.Set("text", "hello world & more")
	p.SetInt("message_id", -42)
	p.SetFloat("latitude", 52.52)
	p.SetFloat("longitude", 13)
	p.SetTrue("disable_web_page_preview", true)
	require.NoError(t, p.SetJSON("results", []string{"a"}))

	assert.Equal(t,
		"text=hello+world+%26+more&message_id=-42&latitude=52.52&longitude=13&disable_web_page_preview=true&results=%5B%22a%22%5D",
		p.Encode())

	v, ok := p.Get("results")
	assert.True(t, ok)
	assert.Equal(t, `["a"]`, v)
}

func TestParams_SetOverwritesInPlace(t *testing.T) {
	p := NewParams()
	p.Set("a", "1")
	p.Set("b", "2")
	p.Set("a", "3")

	assert.Equal(t, "a=3&b=2", p.Encode())
}

func TestParams_SetChatID(t *testing.T) {
	p := NewParams()
	require.NoError(t, p.SetChatID("chat_id", domain.NewChatID(-100)))
	channel, err := domain.NewChannelID("@news")
	require.NoError(t, err)
	require.NoError(t, p.SetChatID("from_chat_id", channel))
	assert.Equal(t, "chat_id=-100&from_chat_id=%40news", p.Encode())

	err = p.SetChatID("chat_id", domain.ChatID{})
	assert.ErrorIs(t, err, ErrInvalidArgument)
	assert.ErrorIs(t, err, domain.ErrInvalidChatID)
}

func TestParams_NilSafe(t *testing.T) {
	var p *Params
	assert.Zero(t, p.Len())
	assert.Nil(t, p.Keys())
	_, ok := p.Get("x")
	assert.False(t, ok)
	assert.Empty(t, encodeParams(nil))
}
