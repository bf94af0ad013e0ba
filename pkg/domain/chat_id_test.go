package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChatIDFrom(t *testing.T) {
	tests := []struct {
		name         string
		input        any
		wantInt      int64
		wantNumeric  bool
		wantUsername string
		wantString   string
	}{
		{name: "int", input: 42, wantInt: 42, wantNumeric: true, wantString: "42"},
		{name: "int32", input: int32(-100), wantInt: -100, wantNumeric: true, wantString: "-100"},
		{name: "int64 group", input: int64(-1001234567890), wantInt: -1001234567890, wantNumeric: true, wantString: "-1001234567890"},
		{name: "zero is a valid numeric id", input: 0, wantInt: 0, wantNumeric: true, wantString: "0"},
		{name: "channel username", input: "@channel", wantUsername: "@channel", wantString: "@channel"},
		{name: "existing chat id", input: NewChatID(7), wantInt: 7, wantNumeric: true, wantString: "7"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, err := ChatIDFrom(tt.input)
			require.NoError(t, err)

			n, numeric := id.Int()
			u, named := id.Username()

			// ровно одно из значений задано
			assert.NotEqual(t, numeric, named)
			assert.Equal(t, tt.wantNumeric, numeric)
			assert.Equal(t, tt.wantInt, n)
			assert.Equal(t, tt.wantUsername, u)
			assert.Equal(t, tt.wantString, id.String())
			assert.False(t, id.IsZero())
		})
	}
}

func TestChatIDFrom_Rejects(t *testing.T) {
	for name, input := range map[string]any{
		"nil":          nil,
		"empty string": "",
		"float":        1.5,
		"zero chat id": ChatID{},
	} {
		t.Run(name, func(t *testing.T) {
			_, err := ChatIDFrom(input)
			assert.ErrorIs(t, err, ErrInvalidChatID)
		})
	}
}

func TestParseChatID(t *testing.T) {
	id, err := ParseChatID(" 12345 ")
	require.NoError(t, err)
	n, ok := id.Int()
	assert.True(t, ok)
	assert.Equal(t, int64(12345), n)

	id, err = ParseChatID("@news")
	require.NoError(t, err)
	u, ok := id.Username()
	assert.True(t, ok)
	assert.Equal(t, "@news", u)

	_, err = ParseChatID("  ")
	assert.ErrorIs(t, err, ErrInvalidChatID)
}

func TestChatID_ZeroValue(t *testing.T) {
	var id ChatID
	assert.True(t, id.IsZero())
	_, numeric := id.Int()
	_, named := id.Username()
	assert.False(t, numeric)
	assert.False(t, named)
}
