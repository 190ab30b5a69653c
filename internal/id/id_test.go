package id

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate_Uniqueness(t *testing.T) {
	// Generate many IDs and verify they're unique
	ids := make(map[string]bool)
	count := 1000

	for i := 0; i < count; i++ {
		id, err := Generate(PrefixBook)
		require.NoError(t, err)
		assert.False(t, ids[id], "ID should be unique: %s", id)
		ids[id] = true
	}

	assert.Len(t, ids, count)
}

func TestGenerate_Format(t *testing.T) {
	tests := []struct {
		name   string
		prefix string
	}{
		{"user", PrefixUser},
		{"book", PrefixBook},
		{"review", PrefixReview},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, err := Generate(tt.prefix)
			require.NoError(t, err)

			// Should start with prefix followed by hyphen
			assert.True(t, strings.HasPrefix(id, tt.prefix+"-"))

			// NanoID default is 21 characters
			// Total should be len(prefix) + 1 (hyphen) + 21
			assert.Equal(t, len(tt.prefix)+1+21, len(id), "ID: %s", id)

			// Every generated ID must pass its own validity predicate
			assert.True(t, Valid(tt.prefix, id))
		})
	}
}

func TestMustGenerate_Format(t *testing.T) {
	id := MustGenerate(PrefixReview)

	assert.True(t, strings.HasPrefix(id, "rev-"))
	assert.Equal(t, len(PrefixReview)+1+21, len(id))
}

func TestValid(t *testing.T) {
	good := MustGenerate(PrefixBook)

	tests := []struct {
		name   string
		prefix string
		id     string
		want   bool
	}{
		{"generated id", PrefixBook, good, true},
		{"empty", PrefixBook, "", false},
		{"prefix only", PrefixBook, "book-", false},
		{"wrong prefix", PrefixBook, strings.Replace(good, "book-", "user-", 1), false},
		{"too short", PrefixBook, "book-abc123", false},
		{"too long", PrefixBook, good + "x", false},
		{"illegal character", PrefixBook, "book-V1StGXR8_Z5jdHi6B!myT", false},
		{"no separator", PrefixBook, "bookV1StGXR8_Z5jdHi6BmyTx", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Valid(tt.prefix, tt.id))
		})
	}
}

func BenchmarkGenerate(b *testing.B) {
	for i := 0; i < b.N; i++ {
		_, _ = Generate("bench")
	}
}
