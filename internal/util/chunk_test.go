package util

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChunkSlice(t *testing.T) {
	items := make([]int, 60)
	for i := range items {
		items[i] = i
	}

	chunks := ChunkSlice(items, 25)
	require.Len(t, chunks, 3)
	assert.Len(t, chunks[0], 25)
	assert.Len(t, chunks[1], 25)
	assert.Len(t, chunks[2], 10)
	assert.Equal(t, 50, chunks[2][0], "chunks should keep order")

	assert.Nil(t, ChunkSlice([]int{}, 25))
	assert.Len(t, ChunkSlice(items[:25], 25), 1, "exactly one full chunk")
}

func TestChunkMessage(t *testing.T) {
	t.Run("short text is one message", func(t *testing.T) {
		assert.Equal(t, []string{"hello"}, ChunkMessage("hello", 2000))
	})

	t.Run("2500 characters become two messages", func(t *testing.T) {
		text := strings.Repeat("a", 2500)
		chunks := ChunkMessage(text, 2000)

		require.Len(t, chunks, 2)
		assert.Len(t, chunks[0], 2000)
		assert.Len(t, chunks[1], 500)
		assert.Equal(t, text, strings.Join(chunks, ""))
	})

	t.Run("prefers a line break in the second half", func(t *testing.T) {
		text := strings.Repeat("a", 1500) + "\n" + strings.Repeat("b", 1000)
		chunks := ChunkMessage(text, 2000)

		require.Len(t, chunks, 2)
		assert.Equal(t, strings.Repeat("a", 1500)+"\n", chunks[0])
		assert.Equal(t, strings.Repeat("b", 1000), chunks[1])
	})

	t.Run("counts characters not bytes", func(t *testing.T) {
		chunks := ChunkMessage(strings.Repeat("✅", 30), 20)
		require.Len(t, chunks, 2)
		assert.Equal(t, 20, len([]rune(chunks[0])))
	})
}

func TestChunkList(t *testing.T) {
	items := make([]string, 200)
	for i := range items {
		items[i] = fmt.Sprintf("Team Number %03d", i)
	}

	messages := ChunkList("Created roles: ", items, 2000)
	require.Greater(t, len(messages), 1)

	var seen []string
	for _, message := range messages {
		assert.LessOrEqual(t, len([]rune(message)), 2000)
		require.True(t, strings.HasPrefix(message, "Created roles: "))
		seen = append(seen, strings.Split(strings.TrimPrefix(message, "Created roles: "), ", ")...)
	}
	assert.Equal(t, items, seen, "every item should be reported once, in order")

	assert.Nil(t, ChunkList("Created roles: ", nil, 2000))
}
