package util

import "strings"

// ChunkSlice splits items into consecutive groups of at most size elements.
func ChunkSlice[T any](items []T, size int) [][]T {
	if size <= 0 || len(items) == 0 {
		return nil
	}

	chunks := make([][]T, 0, (len(items)+size-1)/size)
	for start := 0; start < len(items); start += size {
		end := start + size
		if end > len(items) {
			end = len(items)
		}
		chunks = append(chunks, items[start:end])
	}

	return chunks
}

// ChunkMessage splits text into pieces of at most limit characters, preferring line breaks.
func ChunkMessage(text string, limit int) []string {
	runes := []rune(text)
	if limit <= 0 || len(runes) <= limit {
		return []string{text}
	}

	var chunks []string
	for len(runes) > limit {
		cut := limit
		for i := limit; i > limit/2; i-- {
			if runes[i-1] == '\n' {
				cut = i
				break
			}
		}
		chunks = append(chunks, string(runes[:cut]))
		runes = runes[cut:]
	}
	if len(runes) > 0 {
		chunks = append(chunks, string(runes))
	}

	return chunks
}

// ChunkList renders prefix + items joined by ", " into messages of at most limit characters.
func ChunkList(prefix string, items []string, limit int) []string {
	var messages []string
	var chunk []string
	total := len([]rune(prefix))

	for _, item := range items {
		size := len([]rune(item)) + 2
		if len(chunk) > 0 && total+size > limit {
			messages = append(messages, prefix+strings.Join(chunk, ", "))
			chunk = nil
			total = len([]rune(prefix))
		}
		chunk = append(chunk, item)
		total += size
	}
	if len(chunk) > 0 {
		messages = append(messages, prefix+strings.Join(chunk, ", "))
	}

	return messages
}
