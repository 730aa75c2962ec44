package ultravox

import (
	"strings"
	"unicode/utf8"
)

// DefaultChunkSize is the maximum chunk length in characters.
const DefaultChunkSize = 5000

// ChunkText splits text into chunks of at most chunkSize characters.
// Within each window it prefers the latest cut point by kind: a fenced
// code block delimiter, then a paragraph break, then a sentence end. A
// cut point only applies when it falls after 30% of the window; otherwise
// the next kind is tried, falling back to a hard cut at the window edge.
// Chunks are trimmed of surrounding whitespace and empty chunks are
// dropped. Lengths are counted in runes, not bytes.
func ChunkText(text string, chunkSize int) []string {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}

	runes := []rune(text)
	total := len(runes)
	if total == 0 {
		return nil
	}

	minCut := chunkSize * 3 / 10
	var chunks []string

	start := 0
	for start < total {
		end := start + chunkSize

		if end >= total {
			if chunk := strings.TrimSpace(string(runes[start:])); chunk != "" {
				chunks = append(chunks, chunk)
			}
			break
		}

		window := string(runes[start:end])
		if i := lastMarkerIndex(window, "```"); i > minCut {
			end = start + i
		} else if i := lastMarkerIndex(window, "\n\n"); i > minCut {
			end = start + i
		} else if i := lastMarkerIndex(window, ". "); i > minCut {
			// Keep the period with the sentence.
			end = start + i + 1
		}

		if chunk := strings.TrimSpace(string(runes[start:end])); chunk != "" {
			chunks = append(chunks, chunk)
		}

		start = max(start+1, end)
	}

	return chunks
}

// lastMarkerIndex returns the rune index of the last occurrence of marker
// in window, or -1 if the marker is absent.
func lastMarkerIndex(window, marker string) int {
	i := strings.LastIndex(window, marker)
	if i < 0 {
		return -1
	}
	return utf8.RuneCountInString(window[:i])
}
