// Package chunker splits extracted document text into fixed-size windows for
// per-chunk course generation.
package chunker

import "iter"

// DefaultSize is the window size in runes when none is configured.
const DefaultSize = 3000

// Chunks returns the non-overlapping windows of text in document order. The
// sequence is lazy and restartable: ranging over it twice yields the same
// windows again. Windows are sized in runes so multi-byte text is never cut
// mid-character; the final window may be shorter. Empty text yields no
// windows. A non-positive size falls back to DefaultSize.
func Chunks(text string, size int) iter.Seq[string] {
	if size <= 0 {
		size = DefaultSize
	}
	return func(yield func(string) bool) {
		runes := []rune(text)
		for start := 0; start < len(runes); start += size {
			end := start + size
			if end > len(runes) {
				end = len(runes)
			}
			if !yield(string(runes[start:end])) {
				return
			}
		}
	}
}

// Count reports how many windows Chunks will yield for the same inputs.
func Count(text string, size int) int {
	if size <= 0 {
		size = DefaultSize
	}
	n := len([]rune(text))
	return (n + size - 1) / size
}
