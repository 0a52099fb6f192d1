// Package chunker splits extracted text into overlapping fixed-size
// chunks using a recursive separator-aware strategy.
package chunker

import "strings"

// Split breaks text into ordered chunks of at most size characters.
// Separators are tried in priority order: a segment that still exceeds
// size after splitting on one separator is re-split with the next, down
// to character-level splitting. Adjacent small segments are then merged
// back up to size, each chunk after the first repeating the last overlap
// characters of its predecessor. Empty input yields no chunks.
func Split(text string, size, overlap int, separators []string) []string {
	if text == "" || size <= 0 {
		return nil
	}
	if overlap < 0 || overlap >= size {
		overlap = 0
	}
	// Character-level atoms leave room for the overlap prefix, so merged
	// chunks can repeat the previous tail without exceeding size.
	atom := size - overlap
	pieces := split(text, size, atom, separators)
	return merge(pieces, size, overlap)
}

func split(text string, size, atom int, separators []string) []string {
	if len(text) <= size {
		return []string{text}
	}
	if len(separators) == 0 {
		return splitChars(text, atom)
	}
	var out []string
	for _, part := range splitKeep(text, separators[0]) {
		if len(part) > size {
			out = append(out, split(part, size, atom, separators[1:])...)
		} else {
			out = append(out, part)
		}
	}
	return out
}

// splitKeep splits on sep, keeping the separator at the end of the piece
// it terminates so that concatenating the pieces reproduces the input.
func splitKeep(text, sep string) []string {
	if sep == "" {
		return []string{text}
	}
	var parts []string
	for {
		i := strings.Index(text, sep)
		if i < 0 {
			break
		}
		parts = append(parts, text[:i+len(sep)])
		text = text[i+len(sep):]
	}
	if text != "" {
		parts = append(parts, text)
	}
	return parts
}

func splitChars(text string, size int) []string {
	var out []string
	for len(text) > size {
		out = append(out, text[:size])
		text = text[size:]
	}
	if text != "" {
		out = append(out, text)
	}
	return out
}

// merge greedily packs pieces into chunks of at most size characters.
// Each new chunk starts with the tail overlap of the previous one; the
// overlap is dropped when it alone would push the next piece past size.
func merge(pieces []string, size, overlap int) []string {
	var chunks []string
	cur := ""
	hasContent := false
	for _, p := range pieces {
		if hasContent && len(cur)+len(p) > size {
			chunks = append(chunks, cur)
			cur = tail(cur, overlap)
			hasContent = false
		}
		if !hasContent && len(cur)+len(p) > size {
			cur = ""
		}
		cur += p
		hasContent = true
	}
	if hasContent {
		chunks = append(chunks, cur)
	}
	return chunks
}

func tail(s string, n int) string {
	if n <= 0 || n >= len(s) {
		if n <= 0 {
			return ""
		}
		return s
	}
	return s[len(s)-n:]
}
