package ingest

import (
	"strings"
	"unicode/utf8"
)

// Default chunking parameters.
const (
	DefaultChunkSize    = 1000
	DefaultChunkOverlap = 200
)

// DefaultSeparators are tried in order: paragraphs, lines, words, runes.
var DefaultSeparators = []string{"\n\n", "\n", " ", ""}

// Splitter breaks text into chunks of at most Size runes, preferring to
// cut at the earliest separator in Separators that occurs in the text.
// Consecutive chunks share up to Overlap runes.
type Splitter struct {
	Size       int
	Overlap    int
	Separators []string
}

// NewSplitter returns a Splitter with the default separators.
func NewSplitter(size, overlap int) Splitter {
	if size <= 0 {
		size = DefaultChunkSize
	}
	if overlap < 0 || overlap >= size {
		overlap = 0
	}
	return Splitter{Size: size, Overlap: overlap, Separators: DefaultSeparators}
}

// Split returns the trimmed, non-empty chunks of text.
func (s Splitter) Split(text string) []string {
	return s.split(text, s.Separators)
}

func (s Splitter) split(text string, separators []string) []string {
	sep := ""
	var rest []string
	for i, candidate := range separators {
		if candidate == "" || strings.Contains(text, candidate) {
			sep = candidate
			rest = separators[i+1:]
			break
		}
	}

	var chunks, fitting []string
	for _, piece := range splitKeep(text, sep) {
		if runeLen(piece) < s.Size {
			fitting = append(fitting, piece)
			continue
		}
		if len(fitting) > 0 {
			chunks = append(chunks, s.merge(fitting)...)
			fitting = nil
		}
		if len(rest) == 0 {
			chunks = append(chunks, piece)
		} else {
			chunks = append(chunks, s.split(piece, rest)...)
		}
	}
	if len(fitting) > 0 {
		chunks = append(chunks, s.merge(fitting)...)
	}
	return chunks
}

// merge packs pieces into chunks no longer than Size, carrying up to
// Overlap runes of trailing pieces into the next chunk.
func (s Splitter) merge(pieces []string) []string {
	var chunks, window []string
	total := 0

	for _, piece := range pieces {
		n := runeLen(piece)
		if total+n > s.Size && len(window) > 0 {
			if chunk := strings.TrimSpace(strings.Join(window, "")); chunk != "" {
				chunks = append(chunks, chunk)
			}
			for total > s.Overlap || (total+n > s.Size && total > 0) {
				total -= runeLen(window[0])
				window = window[1:]
			}
		}
		window = append(window, piece)
		total += n
	}

	if chunk := strings.TrimSpace(strings.Join(window, "")); chunk != "" {
		chunks = append(chunks, chunk)
	}
	return chunks
}

// splitKeep splits text on sep, keeping sep at the start of each piece
// after the first. An empty sep splits into runes.
func splitKeep(text, sep string) []string {
	if sep == "" {
		out := make([]string, 0, len(text))
		for _, r := range text {
			out = append(out, string(r))
		}
		return out
	}

	parts := strings.Split(text, sep)
	out := make([]string, 0, len(parts))
	for i, p := range parts {
		if i > 0 {
			p = sep + p
		}
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func runeLen(s string) int {
	return utf8.RuneCountInString(s)
}
