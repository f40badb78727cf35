// Package ingest loads course material from disk, splits it into chunks
// and stores the chunks in the document index.
package ingest

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// pageBreak separates pages in text exported from PDFs and slide decks.
const pageBreak = "\f"

// ErrUnsupported is returned for files the loader cannot read.
var ErrUnsupported = errors.New("unsupported file type")

// Document is one loaded page, or a whole file when it has no page breaks.
type Document struct {
	Source string
	Page   *int // 0-based; nil when the file is not paginated
	Text   string
}

// Supported reports whether path has an extension the loader reads.
func Supported(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".txt", ".md", ".markdown":
		return true
	}
	return false
}

// LoadFile reads a text or markdown file. Form feeds split it into pages
// numbered from 0. Text is normalized to NFKC so ligatures and
// compatibility characters from exported slides match plain queries.
// Blank pages are skipped but keep their numbering.
func LoadFile(path string) ([]Document, error) {
	if !Supported(path) {
		return nil, fmt.Errorf("%s: %w", path, ErrUnsupported)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	text := norm.NFKC.String(string(data))

	if !strings.Contains(text, pageBreak) {
		if strings.TrimSpace(text) == "" {
			return nil, nil
		}
		return []Document{{Source: path, Text: text}}, nil
	}

	var docs []Document
	for i, page := range strings.Split(text, pageBreak) {
		if strings.TrimSpace(page) == "" {
			continue
		}
		docs = append(docs, Document{Source: path, Page: &i, Text: page})
	}
	return docs, nil
}
