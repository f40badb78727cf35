package ingest

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"

	"github.com/bhavita-mandapati/NetSec-Quiz-Agent-11/internal/store"
)

// Stats summarizes one ingestion run.
type Stats struct {
	Files   int
	Skipped int
	Chunks  int
}

// Ingester loads files, chunks them and writes the chunks to the index.
type Ingester struct {
	chunks   store.ChunkRepo
	splitter Splitter
	logger   *slog.Logger
}

// NewIngester creates an Ingester. A nil logger uses slog.Default.
func NewIngester(chunks store.ChunkRepo, splitter Splitter, logger *slog.Logger) *Ingester {
	if logger == nil {
		logger = slog.Default()
	}
	return &Ingester{chunks: chunks, splitter: splitter, logger: logger}
}

// IngestDir walks dir recursively and ingests every supported file.
// Unsupported files are logged and counted as skipped.
func (in *Ingester) IngestDir(ctx context.Context, dir string) (Stats, error) {
	var stats Stats

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if !Supported(path) {
			in.logger.Info("skipping unsupported file", "path", path)
			stats.Skipped++
			return nil
		}

		n, err := in.IngestFile(ctx, path)
		if err != nil {
			return err
		}
		stats.Files++
		stats.Chunks += n
		return nil
	})
	if err != nil {
		return stats, fmt.Errorf("ingest %s: %w", dir, err)
	}
	return stats, nil
}

// IngestFile replaces the indexed chunks of one file and returns how many
// chunks were stored.
func (in *Ingester) IngestFile(ctx context.Context, path string) (int, error) {
	docs, err := LoadFile(path)
	if err != nil {
		if errors.Is(err, ErrUnsupported) {
			return 0, err
		}
		return 0, fmt.Errorf("load %s: %w", path, err)
	}

	var chunks []store.Chunk
	for _, doc := range docs {
		for _, text := range in.splitter.Split(doc.Text) {
			chunks = append(chunks, store.Chunk{
				Source:   doc.Source,
				Page:     doc.Page,
				Position: len(chunks),
				Content:  text,
			})
		}
	}

	if err := in.chunks.ReplaceSource(ctx, path, chunks); err != nil {
		return 0, fmt.Errorf("store chunks for %s: %w", path, err)
	}
	in.logger.Info("ingested file", "path", path, "pages", len(docs), "chunks", len(chunks))
	return len(chunks), nil
}
