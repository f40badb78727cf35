package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/bhavita-mandapati/NetSec-Quiz-Agent-11/internal/ingest"
	"github.com/spf13/cobra"
)

var ingestCmd = &cobra.Command{
	Use:   "ingest <path>...",
	Short: "Index course material for quiz generation",
	Long: "ingest splits .txt and .md files into overlapping chunks and stores them in\n" +
		"the full-text index. Directories are walked recursively. Re-ingesting a file\n" +
		"replaces its previous chunks. Pages are separated by form feeds, as written by\n" +
		"pdftotext.",
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		v := viperForCmd(cmd)

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		splitter := ingest.NewSplitter(v.GetInt("chunk-size"), v.GetInt("chunk-overlap"))
		in := ingest.NewIngester(s.ChunkRepo(), splitter, slog.Default())

		ctx := cmd.Context()
		var total ingest.Stats
		for _, path := range args {
			info, err := os.Stat(path)
			if err != nil {
				return err
			}
			if !info.IsDir() {
				n, err := in.IngestFile(ctx, path)
				if err != nil {
					return err
				}
				total.Files++
				total.Chunks += n
				continue
			}

			stats, err := in.IngestDir(ctx, path)
			if err != nil {
				return err
			}
			total.Files += stats.Files
			total.Skipped += stats.Skipped
			total.Chunks += stats.Chunks
		}

		indexed, err := s.ChunkRepo().Count(ctx)
		if err != nil {
			return fmt.Errorf("count chunks: %w", err)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Ingested %d files (%d skipped), %d chunks.\n", total.Files, total.Skipped, total.Chunks)
		fmt.Fprintf(out, "Index now holds %d chunks.\n", indexed)
		return nil
	},
}

var ingestListCmd = &cobra.Command{
	Use:   "list",
	Short: "List ingested sources",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		sources, err := s.ChunkRepo().Sources(cmd.Context())
		if err != nil {
			return fmt.Errorf("list sources: %w", err)
		}

		out := cmd.OutOrStdout()
		if len(sources) == 0 {
			fmt.Fprintln(out, "No course material indexed yet.")
			return nil
		}
		for _, src := range sources {
			fmt.Fprintf(out, "%6d  %s\n", src.Chunks, src.Source)
		}
		return nil
	},
}

func init() {
	ingestCmd.Flags().Int("chunk-size", ingest.DefaultChunkSize, "Maximum chunk length in characters")
	ingestCmd.Flags().Int("chunk-overlap", ingest.DefaultChunkOverlap, "Characters shared by neighbouring chunks")

	ingestCmd.AddCommand(ingestListCmd)
}
