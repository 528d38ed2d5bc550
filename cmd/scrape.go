package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/opencountrieslist/advisory-cli/internal/emit"
	"github.com/opencountrieslist/advisory-cli/internal/pipeline"
)

var (
	scrapeOutputDir string
	scrapeLimit     int
	scrapeDryRun    bool
)

var scrapeCmd = &cobra.Command{
	Use:   "scrape",
	Short: "Run one scrape cycle over every country in the advisory directory",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		env, err := initScrapeEnv(ctx)
		if err != nil {
			return err
		}
		defer env.Close()

		result, err := env.Pipeline.Run(ctx, pipeline.RunOptions{
			DirectoryURL: cfg.Pipeline.DirectoryURL,
			Limit:        scrapeLimit,
			DryRun:       scrapeDryRun,
		})
		if err != nil {
			return err
		}

		for _, post := range result.Posts {
			fmt.Println(post)
		}

		if scrapeDryRun {
			zap.L().Info("scrape: dry run, skipping artifacts",
				zap.Int("records", len(result.Records)),
			)
			return nil
		}

		outDir := scrapeOutputDir
		if outDir == "" {
			outDir = cfg.Output.Dir
		}
		if err := os.MkdirAll(outDir, 0o755); err != nil {
			return eris.Wrap(err, "create output dir")
		}

		doc := emit.BuildDocument(result.ID, result.ObservedAt, result.Records, result.Events)
		if err := emit.WriteDocument(filepath.Join(outDir, "data.json"), doc); err != nil {
			return err
		}
		if err := emit.WriteSitemap(filepath.Join(outDir, "sitemap.xml"), result.ObservedAt); err != nil {
			return err
		}

		zap.L().Info("scrape: cycle artifacts written",
			zap.String("dir", outDir),
			zap.Int("records", len(result.Records)),
			zap.Int("changes", len(result.Events)),
		)
		return nil
	},
}

func init() {
	scrapeCmd.Flags().StringVarP(&scrapeOutputDir, "output", "o", "", "directory for data.json and sitemap.xml (default from config)")
	scrapeCmd.Flags().IntVar(&scrapeLimit, "limit", 0, "only visit the first N countries (0 = all)")
	scrapeCmd.Flags().BoolVar(&scrapeDryRun, "dry-run", false, "skip history writes and artifact output")
	rootCmd.AddCommand(scrapeCmd)
}
