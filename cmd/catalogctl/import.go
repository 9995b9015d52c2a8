package main

import (
	"fmt"

	"bookcatalog/internal/author"
	"bookcatalog/internal/book"
	"bookcatalog/internal/config"
	"bookcatalog/internal/ingest"
	"bookcatalog/internal/language"
	"bookcatalog/internal/platform/googlebooks"
	"bookcatalog/internal/platform/logging"
	"bookcatalog/internal/platform/postgres"

	"github.com/spf13/cobra"
)

func newImportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import <url>",
		Short: "Import one page of volumes into the catalog",
		Long: `Fetch one page of results from the volumes API and store every book
that does not exist yet. The URL host must be on IMPORT_ALLOWED_HOSTS.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			logging.Setup(cfg.LogLevel, cfg.LogPretty)

			ctx := cmd.Context()
			pool, err := postgres.Open(ctx, cfg.DatabaseDSN)
			if err != nil {
				return err
			}
			defer pool.Close()

			authors := author.NewService(author.NewPostgresRepo(pool, cfg.DBTimeout))
			languages := language.NewService(language.NewPostgresRepo(pool, cfg.DBTimeout))
			books := book.NewService(book.NewPostgresRepo(pool, cfg.DBTimeout))
			volumes := googlebooks.NewClient(googlebooks.Config{
				AllowedHosts: cfg.ImportAllowedHosts,
				UserAgent:    cfg.ImportUserAgent,
				Timeout:      cfg.ImportTimeout,
				RPS:          cfg.ImportRPS,
				MaxRetries:   cfg.ImportMaxRetries,
				RetryBackoff: cfg.ImportRetryBackoff,
			})
			svc := ingest.NewService(volumes, authors, languages, books, ingest.NewPostgresRepo(pool))

			res, err := svc.Import(ctx, args[0])
			printResult(cmd, res)
			return err
		},
	}
}

func printResult(cmd *cobra.Command, res ingest.Result) {
	out := cmd.OutOrStdout()
	if res.Reason != "" {
		fmt.Fprintf(out, "Created 0 books: %s\n", res.Reason)
		return
	}
	fmt.Fprintf(out, "Created %d books (%d fetched, %d already present, %d skipped)\n",
		res.Created, res.Fetched, res.Existing, res.Failed)
}
