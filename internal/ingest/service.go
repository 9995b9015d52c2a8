package ingest

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"

	"bookcatalog/internal/author"
	"bookcatalog/internal/book"
	"bookcatalog/internal/catalog"
	"bookcatalog/internal/language"
	"bookcatalog/internal/platform/googlebooks"
	"bookcatalog/internal/platform/logging"
)

const runCloseTimeout = 10 * time.Second

// VolumeFetcher rejects URLs outside its allow-list in CheckURL, before
// anything is recorded or fetched.
type VolumeFetcher interface {
	CheckURL(raw string) (*url.URL, error)
	FetchVolumes(ctx context.Context, rawURL string) (*googlebooks.VolumesResponse, error)
}

type AuthorResolver interface {
	ResolveMany(ctx context.Context, names []string) ([]author.Author, error)
}

type LanguageResolver interface {
	Resolve(ctx context.Context, code string) (language.Language, catalog.Outcome, error)
}

type BookUpserter interface {
	Upsert(ctx context.Context, d book.Draft, languageID int64, authorIDs []int64) (book.Book, catalog.Outcome, error)
}

type Service struct {
	fetcher   VolumeFetcher
	authors   AuthorResolver
	languages LanguageResolver
	books     BookUpserter
	runs      Repository
}

func NewService(fetcher VolumeFetcher, authors AuthorResolver, languages LanguageResolver, books BookUpserter, runs Repository) *Service {
	return &Service{
		fetcher:   fetcher,
		authors:   authors,
		languages: languages,
		books:     books,
		runs:      runs,
	}
}

// Import fetches one page of volumes from sourceURL and stores every new
// book. Items are processed in order; a failing item is logged and counted
// without stopping the run. A failed fetch processes nothing and returns a
// Result with zero counts, Reason set and an error wrapping ErrFetchFailed.
// ctx bounds the run record and the fetch only: a caller that cancels after
// the page arrived still gets every item processed and the run closed.
func (s *Service) Import(ctx context.Context, sourceURL string) (res Result, err error) {
	if _, err := s.fetcher.CheckURL(sourceURL); err != nil {
		return Result{}, err
	}

	run := &Run{
		SourceURL: sourceURL,
		Status:    StatusRunning,
		StartedAt: time.Now(),
	}
	runID, err := s.runs.CreateRun(ctx, run)
	if err != nil {
		return Result{}, fmt.Errorf("record import run: %w", err)
	}
	run.ID = runID
	logger := logging.FromContext(ctx).With().Str("run_id", runID).Logger()

	defer func() {
		now := time.Now()
		run.FinishedAt = &now
		run.ItemsFetched = res.Fetched
		run.BooksCreated = res.Created
		run.BooksExisting = res.Existing
		run.ItemsFailed = res.Failed
		if err != nil {
			run.Status = StatusFailed
			run.Error = err.Error()
		} else {
			run.Status = StatusCompleted
		}
		// The run is closed even when the caller has gone away.
		closeCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), runCloseTimeout)
		defer cancel()
		if updateErr := s.runs.UpdateRun(closeCtx, run); updateErr != nil {
			logger.Error().Err(updateErr).Msg("failed to update import run")
		}
	}()

	res.RunID = runID

	page, err := s.fetcher.FetchVolumes(ctx, sourceURL)
	if err != nil {
		res.Reason = fetchReason(err)
		logger.Warn().Err(err).Str("url", sourceURL).Msg("import fetch failed")
		return res, fmt.Errorf("%w: %s", ErrFetchFailed, res.Reason)
	}
	res.Fetched = len(page.Items)

	// Once the page is in hand every item is processed; cancellation of ctx
	// no longer applies. Storage calls keep their own timeouts.
	itemCtx := context.WithoutCancel(ctx)
	for i, item := range page.Items {
		outcome, itemErr := s.importItem(itemCtx, item.VolumeInfo)
		if itemErr != nil {
			res.Failed++
			logger.Warn().
				Err(itemErr).
				Int("item", i).
				Str("volume_id", item.ID).
				Bool("validation", catalog.IsValidation(itemErr)).
				Msg("skipping import item")
			continue
		}
		if outcome == catalog.Created {
			res.Created++
		} else {
			res.Existing++
		}
	}

	logger.Info().
		Int("fetched", res.Fetched).
		Int("created", res.Created).
		Int("existing", res.Existing).
		Int("failed", res.Failed).
		Msg("import finished")
	return res, nil
}

// importItem validates the draft before resolving anything so that a bad
// record leaves no authors or languages behind.
func (s *Service) importItem(ctx context.Context, info googlebooks.VolumeInfo) (catalog.Outcome, error) {
	draft := DraftFrom(info)
	if err := draft.Validate(); err != nil {
		return 0, err
	}

	lang, _, err := s.languages.Resolve(ctx, ExtractLanguageCode(info))
	if err != nil {
		return 0, fmt.Errorf("resolve language: %w", err)
	}

	authors, err := s.authors.ResolveMany(ctx, ExtractAuthors(info))
	if err != nil {
		return 0, err
	}
	authorIDs := make([]int64, len(authors))
	for i, a := range authors {
		authorIDs[i] = a.ID
	}

	_, outcome, err := s.books.Upsert(ctx, draft, lang.ID, authorIDs)
	if err != nil {
		return 0, fmt.Errorf("upsert book %q: %w", draft.Title, err)
	}
	return outcome, nil
}

// Runs lists the most recent import runs, newest first.
func (s *Service) Runs(ctx context.Context, limit int) ([]Run, error) {
	return s.runs.ListRuns(ctx, limit)
}

func fetchReason(err error) string {
	var fe *googlebooks.FetchError
	if errors.As(err, &fe) {
		return fe.Reason
	}
	return err.Error()
}
