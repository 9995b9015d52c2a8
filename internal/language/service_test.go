package language_test

import (
	"context"
	"testing"

	"bookcatalog/internal/catalog"
	"bookcatalog/internal/language"
	"bookcatalog/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestService_Resolve(t *testing.T) {
	ctx := context.Background()
	repo := testutil.NewLanguageRepo()
	svc := language.NewService(repo)

	pl, outcome, err := svc.Resolve(ctx, "pl")
	require.NoError(t, err)
	assert.Equal(t, catalog.Created, outcome)
	assert.Equal(t, "", pl.Name)

	again, outcome, err := svc.Resolve(ctx, "pl")
	require.NoError(t, err)
	assert.Equal(t, catalog.Found, outcome)
	assert.Equal(t, pl.ID, again.ID)

	empty, _, err := svc.Resolve(ctx, "")
	require.NoError(t, err)
	assert.NotEqual(t, pl.ID, empty.ID)
	assert.Len(t, repo.All(), 2)
}

func TestService_Resolve_RejectsOversizedCode(t *testing.T) {
	svc := language.NewService(testutil.NewLanguageRepo())

	_, _, err := svc.Resolve(context.Background(), "not-a-real-code")
	assert.True(t, catalog.IsValidation(err))
}

// lateRepo misses on the first lookup, as if the row was inserted by a
// concurrent import right after it.
type lateRepo struct {
	*testutil.LanguageRepo
	missed bool
}

func (r *lateRepo) FindByCode(ctx context.Context, code string) (language.Language, error) {
	if !r.missed {
		r.missed = true
		return language.Language{}, catalog.ErrNotFound
	}
	return r.LanguageRepo.FindByCode(ctx, code)
}

func TestService_Resolve_Conflict(t *testing.T) {
	base := testutil.NewLanguageRepo(language.Language{Name: "Polish", Code: "pl"})
	svc := language.NewService(&lateRepo{LanguageRepo: base})

	l, outcome, err := svc.Resolve(context.Background(), "pl")
	require.NoError(t, err)
	assert.Equal(t, catalog.Conflict, outcome)
	assert.Equal(t, "Polish", l.Name)
	assert.Len(t, base.All(), 1)
}

func TestService_SeedNames(t *testing.T) {
	ctx := context.Background()
	repo := testutil.NewLanguageRepo(
		language.Language{Code: "pl"},
		language.Language{Name: "Deutsch", Code: "de"},
	)
	svc := language.NewService(repo)

	n, err := svc.SeedNames(ctx, map[string]string{"pl": "Polish", "de": "German", "en": "English"})
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	names := map[string]string{}
	for _, l := range repo.All() {
		names[l.Code] = l.Name
	}
	assert.Equal(t, map[string]string{"pl": "Polish", "de": "Deutsch", "en": "English"}, names)
}
