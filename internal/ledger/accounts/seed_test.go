package accounts

import (
	"context"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	_ "github.com/meridian-erp/meridian-erp/testing"
)

func testSeeder(repo Repository) *Seeder {
	return NewSeeder(repo, slog.New(slog.DiscardHandler))
}

func TestSeedStandardChart(t *testing.T) {
	repo := newStubRepo()
	seeder := testSeeder(repo)
	tenantID := uuid.New()

	created, err := seeder.SeedStandardChart(context.Background(), tenantID, "Acme Ltd")
	require.NoError(t, err)
	require.NotEmpty(t, created)
	require.Len(t, created, len(standardChart()))

	// all five classifications are represented
	seen := make(map[RootType]bool)
	for _, a := range created {
		seen[a.RootType] = true
	}
	require.Len(t, seen, 5)
}

func TestSeedLinksParents(t *testing.T) {
	repo := newStubRepo()
	seeder := testSeeder(repo)
	tenantID := uuid.New()

	created, err := seeder.SeedStandardChart(context.Background(), tenantID, "Acme Ltd")
	require.NoError(t, err)

	for _, seed := range standardChart() {
		if seed.ParentCode == "" {
			continue
		}
		child, err := repo.GetByID(context.Background(), tenantID, created[seed.Code].ID)
		require.NoError(t, err)
		require.NotNil(t, child.ParentID, "seed %s should be linked to %s", seed.Code, seed.ParentCode)
		require.Equal(t, created[seed.ParentCode].ID, *child.ParentID)
	}
}

func TestSeedIsIdempotent(t *testing.T) {
	repo := newStubRepo()
	seeder := testSeeder(repo)
	tenantID := uuid.New()

	first, err := seeder.SeedStandardChart(context.Background(), tenantID, "Acme Ltd")
	require.NoError(t, err)
	second, err := seeder.SeedStandardChart(context.Background(), tenantID, "Acme Ltd")
	require.NoError(t, err)

	require.Len(t, second, len(first))
	for code, account := range first {
		require.Equal(t, account.ID, second[code].ID, "rerun must reuse account %s", code)
	}

	accounts, err := repo.List(context.Background(), tenantID)
	require.NoError(t, err)
	require.Len(t, accounts, len(first), "no duplicates after rerun")
}

func TestSeedIsTenantScoped(t *testing.T) {
	repo := newStubRepo()
	seeder := testSeeder(repo)
	tenantA := uuid.New()
	tenantB := uuid.New()

	a, err := seeder.SeedStandardChart(context.Background(), tenantA, "Acme Ltd")
	require.NoError(t, err)
	b, err := seeder.SeedStandardChart(context.Background(), tenantB, "Beta GmbH")
	require.NoError(t, err)

	for code := range a {
		require.NotEqual(t, a[code].ID, b[code].ID)
	}
}
