package repositories_test

import (
	"context"
	"testing"
	"time"

	"github.com/SscSPs/ledger_engine/internal/repositories"
	"github.com/SscSPs/ledger_engine/internal/repositories/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSeedAccounts(t *testing.T) {
	opened := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	accounts, err := repositories.ParseSeedAccounts(" cash, revenue ,old:INACTIVE,, cash:inactive", opened)
	require.NoError(t, err)
	require.Len(t, accounts, 3)

	assert.Equal(t, "cash", accounts[0].AccountID)
	assert.False(t, accounts[0].IsActive, "the last definition of a repeated id wins")
	assert.Equal(t, "revenue", accounts[1].AccountID)
	assert.True(t, accounts[1].IsActive)
	assert.Equal(t, "old", accounts[2].AccountID)
	assert.False(t, accounts[2].IsActive)
	assert.Equal(t, opened, accounts[1].OpenedAt)
}

func TestParseSeedAccounts_Empty(t *testing.T) {
	accounts, err := repositories.ParseSeedAccounts("", time.Now())
	require.NoError(t, err)
	assert.Empty(t, accounts)
}

func TestParseSeedAccounts_Invalid(t *testing.T) {
	_, err := repositories.ParseSeedAccounts("cash:frozen", time.Now())
	assert.Error(t, err)

	_, err = repositories.ParseSeedAccounts(":inactive", time.Now())
	assert.Error(t, err)
}

func TestSeedAccounts(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	accounts, err := repositories.ParseSeedAccounts("cash,closed:inactive", time.Now())
	require.NoError(t, err)

	require.NoError(t, repositories.SeedAccounts(ctx, store, accounts))

	cash, err := store.FindAccountByID(ctx, "cash")
	require.NoError(t, err)
	assert.True(t, cash.IsActive)
	closed, err := store.FindAccountByID(ctx, "closed")
	require.NoError(t, err)
	assert.False(t, closed.IsActive)
}
