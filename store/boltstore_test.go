package store

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/capsulex/libcapsule-go/capsule"
	"github.com/capsulex/libcapsule-go/ledger"
)

func openTestStore(t *testing.T) *BoltStore {
	t.Helper()
	s, err := OpenBoltStore(filepath.Join(t.TempDir(), "cache", "capsulex.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestCompletedDealRoundTrip(t *testing.T) {
	s := openTestStore(t)

	deal := &capsule.CompletedDeal{
		Buyer:          "buyer-1",
		Seller:         "owner-1",
		Price:          3_000_000,
		ClosedAtMillis: 1700000000000,
	}
	require.NoError(t, s.PutCompletedDeal("cap-1", deal))

	got, err := s.GetCompletedDeal("cap-1")
	require.NoError(t, err)
	assert.Equal(t, deal, got)
}

func TestCompletedDeal_NotFound(t *testing.T) {
	s := openTestStore(t)
	_, err := s.GetCompletedDeal("cap-9")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCompletedDeal_NilParams(t *testing.T) {
	s := openTestStore(t)
	assert.ErrorIs(t, s.PutCompletedDeal("", &capsule.CompletedDeal{}), ErrNilParam)
	assert.ErrorIs(t, s.PutCompletedDeal("cap-1", nil), ErrNilParam)
}

func TestHistoryRoundTrip(t *testing.T) {
	s := openTestStore(t)

	txs := []ledger.Transaction{
		{ID: 2, From: "acct-1", To: "acct-2", Amount: 500, Fee: 10, TimestampMillis: 1700000000000},
		{ID: 1, From: "acct-3", To: "acct-1", Amount: 900, Fee: 10, TimestampMillis: 1690000000000},
	}
	require.NoError(t, s.PutHistory("acct-1", txs))

	got, err := s.GetHistory("acct-1")
	require.NoError(t, err)
	assert.Equal(t, txs, got)

	// Replacement, not append.
	require.NoError(t, s.PutHistory("acct-1", txs[:1]))
	got, err = s.GetHistory("acct-1")
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestHistory_NotFound(t *testing.T) {
	s := openTestStore(t)
	_, err := s.GetHistory("acct-9")
	assert.ErrorIs(t, err, ErrNotFound)
}
