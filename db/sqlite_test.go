package db

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"homeprice/service"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestRecordAndRecent(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()
	base := time.Date(2026, 10, 16, 9, 0, 0, 0, time.UTC)

	for i, loc := range []string{"Baner", "Kothrud", "Nowhere"} {
		err := store.Record(ctx, service.Quote{
			Location:        loc,
			TotalSqft:       1000 + float64(i)*100,
			Bath:            2,
			BHK:             3,
			Price:           50.25 + float64(i),
			Unit:            service.PriceUnit,
			Display:         service.FormatPrice(50.25 + float64(i)),
			LocationMatched: loc != "Nowhere",
			CreatedAt:       base.Add(time.Duration(i) * time.Minute),
		})
		require.NoError(t, err)
	}

	recent, err := store.Recent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, recent, 2)

	assert.Equal(t, "Nowhere", recent[0].Location)
	assert.False(t, recent[0].LocationMatched)
	assert.Equal(t, 1200.0, recent[0].TotalSqft)
	assert.Equal(t, 52.25, recent[0].Price)
	assert.Equal(t, "₹ 52.25 Lakhs", recent[0].Display)
	assert.True(t, recent[0].CreatedAt.Equal(base.Add(2*time.Minute)))

	assert.Equal(t, "Kothrud", recent[1].Location)
	assert.True(t, recent[1].LocationMatched)
}

func TestRecentEmpty(t *testing.T) {
	store := openTestStore(t)

	recent, err := store.Recent(context.Background(), 10)
	require.NoError(t, err)
	assert.Empty(t, recent)

	recent, err = store.Recent(context.Background(), 0)
	require.NoError(t, err)
	assert.Empty(t, recent)
}

func TestOpenRequiresPath(t *testing.T) {
	_, err := Open("")
	assert.Error(t, err)
}

func TestStoreSatisfiesHistory(t *testing.T) {
	var _ service.History = (*Store)(nil)
}
