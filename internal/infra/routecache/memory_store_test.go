package routecache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/1DS22AIOO3adarsh/Clear-sky-challenge/internal/domain/routing"
)

func sampleSelection() routing.Selection {
	route := routing.ScoredRoute{
		Candidate: routing.Candidate{
			Geometry:        [][2]float64{{77.0, 28.0}, {77.0, 28.01}},
			DistanceMeters:  1100,
			DurationSeconds: 120,
		},
		Index:            0,
		AveragePollution: 42.5,
		SampleCount:      11,
	}
	return routing.Selection{Fastest: route, Cleanest: route, Same: true, Routes: []routing.ScoredRoute{route}}
}

func TestMemoryStoreSaveAndGet(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	_, hit, err := store.Get(ctx, "routes:g1:a")
	require.NoError(t, err)
	require.False(t, hit)

	require.NoError(t, store.Save(ctx, "routes:g1:a", sampleSelection(), 0))

	got, hit, err := store.Get(ctx, "routes:g1:a")
	require.NoError(t, err)
	require.True(t, hit)
	require.Equal(t, sampleSelection(), got)
}

func TestMemoryStoreTTLExpiry(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "key", sampleSelection(), 10*time.Millisecond))

	_, hit, err := store.Get(ctx, "key")
	require.NoError(t, err)
	require.True(t, hit)

	time.Sleep(25 * time.Millisecond)

	_, hit, err = store.Get(ctx, "key")
	require.NoError(t, err)
	require.False(t, hit)
}
