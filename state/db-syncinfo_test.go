package state

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestSyncInformationLifecycle(t *testing.T) {
	ctx := context.Background()
	store, _ := setupTestStore(t)

	require.NoError(t, store.SyncInformation.Insert(ctx, SyncInfo{SyncID: 1}))

	runs, err := store.SyncInformation.RetrieveBySyncID(ctx, 1)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	require.NotEmpty(t, runs[0].StartTime)
	require.False(t, runs[0].EndTime.Valid)
	require.False(t, runs[0].CompletedSuccessfully)

	end := time.Date(2023, 5, 6, 7, 8, 9, 0, time.UTC)
	require.NoError(t, store.SyncInformation.UpdateEndTime(ctx, 1, end))
	require.NoError(t, store.SyncInformation.UpdateCompletedSuccessfully(ctx, 1, true))

	runs, err = store.SyncInformation.RetrieveBySyncID(ctx, 1)
	require.NoError(t, err)
	require.True(t, runs[0].EndTime.Valid)
	require.Equal(t, FormatTimestamp(end), runs[0].EndTime.String)
	require.True(t, runs[0].CompletedSuccessfully)

	done, err := store.SyncInformation.RetrieveByCompletedSuccessfully(ctx, true)
	require.NoError(t, err)
	require.Len(t, done, 1)

	pending, err := store.SyncInformation.RetrieveByCompletedSuccessfully(ctx, false)
	require.NoError(t, err)
	require.Empty(t, pending)
}
