package state

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestFieldsUpdateJamaName(t *testing.T) {
	ctx := context.Background()
	store, _ := setupTestStore(t)

	field := Field{
		FieldID:     161,
		ItemID:      20006,
		LastUpdated: FormatTimestamp(time.Date(2020, 3, 4, 10, 11, 12, 345000000, time.UTC)),
		JiraName:    "Issue",
		JamaName:    "Ticket",
	}
	require.NoError(t, store.Fields.Insert(ctx, field))

	require.NoError(t, store.Fields.UpdateJamaName(ctx, 161, "FancyIssue"))

	fields, err := store.Fields.RetrieveByFieldID(ctx, 161)
	require.NoError(t, err)
	require.Len(t, fields, 1)
	field.JamaName = "FancyIssue"
	require.Equal(t, field, fields[0])
}

func TestFieldsRetrieveByEachColumn(t *testing.T) {
	ctx := context.Background()
	store, _ := setupTestStore(t)

	stamp := time.Date(2021, 1, 2, 3, 4, 5, 0, time.UTC)
	require.NoError(t, store.Fields.Insert(ctx, Field{FieldID: 1, ItemID: 100, LastUpdated: FormatTimestamp(stamp), JiraName: "Summary", JamaName: "Name"}))
	require.NoError(t, store.Fields.Insert(ctx, Field{FieldID: 2, ItemID: 100, LastUpdated: FormatTimestamp(stamp.Add(time.Hour)), JiraName: "Description", JamaName: "Body"}))
	require.NoError(t, store.Fields.Insert(ctx, Field{FieldID: 3, ItemID: 200, LastUpdated: FormatTimestamp(stamp), JiraName: "Status", JamaName: "State"}))

	byItem, err := store.Fields.RetrieveByItemID(ctx, 100)
	require.NoError(t, err)
	require.Len(t, byItem, 2)

	byTime, err := store.Fields.RetrieveByLastUpdated(ctx, stamp)
	require.NoError(t, err)
	require.Len(t, byTime, 2)

	byJira, err := store.Fields.RetrieveByJiraName(ctx, "Description")
	require.NoError(t, err)
	require.Len(t, byJira, 1)
	require.EqualValues(t, 2, byJira[0].FieldID)

	byJama, err := store.Fields.RetrieveByJamaName(ctx, "State")
	require.NoError(t, err)
	require.Len(t, byJama, 1)
	require.EqualValues(t, 3, byJama[0].FieldID)
}

func TestFieldsUpdates(t *testing.T) {
	ctx := context.Background()
	store, _ := setupTestStore(t)

	require.NoError(t, store.Fields.Insert(ctx, Field{FieldID: 5, ItemID: 1, JiraName: "a", JamaName: "b"}))
	require.NoError(t, store.Fields.Insert(ctx, Field{FieldID: 6, ItemID: 1, JiraName: "c", JamaName: "d"}))

	updated := time.Date(2022, 6, 7, 8, 9, 10, 123000000, time.UTC)
	require.NoError(t, store.Fields.UpdateLastUpdatedTime(ctx, 5, updated))
	require.NoError(t, store.Fields.UpdateJiraName(ctx, 5, "FancyIssue"))
	require.NoError(t, store.Fields.UpdateItemID(ctx, 5, 2))
	require.NoError(t, store.Fields.UpdateFieldID(ctx, 5, 50))

	fields, err := store.Fields.RetrieveByFieldID(ctx, 50)
	require.NoError(t, err)
	require.Len(t, fields, 1)
	require.EqualValues(t, 2, fields[0].ItemID)
	require.Equal(t, "FancyIssue", fields[0].JiraName)
	require.Equal(t, "b", fields[0].JamaName)

	got, err := fields[0].LastUpdatedTime()
	require.NoError(t, err)
	require.True(t, updated.Equal(got))

	other, err := store.Fields.RetrieveByFieldID(ctx, 6)
	require.NoError(t, err)
	require.Equal(t, "c", other[0].JiraName)
	require.EqualValues(t, 1, other[0].ItemID)
}

func TestFieldsInsertDefaultsLastUpdated(t *testing.T) {
	ctx := context.Background()
	store, _ := setupTestStore(t)

	require.NoError(t, store.Fields.Insert(ctx, Field{FieldID: 9, ItemID: 1}))

	fields, err := store.Fields.RetrieveByFieldID(ctx, 9)
	require.NoError(t, err)
	require.Len(t, fields, 1)

	got, err := fields[0].LastUpdatedTime()
	require.NoError(t, err)
	require.WithinDuration(t, time.Now(), got, time.Minute)
}
