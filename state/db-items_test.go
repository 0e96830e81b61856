package state

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tomyedwab/jamajira/database"
)

func TestItemsInsertUpdateLinkedID(t *testing.T) {
	ctx := context.Background()
	store, ops := setupTestStore(t)

	item := Item{ID: 20006, Title: "ticketx", Type: "ticket", Service: "Jama", LinkedID: "NULL"}
	require.NoError(t, store.Items.Insert(ctx, item))

	items, err := store.Items.RetrieveByItemID(ctx, 20006)
	require.NoError(t, err)
	require.Equal(t, []Item{item}, items)

	require.NoError(t, store.Items.UpdateLinkedID(ctx, 20006, "1002"))

	items, err = store.Items.RetrieveByItemID(ctx, 20006)
	require.NoError(t, err)
	require.Len(t, items, 1)
	item.LinkedID = "1002"
	require.Equal(t, item, items[0])

	// The generic layer sees the same row in column order.
	rows, err := ops.RetrieveByColumnValue(ctx, ItemsTableName, ItemIDColumn, 20006)
	require.NoError(t, err)
	require.Equal(t, []database.Row{{int64(20006), "ticketx", "ticket", "Jama", "1002"}}, rows)
}

func TestItemsRetrieveByEachColumn(t *testing.T) {
	ctx := context.Background()
	store, _ := setupTestStore(t)

	require.NoError(t, store.Items.Insert(ctx, Item{ID: 1, Title: "login page", Type: "ticket", Service: "Jama", LinkedID: "J-1"}))
	require.NoError(t, store.Items.Insert(ctx, Item{ID: 2, Title: "signup page", Type: "ticket", Service: "Jira", LinkedID: "J-2"}))
	require.NoError(t, store.Items.Insert(ctx, Item{ID: 3, Title: "billing", Type: "epic", Service: "Jira", LinkedID: "J-3"}))

	byTitle, err := store.Items.RetrieveByTitle(ctx, "billing")
	require.NoError(t, err)
	require.Len(t, byTitle, 1)
	require.EqualValues(t, 3, byTitle[0].ID)

	byLinked, err := store.Items.RetrieveByLinkedID(ctx, "J-2")
	require.NoError(t, err)
	require.Len(t, byLinked, 1)
	require.EqualValues(t, 2, byLinked[0].ID)

	byService, err := store.Items.RetrieveByService(ctx, "Jira")
	require.NoError(t, err)
	require.Len(t, byService, 2)

	byType, err := store.Items.RetrieveByType(ctx, "ticket")
	require.NoError(t, err)
	require.Len(t, byType, 2)

	none, err := store.Items.RetrieveByType(ctx, "story")
	require.NoError(t, err)
	require.Empty(t, none)
}

func TestItemsUpdatesTouchOnlyTheirColumn(t *testing.T) {
	ctx := context.Background()
	store, _ := setupTestStore(t)

	require.NoError(t, store.Items.Insert(ctx, Item{ID: 1, Title: "a", Type: "ticket", Service: "Jama", LinkedID: "NULL"}))
	require.NoError(t, store.Items.Insert(ctx, Item{ID: 2, Title: "b", Type: "ticket", Service: "Jama", LinkedID: "NULL"}))

	require.NoError(t, store.Items.UpdateTitle(ctx, 1, "renamed"))
	require.NoError(t, store.Items.UpdateType(ctx, 1, "epic"))
	require.NoError(t, store.Items.UpdateService(ctx, 1, "Jira"))

	items, err := store.Items.RetrieveByItemID(ctx, 1)
	require.NoError(t, err)
	require.Equal(t, []Item{{ID: 1, Title: "renamed", Type: "epic", Service: "Jira", LinkedID: "NULL"}}, items)

	items, err = store.Items.RetrieveByItemID(ctx, 2)
	require.NoError(t, err)
	require.Equal(t, []Item{{ID: 2, Title: "b", Type: "ticket", Service: "Jama", LinkedID: "NULL"}}, items)
}

func TestItemsUpdateItemID(t *testing.T) {
	ctx := context.Background()
	store, _ := setupTestStore(t)

	require.NoError(t, store.Items.Insert(ctx, Item{ID: 10, Title: "moved"}))
	require.NoError(t, store.Items.UpdateItemID(ctx, 10, 11))

	old, err := store.Items.RetrieveByItemID(ctx, 10)
	require.NoError(t, err)
	require.Empty(t, old)

	moved, err := store.Items.RetrieveByItemID(ctx, 11)
	require.NoError(t, err)
	require.Len(t, moved, 1)
	require.Equal(t, "moved", moved[0].Title)
}

func TestItemsDuplicateIDFails(t *testing.T) {
	ctx := context.Background()
	store, _ := setupTestStore(t)

	require.NoError(t, store.Items.Insert(ctx, Item{ID: 1, Title: "first"}))
	require.Error(t, store.Items.Insert(ctx, Item{ID: 1, Title: "second"}))

	items, err := store.Items.RetrieveByItemID(ctx, 1)
	require.NoError(t, err)
	require.Equal(t, "first", items[0].Title)
}
