package state

import (
	"context"

	"github.com/tomyedwab/jamajira/database"
)

const (
	ItemsTableName     = "Items"
	ItemIDColumn       = "ID"
	ItemTitleColumn    = "Title"
	ItemTypeColumn     = "Type"
	ItemServiceColumn  = "Service"
	ItemLinkedIDColumn = "LinkedID"
)

// Item is a row of the Items table. LinkedID references the matching item
// in the other system and is not enforced.
type Item struct {
	ID       int64  `db:"ID" json:"id"`
	Title    string `db:"Title" json:"title"`
	Type     string `db:"Type" json:"type"`
	Service  string `db:"Service" json:"service"`
	LinkedID string `db:"LinkedID" json:"linkedId"`
}

type ItemsTable struct {
	ops *database.Operations
}

func NewItemsTable(ops *database.Operations) *ItemsTable {
	return &ItemsTable{ops: ops}
}

// --- Retrieve ---

func (t *ItemsTable) RetrieveByItemID(ctx context.Context, id int64) ([]Item, error) {
	return retrieve[Item](ctx, t.ops, ItemsTableName, ItemIDColumn, id, itemSelections)
}

func (t *ItemsTable) RetrieveByTitle(ctx context.Context, title string) ([]Item, error) {
	return retrieve[Item](ctx, t.ops, ItemsTableName, ItemTitleColumn, title, itemSelections)
}

func (t *ItemsTable) RetrieveByLinkedID(ctx context.Context, linkedID string) ([]Item, error) {
	return retrieve[Item](ctx, t.ops, ItemsTableName, ItemLinkedIDColumn, linkedID, itemSelections)
}

func (t *ItemsTable) RetrieveByService(ctx context.Context, service string) ([]Item, error) {
	return retrieve[Item](ctx, t.ops, ItemsTableName, ItemServiceColumn, service, itemSelections)
}

func (t *ItemsTable) RetrieveByType(ctx context.Context, typ string) ([]Item, error) {
	return retrieve[Item](ctx, t.ops, ItemsTableName, ItemTypeColumn, typ, itemSelections)
}

// --- Update, keyed on the item ID ---

func (t *ItemsTable) UpdateTitle(ctx context.Context, id int64, title string) error {
	return update(ctx, t.ops, ItemsTableName, ItemIDColumn, ItemTitleColumn, id, title)
}

func (t *ItemsTable) UpdateLinkedID(ctx context.Context, id int64, linkedID string) error {
	return update(ctx, t.ops, ItemsTableName, ItemIDColumn, ItemLinkedIDColumn, id, linkedID)
}

func (t *ItemsTable) UpdateType(ctx context.Context, id int64, typ string) error {
	return update(ctx, t.ops, ItemsTableName, ItemIDColumn, ItemTypeColumn, id, typ)
}

func (t *ItemsTable) UpdateService(ctx context.Context, id int64, service string) error {
	return update(ctx, t.ops, ItemsTableName, ItemIDColumn, ItemServiceColumn, id, service)
}

func (t *ItemsTable) UpdateItemID(ctx context.Context, id int64, newID int64) error {
	return update(ctx, t.ops, ItemsTableName, ItemIDColumn, ItemIDColumn, id, newID)
}

// --- Insert ---

// Insert adds item to the Items table. IDs are unique by convention only;
// inserting a duplicate fails on the primary key.
func (t *ItemsTable) Insert(ctx context.Context, item Item) error {
	return t.ops.Insert(ctx, ItemsTableName, database.Values{
		ItemIDColumn:       item.ID,
		ItemTitleColumn:    item.Title,
		ItemTypeColumn:     item.Type,
		ItemServiceColumn:  item.Service,
		ItemLinkedIDColumn: item.LinkedID,
	})
}

// Row returns the item's values in table column order.
func (i Item) Row() database.Row {
	return database.Row{i.ID, i.Title, i.Type, i.Service, i.LinkedID}
}
