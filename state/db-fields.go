package state

import (
	"context"
	"time"

	"github.com/tomyedwab/jamajira/database"
)

const (
	FieldsTableName        = "Fields"
	FieldIDColumn          = "FieldID"
	FieldItemIDColumn      = "ItemID"
	FieldLastUpdatedColumn = "LastUpdated"
	FieldJiraNameColumn    = "JiraName"
	FieldJamaNameColumn    = "JamaName"
)

// Field is a row of the Fields table. FieldID is the primary key; ItemID
// points at Items.ID without a foreign key.
type Field struct {
	FieldID     int64  `db:"FieldID" json:"fieldId"`
	ItemID      int64  `db:"ItemID" json:"itemId"`
	LastUpdated string `db:"LastUpdated" json:"lastUpdated"`
	JiraName    string `db:"JiraName" json:"jiraName"`
	JamaName    string `db:"JamaName" json:"jamaName"`
}

func (f Field) LastUpdatedTime() (time.Time, error) {
	return ParseTimestamp(f.LastUpdated)
}

type FieldsTable struct {
	ops *database.Operations
}

func NewFieldsTable(ops *database.Operations) *FieldsTable {
	return &FieldsTable{ops: ops}
}

// --- Retrieve ---

func (t *FieldsTable) RetrieveByFieldID(ctx context.Context, fieldID int64) ([]Field, error) {
	return retrieve[Field](ctx, t.ops, FieldsTableName, FieldIDColumn, fieldID, fieldSelections)
}

func (t *FieldsTable) RetrieveByItemID(ctx context.Context, itemID int64) ([]Field, error) {
	return retrieve[Field](ctx, t.ops, FieldsTableName, FieldItemIDColumn, itemID, fieldSelections)
}

func (t *FieldsTable) RetrieveByLastUpdated(ctx context.Context, lastUpdated time.Time) ([]Field, error) {
	return retrieve[Field](ctx, t.ops, FieldsTableName, FieldLastUpdatedColumn, FormatTimestamp(lastUpdated), fieldSelections)
}

func (t *FieldsTable) RetrieveByJamaName(ctx context.Context, jamaName string) ([]Field, error) {
	return retrieve[Field](ctx, t.ops, FieldsTableName, FieldJamaNameColumn, jamaName, fieldSelections)
}

func (t *FieldsTable) RetrieveByJiraName(ctx context.Context, jiraName string) ([]Field, error) {
	return retrieve[Field](ctx, t.ops, FieldsTableName, FieldJiraNameColumn, jiraName, fieldSelections)
}

// --- Update, keyed on the field ID ---

func (t *FieldsTable) UpdateFieldID(ctx context.Context, fieldID int64, newFieldID int64) error {
	return update(ctx, t.ops, FieldsTableName, FieldIDColumn, FieldIDColumn, fieldID, newFieldID)
}

func (t *FieldsTable) UpdateItemID(ctx context.Context, fieldID int64, itemID int64) error {
	return update(ctx, t.ops, FieldsTableName, FieldIDColumn, FieldItemIDColumn, fieldID, itemID)
}

func (t *FieldsTable) UpdateLastUpdatedTime(ctx context.Context, fieldID int64, updated time.Time) error {
	return update(ctx, t.ops, FieldsTableName, FieldIDColumn, FieldLastUpdatedColumn, fieldID, FormatTimestamp(updated))
}

func (t *FieldsTable) UpdateJamaName(ctx context.Context, fieldID int64, jamaName string) error {
	return update(ctx, t.ops, FieldsTableName, FieldIDColumn, FieldJamaNameColumn, fieldID, jamaName)
}

func (t *FieldsTable) UpdateJiraName(ctx context.Context, fieldID int64, jiraName string) error {
	return update(ctx, t.ops, FieldsTableName, FieldIDColumn, FieldJiraNameColumn, fieldID, jiraName)
}

// --- Insert ---

// Insert adds field to the Fields table. An empty LastUpdated falls back to
// the column default, the current time.
func (t *FieldsTable) Insert(ctx context.Context, field Field) error {
	values := database.Values{
		FieldIDColumn:       field.FieldID,
		FieldItemIDColumn:   field.ItemID,
		FieldJiraNameColumn: field.JiraName,
		FieldJamaNameColumn: field.JamaName,
	}
	if field.LastUpdated != "" {
		values[FieldLastUpdatedColumn] = field.LastUpdated
	}
	return t.ops.Insert(ctx, FieldsTableName, values)
}

// Row returns the field's values in table column order.
func (f Field) Row() database.Row {
	return database.Row{f.FieldID, f.ItemID, f.LastUpdated, f.JiraName, f.JamaName}
}
