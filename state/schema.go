package state

import (
	"context"
	"time"

	"github.com/tomyedwab/jamajira/database"
)

// TimestampLayout matches SQLite's STRFTIME('%Y-%m-%d %H:%M:%f', 'NOW').
const TimestampLayout = "2006-01-02 15:04:05.000"

const currentTimestampDefault = "DEFAULT(STRFTIME('%Y-%m-%d %H:%M:%f', 'NOW'))"

var ItemsSchema = database.Table{
	Name: ItemsTableName,
	Columns: []database.Column{
		{Name: ItemIDColumn, Type: "INT PRIMARY KEY NOT NULL"},
		{Name: ItemTitleColumn, Type: "TEXT NOT NULL DEFAULT ''"},
		{Name: ItemTypeColumn, Type: "TEXT NOT NULL DEFAULT ''"},
		{Name: ItemServiceColumn, Type: "TEXT NOT NULL DEFAULT ''"},
		{Name: ItemLinkedIDColumn, Type: "TEXT NOT NULL DEFAULT ''"},
	},
}

var FieldsSchema = database.Table{
	Name: FieldsTableName,
	Columns: []database.Column{
		{Name: FieldIDColumn, Type: "INT PRIMARY KEY NOT NULL"},
		{Name: FieldItemIDColumn, Type: "INT NOT NULL"},
		{Name: FieldLastUpdatedColumn, Type: "TEXT NOT NULL " + currentTimestampDefault},
		{Name: FieldJiraNameColumn, Type: "TEXT NOT NULL DEFAULT ''"},
		{Name: FieldJamaNameColumn, Type: "TEXT NOT NULL DEFAULT ''"},
	},
}

var SyncInformationSchema = database.Table{
	Name: SyncInformationTableName,
	Columns: []database.Column{
		{Name: SyncIDColumn, Type: "INT PRIMARY KEY NOT NULL"},
		{Name: SyncStartTimeColumn, Type: "TEXT NOT NULL " + currentTimestampDefault},
		{Name: SyncEndTimeColumn, Type: "TEXT DEFAULT(NULL)"},
		{Name: SyncCompletedSuccessfullyColumn, Type: "INT NOT NULL DEFAULT 0"},
	},
}

// Schema returns every table of the sync store.
func Schema() []database.Table {
	return []database.Table{ItemsSchema, FieldsSchema, SyncInformationSchema}
}

// InitSchema creates any missing sync store tables.
func InitSchema(ctx context.Context, ops *database.Operations) error {
	return ops.EnsureSchema(ctx, Schema()...)
}

func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}

func ParseTimestamp(raw string) (time.Time, error) {
	return time.Parse(TimestampLayout, raw)
}

// Tables this package did not create may hold NULL in any column. Reads
// substitute the zero value so every facade row type can scan them.
var (
	itemSelections = []database.Selection{
		{Column: ItemIDColumn, IfNull: int64(0)},
		{Column: ItemTitleColumn, IfNull: ""},
		{Column: ItemTypeColumn, IfNull: ""},
		{Column: ItemServiceColumn, IfNull: ""},
		{Column: ItemLinkedIDColumn, IfNull: ""},
	}
	fieldSelections = []database.Selection{
		{Column: FieldIDColumn, IfNull: int64(0)},
		{Column: FieldItemIDColumn, IfNull: int64(0)},
		{Column: FieldLastUpdatedColumn, IfNull: ""},
		{Column: FieldJiraNameColumn, IfNull: ""},
		{Column: FieldJamaNameColumn, IfNull: ""},
	}
	// EndTime keeps its NULL.
	syncInfoSelections = []database.Selection{
		{Column: SyncIDColumn, IfNull: int64(0)},
		{Column: SyncStartTimeColumn, IfNull: ""},
		{Column: SyncEndTimeColumn},
		{Column: SyncCompletedSuccessfullyColumn, IfNull: int64(0)},
	}
)

func retrieve[T any](ctx context.Context, ops *database.Operations, table, column string, value any, selections []database.Selection) ([]T, error) {
	rows := []T{}
	if err := ops.SelectByColumnValue(ctx, &rows, table, column, value, selections...); err != nil {
		return nil, err
	}
	return rows, nil
}

func update(ctx context.Context, ops *database.Operations, table, searchColumn, updateColumn string, searchValue, newValue any) error {
	_, err := ops.Update(ctx, table, searchColumn, updateColumn, searchValue, newValue)
	return err
}

// Store bundles the facades for one database file.
type Store struct {
	Items           *ItemsTable
	Fields          *FieldsTable
	SyncInformation *SyncInformationTable
}

func NewStore(ops *database.Operations) *Store {
	return &Store{
		Items:           NewItemsTable(ops),
		Fields:          NewFieldsTable(ops),
		SyncInformation: NewSyncInformationTable(ops),
	}
}
