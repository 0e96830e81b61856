package state

import (
	"context"
	"database/sql"
	"time"

	"github.com/tomyedwab/jamajira/database"
)

const (
	SyncInformationTableName        = "SyncInformation"
	SyncIDColumn                    = "SyncID"
	SyncStartTimeColumn             = "StartTime"
	SyncEndTimeColumn               = "EndTime"
	SyncCompletedSuccessfullyColumn = "CompletedSuccessfully"
)

// SyncInfo records one sync run. EndTime stays NULL while the run is in
// progress.
type SyncInfo struct {
	SyncID                int64          `db:"SyncID" json:"syncId"`
	StartTime             string         `db:"StartTime" json:"startTime"`
	EndTime               sql.NullString `db:"EndTime" json:"endTime"`
	CompletedSuccessfully bool           `db:"CompletedSuccessfully" json:"completedSuccessfully"`
}

type SyncInformationTable struct {
	ops *database.Operations
}

func NewSyncInformationTable(ops *database.Operations) *SyncInformationTable {
	return &SyncInformationTable{ops: ops}
}

func (t *SyncInformationTable) RetrieveBySyncID(ctx context.Context, syncID int64) ([]SyncInfo, error) {
	return retrieve[SyncInfo](ctx, t.ops, SyncInformationTableName, SyncIDColumn, syncID, syncInfoSelections)
}

func (t *SyncInformationTable) RetrieveByCompletedSuccessfully(ctx context.Context, completed bool) ([]SyncInfo, error) {
	return retrieve[SyncInfo](ctx, t.ops, SyncInformationTableName, SyncCompletedSuccessfullyColumn, completed, syncInfoSelections)
}

func (t *SyncInformationTable) UpdateEndTime(ctx context.Context, syncID int64, end time.Time) error {
	return update(ctx, t.ops, SyncInformationTableName, SyncIDColumn, SyncEndTimeColumn, syncID, FormatTimestamp(end))
}

func (t *SyncInformationTable) UpdateCompletedSuccessfully(ctx context.Context, syncID int64, completed bool) error {
	return update(ctx, t.ops, SyncInformationTableName, SyncIDColumn, SyncCompletedSuccessfullyColumn, syncID, completed)
}

// Insert records a sync run. An empty StartTime takes the column default.
func (t *SyncInformationTable) Insert(ctx context.Context, info SyncInfo) error {
	values := database.Values{
		SyncIDColumn:                    info.SyncID,
		SyncCompletedSuccessfullyColumn: info.CompletedSuccessfully,
	}
	if info.StartTime != "" {
		values[SyncStartTimeColumn] = info.StartTime
	}
	if info.EndTime.Valid {
		values[SyncEndTimeColumn] = info.EndTime.String
	}
	return t.ops.Insert(ctx, SyncInformationTableName, values)
}

// Row returns the run's values in table column order, with nil for a NULL
// EndTime.
func (s SyncInfo) Row() database.Row {
	var end any
	if s.EndTime.Valid {
		end = s.EndTime.String
	}
	return database.Row{s.SyncID, s.StartTime, end, s.CompletedSuccessfully}
}
