package database

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strings"
	"sync"

	"github.com/jmoiron/sqlx"
)

// Row is one result row, with values in table column order. Text values are
// returned as string, integers as int64.
type Row []any

// Values maps column names to the values an insert should bind.
type Values map[string]any

// Operations runs table-agnostic statements against a single SQLite file.
// It keeps no connection open between calls.
type Operations struct {
	path   string
	driver string
	logger *slog.Logger

	mu     sync.RWMutex
	schema map[string]Table
}

type Option func(*Operations)

// WithDriver selects the database/sql driver. See DefaultDriver and
// PureGoDriver.
func WithDriver(driver string) Option {
	return func(o *Operations) {
		if driver != "" {
			o.driver = driver
		}
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(o *Operations) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithSchema restricts insert, update, retrieve and rename statements to the
// given tables and their columns. Tables created through CreateTable are
// added to the allow-list.
func WithSchema(tables ...Table) Option {
	return func(o *Operations) {
		if o.schema == nil {
			o.schema = make(map[string]Table, len(tables))
		}
		for _, t := range tables {
			o.schema[t.Name] = t
		}
	}
}

func New(path string, opts ...Option) *Operations {
	o := &Operations{
		path:   path,
		driver: DefaultDriver,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

func (o *Operations) Path() string {
	return o.path
}

func (o *Operations) Driver() string {
	return o.driver
}

// Connect opens a handle to the database file. The caller owns the handle
// and must release it with Close.
func (o *Operations) Connect(ctx context.Context) (*sqlx.DB, error) {
	db, err := sqlx.ConnectContext(ctx, o.driver, o.path)
	if err != nil {
		o.logger.Error("Failed to connect", "path", o.path, "driver", o.driver, "error", err)
		return nil, fmt.Errorf("%w to %s: %w", ErrConnect, o.path, err)
	}
	db.SetMaxOpenConns(1)
	return db, nil
}

// Close releases db if it is non-nil.
func (o *Operations) Close(db *sqlx.DB) {
	if db == nil {
		return
	}
	if err := db.Close(); err != nil {
		o.logger.Warn("Failed to close connection", "path", o.path, "error", err)
	}
}

// exec runs a single statement in its own connection and transaction and
// returns the number of affected rows.
func (o *Operations) exec(ctx context.Context, op string, query string, args ...any) (int64, error) {
	db, err := o.Connect(ctx)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	defer o.Close(db)

	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("%s: failed to begin transaction: %w", op, err)
	}
	defer tx.Rollback()

	o.logger.Debug("Executing statement", "op", op, "sql", query)
	res, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: failed to read affected rows: %w", op, err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("%s: failed to commit transaction: %w", op, err)
	}
	return affected, nil
}

// CreateTable creates table name with the given column names and type
// strings, which are paired by position. If the two lists differ in length
// nothing is executed and ErrColumnTypeMismatch is returned.
func (o *Operations) CreateTable(ctx context.Context, name string, columns []string, types []string) error {
	if len(columns) != len(types) {
		o.logger.Error("Mismatching number of columns and types. Please double check your entry and try again.",
			"table", name, "columns", len(columns), "types", len(types))
		return fmt.Errorf("create table %s: %w (%d columns, %d types)", name, ErrColumnTypeMismatch, len(columns), len(types))
	}
	if len(columns) == 0 {
		return fmt.Errorf("create table %s: %w", name, ErrNoColumns)
	}

	table := Table{Name: name, Columns: make([]Column, len(columns))}
	for i := range columns {
		table.Columns[i] = Column{Name: columns[i], Type: types[i]}
	}
	stmt, err := createTableSQL(table, false)
	if err != nil {
		return fmt.Errorf("create table %s: %w", name, err)
	}

	if _, err := o.exec(ctx, "create table "+name, stmt); err != nil {
		return err
	}
	o.logger.Info("Created table", "table", name, "columns", len(columns))
	o.register(table)
	return nil
}

// EnsureSchema creates every given table that does not exist yet. All
// tables are created in one transaction.
func (o *Operations) EnsureSchema(ctx context.Context, tables ...Table) error {
	stmts := make([]string, 0, len(tables))
	for _, t := range tables {
		stmt, err := createTableSQL(t, true)
		if err != nil {
			return fmt.Errorf("ensure schema: table %s: %w", t.Name, err)
		}
		stmts = append(stmts, stmt)
	}

	db, err := o.Connect(ctx)
	if err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	defer o.Close(db)

	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("ensure schema: failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for i, stmt := range stmts {
		o.logger.Debug("Executing statement", "op", "ensure schema", "sql", stmt)
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: failed to create %s table: %w", tables[i].Name, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("ensure schema: failed to commit transaction: %w", err)
	}

	for _, t := range tables {
		o.register(t)
	}
	o.logger.Info("Schema initialized", "tables", len(tables))
	return nil
}

func createTableSQL(t Table, ifNotExists bool) (string, error) {
	if err := checkName(IdentifierTable, "", t.Name); err != nil {
		return "", err
	}
	if len(t.Columns) == 0 {
		return "", ErrNoColumns
	}

	var sb strings.Builder
	sb.WriteString("CREATE TABLE ")
	if ifNotExists {
		sb.WriteString("IF NOT EXISTS ")
	}
	sb.WriteString(quoteIdentifier(t.Name))
	sb.WriteString("(")
	for i, c := range t.Columns {
		if err := checkName(IdentifierColumn, t.Name, c.Name); err != nil {
			return "", err
		}
		if !validColumnType(c.Type) {
			return "", fmt.Errorf("%w for column %s: %q", ErrInvalidColumnType, c.Name, c.Type)
		}
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(quoteIdentifier(c.Name))
		sb.WriteString(" ")
		sb.WriteString(c.Type)
	}
	sb.WriteString(");")
	return sb.String(), nil
}

// RenameColumn renames column oldName of table to newName.
func (o *Operations) RenameColumn(ctx context.Context, table, oldName, newName string) error {
	if err := o.checkTable(table); err != nil {
		return fmt.Errorf("rename column: %w", err)
	}
	if err := o.checkColumn(table, oldName); err != nil {
		return fmt.Errorf("rename column: %w", err)
	}
	if err := checkName(IdentifierColumn, table, newName); err != nil {
		return fmt.Errorf("rename column: %w", err)
	}

	stmt := "ALTER TABLE " + quoteIdentifier(table) +
		" RENAME COLUMN " + quoteIdentifier(oldName) + " TO " + quoteIdentifier(newName)
	if _, err := o.exec(ctx, "rename column "+table+"."+oldName, stmt); err != nil {
		return err
	}
	o.logger.Info("Renamed column", "table", table, "from", oldName, "to", newName)
	o.renameRegisteredColumn(table, oldName, newName)
	return nil
}

// Insert adds one row to table. Columns not present in values take their
// default.
func (o *Operations) Insert(ctx context.Context, table string, values Values) error {
	if err := o.checkTable(table); err != nil {
		return fmt.Errorf("insert into %s: %w", table, err)
	}
	if len(values) == 0 {
		return fmt.Errorf("insert into %s: %w", table, ErrNoValues)
	}

	columns := make([]string, 0, len(values))
	for c := range values {
		columns = append(columns, c)
	}
	sort.Strings(columns)

	quoted := make([]string, len(columns))
	args := make([]any, len(columns))
	for i, c := range columns {
		if err := o.checkColumn(table, c); err != nil {
			return fmt.Errorf("insert into %s: %w", table, err)
		}
		quoted[i] = quoteIdentifier(c)
		args[i] = values[c]
	}

	stmt := "INSERT INTO " + quoteIdentifier(table) +
		" (" + strings.Join(quoted, ", ") + ") VALUES (" + placeholders(len(args)) + ")"
	_, err := o.exec(ctx, "insert into "+table, stmt, args...)
	return err
}

// InsertRow adds one row to table with values given in table column order.
// Every column of the table must be supplied.
func (o *Operations) InsertRow(ctx context.Context, table string, values ...any) error {
	if err := o.checkTable(table); err != nil {
		return fmt.Errorf("insert into %s: %w", table, err)
	}
	if len(values) == 0 {
		return fmt.Errorf("insert into %s: %w", table, ErrNoValues)
	}

	stmt := "INSERT INTO " + quoteIdentifier(table) + " VALUES(" + placeholders(len(values)) + ")"
	_, err := o.exec(ctx, "insert into "+table, stmt, values...)
	return err
}

func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
}

// Update sets updateColumn to newValue on every row of table whose
// searchColumn equals searchValue, and returns the number of rows changed.
// searchColumn should usually be a unique identifier.
func (o *Operations) Update(ctx context.Context, table, searchColumn, updateColumn string, searchValue, newValue any) (int64, error) {
	if err := o.checkTable(table); err != nil {
		return 0, fmt.Errorf("update %s: %w", table, err)
	}
	for _, c := range []string{searchColumn, updateColumn} {
		if err := o.checkColumn(table, c); err != nil {
			return 0, fmt.Errorf("update %s: %w", table, err)
		}
	}

	stmt := "UPDATE " + quoteIdentifier(table) +
		" SET " + quoteIdentifier(updateColumn) + " = ? WHERE " + quoteIdentifier(searchColumn) + " = ?"
	n, err := o.exec(ctx, "update "+table, stmt, newValue, searchValue)
	if err != nil {
		return 0, err
	}
	o.logger.Debug("Updated rows", "table", table, "column", updateColumn, "rows", n)
	return n, nil
}

// Selection names a column to read. A non-nil IfNull is returned in place of
// NULL cells.
type Selection struct {
	Column string
	IfNull any
}

// selectByColumnSQL builds the lookup query and the leading arguments it
// binds. With no selections every column is read as stored.
func (o *Operations) selectByColumnSQL(table, column string, selections []Selection) (string, []any, error) {
	if err := o.checkTable(table); err != nil {
		return "", nil, err
	}
	if err := o.checkColumn(table, column); err != nil {
		return "", nil, err
	}
	if len(selections) == 0 {
		return "SELECT * FROM " + quoteIdentifier(table) + " WHERE " + quoteIdentifier(column) + " = ?", nil, nil
	}

	exprs := make([]string, len(selections))
	var args []any
	for i, sel := range selections {
		if err := o.checkColumn(table, sel.Column); err != nil {
			return "", nil, err
		}
		quoted := quoteIdentifier(sel.Column)
		if sel.IfNull == nil {
			exprs[i] = quoted
			continue
		}
		exprs[i] = "COALESCE(" + quoted + ", ?) AS " + quoted
		args = append(args, sel.IfNull)
	}
	query := "SELECT " + strings.Join(exprs, ", ") + " FROM " + quoteIdentifier(table) + " WHERE " + quoteIdentifier(column) + " = ?"
	return query, args, nil
}

// RetrieveByColumnValue returns all rows of table whose column equals value.
// No matches yields an empty slice and a nil error.
func (o *Operations) RetrieveByColumnValue(ctx context.Context, table, column string, value any) ([]Row, error) {
	query, _, err := o.selectByColumnSQL(table, column, nil)
	if err != nil {
		return nil, fmt.Errorf("retrieve from %s: %w", table, err)
	}

	db, err := o.Connect(ctx)
	if err != nil {
		return nil, fmt.Errorf("retrieve from %s: %w", table, err)
	}
	defer o.Close(db)

	rows, err := db.QueryxContext(ctx, query, value)
	if err != nil {
		return nil, fmt.Errorf("retrieve from %s: %w", table, err)
	}
	defer rows.Close()

	result := []Row{}
	for rows.Next() {
		vals, err := rows.SliceScan()
		if err != nil {
			return nil, fmt.Errorf("retrieve from %s: failed to scan row: %w", table, err)
		}
		for i, v := range vals {
			if b, ok := v.([]byte); ok {
				vals[i] = string(b)
			}
		}
		result = append(result, Row(vals))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("retrieve from %s: %w", table, err)
	}
	return result, nil
}

// SelectByColumnValue is RetrieveByColumnValue scanned into dest, which must
// be a pointer to a slice of db-tagged structs. Without selections the structs
// must cover every column; otherwise only the selected ones are read.
func (o *Operations) SelectByColumnValue(ctx context.Context, dest any, table, column string, value any, selections ...Selection) error {
	query, args, err := o.selectByColumnSQL(table, column, selections)
	if err != nil {
		return fmt.Errorf("retrieve from %s: %w", table, err)
	}

	db, err := o.Connect(ctx)
	if err != nil {
		return fmt.Errorf("retrieve from %s: %w", table, err)
	}
	defer o.Close(db)

	if err := db.SelectContext(ctx, dest, query, append(args, value)...); err != nil {
		return fmt.Errorf("retrieve from %s: %w", table, err)
	}
	return nil
}

type columnInfo struct {
	CID        int            `db:"cid"`
	Name       string         `db:"name"`
	Type       string         `db:"type"`
	NotNull    int            `db:"notnull"`
	Default    sql.NullString `db:"dflt_value"`
	PrimaryKey int            `db:"pk"`
}

// DescribeTable returns the columns of table as stored in the database file.
func (o *Operations) DescribeTable(ctx context.Context, table string) ([]Column, error) {
	if err := checkName(IdentifierTable, "", table); err != nil {
		return nil, fmt.Errorf("describe %s: %w", table, err)
	}

	db, err := o.Connect(ctx)
	if err != nil {
		return nil, fmt.Errorf("describe %s: %w", table, err)
	}
	defer o.Close(db)

	var infos []columnInfo
	if err := db.SelectContext(ctx, &infos, "PRAGMA table_info("+quoteIdentifier(table)+")"); err != nil {
		return nil, fmt.Errorf("describe %s: %w", table, err)
	}

	columns := make([]Column, len(infos))
	for i, info := range infos {
		columns[i] = Column{Name: info.Name, Type: info.Type}
	}
	return columns, nil
}

// TableNames lists the user tables in the database file.
func (o *Operations) TableNames(ctx context.Context) ([]string, error) {
	db, err := o.Connect(ctx)
	if err != nil {
		return nil, fmt.Errorf("list tables: %w", err)
	}
	defer o.Close(db)

	names := []string{}
	err = db.SelectContext(ctx, &names,
		"SELECT name FROM sqlite_master WHERE type = 'table' AND name NOT LIKE 'sqlite_%' ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("list tables: %w", err)
	}
	return names, nil
}
