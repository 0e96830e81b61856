package database

import (
	"regexp"
	"strings"
)

// Column is a single column definition. Type is the raw SQLite type string,
// including any constraints and default clause.
type Column struct {
	Name string
	Type string
}

// Table describes a table the store knows about. Known tables double as the
// identifier allow-list for DML statements.
type Table struct {
	Name    string
	Columns []Column
}

func (t Table) ColumnNames() []string {
	names := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		names[i] = c.Name
	}
	return names
}

func (t Table) ColumnTypes() []string {
	types := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		types[i] = c.Type
	}
	return types
}

func (t Table) HasColumn(name string) bool {
	for _, c := range t.Columns {
		if c.Name == name {
			return true
		}
	}
	return false
}

var identifierPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Tokens that would let a type string end the CREATE TABLE statement or hide
// the rest of it.
var forbiddenTypeTokens = []string{";", "--", "/*", "*/"}

func quoteIdentifier(name string) string {
	return `"` + name + `"`
}

func validIdentifier(name string) bool {
	return identifierPattern.MatchString(name)
}

func validColumnType(typ string) bool {
	if strings.TrimSpace(typ) == "" {
		return false
	}
	for _, tok := range forbiddenTypeTokens {
		if strings.Contains(typ, tok) {
			return false
		}
	}
	return true
}

// checkName validates the syntax of a table or column name. It does not
// consult the allow-list, so it is safe for names a statement is about to
// introduce.
func checkName(kind IdentifierKind, table, name string) error {
	if !validIdentifier(name) {
		return &IdentifierError{Kind: kind, Name: name, Table: table, Err: ErrInvalidIdentifier}
	}
	return nil
}

// checkTable validates a table name and, when a schema is configured,
// requires it to be known.
func (o *Operations) checkTable(table string) error {
	if err := checkName(IdentifierTable, "", table); err != nil {
		return err
	}
	if !o.restricted() {
		return nil
	}
	if _, ok := o.lookupTable(table); !ok {
		return &IdentifierError{Kind: IdentifierTable, Name: table, Err: ErrUnknownIdentifier}
	}
	return nil
}

func (o *Operations) checkColumn(table, column string) error {
	if err := checkName(IdentifierColumn, table, column); err != nil {
		return err
	}
	if !o.restricted() {
		return nil
	}
	if t, ok := o.lookupTable(table); ok && !t.HasColumn(column) {
		return &IdentifierError{Kind: IdentifierColumn, Name: column, Table: table, Err: ErrUnknownIdentifier}
	}
	return nil
}

func (o *Operations) restricted() bool {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.schema != nil
}

func (o *Operations) lookupTable(name string) (Table, bool) {
	o.mu.RLock()
	defer o.mu.RUnlock()
	t, ok := o.schema[name]
	return t, ok
}

// register adds or replaces a table in the allow-list. It is a no-op when no
// schema was configured.
func (o *Operations) register(t Table) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.schema == nil {
		return
	}
	o.schema[t.Name] = t
}

func (o *Operations) renameRegisteredColumn(table, oldName, newName string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	t, ok := o.schema[table]
	if !ok {
		return
	}
	cols := make([]Column, len(t.Columns))
	copy(cols, t.Columns)
	for i := range cols {
		if cols[i].Name == oldName {
			cols[i].Name = newName
		}
	}
	o.schema[table] = Table{Name: t.Name, Columns: cols}
}
