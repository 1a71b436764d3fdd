package catalog

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/goliatone/go-prodattr/pkg/model"
)

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS attribute_properties (
		type_id TEXT NOT NULL,
		code    TEXT NOT NULL,
		name    TEXT NOT NULL,
		value   TEXT NOT NULL,
		PRIMARY KEY (type_id, code, name)
	)`,
	`CREATE TABLE IF NOT EXISTS attribute_values (
		type_id  TEXT NOT NULL,
		code     TEXT NOT NULL,
		position INTEGER NOT NULL,
		value_id TEXT NOT NULL,
		label    TEXT NOT NULL,
		PRIMARY KEY (type_id, code, position)
	)`,
}

// SQLStore reads product types from two tables: attribute_properties holds
// one JSON encoded schema property per row, attribute_values holds ordered
// value lists. A type exists once it has at least one property.
type SQLStore struct {
	db *sqlx.DB
}

// NewSQLStore wraps db. Queries use "?" placeholders rebound for the driver.
func NewSQLStore(db *sqlx.DB) *SQLStore {
	return &SQLStore{db: db}
}

// Migrate creates the catalog tables when missing.
func (s *SQLStore) Migrate(ctx context.Context) error {
	for _, stmt := range migrations {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("catalog: migrate: %w", err)
		}
	}
	return nil
}

// PutProperty stores a single schema property, replacing any previous value.
func (s *SQLStore) PutProperty(ctx context.Context, typeID, code, name string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("catalog: encode property %s.%s: %w", code, name, err)
	}
	_, err = s.db.ExecContext(ctx, s.db.Rebind(`
		INSERT INTO attribute_properties (type_id, code, name, value)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (type_id, code, name) DO UPDATE SET value = excluded.value
	`), typeID, code, name, string(raw))
	if err != nil {
		return fmt.Errorf("catalog: put property %s.%s: %w", code, name, err)
	}
	return nil
}

// PutSchema stores every property of schema for typeID.
func (s *SQLStore) PutSchema(ctx context.Context, typeID string, schema model.Schema) error {
	for _, code := range schema.Codes() {
		for name, value := range schema[code] {
			if err := s.PutProperty(ctx, typeID, code, name, value); err != nil {
				return err
			}
		}
	}
	return nil
}

// PutValues replaces the value list of code for typeID.
func (s *SQLStore) PutValues(ctx context.Context, typeID, code string, values []model.AttributeValue) (err error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("catalog: put values %s: %w", code, err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, tx.Rebind(
		`DELETE FROM attribute_values WHERE type_id = ? AND code = ?`), typeID, code); err != nil {
		return fmt.Errorf("catalog: put values %s: %w", code, err)
	}
	insert := tx.Rebind(`INSERT INTO attribute_values (type_id, code, position, value_id, label) VALUES (?, ?, ?, ?, ?)`)
	for i, value := range values {
		if _, err = tx.ExecContext(ctx, insert, typeID, code, i, value.ID.String(), value.Label); err != nil {
			return fmt.Errorf("catalog: put values %s: %w", code, err)
		}
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("catalog: put values %s: %w", code, err)
	}
	return nil
}

type propertyRow struct {
	Code  string `db:"code"`
	Name  string `db:"name"`
	Value string `db:"value"`
}

func (s *SQLStore) Schema(ctx context.Context, typeID string) (model.Schema, error) {
	var rows []propertyRow
	err := s.db.SelectContext(ctx, &rows, s.db.Rebind(`
		SELECT code, name, value FROM attribute_properties
		WHERE type_id = ?
		ORDER BY code, name
	`), typeID)
	if err != nil {
		return nil, fmt.Errorf("catalog: load schema %q: %w", typeID, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: %q", ErrTypeNotFound, typeID)
	}

	schema := model.Schema{}
	for _, row := range rows {
		var value any
		if err := json.Unmarshal([]byte(row.Value), &value); err != nil {
			return nil, fmt.Errorf("catalog: decode property %s.%s: %w", row.Code, row.Name, err)
		}
		attr, ok := schema[row.Code]
		if !ok {
			attr = model.Attribute{}
			schema[row.Code] = attr
		}
		attr[row.Name] = value
	}
	return schema, nil
}

func (s *SQLStore) Values(ctx context.Context, typeID, code string) ([]model.AttributeValue, error) {
	if err := s.typeExists(ctx, typeID); err != nil {
		return nil, err
	}
	values := []model.AttributeValue{}
	err := s.db.SelectContext(ctx, &values, s.db.Rebind(`
		SELECT value_id, label FROM attribute_values
		WHERE type_id = ? AND code = ?
		ORDER BY position
	`), typeID, code)
	if err != nil {
		return nil, fmt.Errorf("catalog: load values %q for type %q: %w", code, typeID, err)
	}
	return values, nil
}

func (s *SQLStore) typeExists(ctx context.Context, typeID string) error {
	var count int
	err := s.db.GetContext(ctx, &count, s.db.Rebind(
		`SELECT COUNT(*) FROM attribute_properties WHERE type_id = ?`), typeID)
	if err != nil {
		return fmt.Errorf("catalog: lookup type %q: %w", typeID, err)
	}
	if count == 0 {
		return fmt.Errorf("%w: %q", ErrTypeNotFound, typeID)
	}
	return nil
}

var (
	_ Store = (*SQLStore)(nil)
	_ Store = (*MemoryStore)(nil)
)
