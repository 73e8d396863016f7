package storage

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"strings"

	"backend/utils"
)

// Row is a wire-shape record: flat key-value with snake_case column names,
// exactly as stored remotely.
type Row map[string]any

// Gateway is the generic per-table CRUD client the synchronization cache
// talks to. Implementations are keyed by table name and row id only; they
// know nothing about entity shapes.
type Gateway interface {
	Select(ctx context.Context, table string) ([]Row, error)
	Insert(ctx context.Context, table string, rows []Row) error
	Update(ctx context.Context, table string, id string, patch Row) error
	Delete(ctx context.Context, table string, id string) error
	DeleteAll(ctx context.Context, table string) error
}

// Tables the gateway accepts. Guarding with an allowlist keeps table names
// out of the SQL injection surface even though they never come from users.
var knownTables = map[string]bool{
	"tasks":                true,
	"visits":               true,
	"schedule":             true,
	"monthly_schedule":     true,
	"third_party_schedule": true,
	"painting_projects":    true,
	"purchases":            true,
	"sectors":              true,
	"services":             true,
	"towers":               true,
	"responsibles":         true,
	"materials":            true,
	"situations":           true,
}

// PostgresGateway implements Gateway over a database/sql Postgres pool.
type PostgresGateway struct {
	db *sql.DB
}

func NewPostgresGateway(db *sql.DB) *PostgresGateway {
	return &PostgresGateway{db: db}
}

func checkTable(table string) error {
	if !knownTables[table] {
		return fmt.Errorf("unknown table: %q", table)
	}
	return nil
}

func (g *PostgresGateway) Select(ctx context.Context, table string) ([]Row, error) {
	if err := checkTable(table); err != nil {
		return nil, err
	}
	qctx, cancel := utils.GetDefaultQueryContext(ctx)
	defer cancel()

	rows, err := g.db.QueryContext(qctx, fmt.Sprintf(`SELECT * FROM %s`, table))
	if err != nil {
		return nil, fmt.Errorf("select %s: %w", table, err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("select %s: columns: %w", table, err)
	}

	var out []Row
	for rows.Next() {
		values := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("select %s: scan: %w", table, err)
		}
		row := make(Row, len(cols))
		for i, col := range cols {
			switch v := values[i].(type) {
			case []byte:
				row[col] = string(v)
			default:
				row[col] = v
			}
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("select %s: %w", table, err)
	}
	return out, nil
}

func (g *PostgresGateway) Insert(ctx context.Context, table string, rows []Row) error {
	if err := checkTable(table); err != nil {
		return err
	}
	if len(rows) == 0 {
		return nil
	}
	qctx, cancel := utils.GetDefaultQueryContext(ctx)
	defer cancel()

	tx, err := g.db.BeginTx(qctx, nil)
	if err != nil {
		return fmt.Errorf("insert %s: begin: %w", table, err)
	}
	defer tx.Rollback()

	for _, row := range rows {
		cols := sortedKeys(row)
		placeholders := make([]string, len(cols))
		args := make([]any, len(cols))
		for i, col := range cols {
			placeholders[i] = fmt.Sprintf("$%d", i+1)
			args[i] = row[col]
		}
		query := fmt.Sprintf(`INSERT INTO %s (%s) VALUES (%s)`,
			table, strings.Join(cols, ", "), strings.Join(placeholders, ", "))
		if _, err := tx.ExecContext(qctx, query, args...); err != nil {
			return fmt.Errorf("insert %s: %w", table, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("insert %s: commit: %w", table, err)
	}
	return nil
}

func (g *PostgresGateway) Update(ctx context.Context, table string, id string, patch Row) error {
	if err := checkTable(table); err != nil {
		return err
	}
	if len(patch) == 0 {
		return nil
	}
	qctx, cancel := utils.GetDefaultQueryContext(ctx)
	defer cancel()

	cols := sortedKeys(patch)
	sets := make([]string, len(cols))
	args := make([]any, 0, len(cols)+1)
	for i, col := range cols {
		sets[i] = fmt.Sprintf("%s = $%d", col, i+1)
		args = append(args, patch[col])
	}
	args = append(args, id)
	query := fmt.Sprintf(`UPDATE %s SET %s WHERE id = $%d`,
		table, strings.Join(sets, ", "), len(cols)+1)
	if _, err := g.db.ExecContext(qctx, query, args...); err != nil {
		return fmt.Errorf("update %s id %s: %w", table, id, err)
	}
	return nil
}

func (g *PostgresGateway) Delete(ctx context.Context, table string, id string) error {
	if err := checkTable(table); err != nil {
		return err
	}
	qctx, cancel := utils.GetFastQueryContext(ctx)
	defer cancel()

	if _, err := g.db.ExecContext(qctx, fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, table), id); err != nil {
		return fmt.Errorf("delete %s id %s: %w", table, id, err)
	}
	return nil
}

// DeleteAll clears a table. The id <> '' filter mirrors the hosted query
// client's bulk-clear form (delete().neq(id, sentinel)).
func (g *PostgresGateway) DeleteAll(ctx context.Context, table string) error {
	if err := checkTable(table); err != nil {
		return err
	}
	qctx, cancel := utils.GetDefaultQueryContext(ctx)
	defer cancel()

	if _, err := g.db.ExecContext(qctx, fmt.Sprintf(`DELETE FROM %s WHERE id <> ''`, table)); err != nil {
		return fmt.Errorf("clear %s: %w", table, err)
	}
	return nil
}

func sortedKeys(row Row) []string {
	keys := make([]string, 0, len(row))
	for k := range row {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
