package docstore

import (
	"context"
	"crypto/rand"
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	intconfig "coachingfees/internal/config"
	intdb "coachingfees/internal/db"
)

// MySQLStore keeps each collection in a table of shape
// (id VARCHAR, data JSON, created_at DATETIME, updated_at DATETIME).
// Documents stay schemaless inside the JSON column, so historical field
// drift (studentId vs studentid) survives round-trips unmangled.
type MySQLStore struct {
	DB *sql.DB
}

var identRE = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_]*$`)

func (s MySQLStore) db() *sql.DB {
	if s.DB != nil {
		return s.DB
	}
	return intconfig.DB
}

func (s MySQLStore) table(collection string) (string, error) {
	if !identRE.MatchString(collection) {
		return "", fmt.Errorf("invalid collection name %q", collection)
	}
	db := s.db()
	if db == nil || !intdb.HasTable(db, collection) {
		return "", fmt.Errorf("collection table %s not found", collection)
	}
	return collection, nil
}

func (s MySQLStore) List(ctx context.Context, collection string, opts ListOptions) ([]Document, error) {
	table, err := s.table(collection)
	if err != nil {
		return nil, err
	}

	query := `SELECT id, data, created_at, updated_at FROM ` + table
	args := []any{}

	where := []string{}
	for _, f := range opts.Filters {
		if !identRE.MatchString(f.Field) {
			return nil, fmt.Errorf("invalid filter field %q", f.Field)
		}
		where = append(where, `JSON_UNQUOTE(JSON_EXTRACT(data, '$.`+f.Field+`')) = ?`)
		args = append(args, filterArg(f.Value))
	}
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, ` AND `)
	}
	if opts.OrderUpdatedDesc {
		query += ` ORDER BY updated_at DESC`
	}
	if opts.Limit > 0 {
		query += ` LIMIT ` + strconv.Itoa(opts.Limit)
	}

	rows, err := s.db().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Document{}
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, doc)
	}
	return out, rows.Err()
}

func (s MySQLStore) Get(ctx context.Context, collection, id string) (Document, error) {
	table, err := s.table(collection)
	if err != nil {
		return Document{}, err
	}

	row := s.db().QueryRowContext(ctx,
		`SELECT id, data, created_at, updated_at FROM `+table+` WHERE id = ? LIMIT 1`, id)
	doc, err := scanDocument(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Document{}, ErrNotFound
	}
	return doc, err
}

func (s MySQLStore) Create(ctx context.Context, collection string, fields map[string]any) (Document, error) {
	table, err := s.table(collection)
	if err != nil {
		return Document{}, err
	}

	data, err := json.Marshal(fields)
	if err != nil {
		return Document{}, err
	}

	id := newDocumentID()
	now := time.Now().UTC()
	if _, err := s.db().ExecContext(ctx,
		`INSERT INTO `+table+` (id, data, created_at, updated_at) VALUES (?, ?, ?, ?)`,
		id, data, now, now); err != nil {
		return Document{}, err
	}

	return Document{ID: id, Fields: fields, CreatedAt: now, UpdatedAt: now}, nil
}

func (s MySQLStore) Update(ctx context.Context, collection, id string, fields map[string]any) (Document, error) {
	table, err := s.table(collection)
	if err != nil {
		return Document{}, err
	}

	patch, err := json.Marshal(fields)
	if err != nil {
		return Document{}, err
	}

	if _, err := s.db().ExecContext(ctx,
		`UPDATE `+table+` SET data = JSON_MERGE_PATCH(data, ?), updated_at = ? WHERE id = ?`,
		patch, time.Now().UTC(), id); err != nil {
		return Document{}, err
	}

	return s.Get(ctx, collection, id)
}

func (s MySQLStore) Delete(ctx context.Context, collection, id string) error {
	table, err := s.table(collection)
	if err != nil {
		return err
	}

	res, err := s.db().ExecContext(ctx, `DELETE FROM `+table+` WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanDocument(r rowScanner) (Document, error) {
	var (
		doc     Document
		data    []byte
		created sql.NullTime
		updated sql.NullTime
	)
	if err := r.Scan(&doc.ID, &data, &created, &updated); err != nil {
		return Document{}, err
	}
	if len(data) > 0 {
		if err := json.Unmarshal(data, &doc.Fields); err != nil {
			return Document{}, fmt.Errorf("decode document %s: %w", doc.ID, err)
		}
	}
	if doc.Fields == nil {
		doc.Fields = map[string]any{}
	}
	if created.Valid {
		doc.CreatedAt = created.Time
	}
	if updated.Valid {
		doc.UpdatedAt = updated.Time
	}
	return doc, nil
}

func filterArg(v any) any {
	switch val := v.(type) {
	case string:
		return val
	case bool:
		// JSON_UNQUOTE renders booleans as literal true/false
		return strconv.FormatBool(val)
	default:
		return fmt.Sprint(val)
	}
}

func newDocumentID() string {
	buf := make([]byte, 12)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand never fails on supported platforms; fall back to time
		return strconv.FormatInt(time.Now().UnixNano(), 36)
	}
	return hex.EncodeToString(buf)
}
