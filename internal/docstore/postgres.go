package docstore

import (
	"context"
	"database/sql"
	"errors"

	"skill-match/internal/database"

	"github.com/jackc/pgx/v5"
)

// Postgres stores documents as JSONB rows of the documents table.
type Postgres struct {
	db database.Querier
}

func NewPostgres(db database.Querier) *Postgres {
	return &Postgres{db: db}
}

func (p *Postgres) Get(ctx context.Context, collection, id string) ([]byte, bool, error) {
	if err := validateKey(collection, id); err != nil {
		return nil, false, err
	}

	var data string
	row := p.db.QueryRow(ctx,
		`SELECT data::text FROM documents WHERE collection = $1 AND id = $2`,
		collection, id,
	)
	if err := row.Scan(&data); err != nil {
		if errors.Is(err, pgx.ErrNoRows) || errors.Is(err, sql.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return []byte(data), true, nil
}

func (p *Postgres) Set(ctx context.Context, collection, id string, value any) error {
	if err := validateKey(collection, id); err != nil {
		return err
	}
	b, err := encode(value)
	if err != nil {
		return err
	}

	_, err = p.db.Exec(ctx,
		`INSERT INTO documents (collection, id, data, updated_at)
		 VALUES ($1, $2, $3::jsonb, now())
		 ON CONFLICT (collection, id) DO UPDATE SET data = EXCLUDED.data, updated_at = now()`,
		collection, id, string(b),
	)
	return err
}

func (p *Postgres) List(ctx context.Context, collection string) ([]Document, error) {
	if err := validateCollection(collection); err != nil {
		return nil, err
	}

	rows, err := p.db.Query(ctx,
		`SELECT id, data::text FROM documents WHERE collection = $1 ORDER BY id COLLATE "C" ASC`,
		collection,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Document, 0)
	for rows.Next() {
		var id, data string
		if err := rows.Scan(&id, &data); err != nil {
			return nil, err
		}
		out = append(out, Document{ID: id, Data: []byte(data)})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
