package flowstate_repo

import (
	"context"
	"errors"
	"fmt"

	"PayFlow/internal/store"
	"PayFlow/pkg/postgres"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
)

const flowStateTable = "flow_state"

// PgFlowStateRepo keeps one JSONB row per storage key.
type PgFlowStateRepo struct {
	db      postgres.Executor
	builder squirrel.StatementBuilderType
}

var _ store.Backend = (*PgFlowStateRepo)(nil)

func NewPgFlowStateRepo(pg *postgres.Postgres) *PgFlowStateRepo {
	return &PgFlowStateRepo{db: pg.Pool, builder: pg.Builder}
}

func (r *PgFlowStateRepo) Load(ctx context.Context, key string) ([]byte, error) {
	query, args, err := r.builder.
		Select("data").
		From(flowStateTable).
		Where(squirrel.Eq{"storage_key": key}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select flow state query: %w", err)
	}

	var data []byte
	if err := r.db.QueryRow(ctx, query, args...).Scan(&data); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, fmt.Errorf("select flow state: %w", err)
	}
	return data, nil
}

func (r *PgFlowStateRepo) Save(ctx context.Context, key string, data []byte) error {
	query, args, err := r.builder.
		Insert(flowStateTable).
		Columns("storage_key", "data", "updated_at").
		Values(key, data, squirrel.Expr("NOW()")).
		Suffix("ON CONFLICT (storage_key) DO UPDATE SET data = EXCLUDED.data, updated_at = EXCLUDED.updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build upsert flow state query: %w", err)
	}

	if _, err := r.db.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert flow state: %w", err)
	}
	return nil
}

func (r *PgFlowStateRepo) Delete(ctx context.Context, key string) error {
	query, args, err := r.builder.
		Delete(flowStateTable).
		Where(squirrel.Eq{"storage_key": key}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete flow state query: %w", err)
	}

	if _, err := r.db.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("delete flow state: %w", err)
	}
	return nil
}

func (r *PgFlowStateRepo) Ping(ctx context.Context) error {
	return r.db.Ping(ctx)
}
