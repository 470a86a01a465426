package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/dtroode/counterparty-client/internal/model"
)

var _ model.ContractorStore = (*ContractorRepository)(nil)

type ContractorRepository struct {
	db *Connection
}

func NewContractorRepository(db *Connection) *ContractorRepository {
	return &ContractorRepository{
		db: db,
	}
}

const (
	selectContractors = `SELECT id, name, full_name, inn, kpp, updated_at FROM contractors`

	upsertContractor = `
		INSERT INTO contractors (id, name, full_name, inn, kpp, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			full_name = EXCLUDED.full_name,
			inn = EXCLUDED.inn,
			kpp = EXCLUDED.kpp,
			updated_at = EXCLUDED.updated_at`

	deleteContractor = `DELETE FROM contractors WHERE id = $1`
)

func (r *ContractorRepository) List(ctx context.Context) ([]model.Contractor, error) {
	rows, err := r.db.Query(ctx, selectContractors+` ORDER BY name, id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query contractors: %w", err)
	}

	contractors, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (model.Contractor, error) {
		return scanContractor(row)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to collect contractors: %w", err)
	}
	if contractors == nil {
		contractors = []model.Contractor{}
	}

	return contractors, nil
}

func (r *ContractorRepository) GetByID(ctx context.Context, id model.ContractorID) (model.Contractor, error) {
	c, err := scanContractor(r.db.QueryRow(ctx, selectContractors+` WHERE id = $1`, string(id)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Contractor{}, model.ErrNotFound
		}
		return model.Contractor{}, err
	}
	return c, nil
}

func (r *ContractorRepository) Upsert(ctx context.Context, contractor model.Contractor) error {
	if _, err := r.db.Exec(ctx, upsertContractor, upsertArgs(contractor)...); err != nil {
		return fmt.Errorf("failed to upsert contractor %s: %w", contractor.ID, err)
	}
	return nil
}

func (r *ContractorRepository) Delete(ctx context.Context, id model.ContractorID) error {
	if _, err := r.db.Exec(ctx, deleteContractor, string(id)); err != nil {
		return fmt.Errorf("failed to delete contractor: %w", err)
	}
	return nil
}

// Apply sends the whole batch in one round trip inside a transaction.
func (r *ContractorRepository) Apply(ctx context.Context, batch model.ContractorBatch) error {
	if batch.IsEmpty() {
		return nil
	}

	return pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		b := &pgx.Batch{}
		for _, id := range batch.Deletes {
			b.Queue(deleteContractor, string(id))
		}
		for _, c := range batch.Upserts {
			b.Queue(upsertContractor, upsertArgs(c)...)
		}

		br := tx.SendBatch(ctx, b)
		for i := 0; i < b.Len(); i++ {
			if _, err := br.Exec(); err != nil {
				_ = br.Close()
				return fmt.Errorf("failed to apply contractor batch: %w", err)
			}
		}
		return br.Close()
	})
}

func upsertArgs(c model.Contractor) []any {
	updatedAt := c.UpdatedAt
	if updatedAt.IsZero() {
		updatedAt = time.Now()
	}
	return []any{string(c.ID), c.Name, c.FullName, c.INN, c.KPP, updatedAt}
}

func scanContractor(row pgx.Row) (model.Contractor, error) {
	var (
		c  model.Contractor
		id string
	)
	if err := row.Scan(&id, &c.Name, &c.FullName, &c.INN, &c.KPP, &c.UpdatedAt); err != nil {
		return model.Contractor{}, err
	}
	c.ID = model.ContractorID(id)
	return c, nil
}
