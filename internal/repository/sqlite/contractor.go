package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dtroode/counterparty-client/internal/model"
)

var _ model.ContractorStore = (*ContractorRepository)(nil)

// execer is satisfied by *sql.DB and *sql.Tx.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

type ContractorRepository struct {
	db *sql.DB
}

func NewContractorRepository(db *sql.DB) *ContractorRepository {
	return &ContractorRepository{db: db}
}

const (
	selectContractors = `SELECT id, name, full_name, inn, kpp, updated_at FROM contractors`

	upsertContractor = `
		INSERT INTO contractors (id, name, full_name, inn, kpp, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			name = excluded.name,
			full_name = excluded.full_name,
			inn = excluded.inn,
			kpp = excluded.kpp,
			updated_at = excluded.updated_at`

	deleteContractor = `DELETE FROM contractors WHERE id = ?`
)

func (r *ContractorRepository) List(ctx context.Context) ([]model.Contractor, error) {
	rows, err := r.db.QueryContext(ctx, selectContractors+` ORDER BY name, id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query contractors: %w", err)
	}
	defer rows.Close()

	contractors := make([]model.Contractor, 0)
	for rows.Next() {
		c, err := scanContractor(rows)
		if err != nil {
			return nil, err
		}
		contractors = append(contractors, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate contractors: %w", err)
	}

	return contractors, nil
}

func (r *ContractorRepository) GetByID(ctx context.Context, id model.ContractorID) (model.Contractor, error) {
	row := r.db.QueryRowContext(ctx, selectContractors+` WHERE id = ?`, string(id))

	c, err := scanContractor(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Contractor{}, model.ErrNotFound
		}
		return model.Contractor{}, err
	}
	return c, nil
}

func (r *ContractorRepository) Upsert(ctx context.Context, contractor model.Contractor) error {
	return upsert(ctx, r.db, contractor)
}

// Delete removes the contractor. Deleting an unknown id succeeds.
func (r *ContractorRepository) Delete(ctx context.Context, id model.ContractorID) error {
	if _, err := r.db.ExecContext(ctx, deleteContractor, string(id)); err != nil {
		return fmt.Errorf("failed to delete contractor: %w", err)
	}
	return nil
}

// Apply writes all upserts and deletes in one transaction.
func (r *ContractorRepository) Apply(ctx context.Context, batch model.ContractorBatch) error {
	if batch.IsEmpty() {
		return nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, id := range batch.Deletes {
		if _, err := tx.ExecContext(ctx, deleteContractor, string(id)); err != nil {
			return fmt.Errorf("failed to delete contractor %s: %w", id, err)
		}
	}
	for _, c := range batch.Upserts {
		if err := upsert(ctx, tx, c); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func upsert(ctx context.Context, db execer, c model.Contractor) error {
	updatedAt := c.UpdatedAt
	if updatedAt.IsZero() {
		updatedAt = time.Now()
	}

	_, err := db.ExecContext(ctx, upsertContractor,
		string(c.ID), c.Name, c.FullName, c.INN, c.KPP, updatedAt.UnixMilli())
	if err != nil {
		return fmt.Errorf("failed to upsert contractor %s: %w", c.ID, err)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanContractor(s scanner) (model.Contractor, error) {
	var (
		c         model.Contractor
		id        string
		updatedAt int64
	)
	if err := s.Scan(&id, &c.Name, &c.FullName, &c.INN, &c.KPP, &updatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Contractor{}, err
		}
		return model.Contractor{}, fmt.Errorf("failed to scan contractor: %w", err)
	}
	c.ID = model.ContractorID(id)
	c.UpdatedAt = time.UnixMilli(updatedAt)
	return c, nil
}
