package sqlite

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dtroode/counterparty-client/internal/model"
)

func newRepository(t *testing.T) *ContractorRepository {
	t.Helper()

	db, err := NewConnection(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	return NewContractorRepository(db)
}

func TestContractorRepository_CRUD(t *testing.T) {
	ctx := context.Background()
	repo := newRepository(t)
	now := time.UnixMilli(time.Now().UnixMilli())

	list, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)

	acme := model.Contractor{ID: "2", Name: "Acme", FullName: "Acme LLC", INN: "7700000000", KPP: "770001001", UpdatedAt: now}
	zeta := model.Contractor{ID: "1", Name: "Zeta", INN: "7800000000", UpdatedAt: now}
	require.NoError(t, repo.Upsert(ctx, zeta))
	require.NoError(t, repo.Upsert(ctx, acme))

	list, err = repo.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []model.Contractor{acme, zeta}, list)

	acme.Name = "Acme Renamed"
	require.NoError(t, repo.Upsert(ctx, acme))
	got, err := repo.GetByID(ctx, "2")
	require.NoError(t, err)
	assert.Equal(t, acme, got)

	require.NoError(t, repo.Delete(ctx, "2"))
	require.NoError(t, repo.Delete(ctx, "2"))
	_, err = repo.GetByID(ctx, "2")
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestContractorRepository_Apply(t *testing.T) {
	ctx := context.Background()
	repo := newRepository(t)
	now := time.UnixMilli(time.Now().UnixMilli())

	require.NoError(t, repo.Upsert(ctx, model.Contractor{ID: "1", Name: "Old", UpdatedAt: now}))
	require.NoError(t, repo.Upsert(ctx, model.Contractor{ID: "2", Name: "Gone", UpdatedAt: now}))

	err := repo.Apply(ctx, model.ContractorBatch{
		Upserts: []model.Contractor{
			{ID: "1", Name: "New", UpdatedAt: now},
			{ID: "3", Name: "Added", UpdatedAt: now},
		},
		Deletes: []model.ContractorID{"2"},
	})
	require.NoError(t, err)

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, model.ContractorID("3"), list[0].ID)
	assert.Equal(t, "New", list[1].Name)

	require.NoError(t, repo.Apply(ctx, model.ContractorBatch{}))
}

func TestContractorRepository_Apply_RollsBack(t *testing.T) {
	ctx := context.Background()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM contractors").WithArgs("2").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO contractors").
		WithArgs("1", "Acme", "", "", "", sqlmock.AnyArg()).
		WillReturnError(errors.New("disk I/O error"))
	mock.ExpectRollback()

	repo := NewContractorRepository(db)
	err = repo.Apply(ctx, model.ContractorBatch{
		Upserts: []model.Contractor{{ID: "1", Name: "Acme"}},
		Deletes: []model.ContractorID{"2"},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to upsert contractor 1")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestContractorRepository_Errors(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name  string
		setup func(sqlmock.Sqlmock)
		run   func(*ContractorRepository) error
	}{
		{
			name: "list query",
			setup: func(m sqlmock.Sqlmock) {
				m.ExpectQuery("SELECT id, name, full_name, inn, kpp, updated_at FROM contractors").
					WillReturnError(errors.New("no such table"))
			},
			run: func(r *ContractorRepository) error {
				_, err := r.List(ctx)
				return err
			},
		},
		{
			name: "list scan",
			setup: func(m sqlmock.Sqlmock) {
				rows := sqlmock.NewRows([]string{"id", "name", "full_name", "inn", "kpp", "updated_at"}).
					AddRow("1", "Acme", "", "", "", "not-a-number")
				m.ExpectQuery("SELECT (.+) FROM contractors").WillReturnRows(rows)
			},
			run: func(r *ContractorRepository) error {
				_, err := r.List(ctx)
				return err
			},
		},
		{
			name: "get by id",
			setup: func(m sqlmock.Sqlmock) {
				m.ExpectQuery("SELECT (.+) FROM contractors WHERE id = ?").WithArgs("1").
					WillReturnError(errors.New("locked"))
			},
			run: func(r *ContractorRepository) error {
				_, err := r.GetByID(ctx, "1")
				return err
			},
		},
		{
			name: "delete",
			setup: func(m sqlmock.Sqlmock) {
				m.ExpectExec("DELETE FROM contractors").WithArgs("1").WillReturnError(errors.New("locked"))
			},
			run: func(r *ContractorRepository) error {
				return r.Delete(ctx, "1")
			},
		},
		{
			name: "begin",
			setup: func(m sqlmock.Sqlmock) {
				m.ExpectBegin().WillReturnError(errors.New("busy"))
			},
			run: func(r *ContractorRepository) error {
				return r.Apply(ctx, model.ContractorBatch{Deletes: []model.ContractorID{"1"}})
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			tt.setup(mock)
			err = tt.run(NewContractorRepository(db))
			require.Error(t, err)
			assert.NotErrorIs(t, err, model.ErrNotFound)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}
