package service

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/dtroode/counterparty-client/internal/logger"
	"github.com/dtroode/counterparty-client/internal/metrics"
	"github.com/dtroode/counterparty-client/internal/model"
)

// Reconciler keeps the local contractor store in step with the remote API.
type Reconciler struct {
	api     model.ContractorAPI
	store   model.ContractorStore
	logger  *logger.Logger
	metrics *metrics.Metrics
	now     func() time.Time
}

func NewReconciler(api model.ContractorAPI, store model.ContractorStore, logger *logger.Logger, m *metrics.Metrics) *Reconciler {
	return &Reconciler{
		api:     api,
		store:   store,
		logger:  logger,
		metrics: m,
		now:     time.Now,
	}
}

// FetchRemote always returns a usable list. When the remote list could not be
// fetched or persisted, the local copy is returned together with the cause.
// An unreadable local store yields an empty list.
func (r *Reconciler) FetchRemote(ctx context.Context) ([]model.Contractor, error) {
	remote, err := r.api.ListContractors(ctx)
	if err == nil {
		err = r.SaveLocally(ctx, remote)
		if err == nil {
			return r.stamp(dedupe(remote)), nil
		}
	}

	r.logger.Warn("Reconciler: remote fetch failed, using local copy", "error", err.Error())
	r.metrics.LocalFallback()

	local, localErr := r.LoadLocal(ctx)
	if localErr != nil {
		r.logger.Error("Reconciler: failed to load local copy", "error", localErr.Error())
		return []model.Contractor{}, err
	}
	return local, err
}

// SaveLocally replaces the local store contents with list in one transaction.
func (r *Reconciler) SaveLocally(ctx context.Context, list []model.Contractor) error {
	existing, err := r.store.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to list local contractors: %w", err)
	}

	upserts := r.stamp(dedupe(list))
	incoming := make(map[model.ContractorID]struct{}, len(upserts))
	for _, c := range upserts {
		incoming[c.ID] = struct{}{}
	}

	var deletes []model.ContractorID
	for _, c := range existing {
		if _, ok := incoming[c.ID]; !ok {
			deletes = append(deletes, c.ID)
		}
	}

	if err := r.store.Apply(ctx, model.ContractorBatch{Upserts: upserts, Deletes: deletes}); err != nil {
		return fmt.Errorf("failed to save contractors locally: %w", err)
	}

	r.logger.Debug("Reconciler: local copy updated",
		"upserts", len(upserts),
		"deletes", len(deletes))
	return nil
}

// Create adds the contractor remotely and stores the result locally.
func (r *Reconciler) Create(ctx context.Context, req model.CreateContractorRequest) (model.Contractor, error) {
	result, err := r.api.CreateContractor(ctx, req)
	if err != nil {
		return model.Contractor{}, err
	}
	if err := accepted(result); err != nil {
		return model.Contractor{}, err
	}

	id := model.ContractorID(uuid.NewString())
	if len(result.IDs) > 0 {
		id = result.IDs[0]
	}

	return r.saveOne(ctx, model.Contractor{
		ID:       id,
		Name:     req.Name,
		FullName: req.FullName,
		INN:      req.INN,
		KPP:      req.KPP,
	})
}

// Update edits the contractor remotely and stores the result locally under
// id. Ids returned by the server only confirm the edit.
func (r *Reconciler) Update(ctx context.Context, id model.ContractorID, req model.UpdateContractorRequest) (model.Contractor, error) {
	req.ID = id

	result, err := r.api.UpdateContractor(ctx, req)
	if err != nil {
		return model.Contractor{}, err
	}
	if err := accepted(result); err != nil {
		return model.Contractor{}, err
	}

	if len(result.IDs) > 0 && !slices.Contains(result.IDs, id) {
		r.logger.Warn("Reconciler: update confirmed with different ids",
			"id", id.String(),
			"returned", len(result.IDs))
	}

	return r.saveOne(ctx, model.Contractor{
		ID:       id,
		Name:     req.Name,
		FullName: req.FullName,
		INN:      req.INN,
		KPP:      req.KPP,
	})
}

// Delete removes the contractor from the local store only. The remote API has
// no delete endpoint.
func (r *Reconciler) Delete(ctx context.Context, id model.ContractorID) error {
	if err := r.store.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete local contractor: %w", err)
	}
	return nil
}

// LoadLocal returns the local contractors ordered by name.
func (r *Reconciler) LoadLocal(ctx context.Context) ([]model.Contractor, error) {
	list, err := r.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load local contractors: %w", err)
	}
	return list, nil
}

func (r *Reconciler) saveOne(ctx context.Context, c model.Contractor) (model.Contractor, error) {
	c.UpdatedAt = r.now()
	if err := r.store.Upsert(ctx, c); err != nil {
		r.logger.Error("Reconciler: failed to store contractor",
			"id", c.ID.String(),
			"error", err.Error())
		return c, fmt.Errorf("failed to save contractor locally: %w", err)
	}
	return c, nil
}

func (r *Reconciler) stamp(list []model.Contractor) []model.Contractor {
	now := r.now()
	for i := range list {
		list[i].UpdatedAt = now
	}
	return list
}

func accepted(result model.MutationResult) error {
	if len(result.IDs) > 0 || result.Accepted {
		return nil
	}
	if result.Message != "" {
		return fmt.Errorf("%w: %s", model.ErrRejected, result.Message)
	}
	return model.ErrRejected
}

// dedupe drops records without an id and keeps the last occurrence of each
// id at the position of its first one.
func dedupe(list []model.Contractor) []model.Contractor {
	out := make([]model.Contractor, 0, len(list))
	index := make(map[model.ContractorID]int, len(list))
	for _, c := range list {
		if c.ID == "" {
			continue
		}
		if i, ok := index[c.ID]; ok {
			out[i] = c
			continue
		}
		index[c.ID] = len(out)
		out = append(out, c)
	}
	return out
}

