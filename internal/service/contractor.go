package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dtroode/counterparty-client/internal/logger"
	"github.com/dtroode/counterparty-client/internal/model"
)

// CreateContractorParams is user input for a new contractor.
type CreateContractorParams struct {
	Name     string
	FullName string
	INN      string
	KPP      string
}

// UpdateContractorParams is user input for an edit.
type UpdateContractorParams struct {
	Name     string
	FullName string
	INN      string
	KPP      string
}

type Contractors struct {
	reconciler *Reconciler
	session    *Session
	logger     *logger.Logger
}

func NewContractors(reconciler *Reconciler, session *Session, logger *logger.Logger) *Contractors {
	return &Contractors{
		reconciler: reconciler,
		session:    session,
		logger:     logger,
	}
}

// Fetch returns the remote list, or the local copy with the cause of the
// fallback.
func (c *Contractors) Fetch(ctx context.Context) ([]model.Contractor, error) {
	list, err := c.reconciler.FetchRemote(ctx)
	return list, c.handle(ctx, err)
}

func (c *Contractors) Create(ctx context.Context, params CreateContractorParams) (model.Contractor, error) {
	name, inn, err := validate(params.Name, params.INN)
	if err != nil {
		return model.Contractor{}, err
	}

	contractor, err := c.reconciler.Create(ctx, model.CreateContractorRequest{
		Name:     name,
		FullName: strings.TrimSpace(params.FullName),
		INN:      inn,
		KPP:      strings.TrimSpace(params.KPP),
	})
	if err != nil {
		return contractor, c.handle(ctx, err)
	}

	c.logger.Info("Contractor service: contractor created", "id", contractor.ID.String())
	return contractor, nil
}

// Update requires a server-assigned id.
func (c *Contractors) Update(ctx context.Context, id model.ContractorID, params UpdateContractorParams) (model.Contractor, error) {
	if !id.IsServerAssigned() {
		return model.Contractor{}, fmt.Errorf("%w: %q", model.ErrInvalidContractorID, id.String())
	}
	name, inn, err := validate(params.Name, params.INN)
	if err != nil {
		return model.Contractor{}, err
	}

	contractor, err := c.reconciler.Update(ctx, id, model.UpdateContractorRequest{
		Name:     name,
		FullName: strings.TrimSpace(params.FullName),
		INN:      inn,
		KPP:      strings.TrimSpace(params.KPP),
	})
	if err != nil {
		return contractor, c.handle(ctx, err)
	}

	c.logger.Info("Contractor service: contractor updated", "id", contractor.ID.String())
	return contractor, nil
}

func (c *Contractors) Delete(ctx context.Context, id model.ContractorID) error {
	if id == "" {
		return fmt.Errorf("%w: id is required", model.ErrValidation)
	}
	return c.reconciler.Delete(ctx, id)
}

func (c *Contractors) LoadLocal(ctx context.Context) ([]model.Contractor, error) {
	return c.reconciler.LoadLocal(ctx)
}

// handle ends the session when the server rejected the credential.
func (c *Contractors) handle(ctx context.Context, err error) error {
	if err == nil || !errors.Is(err, model.ErrUnauthorized) {
		return err
	}

	c.logger.Info("Contractor service: credential rejected, logging out")
	if logoutErr := c.session.ForceLogout(ctx, model.LogoutUnauthorized); logoutErr != nil {
		return errors.Join(err, logoutErr)
	}
	return err
}

func validate(name, inn string) (string, string, error) {
	name = strings.TrimSpace(name)
	inn = strings.TrimSpace(inn)

	var errs []error
	if name == "" {
		errs = append(errs, fmt.Errorf("%w: name is required", model.ErrValidation))
	}
	if inn == "" {
		errs = append(errs, fmt.Errorf("%w: inn is required", model.ErrValidation))
	}
	return name, inn, errors.Join(errs...)
}
