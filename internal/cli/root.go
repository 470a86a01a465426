// Package cli implements the counterparty command line.
package cli

import (
	"context"
	"errors"
	"fmt"
	"net"

	"github.com/spf13/cobra"

	"github.com/dtroode/counterparty-client/internal/model"
	"github.com/dtroode/counterparty-client/internal/service"
)

// AuthService is the session surface the commands use.
type AuthService interface {
	Login(ctx context.Context, username, password string) error
	Logout(ctx context.Context) error
	IsAuthenticated(ctx context.Context) bool
}

// ContractorService is the contractor surface the commands use.
type ContractorService interface {
	Fetch(ctx context.Context) ([]model.Contractor, error)
	Create(ctx context.Context, params service.CreateContractorParams) (model.Contractor, error)
	Update(ctx context.Context, id model.ContractorID, params service.UpdateContractorParams) (model.Contractor, error)
	Delete(ctx context.Context, id model.ContractorID) error
	LoadLocal(ctx context.Context) ([]model.Contractor, error)
}

// Deps are the services behind the commands.
type Deps struct {
	Auth        AuthService
	Contractors ContractorService
}

// NewRootCmd creates the counterparty root command.
func NewRootCmd(deps Deps, version string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "counterparty",
		Short: "Manage contractors of the truck API from the terminal",
		Long: `counterparty signs in to the truck API, keeps the session fresh and
mirrors the contractor list into a local cache that is used when the API
cannot be reached.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(newLoginCmd(deps.Auth))
	rootCmd.AddCommand(newLogoutCmd(deps.Auth))
	rootCmd.AddCommand(newStatusCmd(deps.Auth))
	rootCmd.AddCommand(newContractorsCmd(deps.Contractors))

	return rootCmd
}

// Message renders err for the user.
func Message(err error) string {
	var httpErr *model.HTTPError
	var netErr net.Error

	switch {
	case err == nil:
		return ""
	case errors.Is(err, context.Canceled):
		return "interrupted"
	case errors.Is(err, model.ErrUnauthorized):
		return "session expired, please log in again"
	case errors.Is(err, model.ErrAccessDenied):
		return "access denied"
	case errors.Is(err, model.ErrValidation),
		errors.Is(err, model.ErrInvalidContractorID),
		errors.Is(err, model.ErrRejected):
		return err.Error()
	case errors.Is(err, model.ErrNetwork), errors.As(err, &netErr), errors.Is(err, context.DeadlineExceeded):
		return "cannot reach the server, please try again later"
	case errors.Is(err, model.ErrDecoding):
		return "unexpected response from the server"
	case errors.As(err, &httpErr):
		return fmt.Sprintf("server error (status %d)", httpErr.StatusCode)
	default:
		return err.Error()
	}
}
