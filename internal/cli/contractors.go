package cli

import (
	"errors"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/dtroode/counterparty-client/internal/model"
	"github.com/dtroode/counterparty-client/internal/service"
)

// newContractorsCmd creates the contractors command group.
func newContractorsCmd(contractors ContractorService) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "contractors",
		Aliases: []string{"contractor", "c"},
		Short:   "Manage contractors",
		Long: `Manage contractors. Listing refreshes the local cache from the API and
falls back to the cache when the API is unavailable. Deleting only removes
the cached record; the API has no delete operation.`,
	}

	cmd.AddCommand(newContractorsListCmd(contractors))
	cmd.AddCommand(newContractorsCreateCmd(contractors))
	cmd.AddCommand(newContractorsUpdateCmd(contractors))
	cmd.AddCommand(newContractorsDeleteCmd(contractors))

	return cmd
}

func newContractorsListCmd(contractors ContractorService) *cobra.Command {
	var local bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List contractors",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if local {
				list, err := contractors.LoadLocal(cmd.Context())
				if err != nil {
					return err
				}
				return printContractors(cmd.OutOrStdout(), list)
			}

			list, err := contractors.Fetch(cmd.Context())
			if errors.Is(err, model.ErrUnauthorized) {
				return err
			}
			if err != nil {
				cmd.PrintErrf("Showing cached contractors: %s\n", Message(err))
			}
			return printContractors(cmd.OutOrStdout(), list)
		},
	}

	cmd.Flags().BoolVar(&local, "local", false, "Read the local cache without contacting the API")

	return cmd
}

type contractorFlags struct {
	name     string
	fullName string
	inn      string
	kpp      string
}

func (f *contractorFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.name, "name", "", "Short name")
	cmd.Flags().StringVar(&f.fullName, "full-name", "", "Full legal name")
	cmd.Flags().StringVar(&f.inn, "inn", "", "Taxpayer number (INN)")
	cmd.Flags().StringVar(&f.kpp, "kpp", "", "Registration reason code (KPP)")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("inn")
}

func newContractorsCreateCmd(contractors ContractorService) *cobra.Command {
	var flags contractorFlags

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a contractor",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := contractors.Create(cmd.Context(), service.CreateContractorParams{
				Name:     flags.name,
				FullName: flags.fullName,
				INN:      flags.inn,
				KPP:      flags.kpp,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created contractor %s\n", c.ID)
			return nil
		},
	}
	flags.register(cmd)

	return cmd
}

func newContractorsUpdateCmd(contractors ContractorService) *cobra.Command {
	var flags contractorFlags

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update a contractor",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := contractors.Update(cmd.Context(), model.ContractorID(args[0]), service.UpdateContractorParams{
				Name:     flags.name,
				FullName: flags.fullName,
				INN:      flags.inn,
				KPP:      flags.kpp,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated contractor %s\n", c.ID)
			return nil
		},
	}
	flags.register(cmd)

	return cmd
}

func newContractorsDeleteCmd(contractors ContractorService) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Remove a contractor from the local cache",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := contractors.Delete(cmd.Context(), model.ContractorID(args[0])); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted contractor %s\n", args[0])
			return nil
		},
	}
}

func printContractors(w io.Writer, list []model.Contractor) error {
	if len(list) == 0 {
		_, err := fmt.Fprintln(w, "No contractors")
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tINN\tKPP\tFULL NAME")
	for _, c := range list {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", c.ID, c.Name, c.INN, dash(c.KPP), dash(c.FullName))
	}
	return tw.Flush()
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
