package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tokobajukeren/pos-api/internal/api/handler/v1/request"
	"github.com/tokobajukeren/pos-api/internal/service"
)

func newUserCommand(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Manage cashier accounts",
	}

	var username, password string
	add := &cobra.Command{
		Use:   "add",
		Short: "Create a cashier account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := request.ValidatePassword(password); err != nil {
				return err
			}

			user, err := opts.env.auth.CreateUser(cmd.Context(), username, password)
			if err != nil {
				if errors.Is(err, service.ErrUsernameExists) {
					return fmt.Errorf("user %q already exists", username)
				}
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "created user %s (id %d)\n", user.Username, user.ID)
			return nil
		},
	}
	add.Flags().StringVarP(&username, "username", "u", "", "login name")
	add.Flags().StringVarP(&password, "password", "p", "", "password, at least 6 characters with a letter and a number")
	_ = add.MarkFlagRequired("username")
	_ = add.MarkFlagRequired("password")

	cmd.AddCommand(add)
	return cmd
}

func newBackupCommand(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "backup",
		Short: "Export or restore the JSON backup",
	}

	var out string
	export := &cobra.Command{
		Use:   "export",
		Short: "Write a backup of products, members and transactions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			data, err := opts.env.backups.ExportJSON(cmd.Context())
			if err != nil {
				return err
			}

			w, closeFn, err := output(out, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			if _, err = w.Write(append(data, '\n')); err != nil {
				_ = closeFn()
				return err
			}
			return closeFn()
		},
	}
	export.Flags().StringVarP(&out, "out", "o", "", "output file, stdout when empty")

	var yes bool
	restore := &cobra.Command{
		Use:   "restore FILE",
		Short: "Replace all products, members and transactions with a backup",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return errNotConfirmed
			}

			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}

			result, err := opts.env.backups.Restore(cmd.Context(), data)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "restored %d products, %d members and %d transactions\n",
				result.Products, result.Members, result.Transactions)
			return nil
		},
	}
	restore.Flags().BoolVar(&yes, "yes", false, "confirm that current data is replaced")

	cmd.AddCommand(export, restore)
	return cmd
}

func newResetCommand(opts *options) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Delete all products, members and transactions; accounts are kept",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !yes {
				return errNotConfirmed
			}

			if err := opts.env.backups.Reset(cmd.Context()); err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), "all store data deleted")
			return nil
		},
	}
	cmd.Flags().BoolVar(&yes, "yes", false, "confirm deletion")

	return cmd
}

func newReportCommand(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Sales reports",
	}

	var from, to, payment, member, period, out string
	export := &cobra.Command{
		Use:   "export",
		Short: "Write the filtered sales report as CSV",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			q, err := service.ParseReportQuery(from, to, payment, member, period, opts.env.loc)
			if err != nil {
				return err
			}

			data, err := opts.env.reports.ExportCSV(cmd.Context(), q)
			if err != nil {
				return err
			}

			w, closeFn, err := output(out, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			if _, err = w.Write(data); err != nil {
				_ = closeFn()
				return err
			}
			return closeFn()
		},
	}
	export.Flags().StringVar(&from, "from", "", "first day, YYYY-MM-DD")
	export.Flags().StringVar(&to, "to", "", "last day, YYYY-MM-DD")
	export.Flags().StringVar(&payment, "payment", "all", "all, cash or non-cash")
	export.Flags().StringVar(&member, "member", "all", "all, member or non-member")
	export.Flags().StringVar(&period, "period", "day", "day, month or year")
	export.Flags().StringVarP(&out, "out", "o", "", "output file, stdout when empty")

	cmd.AddCommand(export)
	return cmd
}
