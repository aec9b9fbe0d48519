package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-orderform/pkg/form"
	"github.com/goliatone/go-orderform/pkg/renderers/tui"
)

func orderCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "order",
		Short: "Fill in and submit a pizza order interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.contract(cmd.Context())
			if err != nil {
				return err
			}
			catalog, err := a.catalog()
			if err != nil {
				return err
			}

			driver := a.driver
			if driver == nil {
				driver = tui.NewSurveyDriver(cmd.OutOrStdout())
			}
			f := form.New(s, a.submitter(), form.WithLogger(a.log().Named("form")))
			session, err := tui.NewSession(f,
				tui.WithPromptDriver(driver),
				tui.WithCatalog(catalog),
				tui.WithLogger(a.log()),
			)
			if err != nil {
				return err
			}

			err = session.Run(cmd.Context())
			if errors.Is(err, tui.ErrAborted) {
				fmt.Fprintln(cmd.ErrOrStderr(), "order cancelled")
				return nil
			}
			return err
		},
	}
	cmd.Flags().String("endpoint", "", "order API base URL (default from order.endpoint)")
	cmd.Flags().Duration("timeout", 0, "order API timeout, 0 for none")
	cmd.Flags().String("catalog", "", "catalog YAML replacing the built-in labels")
	return cmd
}
