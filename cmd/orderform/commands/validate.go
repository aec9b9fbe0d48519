package commands

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/goliatone/go-orderform/pkg/order"
	"github.com/goliatone/go-orderform/pkg/schema"
)

// ErrInvalidOrder is returned by validate when the draft has errors. The
// report has already been printed.
var ErrInvalidOrder = errors.New("order draft is invalid")

type validationReport struct {
	Valid  bool          `json:"valid"`
	Errors schema.Errors `json:"errors"`
}

func validateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "validate [file|-]",
		Short: "Validate an order draft (JSON) and print the field errors",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in := cmd.InOrStdin()
			if len(args) == 1 && args[0] != "-" {
				f, err := os.Open(args[0])
				if err != nil {
					return fmt.Errorf("open draft: %w", err)
				}
				defer func() { _ = f.Close() }()
				in = f
			}

			draft, err := decodeDraft(in)
			if err != nil {
				return err
			}
			s, err := a.contract(cmd.Context())
			if err != nil {
				return err
			}

			result := s.Validate(draft)
			report := validationReport{Valid: result.Valid, Errors: result.Errors()}
			if report.Errors == nil {
				report.Errors = schema.Errors{}
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			if err := enc.Encode(report); err != nil {
				return err
			}
			if !result.Valid {
				a.log().Debug("draft invalid", zap.Strings("fields", report.Errors.Fields()))
				return ErrInvalidOrder
			}
			return nil
		},
	}
}

func decodeDraft(r io.Reader) (order.Draft, error) {
	draft := order.Empty()
	if err := json.NewDecoder(r).Decode(&draft); err != nil {
		return order.Draft{}, fmt.Errorf("decode draft: %w", err)
	}
	return draft, nil
}
