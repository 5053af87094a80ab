package cmd

import (
	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/buildplan/internal/plan"
	"github.com/felixgeelhaar/buildplan/internal/ux"
	"github.com/felixgeelhaar/buildplan/internal/validate"
)

func newValidateCommand() *cobra.Command {
	var planPath string

	validateCmd := &cobra.Command{
		Use:   "validate",
		Short: "Re-validate a saved build plan",
		Long: `Load a plan written by build-plan and run the validator on it again.
Structural problems (duplicate tasks, unknown prerequisites, cycles) fail the
load; reference and version problems are listed as issues.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return instrument(cmd, "validate", func() error {
				return runValidate(cmd, planPath)
			})
		},
	}

	validateCmd.Flags().StringVar(&planPath, "plan", "", "plan file (default build-plan.json)")
	return validateCmd
}

func runValidate(cmd *cobra.Command, planPath string) error {
	cc, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	formatter, err := ux.NewFormatter(cc.Format, &ux.FormatterOptions{
		Writer:  cmd.OutOrStdout(),
		NoColor: cc.NoColor,
	})
	if err != nil {
		return err
	}

	if planPath == "" {
		planPath = ux.NewPathDefaults().PlanFile()
	}
	p, err := plan.LoadPlan(planPath)
	if err != nil {
		return ux.EnhanceError(err)
	}

	issues := validate.Check(p)
	view := ux.ValidationView{Path: planPath, Valid: len(issues) == 0, Issues: issues}
	if view.Issues == nil {
		view.Issues = []validate.Issue{}
	}
	if err := formatter.Format(view); err != nil {
		return err
	}

	return validate.Validate(cmd.Context(), p)
}
