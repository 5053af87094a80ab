package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/buildplan/internal/fileformat"
	"github.com/felixgeelhaar/buildplan/internal/log"
	"github.com/felixgeelhaar/buildplan/internal/tui"
)

func newInitCommand() *cobra.Command {
	var (
		outPath  string
		defaults bool
		force    bool
	)

	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Create a build settings file",
		Long: `Ask for the plugins, application identity and SDK levels of a project
and write them as a key/value build settings file. With --defaults no
questions are asked.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return instrument(cmd, "init", func() error {
				if _, err := os.Stat(outPath); err == nil && !force {
					return fmt.Errorf("%s already exists (use --force to overwrite)", outPath)
				}

				answers := tui.DefaultInitAnswers()
				if !defaults {
					if err := tui.RunInit(answers); err != nil {
						return err
					}
				}

				if err := fileformat.Write(outPath, answers.Properties()); err != nil {
					return err
				}
				log.FromContext(cmd.Context()).Info("settings written", "path", outPath)
				fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", outPath)
				return nil
			})
		},
	}

	initCmd.Flags().StringVarP(&outPath, "out", "o", "build-plan.properties", "settings file to write")
	initCmd.Flags().BoolVar(&defaults, "defaults", false, "write default settings without asking")
	initCmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")
	return initCmd
}
