package cli

import (
	"strconv"

	"github.com/spf13/cobra"

	"go.eggybyte.com/jerseykit/internal/workflow"
)

func newRunCmd(app *App) *cobra.Command {
	var (
		skipInstall string
		projectName string
		basePackage string
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Install prerequisites, generate a Spring + Jersey project and deploy it",
		Long: `Create and deploy a Spring + Jersey web project.

This command:
  • Installs missing prerequisites (skipped with --skipInstall)
  • Asks for the project name and base package unless given as flags
  • Generates the project with the Maven quickstart archetype
  • Adds Spring and Jersey configuration, an example controller and web.xml
  • Deploys the project to the GlassFish domain

Any --skipInstall value skips the install phase except false, 0 or f.`,
		Example: `  jerseykit run
  jerseykit run -s true
  jerseykit run --project-name demo --package com.example`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := app.newSession(cmd)
			if err != nil {
				return err
			}

			opts := workflow.RunOptions{
				SkipInstall: skipRequested(skipInstall, cmd.Flags().Changed("skipInstall")),
				ProjectName: projectName,
				BasePackage: basePackage,
			}
			s.logger.Debug("run options", "skip_install", opts.SkipInstall)
			return s.workflow.Run(s.ctx, opts)
		},
	}

	cmd.Flags().StringVarP(&skipInstall, "skipInstall", "s", "", `Skip the install/check phase (any value except "false")`)
	cmd.Flags().StringVar(&projectName, "project-name", "", "Project name (prompted for when omitted)")
	cmd.Flags().StringVar(&basePackage, "package", "", "Base Java package (prompted for when omitted)")

	return cmd
}

// skipRequested reports whether the install phase should be skipped.
// A given value skips unless it parses as boolean false.
func skipRequested(value string, given bool) bool {
	if !given {
		return false
	}
	b, err := strconv.ParseBool(value)
	return err != nil || b
}
