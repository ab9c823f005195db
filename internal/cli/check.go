package cli

import (
	"github.com/spf13/cobra"
)

func newCheckCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Verify and install the required software",
		Long: `Verify that the JDK, Maven and GlassFish are available and install any that are missing.

On unix hosts the JDK and Maven are installed with apt-get and GlassFish is
downloaded and linked into the tool search path. On Windows the JDK and Maven
must be installed manually; GlassFish is downloaded and added to the search path.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := app.newSession(cmd)
			if err != nil {
				return err
			}
			return s.workflow.Check(s.ctx)
		},
	}
}
