package cmd

import (
	"github.com/spf13/cobra"

	domain "github.com/oshokin/bootstrapper/internal/domain/bootstrap"
)

// verbSpec describes the subcommand generated for a verb.
type verbSpec struct {
	verb  domain.Verb
	short string
	long  string
}

// verbCommands lists the verbs run by the bootstrapper. Help is provided by cobra.
func verbCommands() []verbSpec {
	return []verbSpec{
		{
			verb:  domain.VerbFetch,
			short: "Download missing artifacts and verify all checksums",
			long: `Downloads every artifact that is not in the working directory yet, then
verifies the checksum of every artifact. All mismatches are reported before
the command fails.`,
		},
		{
			verb:  domain.VerbBuild,
			short: "Run the build steps in order, stopping at the first failure",
			long: `Runs every build step through a POSIX shell in the working directory.
The output of each step goes to <label>.log; logs of a previous run are
removed first. The first failing step stops the build.`,
		},
		{
			verb:  domain.VerbClean,
			short: "Delete downloaded artifacts",
		},
		{
			verb:  domain.VerbAll,
			short: "Fetch, then build",
		},
	}
}

// newVerbCommand wraps a bootstrapper verb into a cobra command.
func (c *cli) newVerbCommand(entry verbSpec) *cobra.Command {
	return &cobra.Command{
		Use:   entry.verb.String(),
		Short: entry.short,
		Long:  entry.long,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			// Failures past this point are not usage errors.
			cmd.SilenceUsage = true

			b, err := c.newBootstrapper(cmd)
			if err != nil {
				return err
			}

			return b.Run(cmd.Context(), entry.verb)
		},
	}
}
