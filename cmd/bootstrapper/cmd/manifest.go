package cmd

import (
	"github.com/spf13/cobra"

	"github.com/oshokin/bootstrapper/internal/config"
	"github.com/oshokin/bootstrapper/internal/service/packager"
)

// newManifestCommand prints or saves the effective manifest.
func (c *cli) newManifestCommand() *cobra.Command {
	var (
		format string
		output string
		pin    bool
	)

	cmd := &cobra.Command{
		Use:   "manifest",
		Short: "Print the effective manifest",
		Long: `Prints the manifest the other verbs would use, so that it can be saved as
bootstrap.yaml and edited. With --output the manifest is written to a file
whose extension selects the format. With --pin the checksums are recomputed
from the artifacts in the working directory.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true

			manifest, err := c.prepare(cmd)
			if err != nil {
				return err
			}

			if pin {
				manifest, err = packager.Run(cmd.Context(), &packager.Options{
					Dir:      c.settings.Dir,
					Manifest: manifest,
				})
				if err != nil {
					return err
				}
			}

			if output != "" {
				return config.SaveManifest(output, manifest)
			}

			data, err := manifest.Marshal(format)
			if err != nil {
				return err
			}

			_, err = cmd.OutOrStdout().Write(data)

			return err
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "yaml", "output format: yaml or toml")
	cmd.Flags().BoolVar(&pin, "pin", false, "replace checksums with digests of the local artifacts")
	cmd.Flags().StringVarP(&output, "output", "o", "", "write the manifest to this file instead of stdout")

	return cmd
}
