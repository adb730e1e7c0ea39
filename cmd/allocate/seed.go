package main

import (
	"github.com/spf13/cobra"

	"github.com/dhananjay-901/Al-Based-Allocation-Engine/internal/cli"
	"github.com/dhananjay-901/Al-Based-Allocation-Engine/internal/seed"
)

func seedCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load the sample candidates and opportunities",
		Long: `Load five sample candidates and five sample opportunities. Nothing is
written when the store already holds candidates unless --force is set.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			force, _ := cmd.Flags().GetBool("force")

			ctx := cmd.Context()
			store, cleanup, err := openStore(ctx, a.cfg)
			if err != nil {
				return err
			}
			defer cleanup()

			out := cmd.OutOrStdout()
			if force {
				if err := seed.Load(ctx, store); err != nil {
					return err
				}
				writeOut(out, "%s\n", cli.FormatSuccess("Sample records loaded"))
				return nil
			}

			seeded, err := seed.IfEmpty(ctx, store)
			if err != nil {
				return err
			}
			if !seeded {
				writeOut(out, "%s\n", cli.FormatInfo("Store already has candidates. Use --force to load samples anyway."))
				return nil
			}
			writeOut(out, "%s\n", cli.FormatSuccess("Sample records loaded"))
			return nil
		},
	}

	cmd.Flags().BoolP("force", "f", false, "Load samples even when the store is not empty")

	return cmd
}
