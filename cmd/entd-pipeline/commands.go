package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/theoremus-urban-solutions/entd-longdistance/entd"
)

func newValidateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Check that every ENTD source file exists and is not empty",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			done := a.metrics.StartStage("validate")
			inputs, err := entd.Validate(a.cfg.DataPath)
			done()
			if err != nil {
				return classify(err)
			}
			for _, in := range inputs {
				a.logger.Info("source file", zap.String("file", in.Name), zap.Int64("bytes", in.Size))
			}
			return nil
		},
	}
}

func newCleanCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "clean",
		Short: "Clean the long-distance survey and write households, persons and trips",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := a.clean(cmd.Context())
			return err
		},
	}
}

func newJTABCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "jtab",
		Short: "Prepare the demand-model inputs from the synthetic population",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.jtab(cmd.Context())
		},
	}
}

func newRunCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Run clean then jtab",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if _, err := a.clean(cmd.Context()); err != nil {
				return err
			}
			return a.jtab(cmd.Context())
		},
	}
}
