package main

import (
	"fmt"

	"github.com/UnknownOlympus/distancer/internal/api"
	"github.com/UnknownOlympus/distancer/internal/config"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
)

func newEvaluateCmd(build serviceBuilder) *cobra.Command {
	return &cobra.Command{
		Use:   "evaluate <address>",
		Short: "Print the distance from MKAD to a single address",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.MustLoad()

			svc, err := build(cfg, setupLogger(cfg.Env), prometheus.NewRegistry())
			if err != nil {
				return err
			}

			evaluation, err := svc.Evaluate(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), api.FormatEvaluation(evaluation))

			return err
		},
	}
}
