package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/montecarlokit/mcl/src/app"
)

func main() {
	var cfg app.Config

	root := &cobra.Command{
		Use:          "localizer",
		Short:        "Monte Carlo localization demo on an occupancy grid",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(
				cmd.Context(), syscall.SIGINT, syscall.SIGTERM,
			)
			defer stop()

			e := &app.Entrypoint{Cfg: cfg}
			if err := e.Init(ctx); err != nil {
				return err
			}
			defer e.Close()

			return e.Run(ctx)
		},
	}

	flags := root.Flags()
	flags.StringVar(&cfg.MapPath, "map", "",
		"path to a PGM occupancy map (default: built-in arena)")
	flags.Float64Var(&cfg.MapResolution, "resolution", 0.25,
		"metric side length of a map cell")
	flags.IntVar(&cfg.Particles, "particles", 2000, "particle count")
	flags.IntVar(&cfg.Iterations, "iterations", 100, "filter iterations to run")
	flags.IntVar(&cfg.Workers, "workers", 8, "weighting worker pool size")
	flags.Int64Var(&cfg.Seed, "seed", 1, "simulation random seed")
	flags.Float64Var(&cfg.LinearResolution, "cluster-linear", 0.5,
		"clustering cell size for x and y")
	flags.Float64Var(&cfg.AngularResolution, "cluster-angular", 0.2,
		"clustering cell size for heading, in radians")

	if err := root.ExecuteContext(context.Background()); err != nil {
		log.Fatal(err)
	}
}
