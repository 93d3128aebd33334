package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"ml-universe/internal/topology"
)

func topologyCmd() *cobra.Command {
	var seed int64
	cmd := &cobra.Command{
		Use:       "topology [archetype]",
		Short:     "Build a diagram and print its node and edge counts",
		Long:      "Builds one archetype with default parameters, or all of them when none is given.",
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: archetypeNames(),
		RunE: func(cmd *cobra.Command, args []string) error {
			archetypes := topology.Archetypes()
			if len(args) == 1 {
				a, err := topology.ParseArchetype(args[0])
				if err != nil {
					return fmt.Errorf("%w (want one of %s)", err, strings.Join(archetypeNames(), ", "))
				}
				archetypes = []topology.Archetype{a}
			}

			rows := make([][]string, 0, len(archetypes))
			for _, a := range archetypes {
				p := topology.DefaultParams(a)
				p.Seed = seed
				spec, err := topology.Build(a, p)
				if err != nil {
					rows = append(rows, []string{string(a), "-", "-", "-", "-", bad.Sprint(err.Error())})
					continue
				}
				geo := topology.NewGeometry(spec)
				status := good.Sprint("ok")
				if len(geo.Dropped) > 0 {
					status = warn.Sprintf("%d edges dropped", len(geo.Dropped))
				}
				fit := "-"
				if spec.Fit != nil {
					fit = fmt.Sprintf("y = %.3fx + %.3f", spec.Fit.Slope, spec.Fit.Intercept)
				}
				rows = append(rows, []string{
					string(a),
					fmt.Sprint(spec.NodeCount()),
					fmt.Sprint(geo.SegmentCount()),
					fmt.Sprint(len(spec.Groups)),
					fit,
					status,
				})
			}
			table([]string{"archetype", "nodes", "edges", "groups", "fit", "status"}, rows)
			if seed == 0 {
				subtle.Println("\n  random seed; pass --seed for reproducible clustering and regression")
			}
			return nil
		},
	}
	cmd.Flags().Int64Var(&seed, "seed", 0, "random seed, 0 for time-based")
	return cmd
}

func archetypeNames() []string {
	var names []string
	for _, a := range topology.Archetypes() {
		names = append(names, string(a))
	}
	return names
}
