package main

import (
	"fmt"
	"slices"
	"strconv"

	"github.com/spf13/cobra"

	"ml-universe/internal/animation"
	"ml-universe/internal/config"
	"ml-universe/internal/nav"
	"ml-universe/internal/topology"
	"ml-universe/internal/universe"
)

func framesCmd() *cobra.Command {
	var (
		at       []float32
		loadedAt float32
		selected string
		hovered  string
		width    int
	)
	cmd := &cobra.Command{
		Use:   "frames",
		Short: "Compute frames without a window and print a summary",
		Long: "Steps the animation headlessly at the given elapsed times (in order) and prints\n" +
			"universe scale, spin, the pulsing cluster and marker state for each.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			u, err := universe.New(cfg, nil)
			if err != nil {
				return err
			}
			if width > 0 {
				u.Resize(width)
			}
			ctrl := u.Controller()
			if selected != "" {
				s, err := nav.ParseSection(selected)
				if err != nil {
					return err
				}
				if err := ctrl.SelectSection(s); err != nil {
					return fmt.Errorf("select %s: %w", s, err)
				}
			}
			if hovered != "" {
				s, err := nav.ParseSection(hovered)
				if err != nil {
					return err
				}
				ctrl.HoverEnter(s)
			}
			if loadedAt >= 0 {
				ctrl.MarkLoaded(loadedAt)
			}

			times := slices.Clone(at)
			slices.Sort(times)
			rows := make([][]string, 0, len(times))
			for _, t := range times {
				rows = append(rows, frameRow(u.Step(t)))
			}
			vp := ctrl.Viewport()
			fmt.Printf("  %s  width %d, narrow %v, camera %.0f, %d diagrams\n\n",
				brand.Sprint("frames"), vp.Width, vp.Narrow, vp.CameraDistance, len(u.Diagrams()))
			table([]string{"t", "visible", "scale", "spin", "cluster", "net edges", "tree scale", "active", "marker scale"}, rows)
			return nil
		},
	}
	cmd.Flags().Float32SliceVar(&at, "at", []float32{0, 1, 5, 10}, "elapsed seconds to sample")
	cmd.Flags().Float32Var(&loadedAt, "loaded-at", 0, "elapsed time the load completes, negative for never")
	cmd.Flags().StringVar(&selected, "select", "", "section to open before stepping")
	cmd.Flags().StringVar(&hovered, "hover", "", "section to hover before stepping")
	cmd.Flags().IntVar(&width, "width", 0, "window width in pixels (default from config)")
	return cmd
}

func frameRow(f animation.Frame) []string {
	cluster, edges, tree := "-", "-", "-"
	for _, d := range f.Diagrams {
		switch d.Archetype {
		case topology.Clustering:
			cluster = strconv.Itoa(d.ActiveGroup)
		case topology.NeuralNetwork:
			edges = f32(d.EdgeOpacity)
		case topology.DecisionTree:
			tree = f32(d.Scale)
		}
	}
	active, scale := "-", "-"
	for _, m := range f.Markers {
		if m.Active || m.Hovered {
			active = m.Section.String()
			scale = f32(m.Scale)
			break
		}
	}
	return []string{
		f32(f.Elapsed),
		strconv.FormatBool(f.Visible),
		f32(f.Scale),
		f32(f.Spin),
		cluster,
		edges,
		tree,
		active,
		scale,
	}
}
