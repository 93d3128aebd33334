package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"ml-universe/internal/config"
	"ml-universe/internal/content"
	"ml-universe/internal/nav"
)

func contentCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "content [section]",
		Short: "Print the panel content for a section",
		Long:  "Prints one section's panel, or lists the sections when none is given.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			lib, err := content.Default()
			if cfg.Content != "" {
				lib, err = content.LoadFile(cfg.Content)
			}
			if err != nil {
				return err
			}

			if len(args) == 0 {
				rows := make([][]string, 0, len(lib.Sections()))
				for _, s := range lib.Sections() {
					p, _ := lib.Panel(s)
					rows = append(rows, []string{s.String(), p.Title, fmt.Sprint(len(p.Records))})
				}
				table([]string{"section", "title", "records"}, rows)
				return nil
			}

			s, err := nav.ParseSection(args[0])
			if err != nil {
				return err
			}
			p, ok := lib.Panel(s)
			if !ok {
				return fmt.Errorf("no content for %s", s)
			}
			printPanel(p)
			return nil
		},
	}
}

func printPanel(p content.Panel) {
	fmt.Printf("  %s\n", brand.Sprint(p.Title))
	if p.Intro != "" {
		fmt.Printf("  %s\n", p.Intro)
	}
	cats, groups := p.Categories()
	for _, cat := range cats {
		if cat != "" && len(cats) > 1 {
			fmt.Printf("\n  %s\n", subtle.Sprint(strings.ToUpper(cat)))
		}
		for _, r := range groups[cat] {
			fmt.Println()
			title := r.Title
			if r.Level > 0 {
				title += subtle.Sprintf("  %d%%", r.Level)
			}
			fmt.Printf("  %s\n", good.Sprint(title))
			if r.Date != "" || r.ReadTime != "" {
				fmt.Printf("  %s\n", subtle.Sprint(strings.TrimSpace(r.Date+"  "+r.ReadTime)))
			}
			if r.Description != "" {
				fmt.Printf("  %s\n", r.Description)
			}
			if len(r.Technologies) > 0 {
				fmt.Printf("  %s\n", subtle.Sprint(strings.Join(r.Technologies, ", ")))
			}
			if r.Link != "" {
				fmt.Printf("  %s\n", r.Link)
			}
		}
	}
}
