package main

import (
	"bufio"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/robby/cockpit/internal/config"
	"github.com/robby/cockpit/internal/domain"
	"github.com/robby/cockpit/internal/persist"
	"github.com/robby/cockpit/internal/store"
	"github.com/robby/cockpit/internal/tui"
)

var (
	configPath string
	dataPath   string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "cockpit",
		Short: "A personal kanban board for tracking projects",
		Long: `cockpit is a terminal kanban board for personal project tracking.

Projects live in six status columns and carry prioritization scores, area
tags, an ordered todo list, and optionally one level of subprojects. All
state is kept in a single JSON file and saved after every change.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, path, err := loadConfig()
			if err != nil {
				return err
			}

			s := store.New(persist.Load(path))
			s.OnChange(func(data domain.AppData) {
				if err := persist.Save(path, data); err != nil {
					fmt.Fprintf(os.Stderr, "warning: save failed: %v\n", err)
				}
			})

			return tui.Run(s, cfg.HideArchived)
		},
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default ~/.config/cockpit/config.toml)")
	rootCmd.PersistentFlags().StringVar(&dataPath, "data", "", "data file (default from config)")

	rootCmd.AddCommand(exportCmd())
	rootCmd.AddCommand(importCmd())
	rootCmd.AddCommand(resetCmd())
	rootCmd.AddCommand(listCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// loadConfig resolves the config file and the effective data path. The
// --data flag wins over the config file's data_file.
func loadConfig() (config.Config, string, error) {
	path := configPath
	if path == "" {
		path = config.DefaultPath()
	}

	cfg, err := config.Load(path)
	if err != nil {
		return config.Config{}, "", fmt.Errorf("loading config: %w", err)
	}

	data := cfg.DataFile
	if dataPath != "" {
		data = dataPath
	}
	return cfg, data, nil
}

func exportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export [file]",
		Short: "Export the collection as pretty-printed JSON",
		Long:  "Export writes the full collection to the given file, or to stdout when no file is given.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, path, err := loadConfig()
			if err != nil {
				return err
			}

			s := store.New(persist.Load(path))
			out, err := s.Export()
			if err != nil {
				return fmt.Errorf("exporting: %w", err)
			}

			if len(args) == 0 {
				fmt.Println(string(out))
				return nil
			}
			if err := os.WriteFile(args[0], append(out, '\n'), 0o644); err != nil {
				return fmt.Errorf("writing %s: %w", args[0], err)
			}
			fmt.Fprintf(os.Stderr, "Exported to %s\n", args[0])
			return nil
		},
	}
}

func importCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Replace the collection with an exported JSON file",
		Long: `Import reads the given JSON file, normalizes it, and replaces the whole
collection. The file must carry a numeric schema version; everything else
is repaired or defaulted. The current collection is overwritten.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, path, err := loadConfig()
			if err != nil {
				return err
			}

			raw, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("reading %s: %w", args[0], err)
			}

			if !force && persist.Exists(path) {
				if !confirm(fmt.Sprintf("Replace the collection at %s?", path)) {
					fmt.Fprintln(os.Stderr, "Aborted.")
					return nil
				}
			}

			s := store.New(persist.Load(path))
			if err := s.Import(raw); err != nil {
				return fmt.Errorf("importing %s: %w", args[0], err)
			}
			if err := persist.Save(path, s.Data()); err != nil {
				return fmt.Errorf("saving: %w", err)
			}
			fmt.Fprintf(os.Stderr, "Imported %d projects from %s\n", len(s.Data().Projects), args[0])
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "overwrite without confirmation")
	return cmd
}

func resetCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Replace the collection with the built-in sample data",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, path, err := loadConfig()
			if err != nil {
				return err
			}

			if !force && persist.Exists(path) {
				if !confirm(fmt.Sprintf("Discard the collection at %s?", path)) {
					fmt.Fprintln(os.Stderr, "Aborted.")
					return nil
				}
			}

			if err := persist.Save(path, domain.SampleData()); err != nil {
				return fmt.Errorf("saving: %w", err)
			}
			fmt.Fprintf(os.Stderr, "Reset %s to sample data\n", path)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "reset without confirmation")
	return cmd
}

func listCmd() *cobra.Command {
	var status string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print the board as plain text",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, path, err := loadConfig()
			if err != nil {
				return err
			}

			s := store.New(persist.Load(path))
			columns := s.Columns()

			order := domain.StatusOrder
			if status != "" {
				st := domain.Status(status)
				if !domain.ValidStatus(st) {
					return fmt.Errorf("unknown status %q", status)
				}
				order = []domain.Status{st}
			}

			for _, col := range order {
				projects := columns[col]
				sort.SliceStable(projects, func(i, j int) bool {
					return projects[i].Priority > projects[j].Priority
				})

				fmt.Printf("%s (%d)\n", domain.StatusLabels[col], len(projects))
				for _, p := range projects {
					line := fmt.Sprintf("  %5.1f  %s", p.Priority, p.Title)
					if subs := len(s.Subprojects(p.ID)); subs > 0 {
						line += fmt.Sprintf("  [%d sub]", subs)
					}
					done := 0
					for _, t := range p.NextTodos {
						if t.Done {
							done++
						}
					}
					if len(p.NextTodos) > 0 {
						line += fmt.Sprintf("  (%d/%d todos)", done, len(p.NextTodos))
					}
					fmt.Println(line)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&status, "status", "", "limit to one column (backlog, next, doing, waiting, done, archived)")
	return cmd
}

// confirm prompts on stderr and reads a y/n answer from stdin.
func confirm(prompt string) bool {
	fmt.Fprintf(os.Stderr, "%s [y/N] ", prompt)
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}
