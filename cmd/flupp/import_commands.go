package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"

	"flupp/internal/config"
	"flupp/internal/importer"
	"flupp/internal/logbook"
	"flupp/internal/stats"
)

func newImportCommand(ctx *commandContext) *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "import FILE...",
		Short: "Decode logbooks and store them in the local database",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(cfg *config.Config, store *logbook.Store) error {
				effective := *cfg
				if force {
					effective.Import.SkipDuplicates = false
				}
				imp := importer.New(&effective, store, ctx.log())

				out := cmd.OutOrStdout()
				colorize := shouldColorize(out)
				failed := 0
				for _, path := range args {
					label := filepath.Base(path)
					result, err := imp.ImportFile(cmd.Context(), path)
					switch {
					case err != nil:
						failed++
						fmt.Fprintln(out, renderOutcome(label, outcomeFailed, err.Error(), colorize))
					case result.Duplicate:
						fmt.Fprintln(out, renderOutcome(label, outcomeDuplicate, "already imported as "+result.Import.ID, colorize))
					default:
						msg := fmt.Sprintf("%s (%d flight logs, %d flights)", result.Import.ID, result.Import.FlightLogCount, result.Import.FlightCount)
						fmt.Fprintln(out, renderOutcome(label, outcomeStored, msg, colorize))
					}
				}
				if failed > 0 {
					return fmt.Errorf("%d of %d logbooks failed to import", failed, len(args))
				}
				return nil
			})
		},
	}
	cmd.Flags().BoolVarP(&force, "force", "f", false, "Import even if the same content was imported before")
	return cmd
}

func newImportsCommand(ctx *commandContext) *cobra.Command {
	importsCmd := &cobra.Command{
		Use:   "imports",
		Short: "Inspect and manage stored imports",
	}
	importsCmd.AddCommand(newImportsListCommand(ctx))
	importsCmd.AddCommand(newImportsShowCommand(ctx))
	importsCmd.AddCommand(newImportsRemoveCommand(ctx))
	importsCmd.AddCommand(newImportsExportCommand(ctx))
	return importsCmd
}

func newImportsListCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List stored imports",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(_ *config.Config, store *logbook.Store) error {
				imports, err := store.ListImports(cmd.Context())
				if err != nil {
					return err
				}
				if asJSON {
					if imports == nil {
						imports = []*logbook.Import{}
					}
					return writeJSON(cmd, imports)
				}
				out := cmd.OutOrStdout()
				if len(imports) == 0 {
					fmt.Fprintln(out, "No imports stored")
					return nil
				}
				rows := make([][]string, 0, len(imports))
				for _, imp := range imports {
					pilot := "-"
					if imp.GeneralSettings != nil && imp.GeneralSettings.PilotName != "" {
						pilot = imp.GeneralSettings.PilotName
					}
					rows = append(rows, []string{
						imp.ID,
						imp.SourceName,
						formatTimestamp(imp.ImportedAt),
						pilot,
						strconv.Itoa(imp.FlightLogCount),
						strconv.Itoa(imp.FlightCount),
						yesNo(imp.HasSource),
					})
				}
				fmt.Fprintln(out, renderTable(
					[]string{"ID", "Source", "Imported", "Pilot", "Logs", "Flights", "Archived"},
					rows,
					[]columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft, alignRight, alignRight, alignLeft},
				))
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print imports as JSON")
	return cmd
}

func newImportsShowCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "show ID",
		Short: "Show the flight logs and totals of an import",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(_ *config.Config, store *logbook.Store) error {
				doc, err := store.Document(cmd.Context(), args[0])
				if errors.Is(err, logbook.ErrNotFound) {
					return fmt.Errorf("import %s not found", args[0])
				}
				if err != nil {
					return err
				}
				if asJSON {
					return writeJSON(cmd, doc)
				}
				printDocumentSummary(cmd, doc)
				fmt.Fprintln(cmd.OutOrStdout())
				printReport(cmd, stats.Compute(doc))
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the stored document as JSON")
	return cmd
}

func newImportsRemoveCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "remove ID...",
		Short: "Delete imports and their flights",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(_ *config.Config, store *logbook.Store) error {
				out := cmd.OutOrStdout()
				colorize := shouldColorize(out)
				missing := 0
				for _, id := range args {
					removed, err := store.Remove(cmd.Context(), id)
					if err != nil {
						return err
					}
					if removed {
						fmt.Fprintln(out, renderOutcome(id, outcomeRemoved, "removed", colorize))
					} else {
						missing++
						fmt.Fprintln(out, renderOutcome(id, outcomeMissing, "not found", colorize))
					}
				}
				if missing == len(args) {
					return errors.New("no matching imports")
				}
				return nil
			})
		},
	}
}

func newImportsExportCommand(ctx *commandContext) *cobra.Command {
	var outputPath string
	cmd := &cobra.Command{
		Use:   "export ID",
		Short: "Write the archived original export of an import",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(_ *config.Config, store *logbook.Store) error {
				raw, err := store.Source(cmd.Context(), args[0])
				switch {
				case errors.Is(err, logbook.ErrNotFound):
					return fmt.Errorf("import %s not found", args[0])
				case errors.Is(err, logbook.ErrNoSource):
					return fmt.Errorf("import %s was stored without its source (import.archive_source = false)", args[0])
				case err != nil:
					return err
				}
				if outputPath == "" {
					_, err = cmd.OutOrStdout().Write(raw)
					return err
				}
				if err := os.WriteFile(outputPath, raw, 0o644); err != nil {
					return fmt.Errorf("write export: %w", err)
				}
				fmt.Fprintf(cmd.ErrOrStderr(), "Wrote %d bytes to %s\n", len(raw), outputPath)
				return nil
			})
		},
	}
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Destination file (default stdout)")
	return cmd
}
