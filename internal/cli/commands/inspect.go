package commands

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/flute-go/reflection/internal/cli/config"
	"github.com/flute-go/reflection/internal/cli/ui"
	"github.com/flute-go/reflection/internal/server"
	"github.com/flute-go/reflection/internal/snapshot"
	"github.com/flute-go/reflection/runtime/metadata"
)

// newInspectCommand creates the inspect command group
func newInspectCommand(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Inspect a metadata snapshot",
		Long: `Inspect a metadata snapshot.

A snapshot records every type a program declared metadata on, with the class,
member and parameter entries stored for it. Programs write one with
snapshot.WriteFile; the path is taken from --snapshot or the config file.`,
		Example: `  # List all types in the snapshot
  flute inspect types

  # Show the metadata of one type
  flute inspect type Account

  # Output in JSON format for tooling
  flute inspect types --format json`,
	}

	cmd.AddCommand(newInspectTypesCommand(opts))
	cmd.AddCommand(newInspectTypeCommand(opts))

	return cmd
}

func newInspectTypesCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "types",
		Short: "List all types in the snapshot",
		Long: `List all types in the snapshot.

Shows each declaring type with the number of class entries and annotated
members. Use 'inspect type <name>' for the entries themselves.`,
		Example: `  flute inspect types
  flute inspect types --verbose
  flute inspect types --format json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, schema, err := opts.loadSnapshot(cmd)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			list := server.Summarize(schema)
			if cfg.Output.Format == "json" {
				return writeJSON(out, list)
			}

			ui.Header(out, fmt.Sprintf("Types (%d)", len(list.Types)), cfg.Output.NoColor)
			if len(list.Types) == 0 {
				fmt.Fprintln(out, "No types in snapshot")
				return nil
			}

			table := ui.NewTable(out, []string{"NAME", "KIND", "CLASS", "MEMBERS"}, &ui.TableOptions{NoColor: cfg.Output.NoColor})
			for _, t := range list.Types {
				name := t.Short
				if opts.verbose {
					name = t.Name
				}
				table.AddRow(name, t.Kind, fmt.Sprint(t.Class), fmt.Sprint(t.Members))
			}
			table.Render()
			return nil
		},
	}
}

func newInspectTypeCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "type <name>",
		Short: "Show the metadata of one type",
		Long: `Show the metadata of one type.

The name may be package-qualified (example.com/billing.Account), package-local
(billing.Account) or bare (Account) when the bare name is unambiguous.`,
		Example: `  flute inspect type Account
  flute inspect type billing.Account --format json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, schema, err := opts.loadSnapshot(cmd)
			if err != nil {
				return err
			}

			t, err := schema.Lookup(args[0])
			if err != nil {
				fmt.Fprint(cmd.ErrOrStderr(), lookupError(args[0], schema, err, cfg.Output.NoColor))
				return &reportedError{err: err}
			}

			out := cmd.OutOrStdout()
			if cfg.Output.Format == "json" {
				return writeJSON(out, t)
			}
			renderType(out, t, opts.verbose, cfg.Output.NoColor)
			return nil
		},
	}
}

// loadSnapshot resolves settings and reads the configured snapshot,
// reporting failures on the command's error stream.
func (o *rootOptions) loadSnapshot(cmd *cobra.Command) (*config.Config, *metadata.Schema, error) {
	cfg, err := o.settings()
	if err != nil {
		fmt.Fprint(cmd.ErrOrStderr(), ui.ConfigError(err.Error(), o.noColor))
		return nil, nil, &reportedError{err: err}
	}

	schema, err := snapshot.ReadFile(cfg.Snapshot.Path)
	if err != nil {
		fmt.Fprint(cmd.ErrOrStderr(), ui.SnapshotError(cfg.Snapshot.Path, err, cfg.Output.NoColor))
		return nil, nil, &reportedError{err: err}
	}
	return cfg, schema, nil
}

func lookupError(name string, schema *metadata.Schema, err error, noColor bool) string {
	if !errors.Is(err, metadata.ErrTypeNotFound) {
		return ui.FormatError(ui.ErrorOptions{
			Context:      "ambiguous type",
			Problem:      name,
			Consequence:  err.Error(),
			HelpCommands: []string{"Use a package-qualified name: flute inspect types --verbose"},
			NoColor:      noColor,
		})
	}

	candidates := make([]string, 0, len(schema.Types))
	for _, t := range schema.Types {
		candidates = append(candidates, t.Short)
	}
	bare := make([]string, 0, len(candidates))
	for _, c := range candidates {
		bare = append(bare, c[strings.LastIndex(c, ".")+1:])
	}

	suggestions := ui.FindSimilar(name, bare, nil)
	if strings.Contains(name, ".") {
		suggestions = ui.FindSimilar(name, candidates, nil)
	}
	return ui.TypeNotFoundError(name, suggestions, noColor)
}

func renderType(w io.Writer, t *metadata.TypeSchema, verbose, noColor bool) {
	ui.Header(w, t.Short, noColor)

	info := ui.NewKeyValueTable(w, noColor)
	info.AddRow("Name", t.Name)
	info.AddRow("Kind", t.Kind)
	info.Render()
	fmt.Fprintln(w)

	class := ui.NewSection(w, fmt.Sprintf("Class metadata (%d)", len(t.Class)), noColor)
	for _, e := range t.Class {
		class.AddLine(entryLine(e, verbose))
	}
	class.Render()

	members := ui.NewSection(w, fmt.Sprintf("Members (%d)", len(t.Members)), noColor)
	for _, m := range t.Members {
		label := m.Name
		if m.Constructor {
			label = "(constructor)"
		}
		members.AddLine(label)
		for _, e := range m.Entries {
			members.AddLine("  " + entryLine(e, verbose))
		}
		for _, p := range m.Parameters {
			for _, e := range p.Entries {
				members.AddLine(fmt.Sprintf("  param %d: %s", p.Index, entryLine(e, verbose)))
			}
		}
	}
	members.Render()
}

// entryLine renders "key [shape]: v1, v2"; verbose adds each value's type.
func entryLine(e metadata.EntrySchema, verbose bool) string {
	values := make([]string, len(e.Values))
	for i, v := range e.Values {
		values[i] = v.Text
		if verbose {
			values[i] = fmt.Sprintf("%s (%s)", v.Text, v.Type)
		}
	}
	return fmt.Sprintf("%s [%s]: %s", e.Key, e.Shape, strings.Join(values, ", "))
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode output: %w", err)
	}
	return nil
}
