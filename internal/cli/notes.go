package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"scribble/internal/logs"
	"scribble/internal/notes"
	"scribble/internal/scanner"
)

func (a *app) newListCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls", "l"},
		Short:   "List notes in server order",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateFormat(output); err != nil {
				return err
			}

			sync, err := a.synchronizer()
			if err != nil {
				return err
			}
			if err := sync.Refresh(cmd.Context()); err != nil {
				return err
			}
			return printNotes(cmd.OutOrStdout(), sync.Notes(), output)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "text", "Output format: text, json or yaml")
	return cmd
}

func (a *app) newAddCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "add <text...>",
		Aliases: []string{"a"},
		Short:   "Add a note",
		Example: `  scribble add "buy milk"
  scribble add call the plumber`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sync, err := a.synchronizer()
			if err != nil {
				return err
			}

			n, err := sync.Add(cmd.Context(), strings.Join(args, " "))
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "Added: %s\n", n.Text)
			fmt.Fprintf(w, "ID: %s\n", n.ID)
			return nil
		},
	}
}

func (a *app) newRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "rm <id>",
		Aliases: []string{"delete", "del"},
		Short:   "Delete a note by id or unique id prefix (at least 4 characters)",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sync, err := a.synchronizer()
			if err != nil {
				return err
			}
			if err := sync.Refresh(cmd.Context()); err != nil {
				return err
			}

			n, err := sync.FindByPrefix(args[0])
			if err != nil {
				return err
			}
			if err := sync.Remove(cmd.Context(), n.ID); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Deleted: %s\n", n.ID)
			return nil
		},
	}
}

func (a *app) newImportCmd() *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "import <file.md|dir>",
		Short: "Create one note per list item in Markdown files",
		Long: `Import reads Markdown and creates one note for every list item, nested
items included, in document order. Task list checkboxes are dropped.
A "prefix" field in YAML frontmatter is prepended to every note.

Given a directory, every .md file below it is imported in path order.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			files, err := scanner.MarkdownFiles(args[0])
			if err != nil {
				return err
			}

			var texts []string
			for _, f := range files {
				content, err := os.ReadFile(f)
				if err != nil {
					return err
				}
				found := notes.ParseMarkdownList(content)
				logs.Logger.Debug("Parsed markdown", "file", f, "items", len(found))
				texts = append(texts, found...)
			}
			if len(texts) == 0 {
				return fmt.Errorf("no list items found in %s", args[0])
			}

			w := cmd.OutOrStdout()
			if dryRun {
				for _, t := range texts {
					fmt.Fprintln(w, t)
				}
				fmt.Fprintf(w, "\n%d note(s) would be imported\n", len(texts))
				return nil
			}

			sync, err := a.synchronizer()
			if err != nil {
				return err
			}

			for i, t := range texts {
				n, err := sync.Add(cmd.Context(), t)
				if err != nil {
					logs.Logger.Error("Import stopped", "path", args[0], "created", i, "error", err)
					return fmt.Errorf("import stopped after %d of %d notes: %w", i, len(texts), err)
				}
				fmt.Fprintf(w, "%s  %s\n", n.ID, oneLine(n.Text))
			}

			fmt.Fprintf(w, "\n%d note(s) imported\n", len(texts))
			return nil
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Print the notes without creating them")
	return cmd
}

func validateFormat(format string) error {
	switch format {
	case "text", "json", "yaml":
		return nil
	}
	return fmt.Errorf("unknown output format %q (want text, json or yaml)", format)
}

func printNotes(w io.Writer, ns []notes.Note, format string) error {
	if ns == nil {
		ns = []notes.Note{}
	}

	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(ns)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(ns); err != nil {
			return err
		}
		return enc.Close()
	}

	if len(ns) == 0 {
		fmt.Fprintln(w, "No notes found.")
		return nil
	}
	for _, n := range ns {
		fmt.Fprintf(w, "%s  %s\n", n.ID, oneLine(n.Text))
	}
	fmt.Fprintf(w, "\n%d note(s)\n", len(ns))
	return nil
}

func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
