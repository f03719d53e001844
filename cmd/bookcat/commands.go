package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/ukaji3/bookcat-go/pkg/bookcat"
	"github.com/ukaji3/bookcat-go/pkg/bookcat/models"
	"github.com/ukaji3/bookcat-go/pkg/bookcat/output"
	"github.com/ukaji3/bookcat-go/pkg/bookcat/parser"
)

func newNewCmd() *cobra.Command {
	var (
		columns []string
		force   bool
	)
	cmd := &cobra.Command{
		Use:   "new <file>",
		Short: "Create an empty catalog file and make it active",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", path)
			}
			if err := current.lib.Create(path, columns); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created %s with columns: %s\n",
				path, strings.Join(current.lib.Catalog().Columns, ", "))
			return nil
		},
	}
	cmd.Flags().StringSliceVar(&columns, "columns", nil, "Column names (default from config)")
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing file")
	return cmd
}

func newLoadCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "load <file>",
		Short: "Load a catalog file and remember it as the active file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := current.lib.Open(args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "File loaded: %s (%d books)\n", args[0], current.lib.Catalog().Len())
			return nil
		},
	}
}

func newSearchCmd() *cobra.Command {
	var (
		column string
		asJSON bool
		pretty bool
	)
	cmd := &cobra.Command{
		Use:   "search [term]",
		Short: "List the books matching a search term",
		Long: `Search lists every book with a field containing the term, ignoring case.
With --column only that column is searched. No term lists every book.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := openActive(); err != nil {
				return err
			}
			term := ""
			if len(args) == 1 {
				term = args[0]
			}

			var records []models.Record
			if column != "" {
				var err error
				if records, err = current.lib.SearchColumn(column, term); err != nil {
					return err
				}
			} else {
				records = current.lib.Search(term)
			}

			c := current.lib.Catalog()
			if asJSON {
				data, err := output.RecordsToJSON(filepath.Base(current.lib.Path()), c.Columns, records, pretty)
				if err != nil {
					return fmt.Errorf("serialization failed: %w", err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), string(data))
				return nil
			}
			if len(records) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No matching books.")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderRecords(c, records))
			return nil
		},
	}
	cmd.Flags().StringVarP(&column, "column", "c", "", "Search only this column")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print JSON instead of a table")
	cmd.Flags().BoolVar(&pretty, "pretty", false, "Pretty-print JSON output")
	return cmd
}

func newStatsCmd() *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show catalog statistics (librarian only)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireAdmin(); err != nil {
				return err
			}
			if err := openActive(); err != nil {
				return err
			}
			stats, err := current.lib.Stats()
			if err != nil {
				return err
			}
			if asJSON {
				data, err := output.StatsToJSON(stats, true)
				if err != nil {
					return fmt.Errorf("serialization failed: %w", err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), string(data))
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderStats(stats))
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print JSON")
	return cmd
}

func newBackupCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "backup",
		Short: "Copy the active file into the backup directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := resolveFile()
			if err != nil {
				return err
			}
			dst, err := current.store.Backup(path)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Backup saved: %s\n", dst)
			return nil
		},
	}
}

// editActive loads the active file, runs fn on an admin edit session and
// commits the result.
func editActive(fn func(ws *bookcat.WorkingSet) error) error {
	if err := requireAdmin(); err != nil {
		return err
	}
	if err := openActive(); err != nil {
		return err
	}
	ws, err := current.lib.BeginEdit()
	if err != nil {
		return err
	}
	if err := fn(ws); err != nil {
		return err
	}
	return current.lib.Commit(ws)
}

func newAddCmd() *cobra.Command {
	var fields map[string]string
	cmd := &cobra.Command{
		Use:   "add [value...]",
		Short: "Append a book (librarian only)",
		Long: `Add appends one book. Give either one value per column, in column
order, or every column as --set Column=value.`,
		Example: `  bookcat add --password secret "Dune" "Frank Herbert" "SciFi" "" "" 1965
  bookcat add --password secret --set Title=Dune --set Author="Frank Herbert" ...`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 && len(fields) > 0 {
				return fmt.Errorf("give values or --set, not both")
			}
			err := editActive(func(ws *bookcat.WorkingSet) error {
				if len(fields) > 0 {
					return ws.AddRowFields(fields)
				}
				return ws.AddRow(args)
			})
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Book added.")
			return nil
		},
	}
	cmd.Flags().StringToStringVar(&fields, "set", nil, "Column=value pairs")
	return cmd
}

func newDeleteCmd() *cobra.Command {
	var rows []int
	cmd := &cobra.Command{
		Use:   "delete",
		Short: "Delete books by row number (librarian only)",
		Long: `Delete removes the given rows. Row numbers are 1-based catalog
positions, as shown in the # column of 'bookcat search'.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(rows) == 0 {
				return fmt.Errorf("please select rows to delete (--row)")
			}
			var deleted int
			err := editActive(func(ws *bookcat.WorkingSet) error {
				for _, r := range dedupe(rows) {
					if err := ws.ToggleSelection(r - 1); err != nil {
						return fmt.Errorf("row %d: %w", r, err)
					}
				}
				deleted = ws.DeleteSelected()
				return nil
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d row(s) deleted.\n", deleted)
			return nil
		},
	}
	cmd.Flags().IntSliceVar(&rows, "row", nil, "Row number to delete (repeatable)")
	return cmd
}

func newSetCmd() *cobra.Command {
	var (
		row    int
		column string
	)
	cmd := &cobra.Command{
		Use:   "set <value>",
		Short: "Replace one cell (librarian only)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			err := editActive(func(ws *bookcat.WorkingSet) error {
				return ws.EditCell(row-1, column, args[0])
			})
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Cell updated.")
			return nil
		},
	}
	cmd.Flags().IntVar(&row, "row", 0, "Row number, 1-based")
	cmd.Flags().StringVarP(&column, "column", "c", "", "Column name")
	_ = cmd.MarkFlagRequired("row")
	_ = cmd.MarkFlagRequired("column")
	return cmd
}

func newExportCmd() *cobra.Command {
	var (
		format     string
		outputPath string
		pretty     bool
	)
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the active catalog as JSON or CSV",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := openActive(); err != nil {
				return err
			}
			c := current.lib.Catalog()

			out := cmd.OutOrStdout()
			if outputPath != "" {
				f, err := os.Create(outputPath)
				if err != nil {
					return fmt.Errorf("failed to write output: %w", err)
				}
				defer f.Close()
				out = f
			}

			switch format {
			case "json":
				data, err := output.ToJSON(filepath.Base(current.lib.Path()), c, pretty)
				if err != nil {
					return fmt.Errorf("serialization failed: %w", err)
				}
				_, err = fmt.Fprintln(out, string(data))
				return err
			case "csv":
				return parser.Write(out, parser.FormatCSV, c)
			default:
				return fmt.Errorf("invalid format: %s (must be json or csv)", format)
			}
		},
	}
	cmd.Flags().StringVar(&format, "format", "json", "Output format: json, csv")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output file path (default: stdout)")
	cmd.Flags().BoolVar(&pretty, "pretty", false, "Pretty-print JSON output")
	return cmd
}

func newConvertCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "convert <src> <dst>",
		Short: "Convert a catalog between xlsx and csv",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := current.store.Load(args[0])
			if err != nil {
				return err
			}
			if err := current.store.Save(args[1], c); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d books to %s\n", c.Len(), args[1])
			return nil
		},
	}
}

func newHashSecretCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "hash-secret <secret>",
		Short: "Print a bcrypt hash for auth.secret_hash",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			hash, err := bookcat.HashSecret(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), hash)
			return nil
		},
	}
}

func dedupe(rows []int) []int {
	seen := make(map[int]bool, len(rows))
	out := rows[:0:0]
	for _, r := range rows {
		if !seen[r] {
			seen[r] = true
			out = append(out, r)
		}
	}
	return out
}
