package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"schemaview/schema"
)

var (
	classesFilter string
	classesLimit  int
)

var classesCmd = &cobra.Command{
	Use:   "classes <schema-json>",
	Short: "List classes in the schema",
	Long: `List classes from a schema dump.

Use --filter to show only class names containing a substring.`,
	Args: cobra.ExactArgs(1),
	RunE: runClasses,
}

func init() {
	classesCmd.Flags().StringVarP(&classesFilter, "filter", "f", "", "show only class names containing this substring")
	classesCmd.Flags().IntVarP(&classesLimit, "limit", "n", 0, "limit number of classes shown (0 = unlimited)")
}

func runClasses(cmd *cobra.Command, args []string) error {
	reg, err := schema.Load(args[0])
	if err != nil {
		return fmt.Errorf("failed to load schema: %w", err)
	}

	fmt.Fprintf(output, "%-8s %-8s %-40s %s\n", "FIELDS", "CHAIN", "NAME", "PARENT")
	fmt.Fprintf(output, "%s\n", strings.Repeat("-", 80))

	count := 0
	for c := range reg.Classes() {
		if classesFilter != "" && !strings.Contains(c.Name(), classesFilter) {
			continue
		}

		parent := c.Parent()
		if parent == "" {
			parent = "-"
		}
		fmt.Fprintf(output, "%-8d 0x%-6X %-40s %s\n", c.NumFields(), c.ChainOffset(), c.Name(), parent)

		count++
		if classesLimit > 0 && count >= classesLimit {
			break
		}
	}

	fmt.Fprintf(output, "\nTotal: %d classes\n", count)
	return nil
}
