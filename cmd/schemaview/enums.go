package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"schemaview/schema"
)

var enumsCmd = &cobra.Command{
	Use:   "enums <schema-json> [enum-name]",
	Short: "List enums in the schema",
	Long: `List enum types from a schema dump.

Without an enum name, all enum types are listed with their underlying
width and member count. With a name, the full symbol table is shown.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runEnums,
}

func runEnums(cmd *cobra.Command, args []string) error {
	reg, err := schema.Load(args[0])
	if err != nil {
		return fmt.Errorf("failed to load schema: %w", err)
	}

	if len(args) == 2 {
		return printEnum(reg.Enums(), args[1])
	}

	fmt.Fprintf(output, "%-8s %-8s %s\n", "WIDTH", "MEMBERS", "NAME")
	fmt.Fprintf(output, "%s\n", strings.Repeat("-", 60))

	count := 0
	for e := range reg.Enums().All() {
		fmt.Fprintf(output, "%-8d %-8d %s\n", e.Width(), e.NumMembers(), e.Name())
		count++
	}

	fmt.Fprintf(output, "\nTotal: %d enums\n", count)
	return nil
}

func printEnum(enums *schema.EnumSet, name string) error {
	e, ok := enums.Lookup(name)
	if !ok {
		return fmt.Errorf("enum not found: %s", name)
	}

	fmt.Fprintf(output, "%s (width %d)\n", e.Name(), e.Width())
	fmt.Fprintf(output, "%s\n", strings.Repeat("-", 60))
	for v, sym := range e.Members() {
		fmt.Fprintf(output, "%-12d %s\n", v, sym)
	}
	return nil
}
