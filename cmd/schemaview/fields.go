package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"schemaview/schema"
)

var fieldsInherited bool

var fieldsCmd = &cobra.Command{
	Use:   "fields <schema-json> <class>",
	Short: "Show the field table of a class",
	Long: `Show the declared fields of a class: offset, type descriptor, and
whether the field is networked.

Use --inherited to include fields declared on base classes.`,
	Args: cobra.ExactArgs(2),
	RunE: runFields,
}

func init() {
	fieldsCmd.Flags().BoolVarP(&fieldsInherited, "inherited", "i", false, "include fields from base classes")
}

func runFields(cmd *cobra.Command, args []string) error {
	reg, err := schema.Load(args[0])
	if err != nil {
		return fmt.Errorf("failed to load schema: %w", err)
	}

	c, err := reg.Class(args[1])
	if err != nil {
		return fmt.Errorf("failed to look up class %s: %w", args[1], err)
	}

	fmt.Fprintf(output, "%-10s %-4s %-40s %s\n", "OFFSET", "NET", "NAME", "TYPE")
	fmt.Fprintf(output, "%s\n", strings.Repeat("-", 90))

	count := 0
	for cur := c; cur != nil; {
		if cur != c {
			fmt.Fprintf(output, "\n(inherited from %s, chain 0x%X)\n", cur.Name(), cur.ChainOffset())
		}

		for f := range cur.Fields() {
			net := "-"
			if f.Networked {
				net = "N"
			}
			fmt.Fprintf(output, "0x%-8X %-4s %-40s %s\n", f.Offset, net, f.Name, f.Type)
			count++
		}

		if !fieldsInherited || cur.Parent() == "" {
			break
		}
		parent, err := reg.Class(cur.Parent())
		if err != nil {
			break
		}
		cur = parent
	}

	fmt.Fprintf(output, "\nTotal: %d fields\n", count)
	return nil
}
