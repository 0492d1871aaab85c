package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"schemaview/decode"
	"schemaview/memory"
	"schemaview/schema"
)

var (
	dumpBase    string
	dumpClass   string
	dumpLoad    string
	dumpDepth   int
	dumpTargets string
)

var dumpCmd = &cobra.Command{
	Use:   "dump <schema-json> <snapshot-file>",
	Short: "Decode class instances from a memory snapshot",
	Long: `Decode class instances out of a raw memory snapshot.

The snapshot file is mapped at the address given by --load. A single
instance is selected with --class and --base; alternatively --targets
names a YAML file listing several instances to dump in one run:

    targets:
      - class: C_BaseEntity
        base: 0x7FF6A0001000
        fields: [m_iHealth, m_vecOrigin]   # optional, default all

Nested references are expanded recursively up to --depth levels.`,
	Args: cobra.ExactArgs(2),
	RunE: runDump,
}

func init() {
	dumpCmd.Flags().StringVarP(&dumpClass, "class", "c", "", "class name to decode")
	dumpCmd.Flags().StringVarP(&dumpBase, "base", "b", "", "instance base address (hex or decimal)")
	dumpCmd.Flags().StringVarP(&dumpLoad, "load", "l", "0", "address the snapshot file is mapped at")
	dumpCmd.Flags().IntVarP(&dumpDepth, "depth", "d", 3, "nested reference expansion depth")
	dumpCmd.Flags().StringVarP(&dumpTargets, "targets", "t", "", "YAML file listing instances to dump")
}

type dumpTarget struct {
	Class  string   `yaml:"class"`
	Base   string   `yaml:"base"`
	Fields []string `yaml:"fields"`
}

type dumpConfig struct {
	Targets []dumpTarget `yaml:"targets"`
}

func runDump(cmd *cobra.Command, args []string) error {
	reg, err := schema.Load(args[0])
	if err != nil {
		return fmt.Errorf("failed to load schema: %w", err)
	}

	loadAddr, err := parseAddress(dumpLoad)
	if err != nil {
		return fmt.Errorf("invalid --load address: %w", err)
	}

	snap, err := memory.OpenSnapshot(args[1], loadAddr)
	if err != nil {
		return fmt.Errorf("failed to open snapshot: %w", err)
	}

	d := decode.New(reg, snap, decode.WithMaxDepth(dumpDepth))

	targets, err := collectTargets()
	if err != nil {
		return err
	}

	for i, tgt := range targets {
		if i > 0 {
			fmt.Fprintln(output)
		}

		base, err := parseAddress(tgt.Base)
		if err != nil {
			return fmt.Errorf("invalid base address %q for %s: %w", tgt.Base, tgt.Class, err)
		}
		if err := dumpInstance(d, base, tgt.Class, tgt.Fields); err != nil {
			return err
		}
	}
	return nil
}

func collectTargets() ([]dumpTarget, error) {
	if dumpTargets == "" {
		if dumpClass == "" || dumpBase == "" {
			return nil, fmt.Errorf("either --targets or both --class and --base are required")
		}
		return []dumpTarget{{Class: dumpClass, Base: dumpBase}}, nil
	}

	data, err := os.ReadFile(dumpTargets)
	if err != nil {
		return nil, fmt.Errorf("failed to read targets file: %w", err)
	}

	var cfg dumpConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse targets file: %w", err)
	}
	if len(cfg.Targets) == 0 {
		return nil, fmt.Errorf("targets file lists no targets")
	}
	return cfg.Targets, nil
}

func dumpInstance(d *decode.Decoder, base uint64, class string, only []string) error {
	if len(only) > 0 {
		fmt.Fprintf(output, "%s @ 0x%X\n", class, base)
		for _, name := range only {
			v, err := d.Field(base, class, name, 0)
			if err != nil {
				fmt.Fprintf(output, "  %-32s Error reading value (%v)\n", name, err)
				continue
			}
			fmt.Fprintf(output, "  %-32s %s\n", name, v)
		}
		return nil
	}

	node, err := d.Walk(base, class)
	if err != nil {
		return fmt.Errorf("failed to decode %s: %w", class, err)
	}
	printNode(node, 0)
	return nil
}

func printNode(n *decode.Node, indent int) {
	pad := strings.Repeat("  ", indent)
	fmt.Fprintf(output, "%s%s @ 0x%X\n", pad, n.ClassName, n.Address)

	for _, f := range n.Fields {
		fmt.Fprintf(output, "%s  %-32s %s\n", pad, f.Name, f.String())
		if f.Child != nil {
			printNode(f.Child, indent+2)
		}
	}
}

func parseAddress(s string) (uint64, error) {
	return strconv.ParseUint(strings.TrimSpace(s), 0, 64)
}
