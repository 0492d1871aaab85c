package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

var (
	outputFile string
	output     io.Writer
)

var rootCmd = &cobra.Command{
	Use:   "schemaview",
	Short: "Schema-driven memory inspector",
	Long: `schemaview decodes typed fields out of captured memory using schema
metadata dumped from the producing process.

It loads a merged schema JSON (class field tables, offsets, type
descriptors, enums), opens a raw memory snapshot, and renders fields,
whole class instances, or recursive structural views.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if outputFile != "" {
			f, err := os.Create(outputFile)
			if err != nil {
				return fmt.Errorf("failed to create output file: %w", err)
			}
			output = f
		} else {
			output = os.Stdout
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if f, ok := output.(*os.File); ok && f != os.Stdout {
			f.Close()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&outputFile, "output", "o", "", "write output to file instead of stdout")

	rootCmd.AddCommand(classesCmd)
	rootCmd.AddCommand(fieldsCmd)
	rootCmd.AddCommand(enumsCmd)
	rootCmd.AddCommand(dumpCmd)
}
