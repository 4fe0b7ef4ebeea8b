// Command streamasmc is the StreamAsm compiler driver: `compiler <
// input.sasm > output` (spec.md §6.3), built on a cobra root command
// per SPEC_FULL.md §4.11, mirroring the manifest/cobra wiring surfaced
// elsewhere in the corpus (e.g. Consensys/go-corset) instead of the
// teacher's raw flag.Parse() (gmofishsauce-wut4/asm/main.go).
package main

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/streamasm/streamasmc/compiler"
	"github.com/streamasm/streamasmc/ir"
)

var (
	verbose    bool
	outputPath string
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "streamasmc [file]",
		Short: "Compile StreamAsm source into its target-language artifact",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runCompile,
	}
	// runCompile already writes the spec-mandated "path:line: message"
	// to stderr itself and returns the error only to set the exit
	// code; without these, cobra's Execute() would additionally print
	// its own "Error: ..." line plus a usage block, duplicating the
	// one line spec.md §6.3 calls for.
	root.SilenceUsage = true
	root.SilenceErrors = true
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log section transitions at debug level")
	root.PersistentFlags().StringVarP(&outputPath, "output", "o", "", "write the artifact here instead of stdout")

	compile := &cobra.Command{
		Use:   "compile [file]",
		Short: "Compile StreamAsm source into its target-language artifact",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runCompile,
	}
	root.AddCommand(compile)
	return root
}

func runCompile(cmd *cobra.Command, args []string) error {
	if verbose {
		logrus.SetLevel(logrus.DebugLevel)
	}

	path := "-"
	if len(args) == 1 {
		path = args[0]
	}

	in, closeIn, err := openInput(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return err
	}
	defer closeIn()

	c := compiler.New(displayName(path))
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		if err := c.ParseLine(scanner.Text()); err != nil {
			fmt.Fprintf(os.Stderr, "%s\n", formatError(err))
			return err
		}
	}
	if err := scanner.Err(); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return err
	}

	artifact, err := c.Generate()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", formatError(err))
		return err
	}

	out, closeOut, err := openOutput(outputPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return err
	}
	defer closeOut()

	_, err = io.WriteString(out, artifact)
	return err
}

func displayName(path string) string {
	if path == "-" {
		return "<stdin>"
	}
	return path
}

func openInput(path string) (io.Reader, func(), error) {
	if path == "-" {
		return os.Stdin, func() {}, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	return f, func() { f.Close() }, nil
}

func openOutput(path string) (io.Writer, func(), error) {
	if path == "" {
		return os.Stdout, func() {}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, err
	}
	return f, func() { f.Close() }, nil
}

// formatError renders a CompileError as "path:line: message" per
// spec.md §6.3; other errors fall back to their default formatting.
func formatError(err error) string {
	if ce, ok := err.(*ir.CompileError); ok {
		return ce.Error()
	}
	return err.Error()
}
