// Package main provides the CLI entrypoint for proto-collapse.
//
// proto-collapse loads a YAML scene, removes the proto-parameter nodes that
// only relay values along alias chains and writes the reduced scene back:
//   - collapse: run the pass and write the result
//   - plan: show what a pass would do without changing anything
//   - inspect: dump the structure, flags, alias chains and visibility
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"proto-collapse/internal/collapse"
	"proto-collapse/internal/document"
	"proto-collapse/internal/inspect"
	"proto-collapse/internal/world"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "proto-collapse",
		Short: "Collapse redundant proto-parameter nodes of a scene",
		Long: `proto-collapse reads a YAML scene in which prototype instantiations are
recorded as alias chains, deletes the invisible intermediate nodes of those
chains and re-points the remaining nodes at the chain terminals.`,
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Log every collapse step to stderr")
	rootCmd.PersistentFlags().Bool("lenient", false, "Drop unresolved alias and field references instead of failing")

	collapseCmd := &cobra.Command{
		Use:   "collapse <scene.yaml>",
		Short: "Collapse a scene and write the result",
		Args:  cobra.ExactArgs(1),
		RunE:  runCollapse,
	}
	collapseCmd.Flags().StringP("output", "o", "", "Write the collapsed scene to this file (default: stdout)")
	addCollapseFlags(collapseCmd)

	planCmd := &cobra.Command{
		Use:   "plan <scene.yaml>",
		Short: "Show what collapsing a scene would do",
		Args:  cobra.ExactArgs(1),
		RunE:  runPlan,
	}
	planCmd.Flags().Bool("raw", false, "Dump the raw plan structure")
	addCollapseFlags(planCmd)

	inspectCmd := &cobra.Command{
		Use:   "inspect <scene.yaml>",
		Short: "Dump a scene for debugging",
		Args:  cobra.ExactArgs(1),
		RunE:  runInspect,
	}
	inspectCmd.Flags().StringSlice("section", []string{"structure", "flags", "chains", "visibility"},
		"Sections to print: structure|flags|chains|visibility")

	rootCmd.AddCommand(collapseCmd, planCmd, inspectCmd)

	return rootCmd
}

func addCollapseFlags(cmd *cobra.Command) {
	cmd.Flags().Bool("strict", false, "Treat planning warnings as errors")
	cmd.Flags().Int("max-depth", collapse.DefaultConfig().MaxChainDepth, "Longest alias chain to follow")
}

func collapseConfig(cmd *cobra.Command) (collapse.Config, error) {
	config := collapse.DefaultConfig()

	verbose, _ := cmd.Flags().GetBool("verbose")
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}

	config.Logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))

	if cmd.Flags().Lookup("strict") == nil {
		return config, nil
	}

	strict, _ := cmd.Flags().GetBool("strict")
	config.Strict = strict

	depth, _ := cmd.Flags().GetInt("max-depth")
	if depth <= 0 {
		return config, fmt.Errorf("--max-depth must be positive, got %d", depth)
	}

	config.MaxChainDepth = depth

	return config, nil
}

func load(cmd *cobra.Command, path string) (*world.World, error) {
	config, err := collapseConfig(cmd)
	if err != nil {
		return nil, err
	}

	lenient, _ := cmd.Flags().GetBool("lenient")

	f, err := document.LoadFile(path)
	if err != nil {
		return nil, err
	}

	doc, diags := document.Build(f, document.DecodeOptions{Lenient: lenient})
	if err := inspect.WriteDiagnostics(cmd.ErrOrStderr(), diags); err != nil {
		return nil, err
	}

	if diags.HasErrors() {
		return nil, fmt.Errorf("%s: %w", path, document.ErrInvalidDocument)
	}

	return world.FromDocument(doc, config), nil
}

func runCollapse(cmd *cobra.Command, args []string) error {
	w, err := load(cmd, args[0])
	if err != nil {
		return err
	}

	report, err := w.Finalize()
	if report != nil {
		if werr := inspect.WriteDiagnostics(cmd.ErrOrStderr(), &report.Diagnostics); werr != nil {
			return werr
		}
	}

	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.ErrOrStderr(), "collapsed %d nodes, %d -> %d nodes, %d fields retargeted\n",
		len(report.Collapsed), report.NodesBefore, report.NodesAfter, report.RetargetedFields)

	output, _ := cmd.Flags().GetString("output")
	if output != "" {
		return document.WriteFile(w.Document(), output)
	}

	data, err := document.Encode(w.Document())
	if err != nil {
		return err
	}

	_, err = cmd.OutOrStdout().Write(data)

	return err
}

func runPlan(cmd *cobra.Command, args []string) error {
	w, err := load(cmd, args[0])
	if err != nil {
		return err
	}

	config, err := collapseConfig(cmd)
	if err != nil {
		return err
	}

	plan := collapse.New(config).Plan(w.Graph(), w.Visibility())

	raw, _ := cmd.Flags().GetBool("raw")
	if raw {
		inspect.DumpPlan(cmd.OutOrStdout(), plan)
		return nil
	}

	return inspect.WritePlan(cmd.OutOrStdout(), w.Graph(), plan, inspect.LabelNamer(w.Graph(), w.Labels()))
}

func runInspect(cmd *cobra.Command, args []string) error {
	scene, err := load(cmd, args[0])
	if err != nil {
		return err
	}

	sections, _ := cmd.Flags().GetStringSlice("section")
	g, vis := scene.Graph(), scene.Visibility()
	name := inspect.LabelNamer(g, scene.Labels())

	writers := map[string]func(io.Writer) error{
		"structure":  func(w io.Writer) error { return inspect.WriteStructure(w, g, name) },
		"flags":      func(w io.Writer) error { return inspect.WriteFlags(w, g, vis, name) },
		"chains":     func(w io.Writer) error { return inspect.WriteInstanceChains(w, g, name) },
		"visibility": func(w io.Writer) error { return inspect.WriteVisibility(w, g, vis, name) },
	}

	for _, section := range sections {
		if _, ok := writers[section]; !ok {
			return fmt.Errorf("unknown section %q", section)
		}
	}

	out := cmd.OutOrStdout()

	for _, section := range sections {
		fmt.Fprintf(out, "== %s ==\n", section)

		if err := writers[section](out); err != nil {
			return err
		}
	}

	return nil
}
