package main

import (
	"encoding/json"
	"fmt"
	"os"
	"runtime"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"agentbench/internal/bench"
	"agentbench/internal/config"
	"agentbench/internal/db"
	"agentbench/internal/scenario"
	"agentbench/internal/store"
	"agentbench/internal/toolkit"
)

// buildMeta holds version and build metadata (injectable via ldflags).
type buildMeta struct {
	Version string
	GoOS    string
	GoArch  string
}

func newBuildMeta(version, goos, goarch string) buildMeta {
	if version == "" {
		version = "dev"
	}
	if goos == "" {
		goos = runtime.GOOS
	}
	if goarch == "" {
		goarch = runtime.GOARCH
	}
	return buildMeta{Version: version, GoOS: goos, GoArch: goarch}
}

func (m buildMeta) String() string {
	return fmt.Sprintf("agentbench %s %s/%s", m.Version, m.GoOS, m.GoArch)
}

// loadConfig reads the config file named by AGENTBENCH_CONFIG (default
// agentbench.json). A missing file yields built-in defaults.
func loadConfig() *config.Config {
	path := os.Getenv("AGENTBENCH_CONFIG")
	if path == "" {
		path = "agentbench.json"
	}
	cfg, err := config.Load(path)
	if err != nil {
		return &config.Config{}
	}
	return cfg
}

func newRegistry(cfg *config.Config) (*toolkit.Registry, error) {
	logger := bench.NewLogger(cfg.Log)
	rt, err := bench.NewRuntime(cfg, logger)
	if err != nil {
		return nil, err
	}
	return bench.NewRegistry(rt)
}

func newRootCommand(bm buildMeta) *cobra.Command {
	root := &cobra.Command{
		Use:   "agentbench",
		Short: "Tool-call benchmark fixture",
		Long:  "Agentbench hosts validated tool handlers over an in-memory snapshot database.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if showVersion, _ := cmd.Flags().GetBool("version"); showVersion {
				fmt.Fprintln(cmd.OutOrStdout(), bm.String())
				return nil
			}
			return cmd.Help()
		},
	}
	root.Flags().BoolP("version", "V", false, "print version and build metadata")

	toolsCmd := &cobra.Command{
		Use:   "tools",
		Short: "List every registered tool",
		RunE:  runTools,
	}
	root.AddCommand(toolsCmd)

	schemaCmd := &cobra.Command{
		Use:   "schema <tool>",
		Short: "Print a tool's advertised function schema",
		RunE:  runSchema,
	}
	schemaCmd.Args = cobra.ExactArgs(1)
	root.AddCommand(schemaCmd)

	invokeCmd := &cobra.Command{
		Use:   "invoke <tool>",
		Short: "Invoke one tool against a snapshot file",
		RunE:  runInvoke,
	}
	invokeCmd.Args = cobra.ExactArgs(1)
	invokeCmd.Flags().String("snapshot", "", "path to the snapshot JSON file")
	invokeCmd.Flags().String("payload", "{}", "tool payload as inline JSON")
	invokeCmd.Flags().String("out", "", "write the post-call snapshot to this path")
	_ = invokeCmd.MarkFlagRequired("snapshot")
	root.AddCommand(invokeCmd)

	scenarioCmd := &cobra.Command{Use: "scenario", Short: "Replay scripted episodes"}
	scenarioRunCmd := &cobra.Command{
		Use:   "run <file>",
		Short: "Run a YAML scenario through the registry",
		RunE:  runScenario,
	}
	scenarioRunCmd.Args = cobra.ExactArgs(1)
	scenarioRunCmd.Flags().String("db", "", "archive the final snapshot to this database URL")
	scenarioCmd.AddCommand(scenarioRunCmd)
	root.AddCommand(scenarioCmd)

	snapshotCmd := &cobra.Command{Use: "snapshot", Short: "Snapshot archive operations"}
	snapshotExportCmd := &cobra.Command{
		Use:   "export",
		Short: "Archive a snapshot file into the database",
		RunE:  runSnapshotExport,
	}
	snapshotExportCmd.Flags().String("snapshot", "", "path to the snapshot JSON file")
	snapshotExportCmd.Flags().String("db", "", "database URL (defaults to database_url from config)")
	snapshotExportCmd.Flags().String("run", "manual", "run tag to archive under")
	_ = snapshotExportCmd.MarkFlagRequired("snapshot")
	snapshotCmd.AddCommand(snapshotExportCmd)
	root.AddCommand(snapshotCmd)

	configCmd := &cobra.Command{Use: "config", Short: "Manage the agentbench.json config"}
	configInitCmd := &cobra.Command{
		Use:   "init [path]",
		Short: "Write a default config file",
		RunE:  runConfigInit,
	}
	configInitCmd.Args = cobra.MaximumNArgs(1)
	configCmd.AddCommand(configInitCmd)
	root.AddCommand(configCmd)

	return root
}

func runTools(cmd *cobra.Command, args []string) error {
	reg, err := newRegistry(loadConfig())
	if err != nil {
		return err
	}
	tw := table.NewWriter()
	tw.SetOutputMirror(cmd.OutOrStdout())
	tw.AppendHeader(table.Row{"Tool", "Description"})
	for _, h := range reg.List() {
		tw.AppendRow(table.Row{h.Name(), h.Description()})
	}
	tw.Render()
	return nil
}

func runSchema(cmd *cobra.Command, args []string) error {
	reg, err := newRegistry(loadConfig())
	if err != nil {
		return err
	}
	h, err := reg.Get(args[0])
	if err != nil {
		return err
	}
	data, err := json.MarshalIndent(h.Info(), "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return nil
}

func runInvoke(cmd *cobra.Command, args []string) error {
	reg, err := newRegistry(loadConfig())
	if err != nil {
		return err
	}
	h, err := reg.Get(args[0])
	if err != nil {
		return err
	}

	snapPath, _ := cmd.Flags().GetString("snapshot")
	data, err := os.ReadFile(snapPath)
	if err != nil {
		return fmt.Errorf("read snapshot: %w", err)
	}
	snap, err := store.FromJSON(data)
	if err != nil {
		return err
	}

	rawPayload, _ := cmd.Flags().GetString("payload")
	var payload map[string]any
	if err := json.Unmarshal([]byte(rawPayload), &payload); err != nil {
		return fmt.Errorf("parse payload: %w", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), h.Invoke(snap, payload))

	if outPath, _ := cmd.Flags().GetString("out"); outPath != "" {
		encoded, err := snap.ToJSON()
		if err != nil {
			return err
		}
		if err := os.WriteFile(outPath, encoded, 0644); err != nil {
			return fmt.Errorf("write snapshot: %w", err)
		}
	}
	return nil
}

func runScenario(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()
	reg, err := newRegistry(cfg)
	if err != nil {
		return err
	}
	sc, err := scenario.Load(args[0])
	if err != nil {
		return err
	}

	result, err := scenario.Run(reg, sc, bench.NewLogger(cfg.Log))
	if err != nil {
		return err
	}
	for i, step := range result.Steps {
		status := "ok"
		if !step.OK {
			status = "FAIL: " + step.Reason
		}
		fmt.Fprintf(cmd.OutOrStdout(), "  %d. %s  %s\n", i+1, step.Tool, status)
	}

	if dbURL, _ := cmd.Flags().GetString("db"); dbURL != "" {
		if err := archiveRun(dbURL, result.RunID, result.Snapshot); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "  archived run %s\n", result.RunID)
	}

	if !result.Passed {
		return exitCodeErr(1)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "  passed (%s)\n", result.RunID)
	return nil
}

func runSnapshotExport(cmd *cobra.Command, args []string) error {
	dbURL, _ := cmd.Flags().GetString("db")
	if dbURL == "" {
		dbURL = loadConfig().DatabaseURL
	}
	if dbURL == "" {
		return fmt.Errorf("no database URL: pass --db or set database_url in the config")
	}

	snapPath, _ := cmd.Flags().GetString("snapshot")
	data, err := os.ReadFile(snapPath)
	if err != nil {
		return fmt.Errorf("read snapshot: %w", err)
	}
	snap, err := store.FromJSON(data)
	if err != nil {
		return err
	}

	run, _ := cmd.Flags().GetString("run")
	if err := archiveRun(dbURL, run, snap); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "archived run %s\n", run)
	return nil
}

func archiveRun(dbURL, run string, snap store.Snapshot) error {
	conn, err := db.Connect(dbURL)
	if err != nil {
		return err
	}
	defer conn.Close()
	return db.ExportSnapshot(conn, run, snap)
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	path := "agentbench.json"
	if len(args) == 1 {
		path = args[0]
	}
	if err := config.WriteDefault(path); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
	return nil
}

// version is set at build time via ldflags, e.g.:
//
//	go build -ldflags "-X main.version=1.0.0" -o agentbench ./cmd/agentbench
var version string

// exitCodeErr carries an exit code for the process. When returned from a
// command, runApp exits with that code.
type exitCodeErr int

func (e exitCodeErr) Error() string { return fmt.Sprintf("exit %d", int(e)) }
func (e exitCodeErr) ExitCode() int { return int(e) }

// runApp runs the root command with the given args and returns the exit code.
func runApp(args []string) int {
	root := newRootCommand(newBuildMeta(version, "", ""))
	root.SetArgs(args[1:])
	if err := root.Execute(); err != nil {
		if ec, ok := err.(interface{ ExitCode() int }); ok {
			return ec.ExitCode()
		}
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}
