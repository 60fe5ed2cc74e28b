package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"text/tabwriter"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/nepplot/internal/config"
	"github.com/san-kum/nepplot/internal/dataset"
	"github.com/san-kum/nepplot/internal/logging"
	"github.com/san-kum/nepplot/internal/parity"
	"github.com/san-kum/nepplot/internal/render"
	"github.com/san-kum/nepplot/internal/storage"
	"github.com/san-kum/nepplot/internal/viz"
)

var (
	dataDir    string
	configFile string
	preset     string
	logLevel   string
	theme      string
	outPath    string
	dpi        int
	archiveDir string
	saveConfig string
	// preview size in terminal cells
	previewWidth   int
	previewHeight  int
	previewScatter bool
)

// main runs the nepplot CLI; with no subcommand it renders the parity figure
// for the training run in the current directory.
func main() {
	rootCmd := newRootCmd(os.Stdout, os.Stderr)
	if err := rootCmd.Execute(); err != nil {
		logging.New(os.Stderr, logLevel).Error(err)
		os.Exit(1)
	}
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "nepplot",
		Short:         "parity plots and RMSE for NEP training output",
		Args:          cobra.NoArgs,
		RunE:          renderFigure,
		SilenceErrors: true,
		SilenceUsage:  true,
	}
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&dataDir, "dir", ".", "directory holding the *.out tables")
	pf.StringVar(&configFile, "config", "", "config file path (yaml)")
	pf.StringVar(&preset, "preset", "", "input preset (train, test)")
	pf.StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	pf.StringVar(&theme, "theme", "minimal", fmt.Sprintf("terminal colour theme (%s)", strings.Join(viz.ThemeNames(), ", ")))

	rootCmd.Flags().StringVar(&outPath, "out", config.DefaultOutput, "output path relative to --dir; the extension selects png, svg or pdf")
	rootCmd.Flags().IntVar(&dpi, "dpi", config.DefaultDPI, "output resolution")
	rootCmd.Flags().StringVar(&archiveDir, "archive", "", "also save a JSON/CSV report under this directory")

	summaryCmd := &cobra.Command{
		Use:   "summary",
		Short: "print RMSE per quantity and component",
		Args:  cobra.NoArgs,
		RunE:  printSummary,
	}

	previewCmd := &cobra.Command{
		Use:   "preview",
		Short: "plot residuals in the terminal",
		Args:  cobra.NoArgs,
		RunE:  printPreview,
	}
	previewCmd.Flags().IntVar(&previewWidth, "width", 80, "plot width")
	previewCmd.Flags().IntVar(&previewHeight, "height", 10, "plot height")
	previewCmd.Flags().BoolVar(&previewScatter, "scatter", false, "draw parity scatter instead of residuals")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			for _, name := range config.ListPresets() {
				p := config.Presets[name]
				fmt.Fprintf(out, "  %-6s %s %s %s -> %s\n", name, p.Inputs.Energy, p.Inputs.Force, p.Inputs.Stress, p.Output)
			}
			return nil
		},
	}

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "print the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if saveConfig != "" {
				if err := config.Save(saveConfig, cfg); err != nil {
					return fmt.Errorf("save config: %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "saved %s\n", saveConfig)
				return nil
			}
			enc := yaml.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent(2)
			if err := enc.Encode(cfg); err != nil {
				return err
			}
			return enc.Close()
		},
	}

	configCmd.Flags().StringVar(&saveConfig, "save", "", "write the effective configuration to this YAML file")

	historyCmd := &cobra.Command{
		Use:   "history [archive_dir]",
		Short: "list archived reports",
		Args:  cobra.ExactArgs(1),
		RunE:  listReports,
	}

	showCmd := &cobra.Command{
		Use:   "show [archive_dir] [report_id]",
		Short: "print an archived report as JSON",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := storage.New(args[0]).Load(args[1])
			if err != nil {
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(r)
		},
	}

	rootCmd.AddCommand(summaryCmd, previewCmd, presetsCmd, configCmd, historyCmd, showCmd)
	return rootCmd
}

// loadConfig resolves defaults, then the preset, then the config file, then
// explicitly set flags.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if preset != "" {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
	}

	if configFile != "" {
		if err := config.Overlay(configFile, cfg); err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
	}

	flags := cmd.Flags()
	if flags.Lookup("out") != nil && flags.Changed("out") {
		cfg.Output = outPath
	}
	if flags.Lookup("dpi") != nil && flags.Changed("dpi") {
		cfg.Figure.DPI = dpi
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func prepare(cmd *cobra.Command) (*config.Config, *logrus.Logger, *dataset.Dataset, error) {
	log := logging.New(cmd.ErrOrStderr(), logLevel)
	if !slices.Contains(viz.ThemeNames(), theme) {
		return nil, nil, nil, fmt.Errorf("unknown theme: %s (available: %v)", theme, viz.ThemeNames())
	}
	viz.SetTheme(theme)

	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, nil, nil, err
	}

	ds, err := dataset.Load(dataDir, cfg.Inputs, cfg.OutlierThreshold, log)
	if err != nil {
		return nil, nil, nil, err
	}
	return cfg, log, ds, nil
}

func renderFigure(cmd *cobra.Command, args []string) error {
	cfg, log, ds, err := prepare(cmd)
	if err != nil {
		return err
	}

	panels := parity.Build(ds, cfg.Padding)
	out := cfg.Output
	if !filepath.IsAbs(out) {
		out = filepath.Join(dataDir, out)
	}

	w := cmd.OutOrStdout()
	for _, p := range panels {
		fmt.Fprintf(w, "%s %-7s %s\n", p.Letter, p.Name, p.Annotation)
	}

	if err := render.Save(out, panels, cfg.Figure); err != nil {
		return fmt.Errorf("render %s: %w", out, err)
	}
	log.WithFields(logrus.Fields{"path": out, "dpi": cfg.Figure.DPI}).Debug("figure written")
	fmt.Fprintf(w, "saved %s\n", out)

	if archiveDir == "" {
		return nil
	}
	st := storage.New(archiveDir)
	if err := st.Init(); err != nil {
		return err
	}
	id, err := st.Save(storage.NewReport(dataDir, cfg, parity.Summarize(ds)))
	if err != nil {
		return fmt.Errorf("archive report: %w", err)
	}
	fmt.Fprintf(w, "report id: %s\n", id)
	return nil
}

func printSummary(cmd *cobra.Command, args []string) error {
	cfg, _, ds, err := prepare(cmd)
	if err != nil {
		return err
	}
	title := fmt.Sprintf("%s (%s)", cfg.Preset, dataDir)
	fmt.Fprint(cmd.OutOrStdout(), viz.RenderSummary(title, parity.Summarize(ds)))
	return nil
}

func printPreview(cmd *cobra.Command, args []string) error {
	cfg, _, ds, err := prepare(cmd)
	if err != nil {
		return err
	}
	w := cmd.OutOrStdout()
	for i, p := range parity.Build(ds, cfg.Padding) {
		if i > 0 {
			fmt.Fprintln(w, viz.Separator(previewWidth))
		}
		if previewScatter {
			fmt.Fprintln(w, viz.Scatter(p, previewWidth, previewHeight))
		} else {
			fmt.Fprintln(w, viz.Residuals(p, previewWidth, previewHeight))
		}
	}
	return nil
}

func listReports(cmd *cobra.Command, args []string) error {
	reports, err := storage.New(args[0]).List()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(reports) == 0 {
		fmt.Fprintln(out, "no reports found")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tPRESET\tTIME\tENERGY(meV/atom)\tFORCE(meV/Å)\tSTRESS(GPa)\tDROPPED")
	for _, r := range reports {
		fmt.Fprintf(w, "%s\t%s\t%s\t%.2f\t%.2f\t%.4f\t%d\n",
			r.ID,
			r.Preset,
			r.Timestamp.Format("2006-01-02 15:04:05"),
			float64(r.Results["energy"].RMSE),
			float64(r.Results["force"].RMSE),
			float64(r.Results["stress"].RMSE),
			r.Dropped,
		)
	}
	return w.Flush()
}
