package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"slices"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/neomatrix/internal/config"
	"github.com/san-kum/neomatrix/internal/engine"
	"github.com/san-kum/neomatrix/internal/export"
	"github.com/san-kum/neomatrix/internal/geometry"
	"github.com/san-kum/neomatrix/internal/metrics"
	"github.com/san-kum/neomatrix/internal/neopix"
	"github.com/san-kum/neomatrix/internal/rgb"
	"github.com/san-kum/neomatrix/internal/scene"
	"github.com/san-kum/neomatrix/internal/storage"
	"github.com/san-kum/neomatrix/internal/viz"
)

var (
	dataDir    string
	configFile string
	verbose    bool
	preset     string

	frames     int
	fps        int
	seed       int64
	bodies     int
	columns    int
	rows       int
	wiring     string
	format     string
	brightness int
	mode       string
	reflect    bool
	params     map[string]string

	sampleEvery int
	outFile     string
	scale       int
	trails      bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "neomatrix",
		Short: "physics scenes on an addressable LED matrix",
		Args:  cobra.NoArgs,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			setupLogging()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd, nil)
			if err != nil {
				return err
			}
			app := viz.NewApp(scene.Names(), scene.Describe, cfg.Builder(), cfg.Scene.FPS)
			_, err = tea.NewProgram(app, tea.WithAltScreen()).Run()
			return err
		},
	}
	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".neomatrix", "data directory")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging on stderr")
	addMatrixFlags(rootCmd)

	runCmd := &cobra.Command{
		Use:   "run [scene]",
		Short: "run a scene headless and store the trace",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runScene,
	}
	addMatrixFlags(runCmd)
	addSceneFlags(runCmd)
	runCmd.Flags().IntVar(&sampleEvery, "sample-every", 1, "record bodies every n frames")

	liveCmd := &cobra.Command{
		Use:   "live [scene]",
		Short: "preview a scene in the terminal",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runLive,
	}
	addMatrixFlags(liveCmd)
	addSceneFlags(liveCmd)

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		Args:  cobra.NoArgs,
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot body positions of a run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	exportPNGCmd := &cobra.Command{
		Use:   "export-png [run_id]",
		Short: "write the last frame of a run as PNG",
		Args:  cobra.ExactArgs(1),
		RunE:  exportPNG,
	}
	exportPNGCmd.Flags().StringVarP(&outFile, "out", "o", "", "output file (default <run_id>.png)")
	exportPNGCmd.Flags().IntVar(&scale, "scale", 16, "pixels per LED")

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [run_id]",
		Short: "write the last frame of a run as SVG",
		Args:  cobra.ExactArgs(1),
		RunE:  exportSVG,
	}
	exportSVGCmd.Flags().StringVarP(&outFile, "out", "o", "", "output file (default stdout)")
	exportSVGCmd.Flags().IntVar(&scale, "scale", 10, "user units per LED")
	exportSVGCmd.Flags().BoolVar(&trails, "trails", false, "draw body trails")

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run data to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}
	exportJSONCmd.Flags().StringVarP(&outFile, "out", "o", "", "output file (default stdout)")

	presetsCmd := &cobra.Command{
		Use:   "presets [scene]",
		Short: "list available presets for a scene",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			names := config.ListPresets(args[0])
			if len(names) == 0 {
				fmt.Printf("no presets for scene: %s\n", args[0])
				return nil
			}
			fmt.Printf("presets for %s:\n", args[0])
			for _, p := range names {
				fmt.Printf("  %s\n", p)
			}
			return nil
		},
	}

	scenesCmd := &cobra.Command{
		Use:   "scenes",
		Short: "list scenes and their parameters",
		Args:  cobra.NoArgs,
		RunE:  listScenes,
	}

	initCmd := &cobra.Command{
		Use:   "init-config [path]",
		Short: "write the default configuration",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := os.Stat(args[0]); err == nil {
				return fmt.Errorf("%s already exists", args[0])
			}
			if err := config.Save(args[0], config.DefaultConfig()); err != nil {
				return err
			}
			fmt.Printf("wrote %s\n", args[0])
			return nil
		},
	}

	rootCmd.AddCommand(runCmd, liveCmd, listCmd, plotCmd, exportPNGCmd, exportSVGCmd, exportJSONCmd, presetsCmd, scenesCmd, initCmd)
	rootCmd.AddCommand(analysisCommands()...)
	rootCmd.AddCommand(batchCommands()...)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addMatrixFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.IntVar(&columns, "columns", config.DefaultColumns, "matrix columns")
	f.IntVar(&rows, "rows", config.DefaultRows, "matrix rows")
	f.StringVar(&wiring, "wiring", config.DefaultWiring, "LED wiring (serpentine, row_major)")
	f.StringVar(&format, "format", config.DefaultFormat, "frame buffer color format")
	f.IntVar(&brightness, "brightness", neopix.FullBrightness, "dim level 1..127, or 255 for full brightness")
	f.IntVar(&fps, "fps", config.DefaultFPS, "preview frame rate")
}

func addSceneFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVar(&preset, "preset", "", "use preset configuration")
	f.IntVar(&frames, "frames", config.DefaultFrames, "frames to run")
	f.Int64Var(&seed, "seed", 1, "random seed")
	f.IntVar(&bodies, "bodies", 0, "number of bodies (0 = scene default)")
	f.StringVar(&mode, "mode", "buffer", "draw mode (buffer, direct)")
	f.BoolVar(&reflect, "reflect", true, "bounce bodies off the matrix edges")
	f.StringToStringVar(&params, "param", nil, "scene parameter name=value")
}

func runScene(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}
	runCfg, err := cfg.Engine()
	if err != nil {
		return err
	}
	runCfg.SampleEvery = sampleEvery

	e, err := cfg.Build()
	if err != nil {
		return err
	}
	for _, m := range metrics.Standard() {
		e.AddMetric(m)
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	fmt.Printf("running %s for %d frames...\n", cfg.Scene.Name, runCfg.Frames)
	start := time.Now()
	result, err := e.Run(ctx, runCfg)
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	if err != nil {
		fmt.Printf("interrupted after %d frames\n", result.Frames)
	}
	elapsed := time.Since(start)

	runID, err := saveRun(st, cfg, result, e.Scene().GetParams())
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("frames: %d\n", result.Frames)
	fmt.Println("\nmetrics:")
	for _, name := range sortedKeys(result.Metrics) {
		fmt.Printf("  %s: %.6f\n", name, result.Metrics[name])
	}
	return nil
}

// saveRun stores result under the settings in cfg. params are the scene
// parameters in effect at the end of the run.
func saveRun(st *storage.Store, cfg *config.Config, result *engine.Result, params map[string]float64) (string, error) {
	w, err := neopix.ParseWiring(cfg.Matrix.Wiring)
	if err != nil {
		return "", err
	}
	topo, err := neopix.NewTopology(cfg.Matrix.Columns, cfg.Matrix.Rows, w)
	if err != nil {
		return "", err
	}
	info := storage.RunInfo{
		Scene:   cfg.Scene.Name,
		Seed:    cfg.Scene.Seed,
		Columns: cfg.Matrix.Columns,
		Rows:    cfg.Matrix.Rows,
		Wiring:  cfg.Matrix.Wiring,
		Format:  cfg.Color.Format,
		Mode:    cfg.Display.Mode,
		Reflect: cfg.Display.Reflect,
		Params:  params,
	}
	return st.Save(info, result, topo)
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}
	m, err := viz.NewModel(cfg.Scene.Name, cfg.Builder(), cfg.Scene.FPS)
	if err != nil {
		return err
	}
	_, err = tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSCENE\tTIME\tFRAMES\tMATRIX\tMODE\tSEED")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%dx%d %s\t%s\t%d\n",
			run.ID,
			run.Scene,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Frames,
			run.Columns, run.Rows, run.Wiring,
			run.Mode,
			run.Seed,
		)
	}
	return w.Flush()
}

func listScenes(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SCENE\tPARAMS\tDESCRIPTION")
	for _, name := range scene.Names() {
		sc, err := scene.New(name, config.DefaultConfig().SceneSettings())
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%s\t%v\t%s\n", name, sortedKeys(sc.GetParams()), scene.Describe(name))
	}
	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	samples, err := st.LoadSamples(runID)
	if err != nil {
		return err
	}
	if len(samples) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("scene: %s\n", meta.Scene)
	fmt.Printf("samples: %d\n\n", len(samples))

	names, xs, ys := splitSamples(samples)
	for _, name := range names {
		graph := asciigraph.PlotMany([][]float64{xs[name], ys[name]},
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.SeriesColors(asciigraph.Red, asciigraph.Blue),
			asciigraph.SeriesLegends("x", "y"),
			asciigraph.Caption(name),
		)
		fmt.Println(graph)
		fmt.Println()
	}
	return nil
}

// splitSamples groups positions by body, in order of first appearance.
func splitSamples(samples []storage.BodySample) ([]string, map[string][]float64, map[string][]float64) {
	var names []string
	xs := make(map[string][]float64)
	ys := make(map[string][]float64)
	for _, s := range samples {
		if _, ok := xs[s.Body]; !ok {
			names = append(names, s.Body)
		}
		xs[s.Body] = append(xs[s.Body], s.X)
		ys[s.Body] = append(ys[s.Body], s.Y)
	}
	return names, xs, ys
}

// loadFrame returns the stored last frame and the topology it was wired
// with.
func loadFrame(st *storage.Store, runID string) (*storage.RunMetadata, [][]rgb.Color, *neopix.Topology, error) {
	meta, err := st.Load(runID)
	if err != nil {
		return nil, nil, nil, err
	}
	pixels, err := st.LoadFrame(runID)
	if err != nil {
		return nil, nil, nil, err
	}
	w, err := neopix.ParseWiring(meta.Wiring)
	if err != nil {
		return nil, nil, nil, err
	}
	topo, err := neopix.NewTopology(meta.Columns, meta.Rows, w)
	if err != nil {
		return nil, nil, nil, err
	}
	return meta, storage.Grid(pixels), topo, nil
}

func exportPNG(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, grid, _, err := loadFrame(st, args[0])
	if err != nil {
		return err
	}
	path := outFile
	if path == "" {
		path = meta.ID + ".png"
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := export.FrameToPNG(f, grid, scale); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", path)
	return nil
}

func exportSVG(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	_, grid, topo, err := loadFrame(st, args[0])
	if err != nil {
		return err
	}

	var paths []export.Trail
	if trails {
		samples, err := st.LoadSamples(args[0])
		if err != nil {
			return err
		}
		names, xs, ys := splitSamples(samples)
		for i, name := range names {
			t := export.Trail{Name: name, Color: rgb.Wheel(uint8(i * 256 / len(names)))}
			for j := range xs[name] {
				t.Points = append(t.Points, geometry.Pt(xs[name][j], ys[name][j]))
			}
			paths = append(paths, t)
		}
	}

	return writeOut(func(w io.Writer) error {
		_, err := io.WriteString(w, export.FrameToSVG(grid, topo, float64(scale), paths...))
		return err
	})
}

func exportJSON(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	return writeOut(func(w io.Writer) error {
		return st.ExportJSON(w, args[0])
	})
}

// writeOut sends output to --out, or stdout when it is empty.
func writeOut(write func(io.Writer) error) error {
	if outFile == "" {
		return write(os.Stdout)
	}
	f, err := os.Create(outFile)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func sortedKeys(m map[string]float64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
