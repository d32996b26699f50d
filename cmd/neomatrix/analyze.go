package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/neomatrix/internal/analysis"
	"github.com/san-kum/neomatrix/internal/storage"
)

var (
	phaseBody string
	xAxis     string
	yAxis     string
)

func analysisCommands() []*cobra.Command {
	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "dominant period of every body's motion",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}

	phaseCmd := &cobra.Command{
		Use:   "phase [run_id]",
		Short: "phase space plot of one body",
		Args:  cobra.ExactArgs(1),
		RunE:  phasePlot,
	}
	phaseCmd.Flags().StringVar(&phaseBody, "body", "", "body name (default first body)")
	phaseCmd.Flags().StringVar(&xAxis, "x-axis", "x", "x axis: x, y, vx or vy")
	phaseCmd.Flags().StringVar(&yAxis, "y-axis", "vx", "y axis: x, y, vx or vy")

	return []*cobra.Command{analyzeCmd, phaseCmd}
}

// bodySeries is the recorded trajectory of one body.
type bodySeries struct {
	x, y, vx, vy []float64
}

func (b *bodySeries) axis(name string) ([]float64, error) {
	switch name {
	case "x":
		return b.x, nil
	case "y":
		return b.y, nil
	case "vx":
		return b.vx, nil
	case "vy":
		return b.vy, nil
	}
	return nil, fmt.Errorf("unknown axis: %s", name)
}

func loadSeries(st *storage.Store, runID string) ([]string, map[string]*bodySeries, error) {
	samples, err := st.LoadSamples(runID)
	if err != nil {
		return nil, nil, err
	}
	if len(samples) == 0 {
		return nil, nil, fmt.Errorf("no data to analyze")
	}
	var names []string
	series := make(map[string]*bodySeries)
	for _, s := range samples {
		b, ok := series[s.Body]
		if !ok {
			b = &bodySeries{}
			series[s.Body] = b
			names = append(names, s.Body)
		}
		b.x = append(b.x, s.X)
		b.y = append(b.y, s.Y)
		b.vx = append(b.vx, s.VX)
		b.vy = append(b.vy, s.VY)
	}
	return names, series, nil
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	names, series, err := loadSeries(st, runID)
	if err != nil {
		return err
	}

	// samples are evenly spaced over the run
	interval := 1.0
	if n := len(series[names[0]].x); n > 1 && meta.Frames > 0 {
		interval = float64(meta.Frames) / float64(n)
	}

	fmt.Printf("period analysis: %s\n", meta.ID)
	fmt.Printf("scene: %s\n\n", meta.Scene)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "BODY\tPERIOD X\tPERIOD Y")
	for _, name := range names {
		b := series[name]
		fmt.Fprintf(w, "%s\t%s\t%s\n", name, period(b.x, interval), period(b.y, interval))
	}
	if err := w.Flush(); err != nil {
		return err
	}

	ps := analysis.PowerSpectrum(series[names[0]].x)
	if len(ps) > 1 {
		graph := asciigraph.Plot(ps[1:],
			asciigraph.Height(12),
			asciigraph.Width(80),
			asciigraph.Caption(fmt.Sprintf("power spectrum (%s x)", names[0])),
		)
		fmt.Println()
		fmt.Println(graph)
	}
	return nil
}

func period(series []float64, interval float64) string {
	p, ok := analysis.DominantPeriod(series)
	if !ok {
		return "-"
	}
	return fmt.Sprintf("%.1f frames", p*interval)
}

func phasePlot(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	names, series, err := loadSeries(st, runID)
	if err != nil {
		return err
	}
	body := phaseBody
	if body == "" {
		body = names[0]
	}
	b, ok := series[body]
	if !ok {
		return fmt.Errorf("no body %s in run %s (bodies: %v)", body, runID, names)
	}
	xs, err := b.axis(xAxis)
	if err != nil {
		return err
	}
	ys, err := b.axis(yAxis)
	if err != nil {
		return err
	}

	fmt.Printf("phase space plot: %s\n", meta.ID)
	fmt.Printf("body: %s, x-axis: %s, y-axis: %s\n\n", body, xAxis, yAxis)
	fmt.Print(analysis.PortraitASCII(analysis.Portrait(xs, ys), 70, 24))

	// section where the body crosses the middle of the matrix moving right
	section := analysis.Section(b.x, xs, ys, float64(meta.Columns)/2)
	fmt.Printf("\nsection crossings at x=%.1f: %d\n", float64(meta.Columns)/2, len(section))
	return nil
}
