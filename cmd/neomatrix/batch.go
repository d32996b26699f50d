package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"slices"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/san-kum/neomatrix/internal/automation"
	"github.com/san-kum/neomatrix/internal/storage"
)

var (
	workers   int
	sweepFrom float64
	sweepTo   float64
	sweepN    int
	metric    string
	maximize  bool
	runs      int
)

func batchCommands() []*cobra.Command {
	scenarioCmd := &cobra.Command{
		Use:   "scenario [file]",
		Short: "run every step of a scenario file and store the runs",
		Args:  cobra.ExactArgs(1),
		RunE:  runScenario,
	}
	addMatrixFlags(scenarioCmd)

	sweepCmd := &cobra.Command{
		Use:   "sweep [scene] [param]",
		Short: "run a scene across a range of one parameter",
		Args:  cobra.ExactArgs(2),
		RunE:  runSweep,
	}
	addMatrixFlags(sweepCmd)
	addSceneFlags(sweepCmd)
	sweepCmd.Flags().Float64Var(&sweepFrom, "from", 0, "first value")
	sweepCmd.Flags().Float64Var(&sweepTo, "to", 1, "last value")
	sweepCmd.Flags().IntVar(&sweepN, "steps", 5, "number of values")
	sweepCmd.Flags().StringVar(&metric, "metric", "energy_drift", "metric to rank by")
	sweepCmd.Flags().BoolVar(&maximize, "maximize", false, "prefer the highest metric value")
	sweepCmd.Flags().IntVar(&workers, "workers", runtime.NumCPU(), "parallel runs")

	ensembleCmd := &cobra.Command{
		Use:   "ensemble [scene]",
		Short: "repeat a run over consecutive seeds",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runEnsemble,
	}
	addMatrixFlags(ensembleCmd)
	addSceneFlags(ensembleCmd)
	ensembleCmd.Flags().IntVar(&runs, "runs", 10, "number of runs")
	ensembleCmd.Flags().IntVar(&workers, "workers", runtime.NumCPU(), "parallel runs")

	return []*cobra.Command{scenarioCmd, sweepCmd, ensembleCmd}
}

func runScenario(cmd *cobra.Command, args []string) error {
	scenario, err := automation.LoadScenario(args[0])
	if err != nil {
		return err
	}
	base, err := resolveConfig(cmd, nil)
	if err != nil {
		return err
	}
	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if scenario.Description != "" {
		fmt.Println(scenario.Description)
	}
	outcomes, runErr := automation.RunScenario(ctx, scenario, base)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "STEP\tLABEL\tSCENE\tFRAMES\tRUN ID")
	for _, o := range outcomes {
		runID, err := saveRun(st, o.Config, o.Result, o.Params)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%d\t%s\n", o.Step, o.Label, o.Config.Scene.Name, o.Result.Frames, runID)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	return runErr
}

func runSweep(cmd *cobra.Command, args []string) error {
	base, err := resolveConfig(cmd, args[:1])
	if err != nil {
		return err
	}
	sw := automation.Sweep{Param: args[1], Min: sweepFrom, Max: sweepTo, Steps: sweepN}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	fmt.Printf("sweeping %s.%s from %g to %g in %d steps\n\n", base.Scene.Name, sw.Param, sw.Min, sw.Max, sw.Steps)
	results, err := automation.RunSweep(ctx, base, sw, workers)
	if err != nil {
		return err
	}

	names := sortedKeys(results[0].Metrics)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprint(w, sw.Param)
	for _, n := range names {
		fmt.Fprintf(w, "\t%s", n)
	}
	fmt.Fprintln(w)
	for _, r := range results {
		fmt.Fprintf(w, "%.4f", r.Value)
		for _, n := range names {
			fmt.Fprintf(w, "\t%.6f", r.Metrics[n])
		}
		fmt.Fprintln(w)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if best, ok := automation.Best(results, metric, !maximize); ok {
		fmt.Printf("\nbest %s: %s=%.4f (%.6f)\n", metric, sw.Param, best.Value, best.Metrics[metric])
	} else {
		fmt.Printf("\nno run reported %s\n", metric)
	}
	return nil
}

func runEnsemble(cmd *cobra.Command, args []string) error {
	base, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	fmt.Printf("running %s %d times from seed %d\n\n", base.Scene.Name, runs, base.Scene.Seed)
	results, err := automation.RunEnsemble(ctx, base, runs, base.Scene.Seed, workers)
	if err != nil {
		return err
	}

	summary := automation.Summarize(results)
	names := make([]string, 0, len(summary))
	for n := range summary {
		names = append(names, n)
	}
	slices.Sort(names)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "METRIC\tMEAN\tSTDDEV\tMIN\tMAX")
	for _, n := range names {
		s := summary[n]
		fmt.Fprintf(w, "%s\t%.6f\t%.6f\t%.6f\t%.6f\n", n, s.Mean, s.StdDev, s.Min, s.Max)
	}
	return w.Flush()
}
