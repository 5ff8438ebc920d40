// Package main searches controller friction and acceleration for a target top
// speed and spin-up time using Nelder-Mead over headless runs.
package main

import (
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/gocarina/gocsv"
	"gonum.org/v1/gonum/optimize"

	"github.com/pthm-cable/orbit/config"
)

// evalRow is one line of tune_log.csv.
type evalRow struct {
	Eval          int     `csv:"eval"`
	Fitness       float64 `csv:"fitness"`
	Friction      float64 `csv:"friction"`
	MovementSpeed float64 `csv:"movement_speed"`
	MaxSpeed      float64 `csv:"max_speed"`
	TimeToTop     float64 `csv:"time_to_top"`
}

func main() {
	configPath := flag.String("config", "", "Base config YAML file (empty = use defaults)")
	ticks := flag.Int("ticks", 200, "Ticks of forward input per evaluation")
	topSpeed := flag.Float64("top-speed", 20, "Target top speed in units/s")
	spinUp := flag.Float64("spin-up", 0.3, "Target seconds to reach 95% of top speed")
	maxEvals := flag.Int("max-evals", 300, "Maximum number of evaluations")
	outputDir := flag.String("output", "", "Output directory for results")
	flag.Parse()

	if *outputDir == "" {
		log.Fatal("--output is required")
	}
	if *topSpeed <= 0 || *spinUp <= 0 {
		log.Fatal("--top-speed and --spin-up must be positive")
	}
	if err := os.MkdirAll(*outputDir, 0755); err != nil {
		log.Fatalf("failed to create output directory: %v", err)
	}

	// Per-run logs from the simulation would drown the progress output.
	slog.SetDefault(slog.New(slog.DiscardHandler))

	if err := config.Init(*configPath); err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	baseCfg := config.Cfg()

	params := NewParamVector(baseCfg.Controller)
	target := Target{TopSpeed: *topSpeed, SpinUp: *spinUp}
	evaluator := NewFitnessEvaluator(params, *ticks, target, baseCfg)

	var (
		rows        []evalRow
		bestFitness = 1e9
		bestParams  []float64
		startTime   = time.Now()
	)

	problem := optimize.Problem{
		Func: func(x []float64) float64 {
			raw := params.Clamp(params.Denormalize(x))
			fitness := evaluator.Evaluate(raw)
			last := evaluator.Last()

			if fitness < bestFitness {
				bestFitness = fitness
				bestParams = append([]float64(nil), raw...)
			}
			rows = append(rows, evalRow{
				Eval:          len(rows) + 1,
				Fitness:       fitness,
				Friction:      raw[0],
				MovementSpeed: raw[1],
				MaxSpeed:      last.MaxSpeed,
				TimeToTop:     last.TimeToTop,
			})
			if len(rows)%25 == 0 {
				fmt.Printf("Eval %d/%d: fitness=%.5f top=%.2f spin-up=%.2fs (best=%.5f)\n",
					len(rows), *maxEvals, fitness, last.MaxSpeed, last.TimeToTop, bestFitness)
			}
			return fitness
		},
	}

	settings := &optimize.Settings{
		FuncEvaluations: *maxEvals,
		Concurrent:      0,
	}

	fmt.Printf("Tuning %d parameters for top speed %.2f u/s, spin-up %.2fs\n", params.Dim(), *topSpeed, *spinUp)

	initX := params.Normalize(params.DefaultVector())
	result, err := optimize.Minimize(problem, initX, settings, &optimize.NelderMead{})
	if err != nil {
		log.Printf("optimization ended: %v", err)
	}
	if bestParams == nil && result != nil {
		bestParams = params.Clamp(params.Denormalize(result.X))
	}
	if bestParams == nil {
		log.Fatal("no evaluations completed")
	}

	fmt.Printf("\nTuning complete after %d evaluations in %s\n", len(rows), time.Since(startTime).Round(time.Millisecond))
	fmt.Printf("Best fitness: %.6f\n", bestFitness)
	for i, spec := range params.Specs {
		fmt.Printf("  %s: %.6f\n", spec.Path, bestParams[i])
	}

	logPath := filepath.Join(*outputDir, "tune_log.csv")
	if err := writeLog(logPath, rows); err != nil {
		log.Printf("failed to write log: %v", err)
	}

	bestCfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("failed to reload config: %v", err)
	}
	params.ApplyToConfig(bestCfg, bestParams)

	configOutPath := filepath.Join(*outputDir, "tuned.yaml")
	if err := bestCfg.WriteYAML(configOutPath); err != nil {
		log.Printf("failed to write tuned config: %v", err)
	} else {
		fmt.Printf("\nTuned config saved to: %s\n", configOutPath)
	}
}

func writeLog(path string, rows []evalRow) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return gocsv.MarshalFile(&rows, f)
}
