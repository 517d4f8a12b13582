package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/daniacca/rdmc/internal/logging"
	"github.com/daniacca/rdmc/internal/rxn"
	"github.com/kr/pretty"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("rdmc-compile", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var (
		modelFile = fs.String("model-file", "", "path to model JSON file (required)")
		rateDir   = fs.String("rate-dir", "", "directory rate files are resolved against (default: the model file's directory)")
		dump      = fs.Bool("dump", false, "dump the compiled table")
		jsonOut   = fs.String("json", "", "write the compiled table as JSON to this path")
		report    = fs.Bool("report", false, "report every pathway probability")
		logLevel  = fs.String("log-level", "warn", "log level: debug, info, warn, error")
	)
	if err := fs.Parse(args); err != nil {
		return 2
	}

	if *modelFile == "" {
		fmt.Fprintf(stderr, "error: --model-file is required\n")
		fs.Usage()
		return 2
	}

	cfg, model, err := loadModelFromFile(*modelFile)
	if err != nil {
		fmt.Fprintf(stderr, "error loading model: %v\n", err)
		return 1
	}
	if *report {
		model.Settings.ProbabilityReport = true
	}

	dir := *rateDir
	if dir == "" {
		dir = filepath.Dir(*modelFile)
	}

	ctx := model.NewCompileContext()
	ctx.Logger = logging.NewLoggerTo(stderr, *logLevel)
	ctx.RateLoader = rxn.FileRateLoader{Dir: dir}

	res, err := rxn.CompileModel(ctx, model)
	if err != nil {
		fmt.Fprintf(stderr, "error compiling model: %v\n", err)
		return 1
	}

	printSummary(stdout, cfg.Name, res)

	snap := res.Snapshot()
	if *dump {
		fmt.Fprintf(stdout, "%# v\n", pretty.Formatter(snap))
	}
	if *jsonOut != "" {
		data, err := rxn.EncodeTableJSON(snap)
		if err != nil {
			fmt.Fprintf(stderr, "error encoding table: %v\n", err)
			return 1
		}
		if err := os.WriteFile(*jsonOut, data, 0o644); err != nil {
			fmt.Fprintf(stderr, "error writing table: %v\n", err)
			return 1
		}
	}
	return 0
}

func loadModelFromFile(path string) (rxn.ModelConfig, *rxn.Model, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return rxn.ModelConfig{}, nil, fmt.Errorf("reading model file: %w", err)
	}

	var cfg rxn.ModelConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return rxn.ModelConfig{}, nil, fmt.Errorf("parsing model JSON: %w", err)
	}

	if err := rxn.ValidateModelConfig(cfg); err != nil {
		return rxn.ModelConfig{}, nil, fmt.Errorf("validating model: %w", err)
	}

	model, err := rxn.BuildModelFromConfig(cfg)
	if err != nil {
		return rxn.ModelConfig{}, nil, fmt.Errorf("building model: %w", err)
	}

	return cfg, model, nil
}

func printSummary(w io.Writer, modelName string, res *rxn.Result) {
	fmt.Fprintf(w, "Compile finished (model=%s, reactions=%d, buckets=%d)\n",
		modelName, len(res.Reactions), res.Table.Size())

	for _, rx := range res.Reactions {
		if rx.IsSpecial() {
			fmt.Fprintf(w, "  %s [%s]\n", rx.Name, rx.Special)
			continue
		}
		if rx.Special == rxn.PathwayClamp {
			for _, c := range rx.Clamps {
				fmt.Fprintf(w, "  %s [clamp %s at %.4e]\n", rx.Name, c.Molecule.Name, c.Concentration)
			}
			continue
		}
		fmt.Fprintf(w, "  %s (%d pathways, pb_factor %.4e)\n", rx.Name, rx.Pathways(), rx.PbFactor)
		for i := 0; i < rx.Pathways(); i++ {
			if rx.ComplexRates != nil && rx.ComplexRates[i] != nil {
				fmt.Fprintf(w, "    %s [complex %s]\n", rx.FormatPathway(i), rx.ComplexRates[i].Name)
				continue
			}
			fmt.Fprintf(w, "    %s [%.4e]\n", rx.FormatPathway(i), rx.Probability(i))
		}
	}

	if res.ProbabilityLimitExceeded {
		fmt.Fprintln(w, "Warning: some reactions have total probability above 1 and will be missed")
	}
	if len(res.Warnings) > 0 {
		fmt.Fprintf(w, "%d warnings\n", len(res.Warnings))
	}
}
