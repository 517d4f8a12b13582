package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/daniacca/rdmc/internal/logging"
	"github.com/daniacca/rdmc/internal/rxn"
	"github.com/daniacca/rdmc/pkg/client"
)

// synapse is a small receptor model: transmitter binds a membrane receptor,
// the bound receptor releases it back or opens, and the cleft wall absorbs
// anything that reaches it.
func synapse() *client.ModelBuilder {
	return client.NewModel("synapse").
		Volume("Ach", 1e-6).
		Surface("R", 0).
		Surface("RA", 0).
		Surface("RO", 0).
		SurfaceClass("Cleft").
		ComplexRate("open", 2e3, 4e3).
		PbFactor(1e-4).
		ProbabilityReport(true).
		Reaction(client.NewReaction().
			Reactant("Ach", 1).Reactant("R", 1).
			Product("RA", 1).
			Rate(1.5e3).Name("bind")).
		Reaction(client.NewReaction().
			Reactant("RA", 1).
			Product("R", 1).Product("Ach", 1).
			Rate(500).Name("unbind")).
		Reaction(client.NewReaction().
			Reactant("RA", 1).
			Product("RO", 1).
			ComplexRate("open")).
		Reaction(client.NewReaction().
			Reactant("Ach", 1).Reactant("Cleft", 1).
			Absorptive())
}

func main() {
	var (
		serverURL = flag.String("server", "", "compile on this rdmc-server instead of locally")
		logLevel  = flag.String("log-level", "info", "log level: debug, info, warn, error")
	)
	flag.Parse()

	logger := logging.NewLogger(*logLevel)
	model := synapse()

	if *serverURL != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		res, err := client.New(*serverURL).Compile(ctx, model)
		if err != nil {
			logger.Fatalf("Remote compile failed: %v", err)
		}
		logger.Infof("Compiled on server: compile_id=%s reactions=%d", res.ID, len(res.Table.Reactions))
		for _, n := range res.Notices {
			fmt.Printf("%-10s %s [%.4e]\n", n.Reaction, n.Pathway, n.Probability)
		}
		return
	}

	cfg := model.Build()
	if err := rxn.ValidateModelConfig(cfg); err != nil {
		logger.Fatalf("Invalid model: %v", err)
	}
	m, err := rxn.BuildModelFromConfig(cfg)
	if err != nil {
		logger.Fatalf("Error building model: %v", err)
	}
	ctx := m.NewCompileContext()
	ctx.Logger = logger

	res, err := rxn.CompileModel(ctx, m)
	if err != nil {
		logger.Fatalf("Compile failed: %v", err)
	}
	logger.Infof("Compiled %d reactions into %d buckets", len(res.Reactions), res.Table.Size())
	for _, n := range res.Notices {
		fmt.Printf("%-10s %s [%.4e]\n", n.Reaction, n.Pathway, n.Probability)
	}
	if len(res.Warnings) > 0 {
		fmt.Fprintf(os.Stderr, "%d warnings\n", len(res.Warnings))
	}
}
