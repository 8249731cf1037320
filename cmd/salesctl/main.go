package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/retailops/sales-analytics/internal/application/pipeline"
	"github.com/retailops/sales-analytics/internal/cli"
	"github.com/retailops/sales-analytics/internal/infrastructure/config"
)

var version = "dev"

func main() {
	var configFile string
	flag.StringVar(&configFile, "config", "", "Configuration file path")
	flag.Parse()

	args := flag.Args()
	if len(args) == 0 {
		printUsage()
		os.Exit(1)
	}

	subcommand := args[0]
	subArgs := args[1:]

	cfg := config.LoadOrEnv(configFile)

	switch subcommand {
	case "analyze":
		flags, err := cli.ParseAnalyzeFlags(subArgs)
		if err != nil {
			os.Exit(2)
		}
		if err := cli.RunAnalyze(cfg, flags); err != nil {
			if errors.Is(err, pipeline.ErrNoTransactions) {
				fmt.Println("\nNo valid transactions to analyze.")
				os.Exit(1)
			}
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "serve":
		flags, err := cli.ParseServeFlags(subArgs)
		if err != nil {
			os.Exit(2)
		}
		if err := cli.RunServe(cfg, flags); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "version":
		fmt.Printf("salesctl %s\n", version)
	default:
		fmt.Printf("Unknown subcommand: %s\n\n", subcommand)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println("Sales Analytics CLI")
	fmt.Println("===================")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  salesctl [global options] <command> [options]")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  analyze             Run the analysis pipeline and write reports")
	fmt.Println("  serve               Start the HTTP API server")
	fmt.Println("  version             Print the version")
	fmt.Println()
	fmt.Println("Global Options:")
	fmt.Println("  -config string      Configuration file path (default config.yaml)")
	fmt.Println()
	fmt.Println("Analyze Options:")
	fmt.Println("  -input string       Sales data file")
	fmt.Println("  -region string      Only include transactions from this region")
	fmt.Println("  -min string         Minimum transaction amount")
	fmt.Println("  -max string         Maximum transaction amount")
	fmt.Println("  -top int            Number of top products to report")
	fmt.Println("  -threshold int      Units-sold threshold for low performers")
	fmt.Println("  -output string      Directory for report files")
	fmt.Println("  -no-enrich          Skip catalog enrichment")
	fmt.Println("  -verbose            Verbose output")
}
