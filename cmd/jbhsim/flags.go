package main

import (
	"github.com/urfave/cli/v2"
)

const (
	flagConfig     = "config"
	flagIterations = "iterations"
	flagMin        = "min"
	flagMax        = "max"
	flagFactor     = "factor"
	flagWorkers    = "workers"
	flagSeed       = "seed"
	flagOut        = "out"
	flagAlgorithms = "algorithms"
	flagNoProgress = "no-progress"
	flagIn         = "in"
	flagVerbose    = "verbose"
)

var (
	globalFlags = []cli.Flag{
		&cli.BoolFlag{
			Name:  flagVerbose,
			Usage: "Whether to enable debug logs.",
		},
	}

	runFlags = []cli.Flag{
		&cli.StringFlag{
			Name:  flagConfig,
			Usage: "Path to a YAML config; its simulation section provides defaults for the flags below.",
		},
		&cli.IntFlag{
			Name:  flagIterations,
			Usage: "Random keys mapped per bucket count and algorithm.",
		},
		&cli.IntFlag{
			Name:  flagMin,
			Usage: "Smallest bucket count of the grid.",
		},
		&cli.IntFlag{
			Name:  flagMax,
			Usage: "Largest bucket count of the grid.",
		},
		&cli.Float64Flag{
			Name:  flagFactor,
			Usage: "Ratio between neighbouring bucket counts, in (0, 1).",
		},
		&cli.IntFlag{
			Name:  flagWorkers,
			Usage: "Bucket counts simulated concurrently. Defaults to GOMAXPROCS.",
		},
		&cli.Uint64Flag{
			Name:  flagSeed,
			Usage: "Seed of the key streams.",
		},
		&cli.StringFlag{
			Name:    flagOut,
			Aliases: []string{"o"},
			Usage:   "Report path, '-' for stdout.",
		},
		&cli.StringSliceFlag{
			Name:  flagAlgorithms,
			Usage: "Algorithms to simulate, e.g. jumphash,jumpback,jumpback32.",
		},
		&cli.BoolFlag{
			Name:  flagNoProgress,
			Usage: "Whether to disable the progress bar.",
		},
	}

	checkFlags = []cli.Flag{
		&cli.StringFlag{
			Name:     flagIn,
			Aliases:  []string{"i"},
			Usage:    "Report written by the run command.",
			Required: true,
		},
	}
)
