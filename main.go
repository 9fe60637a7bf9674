package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"strings"

	"github.com/dontcallmebro/BQL-APP/mainfuncs"
	"github.com/dontcallmebro/BQL-APP/util"
)

func main() {
	input := flag.String("input", "", "quote file (.csv or .json, optionally .zst)")
	output := flag.String("output", "calibrations.csv", "result file, .zst compresses")
	beta := flag.Float64("beta", -1, "SABR beta in [0, 1], defaults to SABR_BETA")
	parallel := flag.Bool("parallel", false, "calibrate tenors concurrently")
	persist := flag.Bool("persist", false, "store results in the database")
	serve := flag.Bool("serve", false, "run the HTTP API")
	synthetic := flag.Bool("synthetic", false, "calibrate a generated series instead of -input")
	tenors := flag.String("tenors", "", "comma separated tenors to keep, e.g. 1M,3M")
	env := flag.String("env", ".", "directory holding the .env file")
	flag.Parse()

	config, err := util.LoadConfig(*env)
	log := util.NewLogger(config.LogLevel, os.Stderr)
	if err != nil {
		log.Fatal().Err(err).Msg("cannot load config")
	}

	if *serve {
		if err := mainfuncs.Serve(config, log); err != nil {
			log.Fatal().Err(err).Msg("server stopped")
		}
		return
	}

	if *beta < 0 {
		*beta = config.Beta
	}
	var selected []string
	if *tenors != "" {
		selected = strings.Split(*tenors, ",")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	opts := mainfuncs.Options{
		Input:     *input,
		Output:    *output,
		Synthetic: *synthetic,
		Tenors:    selected,
		Beta:      *beta,
		Parallel:  *parallel,
		Persist:   *persist,
		Progress:  true,
	}
	if _, err := mainfuncs.Calibrate(ctx, opts, config, log); err != nil {
		log.Fatal().Err(err).Msg("calibration failed")
	}
}
