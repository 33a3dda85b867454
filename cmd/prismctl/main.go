// Command prismctl builds one of a small set of worked financial
// models and runs validate/compute/solve against it, printing the
// requested node's value. It exists to exercise canvas end to end from
// a single entry point, the way the pack's examples/ programs exercise
// one algorithm each.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/prismfinance/engine/canvas"
)

func main() {
	modelName := flag.String("model", "circular-fee", "worked model to run: circular-fee, cash-flow-sweep, lbo")
	op := flag.String("op", "solve", "operation: validate, compute, solve")
	verbose := flag.Bool("v", false, "enable debug logging")
	flag.Parse()

	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).
		With().Timestamp().Logger()
	if *verbose {
		log = log.Level(zerolog.DebugLevel)
	} else {
		log = log.Level(zerolog.InfoLevel)
	}

	if err := run(log, *modelName, *op); err != nil {
		log.Error().Err(err).Msg("prismctl failed")
		os.Exit(1)
	}
}

func run(log zerolog.Logger, modelName, op string) error {
	m, ok := models[modelName]
	if !ok {
		return fmt.Errorf("prismctl: unknown model %q", modelName)
	}

	c := canvas.New()
	c.Enter()
	defer c.Exit()

	outputs, err := m.build(c)
	if err != nil {
		return fmt.Errorf("build: %w", err)
	}
	log.Debug().Int("nodes", len(outputs)).Msg("model built")

	switch op {
	case "validate":
		if err := c.Validate(); err != nil {
			return err
		}
		log.Info().Msg("validate: ok")
		return nil

	case "compute", "solve":
		if err := c.Validate(); err != nil {
			return err
		}
		if err := c.ComputeAll(); err != nil {
			return fmt.Errorf("compute: %w", err)
		}
		if op == "solve" {
			warnings, err := c.Solve()
			if err != nil {
				return fmt.Errorf("solve: %w", err)
			}
			for _, w := range warnings {
				log.Warn().Msg(w)
			}
		}
		for _, name := range m.report {
			v, ok := outputs[name]
			if !ok {
				continue
			}
			values, err := c.GetValue(v)
			if err != nil {
				return fmt.Errorf("get value for %s: %w", name, err)
			}
			log.Info().Str("node", name).Floats64("values", values).Msg("result")
		}
		return nil

	default:
		return fmt.Errorf("prismctl: unknown op %q", op)
	}
}
