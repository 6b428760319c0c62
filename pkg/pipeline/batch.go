package pipeline

import (
	"context"
	"runtime"

	"github.com/Beastly713/sssolve/pkg/field"
	"github.com/Beastly713/sssolve/pkg/report"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// BatchConfig holds the parameters shared by every case in a batch.
type BatchConfig struct {
	Field   *field.Field
	Workers int
	Logger  zerolog.Logger
}

// Batch solves independent cases concurrently. A failing case is recorded in
// its result and logged; it never stops the others. Results keep the order of
// cases. Cancelling ctx marks cases that have not started as Canceled.
func Batch(ctx context.Context, cases []Case, config BatchConfig) []report.Result {
	workers := config.Workers
	if workers < 1 {
		workers = runtime.NumCPU()
	}

	results := make([]report.Result, len(cases))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, c := range cases {
		g.Go(func() error {
			results[i] = solveCase(gctx, c, config)
			return nil
		})
	}

	// Workers only ever return nil.
	_ = g.Wait()

	return results
}

func solveCase(ctx context.Context, c Case, config BatchConfig) report.Result {
	log := config.Logger.With().Str("case", c.Name).Logger()

	if c.Err != nil {
		log.Error().Str("kind", Kind(c.Err)).Err(c.Err).Msg("case could not be loaded")
		return failure(c.Name, c.Err)
	}

	if err := ctx.Err(); err != nil {
		log.Warn().Err(err).Msg("case skipped")
		return failure(c.Name, err)
	}

	secret, err := SolveDocument(c.Data, config.Field)
	if err != nil {
		log.Error().Str("kind", Kind(err)).Err(err).Msg("reconstruction failed")
		return failure(c.Name, err)
	}

	log.Debug().Msg("secret reconstructed")
	return report.Result{Name: c.Name, Secret: secret}
}

func failure(name string, err error) report.Result {
	return report.Result{
		Name:  name,
		Kind:  Kind(err),
		Error: err.Error(),
	}
}
