package detector

import (
	"context"
	"fmt"
	"sort"

	"github.com/alitto/pond"
	"github.com/rs/zerolog/log"

	"github.com/openmed/species-detect/lib"
	"github.com/openmed/species-detect/lib/invoker"
)

const DefaultMaxWorkers = 5

// poolBuffer must exceed any realistic batch size so that submission never
// blocks behind the workers.
const poolBuffer = 1000

// New returns a Detector which fans inference calls for batches of texts out
// over the given invoker backend.
func New(client invoker.Client, opts ...Option) *Detector {
	d := &Detector{
		client:     client,
		maxWorkers: DefaultMaxWorkers,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

type Detector struct {
	client     invoker.Client
	maxWorkers int
}

type Option func(*Detector)

// WithMaxWorkers bounds the number of concurrent inference calls. Values
// below 1 are ignored.
func WithMaxWorkers(n int) Option {
	return func(d *Detector) {
		if n > 0 {
			d.maxWorkers = n
		}
	}
}

// PredictSingle runs inference for one text. Failures are returned to the
// caller rather than degraded to an empty entity list, so that batch results
// can carry an explicit error status per text.
func (d *Detector) PredictSingle(ctx context.Context, text string) ([]lib.Entity, error) {
	entities, err := d.client.Invoke(ctx, text)
	if err != nil {
		log.Error().Err(err).Str("text", truncate(text, 60)).Msg("inference failed")
		return nil, err
	}
	return entities, nil
}

// PredictBatch runs inference for every text concurrently on a bounded
// worker pool and returns one BatchResult per text, in input order. Failures
// are isolated: a failing text is tagged with an error status and its
// siblings are unaffected.
func (d *Detector) PredictBatch(ctx context.Context, texts []string) []BatchResult {
	results := make([]BatchResult, len(texts))

	pool := pond.New(d.maxWorkers, poolBuffer)
	for i, text := range texts {
		i, text := i, text
		pool.Submit(func() {
			results[i] = d.predict(ctx, i, text)
		})
	}
	pool.StopAndWait()

	// Workers write disjoint slots so the slice is already ordered, but the
	// contract is a sort by original index, independent of completion order.
	sort.Slice(results, func(a, b int) bool {
		return results[a].Index < results[b].Index
	})

	return results
}

func (d *Detector) predict(ctx context.Context, index int, text string) (result BatchResult) {
	// A panicking worker must not take its siblings down with it.
	defer func() {
		if r := recover(); r != nil {
			log.Error().Int("index", index).Interface("panic", r).Msg("worker fault")
			result = BatchResult{
				Index:    index,
				Text:     text,
				Entities: []lib.Entity{},
				Status:   errorStatus(fmt.Errorf("%v", r)),
			}
		}
	}()

	entities, err := d.PredictSingle(ctx, text)
	if err != nil {
		return BatchResult{
			Index:    index,
			Text:     text,
			Entities: []lib.Entity{},
			Status:   errorStatus(err),
		}
	}

	return BatchResult{
		Index:        index,
		Text:         text,
		Entities:     entities,
		SpeciesCount: len(entities),
		Status:       StatusSuccess,
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
