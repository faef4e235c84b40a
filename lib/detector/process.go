package detector

import (
	"context"
	"os"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/openmed/species-detect/lib/tabular"
)

const DefaultTextColumn = "text"

// ProcessFile reads texts from the named column of a CSV file, runs them
// through PredictBatch and returns the flattened per-entity rows. A missing
// column fails the whole call with tabular.MissingColumnError before any
// inference is attempted.
func (d *Detector) ProcessFile(ctx context.Context, path, column string) ([]tabular.Row, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	texts, err := tabular.ReadColumn(file, column)
	if err != nil {
		return nil, err
	}

	log.Info().Int("texts", len(texts)).Str("path", path).Msg("processing file")
	start := time.Now()

	results := d.PredictBatch(ctx, texts)

	log.Info().Dur("took", time.Since(start)).Msg("processing complete")

	return Flatten(results), nil
}

// Flatten emits one row per detected entity. Results with no entities
// contribute no rows, so texts where nothing was detected are absent from
// the flattened output.
func Flatten(results []BatchResult) []tabular.Row {
	var rows []tabular.Row
	for _, result := range results {
		for _, entity := range result.Entities {
			rows = append(rows, tabular.Row{
				OriginalIndex: result.Index,
				OriginalText:  result.Text,
				Species:       entity.Word,
				Confidence:    entity.Score,
				StartPosition: entity.Start,
				EndPosition:   entity.End,
				Status:        result.Status,
			})
		}
	}
	return rows
}
