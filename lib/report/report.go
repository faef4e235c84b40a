package report

import (
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/openmed/species-detect/lib/detector"
)

const topSpeciesCount = 5

// Write renders a human readable report of a batch run: summary counts,
// per-text detail and aggregate statistics over the detected species.
func Write(w io.Writer, results []detector.BatchResult, took time.Duration) {
	fmt.Fprintf(w, "Processing completed in %.2f seconds\n", took.Seconds())
	if len(results) > 0 {
		fmt.Fprintf(w, "Average time per text: %.3f seconds\n", took.Seconds()/float64(len(results)))
	}

	writeSummary(w, results)
	writeDetails(w, results)
	writeSpeciesAnalysis(w, results)
}

func writeSummary(w io.Writer, results []detector.BatchResult) {
	successful := 0
	totalSpecies := 0
	for _, result := range results {
		if result.Succeeded() {
			successful++
		}
		totalSpecies += result.SpeciesCount
	}

	fmt.Fprintf(w, "\n=== Results Summary ===\n")
	fmt.Fprintf(w, "Texts processed: %d\n", len(results))
	fmt.Fprintf(w, "Successful predictions: %d\n", successful)
	fmt.Fprintf(w, "Total species detected: %d\n", totalSpecies)
	if len(results) > 0 {
		fmt.Fprintf(w, "Average species per text: %.2f\n", float64(totalSpecies)/float64(len(results)))
	}
}

func writeDetails(w io.Writer, results []detector.BatchResult) {
	fmt.Fprintf(w, "\n=== Detailed Results ===\n")
	for i, result := range results {
		fmt.Fprintf(w, "\nText %d: %s\n", i+1, truncate(result.Text, 60))
		fmt.Fprintf(w, "Status: %s\n", result.Status)
		fmt.Fprintf(w, "Species found: %d\n", result.SpeciesCount)

		for _, entity := range result.Entities {
			fmt.Fprintf(w, "  - %s (confidence: %.3f)\n", entity.Word, entity.Score)
		}
	}
}

type speciesStat struct {
	species    string
	count      int
	totalScore float64
}

func writeSpeciesAnalysis(w io.Writer, results []detector.BatchResult) {
	var scores []float64
	byName := map[string]*speciesStat{}
	for _, result := range results {
		for _, entity := range result.Entities {
			scores = append(scores, entity.Score)
			stat, ok := byName[entity.Word]
			if !ok {
				stat = &speciesStat{species: entity.Word}
				byName[entity.Word] = stat
			}
			stat.count++
			stat.totalScore += entity.Score
		}
	}

	if len(scores) == 0 {
		return
	}

	stats := make([]*speciesStat, 0, len(byName))
	for _, stat := range byName {
		stats = append(stats, stat)
	}
	// Most frequent first, ties broken by name for stable output.
	sort.Slice(stats, func(a, b int) bool {
		if stats[a].count != stats[b].count {
			return stats[a].count > stats[b].count
		}
		return stats[a].species < stats[b].species
	})
	if len(stats) > topSpeciesCount {
		stats = stats[:topSpeciesCount]
	}

	fmt.Fprintf(w, "\n=== Species Analysis ===\n")
	fmt.Fprintf(w, "Most common species:\n")
	for _, stat := range stats {
		fmt.Fprintf(w, "  %s: %d occurrences (avg confidence: %.3f)\n",
			stat.species, stat.count, stat.totalScore/float64(stat.count))
	}

	mean, min, max := confidenceStats(scores)
	fmt.Fprintf(w, "\nConfidence statistics:\n")
	fmt.Fprintf(w, "  Mean confidence: %.3f\n", mean)
	fmt.Fprintf(w, "  Min confidence: %.3f\n", min)
	fmt.Fprintf(w, "  Max confidence: %.3f\n", max)
}

func confidenceStats(scores []float64) (mean, min, max float64) {
	min, max = scores[0], scores[0]
	total := 0.0
	for _, score := range scores {
		total += score
		if score < min {
			min = score
		}
		if score > max {
			max = score
		}
	}
	return total / float64(len(scores)), min, max
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
