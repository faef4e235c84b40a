package detector

import (
	"fmt"

	"github.com/openmed/species-detect/lib"
)

const StatusSuccess = "success"

// BatchResult is the outcome for one submitted text. Index is the text's
// zero-based position in the batch, which is the identity used to restore
// input ordering after concurrent execution.
type BatchResult struct {
	Index        int          `json:"index"`
	Text         string       `json:"text"`
	Entities     []lib.Entity `json:"entities"`
	SpeciesCount int          `json:"species_count"`
	Status       string       `json:"status"`
}

func (r BatchResult) Succeeded() bool {
	return r.Status == StatusSuccess
}

func errorStatus(err error) string {
	return fmt.Sprintf("error: %s", err)
}
