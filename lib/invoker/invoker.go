package invoker

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/openmed/species-detect/lib"
)

// Client performs a single blocking inference call against the hosted
// species detection model.
type Client interface {
	Invoke(ctx context.Context, text string) ([]lib.Entity, error)
}

// Payload is the request shape every backend sends.
type Payload struct {
	Inputs string `json:"inputs"`
}

// DecodeEntities decodes an inference response body. Hosted NER containers
// return either a flat array of entities or one array per input, so a single
// input can come back as [...] or [[...]]. Both shapes are accepted.
func DecodeEntities(body []byte) ([]lib.Entity, error) {
	var entities []lib.Entity
	if err := json.Unmarshal(body, &entities); err == nil {
		return entities, nil
	}

	var nested [][]lib.Entity
	if err := json.Unmarshal(body, &nested); err != nil {
		return nil, fmt.Errorf("unexpected inference response shape: %w", err)
	}
	if len(nested) == 0 {
		return nil, nil
	}
	return nested[0], nil
}
