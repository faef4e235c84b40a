package http_invoker

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/openmed/species-detect/lib"
	"github.com/openmed/species-detect/lib/invoker"
)

// New returns a Client which talks to a model serving container over plain
// HTTP, e.g. a locally run inference image exposing the same contract as the
// hosted endpoint.
func New(url string) invoker.Client {
	return &httpInvoker{
		Url:        url,
		httpClient: http.DefaultClient,
	}
}

type httpInvoker struct {
	Url        string
	httpClient lib.HttpClient
}

func (h *httpInvoker) Invoke(ctx context.Context, text string) ([]lib.Entity, error) {
	body, err := json.Marshal(invoker.Payload{Inputs: text})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, h.Url, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := h.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("inference endpoint returned %d: %s", resp.StatusCode, b)
	}

	return invoker.DecodeEntities(b)
}
