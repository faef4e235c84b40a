package lib

// Entity is a single detected span as returned by the inference endpoint.
// The payload is opaque to us: we decode it and pass it through without
// further validation.
type Entity struct {
	Word  string  `json:"word"`
	Score float64 `json:"score"`
	Start int     `json:"start"`
	End   int     `json:"end"`
}
