package lib

import "net/http"

// HttpClient is the part of http.Client we use, so that tests can swap in
// a mock.
type HttpClient interface {
	Do(req *http.Request) (*http.Response, error)
}
