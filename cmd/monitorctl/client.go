package main

import (
	"fmt"
	"io/ioutil"
	"net/http"
	"strings"
	"time"

	"github.com/pkg/errors"
)

// errMissingArgument defines missing positional argument error.
type errMissingArgument struct {
	Name string
}

// Error formats output.
func (e *errMissingArgument) Error() string {
	return fmt.Sprintf("%s argument is required", e.Name)
}

// errAPI defines non-successful API response.
type errAPI struct {
	Code int
	Body string
}

// Error formats output.
func (e *errAPI) Error() string {
	return fmt.Sprintf("api responded with %d: %s", e.Code, strings.TrimSpace(e.Body))
}

// Control API client.
type apiClient struct {
	base   string
	client *http.Client
}

// Constructs a new API client.
func newAPIClient(base string, timeout int) *apiClient {
	return &apiClient{
		base:   strings.TrimRight(base, "/") + routeAPI,
		client: &http.Client{Timeout: time.Duration(timeout) * time.Second},
	}
}

// Performs API call and returns response body.
func (c *apiClient) do(method string, path string, body string) (string, error) {
	req, err := http.NewRequest(method, c.base+path, strings.NewReader(body))
	if err != nil {
		return "", errors.Wrap(err, "request failed")
	}

	req.Header.Set("Content-Type", "text/plain")
	resp, err := c.client.Do(req)
	if err != nil {
		return "", errors.Wrap(err, "call failed")
	}

	defer resp.Body.Close() // nolint: errcheck
	data, err := ioutil.ReadAll(resp.Body)
	if err != nil {
		return "", errors.Wrap(err, "read failed")
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &errAPI{Code: resp.StatusCode, Body: string(data)}
	}

	return string(data), nil
}
