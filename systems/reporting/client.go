package reporting

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"io/ioutil"
	"net/http"
	"time"

	"github.com/go-home-io/device-monitor/common"
	"github.com/go-home-io/device-monitor/providers"
	"github.com/go-home-io/device-monitor/utils"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

const (
	// Header carrying unique ID of every outbound request.
	headerRequestID = "X-Request-ID"
	// Maximum response size which is read.
	maxResponseSize = 64 * 1024
)

// Response describes collector response.
type Response struct {
	StatusCode int
	Body       []byte
}

// Client posts JSON documents to the collector.
type Client struct {
	http     *http.Client
	store    providers.IConfigStoreProvider
	logger   common.ILoggerProvider
	debug    bool
	truncate int
}

// ConstructClient has data required for a new collector client.
type ConstructClient struct {
	Store    providers.IConfigStoreProvider
	Logger   common.ILoggerProvider
	Timeout  time.Duration
	Debug    bool
	Truncate int
}

// NewClient constructs a new collector client.
func NewClient(ctor *ConstructClient) *Client {
	return &Client{
		http: &http.Client{
			Timeout:   ctor.Timeout,
			Transport: http.DefaultTransport.(*http.Transport).Clone(),
		},
		store:    ctor.Store,
		logger:   ctor.Logger,
		debug:    ctor.Debug,
		truncate: ctor.Truncate,
	}
}

// SendJSON posts body to the url.
// Access token is read from the store on every call.
func (c *Client) SendJSON(ctx context.Context, url string, body interface{}) (*Response, error) {
	data, err := json.Marshal(body)
	if err != nil {
		return nil, errors.Wrap(err, "marshal failed")
	}

	requestID := uuid.New().String()
	if c.debug {
		c.logger.Debug(fmt.Sprintf("sendJSON(\"%s\", \"%s\")", url,
			utils.ShortenIfNeeded(string(data), c.truncate)), common.LogRequestIDToken, requestID)
	}

	req, err := http.NewRequest(http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		return nil, errors.Wrap(err, "request failed")
	}

	req = req.WithContext(ctx)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(headerRequestID, requestID)
	req.Header.Set("Authorization", "Bearer "+c.store.Settings().AccessToken)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "post failed")
	}

	defer resp.Body.Close() // nolint: errcheck
	respData, _ := ioutil.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	result := &Response{StatusCode: resp.StatusCode, Body: respData}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return result, &ErrUnexpectedStatus{Code: resp.StatusCode}
	}

	return result, nil
}

// Close releases idle connections.
func (c *Client) Close() {
	c.http.CloseIdleConnections()
}
