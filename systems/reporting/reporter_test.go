package reporting

import (
	"encoding/json"
	"io/ioutil"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/fortytw2/leaktest"
	"github.com/go-home-io/device-monitor/enums"
	"github.com/go-home-io/device-monitor/mocks"
	"github.com/go-home-io/device-monitor/providers"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type request struct {
	path    string
	auth    string
	id      string
	content string
	body    map[string]interface{}
}

type collector struct {
	sync.Mutex
	ts       *httptest.Server
	requests chan *request
	status   int
}

func newCollector(status int) *collector {
	c := &collector{requests: make(chan *request, 100), status: status}
	c.ts = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		data, _ := ioutil.ReadAll(r.Body)
		body := make(map[string]interface{})
		json.Unmarshal(data, &body) // nolint: errcheck
		c.requests <- &request{
			path:    r.URL.Path,
			auth:    r.Header.Get("Authorization"),
			id:      r.Header.Get(headerRequestID),
			content: r.Header.Get("Content-Type"),
			body:    body,
		}
		w.WriteHeader(c.status)
	}))

	return c
}

func (c *collector) next(t *testing.T) *request {
	select {
	case r := <-c.requests:
		return r
	case <-time.After(3 * time.Second):
		require.Fail(t, "request timeout")
	}

	return nil
}

func (c *collector) none(t *testing.T) {
	select {
	case r := <-c.requests:
		require.Fail(t, "unexpected request", r.path)
	case <-time.After(200 * time.Millisecond):
	}
}

func getReporter(url string, modify func(s *providers.MonitorSettings)) (*Reporter, *prometheus.Registry) {
	settings := mocks.FakeNewSettings(nil).Monitor
	if nil != modify {
		modify(settings)
	}

	reg := prometheus.NewRegistry()
	r := NewReporter(&ConstructReporter{
		Logger:   mocks.FakeNewLogger(nil),
		Store:    mocks.FakeNewConfigStore(url, "secret"),
		Settings: settings,
		Registry: reg,
	})

	return r, reg
}

// Tests collector URLs and headers.
func TestReportURLs(t *testing.T) {
	c := newCollector(http.StatusOK)
	defer c.ts.Close()
	r, _ := getReporter(c.ts.URL+"/", nil)
	defer r.Stop()

	r.Heartbeat(&providers.HeartbeatMessage{InstallationIsUp: true, MonitorVersion: "0.6.1"})
	req := c.next(t)
	assert.Equal(t, "/heartbeat", req.path, "heartbeat path")
	assert.Equal(t, "Bearer secret", req.auth, "auth")
	assert.Equal(t, "application/json", req.content, "content type")
	assert.NotEqual(t, "", req.id, "request id")
	assert.Equal(t, true, req.body["installationIsUp"], "heartbeat body")

	r.DeviceStatus("Spot.b.b", &providers.StatusMessage{DeviceType: enums.DevSpot,
		Data: make([]*providers.DeviceData, 0)})
	req = c.next(t)
	assert.Equal(t, "/device/Spot.b.b", req.path, "status path")
	assert.Equal(t, "Spot", req.body["deviceType"], "status body")

	r.Challenge("Network.p1", enums.ChError, "lamp")
	req = c.next(t)
	assert.Equal(t, "/device/Network.p1/challenge", req.path, "challenge path")
	assert.Equal(t, "error", req.body["state"], "challenge state")
	assert.Equal(t, "lamp", req.body["text"], "challenge text")

	r.Log(".", enums.LogWarning, "hello")
	req = c.next(t)
	assert.Equal(t, "/log/.", req.path, "log path")
	assert.Equal(t, "hello", req.body["message"], "log message")
	assert.Equal(t, float64(enums.LogWarning), req.body["level"], "log level")
}

// Tests that messages below minimal level are dropped.
func TestLogLevelGate(t *testing.T) {
	c := newCollector(http.StatusOK)
	defer c.ts.Close()
	r, _ := getReporter(c.ts.URL, nil)
	defer r.Stop()

	r.Log(".", enums.LogDebug, "debug")
	c.none(t)
	assert.Equal(t, float64(1), testutil.ToFloat64(r.metrics.dropped.WithLabelValues(kindLog, reasonLevel)),
		"dropped")

	r.Log(".", enums.LogInfo, "info")
	assert.Equal(t, "info", c.next(t).body["message"], "info message")
}

// Tests log rate limiting.
func TestLogRateLimit(t *testing.T) {
	c := newCollector(http.StatusOK)
	defer c.ts.Close()
	r, _ := getReporter(c.ts.URL, func(s *providers.MonitorSettings) {
		s.LogRate = 0.001
		s.LogBurst = 2
	})
	defer r.Stop()

	for i := 0; i < 5; i++ {
		r.Log("Network.p1", enums.LogError, "error")
	}

	c.next(t)
	c.next(t)
	c.none(t)
	assert.Equal(t, float64(3), testutil.ToFloat64(r.metrics.dropped.WithLabelValues(kindLog, reasonRate)),
		"dropped")
}

// Tests repeated challenges suppression.
func TestChallengeRepeat(t *testing.T) {
	c := newCollector(http.StatusOK)
	defer c.ts.Close()
	r, _ := getReporter(c.ts.URL, nil)
	defer r.Stop()

	r.Challenge("Network.p1", enums.ChWarning, "filter")
	c.next(t)
	r.Challenge("Network.p1", enums.ChWarning, "filter")
	c.none(t)

	r.Challenge("Network.p1", enums.ChError, "lamp")
	assert.Equal(t, "error", c.next(t).body["state"], "escalation")

	r.DeviceStatus("Network.p1", &providers.StatusMessage{ChallengeStatus: enums.ChNoChallenge})
	c.next(t)
	r.Challenge("Network.p1", enums.ChError, "lamp")
	assert.Equal(t, "/device/Network.p1/challenge", c.next(t).path, "after recovery")
}

// Tests that disabled repeat window posts every challenge.
func TestChallengeNoRepeat(t *testing.T) {
	c := newCollector(http.StatusOK)
	defer c.ts.Close()
	r, _ := getReporter(c.ts.URL, func(s *providers.MonitorSettings) {
		s.ChallengeRepeat = 0
	})
	defer r.Stop()

	r.Challenge("Network.p1", enums.ChWarning, "filter")
	r.Challenge("Network.p1", enums.ChWarning, "filter")
	c.next(t)
	c.next(t)
}

// Tests failed requests accounting.
func TestFailedRequest(t *testing.T) {
	c := newCollector(http.StatusInternalServerError)
	defer c.ts.Close()

	logged := make(chan string, 10)
	settings := mocks.FakeNewSettings(nil).Monitor
	settings.Debug = true
	r := NewReporter(&ConstructReporter{
		Logger: mocks.FakeNewLogger(func(msg string) {
			if "Collector request failed" == msg {
				logged <- msg
			}
		}),
		Store:    mocks.FakeNewConfigStore(c.ts.URL, ""),
		Settings: settings,
	})
	defer r.Stop()

	r.Heartbeat(&providers.HeartbeatMessage{})
	req := c.next(t)
	assert.Equal(t, "Bearer", strings.TrimSpace(req.auth), "empty token")

	select {
	case <-logged:
	case <-time.After(3 * time.Second):
		require.Fail(t, "failure was not logged")
	}

	assert.Equal(t, float64(1), testutil.ToFloat64(r.metrics.reports.WithLabelValues(kindHeartbeat, resultFailed)),
		"failed")
}

// Counts collector requests, every response takes delay.
func newCountingCollector(delay time.Duration) (*httptest.Server, *int32, *sync.Map) {
	count := new(int32)
	auth := &sync.Map{}
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(delay)
		auth.Store(r.Header.Get("Authorization"), true)
		atomic.AddInt32(count, 1)
		w.WriteHeader(http.StatusOK)
	}))

	return ts, count, auth
}

// Tests that slow collector does not cause lost status pushes.
func TestSlowCollector(t *testing.T) {
	ts, count, _ := newCountingCollector(2 * time.Millisecond)
	defer ts.Close()

	warned := int32(0)
	settings := mocks.FakeNewSettings(nil).Monitor
	settings.BacklogWarning = 100
	r := NewReporter(&ConstructReporter{
		Logger: mocks.FakeNewLogger(func(msg string) {
			if strings.HasPrefix(msg, "Reporting backlog is growing") {
				atomic.AddInt32(&warned, 1)
			}
		}),
		Store:    mocks.FakeNewConfigStore(ts.URL, "secret"),
		Settings: settings,
	})
	defer r.Stop()

	for i := 0; i < 300; i++ {
		r.DeviceStatus("Network.p"+strconv.Itoa(i), &providers.StatusMessage{DeviceType: enums.DevNetworkTCP})
	}

	require.Eventually(t, func() bool {
		return 300 == atomic.LoadInt32(count)
	}, 10*time.Second, 10*time.Millisecond, "delivered")
	assert.Equal(t, int32(1), atomic.LoadInt32(&warned), "backlog warning")
	assert.Equal(t, float64(0), testutil.ToFloat64(r.metrics.backlog), "backlog drained")
}

// Tests that every message at or above minimal level is posted with default settings.
func TestLogNotLimitedByDefault(t *testing.T) {
	ts, count, _ := newCountingCollector(0)
	defer ts.Close()
	r, _ := getReporter(ts.URL, nil)
	defer r.Stop()

	for i := 0; i < 40; i++ {
		r.Log(".", enums.LogError, "m")
	}

	require.Eventually(t, func() bool {
		return 40 == atomic.LoadInt32(count)
	}, 5*time.Second, 10*time.Millisecond, "delivered")
	assert.Equal(t, float64(0), testutil.ToFloat64(r.metrics.dropped.WithLabelValues(kindLog, reasonRate)),
		"dropped")
}

// Tests that authorization header is sent with the default empty token.
func TestEmptyToken(t *testing.T) {
	ts, count, auth := newCountingCollector(0)
	defer ts.Close()

	r := NewReporter(&ConstructReporter{
		Logger:   mocks.FakeNewLogger(nil),
		Store:    mocks.FakeNewConfigStore(ts.URL, ""),
		Settings: mocks.FakeNewSettings(nil).Monitor,
	})
	defer r.Stop()

	r.Heartbeat(&providers.HeartbeatMessage{})
	require.Eventually(t, func() bool {
		return 1 == atomic.LoadInt32(count)
	}, 3*time.Second, 10*time.Millisecond, "delivered")

	_, missing := auth.Load("")
	assert.False(t, missing, "header is missing")
	_, ok := auth.Load("Bearer")
	assert.True(t, ok, "bearer header")
}

// Tests that challenge rejected by stopped reporter is not remembered.
func TestChallengeNotQueued(t *testing.T) {
	r, _ := getReporter("", nil)
	r.Stop()

	r.Challenge("Network.p1", enums.ChError, "lamp")
	_, ok := r.challenges.Get("Network.p1")
	assert.False(t, ok, "remembered")
	assert.Equal(t, float64(1), testutil.ToFloat64(r.metrics.dropped.WithLabelValues(kindChallenge, reasonStopped)),
		"dropped")
}

// Tests reports without server URL.
func TestNoServerURL(t *testing.T) {
	r, _ := getReporter("", nil)
	defer r.Stop()

	r.Heartbeat(&providers.HeartbeatMessage{})
	require.Eventually(t, func() bool {
		return 1 == testutil.ToFloat64(r.metrics.dropped.WithLabelValues(kindHeartbeat, reasonNoURL))
	}, 3*time.Second, 10*time.Millisecond, "dropped")
}

// Tests gauges exposure.
func TestGauges(t *testing.T) {
	r, reg := getReporter("", nil)
	defer r.Stop()

	r.UpdateGauges(3, true)
	assert.Equal(t, float64(3), testutil.ToFloat64(r.metrics.registeredDevices), "registered")
	assert.Equal(t, float64(1), testutil.ToFloat64(r.metrics.installationUp), "up")

	families, err := reg.Gather()
	require.NoError(t, err, "gather")
	names := make([]string, 0)
	for _, v := range families {
		names = append(names, v.GetName())
	}

	assert.Contains(t, strings.Join(names, ","), "monitor_registered_devices", "registry")
}

// Tests that dispatcher stops and later calls are ignored.
func TestStop(t *testing.T) {
	defer leaktest.Check(t)()

	c := newCollector(http.StatusOK)
	defer c.ts.Close()
	r, _ := getReporter(c.ts.URL, nil)
	r.Heartbeat(&providers.HeartbeatMessage{})
	c.next(t)

	r.Stop()
	r.Stop()
	r.Heartbeat(&providers.HeartbeatMessage{})
	c.none(t)
	assert.Equal(t, float64(1), testutil.ToFloat64(r.metrics.dropped.WithLabelValues(kindHeartbeat, reasonStopped)),
		"dropped")
}
