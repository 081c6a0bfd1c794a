// Package reporting contains collector reporting client.
package reporting

import (
	"context"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-home-io/device-monitor/common"
	"github.com/go-home-io/device-monitor/enums"
	"github.com/go-home-io/device-monitor/providers"
	"github.com/patrickmn/go-cache"
	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/time/rate"
)

const (
	// Logger system.
	logSystem = "reporting"

	kindHeartbeat = "heartbeat"
	kindStatus    = "status"
	kindChallenge = "challenge"
	kindLog       = "log"
)

// Queued collector request.
type task struct {
	kind string
	path string
	body interface{}
}

// Reporter implements IReportingProvider.
// Every call is queued and delivered by a single dispatcher goroutine.
// Queue is unbounded, reports are never dropped because of a slow collector.
type Reporter struct {
	sync.Mutex
	logger   common.ILoggerProvider
	store    providers.IConfigStoreProvider
	client   *Client
	debug    bool
	minLevel enums.LogLevel
	repeat   time.Duration

	pending    []*task
	wake       chan struct{}
	warnAt     int
	warned     bool
	ctx        context.Context
	cancel     context.CancelFunc
	done       chan struct{}
	stopped    bool
	limiter    *rate.Limiter
	challenges *cache.Cache
	metrics    *metrics
}

// ConstructReporter has data required for a new reporter.
type ConstructReporter struct {
	Logger   common.ILoggerProvider
	Store    providers.IConfigStoreProvider
	Settings *providers.MonitorSettings
	Registry prometheus.Registerer
}

// NewReporter constructs a new reporter and starts dispatcher.
func NewReporter(ctor *ConstructReporter) *Reporter {
	s := ctor.Settings
	reg := ctor.Registry
	if nil == reg {
		reg = prometheus.NewRegistry()
	}

	repeat := time.Duration(s.ChallengeRepeat) * time.Second
	cleanup := repeat * 2
	if cleanup <= 0 {
		cleanup = time.Minute
	}

	ctx, cancel := context.WithCancel(context.Background())
	r := &Reporter{
		logger:   ctor.Logger,
		store:    ctor.Store,
		debug:    s.Debug,
		minLevel: s.MinLogLevel,
		repeat:   repeat,
		client: NewClient(&ConstructClient{
			Store:    ctor.Store,
			Logger:   ctor.Logger,
			Timeout:  time.Duration(s.HTTPTimeout) * time.Second,
			Debug:    s.Debug,
			Truncate: s.DebugTruncate,
		}),
		pending:    make([]*task, 0),
		wake:       make(chan struct{}, 1),
		warnAt:     s.BacklogWarning,
		ctx:        ctx,
		cancel:     cancel,
		done:       make(chan struct{}),
		challenges: cache.New(repeat, cleanup),
		metrics:    newMetrics(reg),
	}

	if s.LogRate > 0 {
		r.limiter = rate.NewLimiter(rate.Limit(s.LogRate), s.LogBurst)
	}

	go r.dispatch()
	return r
}

// Heartbeat queues liveness beacon.
func (r *Reporter) Heartbeat(msg *providers.HeartbeatMessage) {
	r.enqueue(&task{kind: kindHeartbeat, path: "/heartbeat", body: msg})
}

// DeviceStatus queues device status snapshot.
// Healthy status resets challenge repeat suppression.
func (r *Reporter) DeviceStatus(path string, msg *providers.StatusMessage) {
	if !msg.ChallengeStatus.IsProblem() {
		r.challenges.Delete(path)
	}

	r.enqueue(&task{kind: kindStatus, path: "/device/" + url.PathEscape(path), body: msg})
}

// Challenge queues device problem report.
// Identical challenge within repeat window is suppressed.
func (r *Reporter) Challenge(path string, state enums.ChallengeState, text string) {
	key := state.String() + "|" + text
	if r.repeat > 0 {
		if last, ok := r.challenges.Get(path); ok && last.(string) == key {
			r.metrics.dropped.WithLabelValues(kindChallenge, reasonDuplicate).Inc()
			return
		}
	}

	queued := r.enqueue(&task{
		kind: kindChallenge,
		path: "/device/" + url.PathEscape(path) + "/challenge",
		body: &providers.ChallengeMessage{State: state, Text: text, Timestamp: time.Now().UTC()},
	})

	if queued && r.repeat > 0 {
		r.challenges.Set(path, key, cache.DefaultExpiration)
	}
}

// Log queues message for the collector log channel.
// Messages below minimal level are dropped, optional rate limit applies to the rest.
func (r *Reporter) Log(origin string, level enums.LogLevel, message string) {
	if level < r.minLevel {
		r.metrics.dropped.WithLabelValues(kindLog, reasonLevel).Inc()
		return
	}

	if nil != r.limiter && !r.limiter.Allow() {
		r.metrics.dropped.WithLabelValues(kindLog, reasonRate).Inc()
		return
	}

	r.enqueue(&task{
		kind: kindLog,
		path: "/log/" + url.PathEscape(origin),
		body: &providers.LogMessage{Level: level, Message: message, Timestamp: time.Now().UTC()},
	})
}

// UpdateGauges sets monitor state gauges.
func (r *Reporter) UpdateGauges(registered int, installationUp bool) {
	r.metrics.registeredDevices.Set(float64(registered))
	up := 0.0
	if installationUp {
		up = 1
	}

	r.metrics.installationUp.Set(up)
}

// Stop terminates dispatcher.
// Queued tasks which were not sent yet are discarded.
func (r *Reporter) Stop() {
	r.Lock()
	if r.stopped {
		r.Unlock()
		return
	}

	r.stopped = true
	r.Unlock()

	r.cancel()
	<-r.done
	r.client.Close()
}

// Appends task to the backlog without blocking.
// Returns false if reporter is already stopped.
func (r *Reporter) enqueue(t *task) bool {
	r.Lock()
	if r.stopped {
		r.Unlock()
		r.metrics.dropped.WithLabelValues(t.kind, reasonStopped).Inc()
		return false
	}

	r.pending = append(r.pending, t)
	size := len(r.pending)
	warn := size >= r.warnAt && !r.warned
	if warn {
		r.warned = true
	}
	r.Unlock()

	r.metrics.backlog.Set(float64(size))
	if warn {
		r.logger.Warn("Reporting backlog is growing, collector is slow or unreachable",
			common.LogSystemToken, logSystem, "backlog", strconv.Itoa(size))
	}

	select {
	case r.wake <- struct{}{}:
	default:
	}

	return true
}

// Takes the oldest task from the backlog.
func (r *Reporter) next() *task {
	r.Lock()
	defer r.Unlock()
	if 0 == len(r.pending) {
		r.warned = false
		return nil
	}

	t := r.pending[0]
	r.pending[0] = nil
	r.pending = r.pending[1:]
	r.metrics.backlog.Set(float64(len(r.pending)))
	return t
}

// Dispatcher loop.
// Delivers tasks in submission order.
func (r *Reporter) dispatch() {
	defer close(r.done)
	for {
		select {
		case <-r.ctx.Done():
			return
		case <-r.wake:
		}

		for t := r.next(); nil != t; t = r.next() {
			r.send(t)
			if nil != r.ctx.Err() {
				return
			}
		}
	}
}

// Sends single task.
// Failures are never retried.
func (r *Reporter) send(t *task) {
	base := strings.TrimRight(r.store.Settings().ServerURL, "/")
	if "" == base {
		r.metrics.dropped.WithLabelValues(t.kind, reasonNoURL).Inc()
		if r.debug {
			r.logger.Debug("Skipping report", common.LogSystemToken, logSystem,
				common.LogErrorToken, (&ErrNoServerURL{}).Error())
		}
		return
	}

	target := base + t.path
	resp, err := r.client.SendJSON(r.ctx, target, t.body)
	if err != nil {
		r.metrics.reports.WithLabelValues(t.kind, resultFailed).Inc()
		if r.debug {
			fields := []string{common.LogSystemToken, logSystem, common.LogURLToken, target,
				common.LogErrorToken, err.Error()}
			if nil != resp {
				fields = append(fields, common.LogStatusToken, strconv.Itoa(resp.StatusCode))
			}
			r.logger.Debug("Collector request failed", fields...)
		}
		return
	}

	r.metrics.reports.WithLabelValues(t.kind, resultOK).Inc()
}
