// Package mapper contains linear input value mapper.
package mapper

import (
	"math"
	"sync"

	"github.com/go-home-io/device-monitor/common"
	"github.com/go-home-io/device-monitor/providers"
	"github.com/go-home-io/device-monitor/utils"
	"github.com/pkg/errors"
)

const (
	// Logger system.
	logSystem = "mapper"

	// Input properties prefix.
	inputPrefix = "IO."
	// Output properties prefix.
	outputPrefix = "Mapper._"
	// Delta property suffix.
	deltaSuffix = "_delta"
)

// Mapper maps raw IO values into configured output ranges.
type Mapper struct {
	sync.Mutex
	logger   common.ILoggerProvider
	store    providers.IPropertyStoreProvider
	settings func() ([]*providers.RawMapping, error)

	mappings map[string]*mapping
	order    []string
}

// ConstructMapper has data required for a new mapper.
type ConstructMapper struct {
	Logger   common.ILoggerProvider
	Store    providers.IPropertyStoreProvider
	Settings func() ([]*providers.RawMapping, error)
}

// NewMapper constructs a new mapper and subscribes to all configured inputs.
func NewMapper(ctor *ConstructMapper) *Mapper {
	m := &Mapper{
		logger:   ctor.Logger,
		store:    ctor.Store,
		settings: ctor.Settings,
		mappings: make(map[string]*mapping),
		order:    make([]string, 0),
	}

	if err := m.Reset(); err != nil {
		m.logger.Error("Failed to load input mappings", err, common.LogSystemToken, logSystem)
	}

	return m
}

// Reset reloads settings and re-subscribes existing mappings.
// Mapping which is no longer configured keeps its previous settings.
// If settings can't be loaded, current mappings stay untouched.
func (m *Mapper) Reset() error {
	cfgs, err := m.settings()
	if err != nil {
		return errors.Wrap(err, "mappings reload failed")
	}

	m.Lock()
	defer m.Unlock()

	for _, v := range cfgs {
		cfg := *v
		existing, ok := m.mappings[cfg.IOAlias]
		if ok {
			existing.reset(&cfg)
			continue
		}

		mp := &mapping{
			store:  m.store,
			logger: m.logger,
		}
		mp.reset(&cfg)
		m.mappings[cfg.IOAlias] = mp
		m.order = append(m.order, cfg.IOAlias)

		m.store.Set(OutputPath(cfg.IOAlias), float64(0))
		m.store.Set(DeltaPath(cfg.IOAlias), float64(0))
	}

	m.logger.Info("Input mappings are loaded", common.LogSystemToken, logSystem)
	return nil
}

// Value returns current mapped value and delta.
func (m *Mapper) Value(alias string) (value float64, delta float64, ok bool) {
	m.Lock()
	mp, ok := m.mappings[alias]
	m.Unlock()
	if !ok {
		return 0, 0, false
	}

	value, delta = mp.current()
	return value, delta, true
}

// Aliases returns mapped IO aliases in configuration order.
func (m *Mapper) Aliases() []string {
	m.Lock()
	defer m.Unlock()
	return append([]string{}, m.order...)
}

// Close removes all subscriptions.
func (m *Mapper) Close() {
	m.Lock()
	defer m.Unlock()
	for _, v := range m.mappings {
		v.close()
	}
}

// OutputPath returns mapped value property path.
func OutputPath(alias string) string {
	return outputPrefix + alias
}

// DeltaPath returns mapped delta property path.
func DeltaPath(alias string) string {
	return outputPrefix + alias + deltaSuffix
}

// Single IO mapping.
type mapping struct {
	sync.Mutex
	store  providers.IPropertyStoreProvider
	logger common.ILoggerProvider

	settings    *providers.RawMapping
	rawRange    float64
	scaledRange float64
	value       float64
	delta       float64
	input       providers.IPropertyAccessor
}

// Applies settings and subscribes to the input.
func (p *mapping) reset(settings *providers.RawMapping) {
	p.Lock()
	if nil != p.input {
		p.input.Close()
	}

	p.settings = settings
	p.rawRange = settings.InRange.Max - settings.InRange.Min
	p.scaledRange = settings.OutRange.Max - settings.OutRange.Min
	p.Unlock()

	p.logger.Debug("Resetting input mapping", common.LogSystemToken, logSystem,
		common.LogNameToken, settings.IOAlias)
	input := p.store.Subscribe(inputPrefix+settings.IOAlias, p.onChange)

	p.Lock()
	p.input = input
	p.Unlock()
}

// Handles raw input change.
func (p *mapping) onChange(value interface{}) {
	raw, ok := utils.ToFloat(value)
	if !ok || math.IsNaN(raw) {
		return
	}

	p.Lock()
	changed := p.apply(raw)
	out, delta, alias := p.value, p.delta, p.settings.IOAlias
	p.Unlock()

	if !changed {
		return
	}

	p.store.Set(OutputPath(alias), out)
	p.store.Set(DeltaPath(alias), delta)
}

// Computes mapped value.
// Must be called under the lock.
func (p *mapping) apply(raw float64) bool {
	s := p.settings
	if s.AutoInRange {
		if raw < s.InRange.Min {
			s.InRange.Min = raw
		}
		if raw > s.InRange.Max {
			s.InRange.Max = raw
		}
		p.rawRange = s.InRange.Max - s.InRange.Min
	} else {
		raw = math.Max(s.InRange.Min, math.Min(s.InRange.Max, raw))
	}

	normalized := 0.0
	if 0 != p.rawRange {
		normalized = (raw - s.InRange.Min) / p.rawRange
	}

	newValue := s.OutRange.Min + normalized*p.scaledRange
	if s.WholeNumbersOut {
		newValue = math.Floor(newValue)
	}

	if newValue == p.value {
		return false
	}

	p.delta = newValue - p.value
	p.value = newValue
	if s.ValueLoop && 0 != p.scaledRange {
		half := math.Abs(p.scaledRange / 2)
		span := math.Abs(p.scaledRange)
		for p.delta > half {
			p.delta -= span
		}
		for p.delta < -half {
			p.delta += span
		}
	}

	return true
}

// Returns current value and delta.
func (p *mapping) current() (float64, float64) {
	p.Lock()
	defer p.Unlock()
	return p.value, p.delta
}

// Closes input subscription.
func (p *mapping) close() {
	p.Lock()
	defer p.Unlock()
	if nil != p.input {
		p.input.Close()
		p.input = nil
	}
}
