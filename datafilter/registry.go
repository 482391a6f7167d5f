package datafilter

import (
	"sync"

	"github.com/sirupsen/logrus"
)

// Registry maps integer handles to live filters for streaming use.
//
// Handles are assigned from 0 upwards and never reused; a destroyed handle
// keeps its slot as nil. Process takes the read lock and Create and Destroy
// the write lock. Two goroutines must not Process the same handle at once,
// since the filter itself is not synchronized.
type Registry struct {
	mu      sync.RWMutex
	filters []Filter
	live    int
	log     *logrus.Logger
}

type registryConfig struct {
	logger   *logrus.Logger
	capacity int
}

// RegistryOption configures a Registry.
type RegistryOption func(*registryConfig)

// WithLogger sets the logger used for handle lifecycle events. Default is
// the data logger.
func WithLogger(l *logrus.Logger) RegistryOption {
	return func(cfg *registryConfig) { cfg.logger = l }
}

// WithInitialCapacity preallocates room for n handles.
func WithInitialCapacity(n int) RegistryOption {
	return func(cfg *registryConfig) {
		if n > 0 {
			cfg.capacity = n
		}
	}
}

// NewRegistry returns an empty registry.
func NewRegistry(opts ...RegistryOption) *Registry {
	cfg := registryConfig{logger: dataLogger()}
	for _, o := range opts {
		o(&cfg)
	}

	return &Registry{
		filters: make([]Filter, 0, cfg.capacity),
		log:     cfg.logger,
	}
}

// Create builds the filter described by p and returns its handle. A failed
// construction allocates no handle.
func (r *Registry) Create(p Params) (id int, err error) {
	id = -1
	defer recoverInto(&err)

	r.mu.Lock()
	defer r.mu.Unlock()

	f, err := New(p)
	if err != nil {
		return -1, err
	}

	id = len(r.filters)
	r.filters = append(r.filters, f)
	r.live++

	r.log.WithFields(logrus.Fields{"filter_id": id, "kind": p.Kind.String()}).Debugf("created %s", p)

	return id, nil
}

// CreateLowpass registers a low-pass filter.
func (r *Registry) CreateLowpass(samplingRate int, cutoff float64, order int, filterType FilterType, ripple float64) (int, error) {
	return r.Create(Params{Kind: KindLowpass, SamplingRate: samplingRate, Cutoff: cutoff, Order: order, FilterType: filterType, Ripple: ripple})
}

// CreateHighpass registers a high-pass filter.
func (r *Registry) CreateHighpass(samplingRate int, cutoff float64, order int, filterType FilterType, ripple float64) (int, error) {
	return r.Create(Params{Kind: KindHighpass, SamplingRate: samplingRate, Cutoff: cutoff, Order: order, FilterType: filterType, Ripple: ripple})
}

// CreateBandpass registers a band-pass filter.
func (r *Registry) CreateBandpass(samplingRate int, centerFreq, bandWidth float64, order int, filterType FilterType, ripple float64) (int, error) {
	return r.Create(Params{Kind: KindBandpass, SamplingRate: samplingRate, CenterFreq: centerFreq, BandWidth: bandWidth, Order: order, FilterType: filterType, Ripple: ripple})
}

// CreateBandstop registers a band-stop filter.
func (r *Registry) CreateBandstop(samplingRate int, centerFreq, bandWidth float64, order int, filterType FilterType, ripple float64) (int, error) {
	return r.Create(Params{Kind: KindBandstop, SamplingRate: samplingRate, CenterFreq: centerFreq, BandWidth: bandWidth, Order: order, FilterType: filterType, Ripple: ripple})
}

// CreateEnvironmentalNoise registers a mains noise filter.
func (r *Registry) CreateEnvironmentalNoise(samplingRate int, noiseType NoiseType) (int, error) {
	return r.Create(Params{Kind: KindEnvironmentalNoise, SamplingRate: samplingRate, NoiseType: noiseType})
}

// CreateRolling registers a rolling aggregate filter.
func (r *Registry) CreateRolling(period int, op AggOperation) (int, error) {
	return r.Create(Params{Kind: KindRolling, Period: period, Operation: op})
}

// CreateDownsampling registers a downsampling filter.
func (r *Registry) CreateDownsampling(period int, op AggOperation) (int, error) {
	return r.Create(Params{Kind: KindDownsampling, Period: period, Operation: op})
}

// Process runs data through the filter behind id and returns the number of
// valid output samples.
func (r *Registry) Process(id int, data []float64) (n int, err error) {
	defer recoverInto(&err)

	r.mu.RLock()
	defer r.mu.RUnlock()

	f, err := r.lookup(id)
	if err != nil {
		return 0, err
	}

	return f.Process(data), nil
}

// Reset returns the filter behind id to its initial state.
func (r *Registry) Reset(id int) error {
	r.mu.RLock()
	defer r.mu.RUnlock()

	f, err := r.lookup(id)
	if err != nil {
		return err
	}

	f.Reset()

	return nil
}

// Destroy releases id. Destroying an unknown or already destroyed handle
// fails with GeneralError and leaves the registry unchanged.
func (r *Registry) Destroy(id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, err := r.lookup(id); err != nil {
		return err
	}

	r.filters[id] = nil
	r.live--

	r.log.WithField("filter_id", id).Debug("destroyed filter")

	return nil
}

// Len returns the number of handles ever allocated.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.filters)
}

// Live returns the number of handles not yet destroyed.
func (r *Registry) Live() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.live
}

// lookup must be called with r.mu held.
func (r *Registry) lookup(id int) (Filter, error) {
	if id < 0 || id >= len(r.filters) {
		r.log.WithField("filter_id", id).Error("unknown filter id")
		return nil, general("unknown filter id %d", id)
	}

	f := r.filters[id]
	if f == nil {
		r.log.WithField("filter_id", id).Error("filter already destroyed")
		return nil, general("filter %d was destroyed", id)
	}

	return f, nil
}
