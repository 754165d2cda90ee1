package camera

import "sync"

// Registry caches one camera model per calibration topic. A model appears
// only once a valid calibration message has been seen; lookups before that
// simply miss.
type Registry struct {
	mu     sync.RWMutex
	models map[string]*Pinhole
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{models: make(map[string]*Pinhole)}
}

// Update builds and caches the model for topic from a calibration message.
// Invalid calibration leaves any previously cached model in place.
func (r *Registry) Update(topic string, m *Pinhole) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.models[topic] = m
}

// ModelForTopic returns the cached model for topic, if any.
func (r *Registry) ModelForTopic(topic string) (Model, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	m, ok := r.models[topic]
	if !ok || m == nil {
		return nil, false
	}
	return m, true
}
