// Package diagnostics collects per-topic, per-kind error state for display
// in a status UI. Errors are keyed by (topic, kind) so a recurring failure
// replaces its previous report instead of accumulating.
package diagnostics

import (
	"sync"

	"go.uber.org/zap"
)

type key struct {
	topic string
	kind  string
}

// Reporter stores the latest error message per (topic, kind) pair and logs
// transitions. The zero message set means the topic is healthy.
type Reporter struct {
	log *zap.Logger

	mu     sync.Mutex
	errors map[key]string
}

// NewReporter creates a reporter logging through log. A nil logger disables
// logging.
func NewReporter(log *zap.Logger) *Reporter {
	if log == nil {
		log = zap.NewNop()
	}
	return &Reporter{
		log:    log,
		errors: make(map[key]string),
	}
}

// AddToTopic records an error of the given kind against topic. Repeated
// reports with the same message are deduplicated and only logged once.
func (r *Reporter) AddToTopic(topic, kind, message string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	k := key{topic, kind}
	if r.errors[k] == message {
		return
	}
	r.errors[k] = message
	r.log.Warn("topic error",
		zap.String("topic", topic),
		zap.String("kind", kind),
		zap.String("error", message),
	)
}

// RemoveFromTopic clears the error of the given kind for topic, if present.
func (r *Reporter) RemoveFromTopic(topic, kind string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	k := key{topic, kind}
	if _, ok := r.errors[k]; !ok {
		return
	}
	delete(r.errors, k)
	r.log.Info("topic error cleared",
		zap.String("topic", topic),
		zap.String("kind", kind),
	)
}

// ClearTopic removes every error recorded against topic.
func (r *Reporter) ClearTopic(topic string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for k := range r.errors {
		if k.topic == topic {
			delete(r.errors, k)
		}
	}
}

// Errors returns a copy of the current errors for topic, keyed by kind.
func (r *Reporter) Errors(topic string) map[string]string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make(map[string]string)
	for k, msg := range r.errors {
		if k.topic == topic {
			out[k.kind] = msg
		}
	}
	return out
}
