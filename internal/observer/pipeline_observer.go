package observer

import (
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// PipelineEvent describes one step of the frame pipeline.
type PipelineEvent struct {
	EventType  EventType     `json:"event_type"`
	Timestamp  time.Time     `json:"timestamp"`
	Question   string        `json:"question,omitempty"`
	Answers    int           `json:"answers,omitempty"`
	Duration   time.Duration `json:"duration,omitempty"`
	ErrMessage string        `json:"error_message,omitempty"`
}

// EventType represents the type of pipeline event
type EventType string

const (
	// QuestionAccepted when a frame passes readiness and dedup checks
	QuestionAccepted EventType = "question_accepted"
	// RecognitionCompleted when both OCR passes finish
	RecognitionCompleted EventType = "recognition_completed"
	// RecognitionFailed when an OCR pass fails
	RecognitionFailed EventType = "recognition_failed"
	// ResultPublished when a result reaches the broadcast hub
	ResultPublished EventType = "result_published"
	// ResultSuppressed when the text-level duplicate guard drops a result
	ResultSuppressed EventType = "result_suppressed"
)

// Observer defines the interface for pipeline event observers
type Observer interface {
	OnEvent(event PipelineEvent)
	GetObserverName() string
}

// LoggingObserver logs pipeline events
type LoggingObserver struct {
	logger *logrus.Logger
}

// NewLoggingObserver creates a new logging observer
func NewLoggingObserver(logger *logrus.Logger) Observer {
	return &LoggingObserver{logger: logger}
}

// OnEvent handles pipeline events by logging them
func (o *LoggingObserver) OnEvent(event PipelineEvent) {
	fields := logrus.Fields{
		"event_type": event.EventType,
	}
	if event.Question != "" {
		fields["question"] = event.Question
	}
	if event.Answers > 0 {
		fields["answers"] = event.Answers
	}
	if event.Duration > 0 {
		fields["duration_ms"] = event.Duration.Milliseconds()
	}
	if event.ErrMessage != "" {
		fields["error"] = event.ErrMessage
	}

	switch event.EventType {
	case QuestionAccepted:
		o.logger.WithFields(fields).Info("New question accepted")
	case RecognitionCompleted:
		o.logger.WithFields(fields).Info("Recognition completed")
	case RecognitionFailed:
		o.logger.WithFields(fields).Error("Recognition failed")
	case ResultPublished:
		o.logger.WithFields(fields).Info("Result published")
	case ResultSuppressed:
		o.logger.WithFields(fields).Info("Near-duplicate result suppressed")
	default:
		o.logger.WithFields(fields).Info("Pipeline event occurred")
	}
}

// GetObserverName returns the observer name
func (o *LoggingObserver) GetObserverName() string {
	return "logging_observer"
}

// MetricsObserver collects counters from pipeline events
type MetricsObserver struct {
	mu                 sync.RWMutex
	questionsAccepted  int64
	recognitions       int64
	recognitionErrors  int64
	resultsPublished   int64
	resultsSuppressed  int64
	totalRecognitionMs int64
}

// NewMetricsObserver creates a new metrics observer
func NewMetricsObserver() *MetricsObserver {
	return &MetricsObserver{}
}

// OnEvent handles pipeline events by collecting counters
func (o *MetricsObserver) OnEvent(event PipelineEvent) {
	o.mu.Lock()
	defer o.mu.Unlock()

	switch event.EventType {
	case QuestionAccepted:
		o.questionsAccepted++
	case RecognitionCompleted:
		o.recognitions++
		o.totalRecognitionMs += event.Duration.Milliseconds()
	case RecognitionFailed:
		o.recognitionErrors++
	case ResultPublished:
		o.resultsPublished++
	case ResultSuppressed:
		o.resultsSuppressed++
	}
}

// GetObserverName returns the observer name
func (o *MetricsObserver) GetObserverName() string {
	return "metrics_observer"
}

// GetMetrics returns current counters
func (o *MetricsObserver) GetMetrics() map[string]int64 {
	o.mu.RLock()
	defer o.mu.RUnlock()

	return map[string]int64{
		"questions_accepted":   o.questionsAccepted,
		"recognitions":         o.recognitions,
		"recognition_errors":   o.recognitionErrors,
		"results_published":    o.resultsPublished,
		"results_suppressed":   o.resultsSuppressed,
		"total_recognition_ms": o.totalRecognitionMs,
	}
}

// Publisher notifies a set of observers about pipeline events.
type Publisher struct {
	mu        sync.RWMutex
	observers []Observer
}

// NewPublisher creates a new event publisher
func NewPublisher() *Publisher {
	return &Publisher{observers: make([]Observer, 0)}
}

// Subscribe adds an observer
func (p *Publisher) Subscribe(observer Observer) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.observers = append(p.observers, observer)
}

// Notify delivers an event to all observers. Delivery is synchronous and
// ordered; observers must not block.
func (p *Publisher) Notify(event PipelineEvent) {
	if p == nil {
		return
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}

	p.mu.RLock()
	observers := make([]Observer, len(p.observers))
	copy(observers, p.observers)
	p.mu.RUnlock()

	for _, observer := range observers {
		observer.OnEvent(event)
	}
}
