package container

import (
	"net/http"

	"go-trivia-watcher/internal/config"
	"go-trivia-watcher/internal/hub"
	"go-trivia-watcher/internal/observer"
	"go-trivia-watcher/internal/ocr"
	"go-trivia-watcher/internal/processor"
	"go-trivia-watcher/internal/queue"
	"go-trivia-watcher/internal/source"
	"go-trivia-watcher/internal/stream"
	"go-trivia-watcher/internal/transport"

	"go-trivia-watcher/internal/logger"
)

// Container holds all application dependencies
type Container struct {
	config    *config.Config
	frames    *queue.FrameQueue
	hub       *hub.Hub
	metrics   *observer.MetricsObserver
	reader    *stream.Reader
	processor *processor.Processor
	handler   http.Handler
}

// NewContainer wires the pipeline: source → reader → queue → processor →
// hub → websocket handler.
func NewContainer(cfg *config.Config) (*Container, error) {
	src, err := source.New(cfg)
	if err != nil {
		return nil, err
	}

	frames := queue.New(cfg.QueueCapacity)
	broadcast := hub.New(cfg.SubscriberBuffer)

	events := observer.NewPublisher()
	metrics := observer.NewMetricsObserver()
	events.Subscribe(observer.NewLoggingObserver(logger.Logger))
	events.Subscribe(metrics)

	engine := ocr.NewTesseract(cfg.OCRLanguages, cfg.TessdataPath)
	orchestrator := ocr.NewOrchestrator(engine)

	reader := stream.NewReader(src, frames)
	proc := processor.New(frames, orchestrator, broadcast, events, cfg)
	handler := transport.NewHandler(broadcast)

	return &Container{
		config:    cfg,
		frames:    frames,
		hub:       broadcast,
		metrics:   metrics,
		reader:    reader,
		processor: proc,
		handler:   handler,
	}, nil
}

// Handler returns the HTTP handler
func (c *Container) Handler() http.Handler {
	return c.handler
}

// Reader returns the stream reader
func (c *Container) Reader() *stream.Reader {
	return c.reader
}

// Processor returns the frame processor
func (c *Container) Processor() *processor.Processor {
	return c.processor
}

// Metrics returns the pipeline counters
func (c *Container) Metrics() *observer.MetricsObserver {
	return c.metrics
}

// Config returns the configuration
func (c *Container) Config() *config.Config {
	return c.config
}
