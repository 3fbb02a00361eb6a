package processor

import (
	"context"
	"image"
	"time"

	"github.com/arbovm/levenshtein"

	"go-trivia-watcher/internal/config"
	"go-trivia-watcher/internal/hub"
	"go-trivia-watcher/internal/imaging"
	"go-trivia-watcher/internal/logger"
	"go-trivia-watcher/internal/observer"
	"go-trivia-watcher/internal/ocr"
	"go-trivia-watcher/internal/queue"
	"go-trivia-watcher/internal/textnorm"
)

// textDedupDistance is the edit distance at or below which two consecutive
// question texts are treated as the same question seen twice.
const textDedupDistance = 2

// Processor consumes frames one at a time, decides when a new question has
// fully rendered, deduplicates it against the last accepted question and
// drives OCR and broadcast. It is the only goroutine touching the question
// snapshot, so accepting a question and publishing its result are atomic
// with respect to frame order.
type Processor struct {
	queue        *queue.FrameQueue
	orchestrator *ocr.Orchestrator
	hub          *hub.Hub
	events       *observer.Publisher
	cfg          *config.Config

	snapshot     *image.Gray
	lastQuestion string
}

func New(q *queue.FrameQueue, orchestrator *ocr.Orchestrator, h *hub.Hub, events *observer.Publisher, cfg *config.Config) *Processor {
	return &Processor{
		queue:        q,
		orchestrator: orchestrator,
		hub:          h,
		events:       events,
		cfg:          cfg,
	}
}

// Run processes frames until the queue is closed and drained. Shutdown is
// driven by the reader closing the queue, not by the context; ctx is only
// consulted between frames.
func (p *Processor) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		frame, ok := p.queue.Get()
		if !ok {
			logger.Info("Frame queue closed, processor exiting")
			return
		}
		p.process(frame)
	}
}

func (p *Processor) process(frame image.Image) {
	// The readiness strip goes uniformly white only after the answer
	// buttons finish rendering; until then the frame is mid-animation.
	if !imaging.StripReady(frame, p.cfg.ReadyRowFraction) {
		return
	}

	questionBand := imaging.CropBand(frame, p.cfg.QuestionBandTop, p.cfg.QuestionBandBottom)
	questionGray := imaging.Grayscale(questionBand)
	questionBin := imaging.Binarize(questionGray, imaging.MinimumThreshold(questionGray))

	// Each question is processed once; every later ready frame of the same
	// question agrees with the snapshot almost everywhere.
	if p.snapshot != nil && imaging.Agreement(p.snapshot, questionBin) > p.cfg.SimilarityThreshold {
		return
	}
	p.snapshot = questionBin
	p.events.Notify(observer.PipelineEvent{EventType: observer.QuestionAccepted})

	// Frames buffered behind this one show the same question; drop them so
	// stale frames are never reprocessed. An empty queue ends the drain.
	for {
		if _, ok := p.queue.TryGet(); !ok {
			break
		}
	}

	answersBand := imaging.CropBand(frame, p.cfg.AnswersBandTop, p.cfg.AnswersBandBottom)
	answersGray := imaging.Grayscale(answersBand)
	answersBin := imaging.Binarize(answersGray, imaging.MinimumThreshold(answersGray))
	buttons := imaging.IsolateButtons(answersBin)

	start := time.Now()
	rawQuestion, rawAnswers, err := p.orchestrator.Run(questionBin, buttons)
	if err != nil {
		logger.WithError(err).Error("OCR failed, skipping frame")
		p.events.Notify(observer.PipelineEvent{
			EventType:  observer.RecognitionFailed,
			ErrMessage: err.Error(),
		})
		return
	}

	result := textnorm.Normalize(rawQuestion, rawAnswers)
	p.events.Notify(observer.PipelineEvent{
		EventType: observer.RecognitionCompleted,
		Question:  result.Question,
		Answers:   len(result.Answers),
		Duration:  time.Since(start),
	})

	if p.cfg.TextDedup && p.lastQuestion != "" &&
		levenshtein.Distance(p.lastQuestion, result.Question) <= textDedupDistance {
		p.events.Notify(observer.PipelineEvent{
			EventType: observer.ResultSuppressed,
			Question:  result.Question,
		})
		return
	}
	p.lastQuestion = result.Question

	p.hub.Publish(result)
	p.events.Notify(observer.PipelineEvent{
		EventType: observer.ResultPublished,
		Question:  result.Question,
		Answers:   len(result.Answers),
	})
}
