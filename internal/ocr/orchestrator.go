package ocr

import (
	"image"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"go-trivia-watcher/internal/logger"
)

// Orchestrator runs the question and answers passes concurrently and joins
// them before returning. The two passes share no mutable state.
type Orchestrator struct {
	engine Engine
}

func NewOrchestrator(engine Engine) *Orchestrator {
	return &Orchestrator{engine: engine}
}

// Run recognizes both bitmaps with engine-specific hints: the question as a
// single block of text, the answers as a single column.
func (o *Orchestrator) Run(question, answers *image.Gray) (string, string, error) {
	start := time.Now()

	var (
		wg               sync.WaitGroup
		rawQ, rawA       string
		questErr, ansErr error
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		rawQ, questErr = o.engine.Recognize(question, SegmentSingleBlock)
	}()
	go func() {
		defer wg.Done()
		rawA, ansErr = o.engine.Recognize(answers, SegmentSingleColumn)
	}()
	wg.Wait()

	logger.WithFields(logrus.Fields{
		"duration_ms": time.Since(start).Milliseconds(),
	}).Debug("OCR completed")

	if questErr != nil {
		return "", "", questErr
	}
	if ansErr != nil {
		return "", "", ansErr
	}
	return rawQ, rawA, nil
}
