package stream

import (
	"bytes"
	"context"
	"image/jpeg"
	"io"
	"time"

	"github.com/sirupsen/logrus"

	"go-trivia-watcher/internal/apperrors"
	"go-trivia-watcher/internal/logger"
	"go-trivia-watcher/internal/queue"
	"go-trivia-watcher/internal/source"
)

const defaultChunkSize = 8192

// Reader pulls the capture byte stream, slices out embedded JPEG images
// and enqueues each decoded frame. It runs on its own goroutine with
// purely blocking I/O; a source failure is terminal for the ingestion path
// (no automatic restart) and closes the queue so the processor drains out.
type Reader struct {
	source    source.Source
	queue     *queue.FrameQueue
	chunkSize int
}

func NewReader(src source.Source, q *queue.FrameQueue) *Reader {
	return &Reader{source: src, queue: q, chunkSize: defaultChunkSize}
}

// Run reads until the source ends or fails. The queue is always closed on
// return.
func (r *Reader) Run(ctx context.Context) error {
	defer r.queue.Close()

	rc, err := r.source.Open(ctx)
	if err != nil {
		return err
	}
	defer rc.Close()

	extractor := NewExtractor()
	chunk := make([]byte, r.chunkSize)
	frameCount := 0
	lastFrame := time.Now()

	for {
		n, readErr := rc.Read(chunk)
		if n > 0 {
			extractor.Feed(chunk[:n])
			// One image per fill cycle; a concatenated remainder is
			// picked up on the next iteration.
			if data, ok := extractor.Next(); ok {
				if err := r.enqueue(data, &frameCount, &lastFrame); err != nil {
					return err
				}
			}
		}
		if readErr != nil {
			// Drain images already buffered before the stream ended.
			for {
				data, ok := extractor.Next()
				if !ok {
					break
				}
				if err := r.enqueue(data, &frameCount, &lastFrame); err != nil {
					return err
				}
			}
			if readErr == io.EOF {
				return nil
			}
			return apperrors.NewStreamError("capture stream failed", readErr)
		}
	}
}

func (r *Reader) enqueue(data []byte, frameCount *int, lastFrame *time.Time) error {
	img, err := jpeg.Decode(bytes.NewReader(data))
	if err != nil {
		return apperrors.NewProcessingError("failed to decode frame", err)
	}

	*frameCount++
	now := time.Now()
	logger.WithFields(logrus.Fields{
		"frame":         *frameCount,
		"since_last_ms": now.Sub(*lastFrame).Milliseconds(),
	}).Debug("Frame extracted")
	*lastFrame = now

	r.queue.Put(img)
	return nil
}
