package stream

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/jpeg"
	"io"
	"testing"
	"time"

	"go-trivia-watcher/internal/queue"
)

type staticSource struct {
	data []byte
}

func (s *staticSource) Open(ctx context.Context) (io.ReadCloser, error) {
	return io.NopCloser(bytes.NewReader(s.data)), nil
}

func encodeJPEG(t *testing.T, c color.Color) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			img.Set(x, y, c)
		}
	}
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, nil); err != nil {
		t.Fatalf("failed to encode test frame: %v", err)
	}
	return buf.Bytes()
}

func TestReader_ExtractsAllFramesAndClosesQueue(t *testing.T) {
	frame1 := encodeJPEG(t, color.White)
	frame2 := encodeJPEG(t, color.Black)
	noise := []byte{0x00, 0x01, 0x02}

	var stream bytes.Buffer
	stream.Write(noise)
	stream.Write(frame1)
	stream.Write(noise)
	stream.Write(frame2)

	q := queue.New(10)
	r := NewReader(&staticSource{data: stream.Bytes()}, q)
	// Small chunks force frames to span many fill cycles.
	r.chunkSize = 16

	errCh := make(chan error, 1)
	go func() { errCh <- r.Run(context.Background()) }()

	frames := 0
	for {
		_, ok := q.Get()
		if !ok {
			break
		}
		frames++
	}
	if frames != 2 {
		t.Errorf("expected 2 frames, got %d", frames)
	}

	select {
	case err := <-errCh:
		if err != nil {
			t.Errorf("expected clean EOF shutdown, got %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("reader did not terminate")
	}
}

func TestReader_SourceErrorClosesQueue(t *testing.T) {
	q := queue.New(10)
	r := NewReader(&failingSource{}, q)

	if err := r.Run(context.Background()); err == nil {
		t.Fatal("expected a terminal stream error")
	}
	if _, ok := q.Get(); ok {
		t.Error("expected the queue to be closed after a source failure")
	}
}

type failingSource struct{}

func (s *failingSource) Open(ctx context.Context) (io.ReadCloser, error) {
	return io.NopCloser(&brokenReader{}), nil
}

type brokenReader struct{}

func (r *brokenReader) Read(p []byte) (int, error) {
	return 0, io.ErrUnexpectedEOF
}
