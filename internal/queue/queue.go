package queue

import "image"

// FrameQueue is the bounded hand-off between the stream reader goroutine
// (producer) and the frame processor goroutine (consumer). The producer
// blocks when the queue is full; frames are never dropped on overflow.
type FrameQueue struct {
	frames chan image.Image
}

func New(capacity int) *FrameQueue {
	if capacity <= 0 {
		capacity = 100
	}
	return &FrameQueue{frames: make(chan image.Image, capacity)}
}

// Put enqueues a frame, blocking while the queue is at capacity.
func (q *FrameQueue) Put(frame image.Image) {
	q.frames <- frame
}

// Get dequeues the next frame, blocking while the queue is empty.
// ok is false once the queue has been closed and drained.
func (q *FrameQueue) Get() (image.Image, bool) {
	frame, ok := <-q.frames
	return frame, ok
}

// TryGet dequeues a frame without blocking. Used by the processor to
// discard frames buffered ahead of a freshly accepted question; an empty
// queue terminates the drain and is not an error.
func (q *FrameQueue) TryGet() (image.Image, bool) {
	select {
	case frame, ok := <-q.frames:
		return frame, ok
	default:
		return nil, false
	}
}

// Close marks the end of the stream. Pending frames remain readable;
// Get reports ok=false once they are drained.
func (q *FrameQueue) Close() {
	close(q.frames)
}

// Len reports the number of buffered frames.
func (q *FrameQueue) Len() int {
	return len(q.frames)
}
