package stream

import "bytes"

// JPEG entropy stream delimiters. The capture stream is a bare
// concatenation of JPEG images with no length prefix or checksum.
var (
	startMarker = []byte{0xFF, 0xD8}
	endMarker   = []byte{0xFF, 0xD9}
)

type scanState int

const (
	seekingStart scanState = iota
	seekingEnd
)

// Extractor is an incremental state machine that slices complete JPEG
// images out of an unbounded byte stream. It keeps a scan cursor so bytes
// are only examined once no matter how the stream is chunked; anything
// before the first start marker is discarded as noise.
type Extractor struct {
	buf    []byte
	cursor int
	state  scanState
}

func NewExtractor() *Extractor {
	return &Extractor{}
}

// Feed appends a chunk of stream data.
func (e *Extractor) Feed(chunk []byte) {
	e.buf = append(e.buf, chunk...)
}

// Next returns the earliest complete image not yet emitted, at most one
// per call. ok is false when no complete image is buffered; scanning
// resumes where it stopped once more data is fed.
func (e *Extractor) Next() ([]byte, bool) {
	for {
		switch e.state {
		case seekingStart:
			idx := bytes.Index(e.buf[e.cursor:], startMarker)
			if idx < 0 {
				// Drop the noise, keeping a trailing 0xFF in case the
				// marker is split across chunks.
				keep := 0
				if len(e.buf) > 0 && e.buf[len(e.buf)-1] == 0xFF {
					keep = 1
				}
				e.buf = append(e.buf[:0], e.buf[len(e.buf)-keep:]...)
				e.cursor = 0
				return nil, false
			}
			e.buf = e.buf[e.cursor+idx:]
			e.cursor = len(startMarker)
			e.state = seekingEnd

		case seekingEnd:
			idx := bytes.Index(e.buf[e.cursor:], endMarker)
			if idx < 0 {
				e.cursor = len(e.buf)
				if e.buf[len(e.buf)-1] == 0xFF {
					e.cursor--
				}
				return nil, false
			}
			end := e.cursor + idx + len(endMarker)
			img := make([]byte, end)
			copy(img, e.buf[:end])
			e.buf = e.buf[end:]
			e.cursor = 0
			e.state = seekingStart
			return img, true
		}
	}
}
