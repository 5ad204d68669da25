package via

import (
	"bytes"
	"io"
	"net/http"

	"github.com/pkg/errors"
)

const frameSize = 32 * 1024

// Body is a finite, non-restartable sequence of byte frames with optional
// trailer headers. It has a single consumer: once the frames are read, or
// the body is taken from a request, the original slot is empty.
type Body struct {
	src     io.ReadCloser
	trailer func() http.Header
	limit   int64
	done    bool
}

func newBody(src io.ReadCloser, trailer func() http.Header, limit int64) *Body {
	return &Body{src: src, trailer: trailer, limit: limit}
}

// NewBody wraps a host-provided byte stream. The trailer callback may be
// nil when the stream carries no trailers; limit caps how many bytes
// ReadAll will buffer.
func NewBody(src io.ReadCloser, trailer func() http.Header, limit int64) *Body {
	return newBody(src, trailer, limit)
}

// ReadFrame returns the next frame of the body, or io.EOF once the stream
// is exhausted.
func (b *Body) ReadFrame() ([]byte, error) {
	if b.done || b.src == nil {
		return nil, io.EOF
	}
	buf := make([]byte, frameSize)
	n, err := b.src.Read(buf)
	if n > 0 {
		if err == io.EOF {
			b.done = true
		} else if err != nil {
			return nil, err
		}
		return buf[:n], nil
	}
	if err == nil {
		err = io.EOF
	}
	if err == io.EOF {
		b.done = true
	}
	return nil, err
}

// Trailers returns the trailer headers of the stream. Only meaningful
// after the final frame has been read.
func (b *Body) Trailers() http.Header {
	if b.trailer == nil {
		return nil
	}
	return b.trailer()
}

// Limit returns the byte limit ReadAll enforces.
func (b *Body) Limit() int64 {
	return b.limit
}

// SetLimit replaces the byte limit ReadAll enforces.
func (b *Body) SetLimit(limit int64) {
	b.limit = limit
}

// ReadAll collects the remaining frames into one contiguous buffer. A body
// larger than the limit fails with 413 Payload Too Large; any other read
// failure maps to 400 Bad Request.
func (b *Body) ReadAll() ([]byte, error) {
	var buf bytes.Buffer

	for {
		frame, err := b.ReadFrame()
		if err == io.EOF {
			return buf.Bytes(), nil
		}
		if err != nil {
			return nil, BadRequest(err)
		}
		if int64(buf.Len())+int64(len(frame)) > b.limit {
			return nil, PayloadTooLarge(errors.Errorf(
				"request body exceeds the maximum of %d bytes", b.limit,
			))
		}
		buf.Write(frame)
	}
}

// Close releases the underlying stream.
func (b *Body) Close() error {
	b.done = true
	if b.src == nil {
		return nil
	}
	return b.src.Close()
}
