package via

import (
	"bytes"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/pkg/errors"
)

func TestBodyReadAll(t *testing.T) {
	payload := strings.Repeat("x", 100*1024)
	body := newBody(io.NopCloser(strings.NewReader(payload)), nil, 1<<20)

	data, err := body.ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != payload {
		t.Errorf("collected %d bytes, want %d", len(data), len(payload))
	}
}

func TestBodyFrames(t *testing.T) {
	payload := strings.Repeat("y", frameSize+10)
	body := newBody(io.NopCloser(strings.NewReader(payload)), nil, 1<<20)

	var total int
	for {
		frame, err := body.ReadFrame()
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatal(err)
		}
		if len(frame) == 0 {
			t.Fatal("read an empty frame")
		}
		total += len(frame)
	}
	// The collected length equals the sum of the frame lengths.
	if total != len(payload) {
		t.Errorf("frames sum to %d bytes, want %d", total, len(payload))
	}
}

func TestBodyOverLimitIs413(t *testing.T) {
	body := newBody(io.NopCloser(strings.NewReader("0123456789")), nil, 4)

	_, err := body.ReadAll()
	e, ok := err.(*Error)
	if !ok || e.Status() != http.StatusRequestEntityTooLarge {
		t.Fatalf("ReadAll() = %v, want 413", err)
	}
}

type brokenReader struct{}

func (brokenReader) Read([]byte) (int, error) { return 0, errors.New("connection reset") }
func (brokenReader) Close() error             { return nil }

func TestBodyReadErrorIs400(t *testing.T) {
	body := newBody(brokenReader{}, nil, 1<<20)

	_, err := body.ReadAll()
	e, ok := err.(*Error)
	if !ok || e.Status() != http.StatusBadRequest {
		t.Fatalf("ReadAll() = %v, want 400", err)
	}
}

func TestBodyTrailers(t *testing.T) {
	trailer := http.Header{"X-Checksum": []string{"abc"}}
	body := newBody(io.NopCloser(bytes.NewReader(nil)), func() http.Header { return trailer }, 1<<20)

	if _, err := body.ReadAll(); err != nil {
		t.Fatal(err)
	}
	if got := body.Trailers().Get("X-Checksum"); got != "abc" {
		t.Errorf("trailer = %q", got)
	}
}

func TestTakeBodyIsOneShot(t *testing.T) {
	req := &Request[struct{}]{
		body: newBody(io.NopCloser(strings.NewReader("payload")), nil, 1<<20),
	}

	body, err := req.TakeBody()
	if err != nil || body == nil {
		t.Fatalf("first TakeBody() = (%v, %v)", body, err)
	}

	if _, err := req.TakeBody(); err == nil {
		t.Fatal("second TakeBody() should fail")
	}

	data, err := body.ReadAll()
	if err != nil || string(data) != "payload" {
		t.Errorf("ReadAll() = (%q, %v)", data, err)
	}
}
