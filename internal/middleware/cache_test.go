package middleware

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestCaptureWriterWithinLimit(t *testing.T) {
	rec := httptest.NewRecorder()
	cw := &captureWriter{ResponseWriter: rec, status: http.StatusOK, limit: 32}

	if _, err := cw.Write([]byte(`{"total":360}`)); err != nil {
		t.Fatalf("write: %v", err)
	}
	if cw.overflowed() {
		t.Error("overflowed = true for a body under the limit")
	}
	if got := cw.buf.String(); got != `{"total":360}` {
		t.Errorf("buffered %q, want the full body", got)
	}
}

func TestCaptureWriterOverflow(t *testing.T) {
	rec := httptest.NewRecorder()
	cw := &captureWriter{ResponseWriter: rec, status: http.StatusOK, limit: 10}

	first := []byte("0123456789") // exactly fills the buffer
	second := []byte("abcdef")
	if _, err := cw.Write(first); err != nil {
		t.Fatalf("write: %v", err)
	}
	if cw.overflowed() {
		t.Error("overflowed = true after a write that exactly fills the limit")
	}
	if _, err := cw.Write(second); err != nil {
		t.Fatalf("write: %v", err)
	}

	if !cw.overflowed() {
		t.Error("overflowed = false after exceeding the limit")
	}
	if int64(cw.buf.Len()) > cw.limit {
		t.Errorf("buffer holds %d bytes, limit is %d", cw.buf.Len(), cw.limit)
	}
	// The client still receives every byte.
	if got := rec.Body.String(); got != "0123456789abcdef" {
		t.Errorf("client saw %q, want the full body", got)
	}
}

func TestCaptureWriterUnlimited(t *testing.T) {
	rec := httptest.NewRecorder()
	cw := &captureWriter{ResponseWriter: rec, status: http.StatusOK, limit: 0}

	body := bytes.Repeat([]byte("x"), 4096)
	if _, err := cw.Write(body); err != nil {
		t.Fatalf("write: %v", err)
	}
	if cw.overflowed() {
		t.Error("overflowed = true with no limit configured")
	}
	if cw.buf.Len() != len(body) {
		t.Errorf("buffered %d bytes, want %d", cw.buf.Len(), len(body))
	}
}

func TestEncodeDecodePayload(t *testing.T) {
	hdr := http.Header{"Content-Type": {"application/json"}}
	body := []byte(`{"items":[]}`)

	payload, err := encodePayload(http.StatusOK, hdr, body)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	status, gotHdr, gotBody, ok := decodePayload(payload)
	if !ok {
		t.Fatal("decode reported not ok")
	}
	if status != http.StatusOK {
		t.Errorf("status = %d, want 200", status)
	}
	if gotHdr.Get("Content-Type") != "application/json" {
		t.Errorf("content type = %q", gotHdr.Get("Content-Type"))
	}
	if string(gotBody) != string(body) {
		t.Errorf("body = %q, want %q", gotBody, body)
	}
}

func TestDecodePayloadRejectsGarbage(t *testing.T) {
	for _, bs := range [][]byte{nil, []byte("short"), {0, 0, 0, 200, 255, 255, 255, 255}} {
		if _, _, _, ok := decodePayload(bs); ok {
			t.Errorf("decodePayload(%v) ok = true, want false", bs)
		}
	}
}
