package responsewriter

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestWrap_RecordsStatusAndSize(t *testing.T) {
	rec := httptest.NewRecorder()
	w := Wrap(rec)

	w.WriteHeader(http.StatusAccepted)
	if _, err := w.Write([]byte("hello")); err != nil {
		t.Fatalf("write: %v", err)
	}

	if w.StatusCode() != http.StatusAccepted {
		t.Errorf("status = %d, want 202", w.StatusCode())
	}
	if w.BytesWritten() != 5 {
		t.Errorf("bytes = %d, want 5", w.BytesWritten())
	}
}

func TestWrap_ImplicitOK(t *testing.T) {
	rec := httptest.NewRecorder()
	w := Wrap(rec)

	if _, err := w.Write([]byte("body")); err != nil {
		t.Fatalf("write: %v", err)
	}

	if w.StatusCode() != http.StatusOK {
		t.Errorf("status = %d, want 200", w.StatusCode())
	}
}

func TestWrap_SecondWriteHeaderIgnored(t *testing.T) {
	rec := httptest.NewRecorder()
	w := Wrap(rec)

	w.WriteHeader(http.StatusNotFound)
	w.WriteHeader(http.StatusOK)

	if w.StatusCode() != http.StatusNotFound {
		t.Errorf("status = %d, want first value 404", w.StatusCode())
	}
}
