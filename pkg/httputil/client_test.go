package httputil

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

func testClient() *Client {
	return NewClient(WithRetry(5, time.Millisecond))
}

func TestClient_Get(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"name": "sunshine"})
	}))
	defer server.Close()

	var got struct {
		Name string `json:"name"`
	}
	if err := testClient().Get(context.Background(), server.URL, &got); err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.Name != "sunshine" {
		t.Errorf("Name = %q, want %q", got.Name, "sunshine")
	}
}

func TestClient_Get_DefaultHeaders(t *testing.T) {
	var auth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		w.Write([]byte("{}"))
	}))
	defer server.Close()

	c := NewClient(WithHeaders(map[string]string{"Authorization": "token abc"}))
	var v map[string]any
	if err := c.Get(context.Background(), server.URL, &v); err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if auth != "token abc" {
		t.Errorf("Authorization = %q, want %q", auth, "token abc")
	}
}

func TestClient_RetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write([]byte(`{"ok":true}`))
	}))
	defer server.Close()

	var v map[string]any
	if err := testClient().Get(context.Background(), server.URL, &v); err != nil {
		t.Fatalf("Get failed after retries: %v", err)
	}
	if n := calls.Load(); n != 3 {
		t.Errorf("server calls = %d, want 3", n)
	}
}

func TestClient_RetryExhaustion(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	var v map[string]any
	err := testClient().Get(context.Background(), server.URL, &v)
	if err == nil {
		t.Fatal("expected error after retry exhaustion")
	}
	if !errors.Is(err, ErrNetwork) {
		t.Errorf("error = %v, want ErrNetwork", err)
	}
	if n := calls.Load(); n != 5 {
		t.Errorf("server calls = %d, want 5 (fixed retry budget)", n)
	}
}

func TestClient_ClientErrorsNotRetried(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	var v map[string]any
	if err := testClient().Get(context.Background(), server.URL, &v); err == nil {
		t.Fatal("expected error for 403")
	}
	if n := calls.Load(); n != 1 {
		t.Errorf("server calls = %d, want 1 (4xx must not be retried)", n)
	}
}

func TestClient_NotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	_, err := testClient().GetRaw(context.Background(), server.URL)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
}

func TestClient_Post(t *testing.T) {
	var gotBody map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&gotBody)
		w.Write([]byte(`{"echo":true}`))
	}))
	defer server.Close()

	var v map[string]any
	payload := map[string]string{"query": "{ viewer { login } }"}
	if err := testClient().Post(context.Background(), server.URL, payload, &v); err != nil {
		t.Fatalf("Post failed: %v", err)
	}
	if gotBody["query"] != payload["query"] {
		t.Errorf("posted query = %v, want %v", gotBody["query"], payload["query"])
	}
}

func TestClient_PostRetriesResendBody(t *testing.T) {
	var calls atomic.Int32
	var lastBody string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		buf := make([]byte, 128)
		n, _ := r.Body.Read(buf)
		lastBody = string(buf[:n])
		if calls.Add(1) < 2 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write([]byte("{}"))
	}))
	defer server.Close()

	var v map[string]any
	if err := testClient().Post(context.Background(), server.URL, map[string]string{"k": "v"}, &v); err != nil {
		t.Fatalf("Post failed: %v", err)
	}
	if lastBody != `{"k":"v"}` {
		t.Errorf("retried body = %q, want %q", lastBody, `{"k":"v"}`)
	}
}

func TestRetry_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := Retry(ctx, 5, time.Minute, func() error {
		return &RetryableError{Err: errors.New("transient")}
	})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("error = %v, want context.Canceled", err)
	}
}
