package httpclient

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

type echoRequest struct {
	Names []string `json:"names"`
}

type echoResponse struct {
	Count int `json:"count"`
}

func TestPostJSONSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Fatalf("expected POST, got %s", r.Method)
		}
		if got := r.Header.Get("Content-Type"); got != "application/json" {
			t.Fatalf("unexpected content type %q", got)
		}
		var req echoRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		json.NewEncoder(w).Encode(echoResponse{Count: len(req.Names)})
	}))
	defer srv.Close()

	client := NewRestyClient(2 * time.Second)
	defer client.Close()

	var out echoResponse
	if err := client.PostJSON(context.Background(), srv.URL, echoRequest{Names: []string{"a", "b"}}, &out); err != nil {
		t.Fatalf("PostJSON: %v", err)
	}
	if out.Count != 2 {
		t.Fatalf("expected count 2, got %d", out.Count)
	}
}

func TestPostJSONErrorOnNon2xx(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := NewRestyClient(2 * time.Second)
	defer client.Close()

	var out echoResponse
	err := client.PostJSON(context.Background(), srv.URL, echoRequest{}, &out)
	if err == nil {
		t.Fatalf("expected error on 500 response")
	}
	if err.Error() == "" {
		t.Fatalf("expected a diagnostic message")
	}
}

func TestPostJSONErrorOnBadBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("not json"))
	}))
	defer srv.Close()

	client := NewRestyClient(2 * time.Second)
	defer client.Close()

	var out echoResponse
	if err := client.PostJSON(context.Background(), srv.URL, echoRequest{}, &out); err == nil {
		t.Fatalf("expected error on undecodable body")
	}
}

func TestPostJSONTimeout(t *testing.T) {
	block := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		<-block
	}))
	defer srv.Close()
	defer close(block)

	client := NewRestyClient(100 * time.Millisecond)
	defer client.Close()

	if err := client.PostJSON(context.Background(), srv.URL, echoRequest{}, nil); err == nil {
		t.Fatalf("expected timeout error")
	}
}

func TestCloseIsIdempotent(t *testing.T) {
	client := NewRestyClient(time.Second)
	if err := client.Close(); err != nil {
		t.Fatalf("first Close: %v", err)
	}
	if err := client.Close(); err != nil {
		t.Fatalf("second Close: %v", err)
	}
	if err := client.PostJSON(context.Background(), "http://127.0.0.1:0", nil, nil); err == nil {
		t.Fatalf("expected error using a closed client")
	}
}
