package catalog_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"magic_villa/internal/adapters/catalog"
)

func TestClient_GetVillas_RetriesThenSuccess(t *testing.T) {
	var hits int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch atomic.AddInt32(&hits, 1) {
		case 1, 2:
			// two transient failures
			w.WriteHeader(500)
		default:
			w.WriteHeader(200)
			_ = json.NewEncoder(w).Encode([]map[string]any{{"name": "Lake View", "occupancy": 2}})
		}
	}))
	defer ts.Close()

	cl, err := catalog.New(ts.URL, "", 100) // high RPS for tests
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	got, err := cl.GetVillas(ctx)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(got) != 1 || got[0].Name != "Lake View" || got[0].Occupancy != 2 {
		t.Fatalf("unexpected payload: %+v", got)
	}
	if atomic.LoadInt32(&hits) < 3 {
		t.Fatalf("expected at least 3 calls due to retries, got %d", hits)
	}
}

func TestClient_GetVillas_Envelope(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("X-API-Key") != "k" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		_, _ = w.Write([]byte(`{"statusCode":200,"isSuccess":true,"errorMessages":[],"result":[{"id":7,"name":"Pool View","sqft":100}]}`))
	}))
	defer ts.Close()

	cl, _ := catalog.New(ts.URL, "k", 100)
	got, err := cl.GetVillas(context.Background())
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(got) != 1 || got[0].Name != "Pool View" || got[0].Sqft != 100 {
		t.Fatalf("unexpected payload: %+v", got)
	}

	anon, _ := catalog.New(ts.URL, "", 100)
	if _, err := anon.GetVillas(context.Background()); !errors.Is(err, catalog.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestClient_GetVillas_404IsNotRetried(t *testing.T) {
	var hits int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		http.NotFound(w, r)
	}))
	defer ts.Close()

	cl, err := catalog.New(ts.URL, "", 100)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	_, err = cl.GetVillas(ctx)
	if !errors.Is(err, catalog.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if n := atomic.LoadInt32(&hits); n != 1 {
		t.Fatalf("expected a single call, got %d", n)
	}
}

func TestNew_RequiresURL(t *testing.T) {
	if _, err := catalog.New("", "", 1); err == nil {
		t.Fatal("expected error for empty url")
	}
}
