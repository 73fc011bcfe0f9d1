package cache

import (
	"context"
	"testing"
	"time"

	"github.com/deepmindcheck/web/pkg/config"
)

type payload struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func TestMemoryStoreRoundTrip(t *testing.T) {
	s := NewMemoryStore()
	defer s.Close()

	ctx := context.Background()
	in := payload{Name: "catalog", Count: 3}

	if err := s.SetJSON(ctx, "k1", in, time.Minute); err != nil {
		t.Fatalf("SetJSON: %v", err)
	}

	var out payload
	hit, err := s.GetJSON(ctx, "k1", &out)
	if err != nil {
		t.Fatalf("GetJSON: %v", err)
	}
	if !hit {
		t.Fatal("expected a hit")
	}
	if out != in {
		t.Errorf("got %+v, want %+v", out, in)
	}
}

func TestMemoryStoreMiss(t *testing.T) {
	s := NewMemoryStore()
	defer s.Close()

	var out payload
	hit, err := s.GetJSON(context.Background(), "absent", &out)
	if err != nil {
		t.Fatalf("GetJSON: %v", err)
	}
	if hit {
		t.Error("expected a miss for an absent key")
	}
}

func TestMemoryStoreExpiry(t *testing.T) {
	s := NewMemoryStore()
	defer s.Close()

	ctx := context.Background()
	if err := s.SetJSON(ctx, "k1", payload{Name: "x"}, 10*time.Millisecond); err != nil {
		t.Fatalf("SetJSON: %v", err)
	}

	time.Sleep(30 * time.Millisecond)

	var out payload
	hit, err := s.GetJSON(ctx, "k1", &out)
	if err != nil {
		t.Fatalf("GetJSON: %v", err)
	}
	if hit {
		t.Error("expected the entry to have expired")
	}
}

func TestMemoryStoreOverwrite(t *testing.T) {
	s := NewMemoryStore()
	defer s.Close()

	ctx := context.Background()
	s.SetJSON(ctx, "k1", payload{Count: 1}, time.Minute)
	s.SetJSON(ctx, "k1", payload{Count: 2}, time.Minute)

	var out payload
	if hit, _ := s.GetJSON(ctx, "k1", &out); !hit {
		t.Fatal("expected a hit")
	}
	if out.Count != 2 {
		t.Errorf("Count = %d, want the newer value", out.Count)
	}
}

func TestNewSelectsBackend(t *testing.T) {
	s, err := New(config.CacheConfig{Backend: "memory"})
	if err != nil {
		t.Fatalf("New(memory): %v", err)
	}
	s.Close()

	s, err = New(config.CacheConfig{})
	if err != nil {
		t.Fatalf("New(default): %v", err)
	}
	s.Close()

	if _, err := New(config.CacheConfig{Backend: "etcd"}); err == nil {
		t.Error("expected error for unknown backend")
	}
}
