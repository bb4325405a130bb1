package controllers

import (
	"bufio"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/angelmondragon/shopnex/internal/cart"
)

func readEvent(t *testing.T, r *bufio.Reader) (name string, snap cart.Snapshot) {
	t.Helper()
	for {
		line, err := r.ReadString('\n')
		if err != nil {
			t.Fatalf("read event: %v", err)
		}
		line = strings.TrimRight(line, "\n")
		switch {
		case strings.HasPrefix(line, "event: "):
			name = strings.TrimPrefix(line, "event: ")
		case strings.HasPrefix(line, "data: "):
			if err := json.Unmarshal([]byte(strings.TrimPrefix(line, "data: ")), &snap); err != nil {
				t.Fatalf("decode event data: %v", err)
			}
		case line == "" && name != "":
			return name, snap
		}
	}
}

func TestCartEventsStreamsMutations(t *testing.T) {
	f := newFixture(t)
	product, _ := f.catalog.Get(4)
	f.store.AddToCart(context.Background(), product)

	srv := httptest.NewServer(CartEvents(f.store, f.logg, time.Minute))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL, nil)
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	resp, err := srv.Client().Do(req)
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	defer resp.Body.Close()

	if ct := resp.Header.Get("Content-Type"); ct != "text/event-stream" {
		t.Fatalf("unexpected content type %q", ct)
	}

	reader := bufio.NewReader(resp.Body)
	name, snap := readEvent(t, reader)
	if name != cartEventName || snap.Count != 1 {
		t.Fatalf("expected initial cart event with one unit, got %s %+v", name, snap)
	}

	f.store.AddToCart(context.Background(), product)
	if _, snap = readEvent(t, reader); snap.Count != 2 {
		t.Fatalf("expected count 2 after add, got %d", snap.Count)
	}

	f.store.ClearCart(context.Background())
	if _, snap = readEvent(t, reader); snap.Count != 0 || len(snap.Lines) != 0 {
		t.Fatalf("expected empty cart event, got %+v", snap)
	}
}
