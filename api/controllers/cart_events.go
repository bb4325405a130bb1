package controllers

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/angelmondragon/shopnex/internal/cart"
	"github.com/angelmondragon/shopnex/pkg/logger"
	"github.com/angelmondragon/shopnex/pkg/types"
)

const cartEventName = "cart"

// CartEvents streams the cart as server-sent events: the current state on
// connect, then the full state after every mutation. A slow client only
// ever skips intermediate states, never the latest one.
func CartEvents(store CartStore, logg *logger.Logger, keepAlive time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		rc := http.NewResponseController(w)

		updates := make(chan cart.Snapshot, 1)
		unsubscribe := store.Subscribe(func(s cart.Snapshot) {
			select {
			case updates <- s:
				return
			default:
			}
			select {
			case <-updates:
			default:
			}
			select {
			case updates <- s:
			default:
			}
		})
		defer unsubscribe()

		w.Header().Set("Content-Type", "text/event-stream")
		w.Header().Set("Cache-Control", "no-cache")
		w.Header().Set("Connection", "keep-alive")
		w.WriteHeader(http.StatusOK)

		var seq uint64
		send := func(s cart.Snapshot) bool {
			seq++
			event := types.StreamEvent{Name: cartEventName, ID: strconv.FormatUint(seq, 10), Data: s}
			if err := writeEvent(w, event); err != nil {
				if logg != nil {
					logg.WarnErr(ctx, "cart.events_write_failed", err)
				}
				return false
			}
			return rc.Flush() == nil
		}

		if !send(store.Snapshot()) {
			return
		}

		if keepAlive <= 0 {
			keepAlive = 15 * time.Second
		}
		ticker := time.NewTicker(keepAlive)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case s := <-updates:
				if !send(s) {
					return
				}
			case <-ticker.C:
				if _, err := io.WriteString(w, ": keep-alive\n\n"); err != nil {
					return
				}
				if rc.Flush() != nil {
					return
				}
			}
		}
	}
}

func writeEvent(w io.Writer, event types.StreamEvent) error {
	data, err := json.Marshal(event.Data)
	if err != nil {
		return fmt.Errorf("encoding %s event: %w", event.Name, err)
	}
	_, err = fmt.Fprintf(w, "id: %s\nevent: %s\ndata: %s\n\n", event.ID, event.Name, data)
	return err
}
