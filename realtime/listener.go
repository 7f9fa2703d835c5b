package realtime

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/jackc/pgx/v5"

	"smelab/backend/database"
)

// channel is the Postgres NOTIFY channel carrying change events. Using the
// store as the bus means events survive across multiple API replicas.
const channel = "smelab_events"

var defaultHub = NewHub()

// Default returns the process-wide hub.
func Default() *Hub { return defaultHub }

// Publish emits a change event through pg_notify. Failures are logged and
// swallowed: the write that triggered the event has already committed, and a
// dropped notification only delays the client until its next fetch.
func Publish(ctx context.Context, ev Event) {
	payload, err := json.Marshal(ev)
	if err != nil {
		return
	}
	if database.Pool == nil {
		defaultHub.Dispatch(ev) // test / offline mode
		return
	}
	if _, err := database.Pool.Exec(ctx, `SELECT pg_notify($1, $2)`, channel, string(payload)); err != nil {
		log.Printf("realtime publish error: %v", err)
	}
}

// Listen holds a dedicated connection on the NOTIFY channel and feeds the
// hub. Reconnects with backoff; runs until the context is cancelled.
func Listen(ctx context.Context, databaseURL string) {
	for ctx.Err() == nil {
		if err := listenOnce(ctx, databaseURL); err != nil && ctx.Err() == nil {
			log.Printf("realtime listener error: %v", err)
			select {
			case <-time.After(3 * time.Second):
			case <-ctx.Done():
				return
			}
		}
	}
}

func listenOnce(ctx context.Context, databaseURL string) error {
	conn, err := pgx.Connect(ctx, databaseURL)
	if err != nil {
		return err
	}
	defer conn.Close(context.Background())

	if _, err := conn.Exec(ctx, "LISTEN "+channel); err != nil {
		return err
	}
	for {
		n, err := conn.WaitForNotification(ctx)
		if err != nil {
			return err
		}
		var ev Event
		if err := json.Unmarshal([]byte(n.Payload), &ev); err != nil {
			log.Printf("realtime: bad payload: %v", err)
			continue
		}
		defaultHub.Dispatch(ev)
	}
}
