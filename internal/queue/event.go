// Package queue moves reservation notifications through RabbitMQ: the API
// publishes events and a consumer renders and sends the emails.
package queue

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/ecowash/ecowash-backend/internal/notify"
)

// NotificationQueue is the durable queue carrying notification events.
const NotificationQueue = "reservation.notifications"

// NotificationEnvelope is the message body published to NotificationQueue.
type NotificationEnvelope struct {
	Event       notify.Event `json:"event"`
	PublishedAt string       `json:"published_at"`
}

func encodeEvent(ev notify.Event, now time.Time) ([]byte, error) {
	return json.Marshal(NotificationEnvelope{Event: ev, PublishedAt: now.UTC().Format(time.RFC3339)})
}

func decodeEvent(body []byte) (notify.Event, error) {
	var env NotificationEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		return notify.Event{}, fmt.Errorf("unmarshal: %w", err)
	}
	return env.Event, nil
}
