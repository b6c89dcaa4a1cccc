package notify

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/ecowash/ecowash-backend/internal/model"
)

// Kind names a notification.  The values double as queue routing keys.
type Kind string

const (
	KindApproved Kind = "reservation.approved"
	KindRejected Kind = "reservation.rejected"
)

// Event carries everything needed to build the email without touching the
// database, so it can cross a broker unchanged.
type Event struct {
	Kind        Kind              `json:"kind"`
	Reservation model.Reservation `json:"reservation"`
	User        model.UserSummary `json:"user"`
	Reason      string            `json:"reason,omitempty"`
}

// Notifier dispatches notification events.  Notify never blocks on
// delivery and never reports delivery failures to the caller.
type Notifier interface {
	Notify(ctx context.Context, ev Event)
}

var errNoRecipient = errors.New("event has no recipient address")

// Compose renders the email for ev.
func Compose(ev Event) (Message, error) {
	if ev.User.Email == "" {
		return Message{}, errNoRecipient
	}
	var (
		subject string
		body    string
		err     error
	)
	switch ev.Kind {
	case KindApproved:
		subject = SubjectApproved
		body, err = RenderApproval(ev.Reservation, ev.User)
	case KindRejected:
		subject = SubjectRejected
		body, err = RenderRejection(ev.Reservation, ev.User, ev.Reason)
	default:
		return Message{}, fmt.Errorf("unknown notification kind %q", ev.Kind)
	}
	if err != nil {
		return Message{}, err
	}
	return Message{To: ev.User.Email, Subject: subject, HTML: body}, nil
}

// Deliver composes and sends ev with m.
func Deliver(ctx context.Context, m Mailer, ev Event) error {
	msg, err := Compose(ev)
	if err != nil {
		return err
	}
	return m.Send(ctx, msg)
}

// DirectNotifier sends from a goroutine in the API process.  The request
// context is not used for delivery since it ends with the response.
type DirectNotifier struct {
	mailer  Mailer
	timeout time.Duration
	wg      sync.WaitGroup
}

func NewDirectNotifier(m Mailer, timeout time.Duration) *DirectNotifier {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &DirectNotifier{mailer: m, timeout: timeout}
}

func (n *DirectNotifier) Notify(_ context.Context, ev Event) {
	n.wg.Add(1)
	go func() {
		defer n.wg.Done()
		ctx, cancel := context.WithTimeout(context.Background(), n.timeout)
		defer cancel()

		entry := log.WithFields(log.Fields{"kind": ev.Kind, "reservation_id": ev.Reservation.ID, "to": ev.User.Email})
		if err := Deliver(ctx, n.mailer, ev); err != nil {
			entry.WithError(err).Error("notify: delivery failed")
			return
		}
		entry.Info("notify: email sent")
	}()
}

// Wait blocks until in-flight deliveries finish.  Called on shutdown.
func (n *DirectNotifier) Wait() { n.wg.Wait() }
