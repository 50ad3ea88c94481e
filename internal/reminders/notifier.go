package reminders

import (
	"fmt"

	"github.com/gregdel/pushover"
	log "github.com/sirupsen/logrus"
)

// PushoverNotifier sends reminders through the Pushover API, one app token for all users.
type PushoverNotifier struct {
	app *pushover.Pushover
}

func NewPushoverNotifier(appToken string) *PushoverNotifier {
	return &PushoverNotifier{
		app: pushover.New(appToken),
	}
}

func (n *PushoverNotifier) Notify(userKey, title, message string) error {
	msg := pushover.NewMessageWithTitle(message, title)
	resp, err := n.app.SendMessage(msg, pushover.NewRecipient(userKey))
	if err != nil {
		return fmt.Errorf("pushover send: %w", err)
	}
	log.Tracef("pushover message sent, request id: %s", resp.ID)
	return nil
}
