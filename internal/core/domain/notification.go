package domain

import "time"

type NotificationKind string

const (
	NotifFollow  NotificationKind = "follow"
	NotifLike    NotificationKind = "like"
	NotifComment NotificationKind = "comment"
	NotifRepost  NotificationKind = "repost"
	NotifMessage NotificationKind = "message"
)

// Notification est créée par le fan-out comme effet de bord d'une action.
// Seul le destinataire peut la muter (read = true, transition unique).
type Notification struct {
	ID        int64
	Sender    string
	Receiver  string
	Kind      NotificationKind
	Message   string
	CreatedAt time.Time
	Read      bool
}

func NewNotification(sender, receiver string, kind NotificationKind, message string) *Notification {
	return &Notification{
		Sender:    sender,
		Receiver:  receiver,
		Kind:      kind,
		Message:   message,
		CreatedAt: time.Now().UTC(),
	}
}
