package domain

import (
	"strings"
	"time"
)

// Message appartient au log d'une paire non ordonnée {from, to}.
// Son id est monotone dans la portée de cette paire. Seen ne transitionne
// que false -> true, via le watermark cumulatif du destinataire.
type Message struct {
	ID        int64
	From      string
	To        string
	Content   string
	CreatedAt time.Time
	Seen      bool
}

func NewMessage(from, to, content string) (*Message, error) {
	if strings.TrimSpace(content) == "" {
		return nil, ErrEmptyMessage
	}
	return &Message{
		From:      from,
		To:        to,
		Content:   content,
		CreatedAt: time.Now().UTC(),
	}, nil
}

// ConversationKey ordonne la paire : la clé canonique d'une conversation
// est (min, max), quel que soit le sens d'envoi.
func ConversationKey(a, b string) (string, string) {
	if a <= b {
		return a, b
	}
	return b, a
}
