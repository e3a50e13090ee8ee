// Package support is the two-way message thread between end users and
// administrators.
package support

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"bookbites/internal/domains/identity"
	"bookbites/internal/store"
)

// Reply is an admin response appended to a message thread.
type Reply struct {
	Text      string    `json:"text"`
	Date      time.Time `json:"date"`
	AdminName string    `json:"admin_name"`
}

// Message text is immutable once sent; replies are append-only.
type Message struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	AuthorRef string    `json:"author_ref"` // user id, or "anon"
	Phone     string    `json:"phone,omitempty"`
	Text      string    `json:"text"`
	Date      time.Time `json:"date"`
	Read      bool      `json:"read"`
	Replies   []Reply   `json:"replies,omitempty"`
}

type Service struct {
	messages []Message

	persist store.Writer
	now     func() time.Time
}

func NewService(messages []Message, persist store.Writer) *Service {
	return &Service{messages: messages, persist: persist, now: time.Now}
}

// Messages returns a copy, newest first.
func (s *Service) Messages() []Message {
	out := make([]Message, len(s.messages))
	copy(out, s.messages)
	return out
}

type sendInput struct {
	Name string
	Text string
}

func (i sendInput) Validate() error {
	return validation.ValidateStruct(&i,
		validation.Field(&i.Name, validation.Required.Error("name is required")),
		validation.Field(&i.Text, validation.Required.Error("message text is required")),
	)
}

// Send appends a new unread message attributed to the given user, or to
// "anon" when nobody is signed in.
func (s *Service) Send(name, text string, author *identity.User) (Message, error) {
	if err := (sendInput{Name: name, Text: text}).Validate(); err != nil {
		return Message{}, err
	}

	msg := Message{
		ID:        uuid.NewString(),
		Name:      name,
		AuthorRef: "anon",
		Text:      text,
		Date:      s.now(),
	}
	if author != nil {
		msg.AuthorRef = author.ID
		msg.Phone = author.Phone
	}

	s.messages = append([]Message{msg}, s.Messages()...)
	s.persist(store.KeyMessages, s.messages)
	return msg, nil
}

// Reply appends an admin reply to the matching message. Replying to a
// deleted or unknown id is a silent no-op.
func (s *Service) Reply(messageID, text, adminName string) {
	if adminName == "" {
		adminName = "Admin"
	}
	next := s.Messages()
	for i, msg := range next {
		if msg.ID != messageID {
			continue
		}
		replies := make([]Reply, len(msg.Replies), len(msg.Replies)+1)
		copy(replies, msg.Replies)
		next[i].Replies = append(replies, Reply{
			Text:      text,
			Date:      s.now(),
			AdminName: adminName,
		})
		s.messages = next
		s.persist(store.KeyMessages, s.messages)
		return
	}
}

// MarkRead flags a message as handled. Unknown ids are a no-op.
func (s *Service) MarkRead(messageID string) {
	next := s.Messages()
	for i, msg := range next {
		if msg.ID == messageID {
			next[i].Read = true
			s.messages = next
			s.persist(store.KeyMessages, s.messages)
			return
		}
	}
}
