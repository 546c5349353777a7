package golightqa

import (
	"bytes"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// Role identifies the author of a transcript message.
type Role string

// Message is a single entry of a Transcript.
type Message struct {
	ID        uuid.UUID `json:"id"`
	Role      Role      `json:"role"`
	Content   string    `json:"content"`
	Label     string    `json:"label,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// Transcript is the append-only chat history of a session. It is owned by the caller;
// the Chatbot never reads it, so the remote model only ever sees the current query.
type Transcript struct {
	mu       sync.Mutex
	messages []Message
}

const (
	// RoleUser marks messages typed by the user.
	RoleUser Role = "user"
	// RoleAssistant marks answers and greetings.
	RoleAssistant Role = "assistant"
)

// NewTranscript creates a Transcript. A non-empty greeting is added as the first assistant message.
func NewTranscript(greeting string) *Transcript {
	t := &Transcript{}
	if greeting != "" {
		t.append(RoleAssistant, greeting, "")
	}
	return t
}

// AppendUser records a user question.
func (t *Transcript) AppendUser(query string) Message {
	return t.append(RoleUser, query, "")
}

// AppendAnswer records a resolved answer together with its source label.
func (t *Transcript) AppendAnswer(env AnswerEnvelope) Message {
	return t.append(RoleAssistant, env.Text, env.Label())
}

func (t *Transcript) append(role Role, content, label string) Message {
	t.mu.Lock()
	defer t.mu.Unlock()

	msg := Message{
		ID:        uuid.New(),
		Role:      role,
		Content:   content,
		Label:     label,
		CreatedAt: time.Now(),
	}
	t.messages = append(t.messages, msg)

	return msg
}

// Messages returns a copy of the messages in the order they were appended.
func (t *Transcript) Messages() []Message {
	t.mu.Lock()
	defer t.mu.Unlock()

	return append([]Message(nil), t.messages...)
}

// Len returns the number of messages.
func (t *Transcript) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()

	return len(t.messages)
}

// String renders the message as the chat displays it.
func (m Message) String() string {
	if m.Label == "" {
		return fmt.Sprintf("%s: %s", m.Role, m.Content)
	}
	return fmt.Sprintf("%s: %s (Source: %s)", m.Role, m.Content, m.Label)
}

// Markdown renders the transcript as a Markdown document.
func (t *Transcript) Markdown() string {
	var sb strings.Builder
	for _, m := range t.Messages() {
		switch m.Role {
		case RoleUser:
			sb.WriteString("**User:** ")
		default:
			sb.WriteString("**Assistant:** ")
		}
		sb.WriteString(strings.TrimSpace(m.Content))
		if m.Label != "" {
			fmt.Fprintf(&sb, "\n\n_Source: %s_", m.Label)
		}
		sb.WriteString("\n\n")
	}
	return sb.String()
}

// HTML renders the transcript Markdown to an HTML fragment. Raw HTML in messages is not passed through.
func (t *Transcript) HTML() (string, error) {
	md := goldmark.New(goldmark.WithExtensions(extension.GFM))

	var buf bytes.Buffer
	if err := md.Convert([]byte(t.Markdown()), &buf); err != nil {
		return "", fmt.Errorf("failed to render transcript: %w", err)
	}

	return buf.String(), nil
}
