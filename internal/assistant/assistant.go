// Package assistant implements the copilot chat transcript. Replies are canned;
// the caller decides when a pending reply is delivered.
package assistant

import (
	"fmt"
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"
	"github.com/google/uuid"
)

// Greeting is the first message of every transcript.
const Greeting = "Hello! I'm your Dealer365 Copilot. How can I assist you with sales or service today?"

// Suggestions are the canned prompts offered under an empty input.
var Suggestions = []string{
	"Check inventory for white X5",
	"Calculate lease for James Miller",
	"Show overdue tasks",
	"What is the CSI score today?",
}

// Role identifies the author of a message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is one chat bubble.
type Message struct {
	ID   string
	Role Role
	Text string
}

// Pending is a prompt awaiting its reply.
type Pending struct {
	ID     string
	Prompt string
}

// Transcript is a chat history. It is safe for concurrent use.
type Transcript struct {
	mu       sync.Mutex
	messages []Message
	pending  int
}

// New returns a transcript holding the greeting.
func New() *Transcript {
	return &Transcript{
		messages: []Message{{ID: uuid.NewString(), Role: RoleAssistant, Text: Greeting}},
	}
}

// Send appends a user message. Blank input is ignored and reports false.
func (t *Transcript) Send(text string) (Pending, bool) {
	if strings.TrimSpace(text) == "" {
		return Pending{}, false
	}
	t.mu.Lock()
	defer t.mu.Unlock()

	msg := Message{ID: uuid.NewString(), Role: RoleUser, Text: text}
	t.messages = append(t.messages, msg)
	t.pending++
	return Pending{ID: msg.ID, Prompt: text}, true
}

// Reply appends the canned answer to p and clears one pending prompt.
func (t *Transcript) Reply(p Pending) Message {
	t.mu.Lock()
	defer t.mu.Unlock()

	msg := Message{ID: uuid.NewString(), Role: RoleAssistant, Text: CannedReply(p.Prompt)}
	t.messages = append(t.messages, msg)
	if t.pending > 0 {
		t.pending--
	}
	return msg
}

// Typing reports whether any reply is still outstanding.
func (t *Transcript) Typing() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.pending > 0
}

// Messages returns a copy of the history.
func (t *Transcript) Messages() []Message {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]Message, len(t.messages))
	copy(out, t.messages)
	return out
}

// CannedReply is the assistant's answer to any prompt.
func CannedReply(prompt string) string {
	return fmt.Sprintf("I've found information regarding \"%s\". Would you like me to open the relevant record or summarize the data?", prompt)
}

// Markdown renders the history as a markdown document.
func (t *Transcript) Markdown() string {
	var sb strings.Builder
	for i, m := range t.Messages() {
		if i > 0 {
			sb.WriteString("\n")
		}
		switch m.Role {
		case RoleUser:
			sb.WriteString("**You:** ")
		default:
			sb.WriteString("**Copilot:** ")
		}
		sb.WriteString(m.Text)
		sb.WriteString("\n")
	}
	if t.Typing() {
		sb.WriteString("\n_Copilot is typing..._\n")
	}
	return sb.String()
}

// Render styles the transcript for a terminal of the given width. The plain
// markdown is returned alongside any renderer error.
func (t *Transcript) Render(width int) (string, error) {
	md := t.Markdown()
	if width < 20 {
		width = 20
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("dark"),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return md, fmt.Errorf("assistant renderer: %w", err)
	}
	out, err := r.Render(md)
	if err != nil {
		return md, fmt.Errorf("render transcript: %w", err)
	}
	return strings.TrimRight(out, "\n"), nil
}
