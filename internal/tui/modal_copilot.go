package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/tinytelemetry/dealer365/internal/assistant"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

// CopilotModal is the chat panel. The transcript outlives the modal, so a
// reply that lands after the modal closes is still shown on reopen.
type CopilotModal struct {
	ctx        ModalContext
	transcript *assistant.Transcript
	delay      time.Duration
	input      textinput.Model
	viewport   viewport.Model
	suggestion int

	// Rendered transcript cache, keyed by what changes the output.
	cacheKey string
	rendered string
}

func NewCopilotModal(t *assistant.Transcript, delay time.Duration, ctx ModalContext) *CopilotModal {
	ti := textinput.New()
	ti.Placeholder = "Ask Copilot anything..."
	ti.Prompt = "› "
	ti.CharLimit = 256
	ti.Focus()
	return &CopilotModal{
		ctx:        ctx,
		transcript: t,
		delay:      delay,
		input:      ti,
		viewport:   viewport.New(80, 20),
	}
}

func (c *CopilotModal) ID() string { return "copilot" }

func (c *CopilotModal) Update(msg tea.Msg) (bool, tea.Cmd) {
	if scrollViewport(&c.viewport, c.ctx, mouseOnly(msg)) {
		return false, nil
	}
	k, ok := msg.(tea.KeyMsg)
	if !ok {
		return false, nil
	}
	switch k.String() {
	case "esc", "escape":
		return true, nil
	case "pgup":
		c.viewport.HalfPageUp()
		return false, nil
	case "pgdown":
		c.viewport.HalfPageDown()
		return false, nil
	case "tab":
		if c.input.Value() == "" || c.isSuggestion(c.input.Value()) {
			c.input.SetValue(assistant.Suggestions[c.suggestion%len(assistant.Suggestions)])
			c.input.CursorEnd()
			c.suggestion++
		}
		return false, nil
	case "enter":
		p, sent := c.transcript.Send(c.input.Value())
		if !sent {
			return false, nil
		}
		c.input.SetValue("")
		return false, replyAfter(p, c.delay)
	}
	var cmd tea.Cmd
	c.input, cmd = c.input.Update(msg)
	return false, cmd
}

func (c *CopilotModal) isSuggestion(s string) bool {
	for _, v := range assistant.Suggestions {
		if v == s {
			return true
		}
	}
	return false
}

// replyAfter delivers the canned reply once the typing delay has passed.
func replyAfter(p assistant.Pending, delay time.Duration) tea.Cmd {
	return tea.Tick(delay, func(time.Time) tea.Msg {
		return assistantReplyMsg{pending: p}
	})
}

// mouseOnly keeps key input away from the viewport so typing j/k does not scroll.
func mouseOnly(msg tea.Msg) tea.Msg {
	if m, ok := msg.(tea.MouseMsg); ok {
		return m
	}
	return nil
}

func (c *CopilotModal) View(width, height int) string {
	wrap := max(20, width-16)
	msgs := c.transcript.Messages()
	key := fmt.Sprintf("%d/%t/%d", len(msgs), c.transcript.Typing(), wrap)
	changed := key != c.cacheKey
	if changed {
		out, err := c.transcript.Render(wrap)
		if err != nil {
			out = c.transcript.Markdown()
		}
		c.cacheKey, c.rendered = key, out
	}

	content := c.rendered
	if c.input.Value() == "" && len(msgs) == 1 {
		content += "\n" + helpStyle.Render("Try: "+strings.Join(assistant.Suggestions, " · "))
	}
	return renderModalFrame(&c.viewport, modalFrame{
		Title:   "Dealer365 Copilot",
		Input:   c.input.View(),
		Content: content,
		Status:  []string{"Enter: Send", "Tab: Suggestion", "PgUp/PgDn/Wheel: Scroll", "ESC: Close"},
		Bottom:  changed,
	}, width, height)
}
