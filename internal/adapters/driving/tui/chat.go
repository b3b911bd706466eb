package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/coursechat-labs/coursechat-cli/internal/core/domain"
	"github.com/coursechat-labs/coursechat-cli/internal/core/ports/driving"
)

// answerMsg carries a completed answer into the update loop.
type answerMsg struct {
	answer *domain.Answer
}

// errMsg carries a failed query into the update loop.
type errMsg struct {
	err error
}

// Chat is the interactive chat model. One session spans the whole
// program run; follow-up questions carry the session identifier from
// the first answer.
type Chat struct {
	ask    driving.AskService
	ctx    context.Context
	styles *Styles

	viewport   viewport.Model
	input      textarea.Model
	spin       spinner.Model
	transcript []string
	sessionID  string
	waiting    bool
	ready      bool
	width      int
	height     int
}

// NewChat creates the chat model.
func NewChat(ctx context.Context, ask driving.AskService) *Chat {
	input := textarea.New()
	input.Placeholder = "Ask about your courses..."
	input.CharLimit = 2000
	input.SetHeight(2)
	input.ShowLineNumbers = false
	input.Focus()

	spin := spinner.New()
	spin.Spinner = spinner.Dot

	return &Chat{
		ask:    ask,
		ctx:    ctx,
		styles: DefaultStyles(),
		input:  input,
		spin:   spin,
	}
}

// SessionID returns the active session identifier, empty before the
// first answer.
func (c *Chat) SessionID() string {
	return c.sessionID
}

// Init starts the input blink.
func (c *Chat) Init() tea.Cmd {
	return textarea.Blink
}

// Update handles one message.
func (c *Chat) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		c.width = msg.Width
		c.height = msg.Height
		inputHeight := c.input.Height() + 2
		if !c.ready {
			c.viewport = viewport.New(msg.Width, msg.Height-inputHeight-2)
			c.ready = true
		} else {
			c.viewport.Width = msg.Width
			c.viewport.Height = msg.Height - inputHeight - 2
		}
		c.input.SetWidth(msg.Width - 2)
		return c, nil

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return c, tea.Quit
		case tea.KeyEnter:
			if c.waiting {
				return c, nil
			}
			query := strings.TrimSpace(c.input.Value())
			if query == "" {
				return c, nil
			}
			c.appendUser(query)
			c.input.Reset()
			c.waiting = true
			return c, tea.Batch(c.spin.Tick, c.submit(query))
		}

	case answerMsg:
		c.waiting = false
		c.sessionID = msg.answer.SessionID
		c.appendAnswer(msg.answer)
		return c, nil

	case errMsg:
		c.waiting = false
		c.appendLine(c.styles.Error.Render(fmt.Sprintf("Error: %v", msg.err)))
		return c, nil

	case spinner.TickMsg:
		if c.waiting {
			var cmd tea.Cmd
			c.spin, cmd = c.spin.Update(msg)
			return c, cmd
		}
		return c, nil
	}

	var inputCmd tea.Cmd
	c.input, inputCmd = c.input.Update(msg)
	cmds = append(cmds, inputCmd)

	var vpCmd tea.Cmd
	c.viewport, vpCmd = c.viewport.Update(msg)
	cmds = append(cmds, vpCmd)

	return c, tea.Batch(cmds...)
}

// submit runs the query off the update loop.
func (c *Chat) submit(query string) tea.Cmd {
	return func() tea.Msg {
		answer, err := c.ask.Ask(c.ctx, query, c.sessionID)
		if err != nil {
			return errMsg{err: err}
		}
		return answerMsg{answer: answer}
	}
}

func (c *Chat) appendUser(query string) {
	c.appendLine(c.styles.UserLabel.Render("You: ") + query)
}

func (c *Chat) appendAnswer(answer *domain.Answer) {
	c.appendLine(c.styles.BotLabel.Render("Assistant: ") + answer.Text)
	if line := formatSources(answer.Sources); line != "" {
		c.appendLine(c.styles.Sources.Render(line))
	}
}

func (c *Chat) appendLine(line string) {
	c.transcript = append(c.transcript, line, "")
	c.viewport.SetContent(strings.Join(c.transcript, "\n"))
	c.viewport.GotoBottom()
}

// formatSources builds the one-line source footer, deduplicating
// repeated citations while keeping rank order.
func formatSources(sources []domain.SourceCitation) string {
	if len(sources) == 0 {
		return ""
	}
	seen := make(map[string]bool)
	labels := make([]string, 0, len(sources))
	for _, src := range sources {
		label := src.Label()
		if seen[label] {
			continue
		}
		seen[label] = true
		labels = append(labels, label)
	}
	return "Sources: " + strings.Join(labels, ", ")
}

// View renders the chat.
func (c *Chat) View() string {
	if !c.ready {
		return "Loading..."
	}

	var b strings.Builder
	b.WriteString(c.styles.Title.Render("Course Materials Assistant"))
	b.WriteString("\n")
	b.WriteString(c.viewport.View())
	b.WriteString("\n")
	if c.waiting {
		b.WriteString(c.spin.View() + " thinking...")
	} else {
		b.WriteString(c.input.View())
	}
	b.WriteString("\n")
	b.WriteString(c.styles.Help.Render("enter: send • esc: quit"))
	return b.String()
}

// Run starts the chat program and blocks until the user quits.
func Run(ctx context.Context, ask driving.AskService) error {
	program := tea.NewProgram(NewChat(ctx, ask), tea.WithAltScreen())
	_, err := program.Run()
	return err
}
