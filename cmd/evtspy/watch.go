package main

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"github.com/tidwall/gjson"

	"github.com/tkbind/tkbind/events"
	"github.com/tkbind/tkbind/internal/relay"
	"github.com/tkbind/tkbind/pkg/natsx"
)

func newWatchCmd() *cobra.Command {
	var topic string
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Tail a relay topic and render events as they arrive",
		RunE: func(cmd *cobra.Command, args []string) error {
			conn, err := natsx.NewClient()
			if err != nil {
				return fmt.Errorf("connect to NATS (set NATS_URL): %w", err)
			}
			defer conn.Close()

			ctx, cancel := context.WithCancel(cmd.Context())
			defer cancel()

			p := tea.NewProgram(newWatchModel(topic), tea.WithAltScreen())

			sub, err := relay.NATS(conn).Topic(ctx, topic).Subscribe(ctx,
				relay.HookFunc(func(_ context.Context, ev events.Event) {
					p.Send(eventMsg{event: ev})
				}))
			if err != nil {
				return err
			}
			defer sub.Unsubscribe()

			_, err = p.Run()
			return err
		},
	}
	cmd.Flags().StringVarP(&topic, "topic", "t", "tkbind.events", "relay topic to tail")
	return cmd
}

// maxScrollback bounds the retained lines so long sessions stay flat.
const maxScrollback = 500

type eventMsg struct {
	event events.Event
}

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	kindStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	seqStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

type watchModel struct {
	topic  string
	lines  []string
	total  int
	width  int
	height int
}

func newWatchModel(topic string) watchModel {
	return watchModel{topic: topic}
}

func (m watchModel) Init() tea.Cmd { return nil }

func (m watchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "c":
			m.lines = nil
		}
	case eventMsg:
		m.total++
		m.lines = append(m.lines, renderEvent(msg.event))
		if len(m.lines) > maxScrollback {
			m.lines = m.lines[len(m.lines)-maxScrollback:]
		}
	}
	return m, nil
}

func (m watchModel) View() string {
	var b strings.Builder
	b.WriteString(headerStyle.Render("evtspy"))
	b.WriteString(dimStyle.Render("  watching " + m.topic))
	b.WriteString("\n\n")

	visible := m.lines
	// Leave room for the header and the status bar.
	if rows := m.height - 4; rows > 0 && len(visible) > rows {
		visible = visible[len(visible)-rows:]
	}
	for _, line := range visible {
		b.WriteString(line)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(dimStyle.Render(fmt.Sprintf("%d events  c:clear  q:quit", m.total)))
	return b.String()
}

// renderEvent flattens an event into one display line. It reads the relay
// wire form rather than the typed variant, so what shows on screen is
// exactly what crossed the broker.
func renderEvent(ev events.Event) string {
	payload, err := events.ToJSON(ev)
	if err != nil {
		return dimStyle.Render("unrenderable event: " + err.Error())
	}

	kind := gjson.GetBytes(payload, "type").String()
	line := kindStyle.Render(fmt.Sprintf("%-12s", kind)) + " " +
		seqStyle.Render(gjson.GetBytes(payload, "sequence").String())
	if detail := renderDetail(kind, payload); detail != "" {
		line += " " + detail
	}
	if target := gjson.GetBytes(payload, "target"); target.Exists() {
		line += dimStyle.Render(" @" + target.String())
	}
	return line
}

func renderDetail(kind string, payload []byte) string {
	switch kind {
	case "key":
		if press := gjson.GetBytes(payload, "press"); press.Exists() {
			return press.String()
		}
		return gjson.GetBytes(payload, "keysym").String()
	case "button", "motion":
		return fmt.Sprintf("%d,%d",
			gjson.GetBytes(payload, "x").Int(),
			gjson.GetBytes(payload, "y").Int())
	case "wheel":
		return fmt.Sprintf("delta=%g", gjson.GetBytes(payload, "delta").Float())
	case "configure":
		return fmt.Sprintf("%dx%d",
			gjson.GetBytes(payload, "width").Int(),
			gjson.GetBytes(payload, "height").Int())
	case "virtual":
		if data := gjson.GetBytes(payload, "data"); data.Exists() {
			return data.Raw
		}
	}
	return ""
}
