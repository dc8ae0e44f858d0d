package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/leofalp/flowcanvas/core/action"
	"github.com/leofalp/flowcanvas/core/flow"
	"github.com/leofalp/flowcanvas/nodes"
)

// actionDoneMsg arrives when a triggered node settles.
type actionDoneMsg struct {
	id string
}

// App is the bubbletea model.
type App struct {
	ctx context.Context
	set *nodes.Set

	cursor  int
	editing bool
	input   textinput.Model
	spinner spinner.Model
	status  string

	width  int
	height int
}

// NewApp builds the model for set. ctx is handed to triggered actions.
func NewApp(ctx context.Context, set *nodes.Set) *App {
	in := textinput.New()
	in.Prompt = "> "
	in.CharLimit = 2000

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return &App{ctx: ctx, set: set, input: in, spinner: sp}
}

// Run starts the program on the alternate screen and blocks until quit.
func Run(ctx context.Context, set *nodes.Set) error {
	p := tea.NewProgram(NewApp(ctx, set), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}

func (a *App) Init() tea.Cmd {
	return a.spinner.Tick
}

func (a *App) selected() (nodes.Node, bool) {
	all := a.set.All()
	if len(all) == 0 {
		return nil, false
	}
	if a.cursor >= len(all) {
		a.cursor = len(all) - 1
	}
	return all[a.cursor], true
}

// Update handles one message.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width, a.height = msg.Width, msg.Height
		a.input.Width = max(20, msg.Width-8)
		return a, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(msg)
		return a, cmd

	case actionDoneMsg:
		if node, err := a.set.Get(msg.id); err == nil {
			state := node.State()
			if state.Status == action.StatusFailed {
				a.status = fmt.Sprintf("%s failed: %s", msg.id, state.Message)
			} else {
				a.status = fmt.Sprintf("%s done", msg.id)
			}
		}
		return a, nil

	case tea.KeyMsg:
		if a.editing {
			return a.updateEditing(msg)
		}
		return a.updateBrowsing(msg)
	}
	return a, nil
}

func (a *App) updateBrowsing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		return a, tea.Quit

	case "up", "k":
		if a.cursor > 0 {
			a.cursor--
		}

	case "down", "j":
		if a.cursor < len(a.set.All())-1 {
			a.cursor++
		}

	case "enter":
		node, ok := a.selected()
		if !ok {
			return a, nil
		}
		if !node.Trigger(a.ctx) {
			a.status = node.ID() + " is already running"
			return a, nil
		}
		a.status = node.ID() + " running..."
		return a, a.waitFor(node)

	case "e":
		node, ok := a.selected()
		if !ok || node.State().Running() {
			return a, nil
		}
		a.editing = true
		a.input.SetValue(node.Input())
		a.input.CursorEnd()
		return a, a.input.Focus()

	case "c":
		all := a.set.All()
		if a.cursor+1 >= len(all) {
			a.status = "no next node to connect to"
			return a, nil
		}
		source, target := all[a.cursor], all[a.cursor+1]
		edge := a.set.Store().Connect(flow.NewEdge(source.ID(), target.ID()))
		a.status = fmt.Sprintf("connected %s → %s (%s)", edge.Source, edge.Target, edge.ID)
	}
	return a, nil
}

func (a *App) updateEditing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		if node, ok := a.selected(); ok {
			node.SetInput(a.input.Value())
			a.status = node.ID() + " updated"
		}
		a.editing = false
		a.input.Blur()
		return a, nil
	case "esc":
		a.editing = false
		a.input.Blur()
		return a, nil
	}
	var cmd tea.Cmd
	a.input, cmd = a.input.Update(msg)
	return a, cmd
}

func (a *App) waitFor(node nodes.Node) tea.Cmd {
	ctx := a.ctx
	return func() tea.Msg {
		_ = node.Wait(ctx)
		return actionDoneMsg{id: node.ID()}
	}
}

// View renders the node list, the selected node's details and the key help.
func (a *App) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("flowcanvas"))
	b.WriteString("\n")

	all := a.set.All()
	if len(all) == 0 {
		b.WriteString(idleStyle.Render("No nodes in this workflow."))
	}
	for i, node := range all {
		b.WriteString(a.renderRow(i, node))
		b.WriteString("\n")
	}

	if node, ok := a.selected(); ok {
		b.WriteString("\n")
		b.WriteString(panelStyle.Render(a.renderDetails(node)))
		b.WriteString("\n")
	}

	if a.status != "" {
		b.WriteString("\n" + a.status + "\n")
	}
	b.WriteString(helpStyle.Render(a.help()))
	return b.String()
}

func (a *App) renderRow(i int, node nodes.Node) string {
	cursor := "  "
	id := node.ID()
	if i == a.cursor {
		cursor = "> "
		id = selectedStyle.Render(id)
	}
	inputs := len(a.set.Store().Incoming(node.ID()))
	return lipgloss.JoinHorizontal(lipgloss.Top,
		cursor,
		kindStyle.Render(string(node.Kind())),
		fmt.Sprintf("%-12s ", id),
		a.renderStatus(node.State()),
		idleStyle.Render(fmt.Sprintf("  %d input%s", inputs, plural(inputs))),
	)
}

func (a *App) renderStatus(state action.State) string {
	switch state.Status {
	case action.StatusRunning:
		return a.spinner.View() + " running"
	case action.StatusSucceeded:
		return okStyle.Render("✓ done")
	case action.StatusFailed:
		return errorStyle.Render("✗ " + state.Message)
	default:
		return idleStyle.Render("· idle")
	}
}

func (a *App) renderDetails(node nodes.Node) string {
	var lines []string
	label := map[flow.Kind]string{
		flow.KindScrape: "URL",
		flow.KindChat:   "Prompt",
		flow.KindSheet:  "Spreadsheet ID",
	}[node.Kind()]

	if a.editing {
		lines = append(lines, labelStyle.Render(label+":"), a.input.View())
	} else {
		lines = append(lines, labelStyle.Render(label+": ")+node.Input())
	}

	snippets := a.set.Store().Incoming(node.ID())
	if len(snippets) > 0 {
		lines = append(lines, "", labelStyle.Render(fmt.Sprintf("Connected to %d input%s", len(snippets), plural(len(snippets)))))
		for _, s := range snippets {
			lines = append(lines, fmt.Sprintf("[%s] %s", s.Label, oneLine(s.Preview)))
		}
	}

	if n, ok := a.set.Store().Node(node.ID()); ok {
		if out := output(n.Payload); out != "" {
			lines = append(lines, "", labelStyle.Render("Output"), oneLine(flow.Preview(out)))
		}
	}
	return strings.Join(lines, "\n")
}

func (a *App) help() string {
	if a.editing {
		return "enter: save • esc: cancel"
	}
	return "↑/↓: select • enter: run • e: edit • c: connect to next • q: quit"
}

func output(p flow.Payload) string {
	switch v := p.(type) {
	case flow.ScrapePayload:
		return v.Markdown
	case flow.ChatPayload:
		return v.Response
	case flow.SheetPayload:
		return v.LastWriteInfo
	}
	return ""
}

func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func plural(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}
