package ui

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"litedb/pkg/database"
	dberror "litedb/pkg/error"
	"litedb/pkg/logging"
	"litedb/pkg/ui/base"
)

// Model is the interactive statement checker: an editor, the validated
// result as a table, and the parsed statement rendered back as SQL.
type Model struct {
	database    *database.Database
	highlighter *SQLHighlighter
	queryEditor textarea.Model
	astView     viewport.Model
	resultTable table.Model
	spinner     spinner.Model
	help        help.Model

	width        int
	height       int
	checking     bool
	showHelp     bool
	lastResult   database.QueryResult
	lastError    error
	queryHistory []string
	historyPos   int

	lastCheckTime time.Duration
	keys          keyMap
}

func NewModel(db *database.Database) Model {
	ta := textarea.New()
	ta.Placeholder = "Enter a SQL statement ending with ';'..."
	ta.CharLimit = 5000
	ta.ShowLineNumbers = true
	ta.SetHeight(6)
	ta.Focus()

	p := styles.palette
	ta.FocusedStyle.CursorLine = lipgloss.NewStyle().Background(p.Border)
	ta.FocusedStyle.Placeholder = lipgloss.NewStyle().Foreground(p.Muted)
	ta.FocusedStyle.Text = lipgloss.NewStyle().Foreground(p.Text)
	ta.FocusedStyle.LineNumber = lipgloss.NewStyle().Foreground(p.Muted)

	vp := viewport.New(80, 4)
	vp.Style = styles.ast

	t := table.New(
		table.WithColumns([]table.Column{{Title: "Results", Width: 80}}),
		table.WithRows([]table.Row{}),
		table.WithFocused(false),
		table.WithHeight(10),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(p.Primary).
		BorderBottom(true).
		Bold(true).
		Foreground(p.Primary)
	s.Selected = s.Selected.
		Foreground(p.Background).
		Background(p.Secondary).
		Bold(false)
	t.SetStyles(s)

	sp := spinner.New()
	sp.Spinner = spinner.Points
	sp.Style = styles.label.UnsetBold()

	return Model{
		database:    db,
		highlighter: NewSQLHighlighter(base.DarkSyntax),
		queryEditor: ta,
		astView:     vp,
		resultTable: t,
		spinner:     sp,
		help:        help.New(),
		keys:        keys,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.spinner.Tick,
		textarea.Blink,
	)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateLayout()

	case tea.KeyMsg:
		if m.checking {
			return m, nil
		}

		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit

		case key.Matches(msg, m.keys.Check):
			query := m.queryEditor.Value()
			if strings.TrimSpace(query) != "" {
				m.checking = true
				return m, m.checkStatement(query)
			}
			return m, nil

		case key.Matches(msg, m.keys.Clear):
			m.queryEditor.SetValue("")
			m.lastResult = database.QueryResult{}
			m.lastError = nil
			return m, nil

		case key.Matches(msg, m.keys.History):
			m.recallHistory()
			return m, nil

		case key.Matches(msg, m.keys.ShowTables):
			return m, m.showTables()

		case key.Matches(msg, m.keys.ShowStats):
			return m, m.showStatistics()

		case key.Matches(msg, m.keys.Help):
			m.showHelp = !m.showHelp
			return m, nil
		}

	case checkResultMsg:
		m.checking = false
		m.lastResult = msg.result
		m.lastError = msg.err
		m.lastCheckTime = msg.duration

		if msg.query != "" {
			m.queryHistory = append(m.queryHistory, msg.query)
			m.historyPos = len(m.queryHistory)
		}
		if msg.err != nil {
			logging.WithStatement(msg.query).Info("statement rejected", "error", msg.err)
		} else {
			m.updateResultDisplay()
		}

	case spinner.TickMsg:
		if m.checking {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
	}

	if !m.checking {
		var cmd tea.Cmd
		m.queryEditor, cmd = m.queryEditor.Update(msg)
		cmds = append(cmds, cmd)

		m.astView, cmd = m.astView.Update(msg)
		cmds = append(cmds, cmd)

		m.resultTable, cmd = m.resultTable.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

func (m Model) View() string {
	sections := []string{m.renderHeader(), m.renderQueryEditor()}

	switch {
	case m.checking:
		sections = append(sections, m.renderChecking())
	case m.lastError != nil:
		sections = append(sections, m.renderError())
	case m.lastResult.Message != "":
		sections = append(sections, m.renderMessage())
		if len(m.lastResult.Rows) > 0 {
			sections = append(sections, m.renderResultTable())
		}
		if m.lastResult.Statement != nil {
			sections = append(sections, m.astView.View())
		}
	}

	sections = append(sections, m.renderStatusBar())

	if m.showHelp {
		sections = append(sections, m.renderHelp())
	}

	return styles.app.Render(strings.Join(sections, "\n"))
}

func (m Model) renderHelp() string {
	return styles.helpPanel.Render(m.help.FullHelpView(m.keys.FullHelp()))
}

func (m Model) renderHeader() string {
	info := m.database.GetStatistics()

	title := styles.title.Render("LiteDB SQL Checker")
	badge := styles.badge.Render(info.Name)
	counts := styles.counts.Render(fmt.Sprintf("Tables: %d | Checked: %d | Rejected: %d",
		info.TableCount, info.QueriesExecuted, info.ErrorCount))

	header := lipgloss.JoinHorizontal(lipgloss.Left, title, "  ", badge, "  ", counts)

	separator := styles.rule.Render(strings.Repeat("─", max(m.width-4, 0)))

	return header + "\n" + separator
}

func (m Model) renderQueryEditor() string {
	label := styles.label.Render("SQL Statement")
	return fmt.Sprintf("%s\n%s", label, styles.editor.Render(m.queryEditor.View()))
}

func (m Model) renderChecking() string {
	content := lipgloss.JoinHorizontal(lipgloss.Left, m.spinner.View(), " Checking statement...")

	return styles.label.UnsetBold().Padding(1, 0).Render(content)
}

func (m Model) renderError() string {
	content := fmt.Sprintf("%s %s", styles.errBadge.Render("ERROR"), styles.errText.Render(m.lastError.Error()))

	var dbErr *dberror.DBError
	if errors.As(m.lastError, &dbErr) && dbErr.Hint != "" {
		content += "\n" + styles.hint.Render("hint: "+dbErr.Hint)
	}

	return styles.errPanel.Render(content)
}

func (m Model) renderResultTable() string {
	columns := make([]table.Column, len(m.lastResult.Columns))
	for i, col := range m.lastResult.Columns {
		columns[i] = table.Column{Title: col, Width: m.calculateColumnWidth(col, i)}
	}

	rows := make([]table.Row, len(m.lastResult.Rows))
	for i, row := range m.lastResult.Rows {
		rows[i] = table.Row(row)
	}

	m.resultTable.SetColumns(columns)
	m.resultTable.SetRows(rows)
	return m.resultTable.View()
}

func (m Model) renderMessage() string {
	message := m.lastResult.Message
	if m.lastResult.RowsAffected > 0 {
		message = fmt.Sprintf("%s (rows: %d)", message, m.lastResult.RowsAffected)
	}

	return styles.okText.Render(fmt.Sprintf("%s %s", styles.okBadge.Render("OK"), message))
}

func (m Model) renderStatusBar() string {
	timer := ""
	if m.lastCheckTime > 0 {
		timer = fmt.Sprintf(" | Last check: %v", m.lastCheckTime)
	}
	last := ""
	if n := len(m.queryHistory); n > 0 {
		last = " | " + base.TruncateString(m.queryHistory[n-1], 40)
	}

	ready := lipgloss.NewStyle().Foreground(styles.palette.Accent).Render("● Ready")
	detail := lipgloss.NewStyle().Foreground(styles.palette.Muted).Render(timer + last + " | ctrl+h for help")

	return styles.statusBar.
		Width(max(m.width-4, 0)).
		Render(ready + detail)
}

func (m Model) calculateColumnWidth(columnName string, index int) int {
	width := len(columnName) + 2
	for _, row := range m.lastResult.Rows {
		if index < len(row) {
			width = max(width, len(row[index])+2)
		}
	}
	return base.Clamp(width, 10, 40)
}

// updateLayout adjusts component sizes based on window size
func (m *Model) updateLayout() {
	editorHeight := 6
	resultHeight := max(m.height-editorHeight-16, 3)

	m.queryEditor.SetWidth(m.width - 6)
	m.astView.Width = m.width - 6
	m.resultTable.SetHeight(resultHeight)
}

// updateResultDisplay renders the validated statement, highlighted, into the
// AST view.
func (m *Model) updateResultDisplay() {
	if m.lastResult.Statement != nil {
		m.astView.SetContent(m.highlighter.Highlight(m.lastResult.Statement.String()))
		m.astView.GotoTop()
	}
	if len(m.lastResult.Rows) > 0 {
		m.resultTable.Focus()
	}
}

// recallHistory loads the previous checked statement into the editor,
// cycling back to the newest after the oldest.
func (m *Model) recallHistory() {
	if len(m.queryHistory) == 0 {
		return
	}
	m.historyPos--
	if m.historyPos < 0 {
		m.historyPos = len(m.queryHistory) - 1
	}
	m.queryEditor.SetValue(m.queryHistory[m.historyPos])
}

type checkResultMsg struct {
	query    string
	result   database.QueryResult
	err      error
	duration time.Duration
}

func (m Model) checkStatement(query string) tea.Cmd {
	return func() tea.Msg {
		start := time.Now()
		result, err := m.database.ExecuteQuery(query)

		return checkResultMsg{
			query:    query,
			result:   result,
			err:      err,
			duration: time.Since(start),
		}
	}
}

// showTables lists every table with its column definitions.
func (m Model) showTables() tea.Cmd {
	return func() tea.Msg {
		cat := m.database.Catalog()
		names := cat.TableNames()

		rows := make([][]string, 0, len(names))
		for _, name := range names {
			sch, err := cat.GetTableColumns(name)
			if err != nil {
				return checkResultMsg{err: err}
			}
			defs := make([]string, len(sch.Columns))
			for i, col := range sch.Columns {
				defs[i] = col.String()
			}
			rows = append(rows, []string{name, strings.Join(defs, ", ")})
		}

		return checkResultMsg{
			result: database.QueryResult{
				Success: true,
				Columns: []string{"Table", "Columns"},
				Rows:    rows,
				Message: fmt.Sprintf("%d table(s)", len(names)),
			},
		}
	}
}

// showStatistics displays session statistics
func (m Model) showStatistics() tea.Cmd {
	return func() tea.Msg {
		stats := m.database.GetStatistics()
		hits, misses := m.database.Catalog().CacheStats()

		rows := [][]string{
			{"Database Name", stats.Name},
			{"Total Tables", fmt.Sprintf("%d", stats.TableCount)},
			{"Statements Checked", fmt.Sprintf("%d", stats.QueriesExecuted)},
			{"Statements Rejected", fmt.Sprintf("%d", stats.ErrorCount)},
			{"Catalog Lookups", fmt.Sprintf("%d hits / %d misses", hits, misses)},
		}
		if len(stats.Tables) > 0 {
			rows = append(rows, []string{"Tables", strings.Join(stats.Tables, ", ")})
		}

		return checkResultMsg{
			result: database.QueryResult{
				Success: true,
				Columns: []string{"Metric", "Value"},
				Rows:    rows,
				Message: "Session statistics",
			},
		}
	}
}
