package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Colors for modern design
var (
	primaryColor   = lipgloss.Color("#7C3AED") // Purple
	secondaryColor = lipgloss.Color("#10B981") // Green
	accentColor    = lipgloss.Color("#F59E0B") // Amber
	surfaceColor   = lipgloss.Color("#1F2937") // Dark gray
	textColor      = lipgloss.Color("#F3F4F6") // Light gray
	mutedColor     = lipgloss.Color("#9CA3AF") // Muted gray
	borderColor    = lipgloss.Color("#374151") // Border gray
)

// Styles
var (
	containerStyle = lipgloss.NewStyle().
			Padding(0, 1).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(borderColor)

	titleStyle = lipgloss.NewStyle().
			Foreground(primaryColor).
			Bold(true).
			Align(lipgloss.Center)

	statusBarStyle = lipgloss.NewStyle().
			Foreground(textColor).
			Background(surfaceColor).
			Padding(0, 1)

	sequenceStyle = lipgloss.NewStyle().
			Foreground(textColor).
			Background(lipgloss.Color("#111827")).
			Padding(1).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(borderColor)
	// Alphabet styles
	nucleotideStyle = lipgloss.NewStyle().Foreground(secondaryColor).Bold(true)
	proteinStyle    = lipgloss.NewStyle().Foreground(accentColor).Bold(true)
	unknownStyle    = lipgloss.NewStyle().Foreground(mutedColor)
)

// Entry mirrors one row of the records database written by the fastascan CLI.
type Entry struct {
	Name     string `json:"name"`
	Length   int    `json:"length"`
	Alphabet string `json:"alphabet"`
	Sequence string `json:"sequence"`
}

// Code returns the accession-like first token of the record name.
func (e Entry) Code() string {
	fields := strings.Fields(e.Name)
	if len(fields) == 0 {
		return e.Name
	}
	return fields[0]
}

func alphabetStyle(alphabet string) lipgloss.Style {
	switch alphabet {
	case "Nucleotide":
		return nucleotideStyle
	case "Protein":
		return proteinStyle
	default:
		return unknownStyle
	}
}

type listItem struct {
	record Entry
}

func (i listItem) FilterValue() string {
	return i.record.Name
}

func (i listItem) Title() string {
	if code := i.record.Code(); code != "" {
		return code
	}
	return "(no header)"
}

func (i listItem) Description() string {
	// Metadata line shown below the title in the selector list
	alpha := alphabetStyle(i.record.Alphabet).Render(i.record.Alphabet)
	return fmt.Sprintf("Alphabet: %s    Length: %d", alpha, i.record.Length)
}

type mode int

const (
	modeSequence mode = iota
	modeFasta
	modeInfo
)

func (m mode) String() string {
	switch m {
	case modeSequence:
		return "🧬 Sequence"
	case modeFasta:
		return "📄 FASTA"
	case modeInfo:
		return "ℹ️ Info"
	default:
		return "Unknown"
	}
}

type model struct {
	list          list.Model
	records       []Entry
	currentMode   mode
	showHelp      bool
	width         int
	height        int
	totalRecords  int
	selectedIndex int
}

func newModel(records []Entry) model {
	items := make([]list.Item, len(records))
	for i, record := range records {
		items[i] = listItem{record: record}
	}

	l := list.New(items, list.NewDefaultDelegate(), 0, 0)
	l.Title = "FASTA Records"
	l.SetShowStatusBar(false)
	l.SetShowPagination(true)
	l.SetFilteringEnabled(true)

	return model{
		list:         l,
		records:      records,
		currentMode:  modeSequence,
		totalRecords: len(records),
	}
}

func initialModel(dbPath string) (model, error) {
	data, err := os.ReadFile(dbPath)
	if err != nil {
		return model{}, err
	}
	var records []Entry
	if err := json.Unmarshal(data, &records); err != nil {
		return model{}, err
	}
	return newModel(records), nil
}

// cycleMode advances to the next view mode, wrapping around.
func (m model) cycleMode() model {
	m.currentMode = (m.currentMode + 1) % 3
	return m
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		// Calculate list dimensions (left panel takes 1/3 of width)
		listWidth := msg.Width / 3
		listHeight := msg.Height - 4 // Account for borders and status

		m.list.SetWidth(listWidth)
		m.list.SetHeight(listHeight)

		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit

		case "h":
			m.showHelp = !m.showHelp
			return m, nil

		case "tab":
			return m.cycleMode(), nil

		case "1":
			m.currentMode = modeSequence
			return m, nil

		case "2":
			m.currentMode = modeFasta
			return m, nil

		case "3":
			m.currentMode = modeInfo
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	m.selectedIndex = m.list.Index()
	return m, cmd
}

func (m model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	// Help modal overlay
	if m.showHelp {
		return m.renderHelpModal()
	}

	// Main layout
	leftPanel := m.renderLeftPanel()
	rightPanel := m.renderRightPanel()
	statusBar := m.renderStatusBar()

	main := lipgloss.JoinHorizontal(
		lipgloss.Top,
		leftPanel,
		rightPanel,
	)

	return lipgloss.JoinVertical(
		lipgloss.Left,
		main,
		statusBar,
	)
}

func (m model) renderLeftPanel() string {
	listWidth := m.width / 3

	listContainer := containerStyle.
		Width(listWidth - 2). // Account for padding
		Height(m.height - 4). // Account for status bar
		Render(m.list.View())

	return listContainer
}

func (m model) renderRightPanel() string {
	rightWidth := (m.width * 2) / 3

	if len(m.records) == 0 {
		return containerStyle.
			Width(rightWidth - 2).
			Height(m.height - 4).
			Render("No records available")
	}

	selectedItem := m.list.SelectedItem()
	if selectedItem == nil {
		return containerStyle.
			Width(rightWidth - 2).
			Height(m.height - 4).
			Render("No item selected")
	}

	record := selectedItem.(listItem).record

	// Header with record code and alphabet
	header := titleStyle.Render(fmt.Sprintf("%s (%s)", record.Code(), record.Alphabet))

	// Metadata line: alphabet and length, colored by alphabet
	label := lipgloss.NewStyle().Foreground(mutedColor)
	style := alphabetStyle(record.Alphabet)
	alphaColored := style.Render(record.Alphabet)
	lenColored := style.Render(fmt.Sprintf("Length: %d", record.Length))

	metaStr := label.Render("Alphabet: ") + alphaColored + label.Render("    ") + lenColored

	// Content based on current mode
	var content string
	switch m.currentMode {
	case modeSequence:
		content = m.formatSequence(record.Sequence, "Sequence")
	case modeFasta:
		content = m.formatSequence(">"+record.Name+"\n"+record.Sequence, "FASTA Text")
	case modeInfo:
		content = m.formatInfo(record)
	}

	panelContent := lipgloss.JoinVertical(
		lipgloss.Left,
		header,
		metaStr,
		"",
		content,
	)

	return containerStyle.
		Width(rightWidth - 2).
		Height(m.height - 4).
		Render(panelContent)
}

func (m model) formatSequence(sequence, title string) string {
	if sequence == "" {
		return lipgloss.NewStyle().
			Foreground(mutedColor).
			Render(fmt.Sprintf("No %s available", strings.ToLower(title)))
	}

	// Remove line breaks and format for display
	cleanSequence := strings.ReplaceAll(sequence, "\r", "")

	titleStr := lipgloss.NewStyle().
		Foreground(accentColor).
		Bold(true).
		Render(title + ":")

	// Format sequence with wrapping
	sequenceContent := sequenceStyle.
		Width(m.width*2/3 - 6). // Account for padding and borders
		Render(cleanSequence)

	return lipgloss.JoinVertical(
		lipgloss.Left,
		titleStr,
		"",
		sequenceContent,
	)
}

func (m model) formatInfo(record Entry) string {
	label := lipgloss.NewStyle().Foreground(mutedColor)
	value := lipgloss.NewStyle().Foreground(textColor)

	lines := []string{
		label.Render("Header:   ") + value.Render(record.Name),
		label.Render("Code:     ") + value.Render(record.Code()),
		label.Render("Length:   ") + value.Render(fmt.Sprintf("%d", record.Length)),
		label.Render("Alphabet: ") + alphabetStyle(record.Alphabet).Render(record.Alphabet),
	}
	return strings.Join(lines, "\n")
}

func (m model) renderStatusBar() string {
	// Left side - navigation info
	leftInfo := fmt.Sprintf("📊 %d/%d records", m.selectedIndex+1, m.totalRecords)

	// Center - current mode
	centerInfo := fmt.Sprintf("Mode: %s", m.currentMode.String())

	// Right side - help hint
	rightInfo := "Press 'h' for help • 'q' to quit"

	// Calculate spacing
	totalUsed := len(leftInfo) + len(centerInfo) + len(rightInfo)
	spacing := m.width - totalUsed - 6 // Account for padding

	var statusContent string
	if spacing > 0 {
		leftSpacing := spacing / 2
		rightSpacing := spacing - leftSpacing

		statusContent = fmt.Sprintf("%s%s%s%s%s",
			leftInfo,
			strings.Repeat(" ", leftSpacing),
			centerInfo,
			strings.Repeat(" ", rightSpacing),
			rightInfo,
		)
	} else {
		// Fallback for narrow terminals
		statusContent = fmt.Sprintf("%s | %s", leftInfo, centerInfo)
	}

	return statusBarStyle.
		Width(m.width).
		Render(statusContent)
}

func (m model) renderHelpModal() string {
	helpContent := `🧬 FASTA Records Browser - Help

Navigation:
  ↑/↓, j/k     Navigate list
  /            Filter records
  Enter        Select record

View Modes:
  1            Show sequence
  2            Show FASTA text
  3            Show record info
  Tab          Cycle modes

General:
  h            Toggle this help
  q, Ctrl+C    Quit application

Current Mode: ` + m.currentMode.String() + `
Total Records: ` + fmt.Sprintf("%d", m.totalRecords) + `
`

	modalStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(primaryColor).
		Padding(1, 2).
		Background(surfaceColor).
		Foreground(textColor).
		Width(60).
		Align(lipgloss.Center)

	modal := modalStyle.Render(helpContent)

	return lipgloss.Place(
		m.width,
		m.height,
		lipgloss.Center,
		lipgloss.Center,
		modal,
	)
}

func main() {
	dbPath := "records.json"
	if len(os.Args) > 1 {
		dbPath = os.Args[1]
	}
	m, err := initialModel(dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Printf("Error: %v", err)
		os.Exit(1)
	}
}
