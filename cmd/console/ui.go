package main

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"
)

const PlaceHolderText = "Say something to the NPC..."

// defaultRoster is cycled through when spawning NPCs from the picker.
var defaultRoster = []SpawnRequest{
	{Name: "Elda", Personality: "merchant"},
	{Name: "Bram", Personality: "warrior"},
	{Name: "Sage Miriel", Personality: "mage"},
	{Name: "Tomas", Personality: "villager"},
}

type turn struct {
	speaker string
	text    string
}

// ConsoleUI is the BubbleTea model that runs the UI.
// https://github.com/charmbracelet/bubbletea
type ConsoleUI struct {
	config       *ConsoleConfig
	client       *http.Client
	npc          *NPCView
	history      []turn
	lastReply    string
	chatViewport viewport.Model
	metaViewport viewport.Model
	textarea     textarea.Model
	ready        bool
	width        int
	height       int
	err          error
	loading      bool
	notice       string

	// NPC picker state
	showNPCModal bool
	npcs         []NPCView
	selectedNPC  int
	loadingNPCs  bool
	spawnIdx     int

	// Quit confirmation state
	showQuitModal bool

	// Progress bar state
	progressTick int
}

type chatResponseMsg struct {
	response *ChatResponse
	err      error
}

type npcsLoadedMsg struct {
	npcs []NPCView
	err  error
}

type npcSpawnedMsg struct {
	npc *NPCView
	err error
}

type aiToggledMsg struct {
	npc *NPCView
	err error
}

type progressTickMsg struct{}

var (
	chatPanelStyle = lipgloss.NewStyle().
			PaddingTop(2).
			PaddingBottom(1).
			PaddingLeft(3).
			PaddingRight(0)

	metaPanelStyle = lipgloss.NewStyle().
			PaddingTop(2).
			PaddingBottom(0).
			PaddingLeft(0).
			PaddingRight(2)

	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")). // pink
			Bold(true)

	speakerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("212")). // purple
			Bold(true)

	npcStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("86")) // green

	userStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39")) // teal

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")) // red

	loadingStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")) // yellow

	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")) // dark grey

	modalStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(1, 2).
			Background(lipgloss.Color("235")).
			Foreground(lipgloss.Color("255"))

	modalTitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true).
			Align(lipgloss.Center)

	modalItemStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("255"))

	modalSelectedItemStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("0")).
				Background(lipgloss.Color("205")).
				Bold(true)
)

var separatorStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("240")) // dark grey

func NewConsoleUI(cfg *ConsoleConfig, client *http.Client) ConsoleUI {
	ta := textarea.New()
	ta.Placeholder = PlaceHolderText
	ta.Focus()
	ta.Prompt = promptStyle.Render(":: ")
	ta.CharLimit = 1000
	ta.SetWidth(50)
	ta.SetHeight(3)
	ta.ShowLineNumbers = false

	chatVp := viewport.New(50, 20)
	chatVp.MouseWheelEnabled = true

	metaVp := viewport.New(20, 20)

	return ConsoleUI{
		config:       cfg,
		client:       client,
		textarea:     ta,
		chatViewport: chatVp,
		metaViewport: metaVp,
		ready:        false,
		showNPCModal: true,
		loadingNPCs:  true,
		selectedNPC:  0,
	}
}

func (m *ConsoleUI) writeMetadata() string {
	var content strings.Builder
	content.WriteString(titleStyle.Render("NPC") + "\n\n")

	if m.npc != nil {
		content.WriteString("Name:\n")
		content.WriteString(m.npc.Name + "\n\n")

		content.WriteString("Personality:\n")
		content.WriteString(m.npc.Personality + "\n\n")

		content.WriteString("Dialogue AI:\n")
		if m.npc.AIEnabled {
			content.WriteString("enabled\n\n")
		} else {
			content.WriteString("disabled\n\n")
		}

		content.WriteString("Exchanges:\n")
		content.WriteString(fmt.Sprintf("%d\n\n", len(m.history)/2))
	}

	content.WriteString("Commands:\n")
	content.WriteString("• Ctrl+C: Quit\n")
	content.WriteString("• Enter: Send\n")
	content.WriteString("• Ctrl+Y: Copy reply\n")
	content.WriteString("• /ai on|off: Toggle AI\n")
	content.WriteString("• /help: Help\n")

	return content.String()
}

// writeChatContent rebuilds the chat panel for the current viewport width
func (m *ConsoleUI) writeChatContent() {
	chatWidth := m.chatViewport.Width - 6 // Account for left(3) + right(3) padding

	var content strings.Builder
	content.WriteString(titleStyle.Render("NPC ENGINE") + "\n\n")
	if m.npc != nil {
		content.WriteString(fmt.Sprintf("You are talking to %s.\n\n", m.npc.Name))
	}
	content.WriteString(separatorStyle.Render(strings.Repeat("─", max(chatWidth-6, 1))) + "\n\n")

	for _, t := range m.history {
		if t.speaker == "You" {
			content.WriteString(userStyle.Render("You: ") + wordwrap.String(t.text, chatWidth-6) + "\n\n")
		} else {
			prefix := speakerStyle.Render(t.speaker + ": ")
			content.WriteString(prefix + npcStyle.Render(wordwrap.String(t.text, chatWidth-len(t.speaker)-2)) + "\n\n")
		}
	}

	if m.notice != "" {
		content.WriteString(loadingStyle.Render(m.notice) + "\n\n")
	}
	if m.err != nil {
		content.WriteString(errorStyle.Render("Error: "+m.err.Error()) + "\n\n")
	}
	if m.loading {
		content.WriteString(m.renderProgressBar())
	}

	m.chatViewport.SetContent(content.String())
	m.chatViewport.GotoBottom()
}

func (m ConsoleUI) Init() tea.Cmd {
	if m.showNPCModal {
		return m.loadNPCs()
	}
	return textarea.Blink
}

func (m ConsoleUI) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.showNPCModal {
		return m.updateNPCModal(msg)
	}

	if m.showQuitModal {
		return m.updateQuitModal(msg)
	}

	var (
		tiCmd tea.Cmd
		vpCmd tea.Cmd
		mvCmd tea.Cmd
	)

	switch msg := msg.(type) {
	case tea.MouseMsg:
		m.chatViewport, vpCmd = m.chatViewport.Update(msg)
		m.textarea, tiCmd = m.textarea.Update(msg)
		m.metaViewport, mvCmd = m.metaViewport.Update(msg)
		return m, tea.Batch(tiCmd, vpCmd, mvCmd)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		m.writeChatContent()
		m.metaViewport.SetContent(m.writeMetadata())
		m.ready = true

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.showQuitModal = true
			return m, nil

		case tea.KeyCtrlY:
			if m.lastReply == "" {
				return m, nil
			}
			if err := clipboard.WriteAll(m.lastReply); err != nil {
				m.err = err
			} else {
				m.notice = "Copied last reply to clipboard."
			}
			m.writeChatContent()
			return m, nil

		case tea.KeyEnter:
			if m.loading {
				return m, nil
			}

			input := strings.TrimSpace(m.textarea.Value())
			if input == "" {
				return m, nil
			}

			if strings.HasPrefix(input, "/") {
				return m.handleCommand(input)
			}

			m.textarea.Reset()
			m.loading = true
			m.notice = ""
			m.err = nil
			m.progressTick = 0

			m.history = append(m.history, turn{speaker: "You", text: input})
			m.writeChatContent()

			return m, tea.Batch(m.sendChatMessage(input), progressTick())
		}

	case chatResponseMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
		} else {
			m.history = append(m.history, turn{speaker: msg.response.Name, text: msg.response.Reply})
			m.lastReply = msg.response.Reply
			if msg.response.Busy {
				m.notice = fmt.Sprintf("%s is mid-thought; that was a stock reply.", msg.response.Name)
			}
		}
		m.writeChatContent()
		m.metaViewport.SetContent(m.writeMetadata())
		return m, nil

	case aiToggledMsg:
		if msg.err != nil {
			m.err = msg.err
		} else {
			m.npc = msg.npc
			if msg.npc.AIEnabled {
				m.notice = "Dialogue AI enabled."
			} else {
				m.notice = "Dialogue AI disabled; canned replies only."
			}
		}
		m.writeChatContent()
		m.metaViewport.SetContent(m.writeMetadata())
		return m, nil

	case progressTickMsg:
		if m.loading {
			m.progressTick++
			m.writeChatContent()
			return m, progressTick()
		}
	}

	m.textarea, tiCmd = m.textarea.Update(msg)
	m.chatViewport, vpCmd = m.chatViewport.Update(msg)
	m.metaViewport, mvCmd = m.metaViewport.Update(msg)

	return m, tea.Batch(tiCmd, vpCmd, mvCmd)
}

func (m *ConsoleUI) resize() {
	chatWidth := int(float64(m.width)*0.75) - 4
	metaWidth := m.width - chatWidth - 6

	m.chatViewport.Width = chatWidth - 2
	m.chatViewport.Height = m.height - 7
	m.metaViewport.Width = metaWidth - 2
	m.metaViewport.Height = m.height - 4
	m.textarea.SetWidth(chatWidth - 4)
}

func (m ConsoleUI) handleCommand(input string) (tea.Model, tea.Cmd) {
	cmd := strings.ToLower(strings.TrimSpace(input))
	m.textarea.Reset()

	switch {
	case cmd == "/help":
		helpText := `
Commands:
• /help - Show this help
• /ai on - Enable remote dialogue for this NPC
• /ai off - Disable remote dialogue (canned replies)
• Ctrl+Y - Copy the last NPC reply
• Ctrl+C - Quit

How to play:
• Type what you want to say and press Enter
• The NPC answers in character
• Mention trade or quests to see what they offer
`
		currentContent := m.chatViewport.View()
		m.chatViewport.SetContent(currentContent + titleStyle.Render("Help:") + helpText + "\n")
		m.chatViewport.GotoBottom()
		return m, nil

	case cmd == "/ai on":
		return m, m.toggleNPCAI(true)

	case cmd == "/ai off":
		return m, m.toggleNPCAI(false)
	}

	return m, nil
}

func (m ConsoleUI) sendChatMessage(message string) tea.Cmd {
	return func() tea.Msg {
		resp, err := chatNPC(m.client, m.config.APIBaseURL, m.npc.ID, message)
		return chatResponseMsg{resp, err}
	}
}

func (m ConsoleUI) toggleNPCAI(enabled bool) tea.Cmd {
	return func() tea.Msg {
		view, err := toggleAI(m.client, m.config.APIBaseURL, m.npc.ID, enabled)
		return aiToggledMsg{view, err}
	}
}

func (m ConsoleUI) loadNPCs() tea.Cmd {
	return func() tea.Msg {
		npcs, err := listNPCs(m.client, m.config.APIBaseURL)
		return npcsLoadedMsg{npcs, err}
	}
}

func (m ConsoleUI) spawnFromRoster() tea.Cmd {
	req := defaultRoster[m.spawnIdx%len(defaultRoster)]
	return func() tea.Msg {
		view, err := spawnNPC(m.client, m.config.APIBaseURL, req.Name, req.Personality)
		return npcSpawnedMsg{view, err}
	}
}

func (m ConsoleUI) updateNPCModal(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case npcsLoadedMsg:
		m.loadingNPCs = false
		if msg.err != nil {
			m.err = msg.err
		} else {
			m.npcs = msg.npcs
		}

	case npcSpawnedMsg:
		if msg.err != nil {
			m.err = msg.err
		} else {
			m.spawnIdx++
			m.npcs = append(m.npcs, *msg.npc)
			m.selectedNPC = len(m.npcs) - 1
		}

	case tea.KeyMsg:
		if m.loadingNPCs {
			if msg.Type == tea.KeyCtrlC || msg.Type == tea.KeyEsc {
				return m, tea.Quit
			}
			return m, nil
		}

		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.showQuitModal = true
			return m, nil
		case tea.KeyUp:
			if m.selectedNPC > 0 {
				m.selectedNPC--
			}
		case tea.KeyDown:
			if m.selectedNPC < len(m.npcs)-1 {
				m.selectedNPC++
			}
		case tea.KeyEnter:
			if len(m.npcs) > 0 {
				npc := m.npcs[m.selectedNPC]
				m.npc = &npc
				m.showNPCModal = false
				m.err = nil
				if m.width > 0 && m.height > 0 {
					m.resize()
				}
				m.writeChatContent()
				m.metaViewport.SetContent(m.writeMetadata())
				m.textarea.Focus()
				m.ready = true
				return m, textarea.Blink
			}
		default:
			if msg.String() == "s" {
				m.err = nil
				return m, m.spawnFromRoster()
			}
		}
	}

	return m, nil
}

func (m ConsoleUI) updateQuitModal(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc, tea.KeyEnter:
			return m, tea.Quit
		default:
			switch msg.String() {
			case "y", "Y":
				return m, tea.Quit
			case "n", "N":
				m.showQuitModal = false
				if m.showNPCModal {
					return m, nil
				}
				m.textarea.Focus()
				return m, textarea.Blink
			}
		}
	}

	return m, nil
}

func (m ConsoleUI) renderQuitModal() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	var content strings.Builder
	content.WriteString(modalTitleStyle.Render("Leave the conversation?"))
	content.WriteString("\n\n")
	content.WriteString("The NPC will remember you next time.")
	content.WriteString("\n\n")
	content.WriteString(promptStyle.Render("Press Y to quit, N to continue, or Ctrl+C to force quit"))

	modal := modalStyle.Width(50).Render(content.String())

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, modal, lipgloss.WithWhitespaceChars(" "))
}

func (m ConsoleUI) renderNPCModal() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	var content strings.Builder

	if m.loadingNPCs {
		content.WriteString(modalTitleStyle.Render("Loading NPCs..."))
		content.WriteString("\n\n")
		content.WriteString(loadingStyle.Render("Fetching spawned NPCs from the game server..."))
	} else {
		content.WriteString(modalTitleStyle.Render("Select an NPC"))
		content.WriteString("\n\n")

		if len(m.npcs) == 0 {
			content.WriteString("No NPCs are spawned yet.\n")
		}
		for i, npc := range m.npcs {
			line := fmt.Sprintf("%s (%s)", npc.Name, npc.Personality)
			if i == m.selectedNPC {
				content.WriteString(modalSelectedItemStyle.Render("▶ " + line))
			} else {
				content.WriteString(modalItemStyle.Render("  " + line))
			}
			content.WriteString("\n")
		}

		if m.err != nil {
			content.WriteString("\n" + errorStyle.Render(m.err.Error()) + "\n")
		}

		content.WriteString("\n")
		content.WriteString(promptStyle.Render("↑/↓ navigate, Enter select, S spawn, Ctrl+C exit"))
	}

	modal := modalStyle.Width(60).Render(content.String())

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, modal, lipgloss.WithWhitespaceChars(" "))
}

func (m ConsoleUI) View() string {
	if m.showNPCModal {
		return m.renderNPCModal()
	}

	if m.showQuitModal {
		return m.renderQuitModal()
	}

	if !m.ready {
		return "\n  Initializing..."
	}

	chatWidth := int(float64(m.width)*0.75) - 4
	metaWidth := m.width - chatWidth - 6

	chatPanel := chatPanelStyle.Width(chatWidth).Height(m.height - 3).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			m.chatViewport.View(),
			"",
			separatorStyle.Render(strings.Repeat("─", max(chatWidth-4, 1))),
			m.textarea.View(),
		),
	)

	metaPanel := metaPanelStyle.Width(metaWidth).Height(m.height - 2).Render(
		m.metaViewport.View(),
	)

	return lipgloss.JoinHorizontal(lipgloss.Top, chatPanel, metaPanel)
}

// renderProgressBar creates an animated progress bar for loading states
func (m ConsoleUI) renderProgressBar() string {
	usable := m.chatViewport.Width - 6
	if usable <= 0 {
		usable = 30
	}
	if usable > 80 {
		usable = 80
	} else if usable < 10 {
		usable = 10
	}

	const totalFrames = 40
	frame := m.progressTick % totalFrames
	filled := (frame * usable) / totalFrames

	var bar strings.Builder
	for i := 0; i < usable; i++ {
		if i < filled {
			bar.WriteString("█")
		} else if i == filled && frame%4 < 2 {
			bar.WriteString("▓")
		} else {
			bar.WriteString("░")
		}
	}
	return separatorStyle.Render(bar.String())
}

// progressTick creates a command that sends a progress tick message
func progressTick() tea.Cmd {
	return tea.Tick(time.Millisecond*200, func(time.Time) tea.Msg {
		return progressTickMsg{}
	})
}
