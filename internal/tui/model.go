package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/bubbletea"

	"pensieve-tui/internal/app"
)

type viewState int

const (
	viewLogin viewState = iota
	viewRegister
	viewDashboard
	viewDetail
	viewConfirmDelete
)

// Model is the TUI application state. All store and token mutation happens
// inside Update, from the completion messages the async commands deliver,
// so request interleavings resolve to whichever completion arrives last.
type Model struct {
	app   *app.Application
	theme Theme
	keys  keyMap
	md    *MarkdownRenderer

	state       viewState
	width       int
	height      int
	loading     bool
	frame       int
	status      string
	statusIsErr bool

	// auth forms
	emailInput    textinput.Model
	passwordInput textinput.Model
	focusPassword bool

	// dashboard
	searchInput   textinput.Model
	searchFocused bool
	query         string
	list          []app.Conversation
	cursor        int

	// detail
	current  *app.Conversation
	viewport viewport.Model
}

// New creates the TUI around an Application controller.
func New(application *app.Application) *Model {
	email := textinput.New()
	email.Placeholder = "you@example.com"
	email.CharLimit = 120
	email.Width = 40
	email.Focus()

	password := textinput.New()
	password.Placeholder = "password"
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '•'
	password.CharLimit = 120
	password.Width = 40

	search := textinput.New()
	search.Placeholder = "제목, 태그, 내용으로 검색..."
	search.CharLimit = 200
	search.Width = 50

	m := &Model{
		app:           application,
		theme:         NewTheme(),
		keys:          defaultKeyMap(),
		md:            NewMarkdownRenderer(),
		emailInput:    email,
		passwordInput: password,
		searchInput:   search,
		viewport:      viewport.New(80, 20),
		width:         80,
		height:        24,
	}
	if application.Tokens.Get() == "" {
		m.state = viewLogin
	} else {
		m.state = viewDashboard
		m.loading = true
	}
	return m
}

func (m *Model) Init() tea.Cmd {
	if m.loading {
		return tea.Batch(m.checkAuthCmd(), m.spinCmd())
	}
	return textinput.Blink
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.searchInput.Width = maxInt(msg.Width-20, 20)
		m.viewport.Width = msg.Width
		m.viewport.Height = maxInt(msg.Height-8, 5)
		if m.current != nil {
			m.viewport.SetContent(RenderConversationDetail(*m.current, m.md, m.width-4, m.theme))
		}
		return m, nil

	case spinMsg:
		if m.loading {
			m.frame++
			return m, m.spinCmd()
		}
		return m, nil

	case authCheckedMsg:
		m.loading = false
		if msg.err != nil {
			m.toLogin(statusForError(msg.err))
			return m, textinput.Blink
		}
		m.state = viewDashboard
		m.loading = true
		return m, tea.Batch(m.reloadCmd(), m.spinCmd())

	case loginDoneMsg:
		m.loading = false
		if msg.err != nil {
			m.setError(statusForError(msg.err))
			return m, nil
		}
		m.state = viewDashboard
		m.loading = true
		m.setInfo("")
		return m, tea.Batch(m.reloadCmd(), m.spinCmd())

	case registerDoneMsg:
		m.loading = false
		if msg.err != nil {
			m.setError(statusForError(msg.err))
			return m, nil
		}
		m.toLogin("회원가입이 완료되었습니다. 로그인해주세요.")
		m.statusIsErr = false
		return m, textinput.Blink

	case listLoadedMsg:
		m.loading = false
		if msg.err != nil {
			return m.handleRequestError(msg.err)
		}
		m.refreshList()
		m.setInfo("")
		return m, nil

	case detailLoadedMsg:
		m.loading = false
		if msg.err != nil {
			return m.handleRequestError(msg.err)
		}
		conv := msg.conv
		m.current = &conv
		m.viewport.SetContent(RenderConversationDetail(conv, m.md, m.width-4, m.theme))
		m.viewport.GotoTop()
		m.state = viewDetail
		m.setInfo("")
		return m, nil

	case deleteDoneMsg:
		m.loading = false
		if msg.err != nil {
			// Stay on the detail view; the conversation still exists.
			m.state = viewDetail
			return m.handleRequestError(msg.err)
		}
		m.current = nil
		m.state = viewDashboard
		m.refreshList()
		m.setInfo("대화가 삭제되었습니다.")
		return m, nil

	case downloadDoneMsg:
		m.loading = false
		if msg.err != nil {
			return m.handleRequestError(msg.err)
		}
		m.setInfo("저장했습니다: " + msg.path)
		return m, nil

	case tea.KeyMsg:
		return m.updateKeys(msg)
	}

	return m.updateInputs(msg)
}

func (m *Model) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.state {
	case viewLogin:
		return m.updateLogin(msg)
	case viewRegister:
		return m.updateRegister(msg)
	case viewDashboard:
		return m.updateDashboard(msg)
	case viewDetail:
		return m.updateDetail(msg)
	case viewConfirmDelete:
		return m.updateConfirmDelete(msg)
	}
	return m, nil
}

func (m *Model) updateDashboard(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.searchFocused {
		switch msg.String() {
		case "enter":
			m.query = m.searchInput.Value()
			m.searchFocused = false
			m.searchInput.Blur()
			m.refreshList()
			return m, nil
		case "esc":
			m.searchFocused = false
			m.searchInput.Blur()
			m.searchInput.SetValue(m.query)
			return m, nil
		case "ctrl+c":
			return m, tea.Quit
		default:
			var cmd tea.Cmd
			m.searchInput, cmd = m.searchInput.Update(msg)
			return m, cmd
		}
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.list)-1 {
			m.cursor++
		}
		return m, nil
	case key.Matches(msg, m.keys.Open):
		if m.cursor >= 0 && m.cursor < len(m.list) {
			m.loading = true
			return m, tea.Batch(m.openCmd(m.list[m.cursor].ID), m.spinCmd())
		}
		return m, nil
	case key.Matches(msg, m.keys.Search):
		m.searchFocused = true
		m.searchInput.Focus()
		return m, textinput.Blink
	case key.Matches(msg, m.keys.Reload):
		m.loading = true
		return m, tea.Batch(m.reloadCmd(), m.spinCmd())
	case key.Matches(msg, m.keys.Logout):
		m.app.Logout()
		m.list = nil
		m.query = ""
		m.searchInput.SetValue("")
		m.toLogin("로그아웃되었습니다.")
		m.statusIsErr = false
		return m, textinput.Blink
	}
	return m, nil
}

func (m *Model) updateDetail(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Back):
		m.state = viewDashboard
		m.current = nil
		return m, nil
	case key.Matches(msg, m.keys.Download):
		if m.current != nil {
			m.loading = true
			return m, tea.Batch(m.downloadCmd(m.current.ID), m.spinCmd())
		}
		return m, nil
	case key.Matches(msg, m.keys.Delete):
		if m.current != nil {
			m.state = viewConfirmDelete
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m *Model) updateConfirmDelete(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y", "enter":
		if m.current != nil {
			m.loading = true
			return m, tea.Batch(m.deleteCmd(m.current.ID), m.spinCmd())
		}
		m.state = viewDetail
		return m, nil
	case "n", "N", "esc":
		m.state = viewDetail
		return m, nil
	case "ctrl+c":
		return m, tea.Quit
	}
	return m, nil
}

func (m *Model) updateInputs(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	var cmd tea.Cmd
	switch m.state {
	case viewLogin, viewRegister:
		m.emailInput, cmd = m.emailInput.Update(msg)
		cmds = append(cmds, cmd)
		m.passwordInput, cmd = m.passwordInput.Update(msg)
		cmds = append(cmds, cmd)
	case viewDashboard:
		if m.searchFocused {
			m.searchInput, cmd = m.searchInput.Update(msg)
			cmds = append(cmds, cmd)
		}
	}
	return m, tea.Batch(cmds...)
}

// refreshList re-projects the store through the active query. Called after
// every store mutation so the list stays a pure function of store+query.
func (m *Model) refreshList() {
	m.list = m.app.Search(m.query)
	if m.cursor >= len(m.list) {
		m.cursor = len(m.list) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *Model) handleRequestError(err error) (tea.Model, tea.Cmd) {
	if errors.Is(err, app.ErrAuthInvalid) {
		m.app.Logout()
		m.toLogin(statusForError(err))
		return m, textinput.Blink
	}
	if errors.Is(err, app.ErrNotFound) && m.state != viewDashboard {
		// Resource vanished under us; fall back to the list.
		m.state = viewDashboard
		m.current = nil
	}
	m.setError(statusForError(err))
	return m, nil
}

func (m *Model) toLogin(status string) {
	m.state = viewLogin
	m.focusPassword = false
	m.emailInput.SetValue("")
	m.passwordInput.SetValue("")
	m.passwordInput.Blur()
	m.emailInput.Focus()
	m.setError(status)
}

func (m *Model) setError(s string) {
	m.status = s
	m.statusIsErr = true
}

func (m *Model) setInfo(s string) {
	m.status = s
	m.statusIsErr = false
}

// statusForError maps the client's error taxonomy onto the user-facing
// messages the dashboard showed.
func statusForError(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, app.ErrAuthInvalid):
		return "세션이 만료되었습니다. 다시 로그인해주세요."
	case errors.Is(err, app.ErrNotFound):
		return "대화를 찾을 수 없습니다."
	case app.IsNetworkError(err):
		return "서버에 연결할 수 없습니다."
	}
	var apiErr *app.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return "요청 처리 중 오류가 발생했습니다."
}

// View renders the current state.
func (m *Model) View() string {
	switch m.state {
	case viewLogin:
		return m.viewLoginForm()
	case viewRegister:
		return m.viewRegisterForm()
	case viewDetail, viewConfirmDelete:
		return m.viewDetailScreen()
	default:
		return m.viewDashboardScreen()
	}
}

func (m *Model) viewDashboardScreen() string {
	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")

	box := m.theme.InputBox
	if m.searchFocused {
		box = m.theme.InputBoxF
	}
	b.WriteString(box.Width(maxInt(m.width-4, 30)).Render(m.searchInput.View()))
	b.WriteString("\n\n")

	b.WriteString(RenderConversationList(m.list, m.cursor, m.width, m.theme))
	b.WriteString("\n\n")
	b.WriteString(m.renderStatusLine())
	b.WriteString(m.theme.Footer.Render(dashboardHelp))
	return b.String()
}

func (m *Model) viewDetailScreen() string {
	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.viewport.View())
	b.WriteString("\n")

	if m.state == viewConfirmDelete {
		b.WriteString(m.theme.StatusError.Render("정말로 이 대화를 삭제하시겠습니까?"))
		b.WriteString("  ")
		b.WriteString(m.theme.Footer.Render(confirmHelp))
		b.WriteString("\n")
		return b.String()
	}

	b.WriteString(m.renderStatusLine())
	b.WriteString(m.theme.Footer.Render(detailHelp))
	return b.String()
}

func (m *Model) renderHeader() string {
	title := m.theme.TopBarTitle.Render("Pensieve")
	meta := ""
	if m.app.User != nil {
		st := m.app.Stats()
		meta = m.theme.TopBarMeta.Render(fmt.Sprintf(
			"%s · 대화 %d개 · 이번 달 %d개 · 태그 %d개",
			m.app.User.Email, st.Total, st.ThisMonth, st.TagCount,
		))
	}
	line := title
	if meta != "" {
		line += "  " + meta
	}
	if m.loading {
		line += "  " + m.theme.Spinner.Render(m.spinnerFrame())
	}
	return line
}

func (m *Model) renderStatusLine() string {
	if m.status == "" {
		return ""
	}
	style := m.theme.StatusInfo
	if m.statusIsErr {
		style = m.theme.StatusError
	}
	return style.Render(m.status) + "\n"
}

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

func (m *Model) spinnerFrame() string {
	return spinnerFrames[m.frame%len(spinnerFrames)]
}

// Async commands. Each runs off the event loop and reports back through a
// typed message; requests run to completion, there is no cancellation.

func (m *Model) checkAuthCmd() tea.Cmd {
	return func() tea.Msg {
		_, err := m.app.CheckAuth(context.Background())
		return authCheckedMsg{err: err}
	}
}

func (m *Model) loginCmd(email, password string) tea.Cmd {
	return func() tea.Msg {
		return loginDoneMsg{err: m.app.Login(context.Background(), email, password)}
	}
}

func (m *Model) registerCmd(email, password string) tea.Cmd {
	return func() tea.Msg {
		return registerDoneMsg{err: m.app.Register(context.Background(), email, password)}
	}
}

func (m *Model) reloadCmd() tea.Cmd {
	return func() tea.Msg {
		convs, err := m.app.Reload(context.Background())
		return listLoadedMsg{convs: convs, err: err}
	}
}

func (m *Model) openCmd(id string) tea.Cmd {
	return func() tea.Msg {
		conv, err := m.app.Client.GetConversation(context.Background(), id)
		return detailLoadedMsg{conv: conv, err: err}
	}
}

func (m *Model) deleteCmd(id string) tea.Cmd {
	return func() tea.Msg {
		return deleteDoneMsg{id: id, err: m.app.Delete(context.Background(), id)}
	}
}

func (m *Model) downloadCmd(id string) tea.Cmd {
	return func() tea.Msg {
		path, err := m.app.Download(context.Background(), id, "")
		return downloadDoneMsg{path: path, err: err}
	}
}

func (m *Model) spinCmd() tea.Cmd {
	return tea.Tick(100*time.Millisecond, func(time.Time) tea.Msg {
		return spinMsg{}
	})
}

type authCheckedMsg struct{ err error }

type loginDoneMsg struct{ err error }

type registerDoneMsg struct{ err error }

type listLoadedMsg struct {
	convs []app.Conversation
	err   error
}

type detailLoadedMsg struct {
	conv app.Conversation
	err  error
}

type deleteDoneMsg struct {
	id  string
	err error
}

type downloadDoneMsg struct {
	path string
	err  error
}

type spinMsg struct{}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
