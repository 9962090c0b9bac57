package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbletea"
)

func (m *Model) updateLogin(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "tab", "shift+tab", "up", "down":
		m.toggleAuthFocus()
		return m, textinput.Blink
	case "ctrl+r":
		m.state = viewRegister
		m.setInfo("")
		return m, nil
	case "enter":
		email := strings.TrimSpace(m.emailInput.Value())
		password := m.passwordInput.Value()
		if email == "" || password == "" {
			m.setError("이메일과 비밀번호를 입력해주세요.")
			return m, nil
		}
		m.loading = true
		return m, tea.Batch(m.loginCmd(email, password), m.spinCmd())
	}
	return m.updateAuthInputs(msg)
}

func (m *Model) updateRegister(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.state = viewLogin
		m.setInfo("")
		return m, nil
	case "tab", "shift+tab", "up", "down":
		m.toggleAuthFocus()
		return m, textinput.Blink
	case "enter":
		email := strings.TrimSpace(m.emailInput.Value())
		password := m.passwordInput.Value()
		if email == "" || password == "" {
			m.setError("이메일과 비밀번호를 입력해주세요.")
			return m, nil
		}
		m.loading = true
		return m, tea.Batch(m.registerCmd(email, password), m.spinCmd())
	}
	return m.updateAuthInputs(msg)
}

func (m *Model) toggleAuthFocus() {
	m.focusPassword = !m.focusPassword
	if m.focusPassword {
		m.emailInput.Blur()
		m.passwordInput.Focus()
	} else {
		m.passwordInput.Blur()
		m.emailInput.Focus()
	}
}

func (m *Model) updateAuthInputs(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	if m.focusPassword {
		m.passwordInput, cmd = m.passwordInput.Update(msg)
	} else {
		m.emailInput, cmd = m.emailInput.Update(msg)
	}
	return m, cmd
}

func (m *Model) viewLoginForm() string {
	return m.renderAuthForm("Pensieve 로그인", loginHelp)
}

func (m *Model) viewRegisterForm() string {
	return m.renderAuthForm("Pensieve 회원가입", registerHelp)
}

func (m *Model) renderAuthForm(title, help string) string {
	var b strings.Builder
	b.WriteString(m.theme.TopBarTitle.Render(title))
	if m.loading {
		b.WriteString("  " + m.theme.Spinner.Render(m.spinnerFrame()))
	}
	b.WriteString("\n\n")

	emailBox := m.theme.InputBox
	passwordBox := m.theme.InputBox
	if m.focusPassword {
		passwordBox = m.theme.InputBoxF
	} else {
		emailBox = m.theme.InputBoxF
	}

	b.WriteString(m.theme.ItemMeta.Render("이메일"))
	b.WriteString("\n")
	b.WriteString(emailBox.Render(m.emailInput.View()))
	b.WriteString("\n")
	b.WriteString(m.theme.ItemMeta.Render("비밀번호"))
	b.WriteString("\n")
	b.WriteString(passwordBox.Render(m.passwordInput.View()))
	b.WriteString("\n\n")

	b.WriteString(m.renderStatusLine())
	b.WriteString(m.theme.Footer.Render(help))
	return b.String()
}
