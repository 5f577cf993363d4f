package popup

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/stefankummer/promptpocket/internal/settings"
)

var (
	headerStyle  = lipgloss.NewStyle().Bold(true)
	labelStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	focusedLabel = lipgloss.NewStyle().Foreground(lipgloss.Color("62")).Bold(true)
	successToast = lipgloss.NewStyle().Foreground(lipgloss.Color("35"))
	errorToast   = lipgloss.NewStyle().Foreground(lipgloss.Color("160"))
	helpStyle    = lipgloss.NewStyle().Faint(true)
	dangerStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("160")).Bold(true)
)

// View renders the active popup view.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(headerStyle.Render(m.T("appName")))
	if m.user != nil {
		b.WriteString(labelStyle.Render("  " + m.user.DisplayName()))
	}
	b.WriteString("\n\n")

	switch m.view {
	case viewLogin:
		b.WriteString(m.viewLogin())
	case viewMain:
		b.WriteString(m.viewMain())
	case viewSettings:
		b.WriteString(m.viewSettings())
	}

	if m.loading {
		b.WriteString("\n" + helpStyle.Render("…"))
	}
	if m.toast != "" {
		style := successToast
		if m.kind == toastError {
			style = errorToast
		}
		b.WriteString("\n" + style.Render(m.toast))
	}
	return b.String()
}

func (m Model) viewLogin() string {
	var b strings.Builder
	b.WriteString(headerStyle.Render(m.T("connectTitle")) + "\n")
	b.WriteString(labelStyle.Render(m.T("connectDescription")) + "\n\n")
	b.WriteString(m.T("apiKey") + "\n")
	b.WriteString(m.keyInput.View() + "\n\n")
	b.WriteString(helpStyle.Render(m.T("findApiKey") + " " + m.T("accountSettings")))
	b.WriteString("\n\n" + helpStyle.Render("enter: "+m.T("connect")+"   ctrl+o: "+m.T("settings")))
	return b.String()
}

func (m Model) viewMain() string {
	var b strings.Builder

	b.WriteString(m.fieldLabel(m.T("title"), focusTitle) + "\n")
	b.WriteString(m.title.View() + "\n\n")

	b.WriteString(m.fieldLabel(m.T("content"), focusContent) + "\n")
	if m.preview {
		b.WriteString(m.renderPreview() + "\n")
	} else {
		b.WriteString(m.content.View() + "\n")
	}
	b.WriteString("\n")

	b.WriteString(m.fieldLabel(m.T("description"), focusDescription) + "\n")
	b.WriteString(m.description.View() + "\n\n")

	b.WriteString(m.fieldLabel(m.T("aiTools"), focusTools) + "\n")
	b.WriteString(m.tools.View() + "\n")

	b.WriteString(m.fieldLabel(m.T("tags"), focusTags) + "\n")
	b.WriteString(m.tags.View() + "\n")

	b.WriteString(m.fieldLabel(m.T("notes"), focusNotes) + "\n")
	b.WriteString(m.notes.View() + "\n\n")

	b.WriteString(m.fieldLabel(m.T("status"), focusStatus))
	b.WriteString(": " + m.T(string(m.status)) + "\n")

	b.WriteString(m.fieldLabel(m.T("makePublic"), focusPublic))
	b.WriteString(": " + checkbox(m.makePublic) + "\n\n")

	b.WriteString(helpStyle.Render(
		"ctrl+s: " + m.T("savePrompt") +
			"   ctrl+g: " + m.T("getSelectedText") +
			"   ctrl+p: preview" +
			"   ctrl+o: " + m.T("settings") +
			"   ctrl+l: " + m.T("logout")))
	return b.String()
}

func (m Model) viewSettings() string {
	var b strings.Builder
	b.WriteString(headerStyle.Render(m.T("settingsTitle")) + "\n\n")

	b.WriteString(m.settingLabel(m.T("apiEndpoint"), settingEndpoint) + "\n")
	b.WriteString(m.endpointInput.View() + "\n\n")

	b.WriteString(m.settingLabel(m.T("defaultStatus"), settingStatus))
	b.WriteString(": " + m.T(string(m.formStatus)) + "\n")

	b.WriteString(m.settingLabel(m.T("language"), settingLanguage))
	b.WriteString(": " + m.formLanguage + "\n")

	b.WriteString(m.settingLabel(m.T("theme"), settingTheme))
	b.WriteString(": " + m.T(themeKey(m.formTheme)) + "\n")

	b.WriteString(m.settingLabel(m.T("autoFill"), settingAutoGet))
	b.WriteString(": " + checkbox(m.formAutoGet) + "\n\n")

	b.WriteString(dangerStyle.Render(m.T("dangerZone")) + "\n")
	if m.confirmClear {
		b.WriteString(errorToast.Render(m.T("clearDataConfirm")) + " [y/N]\n")
	} else {
		b.WriteString(helpStyle.Render("ctrl+d: "+m.T("clearAllData")) + "\n")
	}

	b.WriteString("\n" + helpStyle.Render("ctrl+s: "+m.T("saveSettings")+"   esc: back"))
	return b.String()
}

// renderPreview renders the content field as markdown.
func (m Model) renderPreview() string {
	style := "dark"
	switch m.cfg.Theme {
	case settings.ThemeLight:
		style = "light"
	case settings.ThemeSystem:
		style = "auto"
	}
	out, err := glamour.Render(m.content.Value(), style)
	if err != nil {
		return m.content.View()
	}
	return strings.TrimRight(out, "\n")
}

func (m Model) fieldLabel(label string, field int) string {
	if m.focus == field {
		return focusedLabel.Render(label)
	}
	return labelStyle.Render(label)
}

func (m Model) settingLabel(label string, field int) string {
	if m.settingsFocus == field {
		return focusedLabel.Render(label)
	}
	return labelStyle.Render(label)
}

func checkbox(on bool) string {
	if on {
		return "[x]"
	}
	return "[ ]"
}

func themeKey(t settings.Theme) string {
	switch t {
	case settings.ThemeLight:
		return "themeLight"
	case settings.ThemeDark:
		return "themeDark"
	default:
		return "themeSystem"
	}
}
