package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"vitrine/internal/product"
)

// Modal is the interface for modal dialogs. Update returns the updated
// modal, a command, and whether the modal should close.
type Modal interface {
	Update(msg tea.Msg, keys keyMap) (Modal, tea.Cmd, bool)
	View(theme Theme, width int) string
}

// deleteModal asks for confirmation before a record is deleted.
type deleteModal struct {
	rec    product.Product
	accept func(product.Product) tea.Cmd
}

func (d deleteModal) Update(msg tea.Msg, keys keyMap) (Modal, tea.Cmd, bool) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return d, nil, false
	}
	switch {
	case key.Matches(keyMsg, keys.Confirm):
		return d, d.accept(d.rec), true
	case key.Matches(keyMsg, keys.Cancel):
		return d, nil, true
	}
	return d, nil, false
}

func (d deleteModal) View(theme Theme, width int) string {
	styles := theme.Styles()
	body := lipgloss.JoinVertical(lipgloss.Left,
		styles.Danger.Render("Delete record"),
		"",
		styles.Text.Render(fmt.Sprintf("Delete %q (%s)?", d.rec.Name, d.rec.ID)),
		styles.MutedText.Render("This cannot be undone."),
		"",
		styles.MutedText.Render("enter confirm  •  esc cancel"),
	)
	return styles.Modal.MaxWidth(width).Render(body)
}

// successModal confirms a completed operation. Any key dismisses it.
type successModal struct {
	message string
}

func (s successModal) Update(msg tea.Msg, keys keyMap) (Modal, tea.Cmd, bool) {
	if _, ok := msg.(tea.KeyMsg); ok {
		return s, nil, true
	}
	return s, nil, false
}

func (s successModal) View(theme Theme, width int) string {
	styles := theme.Styles()
	body := lipgloss.JoinVertical(lipgloss.Left,
		styles.Success.Render("Done"),
		"",
		styles.Text.Render(s.message),
		"",
		styles.MutedText.Render("press any key to continue"),
	)
	return styles.Modal.MaxWidth(width).Render(body)
}
