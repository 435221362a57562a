package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"vitrine/internal/form"
	"vitrine/internal/product"
	"vitrine/internal/validate"
)

var fieldLabels = map[form.Key]string{
	form.KeyID:          "ID",
	form.KeyName:        "Name",
	form.KeyDescription: "Description",
	form.KeyLogo:        "Logo",
	form.KeyRelease:     "Release date",
	form.KeyRevision:    "Revision date",
}

// formState holds the form screen: the field controller plus one text input
// per field. Disabled fields are rendered from the controller directly and
// skipped during focus traversal.
type formState struct {
	ctrl   *form.Controller
	inputs map[form.Key]textinput.Model
	focus  int // index into form.Keys
}

func newFormState(ctrl *form.Controller) *formState {
	f := &formState{
		ctrl:   ctrl,
		inputs: make(map[form.Key]textinput.Model, len(form.Keys)),
	}
	for _, k := range form.Keys {
		ti := textinput.New()
		ti.CharLimit = 200
		ti.Width = 40
		if k == form.KeyRelease || k == form.KeyRevision {
			ti.Placeholder = product.DateLayout
		}
		ti.SetValue(ctrl.Field(k).Value)
		f.inputs[k] = ti
	}
	f.focus = -1
	f.advance(1)
	return f
}

// advance moves focus by delta, skipping disabled fields. Wraps around.
func (f *formState) advance(delta int) {
	n := len(form.Keys)
	for i := 0; i < n; i++ {
		f.focus = ((f.focus+delta)%n + n) % n
		if !f.ctrl.Disabled(form.Keys[f.focus]) {
			break
		}
	}
	for k, ti := range f.inputs {
		if k == form.Keys[f.focus] {
			ti.Focus()
		} else {
			ti.Blur()
		}
		f.inputs[k] = ti
	}
}

// syncFromController pushes the controller's values back into the inputs,
// used after a reset.
func (f *formState) syncFromController() {
	for k, ti := range f.inputs {
		ti.SetValue(f.ctrl.Field(k).Value)
		f.inputs[k] = ti
	}
}

func (m *Model) newChecker(currentID string) *validate.UniqueChecker {
	snd := m.snd
	return validate.NewUniqueChecker(validate.UniqueConfig{
		Verify:    m.client.VerifyID,
		CurrentID: currentID,
		Notify: func(o validate.Outcome) {
			snd.send(uniqueOutcomeMsg(o))
		},
	})
}

func (m *Model) enterCreate() {
	m.form = newFormState(form.NewCreate(m.newChecker("")))
	m.screen = screenForm
}

func (m *Model) enterEdit(rec product.Product) {
	m.form = newFormState(form.NewEdit(rec, m.newChecker(rec.ID)))
	m.screen = screenForm
}

func (m *Model) leaveForm() {
	m.form = nil
	m.screen = screenList
	m.list.clampCursor(len(m.visibleRows()))
}

func (m Model) handleFormKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	f := m.form
	if f == nil {
		return m, nil
	}

	switch {
	case msg.Type == tea.KeyCtrlC:
		return m, tea.Quit

	case key.Matches(msg, m.keys.Escape):
		m.leaveForm()
		return m, nil

	case key.Matches(msg, m.keys.Submit):
		rec, ok := f.ctrl.Submit()
		if !ok {
			// Submit marked every field touched; the next render shows the
			// remaining errors.
			return m, nil
		}
		if f.ctrl.Mode() == form.ModeEdit {
			return m, updateCmd(m.ctx, m.store, rec.ID, rec)
		}
		return m, createCmd(m.ctx, m.store, rec)

	case key.Matches(msg, m.keys.Reset):
		f.ctrl.Reset()
		f.syncFromController()
		return m, nil

	case key.Matches(msg, m.keys.NextField):
		f.advance(1)
		return m, nil

	case key.Matches(msg, m.keys.PrevField):
		f.advance(-1)
		return m, nil
	}

	// Everything else edits the focused field.
	k := form.Keys[f.focus]
	ti := f.inputs[k]
	ti, cmd := ti.Update(msg)
	f.inputs[k] = ti
	f.ctrl.SetValue(k, ti.Value())
	if k == form.KeyRelease {
		// The revision field follows the release date.
		rev := f.inputs[form.KeyRevision]
		rev.SetValue(f.ctrl.Field(form.KeyRevision).Value)
		f.inputs[form.KeyRevision] = rev
	}
	return m, cmd
}

func (m Model) renderForm() string {
	styles := m.theme.Styles()
	f := m.form
	if f == nil {
		return ""
	}

	var b strings.Builder
	title := "New record"
	if f.ctrl.Mode() == form.ModeEdit {
		title = "Edit record"
	}
	b.WriteString(styles.Title.Render(title))
	b.WriteString("\n\n")

	for i, k := range form.Keys {
		field := f.ctrl.Field(k)
		focused := i == f.focus

		label := fieldLabels[k]
		switch {
		case focused:
			b.WriteString(styles.AccentText.Render("> " + label))
		default:
			b.WriteString(styles.FieldLabel.Render("  " + label))
		}
		b.WriteString("\n")

		switch {
		case f.ctrl.Disabled(k):
			value := field.Value
			if value == "" {
				value = "—"
			}
			b.WriteString("  " + styles.MutedText.Render(value))
		default:
			b.WriteString("  " + f.inputs[k].View())
		}
		b.WriteString("\n")

		if k == form.KeyID && field.Pending {
			b.WriteString("  " + styles.Pending.Render("checking availability..."))
			b.WriteString("\n")
		}
		if field.Touched && field.Err != nil {
			b.WriteString("  " + styles.FieldError.Render(field.Err.Message))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	if m.snapshot.LastError != "" {
		b.WriteString(styles.Danger.Render(truncateRight(m.snapshot.LastError, m.width-4)))
		b.WriteString("\n")
	}

	return b.String()
}
