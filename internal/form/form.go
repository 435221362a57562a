package form

import (
	"strings"

	"vitrine/internal/product"
	"vitrine/internal/validate"
)

// Key identifies one form field.
type Key string

const (
	KeyID          Key = "id"
	KeyName        Key = "name"
	KeyDescription Key = "description"
	KeyLogo        Key = "logo"
	KeyRelease     Key = "date_release"
	KeyRevision    Key = "date_revision"
)

// Keys lists every field in display order.
var Keys = []Key{KeyID, KeyName, KeyDescription, KeyLogo, KeyRelease, KeyRevision}

// Mode fixes the controller's behavior at construction. It never changes
// afterwards.
type Mode int

const (
	ModeCreate Mode = iota
	ModeEdit
)

// FieldState is a read-only view of one field for rendering.
type FieldState struct {
	Value   string
	Touched bool
	Err     *validate.Result
	// Pending is set on the id field while the uniqueness check is
	// scheduled or in flight.
	Pending bool
}

// Invalid reports whether the field currently blocks submission.
func (f FieldState) Invalid() bool { return f.Err != nil }

type fieldState struct {
	value   string
	touched bool
	err     *validate.Result
}

// Controller owns one record's draft: field values, touched flags, rule
// wiring, and the derived revision date. It performs no I/O; the UI resolves
// records through the store and hands them in, and routes uniqueness
// outcomes back via ApplyUniqueOutcome.
type Controller struct {
	mode    Mode
	initial product.Product // edit mode's reset source
	fields  map[Key]*fieldState
	unique  *validate.UniqueChecker

	// idUniqueErr is the last async outcome for the id field's current
	// value. Cleared whenever the value changes.
	idUniqueErr *validate.Result

	idField          validate.Field
	nameField        validate.Field
	descriptionField validate.Field
	logoField        validate.Field
	releaseField     validate.Field
}

// NewCreate builds a controller for a fresh record. The id field is enabled
// and watched by the uniqueness checker.
func NewCreate(unique *validate.UniqueChecker) *Controller {
	return newController(ModeCreate, unique)
}

// NewEdit builds a controller over an existing record. The id field is
// disabled, the update-variant release rule applies, and a release date that
// already violates it is marked touched so the violation surfaces without
// user interaction.
func NewEdit(rec product.Product, unique *validate.UniqueChecker) *Controller {
	c := newController(ModeEdit, unique)
	c.initial = rec
	c.populate(rec)
	return c
}

func newController(mode Mode, unique *validate.UniqueChecker) *Controller {
	releaseMode := validate.ReleaseCreate
	if mode == ModeEdit {
		releaseMode = validate.ReleaseUpdate
	}
	c := &Controller{
		mode:   mode,
		unique: unique,
		fields: map[Key]*fieldState{},

		idField:          validate.NewField(validate.Required(), validate.Length(3, 10)),
		nameField:        validate.NewField(validate.Required(), validate.Length(5, 100)),
		descriptionField: validate.NewField(validate.Required(), validate.Length(10, 200)),
		logoField:        validate.NewField(validate.Required()),
		releaseField:     validate.NewField(validate.Required(), validate.ReleaseNotPast(releaseMode)),
	}
	for _, key := range Keys {
		c.fields[key] = &fieldState{}
	}
	c.revalidate()
	return c
}

// populate fills every field from the record and derives the revision date
// from the release date.
func (c *Controller) populate(rec product.Product) {
	c.fields[KeyID].value = rec.ID
	c.fields[KeyName].value = rec.Name
	c.fields[KeyDescription].value = rec.Description
	c.fields[KeyLogo].value = rec.Logo
	c.fields[KeyRelease].value = rec.DateRelease
	c.deriveRevision()
	for _, key := range Keys {
		c.fields[key].touched = false
	}
	c.revalidate()

	// An existing record may carry a release date that the update rule now
	// rejects; surface that immediately instead of waiting for input.
	if c.mode == ModeEdit && c.fields[KeyRelease].err != nil {
		c.fields[KeyRelease].touched = true
	}
}

// Mode returns the controller's fixed mode.
func (c *Controller) Mode() Mode { return c.mode }

// Disabled reports whether the field rejects user input: the derived
// revision date always, the id once a record exists.
func (c *Controller) Disabled(key Key) bool {
	if key == KeyRevision {
		return true
	}
	return key == KeyID && c.mode == ModeEdit
}

// Field returns the rendering state for one field.
func (c *Controller) Field(key Key) FieldState {
	fs := c.fields[key]
	state := FieldState{Value: fs.value, Touched: fs.touched, Err: fs.err}
	if key == KeyID {
		if state.Err == nil {
			state.Err = c.idUniqueErr
		}
		if c.unique != nil {
			state.Pending = c.unique.Pending()
		}
	}
	return state
}

// SetValue records user input for a field, marks it touched, and re-runs its
// rules. Changing the release date recomputes the derived revision date and
// re-evaluates it against the new release value. Changing the id drops the
// previous uniqueness verdict and re-arms the check, but only once the id
// passes its synchronous rules; a value-preserving call keeps the verdict.
// Input for a disabled field is ignored.
func (c *Controller) SetValue(key Key, value string) {
	if c.Disabled(key) {
		return
	}
	fs, ok := c.fields[key]
	if !ok {
		return
	}
	prev := fs.value
	fs.value = value
	fs.touched = true

	if key == KeyRelease {
		c.deriveRevision()
	}
	c.revalidate()

	if key == KeyID && value != prev {
		c.idUniqueErr = nil
		if c.unique != nil && fs.err == nil {
			c.unique.Check(value)
		}
	}
}

// ApplyUniqueOutcome applies a resolved uniqueness check. Outcomes for a
// value the field has since moved past are discarded.
func (c *Controller) ApplyUniqueOutcome(o validate.Outcome) {
	if strings.TrimSpace(c.fields[KeyID].value) != o.Value {
		return
	}
	c.idUniqueErr = o.Result
}

// deriveRevision recomputes revision = release + 1 year. The field stays
// disabled; the value is written programmatically.
func (c *Controller) deriveRevision() {
	c.fields[KeyRevision].value = validate.AddYear(c.fields[KeyRelease].value)
}

// revalidate re-runs every field's synchronous rules. The revision rule is
// rebuilt each time because its comparison target is the release field's
// current value.
func (c *Controller) revalidate() {
	c.fields[KeyID].err = c.idField.Validate(c.fields[KeyID].value)
	c.fields[KeyName].err = c.nameField.Validate(c.fields[KeyName].value)
	c.fields[KeyDescription].err = c.descriptionField.Validate(c.fields[KeyDescription].value)
	c.fields[KeyLogo].err = c.logoField.Validate(c.fields[KeyLogo].value)
	c.fields[KeyRelease].err = c.releaseField.Validate(c.fields[KeyRelease].value)

	revisionField := validate.NewField(
		validate.Required(),
		validate.RevisionMatchesRelease(c.fields[KeyRelease].value),
	)
	c.fields[KeyRevision].err = revisionField.Validate(c.fields[KeyRevision].value)
}

// Valid reports whether every field passes its synchronous rules, the
// uniqueness check has not failed, and no check is outstanding.
func (c *Controller) Valid() bool {
	for _, key := range Keys {
		if c.fields[key].err != nil {
			return false
		}
	}
	if c.idUniqueErr != nil {
		return false
	}
	if c.unique != nil && c.unique.Pending() {
		return false
	}
	return true
}

// Submit validates the draft. An invalid or still-pending draft marks every
// field touched and refuses locally; a valid one yields the record to send.
func (c *Controller) Submit() (product.Product, bool) {
	if !c.Valid() {
		for _, key := range Keys {
			c.fields[key].touched = true
		}
		return product.Product{}, false
	}
	return c.Draft(), true
}

// Draft assembles the current field values into a record.
func (c *Controller) Draft() product.Product {
	return product.Product{
		ID:           strings.TrimSpace(c.fields[KeyID].value),
		Name:         strings.TrimSpace(c.fields[KeyName].value),
		Description:  strings.TrimSpace(c.fields[KeyDescription].value),
		Logo:         strings.TrimSpace(c.fields[KeyLogo].value),
		DateRelease:  strings.TrimSpace(c.fields[KeyRelease].value),
		DateRevision: strings.TrimSpace(c.fields[KeyRevision].value),
	}
}

// Reset discards the user's input: create mode clears the draft, edit mode
// restores the record the controller was built from.
func (c *Controller) Reset() {
	c.idUniqueErr = nil
	if c.mode == ModeEdit {
		c.populate(c.initial)
		return
	}
	for _, key := range Keys {
		c.fields[key].value = ""
		c.fields[key].touched = false
	}
	c.revalidate()
}
