// Package ui provides the terminal user interface for vitrine.
//
// # Architecture Overview
//
// The UI is built on Bubble Tea's model-update-view loop. A single root Model
// owns every piece of screen state and is the only place that reads the
// state.Store; rendering works off an immutable store snapshot that is
// refreshed whenever an operation completes.
//
// # Package Structure
//
// The package is organized into focused modules:
//
//   - app.go: Root model, message routing, and the Run entry point
//   - list.go: Record table with live search, pagination, and cursor movement
//   - form_view.go: Create/edit form wired to the form.Controller
//   - modal.go: Delete confirmation and operation-success dialogs
//   - messages.go: Typed done-messages and the tea.Cmd wrappers around store
//     operations
//   - keys.go: Key bindings via bubbles/key, with short and full help
//   - theme.go: Color themes and the derived lipgloss style set
//
// # Screens
//
// Two screens exist. The list screen shows the cached records filtered by a
// case-insensitive search term and paginated at a configurable page size. The
// form screen edits one record draft: fields validate on every keystroke,
// errors render only after a field has been touched, and the id field runs a
// debounced availability check against the server while the user types.
//
// # Store operations
//
// Every network operation runs inside a tea.Cmd and reports back with a typed
// done-message, so the update loop never blocks. Uniqueness-check outcomes
// originate outside the loop, on the checker's timer goroutine; the sender
// bridge forwards them into the program via Program.Send.
package ui
