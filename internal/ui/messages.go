package ui

import (
	"context"
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"vitrine/internal/product"
	"vitrine/internal/state"
	"vitrine/internal/validate"
)

// loadDoneMsg signals a completed list load or reload.
type loadDoneMsg struct {
	err error
}

// createDoneMsg signals a completed create operation.
type createDoneMsg struct {
	rec product.Product
	err error
}

// updateDoneMsg signals a completed update operation.
type updateDoneMsg struct {
	rec product.Product
	err error
}

// deleteDoneMsg signals a completed delete operation.
type deleteDoneMsg struct {
	id   string
	name string
	err  error
}

// editRecordMsg carries the record resolved for an edit session that needed
// a network fetch.
type editRecordMsg struct {
	rec product.Product
	err error
}

// uniqueOutcomeMsg delivers a resolved id-uniqueness check into the update
// loop.
type uniqueOutcomeMsg validate.Outcome

func loadCmd(ctx context.Context, store *state.Store) tea.Cmd {
	return func() tea.Msg {
		return loadDoneMsg{err: store.Load(ctx)}
	}
}

func createCmd(ctx context.Context, store *state.Store, draft product.Product) tea.Cmd {
	return func() tea.Msg {
		rec, err := store.Create(ctx, draft)
		return createDoneMsg{rec: rec, err: err}
	}
}

func updateCmd(ctx context.Context, store *state.Store, id string, draft product.Product) tea.Cmd {
	return func() tea.Msg {
		rec, err := store.Update(ctx, id, draft)
		return updateDoneMsg{rec: rec, err: err}
	}
}

func deleteCmd(ctx context.Context, store *state.Store, id, name string) tea.Cmd {
	return func() tea.Msg {
		return deleteDoneMsg{id: id, name: name, err: store.Delete(ctx, id)}
	}
}

func editRecordCmd(ctx context.Context, store *state.Store, id string) tea.Cmd {
	return func() tea.Msg {
		rec, err := store.GetOrLoad(ctx, id)
		return editRecordMsg{rec: rec, err: err}
	}
}

// sender bridges the uniqueness checker's callback into the Bubble Tea
// message loop. The program does not exist yet when the model is built, so
// the reference is bound late.
type sender struct {
	mu sync.Mutex
	p  *tea.Program
}

func (s *sender) bind(p *tea.Program) {
	s.mu.Lock()
	s.p = p
	s.mu.Unlock()
}

func (s *sender) send(msg tea.Msg) {
	s.mu.Lock()
	p := s.p
	s.mu.Unlock()
	if p != nil {
		p.Send(msg)
	}
}
