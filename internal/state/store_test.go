package state

import (
	"context"
	"errors"
	"testing"

	"vitrine/internal/product"
)

// fakeAccessor scripts accessor responses per operation.
type fakeAccessor struct {
	listResult   []product.Product
	listErr      error
	getResult    product.Product
	getErr       error
	createErr    error
	updateResult product.Product
	updateErr    error
	deleteErr    error

	getCalls int
}

func (f *fakeAccessor) List(ctx context.Context) ([]product.Product, error) {
	return f.listResult, f.listErr
}

func (f *fakeAccessor) GetByID(ctx context.Context, id string) (product.Product, error) {
	f.getCalls++
	return f.getResult, f.getErr
}

func (f *fakeAccessor) Create(ctx context.Context, p product.Product) (product.Product, error) {
	if f.createErr != nil {
		return product.Product{}, f.createErr
	}
	return p, nil
}

func (f *fakeAccessor) Update(ctx context.Context, id string, p product.Product) (product.Product, error) {
	if f.updateErr != nil {
		return product.Product{}, f.updateErr
	}
	if f.updateResult.ID != "" {
		return f.updateResult, nil
	}
	p.ID = id
	return p, nil
}

func (f *fakeAccessor) Delete(ctx context.Context, id string) error {
	return f.deleteErr
}

func (f *fakeAccessor) VerifyID(ctx context.Context, id string) (bool, error) {
	return false, nil
}

func TestStore_LoadReplacesRecords(t *testing.T) {
	api := &fakeAccessor{listResult: []product.Product{{ID: "1"}, {ID: "2"}}}
	s := New(api)

	if err := s.Load(context.Background()); err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	snap := s.Snapshot()
	if len(snap.Records) != 2 || snap.Records[0].ID != "1" {
		t.Fatalf("records = %#v, want ids 1,2", snap.Records)
	}
	if snap.Loading || snap.LastError != "" {
		t.Fatalf("snapshot = %+v, want settled and error-free", snap)
	}

	// Returned snapshot must be independent of the cache.
	snap.Records[0].ID = "mutated"
	if got, _ := s.GetLocal("1"); got.ID != "1" {
		t.Fatal("snapshot mutation reached the cache")
	}
}

func TestStore_LoadFailureKeepsRecordsAndSetsError(t *testing.T) {
	api := &fakeAccessor{listResult: []product.Product{{ID: "1"}}}
	s := New(api)
	if err := s.Load(context.Background()); err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	api.listErr = errors.New("boom")
	if err := s.Load(context.Background()); err == nil {
		t.Fatal("Load did not propagate the failure")
	}

	snap := s.Snapshot()
	if len(snap.Records) != 1 {
		t.Fatalf("records = %#v, want previous records intact", snap.Records)
	}
	if snap.LastError != "boom" {
		t.Fatalf("LastError = %q, want boom", snap.LastError)
	}
	if snap.Loading {
		t.Fatal("Loading = true after completion")
	}
}

func TestStore_ErrorClearedOnNextOperation(t *testing.T) {
	api := &fakeAccessor{listErr: errors.New("boom")}
	s := New(api)
	_ = s.Load(context.Background())
	if s.Snapshot().LastError == "" {
		t.Fatal("expected error after failed load")
	}

	api.listErr = nil
	if err := s.Load(context.Background()); err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if got := s.Snapshot().LastError; got != "" {
		t.Fatalf("LastError = %q, want cleared", got)
	}
}

func TestStore_CreateAppendsOnceOnSuccessOnly(t *testing.T) {
	api := &fakeAccessor{}
	s := New(api)

	if _, err := s.Create(context.Background(), product.Product{ID: "a"}); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if snap := s.Snapshot(); len(snap.Records) != 1 {
		t.Fatalf("records = %#v, want exactly one", snap.Records)
	}

	api.createErr = errors.New("rejected")
	if _, err := s.Create(context.Background(), product.Product{ID: "b"}); err == nil {
		t.Fatal("Create did not propagate the failure")
	}
	snap := s.Snapshot()
	if len(snap.Records) != 1 {
		t.Fatalf("records = %#v, failed create must not mutate the cache", snap.Records)
	}
	if snap.LastError == "" {
		t.Fatal("LastError empty after failed create")
	}
}

func TestStore_UpdateReplacesInPlace(t *testing.T) {
	api := &fakeAccessor{listResult: []product.Product{{ID: "1", Name: "one"}, {ID: "2", Name: "two"}}}
	s := New(api)
	_ = s.Load(context.Background())

	updated, err := s.Update(context.Background(), "1", product.Product{Name: "uno"})
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if updated.Name != "uno" {
		t.Fatalf("updated = %#v, want name uno", updated)
	}
	snap := s.Snapshot()
	if snap.Records[0].ID != "1" || snap.Records[0].Name != "uno" {
		t.Fatalf("records[0] = %#v, want replaced in place", snap.Records[0])
	}
	if snap.Records[1].Name != "two" {
		t.Fatalf("records[1] = %#v, want untouched", snap.Records[1])
	}
}

func TestStore_UpdateOnUncachedIdLeavesCacheUnchanged(t *testing.T) {
	api := &fakeAccessor{listResult: []product.Product{{ID: "1"}}}
	s := New(api)
	_ = s.Load(context.Background())

	updated, err := s.Update(context.Background(), "ghost", product.Product{Name: "x"})
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if updated.ID != "ghost" {
		t.Fatalf("updated = %#v, result must still reach the caller", updated)
	}
	if snap := s.Snapshot(); len(snap.Records) != 1 || snap.Records[0].ID != "1" {
		t.Fatalf("records = %#v, want length unchanged", snap.Records)
	}
}

func TestStore_DeleteRemovesAndAbsentIsNoop(t *testing.T) {
	api := &fakeAccessor{listResult: []product.Product{{ID: "1"}, {ID: "2"}}}
	s := New(api)
	_ = s.Load(context.Background())

	if err := s.Delete(context.Background(), "1"); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	snap := s.Snapshot()
	if len(snap.Records) != 1 || snap.Records[0].ID != "2" {
		t.Fatalf("records = %#v, want only id 2", snap.Records)
	}

	if err := s.Delete(context.Background(), "ghost"); err != nil {
		t.Fatalf("Delete(ghost) returned error: %v", err)
	}
	if snap := s.Snapshot(); len(snap.Records) != 1 {
		t.Fatalf("records = %#v, absent id must be a no-op", snap.Records)
	}

	api.deleteErr = errors.New("boom")
	if err := s.Delete(context.Background(), "2"); err == nil {
		t.Fatal("Delete did not propagate the failure")
	}
	if snap := s.Snapshot(); len(snap.Records) != 1 {
		t.Fatalf("records = %#v, failed delete must leave cache untouched", snap.Records)
	}
}

func TestStore_GetLocalNeverTouchesNetwork(t *testing.T) {
	api := &fakeAccessor{listResult: []product.Product{{ID: "1"}}}
	s := New(api)
	_ = s.Load(context.Background())

	if _, ok := s.GetLocal("1"); !ok {
		t.Fatal("GetLocal(1) = not found, want cached record")
	}
	if _, ok := s.GetLocal("ghost"); ok {
		t.Fatal("GetLocal(ghost) = found, want not found")
	}
	if api.getCalls != 0 {
		t.Fatalf("getCalls = %d, GetLocal must not hit the network", api.getCalls)
	}
}

func TestStore_GetOrLoadFetchesAndMerges(t *testing.T) {
	api := &fakeAccessor{getResult: product.Product{ID: "9", Name: "nine"}}
	s := New(api)

	rec, err := s.GetOrLoad(context.Background(), "9")
	if err != nil {
		t.Fatalf("GetOrLoad returned error: %v", err)
	}
	if rec.Name != "nine" {
		t.Fatalf("record = %#v, want fetched value", rec)
	}
	if snap := s.Snapshot(); len(snap.Records) != 1 {
		t.Fatalf("records = %#v, want fetched record appended", snap.Records)
	}

	// Second call is served from the cache.
	if _, err := s.GetOrLoad(context.Background(), "9"); err != nil {
		t.Fatalf("GetOrLoad returned error: %v", err)
	}
	if api.getCalls != 1 {
		t.Fatalf("getCalls = %d, want 1 (cache hit on second call)", api.getCalls)
	}
}

func TestStore_GetOrLoadFailurePropagates(t *testing.T) {
	api := &fakeAccessor{getErr: &product.APIError{Kind: product.KindNotFound, Message: "no such record"}}
	s := New(api)

	if _, err := s.GetOrLoad(context.Background(), "ghost"); err == nil {
		t.Fatal("GetOrLoad did not propagate the failure")
	}
	if got := s.Snapshot().LastError; got != "no such record" {
		t.Fatalf("LastError = %q, want the classified user message", got)
	}
}
