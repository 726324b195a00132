package command

import (
	"context"
	"errors"
	"testing"

	"github.com/atomicstack/integration-selector/internal/selector"
)

type stubFetcher struct {
	block bool
	err   error
	got   []selector.Query
}

func (s *stubFetcher) Fetch(ctx context.Context, q selector.Query) (selector.Page, error) {
	s.got = append(s.got, q)
	if s.block {
		<-ctx.Done()
		return selector.Page{}, ctx.Err()
	}
	if s.err != nil {
		return selector.Page{}, s.err
	}
	return selector.Page{Items: []selector.Item{selector.DialogOption{Value: q.Term, Text: q.Term}}, More: true}, nil
}

func TestExecuteDeliversPage(t *testing.T) {
	f := &stubFetcher{}
	bus := New("screen", f)
	cmd := bus.Execute(SlotSearch, Request{Fetch: selector.FetchRequest{Gen: 3, Term: "ab", Page: 1}, PerPage: 20})
	if cmd == nil {
		t.Fatalf("expected command")
	}
	res, ok := cmd().(Result)
	if !ok {
		t.Fatalf("expected Result message")
	}
	if res.Canceled || res.Err != nil {
		t.Fatalf("unexpected result %+v", res)
	}
	if res.Request.Gen != 3 || len(res.Page.Items) != 1 || !res.Page.More {
		t.Fatalf("unexpected result %+v", res)
	}
	if f.got[0] != (selector.Query{Term: "ab", Page: 1, PerPage: 20}) {
		t.Fatalf("unexpected query %+v", f.got[0])
	}
	if bus.Running(SlotSearch) {
		t.Fatalf("expected slot released after completion")
	}
}

func TestExecuteCancelsPreviousFetchInSlot(t *testing.T) {
	f := &stubFetcher{block: true}
	bus := New("screen", f)
	first := bus.Execute(SlotSearch, Request{Fetch: selector.FetchRequest{Gen: 1, Term: "a"}})
	second := bus.Execute(SlotSearch, Request{Fetch: selector.FetchRequest{Gen: 2, Term: "ab"}})

	res := first().(Result)
	if !res.Canceled {
		t.Fatalf("expected superseded fetch to be cancelled, got %+v", res)
	}
	if !bus.Running(SlotSearch) {
		t.Fatalf("expected newer fetch to keep the slot")
	}
	bus.Stop()
	if res := second().(Result); !res.Canceled {
		t.Fatalf("expected stop to cancel running fetch, got %+v", res)
	}
	if cmd := bus.Execute(SlotBase, Request{}); cmd != nil {
		t.Fatalf("expected stopped bus to refuse work")
	}
}

func TestSlotsAreIndependent(t *testing.T) {
	f := &stubFetcher{block: true}
	bus := New("screen", f)
	base := bus.Execute(SlotBase, Request{Fetch: selector.FetchRequest{Base: true}})
	bus.Execute(SlotSearch, Request{Fetch: selector.FetchRequest{Term: "x"}})
	if !bus.Running(SlotBase) || !bus.Running(SlotSearch) {
		t.Fatalf("expected both slots running")
	}
	bus.Cancel(SlotBase)
	if res := base().(Result); !res.Canceled {
		t.Fatalf("expected cancelled base fetch")
	}
	if !bus.Running(SlotSearch) {
		t.Fatalf("expected search slot untouched")
	}
	bus.Stop()
}

func TestExecuteReportsError(t *testing.T) {
	boom := errors.New("boom")
	bus := New("screen", &stubFetcher{err: boom})
	res := bus.Execute(SlotSearch, Request{Fetch: selector.FetchRequest{Term: "a"}})().(Result)
	if !errors.Is(res.Err, boom) || res.Canceled {
		t.Fatalf("expected error result, got %+v", res)
	}
}

func TestNilFetcher(t *testing.T) {
	if cmd := New("screen", nil).Execute(SlotBase, Request{}); cmd != nil {
		t.Fatalf("expected nil command without a fetcher")
	}
}
