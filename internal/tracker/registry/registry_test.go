package registry

import (
	"testing"
)

func TestDispatchOrder(t *testing.T) {
	r := New(nil)

	var got []string
	r.Register("live-update", func(any) { got = append(got, "first") })
	r.Register("live-update", func(any) { got = append(got, "second") })
	r.Register("live-update", func(any) { got = append(got, "third") })

	r.Dispatch("live-update", nil)

	want := []string{"first", "second", "third"}
	if len(got) != len(want) {
		t.Fatalf("expected %d calls, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("call %d: got %q, want %q", i, got[i], want[i])
		}
	}
}

func TestDuplicateRegistration(t *testing.T) {
	r := New(nil)

	calls := 0
	fn := func(any) { calls++ }

	// mesmo callback registrado duas vezes roda duas vezes
	r.Register("notification", fn)
	r.Register("notification", fn)

	r.Dispatch("notification", nil)

	if calls != 2 {
		t.Errorf("expected 2 calls, got %d", calls)
	}
}

func TestUnregisterRemovesSingleOccurrence(t *testing.T) {
	r := New(nil)

	calls := 0
	fn := func(any) { calls++ }

	first := r.Register("live-update", fn)
	r.Register("live-update", fn)

	r.Unregister("live-update", first)
	r.Dispatch("live-update", nil)

	if calls != 1 {
		t.Errorf("expected 1 call after unregister, got %d", calls)
	}
}

func TestUnregisterUnknownIsNoop(t *testing.T) {
	r := New(nil)
	r.Unregister("live-update", 42)
	r.Unregister("unknown-event", 1)
	r.Dispatch("unknown-event", nil) // sem listeners também não é erro
}

func TestPanicDoesNotStopDispatch(t *testing.T) {
	var panicked string
	r := New(func(event string, _ any) { panicked = event })

	received := false
	r.Register("live-update", func(any) { panic("listener boom") })
	r.Register("live-update", func(payload any) {
		if payload == "payload" {
			received = true
		}
	})

	r.Dispatch("live-update", "payload")

	if !received {
		t.Error("second listener did not receive payload after first panicked")
	}
	if panicked != "live-update" {
		t.Errorf("panic hook got event %q, want %q", panicked, "live-update")
	}
}

func TestClear(t *testing.T) {
	r := New(nil)

	calls := 0
	r.Register("live-update", func(any) { calls++ })
	r.Register("notification", func(any) { calls++ })

	r.Clear()
	r.Dispatch("live-update", nil)
	r.Dispatch("notification", nil)

	if calls != 0 {
		t.Errorf("expected no calls after Clear, got %d", calls)
	}
	if r.Len("live-update") != 0 {
		t.Errorf("expected 0 registrations, got %d", r.Len("live-update"))
	}
}
