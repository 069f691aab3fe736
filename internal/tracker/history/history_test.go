package history

import (
	"testing"
	"time"

	"github.com/radieske/live-form-tracker-poc/pkg/contracts/events"
)

func eventAt(sec int) events.UpdateEvent {
	return events.UpdateEvent{
		Timestamp: time.Date(2026, 8, 29, 15, 0, sec, 0, time.UTC),
	}
}

func TestRecordMostRecentFirst(t *testing.T) {
	l := New(DefaultLimit)

	l.Record(eventAt(1))
	l.Record(eventAt(2))
	l.Record(eventAt(3))

	all := l.All()
	if len(all) != 3 {
		t.Fatalf("expected 3 events, got %d", len(all))
	}
	for i, wantSec := range []int{3, 2, 1} {
		if all[i].Timestamp.Second() != wantSec {
			t.Errorf("position %d: got second %d, want %d", i, all[i].Timestamp.Second(), wantSec)
		}
	}
}

func TestBoundAtTen(t *testing.T) {
	l := New(DefaultLimit)

	for i := 1; i <= 15; i++ {
		l.Record(eventAt(i))
	}

	all := l.All()
	if len(all) != 10 {
		t.Fatalf("expected 10 retained events, got %d", len(all))
	}
	// os 10 mais recentes: 15, 14, ..., 6
	for i := range all {
		want := 15 - i
		if all[i].Timestamp.Second() != want {
			t.Errorf("position %d: got second %d, want %d", i, all[i].Timestamp.Second(), want)
		}
	}
}

func TestAllReturnsCopy(t *testing.T) {
	l := New(DefaultLimit)
	l.Record(eventAt(1))

	a := l.All()
	a[0] = eventAt(99)

	if l.All()[0].Timestamp.Second() != 1 {
		t.Error("mutating the returned slice must not affect the log")
	}
}

func TestEmptyLog(t *testing.T) {
	l := New(0) // limit inválido cai no default

	if l.Len() != 0 {
		t.Errorf("new log should be empty, got %d", l.Len())
	}
	if got := l.All(); len(got) != 0 {
		t.Errorf("All on empty log should be empty, got %d", len(got))
	}
}
