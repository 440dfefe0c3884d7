package input

import (
	"testing"

	"github.com/pthm-cable/pong/physics"
)

type event struct {
	press bool
	dir   physics.Push
}

func TestTracker(t *testing.T) {
	tests := []struct {
		name   string
		events []event
		want   physics.Push
	}{
		{"idle", nil, physics.None},
		{"hold up", []event{{true, physics.Up}}, physics.Up},
		{"press and release", []event{{true, physics.Down}, {false, physics.Down}}, physics.None},
		{"most recent wins", []event{{true, physics.Up}, {true, physics.Down}}, physics.Down},
		{
			"releasing the older key keeps the newer",
			[]event{{true, physics.Up}, {true, physics.Down}, {false, physics.Up}},
			physics.Down,
		},
		{
			"releasing the newer key clears",
			[]event{{true, physics.Up}, {true, physics.Down}, {false, physics.Down}},
			physics.None,
		},
		{"stray release", []event{{false, physics.Up}}, physics.None},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var tr Tracker
			for _, ev := range tc.events {
				if ev.press {
					tr.Press(ev.dir)
				} else {
					tr.Release(ev.dir)
				}
			}
			if got := tr.Push(); got != tc.want {
				t.Errorf("Push() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestTrackerReset(t *testing.T) {
	var tr Tracker
	tr.Press(physics.Up)
	tr.Reset()
	if tr.Push() != physics.None {
		t.Errorf("Push() after Reset = %v", tr.Push())
	}
}
