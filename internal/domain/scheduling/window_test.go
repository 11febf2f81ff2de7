package scheduling

import (
	"testing"
	"time"
)

func TestHorizon(t *testing.T) {
	now := mustDate("2026-03-02").Add(15 * time.Hour)
	dates := Horizon(now)

	if len(dates) != HorizonDays {
		t.Fatalf("expected %d dates, got %d", HorizonDays, len(dates))
	}
	if !dates[0].Equal(mustDate("2026-03-02")) {
		t.Errorf("horizon should start today at midnight, got %v", dates[0])
	}
	for i := 1; i < len(dates); i++ {
		if !dates[i].Equal(dates[i-1].AddDate(0, 0, 1)) {
			t.Fatalf("dates not consecutive at index %d: %v after %v", i, dates[i], dates[i-1])
		}
	}
}

func TestDateWindow_PermissiveBeforeLoad(t *testing.T) {
	var w DateWindow
	dates := Horizon(mustDate("2026-03-02"))

	got := w.Filter(dates)
	if len(got) != len(dates) {
		t.Errorf("unloaded window should pass all dates, got %d of %d", len(got), len(dates))
	}
	if w.Loaded() {
		t.Error("window should not report loaded before SetWeekdays")
	}
}

func TestDateWindow_FiltersByWeekday(t *testing.T) {
	var w DateWindow
	var set WeekdaySet
	set.Add(1) // Monday
	set.Add(3) // Wednesday
	w.SetWeekdays(set)

	got := w.Filter(Horizon(mustDate("2026-03-02")))
	if len(got) == 0 {
		t.Fatal("expected some dates to pass")
	}
	for _, d := range got {
		if wd := d.Weekday(); wd != time.Monday && wd != time.Wednesday {
			t.Errorf("unexpected weekday %v in filtered dates", wd)
		}
	}
	// 30 days starting on a Monday cover 5 Mondays and 4 or 5 Wednesdays.
	if len(got) != 9 {
		t.Errorf("expected 9 Mon/Wed dates in the horizon, got %d", len(got))
	}
}

func TestDateWindow_EmptySetBlocksAll(t *testing.T) {
	var w DateWindow
	w.SetWeekdays(WeekdaySet{})

	got := w.Filter(Horizon(mustDate("2026-03-02")))
	if len(got) != 0 {
		t.Errorf("empty weekday set should yield no dates, got %d", len(got))
	}
}

func TestDateWindow_Reset(t *testing.T) {
	var w DateWindow
	w.SetWeekdays(WeekdaySet{})
	w.Reset()

	dates := Horizon(mustDate("2026-03-02"))
	if got := w.Filter(dates); len(got) != len(dates) {
		t.Errorf("reset window should be permissive again, got %d of %d", len(got), len(dates))
	}
}
