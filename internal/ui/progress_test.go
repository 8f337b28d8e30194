package ui

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/mattn/go-runewidth"

	"stylecheck/internal/driver"
)

func TestProgressModelAppliesEvents(t *testing.T) {
	events := make(chan driver.Event)
	m := NewProgressModel("check", []string{"a.py", "b.py"}, events).(*progressModel)

	m.applyEvent(driver.Event{File: "a.py", Stage: driver.StageParse, Status: driver.StatusWorking})
	if m.items[0].state != stateWorking || m.items[0].stage != driver.StageParse {
		t.Fatalf("item = %+v", m.items[0])
	}
	if got := m.percent(); got != 0.15 {
		t.Fatalf("percent = %v", got)
	}
	if view := m.View(); !strings.Contains(view, "parsing") || !strings.Contains(view, "a.py") {
		t.Fatalf("working file not shown:\n%s", view)
	}

	m.applyEvent(driver.Event{File: "a.py", Stage: driver.StageAnalyze, Status: driver.StatusDone, Count: 3})
	m.applyEvent(driver.Event{File: "b.py", Stage: driver.StageParse, Status: driver.StatusError, Err: errors.New("syntax error: bad")})
	if m.percent() != 1.0 {
		t.Fatalf("percent = %v", m.percent())
	}

	view := m.View()
	for _, want := range []string{"2/2 files", "3 findings", "1 failed", "b.py: syntax error: bad"} {
		if !strings.Contains(view, want) {
			t.Fatalf("view missing %q:\n%s", want, view)
		}
	}
}

func TestProgressModelIgnoresLateEvents(t *testing.T) {
	m := NewProgressModel("check", []string{"a.py"}, nil).(*progressModel)
	m.applyEvent(driver.Event{File: "zzz.py", Status: driver.StatusDone})
	if len(m.items) != 1 || m.finished != 0 {
		t.Fatalf("unknown file changed state: %+v", m.items)
	}
	m.applyEvent(driver.Event{File: "a.py", Status: driver.StatusDone, Count: 1})
	m.applyEvent(driver.Event{File: "a.py", Status: driver.StatusDone, Count: 1})
	if m.finished != 1 || m.findings != 1 {
		t.Fatalf("finished=%d findings=%d", m.finished, m.findings)
	}
}

func TestProgressModelAddsQueuedFiles(t *testing.T) {
	m := NewProgressModel("check", nil, nil).(*progressModel)
	m.applyEvent(driver.Event{File: "pkg/a.py", Status: driver.StatusQueued})
	if len(m.items) != 1 || m.items[0].path != "pkg/a.py" || m.items[0].state != stateQueued {
		t.Fatalf("queued file not added: %+v", m.items)
	}
}

func TestProgressModelLimitsActiveRows(t *testing.T) {
	m := NewProgressModel("check", nil, nil).(*progressModel)
	for i := range maxActiveRows + 3 {
		f := fmt.Sprintf("f%02d.py", i)
		m.applyEvent(driver.Event{File: f, Status: driver.StatusQueued})
		m.applyEvent(driver.Event{File: f, Stage: driver.StageAnalyze, Status: driver.StatusWorking})
	}
	view := m.View()
	if !strings.Contains(view, "and 3 more") {
		t.Fatalf("expected overflow line:\n%s", view)
	}
	if strings.Contains(view, fmt.Sprintf("f%02d.py", maxActiveRows)) {
		t.Fatalf("row beyond limit rendered:\n%s", view)
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("abcdefghij", 6); got != "abc..." {
		t.Fatalf("truncate = %q", got)
	}
	if got := truncate("abc", 6); got != "abc" {
		t.Fatalf("truncate = %q", got)
	}
	if got := truncate("abcdef", 6); got != "abcdef" {
		t.Fatalf("truncate = %q", got)
	}
	if got := truncate("abcdefghij", 3); got != "abc" {
		t.Fatalf("truncate = %q", got)
	}
	// широкие символы занимают две колонки
	got := truncate("日本語テキスト", 7)
	if got != "日本..." || runewidth.StringWidth(got) > 7 {
		t.Fatalf("truncate = %q", got)
	}
}
