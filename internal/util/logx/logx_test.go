package logx

import (
	"strings"
	"testing"
)

func TestLevelFiltering(t *testing.T) {
	SetForward(false)
	Reset()
	SetLevel(Warn)
	defer SetLevel(Info)

	Debugf("hidden %d", 1)
	Infof("hidden %d", 2)
	Warnf("shown %d", 3)
	Errorf("shown %d", 4)

	lines := Lines()
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d: %v", len(lines), lines)
	}
	if !strings.Contains(lines[0], "WARN") || !strings.Contains(lines[0], "shown 3") {
		t.Errorf("unexpected first line: %s", lines[0])
	}
}

func TestRingDropsOldest(t *testing.T) {
	SetForward(false)
	Reset()
	SetLevel(Info)

	for i := 0; i < maxLines+5; i++ {
		Infof("line %d", i)
	}

	lines := Lines()
	if len(lines) != maxLines {
		t.Fatalf("expected %d lines, got %d", maxLines, len(lines))
	}
	if !strings.HasSuffix(lines[0], "line 5") {
		t.Errorf("expected oldest kept line to be 'line 5', got %s", lines[0])
	}
}

func TestParseLevel(t *testing.T) {
	cases := map[string]Level{"debug": Debug, " WARN ": Warn, "warning": Warn, "error": Error, "bogus": Info}
	for in, want := range cases {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q): expected %d, got %d", in, want, got)
		}
	}
}
