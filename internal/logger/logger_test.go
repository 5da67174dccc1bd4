package logger

import (
	"bytes"
	"strings"
	"testing"
)

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	InitWriter(Config{LogLevel: "warn"}, &buf)

	Infof("info message %d", 1)
	Warnf("warn message %d", 2)

	out := buf.String()
	if strings.Contains(out, "info message") {
		t.Errorf("info record written at warn level: %q", out)
	}
	if !strings.Contains(out, "warn message 2") {
		t.Errorf("warn record missing: %q", out)
	}
}

func TestTagFiltering(t *testing.T) {
	var buf bytes.Buffer
	InitWriter(Config{LogLevel: "debug", DisabledTags: []string{"Noisy"}}, &buf)

	DebugTagf("noisy", "dropped")
	DebugTagf("pipeline", "kept")

	out := buf.String()
	if strings.Contains(out, "dropped") {
		t.Errorf("disabled tag written: %q", out)
	}
	if !strings.Contains(out, "kept") || !strings.Contains(out, "tag=pipeline") {
		t.Errorf("tagged record missing: %q", out)
	}
}

func TestEnabledTagsDropUntagged(t *testing.T) {
	var buf bytes.Buffer
	InitWriter(Config{LogLevel: "debug", EnabledTags: []string{"config"}}, &buf)

	Debugf("untagged")
	DebugTagf("config", "tagged")

	out := buf.String()
	if strings.Contains(out, "untagged") {
		t.Errorf("untagged record written with enabled tags: %q", out)
	}
	if !strings.Contains(out, "tagged") {
		t.Errorf("enabled tag missing: %q", out)
	}
}

func TestPackageAndFileFiltering(t *testing.T) {
	tests := []struct {
		name  string
		cfg   Config
		wants bool
	}{
		{"disabled package", Config{LogLevel: "debug", DisabledPackages: []string{"logger"}}, false},
		{"enabled other package", Config{LogLevel: "debug", EnabledPackages: []string{"session"}}, false},
		{"enabled own package", Config{LogLevel: "debug", EnabledPackages: []string{"logger"}}, true},
		{"disabled file", Config{LogLevel: "debug", DisabledFiles: []string{"logger_test.go"}}, false},
		{"enabled file", Config{LogLevel: "debug", EnabledFiles: []string{"LOGGER_TEST.GO"}}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			InitWriter(tt.cfg, &buf)
			Infof("probe")
			if got := strings.Contains(buf.String(), "probe"); got != tt.wants {
				t.Errorf("record written = %v, want %v (output %q)", got, tt.wants, buf.String())
			}
		})
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in    string
		known bool
	}{
		{"debug", true},
		{"WARNING", true},
		{"err", true},
		{"", true},
		{"verbose", false},
	}
	for _, tt := range tests {
		if _, ok := ParseLevel(tt.in); ok != tt.known {
			t.Errorf("ParseLevel(%q) known = %v, want %v", tt.in, ok, tt.known)
		}
	}
}
