package display

import "testing"

func TestTestStatus(t *testing.T) {
	cases := map[string]string{
		"pass":        "Pass",
		"in_progress": "In Progress",
		"unknown":     "Unknown",
		"weird":       "weird", // unknown codes pass through
	}
	for code, want := range cases {
		if got := TestStatus(code); got != want {
			t.Errorf("TestStatus(%q) = %q, want %q", code, got, want)
		}
	}
}

func TestStatusMark(t *testing.T) {
	if got := StatusMark("pass"); got != "✓" {
		t.Errorf("StatusMark(pass) = %q", got)
	}
	if got := StatusMark("no-such-status"); got != "?" {
		t.Errorf("StatusMark(unknown code) = %q", got)
	}
}

func TestPlatform(t *testing.T) {
	cases := map[string]string{
		"ppc64le":    "IBM Power",
		"ARM64":      "AWS-ARM",
		" x86_64 ":   "AWS x86",
		"IBM Power":  "IBM Power", // already a reporting name
		"bare metal": "bare metal",
	}
	for in, want := range cases {
		if got := Platform(in); got != want {
			t.Errorf("Platform(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestMaskPassword(t *testing.T) {
	if got := MaskPassword("hunter2"); got != "********" {
		t.Errorf("MaskPassword = %q", got)
	}
	if got := MaskPassword(""); got != "" {
		t.Errorf("empty password should stay empty, got %q", got)
	}
}
