package interval

import (
	"testing"
	"time"
)

func TestParse(t *testing.T) {
	cases := []struct {
		in   string
		want time.Duration
	}{
		{"1h30m", 90 * time.Minute},
		{"45s", 45 * time.Second},
		{"1.5 hours", 90 * time.Minute},
		{"1.5 HOURS", 90 * time.Minute},
		{"90 minutes", 90 * time.Minute},
		{"1 minute", time.Minute},
		{"2 days 4 hours", 52 * time.Hour},
		{"1 week", 7 * 24 * time.Hour},
		{"1:30:00", 90 * time.Minute},
		{"04:13", 4*time.Minute + 13*time.Second},
		{"0:30", 30 * time.Second},
		{"  10 mins  ", 10 * time.Minute},
	}
	for _, tc := range cases {
		got, err := Parse(tc.in)
		if err != nil {
			t.Errorf("Parse(%q): unexpected error: %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("Parse(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestParseInvalid(t *testing.T) {
	for _, in := range []string{"", "   ", "soon", "10 parsecs", "-3 hours", "-5m", "-1:30", "1:2:3:4", "ten minutes"} {
		if _, err := Parse(in); err == nil {
			t.Errorf("Parse(%q): expected error, got none", in)
		}
	}
}

func TestParseOptional(t *testing.T) {
	if d, err := ParseOptional(nil); err != nil || d != nil {
		t.Fatalf("ParseOptional(nil) = %v, %v; want nil, nil", d, err)
	}
	empty := "  "
	if d, err := ParseOptional(&empty); err != nil || d != nil {
		t.Fatalf("ParseOptional(blank) = %v, %v; want nil, nil", d, err)
	}
	raw := "2 hours"
	d, err := ParseOptional(&raw)
	if err != nil {
		t.Fatalf("ParseOptional(%q): %v", raw, err)
	}
	if d == nil || *d != 2*time.Hour {
		t.Fatalf("ParseOptional(%q) = %v, want 2h", raw, d)
	}

	bad := "whenever"
	if _, err := ParseOptional(&bad); err == nil {
		t.Fatalf("ParseOptional(%q): expected error, got none", bad)
	}
}
