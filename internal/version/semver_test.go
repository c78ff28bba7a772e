package version

import "testing"

func TestIsNewer(t *testing.T) {
	tests := []struct {
		candidate string
		current   string
		want      bool
	}{
		{"v1.2.4", "v1.2.3", true},
		{"v1.3.0", "v1.2.9", true},
		{"v2.0.0", "v1.9.9", true},
		{"v1.2.3", "v1.2.3", false},
		{"v1.2.2", "v1.2.3", false},
		{"1.2.4", "v1.2.3", true},
		{"v1.2.3", "v1.2.3-beta.1", true},
		{"v1.2.3-beta.1", "v1.2.3", false},
		{"v1.2.3-beta.2", "v1.2.3-beta.1", true},
		{"v1.2.3+build5", "v1.2.2", true},
		{"not-a-version", "v1.2.3", false},
		{"v1.2.4", "garbage", false},
		{"v1.2", "v1.1.0", false},
	}

	for _, tt := range tests {
		if got := isNewer(tt.candidate, tt.current); got != tt.want {
			t.Errorf("isNewer(%q, %q) = %v, want %v", tt.candidate, tt.current, got, tt.want)
		}
	}
}

func TestParseSemver(t *testing.T) {
	v, ok := parseSemver("v1.22.3-rc.1")
	if !ok {
		t.Fatal("parse failed")
	}
	if v.major != 1 || v.minor != 22 || v.patch != 3 || v.prerelease != "rc.1" {
		t.Fatalf("parsed: %+v", v)
	}

	for _, bad := range []string{"", "v1", "v1.2", "v1.2.3.4", "va.b.c", "v1.2.3-"} {
		if _, ok := parseSemver(bad); ok {
			t.Errorf("parseSemver(%q) should fail", bad)
		}
	}
}
