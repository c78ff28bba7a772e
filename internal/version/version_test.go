package version

import "testing"

func TestIsDevelopmentVersion(t *testing.T) {
	tests := []struct {
		v    string
		want bool
	}{
		{"", true},
		{"unknown", true},
		{"dev", true},
		{"devel", true},
		{"devel+abc1234", true},
		{"v1.2.3", false},
		{"1.0.0", false},
	}

	for _, tt := range tests {
		if got := IsDevelopmentVersion(tt.v); got != tt.want {
			t.Errorf("IsDevelopmentVersion(%q) = %v, want %v", tt.v, got, tt.want)
		}
	}
}

func TestCheck_DevelopmentVersionSkipsNetwork(t *testing.T) {
	result := Check("dev")
	if result.Error != nil || result.HasUpdate {
		t.Fatalf("dev build should skip the check: %+v", result)
	}
}
