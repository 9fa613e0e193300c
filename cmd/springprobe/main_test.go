package main

import "testing"

func TestIsVerboseFlag(t *testing.T) {
	t.Setenv("SPRINGPROBE_DEBUG", "")

	tests := []struct {
		name string
		args []string
		want bool
	}{
		{"no flags", []string{"check", "--url", "x"}, false},
		{"long flag", []string{"check", "--verbose"}, true},
		{"short flag", []string{"-v"}, true},
		{"flag after terminator ignored", []string{"check", "--", "--verbose"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isVerbose(tt.args); got != tt.want {
				t.Errorf("isVerbose(%v) = %v, want %v", tt.args, got, tt.want)
			}
		})
	}
}

func TestIsVerboseEnv(t *testing.T) {
	t.Setenv("SPRINGPROBE_DEBUG", "true")
	if !isVerbose(nil) {
		t.Error("SPRINGPROBE_DEBUG=true should enable verbose")
	}

	t.Setenv("SPRINGPROBE_DEBUG", "0")
	if isVerbose(nil) {
		t.Error("SPRINGPROBE_DEBUG=0 should not enable verbose")
	}
}
