package misc

import "testing"

func TestGetAppName(t *testing.T) {
	if got := GetAppName(); got != "slimock" {
		t.Errorf("GetAppName() = %q, want slimock", got)
	}
}

func TestGetVersion(t *testing.T) {
	if GetVersion() == "" {
		t.Error("GetVersion() returned empty string")
	}
}

func TestGetGitHash(t *testing.T) {
	saved := gitHash
	defer func() { gitHash = saved }()

	gitHash = "abc123"
	if got := GetGitHash(); got != "abc123" {
		t.Errorf("GetGitHash() = %q, want abc123", got)
	}

	gitHash = ""
	if GetGitHash() == "" {
		t.Error("GetGitHash() should never be empty")
	}
}
