package version

import (
	"strings"
	"testing"
)

func TestSummary(t *testing.T) {
	origVersion, origCommit := Version, Commit
	t.Cleanup(func() { Version, Commit = origVersion, origCommit })

	Version, Commit = "", "none"
	if got := Summary(); got != "urcloud_chat dev" {
		t.Errorf("Summary() = %q, want %q", got, "urcloud_chat dev")
	}

	Version, Commit = "1.2.0", "0123456789abcdef"
	if got := Summary(); got != "urcloud_chat 1.2.0 (0123456)" {
		t.Errorf("Summary() = %q", got)
	}
}

func TestDetailed(t *testing.T) {
	out := Detailed()
	for _, want := range []string{Name, "commit:", "platform:", Platform()} {
		if !strings.Contains(out, want) {
			t.Errorf("Detailed() missing %q:\n%s", want, out)
		}
	}
}
