package buildinfo

import (
	"strings"
	"testing"
)

func TestShort(t *testing.T) {
	oldV, oldC := Version, Commit
	t.Cleanup(func() { Version, Commit = oldV, oldC })

	Version, Commit = "v2.1.4", "3f9c2ab5d1e0"
	if got := Short(); got != "v2.1.4 (3f9c2ab)" {
		t.Errorf("Short() = %q", got)
	}

	Commit = "none"
	if got := Short(); got != "v2.1.4 (none)" {
		t.Errorf("Short() = %q", got)
	}
}

func TestTemplate(t *testing.T) {
	if !strings.Contains(Template(), "{{.Name}} version "+Version) {
		t.Errorf("Template() = %q", Template())
	}
}
