package version

import (
	"runtime"
	"strings"
	"testing"
)

func stubBuildInfo(t *testing.T, v, c, d string) {
	t.Helper()
	origVersion, origCommit, origDate := version, commit, date
	version, commit, date = v, c, d
	t.Cleanup(func() {
		version, commit, date = origVersion, origCommit, origDate
	})
}

func TestShort(t *testing.T) {
	stubBuildInfo(t, "2.1.0-rc1", "deadbeefcafe", "2026-08-01")

	if got := Short(); got != "2.1.0-rc1" {
		t.Errorf("Short() = %q, want 2.1.0-rc1", got)
	}
}

func TestFull(t *testing.T) {
	tests := []struct {
		name    string
		version string
		commit  string
		date    string
		want    []string
	}{
		{
			name:    "release build truncates the commit",
			version: "2.1.0",
			commit:  "deadbeefcafe42",
			date:    "2026-08-01",
			want:    []string{"plancraft 2.1.0", "commit deadbeef,", "built 2026-08-01"},
		},
		{
			name:    "short commit kept as is",
			version: "2.1.0",
			commit:  "dead",
			date:    "2026-08-01",
			want:    []string{"commit dead,"},
		},
		{
			name:    "unstamped binary",
			version: "dev",
			commit:  "none",
			date:    "unknown",
			want:    []string{"plancraft dev", "commit none", "built unknown"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stubBuildInfo(t, tt.version, tt.commit, tt.date)

			got := Full()
			for _, substr := range tt.want {
				if !strings.Contains(got, substr) {
					t.Errorf("Full() = %q, missing %q", got, substr)
				}
			}
			if !strings.Contains(got, runtime.Version()) {
				t.Errorf("Full() = %q, missing go version", got)
			}
			if !strings.Contains(got, runtime.GOOS+"/"+runtime.GOARCH) {
				t.Errorf("Full() = %q, missing platform", got)
			}
		})
	}
}
