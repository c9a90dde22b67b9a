// Package verifier cross-references manifest entries against the README
// files they point at on disk.
package verifier

import (
	"os"
	"path/filepath"
	"sort"

	"github.com/jamesainslie/crmbl/pkg/crmbl/config"
	"github.com/jamesainslie/crmbl/pkg/crmbl/logging"
	"github.com/jamesainslie/crmbl/pkg/crmbl/manifest"
)

var logger = logging.Get("verifier")

// NoReadmeReason is recorded when an entry declares no README path at all.
const NoReadmeReason = "No README path specified"

// MissingReadme identifies one manifest entry whose README is absent.
type MissingReadme struct {
	Directory      string `json:"directory"`
	ExpectedReadme string `json:"expectedReadme"`
}

// Result is the outcome of one verification pass.
type Result struct {
	Valid            bool            `json:"valid"`
	MissingReadmes   []MissingReadme `json:"missingReadmes"`
	TotalDirectories int             `json:"totalDirectories"`
	Documented       int             `json:"documented"`
	Err              string          `json:"error,omitempty"`
}

// Verify checks that every manifest entry's README exists on disk. It is a
// pure existence check; README content is never inspected. A nil manifest is
// a distinct failure mode from "has missing READMEs".
func Verify(cfg *config.Config, m *manifest.Manifest) Result {
	if m == nil || m.Directories == nil {
		return Result{
			Valid:          false,
			MissingReadmes: []MissingReadme{},
			Err:            "no manifest available to verify",
		}
	}

	missing := make([]MissingReadme, 0)
	for dir, entry := range m.Directories {
		if entry.ReadmePath == "" {
			missing = append(missing, MissingReadme{
				Directory:      dir,
				ExpectedReadme: NoReadmeReason,
			})
			continue
		}

		expected := filepath.Join(cfg.RootPath, filepath.FromSlash(entry.ReadmePath))
		if _, err := os.Stat(expected); err != nil {
			missing = append(missing, MissingReadme{
				Directory:      dir,
				ExpectedReadme: expected,
			})
		}
	}

	sort.Slice(missing, func(i, j int) bool {
		return missing[i].Directory < missing[j].Directory
	})

	total := len(m.Directories)
	result := Result{
		Valid:            len(missing) == 0,
		MissingReadmes:   missing,
		TotalDirectories: total,
		Documented:       total - len(missing),
	}

	logger.Info("verification complete",
		"total", result.TotalDirectories,
		"documented", result.Documented,
		"missing", len(missing))

	return result
}
