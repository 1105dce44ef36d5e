package cache

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dtnitsch/edinet-research-agent/models"
)

// maxNameLen bounds the sanitized company-name segment so paths stay
// well under filesystem limits even for long Japanese filer names.
const maxNameLen = 50

// BuildPath returns where a filing's file of the given extension
// belongs under dir, following the cache convention. Identical filing
// metadata always yields the identical path.
func BuildPath(dir string, filing models.Filing, ext string) string {
	issuer := filing.SecCode
	if issuer == "" {
		issuer = filing.EdinetCode
	}
	if issuer == "" {
		issuer = "unknown"
	}

	companyDir := issuer + "_" + SanitizeFilename(filing.FilerName)
	typeDir := filing.DocTypeCode + "_" + SanitizeFilename(models.DocTypeName(filing.DocTypeCode))

	return filepath.Join(dir, companyDir, typeDir, periodYYYYMM(filing), filing.DocID+ext)
}

// Write stores downloaded content at its canonical cache location,
// creating intermediate directories, and returns the final path.
func Write(dir string, filing models.Filing, ext string, data []byte) (string, error) {
	path := BuildPath(dir, filing, ext)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("failed to create cache directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	return path, nil
}

// SanitizeFilename strips characters that are unsafe in path segments
// and collapses whitespace to underscores. Japanese text passes
// through untouched.
func SanitizeFilename(name string) string {
	var b strings.Builder
	for _, r := range name {
		switch {
		case r == '/' || r == '\\' || r == ':' || r == '*' || r == '?' ||
			r == '"' || r == '<' || r == '>' || r == '|' || r == 0:
			// dropped
		case r == ' ' || r == '\t' || r == '　':
			b.WriteRune('_')
		default:
			b.WriteRune(r)
		}
	}
	out := strings.Trim(b.String(), "._")
	if out == "" {
		return "unnamed"
	}
	runes := []rune(out)
	if len(runes) > maxNameLen {
		out = string(runes[:maxNameLen])
	}
	return out
}

// periodYYYYMM derives the period folder from the filing's period end,
// falling back to the submission date when the period is absent.
func periodYYYYMM(filing models.Filing) string {
	for _, candidate := range []string{filing.PeriodEnd, filing.SubmitDate} {
		if candidate == "" {
			continue
		}
		// Dates arrive as "2006-01-02" or "2006-01-02 15:04".
		if t, err := time.Parse("2006-01-02", candidate[:min(10, len(candidate))]); err == nil {
			return t.Format("200601")
		}
	}
	return "000000"
}
