package extract

import (
	"fmt"
	"strings"
	"sync"

	"github.com/pemistahl/lingua-go"
)

const (
	// minCharsPerPage is the average yield below which a text layer is
	// considered missing or image-only.
	minCharsPerPage = 100
	// maxReplacementRatio bounds tolerated U+FFFD characters; above it
	// the text layer is assumed to have a broken encoding.
	maxReplacementRatio = 0.005
	// minDetectableLen is the text length from which language detection
	// becomes reliable enough to act on.
	minDetectableLen = 400
)

var (
	detectorOnce sync.Once
	detector     lingua.LanguageDetector
)

// languageDetector is built lazily; loading lingua's models costs
// noticeable startup time and only extraction needs them.
func languageDetector() lingua.LanguageDetector {
	detectorOnce.Do(func() {
		detector = lingua.NewLanguageDetectorBuilder().
			FromLanguages(lingua.Japanese, lingua.English).
			Build()
	})
	return detector
}

// CheckQuality decides whether extracted text is usable or the next
// strategy should run. It returns nil for acceptable text and a
// descriptive error otherwise.
func CheckQuality(text string, pages int) error {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return fmt.Errorf("no text extracted")
	}

	runes := []rune(trimmed)
	if pages > 0 && len(runes)/pages < minCharsPerPage {
		return fmt.Errorf("low text yield: %d chars over %d pages", len(runes), pages)
	}

	replacements := strings.Count(trimmed, "�")
	if float64(replacements)/float64(len(runes)) > maxReplacementRatio {
		return fmt.Errorf("garbled text: %d replacement characters in %d runes", replacements, len(runes))
	}

	if len(runes) >= minDetectableLen {
		if _, ok := languageDetector().DetectLanguageOf(trimmed); !ok {
			return fmt.Errorf("text does not read as Japanese or English")
		}
	}

	return nil
}
