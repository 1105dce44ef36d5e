// Package cache resolves filing ids to already-downloaded files using
// the fixed directory convention
//
//	{sec_code}_{company_name}/{doc_type_code}_{doc_type_name}/{YYYYMM}/{doc_id}.{ext}
//
// There is no persisted index: every lookup is a recursive scan, so an
// entry is authoritative exactly as long as its file still exists.
package cache

import (
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// Entry is one cached filing. Metadata fields are parsed from the path
// segments independently; a malformed segment leaves its field empty
// instead of invalidating the entry.
type Entry struct {
	DocID       string
	SecCode     string
	CompanyName string
	DocTypeCode string
	Period      string // YYYYMM
	FilePath    string
}

// Stats aggregates the cache contents.
type Stats struct {
	TotalDocuments int            `json:"total_documents" yaml:"total_documents"`
	TotalCompanies int            `json:"total_companies" yaml:"total_companies"`
	ByDocType      map[string]int `json:"by_doc_type" yaml:"by_doc_type"`
}

// Index reads the download directory. It never writes; placement is
// the download path builder's job.
type Index struct {
	dir    string
	logger *slog.Logger
}

// NewIndex creates an index over the given download directory. The
// directory does not need to exist yet.
func NewIndex(dir string, logger *slog.Logger) *Index {
	return &Index{dir: dir, logger: logger}
}

// Dir returns the directory this index scans.
func (ix *Index) Dir() string { return ix.dir }

// FindByID resolves a filing id to its cached file, or nil when the
// filing has not been downloaded (or its file has since disappeared).
func (ix *Index) FindByID(docID string) (*Entry, error) {
	var found *Entry
	err := ix.walk(func(entry Entry) bool {
		if entry.DocID == docID {
			found = &entry
			return false
		}
		return true
	})
	if err != nil {
		return nil, err
	}
	if found != nil {
		ix.logger.Debug("cache hit", "doc_id", docID, "path", found.FilePath)
	}
	return found, nil
}

// FindByFilter returns all cached filings matching the given fields.
// Empty fields match everything.
func (ix *Index) FindByFilter(secCode, docTypeCode, period string) ([]Entry, error) {
	var matches []Entry
	err := ix.walk(func(entry Entry) bool {
		if secCode != "" && entry.SecCode != secCode {
			return true
		}
		if docTypeCode != "" && entry.DocTypeCode != docTypeCode {
			return true
		}
		if period != "" && entry.Period != period {
			return true
		}
		matches = append(matches, entry)
		return true
	})
	return matches, err
}

// ListAll returns every cached filing.
func (ix *Index) ListAll() ([]Entry, error) {
	var entries []Entry
	err := ix.walk(func(entry Entry) bool {
		entries = append(entries, entry)
		return true
	})
	return entries, err
}

// GetStats scans all entries and aggregates counts per issuer and type.
func (ix *Index) GetStats() (Stats, error) {
	stats := Stats{ByDocType: map[string]int{}}
	companies := map[string]struct{}{}

	err := ix.walk(func(entry Entry) bool {
		stats.TotalDocuments++
		if entry.SecCode != "" {
			companies[entry.SecCode] = struct{}{}
		}
		if entry.DocTypeCode != "" {
			stats.ByDocType[entry.DocTypeCode]++
		}
		return true
	})
	if err != nil {
		return Stats{}, err
	}

	stats.TotalCompanies = len(companies)
	return stats, nil
}

// walk visits every cached file under the download directory. The
// visitor returns false to stop early. A missing directory is an empty
// cache, not an error.
func (ix *Index) walk(visit func(Entry) bool) error {
	if _, err := os.Stat(ix.dir); os.IsNotExist(err) {
		return nil
	}

	stop := false
	err := filepath.WalkDir(ix.dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			// Unreadable subtree; skip rather than abort the scan.
			ix.logger.Warn("cache scan error, skipping", "path", path, "error", err)
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() || stop {
			return nil
		}
		if !visit(parseEntryPath(ix.dir, path)) {
			stop = true
			return filepath.SkipAll
		}
		return nil
	})
	return err
}

// parseEntryPath derives entry metadata from the path convention,
// positioned relative to the index directory. Each segment is parsed
// on its own so one malformed folder name only costs its own field; a
// file at the wrong depth keeps only its id.
func parseEntryPath(dir, path string) Entry {
	entry := Entry{FilePath: path}

	base := filepath.Base(path)
	entry.DocID = strings.TrimSuffix(base, filepath.Ext(base))

	rel, err := filepath.Rel(dir, path)
	if err != nil {
		return entry
	}
	// {sec}_{name}/{type}_{typename}/{YYYYMM}/{docid}.{ext}
	parts := strings.Split(filepath.ToSlash(rel), "/")
	if len(parts) != 4 {
		return entry
	}

	if code, name, ok := strings.Cut(parts[0], "_"); ok {
		entry.SecCode = code
		entry.CompanyName = name
	}

	if code, _, ok := strings.Cut(parts[1], "_"); ok {
		entry.DocTypeCode = code
	}

	if len(parts[2]) == 6 && isDigits(parts[2]) {
		entry.Period = parts[2]
	}

	return entry
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}
