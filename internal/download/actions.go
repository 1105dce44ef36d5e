// Package download implements the download command: search the
// registry and place matching filings into the local cache.
package download

import (
	"fmt"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/dtnitsch/edinet-research-agent/internal/common"
	"github.com/dtnitsch/edinet-research-agent/internal/search"
	"github.com/dtnitsch/edinet-research-agent/pkg/cache"
	"github.com/dtnitsch/edinet-research-agent/pkg/registry"
)

// Result is one filing's download outcome.
type Result struct {
	DocID    string `json:"doc_id" yaml:"doc_id"`
	Filer    string `json:"filer" yaml:"filer"`
	FilePath string `json:"file_path,omitempty" yaml:"file_path,omitempty"`
	Cached   bool   `json:"cached" yaml:"cached"`
	Error    string `json:"error,omitempty" yaml:"error,omitempty"`
}

func Action(c *cli.Context) error {
	logger := common.NewLogger(c)

	config, err := common.LoadConfig(c)
	if err != nil {
		return err
	}

	kind, err := parseKind(c.String("kind"))
	if err != nil {
		return err
	}

	filter, err := search.FilterFromFlags(c)
	if err != nil {
		return err
	}

	client := registry.NewHTTPClient(config, logger)
	filings, err := registry.Search(c.Context, client, filter, logger)
	if err != nil {
		return err
	}
	if len(filings) == 0 {
		logger.Info("nothing to download")
		return common.WriteOutput(c, []Result{})
	}

	index := cache.NewIndex(config.DownloadDir, logger)
	results := make([]Result, 0, len(filings))
	failures := 0

	for _, filing := range filings {
		result := Result{DocID: filing.DocID, Filer: filing.FilerName}

		entry, err := index.FindByID(filing.DocID)
		if err != nil {
			logger.Warn("cache lookup failed, downloading anyway", "doc_id", filing.DocID, "error", err)
		} else if entry != nil {
			result.FilePath = entry.FilePath
			result.Cached = true
			results = append(results, result)
			continue
		}

		data, err := client.Fetch(c.Context, filing.DocID, kind)
		if err != nil {
			logger.Error("download failed", "doc_id", filing.DocID, "error", err)
			result.Error = err.Error()
			results = append(results, result)
			failures++
			continue
		}

		path, err := cache.Write(config.DownloadDir, filing, kind.Ext(), data)
		if err != nil {
			result.Error = err.Error()
			results = append(results, result)
			failures++
			continue
		}

		logger.Info("downloaded", "doc_id", filing.DocID, "path", path, "bytes", len(data))
		result.FilePath = path
		results = append(results, result)
	}

	if err := common.WriteOutput(c, results); err != nil {
		return err
	}
	if failures == len(filings) {
		return fmt.Errorf("all %d downloads failed", failures)
	}
	return nil
}

func parseKind(s string) (registry.FetchKind, error) {
	switch strings.ToLower(s) {
	case "", "pdf":
		return registry.KindPDF, nil
	case "xbrl":
		return registry.KindXBRL, nil
	case "csv":
		return registry.KindCSV, nil
	case "attachments":
		return registry.KindAttachments, nil
	case "english":
		return registry.KindEnglish, nil
	default:
		return 0, fmt.Errorf("unknown download kind %q", s)
	}
}
