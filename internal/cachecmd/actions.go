// Package cachecmd implements the cache command group: inspecting the
// local download cache.
package cachecmd

import (
	"github.com/urfave/cli/v2"

	"github.com/dtnitsch/edinet-research-agent/internal/common"
	"github.com/dtnitsch/edinet-research-agent/pkg/cache"
)

// listEntry is the list command's output row.
type listEntry struct {
	DocID       string `json:"doc_id" yaml:"doc_id"`
	SecCode     string `json:"sec_code,omitempty" yaml:"sec_code,omitempty"`
	CompanyName string `json:"company_name,omitempty" yaml:"company_name,omitempty"`
	DocTypeCode string `json:"doc_type_code,omitempty" yaml:"doc_type_code,omitempty"`
	Period      string `json:"period,omitempty" yaml:"period,omitempty"`
	FilePath    string `json:"file_path" yaml:"file_path"`
}

func StatsAction(c *cli.Context) error {
	logger := common.NewLogger(c)

	config, err := common.LoadConfig(c)
	if err != nil {
		return err
	}

	index := cache.NewIndex(config.DownloadDir, logger)
	stats, err := index.GetStats()
	if err != nil {
		return err
	}
	return common.WriteOutput(c, stats)
}

func ListAction(c *cli.Context) error {
	logger := common.NewLogger(c)

	config, err := common.LoadConfig(c)
	if err != nil {
		return err
	}

	index := cache.NewIndex(config.DownloadDir, logger)
	entries, err := index.FindByFilter(c.String("sec-code"), c.String("doc-type"), c.String("period"))
	if err != nil {
		return err
	}

	rows := make([]listEntry, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, listEntry{
			DocID:       e.DocID,
			SecCode:     e.SecCode,
			CompanyName: e.CompanyName,
			DocTypeCode: e.DocTypeCode,
			Period:      e.Period,
			FilePath:    e.FilePath,
		})
	}
	logger.Info("cache listed", "count", len(rows))
	return common.WriteOutput(c, rows)
}
