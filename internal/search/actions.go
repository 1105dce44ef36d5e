// Package search implements the search and list commands against the
// disclosure registry.
package search

import (
	"fmt"
	"strings"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/dtnitsch/edinet-research-agent/internal/common"
	"github.com/dtnitsch/edinet-research-agent/models"
	"github.com/dtnitsch/edinet-research-agent/pkg/registry"
)

const dateLayout = "2006-01-02"

// FilterFromFlags builds a registry filter from the shared search
// flags. The date range defaults to the last 90 days.
func FilterFromFlags(c *cli.Context) (registry.Filter, error) {
	end := time.Now()
	start := end.AddDate(0, 0, -90)

	var err error
	if s := c.String("start"); s != "" {
		if start, err = time.Parse(dateLayout, s); err != nil {
			return registry.Filter{}, fmt.Errorf("invalid --start date: %w", err)
		}
	}
	if s := c.String("end"); s != "" {
		if end, err = time.Parse(dateLayout, s); err != nil {
			return registry.Filter{}, fmt.Errorf("invalid --end date: %w", err)
		}
	}
	if end.Before(start) {
		return registry.Filter{}, fmt.Errorf("--end date is before --start date")
	}

	order := registry.NewestFirst
	if c.String("order") == string(registry.OldestFirst) {
		order = registry.OldestFirst
	}

	var docTypes []string
	if s := c.String("doc-types"); s != "" {
		for _, code := range strings.Split(s, ",") {
			docTypes = append(docTypes, strings.TrimSpace(code))
		}
	}

	return registry.Filter{
		EdinetCode:   c.String("edinet-code"),
		SecCode:      c.String("sec-code"),
		CompanyName:  c.String("company"),
		DocTypeCodes: docTypes,
		StartDate:    start,
		EndDate:      end,
		Order:        order,
		MaxDocs:      c.Int("max"),
	}, nil
}

// Action handles the search command.
func Action(c *cli.Context) error {
	logger := common.NewLogger(c)

	config, err := common.LoadConfig(c)
	if err != nil {
		return err
	}

	filter, err := FilterFromFlags(c)
	if err != nil {
		return err
	}
	if filter.EdinetCode == "" && filter.SecCode == "" && filter.CompanyName == "" && len(filter.DocTypeCodes) == 0 {
		return fmt.Errorf("no search criteria provided; set at least one of --company, --sec-code, --edinet-code, --doc-types")
	}

	client := registry.NewHTTPClient(config, logger)
	logger.Info("searching registry",
		"start", filter.StartDate.Format(dateLayout), "end", filter.EndDate.Format(dateLayout),
		"order", string(filter.Order), "max", filter.MaxDocs)

	filings, err := registry.Search(c.Context, client, filter, logger)
	if err != nil {
		return err
	}
	if len(filings) == 0 {
		logger.Info("no filings matched")
		filings = []models.Filing{}
	}
	return common.WriteOutput(c, filings)
}

// ListAction handles the list command: a single day's filings, no
// filtering beyond the optional doc-type codes.
func ListAction(c *cli.Context) error {
	logger := common.NewLogger(c)

	config, err := common.LoadConfig(c)
	if err != nil {
		return err
	}

	day := time.Now()
	if s := c.String("date"); s != "" {
		if day, err = time.Parse(dateLayout, s); err != nil {
			return fmt.Errorf("invalid --date: %w", err)
		}
	}

	client := registry.NewHTTPClient(config, logger)
	filings, err := client.List(c.Context, day)
	if err != nil {
		return err
	}

	if s := c.String("doc-types"); s != "" {
		wanted := map[string]struct{}{}
		for _, code := range strings.Split(s, ",") {
			wanted[strings.TrimSpace(code)] = struct{}{}
		}
		filtered := make([]models.Filing, 0, len(filings))
		for _, filing := range filings {
			if _, ok := wanted[filing.DocTypeCode]; ok {
				filtered = append(filtered, filing)
			}
		}
		filings = filtered
	}

	logger.Info("listed filings", "date", day.Format(dateLayout), "count", len(filings))
	return common.WriteOutput(c, filings)
}
