package registry

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/dtnitsch/edinet-research-agent/models"
)

// SearchOrder controls the direction of the day-by-day walk.
type SearchOrder string

const (
	// NewestFirst walks from the end date back to the start date.
	NewestFirst SearchOrder = "newest_first"
	// OldestFirst walks from the start date forward to the end date.
	OldestFirst SearchOrder = "oldest_first"
)

// Filter describes one document search. All criteria are optional and
// combined with AND; DocTypeCodes uses OR membership.
type Filter struct {
	EdinetCode   string
	SecCode      string
	CompanyName  string // substring match against filer name
	DocTypeCodes []string
	StartDate    time.Time
	EndDate      time.Time
	Order        SearchOrder
	MaxDocs      int // 0 means unlimited
}

// Search enumerates filings matching the filter by querying the
// registry one calendar day at a time in the requested order, and
// stops as soon as MaxDocs matches have accumulated. Registry errors
// propagate unmodified; no retry happens at this layer.
func Search(ctx context.Context, client Client, filter Filter, logger *slog.Logger) ([]models.Filing, error) {
	order := filter.Order
	if order == "" {
		order = NewestFirst
	}

	day, step, done := walkBounds(filter.StartDate, filter.EndDate, order)

	var matches []models.Filing
	for !done(day) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		filings, err := client.List(ctx, day)
		if err != nil {
			return nil, err
		}

		for _, filing := range filings {
			if !filter.matches(filing) {
				continue
			}
			matches = append(matches, filing)
			if filter.MaxDocs > 0 && len(matches) == filter.MaxDocs {
				logger.Debug("search reached max count", "max", filter.MaxDocs, "stopped_at", day.Format("2006-01-02"))
				return matches, nil
			}
		}

		day = day.AddDate(0, 0, step)
	}

	logger.Debug("search finished", "matched", len(matches))
	return matches, nil
}

// walkBounds returns the first day, the per-iteration step, and the
// termination predicate for the given order.
func walkBounds(start, end time.Time, order SearchOrder) (time.Time, int, func(time.Time) bool) {
	start = truncateDay(start)
	end = truncateDay(end)

	if order == OldestFirst {
		return start, 1, func(d time.Time) bool { return d.After(end) }
	}
	return end, -1, func(d time.Time) bool { return d.Before(start) }
}

func truncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func (f Filter) matches(filing models.Filing) bool {
	if f.SecCode != "" && filing.SecCode != f.SecCode {
		return false
	}
	if f.EdinetCode != "" && filing.EdinetCode != f.EdinetCode {
		return false
	}
	if f.CompanyName != "" && !strings.Contains(filing.FilerName, f.CompanyName) {
		return false
	}
	if len(f.DocTypeCodes) > 0 {
		found := false
		for _, code := range f.DocTypeCodes {
			if filing.DocTypeCode == code {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}
