// Package ircmd implements the ir command: scrape an investor-relations
// page for readable content and disclosure-document links.
package ircmd

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/dtnitsch/edinet-research-agent/internal/common"
	"github.com/dtnitsch/edinet-research-agent/pkg/ir"
)

func Action(c *cli.Context) error {
	logger := common.NewLogger(c)

	rawURL := c.String("url")
	if rawURL == "" {
		return fmt.Errorf("no URL provided via --url flag")
	}

	page, err := ir.Scrape(c.Context, ir.NewFetcher(), rawURL)
	if err != nil {
		return err
	}
	logger.Info("scraped IR page", "url", rawURL, "doc_links", len(page.DocLinks), "chars", len(page.Text))
	return common.WriteOutput(c, page)
}
