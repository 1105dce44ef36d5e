package main

import (
	"log"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/dtnitsch/edinet-research-agent/internal/analyze"
	"github.com/dtnitsch/edinet-research-agent/internal/cachecmd"
	"github.com/dtnitsch/edinet-research-agent/internal/download"
	"github.com/dtnitsch/edinet-research-agent/internal/ircmd"
	"github.com/dtnitsch/edinet-research-agent/internal/markdown"
	"github.com/dtnitsch/edinet-research-agent/internal/search"
)

func commonFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "config", Usage: "path to config.yaml"},
		&cli.StringFlag{Name: "output", Aliases: []string{"o"}, Usage: "write result to file instead of stdout"},
		&cli.StringFlag{Name: "format", Value: "json", Usage: "output format: json or yaml"},
		&cli.BoolFlag{Name: "quiet", Aliases: []string{"q"}, Usage: "only log errors"},
		&cli.BoolFlag{Name: "verbose", Usage: "log debug detail"},
	}
}

func searchFlags() []cli.Flag {
	return append(commonFlags(),
		&cli.StringFlag{Name: "company", Usage: "filer name substring"},
		&cli.StringFlag{Name: "sec-code", Usage: "securities code (e.g. 72030)"},
		&cli.StringFlag{Name: "edinet-code", Usage: "EDINET code (e.g. E02144)"},
		&cli.StringFlag{Name: "doc-types", Usage: "comma-separated doc type codes (e.g. 120,140)"},
		&cli.StringFlag{Name: "start", Usage: "range start date YYYY-MM-DD (default: 90 days ago)"},
		&cli.StringFlag{Name: "end", Usage: "range end date YYYY-MM-DD (default: today)"},
		&cli.StringFlag{Name: "order", Value: "newest_first", Usage: "newest_first or oldest_first"},
		&cli.IntFlag{Name: "max", Usage: "stop after this many matches (0 = unlimited)"},
	)
}

func pageFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "strategy", Value: "auto", Usage: "extraction strategy: auto, text, layout, ocr, vision"},
		&cli.IntFlag{Name: "start-page", Usage: "first page to extract (1-based)"},
		&cli.IntFlag{Name: "end-page", Usage: "last page to extract (0 = document end)"},
	}
}

func main() {
	app := &cli.App{
		Name:  "edinet-research-agent",
		Usage: "Analyze Japanese regulatory filings from the EDINET registry",
		Commands: []*cli.Command{
			{
				Name:  "analyze",
				Usage: "Run the full multi-aspect analysis for one filing",
				Flags: append(append(commonFlags(), pageFlags()...),
					&cli.StringFlag{Name: "doc-id", Usage: "filing id to analyze (e.g. S100ABCD)", Required: true},
					&cli.StringFlag{Name: "prior-doc-id", Usage: "prior-period filing id for comparison"},
				),
				Action: analyze.Action,
			},
			{
				Name:   "search",
				Usage:  "Search the registry for filings over a date range",
				Flags:  searchFlags(),
				Action: search.Action,
			},
			{
				Name:  "list",
				Usage: "List all filings disclosed on one date",
				Flags: append(commonFlags(),
					&cli.StringFlag{Name: "date", Usage: "date YYYY-MM-DD (default: today)"},
					&cli.StringFlag{Name: "doc-types", Usage: "comma-separated doc type codes to keep"},
				),
				Action: search.ListAction,
			},
			{
				Name:  "download",
				Usage: "Search the registry and download matches into the local cache",
				Flags: append(searchFlags(),
					&cli.StringFlag{Name: "kind", Value: "pdf", Usage: "content kind: pdf, xbrl, csv, attachments, english"},
				),
				Action: download.Action,
			},
			{
				Name:  "markdown",
				Usage: "Convert a filing PDF to text/markdown without analysis",
				Flags: append(append(commonFlags(), pageFlags()...),
					&cli.StringFlag{Name: "file", Usage: "path to a local PDF"},
					&cli.StringFlag{Name: "doc-id", Usage: "resolve the PDF from the local cache instead"},
				),
				Action: markdown.Action,
			},
			{
				Name:  "cache",
				Usage: "Inspect the local download cache",
				Subcommands: []*cli.Command{
					{
						Name:   "stats",
						Usage:  "Aggregate counts per issuer and filing type",
						Flags:  commonFlags(),
						Action: cachecmd.StatsAction,
					},
					{
						Name:  "list",
						Usage: "List cached filings, optionally filtered",
						Flags: append(commonFlags(),
							&cli.StringFlag{Name: "sec-code", Usage: "filter by securities code"},
							&cli.StringFlag{Name: "doc-type", Usage: "filter by doc type code"},
							&cli.StringFlag{Name: "period", Usage: "filter by period YYYYMM"},
						),
						Action: cachecmd.ListAction,
					},
				},
			},
			{
				Name:  "ir",
				Usage: "Scrape an investor-relations page for content and document links",
				Flags: append(commonFlags(),
					&cli.StringFlag{Name: "url", Usage: "IR page URL", Required: true},
				),
				Action: ircmd.Action,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
