package registry

import (
	"github.com/dtnitsch/edinet-research-agent/models"
)

// flag is EDINET's "0"/"1" string boolean.
type flag string

func (f flag) bool() bool { return f == "1" }

// documentListResponse mirrors the /documents.json payload. EDINET may
// return HTTP 200 with an error tucked into metadata.status, or a
// top-level statusCode; both are checked before results are trusted.
type documentListResponse struct {
	// Top-level internal error (format 1)
	StatusCode int    `json:"statusCode,omitempty"`
	Message    string `json:"message,omitempty"`

	Metadata struct {
		Status  string `json:"status"`
		Message string `json:"message"`
		ResultSet struct {
			Count int `json:"count"`
		} `json:"resultset"`
	} `json:"metadata"`

	Results []documentEntry `json:"results"`
}

type documentEntry struct {
	DocID          string `json:"docID"`
	EdinetCode     string `json:"edinetCode"`
	SecCode        string `json:"secCode"`
	FilerName      string `json:"filerName"`
	DocTypeCode    string `json:"docTypeCode"`
	DocDescription string `json:"docDescription"`
	PeriodStart    string `json:"periodStart"`
	PeriodEnd      string `json:"periodEnd"`
	SubmitDateTime string `json:"submitDateTime"`
	PDFFlag        flag   `json:"pdfFlag"`
	XBRLFlag       flag   `json:"xbrlFlag"`
	WithdrawalStatus string `json:"withdrawalStatus"`
}

func (d documentEntry) toFiling() models.Filing {
	return models.Filing{
		DocID:       d.DocID,
		EdinetCode:  d.EdinetCode,
		SecCode:     d.SecCode,
		FilerName:   d.FilerName,
		DocTypeCode: d.DocTypeCode,
		Description: d.DocDescription,
		PeriodStart: d.PeriodStart,
		PeriodEnd:   d.PeriodEnd,
		SubmitDate:  d.SubmitDateTime,
		HasPDF:      d.PDFFlag.bool(),
		HasXBRL:     d.XBRLFlag.bool(),
	}
}
