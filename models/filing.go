package models

// Filing is one disclosure document as listed by the registry.
// Instances come straight off the API and are never mutated.
type Filing struct {
	DocID       string `json:"doc_id" yaml:"doc_id"`             // document management number, e.g. "S100ABCD"
	EdinetCode  string `json:"edinet_code" yaml:"edinet_code"`   // issuer registry code, e.g. "E02144"
	SecCode     string `json:"sec_code" yaml:"sec_code"`         // securities (trading) code, e.g. "72030"
	FilerName   string `json:"filer_name" yaml:"filer_name"`     // issuer name
	DocTypeCode string `json:"doc_type_code" yaml:"doc_type_code"` // filing type code, e.g. "120"
	Description string `json:"description" yaml:"description"`
	PeriodStart string `json:"period_start" yaml:"period_start"` // YYYY-MM-DD, empty if not applicable
	PeriodEnd   string `json:"period_end" yaml:"period_end"`     // YYYY-MM-DD, empty if not applicable
	SubmitDate  string `json:"submit_date" yaml:"submit_date"`   // YYYY-MM-DD hh:mm
	HasPDF      bool   `json:"has_pdf" yaml:"has_pdf"`
	HasXBRL     bool   `json:"has_xbrl" yaml:"has_xbrl"`
}

// DocTypeNames maps EDINET filing type codes to their Japanese names.
// The names are part of the on-disk cache convention, so they must
// match what the registry publishes exactly.
var DocTypeNames = map[string]string{
	"120": "有価証券報告書",
	"130": "訂正有価証券報告書",
	"140": "四半期報告書",
	"150": "訂正四半期報告書",
	"160": "半期報告書",
	"170": "訂正半期報告書",
	"180": "臨時報告書",
	"190": "訂正臨時報告書",
	"030": "有価証券届出書",
	"040": "訂正有価証券届出書",
	"050": "有価証券届出書（組込方式）",
	"060": "訂正有価証券届出書（組込方式）",
	"360": "大量保有報告書",
	"370": "訂正大量保有報告書",
	"380": "変更報告書",
	"390": "訂正変更報告書",
	"350": "公開買付届出書",
	"410": "公開買付報告書",
	"420": "自己株券買付状況報告書",
	"430": "訂正自己株券買付状況報告書",
	"250": "内部統制報告書",
	"255": "訂正内部統制報告書",
	"010": "目論見書",
	"020": "訂正目論見書",
}

// DocTypeName returns the Japanese name for a filing type code,
// or "その他" when the code is unknown or empty.
func DocTypeName(code string) string {
	if name, ok := DocTypeNames[code]; ok {
		return name
	}
	return "その他"
}
