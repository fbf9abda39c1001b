package model

// Presentation tags attached to DetailItem records. Renderers print them
// verbatim; classification logic never branches on them.
const (
	TagWaiver       = "WAIVER"         // item exempted by a matching waiver
	TagWaivedInfo   = "WAIVED_INFO"    // freeform waiver commentary, no matching
	TagWaivedAsInfo = "WAIVED_AS_INFO" // failing item downgraded by forced-pass
)

// DetailItem is one fully-audited classification record: what was found,
// how bad it is, where it came from, and why it ended up in its bucket.
// The renderer consumes the complete DetailItem sequence alongside the
// filtered result.
type DetailItem struct {
	Name       string   `json:"name"`
	Severity   Severity `json:"severity"`
	SourceFile string   `json:"source_file,omitempty"`
	LineNumber int      `json:"line_number,omitempty"`
	Reason     string   `json:"reason"`
	Tag        string   `json:"tag,omitempty"`
}

// Detail builds a DetailItem from an item and its metadata.
func Detail(name string, meta Metadata, sev Severity, reason, tag string) DetailItem {
	return DetailItem{
		Name:       name,
		Severity:   sev,
		SourceFile: meta.SourceFile,
		LineNumber: meta.LineNumber,
		Reason:     reason,
		Tag:        tag,
	}
}

// WaiverEntry is one approved exemption: the exact failing name it
// releases and the recorded approval reason. When a checker's waiver
// nominal value is zero the entries are freeform commentary instead and
// never participate in matching; the engine renders them at INFO.
type WaiverEntry struct {
	Name   string `yaml:"name" json:"name"`
	Reason string `yaml:"reason" json:"reason"`
}
