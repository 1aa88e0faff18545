package model

import "iter"

// PositionReport is the rendered analysis of a single schema position.
type PositionReport struct {
	Name        string   `yaml:"name"`
	Kind        string   `yaml:"kind"` // "argument" or "return"
	Index       int      `yaml:"index"`
	Type        string   `yaml:"type"`
	AliasSet    string   `yaml:"alias_set,omitempty"`
	Wildcard    bool     `yaml:"wildcard,omitempty"`
	Writable    bool     `yaml:"writable"`
	Mutable     bool     `yaml:"mutable"`
	Bound       bool     `yaml:"bound"`
	AliasesWith []string `yaml:"aliases_with,omitempty"`
}

// Report holds the analysis result for one operator signature.
type Report struct {
	Operator  string           `yaml:"operator"`
	Signature string           `yaml:"signature"`
	Source    Path             `yaml:"source,omitempty"` // registry file, empty for ad-hoc signatures
	Error     string           `yaml:"error,omitempty"`  // parse/analysis failure, empty on success
	Mutable   bool             `yaml:"mutable"`
	Positions []PositionReport `yaml:"positions,omitempty"`
}

// Failed reports whether the signature could not be analyzed.
func (r Report) Failed() bool {
	return r.Error != ""
}

// ReportSeq streams reports with a terminal error, so audits over large
// registries flow from disk to consumers without materializing a slice.
type ReportSeq = iter.Seq2[Report, error]

// SeqOf adapts already-materialized reports to a ReportSeq.
func SeqOf(reports []Report) ReportSeq {
	return func(yield func(Report, error) bool) {
		for _, report := range reports {
			if !yield(report, nil) {
				return
			}
		}
	}
}

// AuditSummary aggregates one audit run.
type AuditSummary struct {
	Operators int // signatures seen
	Mutable   int // operators with at least one writable argument
	Failed    int // signatures that did not parse
}

// MutableRatio is the share of successfully analyzed operators that may
// mutate an argument. Zero when nothing was analyzed.
func (s AuditSummary) MutableRatio() float64 {
	analyzed := s.Operators - s.Failed
	if analyzed <= 0 {
		return 0
	}

	return float64(s.Mutable) / float64(analyzed)
}
