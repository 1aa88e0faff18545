package domain

import (
	m "schemalens.dev/pkg/schemalens/internal/model"
	pkg "schemalens.dev/pkg/schemalens/pkg"
)

func summaryFromReports(reports pkg.FileSpill[m.Report]) (m.AuditSummary, error) {
	var summary m.AuditSummary

	err := reports.Range(func(_ uint64, report m.Report) error {
		summary.Operators++

		switch {
		case report.Failed():
			summary.Failed++
		case report.Mutable:
			summary.Mutable++
		}

		return nil
	})
	if err != nil {
		return m.AuditSummary{}, err
	}

	return summary, nil
}

// SummarizeReports aggregates already-materialized reports, as used by
// the view command over saved report files.
func SummarizeReports(reports []m.Report) m.AuditSummary {
	var summary m.AuditSummary

	for _, report := range reports {
		summary.Operators++

		switch {
		case report.Failed():
			summary.Failed++
		case report.Mutable:
			summary.Mutable++
		}
	}

	return summary
}
