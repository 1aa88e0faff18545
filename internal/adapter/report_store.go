package adapter

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
	m "schemalens.dev/pkg/schemalens/internal/model"
)

// ReportStore persists audit reports between runs.
type ReportStore interface {
	// SaveReports streams reports into one timestamped YAML file under
	// dir and returns the file written. Reports are consumed one at a
	// time, never held as a whole.
	SaveReports(dir m.Path, reports m.ReportSeq) (m.Path, error)

	// LoadReports reads a previously saved report file.
	LoadReports(path m.Path) ([]m.Report, error)
}

// reportHeader is the first document of a saved report file; every
// following document is one m.Report.
type reportHeader struct {
	GeneratedAt string `yaml:"generated_at"`
}

// YAMLReportStore is a ReportStore writing timestamped YAML files.
type YAMLReportStore struct {
	// now is swappable for tests.
	now func() time.Time
}

// NewReportStore constructs a YAMLReportStore.
func NewReportStore() *YAMLReportStore {
	return &YAMLReportStore{now: time.Now}
}

// SaveReports implements ReportStore.
func (s *YAMLReportStore) SaveReports(dir m.Path, reports m.ReportSeq) (m.Path, error) {
	if err := os.MkdirAll(string(dir), 0o750); err != nil {
		return "", fmt.Errorf("create reports dir: %w", err)
	}

	stamp := s.now().UTC()
	name := fmt.Sprintf("audit-%s.yaml", stamp.Format("20060102-150405"))
	path := m.Path(filepath.Join(string(dir), name))

	file, err := os.OpenFile(string(path), os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return "", fmt.Errorf("create reports file: %w", err)
	}

	if err := encodeReports(file, stamp, reports); err != nil {
		file.Close()
		return "", err
	}

	if err := file.Close(); err != nil {
		return "", fmt.Errorf("close reports file: %w", err)
	}

	return path, nil
}

func encodeReports(w io.Writer, stamp time.Time, reports m.ReportSeq) error {
	encoder := yaml.NewEncoder(w)

	header := reportHeader{GeneratedAt: stamp.Format(time.RFC3339)}
	if err := encoder.Encode(header); err != nil {
		return fmt.Errorf("encode report header: %w", err)
	}

	for report, err := range reports {
		if err != nil {
			return fmt.Errorf("stream reports: %w", err)
		}

		if err := encoder.Encode(report); err != nil {
			return fmt.Errorf("encode report: %w", err)
		}
	}

	if err := encoder.Close(); err != nil {
		return fmt.Errorf("flush reports: %w", err)
	}

	return nil
}

// LoadReports implements ReportStore.
func (s *YAMLReportStore) LoadReports(path m.Path) ([]m.Report, error) {
	file, err := os.Open(string(path))
	if err != nil {
		return nil, fmt.Errorf("read reports: %w", err)
	}
	defer file.Close()

	decoder := yaml.NewDecoder(file)

	var header reportHeader
	if err := decoder.Decode(&header); err != nil {
		return nil, fmt.Errorf("decode report header: %w", err)
	}

	var reports []m.Report

	for {
		var report m.Report

		err := decoder.Decode(&report)
		if errors.Is(err, io.EOF) {
			break
		}

		if err != nil {
			return nil, fmt.Errorf("decode report: %w", err)
		}

		reports = append(reports, report)
	}

	return reports, nil
}
