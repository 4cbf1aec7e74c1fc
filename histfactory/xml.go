package histfactory

import (
	"fmt"
	"os"

	"github.com/carbocation/pfx"
)

// ConfigParser is the measurement-definition parsing capability of the
// wrapped framework. The XML schema is the framework's own; this layer never
// inspects it.
type ConfigParser interface {
	MeasurementsFromXML(path string) ([]*Measurement, error)
}

// HistogramCollector is optionally implemented by parsers that can resolve a
// parsed measurement's histogram references into loaded histograms.
type HistogramCollector interface {
	CollectHistograms(m *Measurement) error
}

// MeasurementsFromXML reads a list of Measurements from an XML definition
// file, the equivalent of what the framework's own converter does before
// building models.
//
// The file's existence is checked up front, so a missing file surfaces as an
// error wrapping os.ErrNotExist rather than as a parse failure. Each parsed
// measurement is cloned, protecting callers against the parser discarding
// its internal holder. When collect is true and the parser implements
// HistogramCollector, histograms are collected per measurement; when silence
// is true, parser and collector console output is suppressed.
func MeasurementsFromXML(parser ConfigParser, filename string, collect, silence bool) ([]*Measurement, error) {
	if _, err := os.Stat(filename); err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("histfactory: measurement definition %s: %w", filename, os.ErrNotExist)
		}
		return nil, pfx.Err(err)
	}

	var parsed []*Measurement
	err := maybeSilenced(silence, func() error {
		var err error
		parsed, err = parser.MeasurementsFromXML(filename)
		return err
	})
	if err != nil {
		return nil, pfx.Err(err)
	}

	collector, canCollect := parser.(HistogramCollector)

	measurements := make([]*Measurement, 0, len(parsed))
	for _, m := range parsed {
		m := m.Clone()
		if collect && canCollect {
			if err := maybeSilenced(silence, func() error {
				return collector.CollectHistograms(m)
			}); err != nil {
				return nil, pfx.Err(err)
			}
		}
		measurements = append(measurements, m)
	}
	return measurements, nil
}
