package cost

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
)

// Redacted replaces values of sanitized fields in CSV output.
const Redacted = "[REDACTED]"

// csvFields is the canonical column order for exported usage records.
var csvFields = []string{
	"id",
	"invocation_id",
	"provider",
	"model",
	"input_tokens",
	"output_tokens",
	"total_tokens",
	"input_cost",
	"output_cost",
	"total_cost",
	"pricing_unknown",
	"timestamp",
}

// FieldMapping renames and filters export columns. Only mapped fields are
// emitted, in mapping order.
type FieldMapping struct {
	pairs [][2]string // from, to
}

// NewFieldMapping builds a mapping from (source, output) column pairs.
func NewFieldMapping(pairs ...[2]string) *FieldMapping {
	return &FieldMapping{pairs: pairs}
}

// CSVExportConfig configures CSV rendering.
type CSVExportConfig struct {
	Comma          rune
	IncludeHeaders bool
}

// DefaultCSVExportConfig returns the standard comma-separated,
// headers-on configuration.
func DefaultCSVExportConfig() CSVExportConfig {
	return CSVExportConfig{Comma: ',', IncludeHeaders: true}
}

// CSVExporter renders usage records as CSV with optional field mapping
// and sensitive-field redaction.
type CSVExporter struct {
	config CSVExportConfig
}

func NewCSVExporter(config CSVExportConfig) *CSVExporter {
	if config.Comma == 0 {
		config.Comma = ','
	}
	return &CSVExporter{config: config}
}

// ExportToWriter writes records to w. sanitizeFields lists output column
// names whose values are replaced with Redacted; mapping, when non-nil,
// renames and filters columns (mapping first, then sanitization, matching
// how filters compose in the export pipeline).
func (e *CSVExporter) ExportToWriter(records []UsageRecord, w io.Writer, sanitizeFields []string, mapping *FieldMapping) error {
	if len(records) == 0 {
		return nil
	}

	columns := e.columns(mapping)

	writer := csv.NewWriter(w)
	writer.Comma = e.config.Comma

	if e.config.IncludeHeaders {
		headers := make([]string, len(columns))
		for i, c := range columns {
			headers[i] = c[1]
		}
		if err := writer.Write(headers); err != nil {
			return fmt.Errorf("failed to write CSV header: %w", err)
		}
	}

	redact := make(map[string]bool, len(sanitizeFields))
	for _, f := range sanitizeFields {
		redact[f] = true
	}

	for _, rec := range records {
		values := recordValues(rec)
		row := make([]string, len(columns))
		for i, c := range columns {
			if redact[c[1]] {
				row[i] = Redacted
				continue
			}
			row[i] = values[c[0]]
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	writer.Flush()
	return writer.Error()
}

// ExportToFile writes records to a CSV file at path with 0600 perms
// (usage data may reveal what the agent was asked to do).
func (e *CSVExporter) ExportToFile(records []UsageRecord, path string, sanitizeFields []string, mapping *FieldMapping) error {
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("failed to create export file: %w", err)
	}
	defer f.Close()

	return e.ExportToWriter(records, f, sanitizeFields, mapping)
}

// columns returns (source, output) column pairs in emission order.
func (e *CSVExporter) columns(mapping *FieldMapping) [][2]string {
	if mapping == nil || len(mapping.pairs) == 0 {
		pairs := make([][2]string, len(csvFields))
		for i, f := range csvFields {
			pairs[i] = [2]string{f, f}
		}
		return pairs
	}
	return mapping.pairs
}

func recordValues(rec UsageRecord) map[string]string {
	return map[string]string{
		"id":              rec.ID,
		"invocation_id":   rec.InvocationID,
		"provider":        rec.Provider,
		"model":           rec.Model,
		"input_tokens":    strconv.Itoa(rec.InputTokens),
		"output_tokens":   strconv.Itoa(rec.OutputTokens),
		"total_tokens":    strconv.Itoa(rec.TotalTokens),
		"input_cost":      formatUSD(rec.InputCost),
		"output_cost":     formatUSD(rec.OutputCost),
		"total_cost":      formatUSD(rec.TotalCost),
		"pricing_unknown": strconv.FormatBool(rec.PricingUnknown),
		"timestamp":       rec.Timestamp.UTC().Format("2006-01-02T15:04:05Z"),
	}
}

func formatUSD(v float64) string {
	return strconv.FormatFloat(v, 'f', 6, 64)
}
