package legacy

import (
	"strings"
)

// Record is one parsed row keyed by column name. SQL NULL is stored as "".
type Record map[string]string

// ParseRow splits a tab-separated row and assigns values to columns in order.
// Missing trailing values are left empty.
func ParseRow(row string, columns []string) Record {
	values := strings.Split(row, "\t")

	record := make(Record, len(columns))
	for i, column := range columns {
		if i >= len(values) {
			record[column] = ""
			continue
		}
		record[column] = cell(values[i])
	}

	return record
}

// Fields splits a row into n cells, normalising NULL markers.
func Fields(row string, n int) []string {
	values := strings.Split(row, "\t")
	cells := make([]string, n)
	for i := 0; i < n && i < len(values); i++ {
		cells[i] = cell(values[i])
	}
	return cells
}

func cell(value string) string {
	if value == NullMarker || value == `\N` {
		return ""
	}
	return value
}

// Get returns the value of column or "".
func (r Record) Get(column string) string {
	return r[column]
}

// Flag reports whether a lightswitch column is on.
func (r Record) Flag(column string) bool {
	return r[column] == "1"
}
