package engine

import (
	"strings"

	models "school-dashboard/app/models/dashboard"
)

// GroupAverage groups records by groupField and averages valueField per
// group. Groups come out in first-occurrence order. Records without a
// numeric valueField are skipped and never open a group, so every group
// has a count of at least one.
func GroupAverage(records []models.Record, groupField, valueField string) []models.AggregateRow {
	type acc struct {
		sum   float64
		count int
	}

	groups := make(map[string]*acc)
	order := make([]string, 0)

	for _, r := range records {
		v, ok := r.Number(valueField)
		if !ok {
			continue
		}
		key := r.Value(groupField)
		g, exists := groups[key]
		if !exists {
			g = &acc{}
			groups[key] = g
			order = append(order, key)
		}
		g.sum += v
		g.count++
	}

	rows := make([]models.AggregateRow, 0, len(order))
	for _, key := range order {
		g := groups[key]
		rows = append(rows, models.AggregateRow{Key: key, Value: g.sum / float64(g.count)})
	}
	return rows
}

// GroupCount counts records per groupField value, first-occurrence order.
func GroupCount(records []models.Record, groupField string) []models.AggregateRow {
	counts := make(map[string]int)
	order := make([]string, 0)

	for _, r := range records {
		key := r.Value(groupField)
		if _, exists := counts[key]; !exists {
			order = append(order, key)
		}
		counts[key]++
	}

	rows := make([]models.AggregateRow, 0, len(order))
	for _, key := range order {
		rows = append(rows, models.AggregateRow{Key: key, Value: float64(counts[key])})
	}
	return rows
}

// GroupLast keeps the last numeric valueField seen per key. Key order is
// still first occurrence.
func GroupLast(records []models.Record, groupField, valueField string) []models.AggregateRow {
	index := make(map[string]int)
	rows := make([]models.AggregateRow, 0)

	for _, r := range records {
		v, ok := r.Number(valueField)
		if !ok {
			continue
		}
		key := r.Value(groupField)
		if i, exists := index[key]; exists {
			rows[i].Value = v
			continue
		}
		index[key] = len(rows)
		rows = append(rows, models.AggregateRow{Key: key, Value: v})
	}
	return rows
}

// GroupFirst keeps the first numeric valueField per composite key. The key
// joins the values of groupFields with "-".
func GroupFirst(records []models.Record, groupFields []string, valueField string) []models.AggregateRow {
	seen := make(map[string]struct{})
	rows := make([]models.AggregateRow, 0)

	for _, r := range records {
		v, ok := r.Number(valueField)
		if !ok {
			continue
		}
		key := CompositeKey(r, groupFields)
		if _, exists := seen[key]; exists {
			continue
		}
		seen[key] = struct{}{}
		rows = append(rows, models.AggregateRow{Key: key, Value: v})
	}
	return rows
}

func CompositeKey(r models.Record, fields []string) string {
	if len(fields) == 1 {
		return r.Value(fields[0])
	}
	parts := make([]string, len(fields))
	for i, f := range fields {
		parts[i] = r.Value(f)
	}
	return strings.Join(parts, "-")
}

// Column is one named value sequence of a Table.
type Column struct {
	Name   string
	Values []float64
}

// Table is a multi-series aggregate: one label per position, one value per
// label in every column.
type Table struct {
	Labels  []string
	Columns []Column
}

// Pivot lays records out as one column per series key and one label per
// distinct labelField value. The first record matching (label, key) wins;
// missing cells are 0.
func Pivot(records []models.Record, labelField, seriesField string, seriesKeys []string, valueField string) Table {
	labels := make([]string, 0)
	labelIndex := make(map[string]int)
	cells := make(map[[2]string]float64)

	for _, r := range records {
		label := r.Value(labelField)
		if _, ok := labelIndex[label]; !ok {
			labelIndex[label] = len(labels)
			labels = append(labels, label)
		}
		cell := [2]string{label, r.Value(seriesField)}
		if _, ok := cells[cell]; ok {
			continue
		}
		if v, ok := r.Number(valueField); ok {
			cells[cell] = v
		}
	}

	columns := make([]Column, 0, len(seriesKeys))
	for _, key := range seriesKeys {
		values := make([]float64, len(labels))
		for i, label := range labels {
			values[i] = cells[[2]string{label, key}]
		}
		columns = append(columns, Column{Name: key, Values: values})
	}
	return Table{Labels: labels, Columns: columns}
}

// Rows turns every record into one label with one value per valueField.
// Non-numeric values read as 0.
func Rows(records []models.Record, labelField string, valueFields []string) Table {
	labels := make([]string, len(records))
	columns := make([]Column, len(valueFields))
	for j, f := range valueFields {
		columns[j] = Column{Name: f, Values: make([]float64, len(records))}
	}

	for i, r := range records {
		labels[i] = r.Value(labelField)
		for j, f := range valueFields {
			v, _ := r.Number(f)
			columns[j].Values[i] = v
		}
	}
	return Table{Labels: labels, Columns: columns}
}
