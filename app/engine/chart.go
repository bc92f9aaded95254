package engine

import (
	"strconv"

	models "school-dashboard/app/models/dashboard"
)

// ToSeries maps aggregate rows 1:1 onto labels and values.
func ToSeries(rows []models.AggregateRow) models.Series {
	s := models.Series{
		Labels: make([]string, len(rows)),
		Values: make([]float64, len(rows)),
	}
	for i, row := range rows {
		s.Labels[i] = row.Key
		s.Values[i] = row.Value
	}
	return s
}

// OnElementActivated returns the label at index. ok is false for an empty
// or out-of-range activation, which callers treat as a no-op.
func OnElementActivated(labels []string, index int) (string, bool) {
	if index < 0 || index >= len(labels) {
		return "", false
	}
	return labels[index], true
}

// FormatValue renders a chart value with two decimals.
func FormatValue(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

// DisplayLabels swaps empty keys for emptyLabel. Keys stay untouched so an
// activation still resolves to the underlying value.
func DisplayLabels(keys []string, emptyLabel string) []string {
	out := make([]string, len(keys))
	for i, k := range keys {
		if k == "" {
			k = emptyLabel
		}
		out[i] = k
	}
	return out
}

// SeriesChart builds renderer data for a single series.
func SeriesChart(s models.Series, datasetLabel, emptyLabel string) models.ChartData {
	return models.ChartData{
		Labels:   DisplayLabels(s.Labels, emptyLabel),
		Datasets: []models.ChartDataset{newDataset(datasetLabel, s.Values)},
	}
}

// TableChart builds renderer data with one dataset per table column.
func TableChart(t Table, emptyLabel string) models.ChartData {
	data := models.ChartData{
		Labels:   DisplayLabels(t.Labels, emptyLabel),
		Datasets: make([]models.ChartDataset, 0, len(t.Columns)),
	}
	for _, c := range t.Columns {
		data.Datasets = append(data.Datasets, newDataset(c.Name, c.Values))
	}
	return data
}

func newDataset(label string, values []float64) models.ChartDataset {
	ds := models.ChartDataset{
		Label:   label,
		Data:    values,
		Display: make([]string, len(values)),
	}
	for i, v := range values {
		ds.Display[i] = FormatValue(v)
	}
	return ds
}
