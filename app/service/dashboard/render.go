package service

import (
	"school-dashboard/app/engine"
	models "school-dashboard/app/models/dashboard"
)

// rendered keeps the raw group keys next to the renderer data so a click
// resolves to the underlying value, not its display label.
type rendered struct {
	keys []string
	data models.ChartData
}

func (s *Session) render(spec ChartSpec, visible map[string][]models.Record) rendered {
	records := visible[spec.Dataset]
	group := ""
	if len(spec.GroupFields) > 0 {
		group = spec.GroupFields[0]
	}

	var rows []models.AggregateRow
	switch spec.Aggregation {
	case AggMean:
		rows = engine.GroupAverage(records, group, spec.ValueField)
	case AggCount:
		rows = engine.GroupCount(records, group)
	case AggLast:
		rows = engine.GroupLast(records, group, spec.ValueField)
	case AggFirst:
		rows = engine.GroupFirst(records, spec.GroupFields, spec.ValueField)
	case AggPivot:
		table := engine.Pivot(records, group, spec.SeriesField, s.seriesKeys(spec, records), spec.ValueField)
		return rendered{keys: table.Labels, data: engine.TableChart(table, spec.EmptyLabel)}
	case AggRows:
		table := engine.Rows(records, group, spec.ValueFields)
		for i := range table.Columns {
			if i < len(spec.ValueLabels) {
				table.Columns[i].Name = spec.ValueLabels[i]
			}
		}
		return rendered{keys: table.Labels, data: engine.TableChart(table, spec.EmptyLabel)}
	}

	series := engine.ToSeries(rows)
	return rendered{keys: series.Labels, data: engine.SeriesChart(series, spec.SeriesLabel, spec.EmptyLabel)}
}

// seriesKeys picks the pivot columns: the live selection of the linked
// dataset when there is one, otherwise every series value present.
func (s *Session) seriesKeys(spec ChartSpec, records []models.Record) []string {
	if spec.SeriesFrom == nil {
		return engine.DistinctValues(records, spec.SeriesField)
	}
	d, ok := s.datasets[spec.SeriesFrom.Dataset]
	if !ok {
		return nil
	}

	keys := make([]string, 0)
	for _, v := range d.filters.Selection(spec.SeriesFrom.Field).Values() {
		if v == engine.NAMarker {
			continue
		}
		keys = append(keys, v)
	}
	return keys
}
