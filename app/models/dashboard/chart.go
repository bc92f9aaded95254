package models

// AggregateRow is one group of an aggregation: the group key and the
// value computed for it (a mean, a count, or a picked value).
type AggregateRow struct {
	Key   string  `json:"key"`
	Value float64 `json:"value"`
}

// Series is the labelled sequence a single-dataset chart consumes.
type Series struct {
	Labels []string  `json:"labels"`
	Values []float64 `json:"values"`
}

type ChartDataset struct {
	Label   string    `json:"label"`
	Data    []float64 `json:"data"`
	Display []string  `json:"display"`
}

// ChartData is the {labels, datasets} shape handed to the renderer.
type ChartData struct {
	Labels   []string       `json:"labels"`
	Datasets []ChartDataset `json:"datasets"`
}
