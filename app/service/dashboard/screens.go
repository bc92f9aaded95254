package service

import (
	models "school-dashboard/app/models/dashboard"
)

type Aggregation string

const (
	AggMean  Aggregation = "mean"
	AggCount Aggregation = "count"
	AggLast  Aggregation = "last"
	AggFirst Aggregation = "first"
	AggPivot Aggregation = "pivot"
	AggRows  Aggregation = "rows"
)

// Action is what a click on a chart element does.
type Action string

const (
	ActionNone        Action = ""
	ActionDrill       Action = "drill"
	ActionDrillToggle Action = "drill-toggle"
	ActionSelectOnly  Action = "select-only"
)

type FacetSpec struct {
	Field string
	// PreselectNA adds the N/A marker to the default selection.
	PreselectNA bool
}

type DatasetSpec struct {
	Name      string
	Endpoint  string
	Facets    []FacetSpec
	Exclusive [][2]string
}

// SeriesSource points a pivot at another dataset's current selection.
type SeriesSource struct {
	Dataset string
	Field   string
}

type ChartSpec struct {
	Name    string
	Title   string
	Kind    string
	Dataset string

	Aggregation Aggregation
	GroupFields []string
	ValueField  string
	ValueFields []string
	ValueLabels []string
	SeriesLabel string
	SeriesField string
	SeriesFrom  *SeriesSource
	EmptyLabel  string

	Action        Action
	ActionDataset string
	ActionField   string
}

// target returns the dataset and field a click acts on.
func (c ChartSpec) target() (string, string) {
	dataset, field := c.ActionDataset, c.ActionField
	if dataset == "" {
		dataset = c.Dataset
	}
	if field == "" && len(c.GroupFields) > 0 {
		field = c.GroupFields[0]
	}
	return dataset, field
}

type Screen struct {
	Name     string
	Title    string
	Datasets []DatasetSpec
	Charts   []ChartSpec
}

func (s Screen) dataset(name string) (DatasetSpec, bool) {
	for _, d := range s.Datasets {
		if d.Name == name {
			return d, true
		}
	}
	return DatasetSpec{}, false
}

func (s Screen) chart(name string) (ChartSpec, bool) {
	for _, c := range s.Charts {
		if c.Name == name {
			return c, true
		}
	}
	return ChartSpec{}, false
}

func (s Screen) Summary() models.ScreenSummary {
	names := make([]string, 0, len(s.Datasets))
	for _, d := range s.Datasets {
		names = append(names, d.Name)
	}
	return models.ScreenSummary{Name: s.Name, Title: s.Title, Datasets: names}
}

func facets(fields ...string) []FacetSpec {
	out := make([]FacetSpec, len(fields))
	for i, f := range fields {
		out[i] = FacetSpec{Field: f}
	}
	return out
}

// meanCharts is the subject/exam style pair: two bar charts averaging the
// same measure, each drilling into its own axis.
func meanCharts(dataset, valueField, label string, axes [2]string, titles [2]string) []ChartSpec {
	charts := make([]ChartSpec, 0, 2)
	for i, axis := range axes {
		charts = append(charts, ChartSpec{
			Name:        axis,
			Title:       titles[i],
			Kind:        "bar",
			Dataset:     dataset,
			Aggregation: AggMean,
			GroupFields: []string{axis},
			ValueField:  valueField,
			SeriesLabel: label,
			EmptyLabel:  "N/A",
			Action:      ActionDrill,
		})
	}
	return charts
}

var catalogue = []Screen{
	{
		Name:  "schools",
		Title: "School Details",
		Datasets: []DatasetSpec{{
			Name:     "schools",
			Endpoint: "/school/school-details",
			Facets:   []FacetSpec{{Field: "district", PreselectNA: true}},
		}},
		Charts: []ChartSpec{
			{Name: "phase", Title: "Phase-wise Count", Kind: "table", Dataset: "schools",
				Aggregation: AggCount, GroupFields: []string{"phase"}, SeriesLabel: "Schools",
				EmptyLabel: "N/A", Action: ActionDrillToggle},
			{Name: "district", Title: "Schools by District", Kind: "treemap", Dataset: "schools",
				Aggregation: AggCount, GroupFields: []string{"district"}, SeriesLabel: "Schools",
				EmptyLabel: "N/A"},
		},
	},
	{
		Name:  "students",
		Title: "Student Details",
		Datasets: []DatasetSpec{{
			Name:     "students",
			Endpoint: "/student/student-details",
			Facets:   facets("institute", "session_name", "student_status", "distict_code"),
		}},
		Charts: []ChartSpec{
			{Name: "gender", Title: "Gender Distribution", Kind: "pie", Dataset: "students",
				Aggregation: AggCount, GroupFields: []string{"gender"}, EmptyLabel: "Unknown"},
			{Name: "category_1", Title: "Category 1 Distribution", Kind: "pie", Dataset: "students",
				Aggregation: AggCount, GroupFields: []string{"category_1"}, EmptyLabel: "Unknown",
				Action: ActionDrillToggle},
			{Name: "category_2", Title: "Category 2 Distribution", Kind: "pie", Dataset: "students",
				Aggregation: AggCount, GroupFields: []string{"category_2"}, EmptyLabel: "Unknown"},
			{Name: "phase", Title: "Phase-wise Student Count", Kind: "table", Dataset: "students",
				Aggregation: AggCount, GroupFields: []string{"phase"}, SeriesLabel: "Students",
				EmptyLabel: "Unknown", Action: ActionDrillToggle},
			{Name: "institute", Title: "Institute-wise Student Count", Kind: "table", Dataset: "students",
				Aggregation: AggCount, GroupFields: []string{"institute"}, SeriesLabel: "Students",
				EmptyLabel: "Unknown"},
		},
	},
	{
		Name:  "scorecard",
		Title: "School Scorecard",
		Datasets: []DatasetSpec{{
			Name:     "scores",
			Endpoint: "/school/school-scores",
			Facets:   facets("category_name"),
		}},
		Charts: []ChartSpec{
			{Name: "indicator", Title: "Indicators", Kind: "bar", Dataset: "scores",
				Aggregation: AggLast, GroupFields: []string{"indicator_name"}, ValueField: "value",
				SeriesLabel: "Indicator Values", EmptyLabel: "N/A", Action: ActionDrill},
			{Name: "district", Title: "Districts", Kind: "bar", Dataset: "scores",
				Aggregation: AggLast, GroupFields: []string{"dist_name"}, ValueField: "value",
				SeriesLabel: "District Values", EmptyLabel: "N/A", Action: ActionDrill},
			{Name: "blocks", Title: "Blocks and Schools", Kind: "table", Dataset: "scores",
				Aggregation: AggFirst, GroupFields: []string{"block_name", "school_name"}, ValueField: "value",
				SeriesLabel: "Value", EmptyLabel: "N/A"},
		},
	},
	{
		Name:  "boardresult",
		Title: "Overall Board Result",
		Datasets: []DatasetSpec{
			{Name: "overall", Endpoint: "/school/board-results-be1", Facets: facets("session")},
			{Name: "subjects", Endpoint: "/school/board-results-be2"},
		},
		Charts: []ChartSpec{
			{Name: "categories", Title: "Percentage Categories", Kind: "stacked-bar", Dataset: "overall",
				Aggregation: AggRows, GroupFields: []string{"session"},
				ValueFields: []string{"percentage_of_above95", "percentage_of_above90", "percentage_of_above75", "percentage_of_above60"},
				ValueLabels: []string{"Above 95%", "Above 90%", "Above 75%", "Above 60%"},
				EmptyLabel:  "N/A", Action: ActionSelectOnly},
			{Name: "outcomes", Title: "Pass, Fail, Compartmental", Kind: "stacked-bar", Dataset: "overall",
				Aggregation: AggRows, GroupFields: []string{"session"},
				ValueFields: []string{"pass_percentage", "fail_percentage", "compartmental_percentage"},
				ValueLabels: []string{"Pass Percentage", "Fail Percentage", "Compartmental Percentage"},
				EmptyLabel:  "N/A", Action: ActionSelectOnly},
			{Name: "state_average", Title: "State Average by Subject", Kind: "bar", Dataset: "subjects",
				Aggregation: AggPivot, GroupFields: []string{"subject"}, ValueField: "state_average",
				SeriesField: "session", SeriesFrom: &SeriesSource{Dataset: "overall", Field: "session"},
				EmptyLabel: "N/A", Action: ActionDrill},
		},
	},
	{
		Name:  "result",
		Title: "Result Analysis",
		Datasets: []DatasetSpec{{
			Name:      "scores",
			Endpoint:  "/results/exam-score-board",
			Facets:    facets("session_name", "district", "institute_name", "class_name"),
			Exclusive: [][2]string{{"subject_name", "exam_name"}},
		}},
		Charts: meanCharts("scores", "score", "Average Score",
			[2]string{"subject_name", "exam_name"},
			[2]string{"Subject Wise Average Score", "Exam Wise Average Score"}),
	},
	{
		Name:  "slab",
		Title: "Slab Wise Student Percentage",
		Datasets: []DatasetSpec{{
			Name:      "slabs",
			Endpoint:  "/results/slab-wise-student-percent",
			Facets:    facets("vidyalaya_name", "class_name", "session_name", "district", "exam_name"),
			Exclusive: [][2]string{{"vidyalaya_name", "slab"}},
		}},
		Charts: meanCharts("slabs", "student_per", "Student Percentage",
			[2]string{"vidyalaya_name", "slab"},
			[2]string{"Student Percentage by Vidyalaya", "Student Percentage by Slab"}),
	},
	{
		Name:  "percentage",
		Title: "Exam and Subject Wise Pass Percentage",
		Datasets: []DatasetSpec{{
			Name:      "results",
			Endpoint:  "/results/appeared-pass",
			Facets:    facets("session_name", "district", "vidyalaya_name", "class_name"),
			Exclusive: [][2]string{{"subject_name", "exam_name"}},
		}},
		Charts: meanCharts("results", "pass_percent", "Pass Percentage",
			[2]string{"subject_name", "exam_name"},
			[2]string{"Subject Wise Pass Percentage", "Exam Wise Pass Percentage"}),
	},
}

// Screens lists the catalogue in navigation order.
func Screens() []Screen {
	out := make([]Screen, len(catalogue))
	copy(out, catalogue)
	return out
}

func FindScreen(name string) (Screen, bool) {
	for _, s := range catalogue {
		if s.Name == name {
			return s, true
		}
	}
	return Screen{}, false
}
