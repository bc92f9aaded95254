package models

type SessionState string

const (
	StateLoading SessionState = "loading"
	StateReady   SessionState = "ready"
	StateFailed  SessionState = "failed"
)

type ScreenSummary struct {
	Name     string   `json:"name"`
	Title    string   `json:"title"`
	Datasets []string `json:"datasets"`
}

type FacetView struct {
	Field    string   `json:"field"`
	Options  []string `json:"options"`
	Selected []string `json:"selected"`
}

type DatasetView struct {
	Name         string            `json:"name"`
	Endpoint     string            `json:"endpoint"`
	TotalRecords int               `json:"totalRecords"`
	Facets       []FacetView       `json:"facets"`
	Drill        map[string]string `json:"drill"`
}

type ChartView struct {
	Name    string    `json:"name"`
	Title   string    `json:"title"`
	Kind    string    `json:"kind"`
	Dataset string    `json:"dataset"`
	Field   string    `json:"field,omitempty"`
	Active  *string   `json:"active,omitempty"`
	Data    ChartData `json:"data"`
}

// ScreenView is everything a client needs to render one screen session.
type ScreenView struct {
	SessionID string        `json:"id"`
	Screen    string        `json:"screen"`
	Title     string        `json:"title"`
	State     SessionState  `json:"state"`
	Error     string        `json:"error,omitempty"`
	Datasets  []DatasetView `json:"datasets,omitempty"`
	Charts    []ChartView   `json:"charts,omitempty"`
}

type FieldValueRequest struct {
	Field string `json:"field" form:"field"`
	Value string `json:"value" form:"value"`
}

// ActivateRequest carries the renderer's clicked element. A missing index
// is an empty activation.
type ActivateRequest struct {
	Index *int `json:"index"`
}
