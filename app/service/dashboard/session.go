package service

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"school-dashboard/app/engine"
	models "school-dashboard/app/models/dashboard"
)

type datasetState struct {
	spec    DatasetSpec
	records []models.Record
	options map[string][]string
	filters *engine.FilterSet
	drill   *engine.DrillState
}

func newDatasetState(spec DatasetSpec) *datasetState {
	return &datasetState{
		spec:    spec,
		options: make(map[string][]string),
		filters: engine.NewFilterSet(),
		drill:   engine.NewDrillState(spec.Exclusive...),
	}
}

// load stores the records and selects every facet value, which leaves the
// dataset unrestricted apart from empty values.
func (d *datasetState) load(records []models.Record) {
	d.records = records
	for _, f := range d.spec.Facets {
		values := engine.DistinctValues(records, f.Field)
		d.options[f.Field] = values

		selected := append([]string{}, values...)
		if f.PreselectNA {
			selected = append(selected, engine.NAMarker)
		}
		d.filters.Set(f.Field, selected...)
	}
}

// visible runs the one pipeline order used everywhere: filter, then drill.
func (d *datasetState) visible() []models.Record {
	return d.drill.Apply(d.filters.Apply(d.records))
}

func (d *datasetState) view(total int) models.DatasetView {
	facets := make([]models.FacetView, 0, len(d.spec.Facets))
	for _, f := range d.spec.Facets {
		facets = append(facets, models.FacetView{
			Field:    f.Field,
			Options:  d.options[f.Field],
			Selected: d.filters.Selection(f.Field).Values(),
		})
	}
	return models.DatasetView{
		Name:         d.spec.Name,
		Endpoint:     d.spec.Endpoint,
		TotalRecords: total,
		Facets:       facets,
		Drill:        d.drill.Snapshot(),
	}
}

// Session is the state of one open screen. All mutations go through the
// session lock, so a screen keeps a single writer even when requests race.
type Session struct {
	ID     uuid.UUID
	Screen Screen

	mu       sync.Mutex
	state    models.SessionState
	failure  string
	closed   bool
	lastSeen time.Time
	datasets map[string]*datasetState
}

func NewSession(screen Screen) *Session {
	s := &Session{
		ID:       uuid.New(),
		Screen:   screen,
		state:    models.StateLoading,
		lastSeen: time.Now(),
		datasets: make(map[string]*datasetState, len(screen.Datasets)),
	}
	for _, spec := range screen.Datasets {
		s.datasets[spec.Name] = newDatasetState(spec)
	}
	return s
}

// Complete moves a loading session to ready. It reports false, dropping
// the records, when the session was closed or has already settled.
func (s *Session) Complete(records map[string][]models.Record) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed || s.state != models.StateLoading {
		return false
	}
	for name, d := range s.datasets {
		d.load(records[name])
	}
	s.state = models.StateReady
	return true
}

// Fail moves a loading session to the terminal failed state.
func (s *Session) Fail(message string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed || s.state != models.StateLoading {
		return false
	}
	s.state = models.StateFailed
	s.failure = message
	return true
}

func (s *Session) Close() {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
}

func (s *Session) Closed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

func (s *Session) State() models.SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *Session) touch(now time.Time) {
	s.mu.Lock()
	s.lastSeen = now
	s.mu.Unlock()
}

func (s *Session) idleSince() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSeen
}

func (s *Session) View() models.ScreenView {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.viewLocked()
}

// Records returns the filtered and drilled records of one dataset.
func (s *Session) Records(dataset string) ([]models.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	d, err := s.readyDataset(dataset)
	if err != nil {
		return nil, err
	}
	return d.visible(), nil
}

// ToggleFilter and SelectOnly take facet values or the N/A marker. The
// empty value is never a selection member.
func (s *Session) ToggleFilter(dataset, field, value string) (models.ScreenView, error) {
	if value == "" {
		return models.ScreenView{}, ErrMissingValue
	}
	return s.mutate(dataset, field, func(d *datasetState) {
		d.filters.Toggle(field, value)
	})
}

func (s *Session) SelectOnly(dataset, field, value string) (models.ScreenView, error) {
	if value == "" {
		return models.ScreenView{}, ErrMissingValue
	}
	return s.mutate(dataset, field, func(d *datasetState) {
		d.filters.SelectOnly(field, value)
	})
}

func (s *Session) Drill(dataset, field, value string) (models.ScreenView, error) {
	return s.mutate(dataset, field, func(d *datasetState) {
		d.drill.Select(field, value)
	})
}

func (s *Session) ClearDrill(dataset, field string) (models.ScreenView, error) {
	return s.mutate(dataset, field, func(d *datasetState) {
		d.drill.Clear(field)
	})
}

// Activate resolves a renderer click on chart at index and applies the
// chart's action. A nil or out-of-range index changes nothing.
func (s *Session) Activate(chart string, index *int) (models.ScreenView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	spec, ok := s.Screen.chart(chart)
	if !ok {
		return models.ScreenView{}, ErrUnknownChart
	}
	if err := s.readyLocked(); err != nil {
		return models.ScreenView{}, err
	}
	if index == nil || spec.Action == ActionNone {
		return s.viewLocked(), nil
	}

	r := s.render(spec, s.visibleLocked())
	key, ok := engine.OnElementActivated(r.keys, *index)
	if !ok {
		return s.viewLocked(), nil
	}

	dataset, field := spec.target()
	d, ok := s.datasets[dataset]
	if !ok {
		return models.ScreenView{}, ErrUnknownDataset
	}
	switch spec.Action {
	case ActionDrill:
		d.drill.Select(field, key)
	case ActionDrillToggle:
		d.drill.Toggle(field, key)
	case ActionSelectOnly:
		if key == "" {
			key = engine.NAMarker
		}
		d.filters.SelectOnly(field, key)
	}
	return s.viewLocked(), nil
}

func (s *Session) mutate(dataset, field string, fn func(d *datasetState)) (models.ScreenView, error) {
	if field == "" {
		return models.ScreenView{}, ErrMissingField
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	d, err := s.readyDataset(dataset)
	if err != nil {
		return models.ScreenView{}, err
	}
	fn(d)
	return s.viewLocked(), nil
}

func (s *Session) readyDataset(name string) (*datasetState, error) {
	d, ok := s.datasets[name]
	if !ok {
		return nil, ErrUnknownDataset
	}
	if err := s.readyLocked(); err != nil {
		return nil, err
	}
	return d, nil
}

func (s *Session) readyLocked() error {
	switch s.state {
	case models.StateLoading:
		return ErrNotReady
	case models.StateFailed:
		return ErrLoadFailed
	}
	return nil
}

func (s *Session) visibleLocked() map[string][]models.Record {
	visible := make(map[string][]models.Record, len(s.datasets))
	for name, d := range s.datasets {
		visible[name] = d.visible()
	}
	return visible
}

func (s *Session) viewLocked() models.ScreenView {
	v := models.ScreenView{
		SessionID: s.ID.String(),
		Screen:    s.Screen.Name,
		Title:     s.Screen.Title,
		State:     s.state,
	}
	switch s.state {
	case models.StateFailed:
		v.Error = s.failure
		return v
	case models.StateLoading:
		return v
	}

	visible := s.visibleLocked()
	v.Datasets = make([]models.DatasetView, 0, len(s.Screen.Datasets))
	for _, spec := range s.Screen.Datasets {
		v.Datasets = append(v.Datasets, s.datasets[spec.Name].view(len(visible[spec.Name])))
	}

	v.Charts = make([]models.ChartView, 0, len(s.Screen.Charts))
	for _, spec := range s.Screen.Charts {
		r := s.render(spec, visible)
		cv := models.ChartView{
			Name:    spec.Name,
			Title:   spec.Title,
			Kind:    spec.Kind,
			Dataset: spec.Dataset,
			Data:    r.data,
		}
		if spec.Action != ActionNone {
			dataset, field := spec.target()
			cv.Field = field
			if spec.Action != ActionSelectOnly {
				if active, ok := s.datasets[dataset].drill.Active(field); ok {
					cv.Active = &active
				}
			}
		}
		v.Charts = append(v.Charts, cv)
	}
	return v
}
