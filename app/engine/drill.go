package engine

import (
	models "school-dashboard/app/models/dashboard"
)

// DrillState keeps at most one clicked value per drill axis. Axes paired
// as exclusive clear each other on select.
type DrillState struct {
	active   map[string]string
	partners map[string][]string
}

func NewDrillState(exclusive ...[2]string) *DrillState {
	d := &DrillState{
		active:   make(map[string]string),
		partners: make(map[string][]string),
	}
	for _, pair := range exclusive {
		d.partners[pair[0]] = append(d.partners[pair[0]], pair[1])
		d.partners[pair[1]] = append(d.partners[pair[1]], pair[0])
	}
	return d
}

// Select sets field to value and clears the field's exclusive partners.
// The empty value is a valid target and matches records lacking the field.
func (d *DrillState) Select(field, value string) {
	d.active[field] = value
	for _, other := range d.partners[field] {
		delete(d.active, other)
	}
}

// Toggle selects value, or clears field when value is already active.
func (d *DrillState) Toggle(field, value string) {
	if cur, ok := d.active[field]; ok && cur == value {
		d.Clear(field)
		return
	}
	d.Select(field, value)
}

func (d *DrillState) Clear(field string) {
	delete(d.active, field)
}

func (d *DrillState) Active(field string) (string, bool) {
	v, ok := d.active[field]
	return v, ok
}

// Snapshot returns a copy of the active constraints.
func (d *DrillState) Snapshot() map[string]string {
	out := make(map[string]string, len(d.active))
	for k, v := range d.active {
		out[k] = v
	}
	return out
}

// Apply keeps records matching every active constraint exactly.
func (d *DrillState) Apply(records []models.Record) []models.Record {
	if len(d.active) == 0 {
		return records
	}

	out := make([]models.Record, 0, len(records))
	for _, r := range records {
		keep := true
		for field, value := range d.active {
			if r.Value(field) != value {
				keep = false
				break
			}
		}
		if keep {
			out = append(out, r)
		}
	}
	return out
}
