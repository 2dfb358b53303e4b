// Package chart builds declarative chart specifications from tabular
// statistics. A spec is a plain nested map (objects, arrays, numbers,
// strings) ready for JSON encoding and consumption by a front-end
// plotting library; no raster rendering happens here.
//
// Every builder tolerates an empty result set and returns a well-formed
// spec with zero data series, and every spec passes through Normalize
// so JSON encoding never sees NaN or infinite values.
package chart

import (
	"sort"
	"time"
)

// Spec is a renderable chart description with plotly-style "data" and
// "layout" keys.
type Spec map[string]any

// StatePct is one (state name, coverage percentage) bar-chart entry.
type StatePct struct {
	Name string
	Pct  float64
}

// LabelValue is one pie-chart entry. Pct is accepted for callers that
// have it on hand but is not used in the rendered spec.
type LabelValue struct {
	Label string
	Value float64
	Pct   float64
}

// ProgressPoint is one time-series observation.
type ProgressPoint struct {
	StateName  string
	Date       time.Time
	Households int64
	Pct        float64
}

// Gauge builds a single-indicator spec for overall progress: three
// colored bands splitting [0, maxValue] into thirds and a threshold
// marker at value. Clamping out-of-range values is left to the
// rendering layer.
func Gauge(value float64, title string, maxValue float64) Spec {
	spec := Spec{
		"data": []any{
			map[string]any{
				"type":   "indicator",
				"mode":   "gauge+number",
				"value":  value,
				"title":  map[string]any{"text": title},
				"domain": map[string]any{"x": []any{0.0, 1.0}, "y": []any{0.0, 1.0}},
				"gauge": map[string]any{
					"axis": map[string]any{"range": []any{0.0, maxValue}},
					"bar":  map[string]any{"color": "#1f77b4"},
					"steps": []any{
						map[string]any{"range": []any{0.0, maxValue / 3}, "color": "#f7dc6f"},
						map[string]any{"range": []any{maxValue / 3, 2 * maxValue / 3}, "color": "#7fb3d5"},
						map[string]any{"range": []any{2 * maxValue / 3, maxValue}, "color": "#82e0aa"},
					},
					"threshold": map[string]any{
						"line":      map[string]any{"color": "red", "width": 4},
						"thickness": 0.75,
						"value":     value,
					},
				},
			},
		},
		"layout": map[string]any{
			"height": 250,
			"margin": map[string]any{"l": 20, "r": 20, "t": 50, "b": 20},
		},
	}
	return normalizeSpec(spec)
}

// StateProgressBar builds a horizontal bar chart of per-state coverage,
// sorted descending by percentage with name as the tie-break so output
// is reproducible.
func StateProgressBar(entries []StatePct, title string) Spec {
	if len(entries) == 0 {
		return emptySpec(title, "Coverage (%)", "State/UT", "No state data available")
	}

	sorted := make([]StatePct, len(entries))
	copy(sorted, entries)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Pct != sorted[j].Pct {
			return sorted[i].Pct > sorted[j].Pct
		}
		return sorted[i].Name < sorted[j].Name
	})

	names := make([]any, len(sorted))
	pcts := make([]any, len(sorted))
	for i, e := range sorted {
		names[i] = e.Name
		pcts[i] = e.Pct
	}

	spec := Spec{
		"data": []any{
			map[string]any{
				"type":        "bar",
				"orientation": "h",
				"x":           pcts,
				"y":           names,
				"marker": map[string]any{
					"color":      pcts,
					"colorscale": "Viridis",
					"cmin":       0,
					"cmax":       100,
					"colorbar":   map[string]any{"title": "Coverage %"},
				},
			},
		},
		"layout": map[string]any{
			"title":  title,
			"height": 500,
			"margin": map[string]any{"l": 0, "r": 0, "t": 40, "b": 0},
			"xaxis":  map[string]any{"title": "Coverage (%)"},
			// Highest values at the top.
			"yaxis": map[string]any{"title": "", "autorange": "reversed"},
		},
	}
	return normalizeSpec(spec)
}

// Pie builds a pie chart from (label, value) entries.
func Pie(entries []LabelValue, title string) Spec {
	labels := make([]any, len(entries))
	values := make([]any, len(entries))
	for i, e := range entries {
		labels[i] = e.Label
		values[i] = e.Value
	}

	spec := Spec{
		"data": []any{
			map[string]any{
				"type":         "pie",
				"labels":       labels,
				"values":       values,
				"textposition": "inside",
				"textinfo":     "percent+label",
			},
		},
		"layout": map[string]any{
			"title":  title,
			"margin": map[string]any{"l": 0, "r": 0, "t": 40, "b": 0},
			"legend": map[string]any{
				"orientation": "h",
				"yanchor":     "bottom",
				"y":           1.02,
				"xanchor":     "right",
				"x":           1,
			},
		},
	}
	return normalizeSpec(spec)
}

// TimeSeries builds one line trace per state from historical snapshots.
// Traces appear in first-appearance order of their state; the x axis
// holds ISO dates and the y axis coverage percentages.
func TimeSeries(points []ProgressPoint, title string) Spec {
	if len(points) == 0 {
		return emptySpec(title, "Year", "Coverage (%)", "No historical data available")
	}

	var order []string
	byState := make(map[string]*struct {
		x []any
		y []any
	})
	for _, p := range points {
		tr, ok := byState[p.StateName]
		if !ok {
			tr = &struct {
				x []any
				y []any
			}{}
			byState[p.StateName] = tr
			order = append(order, p.StateName)
		}
		tr.x = append(tr.x, p.Date.Format("2006-01-02"))
		tr.y = append(tr.y, p.Pct)
	}

	traces := make([]any, len(order))
	for i, name := range order {
		tr := byState[name]
		traces[i] = map[string]any{
			"type": "scatter",
			"mode": "lines",
			"name": name,
			"x":    tr.x,
			"y":    tr.y,
		}
	}

	spec := Spec{
		"data": traces,
		"layout": map[string]any{
			"title":  title,
			"height": 400,
			"margin": map[string]any{"l": 0, "r": 0, "t": 40, "b": 0},
			"xaxis":  map[string]any{"title": "Year", "tickformat": "%Y"},
			"yaxis":  map[string]any{"title": "Coverage (%)"},
			"legend": map[string]any{
				"orientation": "h",
				"yanchor":     "bottom",
				"y":           1.02,
				"xanchor":     "right",
				"x":           1,
			},
		},
	}
	return normalizeSpec(spec)
}

// emptySpec is the shared placeholder for builders whose input set is
// empty: zero data series plus a centered annotation.
func emptySpec(title, xTitle, yTitle, note string) Spec {
	return Spec{
		"data": []any{},
		"layout": map[string]any{
			"title": title,
			"xaxis": map[string]any{"title": xTitle},
			"yaxis": map[string]any{"title": yTitle},
			"annotations": []any{
				map[string]any{
					"x":         0.5,
					"y":         0.5,
					"xref":      "paper",
					"yref":      "paper",
					"text":      note,
					"showarrow": false,
					"font":      map[string]any{"size": 16},
				},
			},
		},
	}
}
