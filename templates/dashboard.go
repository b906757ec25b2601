package templates

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/a-h/templ"
)

const chartJSURL = "https://cdn.jsdelivr.net/npm/chart.js@4.4.2/dist/chart.umd.min.js"

//go:embed dashboard.js
var dashboardScript string

// DashboardPage renders the full page: the layout tree as HTML plus the script
// that wires the widgets to the update endpoint.
func DashboardPage(data DashboardPageData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var buf bytes.Buffer
		buf.WriteString(`<!doctype html><html lang="en"><head><meta charset="UTF-8"><meta name="viewport" content="width=device-width, initial-scale=1.0"><title>`)
		buf.WriteString(templ.EscapeString(data.Title))
		buf.WriteString(`</title><script src="` + chartJSURL + `"></script>`)
		buf.WriteString(`<style>body{font-family:sans-serif;margin:2rem}.dash-graph{max-width:900px;margin:0 auto}.dash-range-marks{display:flex;justify-content:space-between;font-size:.8rem}.dash-range-slider input{width:100%}</style>`)
		buf.WriteString(`</head><body>`)
		if err := Widget(data.Layout).Render(ctx, &buf); err != nil {
			return err
		}
		buf.WriteString(`<script>`)
		buf.WriteString(dashboardScript)
		buf.WriteString(`</script></body></html>`)

		_, err := w.Write(buf.Bytes())
		return err
	})
}

// Widget renders a layout node and its children without the page chrome.
func Widget(c Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var buf bytes.Buffer
		if err := writeComponent(&buf, c); err != nil {
			return err
		}
		_, err := w.Write(buf.Bytes())
		return err
	})
}

func writeComponent(buf *bytes.Buffer, c Component) error {
	switch c.Type {
	case TypeDiv:
		buf.WriteString(`<div` + attrs(c) + `>`)
		for _, child := range c.Children {
			if err := writeComponent(buf, child); err != nil {
				return err
			}
		}
		buf.WriteString(`</div>`)
	case TypeH1:
		buf.WriteString(`<h1` + attrs(c) + `>` + templ.EscapeString(c.Text) + `</h1>`)
	case TypeP:
		buf.WriteString(`<p` + attrs(c) + `>` + templ.EscapeString(c.Text) + `</p>`)
	case TypeBr:
		buf.WriteString(`<br>`)
	case TypeDropdown:
		return writeDropdown(buf, c)
	case TypeRangeSlider:
		return writeRangeSlider(buf, c)
	case TypeGraph:
		buf.WriteString(`<div class="dash-graph"` + attrs(c) + `><canvas></canvas></div>`)
	default:
		return fmt.Errorf("unknown component type %q", c.Type)
	}
	return nil
}

func writeDropdown(buf *bytes.Buffer, c Component) error {
	d := c.Dropdown
	if d == nil {
		return fmt.Errorf("dropdown %q has no options", c.ID)
	}
	if d.Searchable {
		buf.WriteString(`<input type="search" class="dash-dropdown-search" data-for="` + templ.EscapeString(c.ID) + `" placeholder="` + templ.EscapeString(d.Placeholder) + `">`)
	}
	buf.WriteString(`<select class="dash-dropdown"` + attrs(c) + `>`)
	for _, o := range d.Options {
		buf.WriteString(`<option value="` + templ.EscapeString(o.Value) + `"`)
		if o.Value == d.Value {
			buf.WriteString(` selected`)
		}
		buf.WriteString(`>` + templ.EscapeString(o.Label) + `</option>`)
	}
	buf.WriteString(`</select>`)
	return nil
}

func writeRangeSlider(buf *bytes.Buffer, c Component) error {
	s := c.Slider
	if s == nil {
		return fmt.Errorf("range slider %q has no bounds", c.ID)
	}
	value, err := json.Marshal(s.Value)
	if err != nil {
		return err
	}
	listID := c.ID + "-marks"
	bounds := ` min="` + num(s.Min) + `" max="` + num(s.Max) + `" step="` + num(s.Step) + `" list="` + templ.EscapeString(listID) + `"`

	buf.WriteString(`<div class="dash-range-slider"` + attrs(c) + ` data-value="` + templ.EscapeString(string(value)) + `">`)
	buf.WriteString(`<input type="range" class="dash-range-lo"` + bounds + ` value="` + num(s.Value[0]) + `">`)
	buf.WriteString(`<input type="range" class="dash-range-hi"` + bounds + ` value="` + num(s.Value[1]) + `">`)
	buf.WriteString(`<datalist id="` + templ.EscapeString(listID) + `">`)
	for _, m := range s.Marks {
		buf.WriteString(`<option value="` + num(m.Value) + `" label="` + templ.EscapeString(m.Label) + `"></option>`)
	}
	buf.WriteString(`</datalist><div class="dash-range-marks">`)
	for _, m := range s.Marks {
		buf.WriteString(`<span>` + templ.EscapeString(m.Label) + `</span>`)
	}
	buf.WriteString(`</div></div>`)
	return nil
}

func attrs(c Component) string {
	var out string
	if c.ID != "" {
		out += ` id="` + templ.EscapeString(c.ID) + `"`
	}
	if c.Style != "" {
		out += ` style="` + templ.EscapeString(c.Style) + `"`
	}
	return out
}

func num(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
