package templates

import (
	"bytes"
	"context"
	"strings"
	"testing"
)

func samplePage() DashboardPageData {
	return DashboardPageData{
		Title: "Launches <dev>",
		Layout: Component{
			Type: TypeDiv,
			Children: []Component{
				{Type: TypeH1, Text: "SpaceX Launch Records Dashboard", Style: "text-align: center"},
				{Type: TypeDropdown, ID: "site-dropdown", Dropdown: &Dropdown{
					Options:     []Option{{Label: "All Sites", Value: "ALL"}, {Label: "KSC LC-39A", Value: "KSC LC-39A"}},
					Value:       "ALL",
					Placeholder: "Select a Launch Site",
					Searchable:  true,
				}},
				{Type: TypeGraph, ID: "success-pie-chart"},
				{Type: TypeRangeSlider, ID: "payload-slider", Slider: &Slider{
					Min: 0, Max: 10000, Step: 1000,
					Value: [2]float64{0, 9600},
					Marks: []Mark{{Value: 0, Label: "0"}, {Value: 1000, Label: "1000"}},
				}},
			},
		},
	}
}

func render(t *testing.T, data DashboardPageData) string {
	t.Helper()
	var buf bytes.Buffer
	if err := DashboardPage(data).Render(context.Background(), &buf); err != nil {
		t.Fatalf("render: %v", err)
	}
	return buf.String()
}

func TestDashboardPage_RendersWidgets(t *testing.T) {
	html := render(t, samplePage())

	for _, want := range []string{
		`<title>Launches &lt;dev&gt;</title>`,
		`<h1 style="text-align: center">SpaceX Launch Records Dashboard</h1>`,
		`<select class="dash-dropdown" id="site-dropdown">`,
		`<option value="ALL" selected>All Sites</option>`,
		`<option value="KSC LC-39A">KSC LC-39A</option>`,
		`data-for="site-dropdown"`,
		`<div class="dash-graph" id="success-pie-chart"><canvas></canvas></div>`,
		`data-value="[0,9600]"`,
		`min="0" max="10000" step="1000"`,
		`<option value="1000" label="1000"></option>`,
		chartJSURL,
		`/_dash-update-component`,
	} {
		if !strings.Contains(html, want) {
			t.Errorf("page missing %q", want)
		}
	}
}

func renderWidget(t *testing.T, c Component) string {
	t.Helper()
	var buf bytes.Buffer
	if err := Widget(c).Render(context.Background(), &buf); err != nil {
		t.Fatalf("render: %v", err)
	}
	return buf.String()
}

func TestWidget_DropdownSearchBox(t *testing.T) {
	dropdown := samplePage().Layout.Children[1]

	if html := renderWidget(t, dropdown); !strings.Contains(html, `<input type="search"`) {
		t.Errorf("searchable dropdown has no search box:\n%s", html)
	}

	dropdown.Dropdown.Searchable = false
	html := renderWidget(t, dropdown)
	if strings.Contains(html, `<input type="search"`) {
		t.Errorf("search box rendered for a non-searchable dropdown:\n%s", html)
	}
	if !strings.Contains(html, `<select class="dash-dropdown" id="site-dropdown">`) {
		t.Errorf("select missing:\n%s", html)
	}
}

func TestDashboardPage_NotSearchable(t *testing.T) {
	data := samplePage()
	data.Layout.Children[1].Dropdown.Searchable = false

	if html := render(t, data); strings.Contains(html, `<input type="search"`) {
		t.Error("search box rendered for a non-searchable dropdown")
	}
}

// Only the response to the latest request for an output may reach the chart.
func TestDashboardScript_DropsStaleResponses(t *testing.T) {
	for _, want := range []string{
		`prev.controller.abort()`,
		`signal: req.controller.signal`,
		`if (!current()) {`,
	} {
		if !strings.Contains(dashboardScript, want) {
			t.Errorf("script missing %q", want)
		}
	}
	renderAt := strings.Index(dashboardScript, `renderFigure(dep.output.id`)
	guard := strings.Index(dashboardScript, `if (!current()) {`)
	if guard < 0 || renderAt < guard {
		t.Error("figure is rendered before the stale-response check")
	}
}

func TestWidget_UnknownType(t *testing.T) {
	var buf bytes.Buffer
	err := Widget(Component{Type: "Marquee"}).Render(context.Background(), &buf)
	if err == nil {
		t.Fatal("expected error for unknown component type")
	}
}

func TestWidget_SliderWithoutBounds(t *testing.T) {
	var buf bytes.Buffer
	err := Widget(Component{Type: TypeRangeSlider, ID: "s"}).Render(context.Background(), &buf)
	if err == nil {
		t.Fatal("expected error for slider without bounds")
	}
}
