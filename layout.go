package main

import (
	"strconv"

	"spacex-dash/templates"
)

// Component ids shared by the layout and the binding table.
const (
	siteDropdownID  = "site-dropdown"
	pieChartID      = "success-pie-chart"
	payloadSliderID = "payload-slider"
	scatterChartID  = "success-payload-scatter-chart"
)

const dashboardTitle = "SpaceX Launch Records Dashboard"

// LaunchSites is the fixed set offered by the site dropdown.
var LaunchSites = []string{"CCAFS LC-40", "KSC LC-39A", "VAFB SLC-4E", "CCAFS SLC-40"}

const (
	sliderMin  = 0
	sliderMax  = 10000
	sliderStep = 1000
)

// BuildLayout declares the widget tree. Only the slider default depends on the data.
func BuildLayout(ds *Dataset) templates.Component {
	options := []templates.Option{{Label: "All Sites", Value: AllSites}}
	for _, site := range LaunchSites {
		options = append(options, templates.Option{Label: site, Value: site})
	}

	var marks []templates.Mark
	for v := sliderMin; v < sliderMax; v += sliderStep {
		marks = append(marks, templates.Mark{Value: float64(v), Label: strconv.Itoa(v)})
	}

	return templates.Component{
		Type: templates.TypeDiv,
		Children: []templates.Component{
			{
				Type:  templates.TypeH1,
				Text:  dashboardTitle,
				Style: "text-align: center; color: #503D36; font-size: 40px",
			},
			{
				Type: templates.TypeDropdown,
				ID:   siteDropdownID,
				Dropdown: &templates.Dropdown{
					Options:     options,
					Value:       AllSites,
					Placeholder: "Select a Launch Site",
					Searchable:  true,
				},
			},
			{Type: templates.TypeBr},
			{Type: templates.TypeDiv, Children: []templates.Component{{Type: templates.TypeGraph, ID: pieChartID}}},
			{Type: templates.TypeBr},
			{Type: templates.TypeP, Text: "Payload range (Kg):"},
			{
				Type: templates.TypeRangeSlider,
				ID:   payloadSliderID,
				Slider: &templates.Slider{
					Min:   sliderMin,
					Max:   sliderMax,
					Step:  sliderStep,
					Value: [2]float64{ds.MinPayload(), ds.MaxPayload()},
					Marks: marks,
				},
			},
			{Type: templates.TypeDiv, Children: []templates.Component{{Type: templates.TypeGraph, ID: scatterChartID}}},
		},
	}
}

// findComponent returns the first node with the given id, depth first.
func findComponent(root templates.Component, id string) (templates.Component, bool) {
	if root.ID == id {
		return root, true
	}
	for _, child := range root.Children {
		if c, ok := findComponent(child, id); ok {
			return c, true
		}
	}
	return templates.Component{}, false
}
