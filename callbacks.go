package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"

	"spacex-dash/templates"
)

var (
	ErrInvalidBinding = errors.New("invalid binding")
	ErrUnknownOutput  = errors.New("unknown output")
	ErrInputMismatch  = errors.New("inputs do not match binding")
	ErrInvalidValue   = errors.New("invalid input value")
)

// Properties each component type exposes to bindings.
var componentProperties = map[string][]string{
	templates.TypeDropdown:    {"value"},
	templates.TypeRangeSlider: {"value"},
	templates.TypeGraph:       {"figure"},
}

// Dependency names one property of one layout component.
type Dependency struct {
	ID       string `json:"id"`
	Property string `json:"property"`
}

func (d Dependency) String() string { return d.ID + "." + d.Property }

// InputValue is a dependency together with its current value as sent by the browser.
type InputValue struct {
	ID       string          `json:"id"`
	Property string          `json:"property"`
	Value    json.RawMessage `json:"value"`
}

// HandlerFunc receives the raw input values in binding order.
type HandlerFunc func(ctx context.Context, values []json.RawMessage) (any, error)

// Binding recomputes Output whenever one of Inputs changes.
type Binding struct {
	Output  Dependency
	Inputs  []Dependency
	Handler HandlerFunc
}

// BindingSpec is the wire form of a Binding.
type BindingSpec struct {
	Output Dependency   `json:"output"`
	Inputs []Dependency `json:"inputs"`
}

// Registry is the validated binding table. It is built once at start-up and
// read concurrently afterwards.
type Registry struct {
	bindings []Binding
	byOutput map[string]int
}

// NewRegistry checks every binding against layout: outputs must be unique and
// every dependency must name an existing component and one of its properties.
func NewRegistry(layout templates.Component, bindings ...Binding) (*Registry, error) {
	r := &Registry{byOutput: make(map[string]int, len(bindings))}
	for _, b := range bindings {
		if b.Handler == nil {
			return nil, fmt.Errorf("%w: %s has no handler", ErrInvalidBinding, b.Output)
		}
		if len(b.Inputs) == 0 {
			return nil, fmt.Errorf("%w: %s has no inputs", ErrInvalidBinding, b.Output)
		}
		if _, dup := r.byOutput[b.Output.String()]; dup {
			return nil, fmt.Errorf("%w: output %s bound twice", ErrInvalidBinding, b.Output)
		}
		for _, dep := range append([]Dependency{b.Output}, b.Inputs...) {
			if err := checkDependency(layout, dep); err != nil {
				return nil, err
			}
		}
		r.byOutput[b.Output.String()] = len(r.bindings)
		r.bindings = append(r.bindings, b)
	}
	return r, nil
}

func checkDependency(layout templates.Component, dep Dependency) error {
	c, ok := findComponent(layout, dep.ID)
	if !ok {
		return fmt.Errorf("%w: no component %q in layout", ErrInvalidBinding, dep.ID)
	}
	if !slices.Contains(componentProperties[c.Type], dep.Property) {
		return fmt.Errorf("%w: %s has no property %q", ErrInvalidBinding, c.Type, dep.Property)
	}
	return nil
}

// Specs lists the bindings in registration order.
func (r *Registry) Specs() []BindingSpec {
	out := make([]BindingSpec, len(r.bindings))
	for i, b := range r.bindings {
		out[i] = BindingSpec{Output: b.Output, Inputs: b.Inputs}
	}
	return out
}

// Dispatch runs the binding registered for output with the supplied inputs,
// which must match the declared inputs in order.
func (r *Registry) Dispatch(ctx context.Context, output string, inputs []InputValue) (any, error) {
	i, ok := r.byOutput[output]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownOutput, output)
	}
	b := r.bindings[i]

	if len(inputs) != len(b.Inputs) {
		return nil, fmt.Errorf("%w: %s wants %d inputs, got %d", ErrInputMismatch, output, len(b.Inputs), len(inputs))
	}
	values := make([]json.RawMessage, len(inputs))
	for j, in := range inputs {
		want := b.Inputs[j]
		if in.ID != want.ID || in.Property != want.Property {
			return nil, fmt.Errorf("%w: input %d is %s.%s, want %s", ErrInputMismatch, j, in.ID, in.Property, want)
		}
		values[j] = in.Value
	}
	return b.Handler(ctx, values)
}

// dashboardBindings wires the two chart handlers to the widgets.
func dashboardBindings(q Querier) []Binding {
	site := Dependency{ID: siteDropdownID, Property: "value"}
	payload := Dependency{ID: payloadSliderID, Property: "value"}

	return []Binding{
		{
			Output: Dependency{ID: pieChartID, Property: "figure"},
			Inputs: []Dependency{site},
			Handler: func(ctx context.Context, values []json.RawMessage) (any, error) {
				var selected string
				if err := decodeValue(values[0], &selected); err != nil {
					return nil, err
				}
				return PieChart(ctx, q, selected)
			},
		},
		{
			Output: Dependency{ID: scatterChartID, Property: "figure"},
			Inputs: []Dependency{payload, site},
			Handler: func(ctx context.Context, values []json.RawMessage) (any, error) {
				var window []float64
				if err := decodeValue(values[0], &window); err != nil {
					return nil, err
				}
				if len(window) != 2 {
					return nil, fmt.Errorf("%w: payload range needs 2 values, got %d", ErrInvalidValue, len(window))
				}
				var selected string
				if err := decodeValue(values[1], &selected); err != nil {
					return nil, err
				}
				return ScatterChart(ctx, q, window[0], window[1], selected)
			},
		},
	}
}

func decodeValue(raw json.RawMessage, v any) error {
	if len(raw) == 0 {
		return fmt.Errorf("%w: missing value", ErrInvalidValue)
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidValue, err)
	}
	return nil
}
