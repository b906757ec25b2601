package templates

// Component is one node of the dashboard layout tree. The tree is rendered to
// HTML by DashboardPage and served as JSON to the browser.
type Component struct {
	Type     string      `json:"type"`
	ID       string      `json:"id,omitempty"`
	Text     string      `json:"text,omitempty"`
	Style    string      `json:"style,omitempty"`
	Dropdown *Dropdown   `json:"dropdown,omitempty"`
	Slider   *Slider     `json:"slider,omitempty"`
	Children []Component `json:"children,omitempty"`
}

type Option struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

type Dropdown struct {
	Options     []Option `json:"options"`
	Value       string   `json:"value"`
	Placeholder string   `json:"placeholder,omitempty"`
	Searchable  bool     `json:"searchable"`
}

type Mark struct {
	Value float64 `json:"value"`
	Label string  `json:"label"`
}

type Slider struct {
	Min   float64    `json:"min"`
	Max   float64    `json:"max"`
	Step  float64    `json:"step"`
	Value [2]float64 `json:"value"`
	Marks []Mark     `json:"marks"`
}

// Component types understood by the renderer.
const (
	TypeDiv         = "Div"
	TypeH1          = "H1"
	TypeP           = "P"
	TypeBr          = "Br"
	TypeDropdown    = "Dropdown"
	TypeRangeSlider = "RangeSlider"
	TypeGraph       = "Graph"
)

type DashboardPageData struct {
	Title  string
	Layout Component
}
