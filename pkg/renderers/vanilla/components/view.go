package components

// View is the template-facing state of one field. Every value is
// preformatted text because template data goes through JSON, where numbers
// would lose their formatting.
type View struct {
	ID          string   `json:"id"`
	ControlID   string   `json:"control_id"`
	Name        string   `json:"name"`
	Label       string   `json:"label"`
	Kind        string   `json:"kind"`
	Widget      string   `json:"widget"`
	Value       string   `json:"value"`
	Display     string   `json:"display"`
	Checked     bool     `json:"checked"`
	Placeholder string   `json:"placeholder,omitempty"`
	Info        string   `json:"info,omitempty"`
	Choices     []Choice `json:"choices,omitempty"`
	Min         string   `json:"min,omitempty"`
	Max         string   `json:"max,omitempty"`
	Step        string   `json:"step,omitempty"`
	Rows        string   `json:"rows,omitempty"`
	ReadOnly    bool     `json:"readonly"`
	Invalid     bool     `json:"invalid"`
	Errors      []string `json:"errors,omitempty"`
}

// Choice is one option of a select or radio group.
type Choice struct {
	Value    string `json:"value"`
	Label    string `json:"label"`
	Selected bool   `json:"selected"`
}
