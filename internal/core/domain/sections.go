package domain

import "slices"

// Identity names the component and states what it is for.
type Identity struct {
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description" yaml:"description"`
	UseCase     string `json:"useCase" yaml:"useCase"`
}

var identityFields = []Field{
	{Key: "name", Label: "Component name"},
	{Key: "description", Label: "Description"},
	{Key: "useCase", Label: "Core use case"},
}

func (i *Identity) text() map[string]*string {
	return map[string]*string{
		"name":        &i.Name,
		"description": &i.Description,
		"useCase":     &i.UseCase,
	}
}

// Fields implements FieldSet.
func (Identity) Fields() []Field { return identityFields }

// FieldValue implements FieldSet.
func (i Identity) FieldValue(key string) string { return textValue(i.text(), key) }

// WithField returns a copy of i with one field changed.
func (i Identity) WithField(key, value string) (Identity, error) {
	err := setText("identity", i.text(), key, value)
	return i, err
}

// StateSection groups internal state, effects and the free-text notes on
// performance and custom hooks.
type StateSection struct {
	Variables     []StateVariable `json:"variables" yaml:"variables"`
	Effects       []SideEffect    `json:"effects" yaml:"effects"`
	Optimizations string          `json:"optimizations" yaml:"optimizations"`
	CustomHooks   string          `json:"customHooks" yaml:"customHooks"`
}

var stateNoteFields = []Field{
	{Key: "optimizations", Label: "Performance optimizations"},
	{Key: "customHooks", Label: "Custom hooks"},
}

func (s *StateSection) text() map[string]*string {
	return map[string]*string{
		"optimizations": &s.Optimizations,
		"customHooks":   &s.CustomHooks,
	}
}

// IsEmpty reports whether the section carries no information.
func (s StateSection) IsEmpty() bool {
	return len(s.Variables) == 0 && len(s.Effects) == 0 &&
		s.Optimizations == "" && s.CustomHooks == ""
}

// Equal reports whether s and o hold the same values.
func (s StateSection) Equal(o StateSection) bool {
	return s.Optimizations == o.Optimizations && s.CustomHooks == o.CustomHooks &&
		slices.Equal(s.Variables, o.Variables) && slices.Equal(s.Effects, o.Effects)
}

// Fields implements FieldSet. Only the free-text notes are exposed;
// variables and effects are edited as lists.
func (StateSection) Fields() []Field { return stateNoteFields }

// FieldValue implements FieldSet.
func (s StateSection) FieldValue(key string) string { return textValue(s.text(), key) }

// WithField returns a copy of s with one note changed.
func (s StateSection) WithField(key, value string) (StateSection, error) {
	err := setText("state", s.text(), key, value)
	return s, err
}

// InteractionsSection groups user interactions, emitted events and
// conditional rendering rules.
type InteractionsSection struct {
	UserInteractions     []UserInteraction   `json:"userInteractions" yaml:"userInteractions"`
	EventEmitters        []EventEmitter      `json:"eventEmitters" yaml:"eventEmitters"`
	ConditionalRendering []ConditionalRender `json:"conditionalRendering" yaml:"conditionalRendering"`
}

// IsEmpty reports whether all three lists are empty.
func (s InteractionsSection) IsEmpty() bool {
	return len(s.UserInteractions) == 0 && len(s.EventEmitters) == 0 &&
		len(s.ConditionalRendering) == 0
}

// Equal reports whether s and o hold the same values.
func (s InteractionsSection) Equal(o InteractionsSection) bool {
	return slices.Equal(s.UserInteractions, o.UserInteractions) &&
		slices.Equal(s.EventEmitters, o.EventEmitters) &&
		slices.Equal(s.ConditionalRendering, o.ConditionalRendering)
}

// VisualsSection holds markup and styling guidance.
type VisualsSection struct {
	HTMLElements string `json:"htmlElements" yaml:"htmlElements"`
	Styling      string `json:"styling" yaml:"styling"`
	Layout       string `json:"layout" yaml:"layout"`
}

// DefaultStyling seeds the styling field of new documents.
const DefaultStyling = "Use Tailwind CSS for all styling, sourcing colors from the provided CSS variables for a neon-on-dark theme."

var visualsFields = []Field{
	{Key: "htmlElements", Label: "Semantic HTML elements"},
	{Key: "styling", Label: "Styling strategy"},
	{Key: "layout", Label: "Layout cues"},
}

func (v *VisualsSection) text() map[string]*string {
	return map[string]*string{
		"htmlElements": &v.HTMLElements,
		"styling":      &v.Styling,
		"layout":       &v.Layout,
	}
}

// IsEmpty reports whether every field is empty.
func (v VisualsSection) IsEmpty() bool {
	return v == VisualsSection{}
}

// Fields implements FieldSet.
func (VisualsSection) Fields() []Field { return visualsFields }

// FieldValue implements FieldSet.
func (v VisualsSection) FieldValue(key string) string { return textValue(v.text(), key) }

// WithField returns a copy of v with one field changed.
func (v VisualsSection) WithField(key, value string) (VisualsSection, error) {
	err := setText("visuals", v.text(), key, value)
	return v, err
}

// RobustnessSection is the free-text quality checklist.
type RobustnessSection struct {
	Accessibility string `json:"accessibility" yaml:"accessibility"`
	ErrorHandling string `json:"errorHandling" yaml:"errorHandling"`
	LoadingStates string `json:"loadingStates" yaml:"loadingStates"`
	EdgeCases     string `json:"edgeCases" yaml:"edgeCases"`
	Testing       string `json:"testing" yaml:"testing"`
}

var robustnessFields = []Field{
	{Key: "accessibility", Label: "Accessibility"},
	{Key: "errorHandling", Label: "Error handling"},
	{Key: "loadingStates", Label: "Loading states"},
	{Key: "edgeCases", Label: "Edge cases"},
	{Key: "testing", Label: "Testing focus"},
}

func (r *RobustnessSection) text() map[string]*string {
	return map[string]*string{
		"accessibility": &r.Accessibility,
		"errorHandling": &r.ErrorHandling,
		"loadingStates": &r.LoadingStates,
		"edgeCases":     &r.EdgeCases,
		"testing":       &r.Testing,
	}
}

// IsEmpty reports whether every field is empty.
func (r RobustnessSection) IsEmpty() bool {
	return r == RobustnessSection{}
}

// Fields implements FieldSet.
func (RobustnessSection) Fields() []Field { return robustnessFields }

// FieldValue implements FieldSet.
func (r RobustnessSection) FieldValue(key string) string { return textValue(r.text(), key) }

// WithField returns a copy of r with one field changed.
func (r RobustnessSection) WithField(key, value string) (RobustnessSection, error) {
	err := setText("robustness", r.text(), key, value)
	return r, err
}
