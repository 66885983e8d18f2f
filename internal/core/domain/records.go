package domain

import "fmt"

// Record is an entry in one of the list-shaped sections.
// Its ID is generated when the record is created and never changes;
// it is the only key used to target updates and removals.
type Record interface {
	RecordID() string
}

// PropDefinition documents one prop of the described component.
// Type is descriptive text and is never parsed.
type PropDefinition struct {
	ID           string `json:"id" yaml:"id"`
	Name         string `json:"name" yaml:"name"`
	Type         string `json:"type" yaml:"type"`
	Description  string `json:"description" yaml:"description"`
	Required     bool   `json:"required" yaml:"required"`
	DefaultValue string `json:"defaultValue" yaml:"defaultValue"`
	Impact       string `json:"impact" yaml:"impact"`
}

var propFields = []Field{
	{Key: "name", Label: "Name"},
	{Key: "type", Label: "Type"},
	{Key: "description", Label: "Description"},
	{Key: "required", Label: "Required", Kind: FieldBool},
	{Key: "defaultValue", Label: "Default value"},
	{Key: "impact", Label: "Impact"},
}

func (p *PropDefinition) text() map[string]*string {
	return map[string]*string{
		"name":         &p.Name,
		"type":         &p.Type,
		"description":  &p.Description,
		"defaultValue": &p.DefaultValue,
		"impact":       &p.Impact,
	}
}

// RecordID implements Record.
func (p PropDefinition) RecordID() string { return p.ID }

// Fields implements FieldSet.
func (PropDefinition) Fields() []Field { return propFields }

// FieldValue implements FieldSet.
func (p PropDefinition) FieldValue(key string) string {
	if key == "required" {
		return formatBool(p.Required)
	}
	return textValue(p.text(), key)
}

// WithField returns a copy of p with one field changed.
func (p PropDefinition) WithField(key, value string) (PropDefinition, error) {
	if key == "required" {
		b, err := ParseBool(value)
		if err != nil {
			return p, err
		}
		p.Required = b
		return p, nil
	}
	err := setText("prop", p.text(), key, value)
	return p, err
}

// Label is a one-line summary for lists.
func (p PropDefinition) Label() string {
	return fmt.Sprintf("%s (%s)", orDash(p.Name), orDash(p.Type))
}

// StateVariable documents one piece of internal state.
type StateVariable struct {
	ID           string `json:"id" yaml:"id"`
	Name         string `json:"name" yaml:"name"`
	InitialValue string `json:"initialValue" yaml:"initialValue"`
	Hook         string `json:"hook" yaml:"hook"`
	Purpose      string `json:"purpose" yaml:"purpose"`
	Transitions  string `json:"transitions" yaml:"transitions"`
}

// DefaultStateHook is the hook assigned to newly created state variables.
const DefaultStateHook = "useState"

var stateVariableFields = []Field{
	{Key: "name", Label: "Name"},
	{Key: "initialValue", Label: "Initial value"},
	{Key: "hook", Label: "Hook"},
	{Key: "purpose", Label: "Purpose"},
	{Key: "transitions", Label: "Transitions"},
}

func (v *StateVariable) text() map[string]*string {
	return map[string]*string{
		"name":         &v.Name,
		"initialValue": &v.InitialValue,
		"hook":         &v.Hook,
		"purpose":      &v.Purpose,
		"transitions":  &v.Transitions,
	}
}

// RecordID implements Record.
func (v StateVariable) RecordID() string { return v.ID }

// Fields implements FieldSet.
func (StateVariable) Fields() []Field { return stateVariableFields }

// FieldValue implements FieldSet.
func (v StateVariable) FieldValue(key string) string { return textValue(v.text(), key) }

// WithField returns a copy of v with one field changed.
func (v StateVariable) WithField(key, value string) (StateVariable, error) {
	err := setText("state variable", v.text(), key, value)
	return v, err
}

// Label is a one-line summary for lists.
func (v StateVariable) Label() string {
	return fmt.Sprintf("%s via %s", orDash(v.Name), orDash(v.Hook))
}

// SideEffect documents one effect hook.
// Dependencies is the comma separated dependency list as typed.
type SideEffect struct {
	ID           string `json:"id" yaml:"id"`
	Description  string `json:"description" yaml:"description"`
	Dependencies string `json:"dependencies" yaml:"dependencies"`
	Cleanup      string `json:"cleanup" yaml:"cleanup"`
}

var sideEffectFields = []Field{
	{Key: "description", Label: "Description"},
	{Key: "dependencies", Label: "Dependencies"},
	{Key: "cleanup", Label: "Cleanup"},
}

func (e *SideEffect) text() map[string]*string {
	return map[string]*string{
		"description":  &e.Description,
		"dependencies": &e.Dependencies,
		"cleanup":      &e.Cleanup,
	}
}

// RecordID implements Record.
func (e SideEffect) RecordID() string { return e.ID }

// Fields implements FieldSet.
func (SideEffect) Fields() []Field { return sideEffectFields }

// FieldValue implements FieldSet.
func (e SideEffect) FieldValue(key string) string { return textValue(e.text(), key) }

// WithField returns a copy of e with one field changed.
func (e SideEffect) WithField(key, value string) (SideEffect, error) {
	err := setText("effect", e.text(), key, value)
	return e, err
}

// Label is a one-line summary for lists.
func (e SideEffect) Label() string {
	return fmt.Sprintf("%s [%s]", orDash(e.Description), e.Dependencies)
}

// UserInteraction is one supported user interaction.
type UserInteraction struct {
	ID          string `json:"id" yaml:"id"`
	Description string `json:"description" yaml:"description"`
}

var userInteractionFields = []Field{
	{Key: "description", Label: "Description"},
}

func (u *UserInteraction) text() map[string]*string {
	return map[string]*string{"description": &u.Description}
}

// RecordID implements Record.
func (u UserInteraction) RecordID() string { return u.ID }

// Fields implements FieldSet.
func (UserInteraction) Fields() []Field { return userInteractionFields }

// FieldValue implements FieldSet.
func (u UserInteraction) FieldValue(key string) string { return textValue(u.text(), key) }

// WithField returns a copy of u with one field changed.
func (u UserInteraction) WithField(key, value string) (UserInteraction, error) {
	err := setText("interaction", u.text(), key, value)
	return u, err
}

// Label is a one-line summary for lists.
func (u UserInteraction) Label() string { return orDash(u.Description) }

// EventEmitter is a callback prop the component invokes.
type EventEmitter struct {
	ID        string `json:"id" yaml:"id"`
	Name      string `json:"name" yaml:"name"`
	Arguments string `json:"arguments" yaml:"arguments"`
	Trigger   string `json:"trigger" yaml:"trigger"`
}

var eventEmitterFields = []Field{
	{Key: "name", Label: "Name"},
	{Key: "arguments", Label: "Arguments"},
	{Key: "trigger", Label: "Triggered when"},
}

func (e *EventEmitter) text() map[string]*string {
	return map[string]*string{
		"name":      &e.Name,
		"arguments": &e.Arguments,
		"trigger":   &e.Trigger,
	}
}

// RecordID implements Record.
func (e EventEmitter) RecordID() string { return e.ID }

// Fields implements FieldSet.
func (EventEmitter) Fields() []Field { return eventEmitterFields }

// FieldValue implements FieldSet.
func (e EventEmitter) FieldValue(key string) string { return textValue(e.text(), key) }

// WithField returns a copy of e with one field changed.
func (e EventEmitter) WithField(key, value string) (EventEmitter, error) {
	err := setText("emitter", e.text(), key, value)
	return e, err
}

// Label is a one-line summary for lists.
func (e EventEmitter) Label() string {
	return fmt.Sprintf("%s(%s)", orDash(e.Name), e.Arguments)
}

// ConditionalRender describes something rendered only under a condition.
type ConditionalRender struct {
	ID          string `json:"id" yaml:"id"`
	Description string `json:"description" yaml:"description"`
	Condition   string `json:"condition" yaml:"condition"`
}

var conditionalRenderFields = []Field{
	{Key: "description", Label: "Renders"},
	{Key: "condition", Label: "When"},
}

func (c *ConditionalRender) text() map[string]*string {
	return map[string]*string{
		"description": &c.Description,
		"condition":   &c.Condition,
	}
}

// RecordID implements Record.
func (c ConditionalRender) RecordID() string { return c.ID }

// Fields implements FieldSet.
func (ConditionalRender) Fields() []Field { return conditionalRenderFields }

// FieldValue implements FieldSet.
func (c ConditionalRender) FieldValue(key string) string { return textValue(c.text(), key) }

// WithField returns a copy of c with one field changed.
func (c ConditionalRender) WithField(key, value string) (ConditionalRender, error) {
	err := setText("conditional render", c.text(), key, value)
	return c, err
}

// Label is a one-line summary for lists.
func (c ConditionalRender) Label() string {
	return fmt.Sprintf("%s when %s", orDash(c.Description), orDash(c.Condition))
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
