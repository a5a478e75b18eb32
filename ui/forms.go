package ui

import (
	"fmt"
	"html/template"
	"strings"
)

// FieldType enumerates the supported form field kinds
type FieldType string

const (
	FieldText     FieldType = "text"
	FieldEmail    FieldType = "email"
	FieldPassword FieldType = "password"
	FieldSelect   FieldType = "select"
	FieldTextarea FieldType = "textarea"
	FieldDate     FieldType = "date"
)

// SelectOption is one entry of a select field
type SelectOption struct {
	Value    string
	Label    string
	Selected bool
}

// FormField is the view model for a labelled form input. Rendering goes
// through html/template so values are escaped, never concatenated.
type FormField struct {
	Type        FieldType
	Name        string
	Label       string
	Required    bool
	Placeholder string
	Value       string
	Options     []SelectOption
	Rows        int
}

// Button is the view model for an action button
type Button struct {
	Text     string
	Kind     string // primary, secondary, outline, danger
	ID       string
	Disabled bool
}

var inputFieldTmpl = template.Must(template.New("input").Parse(`<div class="form-group">
  <label for="{{.FieldID}}" class="form-label">{{.Label}}</label>
  <input type="{{.Type}}" id="{{.FieldID}}" name="{{.Name}}" class="form-input"{{if .Required}} required{{end}}{{if .Placeholder}} placeholder="{{.Placeholder}}"{{end}}{{if .Value}} value="{{.Value}}"{{end}}>
</div>`))

var selectFieldTmpl = template.Must(template.New("select").Parse(`<div class="form-group">
  <label for="{{.FieldID}}" class="form-label">{{.Label}}</label>
  <select id="{{.FieldID}}" name="{{.Name}}" class="form-select"{{if .Required}} required{{end}}>
{{- range .Options}}
    <option value="{{.Value}}"{{if .Selected}} selected{{end}}>{{.Label}}</option>
{{- end}}
  </select>
</div>`))

var textareaFieldTmpl = template.Must(template.New("textarea").Parse(`<div class="form-group">
  <label for="{{.FieldID}}" class="form-label">{{.Label}}</label>
  <textarea id="{{.FieldID}}" name="{{.Name}}" class="form-textarea" rows="{{.Rows}}"{{if .Required}} required{{end}}{{if .Placeholder}} placeholder="{{.Placeholder}}"{{end}}>{{.Value}}</textarea>
</div>`))

var buttonTmpl = template.Must(template.New("button").Parse(`<button class="btn btn-{{.Kind}}"{{if .ID}} id="{{.ID}}"{{end}}{{if .Disabled}} disabled{{end}}>{{.Text}}</button>`))

// FieldID returns the stable DOM id for the field
func (f FormField) FieldID() string {
	return "field-" + f.Name
}

// Render produces the field's HTML fragment
func (f FormField) Render() (template.HTML, error) {
	data := struct {
		FormField
		FieldID string
	}{f, f.FieldID()}

	var tmpl *template.Template
	switch f.Type {
	case FieldSelect:
		tmpl = selectFieldTmpl
	case FieldTextarea:
		if data.Rows == 0 {
			data.Rows = 4
		}
		tmpl = textareaFieldTmpl
	case FieldText, FieldEmail, FieldPassword, FieldDate:
		tmpl = inputFieldTmpl
	default:
		return "", fmt.Errorf("unsupported form field type %q", f.Type)
	}

	var sb strings.Builder
	if err := tmpl.Execute(&sb, data); err != nil {
		return "", fmt.Errorf("failed to render form field %q: %w", f.Name, err)
	}
	return template.HTML(sb.String()), nil
}

// Render produces the button's HTML fragment
func (b Button) Render() (template.HTML, error) {
	if b.Kind == "" {
		b.Kind = "primary"
	}
	var sb strings.Builder
	if err := buttonTmpl.Execute(&sb, b); err != nil {
		return "", fmt.Errorf("failed to render button: %w", err)
	}
	return template.HTML(sb.String()), nil
}
