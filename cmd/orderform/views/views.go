package views

import (
	"bytes"
	"embed"
	"html/template"
	"io"
)

//go:embed templates/*.html
var templatesFS embed.FS

var orderFormTemplate = template.Must(template.ParseFS(templatesFS, "templates/order-form.html"))

// OrderFormPage is everything the order form shows besides static markup.
type OrderFormPage struct {
	Action  string
	Success string
	Errors  map[string][]string
	Old     map[string]string
}

// Error returns the first message for field.
func (p OrderFormPage) Error(field string) string {
	if msgs := p.Errors[field]; len(msgs) > 0 {
		return msgs[0]
	}
	return ""
}

func (p OrderFormPage) OldValue(field string) string {
	return p.Old[field]
}

// RenderOrderForm writes the page only if the template executes completely.
func RenderOrderForm(w io.Writer, page OrderFormPage) error {
	var buf bytes.Buffer
	if err := orderFormTemplate.Execute(&buf, page); err != nil {
		return err
	}
	_, err := buf.WriteTo(w)
	return err
}
