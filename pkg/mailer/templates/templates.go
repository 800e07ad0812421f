package templates

import (
	"bytes"
	"embed"
	"fmt"
	texttpl "text/template"
)

//go:embed *.tmpl
var FS embed.FS

var tmpl = texttpl.Must(texttpl.ParseFS(FS, "*.tmpl"))

var subjects = map[string]string{
	"reset_password":   "LearnFromMe Password Reset",
	"password_changed": "Your LearnFromMe password has been changed",
}

// Render produces the subject and plain-text body for a named template.
func Render(name string, data map[string]any) (string, string, error) {
	subject, ok := subjects[name]
	if !ok {
		return "", "", fmt.Errorf("unknown email template %q", name)
	}
	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, name+".tmpl", data); err != nil {
		return "", "", err
	}
	return subject, buf.String(), nil
}
