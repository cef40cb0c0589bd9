package mailer

import (
	"bytes"
	"fmt"
	"html/template"
)

var htmlTemplates = template.Must(template.New("emails").Parse(`
{{define "welcome"}}
<h2>Welcome, {{.Name}}!</h2>
<p>Your account is ready. Complete your profile to get the most out of it.</p>
{{end}}

{{define "password_changed"}}
<h2>Hi {{.Name}},</h2>
<p>Your password was changed at {{.Time}}. If this wasn't you, reset your password immediately.</p>
{{end}}
`))

var subjects = map[string]string{
	TemplateWelcome:         "Welcome aboard",
	TemplatePasswordChanged: "Your password was changed",
}

// Render returns subject and HTML body for a named template.
func Render(name string, data map[string]any) (subject, html string, err error) {
	subject, ok := subjects[name]
	if !ok {
		return "", "", fmt.Errorf("unknown email template %q", name)
	}
	var buf bytes.Buffer
	if err := htmlTemplates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", "", err
	}
	return subject, buf.String(), nil
}
