package email

import (
	"bytes"
	"fmt"
	"html/template"
	"path/filepath"
	"sync"
)

// Built-in fallbacks used when a template file is not present on disk.
var builtinTemplates = map[string]string{
	"verification": `<p>Hi {{.Name}},</p>
<p>Welcome to Skillport. Confirm your email to activate your account:</p>
<p><a href="{{.Link}}">Verify email</a></p>`,
	"password_reset": `<p>Hi {{.Name}},</p>
<p>A password reset was requested for your account. The link is valid for one hour:</p>
<p><a href="{{.Link}}">Reset password</a></p>
<p>If you did not request this, ignore this message.</p>`,
	"enrollment": `<p>Hi {{.Name}},</p>
<p>Your payment was confirmed and you are now enrolled in:</p>
<ul>{{range .Courses}}<li>{{.}}</li>{{end}}</ul>`,
	"lesson_reviewed": `<p>Hi {{.Name}},</p>
<p>Your lesson "{{.LessonTitle}}" was {{.Outcome}}.</p>
{{if .Note}}<p>Reviewer note: {{.Note}}</p>{{end}}`,
}

// TemplateRenderer renders HTML email bodies from a directory of
// templates, falling back to built-ins.
type TemplateRenderer struct {
	dir string

	mu    sync.RWMutex
	cache map[string]*template.Template
}

func NewTemplateRenderer(dir string) *TemplateRenderer {
	return &TemplateRenderer{
		dir:   dir,
		cache: make(map[string]*template.Template),
	}
}

// Render renders the named template with data.
func (r *TemplateRenderer) Render(name string, data TemplateData) (string, error) {
	tmpl, err := r.lookup(name)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render template %q: %w", name, err)
	}
	return buf.String(), nil
}

func (r *TemplateRenderer) lookup(name string) (*template.Template, error) {
	r.mu.RLock()
	tmpl, ok := r.cache[name]
	r.mu.RUnlock()
	if ok {
		return tmpl, nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if tmpl, ok := r.cache[name]; ok {
		return tmpl, nil
	}

	if r.dir != "" {
		path := filepath.Join(r.dir, name+".html")
		if tmpl, err := template.ParseFiles(path); err == nil {
			r.cache[name] = tmpl
			return tmpl, nil
		}
	}

	src, ok := builtinTemplates[name]
	if !ok {
		return nil, fmt.Errorf("unknown email template: %s", name)
	}

	tmpl, err := template.New(name).Parse(src)
	if err != nil {
		return nil, err
	}
	r.cache[name] = tmpl
	return tmpl, nil
}
