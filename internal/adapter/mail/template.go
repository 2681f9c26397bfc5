package mail

import (
	"bytes"
	"html/template"
	"strings"

	"github.com/heartmarshall/ireporter-backend/internal/domain"
)

var statusTmpl = template.Must(template.New("status").Parse(`<!DOCTYPE html>
<html>
<body style="font-family:Arial,sans-serif;color:#333;">
  <h2>{{.Heading}}</h2>
  <p>Hello {{.Name}},</p>
  <p>The status of your {{.Kind}} <strong>{{.Title}}</strong> has changed
     from <em>{{.OldStatus}}</em> to <strong>{{.NewStatus}}</strong>.</p>
  <p>Record ID: {{.ReportID}}</p>
  <p style="color:#888;font-size:12px;">You are receiving this email because you filed this record on iReporter.</p>
</body>
</html>`))

type statusView struct {
	Heading   string
	Name      string
	Kind      string
	Title     string
	OldStatus string
	NewStatus string
	ReportID  int64
}

// RenderStatusEmail returns the subject and HTML body for a status change.
func RenderStatusEmail(name string, change domain.StatusChange) (string, string, error) {
	subject := change.Kind.DisplayName() + " Status Updated"
	if name == "" {
		name = "there"
	}

	var buf bytes.Buffer
	err := statusTmpl.Execute(&buf, statusView{
		Heading:   subject,
		Name:      name,
		Kind:      strings.ToLower(change.Kind.DisplayName()),
		Title:     change.Title,
		OldStatus: humanStatus(change.OldStatus),
		NewStatus: humanStatus(change.NewStatus),
		ReportID:  change.ReportID,
	})
	if err != nil {
		return "", "", err
	}
	return subject, buf.String(), nil
}

func humanStatus(s domain.ReportStatus) string {
	return strings.ReplaceAll(s.String(), "-", " ")
}
