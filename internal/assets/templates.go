package assets

import (
	_ "embed"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"text/template"
	"time"
)

//go:embed templates/dream-report.md.go.tmpl
var fallbackDreamReportTemplate string

const dreamReportTemplateName = "dream-report.md.go.tmpl"

// ReportTemplate is the data passed to a dream report template.
type ReportTemplate struct {
	Title       string
	Description string
	Language    string
	Keywords    []string
	Meanings    []ReportMeaning
	GeneratedAt time.Time
}

// ReportMeaning is a single keyword section in a dream report.
type ReportMeaning struct {
	Word    string
	Meaning string
	Source  string
}

// ParseReportTemplate returns the template at templatePath, or the embedded
// report template when the path is empty, missing, or cannot be parsed.
func ParseReportTemplate(templatePath string) (*template.Template, error) {
	return parseTemplateWithFallback(templatePath, dreamReportTemplateName, fallbackDreamReportTemplate)
}

func parseTemplateWithFallback(templatePath, fallbackName, fallbackTemplate string) (*template.Template, error) {
	funcMap := template.FuncMap{
		"join": strings.Join,
	}

	if templatePath != "" {
		if _, err := os.Stat(templatePath); err == nil {
			fileName := filepath.Base(templatePath)
			tmpl, err := template.New(fileName).
				Funcs(funcMap).
				ParseFiles(templatePath)
			if err == nil {
				return tmpl, nil
			}
			slog.Default().Warn("failed to parse a report template, using the embedded one",
				slog.String("templatePath", templatePath),
				slog.Any("error", err),
			)
		}
	}

	tmpl, err := template.New(fallbackName).
		Funcs(funcMap).
		Parse(fallbackTemplate)
	if err != nil {
		return nil, fmt.Errorf("failed to parse embedded template: %w", err)
	}
	return tmpl, nil
}
