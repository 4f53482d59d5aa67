// Package report renders dream meanings as markdown and PDF documents.
package report

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/at-ishikawa/dreamer/internal/assets"
	"github.com/at-ishikawa/dreamer/internal/meaning"
)

// Writer renders reports with a template, falling back to the embedded one.
type Writer struct {
	templatePath    string
	outputDirectory string
	now             func() time.Time
}

// NewWriter creates a Writer. templatePath may be empty.
func NewWriter(templatePath, outputDirectory string) *Writer {
	return &Writer{
		templatePath:    templatePath,
		outputDirectory: outputDirectory,
		now:             time.Now,
	}
}

// NewTemplateData builds the data of a report for a dream.
func NewTemplateData(title, description string, result meaning.DreamMeanings, generatedAt time.Time) assets.ReportTemplate {
	meanings := make([]assets.ReportMeaning, 0, len(result.Meanings))
	for _, entry := range result.Meanings {
		meanings = append(meanings, assets.ReportMeaning{
			Word:    entry.Word,
			Meaning: entry.Meaning,
			Source:  string(entry.Source),
		})
	}
	return assets.ReportTemplate{
		Title:       strings.TrimSpace(title),
		Description: strings.TrimSpace(description),
		Language:    result.Language,
		Keywords:    result.Keywords,
		Meanings:    meanings,
		GeneratedAt: generatedAt,
	}
}

// Render returns the markdown of a report.
func (w *Writer) Render(title, description string, result meaning.DreamMeanings) ([]byte, error) {
	tmpl, err := assets.ParseReportTemplate(w.templatePath)
	if err != nil {
		return nil, fmt.Errorf("assets.ParseReportTemplate > %w", err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, NewTemplateData(title, description, result, w.now())); err != nil {
		return nil, fmt.Errorf("tmpl.Execute > %w", err)
	}
	return buf.Bytes(), nil
}

// WriteMarkdown renders a report to fileName. A relative fileName is placed
// under the output directory. It returns the written path.
func (w *Writer) WriteMarkdown(fileName, title, description string, result meaning.DreamMeanings) (string, error) {
	if filepath.Ext(fileName) != ".md" {
		fileName += ".md"
	}
	path := fileName
	if !filepath.IsAbs(path) && w.outputDirectory != "" {
		path = filepath.Join(w.outputDirectory, fileName)
	}

	content, err := w.Render(title, description, result)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", fmt.Errorf("os.MkdirAll(%s) > %w", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, content, 0644); err != nil {
		return "", fmt.Errorf("os.WriteFile(%s) > %w", path, err)
	}
	return path, nil
}
