package report

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mandolyte/mdtopdf"
)

// ConvertToPDF writes a PDF next to the markdown report and returns its absolute path.
func ConvertToPDF(markdownPath string) (string, error) {
	if filepath.Ext(markdownPath) != ".md" {
		return "", fmt.Errorf("report must be a .md file: %s", markdownPath)
	}

	content, err := os.ReadFile(markdownPath)
	if err != nil {
		return "", fmt.Errorf("os.ReadFile(%s) > %w", markdownPath, err)
	}

	pdfPath := strings.TrimSuffix(markdownPath, ".md") + ".pdf"
	renderer := mdtopdf.NewPdfRenderer("P", "A4", pdfPath, "", nil, mdtopdf.LIGHT)
	if err := renderer.Process(content); err != nil {
		return "", fmt.Errorf("renderer.Process(%s) > %w", markdownPath, err)
	}

	if absPath, err := filepath.Abs(pdfPath); err == nil {
		return absPath, nil
	}
	return pdfPath, nil
}
