package render

import (
	"bufio"
	"regexp"
	"strings"

	"github.com/jung-kurt/gofpdf"
)

var mdLinkRe = regexp.MustCompile(`\[([^\]]+)\]\(([^)]+)\)`)

// WritePDF renders Markdown text to a minimal PDF, preserving paragraphs
// and turning [text](url) links into clickable PDF links. It does not
// attempt full Markdown layout.
func WritePDF(markdown string, outPath string) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetFont("Helvetica", "", 11)
	pdf.AddPage()

	// Render line by line to avoid huge paragraphs.
	scanner := bufio.NewScanner(strings.NewReader(markdown))
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for scanner.Scan() {
		s := strings.TrimSpace(scanner.Text())
		if s == "" {
			pdf.Ln(5)
			continue
		}
		if strings.HasPrefix(s, "#") {
			i := 0
			for i < len(s) && s[i] == '#' {
				i++
			}
			text := strings.TrimSpace(s[i:])
			if text == "" {
				continue
			}
			size := 14.0
			if i >= 2 {
				size = 12.0
			}
			pdf.SetFont("Helvetica", "B", size)
			pdf.CellFormat(0, 8, text, "", 1, "L", false, 0, "")
			pdf.SetFont("Helvetica", "", 11)
			continue
		}
		writeLine(pdf, s)
	}
	return pdf.OutputFileAndClose(outPath)
}

// writeLine emits one body line, splitting out Markdown links so the link
// text stays inline while becoming clickable.
func writeLine(pdf *gofpdf.Fpdf, s string) {
	parts := mdLinkRe.FindAllStringSubmatchIndex(s, -1)
	if len(parts) == 0 {
		pdf.MultiCell(0, 5, s, "", "L", false)
		return
	}
	pos := 0
	for _, m := range parts {
		if m[0] > pos {
			pdf.Write(5, s[pos:m[0]])
		}
		text := s[m[2]:m[3]]
		url := s[m[4]:m[5]]
		if strings.HasPrefix(url, "#") {
			pdf.Write(5, text)
		} else {
			pdf.WriteLinkString(5, text, url)
		}
		pos = m[1]
	}
	if pos < len(s) {
		pdf.Write(5, s[pos:])
	}
	pdf.Ln(6)
}
