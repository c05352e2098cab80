package pdf

import (
	"bytes"
	"context"
	_ "embed"
	"os"
	"sync"

	"github.com/go-pdf/fpdf"
	"go.uber.org/zap"

	"github.com/Yeralkhan06/MyProfile3/internal/domain/resume"
	"github.com/Yeralkhan06/MyProfile3/pkg/logger"
)

const (
	customFamily  = "ResumeCustom"
	defaultFamily = "DejaVuSansCondensed"

	pageMargin  = 20.0
	lineHeight  = 6.0
	titleSize   = 20.0
	headingSize = 16.0
	bodySize    = 12.0
	smallSize   = 10.0
)

//go:embed fonts/DejaVuSansCondensed.ttf
var defaultRegular []byte

//go:embed fonts/DejaVuSansCondensed-Bold.ttf
var defaultBold []byte

type FPDFRenderer struct {
	fontPath string
	compress bool
	logger   logger.Logger
	warnOnce sync.Once
}

// NewFPDFRenderer uses the TrueType font at fontPath when it is readable and the
// embedded DejaVu Sans otherwise. Both cover Cyrillic.
func NewFPDFRenderer(fontPath string, log logger.Logger) *FPDFRenderer {
	return &FPDFRenderer{fontPath: fontPath, compress: true, logger: log}
}

type fontSet struct {
	family    string
	boldStyle string
}

func (r *FPDFRenderer) fonts(pdf *fpdf.Fpdf) fontSet {
	if r.fontPath != "" {
		custom, err := os.ReadFile(r.fontPath)
		if err == nil {
			pdf.AddUTF8FontFromBytes(customFamily, "", custom)
			return fontSet{family: customFamily}
		}
		r.warnOnce.Do(func() {
			r.logger.Warn("Resume font not readable, using embedded DejaVu Sans", zap.String("path", r.fontPath), zap.Error(err))
		})
	}
	pdf.AddUTF8FontFromBytes(defaultFamily, "", defaultRegular)
	pdf.AddUTF8FontFromBytes(defaultFamily, "B", defaultBold)
	return fontSet{family: defaultFamily, boldStyle: "B"}
}

func (r *FPDFRenderer) Render(_ context.Context, doc resume.Document) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(pageMargin, pageMargin, pageMargin)
	pdf.SetAutoPageBreak(true, pageMargin)
	pdf.SetCompression(r.compress)
	pdf.SetTitle(doc.Title, true)
	fs := r.fonts(pdf)
	pdf.AddPage()

	pdf.SetFont(fs.family, fs.boldStyle, titleSize)
	pdf.MultiCell(0, 10, doc.Title, "", "C", false)
	pdf.Ln(2)

	pdf.SetFont(fs.family, "", smallSize)
	for _, c := range doc.Contacts {
		pdf.MultiCell(0, 5, c, "", "C", false)
	}
	pdf.Ln(8)

	for _, s := range doc.Sections {
		pdf.SetFont(fs.family, fs.boldStyle, headingSize)
		pdf.MultiCell(0, 8, s.Heading, "", "L", false)
		pdf.Ln(2)

		if s.Paragraph != "" {
			pdf.SetFont(fs.family, "", bodySize)
			pdf.MultiCell(0, lineHeight, s.Paragraph, "", "L", false)
		}

		for _, e := range s.Entries {
			pdf.SetFont(fs.family, fs.boldStyle, bodySize)
			pdf.MultiCell(0, lineHeight, e.Title, "", "L", false)
			pdf.SetFont(fs.family, "", smallSize)
			if e.Subtitle != "" {
				pdf.MultiCell(0, 5, e.Subtitle, "", "L", false)
			}
			if e.Period != "" {
				pdf.MultiCell(0, 5, e.Period, "", "L", false)
			}
			if e.Body != "" {
				pdf.Ln(1)
				pdf.MultiCell(0, 5, e.Body, "", "L", false)
			}
			pdf.Ln(4)
		}
		pdf.Ln(4)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
