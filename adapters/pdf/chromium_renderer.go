package pdf

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"io"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"go.uber.org/zap"

	"github.com/Yeralkhan06/MyProfile3/internal/domain/resume"
	"github.com/Yeralkhan06/MyProfile3/pkg/logger"
)

const renderTimeout = 30 * time.Second

var resumeTemplate = template.Must(template.New("resume").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
@page { size: A4; margin: 20mm; }
body { font-family: "DejaVu Sans", "Noto Sans", Arial, sans-serif; font-size: 12pt; color: #222; }
header { text-align: center; margin-bottom: 8mm; }
h1 { font-size: 20pt; margin: 0 0 2mm; }
.contact { font-size: 10pt; margin: 0; }
h2 { font-size: 16pt; margin: 6mm 0 2mm; }
.entry { margin-bottom: 4mm; }
.entry h3 { font-size: 12pt; margin: 0; }
.meta { font-size: 10pt; margin: 0; color: #555; }
.body { font-size: 10pt; margin: 1mm 0 0; white-space: pre-line; }
</style>
</head>
<body>
<header>
<h1>{{.Title}}</h1>
{{range .Contacts}}<p class="contact">{{.}}</p>
{{end}}</header>
{{range .Sections}}<section class="{{.Kind}}">
<h2>{{.Heading}}</h2>
{{if .Paragraph}}<p>{{.Paragraph}}</p>
{{end}}{{range .Entries}}<div class="entry">
<h3>{{.Title}}</h3>
{{if .Subtitle}}<p class="meta">{{.Subtitle}}</p>{{end}}
{{if .Period}}<p class="meta">{{.Period}}</p>{{end}}
{{if .Body}}<p class="body">{{.Body}}</p>{{end}}
</div>
{{end}}</section>
{{end}}</body>
</html>
`))

type ChromiumRenderer struct {
	logger logger.Logger
}

func NewChromiumRenderer(log logger.Logger) *ChromiumRenderer {
	return &ChromiumRenderer{logger: log}
}

// RenderHTML produces the print page that Render hands to Chromium.
func RenderHTML(doc resume.Document) (string, error) {
	var buf bytes.Buffer
	if err := resumeTemplate.Execute(&buf, doc); err != nil {
		return "", fmt.Errorf("render resume html: %w", err)
	}
	return buf.String(), nil
}

func (r *ChromiumRenderer) Render(ctx context.Context, doc resume.Document) ([]byte, error) {
	html, err := RenderHTML(doc)
	if err != nil {
		return nil, err
	}

	launch := launcher.New().
		Headless(true).
		NoSandbox(true)
	if path, ok := launcher.LookPath(); ok {
		launch = launch.Bin(path)
	}

	browserURL, err := launch.Launch()
	if err != nil {
		return nil, fmt.Errorf("launch chromium: %w", err)
	}
	defer launch.Cleanup()

	browser := rod.New().Context(ctx).ControlURL(browserURL)
	if err := browser.Connect(); err != nil {
		return nil, fmt.Errorf("connect browser: %w", err)
	}
	defer func() {
		_ = browser.Close()
	}()

	page, err := browser.Timeout(renderTimeout).Page(proto.TargetCreateTarget{})
	if err != nil {
		return nil, fmt.Errorf("create page: %w", err)
	}
	defer func() {
		_ = page.Close()
	}()

	page = page.Timeout(renderTimeout)
	if err := page.SetDocumentContent(html); err != nil {
		return nil, fmt.Errorf("set document content: %w", err)
	}
	if err := page.WaitLoad(); err != nil {
		return nil, fmt.Errorf("wait load: %w", err)
	}

	reader, err := page.PDF(&proto.PagePrintToPDF{
		PrintBackground:   true,
		PreferCSSPageSize: true,
	})
	if err != nil {
		return nil, fmt.Errorf("export pdf: %w", err)
	}
	defer func() {
		_ = reader.Close()
	}()

	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("read pdf bytes: %w", err)
	}
	r.logger.Debug("Resume printed by chromium", zap.Int("bytes", len(data)))
	return data, nil
}
