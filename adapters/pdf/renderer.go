// Package pdf renders résumé documents. Two engines exist: a procedural fpdf
// layout (default, no external processes) and a headless Chromium print of an
// HTML template.
package pdf

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/Yeralkhan06/MyProfile3/internal/application/service"
	"github.com/Yeralkhan06/MyProfile3/internal/config"
	"github.com/Yeralkhan06/MyProfile3/pkg/logger"
)

const (
	EngineFPDF     = "fpdf"
	EngineChromium = "chromium"
)

func NewRenderer(cfg config.Config, log logger.Logger) (service.ResumeRenderer, error) {
	switch cfg.Resume.Renderer {
	case "", EngineFPDF:
		log.Info("Resume renderer selected", zap.String("engine", EngineFPDF))
		return NewFPDFRenderer(cfg.Resume.FontPath, log), nil
	case EngineChromium:
		log.Info("Resume renderer selected", zap.String("engine", EngineChromium))
		return NewChromiumRenderer(log), nil
	default:
		return nil, fmt.Errorf("unknown resume renderer %q", cfg.Resume.Renderer)
	}
}
