package receipt

import (
	"context"
	"log/slog"

	"github.com/finance-assistant/backend/internal/application/adapter"
)

// CheckImageQualityOutput represents the OCR suitability verdict for an image.
type CheckImageQualityOutput struct {
	SuitableForOCR  bool
	Quality         string
	Problems        []string
	Recommendations []string
	Success         bool
	Message         string
}

// CheckImageQualityUseCase asks the oracle whether an image is good enough
// for receipt OCR before the heavier extraction pipeline runs.
type CheckImageQualityUseCase struct {
	oracle adapter.ExtractionOracle
}

// NewCheckImageQualityUseCase creates a new CheckImageQualityUseCase instance.
func NewCheckImageQualityUseCase(oracle adapter.ExtractionOracle) *CheckImageQualityUseCase {
	return &CheckImageQualityUseCase{oracle: oracle}
}

// Execute evaluates the image. Oracle failures yield a pessimistic verdict
// with Success=false instead of an error.
func (uc *CheckImageQualityUseCase) Execute(ctx context.Context, imageURL string) (*CheckImageQualityOutput, error) {
	report, err := uc.oracle.AssessImageQuality(ctx, imageURL)
	if err != nil {
		slog.Warn("Image quality assessment failed", "error", err)
		return &CheckImageQualityOutput{
			SuitableForOCR:  false,
			Quality:         "Ruim",
			Problems:        []string{"Erro na análise da imagem"},
			Recommendations: []string{"Tente novamente ou use uma imagem diferente"},
			Success:         false,
			Message:         "Erro ao verificar qualidade: " + err.Error(),
		}, nil
	}

	return &CheckImageQualityOutput{
		SuitableForOCR:  report.SuitableForOCR,
		Quality:         report.Quality,
		Problems:        report.Problems,
		Recommendations: report.Recommendations,
		Success:         true,
		Message:         "Avaliação de qualidade concluída",
	}, nil
}
