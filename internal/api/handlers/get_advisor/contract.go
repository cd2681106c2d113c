package get_advisor

import (
	"context"

	"github.com/m04kA/SMC-ConsultationService/internal/domain"
	"github.com/m04kA/SMC-ConsultationService/internal/service/advisors/models"
)

type AdvisorService interface {
	GetProfile(ctx context.Context, actor domain.Actor, advisorID int64) (*models.AdvisorResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
