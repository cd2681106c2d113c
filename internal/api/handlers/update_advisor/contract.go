package update_advisor

import (
	"context"

	"github.com/m04kA/SMC-ConsultationService/internal/domain"
	"github.com/m04kA/SMC-ConsultationService/internal/service/advisors/models"
)

type AdvisorService interface {
	UpdateProfile(ctx context.Context, actor domain.Actor, advisorID int64, req *models.UpdateProfileRequest) (*models.AdvisorResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
