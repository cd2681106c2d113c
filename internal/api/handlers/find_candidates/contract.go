package find_candidates

import (
	"context"

	findCandidates "github.com/m04kA/SMC-ConsultationService/internal/usecase/find_candidates"
)

type FindCandidatesUseCase interface {
	Execute(ctx context.Context, req *findCandidates.Request) (*findCandidates.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
