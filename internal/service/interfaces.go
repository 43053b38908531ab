package service

import (
	"context"

	"github.com/Caddickbrown/Plannr/internal/contract"
)

type PlanService interface {
	Run(ctx context.Context, req contract.RunRequest) (*contract.RunResponse, error)
}

type SnapshotService interface {
	Import(ctx context.Context, req contract.ImportRequest) (*contract.ImportSummary, error)
	Info(ctx context.Context) ([]contract.SnapshotInfo, error)
}
