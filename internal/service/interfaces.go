package service

import (
	"context"

	"github.com/alexanderramin/timesheet/internal/areas"
	"github.com/alexanderramin/timesheet/internal/contract"
)

type ConvertService interface {
	Convert(ctx context.Context, req contract.ConvertRequest) (*contract.ConvertResponse, error)
	ParseAreas(ctx context.Context, text string) (*areas.Index, error)
}
