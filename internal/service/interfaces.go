// Package service defines the interfaces for all application services.
package service

import (
	"context"

	"github.com/Veraticus/ecosort/internal/model"
)

// Classifier submits a staged input to the classification service.
type Classifier interface {
	ClassifyImage(ctx context.Context, image model.Image) (model.Result, error)
	ClassifyText(ctx context.Context, text string) (model.Result, error)
}

// AnalyticsFetcher retrieves the raw analytics table for a date range.
type AnalyticsFetcher interface {
	GetAnalytics(ctx context.Context, dateRange model.DateRange) (model.Snapshot, error)
}

// TipsProvider returns disposal guidance for a category.
type TipsProvider interface {
	GetTips(ctx context.Context, category model.Category) (model.Tips, error)
}

// Service is the full contract of the classification service.
type Service interface {
	Classifier
	AnalyticsFetcher
	TipsProvider
	Info(ctx context.Context) (model.ServiceInfo, error)
}
