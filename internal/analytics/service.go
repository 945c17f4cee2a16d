// Copyright (c) 2026 Mixlist. All rights reserved.
// Author: dev@mixlist.fm

package analytics

import (
	"context"
	"log/slog"
)

type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

func (service *Service) Dashboard(context context.Context) (*Dashboard, error) {
	return service.repo.Dashboard(context)
}
