package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/jakechorley/workshop-groups/internal/config"
	"github.com/jakechorley/workshop-groups/pkg/core/registry"
)

// ListParticipantsResult contains the parsed survey sorted for display
type ListParticipantsResult struct {
	GroupNames []string
	Registry   *registry.Registry
}

// ListParticipants fetches survey responses and sorts them by cohort then name
func ListParticipants(
	ctx context.Context,
	source ResponseSource,
	cfg *config.Config,
	logger *zap.Logger,
) (*ListParticipantsResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	logger.Debug("Fetching survey responses")
	responses, err := source.ListResponses(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch survey responses: %w", err)
	}

	reg := registry.New(responses.Participants...)
	reg.SortByCohortThenName()
	logger.Debug("Found participants", zap.Int("count", reg.Size()), zap.Int("groups", len(responses.GroupNames)))

	return &ListParticipantsResult{
		GroupNames: responses.GroupNames,
		Registry:   reg,
	}, nil
}
