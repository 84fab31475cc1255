package services

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jakechorley/workshop-groups/internal/config"
	"github.com/jakechorley/workshop-groups/pkg/clients/sheetsclient"
	"github.com/jakechorley/workshop-groups/pkg/core/allocator"
	"github.com/jakechorley/workshop-groups/pkg/core/model"
	"github.com/jakechorley/workshop-groups/pkg/core/registry"
)

// ResponseSource defines where survey responses are read from
type ResponseSource interface {
	ListResponses(cfg *config.Config) (*model.SurveyResponses, error)
}

// AssignmentPublisher defines the operations needed to publish results
type AssignmentPublisher interface {
	PublishAssignments(spreadsheetID string, published *sheetsclient.PublishedAssignments) error
}

// AssignOptions controls a single AssignGroups run
type AssignOptions struct {
	// Seed fixes the processing order. A random seed is drawn when nil.
	Seed *uint64

	// DryRun skips publishing
	DryRun bool
}

// AssignGroupsResult contains the allocation results
type AssignGroupsResult struct {
	RunID      string
	Seed       uint64
	GroupNames []string
	Capacity   int
	MaxRank    int
	Registry   *registry.Registry
	Outcome    *allocator.AllocationOutcome
	TabTitle   string
	Published  bool
}

// AssignGroups reads survey responses, places participants into groups and publishes the result.
// The publisher may be nil, in which case nothing is published.
func AssignGroups(
	ctx context.Context,
	source ResponseSource,
	publisher AssignmentPublisher,
	cfg *config.Config,
	logger *zap.Logger,
	opts AssignOptions,
) (*AssignGroupsResult, error) {
	runID := uuid.New().String()
	logger = logger.With(zap.String("run_id", runID))
	logger.Debug("Starting assignGroups", zap.Bool("dry_run", opts.DryRun))

	// Step 1: Fetch responses
	logger.Debug("Fetching survey responses")
	responses, err := source.ListResponses(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch survey responses: %w", err)
	}
	logger.Debug("Found survey responses",
		zap.Int("participants", len(responses.Participants)),
		zap.Int("groups", len(responses.GroupNames)))

	reg := registry.New(responses.Participants...)

	// Step 2: Pin preassigned participants
	if err := applyPreassignments(reg, responses.GroupNames, cfg.Preassignments); err != nil {
		return nil, fmt.Errorf("failed to apply preassignments: %w", err)
	}
	logger.Debug("Applied preassignments", zap.Int("count", len(cfg.Preassignments)))

	// Step 3: Allocate
	var shuffler *allocator.SeededShuffler
	if opts.Seed != nil {
		shuffler = allocator.NewSeededShuffler(*opts.Seed)
	} else {
		shuffler = allocator.NewRandomShuffler()
	}

	maxRank := cfg.EffectiveMaxRank(len(responses.GroupNames))
	logger.Info("Allocating groups",
		zap.Int("participants", reg.Size()),
		zap.Int("capacity", cfg.GroupCapacity),
		zap.Int("max_rank", maxRank),
		zap.Uint64("seed", shuffler.Seed()))

	outcome, err := allocator.Allocate(allocator.AllocationConfig{
		Registry:   reg,
		GroupNames: responses.GroupNames,
		Capacity:   cfg.GroupCapacity,
		MaxRank:    maxRank,
		Shuffler:   shuffler,
	})
	if err != nil {
		return nil, fmt.Errorf("allocation failed: %w", err)
	}

	logger.Info("Allocation complete",
		zap.Int("placed", len(outcome.Placements)),
		zap.Int("preassigned", len(outcome.Preassigned)),
		zap.Int("unassigned", len(outcome.Unassigned)),
		zap.Bool("success", outcome.Success))
	for _, verr := range outcome.ValidationErrors {
		logger.Warn("Validation error", zap.String("check", verr.CheckName), zap.String("group", verr.GroupName), zap.String("description", verr.Description))
	}

	reg.SortByCohortThenName()

	result := &AssignGroupsResult{
		RunID:      runID,
		Seed:       shuffler.Seed(),
		GroupNames: responses.GroupNames,
		Capacity:   cfg.GroupCapacity,
		MaxRank:    maxRank,
		Registry:   reg,
		Outcome:    outcome,
	}

	// Step 4: Publish
	switch {
	case opts.DryRun:
		logger.Info("Dry run - skipping publish")
		return result, nil
	case publisher == nil || cfg.ResultsSheetID == "":
		logger.Info("No results sheet configured - skipping publish")
		return result, nil
	case !outcome.Success:
		return result, fmt.Errorf("allocation failed validation with %d errors - not publishing", len(outcome.ValidationErrors))
	}

	if err := ctx.Err(); err != nil {
		return result, err
	}

	published := BuildPublishedAssignments(result, time.Now())
	logger.Debug("Publishing assignments",
		zap.String("spreadsheet_id", cfg.ResultsSheetID),
		zap.String("tab", published.Title),
		zap.Int("rows", len(published.Rows)))
	if err := publisher.PublishAssignments(cfg.ResultsSheetID, published); err != nil {
		return result, fmt.Errorf("failed to publish assignments: %w", err)
	}

	result.TabTitle = published.Title
	result.Published = true
	logger.Info("Published assignments", zap.String("tab", published.Title))

	return result, nil
}

// BuildPublishedAssignments lays out a run for the results tab.
// Rows are ordered by group, then cohort and name, with unassigned participants last.
func BuildPublishedAssignments(result *AssignGroupsResult, now time.Time) *sheetsclient.PublishedAssignments {
	participants := result.Registry.Participants()
	slices.SortStableFunc(participants, func(a, b *model.Participant) int {
		return cmp.Or(
			cmp.Compare(groupSortKey(a, len(result.GroupNames)), groupSortKey(b, len(result.GroupNames))),
			cmp.Compare(a.Cohort, b.Cohort),
			cmp.Compare(a.LastName, b.LastName),
			cmp.Compare(a.FirstName, b.FirstName),
		)
	})

	rows := make([]sheetsclient.PublishedAssignmentRow, 0, len(participants))
	for _, p := range participants {
		row := sheetsclient.PublishedAssignmentRow{
			LastName:  p.LastName,
			FirstName: p.FirstName,
			Grade:     p.Cohort,
		}
		if group, ok := p.Group(); ok && group < len(result.GroupNames) {
			row.Group = result.GroupNames[group]
		}
		if result.Outcome != nil {
			if placement, ok := result.Outcome.PlacementFor(p); ok {
				row.Rank = placement.Rank + 1
			}
		}
		rows = append(rows, row)
	}

	shortID := result.RunID
	if len(shortID) > 8 {
		shortID = shortID[:8]
	}

	return &sheetsclient.PublishedAssignments{
		Title: fmt.Sprintf("Groups %s %s", now.Format("2006-01-02"), shortID),
		RunID: result.RunID,
		Seed:  result.Seed,
		Rows:  rows,
	}
}

func groupSortKey(p *model.Participant, groupCount int) int {
	if group, ok := p.Group(); ok {
		return group
	}
	return groupCount
}

// applyPreassignments assigns configured participants to their group by name before allocation
func applyPreassignments(reg *registry.Registry, groupNames []string, preassignments []config.Preassignment) error {
	for _, pre := range preassignments {
		group := slices.IndexFunc(groupNames, func(name string) bool {
			return strings.EqualFold(strings.TrimSpace(name), strings.TrimSpace(pre.Group))
		})
		if group == -1 {
			return fmt.Errorf("unknown group %q for %s %s", pre.Group, pre.FirstName, pre.LastName)
		}

		matches := reg.Filter(func(p *model.Participant) bool {
			return strings.EqualFold(p.FirstName, strings.TrimSpace(pre.FirstName)) &&
				strings.EqualFold(p.LastName, strings.TrimSpace(pre.LastName))
		})
		switch matches.Size() {
		case 0:
			return fmt.Errorf("no participant named %s %s", pre.FirstName, pre.LastName)
		case 1:
		default:
			return fmt.Errorf("%d participants are named %s %s", matches.Size(), pre.FirstName, pre.LastName)
		}

		for _, p := range matches.All() {
			if err := p.Assign(group); err != nil {
				return err
			}
		}
	}
	return nil
}
