package service

import (
	"context"
	"strings"
	"time"

	"aurex/internal/models"
	"aurex/internal/repository"
)

// MilestoneService manages milestones within a plan the caller owns.
type MilestoneService struct {
	milestoneRepo repository.MilestoneRepository
	planRepo      repository.PlanRepository
	now           func() time.Time
}

// CreateMilestoneInput describes a new milestone.
type CreateMilestoneInput struct {
	PlanID      uint
	UserID      uint
	Title       string
	Description string
	TargetDate  time.Time
	Category    string
}

// UpdateMilestoneInput carries the mutable milestone fields. Nil pointers
// leave the field unchanged.
type UpdateMilestoneInput struct {
	MilestoneID uint
	PlanID      uint
	UserID      uint
	Title       *string
	Description *string
	TargetDate  *time.Time
	Category    *string
	Status      *models.MilestoneStatus
}

// NewMilestoneService creates a new milestone service.
func NewMilestoneService(milestoneRepo repository.MilestoneRepository, planRepo repository.PlanRepository) *MilestoneService {
	return &MilestoneService{
		milestoneRepo: milestoneRepo,
		planRepo:      planRepo,
		now:           time.Now,
	}
}

// CreateMilestone adds a milestone to a plan the caller owns.
func (s *MilestoneService) CreateMilestone(ctx context.Context, in CreateMilestoneInput) (*models.Milestone, error) {
	if strings.TrimSpace(in.Title) == "" {
		return nil, models.NewValidationError("Title is required")
	}
	if strings.TrimSpace(in.Category) == "" {
		return nil, models.NewValidationError("Category is required")
	}
	if in.TargetDate.IsZero() {
		return nil, models.NewValidationError("Target date is required")
	}

	if _, err := s.planRepo.GetOwned(ctx, in.PlanID, in.UserID); err != nil {
		return nil, err
	}

	milestone := &models.Milestone{
		CareerPlanID: in.PlanID,
		Title:        in.Title,
		Description:  in.Description,
		TargetDate:   in.TargetDate,
		Category:     in.Category,
		Status:       models.MilestoneStatusPending,
	}
	if err := s.milestoneRepo.Create(ctx, milestone); err != nil {
		return nil, err
	}
	return milestone, nil
}

// ListMilestones returns a plan's milestones ordered by target date.
func (s *MilestoneService) ListMilestones(ctx context.Context, planID, userID uint) ([]models.Milestone, error) {
	if _, err := s.planRepo.GetOwned(ctx, planID, userID); err != nil {
		return nil, err
	}
	return s.milestoneRepo.ListByPlan(ctx, planID)
}

// UpdateMilestone applies the provided changes. Moving into completed sets
// CompletedAt; moving out of completed clears it.
func (s *MilestoneService) UpdateMilestone(ctx context.Context, in UpdateMilestoneInput) (*models.Milestone, error) {
	if in.Status != nil && !models.ValidMilestoneStatus(*in.Status) {
		return nil, models.NewValidationError("Invalid status")
	}
	if in.Title != nil && strings.TrimSpace(*in.Title) == "" {
		return nil, models.NewValidationError("Title cannot be empty")
	}

	if _, err := s.planRepo.GetOwned(ctx, in.PlanID, in.UserID); err != nil {
		return nil, err
	}
	milestone, err := s.milestoneRepo.GetForPlan(ctx, in.MilestoneID, in.PlanID)
	if err != nil {
		return nil, err
	}

	if in.Title != nil {
		milestone.Title = *in.Title
	}
	if in.Description != nil {
		milestone.Description = *in.Description
	}
	if in.TargetDate != nil {
		milestone.TargetDate = *in.TargetDate
	}
	if in.Category != nil {
		milestone.Category = *in.Category
	}
	if in.Status != nil && *in.Status != milestone.Status {
		milestone.Status = *in.Status
		if *in.Status == models.MilestoneStatusCompleted {
			completedAt := s.now()
			milestone.CompletedAt = &completedAt
		} else {
			milestone.CompletedAt = nil
		}
	}

	if err := s.milestoneRepo.Update(ctx, milestone); err != nil {
		return nil, err
	}
	return milestone, nil
}

// DeleteMilestone removes a milestone from a plan the caller owns.
func (s *MilestoneService) DeleteMilestone(ctx context.Context, milestoneID, planID, userID uint) error {
	if _, err := s.planRepo.GetOwned(ctx, planID, userID); err != nil {
		return err
	}
	return s.milestoneRepo.Delete(ctx, milestoneID, planID)
}
