package service

import (
	"context"
	"time"

	"aurex/internal/models"
	"aurex/internal/repository"

	"github.com/google/uuid"
)

// ShareService manages shareable read-only views of plans.
type ShareService struct {
	shareRepo repository.ShareRepository
	planRepo  repository.PlanRepository
	now       func() time.Time
}

// CreateShareInput describes a new share for a plan the caller owns.
type CreateShareInput struct {
	PlanID        uint
	UserID        uint
	ShareType     models.ShareType
	ExpiresInDays *int
}

// SharedPlanView is the public projection returned for a resolved share
// token. It omits the owner's identity.
type SharedPlanView struct {
	Title          string             `json:"title"`
	EducationLevel string             `json:"education_level"`
	EducationField string             `json:"education_field"`
	AIAnalysis     models.JSONMap     `json:"ai_analysis"`
	MindmapData    models.JSONMap     `json:"mindmap_data,omitempty"`
	TimelineData   models.JSONMap     `json:"timeline_data,omitempty"`
	SkillsData     models.JSONMap     `json:"skills_data,omitempty"`
	ResourcesData  models.JSONMap     `json:"resources_data,omitempty"`
	Progress       float64            `json:"progress"`
	Status         models.PlanStatus  `json:"status"`
	Milestones     []models.Milestone `json:"milestones,omitempty"`
	Skills         []models.Skill     `json:"skills,omitempty"`
}

// NewShareService creates a new share service.
func NewShareService(shareRepo repository.ShareRepository, planRepo repository.PlanRepository) *ShareService {
	return &ShareService{
		shareRepo: shareRepo,
		planRepo:  planRepo,
		now:       time.Now,
	}
}

// CreateShare issues a new share token for a plan the caller owns.
func (s *ShareService) CreateShare(ctx context.Context, in CreateShareInput) (*models.PlanShare, error) {
	shareType := in.ShareType
	if shareType == "" {
		shareType = models.ShareTypeLink
	}
	if !models.ValidShareType(shareType) {
		return nil, models.NewValidationError("Invalid share type")
	}
	if in.ExpiresInDays != nil && *in.ExpiresInDays <= 0 {
		return nil, models.NewValidationError("Expiry must be a positive number of days")
	}

	if _, err := s.planRepo.GetOwned(ctx, in.PlanID, in.UserID); err != nil {
		return nil, err
	}

	share := &models.PlanShare{
		CareerPlanID: in.PlanID,
		ShareToken:   uuid.NewString(),
		SharedBy:     in.UserID,
		ShareType:    shareType,
	}
	if in.ExpiresInDays != nil {
		expiry := s.now().AddDate(0, 0, *in.ExpiresInDays)
		share.ExpiresAt = &expiry
	}

	if err := s.shareRepo.Create(ctx, share); err != nil {
		return nil, err
	}
	return share, nil
}

// ListShares returns the shares of a plan the caller owns.
func (s *ShareService) ListShares(ctx context.Context, planID, userID uint) ([]models.PlanShare, error) {
	if _, err := s.planRepo.GetOwned(ctx, planID, userID); err != nil {
		return nil, err
	}
	return s.shareRepo.ListByPlan(ctx, planID)
}

// RevokeShare deletes a share of a plan the caller owns.
func (s *ShareService) RevokeShare(ctx context.Context, shareID, planID, userID uint) error {
	if _, err := s.planRepo.GetOwned(ctx, planID, userID); err != nil {
		return err
	}
	return s.shareRepo.Delete(ctx, shareID, planID)
}

// ResolveShare resolves a token to its public plan view and counts the
// view. Expired tokens resolve the same as unknown ones.
func (s *ShareService) ResolveShare(ctx context.Context, token string) (*SharedPlanView, error) {
	if token == "" {
		return nil, models.NewValidationError("Share token is required")
	}

	share, err := s.shareRepo.GetByToken(ctx, token)
	if err != nil {
		return nil, err
	}
	if share.Expired(s.now()) {
		return nil, models.NewNotFoundError("Shared plan")
	}

	plan, err := s.planRepo.GetByID(ctx, share.CareerPlanID)
	if err != nil {
		return nil, err
	}

	if err := s.shareRepo.IncrementViewCount(ctx, share.ID); err != nil {
		return nil, err
	}

	return &SharedPlanView{
		Title:          plan.Title,
		EducationLevel: plan.EducationLevel,
		EducationField: plan.EducationField,
		AIAnalysis:     plan.AIAnalysis,
		MindmapData:    plan.MindmapData,
		TimelineData:   plan.TimelineData,
		SkillsData:     plan.SkillsData,
		ResourcesData:  plan.ResourcesData,
		Progress:       plan.Progress,
		Status:         plan.Status,
		Milestones:     plan.Milestones,
		Skills:         plan.Skills,
	}, nil
}
