// Package service contains the application's business logic.
package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"aurex/internal/ai"
	"aurex/internal/middleware"
	"aurex/internal/models"
	"aurex/internal/observability"
	"aurex/internal/repository"
	"aurex/internal/validation"
)

// PlanService owns the career plan lifecycle.
type PlanService struct {
	planRepo  repository.PlanRepository
	skillRepo repository.SkillRepository
	generator ai.Generator
}

// CreatePlanInput is the profile submitted to create a plan.
type CreatePlanInput struct {
	UserID         uint
	Name           string
	EducationLevel string
	EducationField string
	CareerGoals    string
	TimelineMonths *int
}

// ListPlansInput selects the caller's plans. A zero Limit returns all of them.
type ListPlansInput struct {
	UserID uint
	Limit  int
	Offset int
}

// NewPlanService creates a new plan service.
func NewPlanService(planRepo repository.PlanRepository, skillRepo repository.SkillRepository, generator ai.Generator) *PlanService {
	return &PlanService{
		planRepo:  planRepo,
		skillRepo: skillRepo,
		generator: generator,
	}
}

// CreatePlan validates the profile, generates an analysis, and persists the
// plan with its derived skills. Analysis failures never fail creation; the
// plan falls back to the default analysis.
func (s *PlanService) CreatePlan(ctx context.Context, in CreatePlanInput) (*models.CareerPlan, error) {
	if err := validation.ValidateName(in.Name); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if err := validation.ValidateNonEmpty("education level", in.EducationLevel); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if err := validation.ValidateNonEmpty("education field", in.EducationField); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if err := validation.ValidateCareerGoals(in.CareerGoals); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if in.TimelineMonths != nil && *in.TimelineMonths <= 0 {
		return nil, models.NewValidationError("timeline months must be positive")
	}

	analysis, err := s.generator.GenerateAnalysis(ctx, ai.AnalysisRequest{
		Name:           in.Name,
		EducationLevel: in.EducationLevel,
		EducationField: in.EducationField,
		CareerGoals:    in.CareerGoals,
		TimelineMonths: in.TimelineMonths,
	})
	if err != nil {
		middleware.Logger.WarnContext(ctx, "Analysis generation failed, using fallback",
			slog.Uint64("user_id", uint64(in.UserID)),
			slog.String("error", err.Error()),
		)
		observability.AnalysisFallbacks.WithLabelValues("generation_error").Inc()
		analysis = ai.DefaultAnalysis()
	}

	analysisMap, err := toJSONMap(analysis)
	if err != nil {
		observability.AnalysisFallbacks.WithLabelValues("encode_error").Inc()
		analysisMap, _ = toJSONMap(ai.DefaultAnalysis())
		analysis = ai.DefaultAnalysis()
	}

	plan := &models.CareerPlan{
		UserID:             in.UserID,
		Title:              fmt.Sprintf("%s's Career Plan", strings.TrimSpace(in.Name)),
		EducationLevel:     in.EducationLevel,
		EducationField:     in.EducationField,
		CareerGoals:        in.CareerGoals,
		UserTimelineMonths: in.TimelineMonths,
		AIAnalysis:         analysisMap,
		MindmapData:        buildMindmapData(analysis),
		TimelineData:       buildTimelineData(analysis),
		SkillsData:         buildSkillsData(analysis),
		ResourcesData:      buildResourcesData(analysis),
		Status:             models.PlanStatusActive,
	}
	if err := s.planRepo.Create(ctx, plan); err != nil {
		return nil, err
	}

	skills := skillsFromGaps(plan.ID, analysis.SkillGaps)
	if err := s.skillRepo.CreateBatch(ctx, skills); err != nil {
		return nil, err
	}
	plan.Skills = skills
	return plan, nil
}

// GetPlan returns the plan with its milestones and skills, owner-scoped.
func (s *PlanService) GetPlan(ctx context.Context, planID, userID uint) (*models.CareerPlan, error) {
	return s.planRepo.GetOwned(ctx, planID, userID)
}

// ListPlans returns a page of the caller's plans plus the total count.
func (s *PlanService) ListPlans(ctx context.Context, in ListPlansInput) ([]models.CareerPlan, int64, error) {
	plans, err := s.planRepo.ListByUser(ctx, in.UserID, in.Limit, in.Offset)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.planRepo.CountByUser(ctx, in.UserID)
	if err != nil {
		return nil, 0, err
	}
	return plans, total, nil
}

// UpdateStatus sets the plan status and records a version entry. Any status
// may be set from any other.
func (s *PlanService) UpdateStatus(ctx context.Context, planID, userID uint, status models.PlanStatus) (*models.CareerPlan, error) {
	if !models.ValidPlanStatus(status) {
		return nil, models.NewValidationError("Invalid status")
	}

	plan, err := s.planRepo.GetOwned(ctx, planID, userID)
	if err != nil {
		return nil, err
	}

	previous := plan.Status
	if previous == status {
		return plan, nil
	}

	plan.Status = status
	if err := s.planRepo.Update(ctx, plan); err != nil {
		return nil, err
	}

	s.recordVersion(ctx, plan.ID, models.JSONMap{
		"field":    "status",
		"previous": string(previous),
		"current":  string(status),
	})
	return plan, nil
}

// UpdateProgress sets the overall progress percentage and records a version
// entry.
func (s *PlanService) UpdateProgress(ctx context.Context, planID, userID uint, progress float64) (*models.CareerPlan, error) {
	if err := validation.ValidateProgress(progress); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	plan, err := s.planRepo.GetOwned(ctx, planID, userID)
	if err != nil {
		return nil, err
	}

	previous := plan.Progress
	plan.Progress = progress
	if err := s.planRepo.Update(ctx, plan); err != nil {
		return nil, err
	}

	s.recordVersion(ctx, plan.ID, models.JSONMap{
		"field":    "progress",
		"previous": previous,
		"current":  progress,
	})
	return plan, nil
}

// DeletePlan removes the plan, owner-scoped.
func (s *PlanService) DeletePlan(ctx context.Context, planID, userID uint) error {
	return s.planRepo.Delete(ctx, planID, userID)
}

// ListVersions returns the plan's changelog, newest first, owner-scoped.
func (s *PlanService) ListVersions(ctx context.Context, planID, userID uint) ([]models.PlanVersion, error) {
	if _, err := s.planRepo.GetOwned(ctx, planID, userID); err != nil {
		return nil, err
	}
	return s.planRepo.ListVersions(ctx, planID)
}

// recordVersion appends the changelog entry best-effort; a failed version
// write never rolls back the plan change it describes.
func (s *PlanService) recordVersion(ctx context.Context, planID uint, changes models.JSONMap) {
	version := &models.PlanVersion{CareerPlanID: planID, Changes: changes}
	if err := s.planRepo.AddVersion(ctx, version); err != nil {
		middleware.Logger.WarnContext(ctx, "Failed to record plan version",
			slog.Uint64("plan_id", uint64(planID)),
			slog.String("error", err.Error()),
		)
	}
}

func toJSONMap(v any) (models.JSONMap, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var m models.JSONMap
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, err
	}
	return m, nil
}

func skillsFromGaps(planID uint, gaps []ai.SkillGap) []models.Skill {
	skills := make([]models.Skill, 0, len(gaps))
	for _, gap := range gaps {
		if strings.TrimSpace(gap.Skill) == "" {
			continue
		}

		skillType := models.SkillType(gap.Type)
		if skillType != models.SkillTypeTechnical && skillType != models.SkillTypeSoft {
			skillType = models.SkillTypeTechnical
		}

		importance := models.SkillImportance(gap.Importance)
		switch importance {
		case models.ImportanceCritical, models.ImportanceImportant, models.ImportanceNiceToHave:
		default:
			importance = models.ImportanceImportant
		}

		skill := models.Skill{
			CareerPlanID:     planID,
			SkillName:        gap.Skill,
			SkillType:        skillType,
			ProficiencyLevel: models.ProficiencyBeginner,
			Importance:       importance,
		}
		if len(gap.Resources) > 0 {
			skill.LearningResources = models.JSONMap{"resources": gap.Resources}
		}
		skills = append(skills, skill)
	}
	return skills
}

func buildMindmapData(a *ai.Analysis) models.JSONMap {
	children := make([]any, 0, len(a.CareerRecommendations))
	for _, rec := range a.CareerRecommendations {
		children = append(children, map[string]any{
			"label":       rec.Title,
			"description": rec.Description,
		})
	}
	return models.JSONMap{"root": a.Summary, "children": children}
}

func buildTimelineData(a *ai.Analysis) models.JSONMap {
	steps := make([]any, 0, len(a.CareerProgression))
	for _, step := range a.CareerProgression {
		steps = append(steps, map[string]any{
			"role":            step.Role,
			"timeframeMonths": step.TimeframeMonths,
			"description":     step.Description,
		})
	}
	return models.JSONMap{"timelineMonths": a.TimelineMonths, "steps": steps}
}

func buildSkillsData(a *ai.Analysis) models.JSONMap {
	gaps := make([]any, 0, len(a.SkillGaps))
	for _, gap := range a.SkillGaps {
		gaps = append(gaps, map[string]any{
			"skill":      gap.Skill,
			"type":       gap.Type,
			"importance": gap.Importance,
		})
	}
	return models.JSONMap{"gaps": gaps}
}

func buildResourcesData(a *ai.Analysis) models.JSONMap {
	resources := make([]any, 0)
	for _, gap := range a.SkillGaps {
		for _, res := range gap.Resources {
			resources = append(resources, map[string]any{
				"skill":    gap.Skill,
				"resource": res,
			})
		}
	}
	return models.JSONMap{"resources": resources}
}
