package service

import (
	"context"
	"time"

	"aurex/internal/ai"
	"aurex/internal/models"
	"aurex/internal/notify"
	"aurex/internal/repository"
)

// planRepoStub is a stub for repository.PlanRepository.
type planRepoStub struct {
	createFn       func(context.Context, *models.CareerPlan) error
	getOwnedFn     func(context.Context, uint, uint) (*models.CareerPlan, error)
	getByIDFn      func(context.Context, uint) (*models.CareerPlan, error)
	listByUserFn   func(context.Context, uint, int, int) ([]models.CareerPlan, error)
	countByUserFn  func(context.Context, uint) (int64, error)
	updateFn       func(context.Context, *models.CareerPlan) error
	deleteFn       func(context.Context, uint, uint) error
	addVersionFn   func(context.Context, *models.PlanVersion) error
	listVersionsFn func(context.Context, uint) ([]models.PlanVersion, error)
}

func (s *planRepoStub) Create(ctx context.Context, plan *models.CareerPlan) error {
	return s.createFn(ctx, plan)
}
func (s *planRepoStub) GetOwned(ctx context.Context, id, userID uint) (*models.CareerPlan, error) {
	return s.getOwnedFn(ctx, id, userID)
}
func (s *planRepoStub) GetByID(ctx context.Context, id uint) (*models.CareerPlan, error) {
	return s.getByIDFn(ctx, id)
}
func (s *planRepoStub) ListByUser(ctx context.Context, userID uint, limit, offset int) ([]models.CareerPlan, error) {
	return s.listByUserFn(ctx, userID, limit, offset)
}
func (s *planRepoStub) CountByUser(ctx context.Context, userID uint) (int64, error) {
	return s.countByUserFn(ctx, userID)
}
func (s *planRepoStub) Update(ctx context.Context, plan *models.CareerPlan) error {
	return s.updateFn(ctx, plan)
}
func (s *planRepoStub) Delete(ctx context.Context, id, userID uint) error {
	return s.deleteFn(ctx, id, userID)
}
func (s *planRepoStub) AddVersion(ctx context.Context, version *models.PlanVersion) error {
	return s.addVersionFn(ctx, version)
}
func (s *planRepoStub) ListVersions(ctx context.Context, planID uint) ([]models.PlanVersion, error) {
	return s.listVersionsFn(ctx, planID)
}

func noopPlanRepo() *planRepoStub {
	return &planRepoStub{
		createFn: func(_ context.Context, plan *models.CareerPlan) error {
			plan.ID = 1
			return nil
		},
		getOwnedFn: func(_ context.Context, id, userID uint) (*models.CareerPlan, error) {
			return &models.CareerPlan{ID: id, UserID: userID, Status: models.PlanStatusActive}, nil
		},
		getByIDFn: func(_ context.Context, id uint) (*models.CareerPlan, error) {
			return &models.CareerPlan{ID: id}, nil
		},
		listByUserFn:   func(_ context.Context, _ uint, _, _ int) ([]models.CareerPlan, error) { return nil, nil },
		countByUserFn:  func(_ context.Context, _ uint) (int64, error) { return 0, nil },
		updateFn:       func(_ context.Context, _ *models.CareerPlan) error { return nil },
		deleteFn:       func(_ context.Context, _, _ uint) error { return nil },
		addVersionFn:   func(_ context.Context, _ *models.PlanVersion) error { return nil },
		listVersionsFn: func(_ context.Context, _ uint) ([]models.PlanVersion, error) { return nil, nil },
	}
}

// skillRepoStub is a stub for repository.SkillRepository.
type skillRepoStub struct {
	createFn      func(context.Context, *models.Skill) error
	createBatchFn func(context.Context, []models.Skill) error
	getForPlanFn  func(context.Context, uint, uint) (*models.Skill, error)
	listByPlanFn  func(context.Context, uint) ([]models.Skill, error)
	updateFn      func(context.Context, *models.Skill) error
	deleteFn      func(context.Context, uint, uint) error
}

func (s *skillRepoStub) Create(ctx context.Context, skill *models.Skill) error {
	return s.createFn(ctx, skill)
}
func (s *skillRepoStub) CreateBatch(ctx context.Context, skills []models.Skill) error {
	return s.createBatchFn(ctx, skills)
}
func (s *skillRepoStub) GetForPlan(ctx context.Context, id, planID uint) (*models.Skill, error) {
	return s.getForPlanFn(ctx, id, planID)
}
func (s *skillRepoStub) ListByPlan(ctx context.Context, planID uint) ([]models.Skill, error) {
	return s.listByPlanFn(ctx, planID)
}
func (s *skillRepoStub) Update(ctx context.Context, skill *models.Skill) error {
	return s.updateFn(ctx, skill)
}
func (s *skillRepoStub) Delete(ctx context.Context, id, planID uint) error {
	return s.deleteFn(ctx, id, planID)
}

func noopSkillRepo() *skillRepoStub {
	return &skillRepoStub{
		createFn:      func(_ context.Context, _ *models.Skill) error { return nil },
		createBatchFn: func(_ context.Context, _ []models.Skill) error { return nil },
		getForPlanFn: func(_ context.Context, id, planID uint) (*models.Skill, error) {
			return &models.Skill{ID: id, CareerPlanID: planID}, nil
		},
		listByPlanFn: func(_ context.Context, _ uint) ([]models.Skill, error) { return nil, nil },
		updateFn:     func(_ context.Context, _ *models.Skill) error { return nil },
		deleteFn:     func(_ context.Context, _, _ uint) error { return nil },
	}
}

// milestoneRepoStub is a stub for repository.MilestoneRepository.
type milestoneRepoStub struct {
	createFn               func(context.Context, *models.Milestone) error
	getForPlanFn           func(context.Context, uint, uint) (*models.Milestone, error)
	listByPlanFn           func(context.Context, uint) ([]models.Milestone, error)
	updateFn               func(context.Context, *models.Milestone) error
	deleteFn               func(context.Context, uint, uint) error
	markNotificationSentFn func(context.Context, uint) error
}

func (s *milestoneRepoStub) Create(ctx context.Context, milestone *models.Milestone) error {
	return s.createFn(ctx, milestone)
}
func (s *milestoneRepoStub) GetForPlan(ctx context.Context, id, planID uint) (*models.Milestone, error) {
	return s.getForPlanFn(ctx, id, planID)
}
func (s *milestoneRepoStub) ListByPlan(ctx context.Context, planID uint) ([]models.Milestone, error) {
	return s.listByPlanFn(ctx, planID)
}
func (s *milestoneRepoStub) Update(ctx context.Context, milestone *models.Milestone) error {
	return s.updateFn(ctx, milestone)
}
func (s *milestoneRepoStub) Delete(ctx context.Context, id, planID uint) error {
	return s.deleteFn(ctx, id, planID)
}
func (s *milestoneRepoStub) MarkNotificationSent(ctx context.Context, id uint) error {
	return s.markNotificationSentFn(ctx, id)
}

func noopMilestoneRepo() *milestoneRepoStub {
	return &milestoneRepoStub{
		createFn: func(_ context.Context, _ *models.Milestone) error { return nil },
		getForPlanFn: func(_ context.Context, id, planID uint) (*models.Milestone, error) {
			return &models.Milestone{ID: id, CareerPlanID: planID, Status: models.MilestoneStatusPending}, nil
		},
		listByPlanFn:           func(_ context.Context, _ uint) ([]models.Milestone, error) { return nil, nil },
		updateFn:               func(_ context.Context, _ *models.Milestone) error { return nil },
		deleteFn:               func(_ context.Context, _, _ uint) error { return nil },
		markNotificationSentFn: func(_ context.Context, _ uint) error { return nil },
	}
}

// documentRepoStub is a stub for repository.DocumentRepository.
type documentRepoStub struct {
	createFn     func(context.Context, *models.Document) error
	getOwnedFn   func(context.Context, uint, uint) (*models.Document, error)
	listByUserFn func(context.Context, uint, repository.DocumentFilter) ([]models.Document, error)
	deleteFn     func(context.Context, uint, uint) error
}

func (s *documentRepoStub) Create(ctx context.Context, doc *models.Document) error {
	return s.createFn(ctx, doc)
}
func (s *documentRepoStub) GetOwned(ctx context.Context, id, userID uint) (*models.Document, error) {
	return s.getOwnedFn(ctx, id, userID)
}
func (s *documentRepoStub) ListByUser(ctx context.Context, userID uint, filter repository.DocumentFilter) ([]models.Document, error) {
	return s.listByUserFn(ctx, userID, filter)
}
func (s *documentRepoStub) Delete(ctx context.Context, id, userID uint) error {
	return s.deleteFn(ctx, id, userID)
}

func noopDocumentRepo() *documentRepoStub {
	return &documentRepoStub{
		createFn: func(_ context.Context, doc *models.Document) error {
			doc.ID = 1
			return nil
		},
		getOwnedFn: func(_ context.Context, id, userID uint) (*models.Document, error) {
			return &models.Document{ID: id, UserID: userID, FileKey: "key"}, nil
		},
		listByUserFn: func(_ context.Context, _ uint, _ repository.DocumentFilter) ([]models.Document, error) {
			return nil, nil
		},
		deleteFn: func(_ context.Context, _, _ uint) error { return nil },
	}
}

// shareRepoStub is a stub for repository.ShareRepository.
type shareRepoStub struct {
	createFn             func(context.Context, *models.PlanShare) error
	getByTokenFn         func(context.Context, string) (*models.PlanShare, error)
	listByPlanFn         func(context.Context, uint) ([]models.PlanShare, error)
	incrementViewCountFn func(context.Context, uint) error
	deleteFn             func(context.Context, uint, uint) error
}

func (s *shareRepoStub) Create(ctx context.Context, share *models.PlanShare) error {
	return s.createFn(ctx, share)
}
func (s *shareRepoStub) GetByToken(ctx context.Context, token string) (*models.PlanShare, error) {
	return s.getByTokenFn(ctx, token)
}
func (s *shareRepoStub) ListByPlan(ctx context.Context, planID uint) ([]models.PlanShare, error) {
	return s.listByPlanFn(ctx, planID)
}
func (s *shareRepoStub) IncrementViewCount(ctx context.Context, id uint) error {
	return s.incrementViewCountFn(ctx, id)
}
func (s *shareRepoStub) Delete(ctx context.Context, id, planID uint) error {
	return s.deleteFn(ctx, id, planID)
}

func noopShareRepo() *shareRepoStub {
	return &shareRepoStub{
		createFn: func(_ context.Context, share *models.PlanShare) error {
			share.ID = 1
			return nil
		},
		getByTokenFn: func(_ context.Context, token string) (*models.PlanShare, error) {
			return &models.PlanShare{ID: 1, CareerPlanID: 1, ShareToken: token}, nil
		},
		listByPlanFn:         func(_ context.Context, _ uint) ([]models.PlanShare, error) { return nil, nil },
		incrementViewCountFn: func(_ context.Context, _ uint) error { return nil },
		deleteFn:             func(_ context.Context, _, _ uint) error { return nil },
	}
}

// notificationRepoStub is a stub for repository.NotificationRepository.
type notificationRepoStub struct {
	createLogFn       func(context.Context, *models.EmailNotification) error
	listByUserFn      func(context.Context, uint, int, int) ([]models.EmailNotification, error)
	getPreferencesFn  func(context.Context, uint) (*models.NotificationPreference, error)
	savePreferencesFn func(context.Context, *models.NotificationPreference) error
}

func (s *notificationRepoStub) CreateLog(ctx context.Context, entry *models.EmailNotification) error {
	return s.createLogFn(ctx, entry)
}
func (s *notificationRepoStub) ListByUser(ctx context.Context, userID uint, limit, offset int) ([]models.EmailNotification, error) {
	return s.listByUserFn(ctx, userID, limit, offset)
}
func (s *notificationRepoStub) GetPreferences(ctx context.Context, userID uint) (*models.NotificationPreference, error) {
	return s.getPreferencesFn(ctx, userID)
}
func (s *notificationRepoStub) SavePreferences(ctx context.Context, prefs *models.NotificationPreference) error {
	return s.savePreferencesFn(ctx, prefs)
}

func noopNotificationRepo() *notificationRepoStub {
	return &notificationRepoStub{
		createLogFn: func(_ context.Context, _ *models.EmailNotification) error { return nil },
		listByUserFn: func(_ context.Context, _ uint, _, _ int) ([]models.EmailNotification, error) {
			return nil, nil
		},
		getPreferencesFn: func(_ context.Context, userID uint) (*models.NotificationPreference, error) {
			prefs := models.DefaultNotificationPreference(userID)
			return &prefs, nil
		},
		savePreferencesFn: func(_ context.Context, _ *models.NotificationPreference) error { return nil },
	}
}

// userRepoStub is a stub for repository.UserRepository.
type userRepoStub struct {
	getByIDFn    func(context.Context, uint) (*models.User, error)
	getByEmailFn func(context.Context, string) (*models.User, error)
	createFn     func(context.Context, *models.User) error
	updateFn     func(context.Context, *models.User) error
}

func (s *userRepoStub) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return s.getByIDFn(ctx, id)
}
func (s *userRepoStub) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.getByEmailFn(ctx, email)
}
func (s *userRepoStub) Create(ctx context.Context, user *models.User) error {
	return s.createFn(ctx, user)
}
func (s *userRepoStub) Update(ctx context.Context, user *models.User) error {
	return s.updateFn(ctx, user)
}

func noopUserRepo() *userRepoStub {
	return &userRepoStub{
		getByIDFn: func(_ context.Context, id uint) (*models.User, error) {
			return &models.User{ID: id, Name: "Ada", Email: "ada@example.com"}, nil
		},
		getByEmailFn: func(_ context.Context, _ string) (*models.User, error) { return nil, nil },
		createFn:     func(_ context.Context, _ *models.User) error { return nil },
		updateFn:     func(_ context.Context, _ *models.User) error { return nil },
	}
}

// generatorStub is a stub for ai.Generator.
type generatorStub struct {
	generateFn func(context.Context, ai.AnalysisRequest) (*ai.Analysis, error)
}

func (s *generatorStub) GenerateAnalysis(ctx context.Context, req ai.AnalysisRequest) (*ai.Analysis, error) {
	return s.generateFn(ctx, req)
}

// storageStub is a stub for storage.Client.
type storageStub struct {
	uploadFn      func(context.Context, string, []byte, string) (string, error)
	downloadURLFn func(context.Context, string) (string, error)
}

func (s *storageStub) Upload(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	return s.uploadFn(ctx, key, data, contentType)
}
func (s *storageStub) DownloadURL(ctx context.Context, key string) (string, error) {
	return s.downloadURLFn(ctx, key)
}

func noopStorage() *storageStub {
	return &storageStub{
		uploadFn: func(_ context.Context, key string, _ []byte, _ string) (string, error) {
			return "https://cdn.example.com/" + key, nil
		},
		downloadURLFn: func(_ context.Context, key string) (string, error) {
			return "https://cdn.example.com/" + key + "?sig=abc", nil
		},
	}
}

// senderStub is a stub for notify.Sender.
type senderStub struct {
	sendFn func(context.Context, uint, notify.Message) error
	sent   []notify.Message
}

func (s *senderStub) Send(ctx context.Context, userID uint, msg notify.Message) error {
	s.sent = append(s.sent, msg)
	if s.sendFn != nil {
		return s.sendFn(ctx, userID, msg)
	}
	return nil
}

func fixedTime() time.Time {
	return time.Date(2026, time.March, 10, 12, 0, 0, 0, time.UTC)
}
