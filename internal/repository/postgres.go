package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/immxrtalbeast/frameboard/internal/domain"
	"github.com/immxrtalbeast/frameboard/internal/repository/model"
)

type PostgresUserRepository struct {
	db *gorm.DB
}

func NewPostgresUserRepository(db *gorm.DB) *PostgresUserRepository {
	return &PostgresUserRepository{db: db}
}

func (r *PostgresUserRepository) Create(ctx context.Context, user *domain.User, passwordHash []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if user == nil {
		return errors.New("user is nil")
	}

	userModel := toModelUser(user)
	userModel.PasswordHash = passwordHash

	if err := r.db.WithContext(ctx).Create(userModel).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrUserEmailExists
		}
		return err
	}
	return nil
}

func (r *PostgresUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var user model.User
	err := r.db.WithContext(ctx).First(&user, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	return toDomainUser(&user), nil
}

func (r *PostgresUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, []byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}

	var user model.User
	err := r.db.WithContext(ctx).First(&user, "email = ?", email).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrUserNotFound
		}
		return nil, nil, err
	}

	return toDomainUser(&user), user.PasswordHash, nil
}

func (r *PostgresUserRepository) Update(ctx context.Context, user *domain.User) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if user == nil {
		return errors.New("user is nil")
	}

	userModel := toModelUser(user)

	updates := map[string]any{
		"name":       userModel.Name,
		"updated_at": userModel.UpdatedAt,
	}
	if userModel.Email == nil {
		updates["email"] = gorm.Expr("NULL")
	} else {
		updates["email"] = userModel.Email
	}

	res := r.db.WithContext(ctx).Model(&model.User{}).Where("id = ?", userModel.ID).Updates(updates)
	if res.Error != nil {
		if errors.Is(res.Error, gorm.ErrDuplicatedKey) {
			return ErrUserEmailExists
		}
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

type PostgresStudioRepository struct {
	db *gorm.DB
}

func NewPostgresStudioRepository(db *gorm.DB) *PostgresStudioRepository {
	return &PostgresStudioRepository{db: db}
}

func (r *PostgresStudioRepository) Create(ctx context.Context, studio *domain.Studio) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if studio == nil {
		return errors.New("studio is nil")
	}

	return r.db.WithContext(ctx).Create(toModelStudio(studio)).Error
}

func (r *PostgresStudioRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Studio, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var studio model.Studio
	err := r.db.WithContext(ctx).Preload("Members").First(&studio, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStudioNotFound
		}
		return nil, err
	}

	return toDomainStudio(&studio), nil
}

func (r *PostgresStudioRepository) ListForUser(ctx context.Context, userID uuid.UUID) ([]*domain.Studio, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var studios []model.Studio
	err := r.db.WithContext(ctx).
		Preload("Members").
		Distinct("studios.*").
		Joins("LEFT JOIN studio_members sm ON sm.studio_id = studios.id").
		Where("studios.owner_id = ? OR sm.user_id = ?", userID, userID).
		Find(&studios).Error
	if err != nil {
		return nil, err
	}

	result := make([]*domain.Studio, 0, len(studios))
	for i := range studios {
		result = append(result, toDomainStudio(&studios[i]))
	}
	return result, nil
}

func (r *PostgresStudioRepository) Update(ctx context.Context, studio *domain.Studio) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if studio == nil {
		return errors.New("studio is nil")
	}

	res := r.db.WithContext(ctx).Model(&model.Studio{}).Where("id = ?", studio.ID).Updates(map[string]any{
		"name":       studio.Name,
		"updated_at": time.Now().UTC(),
	})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrStudioNotFound
	}
	return nil
}

func (r *PostgresStudioRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	res := r.db.WithContext(ctx).Delete(&model.Studio{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrStudioNotFound
	}
	return nil
}

func (r *PostgresStudioRepository) AddMember(ctx context.Context, studioID, userID uuid.UUID) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	member := model.StudioMember{
		StudioID:  studioID,
		UserID:    userID,
		CreatedAt: time.Now().UTC(),
	}
	err := r.db.WithContext(ctx).Create(&member).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return nil // already a member
	}
	return err
}

type PostgresProjectRepository struct {
	db *gorm.DB
}

func NewPostgresProjectRepository(db *gorm.DB) *PostgresProjectRepository {
	return &PostgresProjectRepository{db: db}
}

func (r *PostgresProjectRepository) Create(ctx context.Context, project *domain.Project) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if project == nil {
		return errors.New("project is nil")
	}

	return r.db.WithContext(ctx).Create(toModelProject(project)).Error
}

func (r *PostgresProjectRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Project, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var project model.Project
	err := r.db.WithContext(ctx).First(&project, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, err
	}

	return toDomainProject(&project), nil
}

func (r *PostgresProjectRepository) ListByStudio(ctx context.Context, studioID uuid.UUID) ([]*domain.Project, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var projects []model.Project
	if err := r.db.WithContext(ctx).Where("studio_id = ?", studioID).Order("created_at").Find(&projects).Error; err != nil {
		return nil, err
	}

	result := make([]*domain.Project, 0, len(projects))
	for i := range projects {
		result = append(result, toDomainProject(&projects[i]))
	}
	return result, nil
}

func (r *PostgresProjectRepository) Update(ctx context.Context, project *domain.Project) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if project == nil {
		return errors.New("project is nil")
	}

	res := r.db.WithContext(ctx).Model(&model.Project{}).Where("id = ?", project.ID).Updates(map[string]any{
		"name":        project.Name,
		"description": project.Description,
		"updated_at":  time.Now().UTC(),
	})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrProjectNotFound
	}
	return nil
}

func (r *PostgresProjectRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	res := r.db.WithContext(ctx).Delete(&model.Project{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrProjectNotFound
	}
	return nil
}

type PostgresSceneRepository struct {
	db *gorm.DB
}

func NewPostgresSceneRepository(db *gorm.DB) *PostgresSceneRepository {
	return &PostgresSceneRepository{db: db}
}

func (r *PostgresSceneRepository) Create(ctx context.Context, scene *domain.Scene) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if scene == nil {
		return errors.New("scene is nil")
	}

	return r.db.WithContext(ctx).Create(toModelScene(scene)).Error
}

func (r *PostgresSceneRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Scene, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var scene model.Scene
	err := r.db.WithContext(ctx).First(&scene, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSceneNotFound
		}
		return nil, err
	}

	return toDomainScene(&scene), nil
}

func (r *PostgresSceneRepository) ListByProject(ctx context.Context, projectID uuid.UUID) ([]*domain.Scene, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var scenes []model.Scene
	if err := r.db.WithContext(ctx).Where("project_id = ?", projectID).Order("position").Find(&scenes).Error; err != nil {
		return nil, err
	}

	result := make([]*domain.Scene, 0, len(scenes))
	for i := range scenes {
		result = append(result, toDomainScene(&scenes[i]))
	}
	return result, nil
}

func (r *PostgresSceneRepository) Update(ctx context.Context, scene *domain.Scene) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if scene == nil {
		return errors.New("scene is nil")
	}

	res := r.db.WithContext(ctx).Model(&model.Scene{}).Where("id = ?", scene.ID).Updates(map[string]any{
		"title":        scene.Title,
		"position":     scene.Position,
		"sketch_path":  scene.SketchPath,
		"artwork_path": scene.ArtworkPath,
		"updated_at":   time.Now().UTC(),
	})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrSceneNotFound
	}
	return nil
}

func (r *PostgresSceneRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("scene_id = ?", id).Delete(&model.Comment{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&model.Scene{}, "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrSceneNotFound
		}
		return nil
	})
}

func toModelUser(user *domain.User) *model.User {
	var email *string
	if user.Email != "" {
		e := user.Email
		email = &e
	}
	return &model.User{
		ID:        user.ID,
		Name:      user.Name,
		Email:     email,
		CreatedAt: user.CreatedAt.UTC(),
		UpdatedAt: user.UpdatedAt.UTC(),
	}
}

func toDomainUser(user *model.User) *domain.User {
	email := ""
	if user.Email != nil {
		email = *user.Email
	}
	return &domain.User{
		ID:        user.ID,
		Name:      user.Name,
		Email:     email,
		CreatedAt: user.CreatedAt.UTC(),
		UpdatedAt: user.UpdatedAt.UTC(),
	}
}

func toModelStudio(studio *domain.Studio) *model.Studio {
	members := make([]model.StudioMember, 0, len(studio.MemberIDs))
	for _, userID := range studio.MemberIDs {
		members = append(members, model.StudioMember{
			StudioID:  studio.ID,
			UserID:    userID,
			CreatedAt: time.Now().UTC(),
		})
	}
	return &model.Studio{
		ID:        studio.ID,
		Name:      studio.Name,
		OwnerID:   studio.OwnerID,
		CreatedAt: studio.CreatedAt.UTC(),
		UpdatedAt: studio.UpdatedAt.UTC(),
		Members:   members,
	}
}

func toDomainStudio(studio *model.Studio) *domain.Studio {
	members := make([]uuid.UUID, 0, len(studio.Members))
	for _, m := range studio.Members {
		members = append(members, m.UserID)
	}
	return &domain.Studio{
		ID:        studio.ID,
		Name:      studio.Name,
		OwnerID:   studio.OwnerID,
		MemberIDs: members,
		CreatedAt: studio.CreatedAt.UTC(),
		UpdatedAt: studio.UpdatedAt.UTC(),
	}
}

func toModelProject(project *domain.Project) *model.Project {
	return &model.Project{
		ID:          project.ID,
		StudioID:    project.StudioID,
		Name:        project.Name,
		Description: project.Description,
		CreatedAt:   project.CreatedAt.UTC(),
		UpdatedAt:   project.UpdatedAt.UTC(),
	}
}

func toDomainProject(project *model.Project) *domain.Project {
	return &domain.Project{
		ID:          project.ID,
		StudioID:    project.StudioID,
		Name:        project.Name,
		Description: project.Description,
		CreatedAt:   project.CreatedAt.UTC(),
		UpdatedAt:   project.UpdatedAt.UTC(),
	}
}

func toModelScene(scene *domain.Scene) *model.Scene {
	return &model.Scene{
		ID:          scene.ID,
		ProjectID:   scene.ProjectID,
		Title:       scene.Title,
		Position:    scene.Position,
		SketchPath:  scene.SketchPath,
		ArtworkPath: scene.ArtworkPath,
		CreatedAt:   scene.CreatedAt.UTC(),
		UpdatedAt:   scene.UpdatedAt.UTC(),
	}
}

func toDomainScene(scene *model.Scene) *domain.Scene {
	return &domain.Scene{
		ID:          scene.ID,
		ProjectID:   scene.ProjectID,
		Title:       scene.Title,
		Position:    scene.Position,
		SketchPath:  scene.SketchPath,
		ArtworkPath: scene.ArtworkPath,
		CreatedAt:   scene.CreatedAt.UTC(),
		UpdatedAt:   scene.UpdatedAt.UTC(),
	}
}
