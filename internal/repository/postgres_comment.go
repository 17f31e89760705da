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

type PostgresCommentRepository struct {
	db *gorm.DB
}

func NewPostgresCommentRepository(db *gorm.DB) *PostgresCommentRepository {
	return &PostgresCommentRepository{db: db}
}

func (r *PostgresCommentRepository) Create(ctx context.Context, comment *domain.Comment) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if comment == nil {
		return errors.New("comment is nil")
	}

	commentModel := toModelComment(comment)
	commentModel.ID = 0 // repository assigns the durable id

	if err := r.db.WithContext(ctx).Create(commentModel).Error; err != nil {
		return err
	}
	comment.ID = commentModel.ID
	return nil
}

func (r *PostgresCommentRepository) GetByID(ctx context.Context, id int64) (*domain.Comment, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var comment model.Comment
	err := r.db.WithContext(ctx).First(&comment, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCommentNotFound
		}
		return nil, err
	}

	return toDomainComment(&comment), nil
}

func (r *PostgresCommentRepository) ListByScene(ctx context.Context, sceneID uuid.UUID) ([]*domain.Comment, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var comments []model.Comment
	err := r.db.WithContext(ctx).Where("scene_id = ?", sceneID).Order("id").Find(&comments).Error
	if err != nil {
		return nil, err
	}

	result := make([]*domain.Comment, 0, len(comments))
	for i := range comments {
		result = append(result, toDomainComment(&comments[i]))
	}
	return result, nil
}

func (r *PostgresCommentRepository) Update(ctx context.Context, comment *domain.Comment) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if comment == nil {
		return errors.New("comment is nil")
	}

	res := r.db.WithContext(ctx).Model(&model.Comment{}).Where("id = ?", comment.ID).Updates(map[string]any{
		"content":    comment.Content,
		"tag":        string(comment.Tag),
		"updated_at": time.Now().UTC(),
	})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrCommentNotFound
	}
	return nil
}

func (r *PostgresCommentRepository) ToggleResolve(ctx context.Context, id int64) (*domain.Comment, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var comment model.Comment
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&comment, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrCommentNotFound
			}
			return err
		}
		comment.Resolved = !comment.Resolved
		comment.UpdatedAt = time.Now().UTC()
		return tx.Model(&model.Comment{}).Where("id = ?", id).Updates(map[string]any{
			"resolved":   comment.Resolved,
			"updated_at": comment.UpdatedAt,
		}).Error
	})
	if err != nil {
		return nil, err
	}

	return toDomainComment(&comment), nil
}

func (r *PostgresCommentRepository) UpdateAnnotation(ctx context.Context, id int64, data string) (*domain.Comment, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	res := r.db.WithContext(ctx).Model(&model.Comment{}).Where("id = ?", id).Updates(map[string]any{
		"annotation_data": data,
		"updated_at":      time.Now().UTC(),
	})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, ErrCommentNotFound
	}

	return r.GetByID(ctx, id)
}

func (r *PostgresCommentRepository) Delete(ctx context.Context, id int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("parent_id = ?", id).Delete(&model.Comment{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&model.Comment{}, "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrCommentNotFound
		}
		return nil
	})
}

type PostgresActivityRepository struct {
	db *gorm.DB
}

func NewPostgresActivityRepository(db *gorm.DB) *PostgresActivityRepository {
	return &PostgresActivityRepository{db: db}
}

func (r *PostgresActivityRepository) Record(ctx context.Context, entry *domain.ActivityEntry) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if entry == nil {
		return errors.New("entry is nil")
	}

	entryModel := toModelActivity(entry)
	entryModel.ID = 0
	if err := r.db.WithContext(ctx).Create(entryModel).Error; err != nil {
		return err
	}
	entry.ID = entryModel.ID
	return nil
}

func (r *PostgresActivityRepository) ListByProject(ctx context.Context, projectID uuid.UUID, limit int) ([]*domain.ActivityEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = 50
	}

	var entries []model.ActivityEntry
	err := r.db.WithContext(ctx).
		Where("project_id = ?", projectID).
		Order("created_at DESC").
		Limit(limit).
		Find(&entries).Error
	if err != nil {
		return nil, err
	}

	result := make([]*domain.ActivityEntry, 0, len(entries))
	for i := range entries {
		result = append(result, toDomainActivity(&entries[i]))
	}
	return result, nil
}

func toModelComment(comment *domain.Comment) *model.Comment {
	var parentID *int64
	if comment.ParentID != nil {
		p := *comment.ParentID
		parentID = &p
	}
	return &model.Comment{
		ID:             comment.ID,
		SceneID:        comment.SceneID,
		AuthorID:       comment.AuthorID,
		AuthorName:     comment.AuthorName,
		Content:        comment.Content,
		Tag:            string(comment.Tag),
		Resolved:       comment.Resolved,
		ParentID:       parentID,
		SketchData:     comment.SketchData,
		AnnotationData: comment.AnnotationData,
		ImageType:      string(comment.ImageType),
		CreatedAt:      comment.CreatedAt.UTC(),
		UpdatedAt:      comment.UpdatedAt.UTC(),
	}
}

func toDomainComment(comment *model.Comment) *domain.Comment {
	var parentID *int64
	if comment.ParentID != nil {
		p := *comment.ParentID
		parentID = &p
	}
	return &domain.Comment{
		ID:             comment.ID,
		SceneID:        comment.SceneID,
		AuthorID:       comment.AuthorID,
		AuthorName:     comment.AuthorName,
		Content:        comment.Content,
		Tag:            domain.CommentTag(comment.Tag),
		Resolved:       comment.Resolved,
		ParentID:       parentID,
		SketchData:     comment.SketchData,
		AnnotationData: comment.AnnotationData,
		ImageType:      domain.ImageType(comment.ImageType),
		CreatedAt:      comment.CreatedAt.UTC(),
		UpdatedAt:      comment.UpdatedAt.UTC(),
	}
}

func toModelActivity(entry *domain.ActivityEntry) *model.ActivityEntry {
	return &model.ActivityEntry{
		ID:        entry.ID,
		ProjectID: entry.ProjectID,
		UserID:    entry.UserID,
		UserName:  entry.UserName,
		Action:    string(entry.Action),
		Detail:    entry.Detail,
		CreatedAt: entry.CreatedAt.UTC(),
	}
}

func toDomainActivity(entry *model.ActivityEntry) *domain.ActivityEntry {
	return &domain.ActivityEntry{
		ID:        entry.ID,
		ProjectID: entry.ProjectID,
		UserID:    entry.UserID,
		UserName:  entry.UserName,
		Action:    domain.ActivityAction(entry.Action),
		Detail:    entry.Detail,
		CreatedAt: entry.CreatedAt.UTC(),
	}
}
