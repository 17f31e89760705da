package repository

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/immxrtalbeast/frameboard/internal/domain"
)

type InMemoryUserRepository struct {
	mu     sync.RWMutex
	users  map[uuid.UUID]*domain.User
	hashes map[uuid.UUID][]byte
	emails map[string]uuid.UUID
}

func NewInMemoryUserRepository() *InMemoryUserRepository {
	return &InMemoryUserRepository{
		users:  make(map[uuid.UUID]*domain.User),
		hashes: make(map[uuid.UUID][]byte),
		emails: make(map[string]uuid.UUID),
	}
}

func (r *InMemoryUserRepository) Create(ctx context.Context, user *domain.User, passwordHash []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	key := strings.ToLower(user.Email)
	if key != "" {
		if _, ok := r.emails[key]; ok {
			return ErrUserEmailExists
		}
		r.emails[key] = user.ID
	}
	r.users[user.ID] = user
	r.hashes[user.ID] = passwordHash
	return nil
}

func (r *InMemoryUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.users[id]
	if !ok {
		return nil, ErrUserNotFound
	}
	return user, nil
}

func (r *InMemoryUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, []byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.emails[strings.ToLower(email)]
	if !ok {
		return nil, nil, ErrUserNotFound
	}
	return r.users[id], r.hashes[id], nil
}

func (r *InMemoryUserRepository) Update(ctx context.Context, user *domain.User) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[user.ID]; !ok {
		return ErrUserNotFound
	}
	r.users[user.ID] = user
	return nil
}

type InMemoryStudioRepository struct {
	mu      sync.RWMutex
	studios map[uuid.UUID]*domain.Studio
}

func NewInMemoryStudioRepository() *InMemoryStudioRepository {
	return &InMemoryStudioRepository{studios: make(map[uuid.UUID]*domain.Studio)}
}

func (r *InMemoryStudioRepository) Create(ctx context.Context, studio *domain.Studio) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.studios[studio.ID] = studio
	return nil
}

func (r *InMemoryStudioRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Studio, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	studio, ok := r.studios[id]
	if !ok {
		return nil, ErrStudioNotFound
	}
	return studio, nil
}

func (r *InMemoryStudioRepository) ListForUser(ctx context.Context, userID uuid.UUID) ([]*domain.Studio, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*domain.Studio, 0)
	for _, studio := range r.studios {
		if studio.HasMember(userID) {
			result = append(result, studio)
		}
	}
	return result, nil
}

func (r *InMemoryStudioRepository) Update(ctx context.Context, studio *domain.Studio) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.studios[studio.ID]; !ok {
		return ErrStudioNotFound
	}
	r.studios[studio.ID] = studio
	return nil
}

func (r *InMemoryStudioRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.studios[id]; !ok {
		return ErrStudioNotFound
	}
	delete(r.studios, id)
	return nil
}

func (r *InMemoryStudioRepository) AddMember(ctx context.Context, studioID, userID uuid.UUID) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	studio, ok := r.studios[studioID]
	if !ok {
		return ErrStudioNotFound
	}
	if studio.HasMember(userID) {
		return nil
	}
	studio.MemberIDs = append(studio.MemberIDs, userID)
	studio.UpdatedAt = time.Now().UTC()
	return nil
}

type InMemoryProjectRepository struct {
	mu       sync.RWMutex
	projects map[uuid.UUID]*domain.Project
}

func NewInMemoryProjectRepository() *InMemoryProjectRepository {
	return &InMemoryProjectRepository{projects: make(map[uuid.UUID]*domain.Project)}
}

func (r *InMemoryProjectRepository) Create(ctx context.Context, project *domain.Project) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.projects[project.ID] = project
	return nil
}

func (r *InMemoryProjectRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Project, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	project, ok := r.projects[id]
	if !ok {
		return nil, ErrProjectNotFound
	}
	return project, nil
}

func (r *InMemoryProjectRepository) ListByStudio(ctx context.Context, studioID uuid.UUID) ([]*domain.Project, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*domain.Project, 0)
	for _, project := range r.projects {
		if project.StudioID == studioID {
			result = append(result, project)
		}
	}
	return result, nil
}

func (r *InMemoryProjectRepository) Update(ctx context.Context, project *domain.Project) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.projects[project.ID]; !ok {
		return ErrProjectNotFound
	}
	r.projects[project.ID] = project
	return nil
}

func (r *InMemoryProjectRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.projects[id]; !ok {
		return ErrProjectNotFound
	}
	delete(r.projects, id)
	return nil
}

type InMemorySceneRepository struct {
	mu     sync.RWMutex
	scenes map[uuid.UUID]*domain.Scene
}

func NewInMemorySceneRepository() *InMemorySceneRepository {
	return &InMemorySceneRepository{scenes: make(map[uuid.UUID]*domain.Scene)}
}

func (r *InMemorySceneRepository) Create(ctx context.Context, scene *domain.Scene) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.scenes[scene.ID] = scene
	return nil
}

func (r *InMemorySceneRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Scene, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	scene, ok := r.scenes[id]
	if !ok {
		return nil, ErrSceneNotFound
	}
	return scene, nil
}

func (r *InMemorySceneRepository) ListByProject(ctx context.Context, projectID uuid.UUID) ([]*domain.Scene, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*domain.Scene, 0)
	for _, scene := range r.scenes {
		if scene.ProjectID == projectID {
			result = append(result, scene)
		}
	}
	return result, nil
}

func (r *InMemorySceneRepository) Update(ctx context.Context, scene *domain.Scene) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.scenes[scene.ID]; !ok {
		return ErrSceneNotFound
	}
	r.scenes[scene.ID] = scene
	return nil
}

func (r *InMemorySceneRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.scenes[id]; !ok {
		return ErrSceneNotFound
	}
	delete(r.scenes, id)
	return nil
}

// InMemoryCommentRepository mirrors the postgres semantics: ids are assigned
// on create and delete cascades to replies.
type InMemoryCommentRepository struct {
	mu       sync.RWMutex
	comments map[int64]*domain.Comment
	order    []int64
	nextID   int64
}

func NewInMemoryCommentRepository() *InMemoryCommentRepository {
	return &InMemoryCommentRepository{comments: make(map[int64]*domain.Comment)}
}

func (r *InMemoryCommentRepository) Create(ctx context.Context, comment *domain.Comment) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	comment.ID = r.nextID
	r.comments[comment.ID] = comment
	r.order = append(r.order, comment.ID)
	return nil
}

func (r *InMemoryCommentRepository) GetByID(ctx context.Context, id int64) (*domain.Comment, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	comment, ok := r.comments[id]
	if !ok {
		return nil, ErrCommentNotFound
	}
	return comment, nil
}

func (r *InMemoryCommentRepository) ListByScene(ctx context.Context, sceneID uuid.UUID) ([]*domain.Comment, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*domain.Comment, 0)
	for _, id := range r.order {
		comment, ok := r.comments[id]
		if ok && comment.SceneID == sceneID {
			result = append(result, comment)
		}
	}
	return result, nil
}

func (r *InMemoryCommentRepository) Update(ctx context.Context, comment *domain.Comment) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.comments[comment.ID]
	if !ok {
		return ErrCommentNotFound
	}
	existing.Content = comment.Content
	existing.Tag = comment.Tag
	existing.UpdatedAt = time.Now().UTC()
	return nil
}

func (r *InMemoryCommentRepository) ToggleResolve(ctx context.Context, id int64) (*domain.Comment, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	comment, ok := r.comments[id]
	if !ok {
		return nil, ErrCommentNotFound
	}
	comment.Resolved = !comment.Resolved
	comment.UpdatedAt = time.Now().UTC()
	return comment, nil
}

func (r *InMemoryCommentRepository) UpdateAnnotation(ctx context.Context, id int64, data string) (*domain.Comment, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	comment, ok := r.comments[id]
	if !ok {
		return nil, ErrCommentNotFound
	}
	comment.AnnotationData = data
	comment.UpdatedAt = time.Now().UTC()
	return comment, nil
}

func (r *InMemoryCommentRepository) Delete(ctx context.Context, id int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.comments[id]; !ok {
		return ErrCommentNotFound
	}

	remove := map[int64]struct{}{id: {}}
	for cid, comment := range r.comments {
		if comment.ParentID != nil && *comment.ParentID == id {
			remove[cid] = struct{}{}
		}
	}

	kept := r.order[:0]
	for _, cid := range r.order {
		if _, gone := remove[cid]; gone {
			delete(r.comments, cid)
			continue
		}
		kept = append(kept, cid)
	}
	r.order = kept
	return nil
}

type InMemoryActivityRepository struct {
	mu      sync.RWMutex
	entries []*domain.ActivityEntry
	nextID  int64
}

func NewInMemoryActivityRepository() *InMemoryActivityRepository {
	return &InMemoryActivityRepository{}
}

func (r *InMemoryActivityRepository) Record(ctx context.Context, entry *domain.ActivityEntry) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	entry.ID = r.nextID
	r.entries = append(r.entries, entry)
	return nil
}

func (r *InMemoryActivityRepository) ListByProject(ctx context.Context, projectID uuid.UUID, limit int) ([]*domain.ActivityEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = 50
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*domain.ActivityEntry, 0)
	for i := len(r.entries) - 1; i >= 0 && len(result) < limit; i-- {
		if r.entries[i].ProjectID == projectID {
			result = append(result, r.entries[i])
		}
	}
	return result, nil
}
