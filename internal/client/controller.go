package client

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/immxrtalbeast/frameboard/internal/domain"
	"github.com/immxrtalbeast/frameboard/internal/realtime"
	"github.com/immxrtalbeast/frameboard/lib/logger/sl"
)

var ErrParentNotFound = errors.New("parent comment not found")

// TagFilter narrows the comment view to one tag, or shows everything.
type TagFilter string

const (
	FilterAll        TagFilter = "all"
	FilterComment    TagFilter = TagFilter(domain.TagComment)
	FilterRevision   TagFilter = TagFilter(domain.TagRevision)
	FilterAnnotation TagFilter = TagFilter(domain.TagAnnotation)
)

// Draft is the user-supplied part of a new comment.
type Draft struct {
	SceneID        uuid.UUID
	Content        string
	Tag            domain.CommentTag
	SketchData     string
	AnnotationData string
	ImageType      domain.ImageType
	ParentID       *int64
}

// Writer performs durable comment creation. Implemented by the comment
// service directly or by an HTTP client against the REST API.
type Writer interface {
	Create(ctx context.Context, draft Draft) (*domain.Comment, error)
}

// ResolveWriter optionally persists resolve toggles. The controller only
// manages the in-memory flip; durability is the host's concern.
type ResolveWriter interface {
	ToggleResolve(ctx context.Context, commentID int64) error
}

// Announcer relays the lifecycle event of a successful durable write to the
// rest of the room. Hosts typically wire it to Feed.Notify. It is never
// invoked for an offline placeholder.
type Announcer func(event realtime.Event)

// Hooks receive merged state changes so a host UI can re-render. Nil
// callbacks are skipped. Callbacks run while the controller lock is held;
// they must not call back into the controller.
type Hooks struct {
	OnCommentAdded      func(c *domain.Comment)
	OnCommentUpdated    func(c *domain.Comment)
	OnCommentDeleted    func(id int64, deletedBy string)
	OnCommentResolved   func(id int64, resolved bool, resolvedBy string)
	OnAnnotationUpdated func(id int64, updatedBy string)
	OnTyping            func(userID uuid.UUID, userName string, isTyping bool)
}

// Controller owns the local view of scene comments: optimistic local
// mutation, durable write-through, and id-keyed merge of peer broadcasts.
// All merge operations are keyed by comment id, never by position, so a
// broadcast arriving before the local write acknowledgement cannot duplicate
// or clobber anything.
type Controller struct {
	writer   Writer
	resolver ResolveWriter
	announce Announcer
	hooks    Hooks
	log      *slog.Logger

	mu       sync.Mutex
	comments []*domain.Comment
	// replyTo is the single open reply box; at most one at a time.
	replyTo *int64
	filter  TagFilter
	// lastPlaceholder guards against two fallback comments minted in the
	// same millisecond.
	lastPlaceholder int64
}

func NewController(writer Writer, log *slog.Logger) *Controller {
	if log == nil {
		log = slog.Default()
	}
	return &Controller{
		writer: writer,
		log:    log,
		filter: FilterAll,
	}
}

// SetHooks registers host callbacks. Call before feeding events.
func (c *Controller) SetHooks(hooks Hooks) {
	c.mu.Lock()
	c.hooks = hooks
	c.mu.Unlock()
}

// SetResolveWriter wires optional resolve durability.
func (c *Controller) SetResolveWriter(w ResolveWriter) {
	c.mu.Lock()
	c.resolver = w
	c.mu.Unlock()
}

// SetAnnouncer wires the optional outbound event relay.
func (c *Controller) SetAnnouncer(a Announcer) {
	c.mu.Lock()
	c.announce = a
	c.mu.Unlock()
}

// LoadScene seeds the controller with the durable comment list of a scene,
// replacing whatever it held for that scene. Other scenes are untouched.
func (c *Controller) LoadScene(sceneID uuid.UUID, comments []*domain.Comment) {
	c.mu.Lock()
	defer c.mu.Unlock()

	kept := c.comments[:0]
	for _, existing := range c.comments {
		if existing.SceneID != sceneID {
			kept = append(kept, existing)
		}
	}
	c.comments = kept
	for _, comment := range comments {
		c.comments = append(c.comments, comment.Clone())
	}
}

// AddComment writes the draft through to durable storage and appends the
// result locally. On write failure the comment is kept locally under a
// placeholder id: responsiveness over consistency, user input is never
// lost.
func (c *Controller) AddComment(ctx context.Context, draft Draft) (*domain.Comment, error) {
	if draft.Tag == "" {
		draft.Tag = domain.TagComment
	}

	created, err := c.writer.Create(ctx, draft)
	durable := err == nil
	if err != nil {
		c.log.Warn("durable create failed, keeping comment locally", sl.Err(err))
		created = c.localComment(draft)
	}

	c.mu.Lock()
	c.upsertLocked(created)
	announce := c.announce
	c.mu.Unlock()

	if durable && announce != nil {
		announce(realtime.Event{
			Type:    realtime.EventCommentAdded,
			SceneID: created.SceneID,
			Comment: created.Clone(),
		})
	}
	return created.Clone(), nil
}

// AddReply creates a reply under parentID. Whitespace-only content is a
// no-op. Replying to a reply attaches to the original top-level parent:
// threading is two levels deep, never more.
func (c *Controller) AddReply(ctx context.Context, parentID int64, content string) (*domain.Comment, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, nil
	}

	c.mu.Lock()
	parent := c.findLocked(parentID)
	if parent == nil {
		c.mu.Unlock()
		return nil, ErrParentNotFound
	}
	if parent.ParentID != nil {
		parentID = *parent.ParentID
		if top := c.findLocked(parentID); top != nil {
			parent = top
		}
	}
	sceneID := parent.SceneID
	c.mu.Unlock()

	return c.AddComment(ctx, Draft{
		SceneID:  sceneID,
		Content:  content,
		Tag:      domain.TagComment,
		ParentID: &parentID,
	})
}

// ToggleResolve flips the resolved flag locally. The durable PATCH is issued
// through the optional ResolveWriter; its failure does not undo the local
// flip.
func (c *Controller) ToggleResolve(ctx context.Context, commentID int64) bool {
	c.mu.Lock()
	comment := c.findLocked(commentID)
	if comment == nil {
		c.mu.Unlock()
		return false
	}
	comment.Resolved = !comment.Resolved
	resolver := c.resolver
	c.mu.Unlock()

	if resolver != nil {
		if err := resolver.ToggleResolve(ctx, commentID); err != nil {
			c.log.Warn("resolve write-through failed", sl.Err(err))
		}
	}
	return true
}

// OpenReply marks parentID as the active reply target, closing any other
// open reply box.
func (c *Controller) OpenReply(parentID int64) {
	c.mu.Lock()
	c.replyTo = &parentID
	c.mu.Unlock()
}

func (c *Controller) CloseReply() {
	c.mu.Lock()
	c.replyTo = nil
	c.mu.Unlock()
}

// ReplyTarget returns the parent id of the open reply box, if any.
func (c *Controller) ReplyTarget() (int64, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.replyTo == nil {
		return 0, false
	}
	return *c.replyTo, true
}

// SetFilter switches the active tag filter.
func (c *Controller) SetFilter(filter TagFilter) {
	c.mu.Lock()
	c.filter = filter
	c.mu.Unlock()
}

// FilteredComments returns the scene's comments matching the active filter,
// in insertion order.
func (c *Controller) FilteredComments(sceneID uuid.UUID) []*domain.Comment {
	c.mu.Lock()
	defer c.mu.Unlock()

	var out []*domain.Comment
	for _, comment := range c.comments {
		if comment.SceneID != sceneID {
			continue
		}
		if c.filter != FilterAll && comment.Tag != domain.CommentTag(c.filter) {
			continue
		}
		out = append(out, comment.Clone())
	}
	return out
}

// ApplyEvent merges one hub broadcast into local state. Events referencing
// ids not present locally are dropped: a partial update payload is never
// promoted into a synthetic comment.
func (c *Controller) ApplyEvent(event realtime.Event) {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch event.Type {
	case realtime.EventCommentAdded:
		if event.Comment == nil {
			return
		}
		if c.findLocked(event.Comment.ID) != nil {
			return // duplicate delivery, idempotent
		}
		comment := event.Comment.Clone()
		c.comments = append(c.comments, comment)
		if c.hooks.OnCommentAdded != nil {
			c.hooks.OnCommentAdded(comment)
		}

	case realtime.EventCommentUpdated:
		if event.Comment == nil {
			return
		}
		existing := c.findLocked(event.Comment.ID)
		if existing == nil {
			return
		}
		// Only mutable fields move; id, scene and parent are immutable.
		existing.Content = event.Comment.Content
		existing.Resolved = event.Comment.Resolved
		existing.Tag = event.Comment.Tag
		if c.hooks.OnCommentUpdated != nil {
			c.hooks.OnCommentUpdated(existing)
		}

	case realtime.EventCommentDeleted:
		if !c.removeLocked(event.CommentID) {
			return
		}
		if c.hooks.OnCommentDeleted != nil {
			c.hooks.OnCommentDeleted(event.CommentID, event.DeletedBy)
		}

	case realtime.EventCommentResolved:
		existing := c.findLocked(event.CommentID)
		if existing == nil {
			return
		}
		existing.Resolved = event.Resolved
		if c.hooks.OnCommentResolved != nil {
			c.hooks.OnCommentResolved(event.CommentID, event.Resolved, event.ResolvedBy)
		}

	case realtime.EventAnnotationUpdated:
		existing := c.findLocked(event.CommentID)
		if existing == nil {
			return
		}
		existing.AnnotationData = event.Annotation
		if c.hooks.OnAnnotationUpdated != nil {
			c.hooks.OnAnnotationUpdated(event.CommentID, event.UpdatedBy)
		}

	case realtime.EventUserTyping:
		if c.hooks.OnTyping != nil {
			c.hooks.OnTyping(event.UserID, event.UserName, event.IsTyping)
		}

	default:
		c.log.Debug("dropping unrecognized event", slog.String("type", string(event.Type)))
	}
}

// localComment mints the offline fallback with a timestamp placeholder id.
func (c *Controller) localComment(draft Draft) *domain.Comment {
	c.mu.Lock()
	id := time.Now().UnixMilli()
	if id <= c.lastPlaceholder {
		id = c.lastPlaceholder + 1
	}
	c.lastPlaceholder = id
	c.mu.Unlock()

	now := time.Now().UTC()
	return &domain.Comment{
		ID:             id,
		SceneID:        draft.SceneID,
		Content:        draft.Content,
		Tag:            draft.Tag,
		ParentID:       draft.ParentID,
		SketchData:     draft.SketchData,
		AnnotationData: draft.AnnotationData,
		ImageType:      draft.ImageType,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

func (c *Controller) findLocked(id int64) *domain.Comment {
	for _, comment := range c.comments {
		if comment.ID == id {
			return comment
		}
	}
	return nil
}

func (c *Controller) upsertLocked(comment *domain.Comment) {
	if existing := c.findLocked(comment.ID); existing != nil {
		*existing = *comment.Clone()
		return
	}
	c.comments = append(c.comments, comment.Clone())
}

// removeLocked deletes the comment and cascades to replies whose parent it
// was. Reports whether anything was removed.
func (c *Controller) removeLocked(id int64) bool {
	kept := c.comments[:0]
	removed := false
	for _, comment := range c.comments {
		if comment.ID == id || (comment.ParentID != nil && *comment.ParentID == id) {
			removed = true
			continue
		}
		kept = append(kept, comment)
	}
	c.comments = kept
	return removed
}
