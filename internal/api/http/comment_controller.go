package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/immxrtalbeast/frameboard/internal/domain"
	"github.com/immxrtalbeast/frameboard/internal/repository"
	"github.com/immxrtalbeast/frameboard/internal/service"
)

type CommentController struct {
	comments service.CommentInteractor
}

func NewCommentController(comments service.CommentInteractor) *CommentController {
	return &CommentController{comments: comments}
}

func (c *CommentController) CreateComment(ctx *gin.Context) {
	type request struct {
		Content        string `json:"content"`
		Tag            string `json:"tag"`
		ParentID       *int64 `json:"parent_id"`
		SketchData     string `json:"sketch_data"`
		AnnotationData string `json:"annotation_data"`
		ImageType      string `json:"image_type"`
	}

	sceneID, err := uuid.Parse(ctx.Param("sceneID"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid scene id"})
		return
	}

	var req request
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	actor, ok := requireActor(ctx)
	if !ok {
		return
	}

	comment, err := c.comments.CreateComment(ctx.Request.Context(), actor, service.CommentInput{
		SceneID:        sceneID,
		Content:        req.Content,
		Tag:            domain.CommentTag(req.Tag),
		ParentID:       req.ParentID,
		SketchData:     req.SketchData,
		AnnotationData: req.AnnotationData,
		ImageType:      domain.ImageType(req.ImageType),
	})
	if err != nil {
		ctx.JSON(commentStatus(err), gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{"comment": comment})
}

func (c *CommentController) ListComments(ctx *gin.Context) {
	sceneID, err := uuid.Parse(ctx.Param("sceneID"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid scene id"})
		return
	}

	comments, err := c.comments.ListComments(ctx.Request.Context(), sceneID)
	if err != nil {
		ctx.JSON(commentStatus(err), gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"comments": comments})
}

func (c *CommentController) UpdateComment(ctx *gin.Context) {
	type request struct {
		Content string `json:"content" binding:"required"`
		Tag     string `json:"tag"`
	}

	id, ok := commentID(ctx)
	if !ok {
		return
	}

	var req request
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	actor, ok := requireActor(ctx)
	if !ok {
		return
	}

	comment, err := c.comments.UpdateComment(ctx.Request.Context(), actor, id, req.Content, domain.CommentTag(req.Tag))
	if err != nil {
		ctx.JSON(commentStatus(err), gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"comment": comment})
}

func (c *CommentController) ToggleResolve(ctx *gin.Context) {
	id, ok := commentID(ctx)
	if !ok {
		return
	}

	actor, ok := requireActor(ctx)
	if !ok {
		return
	}

	comment, err := c.comments.ToggleResolve(ctx.Request.Context(), actor, id)
	if err != nil {
		ctx.JSON(commentStatus(err), gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"comment": comment})
}

func (c *CommentController) UpdateAnnotation(ctx *gin.Context) {
	type request struct {
		AnnotationData string `json:"annotation_data" binding:"required"`
	}

	id, ok := commentID(ctx)
	if !ok {
		return
	}

	var req request
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	actor, ok := requireActor(ctx)
	if !ok {
		return
	}

	comment, err := c.comments.UpdateAnnotation(ctx.Request.Context(), actor, id, req.AnnotationData)
	if err != nil {
		ctx.JSON(commentStatus(err), gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"comment": comment})
}

func (c *CommentController) DeleteComment(ctx *gin.Context) {
	id, ok := commentID(ctx)
	if !ok {
		return
	}

	actor, ok := requireActor(ctx)
	if !ok {
		return
	}

	if err := c.comments.DeleteComment(ctx.Request.Context(), actor, id); err != nil {
		ctx.JSON(commentStatus(err), gin.H{"error": err.Error()})
		return
	}

	ctx.Status(http.StatusNoContent)
}

func commentID(ctx *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Param("commentID"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid comment id"})
		return 0, false
	}
	return id, true
}

func commentStatus(err error) int {
	switch {
	case errors.Is(err, repository.ErrCommentNotFound), errors.Is(err, repository.ErrSceneNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrInvalidComment):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
