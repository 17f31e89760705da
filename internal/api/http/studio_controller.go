package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/immxrtalbeast/frameboard/internal/repository"
	"github.com/immxrtalbeast/frameboard/internal/service"
)

type StudioController struct {
	studios service.StudioInteractor
}

func NewStudioController(studios service.StudioInteractor) *StudioController {
	return &StudioController{studios: studios}
}

func (c *StudioController) CreateStudio(ctx *gin.Context) {
	type request struct {
		Name string `json:"name" binding:"required"`
	}

	actor, ok := actorFrom(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req request
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	studio, err := c.studios.CreateStudio(ctx.Request.Context(), req.Name, actor.UserID)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{"studio": studio})
}

func (c *StudioController) GetStudio(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Param("studioID"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid studio id"})
		return
	}

	studio, err := c.studios.GetStudio(ctx.Request.Context(), id)
	if err != nil {
		ctx.JSON(studioStatus(err), gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"studio": studio})
}

func (c *StudioController) ListStudios(ctx *gin.Context) {
	actor, ok := actorFrom(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	studios, err := c.studios.ListStudios(ctx.Request.Context(), actor.UserID)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"studios": studios})
}

func (c *StudioController) RenameStudio(ctx *gin.Context) {
	type request struct {
		Name string `json:"name" binding:"required"`
	}

	id, err := uuid.Parse(ctx.Param("studioID"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid studio id"})
		return
	}

	var req request
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	studio, err := c.studios.RenameStudio(ctx.Request.Context(), id, req.Name)
	if err != nil {
		ctx.JSON(studioStatus(err), gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"studio": studio})
}

func (c *StudioController) DeleteStudio(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Param("studioID"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid studio id"})
		return
	}

	if err := c.studios.DeleteStudio(ctx.Request.Context(), id); err != nil {
		ctx.JSON(studioStatus(err), gin.H{"error": err.Error()})
		return
	}

	ctx.Status(http.StatusNoContent)
}

func (c *StudioController) AddMember(ctx *gin.Context) {
	type request struct {
		UserID string `json:"user_id" binding:"required"`
	}

	studioID, err := uuid.Parse(ctx.Param("studioID"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid studio id"})
		return
	}

	var req request
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}

	if err := c.studios.AddMember(ctx.Request.Context(), studioID, userID); err != nil {
		ctx.JSON(studioStatus(err), gin.H{"error": err.Error()})
		return
	}

	ctx.Status(http.StatusNoContent)
}

func studioStatus(err error) int {
	if errors.Is(err, repository.ErrStudioNotFound) {
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}
