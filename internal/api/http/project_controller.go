package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/immxrtalbeast/frameboard/internal/repository"
	"github.com/immxrtalbeast/frameboard/internal/service"
)

type ProjectController struct {
	projects service.ProjectInteractor
	activity service.ActivityInteractor
}

func NewProjectController(projects service.ProjectInteractor, activity service.ActivityInteractor) *ProjectController {
	return &ProjectController{projects: projects, activity: activity}
}

func (c *ProjectController) CreateProject(ctx *gin.Context) {
	type request struct {
		Name        string `json:"name" binding:"required"`
		Description string `json:"description"`
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

	project, err := c.projects.CreateProject(ctx.Request.Context(), studioID, req.Name, req.Description)
	if err != nil {
		ctx.JSON(projectStatus(err), gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{"project": project})
}

func (c *ProjectController) GetProject(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Param("projectID"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid project id"})
		return
	}

	project, err := c.projects.GetProject(ctx.Request.Context(), id)
	if err != nil {
		ctx.JSON(projectStatus(err), gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"project": project})
}

func (c *ProjectController) ListProjects(ctx *gin.Context) {
	studioID, err := uuid.Parse(ctx.Param("studioID"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid studio id"})
		return
	}

	projects, err := c.projects.ListProjects(ctx.Request.Context(), studioID)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"projects": projects})
}

func (c *ProjectController) UpdateProject(ctx *gin.Context) {
	type request struct {
		Name        string `json:"name"`
		Description string `json:"description"`
	}

	id, err := uuid.Parse(ctx.Param("projectID"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid project id"})
		return
	}

	var req request
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	project, err := c.projects.UpdateProject(ctx.Request.Context(), id, req.Name, req.Description)
	if err != nil {
		ctx.JSON(projectStatus(err), gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"project": project})
}

func (c *ProjectController) DeleteProject(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Param("projectID"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid project id"})
		return
	}

	if err := c.projects.DeleteProject(ctx.Request.Context(), id); err != nil {
		ctx.JSON(projectStatus(err), gin.H{"error": err.Error()})
		return
	}

	ctx.Status(http.StatusNoContent)
}

func (c *ProjectController) ListActivity(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Param("projectID"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid project id"})
		return
	}

	limit, _ := strconv.Atoi(ctx.Query("limit"))

	entries, err := c.activity.ListActivity(ctx.Request.Context(), id, limit)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"activity": entries})
}

func projectStatus(err error) int {
	switch {
	case errors.Is(err, repository.ErrProjectNotFound), errors.Is(err, repository.ErrStudioNotFound):
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}
