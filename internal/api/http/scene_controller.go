package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/immxrtalbeast/frameboard/internal/domain"
	"github.com/immxrtalbeast/frameboard/internal/repository"
	"github.com/immxrtalbeast/frameboard/internal/service"
	"github.com/immxrtalbeast/frameboard/internal/storage/images"
)

type SceneController struct {
	scenes service.SceneInteractor
	store  *images.Store
}

func NewSceneController(scenes service.SceneInteractor, store *images.Store) *SceneController {
	return &SceneController{scenes: scenes, store: store}
}

func (c *SceneController) CreateScene(ctx *gin.Context) {
	type request struct {
		Title    string `json:"title" binding:"required"`
		Position int    `json:"position"`
	}

	projectID, err := uuid.Parse(ctx.Param("projectID"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid project id"})
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

	scene, err := c.scenes.CreateScene(ctx.Request.Context(), actor, projectID, req.Title, req.Position)
	if err != nil {
		ctx.JSON(sceneStatus(err), gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{"scene": scene})
}

func (c *SceneController) GetScene(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Param("sceneID"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid scene id"})
		return
	}

	scene, err := c.scenes.GetScene(ctx.Request.Context(), id)
	if err != nil {
		ctx.JSON(sceneStatus(err), gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"scene": scene})
}

func (c *SceneController) ListScenes(ctx *gin.Context) {
	projectID, err := uuid.Parse(ctx.Param("projectID"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid project id"})
		return
	}

	scenes, err := c.scenes.ListScenes(ctx.Request.Context(), projectID)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"scenes": scenes})
}

func (c *SceneController) UpdateScene(ctx *gin.Context) {
	type request struct {
		Title    string `json:"title"`
		Position *int   `json:"position"`
	}

	id, err := uuid.Parse(ctx.Param("sceneID"))
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

	scene, err := c.scenes.UpdateScene(ctx.Request.Context(), actor, id, req.Title, req.Position)
	if err != nil {
		ctx.JSON(sceneStatus(err), gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"scene": scene})
}

func (c *SceneController) DeleteScene(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Param("sceneID"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid scene id"})
		return
	}

	actor, ok := requireActor(ctx)
	if !ok {
		return
	}

	if err := c.scenes.DeleteScene(ctx.Request.Context(), actor, id); err != nil {
		ctx.JSON(sceneStatus(err), gin.H{"error": err.Error()})
		return
	}

	ctx.Status(http.StatusNoContent)
}

// UploadImage accepts a base64 data URL for one of the scene's image
// variants and stores it through the image store.
func (c *SceneController) UploadImage(ctx *gin.Context) {
	type request struct {
		Variant string `json:"variant" binding:"required"`
		DataURL string `json:"data_url" binding:"required"`
	}

	id, err := uuid.Parse(ctx.Param("sceneID"))
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

	scene, err := c.scenes.AttachImageDataURL(ctx.Request.Context(), actor, id, domain.ImageType(req.Variant), req.DataURL)
	if err != nil {
		switch {
		case errors.Is(err, images.ErrInvalidDataURL), errors.Is(err, images.ErrUnknownVariant):
			ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			ctx.JSON(sceneStatus(err), gin.H{"error": err.Error()})
		}
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"scene": scene})
}

// DownloadImage serves the stored image file for a scene variant.
func (c *SceneController) DownloadImage(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Param("sceneID"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid scene id"})
		return
	}

	variant := domain.ImageType(ctx.Param("variant"))
	if !variant.Valid() {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "unknown image variant"})
		return
	}

	scene, err := c.scenes.GetScene(ctx.Request.Context(), id)
	if err != nil {
		ctx.JSON(sceneStatus(err), gin.H{"error": err.Error()})
		return
	}

	rel := scene.ImagePath(variant)
	if rel == "" {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "image not uploaded"})
		return
	}

	ctx.File(c.store.Path(rel))
}

func sceneStatus(err error) int {
	switch {
	case errors.Is(err, repository.ErrSceneNotFound), errors.Is(err, repository.ErrProjectNotFound):
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}
