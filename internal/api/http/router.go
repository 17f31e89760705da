package http

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	jwtlib "github.com/immxrtalbeast/frameboard/internal/lib/jwt"
)

type Controllers struct {
	Auth     *AuthController
	Studio   *StudioController
	Project  *ProjectController
	Scene    *SceneController
	Comment  *CommentController
	Realtime *RealtimeController
}

func SetupRouter(tokens *jwtlib.Manager, allowOrigins []string, c Controllers) *gin.Engine {
	router := gin.Default()

	config := cors.DefaultConfig()
	config.AllowOrigins = allowOrigins
	config.AllowCredentials = true
	config.AllowHeaders = []string{
		"Authorization",
		"Content-Type",
		"Origin",
		"Accept",
	}
	config.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"}
	router.Use(cors.New(config))

	router.GET("/healthz", func(ctx *gin.Context) {
		ctx.JSON(200, gin.H{"status": "ok"})
	})

	api := router.Group("/api")

	auth := api.Group("/auth")
	auth.POST("/register", c.Auth.Register)
	auth.POST("/login", c.Auth.Login)

	// The websocket handshake authenticates via query token, not the
	// Authorization header, so it stays outside the middleware.
	api.GET("/scenes/:sceneID/ws", c.Realtime.Connect)

	protected := api.Group("")
	protected.Use(AuthMiddleware(tokens))

	studios := protected.Group("/studios")
	studios.POST("", c.Studio.CreateStudio)
	studios.GET("", c.Studio.ListStudios)
	studios.GET("/:studioID", c.Studio.GetStudio)
	studios.PATCH("/:studioID", c.Studio.RenameStudio)
	studios.DELETE("/:studioID", c.Studio.DeleteStudio)
	studios.POST("/:studioID/members", c.Studio.AddMember)
	studios.POST("/:studioID/projects", c.Project.CreateProject)
	studios.GET("/:studioID/projects", c.Project.ListProjects)

	projects := protected.Group("/projects")
	projects.GET("/:projectID", c.Project.GetProject)
	projects.PATCH("/:projectID", c.Project.UpdateProject)
	projects.DELETE("/:projectID", c.Project.DeleteProject)
	projects.GET("/:projectID/activity", c.Project.ListActivity)
	projects.POST("/:projectID/scenes", c.Scene.CreateScene)
	projects.GET("/:projectID/scenes", c.Scene.ListScenes)

	scenes := protected.Group("/scenes")
	scenes.GET("/:sceneID", c.Scene.GetScene)
	scenes.PATCH("/:sceneID", c.Scene.UpdateScene)
	scenes.DELETE("/:sceneID", c.Scene.DeleteScene)
	scenes.POST("/:sceneID/image", c.Scene.UploadImage)
	scenes.GET("/:sceneID/image/:variant", c.Scene.DownloadImage)
	scenes.POST("/:sceneID/comments", c.Comment.CreateComment)
	scenes.GET("/:sceneID/comments", c.Comment.ListComments)

	comments := protected.Group("/comments")
	comments.PATCH("/:commentID", c.Comment.UpdateComment)
	comments.PATCH("/:commentID/resolve", c.Comment.ToggleResolve)
	comments.PATCH("/:commentID/annotation", c.Comment.UpdateAnnotation)
	comments.DELETE("/:commentID", c.Comment.DeleteComment)

	return router
}
