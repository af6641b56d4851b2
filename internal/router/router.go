package router

import (
	"github.com/devfolio/internal/db"
	"github.com/devfolio/internal/handler"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
)

// SetupRouter wires every route onto a fresh gin engine. The session secret
// signs the admin cookie; uploadDir/uploadURL control where image uploads
// land and how they are served back.
func SetupRouter(sessionSecret, uploadDir, uploadURL string) *gin.Engine {
	r := gin.New()
	r.Use(handler.RequestLogger())
	r.Use(handler.HandlePanics())

	store := cookie.NewStore([]byte(sessionSecret))
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   7 * 24 * 60 * 60,
		HttpOnly: true,
	})
	r.Use(sessions.Sessions("devfolio_session", store))

	api := handler.NewAPI(db.DB, uploadDir, uploadURL)

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	r.Static(uploadURL, uploadDir)

	public := r.Group("/api")
	{
		public.GET("/posts", api.ListPosts)
		public.GET("/posts/:slug", api.GetPost)
		public.GET("/gallery", api.ListGallery)
		public.GET("/projects", api.ListProjects)
		public.GET("/projects/:slug", api.GetProject)
		public.GET("/profile", api.GetProfile)
		public.POST("/assistant/ask", api.AskAssistant)
	}

	admin := r.Group("/admin/api")
	{
		admin.POST("/login", api.Login)
		admin.POST("/logout", api.Logout)

		authed := admin.Group("")
		authed.Use(handler.AuthRequired())
		{
			authed.GET("/me", api.Me)

			authed.GET("/posts", api.AdminListPosts)
			authed.GET("/posts/:slug", api.AdminGetPost)
			authed.POST("/posts", api.CreatePost)
			authed.PUT("/posts/:slug", api.UpdatePost)
			authed.DELETE("/posts/:slug", api.DeletePost)

			authed.GET("/gallery", api.AdminListGallery)
			authed.POST("/gallery", api.CreateGalleryPhoto)
			authed.PUT("/gallery/:id", api.UpdateGalleryPhoto)
			authed.DELETE("/gallery/:id", api.DeleteGalleryPhoto)

			authed.GET("/projects", api.AdminListProjects)
			authed.POST("/projects", api.CreateProject)
			authed.PUT("/projects/:slug", api.UpdateProject)
			authed.DELETE("/projects/:slug", api.DeleteProject)

			authed.GET("/contacts", api.AdminListContacts)
			authed.POST("/contacts", api.CreateContact)
			authed.PUT("/contacts/:id", api.UpdateContact)
			authed.DELETE("/contacts/:id", api.DeleteContact)

			authed.GET("/settings", api.GetSystemSettings)
			authed.PUT("/settings", api.UpdateSystemSettings)
			authed.POST("/settings/test-ai", api.TestAIConnection)

			authed.POST("/upload", api.UploadImage)
		}
	}

	return r
}
