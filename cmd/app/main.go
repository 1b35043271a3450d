package main

import (
	"context"
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/fx"
	"gorm.io/gorm"
	"tripnote/cmd/fx/account_fx"
	"tripnote/cmd/fx/chat_fx"
	"tripnote/cmd/fx/controllers_fx"
	"tripnote/cmd/fx/db_fx"
	"tripnote/cmd/fx/guide_fx"
	"tripnote/cmd/fx/note_fx"
	"tripnote/cmd/fx/pipeline_fx"
	"tripnote/internal/api/controllers"
	"tripnote/internal/infra"
	"tripnote/pkg/middleware"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, reading config from environment")
	}

	app := fx.New(
		db_fx.Module,
		pipeline_fx.Module,
		account_fx.Module,
		note_fx.Module,
		guide_fx.Module,
		chat_fx.Module,
		controllers_fx.Module,

		fx.Provide(ProvideRouter),
		fx.Invoke(StartServer),
	)

	app.Run()
}

func StartServer(lc fx.Lifecycle, engine *gin.Engine, db *gorm.DB) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				port := os.Getenv("PORT")
				if port == "" {
					port = "8080"
				}
				log.Printf("Starting HTTP server at :%s", port)
				if err := engine.Run(":" + port); err != nil {
					log.Fatalf("Failed to start server: %v", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Println("Stopping HTTP server")
			infra.ClosePostgresql(db)
			return nil
		},
	})
}

func ProvideRouter(
	accountController *controllers.AccountController,
	noteController *controllers.NoteController,
	guideController *controllers.GuideController,
	chatController *controllers.ChatController) *gin.Engine {

	r := gin.Default()
	r.Use(gin.Logger())
	r.Use(gin.Recovery())
	r.Use(middleware.CORSMiddleware())
	r.Use(middleware.TraceIDMiddleware())

	RegisterRoutes(r, accountController, noteController, guideController, chatController)

	return r
}

func RegisterRoutes(r *gin.Engine,
	accountController *controllers.AccountController,
	noteController *controllers.NoteController,
	guideController *controllers.GuideController,
	chatController *controllers.ChatController) {

	api := r.Group("/api")

	api.POST("/register", accountController.Register)
	api.POST("/login", accountController.Login)

	authed := api.Group("")
	authed.Use(middleware.JWTAuthMiddleware())

	authed.POST("/notes", noteController.ImportNote)
	authed.POST("/notes/parse", noteController.ParsePost)
	authed.POST("/notes/analyze", noteController.AnalyzeParsed)
	authed.GET("/notes", noteController.ListNotes)
	authed.GET("/notes/:id", noteController.GetNote)
	authed.GET("/notes/:id/coordinates", noteController.DayCoordinates)
	authed.DELETE("/notes/:id", noteController.DeleteNote)
	authed.POST("/chat", chatController.Chat)

	authed.GET("/guide", guideController.CreateGuide)
	authed.GET("/itineraries", guideController.ListGuides)
	authed.PUT("/itineraries/:id", guideController.UpdateGuide)
	authed.DELETE("/itineraries/:id", guideController.DeleteGuide)
}
