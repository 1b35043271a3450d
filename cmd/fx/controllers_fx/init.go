package controllers_fx

import (
	"go.uber.org/fx"
	"tripnote/internal/api/controllers"
)

var Module = fx.Options(
	fx.Provide(controllers.NewAccountController),
	fx.Provide(controllers.NewNoteController),
	fx.Provide(controllers.NewGuideController),
	fx.Provide(controllers.NewChatController))
