package publicapi

import (
	"survey-package-backend/controllers"
	"survey-package-backend/lib/workspace"
	apimodels "survey-package-backend/models/api"
	workspaceapimodels "survey-package-backend/models/api/workspace"

	"github.com/gofiber/fiber/v2"
)

type kickOffApiController struct {
	controllers.BaseAPIController
}

func InitKickOffApiRouters(app *fiber.App) {
	controller := kickOffApiController{}
	app.Route("kick-off", func(router fiber.Router) {
		router.Post("", controller.kickOff)
	})
}

// @Summary Стартовый пакет рабочей области
// @Tags Публичные
// @Description По ключу респондента и коду доступа возвращает стартовый пакет расписания
// @Param	body body	 workspaceapimodels.KickOffData	true	"request body"
// @Success 200 {object} apimodels.Response{data=workspaceapimodels.KickOffView}
// @Failure 400 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 422 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/public/kick-off [post]
func (c *kickOffApiController) kickOff(ctx *fiber.Ctx) error {
	var payload workspaceapimodels.KickOffData
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	resp, err := workspace.Instance.KickOff(payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения стартового пакета")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}
