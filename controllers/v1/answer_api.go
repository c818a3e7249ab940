package apiv1

import (
	"survey-package-backend/controllers"
	"survey-package-backend/lib/answer"
	"survey-package-backend/middleware"
	apimodels "survey-package-backend/models/api"
	answerapimodels "survey-package-backend/models/api/answer"

	"github.com/gofiber/fiber/v2"
)

type answerApiController struct {
	controllers.BaseAPIController
}

func InitAnswerApiRouters(app *fiber.App) {
	controller := answerApiController{}
	app.Route("answers", func(router fiber.Router) {
		router.Use(middleware.AuthorizationRequired())
		router.Post("survey-packages/:id", controller.submit)
	})
}

// @Summary Отправка ответов
// @Tags Ответы
// @Description Сохранение ответов респондента по пакету, повторная отправка по тому же ключу отклоняется
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    int  				    	true         "package ID"
// @Param	body body	 answerapimodels.SubmitData	true	"request body"
// @Success 200 {object} apimodels.Response{data=answerapimodels.SubmitResult}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 409 {object} apimodels.Response
// @Failure 422 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/answers/survey-packages/{id} [post]
func (c *answerApiController) submit(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var payload answerapimodels.SubmitData
	if err = c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err = payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	resp, err := answer.Instance.Submit(id, middleware.GetUserID(ctx), payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка сохранения ответов")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}
