package apiv1

import (
	"survey-package-backend/controllers"
	"survey-package-backend/lib/survey"
	"survey-package-backend/middleware"
	apimodels "survey-package-backend/models/api"
	surveyapimodels "survey-package-backend/models/api/survey"

	"github.com/gofiber/fiber/v2"
)

type surveyApiController struct {
	controllers.BaseAPIController
}

func InitSurveyApiRouters(app *fiber.App) {
	controller := surveyApiController{}
	app.Route("surveys", func(router fiber.Router) {
		router.Use(middleware.AuthorizationRequired(), middleware.AdminRequired())
		router.Post("", controller.create)
		router.Get("", controller.list)
		router.Route(":id", func(idRoute fiber.Router) {
			idRoute.Get("", controller.get)
			idRoute.Put("", controller.update)
			idRoute.Delete("", controller.delete)
			idRoute.Put("sectors", controller.composeSectors)
			idRoute.Delete("sectors", controller.deleteSectors)
		})
	})
}

// @Summary Создание опроса
// @Tags Опросы
// @Description Создание опроса
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 surveyapimodels.SurveyData	true	"request body"
// @Success 200 {object} apimodels.Response{data=surveyapimodels.SurveyView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/surveys [post]
func (c *surveyApiController) create(ctx *fiber.Ctx) error {
	var payload surveyapimodels.SurveyData
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	resp, err := survey.Instance.Create(middleware.GetUserID(ctx), payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка создания опроса")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Список опросов
// @Tags Опросы
// @Description Список опросов, с mine=true только созданные текущим пользователем
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   mine          		query    bool  				    	false         "только свои"
// @Success 200 {object} apimodels.Response{data=[]surveyapimodels.SurveyView}
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/surveys [get]
func (c *surveyApiController) list(ctx *fiber.Ctx) error {
	var authorID uint64
	if ctx.QueryBool("mine") {
		authorID = middleware.GetUserID(ctx)
	}
	list, err := survey.Instance.List(authorID)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения списка опросов")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(list))
}

// @Summary Получение опроса
// @Tags Опросы
// @Description Опрос вместе с секторами
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    int  				    	true         "survey ID"
// @Success 200 {object} apimodels.Response{data=surveyapimodels.SurveyView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/surveys/{id} [get]
func (c *surveyApiController) get(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	resp, err := survey.Instance.Get(id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения опроса")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Изменение опроса
// @Tags Опросы
// @Description Изменение заголовка, описания и аббревиатуры
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    int  				    	true         "survey ID"
// @Param	body body	 surveyapimodels.SurveyData	true	"request body"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/surveys/{id} [put]
func (c *surveyApiController) update(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var payload surveyapimodels.SurveyData
	if err = c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err = payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	if err = survey.Instance.Update(id, payload); err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка изменения опроса")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Удаление опроса
// @Tags Опросы
// @Description Удаление опроса вместе с секторами и привязками к темам пакетов
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    int  				    	true         "survey ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/surveys/{id} [delete]
func (c *surveyApiController) delete(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	if err = survey.Instance.Delete(id); err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка удаления опроса")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Состав секторов опроса
// @Tags Опросы
// @Description Полная замена секторов, вопросов и вариантов ответа
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    int  				    	true         "survey ID"
// @Param	body body	 []surveyapimodels.SectorData	true	"request body"
// @Success 200 {object} apimodels.Response{data=[]surveyapimodels.SectorView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/surveys/{id}/sectors [put]
func (c *surveyApiController) composeSectors(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var payload []surveyapimodels.SectorData
	if err = c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	resp, err := survey.Instance.ComposeSectors(id, payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка сохранения секторов опроса")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Удаление секторов опроса
// @Tags Опросы
// @Description Удаление всех секторов, вопросов, вариантов и ответов по ним
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    int  				    	true         "survey ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/surveys/{id}/sectors [delete]
func (c *surveyApiController) deleteSectors(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	if err = survey.Instance.DeleteRelatedSectors(id); err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка удаления секторов опроса")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}
