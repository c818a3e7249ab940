package apiv1

import (
	"survey-package-backend/controllers"
	surveypackage "survey-package-backend/lib/survey-package"
	"survey-package-backend/middleware"
	apimodels "survey-package-backend/models/api"
	packageapimodels "survey-package-backend/models/api/survey-package"

	"github.com/gofiber/fiber/v2"
)

type packagePartApiController struct {
	controllers.BaseAPIController
}

func InitPackagePartApiRouters(app *fiber.App) {
	controller := packagePartApiController{}
	app.Route("parts", func(router fiber.Router) {
		router.Use(middleware.AuthorizationRequired(), middleware.AdminRequired())
		router.Route(":id", func(idRoute fiber.Router) {
			idRoute.Get("", controller.getPart)
			idRoute.Patch("", controller.updatePartTitle)
			idRoute.Delete("", controller.deletePart)
			idRoute.Post("subjects", controller.createSubject)
		})
	})
	app.Route("subjects", func(router fiber.Router) {
		router.Use(middleware.AuthorizationRequired(), middleware.AdminRequired())
		router.Route(":id", func(idRoute fiber.Router) {
			idRoute.Get("", controller.getSubject)
			idRoute.Patch("", controller.updateSubject)
			idRoute.Delete("", controller.deleteSubject)
			idRoute.Post("surveys", controller.associateSurveys)
			idRoute.Put("surveys", controller.replaceSurveys)
		})
	})
}

// @Summary Получение части
// @Tags Пакеты опросов. Части
// @Description Часть пакета с темами и опросами
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    int  				    	true         "part ID"
// @Success 200 {object} apimodels.Response{data=packageapimodels.PartView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/parts/{id} [get]
func (c *packagePartApiController) getPart(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	resp, err := surveypackage.Instance.GetPart(id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения части пакета")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Изменение заголовка части
// @Tags Пакеты опросов. Части
// @Description Изменение заголовка части
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    int  				    	true         "part ID"
// @Param	body body	 packageapimodels.PartTitle	true	"request body"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/parts/{id} [patch]
func (c *packagePartApiController) updatePartTitle(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var payload packageapimodels.PartTitle
	if err = c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err = payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	if err = surveypackage.Instance.UpdatePartTitle(id, payload); err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка изменения части пакета")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Удаление части
// @Tags Пакеты опросов. Части
// @Description Удаление части с ее темами и привязками опросов
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    int  				    	true         "part ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/parts/{id} [delete]
func (c *packagePartApiController) deletePart(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	if err = surveypackage.Instance.DeletePart(id); err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка удаления части пакета")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Добавление темы
// @Tags Пакеты опросов. Части
// @Description Добавление темы в часть вместе с опросами
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    int  				    	true         "part ID"
// @Param	body body	 packageapimodels.SubjectData	true	"request body"
// @Success 200 {object} apimodels.Response{data=packageapimodels.SubjectView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/parts/{id}/subjects [post]
func (c *packagePartApiController) createSubject(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var payload packageapimodels.SubjectData
	if err = c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err = payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	resp, err := surveypackage.Instance.CreateSubject(id, payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка добавления темы")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Получение темы
// @Tags Пакеты опросов. Темы
// @Description Тема с опросами
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    int  				    	true         "subject ID"
// @Success 200 {object} apimodels.Response{data=packageapimodels.SubjectView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/subjects/{id} [get]
func (c *packagePartApiController) getSubject(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	resp, err := surveypackage.Instance.GetSubject(id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения темы")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Изменение темы
// @Tags Пакеты опросов. Темы
// @Description Изменение номера и заголовка темы
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    int  				    	true         "subject ID"
// @Param	body body	 packageapimodels.SubjectUpdate	true	"request body"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/subjects/{id} [patch]
func (c *packagePartApiController) updateSubject(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var payload packageapimodels.SubjectUpdate
	if err = c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err = payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	if err = surveypackage.Instance.UpdateSubject(id, payload); err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка изменения темы")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Удаление темы
// @Tags Пакеты опросов. Темы
// @Description Удаление темы и ее привязок опросов
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    int  				    	true         "subject ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/subjects/{id} [delete]
func (c *packagePartApiController) deleteSubject(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	if err = surveypackage.Instance.DeleteSubject(id); err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка удаления темы")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Привязка опросов к теме
// @Tags Пакеты опросов. Темы
// @Description Добавление опросов к уже привязанным
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    int  				    	true         "subject ID"
// @Param	body body	 []packageapimodels.SubjectSurveyData	true	"request body"
// @Success 200 {object} apimodels.Response{data=packageapimodels.SubjectView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/subjects/{id}/surveys [post]
func (c *packagePartApiController) associateSurveys(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var payload []packageapimodels.SubjectSurveyData
	if err = c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	resp, err := surveypackage.Instance.AssociateSubjectWithSurveys(id, payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка привязки опросов к теме")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Замена опросов темы
// @Tags Пакеты опросов. Темы
// @Description Переданный список опросов заменяет текущие привязки
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    int  				    	true         "subject ID"
// @Param	body body	 []packageapimodels.SubjectSurveyData	true	"request body"
// @Success 200 {object} apimodels.Response{data=packageapimodels.SubjectView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/subjects/{id}/surveys [put]
func (c *packagePartApiController) replaceSurveys(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var payload []packageapimodels.SubjectSurveyData
	if err = c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	resp, err := surveypackage.Instance.ReplaceSubjectSurveys(id, payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка замены опросов темы")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}
