package apiv1

import (
	"survey-package-backend/controllers"
	"survey-package-backend/lib/workspace"
	"survey-package-backend/middleware"
	apimodels "survey-package-backend/models/api"
	workspaceapimodels "survey-package-backend/models/api/workspace"

	"github.com/gofiber/fiber/v2"
)

type workspaceApiController struct {
	controllers.BaseAPIController
}

func InitWorkspaceApiRouters(app *fiber.App) {
	controller := workspaceApiController{}
	app.Route("workspaces", func(router fiber.Router) {
		router.Use(middleware.AuthorizationRequired(), middleware.AdminRequired())
		router.Post("", controller.create)
		router.Get("", controller.list)
		router.Route(":id", func(idRoute fiber.Router) {
			idRoute.Get("", controller.get)
			idRoute.Delete("", controller.delete)
			idRoute.Post("survey-packages", controller.addPackages)
			idRoute.Post("routine", controller.createRoutine)
		})
	})
}

// @Summary Создание рабочей области
// @Tags Рабочие области
// @Description Создание рабочей области с кодом доступа
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 workspaceapimodels.WorkspaceData	true	"request body"
// @Success 200 {object} apimodels.Response{data=workspaceapimodels.WorkspaceView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/workspaces [post]
func (c *workspaceApiController) create(ctx *fiber.Ctx) error {
	var payload workspaceapimodels.WorkspaceData
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	resp, err := workspace.Instance.Create(middleware.GetUserID(ctx), payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка создания рабочей области")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Список рабочих областей
// @Tags Рабочие области
// @Description Список рабочих областей, с mine=true только свои
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   mine          		query    bool  				    	false         "только свои"
// @Success 200 {object} apimodels.Response{data=[]workspaceapimodels.WorkspaceView}
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/workspaces [get]
func (c *workspaceApiController) list(ctx *fiber.Ctx) error {
	var ownerID uint64
	if ctx.QueryBool("mine") {
		ownerID = middleware.GetUserID(ctx)
	}
	list, err := workspace.Instance.List(ownerID)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения списка рабочих областей")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(list))
}

// @Summary Получение рабочей области
// @Tags Рабочие области
// @Description Рабочая область с пакетами и расписанием
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    int  				    	true         "workspace ID"
// @Success 200 {object} apimodels.Response{data=workspaceapimodels.WorkspaceView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/workspaces/{id} [get]
func (c *workspaceApiController) get(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	resp, err := workspace.Instance.Get(id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения рабочей области")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Удаление рабочей области
// @Tags Рабочие области
// @Description Удаление рабочей области, ее расписания и ответов
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    int  				    	true         "workspace ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/workspaces/{id} [delete]
func (c *workspaceApiController) delete(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	if err = workspace.Instance.Delete(id); err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка удаления рабочей области")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Добавление пакетов в рабочую область
// @Tags Рабочие области
// @Description Добавление пакетов опросов в рабочую область
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    int  				    	true         "workspace ID"
// @Param	body body	 workspaceapimodels.AddPackagesData	true	"request body"
// @Success 200 {object} apimodels.Response{data=workspaceapimodels.WorkspaceView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 409 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/workspaces/{id}/survey-packages [post]
func (c *workspaceApiController) addPackages(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var payload workspaceapimodels.AddPackagesData
	if err = c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err = payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	resp, err := workspace.Instance.AddSurveyPackages(id, payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка добавления пакетов в рабочую область")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Создание расписания
// @Tags Рабочие области
// @Description Расписание рабочей области: стартовый пакет и пакеты по дням
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    int  				    	true         "workspace ID"
// @Param	body body	 workspaceapimodels.RoutineData	true	"request body"
// @Success 200 {object} apimodels.Response{data=workspaceapimodels.RoutineView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 409 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/workspaces/{id}/routine [post]
func (c *workspaceApiController) createRoutine(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var payload workspaceapimodels.RoutineData
	if err = c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err = payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	resp, err := workspace.Instance.CreateRoutine(id, payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка создания расписания")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}
