package apiv1

import (
	"survey-package-backend/controllers"
	surveypackage "survey-package-backend/lib/survey-package"
	"survey-package-backend/middleware"
	apimodels "survey-package-backend/models/api"
	packageapimodels "survey-package-backend/models/api/survey-package"

	"github.com/gofiber/fiber/v2"
	log "github.com/sirupsen/logrus"
)

type surveyPackageApiController struct {
	controllers.BaseAPIController
}

func InitSurveyPackageApiRouters(app *fiber.App) {
	controller := surveyPackageApiController{}
	app.Route("survey-packages", func(router fiber.Router) {
		router.Use(middleware.AuthorizationRequired(), middleware.AdminRequired())
		router.Post("", controller.create)
		router.Get("", controller.list)
		router.Route(":id", func(idRoute fiber.Router) {
			idRoute.Get("", controller.get)
			idRoute.Put("", controller.update)
			idRoute.Delete("", controller.delete)
			idRoute.Put("logo", controller.uploadLogo)
			idRoute.Post("contacts", controller.addContacts)
			idRoute.Post("parts", controller.createParts)
			idRoute.Put("parts", controller.composeParts)
			idRoute.Delete("parts", controller.deleteParts)
		})
	})
}

// @Summary Создание пакета опросов
// @Tags Пакеты опросов
// @Description Создание пакета опросов вместе с контактами
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 packageapimodels.PackageData	true	"request body"
// @Success 200 {object} apimodels.Response{data=packageapimodels.PackageView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/survey-packages [post]
func (c *surveyPackageApiController) create(ctx *fiber.Ctx) error {
	var payload packageapimodels.PackageData
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	resp, err := surveypackage.Instance.Create(middleware.GetUserID(ctx), payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка создания пакета опросов")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Список пакетов опросов
// @Tags Пакеты опросов
// @Description Список пакетов опросов, с mine=true только созданные текущим пользователем
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   mine          		query    bool  				    	false         "только свои"
// @Success 200 {object} apimodels.Response{data=[]packageapimodels.PackageView}
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/survey-packages [get]
func (c *surveyPackageApiController) list(ctx *fiber.Ctx) error {
	var authorID uint64
	if ctx.QueryBool("mine") {
		authorID = middleware.GetUserID(ctx)
	}
	list, err := surveypackage.Instance.List(authorID)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения списка пакетов опросов")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(list))
}

// @Summary Получение пакета опросов
// @Tags Пакеты опросов
// @Description Пакет опросов с частями, темами и опросами
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    int  				    	true         "package ID"
// @Success 200 {object} apimodels.Response{data=packageapimodels.PackageView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/survey-packages/{id} [get]
func (c *surveyPackageApiController) get(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	resp, err := surveypackage.Instance.Get(id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения пакета опросов")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Изменение пакета опросов
// @Tags Пакеты опросов
// @Description Изменение пакета, переданный список контактов заменяет текущий
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    int  				    	true         "package ID"
// @Param	body body	 packageapimodels.PackageData	true	"request body"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/survey-packages/{id} [put]
func (c *surveyPackageApiController) update(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var payload packageapimodels.PackageData
	if err = c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err = payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	if err = surveypackage.Instance.Update(id, payload); err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка изменения пакета опросов")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Удаление пакета опросов
// @Tags Пакеты опросов
// @Description Удаление пакета, его частей, ответов и расписаний. Опросы не удаляются
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    int  				    	true         "package ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/survey-packages/{id} [delete]
func (c *surveyPackageApiController) delete(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	if err = surveypackage.Instance.Delete(id); err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка удаления пакета опросов")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Загрузка логотипа
// @Tags Пакеты опросов
// @Description Загрузка логотипа пакета, предыдущий логотип удаляется
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    int  				    	true         "package ID"
// @Param   logo				formData	file 	true 	"логотип"
// @Success 200 {object} apimodels.Response{data=packageapimodels.PackageView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/survey-packages/{id}/logo [put]
func (c *surveyPackageApiController) uploadLogo(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	file, err := ctx.FormFile("logo")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	buffer, err := file.Open()
	if err != nil {
		log.WithError(err).Error("Ошибка при получении файла логотипа")
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	defer buffer.Close()

	contentType := file.Header.Get(fiber.HeaderContentType)
	resp, err := surveypackage.Instance.UploadLogo(ctx.UserContext(), id, file.Filename, buffer, file.Size, contentType)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка загрузки логотипа")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Добавление контактов
// @Tags Пакеты опросов
// @Description Добавление контактов к пакету
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    int  				    	true         "package ID"
// @Param	body body	 []packageapimodels.ContactData	true	"request body"
// @Success 200 {object} apimodels.Response{data=packageapimodels.PackageView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/survey-packages/{id}/contacts [post]
func (c *surveyPackageApiController) addContacts(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var payload packageapimodels.ContactList
	if err = c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err = payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	resp, err := surveypackage.Instance.AddContacts(id, payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка добавления контактов")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Добавление частей
// @Tags Пакеты опросов
// @Description Добавление частей с темами к существующим
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    int  				    	true         "package ID"
// @Param	body body	 []packageapimodels.PartData	true	"request body"
// @Success 200 {object} apimodels.Response{data=[]packageapimodels.PartView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/survey-packages/{id}/parts [post]
func (c *surveyPackageApiController) createParts(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var payload []packageapimodels.PartData
	if err = c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	resp, err := surveypackage.Instance.CreateParts(id, payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка добавления частей пакета")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Состав частей пакета
// @Tags Пакеты опросов
// @Description Полная замена частей, тем и привязок опросов
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    int  				    	true         "package ID"
// @Param	body body	 []packageapimodels.PartData	true	"request body"
// @Success 200 {object} apimodels.Response{data=[]packageapimodels.PartView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/survey-packages/{id}/parts [put]
func (c *surveyPackageApiController) composeParts(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var payload []packageapimodels.PartData
	if err = c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	resp, err := surveypackage.Instance.ComposeParts(id, payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка сохранения частей пакета")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Удаление частей пакета
// @Tags Пакеты опросов
// @Description Удаление всех частей, тем и привязок опросов пакета
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    int  				    	true         "package ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/survey-packages/{id}/parts [delete]
func (c *surveyPackageApiController) deleteParts(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	if err = surveypackage.Instance.DeleteRelatedComponents(id); err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка удаления частей пакета")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}
