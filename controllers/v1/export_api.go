package apiv1

import (
	"fmt"
	"net/url"
	"strings"
	"survey-package-backend/controllers"
	"survey-package-backend/lib/export"
	"survey-package-backend/middleware"
	apimodels "survey-package-backend/models/api"

	"github.com/gofiber/fiber/v2"
)

const (
	xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	pdfContentType  = "application/pdf"
)

type exportApiController struct {
	controllers.BaseAPIController
}

func InitExportApiRouters(app *fiber.App) {
	controller := exportApiController{}
	app.Route("downloads", func(router fiber.Router) {
		router.Use(middleware.AuthorizationRequired(), middleware.AdminRequired())
		router.Get("survey-packages/:id/structure", controller.structure)
		router.Get("survey-packages/:id/structure/pdf", controller.structurePdf)
		router.Get("workspaces/:workspace/survey-packages/:id/responses", controller.responses)
	})
}

// @Summary Выгрузка ответов
// @Tags Выгрузки
// @Description Ответы респондентов рабочей области по пакету, xlsx
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   workspace          	path    int  				    	true         "workspace ID"
// @Param   id          		path    int  				    	true         "package ID"
// @Success 200 {file} file
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/downloads/workspaces/{workspace}/survey-packages/{id}/responses [get]
func (c *exportApiController) responses(ctx *fiber.Ctx) error {
	workspaceID, err := c.GetUintParam(ctx, "workspace")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	packageID, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	file, err := export.Instance.ExportResponses(workspaceID, packageID)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка выгрузки ответов")
	}
	return c.sendFile(ctx, file, xlsxContentType)
}

// @Summary Выгрузка структуры пакета
// @Tags Выгрузки
// @Description Структура пакета (части, темы, опросы, вопросы), xlsx
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    int  				    	true         "package ID"
// @Success 200 {file} file
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/downloads/survey-packages/{id}/structure [get]
func (c *exportApiController) structure(ctx *fiber.Ctx) error {
	packageID, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	file, err := export.Instance.ExportStructure(packageID)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка выгрузки структуры пакета")
	}
	return c.sendFile(ctx, file, xlsxContentType)
}

// @Summary Выгрузка структуры пакета в PDF
// @Tags Выгрузки
// @Description Структура пакета таблицей в PDF
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    int  				    	true         "package ID"
// @Success 200 {file} file
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/downloads/survey-packages/{id}/structure/pdf [get]
func (c *exportApiController) structurePdf(ctx *fiber.Ctx) error {
	packageID, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	file, err := export.Instance.ExportStructurePdf(packageID)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка выгрузки структуры пакета")
	}
	return c.sendFile(ctx, file, pdfContentType)
}

func (c *exportApiController) sendFile(ctx *fiber.Ctx, file *export.File, contentType string) error {
	ctx.Set(fiber.HeaderContentType, contentType)
	ctx.Set(fiber.HeaderContentDisposition, contentDisposition(file.FileName))
	return ctx.SendStream(file.Body, file.Body.Len())
}

// contentDisposition ASCII имя для старых клиентов и filename* (RFC 5987) с исходным именем
func contentDisposition(fileName string) string {
	fallback := strings.Map(func(r rune) rune {
		if r < 0x20 || r > '~' || r == '"' || r == '\\' {
			return '_'
		}
		return r
	}, fileName)
	return fmt.Sprintf(`attachment; filename="%s"; filename*=UTF-8''%s`, fallback, strings.ReplaceAll(url.QueryEscape(fileName), "+", "%20"))
}
