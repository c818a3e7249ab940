package controllers

import (
	"strconv"
	apperrors "survey-package-backend/lib/utils/app-errors"
	apimodels "survey-package-backend/models/api"

	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

type BaseAPIController struct{}

func (c *BaseAPIController) BodyParser(ctx *fiber.Ctx, out interface{}) error {
	if err := ctx.BodyParser(out); err != nil {
		// ошибки разбора полей (contacts, answers, number) отдаем как есть
		if apperrors.IsApp(err) {
			return err
		}
		log.WithError(err).Error("ошибка распознавания запроса")
		return errors.New("не удалось получить данные из запроса")
	}
	return nil
}

func (c *BaseAPIController) GetID(ctx *fiber.Ctx) (uint64, error) {
	return c.GetUintParam(ctx, "id")
}

func (c *BaseAPIController) GetUintParam(ctx *fiber.Ctx, name string) (uint64, error) {
	value := ctx.Params(name)
	if value == "" {
		return 0, errors.Errorf("не указан параметр %s", name)
	}
	id, err := strconv.ParseUint(value, 10, 64)
	if err != nil {
		return 0, errors.Errorf("некорректный параметр %s", name)
	}
	return id, nil
}

func (c *BaseAPIController) GetLogger(ctx *fiber.Ctx) *log.Entry {
	return log.WithFields(log.Fields{
		"method":     ctx.Method(),
		"path":       ctx.Path(),
		"request_id": ctx.GetRespHeader(fiber.HeaderXRequestID),
	})
}

// SendError ответ по виду ошибки, внутренние ошибки пишутся в лог и скрываются за msg
func (c *BaseAPIController) SendError(ctx *fiber.Ctx, logger *log.Entry, err error, msg string) error {
	status := ErrorStatus(err)
	if status == fiber.StatusInternalServerError {
		logger.WithError(err).Error(msg)
		return ctx.Status(status).JSON(apimodels.NewError(msg))
	}
	logger.WithError(err).Warn(msg)
	return ctx.Status(status).JSON(apimodels.NewError(err.Error()))
}

func ErrorStatus(err error) int {
	if !apperrors.IsApp(err) {
		return fiber.StatusInternalServerError
	}
	switch apperrors.KindOf(err) {
	case apperrors.KindInvalidInput:
		return fiber.StatusBadRequest
	case apperrors.KindInstanceNotFound:
		return fiber.StatusNotFound
	case apperrors.KindConflict:
		return fiber.StatusConflict
	case apperrors.KindUnprocessable:
		return fiber.StatusUnprocessableEntity
	}
	return fiber.StatusInternalServerError
}
