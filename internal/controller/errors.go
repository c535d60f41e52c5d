package controller

import (
	"errors"
	"log"

	"github.com/benbeisheim/chessrules-backend/internal/model"
	"github.com/benbeisheim/chessrules-backend/internal/service"
	"github.com/gofiber/fiber/v2"
)

var badRequest = []error{
	service.ErrInvalidRequest,
	model.ErrInvalidFEN,
	model.ErrInvalidLabel,
	model.ErrInvalidFormat,
	model.ErrInvalidPromotionKind,
}

// errorStatus maps service and rule errors onto HTTP status codes.
func errorStatus(err error) int {
	if errors.Is(err, service.ErrGameNotFound) {
		return fiber.StatusNotFound
	}
	for _, target := range badRequest {
		if errors.Is(err, target) {
			return fiber.StatusBadRequest
		}
	}
	if service.ErrorCode(err) == "internal" {
		return fiber.StatusInternalServerError
	}
	return fiber.StatusUnprocessableEntity
}

func sendError(c *fiber.Ctx, err error) error {
	status := errorStatus(err)
	msg := err.Error()
	if status == fiber.StatusInternalServerError {
		log.Printf("controller: %s %s failed err=%v", c.Method(), c.Path(), err)
		msg = "internal error"
	}
	return c.Status(status).JSON(fiber.Map{
		"error": msg,
		"code":  service.ErrorCode(err),
	})
}
