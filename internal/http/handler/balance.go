package handler

import (
	"github.com/gofiber/fiber/v2"

	"pixiu/internal/service"
)

// ListDebts godoc
// @Summary  List debts
// @Tags     balance
// @Produce  json
// @Success  200 {array} model.Debt
// @Router   /pixiu/debt [get]
func ListDebts(svc service.BalanceService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		res, err := svc.Debts(c.UserContext())
		if err != nil {
			return internalError(c, err)
		}
		return c.JSON(nonNil(res))
	}
}

// ListProperties godoc
// @Summary  List properties
// @Description Each amount includes the funds recorded against the property as their source.
// @Tags     balance
// @Produce  json
// @Success  200 {array} model.Property
// @Router   /pixiu/property [get]
func ListProperties(svc service.BalanceService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		res, err := svc.Properties(c.UserContext())
		if err != nil {
			return internalError(c, err)
		}
		return c.JSON(nonNil(res))
	}
}
