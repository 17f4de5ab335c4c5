package handler

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"pixiu/internal/model"
	"pixiu/internal/service"
)

// ListFunds godoc
// @Summary  List funds in a time range
// @Description Returns one page of funds plus per-class spending, income and expenses over the whole filtered range.
// @Tags     funds
// @Produce  json
// @Param    from   query int64  true  "range start (unix seconds, inclusive)"
// @Param    to     query int64  true  "range end (unix seconds, inclusive)"
// @Param    page   query int    false "1-based page" default(1)
// @Param    size   query int    false "page size" default(10)
// @Param    source query string false "comma-separated sources"
// @Param    type   query string false "comma-separated classes"
// @Param    name   query string false "comma-separated names"
// @Success  200 {object} model.Page[model.Fund]
// @Failure  400 {object} errorPayload
// @Router   /pixiu/fund [get]
func ListFunds(svc service.FundService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		from, err := strconv.ParseInt(c.Query("from"), 10, 64)
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_FROM", "from must be an integer timestamp")
		}
		to, err := strconv.ParseInt(c.Query("to"), 10, 64)
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_TO", "to must be an integer timestamp")
		}
		page, err := strconv.Atoi(c.Query("page", "1"))
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_PAGE", "invalid page")
		}
		size, err := strconv.Atoi(c.Query("size", strconv.Itoa(service.DefaultPageSize)))
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_SIZE", "invalid size")
		}

		res, err := svc.List(c.UserContext(), service.FundQuery{
			From:    from,
			To:      to,
			Page:    page,
			Size:    size,
			Sources: splitList(c.Query("source")),
			Types:   splitList(c.Query("type")),
			Names:   splitList(c.Query("name")),
		})
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(res)
	}
}

// FundSources godoc
// @Summary  Distinct fund sources
// @Tags     funds
// @Produce  json
// @Success  200 {array} string
// @Router   /pixiu/fund/sources [get]
func FundSources(svc service.FundService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		res, err := svc.Sources(c.UserContext())
		if err != nil {
			return internalError(c, err)
		}
		return c.JSON(nonNil(res))
	}
}

// FundTypes godoc
// @Summary  Distinct fund classes
// @Tags     funds
// @Produce  json
// @Success  200 {array} string
// @Router   /pixiu/fund/types [get]
func FundTypes(svc service.FundService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		res, err := svc.Types(c.UserContext())
		if err != nil {
			return internalError(c, err)
		}
		return c.JSON(nonNil(res))
	}
}

// CreateFund godoc
// @Summary  Record a fund
// @Tags     funds
// @Accept   json
// @Produce  json
// @Param    fund body model.Fund true "fund; id is ignored"
// @Success  201 {object} model.Fund
// @Failure  400 {object} errorPayload
// @Router   /pixiu/fund [post]
func CreateFund(svc service.FundService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var in model.Fund
		if err := c.BodyParser(&in); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "body must be a JSON fund")
		}
		in.ID = 0

		out, err := svc.Create(c.UserContext(), &in)
		if err != nil {
			return serviceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(out)
	}
}

// UpdateFund godoc
// @Summary  Replace a fund
// @Tags     funds
// @Accept   json
// @Produce  json
// @Param    id   path int64      true "fund id"
// @Param    fund body model.Fund true "new values"
// @Success  200 {object} model.Fund
// @Failure  400 {object} errorPayload
// @Failure  404 {object} errorPayload
// @Router   /pixiu/fund/{id} [put]
func UpdateFund(svc service.FundService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := fundID(c)
		if !ok {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		var in model.Fund
		if err := c.BodyParser(&in); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "body must be a JSON fund")
		}

		out, err := svc.Update(c.UserContext(), id, &in)
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(out)
	}
}

// DeleteFund godoc
// @Summary  Delete a fund
// @Description Deleting a missing fund still succeeds.
// @Tags     funds
// @Param    id path int64 true "fund id"
// @Success  204
// @Failure  400 {object} errorPayload
// @Router   /pixiu/fund/{id} [delete]
func DeleteFund(svc service.FundService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := fundID(c)
		if !ok {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		if err := svc.Delete(c.UserContext(), id); err != nil {
			return serviceError(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

func fundID(c *fiber.Ctx) (int64, bool) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// splitList turns "a, b,,c" into [a b c]. Empty input yields nil.
func splitList(raw string) []string {
	if raw == "" {
		return nil
	}
	var out []string
	for _, v := range strings.Split(raw, ",") {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

// nonNil keeps empty lists serializing as [] rather than null.
func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
