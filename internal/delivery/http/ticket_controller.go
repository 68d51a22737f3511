package http

import (
	"errors"

	"github.com/ferdian3456/leaguebot/internal/middleware"
	"github.com/ferdian3456/leaguebot/internal/model"
	"github.com/ferdian3456/leaguebot/internal/usecase"
	"github.com/ferdian3456/leaguebot/internal/util"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type TicketController struct {
	TicketUsecase *usecase.TicketUsecase
	Log           *zap.Logger
}

func NewTicketController(ticketUsecase *usecase.TicketUsecase, zap *zap.Logger) *TicketController {
	return &TicketController{
		TicketUsecase: ticketUsecase,
		Log:           zap,
	}
}

func (controller *TicketController) GetTicketHistory(ctx *fiber.Ctx) error {
	var validationErr *model.ValidationError

	response, err := controller.TicketUsecase.GetTicketHistory(ctx.UserContext(), ctx.Params("guildId"), ctx.Params("memberId"))
	if err != nil {
		if errors.As(err, &validationErr) {
			return util.SendErrorResponse(ctx, err)
		}

		return util.SendErrorResponseInternalServer(ctx, middleware.GetLoggerFromContext(ctx, controller.Log), err)
	}

	return util.SendSuccessResponseWithData(ctx, response)
}
