package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trainhub/trainhub/core/participant"
	"github.com/trainhub/trainhub/core/training"
	"github.com/trainhub/trainhub/core/user"
)

type statsApi struct {
	trainSvc *training.Service
	partSvc  *participant.Service
}

// StatsResponse is the dashboard summary.
type StatsResponse struct {
	training.Stats
	Participants int `json:"participants"`
	Interns      int `json:"interns"`
	Externs      int `json:"externs"`
}

func registerStatsAPI(g *echo.Group, jwt echo.MiddlewareFunc, trainSvc *training.Service, partSvc *participant.Service) {
	api := statsApi{trainSvc: trainSvc, partSvc: partSvc}

	sg := g.Group("/stats", jwt, roleMiddleware(user.RoleAdmin, user.RoleManager, user.RoleUser))
	sg.GET("", api.retrieve)
}

func (api *statsApi) retrieve(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	stats, err := api.trainSvc.GetStats(reqCtx)
	if err != nil {
		return errors.Wrap(err, "getting training stats")
	}

	resp := StatsResponse{Stats: stats}
	if resp.Participants, err = api.partSvc.CountByProfile(reqCtx, participant.ProfileParticipant); err != nil {
		return errors.Wrap(err, "counting participants")
	}
	if resp.Interns, err = api.partSvc.CountByProfile(reqCtx, participant.ProfileIntern); err != nil {
		return errors.Wrap(err, "counting interns")
	}
	if resp.Externs, err = api.partSvc.CountByProfile(reqCtx, participant.ProfileExtern); err != nil {
		return errors.Wrap(err, "counting externs")
	}
	return ctx.JSON(http.StatusOK, resp)
}
