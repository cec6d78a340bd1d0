package echoapi

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trainhub/trainhub/core"
	"github.com/trainhub/trainhub/core/participant"
	"github.com/trainhub/trainhub/core/training"
	"github.com/trainhub/trainhub/core/user"
)

type trainingApi struct {
	svc      *training.Service
	validate *validator.Validate
}

func registerTrainingAPI(g *echo.Group, jwt echo.MiddlewareFunc, svc *training.Service, validate *validator.Validate) {
	api := trainingApi{svc: svc, validate: validate}

	// "formations" is the wire name kept from the original API
	tg := g.Group("/formations", jwt, roleMiddleware(user.RoleAdmin, user.RoleUser))

	// managers can read training stats for the statistics page
	statsRoles := roleMiddleware(user.RoleAdmin, user.RoleManager, user.RoleUser)
	g.GET("/formations/stats", api.stats, jwt, statsRoles)
	g.GET("/formations/stats/monthly", api.monthlyStats, jwt, statsRoles)
	// per-bucket counts; the original API serves these as bare numbers
	g.GET("/formations/stats/completed", api.bucketCount(func(s training.Stats) int { return s.Completed }), jwt, statsRoles)
	g.GET("/formations/stats/current", api.bucketCount(func(s training.Stats) int { return s.Current }), jwt, statsRoles)
	g.GET("/formations/stats/upcoming", api.bucketCount(func(s training.Stats) int { return s.Upcoming }), jwt, statsRoles)

	tg.POST("", api.create)
	tg.GET("", api.query)
	tg.GET("/:id", api.retrieve)
	tg.PUT("/:id", api.update)
	tg.DELETE("/:id", api.destroy)
	tg.GET("/:id/participants", api.participants)
	tg.POST("/:id/participants/:participantId", api.enroll)
	tg.DELETE("/:id/participants/:participantId", api.withdraw)
}

func (api *trainingApi) create(ctx echo.Context) error {
	var data training.NewTraining
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewTraining")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	trn, err := api.svc.Create(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "creating training")
	}
	return ctx.JSON(http.StatusCreated, trn)
}

func (api *trainingApi) query(ctx echo.Context) error {
	trainings, err := api.svc.QueryAll(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "querying trainings")
	}
	if trainings == nil {
		trainings = []training.Training{}
	}
	return ctx.JSON(http.StatusOK, trainings)
}

func (api *trainingApi) retrieve(ctx echo.Context) error {
	trn, err := api.getObject(ctx)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, trn)
}

func (api *trainingApi) update(ctx echo.Context) error {
	trn, err := api.getObject(ctx)
	if err != nil {
		return err
	}

	var data training.UpdateTraining
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateTraining")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	trn, err = api.svc.Update(ctx.Request().Context(), trn.ID, data)
	if err != nil {
		return errors.Wrap(err, "updating training")
	}
	return ctx.JSON(http.StatusOK, trn)
}

func (api *trainingApi) destroy(ctx echo.Context) error {
	trn, err := api.getObject(ctx)
	if err != nil {
		return err
	}
	if err := api.svc.Delete(ctx.Request().Context(), trn.ID); err != nil {
		return errors.Wrap(err, "deleting training")
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api *trainingApi) participants(ctx echo.Context) error {
	trn, err := api.getObject(ctx)
	if err != nil {
		return err
	}

	parts, err := api.svc.Participants(ctx.Request().Context(), trn.ID)
	if err != nil {
		return errors.Wrap(err, "querying training participants")
	}
	if parts == nil {
		parts = []participant.Participant{}
	}
	return ctx.JSON(http.StatusOK, parts)
}

func (api *trainingApi) enroll(ctx echo.Context) error {
	trainingID, participantID, err := api.getEnrollmentIDs(ctx)
	if err != nil {
		return err
	}

	if err := api.svc.Enroll(ctx.Request().Context(), trainingID, participantID); err != nil {
		switch errors.Cause(err) {
		case training.ErrNotFound, participant.ErrNotFound:
			return errHttpNotFound
		}
		return errors.Wrap(err, "enrolling participant")
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api *trainingApi) withdraw(ctx echo.Context) error {
	trainingID, participantID, err := api.getEnrollmentIDs(ctx)
	if err != nil {
		return err
	}

	if err := api.svc.Withdraw(ctx.Request().Context(), trainingID, participantID); err != nil {
		switch errors.Cause(err) {
		case training.ErrNotFound, participant.ErrNotFound:
			return errHttpNotFound
		}
		return errors.Wrap(err, "withdrawing participant")
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api *trainingApi) stats(ctx echo.Context) error {
	stats, err := api.svc.GetStats(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "getting training stats")
	}
	return ctx.JSON(http.StatusOK, stats)
}

func (api *trainingApi) bucketCount(pick func(training.Stats) int) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		stats, err := api.svc.GetStats(ctx.Request().Context())
		if err != nil {
			return errors.Wrap(err, "getting training stats")
		}
		return ctx.JSON(http.StatusOK, pick(stats))
	}
}

func (api *trainingApi) monthlyStats(ctx echo.Context) error {
	month, err := strconv.Atoi(ctx.QueryParam("month"))
	if err != nil || month < 1 || month > 12 {
		return core.NewValidationError(nil, core.FieldError{Field: "month", Error: "must be between 1 and 12"})
	}
	year, err := strconv.Atoi(ctx.QueryParam("year"))
	if err != nil {
		return core.NewValidationError(nil, core.FieldError{Field: "year", Error: "must be a valid year"})
	}

	stats, err := api.svc.GetMonthlyStats(ctx.Request().Context(), time.Month(month), year)
	if err != nil {
		return errors.Wrap(err, "getting monthly stats")
	}
	return ctx.JSON(http.StatusOK, stats)
}

func (api *trainingApi) getEnrollmentIDs(ctx echo.Context) (trainingID, participantID int, err error) {
	trainingID, err = strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return 0, 0, errHttpNotFound
	}
	participantID, err = strconv.Atoi(ctx.Param("participantId"))
	if err != nil {
		return 0, 0, errHttpNotFound
	}
	return trainingID, participantID, nil
}

func (api *trainingApi) getObject(ctx echo.Context) (training.Training, error) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return training.Training{}, errHttpNotFound
	}
	trn, err := api.svc.GetByID(ctx.Request().Context(), id)
	if err != nil {
		if errors.Cause(err) == training.ErrNotFound {
			return training.Training{}, errHttpNotFound
		}
		return training.Training{}, errors.Wrap(err, "finding training by ID")
	}
	return trn, nil
}
