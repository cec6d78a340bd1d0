package echoapi

import (
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trainhub/trainhub/core"
	"github.com/trainhub/trainhub/core/participant"
	"github.com/trainhub/trainhub/core/training"
	"github.com/trainhub/trainhub/core/user"
)

type participantApi struct {
	svc      *participant.Service
	trainSvc *training.Service
	validate *validator.Validate
}

func registerParticipantAPI(
	g *echo.Group,
	jwt echo.MiddlewareFunc,
	svc *participant.Service,
	trainSvc *training.Service,
	validate *validator.Validate,
) {
	api := participantApi{svc: svc, trainSvc: trainSvc, validate: validate}

	// managers never reach the participant pages
	pg := g.Group("/participants", jwt, roleMiddleware(user.RoleAdmin, user.RoleUser))

	pg.POST("", api.create)
	pg.GET("", api.query)
	pg.GET("/profile/:profile", api.queryByProfile)
	pg.GET("/profile/:profile/count", api.count)
	pg.GET("/:id", api.retrieve)
	pg.PUT("/:id", api.update)
	pg.DELETE("/:id", api.destroy)
	pg.GET("/:id/formations", api.trainings)
	// enrollment is reachable from the participant side too
	pg.POST("/:id/formations/:formationId", api.enroll)
	pg.DELETE("/:id/formations/:formationId", api.withdraw)
}

func (api *participantApi) create(ctx echo.Context) error {
	var data participant.NewParticipant
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewParticipant")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	part, err := api.svc.Create(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "creating participant")
	}
	return ctx.JSON(http.StatusCreated, part)
}

func (api *participantApi) query(ctx echo.Context) error {
	parts, err := api.svc.QueryAll(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "querying participants")
	}
	if parts == nil {
		parts = []participant.Participant{}
	}
	return ctx.JSON(http.StatusOK, parts)
}

func (api *participantApi) queryByProfile(ctx echo.Context) error {
	profile := participant.ParseProfile(ctx.Param("profile"))
	if !profile.Recognized() {
		return core.NewValidationError(nil, core.FieldError{Field: "profile", Error: "unknown profile"})
	}
	parts, err := api.svc.FilterByProfile(ctx.Request().Context(), profile)
	if err != nil {
		return errors.Wrap(err, "filtering participants")
	}
	if parts == nil {
		parts = []participant.Participant{}
	}
	return ctx.JSON(http.StatusOK, parts)
}

func (api *participantApi) count(ctx echo.Context) error {
	profile := participant.ParseProfile(ctx.Param("profile"))
	if !profile.Recognized() {
		return core.NewValidationError(nil, core.FieldError{Field: "profile", Error: "unknown profile"})
	}
	count, err := api.svc.CountByProfile(ctx.Request().Context(), profile)
	if err != nil {
		return errors.Wrap(err, "counting participants")
	}
	return ctx.JSON(http.StatusOK, echo.Map{"count": count})
}

func (api *participantApi) retrieve(ctx echo.Context) error {
	part, err := api.getObject(ctx)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, part)
}

func (api *participantApi) update(ctx echo.Context) error {
	part, err := api.getObject(ctx)
	if err != nil {
		return err
	}

	var data participant.UpdateParticipant
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateParticipant")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	part, err = api.svc.Update(ctx.Request().Context(), part.ID, data)
	if err != nil {
		return errors.Wrap(err, "updating participant")
	}
	return ctx.JSON(http.StatusOK, part)
}

func (api *participantApi) destroy(ctx echo.Context) error {
	part, err := api.getObject(ctx)
	if err != nil {
		return err
	}
	if err := api.svc.Delete(ctx.Request().Context(), part.ID); err != nil {
		return errors.Wrap(err, "deleting participant")
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api *participantApi) trainings(ctx echo.Context) error {
	part, err := api.getObject(ctx)
	if err != nil {
		return err
	}

	trainings, err := api.trainSvc.ForParticipant(ctx.Request().Context(), part.ID)
	if err != nil {
		return errors.Wrap(err, "querying participant trainings")
	}
	if trainings == nil {
		trainings = []training.Training{}
	}
	return ctx.JSON(http.StatusOK, trainings)
}

func (api *participantApi) enroll(ctx echo.Context) error {
	trainingID, participantID, err := api.getEnrollmentIDs(ctx)
	if err != nil {
		return err
	}

	if err := api.trainSvc.Enroll(ctx.Request().Context(), trainingID, participantID); err != nil {
		switch errors.Cause(err) {
		case training.ErrNotFound, participant.ErrNotFound:
			return errHttpNotFound
		}
		return errors.Wrap(err, "enrolling participant")
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api *participantApi) withdraw(ctx echo.Context) error {
	trainingID, participantID, err := api.getEnrollmentIDs(ctx)
	if err != nil {
		return err
	}

	if err := api.trainSvc.Withdraw(ctx.Request().Context(), trainingID, participantID); err != nil {
		switch errors.Cause(err) {
		case training.ErrNotFound, participant.ErrNotFound:
			return errHttpNotFound
		}
		return errors.Wrap(err, "withdrawing participant")
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api *participantApi) getEnrollmentIDs(ctx echo.Context) (trainingID, participantID int, err error) {
	participantID, err = strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return 0, 0, errHttpNotFound
	}
	trainingID, err = strconv.Atoi(ctx.Param("formationId"))
	if err != nil {
		return 0, 0, errHttpNotFound
	}
	return trainingID, participantID, nil
}

func (api *participantApi) getObject(ctx echo.Context) (participant.Participant, error) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return participant.Participant{}, errHttpNotFound
	}
	part, err := api.svc.GetByID(ctx.Request().Context(), id)
	if err != nil {
		if errors.Cause(err) == participant.ErrNotFound {
			return participant.Participant{}, errHttpNotFound
		}
		return participant.Participant{}, errors.Wrap(err, "finding participant by ID")
	}
	return part, nil
}
