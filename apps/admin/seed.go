package main

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/trainhub/trainhub/core"
	"github.com/trainhub/trainhub/core/participant"
	"github.com/trainhub/trainhub/core/training"
	"github.com/trainhub/trainhub/core/user"
)

// seed loads sample data for local development. It is a no-op when the
// admin user already exists.
func (cli *commandLine) seed() error {
	ctx := context.Background()

	if _, err := cli.usrRepo.GetUserByUsername(ctx, "admin"); err == nil {
		return nil
	} else if err != user.ErrNotFound {
		return err
	}

	users := []struct {
		username, first, last, pwd string
		role                       user.Role
	}{
		{"admin", "Admin", "User", "admin123", user.RoleAdmin},
		{"sarah_m", "Sarah", "Miller", "password123", user.RoleManager},
		{"john_doe", "John", "Doe", "password123", user.RoleUser},
		{"maria_g", "Maria", "Garcia", "password123", user.RoleAdmin},
	}
	now := time.Now().UTC()
	for _, u := range users {
		usr := user.User{
			Username:  u.username,
			FirstName: u.first,
			LastName:  u.last,
			Role:      u.role,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := usr.SetPassword(u.pwd); err != nil {
			return err
		}
		if _, err := cli.usrRepo.CreateUser(ctx, usr); err != nil {
			return errors.Wrapf(err, "creating user %q", u.username)
		}
	}

	trainings := []training.Training{
		{
			Title:     "Spring Boot Advanced",
			Domain:    "IT",
			StartDate: core.NewDate(2025, time.May, 1),
			EndDate:   core.NewDate(2025, time.May, 15),
			Budget:    2500,
			Venue:     "Online",
			Schedule:  "Full-time",
		},
		{
			Title:     "Data Science Fundamentals",
			Domain:    "IT",
			StartDate: core.NewDate(2025, time.June, 1),
			EndDate:   core.NewDate(2025, time.June, 30),
			Budget:    3000,
			Venue:     "Paris",
			Schedule:  "Part-time",
		},
		{
			Title:     "Cloud Architecture",
			Domain:    "IT",
			StartDate: core.NewDate(2025, time.July, 1),
			EndDate:   core.NewDate(2025, time.July, 15),
			Budget:    2800,
			Venue:     "London",
			Schedule:  "Full-time",
		},
	}
	for _, trn := range trainings {
		if _, err := cli.trainRepo.CreateTraining(ctx, trn); err != nil {
			return errors.Wrapf(err, "creating training %q", trn.Title)
		}
	}

	participants := []participant.Participant{
		{
			FirstName: "Jean",
			LastName:  "Dupont",
			Email:     "jean.dupont@email.com",
			Telephone: "+33123456789",
			Structure: "IT",
			Profile:   participant.ProfileParticipant,
		},
		{
			FirstName: "Marie",
			LastName:  "Laurent",
			Email:     "marie.laurent@email.com",
			Telephone: "+33234567890",
			Structure: "Finance",
			Profile:   participant.ProfileIntern,
		},
		{
			FirstName: "Pierre",
			LastName:  "Martin",
			Email:     "pierre.martin@email.com",
			Telephone: "+33345678901",
			Structure: "Marketing",
			Profile:   participant.ProfileExtern,
		},
	}
	for _, part := range participants {
		if _, err := cli.partRepo.CreateParticipant(ctx, part); err != nil {
			return errors.Wrapf(err, "creating participant %q", part.Email)
		}
	}
	return nil
}
