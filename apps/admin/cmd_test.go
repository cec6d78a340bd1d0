package main

import (
	"bytes"
	"context"
	"testing"

	"github.com/trainhub/trainhub/core/user"
	inmemdb "github.com/trainhub/trainhub/storage/database/inmem"
)

var usrRepo user.Repository

func setup(t *testing.T) *commandLine {
	t.Helper()

	db := inmemdb.NewDB()
	usrRepo = inmemdb.NewUserRepository(db)

	return &commandLine{
		usrRepo:   usrRepo,
		partRepo:  inmemdb.NewParticipantRepository(db),
		trainRepo: inmemdb.NewTrainingRepository(db),
	}
}

func createUser(t *testing.T, uname string) user.User {
	t.Helper()
	usr := user.User{Username: uname, FirstName: "Test", LastName: "User", Role: user.RoleUser}
	if err := usr.SetPassword("password123"); err != nil {
		t.Fatal(err)
	}
	usr, err := usrRepo.CreateUser(context.Background(), usr)
	if err != nil {
		t.Fatalf("CreateUser() failed, %v", err)
	}
	return usr
}

type cliTest struct {
	name    string
	args    []string // without program name
	wantErr error
	extra   interface{}
}

type extra struct {
	pwd string
}

func mockPassword(tt cliTest) {
	readPasswordFunc = func(fd int) ([]byte, error) {
		if extra, ok := tt.extra.(extra); ok {
			return []byte(extra.pwd), nil
		}
		return nil, nil
	}
}

func Test_commandLine_addUser(t *testing.T) {
	cli := setup(t)

	existing := createUser(t, "awe")

	tests := []cliTest{
		{name: "no command", wantErr: errHelp},
		{name: "unknown command", args: []string{"lol"}, wantErr: errHelp},
		{name: "no args", args: []string{"adduser"}, wantErr: errHelp},
		{name: "unknown role", args: []string{"adduser", "-username", "neo", "-role", "GODMODE"}, wantErr: errHelp},
		{name: "username but no password", args: []string{"adduser", "-username", "neo"}, wantErr: errHelp},
		{name: "create", args: []string{"adduser", "-username", "neo", "-first", "Thomas", "-last", "Anderson", "-role", "USER"}, extra: extra{pwd: "follow the white rabbit"}},
		{name: "update existing", args: []string{"adduser", "-username", existing.Username, "-role", "MANAGER"}, extra: extra{pwd: "lol"}},
	}
	for _, tt := range tests {
		args := append([]string{"admin"}, tt.args...)
		mockPassword(tt)

		t.Run(tt.name, func(t *testing.T) {
			if err := cli.run(args); err != tt.wantErr {
				t.Errorf("cli.run() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}

	ctx := context.Background()
	neo, err := usrRepo.GetUserByUsername(ctx, "neo")
	if err != nil {
		t.Fatalf("GetUserByUsername() failed, %v", err)
	}
	if neo.FirstName != "Thomas" || neo.LastName != "Anderson" || neo.Role != user.RoleUser {
		t.Errorf("created user = %+v", neo)
	}
	if err = neo.CheckPassword("follow the white rabbit"); err != nil {
		t.Error("failed to set new user's password")
	}

	refreshed, err := usrRepo.GetUserByID(ctx, existing.ID)
	if err != nil {
		t.Fatalf("GetUserByID() failed, %v", err)
	}
	if refreshed.Role != user.RoleManager {
		t.Errorf("Role = %v, want %v", refreshed.Role, user.RoleManager)
	}
	if bytes.Equal(refreshed.PasswordHash, existing.PasswordHash) {
		t.Error("failed to update existing user's password")
	}
}

func Test_commandLine_resetPassword(t *testing.T) {
	cli := setup(t)

	usr := createUser(t, "awe")

	tests := []cliTest{
		{name: "no args", args: []string{"resetpassword"}, wantErr: errHelp},
		{name: "username but no password", args: []string{"resetpassword", "-username", "lol"}, wantErr: errHelp},
		{name: "user not found", args: []string{"resetpassword", "-username", "lol"}, extra: extra{pwd: "lol"}, wantErr: user.ErrNotFound},
		{name: "reset", args: []string{"resetpassword", "-username", usr.Username}, extra: extra{pwd: "lol"}},
	}
	for _, tt := range tests {
		args := append([]string{"admin"}, tt.args...)
		mockPassword(tt)

		t.Run(tt.name, func(t *testing.T) {
			err := cli.run(args)
			if err == nil {
				refreshedUsr, err := usrRepo.GetUserByID(context.Background(), usr.ID)
				if err != nil {
					t.Fatalf("GetUserByID() failed, %v", err)
				}
				if bytes.Equal(refreshedUsr.PasswordHash, usr.PasswordHash) {
					t.Error("failed to update new password")
				}
			} else if err != tt.wantErr {
				t.Errorf("cli.run() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func Test_commandLine_seed(t *testing.T) {
	cli := setup(t)
	ctx := context.Background()

	if err := cli.run([]string{"admin", "seed"}); err != nil {
		t.Fatalf("cli.run() error = %v", err)
	}

	admin, err := usrRepo.GetUserByUsername(ctx, "admin")
	if err != nil {
		t.Fatalf("GetUserByUsername() failed, %v", err)
	}
	if admin.Role != user.RoleAdmin {
		t.Errorf("Role = %v, want %v", admin.Role, user.RoleAdmin)
	}
	if err = admin.CheckPassword("admin123"); err != nil {
		t.Error("seeded admin password does not check out")
	}

	users, err := usrRepo.QueryAllUsers(ctx)
	if err != nil {
		t.Fatalf("QueryAllUsers() failed, %v", err)
	}
	if len(users) != 4 {
		t.Errorf("seeded %d users, want 4", len(users))
	}
	trainings, err := cli.trainRepo.QueryAllTrainings(ctx)
	if err != nil {
		t.Fatalf("QueryAllTrainings() failed, %v", err)
	}
	if len(trainings) != 3 {
		t.Errorf("seeded %d trainings, want 3", len(trainings))
	}
	parts, err := cli.partRepo.QueryAllParticipants(ctx)
	if err != nil {
		t.Fatalf("QueryAllParticipants() failed, %v", err)
	}
	if len(parts) != 3 {
		t.Errorf("seeded %d participants, want 3", len(parts))
	}

	// seeding twice is a no-op
	if err = cli.run([]string{"admin", "seed"}); err != nil {
		t.Fatalf("cli.run() second seed error = %v", err)
	}
	if users, _ = usrRepo.QueryAllUsers(ctx); len(users) != 4 {
		t.Errorf("second seed duplicated users: %d", len(users))
	}
}
