package tests

import (
	"bytes"
	"context"
	"encoding/json"
	"io/ioutil"
	"log"
	"net/http"
	"net/http/httptest"
	"net/mail"
	"reflect"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	echoapi "github.com/trainhub/trainhub/apps/api/echo"
	"github.com/trainhub/trainhub/core"
	"github.com/trainhub/trainhub/core/participant"
	"github.com/trainhub/trainhub/core/training"
	"github.com/trainhub/trainhub/core/user"
	emailsvc "github.com/trainhub/trainhub/services/email"
	logsvc "github.com/trainhub/trainhub/services/logger"
	inmemdb "github.com/trainhub/trainhub/storage/database/inmem"
)

var (
	conf *core.Config

	usrRepo   user.Repository
	partRepo  participant.Repository
	trainRepo training.Repository

	usrSvc   *user.Service
	partSvc  *participant.Service
	trainSvc *training.Service

	errMissingToken = httpErr{Error: "missing or malformed jwt"}
	errForbidden    = httpErr{Error: "permission denied"}
	errNotFound     = httpErr{Error: "not found"}
)

func setup(t *testing.T) echoapi.Server {
	t.Helper()

	conf = &core.Config{
		TestMode:         true,
		Env:              "TEST",
		AppName:          "TrainHub",
		SecretKey:        "secret",
		DefaultFromEmail: mail.Address{Name: "TrainHub", Address: "noreply@localhost"},
		Server: core.ServerConfig{
			Host:               "localhost",
			Port:               8000,
			JWTExpirationDelta: 10 * time.Minute,
		},
	}

	// set up DB & repos
	db := inmemdb.NewDB()
	usrRepo = inmemdb.NewUserRepository(db)
	partRepo = inmemdb.NewParticipantRepository(db)
	trainRepo = inmemdb.NewTrainingRepository(db)

	// set up services
	mailSvc := emailsvc.NewConsoleServiceMock(conf)
	usrSvc = user.NewService(usrRepo)
	partSvc = participant.NewService(partRepo)
	trainSvc = training.NewService(conf, trainRepo, partRepo, mailSvc)

	logger := logsvc.NewRollbarLogger(log.New(ioutil.Discard, "", 0), conf)
	logger.Enable(false)

	validate, translator := core.NewValidator()
	user.RegisterValidators(validate, translator)
	participant.RegisterValidators(validate, translator)

	return echoapi.NewServer(
		echoapi.ServerDeps{
			Conf:           conf,
			Logger:         logger,
			UserSvc:        usrSvc,
			ParticipantSvc: partSvc,
			TrainingSvc:    trainSvc,
			Validate:       validate,
			Translator:     translator,
		},
	)
}

type httpErr struct {
	Error string `json:"error"`
}

type httpTest struct {
	name     string
	method   string
	path     string
	body     []byte
	token    string
	wantCode int
	wantData []byte
	extra    interface{}
}

func newAuthRequest(method, path, token string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	var body bytes.Buffer
	if len(data) > 0 {
		body.Write(data[0])
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	return req, rec
}

func newRequest(method, path string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	return newAuthRequest(method, path, "", data...)
}

func getToken(t *testing.T, usr user.User) string {
	t.Helper()
	token, err := echoapi.GenerateToken(conf, echoapi.GetUserClaims(conf, usr))
	if err != nil {
		t.Fatalf("getToken() failed: %v", err)
	}
	return token
}

func createUser(t *testing.T, uname, first, last string, role user.Role, pwd string) user.User {
	t.Helper()
	now := time.Now().UTC()
	usr := user.User{
		Username:  uname,
		FirstName: first,
		LastName:  last,
		Role:      role,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := usr.SetPassword(pwd); err != nil {
		t.Fatalf("SetPassword() failed: %v", err)
	}
	usr, err := usrRepo.CreateUser(context.Background(), usr)
	if err != nil {
		t.Fatalf("CreateUser() failed: %v", err)
	}
	return usr
}

func createParticipant(t *testing.T, first, last, email string, profile participant.Profile) participant.Participant {
	t.Helper()
	part, err := partRepo.CreateParticipant(context.Background(), participant.Participant{
		FirstName: first,
		LastName:  last,
		Email:     email,
		Profile:   profile,
	})
	if err != nil {
		t.Fatalf("CreateParticipant() failed: %v", err)
	}
	return part
}

func createTraining(t *testing.T, title string, start, end core.Date, budget float64) training.Training {
	t.Helper()
	trn, err := trainRepo.CreateTraining(context.Background(), training.Training{
		Title:     title,
		Domain:    "IT",
		StartDate: start,
		EndDate:   end,
		Budget:    budget,
	})
	if err != nil {
		t.Fatalf("CreateTraining() failed: %v", err)
	}
	return trn
}

func marchallObj(t *testing.T, obj interface{}) []byte {
	t.Helper()
	data, err := json.Marshal(obj)
	if err != nil {
		t.Fatalf("marchallObj() failed: %v", err)
	}
	return data
}

func marchallList(t *testing.T, objs ...interface{}) []byte {
	t.Helper()
	data, err := json.Marshal(objs)
	if err != nil {
		t.Fatalf("marchallList() failed: %v", err)
	}
	return data
}

func jsonBytesEqual(t *testing.T, b1, b2 []byte) (bool, error) {
	var j1, j2 interface{}
	if err := json.Unmarshal(b1, &j1); err != nil {
		return false, err
	}
	if err := json.Unmarshal(b2, &j2); err != nil {
		return false, err
	}
	if reflect.DeepEqual(j1, j2) {
		return true, nil
	}
	if j1 == nil || j2 == nil {
		return false, nil
	}
	return assert.ElementsMatch(t, j1, j2), nil
}

func checkCodeAndData(t *testing.T, tt httpTest, rec *httptest.ResponseRecorder) {
	t.Helper()
	wantCode := tt.wantCode
	if wantCode == 0 {
		wantCode = http.StatusOK
	}
	if rec.Code != wantCode {
		t.Errorf("failed! code = %v; wantCode %v", rec.Code, wantCode)
	}
	ok, err := jsonBytesEqual(t, rec.Body.Bytes(), tt.wantData)
	if err != nil {
		t.Errorf("jsonBytesEqual() failed to compare; err %v", err)
	}
	if !ok {
		t.Errorf("failed! data = %v; wantData %v", rec.Body.String(), string(tt.wantData))
	}
}
