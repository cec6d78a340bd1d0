// Package inmemdb implements the domain repositories on plain in-memory
// maps. It backs tests and the dev admin CLI; the postgres package is the
// production implementation.
package inmemdb

import (
	"sync"

	"github.com/trainhub/trainhub/core/participant"
	"github.com/trainhub/trainhub/core/training"
	"github.com/trainhub/trainhub/core/user"
)

type enrollment struct {
	participantID int
	trainingID    int
}

type DB struct {
	sync.RWMutex

	users        map[int]*user.User
	participants map[int]*participant.Participant
	trainings    map[int]*training.Training
	enrollments  map[enrollment]bool

	userPK        int
	participantPK int
	trainingPK    int
}

func NewDB() *DB {
	return &DB{
		users:        make(map[int]*user.User),
		participants: make(map[int]*participant.Participant),
		trainings:    make(map[int]*training.Training),
		enrollments:  make(map[enrollment]bool),
	}
}
