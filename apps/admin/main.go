package main

import (
	"log"
	"os"

	"github.com/trainhub/trainhub/core"
	"github.com/trainhub/trainhub/storage/database"
	sqlxrepos "github.com/trainhub/trainhub/storage/database/sqlx"
)

var logger *log.Logger

func main() {
	defer os.Exit(0)

	logger = log.New(os.Stdout, "ADMIN : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)

	conf, err := core.NewConfig(".")
	errAndDie(err)

	// set up DB
	errAndDie(database.CreateIfNotExist(conf))
	db, err := database.Open(conf)
	errAndDie(err)
	defer db.Close()
	errAndDie(db.Ping())
	errAndDie(database.Migrate(db))

	// start CLI
	cli := commandLine{
		usrRepo:   sqlxrepos.NewUserRepository(db),
		partRepo:  sqlxrepos.NewParticipantRepository(db),
		trainRepo: sqlxrepos.NewTrainingRepository(db),
	}
	if err := cli.run(os.Args); err != nil {
		if err != errHelp {
			logger.Printf("\nerror: %s\n", err)
		}
		os.Exit(1)
	}
}

func errAndDie(err error) {
	if err != nil {
		logger.Fatal(err)
	}
}
