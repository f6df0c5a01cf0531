package main

import (
	"log"
	"os"
	_ "time/tzdata"

	"github.com/dance10/webapps/core"
	"github.com/dance10/webapps/core/schedule"
	logsvc "github.com/dance10/webapps/services/logger"
	"github.com/dance10/webapps/storage/database"
	sqlxrepos "github.com/dance10/webapps/storage/database/sqlx"
)

var logger *log.Logger

func main() {
	defer os.Exit(0)

	logger = log.New(os.Stdout, "ADMIN : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)
	conf := core.NewConfig()

	// set up DB
	db, err := database.Open(conf)
	errAndDie(err)
	defer db.Close()

	svcLogger := logsvc.NewRollbarLogger(logger, conf)
	svcLogger.Enable(false)
	svc, err := schedule.NewService(sqlxrepos.NewRowStore(db), core.NewLocker(conf.LockTimeout), conf, svcLogger)
	errAndDie(err)

	// start CLI
	cli := commandLine{
		db:  db,
		svc: svc,
		out: os.Stdout,
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
