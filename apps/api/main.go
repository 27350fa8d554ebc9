package main

import (
	"log"
	"os"

	echoapi "github.com/trezcool/tathmini/apps/api/echo"
	"github.com/trezcool/tathmini/core"
	"github.com/trezcool/tathmini/core/evaluation"
	"github.com/trezcool/tathmini/core/school"
	"github.com/trezcool/tathmini/core/user"
	emailsvc "github.com/trezcool/tathmini/services/email"
	logsvc "github.com/trezcool/tathmini/services/logger"
	"github.com/trezcool/tathmini/storage/database"
	inmemdb "github.com/trezcool/tathmini/storage/database/inmem"
	sqlxrepos "github.com/trezcool/tathmini/storage/database/sqlx"
)

func main() {
	std := log.New(os.Stdout, "API : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)

	// set up services
	var logger core.Logger
	if core.Conf.Debug || core.Conf.RollbarToken == "" {
		logger = logsvc.NewStdLogger(std)
	} else {
		logger = logsvc.NewRollbarLogger(std, &core.Conf)
	}

	var mailSvc core.EmailService
	if core.Conf.Debug {
		mailSvc = emailsvc.NewConsoleService()
	} else {
		mailSvc = emailsvc.NewSendgridService(logger)
	}

	// set up DB
	var (
		usrRepo  user.Repository
		schRepo  school.Repository
		evalRepo evaluation.Repository
	)
	switch core.Conf.Database.Engine {
	case "postgres":
		errAndDie(database.CreateIfNotExist(&core.Conf))
		db, err := database.Open(&core.Conf)
		errAndDie(err)
		defer db.Close()
		errAndDie(database.Migrate(db))
		usrRepo = sqlxrepos.NewUserRepository(db)
		schRepo = sqlxrepos.NewSchoolRepository(db)
		evalRepo = sqlxrepos.NewEvaluationRepository(db)
	default: // inmem
		db, err := inmemdb.Open()
		errAndDie(err)
		usrRepo = inmemdb.NewUserRepository(db)
		schRepo = inmemdb.NewSchoolRepository(db)
		evalRepo = inmemdb.NewEvaluationRepository(db)
	}

	// start API server
	app := echoapi.NewServer(
		&echoapi.Options{
			Addr:          core.Conf.Server.Addr,
			UserSvc:       user.NewService(usrRepo),
			SchoolSvc:     school.NewService(schRepo),
			EvaluationSvc: evaluation.NewService(evalRepo, mailSvc, logger),
			Logger:        logger,
		},
	)
	app.Start()
}

func errAndDie(err error) {
	if err != nil {
		log.Fatal(err)
	}
}
