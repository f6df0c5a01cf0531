package dig_container

import (
	"context"
	"fmt"
	"log"
	"os"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"go.uber.org/dig"

	echoapi "github.com/dance10/webapps/apps/api/echo"
	"github.com/dance10/webapps/core"
	"github.com/dance10/webapps/core/schedule"
	explainsvc "github.com/dance10/webapps/services/explain"
	logsvc "github.com/dance10/webapps/services/logger"
	"github.com/dance10/webapps/storage/database"
	sqlxrepos "github.com/dance10/webapps/storage/database/sqlx"
)

type DBLoggerParam struct {
	dig.In
	Logger core.Logger `name:"dbLogger"`
}

type serverParams struct {
	dig.In
	Conf        *core.Config
	Logger      core.Logger
	ScheduleSvc *schedule.Service
	Explainer   core.ErrorExplainer
	Validate    *validator.Validate
	Translator  ut.Translator
}

func newLogger(conf *core.Config) core.Logger {
	stdLogger := log.New(os.Stdout, "API : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)
	logger := logsvc.NewRollbarLogger(stdLogger, conf)
	logger.Enable(!conf.Debug)
	return logger
}

func newDBLogger(conf *core.Config) core.Logger {
	stdLogger := log.New(os.Stdout, "DB : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)
	logger := logsvc.NewRollbarLogger(stdLogger, conf)
	logger.Enable(!conf.Debug)
	return logger
}

func newDB(conf *core.Config, loggerParam DBLoggerParam) *sqlx.DB {
	setUp := func() (*sqlx.DB, error) {
		if err := database.CreateIfNotExist(conf); err != nil {
			return nil, err
		}

		db, err := database.Open(conf)
		if err != nil {
			return nil, err
		}

		if err = database.Migrate(db); err != nil {
			return nil, err
		}
		return db, nil
	}

	db, err := setUp()
	if err != nil {
		loggerParam.Logger.Fatal(fmt.Sprintf("setting up database: %v", err), err)
	}
	return db
}

func newRowStore(db *sqlx.DB) core.RowStore {
	return sqlxrepos.NewRowStore(db)
}

func newLocker(conf *core.Config) *core.Locker {
	return core.NewLocker(conf.LockTimeout)
}

// newExplainer returns a nil explainer when Gemini is not configured; errors are then shown verbatim.
func newExplainer(conf *core.Config, logger core.Logger) core.ErrorExplainer {
	explainer, err := explainsvc.NewGeminiExplainer(context.Background(), conf)
	if err != nil {
		logger.Warn(fmt.Sprintf("error explainer disabled: %v", err))
		return nil
	}
	return explainer
}

func newServer(p serverParams) *echoapi.Server {
	return echoapi.NewServer(echoapi.ServerDeps{
		Conf:        p.Conf,
		Logger:      p.Logger,
		ScheduleSvc: p.ScheduleSvc,
		Explainer:   p.Explainer,
		Validate:    p.Validate,
		Translator:  p.Translator,
	})
}

// New returns a new dependency injection dig.Container
func New() *dig.Container {
	c := dig.New()

	must(c.Provide(core.NewConfig))
	must(c.Provide(newLogger))
	must(c.Provide(newDBLogger, dig.Name("dbLogger")))
	must(c.Provide(newDB))
	must(c.Provide(newRowStore))
	must(c.Provide(newLocker))
	must(c.Provide(newExplainer))
	must(c.Provide(validator.New))
	must(c.Provide(core.NewTranslator))
	must(c.Provide(schedule.NewService))
	must(c.Provide(newServer))

	return c
}

// must exits program if err happened
func must(err error) {
	if err != nil {
		log.Fatal(errors.Wrap(err, "failed to provide dependency").Error())
	}
}
