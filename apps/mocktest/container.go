package main

import (
	"context"
	"fmt"
	"log"
	"os"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"go.uber.org/dig"

	"github.com/aniketpandey04/EduTrak-AI/core"
	"github.com/aniketpandey04/EduTrak-AI/core/mocktest"
	"github.com/aniketpandey04/EduTrak-AI/core/question"
	"github.com/aniketpandey04/EduTrak-AI/services/export"
	logsvc "github.com/aniketpandey04/EduTrak-AI/services/logger"
	"github.com/aniketpandey04/EduTrak-AI/storage/database"
	sqlxrepo "github.com/aniketpandey04/EduTrak-AI/storage/database/sqlx"
	filebank "github.com/aniketpandey04/EduTrak-AI/storage/file"
)

type DBLoggerParam struct {
	dig.In
	Logger core.Logger `name:"dbLogger"`
}

// closer releases what the repository holds open.
type closer func() error

func newLogger(conf *core.Config) core.Logger {
	return logsvc.NewRollbarLogger(log.New(os.Stderr, "MOCKTEST : ", log.LstdFlags), conf)
}

func newDBLogger(conf *core.Config) core.Logger {
	return logsvc.NewRollbarLogger(log.New(os.Stderr, "DB : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile), conf)
}

func newValidator() (*validator.Validate, ut.Translator) {
	validate, translator := core.NewValidator()
	question.InitValidators(validate, translator)
	return validate, translator
}

// newRepository reads the bank file when one is configured, the question database otherwise.
func newRepository(conf *core.Config, loggerParam DBLoggerParam) (question.Repository, closer, error) {
	if conf.MockTest.BankPath != "" {
		return filebank.NewRepository(conf.MockTest.BankPath), func() error { return nil }, nil
	}

	db, err := database.Open(conf)
	if err != nil {
		return nil, nil, err
	}
	if err = database.Ping(context.Background(), db); err != nil {
		loggerParam.Logger.Error(fmt.Sprintf("database not ready: %v", err), err)
		_ = db.Close()
		return nil, nil, err
	}
	return sqlxrepo.NewQuestionRepository(db), db.Close, nil
}

func newExporter(conf *core.Config) (*export.Exporter, error) {
	return export.NewExporter(conf)
}

// newContainer returns the dependency injection dig.Container of the mock test app.
func newContainer(newConfig func() *core.Config) *dig.Container {
	c := dig.New()

	must(c.Provide(newConfig))
	must(c.Provide(newLogger))
	must(c.Provide(newDBLogger, dig.Name("dbLogger")))
	must(c.Provide(newRepository))
	must(c.Provide(newValidator))
	must(c.Provide(mocktest.NewService))
	must(c.Provide(newExporter))

	return c
}

// must exits program if err happened
func must(err error) {
	if err != nil {
		log.Fatal(errors.Wrap(err, "failed to provide dependency").Error())
	}
}
