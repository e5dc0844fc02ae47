package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/aniketpandey04/EduTrak-AI/core"
	"github.com/aniketpandey04/EduTrak-AI/core/question"
	logsvc "github.com/aniketpandey04/EduTrak-AI/services/logger"
	"github.com/aniketpandey04/EduTrak-AI/storage/database"
)

var logger core.Logger

func main() {
	conf := core.NewConfig()
	logger = logsvc.NewRollbarLogger(log.New(os.Stdout, "ADMIN : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile), conf)

	// set up DB
	ctx := context.Background()
	errAndDie(database.CreateIfNotExist(ctx, conf))
	db, err := database.Open(conf)
	errAndDie(err)
	errAndDie(database.Ping(ctx, db))

	validate, translator := core.NewValidator()
	question.InitValidators(validate, translator)

	// start CLI
	cli := commandLine{
		db:         db,
		validate:   validate,
		translator: translator,
		in:         os.Stdin,
		out:        os.Stdout,
	}
	err = cli.run(os.Args)
	_ = db.Close()
	if err != nil {
		if err != errHelp {
			logger.Error(fmt.Sprintf("\nerror: %s\n", err), err)
		}
		os.Exit(1)
	}
}

func errAndDie(err error) {
	if err != nil {
		logger.Fatal(err.Error(), err)
	}
}
