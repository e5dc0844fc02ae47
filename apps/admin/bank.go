package main

import (
	"bufio"
	"context"
	"strings"

	"github.com/pkg/errors"

	"github.com/aniketpandey04/EduTrak-AI/core"
	"github.com/aniketpandey04/EduTrak-AI/core/question"
	sqlxrepo "github.com/aniketpandey04/EduTrak-AI/storage/database/sqlx"
	filebank "github.com/aniketpandey04/EduTrak-AI/storage/file"
)

// validateBank loads a catalog and prints every problem found in it.
func (cli *commandLine) validateBank(path string) (question.Catalog, error) {
	cat, err := filebank.Load(path)
	if err != nil {
		return cat, err
	}
	if err = question.ValidateBank(cat.Questions, cli.validate, cli.translator); err != nil {
		flds := core.FieldErrors(err)
		for _, fld := range flds {
			cli.printf("  %s\n", fld)
		}
		return cat, errors.Wrapf(err, "%s has %d problem(s)", path, len(flds))
	}
	if len(cat.Questions) == 0 {
		return cat, errors.Errorf("%s has no questions", path)
	}
	cli.printf("%s: %d valid questions\n", path, len(cat.Questions))
	return cat, nil
}

// importBank replaces the stored question bank with the catalog at path.
func (cli *commandLine) importBank(path string, yes bool) error {
	ctx := context.Background()
	cat, err := cli.validateBank(path)
	if err != nil {
		return err
	}

	current, err := sqlxrepo.NewQuestionRepository(cli.db).ListQuestions(ctx)
	if err != nil {
		return err
	}
	if len(current) > 0 && !yes {
		if !isTerminalFunc(stdinFd()) {
			return errors.Wrap(errAborted, "the bank is not empty, use -yes to replace it")
		}
		cli.printf("Replace the %d stored questions? [y/N] ", len(current))
		answer, _ := bufio.NewReader(cli.in).ReadString('\n')
		if a := core.CleanString(answer, true /* lower */); !strings.HasPrefix(a, "y") {
			return errAborted
		}
	}

	if err = sqlxrepo.Import(ctx, cli.db, cat.Questions); err != nil {
		return err
	}
	cli.printf("imported %d questions\n", len(cat.Questions))
	return nil
}
