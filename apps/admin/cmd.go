package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/jmoiron/sqlx"
	"golang.org/x/term"
)

var (
	isTerminalFunc = term.IsTerminal // mockable
	stdinFd        = func() int { return int(os.Stdin.Fd()) }

	errHelp    = errors.New("help provided")
	errAborted = errors.New("aborted")
)

type commandLine struct {
	db         *sqlx.DB
	validate   *validator.Validate
	translator ut.Translator
	in         io.Reader
	out        io.Writer
}

func (cli *commandLine) printf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(cli.out, format, args...)
}

func (cli *commandLine) printUsage() {
	cli.printf("Usage:\n")
	cli.printf("  migrate COMMAND [ARGS]         - run a goose migration command (up, down, status, version, redo, reset...)\n")
	cli.printf("  import -file PATH [-yes]       - replace the question bank with a JSON or YAML catalog\n")
	cli.printf("  validate -file PATH            - check a JSON or YAML catalog without importing it\n")
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	importCmd := flag.NewFlagSet("import", flag.ExitOnError)
	importCmd.SetOutput(cli.out)
	importFile := importCmd.String("file", "", "The catalog file (.json, .yaml or .yml).")
	importYes := importCmd.Bool("yes", false, "Do not ask before replacing the current bank.")

	validateCmd := flag.NewFlagSet("validate", flag.ExitOnError)
	validateCmd.SetOutput(cli.out)
	validateFile := validateCmd.String("file", "", "The catalog file (.json, .yaml or .yml).")

	switch args[1] {
	case "migrate":
		if len(args) < 3 {
			cli.printUsage()
			return errHelp
		}
		return cli.migrate(args[2:])
	case "import":
		if err := importCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *importFile == "" {
			importCmd.Usage()
			return errHelp
		}
		return cli.importBank(*importFile, *importYes)
	case "validate":
		if err := validateCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *validateFile == "" {
			validateCmd.Usage()
			return errHelp
		}
		_, err := cli.validateBank(*validateFile)
		return err
	default:
		cli.printUsage()
		return errHelp
	}
}
