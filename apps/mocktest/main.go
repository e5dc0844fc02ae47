package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/aniketpandey04/EduTrak-AI/core"
	"github.com/aniketpandey04/EduTrak-AI/core/mocktest"
	"github.com/aniketpandey04/EduTrak-AI/services/export"
)

func main() {
	os.Exit(start(core.NewConfig))
}

func start(newConfig func() *core.Config) int {
	code := 0
	c := newContainer(newConfig)

	must(c.Invoke(func(
		conf *core.Config,
		logger core.Logger,
		closeRepo closer,
		svc *mocktest.Service,
		exporter *export.Exporter,
	) {
		defer func() {
			if err := closeRepo(); err != nil {
				logger.Error(fmt.Sprintf("closing question bank: %v", err), err)
			}
		}()
		logger.Debug(fmt.Sprintf("Application initializing : version %q", conf.Build))

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		out := &syncWriter{w: os.Stdout}
		cli := commandLine{
			conf:        conf,
			svc:         svc,
			exporter:    exporter,
			logger:      logger,
			in:          os.Stdin,
			out:         out,
			interactive: isTerminalFunc(int(os.Stdin.Fd())),
		}
		err := cli.run(ctx, os.Args)
		switch {
		case err == nil, err == errHelp:
		case core.IsShutdown(err):
			_, _ = fmt.Fprintf(out, "\n%v, answers were not submitted\n", err)
			code = 130
		default:
			_, _ = fmt.Fprintf(out, "\nerror: %v\n", err)
			for _, fld := range core.FieldErrors(err) {
				_, _ = fmt.Fprintf(out, "  %s\n", fld)
			}
			code = 1
		}
	}))
	return code
}
