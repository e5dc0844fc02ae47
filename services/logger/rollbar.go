package logsvc

import (
	"log"
	"os"

	"github.com/rollbar/rollbar-go"
	"github.com/rollbar/rollbar-go/errors"

	"github.com/aniketpandey04/EduTrak-AI/core"
	"github.com/aniketpandey04/EduTrak-AI/core/mocktest"
)

type RollbarLogger struct {
	std *log.Logger
}

var _ core.Logger = (*RollbarLogger)(nil)

// NewRollbarLogger reports to Rollbar, when enabled, and mirrors every entry to std.
func NewRollbarLogger(std *log.Logger, conf *core.Config) *RollbarLogger {
	rollbar.SetToken(conf.RollbarToken)
	rollbar.SetEnvironment(conf.Env)
	if host, err := os.Hostname(); err == nil {
		rollbar.SetServerHost(host)
	}
	rollbar.SetCodeVersion(conf.Build)
	rollbar.SetStackTracer(errors.StackTracer)
	rollbar.SetCustom(map[string]interface{}{"app": conf.AppName})

	l := &RollbarLogger{std: std}
	l.Enable(!conf.Debug && !conf.TestMode && conf.RollbarToken != "")
	return l
}

func (l RollbarLogger) Enable(enabled bool) {
	rollbar.SetEnabled(enabled)
}

// SessionExtras is the custom data attached to entries logged with a mocktest.Snapshot.
func SessionExtras(snap mocktest.Snapshot) map[string]interface{} {
	return map[string]interface{}{
		"session_id": snap.ID,
		"exam_type":  snap.ExamType,
		"mode":       snap.Mode.String(),
		"answered":   snap.Progress().Attempted,
		"questions":  snap.QuestionCount(),
		"remaining":  snap.Remaining,
	}
}

// expected fmt: msg | error, map[string]interface{}, mocktest.Snapshot
func (l RollbarLogger) prepare(args []interface{}) []interface{} {
	var sessSet bool
	newArgs := make([]interface{}, 0, len(args))
	for _, arg := range args {
		if snap, ok := arg.(mocktest.Snapshot); ok {
			if !sessSet { // only attach one session
				newArgs = append(newArgs, SessionExtras(snap))
				sessSet = true
			}
		} else {
			newArgs = append(newArgs, arg)
		}
	}
	return newArgs
}

func (l RollbarLogger) print(msg string, args []interface{}) {
	l.std.Println(msg)
	for _, arg := range args {
		l.std.Printf("%+v\n", arg)
	}
}

func (l RollbarLogger) log(report func(...interface{}), msg string, args []interface{}) {
	args = l.prepare(args)
	report(append([]interface{}{msg}, args...)...)
	l.print(msg, args)
}

func (l RollbarLogger) Debug(msg string, args ...interface{}) {
	l.log(rollbar.Debug, msg, args)
}

func (l RollbarLogger) Info(msg string, args ...interface{}) {
	l.log(rollbar.Info, msg, args)
}

func (l RollbarLogger) Warn(msg string, args ...interface{}) {
	l.log(rollbar.Warning, msg, args)
}

func (l RollbarLogger) Error(msg string, args ...interface{}) {
	l.log(rollbar.Error, msg, args)
}

func (l RollbarLogger) Fatal(msg string, args ...interface{}) {
	l.log(rollbar.Critical, msg, args)
	rollbar.Wait()
	l.std.Fatal(msg)
}
