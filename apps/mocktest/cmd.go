package main

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"golang.org/x/term"

	"github.com/aniketpandey04/EduTrak-AI/apps"
	"github.com/aniketpandey04/EduTrak-AI/core"
	"github.com/aniketpandey04/EduTrak-AI/core/mocktest"
	"github.com/aniketpandey04/EduTrak-AI/core/question"
	"github.com/aniketpandey04/EduTrak-AI/services/export"
)

var (
	isTerminalFunc = term.IsTerminal // mockable

	errHelp = errors.New("help provided")
)

// syncWriter serializes writes of the input loop and the clock.
type syncWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (sw *syncWriter) Write(p []byte) (int, error) {
	sw.mu.Lock()
	defer sw.mu.Unlock()
	return sw.w.Write(p)
}

type commandLine struct {
	conf     *core.Config
	svc      *mocktest.Service
	exporter *export.Exporter
	logger   core.Logger
	in       io.Reader
	out      io.Writer

	interactive bool
	exportDir   string
}

func (cli *commandLine) printf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(cli.out, format, args...)
}

func (cli *commandLine) printCommands() {
	cli.printf(`Commands:
  a|answer LETTER      select an option of the current question (A, B, ... or 1, 2, ...)
  c|clear              clear the answer of the current question
  n|next, p|prev       move to the next / previous question
  g|goto N             jump to question number N
  id ID                jump to the question with bank id ID (related questions)
  r|review             toggle "marked for review"
  b|bookmark           toggle the bookmark
  st|status            show the question palette and progress
  s|solution           show the solution (practice mode or after submitting)
  rate up|down|clear   rate the current question once solutions are visible
  export               save the solution of the current question to a text file
  submit               submit the test
  reveal               review the solutions after submitting
  h|help               show this help
  q|quit               leave the test
`)
}

func (cli *commandLine) options(args []string) (mocktest.Options, bool, error) {
	opts := mocktest.OptionsFromConfig(cli.conf)

	fs := flag.NewFlagSet(filepath.Base(args[0]), flag.ContinueOnError)
	fs.SetOutput(cli.out)
	practice := fs.Bool("practice", false, "untimed practice with solutions on demand")
	examType := fs.String("exam", opts.ExamType, "exam type shown on the test")
	duration := fs.Int("duration", cli.conf.MockTest.DurationMinutes, "test length in minutes")
	limit := fs.Int("limit", opts.Limit, "maximum number of questions, 0 for the whole bank")
	subjects := fs.String("subjects", "", "comma separated subjects")
	difficulties := fs.String("difficulties", "", "comma separated difficulties (Easy, Medium, Hard)")
	tags := fs.String("tags", "", "comma separated tags")
	pyq := fs.Bool("pyq", false, "previous year questions only")
	fs.StringVar(&cli.exportDir, "out", ".", "directory solution files are exported to")

	if err := fs.Parse(args[1:]); err != nil {
		if err == flag.ErrHelp {
			return opts, false, errHelp
		}
		return opts, false, apps.NewArgumentError(err.Error())
	}

	opts.ExamType = *examType
	opts.DurationSeconds = *duration * 60
	opts.Limit = *limit
	opts.Filter = question.Filter{
		Subjects:         core.CleanStrings(strings.Split(*subjects, ",")),
		Tags:             core.CleanStrings(strings.Split(*tags, ",")),
		PreviousYearOnly: *pyq,
	}
	for _, s := range core.CleanStrings(strings.Split(*difficulties, ",")) {
		diff, err := question.ParseDifficulty(s)
		if err != nil {
			return opts, false, apps.NewArgumentError(err.Error())
		}
		opts.Filter.Difficulties = append(opts.Filter.Difficulties, diff)
	}
	return opts, !*practice, nil
}

func (cli *commandLine) run(ctx context.Context, args []string) error {
	opts, timed, err := cli.options(args)
	if err != nil {
		return err
	}

	sess, err := cli.svc.NewSession(ctx, opts)
	if err != nil {
		return err
	}
	if err = sess.Start(timed); err != nil {
		return err
	}
	defer sess.Exit()

	cli.printIntro(sess.Snapshot(), timed)

	var wg sync.WaitGroup
	defer wg.Wait()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if timed {
		ticker := mocktest.NewTicker(cli.conf.MockTest.TickInterval, cli.onTick)
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := ticker.Run(ctx, sess); err != nil && ctx.Err() == nil {
				cli.logger.Error(fmt.Sprintf("clock stopped: %v", err), err, sess.Snapshot())
			}
		}()
	}

	cli.render(sess.Snapshot())
	lines := cli.readLines(ctx)
	for {
		cli.prompt()
		select {
		case <-ctx.Done():
			cli.logger.Warn("mock test session interrupted", sess.Snapshot())
			return core.NewShutdownError("mock test interrupted: %v", ctx.Err())
		case line, ok := <-lines:
			if !ok {
				return nil
			}
			quit, err := cli.handle(ctx, sess, line)
			if err != nil {
				cli.printf("error: %v\n", err)
			}
			if quit {
				return nil
			}
		}
	}
}

// readLines feeds the input lines until EOF or ctx is done.
func (cli *commandLine) readLines(ctx context.Context) <-chan string {
	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(cli.in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
	}()
	return lines
}

func (cli *commandLine) prompt() {
	if cli.interactive {
		cli.printf("> ")
	}
}

// onTick warns when time is running out and reports the automatic submission.
// It runs on the clock goroutine, so each report goes out in a single write.
func (cli *commandLine) onTick(snap mocktest.Snapshot) {
	var buf bytes.Buffer
	switch {
	case snap.Completed():
		buf.WriteString("\nTime is up! Your test has been submitted.\n")
		cli.writeResult(&buf, snap)
	case snap.Remaining == 5*60, snap.Remaining == 60:
		fmt.Fprintf(&buf, "\n%s left\n", snap.Clock())
	default:
		return
	}
	_, _ = cli.out.Write(buf.Bytes())
}

// handle runs one user command and reports whether the session is over.
func (cli *commandLine) handle(ctx context.Context, sess *mocktest.Session, line string) (bool, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false, nil
	}
	cmd, args := strings.ToLower(fields[0]), fields[1:]
	current := sess.CurrentIndex()

	switch cmd {
	case "a", "answer":
		if len(args) != 1 {
			return false, apps.NewArgumentError("usage: answer LETTER")
		}
		opt, err := parseOption(args[0])
		if err != nil {
			return false, err
		}
		if err = sess.SelectAnswer(current, opt); err != nil {
			return false, err
		}
	case "c", "clear":
		if err := sess.ClearAnswer(current); err != nil {
			return false, err
		}
	case "n", "next":
		if err := sess.Next(); err != nil {
			return false, err
		}
	case "p", "prev", "previous":
		if err := sess.Previous(); err != nil {
			return false, err
		}
	case "g", "goto":
		n, err := parseNumber(args, "usage: goto N")
		if err != nil {
			return false, err
		}
		if err = sess.GoTo(n - 1); err != nil {
			return false, err
		}
	case "id":
		id, err := parseNumber(args, "usage: id ID")
		if err != nil {
			return false, err
		}
		if err = sess.GoToQuestionID(id); err != nil {
			if !errors.Is(err, question.ErrNotFound) {
				return false, err
			}
			q, qErr := cli.svc.Question(ctx, id)
			if qErr != nil {
				return false, err
			}
			cli.printOutside(q)
			return false, nil
		}
	case "r", "review":
		if _, err := sess.ToggleReview(current); err != nil {
			return false, err
		}
	case "b", "bookmark":
		if _, err := sess.ToggleBookmark(current); err != nil {
			return false, err
		}
	case "st", "status":
		cli.printStatus(sess.Snapshot())
		return false, nil
	case "s", "solution":
		sol, err := sess.Solution(current)
		if err != nil {
			return false, err
		}
		cli.printSolution(sol)
		return false, nil
	case "rate":
		rating, err := parseRating(args)
		if err != nil {
			return false, err
		}
		if err = sess.Rate(current, rating); err != nil {
			return false, err
		}
		cli.printf("rating saved\n")
		return false, nil
	case "export":
		return false, cli.exportSolution(sess, current)
	case "submit":
		if err := sess.Submit(); err != nil {
			return false, err
		}
		cli.printf("Test submitted.\n")
		cli.printResult(sess.Snapshot())
		return false, nil
	case "reveal":
		if err := sess.RevealSolutions(); err != nil {
			return false, err
		}
	case "h", "help":
		cli.printCommands()
		return false, nil
	case "q", "quit", "exit":
		snap := sess.Snapshot()
		sess.Exit()
		cli.logger.Info("mock test session left", snap)
		return true, nil
	default:
		return false, apps.NewArgumentError(fmt.Sprintf("unknown command %q, type help", cmd))
	}

	cli.render(sess.Snapshot())
	return false, nil
}

func (cli *commandLine) exportSolution(sess *mocktest.Session, idx int) error {
	sol, err := sess.Solution(idx)
	if err != nil {
		return err
	}

	path := filepath.Join(cli.exportDir, export.SolutionFilename(sol.Question))
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err = cli.exporter.WriteSolution(f, sess.ExamType(), sol.Question); err != nil {
		_ = f.Close()
		return err
	}
	if err = f.Close(); err != nil {
		return err
	}
	cli.printf("solution saved to %s\n", path)
	return nil
}

func (cli *commandLine) printResult(snap mocktest.Snapshot) {
	var buf bytes.Buffer
	cli.writeResult(&buf, snap)
	_, _ = cli.out.Write(buf.Bytes())
}

func (cli *commandLine) writeResult(buf *bytes.Buffer, snap mocktest.Snapshot) {
	if err := cli.exporter.WriteResult(buf, snap); err != nil {
		cli.logger.Error(fmt.Sprintf("rendering result: %v", err), err, snap)
	}
}

// parseOption accepts a letter (A, b...) or a 1-based number.
func parseOption(s string) (int, error) {
	if n, err := strconv.Atoi(s); err == nil {
		return n - 1, nil
	}
	if len(s) == 1 {
		c := strings.ToUpper(s)[0]
		if c >= 'A' && c <= 'Z' {
			return int(c - 'A'), nil
		}
	}
	return 0, apps.NewArgumentError(fmt.Sprintf("invalid option %q", s))
}

func parseNumber(args []string, usage string) (int, error) {
	if len(args) != 1 {
		return 0, apps.NewArgumentError(usage)
	}
	n, err := strconv.Atoi(args[0])
	if err != nil {
		return 0, apps.NewArgumentError(usage)
	}
	return n, nil
}

func parseRating(args []string) (int, error) {
	if len(args) == 1 {
		switch strings.ToLower(args[0]) {
		case "up", "+1", "1":
			return 1, nil
		case "down", "-1":
			return -1, nil
		case "clear", "0":
			return 0, nil
		}
	}
	return 0, apps.NewArgumentError("usage: rate up|down|clear")
}
