package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/aniketpandey04/EduTrak-AI/core/mocktest"
	"github.com/aniketpandey04/EduTrak-AI/core/question"
)

var statusMarks = map[mocktest.QuestionStatus]string{
	mocktest.NotAttempted:      " ",
	mocktest.Marked:            "?",
	mocktest.Answered:          "x",
	mocktest.AnsweredAndMarked: "!",
}

func (cli *commandLine) printIntro(snap mocktest.Snapshot, timed bool) {
	var b strings.Builder
	fmt.Fprintf(&b, "%s Mock Test\n", snap.ExamType)
	fmt.Fprintf(&b, "%d questions, marking %s", snap.QuestionCount(), snap.Marking)
	if timed {
		fmt.Fprintf(&b, ", duration %s\n", mocktest.FormatClock(snap.Duration))
	} else {
		b.WriteString(", practice mode: untimed, solutions on demand\n")
	}
	b.WriteString("Type help for the list of commands.\n")
	_, _ = cli.out.Write([]byte(b.String()))
}

// render prints the current question.
func (cli *commandLine) render(snap mocktest.Snapshot) {
	q := snap.CurrentQuestion()
	var b strings.Builder

	fmt.Fprintf(&b, "\nQuestion %d of %d | %s | %s | %s", snap.Current+1, snap.QuestionCount(), q.Subject, q.Topic, q.Difficulty)
	switch snap.Mode {
	case mocktest.Running:
		fmt.Fprintf(&b, " | %s left", snap.Clock())
	case mocktest.PracticeMode:
		b.WriteString(" | practice")
	case mocktest.Completed, mocktest.ReviewingSolutions:
		b.WriteString(" | submitted")
	}
	if q.PreviousYear {
		fmt.Fprintf(&b, " | PYQ %s", q.ExamYear)
	}
	b.WriteString("\n")
	b.WriteString(q.Prompt + "\n")

	selected, answered := snap.Selected(snap.Current)
	for i, opt := range q.Options {
		mark := " "
		if answered && selected == i {
			mark = "*"
		}
		fmt.Fprintf(&b, "%s %s. %s\n", mark, question.OptionLetter(i), opt)
	}

	var flags []string
	if snap.MarkedForReview[snap.Current] {
		flags = append(flags, "marked for review")
	}
	if snap.Bookmarked[snap.Current] {
		flags = append(flags, "bookmarked")
	}
	if len(flags) > 0 {
		fmt.Fprintf(&b, "[%s]\n", strings.Join(flags, ", "))
	}
	_, _ = cli.out.Write([]byte(b.String()))
}

// printStatus prints the question palette with its legend and the progress.
func (cli *commandLine) printStatus(snap mocktest.Snapshot) {
	var b strings.Builder

	cells := make([]string, 0, snap.QuestionCount())
	for i, st := range snap.Statuses() {
		cells = append(cells, "["+strconv.Itoa(i+1)+statusMarks[st]+"]")
	}
	b.WriteString(strings.Join(cells, " ") + "\n")

	c := snap.StatusCounts()
	fmt.Fprintf(&b, "answered: %d | answered & marked: %d | marked: %d | not attempted: %d | bookmarked: %d\n",
		c.Answered, c.AnsweredAndMarked, c.Marked, c.NotAttempted, c.Bookmarked)

	p := snap.Progress()
	fmt.Fprintf(&b, "progress: %d/%d (%.0f%%) | time used: %s\n", p.Attempted, p.Total, p.Percent, mocktest.FormatClock(snap.TimeUsed()))
	_, _ = cli.out.Write([]byte(b.String()))
}

func (cli *commandLine) printSolution(sol mocktest.Solution) {
	q := sol.Question
	var b strings.Builder

	fmt.Fprintf(&b, "Correct answer: %s. %s\n", question.OptionLetter(q.CorrectOption), q.Options[q.CorrectOption])
	switch {
	case !sol.Attempted():
		b.WriteString("You did not answer this question.\n")
	case sol.Correct:
		b.WriteString("Your answer is correct.\n")
	default:
		fmt.Fprintf(&b, "Your answer: %s (incorrect)\n", question.OptionLetter(sol.Selected))
	}
	if q.Explanation != "" {
		fmt.Fprintf(&b, "Explanation: %s\n", q.Explanation)
	}
	if q.DetailedSolution != "" {
		fmt.Fprintf(&b, "Detailed solution:\n%s\n", q.DetailedSolution)
	}
	if q.HasVideo() {
		fmt.Fprintf(&b, "Video solution: %s\n", q.VideoID)
	}
	if len(q.Tags) > 0 {
		fmt.Fprintf(&b, "Tags: %s\n", strings.Join(q.Tags, ", "))
	}
	if len(q.Related) > 0 {
		ids := make([]string, len(q.Related))
		for i, id := range q.Related {
			ids[i] = strconv.Itoa(id)
		}
		fmt.Fprintf(&b, "Related questions (use id ID): %s\n", strings.Join(ids, ", "))
	}
	_, _ = cli.out.Write([]byte(b.String()))
}

// printOutside previews a bank question the session does not contain, without its answer.
func (cli *commandLine) printOutside(q question.Question) {
	var b strings.Builder
	fmt.Fprintf(&b, "\nQuestion id %d is not part of this test | %s | %s | %s\n", q.ID, q.Subject, q.Topic, q.Difficulty)
	b.WriteString(q.Prompt + "\n")
	for i, opt := range q.Options {
		fmt.Fprintf(&b, "  %s. %s\n", question.OptionLetter(i), opt)
	}
	_, _ = cli.out.Write([]byte(b.String()))
}
