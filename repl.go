package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"
)

const (
	historyFile = ".dendron_history"
	promptMain  = "🌳 "
	promptCont  = " … "
)

// lineSource is the part of *liner.State the session loop uses.
type lineSource interface {
	Prompt(prompt string) (string, error)
	AppendHistory(item string)
}

// repl runs an interactive session on the terminal. History is kept in the
// home directory when there is one.
func repl(r *runner, stderr io.Writer, trace bool) error {
	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	home, err := os.UserHomeDir()
	if err != nil {
		plog.Warningf("history disabled: %v", err)
		return session(r, ln, stderr, trace)
	}
	histPath := filepath.Join(home, historyFile)

	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}
	defer func() {
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}()

	return session(r, ln, stderr, trace)
}

// session collects tokens line by line. A line holding only "." runs what was
// collected; errors are reported and the session goes on. An aborted prompt
// drops the collected tokens, end of input ends the session.
func session(r *runner, lines lineSource, stderr io.Writer, trace bool) error {
	var tokens []string
	for {
		prompt := promptMain
		if len(tokens) > 0 {
			prompt = promptCont
		}

		line, err := lines.Prompt(prompt)
		if err == liner.ErrPromptAborted {
			tokens = nil
			continue
		}
		if err == io.EOF {
			fmt.Fprintln(r.out)
			return nil
		}
		if err != nil {
			return err
		}

		if strings.TrimSpace(line) != "." {
			tokens = append(tokens, strings.Fields(line)...)
			if strings.TrimSpace(line) != "" {
				lines.AppendHistory(line)
			}
			continue
		}

		if len(tokens) > 0 {
			if err := r.runTokens(tokens); err != nil {
				reportError(stderr, err, trace)
			}
		}
		tokens = nil
	}
}
