package docs_test

import (
	"bytes"
	"flag"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/etnz/finctrl/cmd"
	"github.com/google/subcommands"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// Line is a "$ finctrl ..." line of a console code block.
type Line struct {
	Args []string
	File string
	Line int
}

// parseMarkdown returns the finctrl command lines of the console blocks of a
// markdown file.
func parseMarkdown(t *testing.T, file string) []Line {
	t.Helper()
	content, err := os.ReadFile(file)
	if err != nil {
		t.Fatalf("failed to read %s: %v", file, err)
	}
	root := goldmark.DefaultParser().Parse(text.NewReader(content))

	var lines []Line
	ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		fcb, ok := n.(*ast.FencedCodeBlock)
		if !ok || string(fcb.Language(content)) != "console" {
			return ast.WalkContinue, nil
		}
		for i := 0; i < fcb.Lines().Len(); i++ {
			seg := fcb.Lines().At(i)
			cmdLine, ok := strings.CutPrefix(strings.TrimSpace(string(seg.Value(content))), "$ finctrl ")
			if !ok {
				continue
			}
			lines = append(lines, Line{
				Args: strings.Fields(cmdLine),
				File: file,
				Line: lineNumber(content, seg.Start),
			})
		}
		return ast.WalkContinue, nil
	})
	return lines
}

// lineNumber computes the line number of an offset in source.
func lineNumber(source []byte, offset int) int {
	return bytes.Count(source[:offset], []byte{'\n'}) + 1
}

// TestCommandLines checks that the documented command lines name existing
// commands with flags they accept.
func TestCommandLines(t *testing.T) {
	commands := map[string]subcommands.Command{}
	c := subcommands.NewCommander(flag.NewFlagSet("finctrl", flag.ContinueOnError), "finctrl")
	cmd.Register(c)
	c.VisitCommands(func(_ *subcommands.CommandGroup, sub subcommands.Command) {
		commands[sub.Name()] = sub
	})

	files, err := filepath.Glob("*.md")
	if err != nil {
		t.Fatal(err)
	}
	count := 0
	for _, file := range files {
		for _, l := range parseMarkdown(t, file) {
			count++
			global := flag.NewFlagSet("finctrl", flag.ContinueOnError)
			global.SetOutput(io.Discard)
			global.String("db", "", "")
			global.Bool("v", false, "")
			if err := global.Parse(l.Args); err != nil || global.NArg() == 0 {
				t.Errorf("%s:%d: invalid global flags in %q: %v", l.File, l.Line, l.Args, err)
				continue
			}
			sub, ok := commands[global.Arg(0)]
			if !ok {
				t.Errorf("%s:%d: unknown command %q", l.File, l.Line, global.Arg(0))
				continue
			}
			fs := flag.NewFlagSet(sub.Name(), flag.ContinueOnError)
			fs.SetOutput(io.Discard)
			sub.SetFlags(fs)
			if err := fs.Parse(global.Args()[1:]); err != nil {
				t.Errorf("%s:%d: %s: %v", l.File, l.Line, sub.Name(), err)
			}
		}
	}
	if count == 0 {
		t.Error("no command lines found in the topics")
	}
}
