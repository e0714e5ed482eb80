package main

import (
	"fmt"
	"io"
	"io/ioutil"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/alecthomas/repr"
	"github.com/coreos/pkg/capnslog"
	"github.com/pontaoski/dendron/ast"
	"github.com/pontaoski/dendron/codegen"
	"github.com/pontaoski/dendron/config"
	"github.com/pontaoski/dendron/errors"
	"github.com/pontaoski/dendron/machine"
	"github.com/pontaoski/dendron/parser"
	"github.com/pontaoski/dendron/samples"
	"github.com/pontaoski/dendron/symtab"
	"github.com/urfave/cli/v2"
	"github.com/ztrue/tracerr"
)

var plog = capnslog.NewPackageLogger("github.com/pontaoski/dendron", "main")

const separator = "___________________________________________________________________________"

// runner drives one program through display, interpretation, compilation,
// listing and execution, as enabled by the project configuration.
type runner struct {
	out  io.Writer
	cfg  config.Project
	dump bool
}

func (r *runner) run(prog ast.Program) error {
	if r.dump {
		repr.New(r.out).Println(prog)
	}

	if r.cfg.Display {
		fmt.Fprint(r.out, prog.String())
		fmt.Fprintln(r.out)
	}

	if r.cfg.Interpret {
		fmt.Fprintln(r.out, "Interpreting the parse tree...")
		store := symtab.New()
		if err := prog.Execute(store, r.out); err != nil {
			return err
		}
		fmt.Fprintln(r.out, "Interpretation complete.")
		fmt.Fprintln(r.out)
		if r.cfg.Symbols {
			if err := store.Dump(r.out); err != nil {
				return err
			}
		}
	}

	if !r.cfg.Compile {
		return nil
	}

	code := prog.Emit()
	plog.Infof("compiled %d statements into %d instructions", len(prog.Statements), len(code))

	if r.cfg.Listing {
		fmt.Fprintln(r.out, "\nCompiled code:")
		if err := machine.Listing(r.out, code); err != nil {
			return err
		}
		fmt.Fprintln(r.out)
	}

	if r.cfg.Execute {
		return r.execute(code)
	}
	return nil
}

func (r *runner) execute(code []machine.Instruction) error {
	fmt.Fprintln(r.out, "Executing compiled code...")
	report, err := machine.New(r.out).Execute(code)
	if err != nil {
		return err
	}

	if r.cfg.Symbols {
		return report.Dump(r.out)
	}
	_, err = fmt.Fprintln(r.out, report.Summary())
	return err
}

func (r *runner) runTokens(tokens []string) error {
	prog, err := parser.Parse(tokens)
	if err != nil {
		return err
	}
	return r.run(prog)
}

func (r *runner) runFile(path string) error {
	handle, err := os.Open(path)
	if err != nil {
		return err
	}
	defer handle.Close()

	prog, err := parser.ParseReader(handle, filepath.Base(path))
	if err != nil {
		return err
	}
	return r.run(prog)
}

// runDirectory runs every file in dir carrying the configured suffix, in
// name order. The first failing file stops the run.
func (r *runner) runDirectory(dir string) error {
	fis, err := ioutil.ReadDir(dir)
	if err != nil {
		return err
	}

	for _, fi := range fis {
		if fi.IsDir() || !strings.HasSuffix(fi.Name(), r.cfg.Suffix) {
			continue
		}

		fmt.Fprintf(r.out, "\nTest File %s:\n\n", fi.Name())
		if err := r.runFile(filepath.Join(dir, fi.Name())); err != nil {
			return err
		}
		fmt.Fprintf(r.out, "\n%s\n", separator)
	}

	return nil
}

// loadProgram parses the program named by the --file flag, the arguments,
// or standard input, in that order of preference.
func loadProgram(c *cli.Context) (ast.Program, error) {
	if path := c.String("file"); path != "" {
		handle, err := os.Open(path)
		if err != nil {
			return ast.Program{}, err
		}
		defer handle.Close()
		return parser.ParseReader(handle, filepath.Base(path))
	}

	if c.Args().Present() {
		return parser.Parse(c.Args().Slice())
	}

	return parser.ParseReader(c.App.Reader, "<stdin>")
}

// reportError writes err to w the way a Dendron abort is reported.
func reportError(w io.Writer, err error, trace bool) {
	if trace {
		fmt.Fprintln(w, tracerr.SprintSourceColor(err))
		return
	}
	if derr, ok := errors.As(err); ok {
		fmt.Fprintln(w, derr.Error())
		return
	}
	fmt.Fprintln(w, tracerr.Unwrap(err))
}

func overrideStages(c *cli.Context, p *config.Project) {
	stages := map[string]*bool{
		"display":   &p.Display,
		"interpret": &p.Interpret,
		"compile":   &p.Compile,
		"listing":   &p.Listing,
		"execute":   &p.Execute,
		"symbols":   &p.Symbols,
	}
	for name, stage := range stages {
		if c.IsSet(name) {
			*stage = c.Bool(name)
		}
	}
}

func newApp(stdin io.Reader, stdout, stderr io.Writer, trace *bool) *cli.App {
	r := &runner{out: stdout}

	stageFlags := []cli.Flag{}
	for _, name := range []string{"display", "interpret", "compile", "listing", "execute", "symbols"} {
		stageFlags = append(stageFlags, &cli.BoolFlag{
			Name:  name,
			Usage: "override the " + name + " stage from the project file",
		})
	}

	return &cli.App{
		Name:      "dendron",
		Usage:     "prefix notation interpreter and stack machine",
		Reader:    stdin,
		Writer:    stdout,
		ErrWriter: stderr,
		ExitErrHandler: func(context *cli.Context, err error) {
			// errors are reported by run
		},
		Flags: append([]cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Value:   config.DefaultFile,
				Usage:   "project file",
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "CRITICAL, ERROR, WARNING, NOTICE, INFO, DEBUG or TRACE",
			},
			&cli.BoolFlag{
				Name:  "trace",
				Usage: "print a stack trace with errors",
			},
			&cli.BoolFlag{
				Name:  "dump",
				Usage: "print the parsed program structure",
			},
		}, stageFlags...),
		Before: func(c *cli.Context) error {
			doc, err := config.Load(c.String("config"))
			if err != nil {
				return fmt.Errorf("reading %s: %w", c.String("config"), err)
			}
			overrideStages(c, &doc)
			if c.IsSet("log-level") {
				doc.LogLevel = c.String("log-level")
			}

			capnslog.SetFormatter(capnslog.NewPrettyFormatter(stderr, false))
			level, err := capnslog.ParseLevel(strings.ToUpper(doc.LogLevel))
			if err != nil {
				return err
			}
			capnslog.SetGlobalLogLevel(level)

			r.cfg = doc
			r.dump = c.Bool("dump")
			*trace = c.Bool("trace")
			return nil
		},
		Commands: []*cli.Command{
			{
				Name:      "run",
				Usage:     "run a program given as arguments, a file, a directory or standard input",
				ArgsUsage: "[tokens...]",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "file",
						Aliases: []string{"f"},
					},
					&cli.StringFlag{
						Name:    "dir",
						Aliases: []string{"d"},
					},
				},
				Action: func(c *cli.Context) error {
					if dir := c.String("dir"); dir != "" {
						return r.runDirectory(dir)
					}

					prog, err := loadProgram(c)
					if err != nil {
						return err
					}
					return r.run(prog)
				},
			},
			{
				Name:      "sample",
				Usage:     "run a built-in sample program",
				ArgsUsage: "<number>",
				Action: func(c *cli.Context) error {
					n, err := strconv.Atoi(c.Args().First())
					if err != nil {
						return cli.Exit(fmt.Sprintf("sample number must be an integer, got %q", c.Args().First()), 2)
					}
					tokens, err := samples.Program(n)
					if err != nil {
						return cli.Exit(err.Error(), 2)
					}
					return r.runTokens(tokens)
				},
			},
			{
				Name:  "repl",
				Usage: "read programs interactively; a line holding only . runs them",
				Action: func(c *cli.Context) error {
					return repl(r, stderr, *trace)
				},
			},
			{
				Name:      "asm",
				Usage:     "assemble a machine listing and execute it",
				ArgsUsage: "<listing>",
				Action: func(c *cli.Context) error {
					path := c.Args().First()
					if path == "" {
						return cli.Exit("no listing file provided", 2)
					}
					handle, err := os.Open(path)
					if err != nil {
						return err
					}
					defer handle.Close()

					code, err := machine.Assemble(handle, filepath.Base(path))
					if err != nil {
						return err
					}
					if r.dump {
						repr.New(r.out).Println(code)
					}
					return r.execute(code)
				},
			},
			{
				Name:      "llvm",
				Usage:     "print the LLVM IR of a program",
				ArgsUsage: "[tokens...]",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "file",
						Aliases: []string{"f"},
					},
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
					},
				},
				Action: func(c *cli.Context) error {
					prog, err := loadProgram(c)
					if err != nil {
						return err
					}
					module, err := codegen.Generate(prog)
					if err != nil {
						return err
					}

					if out := c.String("output"); out != "" {
						return ioutil.WriteFile(out, []byte(module.String()), 0644)
					}
					_, err = io.WriteString(r.out, module.String())
					return err
				},
			},
			{
				Name:      "build",
				Usage:     "compile a program to a native executable with clang",
				ArgsUsage: "[tokens...]",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "file",
						Aliases: []string{"f"},
					},
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
					},
				},
				Action: func(c *cli.Context) error {
					out := c.String("output")
					if out == "" {
						out = r.cfg.Name
					}
					if out == "" {
						out = "a.out"
					}

					prog, err := loadProgram(c)
					if err != nil {
						return err
					}
					module, err := codegen.Generate(prog)
					if err != nil {
						return err
					}

					fi, err := ioutil.TempFile("", "*.ll")
					if err != nil {
						return err
					}
					defer os.Remove(fi.Name())
					defer fi.Close()
					if _, err := io.Copy(fi, strings.NewReader(module.String())); err != nil {
						return err
					}

					cmd := exec.Command("clang", "-o", out, fi.Name())
					cmd.Stdout = stdout
					cmd.Stderr = stderr
					return tracerr.Wrap(cmd.Run())
				},
			},
			{
				Name:      "init",
				Usage:     "write a project file",
				ArgsUsage: "<name>",
				Action: func(c *cli.Context) error {
					name := c.Args().First()
					if name == "" {
						return cli.Exit("no project name provided", 2)
					}
					doc := config.Default()
					doc.Name = name
					return config.Save(c.String("config"), doc)
				},
			},
		},
	}
}

// run executes the command line and returns the process exit status.
func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	var trace bool
	app := newApp(stdin, stdout, stderr, &trace)

	err := app.Run(args)
	if err == nil {
		return 0
	}

	if exit, ok := err.(cli.ExitCoder); ok {
		if msg := exit.Error(); msg != "" {
			fmt.Fprintln(stderr, msg)
		}
		return exit.ExitCode()
	}

	reportError(stderr, err, trace)
	return errors.Abort
}

func main() {
	os.Exit(run(os.Args, os.Stdin, os.Stdout, os.Stderr))
}
