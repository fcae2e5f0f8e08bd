// Command jackc compiles Jack source files to Hack VM code.
package main

import (
	"fmt"
	"io"
	"io/ioutil"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"github.com/urfave/cli"

	"github.com/kirkdrichardson/jackc/internal/compiler"
	"github.com/kirkdrichardson/jackc/internal/diagnostics"
	"github.com/kirkdrichardson/jackc/internal/source"
	"github.com/kirkdrichardson/jackc/internal/vmwriter"
)

var noColor bool
var dryRun bool
var jobs int

// findJackFiles walks root recursively collecting ".jack" files. If root
// is itself a .jack file, it is the sole result.
func findJackFiles(root string) ([]string, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, err
	}

	if !info.IsDir() {
		if filepath.Ext(root) != ".jack" {
			return nil, fmt.Errorf("%s is not a .jack file", root)
		}
		return []string{root}, nil
	}

	var files []string
	walkErr := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && filepath.Ext(path) == ".jack" {
			files = append(files, path)
		}
		return nil
	})
	if walkErr != nil {
		return nil, walkErr
	}

	return files, nil
}

// compileResult is one file's outcome, collected from a worker so the
// batch summary and exit code can be decided after every file has run.
type compileResult struct {
	path     string
	outPath  string
	err      *diagnostics.Diagnostic
	warnings []*diagnostics.Diagnostic
}

// compileFile reads one .jack file and compiles it to the adjacent .vm
// file (or to io.Discard in --dry-run mode), per the file mapping.
func compileFile(path string) compileResult {
	res := compileResult{path: path}

	raw, readErr := ioutil.ReadFile(path)
	if readErr != nil {
		res.err = diagnostics.IOErrorf(nil, "reading %s: %v", path, readErr)
		return res
	}

	file := source.New(path, string(raw))

	var sink io.WriteCloser
	outPath := strings.TrimSuffix(path, ".jack") + ".vm"
	res.outPath = outPath

	if dryRun {
		sink = nopCloser{io.Discard}
	} else {
		f, openErr := os.OpenFile(outPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
		if openErr != nil {
			res.err = diagnostics.IOErrorf(file, "opening %s: %v", outPath, openErr)
			return res
		}
		sink = f
	}

	vm := vmwriter.New(sink)
	engine := compiler.New(file, vm)
	compileErr := engine.CompileClass()
	closeErr := sink.Close()

	res.warnings = engine.Warnings()

	if compileErr != nil {
		res.err = compileErr
		if !dryRun {
			os.Remove(outPath) // don't leave a half-written .vm file
		}
		return res
	}
	if closeErr != nil {
		res.err = diagnostics.IOErrorf(file, "closing %s: %v", outPath, closeErr)
		if !dryRun {
			os.Remove(outPath)
		}
	}
	return res
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

// runCompile compiles every .jack file found under path using a worker
// pool bounded by --jobs (default NumCPU). File-level parallelism lives
// entirely in the driver; each worker owns an independent Engine.
func runCompile(path string) error {
	files, err := findJackFiles(path)
	if err != nil {
		return cli.NewExitError(err.Error(), 2)
	}
	if len(files) == 0 {
		return cli.NewExitError(fmt.Sprintf("no .jack files found under %s", path), 2)
	}

	jobCh := make(chan string, len(files))
	resultCh := make(chan compileResult, len(files))

	workers := jobs
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > len(files) {
		workers = len(files)
	}

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for p := range jobCh {
				resultCh <- compileFile(p)
			}
		}()
	}
	for _, f := range files {
		jobCh <- f
	}
	close(jobCh)
	wg.Wait()
	close(resultCh)

	var failed int
	for res := range resultCh {
		for _, w := range res.warnings {
			fmt.Fprintln(os.Stderr, w.Render(!noColor))
		}
		if res.err != nil {
			failed++
			fmt.Fprintf(os.Stderr, "# %s\n", res.path)
			fmt.Fprintln(os.Stderr, res.err.Render(!noColor))
			continue
		}
		if dryRun {
			fmt.Printf("checked %s\n", res.path)
		} else {
			fmt.Printf("compiled %s -> %s\n", res.path, res.outPath)
		}
	}

	fmt.Printf("compiled %d file(s), %d failed\n", len(files)-failed, failed)
	if failed > 0 {
		return cli.NewExitError("", 2)
	}
	return nil
}

func main() {
	app := cli.NewApp()
	app.Name = "jackc"
	app.Usage = "compile Jack source to Hack VM code"
	app.Version = "0.1.0"

	app.Commands = []cli.Command{
		{
			Name:  "compile",
			Usage: "compile a .jack file or a directory of .jack files",
			Flags: []cli.Flag{
				cli.BoolFlag{Name: "no-color", Usage: "disable colored diagnostics", Destination: &noColor},
				cli.BoolFlag{Name: "dry-run", Usage: "parse and compile without writing .vm files", Destination: &dryRun},
				cli.IntFlag{Name: "jobs", Usage: "worker pool size (default: NumCPU)", Destination: &jobs},
			},
			Action: func(c *cli.Context) error {
				path := c.Args().First()
				if path == "" {
					var err error
					path, err = os.Getwd()
					if err != nil {
						return cli.NewExitError(err.Error(), 2)
					}
				}
				return runCompile(path)
			},
		},
		{
			Name:  "version",
			Usage: "print jackc's version",
			Action: func(c *cli.Context) error {
				fmt.Println(c.App.Version)
				return nil
			},
		},
	}

	app.Action = func(c *cli.Context) error {
		cli.ShowAppHelp(c)
		return nil
	}

	if err := app.Run(os.Args); err != nil {
		os.Exit(1)
	}
}
