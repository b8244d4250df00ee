package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/kr/pretty"

	"minic/ast"
	"minic/build"
	"minic/config"
	"minic/report"
	"minic/serve"
	"minic/syntax"
	"minic/util"
	"minic/walk"
)

// driver runs the analysis subcommands and reports their results.
type driver struct {
	cfg *config.Config
	rep *report.Reporter
}

// newDriver loads the configuration and creates a driver reporting to out.
// An empty config path selects the configuration file in the working
// directory, and an empty log level keeps the configured one.
func newDriver(configPath, logLevel string, out io.Writer) (*driver, error) {
	var cfg *config.Config
	var err error

	if configPath == "" {
		cfg, err = config.LoadDir(".")
	} else if _, statErr := os.Stat(configPath); statErr != nil {
		return nil, fmt.Errorf("error loading config: %w", statErr)
	} else {
		cfg, err = config.Load(configPath)
	}

	if err != nil {
		return nil, err
	}

	if logLevel != "" {
		level, err := report.ParseLogLevel(logLevel)
		if err != nil {
			return nil, err
		}

		cfg.LogLevelName = logLevel
		cfg.LogLevel = level
	}

	return &driver{cfg: cfg, rep: report.NewReporter(out, cfg.LogLevel)}, nil
}

// exitCode returns the process exit code for everything reported so far.
func (d *driver) exitCode() int {
	if d.rep.AnyErrors() {
		return 1
	}

	return 0
}

// analyze runs one file up to the given stage and reports its diagnostics.
// It returns nil if the file could not be analyzed.
func (d *driver) analyze(path string, stage int) *build.Result {
	res, err := build.AnalyzeFile(path, d.cfg.BuildOptions(stage))
	if err != nil {
		d.rep.ReportStdError("File Error", err)
		return nil
	}

	d.rep.ReportDiagnostics(path, res.Lines, res.Diagnostics)
	return res
}

// scan displays the tokens of a file.
func (d *driver) scan(path string) {
	res := d.analyze(path, build.StageScan)
	if res == nil {
		return
	}

	rows := util.Map(res.Tokens, func(tok *syntax.Token) []string {
		return []string{syntax.KindName(tok.Kind), tok.Value, strconv.Itoa(tok.Line), strconv.Itoa(tok.Col)}
	})

	d.rep.ReportTable(append([][]string{{"Kind", "Value", "Line", "Column"}}, rows...))
}

// parse parses a file and optionally displays its syntax tree.
func (d *driver) parse(path string, tree, dump bool) {
	res := d.analyze(path, build.StageParse)
	if res == nil {
		return
	}

	if tree {
		d.rep.ReportTree(ast.TreeItems(res.AST))
	}

	if dump {
		d.rep.ReportText(pretty.Sprint(res.AST))
	}
}

// check runs the full pipeline over a file or over every source file in a
// directory.  The files of a directory are analyzed concurrently but reported
// in path order.
func (d *driver) check(ctx context.Context, path string, symbols bool) {
	finfo, err := os.Stat(path)
	if err != nil {
		d.rep.ReportStdError("File Error", err)
		return
	}

	if !finfo.IsDir() {
		if res := d.analyze(path, build.StageCheck); res != nil && symbols {
			d.reportSymbols(res)
		}

		return
	}

	paths, err := build.FindSources(path, d.cfg.SourceExt)
	if err != nil {
		d.rep.ReportStdError("File Error", err)
		return
	} else if len(paths) == 0 {
		d.rep.ReportInfo("Check", "no %s files found in %s", d.cfg.SourceExt, path)
		return
	}

	d.rep.ReportInfo("Check", "checking %d files using %d jobs", len(paths), d.cfg.Jobs)

	c := build.NewCompiler(d.cfg.BuildOptions(build.StageCheck), d.cfg.Jobs)
	results, err := c.AnalyzeFiles(ctx, paths)
	if err != nil {
		d.rep.ReportStdError("Check Error", err)
		return
	}

	for _, fr := range results {
		if fr.Err != nil {
			d.rep.ReportStdError("File Error", fr.Err)
			continue
		}

		d.rep.ReportDiagnostics(fr.Path, fr.Lines, fr.Diagnostics)

		if symbols {
			d.rep.ReportInfo("Symbols", fr.Path)
			d.reportSymbols(fr.Result)
		}
	}

	passed := util.Filter(results, func(fr *build.FileResult) bool {
		return fr.Err == nil && !fr.HasErrors()
	})
	d.rep.ReportInfo("Check", "%d of %d files passed", len(passed), len(results))
}

// reportSymbols displays the declaration table of a checked file.
func (d *driver) reportSymbols(res *build.Result) {
	rows := util.Map(res.Table.Decls(), func(decl *walk.Decl) []string {
		return []string{decl.Name, decl.Type, strconv.Itoa(decl.Line), strconv.Itoa(decl.Column)}
	})

	d.rep.ReportTable(append([][]string{{"Name", "Type", "Line", "Column"}}, rows...))
}

// serve runs the analysis service until the context is cancelled.
func (d *driver) serve(ctx context.Context, addr string) error {
	if addr != "" {
		d.cfg.Server.Address = addr
	}

	s, err := serve.NewServer(d.cfg, d.rep)
	if err != nil {
		return err
	}

	return s.ListenAndServe(ctx)
}
