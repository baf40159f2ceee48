package workspace

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"cfcli/lib/config"
	"cfcli/lib/identifier"
	"cfcli/lib/scrapers/codeforces/samples"
	"cfcli/lib/telemetry"
	"cfcli/lib/textutil"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var tracer = telemetry.Tracer("cfcli.lib.workspace")

const (
	TestsFilename   = "tests.json"
	SolutionExt     = ".cpp"
	PermissionsDir  = 0755
	PermissionsFile = 0644
)

// ErrEscapesRoot is returned when a problem id would place files outside
// of cf_dir, ex. an id containing "../".
var ErrEscapesRoot = errors.New("path escapes its root directory")

type WriteError struct {
	Op   string
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("%s %s: %s", e.Op, e.Path, e.Err.Error())
}

func (e *WriteError) Unwrap() error {
	return e.Err
}

// Writer stages the files of a parsed problem on disk. All paths are
// derived from the config, the process working directory is never used.
type Writer struct {
	Config config.Config
}

func NewWriter(cfg config.Config) Writer {
	return Writer{Config: cfg}
}

func vars(p identifier.Problem) map[string]string {
	return map[string]string{
		"contest_id": strconv.FormatUint(p.ContestID, 10),
		"problem_id": p.ProblemID,
	}
}

// TestsPath is <cf_dir>/.cfcli/<contest_id><problem_id>/tests.json.
func (w Writer) TestsPath(p identifier.Problem) string {
	return filepath.Join(w.Config.CacheDir(), p.Key(), TestsFilename)
}

func (w Writer) WorkspaceDir(p identifier.Problem) string {
	return filepath.Join(w.Config.CfDir, textutil.Substitute(w.Config.WorkspaceDir, vars(p)))
}

func within(root, path string) bool {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

// checkPaths verifies that the tests file stays under the cache dir and the
// workspace and solution stay under cf_dir.
func (w Writer) checkPaths(p identifier.Problem) error {
	if path := w.TestsPath(p); !within(w.Config.CacheDir(), path) {
		return &WriteError{Op: "resolve tests path", Path: path, Err: ErrEscapesRoot}
	}
	if dir := w.WorkspaceDir(p); !within(w.Config.CfDir, dir) {
		return &WriteError{Op: "resolve workspace", Path: dir, Err: ErrEscapesRoot}
	}
	if path := w.SolutionPath(p); !within(w.WorkspaceDir(p), path) {
		return &WriteError{Op: "resolve solution path", Path: path, Err: ErrEscapesRoot}
	}
	return nil
}

func (w Writer) SolutionPath(p identifier.Problem) string {
	filename := textutil.Substitute(w.Config.SolutionFilename, vars(p)) + SolutionExt
	return filepath.Join(w.WorkspaceDir(p), filename)
}

// Write runs every staging step for one problem, stopping at the first failure.
func (w Writer) Write(ctx context.Context, p identifier.Problem, tests samples.TestCases) error {
	ctx, span := tracer.Start(ctx, "Write")
	defer span.End()
	span.SetAttributes(attribute.String("problem", p.Key()))

	err := w.checkPaths(p)
	if err == nil {
		err = w.writeTests(ctx, p, tests)
	}
	if err == nil {
		err = w.createWorkspace(p)
	}
	if err == nil {
		err = w.runCreationCmd(ctx, p)
	}
	if err == nil {
		err = w.writeSolution(ctx, p)
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to stage problem")
		return err
	}
	return nil
}

func (w Writer) writeTests(ctx context.Context, p identifier.Problem, tests samples.TestCases) error {
	path := w.TestsPath(p)
	serialized, err := tests.Marshal()
	if err != nil {
		return &WriteError{Op: "serialize tests", Path: path, Err: err}
	}
	err = os.MkdirAll(filepath.Dir(path), PermissionsDir)
	if err != nil {
		return &WriteError{Op: "create cache dir", Path: filepath.Dir(path), Err: err}
	}
	err = os.WriteFile(path, serialized, PermissionsFile)
	if err != nil {
		return &WriteError{Op: "write tests", Path: path, Err: err}
	}
	slog.DebugContext(ctx, "wrote tests", "problem", p.Key(), "path", path, "count", tests.Count)
	return nil
}

func (w Writer) createWorkspace(p identifier.Problem) error {
	dir := w.WorkspaceDir(p)
	err := os.MkdirAll(dir, PermissionsDir)
	if err != nil {
		return &WriteError{Op: "create workspace", Path: dir, Err: err}
	}
	return nil
}

func (w Writer) runCreationCmd(ctx context.Context, p identifier.Problem) error {
	if w.Config.WorkspaceCreationCmd == "" {
		return nil
	}
	dir := w.WorkspaceDir(p)
	err := RunShell(ctx, dir, w.Config.WorkspaceCreationCmd)
	if err != nil {
		return &WriteError{Op: "run workspace creation command", Path: dir, Err: err}
	}
	return nil
}

// The template body is copied as-is, it has no variables yet.
func (w Writer) writeSolution(ctx context.Context, p identifier.Problem) error {
	templatePath := w.Config.TemplatePath()
	template, err := os.ReadFile(templatePath)
	if err != nil {
		return &WriteError{Op: "read template", Path: templatePath, Err: err}
	}

	path := w.SolutionPath(p)
	err = os.WriteFile(path, template, PermissionsFile)
	if err != nil {
		return &WriteError{Op: "write solution", Path: path, Err: err}
	}
	slog.DebugContext(ctx, "wrote solution", "problem", p.Key(), "path", path)
	return nil
}

// RunShell runs `command` with bash in `dir`. Combined output is
// included in the error when the command fails.
func RunShell(ctx context.Context, dir, command string) error {
	cmd := exec.CommandContext(ctx, "bash", "-c", command)
	cmd.Dir = dir
	var output bytes.Buffer
	cmd.Stdout = &output
	cmd.Stderr = &output

	err := cmd.Run()
	if err != nil {
		if output.Len() > 0 {
			return fmt.Errorf("%w: %s", err, bytes.TrimSpace(output.Bytes()))
		}
		return err
	}
	return nil
}

// Open runs the configured open command inside the problem's workspace,
// attached to the terminal.
func (w Writer) Open(ctx context.Context, p identifier.Problem) error {
	if err := w.checkPaths(p); err != nil {
		return err
	}
	dir := w.WorkspaceDir(p)
	if _, err := os.Stat(dir); err != nil {
		return &WriteError{Op: "open workspace", Path: dir, Err: err}
	}
	cmd := exec.CommandContext(ctx, "bash", "-c", w.Config.OpenCmd)
	cmd.Dir = dir
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	err := cmd.Run()
	if err != nil {
		return &WriteError{Op: "run open command", Path: dir, Err: err}
	}
	return nil
}
