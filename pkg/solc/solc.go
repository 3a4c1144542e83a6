// Package solc wraps the external Solidity compiler binary behind a Backend
// interface so callers depend on an injected collaborator rather than on
// process execution.  Nothing in the cryptographic packages depends on this
// package.
package solc

import (
	"bytes"
	"context"
	"os/exec"
	"strings"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// DefaultBinary is the compiler binary used when none is configured.
const DefaultBinary = "solc"

// Backend compiles Solidity sources.  Implementations return the compiler's
// standard output on success; artifacts are written to the output directory.
type Backend interface {
	// Version returns the compiler version, e.g. "0.8.21".
	Version(ctx context.Context) (string, error)

	// Compile compiles the source file at sourcePath, writing artifacts to
	// outputDir.  Extra compiler flags may be supplied via flags.
	Compile(ctx context.Context, sourcePath string, outputDir string, flags []string) (string, error)
}

// CompileError carries the compiler's diagnostic text when compilation fails.
type CompileError struct {
	Diagnostics string
}

func (e *CompileError) Error() string {
	return "solc: " + strings.TrimSpace(e.Diagnostics)
}

// runner executes the compiler process.  It is injected so tests run without
// a solc binary on PATH.
type runner func(ctx context.Context, name string, args ...string) (stdout []byte, stderr []byte, err error)

// Solc is a Backend backed by the solc command line compiler.
type Solc struct {
	binary string
	logger *zap.Logger
	run    runner
}

// New creates a Solc wrapper around the default binary.
func New(logger *zap.Logger) *Solc {
	return NewWithBinary(DefaultBinary, logger)
}

// NewWithBinary creates a Solc wrapper around the given compiler binary.
func NewWithBinary(binary string, logger *zap.Logger) *Solc {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Solc{
		binary: binary,
		logger: logger,
		run:    execRunner,
	}
}

// Version invokes `solc --version` and returns the parsed version number.
func (s *Solc) Version(ctx context.Context) (string, error) {
	stdout, stderr, err := s.run(ctx, s.binary, "--version")
	if err != nil {
		return "", errors.Wrapf(err, "failed to invoke %s", s.binary)
	}
	if len(bytes.TrimSpace(stderr)) > 0 {
		return "", &CompileError{Diagnostics: string(stderr)}
	}

	// Output looks like:
	//   solc, the solidity compiler commandline interface
	//   Version: 0.8.21+commit.d9974bed.Linux.g++
	for _, line := range strings.Split(string(stdout), "\n") {
		if strings.HasPrefix(line, "Version: ") {
			return parseVersion(line), nil
		}
	}
	return "", errors.Errorf("no version line in %s --version output", s.binary)
}

// parseVersion extracts the bare version number from a solc version line.
func parseVersion(line string) string {
	version := strings.TrimPrefix(strings.TrimSpace(line), "Version: ")
	if idx := strings.Index(version, "+"); idx >= 0 {
		version = version[:idx]
	}
	return version
}

// Compile compiles the Solidity source at sourcePath with `--bin --abi
// --overwrite`, writing the artifacts to outputDir.  Any additional flags are
// passed through to the compiler.  Compiler diagnostics on stderr surface as
// a *CompileError.
func (s *Solc) Compile(ctx context.Context, sourcePath string, outputDir string, flags []string) (string, error) {
	args := []string{"--bin", "--abi", "--overwrite"}
	args = append(args, flags...)
	args = append(args, "--output-dir", outputDir, sourcePath)

	jobID := uuid.New().String()
	s.logger.Debug("Invoking solidity compiler",
		zap.String("jobId", jobID),
		zap.String("binary", s.binary),
		zap.String("source", sourcePath),
		zap.String("outputDir", outputDir),
		zap.Strings("flags", flags),
	)

	stdout, stderr, err := s.run(ctx, s.binary, args...)
	if err != nil {
		return "", errors.Wrapf(err, "failed to invoke %s", s.binary)
	}
	if len(bytes.TrimSpace(stderr)) > 0 {
		s.logger.Debug("Compiler reported diagnostics",
			zap.String("jobId", jobID),
			zap.String("diagnostics", string(stderr)),
		)
		return "", &CompileError{Diagnostics: string(stderr)}
	}

	s.logger.Info("Compiled solidity source",
		zap.String("jobId", jobID),
		zap.String("source", sourcePath),
		zap.String("outputDir", outputDir),
	)
	return string(stdout), nil
}

// execRunner runs the compiler via os/exec with separated output streams.
func execRunner(ctx context.Context, name string, args ...string) ([]byte, []byte, error) {
	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		// An ExitError still carries the diagnostics the compiler printed;
		// surface those instead of the bare exit status.
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && stderr.Len() > 0 {
			return stdout.Bytes(), stderr.Bytes(), nil
		}
		return nil, nil, err
	}
	return stdout.Bytes(), stderr.Bytes(), nil
}
