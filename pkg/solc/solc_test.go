package solc

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// stubRunner records the invocation and returns canned process output.
type stubRunner struct {
	name   string
	args   []string
	stdout string
	stderr string
	err    error
}

func (s *stubRunner) run(_ context.Context, name string, args ...string) ([]byte, []byte, error) {
	s.name = name
	s.args = args
	return []byte(s.stdout), []byte(s.stderr), s.err
}

func newStubbedSolc(t *testing.T, stub *stubRunner) *Solc {
	t.Helper()
	s := NewWithBinary("solc-test", zap.NewNop())
	s.run = stub.run
	return s
}

// TestVersionParsing tests extraction of the bare version number from the
// compiler's --version output.
func TestVersionParsing(t *testing.T) {
	stub := &stubRunner{
		stdout: "solc, the solidity compiler commandline interface\n" +
			"Version: 0.8.21+commit.d9974bed.Linux.g++\n",
	}
	s := newStubbedSolc(t, stub)

	version, err := s.Version(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "0.8.21", version)
	assert.Equal(t, "solc-test", stub.name)
	assert.Equal(t, []string{"--version"}, stub.args)
}

// TestVersionMissingLine tests the error when the output carries no version
// line.
func TestVersionMissingLine(t *testing.T) {
	s := newStubbedSolc(t, &stubRunner{stdout: "garbage\n"})
	_, err := s.Version(context.Background())
	require.Error(t, err)
}

// TestCompileArguments tests that Compile passes the default flags, the
// caller's extra flags, the output directory, and the source path in order.
func TestCompileArguments(t *testing.T) {
	stub := &stubRunner{stdout: "Compiler run successful.\n"}
	s := newStubbedSolc(t, stub)

	out, err := s.Compile(context.Background(), "contracts/SimpleStorage.sol",
		"artifacts", []string{"--optimize"})
	require.NoError(t, err)
	assert.Equal(t, "Compiler run successful.\n", out)
	assert.Equal(t, []string{
		"--bin", "--abi", "--overwrite",
		"--optimize",
		"--output-dir", "artifacts",
		"contracts/SimpleStorage.sol",
	}, stub.args)
}

// TestCompileDiagnostics tests that compiler stderr surfaces as a
// *CompileError carrying the diagnostic text.
func TestCompileDiagnostics(t *testing.T) {
	stub := &stubRunner{
		stderr: "Error: Expected ';' but got '}'\n --> SimpleStorage.sol:7:1\n",
	}
	s := newStubbedSolc(t, stub)

	_, err := s.Compile(context.Background(), "SimpleStorage.sol", "artifacts", nil)
	require.Error(t, err)

	var compileErr *CompileError
	require.ErrorAs(t, err, &compileErr)
	assert.Contains(t, compileErr.Diagnostics, "Expected ';'")
	assert.Contains(t, err.Error(), "solc:")
}

// TestCompileInvocationFailure tests that a failure to start the process is
// wrapped and returned as-is, not as a CompileError.
func TestCompileInvocationFailure(t *testing.T) {
	stub := &stubRunner{err: errors.New("executable file not found")}
	s := newStubbedSolc(t, stub)

	_, err := s.Compile(context.Background(), "SimpleStorage.sol", "artifacts", nil)
	require.Error(t, err)

	var compileErr *CompileError
	assert.False(t, errors.As(err, &compileErr))
	assert.Contains(t, err.Error(), "failed to invoke")
}
