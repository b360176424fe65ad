package command

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/maxmcd/stackperm/internal/errs"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

func runApp(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var buf bytes.Buffer
	err := cliApp(&buf).Run(append([]string{"stackperm"}, args...))
	return buf.String(), err
}

func TestDemo(t *testing.T) {
	out, err := runApp(t)
	require.NoError(t, err)
	require.Equal(t, "Is it a stack permutation true\n", out)

	_, err = runApp(t, "nope")
	require.Error(t, err)
}

func TestCheck(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		want    string
		wantErr bool
	}{
		{
			name: "valid",
			args: []string{"--push", "1,2,3", "--target", "2,1,3"},
			want: "true\n",
		},
		{
			name: "invalid",
			args: []string{"--push", "1,2,3", "--target", "3,1,2"},
			want: "false\n",
		},
		{
			name: "brackets",
			args: []string{"--push", "[1, 2, 3]", "--target", "[3, 2, 1]"},
			want: "true\n",
		},
		{
			name: "empty",
			args: []string{"--push", "", "--target", "[]"},
			want: "true\n",
		},
		{
			name: "verbose valid",
			args: []string{"--push", "1,2", "--target", "2,1", "-v"},
			want: "push 1\npush 2\npop 2\npop 1\ntrue\n",
		},
		{
			name: "verbose invalid",
			args: []string{"--verbose", "--push", "1,2,3", "--target", "3,1,2"},
			want: "push 1\npush 2\npush 3\npop 3\nleft on stack: [1 2]\nfalse\n",
		},
		{
			name:    "length mismatch",
			args:    []string{"--push", "1,2", "--target", "1"},
			wantErr: true,
		},
		{
			name:    "not an integer",
			args:    []string{"--push", "1,a", "--target", "1,2"},
			wantErr: true,
		},
		{
			name:    "missing target",
			args:    []string{"--push", "1"},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := runApp(t, append([]string{"check"}, tt.args...)...)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, out)
		})
	}
}

func Test_parseSequence(t *testing.T) {
	tests := []struct {
		in      string
		want    []int
		wantErr bool
	}{
		{in: "", want: []int{}},
		{in: " [ ] ", want: []int{}},
		{in: "1", want: []int{1}},
		{in: "1, 2,3", want: []int{1, 2, 3}},
		{in: "[-1,0,10]", want: []int{-1, 0, 10}},
		{in: "1,,2", wantErr: true},
		{in: "x", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseSequence(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func writeCases(t *testing.T, body string) string {
	t.Helper()
	location := filepath.Join(t.TempDir(), "cases.toml")
	require.NoError(t, os.WriteFile(location, []byte(body), 0644))
	return location
}

func TestBatch(t *testing.T) {
	location := writeCases(t, `
[[case]]
name = "swap"
push = [1, 2, 3]
target = [2, 1, 3]
want = true

[[case]]
name = "unreachable"
push = [1, 2, 3]
target = [3, 1, 2]

[[case]]
name = "empty"
want = true
`)
	out, err := runApp(t, "batch", "--jobs", "2", location)
	require.NoError(t, err)
	require.Equal(t, "swap\ttrue\nunreachable\tfalse\nempty\ttrue\n", out)
}

func TestBatch_failures(t *testing.T) {
	location := writeCases(t, `
[[case]]
name = "wrong want"
push = [1, 2, 3]
target = [3, 1, 2]
want = true

[[case]]
name = "short target"
push = [1, 2]
target = [1]
`)
	var buf bytes.Buffer
	err := runBatch(context.Background(), &buf, batchOptions{location: location, jobs: 0})
	require.Error(t, err)
	require.True(t, errors.Is(err, errs.ErrUnexpectedResult{}))
	require.Contains(t, err.Error(), "2 of 2 cases failed")
	require.Equal(t,
		"wrong want\tfalse (want true)\n"+
			"short target\terror: push order has 2 elements but target order has 1\n",
		buf.String())
}

func TestBatch_missingFile(t *testing.T) {
	_, err := runApp(t, "batch", filepath.Join(t.TempDir(), "nope.toml"))
	require.Error(t, err)
}

func TestBatch_canceled(t *testing.T) {
	location := writeCases(t, "[[case]]\nname = \"a\"\npush = [1]\ntarget = [1]\n")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	// the free semaphore slot and the closed Done channel race in a select,
	// so run it enough times to hit both
	for i := 0; i < 100; i++ {
		var buf bytes.Buffer
		err := runBatch(ctx, &buf, batchOptions{location: location, jobs: 1})
		require.ErrorIs(t, err, context.Canceled)
		require.Empty(t, buf.String())
	}
}

func TestBatch_args(t *testing.T) {
	_, err := runApp(t, "batch")
	require.Error(t, err)
	require.Contains(t, err.Error(), "exactly one cases file")

	_, err = runApp(t, "batch", "a.toml", "b.toml")
	require.Error(t, err)
}
