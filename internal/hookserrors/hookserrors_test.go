// ABOUTME: Tests for diagnostic formatting and exit-code mapping

package hookserrors

import (
	"errors"
	"fmt"
	"testing"
)

func TestDiagnosticError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		d    Diagnostic
		want string
	}{
		{
			name: "no path",
			d:    Diagnostic{Message: "boom"},
			want: "boom",
		},
		{
			name: "path only",
			d:    Diagnostic{Message: "boom", Path: "hooks.toml"},
			want: "hooks.toml: boom",
		},
		{
			name: "path and line",
			d:    Diagnostic{Message: "boom", Path: "hooks.toml", Line: 12},
			want: "hooks.toml:12: boom",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.d.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestExitCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		kinds []Kind
		want  int
	}{
		{name: "success", kinds: nil, want: 0},
		{name: "hook failure only", kinds: []Kind{KindHookExecutionFailed}, want: 1},
		{name: "name not found is fatal", kinds: []Kind{KindNameNotFound}, want: 2},
		{
			name:  "config error wins over hook failure",
			kinds: []Kind{KindHookExecutionFailed, KindCycleInDependencies},
			want:  2,
		},
		{name: "informational only", kinds: []Kind{KindUnusedImport}, want: 0},
		{name: "git command failed is fatal", kinds: []Kind{KindGitCommandFailed}, want: 2},
		{name: "not a repository is fatal", kinds: []Kind{KindNotARepository}, want: 2},
		{name: "io error is fatal", kinds: []Kind{KindIoError}, want: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExitCode(tt.kinds); got != tt.want {
				t.Errorf("ExitCode(%v) = %d, want %d", tt.kinds, got, tt.want)
			}
		})
	}
}

func TestKindForError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		err    error
		want   Kind
		wantOk bool
	}{
		{name: "wrapped parse error", err: fmt.Errorf("hooks.toml: %w", ErrParseError), want: KindParseError, wantOk: true},
		{name: "wrapped git command failed", err: fmt.Errorf("range diff: %w", ErrGitCommandFailed), want: KindGitCommandFailed, wantOk: true},
		{name: "wrapped not a repository", err: fmt.Errorf("discover root: %w", ErrNotARepository), want: KindNotARepository, wantOk: true},
		{name: "unrelated error", err: errors.New("flag: unknown flag"), wantOk: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kind, ok := KindForError(tt.err)
			if ok != tt.wantOk {
				t.Fatalf("KindForError(%v) ok = %v, want %v", tt.err, ok, tt.wantOk)
			}
			if ok && kind != tt.want {
				t.Errorf("KindForError(%v) = %v, want %v", tt.err, kind, tt.want)
			}
		})
	}
}
