package processing

import (
	"context"
	"os"
	"strings"
	"sync"

	rferrors "github.com/five82/reelfx/internal/errors"
	"github.com/five82/reelfx/internal/ffmpeg"
)

// fakeRunner stands in for ffmpeg. It writes the output file on success and
// a partial file on failure.
type fakeRunner struct {
	mu       sync.Mutex
	calls    [][]string
	ctxErrs  []error
	outDir   string
	failOn   map[int]bool
	stderr   string
	blockCtx bool
}

func newFakeRunner(outDir string) *fakeRunner {
	return &fakeRunner{outDir: outDir, failOn: map[int]bool{}}
}

func (f *fakeRunner) Run(ctx context.Context, args []string, opts ffmpeg.RunOptions) ffmpeg.Result {
	f.mu.Lock()
	idx := len(f.calls)
	f.calls = append(f.calls, args)
	f.ctxErrs = append(f.ctxErrs, ctx.Err())
	f.mu.Unlock()

	out := outputArg(args, f.outDir)

	if f.blockCtx {
		<-ctx.Done()
		return ffmpeg.Result{Error: ctx.Err()}
	}

	if f.failOn[idx] {
		_ = os.WriteFile(out, []byte("partial"), 0o644)
		return ffmpeg.Result{
			Error:  rferrors.NewCommandFailedError("ffmpeg", 1, f.stderr),
			Stderr: f.stderr,
		}
	}

	if opts.Progress != nil {
		opts.Progress(ffmpeg.Progress{Percent: 50, Speed: 2})
	}
	if err := os.WriteFile(out, []byte("rendered"), 0o644); err != nil {
		return ffmpeg.Result{Error: err}
	}
	return ffmpeg.Result{Success: true}
}

func (f *fakeRunner) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

// outputArg finds the output path: the argument living under dir.
func outputArg(args []string, dir string) string {
	for _, a := range args {
		if strings.HasPrefix(a, dir) {
			return a
		}
	}
	return ""
}

func argAfter(args []string, flag string) string {
	for i := 0; i < len(args)-1; i++ {
		if args[i] == flag {
			return args[i+1]
		}
	}
	return ""
}
