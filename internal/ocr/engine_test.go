package ocr

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAttempt struct {
	label string
	err   error
	calls int
	got   Options
}

func (f *fakeAttempt) name() string { return f.label }

func (f *fakeAttempt) run(ctx context.Context, src, dst string, opts Options) error {
	f.calls++
	f.got = opts
	return f.err
}

func newTestEngine(attempts ...attempt) *Engine {
	return &Engine{attempts: attempts, logger: slog.Default()}
}

func TestRunFirstTierWins(t *testing.T) {
	first := &fakeAttempt{label: "first"}
	second := &fakeAttempt{label: "second"}
	e := newTestEngine(first, second)

	err := e.Run(context.Background(), "in.pdf", t.TempDir()+"/out.pdf", Options{})
	require.NoError(t, err)
	assert.Equal(t, 1, first.calls)
	assert.Zero(t, second.calls, "fallback must not run after a success")
}

func TestRunFallsBackOnFailure(t *testing.T) {
	first := &fakeAttempt{label: "first", err: errors.New("binding unusable")}
	second := &fakeAttempt{label: "second"}
	e := newTestEngine(first, second)

	err := e.Run(context.Background(), "in.pdf", t.TempDir()+"/out.pdf", Options{})
	require.NoError(t, err)
	assert.Equal(t, 1, first.calls)
	assert.Equal(t, 1, second.calls)
}

func TestRunSurfacesOnlyLastFailure(t *testing.T) {
	first := &fakeAttempt{label: "first", err: errors.New("tier one blew up")}
	second := &fakeAttempt{label: "second", err: &Error{Message: "engine not found"}}
	e := newTestEngine(first, second)

	err := e.Run(context.Background(), "in.pdf", t.TempDir()+"/out.pdf", Options{})
	var ocrErr *Error
	require.ErrorAs(t, err, &ocrErr)
	assert.Equal(t, "engine not found", ocrErr.Message)
	assert.NotContains(t, err.Error(), "tier one")
}

func TestRunAppliesOptionDefaults(t *testing.T) {
	a := &fakeAttempt{label: "only"}
	e := newTestEngine(a)

	require.NoError(t, e.Run(context.Background(), "in.pdf", t.TempDir()+"/out.pdf", Options{Optimize: 9}))
	assert.Equal(t, "jpn+eng", a.got.Language)
	assert.Equal(t, 1, a.got.Optimize)
	assert.Equal(t, 2, a.got.Jobs)
}

type fakeLook struct {
	path string
	err  error
}

func (f fakeLook) look(string) (string, error) { return f.path, f.err }

type fakeRunner struct {
	stdout, stderr []byte
	err            error
	name           string
	args           []string
}

func (f *fakeRunner) Run(ctx context.Context, name string, args ...string) ([]byte, []byte, error) {
	f.name = name
	f.args = args
	return f.stdout, f.stderr, f.err
}

func TestCLIAttemptMissingExecutable(t *testing.T) {
	c := &cliAttempt{bin: "ocrmypdf", look: fakeLook{err: errors.New("nope")}.look, runner: &fakeRunner{}}

	err := c.run(context.Background(), "a.pdf", "b.pdf", Options{}.withDefaults())
	var ocrErr *Error
	require.ErrorAs(t, err, &ocrErr)
	assert.Contains(t, ocrErr.Message, "not found")
}

func TestCLIAttemptCapturesStderr(t *testing.T) {
	r := &fakeRunner{stderr: []byte("PriorOcrFoundError: page already has text\n"), err: errors.New("exit status 6")}
	c := &cliAttempt{bin: "ocrmypdf", look: fakeLook{path: "/usr/bin/ocrmypdf"}.look, runner: r}

	err := c.run(context.Background(), "a.pdf", "b.pdf", Options{}.withDefaults())
	var ocrErr *Error
	require.ErrorAs(t, err, &ocrErr)
	assert.Equal(t, "PriorOcrFoundError: page already has text", ocrErr.Message)
}

func TestCLIAttemptFallsBackToStdoutMessage(t *testing.T) {
	r := &fakeRunner{stdout: []byte("something went wrong"), err: errors.New("exit status 1")}
	c := &cliAttempt{bin: "ocrmypdf", look: fakeLook{path: "/usr/bin/ocrmypdf"}.look, runner: r}

	err := c.run(context.Background(), "a.pdf", "b.pdf", Options{}.withDefaults())
	var ocrErr *Error
	require.ErrorAs(t, err, &ocrErr)
	assert.Equal(t, "something went wrong", ocrErr.Message)
}

func TestBuildArgs(t *testing.T) {
	opts := Options{Language: "jpn+eng", Optimize: 2, Jobs: 4, RotatePages: true, SidecarPath: "/t/out.sidecar.txt"}
	args := buildArgs("/in.pdf", "/out.pdf", opts)

	joined := strings.Join(args, " ")
	assert.Contains(t, joined, "--language jpn+eng")
	assert.Contains(t, joined, "--output-type pdf")
	assert.Contains(t, joined, "--deskew")
	assert.Contains(t, joined, "--clean")
	assert.Contains(t, joined, "--optimize 2")
	assert.Contains(t, joined, "--jobs 4")
	assert.Contains(t, joined, "--force-ocr")
	assert.Contains(t, joined, "--rotate-pages")
	assert.Contains(t, joined, "--sidecar /t/out.sidecar.txt")
	assert.Equal(t, []string{"/in.pdf", "/out.pdf"}, args[len(args)-2:])
}

func TestBuildArgsOptionalFlagsOmitted(t *testing.T) {
	args := buildArgs("/in.pdf", "/out.pdf", Options{Language: "eng", Optimize: 0, Jobs: 1})
	joined := strings.Join(args, " ")
	assert.NotContains(t, joined, "--rotate-pages")
	assert.NotContains(t, joined, "--sidecar")
}

func TestRecognizePagesWaitsForWorkersOnCancel(t *testing.T) {
	started := make(chan struct{}, 3)
	release := make(chan struct{})
	var running atomic.Int32

	p := &inProcess{
		logger: slog.Default(),
		recognize: func(image []byte, langs []string) (pageResult, error) {
			running.Add(1)
			defer running.Add(-1)
			started <- struct{}{}
			<-release
			return pageResult{text: "page"}, nil
		},
	}

	ctx, cancel := context.WithCancel(context.Background())
	images := [][]byte{{1}, {2}, {3}}
	results := make([]pageResult, len(images))

	errCh := make(chan error, 1)
	go func() {
		errCh <- p.recognizePages(ctx, images, Options{Jobs: 1}.withDefaults(), results)
	}()

	<-started
	cancel()
	close(release)

	err := <-errCh
	require.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, running.Load(), "every spawned worker must finish before the call returns")
}

func TestSplitLanguages(t *testing.T) {
	assert.Equal(t, []string{"jpn", "eng"}, splitLanguages("jpn+eng"))
	assert.Equal(t, []string{"eng"}, splitLanguages(" eng "))
	assert.Nil(t, splitLanguages(""))
}

func TestMergeHOCRPages(t *testing.T) {
	page := `<?xml version="1.0"?><html><head></head><body>
 <div class='ocr_page' id='page_1' title='image "x.png"'>
  <span class='ocrx_word'>hello</span>
 </div>
</body></html>`

	merged := string(mergeHOCRPages([]string{page, page}))
	assert.Equal(t, 1, strings.Count(merged, "<body>"))
	assert.Contains(t, merged, "id='page_1'")
	assert.Contains(t, merged, "id='page_2'")
	assert.Equal(t, 2, strings.Count(merged, "class='ocr_page'"))
}

func TestMergeHOCRPagesKeepsAlignmentOnBadPage(t *testing.T) {
	good := `<body><div class='ocr_page' id='page_1'><span>ok</span></div></body>`
	merged := string(mergeHOCRPages([]string{"garbage", good}))
	assert.Contains(t, merged, "id='page_1'></div>")
	assert.Contains(t, merged, "id='page_2'")
}
