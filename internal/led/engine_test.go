package led

import (
	"errors"
	"io"
	"log/slog"
	"reflect"
	"sync"
	"syscall"
	"testing"

	"github.com/smazurov/tenderhal/pkg/lm8502"
)

// recorder is a fake lm8502 driver that records every operation.
type recorder struct {
	mu         sync.Mutex
	calls      []string
	downloaded []lm8502.Microcode
	openErr    error
	fail       map[string]error
	status     int32
}

func newRecorder() *recorder {
	return &recorder{fail: make(map[string]error)}
}

func (r *recorder) open(path string) (lm8502.Device, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, "open")
	if r.openErr != nil {
		return nil, r.openErr
	}
	return &fakeDevice{r: r}, nil
}

func (r *recorder) record(op string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, op)
	return r.fail[op]
}

func (r *recorder) Calls() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.calls...)
}

func (r *recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = nil
	r.downloaded = nil
}

type fakeDevice struct {
	r *recorder
}

func (d *fakeDevice) DownloadMicrocode(mc *lm8502.Microcode) error {
	d.r.mu.Lock()
	d.r.downloaded = append(d.r.downloaded, *mc)
	d.r.mu.Unlock()
	return d.r.record("download")
}

func (d *fakeDevice) StartEngine(e lm8502.Engine) error {
	return d.r.record("start:" + e.String())
}

func (d *fakeDevice) StopEngine(e lm8502.Engine) error {
	return d.r.record("stop:" + e.String())
}

func (d *fakeDevice) WaitForEngineStopped() (int32, error) {
	return d.r.status, d.r.record("wait")
}

func (d *fakeDevice) Close() error {
	return d.r.record("close")
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestEngine(r *recorder) *Engine {
	return NewEngine("/dev/lm8502", testLogger(), WithOpener(r.open))
}

var (
	onSequence    = []string{"open", "download", "start:engine2", "start:engine1", "close"}
	resetSequence = []string{"open", "download", "start:engine1", "stop:engine1", "stop:engine2", "wait", "close"}
)

func TestApplyState_EffectStates(t *testing.T) {
	for state := 1; state <= 5; state++ {
		r := newRecorder()
		eng := newTestEngine(r)

		if err := eng.ApplyState(state); err != nil {
			t.Fatalf("ApplyState(%d) error = %v", state, err)
		}

		if got := r.Calls(); !reflect.DeepEqual(got, onSequence) {
			t.Errorf("ApplyState(%d) calls = %v, want %v", state, got, onSequence)
		}
		if len(r.downloaded) != 1 {
			t.Fatalf("ApplyState(%d) downloaded %d programs, want 1", state, len(r.downloaded))
		}
		if want := lm8502.ProgramFor(state).Microcode(); r.downloaded[0] != want {
			t.Errorf("ApplyState(%d) downloaded the wrong program", state)
		}
	}
}

func TestApplyState_QuickPulseBuffer(t *testing.T) {
	r := newRecorder()
	eng := newTestEngine(r)

	if err := eng.ApplyState(1); err != nil {
		t.Fatalf("ApplyState(1) error = %v", err)
	}

	quick := []uint16{
		0x9c0f, 0x9c8f, 0xe004, 0x4000, 0x047f, 0x4c00, 0x047f, 0x4c00,
		0x047f, 0x4c00, 0x057f, 0x4c00, 0xa30a, 0x0000, 0x0000, 0x0007,
		0x9c1f, 0x9c9f, 0xe080, 0x03ff, 0xc800,
	}
	want := make([]uint16, lm8502.MicrocodeWords)
	copy(want, quick)

	got := r.downloaded[0]
	if !reflect.DeepEqual(got[:], want) {
		t.Errorf("downloaded buffer = %04x, want %04x", got[:], want)
	}
}

func TestApplyState_Reset(t *testing.T) {
	r := newRecorder()
	r.status = 3
	eng := newTestEngine(r)

	if err := eng.ApplyState(0); err != nil {
		t.Fatalf("ApplyState(0) error = %v", err)
	}

	if got := r.Calls(); !reflect.DeepEqual(got, resetSequence) {
		t.Errorf("calls = %v, want %v", got, resetSequence)
	}
	if r.downloaded[0] != lm8502.Reset.Microcode() {
		t.Error("ApplyState(0) did not download the reset program")
	}
}

func TestApplyState_ResetIsRepeatable(t *testing.T) {
	r := newRecorder()
	eng := newTestEngine(r)

	if err := eng.ApplyState(0); err != nil {
		t.Fatalf("first ApplyState(0) error = %v", err)
	}
	first := r.Calls()
	r.Reset()

	if err := eng.ApplyState(0); err != nil {
		t.Fatalf("second ApplyState(0) error = %v", err)
	}
	if second := r.Calls(); !reflect.DeepEqual(first, second) {
		t.Errorf("second call sequence %v differs from first %v", second, first)
	}
}

func TestApplyState_UndocumentedStateUsesResetProgram(t *testing.T) {
	r := newRecorder()
	eng := newTestEngine(r)

	if err := eng.ApplyState(9); err != nil {
		t.Fatalf("ApplyState(9) error = %v", err)
	}

	// Non-zero states share the start sequence; only the program differs.
	if got := r.Calls(); !reflect.DeepEqual(got, onSequence) {
		t.Errorf("calls = %v, want %v", got, onSequence)
	}
	if r.downloaded[0] != lm8502.Reset.Microcode() {
		t.Error("ApplyState(9) did not download the reset program")
	}
}

func TestApplyState_Failures(t *testing.T) {
	tests := []struct {
		name      string
		state     int
		fail      map[string]error
		wantCalls []string
		wantStep  Step
		wantCode  int
	}{
		{
			name:      "download fails",
			state:     2,
			fail:      map[string]error{"download": syscall.EFAULT},
			wantCalls: []string{"open", "download", "close"},
			wantStep:  StepDownload,
			wantCode:  -int(syscall.EFAULT),
		},
		{
			name:      "reset download fails",
			state:     0,
			fail:      map[string]error{"download": syscall.EIO},
			wantCalls: []string{"open", "download", "close"},
			wantStep:  StepDownload,
			wantCode:  -int(syscall.EIO),
		},
		{
			name:      "start engine 2 fails",
			state:     4,
			fail:      map[string]error{"start:engine2": syscall.EBUSY},
			wantCalls: []string{"open", "download", "start:engine2", "close"},
			wantStep:  StepStartEngine2,
			wantCode:  -int(syscall.EBUSY),
		},
		{
			name:      "start engine 1 fails",
			state:     3,
			fail:      map[string]error{"start:engine1": syscall.EINVAL},
			wantCalls: []string{"open", "download", "start:engine2", "start:engine1", "close"},
			wantStep:  StepStartEngine1,
			wantCode:  -int(syscall.EINVAL),
		},
		{
			name:      "start engine 1 fails on reset",
			state:     0,
			fail:      map[string]error{"start:engine1": syscall.EINVAL},
			wantCalls: []string{"open", "download", "start:engine1", "close"},
			wantStep:  StepStartEngine1,
			wantCode:  -int(syscall.EINVAL),
		},
		{
			name:      "stop engine 1 fails, engine 2 still stopped",
			state:     0,
			fail:      map[string]error{"stop:engine1": syscall.EIO},
			wantCalls: []string{"open", "download", "start:engine1", "stop:engine1", "stop:engine2", "close"},
			wantStep:  StepStopEngine1,
			wantCode:  -int(syscall.EIO),
		},
		{
			name:  "both stops fail, engine 2 error reported",
			state: 0,
			fail: map[string]error{
				"stop:engine1": syscall.EIO,
				"stop:engine2": syscall.ENODEV,
			},
			wantCalls: []string{"open", "download", "start:engine1", "stop:engine1", "stop:engine2", "close"},
			wantStep:  StepStopEngine2,
			wantCode:  -int(syscall.ENODEV),
		},
		{
			name:      "stop engine 2 fails",
			state:     0,
			fail:      map[string]error{"stop:engine2": syscall.ENODEV},
			wantCalls: []string{"open", "download", "start:engine1", "stop:engine1", "stop:engine2", "close"},
			wantStep:  StepStopEngine2,
			wantCode:  -int(syscall.ENODEV),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newRecorder()
			r.fail = tt.fail
			eng := newTestEngine(r)

			err := eng.ApplyState(tt.state)
			if err == nil {
				t.Fatal("ApplyState() returned nil error")
			}

			if got := r.Calls(); !reflect.DeepEqual(got, tt.wantCalls) {
				t.Errorf("calls = %v, want %v", got, tt.wantCalls)
			}
			step, ok := FailedStep(err)
			if !ok || step != tt.wantStep {
				t.Errorf("FailedStep() = %v, %v, want %v", step, ok, tt.wantStep)
			}
			if code := Code(err); code != tt.wantCode {
				t.Errorf("Code() = %d, want %d", code, tt.wantCode)
			}
		})
	}
}

func TestApplyState_WaitFailureIsNotEscalated(t *testing.T) {
	r := newRecorder()
	r.fail["wait"] = syscall.ETIMEDOUT
	eng := newTestEngine(r)

	if err := eng.ApplyState(0); err != nil {
		t.Fatalf("ApplyState(0) error = %v, want nil", err)
	}
	if got := r.Calls(); !reflect.DeepEqual(got, resetSequence) {
		t.Errorf("calls = %v, want %v", got, resetSequence)
	}
}

func TestApplyState_OpenFailure(t *testing.T) {
	r := newRecorder()
	r.openErr = syscall.EACCES
	eng := newTestEngine(r)

	err := eng.ApplyState(1)
	if !errors.Is(err, syscall.EACCES) {
		t.Fatalf("ApplyState() error = %v, want EACCES", err)
	}
	if Code(err) != -int(syscall.EACCES) {
		t.Errorf("Code() = %d, want %d", Code(err), -int(syscall.EACCES))
	}
	if step, _ := FailedStep(err); step != StepOpen {
		t.Errorf("FailedStep() = %v, want open", step)
	}
	if got := r.Calls(); !reflect.DeepEqual(got, []string{"open"}) {
		t.Errorf("calls = %v, want only open", got)
	}
}

func TestInitialize(t *testing.T) {
	r := newRecorder()
	eng := newTestEngine(r)

	eng.Initialize()

	want := []string{"open", "download", "stop:engine1", "stop:engine2", "close"}
	if got := r.Calls(); !reflect.DeepEqual(got, want) {
		t.Errorf("calls = %v, want %v", got, want)
	}
	if r.downloaded[0] != (lm8502.Microcode{}) {
		t.Error("Initialize() downloaded a non-zero program")
	}
}

func TestInitialize_Failures(t *testing.T) {
	tests := []struct {
		name    string
		openErr error
		fail    map[string]error
		want    []string
	}{
		{
			name:    "open fails",
			openErr: syscall.ENOENT,
			want:    []string{"open"},
		},
		{
			name: "download fails",
			fail: map[string]error{"download": syscall.EIO},
			want: []string{"open", "download", "close"},
		},
		{
			name: "stop engine 1 fails",
			fail: map[string]error{"stop:engine1": syscall.EIO},
			want: []string{"open", "download", "stop:engine1", "stop:engine2", "close"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newRecorder()
			r.openErr = tt.openErr
			if tt.fail != nil {
				r.fail = tt.fail
			}

			newTestEngine(r).Initialize()

			if got := r.Calls(); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("calls = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNewEngineDefaults(t *testing.T) {
	eng := NewEngine("", nil)
	if eng.Path() != lm8502.DefaultPath {
		t.Errorf("Path() = %q, want %q", eng.Path(), lm8502.DefaultPath)
	}
}

func TestCode(t *testing.T) {
	if Code(nil) != 0 {
		t.Errorf("Code(nil) = %d, want 0", Code(nil))
	}
	if got := Code(errors.New("no errno")); got != -int(syscall.EIO) {
		t.Errorf("Code(plain) = %d, want %d", got, -int(syscall.EIO))
	}
	wrapped := &StepError{Step: StepDownload, Err: syscall.EPERM}
	if got := Code(wrapped); got != -int(syscall.EPERM) {
		t.Errorf("Code(StepError) = %d, want %d", got, -int(syscall.EPERM))
	}
}

func TestStepErrorMessage(t *testing.T) {
	openErr := &StepError{Step: StepOpen, Path: "/dev/lm8502", Err: syscall.ENOENT}
	if got := openErr.Error(); got != "open /dev/lm8502: no such file or directory" {
		t.Errorf("Error() = %q", got)
	}

	stepErr := &StepError{Step: StepStopEngine2, Err: syscall.EIO}
	if got := stepErr.Error(); got != "lm8502 stop_engine2: input/output error" {
		t.Errorf("Error() = %q", got)
	}
}
