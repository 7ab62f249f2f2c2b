package ui

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/olivier-w/epicycles/internal/fourier"
	"github.com/olivier-w/epicycles/internal/playback"
)

func newTestModel(t *testing.T, opts Options) Model {
	t.Helper()
	m, err := New(Source{}, opts)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return m
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	model, ok := next.(Model)
	if !ok {
		t.Fatalf("expected Model, got %T", next)
	}
	return model, cmd
}

func key(s string) tea.KeyMsg {
	if s == " " {
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func mouse(x, y int, action tea.MouseAction) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Action: action, Button: tea.MouseButtonLeft}
}

func TestNewStartsWithDefaultShape(t *testing.T) {
	m := newTestModel(t, Options{})
	if m.driver.Len() == 0 {
		t.Fatal("expected analysed default path")
	}
	if m.driver.Terms() != m.driver.Len() {
		t.Fatalf("expected all %d terms, got %d", m.driver.Len(), m.driver.Terms())
	}
	if m.title != "triforce" {
		t.Fatalf("expected default title, got %q", m.title)
	}
}

func TestNewHonoursInitialTerms(t *testing.T) {
	m := newTestModel(t, Options{Terms: 5})
	if m.driver.Terms() != 5 {
		t.Fatalf("expected 5 terms, got %d", m.driver.Terms())
	}
}

func TestNewAcceptsSinglePointSource(t *testing.T) {
	src := Source{Title: "x", Points: []fourier.Point{{X: 1, Y: 1}}}
	if _, err := New(src, Options{}); err != nil {
		t.Fatalf("expected single point path to analyse, got %v", err)
	}
}

func TestFrameAdvancesTrace(t *testing.T) {
	m := newTestModel(t, Options{})
	for range 3 {
		m, _ = update(t, m, frameMsg(time.Now()))
	}
	if n := len(m.driver.Trace()); n != 3 {
		t.Fatalf("expected 3 traced points, got %d", n)
	}
	if len(m.scene.Frame.Joints) != m.driver.Terms() {
		t.Fatalf("expected one joint per term, got %d", len(m.scene.Frame.Joints))
	}
}

func TestPauseStopsAnimation(t *testing.T) {
	m := newTestModel(t, Options{})
	m, _ = update(t, m, key(" "))
	if !m.paused {
		t.Fatal("expected paused")
	}
	m, _ = update(t, m, frameMsg(time.Now()))
	if n := len(m.driver.Trace()); n != 0 {
		t.Fatalf("expected no progress while paused, got %d points", n)
	}
}

func TestMouseDrawingReplacesPath(t *testing.T) {
	m := newTestModel(t, Options{})

	m, _ = update(t, m, mouse(10, 5, tea.MouseActionPress))
	if m.driver.State() != playback.StateCapturing {
		t.Fatalf("expected capturing, got %v", m.driver.State())
	}
	m, _ = update(t, m, frameMsg(time.Now()))
	if len(m.driver.Trace()) != 0 {
		t.Fatal("expected no synthesis while capturing")
	}

	m, _ = update(t, m, mouse(11, 5, tea.MouseActionMotion))
	m, _ = update(t, m, mouse(12, 6, tea.MouseActionMotion))
	m, _ = update(t, m, mouse(12, 6, tea.MouseActionMotion))
	m, cmd := update(t, m, mouse(12, 6, tea.MouseActionRelease))

	if m.driver.State() != playback.StateSynthesizing {
		t.Fatalf("expected synthesizing, got %v", m.driver.State())
	}
	if m.driver.Len() != 3 {
		t.Fatalf("expected 3 captured points, got %d", m.driver.Len())
	}
	if m.source != nil {
		t.Fatal("expected drawing to detach the resizable source")
	}
	if cmd == nil {
		t.Fatal("expected window title command")
	}
}

func TestEmptyCaptureKeepsPreviousPath(t *testing.T) {
	m := newTestModel(t, Options{})
	before := m.driver.Len()

	m.driver.StartCapture()
	m, _ = update(t, m, mouse(0, 0, tea.MouseActionRelease))

	if m.driver.State() != playback.StateSynthesizing {
		t.Fatalf("expected synthesizing, got %v", m.driver.State())
	}
	if m.driver.Len() != before {
		t.Fatalf("expected previous %d components, got %d", before, m.driver.Len())
	}
	if !m.statusErr || m.status == "" {
		t.Fatal("expected error status for empty drawing")
	}
}

func TestTermKeysEaseTowardsTarget(t *testing.T) {
	m := newTestModel(t, Options{FPS: 30})
	total := m.driver.Len()

	m, _ = update(t, m, key("-"))
	want := total / 2
	if int(m.termTarget) != want {
		t.Fatalf("expected target %d, got %v", want, m.termTarget)
	}
	m, _ = update(t, m, frameMsg(time.Now()))
	if m.driver.Terms() == want {
		t.Fatal("expected term count to ease, not jump")
	}
	for range 150 {
		m, _ = update(t, m, frameMsg(time.Now()))
	}
	if m.driver.Terms() != want {
		t.Fatalf("expected %d terms after easing, got %d", want, m.driver.Terms())
	}

	m, _ = update(t, m, key("0"))
	if int(m.termTarget) != total {
		t.Fatalf("expected target reset to %d, got %v", total, m.termTarget)
	}
}

func TestWindowResizeRefitsSource(t *testing.T) {
	m := newTestModel(t, Options{})
	m, _ = update(t, m, frameMsg(time.Now()))

	m, _ = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 40})
	if len(m.driver.Trace()) != 0 {
		t.Fatal("expected refit to restart the sweep")
	}

	view := m.View()
	if rows := strings.Count(view, "\n") + 1; rows != 40 {
		t.Fatalf("expected 40 rows, got %d", rows)
	}
}

func TestVisualizerToggle(t *testing.T) {
	m := newTestModel(t, Options{})
	m, _ = update(t, m, key("v"))
	if m.modes[m.mode].Name() != "spectrum" {
		t.Fatalf("expected spectrum, got %s", m.modes[m.mode].Name())
	}
	m, _ = update(t, m, key("v"))
	if m.modes[m.mode].Name() != "epicycles" {
		t.Fatalf("expected epicycles, got %s", m.modes[m.mode].Name())
	}
}

func TestExportPNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snap.png")
	m := newTestModel(t, Options{PNGPath: path})

	_, cmd := update(t, m, key("e"))
	if cmd == nil {
		t.Fatal("expected export command")
	}
	done, ok := cmd().(exportDoneMsg)
	if !ok {
		t.Fatalf("expected exportDoneMsg, got %T", cmd())
	}
	if done.err != nil {
		t.Fatalf("unexpected error: %v", done.err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected PNG on disk: %v", err)
	}

	m, _ = update(t, m, done)
	if !strings.Contains(m.status, "Saved PNG") {
		t.Fatalf("unexpected status %q", m.status)
	}
}

func TestExportWAV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scope.wav")
	m := newTestModel(t, Options{WAVPath: path, WAVSeconds: 0.05})

	_, cmd := update(t, m, key("w"))
	done := cmd().(exportDoneMsg)
	if done.err != nil {
		t.Fatalf("unexpected error: %v", done.err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("expected WAV on disk: %v", err)
	}
	if info.Size() <= 44 {
		t.Fatalf("expected PCM data after the header, got %d bytes", info.Size())
	}
}

func TestQuitClearsView(t *testing.T) {
	m := newTestModel(t, Options{})
	m, cmd := update(t, m, key("q"))
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if m.View() != "" {
		t.Fatal("expected empty view after quit")
	}
}

type fakeAudio struct {
	paused bool
	volume float64
	closed bool
}

func (a *fakeAudio) TogglePause()    { a.paused = !a.paused }
func (a *fakeAudio) Paused() bool    { return a.paused }
func (a *fakeAudio) Volume() float64 { return a.volume }
func (a *fakeAudio) AdjustVolume(d float64) {
	a.volume = min(max(a.volume+d, 0), 1)
}
func (a *fakeAudio) Close() error {
	a.closed = true
	return nil
}

func TestVolumeKeysDriveAudio(t *testing.T) {
	m := newTestModel(t, Options{})
	m, _ = update(t, m, key("k"))

	out := &fakeAudio{volume: 0.5}
	m, _ = update(t, m, audioStartedMsg{player: out})

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyUp})
	m, _ = update(t, m, key("k"))
	if math.Abs(out.volume-0.6) > 1e-9 {
		t.Fatalf("expected volume 0.6, got %v", out.volume)
	}
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyDown})
	if math.Abs(out.volume-0.55) > 1e-9 {
		t.Fatalf("expected volume 0.55, got %v", out.volume)
	}
	if !strings.Contains(m.View(), "vol 55%") {
		t.Fatal("expected volume in the status line")
	}

	m, _ = update(t, m, key("a"))
	if !out.paused {
		t.Fatal("expected audio toggle to pause the output")
	}

	m, _ = update(t, m, key("q"))
	if !out.closed {
		t.Fatal("expected quit to close the output")
	}
}

func TestRotationAndRestartKeys(t *testing.T) {
	m := newTestModel(t, Options{})
	m, _ = update(t, m, key("r"))
	m, _ = update(t, m, key("r"))
	if math.Abs(m.driver.Rotation()-2*rotationStep) > 1e-12 {
		t.Fatalf("expected rotation %v, got %v", 2*rotationStep, m.driver.Rotation())
	}
	m, _ = update(t, m, key("R"))
	if math.Abs(m.driver.Rotation()-rotationStep) > 1e-12 {
		t.Fatalf("expected rotation %v, got %v", rotationStep, m.driver.Rotation())
	}

	for range 4 {
		m, _ = update(t, m, frameMsg(time.Now()))
	}
	m, _ = update(t, m, key("x"))
	if m.driver.Time() != 0 || len(m.driver.Trace()) != 0 {
		t.Fatal("expected restart to rewind the sweep")
	}
}

func TestRightClickMovesAnchor(t *testing.T) {
	m := newTestModel(t, Options{})
	m, _ = update(t, m, frameMsg(time.Now()))

	m, _ = update(t, m, tea.MouseMsg{X: 30, Y: 6, Action: tea.MouseActionPress, Button: tea.MouseButtonRight})
	if m.driver.State() != playback.StateSynthesizing {
		t.Fatal("expected right click not to start a capture")
	}
	if m.driver.Anchor() == (fourier.Point{}) {
		t.Fatal("expected anchor to move")
	}
	if len(m.driver.Trace()) != 0 {
		t.Fatal("expected the sweep to restart at the new anchor")
	}

	m, _ = update(t, m, mouse(10, 5, tea.MouseActionPress))
	m, _ = update(t, m, mouse(12, 5, tea.MouseActionMotion))
	m, _ = update(t, m, mouse(12, 5, tea.MouseActionRelease))
	if m.driver.Anchor() != (fourier.Point{}) {
		t.Fatalf("expected a new drawing to reset the anchor, got %+v", m.driver.Anchor())
	}
}

func TestViewFitsNarrowTerminal(t *testing.T) {
	m := newTestModel(t, Options{})
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 40, Height: 20})
	for i, line := range strings.Split(m.View(), "\n") {
		if w := ansi.StringWidth(line); w > 40 {
			t.Fatalf("line %d is %d cells wide", i, w)
		}
	}
}
