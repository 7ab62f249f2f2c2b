package ui

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/harmonica"
	"github.com/charmbracelet/x/ansi"
	"github.com/olivier-w/epicycles/internal/export"
	"github.com/olivier-w/epicycles/internal/fourier"
	"github.com/olivier-w/epicycles/internal/playback"
	"github.com/olivier-w/epicycles/internal/player"
	"github.com/olivier-w/epicycles/internal/scope"
	"github.com/olivier-w/epicycles/internal/shape"
	"github.com/olivier-w/epicycles/internal/visualizer"
	"go.uber.org/zap"
)

const (
	// canvasTop is the first terminal row of the canvas; the header sits
	// above it.
	canvasTop = 1
	// chromeRows is header, progress, status and help.
	chromeRows = 4

	defaultWidth  = 80
	defaultHeight = 24

	// fitMargin leaves room around a loaded path so circles stay visible.
	fitMargin = 0.8

	statusTimeout = 4 * time.Second

	volumeStep   = 0.05
	rotationStep = math.Pi / 12
)

// audioOutput is the part of *player.Player the view drives.
type audioOutput interface {
	TogglePause()
	Paused() bool
	Volume() float64
	AdjustVolume(delta float64)
	Close() error
}

// Options configures the interactive view.
type Options struct {
	FPS int
	// Terms is the initial number of dominant terms; 0 uses all.
	Terms   int
	SweepHz float64

	PNGPath    string
	WAVPath    string
	WAVSeconds float64

	Logger *zap.Logger
}

func (o *Options) defaults() {
	if o.FPS <= 0 {
		o.FPS = 30
	}
	if o.PNGPath == "" {
		o.PNGPath = "epicycles.png"
	}
	if o.WAVPath == "" {
		o.WAVPath = "epicycles.wav"
	}
	if o.WAVSeconds <= 0 {
		o.WAVSeconds = 5
	}
	if o.Logger == nil {
		o.Logger = zap.NewNop()
	}
}

// Source is the path a session starts with. Nil Points selects the default
// shape. Either way the path is refitted to the canvas on resize until the
// user draws over it.
type Source struct {
	Title  string
	Points []fourier.Point
}

func (s Source) fit(width, height float64) []fourier.Point {
	if len(s.Points) == 0 {
		return shape.Triforce(width, height)
	}
	return shape.Fit(s.Points, width*fitMargin, height*fitMargin)
}

// Model is the Bubbletea model for the epicycles view.
type Model struct {
	opts   Options
	log    *zap.Logger
	driver *playback.Driver
	source *Source
	title  string

	modes []visualizer.Visualizer
	mode  int
	scene visualizer.Scene

	width    int
	height   int
	paused   bool
	quitting bool

	// Term count eases towards termTarget.
	termSpring harmonica.Spring
	termPos    float64
	termVel    float64
	termTarget float64

	osc          *scope.Oscillator
	player       audioOutput
	audioPending bool

	progress progress.Model

	status     string
	statusErr  bool
	statusTime time.Time
}

// New analyses the source and builds the view around it.
func New(src Source, opts Options) (Model, error) {
	opts.defaults()

	w, h := canvasDots(defaultWidth, defaultHeight)
	driver, err := playback.NewDriver(opts.Logger, src.fit(w, h))
	if err != nil {
		return Model{}, err
	}

	title := src.Title
	if title == "" {
		title = "triforce"
	}

	m := Model{
		opts:       opts,
		log:        opts.Logger,
		driver:     driver,
		source:     &src,
		title:      title,
		modes:      visualizer.Modes(opts.FPS),
		width:      defaultWidth,
		height:     defaultHeight,
		termSpring: harmonica.NewSpring(harmonica.FPS(opts.FPS), 6.0, 1.0),
		osc:        scope.NewOscillator(opts.SweepHz),
		progress: progress.New(
			progress.WithScaledGradient("#FFD21F", "#FF5F1F"),
			progress.WithoutPercentage(),
		),
	}
	m.resetTerms(opts.Terms)
	m.progress.Width = defaultWidth - 4
	return m, nil
}

func canvasDots(width, height int) (float64, float64) {
	cols, rows := canvasSize(width, height)
	return float64(cols * 2), float64(rows * 4)
}

func canvasSize(width, height int) (int, int) {
	return max(width, 1), max(height-chromeRows, 1)
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(frameCmd(m.opts.FPS), tea.SetWindowTitle(windowTitle(m.title)))
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case frameMsg:
		m.advance()
		if m.status != "" && time.Since(m.statusTime) > statusTimeout {
			m.status = ""
		}
		return m, frameCmd(m.opts.FPS)

	case exportDoneMsg:
		if msg.err != nil {
			m.log.Error("export failed", zap.String("kind", string(msg.kind)), zap.Error(msg.err))
			m.setError(fmt.Sprintf("%s export failed: %v", msg.kind, msg.err))
		} else {
			m.log.Info("exported", zap.String("kind", string(msg.kind)), zap.String("path", msg.path))
			m.setStatus(fmt.Sprintf("Saved %s to %s", msg.kind, msg.path))
		}
		return m, nil

	case audioStartedMsg:
		m.audioPending = false
		if msg.err != nil {
			m.log.Error("audio unavailable", zap.Error(msg.err))
			m.setError(fmt.Sprintf("Audio unavailable: %v", msg.err))
			return m, nil
		}
		if m.quitting {
			msg.player.Close()
			return m, nil
		}
		m.player = msg.player
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.progress.Width = max(msg.Width-4, 10)
		m.refit()
		return m, nil
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if isQuit(msg) {
		m.quitting = true
		if m.player != nil {
			if err := m.player.Close(); err != nil {
				m.log.Warn("closing audio", zap.Error(err))
			}
		}
		return m, tea.Sequence(tea.SetWindowTitle(""), tea.Quit)
	}

	switch msg.String() {
	case " ":
		m.paused = !m.paused
	case "v":
		m.mode = (m.mode + 1) % len(m.modes)
		m.render()
	case "+", "=":
		m.termTarget = math.Min(math.Max(1, m.termTarget*2), float64(m.driver.Len()))
	case "-", "_":
		m.termTarget = math.Max(1, math.Floor(m.termTarget/2))
	case "0":
		m.termTarget = float64(m.driver.Len())
	case "r":
		m.driver.SetRotation(m.driver.Rotation() + rotationStep)
	case "R":
		m.driver.SetRotation(m.driver.Rotation() - rotationStep)
	case "x":
		m.driver.Reset()
	case "up", "k":
		if m.player != nil {
			m.player.AdjustVolume(volumeStep)
		}
	case "down", "j":
		if m.player != nil {
			m.player.AdjustVolume(-volumeStep)
		}
	case "a":
		return m.toggleAudio()
	case "e":
		return m, m.exportPNG()
	case "w":
		return m, m.exportWAV()
	}
	return m, nil
}

func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	cols, rows := canvasSize(m.width, m.height)
	p := visualizer.CellToWorld(msg.X, msg.Y-canvasTop, cols, rows)

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button == tea.MouseButtonRight && m.driver.State() == playback.StateSynthesizing {
			m.driver.SetAnchor(p)
			m.driver.Reset()
			break
		}
		if msg.Button != tea.MouseButtonLeft {
			return m, nil
		}
		m.driver.StartCapture()
		m.driver.AddPoint(p)
	case tea.MouseActionMotion:
		m.driver.AddPoint(p)
	case tea.MouseActionRelease:
		if m.driver.State() != playback.StateCapturing {
			return m, nil
		}
		if err := m.driver.FinishCapture(); err != nil {
			if errors.Is(err, playback.ErrEmptyCapture) {
				m.setError("Nothing drawn, keeping the previous path")
			} else {
				m.setError(fmt.Sprintf("Could not analyse drawing: %v", err))
			}
			break
		}
		m.source = nil
		m.title = "drawing"
		// A drawing is recorded around the canvas center.
		m.driver.SetAnchor(fourier.Point{})
		m.resetTerms(0)
		m.setStatus(fmt.Sprintf("Analysed %d points", m.driver.Len()))
		return m, tea.SetWindowTitle(windowTitle(m.title))
	}
	m.render()
	return m, nil
}

// advance runs one animation frame.
func (m *Model) advance() {
	if m.driver.State() == playback.StateSynthesizing && !m.paused {
		m.easeTerms()
		frame, err := m.driver.AdvanceFrame()
		if err != nil {
			m.log.Error("frame failed", zap.Error(err))
		} else {
			m.scene.Frame = frame
		}
	}
	m.render()
}

func (m *Model) easeTerms() {
	m.termPos, m.termVel = m.termSpring.Update(m.termPos, m.termVel, m.termTarget)
	n := int(math.Round(m.termPos))
	n = min(max(n, 1), m.driver.Len())
	if n != m.driver.Terms() {
		m.driver.SetTerms(n)
		m.osc.SetComponents(m.driver.Active())
	}
}

func (m *Model) resetTerms(n int) {
	total := m.driver.Len()
	if n <= 0 || n > total {
		n = total
	}
	m.termTarget = float64(n)
	m.termPos = float64(n)
	m.termVel = 0
	m.driver.SetTerms(n)
	m.osc.SetComponents(m.driver.Active())
}

// refit reloads the source path at the current canvas size.
func (m *Model) refit() {
	if m.source == nil || m.driver.State() == playback.StateCapturing {
		m.render()
		return
	}
	w, h := canvasDots(m.width, m.height)
	if err := m.driver.Load(m.source.fit(w, h)); err != nil {
		m.log.Error("refit failed", zap.Error(err))
		return
	}
	m.resetTerms(int(m.termTarget))
	m.render()
}

func (m *Model) render() {
	m.scene.Ranked = m.driver.Components()
	m.scene.Active = m.driver.Terms()
	m.scene.Trace = m.driver.Trace()
	m.scene.Capture = m.driver.Capture()
	m.scene.Capturing = m.driver.State() == playback.StateCapturing
	if m.scene.Capturing {
		m.scene.Frame = fourier.Frame{}
	}
	cols, rows := canvasSize(m.width, m.height)
	m.modes[m.mode].Update(m.scene, cols, rows)
}

func (m Model) toggleAudio() (tea.Model, tea.Cmd) {
	if m.player != nil {
		m.player.TogglePause()
		return m, nil
	}
	if m.audioPending {
		return m, nil
	}
	m.audioPending = true
	osc := m.osc
	return m, func() tea.Msg {
		p, err := player.New(osc)
		if err != nil {
			return audioStartedMsg{err: err}
		}
		return audioStartedMsg{player: p}
	}
}

func (m Model) exportPNG() tea.Cmd {
	active := m.driver.Active()
	opts := export.PNGOptions{T: m.driver.Time(), Rotation: m.driver.Rotation()}
	path := m.opts.PNGPath
	return func() tea.Msg {
		err := export.WritePNG(path, active, opts)
		return exportDoneMsg{kind: exportPNG, path: path, err: err}
	}
}

func (m Model) exportWAV() tea.Cmd {
	// The live oscillator belongs to the audio device.
	osc := scope.NewOscillator(m.osc.SweepHz())
	osc.SetComponents(m.driver.Active())
	path, seconds := m.opts.WAVPath, m.opts.WAVSeconds
	return func() tea.Msg {
		err := export.WriteWAVFile(path, osc, seconds)
		return exportDoneMsg{kind: exportWAV, path: path, err: err}
	}
}

func (m *Model) setStatus(s string) {
	m.status = s
	m.statusErr = false
	m.statusTime = time.Now()
}

func (m *Model) setError(s string) {
	m.status = s
	m.statusErr = true
	m.statusTime = time.Now()
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	header := headerStyle.Render("epicycles") + "  " + titleStyle.Render(m.title)
	b.WriteString(joinRight(header, helpStyle.Render(m.modes[m.mode].Name()), m.width))
	b.WriteString("\n")

	b.WriteString(m.modes[m.mode].View())
	b.WriteString("\n")

	b.WriteString("  ")
	b.WriteString(m.progress.ViewAs(m.driver.Progress()))
	b.WriteString("\n")

	state := m.driver.State()
	left := renderState(state, m.paused)
	if state == playback.StateCapturing {
		left = captureStyle.Render(left)
	} else {
		left = statusStyle.Render(left)
	}
	left += statusStyle.Render(fmt.Sprintf("  %s  sweep %d",
		renderTerms(m.driver.Terms(), m.driver.Len()), m.driver.Sweeps()+1))
	audio := statusStyle.Render(renderAudio(m.player))
	b.WriteString(ansi.Truncate(joinRight(left, audio, m.width), m.width, "…"))
	b.WriteString("\n")

	var last string
	switch {
	case m.status != "" && m.statusErr:
		last = errorStyle.Render(m.status)
	case m.status != "":
		last = statusStyle.Render(m.status)
	default:
		last = helpStyle.Render(helpText(state == playback.StateCapturing))
	}
	b.WriteString(ansi.Truncate(last, m.width, "…"))
	return b.String()
}

func windowTitle(title string) string {
	return title + " · epicycles"
}
