// Package app hosts the Bubble Tea model that walks the user through
// the commit, branch, and branch-search flows.
package app

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/chmouel/lazycommit/internal/app/screen"
	"github.com/chmouel/lazycommit/internal/app/services"
	"github.com/chmouel/lazycommit/internal/config"
	"github.com/chmouel/lazycommit/internal/git"
	"github.com/chmouel/lazycommit/internal/log"
	"github.com/chmouel/lazycommit/internal/models"
	"github.com/chmouel/lazycommit/internal/theme"
)

// Mode selects which flow the session runs. It is fixed at startup.
type Mode int

// Session modes.
const (
	ModeCommit Mode = iota
	ModeBranch
	ModeSearch
)

// Outcome classifies how the session ended.
type Outcome int

// Session outcomes.
const (
	OutcomeNone Outcome = iota
	OutcomeCommitted
	OutcomeBranchCreated
	OutcomeCheckedOut
	OutcomeAborted
	OutcomeFailed
)

// GitClient is the repository surface the session drives. *git.Service
// implements it; tests substitute a recording fake.
type GitClient interface {
	Workdir() string
	Stage(ctx context.Context, path string) error
	Unstage(ctx context.Context, path string) error
	UnstageAll(ctx context.Context, paths []string) error
	Commit(ctx context.Context, message string) (string, error)
	Push(ctx context.Context) error
	CreateBranch(ctx context.Context, name string) error
	ListBranches(ctx context.Context) ([]models.Branch, error)
	CheckoutBranch(ctx context.Context, branch models.Branch) error
	Diff(ctx context.Context, file models.ChangedFile) (string, error)
}

var _ GitClient = (*git.Service)(nil)

// Presets carries flag values that pre-fill or skip screens.
type Presets struct {
	Prefix      string // --prefix / --branch-prefix, used as given
	Story       string // --story, digits only
	Message     string // --message, skips the message screen
	SearchQuery string // --search initial filter
}

// Options bundles what the CLI resolved before the program starts.
type Options struct {
	Mode    Mode
	Files   []models.ChangedFile // changed files, commit mode only
	Branch  string               // current branch, for ticket resolution
	Presets Presets
}

// Result is what the CLI reports after the program exits.
type Result struct {
	Outcome  Outcome
	CommitID string
	Message  string // composed commit message
	Branch   string // created or checked-out branch
	Pushed   bool
	Err      error
}

// Model is the top-level Bubble Tea model. It owns the screen stack,
// the session values, and the git client; every index mutation flows
// through it so the repository can be restored on any non-success exit.
type Model struct {
	config *config.AppConfig
	theme  *theme.Theme
	git    GitClient

	mode    Mode
	presets Presets

	screens *screen.Manager
	staging *services.StagingList
	watch   *services.DiffWatchService

	branch      string // branch at startup
	prefix      string // resolved prefix of the active flow
	story       string
	messageText string

	width   int
	height  int
	started bool

	result   Result
	quitting bool

	ctx    context.Context
	cancel context.CancelFunc
}

// NewModel creates the session model for the given mode.
func NewModel(cfg *config.AppConfig, client GitClient, opts Options) *Model {
	ctx, cancel := context.WithCancel(context.Background())
	m := &Model{
		config:  cfg,
		theme:   theme.GetTheme(cfg.Theme),
		git:     client,
		mode:    opts.Mode,
		presets: opts.Presets,
		screens: screen.NewManager(),
		branch:  opts.Branch,
		story:   opts.Presets.Story,
		ctx:     ctx,
		cancel:  cancel,
	}
	if opts.Mode == ModeCommit {
		m.staging = services.NewStagingList(opts.Files)
		m.watch = services.NewDiffWatchService(client.Workdir(), log.Printf)
	}
	return m
}

// Init implements tea.Model. The entry screen is built on the first
// window-size message so it can size itself to the real terminal.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.setWindowSize(msg.Width, msg.Height)
		if !m.started {
			m.started = true
			return m, m.startSession()
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleScreenKey(msg)

	case busyTickMsg:
		return m.handleBusyTick()

	case diffEventMsg:
		return m.handleDiffEvent()

	case diffLoadedMsg:
		return m.handleDiffLoaded(msg)

	case stageSyncedMsg:
		return m.handleStageSynced(msg)

	case zoomDiffMsg:
		return m.handleZoomDiff(msg)

	case showHelpMsg:
		return m.handleShowHelp()

	case branchesLoadedMsg:
		return m.handleBranchesLoaded(msg)

	case commitResultMsg:
		return m.handleCommitResult(msg)

	case branchCreatedMsg:
		return m.handleBranchCreated(msg)

	case checkoutResultMsg:
		return m.handleCheckoutResult(msg)

	case sessionFinishedMsg:
		return m, m.quit(msg.outcome, msg.err)
	}

	return m, nil
}

// startSession builds the entry screen for the mode.
func (m *Model) startSession() tea.Cmd {
	switch m.mode {
	case ModeBranch:
		return m.startBranchFlow()
	case ModeSearch:
		m.showBusy("Loading branches", "")
		return tea.Batch(m.loadBranchesCmd(), m.busyTick())
	default:
		m.showFileReview()
		cmds := []tea.Cmd{m.startDiffWatcher()}
		if file, ok := m.staging.Current(); ok {
			cmds = append(cmds, m.loadDiffCmd(file))
		}
		return tea.Batch(cmds...)
	}
}

func (m *Model) setWindowSize(width, height int) {
	m.width = width
	m.height = height
}

// quit records the session result and ends the program.
func (m *Model) quit(outcome Outcome, err error) tea.Cmd {
	m.debugf("session finished: outcome=%d err=%v", outcome, err)
	m.result.Outcome = outcome
	m.result.Err = err
	m.quitting = true
	m.screens.Clear()
	m.Close()
	return tea.Quit
}

// Close releases background resources. Safe to call more than once.
func (m *Model) Close() {
	m.stopDiffWatcher()
	if m.cancel != nil {
		m.cancel()
	}
}

// Result returns the session result for the CLI to report.
func (m *Model) Result() Result {
	return m.result
}

func (m *Model) stagedPaths() []string {
	if m.staging == nil {
		return nil
	}
	return m.staging.StagedPaths()
}

func (m *Model) debugf(format string, args ...any) {
	log.Printf(format, args...)
}
