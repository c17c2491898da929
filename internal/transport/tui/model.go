// Package tui is the terminal front end. It owns the live session and only hands board
// snapshots to the engine.
package tui

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
	"github.com/rocketscienceinc/tictactoe-engine/internal/service"
)

// position identifies what a background search was computed for: the game, the side to move
// and the board.
type position struct {
	game     int
	mark     entity.Mark
	snapshot entity.Board
}

func currentPosition(session *entity.Session) position {
	return position{game: session.Games, mark: session.Turn, snapshot: session.Snapshot()}
}

// botMoveMsg carries a move computed off the UI goroutine.
type botMoveMsg struct {
	position
	decision entity.Decision
	err      error
}

type hintMsg struct {
	position
	decision entity.Decision
	err      error
}

type Model struct {
	ctx    context.Context
	logger *slog.Logger

	gamePlay service.GamePlayService
	bot      service.BotService

	session *entity.Session
	aiDelay time.Duration

	cursor  int
	message string
	hint    *entity.Move
}

func New(ctx context.Context, logger *slog.Logger, gamePlay service.GamePlayService, bot service.BotService, session *entity.Session, aiDelay time.Duration) Model {
	return Model{
		ctx:      ctx,
		logger:   logger.With("component", "tui", "session", session.ID),
		gamePlay: gamePlay,
		bot:      bot,
		session:  session,
		aiDelay:  aiDelay,
		cursor:   entity.CellCount / 2,
	}
}

// Run starts the program and blocks until the user quits or ctx is canceled.
func Run(ctx context.Context, model Model) error {
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := program.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("terminal ui failed: %w", err)
	}

	return nil
}

func (m Model) Init() tea.Cmd {
	return m.scheduleBot()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case botMoveMsg:
		return m.handleBotMove(msg)
	case hintMsg:
		if msg.err != nil {
			m.message = "No hint available"
			return m, nil
		}
		if msg.position == currentPosition(m.session) {
			move := msg.decision.Move
			m.hint = &move
			m.message = fmt.Sprintf("Hint: %s", describeScore(msg.decision.Score))
		}
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key := msg.String(); key {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "up", "k":
		m.moveCursor(-entity.BoardSize)
	case "down", "j":
		m.moveCursor(entity.BoardSize)
	case "left", "h":
		if m.cursor%entity.BoardSize > 0 {
			m.cursor--
		}
	case "right", "l":
		if m.cursor%entity.BoardSize < entity.BoardSize-1 {
			m.cursor++
		}
	case "enter", " ":
		return m.place(m.cursor)
	case "1", "2", "3", "4", "5", "6", "7", "8", "9":
		m.cursor = int(key[0] - '1')
		return m.place(m.cursor)
	case "n":
		m.session.NewGame()
		m.clearTransient()
		m.logger.Info("new game", "mode", m.session.Mode, "human", m.session.HumanMark.String())
		return m, m.scheduleBot()
	case "r":
		m.session.ResetScores()
		m.message = "Scores reset"
	case "m":
		if m.session.PendingMode() == entity.ModeComputer {
			m.session.SetMode(entity.ModeTwoPlayers)
		} else {
			m.session.SetMode(entity.ModeComputer)
		}
		m.message = "Mode changes on the next game (n)"
	case "x":
		m.session.SetHumanMark(entity.PlayerX)
		m.message = "You will play X from the next game (n)"
	case "o":
		m.session.SetHumanMark(entity.PlayerO)
		m.message = "You will play O from the next game (n)"
	case "?":
		if m.session.IsFinished() || m.session.IsAITurn() {
			return m, nil
		}
		return m, m.requestHint()
	}

	return m, nil
}

func (m *Model) moveCursor(delta int) {
	if next := m.cursor + delta; next >= 0 && next < entity.CellCount {
		m.cursor = next
	}
}

func (m *Model) clearTransient() {
	m.message = ""
	m.hint = nil
}

func (m Model) place(index int) (tea.Model, tea.Cmd) {
	if m.session.IsAITurn() {
		return m, nil
	}

	err := m.gamePlay.MakeTurn(m.ctx, m.session, entity.MoveFromIndex(index))
	if err != nil {
		m.message = errorText(err)
		return m, nil
	}

	m.hint = nil
	m.message = ""

	return m, m.scheduleBot()
}

// scheduleBot returns a command that computes the computer's move from a snapshot after the
// configured delay, or nil when it is not the computer's turn.
func (m Model) scheduleBot() tea.Cmd {
	if !m.session.IsAITurn() {
		return nil
	}

	ctx, bot := m.ctx, m.bot
	pos := currentPosition(m.session)

	suggest := func() tea.Msg {
		decision, err := bot.Suggest(ctx, pos.snapshot, pos.mark)
		return botMoveMsg{position: pos, decision: decision, err: err}
	}

	if m.aiDelay <= 0 {
		return suggest
	}

	return tea.Tick(m.aiDelay, func(time.Time) tea.Msg {
		return suggest()
	})
}

func (m Model) handleBotMove(msg botMoveMsg) (tea.Model, tea.Cmd) {
	if msg.position != currentPosition(m.session) || !m.session.IsAITurn() {
		// computed for an earlier game or for a side the computer no longer plays
		return m, nil
	}

	if msg.err != nil {
		m.logger.Error("bot failed to choose a move", "error", msg.err)
		m.message = "Computer could not move"
		return m, nil
	}

	err := m.gamePlay.ApplyBotMove(m.ctx, m.session, msg.snapshot, msg.decision.Move)
	if err != nil && !errors.Is(err, service.ErrStaleSnapshot) {
		m.logger.Error("failed to apply bot move", "error", err)
		m.message = errorText(err)
	}

	m.hint = nil
	m.cursor = msg.decision.Move.Index()

	return m, nil
}

func (m Model) requestHint() tea.Cmd {
	ctx, bot := m.ctx, m.bot
	pos := currentPosition(m.session)

	return func() tea.Msg {
		decision, err := bot.Suggest(ctx, pos.snapshot, pos.mark)
		return hintMsg{position: pos, decision: decision, err: err}
	}
}

func errorText(err error) string {
	switch {
	case errors.Is(err, apperror.ErrGameFinished):
		return "Game is over, press n for a new game"
	case errors.Is(err, apperror.ErrCellOccupied):
		return "Cell is occupied"
	case errors.Is(err, apperror.ErrNotYourTurn):
		return "Not your turn"
	case errors.Is(err, apperror.ErrInvalidCell):
		return "Out of bounds"
	default:
		return "Invalid move"
	}
}

func describeScore(score int) string {
	switch {
	case score > 0:
		return "winning move"
	case score < 0:
		return "every move loses"
	default:
		return "holds the draw"
	}
}
