package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	helpStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).MarginTop(1)

	winStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("42"))
	tieStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("250"))

	cellStyle   = lipgloss.NewStyle().Width(5).Align(lipgloss.Center).Border(lipgloss.NormalBorder())
	cursorStyle = cellStyle.BorderForeground(lipgloss.Color("205"))
	hintStyle   = cellStyle.BorderForeground(lipgloss.Color("42"))

	xStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))
	oStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("214"))

	panelStyle = lipgloss.NewStyle().PaddingLeft(3)
)

const helpText = "arrows/hjkl move  enter place  1-9 cell  n new  r reset  m mode  x/o side  ? hint  q quit"

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Tic-Tac-Toe"))
	b.WriteString("\n")
	b.WriteString(m.banner())
	b.WriteString("\n\n")

	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, m.renderBoard(), panelStyle.Render(m.renderPanel())))
	b.WriteString("\n")

	if m.message != "" {
		b.WriteString(m.message)
		b.WriteString("\n")
	}

	b.WriteString(helpStyle.Render(helpText))
	b.WriteString("\n")

	return b.String()
}

func (m Model) banner() string {
	verdict := m.session.Verdict

	switch verdict.Outcome {
	case entity.Won:
		if m.session.Mode == entity.ModeComputer {
			if verdict.Winner == m.session.HumanMark {
				return winStyle.Render("You win!")
			}
			return winStyle.Render("Computer wins!")
		}
		return winStyle.Render(fmt.Sprintf("Player %s wins!", verdict.Winner))
	case entity.Tie:
		return tieStyle.Render("It's a tie!")
	}

	if m.session.IsAITurn() {
		return labelStyle.Render("Computer is thinking...")
	}

	return fmt.Sprintf("%s to move", renderMark(m.session.Turn))
}

func (m Model) renderBoard() string {
	rows := make([]string, 0, entity.BoardSize)

	for row := range entity.BoardSize {
		cells := make([]string, 0, entity.BoardSize)

		for col := range entity.BoardSize {
			move := entity.Move{Row: row, Col: col}
			cells = append(cells, m.renderCell(move))
		}

		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}

	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (m Model) renderCell(move entity.Move) string {
	style := cellStyle

	switch {
	case move.Index() == m.cursor && !m.session.IsFinished():
		style = cursorStyle
	case m.hint != nil && *m.hint == move:
		style = hintStyle
	}

	content := labelStyle.Render(fmt.Sprint(move.Index() + 1))
	if mark := m.session.Board.At(move).Mark(); mark != entity.NoMark {
		content = renderMark(mark)
	}

	return style.Render(content)
}

func (m Model) renderPanel() string {
	session := m.session

	lines := []string{
		labelStyle.Render("Mode:   ") + modeName(session.Mode),
		labelStyle.Render("Moves:  ") + fmt.Sprint(session.Moves),
		"",
		labelStyle.Render("Score"),
		fmt.Sprintf("%s %d   %s %d   Ties %d", renderMark(entity.PlayerX), session.Scores.X,
			renderMark(entity.PlayerO), session.Scores.O, session.Scores.Ties),
		"",
		labelStyle.Render("Next game"),
		fmt.Sprintf("%s, you play %s", modeName(session.PendingMode()), renderMark(session.PendingHumanMark())),
	}

	if session.Mode == entity.ModeComputer {
		lines = append(lines[:2], append([]string{labelStyle.Render("You:    ") + renderMark(session.HumanMark)}, lines[2:]...)...)
	}

	return strings.Join(lines, "\n")
}

func renderMark(mark entity.Mark) string {
	switch mark {
	case entity.PlayerX:
		return xStyle.Render(mark.String())
	case entity.PlayerO:
		return oStyle.Render(mark.String())
	default:
		return mark.String()
	}
}

func modeName(mode entity.Mode) string {
	if mode == entity.ModeComputer {
		return "vs computer"
	}

	return "two players"
}
