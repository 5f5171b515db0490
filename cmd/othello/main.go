// Command othello is the interactive terminal game: a human against the
// search agent, or two humans sharing a keyboard.
package main

import (
	"flag"
	"fmt"
	"log"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"othello-engine/config"
	"othello-engine/game"
	"othello-engine/search"
	"othello-engine/store"
)

func main() {
	cfgPath := flag.String("config", "othello.env", "Path to optional config file")
	mode := flag.String("mode", "pva", "Game mode: pva (player vs agent) or pvp (two players)")
	humanColor := flag.String("color", "black", "Human color in pva mode: black or white")
	name := flag.String("name", "", "Human player display name")
	depth := flag.Int("depth", 0, "Search depth override (0 uses config/default)")
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if *name != "" {
		cfg.PlayerName = *name
	}
	searchCfg := cfg.SearchConfig()
	if *depth > 0 {
		searchCfg.Depth = *depth
	}

	var color game.Cell
	switch *humanColor {
	case "black":
		color = game.Black
	case "white":
		color = game.White
	default:
		log.Fatalf("Invalid -color %q (want black or white)", *humanColor)
	}
	if *mode != "pva" && *mode != "pvp" {
		log.Fatalf("Invalid -mode %q (want pva or pvp)", *mode)
	}

	m := newModel(cfg, searchCfg, *mode == "pva", color)
	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		log.Fatal(err)
	}
}

// agentMoveMsg delivers the agent's move back into the update loop.
type agentMoveMsg struct {
	pos game.Position
	ok  bool
	err error
}

// savedMsg reports the result of persisting a finished game.
type savedMsg struct{ err error }

type model struct {
	cfg       *config.Config
	agent     *search.Agent
	vsAgent   bool
	humanSide game.Cell

	board    *game.Board
	turn     game.Cell
	cursor   game.Position
	status   string
	thinking bool
	over     bool

	gameID string
	rows   []store.TurnRow
	turnNo int32
}

func newModel(cfg *config.Config, searchCfg search.Config, vsAgent bool, humanSide game.Cell) *model {
	m := &model{
		cfg:       cfg,
		agent:     search.New(searchCfg),
		vsAgent:   vsAgent,
		humanSide: humanSide,
	}
	m.reset()
	return m
}

func (m *model) reset() {
	m.board = game.NewBoard()
	m.turn = game.Black // Black always opens
	m.cursor = game.Position{X: 3, Y: 2}
	m.status = "Your move."
	m.thinking = false
	m.over = false
	m.gameID = fmt.Sprintf("tui_%d", time.Now().UnixNano())
	m.rows = m.rows[:0]
	m.turnNo = 0
}

func (m *model) isHumanTurn() bool {
	return !m.vsAgent || m.turn == m.humanSide
}

func (m *model) Init() tea.Cmd {
	if !m.isHumanTurn() {
		m.thinking = true
		m.status = "Thinking..."
		return m.thinkCmd()
	}
	return nil
}

// thinkCmd runs the search off the update loop.
func (m *model) thinkCmd() tea.Cmd {
	board, turn := m.board, m.turn
	return func() tea.Msg {
		pos, ok, err := m.agent.ChooseMove(board, turn)
		return agentMoveMsg{pos: pos, ok: ok, err: err}
	}
}

func (m *model) saveCmd() tea.Cmd {
	winner, _ := m.board.Winner()
	rows := make([]store.TurnRow, len(m.rows))
	copy(rows, m.rows)
	board := m.board
	cfg := m.cfg
	winnerName := m.playerName(winner)
	return func() tea.Msg {
		label := "draw"
		if winner != game.Empty {
			label = winner.String()
		}
		for i := range rows {
			rows[i].Winner = label
		}
		if _, err := store.WriteArchiveBatchAtomic(cfg.ArchiveDir, rows); err != nil {
			return savedMsg{err: err}
		}
		if winner == game.Empty {
			return savedMsg{}
		}
		hs, err := store.OpenHighscores(cfg.HighscorePath)
		if err != nil {
			return savedMsg{err: err}
		}
		defer hs.Close()
		err = hs.Add(store.Score{
			Player:     winnerName,
			Score:      board.CountCells(winner),
			AchievedAt: time.Now(),
		})
		return savedMsg{err: err}
	}
}

func (m *model) playerName(c game.Cell) string {
	if !m.vsAgent {
		return c.String()
	}
	if c != m.humanSide {
		return "Computer"
	}
	if m.cfg.PlayerName != "" {
		return m.cfg.PlayerName
	}
	return c.String()
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "n":
			m.reset()
			if !m.isHumanTurn() {
				m.thinking = true
				m.status = "Thinking..."
				return m, m.thinkCmd()
			}
			return m, nil
		}
		if m.over || m.thinking || !m.isHumanTurn() {
			return m, nil
		}
		switch msg.String() {
		case "up", "k":
			if m.cursor.Y > 0 {
				m.cursor.Y--
			}
		case "down", "j":
			if m.cursor.Y < game.BoardSize-1 {
				m.cursor.Y++
			}
		case "left", "h":
			if m.cursor.X > 0 {
				m.cursor.X--
			}
		case "right", "l":
			if m.cursor.X < game.BoardSize-1 {
				m.cursor.X++
			}
		case "enter", " ":
			return m.playHuman()
		}
		return m, nil

	case agentMoveMsg:
		m.thinking = false
		if msg.err != nil {
			m.status = fmt.Sprintf("Agent error: %v", msg.err)
			return m, nil
		}
		if !msg.ok {
			// The agent has no move; this only happens mid-pass handling.
			return m.advanceTurn()
		}
		return m.applyMove(msg.pos)

	case savedMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Game over. Save failed: %v", msg.err)
		}
		return m, nil
	}
	return m, nil
}

func (m *model) playHuman() (tea.Model, tea.Cmd) {
	next, err := m.board.ApplyMove(m.turn, m.cursor)
	if err != nil {
		// Rule-rejected moves just keep the turn; anything else is a bug.
		m.status = "Not a legal move."
		return m, nil
	}
	return m.recordAndAdvance(next, m.cursor)
}

func (m *model) applyMove(pos game.Position) (tea.Model, tea.Cmd) {
	next, err := m.board.ApplyMove(m.turn, pos)
	if err != nil {
		m.status = fmt.Sprintf("Move rejected: %v", err)
		return m, nil
	}
	return m.recordAndAdvance(next, pos)
}

func (m *model) recordAndAdvance(next *game.Board, pos game.Position) (tea.Model, tea.Cmd) {
	m.rows = append(m.rows, store.TurnRow{
		GameID:     m.gameID,
		Turn:       m.turnNo,
		Mover:      m.turn.String(),
		MoveX:      int32(pos.X),
		MoveY:      int32(pos.Y),
		Board:      strings.ReplaceAll(next.String(), "\n", ""),
		BlackCount: int32(next.CountCells(game.Black)),
		WhiteCount: int32(next.CountCells(game.White)),
		Source:     "tui",
	})
	m.turnNo++
	m.board = next
	return m.advanceTurn()
}

// advanceTurn hands the turn to the opponent, applying the pass rule, and
// kicks off the agent when it is next.
func (m *model) advanceTurn() (tea.Model, tea.Cmd) {
	if m.board.IsGameOver() {
		m.over = true
		m.status = m.resultLine()
		return m, m.saveCmd()
	}

	m.turn = m.turn.Opponent()
	moves, _ := m.board.LegalMoves(m.turn, true)
	if len(moves) == 0 {
		m.status = fmt.Sprintf("%s passes.", m.turn)
		m.turn = m.turn.Opponent()
	} else if m.isHumanTurn() {
		m.status = "Your move."
	}

	if !m.isHumanTurn() {
		m.thinking = true
		m.status = "Thinking..."
		return m, m.thinkCmd()
	}
	return m, nil
}

func (m *model) resultLine() string {
	winner, _ := m.board.Winner()
	black := m.board.CountCells(game.Black)
	white := m.board.CountCells(game.White)
	if winner == game.Empty {
		return fmt.Sprintf("Game over: draw %d-%d.", black, white)
	}
	return fmt.Sprintf("Game over: %s wins %d-%d.",
		m.playerName(winner), m.board.CountCells(winner), min(black, white))
}

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	statusStyle = lipgloss.NewStyle().Padding(0, 1)
	helpStyle   = lipgloss.NewStyle().Faint(true).Padding(0, 1)

	cellStyle   = lipgloss.NewStyle().Background(lipgloss.Color("22")).Padding(0, 1)
	cursorStyle = cellStyle.Background(lipgloss.Color("28"))
	blackStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("16")).Bold(true)
	whiteStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("231")).Bold(true)
	hintStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("118"))
)

func (m *model) View() string {
	legal := map[game.Position]bool{}
	if !m.over && m.isHumanTurn() && !m.thinking {
		moves, _ := m.board.LegalMoves(m.turn, true)
		for _, p := range moves {
			legal[p] = true
		}
	}

	var sb strings.Builder
	sb.WriteString(headerStyle.Render(fmt.Sprintf("Othello | Black %d : %d White",
		m.board.CountCells(game.Black), m.board.CountCells(game.White))))
	sb.WriteString("\n\n")

	for y := 0; y < game.BoardSize; y++ {
		for x := 0; x < game.BoardSize; x++ {
			p := game.Position{X: x, Y: y}
			cell, _ := m.board.CellAt(p)

			var disk string
			switch {
			case cell == game.Black:
				disk = blackStyle.Render("●")
			case cell == game.White:
				disk = whiteStyle.Render("●")
			case legal[p]:
				disk = hintStyle.Render("·")
			default:
				disk = " "
			}

			style := cellStyle
			if p == m.cursor && m.isHumanTurn() && !m.over {
				style = cursorStyle
			}
			sb.WriteString(style.Render(disk))
		}
		sb.WriteString("\n")
	}

	sb.WriteString("\n")
	sb.WriteString(statusStyle.Render(m.status))
	sb.WriteString("\n")
	sb.WriteString(helpStyle.Render("arrows/hjkl move · enter place · n new game · q quit"))
	sb.WriteString("\n")
	return sb.String()
}
