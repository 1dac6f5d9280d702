// Package leaderboardterminal prints standings for the command line.
package leaderboardterminal

import (
	"strconv"
	"strings"

	leaderboardservice "github.com/Black-And-White-Club/belote-bot/app/modules/leaderboard/application"
	leaderboarddomain "github.com/Black-And-White-Club/belote-bot/app/modules/leaderboard/domain"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

var (
	accent = lipgloss.Color("#4169E1")
	dim    = lipgloss.Color("#6B7280")
	gold   = lipgloss.Color("#D97706")

	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(accent).MarginTop(1)
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(accent).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	leaderStyle = cellStyle.Foreground(gold).Bold(true)
	emptyStyle  = lipgloss.NewStyle().Foreground(dim).Italic(true)
)

// RenderStandings lays out the team and player standings as two tables.
func RenderStandings(s *leaderboardservice.Standings) string {
	var b strings.Builder
	b.WriteString(section("Équipes", s.Teams, false))
	b.WriteString("\n")
	b.WriteString(section("Joueurs", s.Players, true))
	b.WriteString("\n")
	return b.String()
}

func section(title string, ranked []leaderboarddomain.Ranked, withTeam bool) string {
	heading := titleStyle.Render(title)
	if len(ranked) == 0 {
		return heading + "\n" + emptyStyle.Render("Aucun résultat")
	}

	headers := []string{"#", "Nom", "Victoires", "Parties", "Points"}
	if withTeam {
		headers = []string{"#", "Nom", "Équipe", "Victoires", "Parties", "Points"}
	}

	rows := make([][]string, 0, len(ranked))
	for _, r := range ranked {
		row := []string{strconv.Itoa(r.Rank), r.Name}
		if withTeam {
			row = append(row, r.Team)
		}
		row = append(row, strconv.Itoa(r.Victories), strconv.Itoa(r.GamesPlayed), strconv.Itoa(r.Points))
		rows = append(rows, row)
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(dim)).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case row >= 0 && row < len(ranked) && ranked[row].Rank == 1:
				return leaderStyle
			}
			return cellStyle
		})

	return heading + "\n" + t.Render()
}
