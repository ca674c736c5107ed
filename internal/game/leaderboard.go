package game

import "trivia-client/internal/domain"

// Row is a single rendered leaderboard line.
type Row struct {
	DisplayName string
	Score       int
	Self        bool
}

// LeaderboardRows projects a server snapshot into display rows. The server's
// order is kept as delivered; the only local concern is marking our own row.
func LeaderboardRows(entries []domain.LeaderboardEntry, selfID string) []Row {
	rows := make([]Row, 0, len(entries))
	for _, entry := range entries {
		rows = append(rows, Row{
			DisplayName: entry.DisplayName,
			Score:       entry.Score,
			Self:        selfID != "" && entry.UserID == selfID,
		})
	}
	return rows
}
