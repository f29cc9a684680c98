package domain

// TeamStatistics is one side of a generated match statistics sheet.
type TeamStatistics struct {
	TeamID        string  `json:"teamId"`
	Possession    float64 `json:"possession"`
	Shots         int     `json:"shots"`
	ShotsOnTarget int     `json:"shotsOnTarget"`
	Passes        int     `json:"passes"`
	PassAccuracy  float64 `json:"passAccuracy"`
	Fouls         int     `json:"fouls"`
	Offsides      int     `json:"offsides"`
	Corners       int     `json:"corners"`
	YellowCards   int     `json:"yellowCards"`
	RedCards      int     `json:"redCards"`
	Saves         int     `json:"saves"`
	Tackles       int     `json:"tackles"`
}

type MatchStatistics struct {
	MatchID  string         `json:"matchId"`
	HomeTeam TeamStatistics `json:"homeTeam"`
	AwayTeam TeamStatistics `json:"awayTeam"`
}
