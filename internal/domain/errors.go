package domain

import "errors"

var (
	ErrMatchNotFound  = errors.New("match not found")
	ErrTeamNotFound   = errors.New("team not found")
	ErrLeagueNotFound = errors.New("league not found")
	ErrNewsNotFound   = errors.New("news not found")
)
