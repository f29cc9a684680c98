package store

import (
	"time"

	"github.com/kemetharvest/gool/internal/domain"
)

// Seed loads the fixture teams, leagues, matches and news. Kickoff times are
// derived from the store's clock so the yesterday/today/tomorrow buckets stay
// correct at every start.
func (s *Store) Seed() {
	s.mu.Lock()
	defer s.mu.Unlock()

	teams := []domain.Team{
		{ID: "team1", Name: "Al-Ahly", NameAr: "الأهلي", Logo: "🔴", Country: "Egypt", Founded: 1925},
		{ID: "team2", Name: "Zamalek", NameAr: "الزمالك", Logo: "⚪", Country: "Egypt", Founded: 1911},
		{ID: "team3", Name: "Barcelona", NameAr: "برشلونة", Logo: "🔵", Country: "Spain", Founded: 1899},
		{ID: "team4", Name: "Real Madrid", NameAr: "ريال مدريد", Logo: "⚪", Country: "Spain", Founded: 1902},
		{ID: "team5", Name: "Liverpool", NameAr: "ليفربول", Logo: "🔴", Country: "England", Founded: 1892},
		{ID: "team6", Name: "Manchester United", NameAr: "مانشستر يونايتد", Logo: "🔴", Country: "England", Founded: 1878},
		{ID: "team7", Name: "Ismaili", NameAr: "الإسماعيلي", Logo: "🟢", Country: "Egypt", Founded: 1924},
		{ID: "team8", Name: "PAOK", NameAr: "باوك", Logo: "⬛", Country: "Greece", Founded: 1926},
	}
	for _, t := range teams {
		s.teams[t.ID] = t
	}

	season := s.clock.Now().Year()
	leagues := []domain.League{
		{ID: "league1", Name: "Egyptian Premier League", NameAr: "الدوري المصري الممتاز", Country: "Egypt", Logo: "🇪🇬", Season: season, Type: "domestic"},
		{ID: "league2", Name: "La Liga", NameAr: "الدوري الإسباني", Country: "Spain", Logo: "🇪🇸", Season: season, Type: "domestic"},
		{ID: "league3", Name: "Premier League", NameAr: "الدوري الإنجليزي", Country: "England", Logo: "🇬🇧", Season: season, Type: "domestic"},
		{ID: "league4", Name: "UEFA Champions League", NameAr: "دوري أبطال أوروبا", Country: "Europe", Logo: "🏆", Season: season, Type: "international"},
		{ID: "league5", Name: "Serie A", NameAr: "الدوري الإيطالي", Country: "Italy", Logo: "🇮🇹", Season: season, Type: "domestic"},
	}
	for _, l := range leagues {
		s.leagues[l.ID] = l
	}

	now := s.clock.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	yesterday := today.AddDate(0, 0, -1)
	tomorrow := today.AddDate(0, 0, 1)

	epl := domain.LeagueRef{ID: "league1", Name: "Egyptian Premier League", NameAr: "الدوري المصري الممتاز", Logo: "🇪🇬"}
	laliga := domain.LeagueRef{ID: "league2", Name: "La Liga", NameAr: "الدوري الإسباني", Logo: "🇪🇸"}
	pl := domain.LeagueRef{ID: "league3", Name: "Premier League", NameAr: "الدوري الإنجليزي", Logo: "🇬🇧"}
	ucl := domain.LeagueRef{ID: "league4", Name: "UEFA Champions League", NameAr: "دوري أبطال أوروبا", Logo: "🏆"}

	matches := []domain.Match{
		{
			ID: "match1", HomeTeam: s.teams["team1"], AwayTeam: s.teams["team2"],
			HomeScore: 1, AwayScore: 1, Status: domain.StatusInProgress, Minute: 67,
			KickoffTime: today.Add(90 * time.Minute).Format(time.RFC3339),
			League:      epl,
			Venue:       &domain.Venue{Name: "Cairo International Stadium", City: "Cairo"},
			Channel:     "beIN Sports 1",
		},
		{
			ID: "match2", HomeTeam: s.teams["team3"], AwayTeam: s.teams["team4"],
			HomeScore: 2, AwayScore: 1, Status: domain.StatusInProgress, Minute: 45,
			KickoffTime: today.Add(2 * time.Hour).Format(time.RFC3339),
			League:      laliga,
			Venue:       &domain.Venue{Name: "Camp Nou", City: "Barcelona"},
			Channel:     "Sky Sports",
		},
		{
			ID: "match3", HomeTeam: s.teams["team5"], AwayTeam: s.teams["team6"],
			Status:      domain.StatusScheduled,
			KickoffTime: today.Add(4 * time.Hour).Format(time.RFC3339),
			League:      pl,
			Venue:       &domain.Venue{Name: "Anfield", City: "Liverpool"},
			Channel:     "beIN Sports 2",
		},
		{
			ID: "match7", HomeTeam: s.teams["team7"], AwayTeam: s.teams["team8"],
			Status:      domain.StatusScheduled,
			KickoffTime: today.Add(5 * time.Hour).Format(time.RFC3339),
			League:      epl,
			Venue:       &domain.Venue{Name: "Ismailia Stadium", City: "Ismailia"},
			Channel:     "beIN Sports 3",
		},
		{
			ID: "match4", HomeTeam: s.teams["team1"], AwayTeam: s.teams["team7"],
			HomeScore: 3, AwayScore: 1, Status: domain.StatusFinished, Minute: 90,
			KickoffTime: yesterday.Add(2 * time.Hour).Format(time.RFC3339),
			League:      epl,
			Venue:       &domain.Venue{Name: "Cairo International Stadium", City: "Cairo"},
			Channel:     "beIN Sports",
		},
		{
			ID: "match5", HomeTeam: s.teams["team6"], AwayTeam: s.teams["team4"],
			HomeScore: 2, AwayScore: 2, Status: domain.StatusFinished, Minute: 90,
			KickoffTime: yesterday.Format(time.RFC3339),
			League:      ucl,
			Venue:       &domain.Venue{Name: "Old Trafford", City: "Manchester"},
			Channel:     "Sky Sports",
		},
		{
			ID: "match6", HomeTeam: s.teams["team2"], AwayTeam: s.teams["team3"],
			Status:      domain.StatusScheduled,
			KickoffTime: tomorrow.Format(time.RFC3339),
			League:      epl,
			Venue:       &domain.Venue{Name: "Cairo Stadium", City: "Cairo"},
			Channel:     "beIN Sports",
		},
	}
	for _, m := range matches {
		s.matches[m.ID] = m
	}

	news := []domain.News{
		{
			ID:          "news1",
			Title:       "Barcelona beats Real Madrid in epic El Clásico",
			TitleAr:     "برشلونة يفوز على ريال مدريد في كلاسيكو مثير",
			Content:     "In an exciting match, Barcelona managed to defeat Real Madrid with a score of 2-1.",
			ContentAr:   "في مباراة مثيرة، تمكن برشلونة من هزيمة ريال مدريد برصيد 2-1.",
			Image:       "https://via.placeholder.com/400x200?text=Barcelona+vs+Madrid",
			Author:      "Sports Reporter",
			PublishedAt: now.Format(time.RFC3339),
			Category:    "Match Report",
			Source:      "Sports News",
		},
		{
			ID:          "news2",
			Title:       "Egyptian Premier League intensifies",
			TitleAr:     "الدوري المصري يشتد على مراحله الأخيرة",
			Content:     "The competition is getting tighter as we approach the final weeks of the season.",
			ContentAr:   "يستمر الدوري المصري بمباريات مثيرة والمنافسة تشتد مع اقتراب نهاية الموسم.",
			Image:       "https://via.placeholder.com/400x200?text=Egypt+Football",
			Author:      "Football Analyst",
			PublishedAt: now.Add(-1 * time.Hour).Format(time.RFC3339),
			Category:    "League News",
			Source:      "Sports News",
		},
		{
			ID:          "news3",
			Title:       "Liverpool wins against Manchester United",
			TitleAr:     "ليفربول يتفوق على مانشستر يونايتد",
			Content:     "In a thrilling encounter at Anfield, Liverpool secured victory over Manchester United.",
			ContentAr:   "في مباراة مثيرة في أنفيلد، حقق ليفربول الفوز على مانشستر يونايتد.",
			Image:       "https://via.placeholder.com/400x200?text=Liverpool+vs+Man+United",
			Author:      "Sports Correspondent",
			PublishedAt: now.Add(-2 * time.Hour).Format(time.RFC3339),
			Category:    "Match Report",
			Source:      "Sports News",
		},
	}
	for _, n := range news {
		s.news[n.ID] = n
	}
}
