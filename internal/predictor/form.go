package predictor

import "github.com/radieske/footy-predictor/internal/footballdata"

// Form devolve o aproveitamento recente do time em 0..100
// (pontos conquistados sobre o máximo possível nas partidas informadas).
// Sem partidas, assume 50 (neutro).
func Form(matches []footballdata.Match, teamID int64) float64 {
	if len(matches) == 0 {
		return 50
	}

	points := 0
	max := len(matches) * 3

	for _, m := range matches {
		homeGoals, awayGoals := 0, 0
		if m.Score.FullTime.Home != nil {
			homeGoals = *m.Score.FullTime.Home
		}
		if m.Score.FullTime.Away != nil {
			awayGoals = *m.Score.FullTime.Away
		}

		isHome := m.HomeTeam.ID == teamID
		switch {
		case homeGoals == awayGoals:
			points++
		case isHome && homeGoals > awayGoals:
			points += 3
		case !isHome && awayGoals > homeGoals:
			points += 3
		}
	}

	return float64(points) / float64(max) * 100
}
