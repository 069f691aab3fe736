package repo

import (
	"context"
	"database/sql"

	"github.com/radieske/live-form-tracker-poc/internal/form-api/dto"
	"github.com/radieske/live-form-tracker-poc/pkg/contracts/events"
)

// ReadRepo lê formulários de apostas já analisados do Postgres
type ReadRepo struct {
	DB *sql.DB
}

// GetForm carrega os jogos de um formulário na ordem de inserção
// Retorna sql.ErrNoRows quando o formulário não existe
func (r *ReadRepo) GetForm(ctx context.Context, formID string) (dto.FormResponse, error) {
	const q = `
		SELECT game_id, home_team, away_team, status, bet_type, odd_value, stake_cents,
		       kickoff_time, win_probability, confidence
		FROM form_games
		WHERE form_id = $1
		ORDER BY position;
	`
	rows, err := r.DB.QueryContext(ctx, q, formID)
	if err != nil {
		return dto.FormResponse{}, err
	}
	defer rows.Close()

	var games []events.Game
	for rows.Next() {
		var g events.Game
		var kickoff sql.NullTime
		if err := rows.Scan(
			&g.GameID, &g.HomeTeam, &g.AwayTeam, &g.Status, &g.BetType,
			&g.OddValue, &g.StakeCents, &kickoff,
			&g.InitialPrediction.WinProbability, &g.InitialPrediction.Confidence,
		); err != nil {
			return dto.FormResponse{}, err
		}
		if kickoff.Valid {
			g.KickoffTime = kickoff.Time
		}
		games = append(games, g)
	}
	if err := rows.Err(); err != nil {
		return dto.FormResponse{}, err
	}
	if len(games) == 0 {
		return dto.FormResponse{}, sql.ErrNoRows
	}

	return dto.FormResponse{FormID: formID, Games: games}, nil
}
