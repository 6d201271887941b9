// Package seed holds the demo dataset the server boots with, mirroring the
// contest's mock data: one admin, one regular player, a slate of fixtures
// (two already settled), the rulebook, info blocks and ads.
package seed

import (
	"time"

	"github.com/pronoleague/prono-backend/internal/contest"
	"github.com/pronoleague/prono-backend/internal/store"
)

// The canned admin acknowledgement posted into contact threads.
const ContactAutoReply = "Merci pour votre message. L'administrateur vous répondra bientôt."

const AdminName = "Admin"

func Demo() store.Seed {
	users := []contest.User{
		{
			ID:                "user-admin",
			Seq:               1,
			Name:              "Admin",
			Email:             "admin@example.com",
			ProfilePictureURL: "https://i.pravatar.cc/150?u=user-admin",
			Country:           contest.Country{Name: "Sénégal", Code: "SN"},
			Gender:            "Male",
			Phone:             "+221770000000",
			IsAdmin:           true,
		},
		{
			ID:                "user-amadou",
			Seq:               2,
			Name:              "Amadou Diallo",
			Email:             "amadou@example.com",
			ProfilePictureURL: "https://i.pravatar.cc/150?u=user-amadou",
			Country:           contest.Country{Name: "Côte d'Ivoire", Code: "CI"},
			Gender:            "Male",
			Phone:             "+225070000000",
		},
	}

	kickoff := func(day, hour int) time.Time {
		return time.Date(2025, time.September, day, hour, 0, 0, 0, time.UTC)
	}
	flag := func(code string) string { return "https://flagcdn.com/w80/" + code + ".png" }

	matches := []contest.Match{
		{
			ID:          "match-1",
			BetNumber:   1,
			HomeTeam:    contest.Team{Name: "Sénégal", FlagURL: flag("sn")},
			AwayTeam:    contest.Team{Name: "Côte d'Ivoire", FlagURL: flag("ci")},
			Date:        kickoff(5, 17),
			Competition: "Qualifications CAN",
			Country:     "Sénégal",
			Result:      &contest.Result{HomeScore: 2, AwayScore: 1},
		},
		{
			ID:          "match-2",
			BetNumber:   2,
			HomeTeam:    contest.Team{Name: "Maroc", FlagURL: flag("ma")},
			AwayTeam:    contest.Team{Name: "Nigéria", FlagURL: flag("ng")},
			Date:        kickoff(5, 20),
			Competition: "Qualifications CAN",
			Country:     "Maroc",
			Result:      &contest.Result{HomeScore: 1, AwayScore: 1},
		},
		{
			ID:          "match-3",
			BetNumber:   3,
			HomeTeam:    contest.Team{Name: "Égypte", FlagURL: flag("eg")},
			AwayTeam:    contest.Team{Name: "Ghana", FlagURL: flag("gh")},
			Date:        kickoff(12, 17),
			Competition: "Qualifications CAN",
			Country:     "Égypte",
		},
		{
			ID:          "match-4",
			BetNumber:   4,
			HomeTeam:    contest.Team{Name: "Cameroun", FlagURL: flag("cm")},
			AwayTeam:    contest.Team{Name: "Algérie", FlagURL: flag("dz")},
			Date:        kickoff(12, 20),
			Competition: "Qualifications CAN",
			Country:     "Cameroun",
		},
		{
			ID:          "match-5",
			BetNumber:   5,
			HomeTeam:    contest.Team{Name: "Mali", FlagURL: flag("ml")},
			AwayTeam:    contest.Team{Name: "Tunisie", FlagURL: flag("tn")},
			Date:        kickoff(13, 17),
			Competition: "Qualifications CAN",
			Country:     "Mali",
		},
		{
			ID:          "match-6",
			BetNumber:   6,
			HomeTeam:    contest.Team{Name: "RD Congo", FlagURL: flag("cd")},
			AwayTeam:    contest.Team{Name: "Afrique du Sud", FlagURL: flag("za")},
			Date:        kickoff(13, 20),
			Competition: "Qualifications CAN",
			Country:     "RD Congo",
		},
	}

	predictions := []contest.Prediction{
		{UserID: "user-amadou", MatchID: "match-1", Pick: contest.SymbolHome},
		{UserID: "user-amadou", MatchID: "match-2", Pick: contest.SymbolDrawOrAway},
		{UserID: "user-amadou", MatchID: "match-3", Pick: contest.SymbolHomeOrDraw},
	}

	rules := []contest.Rule{
		{ID: "rule-1", Content: "Victoire exacte (1 ou 2) : 3 points."},
		{ID: "rule-2", Content: "Match nul exact (X) : 2 points."},
		{ID: "rule-3", Content: "Double chance gagnante (1X ou X2) : 1 point."},
		{ID: "rule-4", Content: "Les pronostics sont modifiables jusqu'au coup d'envoi. Une fois le score enregistré, le pari est définitif."},
	}

	infos := []contest.Info{
		{
			ID:       "info-1",
			Text:     "Bienvenue sur Prediction Foot Africa ! Pronostiquez les matchs, grimpez au classement et défiez vos amis sur le forum.",
			ImageURL: "https://picsum.photos/seed/pfa-welcome/800/400",
		},
	}

	ads := []contest.Ad{
		{
			ID:       "ad-1",
			ImageURL: "https://picsum.photos/seed/pfa-maillot/400/200",
			Name:     "Maillot officiel",
			Price:    "15 000 FCFA",
			URL:      "https://example.com/boutique/maillot",
		},
		{
			ID:       "ad-2",
			ImageURL: "https://picsum.photos/seed/pfa-ballon/400/200",
			Name:     "Ballon de match",
			Price:    "8 000 FCFA",
			URL:      "https://example.com/boutique/ballon",
		},
	}

	return store.Seed{
		Users:       users,
		Matches:     matches,
		Predictions: predictions,
		Rules:       rules,
		Infos:       infos,
		Ads:         ads,
	}
}
