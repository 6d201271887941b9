// Package types holds the JSON shapes shared with clients.
package types

import (
	"time"

	"github.com/pronoleague/prono-backend/internal/contest"
)

type RegisterRequest struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Gender      string `json:"gender,omitempty"`
	Phone       string `json:"phone,omitempty"`
	CountryName string `json:"countryName,omitempty"`
	CountryCode string `json:"countryCode,omitempty"`
}

type LoginRequest struct {
	Email string `json:"email"`
}

type UserResponse struct {
	ID                string `json:"id"`
	Name              string `json:"name"`
	Email             string `json:"email"`
	ProfilePictureURL string `json:"profilePictureUrl"`
	CountryName       string `json:"countryName,omitempty"`
	CountryCode       string `json:"countryCode,omitempty"`
	Gender            string `json:"gender,omitempty"`
	Phone             string `json:"phone,omitempty"`
	IsAdmin           bool   `json:"isAdmin"`
}

func NewUserResponse(u contest.User) UserResponse {
	return UserResponse{
		ID:                u.ID,
		Name:              u.Name,
		Email:             u.Email,
		ProfilePictureURL: u.ProfilePictureURL,
		CountryName:       u.Country.Name,
		CountryCode:       u.Country.Code,
		Gender:            u.Gender,
		Phone:             u.Phone,
		IsAdmin:           u.IsAdmin,
	}
}

type TeamPayload struct {
	Name    string `json:"name"`
	FlagURL string `json:"flagUrl"`
}

type ResultPayload struct {
	HomeScore int `json:"homeScore"`
	AwayScore int `json:"awayScore"`
}

// MatchPayload is the admin create/update body.
type MatchPayload struct {
	BetNumber   int            `json:"betNumber,omitempty"`
	HomeTeam    TeamPayload    `json:"homeTeam"`
	AwayTeam    TeamPayload    `json:"awayTeam"`
	Date        time.Time      `json:"date"`
	Competition string         `json:"competition"`
	Country     string         `json:"country"`
	Result      *ResultPayload `json:"result,omitempty"`
}

func (p MatchPayload) ToDomain() contest.Match {
	m := contest.Match{
		BetNumber:   p.BetNumber,
		HomeTeam:    contest.Team{Name: p.HomeTeam.Name, FlagURL: p.HomeTeam.FlagURL},
		AwayTeam:    contest.Team{Name: p.AwayTeam.Name, FlagURL: p.AwayTeam.FlagURL},
		Date:        p.Date,
		Competition: p.Competition,
		Country:     p.Country,
	}
	if p.Result != nil {
		m.Result = &contest.Result{HomeScore: p.Result.HomeScore, AwayScore: p.Result.AwayScore}
	}
	return m
}

type MatchResponse struct {
	ID          string         `json:"id"`
	BetNumber   int            `json:"betNumber"`
	HomeTeam    TeamPayload    `json:"homeTeam"`
	AwayTeam    TeamPayload    `json:"awayTeam"`
	Date        time.Time      `json:"date"`
	Competition string         `json:"competition"`
	Country     string         `json:"country"`
	Result      *ResultPayload `json:"result,omitempty"`
}

func NewMatchResponse(m contest.Match) MatchResponse {
	out := MatchResponse{
		ID:          m.ID,
		BetNumber:   m.BetNumber,
		HomeTeam:    TeamPayload{Name: m.HomeTeam.Name, FlagURL: m.HomeTeam.FlagURL},
		AwayTeam:    TeamPayload{Name: m.AwayTeam.Name, FlagURL: m.AwayTeam.FlagURL},
		Date:        m.Date,
		Competition: m.Competition,
		Country:     m.Country,
	}
	if m.Result != nil {
		out.Result = &ResultPayload{HomeScore: m.Result.HomeScore, AwayScore: m.Result.AwayScore}
	}
	return out
}

type PredictionEntry struct {
	MatchID string `json:"matchId"`
	Pick    string `json:"prediction"`
}

type SubmitPredictionsRequest struct {
	Predictions []PredictionEntry `json:"predictions"`
}

type PredictionResponse struct {
	UserID  string `json:"userId"`
	MatchID string `json:"matchId"`
	Pick    string `json:"prediction"`
}

type StandingsEntry struct {
	User       UserResponse `json:"user"`
	Points     int          `json:"points"`
	Rank       int          `json:"rank"`
	RankChange string       `json:"rankChange"`
}

func NewStandingsEntry(e contest.Entry) StandingsEntry {
	return StandingsEntry{
		User:       NewUserResponse(e.User),
		Points:     e.Points,
		Rank:       e.Rank,
		RankChange: string(e.Change),
	}
}

type RulePayload struct {
	ID      string `json:"id,omitempty"`
	Content string `json:"content"`
}

type InfoPayload struct {
	ID       string `json:"id,omitempty"`
	Text     string `json:"text"`
	ImageURL string `json:"imageUrl,omitempty"`
}

type AdPayload struct {
	ID       string `json:"id,omitempty"`
	ImageURL string `json:"imageUrl"`
	Name     string `json:"name"`
	Price    string `json:"price,omitempty"`
	URL      string `json:"url,omitempty"`
}

// ChatClientFrame is what a WS client sends. Type is "Post".
type ChatClientFrame struct {
	Type string `json:"type"`
	Body string `json:"body,omitempty"`
}

type ChatMessage struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId,omitempty"`
	UserName  string    `json:"userName"`
	Body      string    `json:"body"`
	Timestamp time.Time `json:"timestamp"`
	FromAdmin bool      `json:"isFromAdmin"`
}

// ChatServerFrame is what the server pushes. Type is "Snapshot" or "Error".
type ChatServerFrame struct {
	Type     string        `json:"type"`
	Version  int           `json:"version,omitempty"`
	Messages []ChatMessage `json:"messages,omitempty"`
	Error    string        `json:"error,omitempty"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
