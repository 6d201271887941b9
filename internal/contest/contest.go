package contest

import (
	"errors"
	"fmt"
	"time"
)

var ErrMatchAlreadySettled = errors.New("match already settled")
var ErrMatchNotFound = errors.New("match not found")
var ErrUnknownUser = errors.New("unknown user")
var ErrInvalidSymbol = errors.New("invalid prediction symbol")
var ErrDuplicateBetNumber = errors.New("bet number already in use")
var ErrDuplicateEmail = errors.New("email already registered")
var ErrForbidden = errors.New("admin only")
var ErrNotFound = errors.New("not found")
var ErrMissingField = errors.New("missing required field")

// Symbol is a prediction on the 1X2 market, including the two double chances.
type Symbol string

const (
	SymbolHome       Symbol = "1"
	SymbolDraw       Symbol = "X"
	SymbolAway       Symbol = "2"
	SymbolHomeOrDraw Symbol = "1X"
	SymbolDrawOrAway Symbol = "X2"
)

func ParseSymbol(s string) (Symbol, error) {
	switch Symbol(s) {
	case SymbolHome, SymbolDraw, SymbolAway, SymbolHomeOrDraw, SymbolDrawOrAway:
		return Symbol(s), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidSymbol, s)
	}
}

// Outcome is the final 1X2 classification of a settled match.
type Outcome string

const (
	OutcomeHome Outcome = "1"
	OutcomeDraw Outcome = "X"
	OutcomeAway Outcome = "2"
)

type Result struct {
	HomeScore int
	AwayScore int
}

func (r Result) Outcome() Outcome {
	switch {
	case r.HomeScore > r.AwayScore:
		return OutcomeHome
	case r.HomeScore < r.AwayScore:
		return OutcomeAway
	default:
		return OutcomeDraw
	}
}

type Team struct {
	Name    string
	FlagURL string
}

// Match is one fixture in the catalog. Result stays nil while the match is
// open; attaching a result settles it for good.
type Match struct {
	ID          string
	BetNumber   int
	HomeTeam    Team
	AwayTeam    Team
	Date        time.Time
	Competition string
	Country     string
	Result      *Result
}

func (m Match) Settled() bool { return m.Result != nil }

type Country struct {
	Name string
	Code string
}

// User is a registered account. Seq is the registration order and is the
// leaderboard tie-breaker.
type User struct {
	ID                string
	Seq               int
	Name              string
	Email             string
	ProfilePictureURL string
	Country           Country
	Gender            string
	Phone             string
	IsAdmin           bool
}

// Prediction is keyed by (UserID, MatchID); a user holds at most one per match.
type Prediction struct {
	UserID  string
	MatchID string
	Pick    Symbol
}

type Rule struct {
	ID      string
	Content string
}

type Info struct {
	ID       string
	Text     string
	ImageURL string
}

type Ad struct {
	ID       string
	ImageURL string
	Name     string
	Price    string
	URL      string
}
