package store

import "github.com/pronoleague/prono-backend/internal/contest"

type msg interface{ isStoreMsg() }

// outcome carries a reply value together with the error that produced it.
type outcome[T any] struct {
	val T
	err error
}

// PredictionEntry is one (match, symbol) pair in a batch submission. Pick is
// the raw string from the client; the store parses it.
type PredictionEntry struct {
	MatchID string
	Pick    string
}

type registerMsg struct {
	name    string
	email   string
	gender  string
	phone   string
	country contest.Country
	reply   chan outcome[contest.User]
}

type loginMsg struct {
	email string
	reply chan outcome[contest.User]
}

type getUserMsg struct {
	id    string
	reply chan outcome[contest.User]
}

type listUsersMsg struct {
	reply chan outcome[[]contest.User]
}

type listMatchesMsg struct {
	reply chan outcome[[]contest.Match]
}

type createMatchMsg struct {
	actorID string
	match   contest.Match
	reply   chan outcome[contest.Match]
}

type updateMatchMsg struct {
	actorID string
	match   contest.Match
	reply   chan outcome[contest.Match]
}

type deleteMatchMsg struct {
	actorID string
	matchID string
	reply   chan outcome[struct{}]
}

type recordResultMsg struct {
	actorID string
	matchID string
	home    int
	away    int
	reply   chan outcome[contest.Match]
}

type submitPredictionsMsg struct {
	userID  string
	entries []PredictionEntry
	reply   chan outcome[struct{}]
}

// predLookup distinguishes "no prediction" from a stored one.
type predLookup struct {
	pick  contest.Symbol
	found bool
}

type getPredictionMsg struct {
	userID  string
	matchID string
	reply   chan outcome[predLookup]
}

type listPredictionsMsg struct {
	userID string
	reply  chan outcome[[]contest.Prediction]
}

type standingsMsg struct {
	reply chan outcome[[]contest.Entry]
}

type listRulesMsg struct {
	reply chan outcome[[]contest.Rule]
}

type saveRuleMsg struct {
	actorID string
	rule    contest.Rule
	reply   chan outcome[contest.Rule]
}

type deleteRuleMsg struct {
	actorID string
	id      string
	reply   chan outcome[struct{}]
}

type listInfosMsg struct {
	reply chan outcome[[]contest.Info]
}

type saveInfoMsg struct {
	actorID string
	info    contest.Info
	reply   chan outcome[contest.Info]
}

type deleteInfoMsg struct {
	actorID string
	id      string
	reply   chan outcome[struct{}]
}

type listAdsMsg struct {
	reply chan outcome[[]contest.Ad]
}

type saveAdMsg struct {
	actorID string
	ad      contest.Ad
	reply   chan outcome[contest.Ad]
}

type deleteAdMsg struct {
	actorID string
	id      string
	reply   chan outcome[struct{}]
}

type shutdownMsg struct{}

func (registerMsg) isStoreMsg()          {}
func (loginMsg) isStoreMsg()             {}
func (getUserMsg) isStoreMsg()           {}
func (listUsersMsg) isStoreMsg()         {}
func (listMatchesMsg) isStoreMsg()       {}
func (createMatchMsg) isStoreMsg()       {}
func (updateMatchMsg) isStoreMsg()       {}
func (deleteMatchMsg) isStoreMsg()       {}
func (recordResultMsg) isStoreMsg()      {}
func (submitPredictionsMsg) isStoreMsg() {}
func (getPredictionMsg) isStoreMsg()     {}
func (listPredictionsMsg) isStoreMsg()   {}
func (standingsMsg) isStoreMsg()         {}
func (listRulesMsg) isStoreMsg()         {}
func (saveRuleMsg) isStoreMsg()          {}
func (deleteRuleMsg) isStoreMsg()        {}
func (listInfosMsg) isStoreMsg()         {}
func (saveInfoMsg) isStoreMsg()          {}
func (deleteInfoMsg) isStoreMsg()        {}
func (listAdsMsg) isStoreMsg()           {}
func (saveAdMsg) isStoreMsg()            {}
func (deleteAdMsg) isStoreMsg()          {}
func (shutdownMsg) isStoreMsg()          {}
