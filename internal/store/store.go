package store

import (
	"context"

	"github.com/pronoleague/prono-backend/internal/contest"
)

// Seed is the dataset the store starts from.
type Seed struct {
	Users       []contest.User
	Matches     []contest.Match
	Predictions []contest.Prediction
	Rules       []contest.Rule
	Infos       []contest.Info
	Ads         []contest.Ad
}

type predKey struct{ userID, matchID string }

// Store owns every mutable entity in the contest. All reads and writes flow
// through a single goroutine, so callers never observe a torn update and
// last-write-wins is the only conflict policy needed.
type Store struct {
	inbox  chan msg
	ctx    context.Context
	cancel context.CancelFunc

	users       []contest.User
	matches     []contest.Match
	predictions map[predKey]contest.Symbol
	rules       []contest.Rule
	infos       []contest.Info
	ads         []contest.Ad
	nextSeq     int
	// rank baseline captured just before the most recent settlement,
	// used to report leaderboard movement
	prevRanks map[string]int
}

func New(parent context.Context, seed Seed) *Store {
	ctx, cancel := context.WithCancel(parent)
	s := &Store{
		inbox:       make(chan msg, 64),
		ctx:         ctx,
		cancel:      cancel,
		users:       append([]contest.User(nil), seed.Users...),
		matches:     append([]contest.Match(nil), seed.Matches...),
		predictions: make(map[predKey]contest.Symbol),
		rules:       append([]contest.Rule(nil), seed.Rules...),
		infos:       append([]contest.Info(nil), seed.Infos...),
		ads:         append([]contest.Ad(nil), seed.Ads...),
	}
	for _, p := range seed.Predictions {
		s.predictions[predKey{p.UserID, p.MatchID}] = p.Pick
	}
	for _, u := range s.users {
		if u.Seq > s.nextSeq {
			s.nextSeq = u.Seq
		}
	}
	go s.loop()
	return s
}

func (s *Store) loop() {
	for {
		select {
		case <-s.ctx.Done():
			return

		case m := <-s.inbox:
			switch msg := m.(type) {
			case registerMsg:
				u, err := s.register(msg)
				msg.reply <- outcome[contest.User]{u, err}
			case loginMsg:
				u, err := s.login(msg.email)
				msg.reply <- outcome[contest.User]{u, err}
			case getUserMsg:
				u, err := s.userByID(msg.id)
				msg.reply <- outcome[contest.User]{u, err}
			case listUsersMsg:
				msg.reply <- outcome[[]contest.User]{append([]contest.User(nil), s.users...), nil}
			case listMatchesMsg:
				msg.reply <- outcome[[]contest.Match]{append([]contest.Match(nil), s.matches...), nil}
			case createMatchMsg:
				m, err := s.createMatch(msg.actorID, msg.match)
				msg.reply <- outcome[contest.Match]{m, err}
			case updateMatchMsg:
				m, err := s.updateMatch(msg.actorID, msg.match)
				msg.reply <- outcome[contest.Match]{m, err}
			case deleteMatchMsg:
				err := s.deleteMatch(msg.actorID, msg.matchID)
				msg.reply <- outcome[struct{}]{struct{}{}, err}
			case recordResultMsg:
				m, err := s.recordResult(msg.actorID, msg.matchID, msg.home, msg.away)
				msg.reply <- outcome[contest.Match]{m, err}
			case submitPredictionsMsg:
				err := s.submitPredictions(msg.userID, msg.entries)
				msg.reply <- outcome[struct{}]{struct{}{}, err}
			case getPredictionMsg:
				pick, found := s.predictions[predKey{msg.userID, msg.matchID}]
				msg.reply <- outcome[predLookup]{predLookup{pick, found}, nil}
			case listPredictionsMsg:
				ps, err := s.listPredictions(msg.userID)
				msg.reply <- outcome[[]contest.Prediction]{ps, err}
			case standingsMsg:
				entries := contest.ComputeStandings(s.users, s.matches, s.predictionList(), s.prevRanks)
				msg.reply <- outcome[[]contest.Entry]{entries, nil}
			case listRulesMsg:
				msg.reply <- outcome[[]contest.Rule]{append([]contest.Rule(nil), s.rules...), nil}
			case saveRuleMsg:
				r, err := s.saveRule(msg.actorID, msg.rule)
				msg.reply <- outcome[contest.Rule]{r, err}
			case deleteRuleMsg:
				err := s.deleteRule(msg.actorID, msg.id)
				msg.reply <- outcome[struct{}]{struct{}{}, err}
			case listInfosMsg:
				msg.reply <- outcome[[]contest.Info]{append([]contest.Info(nil), s.infos...), nil}
			case saveInfoMsg:
				i, err := s.saveInfo(msg.actorID, msg.info)
				msg.reply <- outcome[contest.Info]{i, err}
			case deleteInfoMsg:
				err := s.deleteInfo(msg.actorID, msg.id)
				msg.reply <- outcome[struct{}]{struct{}{}, err}
			case listAdsMsg:
				msg.reply <- outcome[[]contest.Ad]{append([]contest.Ad(nil), s.ads...), nil}
			case saveAdMsg:
				a, err := s.saveAd(msg.actorID, msg.ad)
				msg.reply <- outcome[contest.Ad]{a, err}
			case deleteAdMsg:
				err := s.deleteAd(msg.actorID, msg.id)
				msg.reply <- outcome[struct{}]{struct{}{}, err}
			case shutdownMsg:
				s.cancel()
				return
			}
		}
	}
}

// ask sends m to the store goroutine and waits for its reply on ch.
func ask[T any](ctx context.Context, s *Store, m msg, ch chan outcome[T]) (T, error) {
	var zero T
	select {
	case s.inbox <- m:
	case <-ctx.Done():
		return zero, ctx.Err()
	case <-s.ctx.Done():
		return zero, s.ctx.Err()
	}
	select {
	case out := <-ch:
		return out.val, out.err
	case <-ctx.Done():
		return zero, ctx.Err()
	}
}

func (s *Store) Register(ctx context.Context, name, email, gender, phone string, country contest.Country) (contest.User, error) {
	ch := make(chan outcome[contest.User], 1)
	return ask(ctx, s, registerMsg{name: name, email: email, gender: gender, phone: phone, country: country, reply: ch}, ch)
}

func (s *Store) Login(ctx context.Context, email string) (contest.User, error) {
	ch := make(chan outcome[contest.User], 1)
	return ask(ctx, s, loginMsg{email: email, reply: ch}, ch)
}

func (s *Store) GetUser(ctx context.Context, id string) (contest.User, error) {
	ch := make(chan outcome[contest.User], 1)
	return ask(ctx, s, getUserMsg{id: id, reply: ch}, ch)
}

func (s *Store) ListUsers(ctx context.Context) ([]contest.User, error) {
	ch := make(chan outcome[[]contest.User], 1)
	return ask(ctx, s, listUsersMsg{reply: ch}, ch)
}

func (s *Store) ListMatches(ctx context.Context) ([]contest.Match, error) {
	ch := make(chan outcome[[]contest.Match], 1)
	return ask(ctx, s, listMatchesMsg{reply: ch}, ch)
}

func (s *Store) CreateMatch(ctx context.Context, actorID string, m contest.Match) (contest.Match, error) {
	ch := make(chan outcome[contest.Match], 1)
	return ask(ctx, s, createMatchMsg{actorID: actorID, match: m, reply: ch}, ch)
}

func (s *Store) UpdateMatch(ctx context.Context, actorID string, m contest.Match) (contest.Match, error) {
	ch := make(chan outcome[contest.Match], 1)
	return ask(ctx, s, updateMatchMsg{actorID: actorID, match: m, reply: ch}, ch)
}

func (s *Store) DeleteMatch(ctx context.Context, actorID, matchID string) error {
	ch := make(chan outcome[struct{}], 1)
	_, err := ask(ctx, s, deleteMatchMsg{actorID: actorID, matchID: matchID, reply: ch}, ch)
	return err
}

func (s *Store) RecordResult(ctx context.Context, actorID, matchID string, home, away int) (contest.Match, error) {
	ch := make(chan outcome[contest.Match], 1)
	return ask(ctx, s, recordResultMsg{actorID: actorID, matchID: matchID, home: home, away: away, reply: ch}, ch)
}

func (s *Store) SubmitPredictions(ctx context.Context, userID string, entries []PredictionEntry) error {
	ch := make(chan outcome[struct{}], 1)
	_, err := ask(ctx, s, submitPredictionsMsg{userID: userID, entries: entries, reply: ch}, ch)
	return err
}

// GetPrediction reports the user's current pick for a match, if any.
func (s *Store) GetPrediction(ctx context.Context, userID, matchID string) (contest.Symbol, bool, error) {
	ch := make(chan outcome[predLookup], 1)
	lookup, err := ask(ctx, s, getPredictionMsg{userID: userID, matchID: matchID, reply: ch}, ch)
	return lookup.pick, lookup.found, err
}

func (s *Store) ListPredictions(ctx context.Context, userID string) ([]contest.Prediction, error) {
	ch := make(chan outcome[[]contest.Prediction], 1)
	return ask(ctx, s, listPredictionsMsg{userID: userID, reply: ch}, ch)
}

func (s *Store) Standings(ctx context.Context) ([]contest.Entry, error) {
	ch := make(chan outcome[[]contest.Entry], 1)
	return ask(ctx, s, standingsMsg{reply: ch}, ch)
}

func (s *Store) ListRules(ctx context.Context) ([]contest.Rule, error) {
	ch := make(chan outcome[[]contest.Rule], 1)
	return ask(ctx, s, listRulesMsg{reply: ch}, ch)
}

func (s *Store) SaveRule(ctx context.Context, actorID string, r contest.Rule) (contest.Rule, error) {
	ch := make(chan outcome[contest.Rule], 1)
	return ask(ctx, s, saveRuleMsg{actorID: actorID, rule: r, reply: ch}, ch)
}

func (s *Store) DeleteRule(ctx context.Context, actorID, id string) error {
	ch := make(chan outcome[struct{}], 1)
	_, err := ask(ctx, s, deleteRuleMsg{actorID: actorID, id: id, reply: ch}, ch)
	return err
}

func (s *Store) ListInfos(ctx context.Context) ([]contest.Info, error) {
	ch := make(chan outcome[[]contest.Info], 1)
	return ask(ctx, s, listInfosMsg{reply: ch}, ch)
}

func (s *Store) SaveInfo(ctx context.Context, actorID string, i contest.Info) (contest.Info, error) {
	ch := make(chan outcome[contest.Info], 1)
	return ask(ctx, s, saveInfoMsg{actorID: actorID, info: i, reply: ch}, ch)
}

func (s *Store) DeleteInfo(ctx context.Context, actorID, id string) error {
	ch := make(chan outcome[struct{}], 1)
	_, err := ask(ctx, s, deleteInfoMsg{actorID: actorID, id: id, reply: ch}, ch)
	return err
}

func (s *Store) ListAds(ctx context.Context) ([]contest.Ad, error) {
	ch := make(chan outcome[[]contest.Ad], 1)
	return ask(ctx, s, listAdsMsg{reply: ch}, ch)
}

func (s *Store) SaveAd(ctx context.Context, actorID string, a contest.Ad) (contest.Ad, error) {
	ch := make(chan outcome[contest.Ad], 1)
	return ask(ctx, s, saveAdMsg{actorID: actorID, ad: a, reply: ch}, ch)
}

func (s *Store) DeleteAd(ctx context.Context, actorID, id string) error {
	ch := make(chan outcome[struct{}], 1)
	_, err := ask(ctx, s, deleteAdMsg{actorID: actorID, id: id, reply: ch}, ch)
	return err
}

// Shutdown stops the store goroutine. Pending messages are dropped.
func (s *Store) Shutdown() {
	select {
	case s.inbox <- shutdownMsg{}:
	case <-s.ctx.Done():
	}
}
