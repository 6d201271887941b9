package store

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/pronoleague/prono-backend/internal/contest"
)

func (s *Store) register(m registerMsg) (contest.User, error) {
	if strings.TrimSpace(m.name) == "" {
		return contest.User{}, fmt.Errorf("%w: name", contest.ErrMissingField)
	}
	if strings.TrimSpace(m.email) == "" {
		return contest.User{}, fmt.Errorf("%w: email", contest.ErrMissingField)
	}
	for _, u := range s.users {
		if strings.EqualFold(u.Email, m.email) {
			return contest.User{}, contest.ErrDuplicateEmail
		}
	}

	s.nextSeq++
	u := contest.User{
		ID:      uuid.NewString(),
		Seq:     s.nextSeq,
		Name:    m.name,
		Email:   m.email,
		Gender:  m.gender,
		Phone:   m.phone,
		Country: m.country,
	}
	u.ProfilePictureURL = "https://i.pravatar.cc/150?u=" + u.ID
	s.users = append(s.users, u)
	return u, nil
}

func (s *Store) login(email string) (contest.User, error) {
	if strings.TrimSpace(email) == "" {
		return contest.User{}, fmt.Errorf("%w: email", contest.ErrMissingField)
	}
	for _, u := range s.users {
		if strings.EqualFold(u.Email, email) {
			return u, nil
		}
	}
	return contest.User{}, contest.ErrUnknownUser
}

func (s *Store) userByID(id string) (contest.User, error) {
	for _, u := range s.users {
		if u.ID == id {
			return u, nil
		}
	}
	return contest.User{}, contest.ErrUnknownUser
}

// requireAdmin resolves actorID and rejects non-admin callers. Every catalog
// and content mutation goes through this; regular users only ever write their
// own predictions.
func (s *Store) requireAdmin(actorID string) error {
	u, err := s.userByID(actorID)
	if err != nil {
		return err
	}
	if !u.IsAdmin {
		return contest.ErrForbidden
	}
	return nil
}

func (s *Store) matchIndex(id string) (int, error) {
	for i := range s.matches {
		if s.matches[i].ID == id {
			return i, nil
		}
	}
	return 0, contest.ErrMatchNotFound
}

func (s *Store) betNumberTaken(n int, excludeID string) bool {
	for _, m := range s.matches {
		if m.BetNumber == n && m.ID != excludeID {
			return true
		}
	}
	return false
}

func (s *Store) createMatch(actorID string, m contest.Match) (contest.Match, error) {
	if err := s.requireAdmin(actorID); err != nil {
		return contest.Match{}, err
	}
	if m.HomeTeam.Name == "" || m.AwayTeam.Name == "" {
		return contest.Match{}, fmt.Errorf("%w: team name", contest.ErrMissingField)
	}
	if m.BetNumber == 0 {
		m.BetNumber = s.nextBetNumber()
	}
	if s.betNumberTaken(m.BetNumber, "") {
		return contest.Match{}, contest.ErrDuplicateBetNumber
	}
	m.ID = uuid.NewString()
	s.matches = append(s.matches, m)
	return m, nil
}

func (s *Store) nextBetNumber() int {
	highest := 0
	for _, m := range s.matches {
		if m.BetNumber > highest {
			highest = m.BetNumber
		}
	}
	return highest + 1
}

func (s *Store) updateMatch(actorID string, m contest.Match) (contest.Match, error) {
	if err := s.requireAdmin(actorID); err != nil {
		return contest.Match{}, err
	}
	i, err := s.matchIndex(m.ID)
	if err != nil {
		return contest.Match{}, err
	}
	if m.BetNumber != 0 && s.betNumberTaken(m.BetNumber, m.ID) {
		return contest.Match{}, contest.ErrDuplicateBetNumber
	}
	if m.BetNumber == 0 {
		m.BetNumber = s.matches[i].BetNumber
	}
	// settlement is one-directional: an update without a result keeps the
	// recorded one, it never clears it
	if m.Result == nil {
		m.Result = s.matches[i].Result
	}
	s.matches[i] = m
	return m, nil
}

func (s *Store) deleteMatch(actorID, matchID string) error {
	if err := s.requireAdmin(actorID); err != nil {
		return err
	}
	i, err := s.matchIndex(matchID)
	if err != nil {
		return err
	}
	s.matches = append(s.matches[:i], s.matches[i+1:]...)
	for k := range s.predictions {
		if k.matchID == matchID {
			delete(s.predictions, k)
		}
	}
	return nil
}

func (s *Store) recordResult(actorID, matchID string, home, away int) (contest.Match, error) {
	if err := s.requireAdmin(actorID); err != nil {
		return contest.Match{}, err
	}
	i, err := s.matchIndex(matchID)
	if err != nil {
		return contest.Match{}, err
	}
	if home < 0 || away < 0 {
		return contest.Match{}, fmt.Errorf("%w: score", contest.ErrMissingField)
	}

	// capture the rank baseline before this settlement so GetStandings can
	// report movement caused by it
	s.prevRanks = contest.RankMap(contest.ComputeStandings(s.users, s.matches, s.predictionList(), nil))

	s.matches[i].Result = &contest.Result{HomeScore: home, AwayScore: away}
	return s.matches[i], nil
}

func (s *Store) submitPredictions(userID string, entries []PredictionEntry) error {
	u, err := s.userByID(userID)
	if err != nil {
		return err
	}

	// validate the whole batch before touching anything: one bad entry
	// rejects all of them
	picks := make(map[string]contest.Symbol, len(entries))
	for _, e := range entries {
		pick, err := contest.ParseSymbol(e.Pick)
		if err != nil {
			return err
		}
		i, err := s.matchIndex(e.MatchID)
		if err != nil {
			return err
		}
		if s.matches[i].Settled() {
			return fmt.Errorf("%w: bet %d", contest.ErrMatchAlreadySettled, s.matches[i].BetNumber)
		}
		picks[e.MatchID] = pick
	}

	for matchID, pick := range picks {
		s.predictions[predKey{u.ID, matchID}] = pick
	}
	return nil
}

func (s *Store) listPredictions(userID string) ([]contest.Prediction, error) {
	if _, err := s.userByID(userID); err != nil {
		return nil, err
	}
	// walk the catalog so output follows match order
	out := make([]contest.Prediction, 0)
	for _, m := range s.matches {
		if pick, ok := s.predictions[predKey{userID, m.ID}]; ok {
			out = append(out, contest.Prediction{UserID: userID, MatchID: m.ID, Pick: pick})
		}
	}
	return out, nil
}

func (s *Store) predictionList() []contest.Prediction {
	out := make([]contest.Prediction, 0, len(s.predictions))
	for k, pick := range s.predictions {
		out = append(out, contest.Prediction{UserID: k.userID, MatchID: k.matchID, Pick: pick})
	}
	return out
}

func (s *Store) saveRule(actorID string, r contest.Rule) (contest.Rule, error) {
	if err := s.requireAdmin(actorID); err != nil {
		return contest.Rule{}, err
	}
	if strings.TrimSpace(r.Content) == "" {
		return contest.Rule{}, fmt.Errorf("%w: content", contest.ErrMissingField)
	}
	if r.ID == "" {
		r.ID = uuid.NewString()
		s.rules = append(s.rules, r)
		return r, nil
	}
	for i := range s.rules {
		if s.rules[i].ID == r.ID {
			s.rules[i] = r
			return r, nil
		}
	}
	return contest.Rule{}, contest.ErrNotFound
}

func (s *Store) deleteRule(actorID, id string) error {
	if err := s.requireAdmin(actorID); err != nil {
		return err
	}
	for i := range s.rules {
		if s.rules[i].ID == id {
			s.rules = append(s.rules[:i], s.rules[i+1:]...)
			return nil
		}
	}
	return contest.ErrNotFound
}

func (s *Store) saveInfo(actorID string, in contest.Info) (contest.Info, error) {
	if err := s.requireAdmin(actorID); err != nil {
		return contest.Info{}, err
	}
	if strings.TrimSpace(in.Text) == "" {
		return contest.Info{}, fmt.Errorf("%w: text", contest.ErrMissingField)
	}
	if in.ID == "" {
		in.ID = uuid.NewString()
		s.infos = append(s.infos, in)
		return in, nil
	}
	for i := range s.infos {
		if s.infos[i].ID == in.ID {
			s.infos[i] = in
			return in, nil
		}
	}
	return contest.Info{}, contest.ErrNotFound
}

func (s *Store) deleteInfo(actorID, id string) error {
	if err := s.requireAdmin(actorID); err != nil {
		return err
	}
	for i := range s.infos {
		if s.infos[i].ID == id {
			s.infos = append(s.infos[:i], s.infos[i+1:]...)
			return nil
		}
	}
	return contest.ErrNotFound
}

func (s *Store) saveAd(actorID string, a contest.Ad) (contest.Ad, error) {
	if err := s.requireAdmin(actorID); err != nil {
		return contest.Ad{}, err
	}
	if strings.TrimSpace(a.Name) == "" {
		return contest.Ad{}, fmt.Errorf("%w: name", contest.ErrMissingField)
	}
	if a.ID == "" {
		a.ID = uuid.NewString()
		s.ads = append(s.ads, a)
		return a, nil
	}
	for i := range s.ads {
		if s.ads[i].ID == a.ID {
			s.ads[i] = a
			return a, nil
		}
	}
	return contest.Ad{}, contest.ErrNotFound
}

func (s *Store) deleteAd(actorID, id string) error {
	if err := s.requireAdmin(actorID); err != nil {
		return err
	}
	for i := range s.ads {
		if s.ads[i].ID == id {
			s.ads = append(s.ads[:i], s.ads[i+1:]...)
			return nil
		}
	}
	return contest.ErrNotFound
}
