package store

import (
	"context"
	"errors"
	"testing"

	"github.com/pronoleague/prono-backend/internal/contest"
)

func testSeed() Seed {
	return Seed{
		Users: []contest.User{
			{ID: "admin", Seq: 1, Name: "Admin", Email: "admin@test", IsAdmin: true},
			{ID: "u1", Seq: 2, Name: "Awa", Email: "awa@test"},
			{ID: "u2", Seq: 3, Name: "Binta", Email: "binta@test"},
		},
		Matches: []contest.Match{
			{ID: "m1", BetNumber: 1},
			{ID: "m2", BetNumber: 2},
			{ID: "m3", BetNumber: 3, Result: &contest.Result{HomeScore: 1, AwayScore: 0}},
		},
	}
}

func newTestStore(t *testing.T) (*Store, context.Context) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	return New(ctx, testSeed()), ctx
}

func picks(t *testing.T, s *Store, ctx context.Context, userID string) map[string]contest.Symbol {
	t.Helper()
	preds, err := s.ListPredictions(ctx, userID)
	if err != nil {
		t.Fatalf("ListPredictions: %v", err)
	}
	out := make(map[string]contest.Symbol, len(preds))
	for _, p := range preds {
		out[p.MatchID] = p.Pick
	}
	return out
}

func TestSubmitPredictions_LastWriteWins(t *testing.T) {
	s, ctx := newTestStore(t)

	if err := s.SubmitPredictions(ctx, "u1", []PredictionEntry{{MatchID: "m1", Pick: "1"}}); err != nil {
		t.Fatalf("first submit: %v", err)
	}
	if err := s.SubmitPredictions(ctx, "u1", []PredictionEntry{{MatchID: "m1", Pick: "X2"}}); err != nil {
		t.Fatalf("second submit: %v", err)
	}

	got := picks(t, s, ctx, "u1")
	if got["m1"] != contest.SymbolDrawOrAway {
		t.Fatalf("want the second pick to win, got %q", got["m1"])
	}

	pick, found, err := s.GetPrediction(ctx, "u1", "m1")
	if err != nil || !found || pick != contest.SymbolDrawOrAway {
		t.Fatalf("GetPrediction: got (%q, %v, %v)", pick, found, err)
	}
	if _, found, _ := s.GetPrediction(ctx, "u1", "m2"); found {
		t.Fatalf("GetPrediction on a match never predicted must report absent")
	}
}

func TestSubmitPredictions_SettledMatchRejected(t *testing.T) {
	s, ctx := newTestStore(t)

	err := s.SubmitPredictions(ctx, "u1", []PredictionEntry{{MatchID: "m3", Pick: "1"}})
	if !errors.Is(err, contest.ErrMatchAlreadySettled) {
		t.Fatalf("want ErrMatchAlreadySettled, got %v", err)
	}
	if got := picks(t, s, ctx, "u1"); len(got) != 0 {
		t.Fatalf("rejected submit must not store anything, got %v", got)
	}
}

func TestSubmitPredictions_BatchIsAtomic(t *testing.T) {
	s, ctx := newTestStore(t)

	cases := []struct {
		name    string
		entries []PredictionEntry
		wantErr error
	}{
		{
			name: "settled entry poisons the batch",
			entries: []PredictionEntry{
				{MatchID: "m1", Pick: "1"},
				{MatchID: "m3", Pick: "X"},
			},
			wantErr: contest.ErrMatchAlreadySettled,
		},
		{
			name: "unknown match poisons the batch",
			entries: []PredictionEntry{
				{MatchID: "m1", Pick: "1"},
				{MatchID: "nope", Pick: "X"},
			},
			wantErr: contest.ErrMatchNotFound,
		},
		{
			name: "bad symbol poisons the batch",
			entries: []PredictionEntry{
				{MatchID: "m1", Pick: "1"},
				{MatchID: "m2", Pick: "banana"},
			},
			wantErr: contest.ErrInvalidSymbol,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := s.SubmitPredictions(ctx, "u1", tc.entries)
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("want %v, got %v", tc.wantErr, err)
			}
			if got := picks(t, s, ctx, "u1"); len(got) != 0 {
				t.Fatalf("batch must apply nothing on failure, got %v", got)
			}
		})
	}
}

func TestSubmitPredictions_UnknownUser(t *testing.T) {
	s, ctx := newTestStore(t)

	err := s.SubmitPredictions(ctx, "ghost", []PredictionEntry{{MatchID: "m1", Pick: "1"}})
	if !errors.Is(err, contest.ErrUnknownUser) {
		t.Fatalf("want ErrUnknownUser, got %v", err)
	}
}

func TestRecordResult_SettlesAndFreezesPredictions(t *testing.T) {
	s, ctx := newTestStore(t)

	if err := s.SubmitPredictions(ctx, "u1", []PredictionEntry{{MatchID: "m1", Pick: "1"}}); err != nil {
		t.Fatalf("submit: %v", err)
	}

	m, err := s.RecordResult(ctx, "admin", "m1", 2, 1)
	if err != nil {
		t.Fatalf("RecordResult: %v", err)
	}
	if !m.Settled() || m.Result.HomeScore != 2 || m.Result.AwayScore != 1 {
		t.Fatalf("match not settled as 2-1: %+v", m)
	}

	err = s.SubmitPredictions(ctx, "u1", []PredictionEntry{{MatchID: "m1", Pick: "2"}})
	if !errors.Is(err, contest.ErrMatchAlreadySettled) {
		t.Fatalf("post-settlement edit: want ErrMatchAlreadySettled, got %v", err)
	}
	if got := picks(t, s, ctx, "u1"); got["m1"] != contest.SymbolHome {
		t.Fatalf("pick must survive the rejected edit, got %q", got["m1"])
	}
}

func TestRecordResult_AdminOnly(t *testing.T) {
	s, ctx := newTestStore(t)

	if _, err := s.RecordResult(ctx, "u1", "m1", 1, 0); !errors.Is(err, contest.ErrForbidden) {
		t.Fatalf("want ErrForbidden, got %v", err)
	}
	if _, err := s.RecordResult(ctx, "admin", "nope", 1, 0); !errors.Is(err, contest.ErrMatchNotFound) {
		t.Fatalf("want ErrMatchNotFound, got %v", err)
	}
}

func TestStandings_PointsAndRankMovement(t *testing.T) {
	s, ctx := newTestStore(t)

	if err := s.SubmitPredictions(ctx, "u1", []PredictionEntry{{MatchID: "m1", Pick: "X"}}); err != nil {
		t.Fatalf("submit u1: %v", err)
	}
	if err := s.SubmitPredictions(ctx, "u2", []PredictionEntry{{MatchID: "m1", Pick: "1X"}}); err != nil {
		t.Fatalf("submit u2: %v", err)
	}

	if _, err := s.RecordResult(ctx, "admin", "m1", 1, 1); err != nil {
		t.Fatalf("RecordResult: %v", err)
	}

	entries, err := s.Standings(ctx)
	if err != nil {
		t.Fatalf("Standings: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("admin must not compete, got %d entries", len(entries))
	}

	// u1: X on 1-1 -> 2 points, rank 1 (was 1 on the pre-settlement baseline)
	// u2: 1X on 1-1 -> 1 point, rank 2
	if entries[0].User.ID != "u1" || entries[0].Points != 2 || entries[0].Change != contest.RankSame {
		t.Fatalf("unexpected leader: %+v", entries[0])
	}
	if entries[1].User.ID != "u2" || entries[1].Points != 1 || entries[1].Change != contest.RankSame {
		t.Fatalf("unexpected runner-up: %+v", entries[1])
	}

	again, err := s.Standings(ctx)
	if err != nil {
		t.Fatalf("Standings again: %v", err)
	}
	if len(again) != len(entries) || again[0] != entries[0] || again[1] != entries[1] {
		t.Fatalf("standings must be stable across calls with unchanged input")
	}
}

func TestCreateMatch_Validation(t *testing.T) {
	s, ctx := newTestStore(t)

	fixture := contest.Match{
		HomeTeam: contest.Team{Name: "Mali"},
		AwayTeam: contest.Team{Name: "Tunisie"},
	}

	if _, err := s.CreateMatch(ctx, "u1", fixture); !errors.Is(err, contest.ErrForbidden) {
		t.Fatalf("non-admin create: want ErrForbidden, got %v", err)
	}

	created, err := s.CreateMatch(ctx, "admin", fixture)
	if err != nil {
		t.Fatalf("CreateMatch: %v", err)
	}
	if created.ID == "" || created.BetNumber != 4 {
		t.Fatalf("want generated id and next bet number 4, got %+v", created)
	}

	dup := fixture
	dup.BetNumber = 1
	if _, err := s.CreateMatch(ctx, "admin", dup); !errors.Is(err, contest.ErrDuplicateBetNumber) {
		t.Fatalf("want ErrDuplicateBetNumber, got %v", err)
	}
}

func TestUpdateMatch_NeverClearsResult(t *testing.T) {
	s, ctx := newTestStore(t)

	update := contest.Match{
		ID:       "m3",
		HomeTeam: contest.Team{Name: "Ghana"},
		AwayTeam: contest.Team{Name: "Égypte"},
	}
	m, err := s.UpdateMatch(ctx, "admin", update)
	if err != nil {
		t.Fatalf("UpdateMatch: %v", err)
	}
	if !m.Settled() {
		t.Fatalf("update without a result must keep the recorded one")
	}
}

func TestDeleteMatch_DropsItsPredictions(t *testing.T) {
	s, ctx := newTestStore(t)

	if err := s.SubmitPredictions(ctx, "u1", []PredictionEntry{{MatchID: "m1", Pick: "2"}}); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if err := s.DeleteMatch(ctx, "admin", "m1"); err != nil {
		t.Fatalf("DeleteMatch: %v", err)
	}
	if got := picks(t, s, ctx, "u1"); len(got) != 0 {
		t.Fatalf("predictions for a deleted match must go with it, got %v", got)
	}
}

func TestRegisterAndLogin(t *testing.T) {
	s, ctx := newTestStore(t)

	u, err := s.Register(ctx, "Cheikh Ndiaye", "cheikh@test", "Male", "+221", contest.Country{Name: "Sénégal", Code: "SN"})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if u.ID == "" || u.Seq != 4 || u.IsAdmin {
		t.Fatalf("unexpected new user: %+v", u)
	}

	if _, err := s.Register(ctx, "Other", "CHEIKH@test", "", "", contest.Country{}); !errors.Is(err, contest.ErrDuplicateEmail) {
		t.Fatalf("want ErrDuplicateEmail, got %v", err)
	}
	if _, err := s.Register(ctx, "", "x@test", "", "", contest.Country{}); !errors.Is(err, contest.ErrMissingField) {
		t.Fatalf("want ErrMissingField, got %v", err)
	}

	back, err := s.Login(ctx, "cheikh@test")
	if err != nil || back.ID != u.ID {
		t.Fatalf("Login: got (%+v, %v)", back, err)
	}
	if _, err := s.Login(ctx, "ghost@test"); !errors.Is(err, contest.ErrUnknownUser) {
		t.Fatalf("want ErrUnknownUser, got %v", err)
	}
}
