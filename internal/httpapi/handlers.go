package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/pronoleague/prono-backend/internal/chat"
	"github.com/pronoleague/prono-backend/internal/contest"
	"github.com/pronoleague/prono-backend/internal/store"
	"github.com/pronoleague/prono-backend/pkg/types"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, types.ErrorResponse{Error: msg})
}

func respondErr(w http.ResponseWriter, err error) {
	writeError(w, statusFor(err), err.Error())
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, contest.ErrMatchNotFound),
		errors.Is(err, contest.ErrNotFound),
		errors.Is(err, contest.ErrUnknownUser):
		return http.StatusNotFound
	case errors.Is(err, contest.ErrMatchAlreadySettled),
		errors.Is(err, contest.ErrDuplicateBetNumber),
		errors.Is(err, contest.ErrDuplicateEmail):
		return http.StatusConflict
	case errors.Is(err, contest.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, contest.ErrInvalidSymbol),
		errors.Is(err, contest.ErrMissingField):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "bad json")
		return false
	}
	return true
}

func Healthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func Register(st *store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req types.RegisterRequest
		if !decode(w, r, &req) {
			return
		}
		u, err := st.Register(r.Context(), req.Name, req.Email, req.Gender, req.Phone,
			contest.Country{Name: req.CountryName, Code: req.CountryCode})
		if err != nil {
			respondErr(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, types.NewUserResponse(u))
	}
}

func Login(st *store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req types.LoginRequest
		if !decode(w, r, &req) {
			return
		}
		u, err := st.Login(r.Context(), req.Email)
		if errors.Is(err, contest.ErrUnknownUser) {
			writeError(w, http.StatusUnauthorized, "unknown email")
			return
		}
		if err != nil {
			respondErr(w, err)
			return
		}
		writeJSON(w, http.StatusOK, types.NewUserResponse(u))
	}
}

func ListMatches(st *store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		matches, err := st.ListMatches(r.Context())
		if err != nil {
			respondErr(w, err)
			return
		}
		out := make([]types.MatchResponse, 0, len(matches))
		for _, m := range matches {
			out = append(out, types.NewMatchResponse(m))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func Standings(st *store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		entries, err := st.Standings(r.Context())
		if err != nil {
			respondErr(w, err)
			return
		}
		out := make([]types.StandingsEntry, 0, len(entries))
		for _, e := range entries {
			out = append(out, types.NewStandingsEntry(e))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func SubmitPredictions(st *store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req types.SubmitPredictionsRequest
		if !decode(w, r, &req) {
			return
		}
		entries := make([]store.PredictionEntry, 0, len(req.Predictions))
		for _, p := range req.Predictions {
			entries = append(entries, store.PredictionEntry{MatchID: p.MatchID, Pick: p.Pick})
		}
		if err := st.SubmitPredictions(r.Context(), userFrom(r.Context()).ID, entries); err != nil {
			respondErr(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func MyPredictions(st *store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writePredictions(w, r, st, userFrom(r.Context()).ID)
	}
}

func UserPredictions(st *store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writePredictions(w, r, st, chi.URLParam(r, "userID"))
	}
}

func writePredictions(w http.ResponseWriter, r *http.Request, st *store.Store, userID string) {
	preds, err := st.ListPredictions(r.Context(), userID)
	if err != nil {
		respondErr(w, err)
		return
	}
	out := make([]types.PredictionResponse, 0, len(preds))
	for _, p := range preds {
		out = append(out, types.PredictionResponse{UserID: p.UserID, MatchID: p.MatchID, Pick: string(p.Pick)})
	}
	writeJSON(w, http.StatusOK, out)
}

func ListUsers(st *store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		users, err := st.ListUsers(r.Context())
		if err != nil {
			respondErr(w, err)
			return
		}
		out := make([]types.UserResponse, 0, len(users))
		for _, u := range users {
			out = append(out, types.NewUserResponse(u))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func CreateMatch(st *store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req types.MatchPayload
		if !decode(w, r, &req) {
			return
		}
		m, err := st.CreateMatch(r.Context(), userFrom(r.Context()).ID, req.ToDomain())
		if err != nil {
			respondErr(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, types.NewMatchResponse(m))
	}
}

func UpdateMatch(st *store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req types.MatchPayload
		if !decode(w, r, &req) {
			return
		}
		m := req.ToDomain()
		m.ID = chi.URLParam(r, "matchID")
		updated, err := st.UpdateMatch(r.Context(), userFrom(r.Context()).ID, m)
		if err != nil {
			respondErr(w, err)
			return
		}
		writeJSON(w, http.StatusOK, types.NewMatchResponse(updated))
	}
}

func DeleteMatch(st *store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := st.DeleteMatch(r.Context(), userFrom(r.Context()).ID, chi.URLParam(r, "matchID")); err != nil {
			respondErr(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func RecordResult(st *store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req types.ResultPayload
		if !decode(w, r, &req) {
			return
		}
		m, err := st.RecordResult(r.Context(), userFrom(r.Context()).ID, chi.URLParam(r, "matchID"), req.HomeScore, req.AwayScore)
		if err != nil {
			respondErr(w, err)
			return
		}
		writeJSON(w, http.StatusOK, types.NewMatchResponse(m))
	}
}

func ListRules(st *store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rules, err := st.ListRules(r.Context())
		if err != nil {
			respondErr(w, err)
			return
		}
		out := make([]types.RulePayload, 0, len(rules))
		for _, rule := range rules {
			out = append(out, types.RulePayload{ID: rule.ID, Content: rule.Content})
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func SaveRule(st *store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req types.RulePayload
		if !decode(w, r, &req) {
			return
		}
		if id := chi.URLParam(r, "id"); id != "" {
			req.ID = id
		}
		rule, err := st.SaveRule(r.Context(), userFrom(r.Context()).ID, contest.Rule{ID: req.ID, Content: req.Content})
		if err != nil {
			respondErr(w, err)
			return
		}
		writeJSON(w, http.StatusOK, types.RulePayload{ID: rule.ID, Content: rule.Content})
	}
}

func DeleteRule(st *store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := st.DeleteRule(r.Context(), userFrom(r.Context()).ID, chi.URLParam(r, "id")); err != nil {
			respondErr(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func ListInfos(st *store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		infos, err := st.ListInfos(r.Context())
		if err != nil {
			respondErr(w, err)
			return
		}
		out := make([]types.InfoPayload, 0, len(infos))
		for _, in := range infos {
			out = append(out, types.InfoPayload{ID: in.ID, Text: in.Text, ImageURL: in.ImageURL})
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func SaveInfo(st *store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req types.InfoPayload
		if !decode(w, r, &req) {
			return
		}
		if id := chi.URLParam(r, "id"); id != "" {
			req.ID = id
		}
		in, err := st.SaveInfo(r.Context(), userFrom(r.Context()).ID, contest.Info{ID: req.ID, Text: req.Text, ImageURL: req.ImageURL})
		if err != nil {
			respondErr(w, err)
			return
		}
		writeJSON(w, http.StatusOK, types.InfoPayload{ID: in.ID, Text: in.Text, ImageURL: in.ImageURL})
	}
}

func DeleteInfo(st *store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := st.DeleteInfo(r.Context(), userFrom(r.Context()).ID, chi.URLParam(r, "id")); err != nil {
			respondErr(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func ListAds(st *store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ads, err := st.ListAds(r.Context())
		if err != nil {
			respondErr(w, err)
			return
		}
		out := make([]types.AdPayload, 0, len(ads))
		for _, a := range ads {
			out = append(out, types.AdPayload{ID: a.ID, ImageURL: a.ImageURL, Name: a.Name, Price: a.Price, URL: a.URL})
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func SaveAd(st *store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req types.AdPayload
		if !decode(w, r, &req) {
			return
		}
		if id := chi.URLParam(r, "id"); id != "" {
			req.ID = id
		}
		a, err := st.SaveAd(r.Context(), userFrom(r.Context()).ID,
			contest.Ad{ID: req.ID, ImageURL: req.ImageURL, Name: req.Name, Price: req.Price, URL: req.URL})
		if err != nil {
			respondErr(w, err)
			return
		}
		writeJSON(w, http.StatusOK, types.AdPayload{ID: a.ID, ImageURL: a.ImageURL, Name: a.Name, Price: a.Price, URL: a.URL})
	}
}

func DeleteAd(st *store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := st.DeleteAd(r.Context(), userFrom(r.Context()).ID, chi.URLParam(r, "id")); err != nil {
			respondErr(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// DeleteForumMessage lets the admin moderate the forum. Deleting from a room
// that was never opened is a no-op.
func DeleteForumMessage(ch *chat.Hub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		reply := make(chan *chat.Room, 1)
		ch.Inbox() <- chat.GetRoom{Name: chat.ForumRoom, Reply: reply}
		if room := <-reply; room != nil {
			room.Inbox() <- chat.Delete{MessageID: chi.URLParam(r, "id")}
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// ReplyToContact posts a real admin reply into a user's contact thread.
func ReplyToContact(ch *chat.Hub, contactOpts chat.Options) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Message string `json:"message"`
		}
		if !decode(w, r, &req) {
			return
		}
		if req.Message == "" {
			writeError(w, http.StatusBadRequest, "empty message")
			return
		}

		admin := userFrom(r.Context())
		reply := make(chan *chat.Room, 1)
		ch.Inbox() <- chat.EnsureRoom{Name: chat.ContactRoom(chi.URLParam(r, "userID")), Opts: contactOpts, Reply: reply}
		room := <-reply
		if room == nil {
			writeError(w, http.StatusInternalServerError, "room unavailable")
			return
		}
		room.Inbox() <- chat.Post{Msg: chat.Message{
			ID:        uuid.NewString(),
			UserID:    admin.ID,
			UserName:  admin.Name,
			Body:      req.Message,
			SentAt:    time.Now(),
			FromAdmin: true,
		}}
		w.WriteHeader(http.StatusAccepted)
	}
}
