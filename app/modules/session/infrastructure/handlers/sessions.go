package sessionhandlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	scoringdomain "github.com/Black-And-White-Club/belote-bot/app/modules/scoring/domain"
	sessionservice "github.com/Black-And-White-Club/belote-bot/app/modules/session/application"
)

// AddRoundRequest carries both halves of a round.
type AddRoundRequest struct {
	TeamA scoringdomain.RoundInput `json:"team_a"`
	TeamB scoringdomain.RoundInput `json:"team_b"`
}

// MisdealRequest names the team credited with the misdeal.
type MisdealRequest struct {
	Beneficiary string `json:"beneficiary"`
}

func (h *SessionHandlers) HandleCreateSession(w http.ResponseWriter, r *http.Request) {
	var req sessionservice.CreateSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	snapshot, err := h.service.CreateSession(r.Context(), req)
	if err != nil {
		h.writeServiceError(w, r, "CreateSession", err)
		return
	}
	h.respond(w, r, http.StatusCreated, snapshot)
}

func (h *SessionHandlers) HandleGetSession(w http.ResponseWriter, r *http.Request) {
	id, ok := sessionID(w, r)
	if !ok {
		return
	}

	snapshot, err := h.service.GetSession(r.Context(), id)
	if err != nil {
		h.writeServiceError(w, r, "GetSession", err)
		return
	}
	h.respond(w, r, http.StatusOK, snapshot)
}

func (h *SessionHandlers) HandleAddRound(w http.ResponseWriter, r *http.Request) {
	id, ok := sessionID(w, r)
	if !ok {
		return
	}

	var req AddRoundRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	result, err := h.service.AddRound(r.Context(), id, req.TeamA, req.TeamB)
	if err != nil {
		h.writeServiceError(w, r, "AddRound", err)
		return
	}
	h.respond(w, r, http.StatusCreated, result)
}

func (h *SessionHandlers) HandleUndoRound(w http.ResponseWriter, r *http.Request) {
	id, ok := sessionID(w, r)
	if !ok {
		return
	}

	snapshot, err := h.service.UndoRound(r.Context(), id)
	if err != nil {
		h.writeServiceError(w, r, "UndoRound", err)
		return
	}
	h.respond(w, r, http.StatusOK, snapshot)
}

func (h *SessionHandlers) HandleMisdeal(w http.ResponseWriter, r *http.Request) {
	id, ok := sessionID(w, r)
	if !ok {
		return
	}

	var req MisdealRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	side, err := scoringdomain.ParseSide(req.Beneficiary)
	if err != nil {
		h.writeServiceError(w, r, "RecordMisdeal", scoringdomain.ErrInvalidSide)
		return
	}

	result, err := h.service.RecordMisdeal(r.Context(), id, side)
	if err != nil {
		h.writeServiceError(w, r, "RecordMisdeal", err)
		return
	}
	h.respond(w, r, http.StatusCreated, result)
}

func (h *SessionHandlers) HandleSkipTurn(w http.ResponseWriter, r *http.Request) {
	id, ok := sessionID(w, r)
	if !ok {
		return
	}

	snapshot, err := h.service.SkipTurn(r.Context(), id)
	if err != nil {
		h.writeServiceError(w, r, "SkipTurn", err)
		return
	}
	h.respond(w, r, http.StatusOK, snapshot)
}

func (h *SessionHandlers) HandleOutcome(w http.ResponseWriter, r *http.Request) {
	id, ok := sessionID(w, r)
	if !ok {
		return
	}

	outcome, err := h.service.Outcome(r.Context(), id)
	if err != nil {
		h.writeServiceError(w, r, "Outcome", err)
		return
	}
	h.respond(w, r, http.StatusOK, outcome)
}

func (h *SessionHandlers) HandleHistory(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	limit := 0
	if raw := query.Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			http.Error(w, "invalid limit", http.StatusBadRequest)
			return
		}
		limit = n
	}

	summaries, err := h.service.ListHistory(r.Context(), query.Get("since"), limit)
	if err != nil {
		h.writeServiceError(w, r, "ListHistory", err)
		return
	}
	h.respond(w, r, http.StatusOK, map[string]any{"sessions": summaries})
}

func (h *SessionHandlers) HandleDeleteSession(w http.ResponseWriter, r *http.Request) {
	id, ok := sessionID(w, r)
	if !ok {
		return
	}

	if err := h.service.DeleteSession(r.Context(), id); err != nil {
		h.writeServiceError(w, r, "DeleteSession", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
