package sessionhandlers

import "net/http"

// Handlers serves the session HTTP endpoints.
type Handlers interface {
	HandleCreateSession(w http.ResponseWriter, r *http.Request)
	HandleGetSession(w http.ResponseWriter, r *http.Request)
	HandleAddRound(w http.ResponseWriter, r *http.Request)
	HandleUndoRound(w http.ResponseWriter, r *http.Request)
	HandleMisdeal(w http.ResponseWriter, r *http.Request)
	HandleSkipTurn(w http.ResponseWriter, r *http.Request)
	HandleOutcome(w http.ResponseWriter, r *http.Request)
	HandleHistory(w http.ResponseWriter, r *http.Request)
	HandleDeleteSession(w http.ResponseWriter, r *http.Request)
}
