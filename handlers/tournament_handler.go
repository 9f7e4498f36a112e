package handlers

import (
	"net/http"

	"github.com/Dosada05/poule-tournament/services"
)

type TournamentHandler struct {
	tournamentService services.TournamentService
}

func NewTournamentHandler(ts services.TournamentService) *TournamentHandler {
	return &TournamentHandler{
		tournamentService: ts,
	}
}

type registerPlayersInput struct {
	Players []string `json:"players"`
}

// scoreInput keeps pointers so a missing score is told apart from 0.
type scoreInput struct {
	Score1 *int `json:"score1"`
	Score2 *int `json:"score2"`
}

func (in scoreInput) validate() map[string]string {
	errs := make(map[string]string)
	if in.Score1 == nil || *in.Score1 < 0 {
		errs["score1"] = "must be a non-negative integer"
	}
	if in.Score2 == nil || *in.Score2 < 0 {
		errs["score2"] = "must be a non-negative integer"
	}
	return errs
}

func (h *TournamentHandler) respondTournament(w http.ResponseWriter, r *http.Request, status int, tournament interface{}) {
	if err := writeJSON(w, status, jsonResponse{"tournament": tournament}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// CreateHandler обрабатывает POST /tournaments. Тело запроса необязательно.
func (h *TournamentHandler) CreateHandler(w http.ResponseWriter, r *http.Request) {
	var input services.CreateTournamentInput
	if r.ContentLength != 0 {
		if err := readJSON(w, r, &input); err != nil {
			badRequestResponse(w, r, err)
			return
		}
	}

	tournament, err := h.tournamentService.CreateTournament(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	h.respondTournament(w, r, http.StatusCreated, tournament)
}

func (h *TournamentHandler) ListHandler(w http.ResponseWriter, r *http.Request) {
	tournaments, err := h.tournamentService.ListTournaments(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"tournaments": tournaments}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *TournamentHandler) GetByIDHandler(w http.ResponseWriter, r *http.Request) {
	id, err := getTournamentIDFromURL(r)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	tournament, err := h.tournamentService.GetTournament(r.Context(), id)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	h.respondTournament(w, r, http.StatusOK, tournament)
}

func (h *TournamentHandler) DeleteHandler(w http.ResponseWriter, r *http.Request) {
	id, err := getTournamentIDFromURL(r)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := h.tournamentService.DeleteTournament(r.Context(), id); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// RegisterPlayersHandler обрабатывает POST /tournaments/{tournamentID}/players
func (h *TournamentHandler) RegisterPlayersHandler(w http.ResponseWriter, r *http.Request) {
	id, err := getTournamentIDFromURL(r)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input registerPlayersInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	tournament, err := h.tournamentService.RegisterPlayers(r.Context(), id, input.Players)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	h.respondTournament(w, r, http.StatusOK, tournament)
}

func (h *TournamentHandler) DrawGroupsHandler(w http.ResponseWriter, r *http.Request) {
	id, err := getTournamentIDFromURL(r)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	tournament, err := h.tournamentService.DrawGroups(r.Context(), id)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	h.respondTournament(w, r, http.StatusOK, tournament)
}

// RecordGroupResultHandler обрабатывает PUT /tournaments/{tournamentID}/groups/{groupIndex}/matches/{matchIndex}
func (h *TournamentHandler) RecordGroupResultHandler(w http.ResponseWriter, r *http.Request) {
	id, err := getTournamentIDFromURL(r)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	groupIndex, err := getIndexFromURL(r, "groupIndex")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	matchIndex, err := getIndexFromURL(r, "matchIndex")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input scoreInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	if errs := input.validate(); len(errs) > 0 {
		failedValidationResponse(w, r, errs)
		return
	}

	tournament, err := h.tournamentService.RecordGroupResult(r.Context(), id, groupIndex, matchIndex, *input.Score1, *input.Score2)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	h.respondTournament(w, r, http.StatusOK, tournament)
}

// CompleteGroupStageHandler обрабатывает POST /tournaments/{tournamentID}/qualification
func (h *TournamentHandler) CompleteGroupStageHandler(w http.ResponseWriter, r *http.Request) {
	id, err := getTournamentIDFromURL(r)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	tournament, err := h.tournamentService.CompleteGroupStage(r.Context(), id)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	h.respondTournament(w, r, http.StatusOK, tournament)
}

func (h *TournamentHandler) GetQualificationHandler(w http.ResponseWriter, r *http.Request) {
	id, err := getTournamentIDFromURL(r)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	qualification, err := h.tournamentService.Qualification(r.Context(), id)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"qualification": qualification}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *TournamentHandler) StartKnockoutHandler(w http.ResponseWriter, r *http.Request) {
	id, err := getTournamentIDFromURL(r)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	tournament, err := h.tournamentService.StartKnockout(r.Context(), id)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	h.respondTournament(w, r, http.StatusOK, tournament)
}

// RecordKnockoutResultHandler обрабатывает PUT /tournaments/{tournamentID}/knockout/rounds/{roundIndex}/matches/{matchIndex}
func (h *TournamentHandler) RecordKnockoutResultHandler(w http.ResponseWriter, r *http.Request) {
	id, err := getTournamentIDFromURL(r)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	roundIndex, err := getIndexFromURL(r, "roundIndex")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	matchIndex, err := getIndexFromURL(r, "matchIndex")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input scoreInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	if errs := input.validate(); len(errs) > 0 {
		failedValidationResponse(w, r, errs)
		return
	}

	tournament, err := h.tournamentService.RecordKnockoutResult(r.Context(), id, roundIndex, matchIndex, *input.Score1, *input.Score2)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	h.respondTournament(w, r, http.StatusOK, tournament)
}

// ReopenKnockoutMatchHandler обрабатывает DELETE на результат матча плей-офф.
func (h *TournamentHandler) ReopenKnockoutMatchHandler(w http.ResponseWriter, r *http.Request) {
	id, err := getTournamentIDFromURL(r)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	roundIndex, err := getIndexFromURL(r, "roundIndex")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	matchIndex, err := getIndexFromURL(r, "matchIndex")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	tournament, err := h.tournamentService.ReopenKnockoutMatch(r.Context(), id, roundIndex, matchIndex)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	h.respondTournament(w, r, http.StatusOK, tournament)
}

func (h *TournamentHandler) ResetHandler(w http.ResponseWriter, r *http.Request) {
	id, err := getTournamentIDFromURL(r)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	tournament, err := h.tournamentService.ResetTournament(r.Context(), id)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	h.respondTournament(w, r, http.StatusOK, tournament)
}

func (h *TournamentHandler) ExportHandler(w http.ResponseWriter, r *http.Request) {
	id, err := getTournamentIDFromURL(r)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	url, err := h.tournamentService.ExportTournament(r.Context(), id)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"url": url}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
