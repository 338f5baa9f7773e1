package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"quizroom/internal/app"
	"quizroom/internal/domain"
)

// Handler carries the REST surface: quiz authoring, game lifecycle and
// the host's history dashboard. Live play happens over the websocket.
type Handler struct {
	quizzes *app.QuizService
	games   *app.GameService
	log     *slog.Logger
}

func NewHandler(quizzes *app.QuizService, games *app.GameService) *Handler {
	return &Handler{quizzes: quizzes, games: games, log: slog.Default()}
}

type createQuizRequest struct {
	HostID string `json:"hostId"`
	app.QuizDraft
}

func (h *Handler) createQuiz(w http.ResponseWriter, r *http.Request) {
	var req createQuizRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.HostID == "" {
		writeError(w, http.StatusBadRequest, "hostId is required")
		return
	}
	quiz, err := h.quizzes.Create(r.Context(), req.HostID, req.QuizDraft)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, quiz)
}

func (h *Handler) listQuizzes(w http.ResponseWriter, r *http.Request) {
	hostID := r.URL.Query().Get("hostId")
	if hostID == "" {
		writeError(w, http.StatusBadRequest, "hostId is required")
		return
	}
	quizzes, err := h.quizzes.ListByHost(r.Context(), hostID)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	if quizzes == nil {
		quizzes = []domain.Quiz{}
	}
	writeJSON(w, http.StatusOK, quizzes)
}

func (h *Handler) getQuiz(w http.ResponseWriter, r *http.Request) {
	quiz, err := h.quizzes.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, quiz)
}

func (h *Handler) updateQuiz(w http.ResponseWriter, r *http.Request) {
	var req createQuizRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	quiz, err := h.quizzes.Update(r.Context(), chi.URLParam(r, "id"), req.HostID, req.QuizDraft)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, quiz)
}

func (h *Handler) deleteQuiz(w http.ResponseWriter, r *http.Request) {
	hostID := r.URL.Query().Get("hostId")
	if err := h.quizzes.Delete(r.Context(), chi.URLParam(r, "id"), hostID); err != nil {
		h.writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type generateQuizRequest struct {
	HostID  string `json:"hostId"`
	Topic   string `json:"topic"`
	Subject string `json:"subject,omitempty"`
	Grade   string `json:"grade,omitempty"`
	Count   int    `json:"count,omitempty"`
}

func (h *Handler) generateQuiz(w http.ResponseWriter, r *http.Request) {
	var req generateQuizRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.HostID == "" || req.Topic == "" {
		writeError(w, http.StatusBadRequest, "hostId and topic are required")
		return
	}
	quiz, err := h.quizzes.Generate(r.Context(), req.HostID, req.Topic, req.Subject, req.Grade, req.Count)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, quiz)
}

type createGameRequest struct {
	QuizID    string `json:"quizId"`
	HostID    string `json:"hostId"`
	Nickname  string `json:"nickname,omitempty"`
	PlayAlong bool   `json:"playAlong"`
}

func (h *Handler) createGame(w http.ResponseWriter, r *http.Request) {
	var req createGameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.QuizID == "" || req.HostID == "" {
		writeError(w, http.StatusBadRequest, "quizId and hostId are required")
		return
	}
	view, err := h.games.CreateGame(r.Context(), req.QuizID, req.HostID, req.Nickname, req.PlayAlong)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, view)
}

func (h *Handler) validateCode(w http.ResponseWriter, r *http.Request) {
	// Always 200: an invalid code is an expected answer, not an error.
	writeJSON(w, http.StatusOK, h.games.ValidateCode(r.URL.Query().Get("code")))
}

type joinGameRequest struct {
	Code     string `json:"code"`
	Nickname string `json:"nickname"`
	Avatar   string `json:"avatar,omitempty"`
}

func (h *Handler) joinGame(w http.ResponseWriter, r *http.Request) {
	var req joinGameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Nickname == "" {
		writeError(w, http.StatusBadRequest, "nickname is required")
		return
	}
	ticket, err := h.games.Join(req.Code, req.Nickname, req.Avatar)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, ticket)
}

func (h *Handler) getGame(w http.ResponseWriter, r *http.Request) {
	view, err := h.games.Snapshot(chi.URLParam(r, "id"))
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (h *Handler) explanation(w http.ResponseWriter, r *http.Request) {
	questionID := r.URL.Query().Get("questionId")
	if questionID == "" {
		writeError(w, http.StatusBadRequest, "questionId is required")
		return
	}
	text, err := h.games.Explain(r.Context(), chi.URLParam(r, "id"), questionID, r.URL.Query().Get("selectedOption"))
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"explanation": text})
}

func (h *Handler) listHistory(w http.ResponseWriter, r *http.Request) {
	hostID := r.URL.Query().Get("hostId")
	if hostID == "" {
		writeError(w, http.StatusBadRequest, "hostId is required")
		return
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))
	records, err := h.games.History(r.Context(), hostID, limit, offset)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	if records == nil {
		records = []domain.GameRecord{}
	}
	writeJSON(w, http.StatusOK, records)
}

func (h *Handler) getHistory(w http.ResponseWriter, r *http.Request) {
	rec, err := h.games.HistoryRecord(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (h *Handler) writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrGameNotFound),
		errors.Is(err, domain.ErrQuizNotFound),
		errors.Is(err, domain.ErrPlayerNotFound),
		errors.Is(err, domain.ErrQuestionNotFound),
		errors.Is(err, domain.ErrOptionNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrNotHost), errors.Is(err, domain.ErrNotOwner):
		writeError(w, http.StatusForbidden, err.Error())
	case errors.Is(err, domain.ErrAlreadyAnswered),
		errors.Is(err, domain.ErrQuestionClosed),
		errors.Is(err, domain.ErrGameInProgress),
		errors.Is(err, domain.ErrGameEnded),
		errors.Is(err, domain.ErrGameNotActive):
		writeError(w, http.StatusConflict, err.Error())
	default:
		h.log.Error("request failed", "err", err)
		writeError(w, http.StatusBadRequest, err.Error())
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
