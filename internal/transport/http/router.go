package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"quizroom/internal/app"
)

// NewRouter assembles the full HTTP surface: REST under /api, the game
// socket at /ws, and a health probe.
func NewRouter(quizzes *app.QuizService, games *app.GameService) http.Handler {
	h := NewHandler(quizzes, games)
	ws := NewWSHandler(games)

	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})

	r.Route("/api", func(r chi.Router) {
		r.Route("/quizzes", func(r chi.Router) {
			r.Post("/", h.createQuiz)
			r.Get("/", h.listQuizzes)
			r.Post("/generate", h.generateQuiz)
			r.Get("/{id}", h.getQuiz)
			r.Put("/{id}", h.updateQuiz)
			r.Delete("/{id}", h.deleteQuiz)
		})
		r.Route("/games", func(r chi.Router) {
			r.Post("/", h.createGame)
			r.Get("/validate", h.validateCode)
			r.Post("/join", h.joinGame)
			r.Get("/{id}", h.getGame)
			r.Get("/{id}/explanation", h.explanation)
		})
		r.Route("/history", func(r chi.Router) {
			r.Get("/", h.listHistory)
			r.Get("/{id}", h.getHistory)
		})
	})

	r.Get("/ws", ws.ServeWS)
	return r
}
