// Package api provides the HTTP server for QuestForge.
// It exposes the progression engine over a small JSON REST surface plus
// the Prometheus /metrics endpoint.
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/questforge/questforge/internal/app/engine"
	"github.com/questforge/questforge/internal/domain"
	"github.com/questforge/questforge/internal/rules"
)

// Server is the QuestForge HTTP API server.
type Server struct {
	engine         *engine.Service
	timeline       domain.TimelineStore
	userID         string
	metricsEnabled bool
}

// NewServer creates a new API server around one user's engine.
func NewServer(eng *engine.Service, timeline domain.TimelineStore, userID string) *Server {
	return &Server{engine: eng, timeline: timeline, userID: userID}
}

// EnableMetrics enables the /metrics Prometheus endpoint.
func (s *Server) EnableMetrics() { s.metricsEnabled = true }

// Handler returns the chi router with all routes mounted.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api", func(r chi.Router) {
		r.Get("/state", s.handleState)
		r.Get("/streak", s.handleStreak)
		r.Get("/achievements", s.handleAchievements)
		r.Get("/shop", s.handleShop)
		r.Get("/timeline", s.handleTimeline)

		r.Route("/habits", func(r chi.Router) {
			r.Get("/", s.handleListHabits)
			r.Post("/", s.handleAddHabit)
			r.Delete("/{id}", s.handleDeleteHabit)
			r.Post("/{id}/complete", s.handleCompleteHabit)
			r.Post("/{id}/skip", s.handleSkipHabit)
		})

		r.Post("/shop/purchase", s.handlePurchase)
		r.Post("/inventory/use", s.handleUseItem)
		r.Post("/streak/freeze", s.handleFreeze)
		r.Post("/streak/recover", s.handleRecover)
	})

	if s.metricsEnabled {
		r.Handle("/metrics", promhttp.Handler())
	}
	return r
}

// ─── State ──────────────────────────────────────────────────────────────────

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	st := s.engine.State()
	writeJSON(w, http.StatusOK, map[string]any{
		"character":     st.Character,
		"habits":        st.Habits,
		"achievements":  st.Achievements,
		"classProgress": st.ClassProgress,
		"streakData":    st.StreakData,
		"inventory":     st.Inventory,
		"heroRank":      rankView(st.Character),
	})
}

func rankView(c domain.Character) map[string]any {
	p := rules.HeroRankFor(c.Stats)
	v := map[string]any{
		"name":       p.Rank.Name,
		"icon":       p.Rank.Icon,
		"totalStats": p.TotalStats,
		"progress":   p.ProgressPct,
	}
	if p.Next != nil {
		v["next"] = p.Next.Name
	}
	return v
}

// ─── Habits ─────────────────────────────────────────────────────────────────

func (s *Server) handleListHabits(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.engine.State().Habits)
}

type addHabitRequest struct {
	Name       string `json:"name"`
	Difficulty string `json:"difficulty"`
	Category   string `json:"category"`
	Recurring  string `json:"recurring"`
}

func (s *Server) handleAddHabit(w http.ResponseWriter, r *http.Request) {
	var req addHabitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	h, err := s.engine.AddHabit(req.Name, domain.Difficulty(req.Difficulty),
		domain.Stat(req.Category), domain.Recurrence(req.Recurring))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, h)
}

func (s *Server) handleDeleteHabit(w http.ResponseWriter, r *http.Request) {
	if err := s.engine.DeleteHabit(chi.URLParam(r, "id")); err != nil {
		writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleCompleteHabit(w http.ResponseWriter, r *http.Request) {
	res, err := s.engine.CompleteHabit(chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	resp := map[string]any{
		"xp":        res.Reward.XP,
		"gold":      res.Reward.Gold,
		"stat":      res.Reward.Stat,
		"statGain":  res.Reward.StatGain,
		"leveledUp": res.LeveledUp,
		"level":     res.NewLevel,
	}
	if res.Milestone != nil {
		resp["streakMilestone"] = res.Milestone.Name
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleSkipHabit(w http.ResponseWriter, r *http.Request) {
	if err := s.engine.SkipHabit(chi.URLParam(r, "id")); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, s.engine.State().Character)
}

// ─── Streak ─────────────────────────────────────────────────────────────────

func (s *Server) handleStreak(w http.ResponseWriter, r *http.Request) {
	st := s.engine.State()
	resp := map[string]any{
		"streakData": st.StreakData,
		"multiplier": rules.StreakMultiplier(st.StreakData.CurrentStreak),
	}
	if m, ok := rules.NextMilestone(st.StreakData.CurrentStreak); ok {
		resp["nextMilestone"] = map[string]any{"days": m.Days, "name": m.Name}
	}
	if offer, ok := rules.RecoveryOfferFor(st.StreakData, time.Now()); ok && st.StreakData.CurrentStreak == 0 {
		resp["recoveryOffer"] = map[string]any{"cost": offer.Cost, "restores": offer.StreakToRecover}
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleFreeze(w http.ResponseWriter, r *http.Request) {
	if err := s.engine.FreezeStreak(); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, s.engine.State().StreakData)
}

func (s *Server) handleRecover(w http.ResponseWriter, r *http.Request) {
	if err := s.engine.RecoverStreak(); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, s.engine.State().StreakData)
}

// ─── Achievements / shop / timeline ─────────────────────────────────────────

func (s *Server) handleAchievements(w http.ResponseWriter, r *http.Request) {
	st := s.engine.State()
	unlocked, total := rules.AchievementProgress(st.Achievements)

	type achView struct {
		ID       string `json:"id"`
		Name     string `json:"name"`
		Desc     string `json:"description"`
		Icon     string `json:"icon"`
		Category string `json:"category"`
		Hidden   bool   `json:"hidden"`
		Unlocked bool   `json:"unlocked"`
	}
	var list []achView
	for _, a := range rules.Achievements() {
		v := achView{ID: a.ID, Name: a.Name, Desc: a.Desc, Icon: a.Icon,
			Category: string(a.Category), Hidden: a.Hidden, Unlocked: st.HasAchievement(a.ID)}
		if a.Hidden && !v.Unlocked {
			// Hidden achievements show only their hint until earned.
			v.Name = "???"
			v.Desc = a.Hint
		}
		list = append(list, v)
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"unlocked": unlocked,
		"total":    total,
		"list":     list,
	})
}

func (s *Server) handleShop(w http.ResponseWriter, r *http.Request) {
	st := s.engine.State()
	type itemView struct {
		ID       string `json:"id"`
		Name     string `json:"name"`
		Desc     string `json:"description"`
		Category string `json:"category"`
		Icon     string `json:"icon"`
		Price    int    `json:"price"`
		Owned    int    `json:"owned,omitempty"`
		Locked   bool   `json:"locked,omitempty"`
	}
	var list []itemView
	for _, it := range rules.ShopItems() {
		v := itemView{ID: it.ID, Name: it.Name, Desc: it.Desc,
			Category: string(it.Category), Icon: it.Icon, Price: it.Price}
		if it.Permanent {
			if st.Inventory.HasUpgrade(it.ID) {
				v.Owned = 1
			}
			v.Locked = it.Requires != "" && !st.Inventory.HasUpgrade(it.Requires)
		} else {
			v.Owned = st.Inventory.Quantity(it.ID)
		}
		list = append(list, v)
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"gold":  st.Character.Gold,
		"items": list,
	})
}

type purchaseRequest struct {
	ItemID string `json:"itemId"`
}

func (s *Server) handlePurchase(w http.ResponseWriter, r *http.Request) {
	var req purchaseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if err := s.engine.Purchase(req.ItemID); err != nil {
		writeDomainError(w, err)
		return
	}
	st := s.engine.State()
	writeJSON(w, http.StatusOK, map[string]any{
		"gold":      st.Character.Gold,
		"inventory": st.Inventory,
	})
}

type useItemRequest struct {
	ItemID string `json:"itemId"`
	Stat   string `json:"stat,omitempty"`
}

func (s *Server) handleUseItem(w http.ResponseWriter, r *http.Request) {
	var req useItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if err := s.engine.UseItem(req.ItemID, domain.Stat(req.Stat)); err != nil {
		writeDomainError(w, err)
		return
	}
	st := s.engine.State()
	writeJSON(w, http.StatusOK, map[string]any{
		"character": st.Character,
		"inventory": st.Inventory,
	})
}

func (s *Server) handleTimeline(w http.ResponseWriter, r *http.Request) {
	if s.timeline == nil {
		writeJSON(w, http.StatusOK, []domain.TimelineEvent{})
		return
	}
	events, err := s.timeline.List(r.Context(), s.userID, 100)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "timeline unavailable")
		return
	}
	if events == nil {
		events = []domain.TimelineEvent{}
	}
	writeJSON(w, http.StatusOK, events)
}

// ─── Helpers ────────────────────────────────────────────────────────────────

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]any{"error": msg})
}

// writeDomainError maps engine errors onto HTTP statuses.
func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrHabitNotFound), errors.Is(err, domain.ErrItemNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrInsufficientFunds),
		errors.Is(err, domain.ErrAlreadyOwned),
		errors.Is(err, domain.ErrPrerequisiteMissing),
		errors.Is(err, domain.ErrInventoryFull),
		errors.Is(err, domain.ErrStackLimit),
		errors.Is(err, domain.ErrStreakAlreadyFrozen),
		errors.Is(err, domain.ErrRecoveryUnavailable),
		errors.Is(err, domain.ErrNothingToRecover),
		errors.Is(err, domain.ErrAlreadyCompleted),
		errors.Is(err, domain.ErrQuestSlotsFull):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, domain.ErrEmptyHabitName),
		errors.Is(err, domain.ErrInvalidDifficulty),
		errors.Is(err, domain.ErrInvalidRecurrence),
		errors.Is(err, domain.ErrInvalidStat):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}
