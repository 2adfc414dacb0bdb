package handlers

import (
	"net/http"
	"time"

	"qalam/internal/auth"
	"qalam/internal/middleware"
	"qalam/internal/models"
	"qalam/internal/utils"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type dashboardResponse struct {
	TotalPosts     int64             `json:"totalPosts"`
	TotalComments  int64             `json:"totalComments"`
	TotalLikes     int64             `json:"totalLikes"`
	TotalDislikes  int64             `json:"totalDislikes"`
	TotalUsers     int64             `json:"totalUsers"`
	RecentPosts    []*models.Post    `json:"recentPosts"`
	RecentComments []*models.Comment `json:"recentComments"`
}

// HandleDashboard reports platform-wide totals and recent activity for
// writers and admins. Counts are computed at read time, same as the
// per-post counts.
func (s *Server) HandleDashboard(w http.ResponseWriter, r *http.Request) {
	if appErr := auth.Authorize(auth.ActionViewDashboard, principal(r), uuid.Nil); appErr != nil {
		writeAppError(w, appErr)
		return
	}

	ctx := r.Context()
	resp := dashboardResponse{}

	var err error
	if resp.TotalPosts, err = s.Store.CountPosts(ctx); err == nil {
		resp.TotalComments, err = s.Store.CountComments(ctx)
	}
	if err == nil {
		resp.TotalLikes, err = s.Store.CountAllReactions(ctx, false)
	}
	if err == nil {
		resp.TotalDislikes, err = s.Store.CountAllReactions(ctx, true)
	}
	if err == nil {
		resp.TotalUsers, err = s.Store.CountUsers(ctx)
	}
	if err != nil {
		writeAppError(w, utils.NewAppError(utils.ErrDatabase, "failed to compute dashboard totals", err))
		return
	}

	if resp.RecentPosts, err = s.Store.RecentPosts(ctx, 5); err != nil {
		writeAppError(w, utils.NewAppError(utils.ErrDatabase, "failed to load recent posts", err))
		return
	}
	for _, post := range resp.RecentPosts {
		post.Status = post.StatusAt(time.Now())
	}

	if resp.RecentComments, err = s.Store.RecentComments(ctx, 5); err != nil {
		writeAppError(w, utils.NewAppError(utils.ErrDatabase, "failed to load recent comments", err))
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// HandleHealth reports liveness plus a metrics snapshot.
func (s *Server) HandleHealth(w http.ResponseWriter, r *http.Request) {
	requests, errors, averages, uptime := s.Metrics.Snapshot()
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":         "healthy",
		"uptime":         uptime.String(),
		"requests":       requests,
		"errors":         errors,
		"avgLatenciesMs": averages,
	})
}

// HandleSetLocale switches the caller's UI language via cookie and
// echoes the resolved locale and text direction.
func (s *Server) HandleSetLocale(w http.ResponseWriter, r *http.Request) {
	locale := mux.Vars(r)["locale"]

	supported := false
	for _, l := range middleware.SupportedLocales {
		if l == locale {
			supported = true
			break
		}
	}
	if !supported {
		writeAppError(w, utils.NewFieldError("locale", "unsupported locale"))
		return
	}

	middleware.SetLocaleCookie(w, locale)

	direction := "ltr"
	if locale == "ar" {
		direction = "rtl"
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"locale":    locale,
		"direction": direction,
	})
}
