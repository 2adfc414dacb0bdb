// Package auth centralizes every role and ownership rule in the system.
// Handlers and actors ask the gate instead of comparing roles inline.
package auth

import (
	"qalam/internal/models"
	"qalam/internal/utils"

	"github.com/google/uuid"
)

// Principal is the authenticated identity attached to a request.
type Principal struct {
	ID   uuid.UUID
	Role models.Role
}

// Action enumerates everything the gate can be asked about.
type Action string

const (
	ActionCreatePost       Action = "post.create"
	ActionUpdatePost       Action = "post.update"
	ActionDeletePost       Action = "post.delete"
	ActionCreateComment    Action = "comment.create"
	ActionDeleteComment    Action = "comment.delete"
	ActionToggleReaction   Action = "reaction.toggle"
	ActionManageCategories Action = "category.manage"
	ActionViewAdminPosts   Action = "admin.posts"
	ActionViewDashboard    Action = "dashboard.view"
)

// Authorize applies the static rule table. ownerID is consulted only for
// ownership-scoped actions; pass uuid.Nil when the action has no owner.
// A nil principal always yields an unauthorized error.
func Authorize(action Action, p *Principal, ownerID uuid.UUID) *utils.AppError {
	if p == nil {
		return utils.NewUnauthorizedError("authentication required")
	}

	switch action {
	case ActionCreatePost:
		if p.Role == models.RoleWriter || p.Role == models.RoleAdmin {
			return nil
		}
		return utils.NewForbiddenError("only writers can create posts")

	case ActionUpdatePost, ActionDeletePost:
		if p.Role == models.RoleAdmin || p.ID == ownerID {
			return nil
		}
		return utils.NewForbiddenError("not the post owner")

	case ActionDeleteComment:
		// No admin override: only the author may remove a comment.
		if p.ID == ownerID {
			return nil
		}
		return utils.NewForbiddenError("not the comment author")

	case ActionCreateComment, ActionToggleReaction:
		// Any authenticated user.
		return nil

	case ActionManageCategories, ActionViewAdminPosts:
		if p.Role == models.RoleAdmin {
			return nil
		}
		return utils.NewForbiddenError("admin only")

	case ActionViewDashboard:
		if p.Role == models.RoleWriter || p.Role == models.RoleAdmin {
			return nil
		}
		return utils.NewForbiddenError("dashboard is for writers and admins")

	default:
		return utils.NewForbiddenError("unknown action")
	}
}
