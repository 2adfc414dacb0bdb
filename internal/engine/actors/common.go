package actors

import (
	stdctx "context"

	"qalam/internal/database"
	"qalam/internal/models"
	"qalam/internal/utils"
)

// storeError passes AppErrors through untouched and wraps anything else
// as a database failure, so actors always respond with *utils.AppError.
func storeError(err error, message string) *utils.AppError {
	if appErr, ok := err.(*utils.AppError); ok {
		return appErr
	}
	return utils.NewAppError(utils.ErrDatabase, message, err)
}

// reactionCounts builds a ReactionResult with freshly derived counts.
func reactionCounts(ctx stdctx.Context, store database.Store, subject models.Subject, state models.ReactionState) (*ReactionResult, *utils.AppError) {
	likeCount, err := store.CountReactions(ctx, subject, false)
	if err != nil {
		return nil, utils.NewAppError(utils.ErrDatabase, "failed to count likes", err)
	}
	dislikeCount, err := store.CountReactions(ctx, subject, true)
	if err != nil {
		return nil, utils.NewAppError(utils.ErrDatabase, "failed to count dislikes", err)
	}
	return &ReactionResult{
		State:        state,
		LikeCount:    int(likeCount),
		DislikeCount: int(dislikeCount),
	}, nil
}
