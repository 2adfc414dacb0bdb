package database

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"qalam/internal/models"
	"qalam/internal/utils"

	"github.com/google/uuid"
)

type reactionKey struct {
	subjectType models.SubjectType
	subjectID   uuid.UUID
	userID      uuid.UUID
}

// MemoryStore is an in-memory Store used by the actor tests. It mirrors
// the Mongo adapter's behavior, including the one-row-per-(subject, user)
// reaction invariant, which the map key enforces structurally.
type MemoryStore struct {
	mu         sync.Mutex
	users      map[uuid.UUID]*models.User
	posts      map[uuid.UUID]*models.Post
	categories map[uuid.UUID]*models.Category
	comments   map[uuid.UUID]*models.Comment
	reactions  map[reactionKey]*models.Reaction
}

var _ Store = (*MemoryStore)(nil)

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users:      make(map[uuid.UUID]*models.User),
		posts:      make(map[uuid.UUID]*models.Post),
		categories: make(map[uuid.UUID]*models.Category),
		comments:   make(map[uuid.UUID]*models.Comment),
		reactions:  make(map[reactionKey]*models.Reaction),
	}
}

func (s *MemoryStore) Close(ctx context.Context) error { return nil }

// Users

func (s *MemoryStore) SaveUser(ctx context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.users {
		if existing.Email == user.Email && existing.ID != user.ID {
			return utils.NewAppError(utils.ErrDuplicate, "email already registered", nil)
		}
	}
	clone := *user
	s.users[user.ID] = &clone
	return nil
}

func (s *MemoryStore) GetUser(ctx context.Context, id uuid.UUID) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users[id]
	if !ok {
		return nil, utils.NewNotFoundError("user")
	}
	clone := *user
	return &clone, nil
}

func (s *MemoryStore) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, user := range s.users {
		if user.Email == email {
			clone := *user
			return &clone, nil
		}
	}
	return nil, utils.NewNotFoundError("user")
}

func (s *MemoryStore) CountUsers(ctx context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return int64(len(s.users)), nil
}

// Categories

func (s *MemoryStore) SaveCategory(ctx context.Context, category *models.Category) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.categories {
		if existing.Slug == category.Slug && existing.ID != category.ID {
			return utils.NewAppError(utils.ErrDuplicate, "slug already in use", nil)
		}
	}
	clone := *category
	s.categories[category.ID] = &clone
	return nil
}

func (s *MemoryStore) GetCategory(ctx context.Context, id uuid.UUID) (*models.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	category, ok := s.categories[id]
	if !ok {
		return nil, utils.NewNotFoundError("category")
	}
	clone := *category
	return &clone, nil
}

func (s *MemoryStore) GetCategoryBySlug(ctx context.Context, slug string) (*models.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, category := range s.categories {
		if category.Slug == slug {
			clone := *category
			return &clone, nil
		}
	}
	return nil, utils.NewNotFoundError("category")
}

func (s *MemoryStore) ListCategories(ctx context.Context, search string) ([]*models.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	needle := strings.ToLower(search)
	var categories []*models.Category
	for _, category := range s.categories {
		if needle != "" &&
			!strings.Contains(strings.ToLower(category.Name), needle) &&
			!strings.Contains(strings.ToLower(category.Description), needle) {
			continue
		}
		clone := *category
		categories = append(categories, &clone)
	}
	return categories, nil
}

func (s *MemoryStore) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.categories[id]; !ok {
		return utils.NewNotFoundError("category")
	}
	delete(s.categories, id)
	return nil
}

// Posts

func (s *MemoryStore) SavePost(ctx context.Context, post *models.Post) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.posts {
		if existing.Slug == post.Slug && existing.ID != post.ID {
			return utils.NewAppError(utils.ErrDuplicate, "slug already in use", nil)
		}
	}
	clone := *post
	s.posts[post.ID] = &clone
	return nil
}

func (s *MemoryStore) GetPost(ctx context.Context, id uuid.UUID) (*models.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	post, ok := s.posts[id]
	if !ok {
		return nil, utils.NewNotFoundError("post")
	}
	clone := *post
	return &clone, nil
}

func (s *MemoryStore) GetPostBySlug(ctx context.Context, slug string) (*models.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, post := range s.posts {
		if post.Slug == slug {
			clone := *post
			return &clone, nil
		}
	}
	return nil, utils.NewNotFoundError("post")
}

func (s *MemoryStore) sortedPostsLocked() []*models.Post {
	posts := make([]*models.Post, 0, len(s.posts))
	for _, post := range s.posts {
		clone := *post
		posts = append(posts, &clone)
	}
	sort.Slice(posts, func(i, j int) bool {
		return posts[i].CreatedAt.After(posts[j].CreatedAt)
	})
	return posts
}

func (s *MemoryStore) ListPosts(ctx context.Context, filter PostFilter) ([]*models.Post, int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var matched []*models.Post
	for _, post := range s.sortedPostsLocked() {
		if filter.CategoryID != nil {
			if post.CategoryID == nil || *post.CategoryID != *filter.CategoryID {
				continue
			}
		}
		matched = append(matched, post)
	}

	total := int64(len(matched))
	if filter.Offset >= len(matched) {
		return nil, total, nil
	}
	matched = matched[filter.Offset:]
	if filter.Limit > 0 && filter.Limit < len(matched) {
		matched = matched[:filter.Limit]
	}
	return matched, total, nil
}

func (s *MemoryStore) GetAllPosts(ctx context.Context) ([]*models.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sortedPostsLocked(), nil
}

func (s *MemoryStore) RecentPosts(ctx context.Context, limit int) ([]*models.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	posts := s.sortedPostsLocked()
	if limit > 0 && limit < len(posts) {
		posts = posts[:limit]
	}
	return posts, nil
}

func (s *MemoryStore) CountPosts(ctx context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return int64(len(s.posts)), nil
}

func (s *MemoryStore) CountPostsByCategory(ctx context.Context, categoryID uuid.UUID) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var count int64
	for _, post := range s.posts {
		if post.CategoryID != nil && *post.CategoryID == categoryID {
			count++
		}
	}
	return count, nil
}

func (s *MemoryStore) DeletePost(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.posts[id]; !ok {
		return utils.NewNotFoundError("post")
	}
	delete(s.posts, id)
	return nil
}

// Comments

func (s *MemoryStore) SaveComment(ctx context.Context, comment *models.Comment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	clone := *comment
	clone.Replies = nil
	s.comments[comment.ID] = &clone
	return nil
}

func (s *MemoryStore) GetComment(ctx context.Context, id uuid.UUID) (*models.Comment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	comment, ok := s.comments[id]
	if !ok {
		return nil, utils.NewNotFoundError("comment")
	}
	clone := *comment
	return &clone, nil
}

func (s *MemoryStore) commentsLocked(match func(*models.Comment) bool) []*models.Comment {
	var comments []*models.Comment
	for _, comment := range s.comments {
		if match(comment) {
			clone := *comment
			comments = append(comments, &clone)
		}
	}
	sort.Slice(comments, func(i, j int) bool {
		return comments[i].CreatedAt.Before(comments[j].CreatedAt)
	})
	return comments
}

func (s *MemoryStore) GetPostComments(ctx context.Context, postID uuid.UUID) ([]*models.Comment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.commentsLocked(func(c *models.Comment) bool { return c.PostID == postID }), nil
}

func (s *MemoryStore) GetReplies(ctx context.Context, parentID uuid.UUID) ([]*models.Comment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.commentsLocked(func(c *models.Comment) bool {
		return c.ParentID != nil && *c.ParentID == parentID
	}), nil
}

func (s *MemoryStore) DeleteComments(ctx context.Context, ids []uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, id := range ids {
		delete(s.comments, id)
	}
	return nil
}

func (s *MemoryStore) CountComments(ctx context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return int64(len(s.comments)), nil
}

func (s *MemoryStore) CountPostComments(ctx context.Context, postID uuid.UUID) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var count int64
	for _, comment := range s.comments {
		if comment.PostID == postID {
			count++
		}
	}
	return count, nil
}

func (s *MemoryStore) RecentComments(ctx context.Context, limit int) ([]*models.Comment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	comments := s.commentsLocked(func(*models.Comment) bool { return true })
	// commentsLocked sorts oldest-first; recency wants the other end.
	sort.Slice(comments, func(i, j int) bool {
		return comments[i].CreatedAt.After(comments[j].CreatedAt)
	})
	if limit > 0 && limit < len(comments) {
		comments = comments[:limit]
	}
	return comments, nil
}

// Reactions

func (s *MemoryStore) ToggleReaction(ctx context.Context, subject models.Subject, userID uuid.UUID, isDislike bool) (models.ReactionState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := reactionKey{subjectType: subject.Type, subjectID: subject.ID, userID: userID}
	now := time.Now()

	existing, ok := s.reactions[key]
	if ok && existing.IsDislike == isDislike {
		delete(s.reactions, key)
		return models.ReactionNone, nil
	}

	if ok {
		existing.IsDislike = isDislike
		existing.UpdatedAt = now
	} else {
		s.reactions[key] = &models.Reaction{
			ID:          uuid.New(),
			SubjectType: subject.Type,
			SubjectID:   subject.ID,
			UserID:      userID,
			IsDislike:   isDislike,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
	}

	if isDislike {
		return models.ReactionDisliked, nil
	}
	return models.ReactionLiked, nil
}

func (s *MemoryStore) GetReaction(ctx context.Context, subject models.Subject, userID uuid.UUID) (*models.Reaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := reactionKey{subjectType: subject.Type, subjectID: subject.ID, userID: userID}
	reaction, ok := s.reactions[key]
	if !ok {
		return nil, nil
	}
	clone := *reaction
	return &clone, nil
}

func (s *MemoryStore) CountReactions(ctx context.Context, subject models.Subject, isDislike bool) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var count int64
	for key, reaction := range s.reactions {
		if key.subjectType == subject.Type && key.subjectID == subject.ID && reaction.IsDislike == isDislike {
			count++
		}
	}
	return count, nil
}

func (s *MemoryStore) CountAllReactions(ctx context.Context, isDislike bool) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var count int64
	for _, reaction := range s.reactions {
		if reaction.IsDislike == isDislike {
			count++
		}
	}
	return count, nil
}

func (s *MemoryStore) DeleteReactionsForSubjects(ctx context.Context, subjects []models.Subject) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for key := range s.reactions {
		for _, subject := range subjects {
			if key.subjectType == subject.Type && key.subjectID == subject.ID {
				delete(s.reactions, key)
				break
			}
		}
	}
	return nil
}
