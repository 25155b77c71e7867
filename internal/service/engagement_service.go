package service

import (
	"context"

	"quillhub/internal/common"
	"quillhub/internal/repository"
)

type BookmarkAction string

const (
	BookmarkAdd    BookmarkAction = "add"
	BookmarkRemove BookmarkAction = "remove"
)

type ToggleResult struct {
	Active bool `json:"liked"`
	Count  int  `json:"likes"`
}

// EngagementService covers bookmarks and likes. Neither operation retries:
// a common.ErrConflict from a lost race is returned to the caller as is.
type EngagementService interface {
	SetBookmark(ctx context.Context, userID, competitionID int64, action BookmarkAction) error
	ToggleLike(ctx context.Context, userID, postID int64) (ToggleResult, error)
	IsBookmarked(ctx context.Context, userID, competitionID int64) (bool, error)
	IsLiked(ctx context.Context, userID, postID int64) (bool, error)
}

type engagementService struct {
	repo repository.EngagementRepository
}

func NewEngagementService(repo repository.EngagementRepository) EngagementService {
	return &engagementService{repo: repo}
}

func (s *engagementService) SetBookmark(ctx context.Context, userID, competitionID int64, action BookmarkAction) error {
	if competitionID <= 0 {
		return common.Invalid("competitionId", "must be a positive integer")
	}

	var active bool
	switch action {
	case BookmarkAdd:
		active = true
	case BookmarkRemove:
	default:
		return common.Invalid("action", `must be "add" or "remove"`)
	}

	_, _, err := s.repo.Set(ctx, repository.Bookmarks, userID, competitionID, active)
	return err
}

func (s *engagementService) ToggleLike(ctx context.Context, userID, postID int64) (ToggleResult, error) {
	if postID <= 0 {
		return ToggleResult{}, common.Invalid("postId", "must be a positive integer")
	}

	active, count, err := s.repo.Toggle(ctx, repository.PostLikes, userID, postID)
	if err != nil {
		return ToggleResult{}, err
	}

	return ToggleResult{Active: active, Count: count}, nil
}

func (s *engagementService) IsBookmarked(ctx context.Context, userID, competitionID int64) (bool, error) {
	if competitionID <= 0 {
		return false, common.Invalid("competitionId", "must be a positive integer")
	}
	return s.repo.Exists(ctx, repository.Bookmarks, userID, competitionID)
}

func (s *engagementService) IsLiked(ctx context.Context, userID, postID int64) (bool, error) {
	if postID <= 0 {
		return false, common.Invalid("postId", "must be a positive integer")
	}
	return s.repo.Exists(ctx, repository.PostLikes, userID, postID)
}
