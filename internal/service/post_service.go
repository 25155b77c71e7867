package service

import (
	"context"
	"strings"
	"unicode/utf8"

	"quillhub/internal/common"
	"quillhub/internal/models"
	"quillhub/internal/pagination"
	"quillhub/internal/repository"
)

const maxPostLength = 5000

type PostService interface {
	// Create publishes a post. A non-nil companyID attributes it to a company
	// the author must belong to.
	Create(ctx context.Context, authorID int64, content string, companyID *int64) (*models.Post, error)
	Feed(ctx context.Context, cursor pagination.CursorRequest) (pagination.Window[models.Post], error)
}

type postService struct {
	posts     repository.PostRepository
	companies repository.CompanyRepository
}

func NewPostService(posts repository.PostRepository, companies repository.CompanyRepository) PostService {
	return &postService{
		posts:     posts,
		companies: companies,
	}
}

func (p *postService) Create(ctx context.Context, authorID int64, content string, companyID *int64) (*models.Post, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, common.Invalid("content", "must not be empty")
	}
	if utf8.RuneCountInString(content) > maxPostLength {
		return nil, common.Invalid("content", "is too long")
	}

	if companyID != nil {
		member, err := p.companies.IsMember(ctx, *companyID, authorID)
		if err != nil {
			return nil, err
		}
		if !member {
			return nil, common.ErrForbidden
		}
	}

	post := &models.Post{
		AuthorID:  authorID,
		CompanyID: companyID,
		Content:   content,
	}
	if err := p.posts.Create(ctx, post); err != nil {
		return nil, err
	}

	return post, nil
}

func (p *postService) Feed(ctx context.Context, cursor pagination.CursorRequest) (pagination.Window[models.Post], error) {
	rows, err := p.posts.ListFeed(ctx, cursor.Offset, cursor.Limit())
	if err != nil {
		return pagination.Window[models.Post]{}, err
	}

	return pagination.NewWindow(rows, cursor), nil
}
