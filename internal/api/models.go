package api

import (
	"time"

	"github.com/phrazzld/posts-api/internal/domain"
)

// CreatePostRequest is the decoded body of POST /posts.
type CreatePostRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// PostResponse is the wire form of a post.
type PostResponse struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PostListResponse is the body of GET /posts.
type PostListResponse struct {
	Posts  []PostResponse `json:"posts"`
	Limit  int            `json:"limit"`
	Offset int            `json:"offset"`
}

func postToResponse(p *domain.Post) PostResponse {
	return PostResponse{
		ID:        p.ID.String(),
		Title:     p.Title,
		Content:   p.Content,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

func postsToResponse(posts []*domain.Post, limit, offset int) PostListResponse {
	out := PostListResponse{
		Posts:  make([]PostResponse, 0, len(posts)),
		Limit:  limit,
		Offset: offset,
	}
	for _, p := range posts {
		out.Posts = append(out.Posts, postToResponse(p))
	}
	return out
}
