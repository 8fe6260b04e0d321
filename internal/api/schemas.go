package api

import (
	"fmt"

	"github.com/phrazzld/posts-api/internal/domain"
	"github.com/phrazzld/posts-api/internal/schema"
)

// CreatePost is the request body of POST /posts.
var CreatePost = schema.New("CreatePost",
	schema.Text("content", schema.Rule(fmt.Sprintf("max=%d", domain.MaxPostContentLength))),
	schema.Text("title", schema.Rule(fmt.Sprintf("max=%d", domain.MaxPostTitleLength))),
)

// UpdatePost is the request body of PATCH /posts/{id}. It declares the same
// fields as CreatePost and is used with missing properties skipped.
var UpdatePost = schema.New("UpdatePost",
	schema.Text("content", schema.Rule(fmt.Sprintf("max=%d", domain.MaxPostContentLength))),
	schema.Text("title", schema.Rule(fmt.Sprintf("max=%d", domain.MaxPostTitleLength))),
)
