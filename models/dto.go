package models

type RegisterRequest struct {
	Username string   `json:"username" binding:"required,min=3,max=50"`
	Email    string   `json:"email" binding:"required,email"`
	Password string   `json:"password" binding:"required,min=6"`
	Role     UserRole `json:"role,omitempty"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type AuthResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

type CreateArticleRequest struct {
	Title   string   `json:"title" binding:"required,min=1,max=255"`
	Content string   `json:"content" binding:"required"`
	Tags    []string `json:"tags"`
}

type UpdateArticleRequest struct {
	Title   *string  `json:"title"`
	Content *string  `json:"content"`
	Summary string   `json:"summary"`
	Tags    []string `json:"tags"`
}

type RejectArticleRequest struct {
	Reason string `json:"reason" binding:"required"`
}

type AssignReviewerRequest struct {
	ReviewerID uint `json:"reviewer_id" binding:"required"`
}

type SubmitReviewRequest struct {
	Decision ReviewVerdict `json:"decision" binding:"required"`
	Feedback string        `json:"feedback"`
}

type RevisionReasonRequest struct {
	Reason string `json:"reason" binding:"required"`
}

type TrackChangesRequest struct {
	OldContent string `json:"old_content"`
	NewContent string `json:"new_content" binding:"required"`
	Summary    string `json:"summary"`
}

type RejectChangeRequest struct {
	Reason string `json:"reason" binding:"required"`
}

type CompareVersionsParams struct {
	From int `form:"from" binding:"required,min=1"`
	To   int `form:"to" binding:"required,min=1"`
}

type CreateTagRequest struct {
	Name string `json:"name" binding:"required,min=1,max=100"`
}

type ArticleListParams struct {
	Status    string `form:"status"`
	AuthorID  uint   `form:"author_id"`
	TagID     uint   `form:"tag_id"`
	Page      int    `form:"page,default=1"`
	Limit     int    `form:"limit,default=10"`
	SortBy    string `form:"sort_by,default=created_at"`
	SortOrder string `form:"sort_order,default=desc"`

	// VisibleToID limits the list to the given author's own articles plus
	// published ones. Set by the service for non-admin callers, never bound
	// from the request.
	VisibleToID uint `form:"-" json:"-"`
}
