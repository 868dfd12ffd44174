package models

// PostView is a Post decorated for display: formatted timestamps plus
// the resolved category. Category is nil when the referenced category
// no longer exists.
type PostView struct {
	Post
	CreateTime string    `json:"create_time"`
	UpdateTime string    `json:"update_time"`
	Category   *Category `json:"category"`
}

// PostListView is the view model for both the public post listing and
// the admin post list page. Session is only populated on the public
// path.
type PostListView struct {
	Session map[string]string
	Posts   []PostView
	Count   int
	Page    int
	Pages   int
	Limit   int
}

// PostDetailView is the view model for the public post detail page.
type PostDetailView struct {
	Post *Post
}

// PostAddView is the view model for the admin add-post form.
type PostAddView struct {
	Categories []Category
}

// PostEditView is the view model for the admin edit-post form.
type PostEditView struct {
	Post       *Post
	Categories []Category
}

// AdminErrorView reports a failed admin action.
type AdminErrorView struct {
	Message string
}

// AdminSuccessView reports a completed admin action together with the
// page to navigate to next.
type AdminSuccessView struct {
	Message string
	URL     string
}

// ErrorResponse is the JSON body written when a public listing or
// detail request fails.
type ErrorResponse struct {
	Code int    `json:"code"`
	Err  string `json:"err"`
}

// MessageResponse is the plain JSON body used by the update flow when
// the id parameter is missing.
type MessageResponse struct {
	Message string `json:"message"`
}
