package enrich

import (
	"context"
	"fmt"

	"github.com/yourusername/blog-cms/internal/models"
)

// timeFormat is the display format for post timestamps.
const timeFormat = "2006-01-02 15:04:05"

// CategoryGetter resolves a category by id. A nil category with a nil
// error means the category does not exist.
type CategoryGetter interface {
	GetCategoryByID(ctx context.Context, id int) (*models.Category, error)
}

// Enricher decorates raw posts with display timestamps and their
// resolved category.
type Enricher struct {
	categories CategoryGetter
}

func NewEnricher(categories CategoryGetter) *Enricher {
	return &Enricher{categories: categories}
}

// Enrich builds one PostView per post, preserving input order. Each
// post's category is looked up individually; a post whose category no
// longer exists gets a nil Category rather than failing the whole page.
// Only a store failure aborts enrichment.
func (e *Enricher) Enrich(ctx context.Context, posts []models.Post) ([]models.PostView, error) {
	views := make([]models.PostView, 0, len(posts))
	for _, post := range posts {
		category, err := e.categories.GetCategoryByID(ctx, post.CategoryID)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve category %d: %w", post.CategoryID, err)
		}
		views = append(views, models.PostView{
			Post:       post,
			CreateTime: post.CreatedAt.Format(timeFormat),
			UpdateTime: post.UpdatedAt.Format(timeFormat),
			Category:   category,
		})
	}
	return views, nil
}
