package migrate

import (
	"github.com/kimanithuo1/backendCapstoneProject/internal/category"
	"github.com/kimanithuo1/backendCapstoneProject/internal/comment"
	"github.com/kimanithuo1/backendCapstoneProject/internal/post"
	"github.com/kimanithuo1/backendCapstoneProject/internal/rating"
	"github.com/kimanithuo1/backendCapstoneProject/internal/shared/db"
	"github.com/kimanithuo1/backendCapstoneProject/internal/subscription"
	"github.com/kimanithuo1/backendCapstoneProject/internal/tag"
	"github.com/kimanithuo1/backendCapstoneProject/internal/user"
)

// AutoMigrateAll creates or updates every table the application owns.
func AutoMigrateAll(store *db.Store) error {
	return store.Base.AutoMigrate(
		&user.User{},
		&user.Profile{},
		&category.Category{},
		&tag.Tag{},
		&post.Post{},
		&post.PostLike{},
		&comment.Comment{},
		&rating.Rating{},
		&subscription.Subscription{},
	)
}
