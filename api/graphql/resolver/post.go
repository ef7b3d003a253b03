package resolver

import (
	"context"

	"github.com/graph-gophers/graphql-go"

	"github.com/velog-io/velog-api/internal/models"
)

type postResolver struct {
	root *Resolver
	post *models.Post
}

func newPostResolver(root *Resolver, post *models.Post) *postResolver {
	if post == nil {
		return nil
	}
	return &postResolver{root: root, post: post}
}

func (r *postResolver) ID() graphql.ID {
	return graphql.ID(r.post.ID)
}

func (r *postResolver) Title() *string {
	return &r.post.Title
}

func (r *postResolver) ShortDescription() *string {
	return &r.post.ShortDescription
}

func (r *postResolver) Thumbnail() *string {
	return r.post.Thumbnail
}

func (r *postResolver) URLSlug() *string {
	return &r.post.URLSlug
}

func (r *postResolver) IsPrivate() *bool {
	return &r.post.IsPrivate
}

func (r *postResolver) Tags() *[]string {
	tags := []string(r.post.Tags)
	if tags == nil {
		tags = []string{}
	}
	return &tags
}

func (r *postResolver) ReleasedAt() *Date {
	return datePtr(r.post.ReleasedAt)
}

func (r *postResolver) CreatedAt() *Date {
	return dateOf(r.post.CreatedAt)
}

func (r *postResolver) UpdatedAt() *Date {
	return dateOf(r.post.UpdatedAt)
}

func (r *postResolver) User(ctx context.Context) (*userResolver, error) {
	user, err := r.root.loaders(ctx).User.Load(ctx, r.post.FkUserID)()
	if err != nil {
		return nil, resolverErr(err)
	}
	return newUserResolver(r.root, user), nil
}
