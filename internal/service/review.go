package service

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/ecowash/ecowash-backend/internal/model"
	"github.com/ecowash/ecowash-backend/internal/repository"
)

// ReviewService enforces one review per user.  The lookup before insert
// gives the common case a clean error; the store's unique key settles
// races.
type ReviewService struct {
	reviews repository.ReviewStore
	users   repository.UserStore
}

func NewReviewService(stores repository.Stores) *ReviewService {
	return &ReviewService{reviews: stores.Reviews, users: stores.Users}
}

// ReviewPatch holds the fields a user may change; nil leaves them as is.
type ReviewPatch struct {
	Rating  *int
	Comment *string
}

func validRating(r int) bool { return r >= 1 && r <= 5 }

func validComment(c string) bool {
	return c != "" && utf8.RuneCountInString(c) <= model.MaxReviewComment
}

// Create stores the user's review.  ErrReviewExists when they already
// have one.
func (s *ReviewService) Create(ctx context.Context, owner model.User, rating int, comment string) (model.Review, error) {
	comment = strings.TrimSpace(comment)
	if !validRating(rating) || !validComment(comment) {
		return model.Review{}, ErrInvalidReview
	}

	_, err := s.reviews.GetByUser(ctx, owner.ID)
	switch {
	case err == nil:
		return model.Review{}, ErrReviewExists
	case !errors.Is(err, repository.ErrNotFound):
		return model.Review{}, err
	}

	r := model.Review{UserID: owner.ID, Rating: rating, Comment: comment}
	if err := s.reviews.Create(ctx, &r); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return model.Review{}, ErrReviewExists
		}
		return model.Review{}, err
	}
	r.User = authorOf(owner)
	return r, nil
}

// GetMine returns the user's review, or nil when they have none.
func (s *ReviewService) GetMine(ctx context.Context, owner model.User) (*model.Review, error) {
	r, err := s.reviews.GetByUser(ctx, owner.ID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	r.User = authorOf(owner)
	return &r, nil
}

// Update applies p to the user's review.  repository.ErrNotFound when
// they have none.
func (s *ReviewService) Update(ctx context.Context, owner model.User, p ReviewPatch) (model.Review, error) {
	r, err := s.reviews.GetByUser(ctx, owner.ID)
	if err != nil {
		return model.Review{}, err
	}
	if p.Rating != nil {
		if !validRating(*p.Rating) {
			return model.Review{}, ErrInvalidReview
		}
		r.Rating = *p.Rating
	}
	if p.Comment != nil {
		c := strings.TrimSpace(*p.Comment)
		if !validComment(c) {
			return model.Review{}, ErrInvalidReview
		}
		r.Comment = c
	}
	if err := s.reviews.Update(ctx, &r); err != nil {
		return model.Review{}, err
	}
	r.User = authorOf(owner)
	return r, nil
}

// Delete removes the user's review.  repository.ErrNotFound when none.
func (s *ReviewService) Delete(ctx context.Context, owner model.User) error {
	return s.reviews.DeleteByUser(ctx, owner.ID)
}

// List returns every review newest first with the author's names.
func (s *ReviewService) List(ctx context.Context) ([]model.Review, error) {
	list, err := s.reviews.List(ctx)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(list))
	for _, r := range list {
		ids = append(ids, r.UserID)
	}
	users, err := s.users.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range list {
		if u, ok := users[list[i].UserID]; ok {
			list[i].User = authorOf(u)
		}
	}
	return list, nil
}

// authorOf is the public projection of a reviewer: names only.
func authorOf(u model.User) *model.UserSummary {
	return &model.UserSummary{ID: u.ID, FirstName: u.FirstName, LastName: u.LastName}
}
