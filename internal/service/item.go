package service

import (
	"context"
	"errors"
	"strings"

	"github.com/gosimple/slug"

	"github.com/sickfits/storefront-go/internal/model"
	"github.com/sickfits/storefront-go/internal/repository"
)

var (
	ErrTitleRequired = errors.New("title is required")
	ErrInvalidPrice  = errors.New("price must be greater than zero")
	ErrItemNotFound  = errors.New("item not found")
)

const (
	defaultItemsPerPage = 20
	maxItemsPerPage     = 100
)

// ItemService implements catalog item operations.
type ItemService struct {
	items ItemStore
}

// NewItemService creates a new ItemService.
func NewItemService(items ItemStore) *ItemService {
	return &ItemService{items: items}
}

// Create adds a catalog item owned by the caller.
func (s *ItemService) Create(ctx context.Context, caller *model.User, req model.ItemRequest) (*model.Item, error) {
	if err := authorizeOperation(caller, OpCreateItem); err != nil {
		return nil, err
	}

	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, ErrTitleRequired
	}
	if req.Price <= 0 {
		return nil, ErrInvalidPrice
	}

	item := &model.Item{
		Title:       title,
		Description: req.Description,
		Image:       req.Image,
		LargeImage:  req.LargeImage,
		Price:       req.Price,
		Slug:        slug.Make(title),
		UserID:      caller.ID,
	}

	if err := s.items.Create(ctx, item); err != nil {
		return nil, err
	}

	return item, nil
}

// Update edits an item's fields. Empty fields and a zero price are left
// untouched. Any authenticated user may edit any item; there is no ownership
// check on updates.
func (s *ItemService) Update(ctx context.Context, caller *model.User, id string, req model.ItemRequest) (*model.Item, error) {
	if err := authorizeOperation(caller, OpUpdateItem); err != nil {
		return nil, err
	}

	item, err := s.items.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrItemNotFound) {
			return nil, ErrItemNotFound
		}
		return nil, err
	}

	if title := strings.TrimSpace(req.Title); title != "" {
		item.Title = title
		item.Slug = slug.Make(title)
	}
	if req.Description != "" {
		item.Description = req.Description
	}
	if req.Image != "" {
		item.Image = req.Image
	}
	if req.LargeImage != "" {
		item.LargeImage = req.LargeImage
	}
	if req.Price > 0 {
		item.Price = req.Price
	}

	if err := s.items.Update(ctx, item); err != nil {
		if errors.Is(err, repository.ErrItemNotFound) {
			return nil, ErrItemNotFound
		}
		return nil, err
	}

	return item, nil
}

// Delete removes an item. The caller must own it or hold ADMIN or ITEMDELETE.
func (s *ItemService) Delete(ctx context.Context, caller *model.User, id string) error {
	if caller == nil {
		return ErrNotAuthenticated
	}

	item, err := s.items.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrItemNotFound) {
			return ErrItemNotFound
		}
		return err
	}

	if err := authorizeOwnerOr(caller, item.UserID, OpDeleteItem); err != nil {
		return err
	}

	if err := s.items.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrItemNotFound) {
			return ErrItemNotFound
		}
		return err
	}

	return nil
}

// Get retrieves a single item; no identity required.
func (s *ItemService) Get(ctx context.Context, id string) (*model.Item, error) {
	item, err := s.items.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrItemNotFound) {
			return nil, ErrItemNotFound
		}
		return nil, err
	}
	return item, nil
}

// List retrieves a page of items, newest first. Page numbering starts at 1.
func (s *ItemService) List(ctx context.Context, page, perPage int) ([]model.Item, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = defaultItemsPerPage
	}
	if perPage > maxItemsPerPage {
		perPage = maxItemsPerPage
	}

	return s.items.List(ctx, perPage, (page-1)*perPage)
}
