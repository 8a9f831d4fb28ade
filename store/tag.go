package store

import (
	"context"
	"strings"

	"github.com/drillsrs/drill/internal/errkind"
)

// TagColors is the fixed palette a tag color is selected from.
var TagColors = []string{"grey", "blue", "green", "red", "aqua", "pink", "yellow"}

// DefaultTagColor is the color assigned to newly created tags.
const DefaultTagColor = "grey"

// Tag is the object representing a deck-scoped tag.
type Tag struct {
	ID     int32
	DeckID int32
	Name   string
	Color  string
}

// FindTag is the find condition for tag.
type FindTag struct {
	ID     *int32
	DeckID *int32
	Name   *string
}

// UpdateTag is the update request for tag.
type UpdateTag struct {
	ID    int32
	Name  *string
	Color *string
}

// DeleteTag is the delete request for tag.
type DeleteTag struct {
	ID int32
}

// IsValidTagColor reports whether color belongs to the palette.
func IsValidTagColor(color string) bool {
	for _, c := range TagColors {
		if strings.EqualFold(c, color) {
			return true
		}
	}
	return false
}

// CreateTag creates a new tag.
func (s *Store) CreateTag(ctx context.Context, create *Tag) (*Tag, error) {
	return s.driver.CreateTag(ctx, create)
}

// ListTags lists tags with filter.
func (s *Store) ListTags(ctx context.Context, find *FindTag) ([]*Tag, error) {
	return s.driver.ListTags(ctx, find)
}

// GetTagByName gets a tag in a deck by its name.
func (s *Store) GetTagByName(ctx context.Context, deck *Deck, name string) (*Tag, error) {
	list, err := s.driver.ListTags(ctx, &FindTag{DeckID: &deck.ID, Name: &name})
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, errkind.New(errkind.CodeTagNotFound, "A tag with name %q doesn't exist", name)
	}
	return list[0], nil
}

// UpdateTag updates a tag.
func (s *Store) UpdateTag(ctx context.Context, update *UpdateTag) error {
	return s.driver.UpdateTag(ctx, update)
}

// DeleteTag deletes a tag and detaches it from all cards.
func (s *Store) DeleteTag(ctx context.Context, delete *DeleteTag) error {
	return s.driver.DeleteTag(ctx, delete)
}

// CountTagUsages counts how many cards carry the tag.
func (s *Store) CountTagUsages(ctx context.Context, tagID int32) (int, error) {
	return s.driver.CountTagUsages(ctx, tagID)
}
