package sqlite

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/drillsrs/drill/store"
)

func TestTagNameLookupIsCaseSensitive(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	deck, _ := seedDeck(t, s, "one")

	// Names are unique per deck case-sensitively, so both may exist and a
	// lookup must return exactly the one asked for.
	for _, name := range []string{"Verbs", "verbs"} {
		_, err := s.CreateTag(ctx, &store.Tag{DeckID: deck.ID, Name: name, Color: store.DefaultTagColor})
		require.NoError(t, err)
	}

	tag, err := s.GetTagByName(ctx, deck, "verbs")
	require.NoError(t, err)
	assert.Equal(t, "verbs", tag.Name)

	tag, err = s.GetTagByName(ctx, deck, "Verbs")
	require.NoError(t, err)
	assert.Equal(t, "Verbs", tag.Name)

	_, err = s.GetTagByName(ctx, deck, "VERBS")
	require.Error(t, err)
}
