package seed

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"

	"graetzlmap/internal/domain"
)

type CategoryCreator interface {
	Create(ctx context.Context, c domain.Category) (*domain.Category, error)
}

type TagCreator interface {
	Create(ctx context.Context, t domain.Tag) (*domain.Tag, error)
}

func text(de, en string) domain.LocalizedText {
	return domain.Localized(map[string]string{"de": de, "en": en})
}

// DefaultCategories is the starter taxonomy for a fresh map.
var DefaultCategories = []domain.Category{
	{Key: "cafe", Name: text("Kaffeehaus", "Coffee house"), Emoji: "☕", Color: "#8b5a2b"},
	{Key: "restaurant", Name: text("Restaurant", "Restaurant"), Emoji: "🍽️", Color: "#c0392b"},
	{Key: "bar", Name: text("Bar & Beisl", "Bar & pub"), Emoji: "🍷", Color: "#8e44ad"},
	{Key: "market", Name: text("Markt", "Market"), Emoji: "🥕", Color: "#27ae60"},
	{Key: "park", Name: text("Park", "Park"), Emoji: "🌳", Color: "#2e8b57"},
	{Key: "culture", Name: text("Kultur", "Culture"), Emoji: "🎭", Color: "#2c3e50"},
	{Key: "shop", Name: text("Geschäft", "Shop"), Emoji: "🛍️", Color: "#d35400"},
	{Key: "viewpoint", Name: text("Aussicht", "Viewpoint"), Emoji: "🔭", Color: "#2980b9"},
}

var DefaultTags = []domain.Tag{
	{Key: "vegan", Name: text("Vegan", "Vegan")},
	{Key: "wifi", Name: text("WLAN", "Wi-Fi")},
	{Key: "terrace", Name: text("Schanigarten", "Terrace")},
	{Key: "dog-friendly", Name: text("Hundefreundlich", "Dog friendly")},
	{Key: "kid-friendly", Name: text("Kinderfreundlich", "Kid friendly")},
	{Key: "accessible", Name: text("Barrierefrei", "Wheelchair accessible")},
	{Key: "cash-only", Name: text("Nur Bargeld", "Cash only")},
}

// Result counts what Apply added; existing keys are left untouched.
type Result struct {
	Categories int
	Tags       int
}

// Apply creates the default categories and tags. It is idempotent: keys that
// already exist are skipped, so edits made in the CMS survive a re-run.
func Apply(ctx context.Context, categories CategoryCreator, tags TagCreator, logger *log.Logger) (Result, error) {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	var res Result
	for _, c := range DefaultCategories {
		_, err := categories.Create(ctx, c)
		switch {
		case errors.Is(err, domain.ErrConflict):
			logger.Printf("seed: category key=%s exists", c.Key)
		case err != nil:
			return res, fmt.Errorf("seed category %s: %w", c.Key, err)
		default:
			res.Categories++
		}
	}
	for _, t := range DefaultTags {
		_, err := tags.Create(ctx, t)
		switch {
		case errors.Is(err, domain.ErrConflict):
			logger.Printf("seed: tag key=%s exists", t.Key)
		case err != nil:
			return res, fmt.Errorf("seed tag %s: %w", t.Key, err)
		default:
			res.Tags++
		}
	}
	return res, nil
}
