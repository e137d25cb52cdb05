package scoring

import (
	"fmt"
	"strings"

	"github.com/vichi100/style-api-server/internal/domain"
)

// itemDescriptor renders one garment into a labelled descriptor line,
// e.g. "Top: Streetwear (T-Shirt) oversized cotton".
func itemDescriptor(label string, item *domain.OutfitItem) string {
	parts := []string{label + ":"}
	if item.CustomCategory != "" {
		parts = append(parts, item.CustomCategory)
	}
	if item.SpecificCategory != "" {
		parts = append(parts, fmt.Sprintf("(%s)", item.SpecificCategory))
	}
	if item.Colors != "" {
		parts = append(parts, item.Colors)
	}
	if item.Tags != "" {
		parts = append(parts, item.Tags)
	}
	return strings.Join(parts, " ")
}

// outfitDescriptors builds the per-item descriptor lines for a query.
// The mood is appended separately by the caller so the mood gate can embed
// the items without it.
func outfitDescriptors(top, bottom *domain.OutfitItem) []string {
	var desc []string
	if top != nil {
		desc = append(desc, itemDescriptor("Top", top))
	}
	if bottom != nil {
		desc = append(desc, itemDescriptor("Bottom", bottom))
	}
	return desc
}
