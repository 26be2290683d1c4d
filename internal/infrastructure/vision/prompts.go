package vision

import (
	"fmt"
	"strings"

	"github.com/decorlens/backend/internal/domain"
)

func buildSelectionPrompt(input domain.VisionSelectionInput) string {
	var b strings.Builder

	fmt.Fprintf(&b, "You are an interior designer. Look at the room photo and choose up to %d products ", input.MaxItems)
	fmt.Fprintf(&b, "from the candidate list that best fit a %s style for this room.\n\n", input.Style)
	fmt.Fprintf(&b, "Every one of these categories must be covered by at least one product: %s\n", strings.Join(input.RequiredCategories, ", "))
	b.WriteString("Only one ceiling-mounted light may be chosen. Use only ids from the list.\n\n")
	b.WriteString("Candidates:\n")

	for _, c := range input.Candidates {
		p := c.Product
		fmt.Fprintf(&b, "- id=%s | name=%s | category=%s | target=%s | price=%.0f | description=%s | keywords=%s\n",
			p.ID, p.Name, p.Category, c.TargetCategory, p.Price(),
			truncate(strings.ReplaceAll(p.Description, "\n", " "), 120),
			strings.Join(p.Keywords, ", "))
	}

	b.WriteString(`
Return JSON only:
{"selectedProducts":[{"id":"...","reason":"one short sentence"}]}
`)
	return b.String()
}

func buildDetectionPrompt() string {
	return `List every piece of furniture, lighting, rug, plant and decor visible in this image.
Number the items from top-left to bottom-right. Positions are percentages of the image
width (x) and height (y) measured from the top-left corner, from 0 to 100.

Return JSON only:
{"items":[{"number":1,"category":"sofa","description":"...","color":"...","style":"...","position":{"x":50,"y":70}}]}
`
}
