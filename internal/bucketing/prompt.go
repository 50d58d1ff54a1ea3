package bucketing

import (
	"encoding/json"
	"strings"

	"github.com/claimlens/estimate-ledger/constants"
	"github.com/claimlens/estimate-ledger/internal/moneyline"
)

const systemPrompt = "You follow instructions exactly and output only strict JSON."

type promptItem struct {
	ID     int    `json:"id"`
	Amount string `json:"amount"`
	Text   string `json:"text"`
}

// buildPrompt renders the classification instructions plus the compact
// {id, amount, text} payload. Keep the payload small: the model classifies,
// it never sees more than it needs.
func buildPrompt(lines []moneyline.MoneyLine) string {
	items := make([]promptItem, 0, len(lines))
	for _, ml := range lines {
		items = append(items, promptItem{ID: ml.ID, Amount: ml.Amount.String(), Text: ml.Text})
	}
	payload, _ := json.Marshal(items)
	buckets, _ := json.Marshal(constants.AsStringSlice())

	var b strings.Builder
	b.WriteString("You are classifying construction estimate line-items into cost buckets.\n\n")
	b.WriteString("DEFINITIONS (IMPORTANT):\n")
	b.WriteString("- Each bucket represents a TRADE or MATERIAL SCOPE.\n")
	b.WriteString("- Include ONLY:\n")
	b.WriteString("  1) the core material or task itself, AND\n")
	b.WriteString("  2) materials and labor REQUIRED to install or complete that task.\n")
	b.WriteString("- Exclude:\n")
	b.WriteString("  - fixtures, enclosures, appliances, cabinetry, glazing, or specialty items that are a SEPARATE TRADE,\n")
	b.WriteString("    even if they appear nearby or in the same room.\n\n")
	b.WriteString("SCOPE BOUNDARY EXAMPLES:\n")
	b.WriteString("- TILE includes tile surface work and required install components\n")
	b.WriteString("  (substrate, setting materials, waterproofing, grout/sealer).\n")
	b.WriteString("- TILE does NOT include separate-trade items whose primary purpose is fixtures,\n")
	b.WriteString("  enclosures, cabinetry, glazing, plumbing, or electrical.\n\n")
	b.WriteString("- FLOORING HARD (WOOD) includes flooring material, finishing, and required prep/underlayment.\n")
	b.WriteString("- FLOORING HARD (WOOD) does NOT include unrelated finish carpentry, door work,\n")
	b.WriteString("  or other separate trades not required to install the flooring itself.\n\n")
	b.WriteString("RULES:\n")
	b.WriteString("- Choose EXACTLY ONE bucket for each item.\n")
	b.WriteString("- Allowed buckets (no others):\n")
	b.Write(buckets)
	b.WriteString("\n")
	b.WriteString("- Do NOT do any math.\n")
	b.WriteString("- Do NOT add or remove items.\n")
	b.WriteString("- If an item represents a separate trade or is not required to install the material,\n")
	b.WriteString("  choose 'other'.\n\n")
	b.WriteString("Return ONLY valid JSON with this exact shape:\n")
	b.WriteString("{\n")
	b.WriteString("  \"assignments\": [\n")
	b.WriteString("    {\"id\": 0, \"bucket\": \"flooring_carpet\"},\n")
	b.WriteString("    ...\n")
	b.WriteString("  ]\n")
	b.WriteString("}\n\n")
	b.WriteString("ITEMS:\n")
	b.Write(payload)
	return b.String()
}
