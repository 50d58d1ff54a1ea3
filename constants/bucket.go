package constants

import (
	"strings"
)

// Bucket is one category in the fixed cost taxonomy. The set is closed:
// classifier output that is not in this set is coerced to Other.
type Bucket string

const (
	// Interior work
	Demo                 Bucket = "demo"
	Drywall              Bucket = "drywall"
	PaintingInterior     Bucket = "painting_interior"
	FlooringCarpet       Bucket = "flooring_carpet"
	FlooringHard         Bucket = "flooring_hard"
	Tile                 Bucket = "tile"
	TrimFinish           Bucket = "trim_finish"
	DoorsWindows         Bucket = "doors_windows"
	CabinetsCountertops  Bucket = "cabinets_countertops"
	Plumbing             Bucket = "plumbing"
	Electrical           Bucket = "electrical"
	HVAC                 Bucket = "hvac"
	Insulation           Bucket = "insulation"
	Appliances           Bucket = "appliances"
	Contents             Bucket = "contents"

	// Exterior work
	ExteriorRoofing          Bucket = "exterior_roofing"
	ExteriorSiding           Bucket = "exterior_siding"
	ExteriorPainting         Bucket = "exterior_painting"
	ExteriorWindowsDoors     Bucket = "exterior_windows_doors"
	ExteriorFencing          Bucket = "exterior_fencing"
	ExteriorConcreteFlatwork Bucket = "exterior_concrete_flatwork"
	Landscaping              Bucket = "landscaping"

	// Temporary / pre-repair
	Mitigation        Bucket = "mitigation"
	EquipmentRentals  Bucket = "equipment_rentals"
	TemporaryServices Bucket = "temporary_services"

	// Financial / administrative
	Taxes               Bucket = "taxes"
	OverheadProfit      Bucket = "overhead_profit"
	InsuranceFinancials Bucket = "insurance_financials"

	// Catch-all
	Other Bucket = "other"
)

// allBuckets is the presentation order: ledger output always iterates this
// slice, never a map, so ordering is deterministic across runs.
var allBuckets = []Bucket{
	Demo,
	Drywall,
	PaintingInterior,
	FlooringCarpet,
	FlooringHard,
	Tile,
	TrimFinish,
	DoorsWindows,
	CabinetsCountertops,
	Plumbing,
	Electrical,
	HVAC,
	Insulation,
	Appliances,
	Contents,
	ExteriorRoofing,
	ExteriorSiding,
	ExteriorPainting,
	ExteriorWindowsDoors,
	ExteriorFencing,
	ExteriorConcreteFlatwork,
	Landscaping,
	Mitigation,
	EquipmentRentals,
	TemporaryServices,
	Taxes,
	OverheadProfit,
	InsuranceFinancials,
	Other,
}

var bucketSet = func() map[Bucket]struct{} {
	s := make(map[Bucket]struct{}, len(allBuckets))
	for _, b := range allBuckets {
		s[b] = struct{}{}
	}
	return s
}()

// AllBuckets returns the taxonomy in declared (presentation) order.
func AllBuckets() []Bucket {
	out := make([]Bucket, len(allBuckets))
	copy(out, allBuckets)
	return out
}

func AsStringSlice() []string {
	result := make([]string, len(allBuckets))
	for i, b := range allBuckets {
		result[i] = string(b)
	}
	return result
}

// IsBucket reports whether the label is a member of the closed taxonomy.
func IsBucket(label string) bool {
	_, ok := bucketSet[Bucket(label)]
	return ok
}

// Canonicalize maps a raw classifier label onto the taxonomy. Unknown labels
// come back as Other with ok=false; the caller decides whether that matters.
func Canonicalize(input string) (Bucket, bool) {
	if input == "" {
		return Other, false
	}

	normalized := strings.ToLower(strings.TrimSpace(input))

	if _, ok := bucketSet[Bucket(normalized)]; ok {
		return Bucket(normalized), true
	}

	// synonyms map for labels the model drifts toward
	synonyms := map[string]Bucket{
		"demolition":       Demo,
		"paint":            PaintingInterior,
		"painting":         PaintingInterior,
		"carpet":           FlooringCarpet,
		"flooring":         FlooringHard,
		"roofing":          ExteriorRoofing,
		"roof":             ExteriorRoofing,
		"siding":           ExteriorSiding,
		"fencing":          ExteriorFencing,
		"cabinets":         CabinetsCountertops,
		"countertops":      CabinetsCountertops,
		"water_mitigation": Mitigation,
		"tax":              Taxes,
		"sales_tax":        Taxes,
		"o&p":              OverheadProfit,
		"overhead":         OverheadProfit,
	}
	if b, ok := synonyms[normalized]; ok {
		return b, true
	}

	return Other, false
}
