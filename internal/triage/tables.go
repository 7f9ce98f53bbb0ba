package triage

// Complaint categories. The order of CategoryKeywords is load-bearing: when
// two categories score equally, the earlier entry wins, so Table entries are
// a slice rather than a map.
const (
	CategoryGarbageDump     = "Garbage dump"
	CategoryYellowSpot      = "Yellow Spot (Public Urination Spot)"
	CategorySepticOverflow  = "Overflow of Septic Tanks (New)"
	CategorySewerageFlow    = "Overflow of Sewerage or Storm Water"
	CategoryDeadAnimals     = "Dead animal(s)"
	CategoryDustbins        = "Dustbins not cleaned"
	CategoryGarbageVehicle  = "Garbage vehicle not arrived"
	CategorySweeping        = "Sweeping not done"
	CategoryToiletPower     = "No electricity in public toilet(s)"
	CategoryTrafficViolation = "Traffic Violation"
	CategoryPothole         = "Pothole"
	CategoryWaterLeak       = "Water Leak"
	CategoryGarbage         = "Garbage"
	CategoryStreetLight     = "Street Light"
	CategoryOthers          = "Others"
)

// Categories lists every category a complaint may carry, including the
// fallback. Kept closed: adding a category here requires a keyword entry and
// a department mapping for it to reach any official queue.
var Categories = []string{
	CategoryGarbageDump,
	CategoryYellowSpot,
	CategorySepticOverflow,
	CategorySewerageFlow,
	CategoryDeadAnimals,
	CategoryDustbins,
	CategoryGarbageVehicle,
	CategorySweeping,
	CategoryToiletPower,
	CategoryTrafficViolation,
	CategoryPothole,
	CategoryWaterLeak,
	CategoryGarbage,
	CategoryStreetLight,
	CategoryOthers,
}

// IsCategory reports whether category is a member of the closed set.
func IsCategory(category string) bool {
	for _, c := range Categories {
		if c == category {
			return true
		}
	}
	return false
}

// CategoryEntry associates one category with its trigger keywords.
type CategoryEntry struct {
	Category string
	Keywords []string
}

// Table parameterizes the classifier so alternate keyword sets can be swapped
// in without touching the scoring logic.
type Table struct {
	Categories      []CategoryEntry
	SeverityHigh    []string
	SeverityMedium  []string
	DefaultCategory string
}

// DefaultTable returns the production keyword table.
func DefaultTable() Table {
	return Table{
		Categories: []CategoryEntry{
			{CategoryGarbageDump, []string{"garbage", "trash", "rubbish", "dump", "waste", "plastic", "food", "smell", "stink"}},
			{CategoryYellowSpot, []string{"urine", "pee", "urination", "yellow spot", "smell", "wall"}},
			{CategorySepticOverflow, []string{"septic", "tank", "leak", "overflow", "sewage"}},
			{CategorySewerageFlow, []string{"sewer", "storm", "drain", "clogged", "water", "gutter", "block"}},
			{CategoryDeadAnimals, []string{"dead", "animal", "dog", "cat", "cow", "rat", "carcass", "body"}},
			{CategoryDustbins, []string{"dustbin", "bin", "full", "overflowing"}},
			{CategoryGarbageVehicle, []string{"vehicle", "truck", "van", "collect", "driver", "came", "come"}},
			{CategorySweeping, []string{"sweep", "broom", "dust", "dirty road", "street"}},
			{CategoryToiletPower, []string{"light", "electricity", "dark", "bulb", "power", "toilet"}},
		},
		SeverityHigh:    []string{"fire", "blood", "accident", "dead", "danger", "spark", "explosion", "blocked road", "urgent", "emergency"},
		SeverityMedium:  []string{"smell", "stink", "overflow", "leak", "mess"},
		DefaultCategory: CategoryOthers,
	}
}

// DepartmentCategories maps each department to the categories it handles.
// Deliberately many-to-many: water-borne overflow is visible to both
// Sanitation and Water. Categories absent from every set (e.g. Others) are
// visible only to admins.
var DepartmentCategories = map[string][]string{
	"Health": {
		CategoryDeadAnimals,
		CategoryGarbage,
		CategoryToiletPower,
	},
	"Sanitation": {
		CategoryGarbageDump,
		CategoryYellowSpot,
		CategorySepticOverflow,
		CategorySewerageFlow,
		CategoryDustbins,
		CategoryGarbageVehicle,
		CategorySweeping,
		CategoryGarbage,
	},
	"Infrastructure": {
		CategoryPothole,
		CategoryStreetLight,
		CategoryToiletPower,
	},
	"Traffic": {
		CategoryTrafficViolation,
	},
	"Water": {
		CategoryWaterLeak,
		CategorySepticOverflow,
		CategorySewerageFlow,
	},
}

// CategoriesForDepartment resolves the category set an official with the
// given department may see. Unknown departments and "None" resolve to
// ok=false so callers fail closed instead of leaking the full queue.
func CategoriesForDepartment(department string) ([]string, bool) {
	cats, ok := DepartmentCategories[department]
	if !ok || len(cats) == 0 {
		return nil, false
	}
	return cats, true
}
