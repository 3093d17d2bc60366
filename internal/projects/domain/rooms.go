package domain

// Room identifies which room of the build a specification covers.
type Room string

// The room catalog offered by the add-room form. "other" is the escape
// hatch for anything not listed.
var roomLabels = map[Room]string{
	"barn":                 "Barn",
	"basement":             "Basement",
	"bathroom1":            "Bathroom 1",
	"bathroom2":            "Bathroom 2",
	"bathroom3":            "Bathroom 3",
	"bathroom4":            "Bathroom 4",
	"bathroom5":            "Bathroom 5",
	"bathroom6":            "Bathroom 6",
	"bedroom1":             "Bedroom 1",
	"bedroom2":             "Bedroom 2",
	"bedroom3":             "Bedroom 3",
	"bedroom4":             "Bedroom 4",
	"bedroom5":             "Bedroom 5",
	"bedroom6":             "Bedroom 6",
	"bedroom7":             "Bedroom 7",
	"bunk":                 "Bunk",
	"butler":               "Butler Pantry",
	"craft":                "Craft Room",
	"den":                  "Den",
	"dining":               "Dining Room",
	"entry":                "Entry",
	"gameroom":             "Game Room",
	"garage":               "Garage",
	"ghbathr1":             "Guest House Bathroom 1",
	"ghbathr2":             "Guest House Bathroom 2",
	"ghbedr1":              "Guest House Bedroom 1",
	"ghbedr2":              "Guest House Bedroom 2",
	"ghkitchen":            "Guest House Kitchen",
	"ghlaundry":            "Guest House Laundry",
	"ghliving":             "Guest House Living",
	"ghpatio":              "Guest House Patio",
	"homegym":              "Home Gym",
	"kitchen":              "Kitchen",
	"laundry":              "Laundry",
	"library":              "Library",
	"living":               "Living Room",
	"loft":                 "Loft",
	"masterbedroom1":       "Master Bedroom 1",
	"masterbedroom2":       "Master Bedroom 2",
	"masterbedroomcloset1": "Master Bedroom Closet 1",
	"masterbedroomcloset2": "Master Bedroom Closet 2",
	"media":                "Media",
	"mud":                  "Mud Room",
	"office1":              "Office 1",
	"office2":              "Office 2",
	"pantry":               "Pantry",
	"patio1":               "Patio 1",
	"patio2":               "Patio 2",
	"playroom":             "Play Room",
	"phbathroom":           "Pool House Bathroom",
	"phbedroom":            "Pool House Bedroom",
	"phkitchen":            "Pool House Kitchen",
	"phlaundry":            "Pool House Laundry",
	"phliving":             "Pool House Living",
	"phoutdoorshower":      "Pool House Outdoor Shower",
	"phpatio":              "Pool House Patio",
	"porch":                "Porch",
	"powder":               "Powder Room",
	"relaxation":           "Relaxation",
	"studio":               "Studio",
	"sun":                  "Sun Room",
	"wine":                 "Wine Cellar",
	"other":                "Other",
}

func (r Room) Valid() bool {
	_, ok := roomLabels[r]
	return ok
}

func (r Room) Label() string {
	return roomLabels[r]
}
