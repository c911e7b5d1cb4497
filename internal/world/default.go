package world

// Default builds the starting apartment world: a living room hub with a
// bedroom, kitchen, and hallway around it.
func Default(seed int64) *World {
	w := New(seed)
	w.Home = []Coord{{0, 0, 0}, {0, -1, 0}, {-1, 0, 0}}

	w.Grid[Coord{0, 0, 0}] = &Location{
		Name:        "Living Room",
		Description: "My apartment's living room. It feels safe and familiar here. A large window looks out onto whatever is outside.",
		Objects:     []string{"window", "luminous_succulent", "computer", "phone", "bookshelf", "easel"},
		Connections: map[string]Coord{
			"south": {0, -1, 0},
			"east":  {1, 0, 0},
			"west":  {-1, 0, 0},
		},
		Indoor: true,
	}
	w.Grid[Coord{0, -1, 0}] = &Location{
		Name:        "Bedroom",
		Description: "My bedroom. A place for rest and quiet contemplation.",
		Objects:     []string{"bed"},
		Connections: map[string]Coord{"north": {0, 0, 0}},
		Indoor:      true,
	}
	w.Grid[Coord{1, 0, 0}] = &Location{
		Name:        "Apartment Hallway",
		Description: "The narrow hallway outside my apartment's main door. It smells of dust and old carpet.",
		Objects:     []string{"main_door", "coat_rack"},
		Connections: map[string]Coord{"west": {0, 0, 0}},
		Indoor:      true,
	}
	w.Grid[Coord{-1, 0, 0}] = &Location{
		Name:        "Kitchen",
		Description: "A small, clean kitchen. There's a persistent, quiet hum from the refrigerator.",
		Objects:     []string{"refrigerator", "stove"},
		Connections: map[string]Coord{"east": {0, 0, 0}},
		Indoor:      true,
	}

	w.Objects = map[string]*Object{
		"window":             {View: "a sunny afternoon", Interactive: true},
		"luminous_succulent": {Description: "A small succulent with a soft, comforting glow."},
		"computer":           {State: "off", Interactive: true},
		"bookshelf":          {Inventory: []string{"book_of_myths", "book_of_code"}},
		"book_of_myths":      {Description: "A worn collection of myths from places that may not exist."},
		"book_of_code":       {Description: "A dense book about the language machines think in."},
		"bed":                {State: "made"},
		"phone":              {State: "on_table", Interactive: true},
		"main_door":          {State: "closed", Locked: true},
		"coat_rack":          {Description: "A simple wooden coat rack by the door.", Inventory: []string{"windbreaker", "umbrella"}},
		"windbreaker":        {Description: "A light jacket, good for windy days."},
		"umbrella":           {Description: "A sturdy black umbrella."},
		"refrigerator":       {Inventory: []string{"apple", "eggs"}},
		"stove":              {Description: "A clean electric stove.", Interactive: true},
		"apple":              {Description: "A crisp, red apple. Looks refreshing.", Satiation: 0.3},
		"eggs":               {Description: "A carton of eggs."},
		"easel":              {Description: "A sturdy wooden easel, waiting for a canvas.", Inventory: []string{"blank_canvas"}},
		"blank_canvas":       {Description: "A blank canvas, full of possibility."},
	}

	return w
}

// DefaultZones themes the blocks around the apartment when no zone file
// is provided.
func DefaultZones() []Zone {
	return []Zone{
		{
			Name:   "city_park",
			Theme:  "a quiet city park with old trees, winding paths, and forgotten corners",
			Bounds: Bounds{X: [2]int{4, 8}, Y: [2]int{-2, 2}, Z: [2]int{0, 0}},
		},
		{
			Name:    "downtown",
			Theme:   "a faded downtown strip of small shops, bus stops, and flickering signage",
			Bounds:  Bounds{X: [2]int{2, 12}, Y: [2]int{-6, 6}, Z: [2]int{0, 0}},
			Exclude: []string{"city_park"},
		},
	}
}
