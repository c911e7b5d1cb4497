package world

import "strings"

// Object is a concrete thing placed in the world. Attributes that do
// not apply to a given object simply stay zero.
type Object struct {
	Description string   `json:"description,omitempty"`
	State       string   `json:"state,omitempty"`
	Locked      bool     `json:"locked,omitempty"`
	Interactive bool     `json:"interactive,omitempty"`
	Satiation   float64  `json:"satiation,omitempty"` // >0 means edible
	Inventory   []string `json:"inventory,omitempty"`
	View        string   `json:"view,omitempty"` // what you see through it
}

// HasItem reports whether an object's inventory contains the item.
func (o *Object) HasItem(item string) bool {
	for _, it := range o.Inventory {
		if it == item {
			return true
		}
	}
	return false
}

// RemoveItem takes an item out of the object's inventory.
func (o *Object) RemoveItem(item string) bool {
	for i, it := range o.Inventory {
		if it == item {
			o.Inventory = append(o.Inventory[:i], o.Inventory[i+1:]...)
			return true
		}
	}
	return false
}

// ContainerOf finds the object at loc whose inventory holds the item.
func (w *World) ContainerOf(loc *Location, item string) *Object {
	for _, id := range loc.Objects {
		if obj := w.Objects[id]; obj != nil && obj.HasItem(item) {
			return obj
		}
	}
	return nil
}

// DisplayName turns an object id into prose ("street_lamp" → "street lamp").
func DisplayName(id string) string {
	return strings.ReplaceAll(id, "_", " ")
}

// objectTemplates is the static catalog consulted when a novel object id
// first appears in generated content.
var objectTemplates = map[string]Object{
	"vending_machine": {Description: "A dusty vending machine, humming quietly.", Interactive: true, Inventory: []string{"bag_of_chips"}},
	"bag_of_chips":    {Description: "A generic bag of salty chips.", Satiation: 0.2},
	"store_door":      {State: "closed"},
	"bench":           {Description: "A weathered wooden bench."},
	"street_lamp":     {Description: "A tall, black street lamp.", State: "off"},
	"puddle":          {Description: "A shimmering puddle of rainwater on the pavement."},
	"mailbox":         {Description: "A blue, official-looking mailbox.", Interactive: true},
	"bus_stop":        {Description: "A simple bus stop with a bench and a faded route map."},
	"withered_tree":   {Description: "A gnarled, leafless tree reaching up like skeletal fingers."},
	"discarded_tire":  {Description: "An old car tire lying on its side, collecting rainwater."},
	"chainlink_fence": {Description: "A rusted chainlink fence that looks easy to climb."},
	"timetable_sign":  {Description: "A faded bus schedule, rendered unreadable by sun and rain."},
	"garage_door":     {State: "closed", Locked: true},
	"old_car":         {Description: "A dusty, forgotten car. The tires are flat and the paint is peeling."},
	"easel":           {Description: "A sturdy wooden easel, waiting for a canvas.", Inventory: []string{"blank_canvas"}},
	"blank_canvas":    {Description: "A blank canvas, full of possibility."},
	"park_fountain":   {Description: "A stone fountain, water gently bubbling from its center."},
	"flickering_lightbulb": {Description: "A bare lightbulb that flickers intermittently, casting an unreliable light."},
}

// Register adds an object id to the registry if it is not already
// known, using the template catalog or a generic fallback description.
func (w *World) Register(id string) {
	if _, ok := w.Objects[id]; ok {
		return
	}
	if tpl, ok := objectTemplates[id]; ok {
		w.Objects[id] = cloneObject(tpl)
		return
	}
	w.Objects[id] = &Object{Description: "I see a " + DisplayName(id) + " here."}
}

func cloneObject(tpl Object) *Object {
	o := tpl
	o.Inventory = append([]string(nil), tpl.Inventory...)
	return &o
}
