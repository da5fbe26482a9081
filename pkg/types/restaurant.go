package types

import "strings"

// Kitchen types. Persisted as plain strings.
const (
	KitchenItalian       = "italian"
	KitchenJapanese      = "japanese"
	KitchenMexican       = "mexican"
	KitchenColombian     = "colombian"
	KitchenIndian        = "indian"
	KitchenInternational = "international"
)

// KitchenTypes lists the accepted kitchen types in display order.
var KitchenTypes = []string{
	KitchenItalian,
	KitchenJapanese,
	KitchenMexican,
	KitchenColombian,
	KitchenIndian,
	KitchenInternational,
}

var validKitchenTypes = map[string]bool{
	KitchenItalian:       true,
	KitchenJapanese:      true,
	KitchenMexican:       true,
	KitchenColombian:     true,
	KitchenIndian:        true,
	KitchenInternational: true,
}

// ValidKitchenType reports whether kitchenType is one of KitchenTypes.
func ValidKitchenType(kitchenType string) bool {
	return validKitchenTypes[kitchenType]
}

// KitchenTypeList returns the accepted kitchen types joined for messages.
func KitchenTypeList() string {
	return strings.Join(KitchenTypes, ", ")
}

// Restaurant holds an ordered set of dish references. The restaurant does not
// own the dishes: removing one from the set leaves the dish itself in place.
type Restaurant struct {
	RestaurantID string `json:"restaurant_id"` // UUID v7, generated on creation.
	Name         string `json:"name"`
	Address      string `json:"address"`
	KitchenType  string `json:"kitchen_type"`
	WebsiteURL   string `json:"website_url"`

	// Dishes in insertion order. Duplicates are kept: adding the same dish
	// twice yields two entries. Only populated when the restaurant was
	// loaded with associations; a loaded empty set encodes as [] and an
	// unloaded one is left out.
	Dishes []*Dish `json:"dishes,omitzero"`
}

// Clone returns a copy of the restaurant with its own Dishes slice, so that
// callers can mutate the set without affecting stored state.
func (r *Restaurant) Clone() *Restaurant {
	if r == nil {
		return nil
	}
	cp := *r
	if r.Dishes != nil {
		cp.Dishes = make([]*Dish, len(r.Dishes))
		for i, d := range r.Dishes {
			cp.Dishes[i] = d.Clone()
		}
	}
	return &cp
}

// Merge copies every non-empty field of patch over r. Identity and the dish
// set are not merged.
func (r *Restaurant) Merge(patch *Restaurant) {
	if patch == nil {
		return
	}
	if patch.Name != "" {
		r.Name = patch.Name
	}
	if patch.Address != "" {
		r.Address = patch.Address
	}
	if patch.KitchenType != "" {
		r.KitchenType = patch.KitchenType
	}
	if patch.WebsiteURL != "" {
		r.WebsiteURL = patch.WebsiteURL
	}
}

// FindDish returns the first member of the dish set with the given ID, or
// nil when the dish is not a member.
func (r *Restaurant) FindDish(dishID string) *Dish {
	for _, d := range r.Dishes {
		if d != nil && d.DishID == dishID {
			return d
		}
	}
	return nil
}

// HasDish reports whether the dish is a member of the set.
func (r *Restaurant) HasDish(dishID string) bool {
	return r.FindDish(dishID) != nil
}

// AddDish appends the dish to the set. No de-duplication is done.
func (r *Restaurant) AddDish(d *Dish) {
	r.Dishes = append(r.Dishes, d)
}

// RemoveDish drops every member with the given ID and returns how many were
// removed. The resulting set is never nil.
func (r *Restaurant) RemoveDish(dishID string) int {
	kept := make([]*Dish, 0, len(r.Dishes))
	for _, d := range r.Dishes {
		if d != nil && d.DishID == dishID {
			continue
		}
		kept = append(kept, d)
	}
	removed := len(r.Dishes) - len(kept)
	r.Dishes = kept
	return removed
}

// DishIDs returns the IDs of the dish set in order.
func (r *Restaurant) DishIDs() []string {
	ids := make([]string, 0, len(r.Dishes))
	for _, d := range r.Dishes {
		if d != nil {
			ids = append(ids, d.DishID)
		}
	}
	return ids
}
