package domain

import "fmt"

// ActivityCategory is the closed set of activity kinds. The raw string is
// what goes over the wire; there is no numeric code.
type ActivityCategory string

const (
	CategoryPlaces     ActivityCategory = "Places"
	CategoryTours      ActivityCategory = "Tours"
	CategoryRestaurant ActivityCategory = "Restaurant"
	CategoryBar        ActivityCategory = "Bar"
	CategoryTravel     ActivityCategory = "Travel"
	CategoryHotel      ActivityCategory = "Hotel"
)

// Categories returns all members in display order.
func Categories() []ActivityCategory {
	return []ActivityCategory{
		CategoryPlaces,
		CategoryTours,
		CategoryRestaurant,
		CategoryBar,
		CategoryTravel,
		CategoryHotel,
	}
}

// ParseCategory converts a raw wire string into an ActivityCategory.
// Unrecognized strings are rejected — there is no default category.
func ParseCategory(raw string) (ActivityCategory, error) {
	c := ActivityCategory(raw)
	if !c.Valid() {
		return "", fmt.Errorf("%w: unknown activity category %q", ErrValidation, raw)
	}
	return c, nil
}

// Valid reports membership in the closed enumeration.
func (c ActivityCategory) Valid() bool {
	switch c {
	case CategoryPlaces, CategoryTours, CategoryRestaurant, CategoryBar, CategoryTravel, CategoryHotel:
		return true
	}
	return false
}

// Icon returns the display icon tag for the category.
func (c ActivityCategory) Icon() string {
	switch c {
	case CategoryPlaces:
		return "mappin.circle"
	case CategoryTours:
		return "figure.walk"
	case CategoryRestaurant:
		return "fork.knife"
	case CategoryBar:
		return "wineglass"
	case CategoryTravel:
		return "airplane"
	case CategoryHotel:
		return "bed.double"
	}
	return ""
}

func (c ActivityCategory) String() string { return string(c) }
