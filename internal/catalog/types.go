package catalog

import "strconv"

// CategoryRole classifies a category for the listing projections: main
// items appear in the menu listing, drinks and sides in theirs. Combo
// repair on delete is keyed on the slot a reference sits in, not on the
// referenced item's role.
type CategoryRole string

const (
	RoleMain  CategoryRole = "main"
	RoleDrink CategoryRole = "drink"
	RoleSide  CategoryRole = "side"
	RoleCombo CategoryRole = "combo"
)

// Category is a menu section. Categories are created at bootstrap from the
// seed list and are not mutated in normal operation.
type Category struct {
	ID   int64
	Name string
	Role CategoryRole
}

// Item is a single menu entry.
type Item struct {
	ID          int64
	Name        string
	Description string
	Price       float64
	Photo       string
	CategoryID  int64
}

// Combo is a named bundle of up to three item references. Main is required;
// Drink and Side are optional (empty string when the slot is null). Price is
// derived: it always equals the sum of the present slots' item prices.
type Combo struct {
	ID    int64
	Name  string
	Price float64
	Main  string
	Drink string
	Side  string
}

// ItemInput carries the fields for a new item.
type ItemInput struct {
	Name        string
	Description string
	Price       float64
	Photo       string
	CategoryID  int64
}

// ComboInput carries the fields for a new combo. Drink and Side may be nil
// to leave the slot empty. The combo price is always computed from the
// referenced items' current prices, never supplied by the caller.
type ComboInput struct {
	Name  string
	Main  string
	Drink *string
	Side  *string
}

// UpdateItemFields is a partial update: nil fields are left untouched.
// Providing no field at all is an error (NO_FIELDS).
type UpdateItemFields struct {
	Name        *string
	Description *string
	Price       *float64
	Photo       *string
	CategoryID  *int64
}

// Empty reports whether no field is set.
func (f UpdateItemFields) Empty() bool {
	return f.Name == nil && f.Description == nil && f.Price == nil &&
		f.Photo == nil && f.CategoryID == nil
}

// ItemRefKind discriminates the two ways an item can be addressed.
type ItemRefKind int

const (
	// RefByID addresses an item by its numeric id.
	RefByID ItemRefKind = iota
	// RefByName addresses an item by its exact display name.
	RefByName
)

// ItemRef is a tagged variant with exactly two cases: an item is addressed
// either by numeric id or by exact display name. Construct with ByID or
// ByName; the zero value is not valid.
type ItemRef struct {
	Kind ItemRefKind
	ID   int64
	Name string
}

// ByID returns an ItemRef addressing an item by id.
func ByID(id int64) ItemRef {
	return ItemRef{Kind: RefByID, ID: id}
}

// ByName returns an ItemRef addressing an item by exact display name.
func ByName(name string) ItemRef {
	return ItemRef{Kind: RefByName, Name: name}
}

// String renders the reference for error messages.
func (r ItemRef) String() string {
	if r.Kind == RefByID {
		return "#" + strconv.FormatInt(r.ID, 10)
	}
	return r.Name
}
