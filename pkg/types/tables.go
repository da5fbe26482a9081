package types

// Standard table names for Cupboard.GetTable.
const (
	DishesTable      = "dishes"
	RestaurantsTable = "restaurants"
)

// StandardTableNames lists all standard table names for enumeration.
var StandardTableNames = []string{
	DishesTable,
	RestaurantsTable,
}
