package sqlite

// Schema DDL. The CHECK constraints repeat the entity invariants so that
// records violating them are rejected even when written outside the catalog
// services (for example, hand-edited JSONL files).
const (
	createDishes = `CREATE TABLE dishes (
    dish_id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    description TEXT NOT NULL,
    cost REAL NOT NULL CHECK (cost > 0),
    category TEXT NOT NULL CHECK (category IN ('starter', 'main', 'dessert', 'beverage'))
);`

	createRestaurants = `CREATE TABLE restaurants (
    restaurant_id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    address TEXT NOT NULL,
    kitchen_type TEXT NOT NULL CHECK (kitchen_type IN ('italian', 'japanese', 'mexican', 'colombian', 'indian', 'international')),
    website_url TEXT NOT NULL
);`

	// restaurant_dishes is the join table. position keeps insertion order
	// and lets the same dish appear more than once in a restaurant's set.
	createRestaurantDishes = `CREATE TABLE restaurant_dishes (
    restaurant_id TEXT NOT NULL,
    position INTEGER NOT NULL,
    dish_id TEXT NOT NULL,
    PRIMARY KEY (restaurant_id, position),
    FOREIGN KEY (restaurant_id) REFERENCES restaurants(restaurant_id) ON DELETE CASCADE,
    FOREIGN KEY (dish_id) REFERENCES dishes(dish_id) ON DELETE CASCADE
);`
)

// Index DDL.
const (
	idxRestaurantDishesDish = `CREATE INDEX idx_restaurant_dishes_dish ON restaurant_dishes(dish_id);`
	idxDishesCategory       = `CREATE INDEX idx_dishes_category ON dishes(category);`
	idxRestaurantsKitchen   = `CREATE INDEX idx_restaurants_kitchen ON restaurants(kitchen_type);`
)

// schemaDDL lists all CREATE TABLE statements in dependency order.
var schemaDDL = []string{
	createDishes,
	createRestaurants,
	createRestaurantDishes,
}

// indexDDL lists all CREATE INDEX statements.
var indexDDL = []string{
	idxRestaurantDishesDish,
	idxDishesCategory,
	idxRestaurantsKitchen,
}
