package postgres

// schemaDDL creates the catalog tables when missing. Unlike the sqlite
// backend the database is the source of truth, so nothing is dropped.
var schemaDDL = []string{
	`CREATE TABLE IF NOT EXISTS dishes (
    dish_id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    description TEXT NOT NULL,
    cost DOUBLE PRECISION NOT NULL CHECK (cost > 0),
    category TEXT NOT NULL CHECK (category IN ('starter', 'main', 'dessert', 'beverage'))
)`,
	`CREATE TABLE IF NOT EXISTS restaurants (
    restaurant_id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    address TEXT NOT NULL,
    kitchen_type TEXT NOT NULL CHECK (kitchen_type IN ('italian', 'japanese', 'mexican', 'colombian', 'indian', 'international')),
    website_url TEXT NOT NULL
)`,
	`CREATE TABLE IF NOT EXISTS restaurant_dishes (
    restaurant_id TEXT NOT NULL REFERENCES restaurants(restaurant_id) ON DELETE CASCADE,
    position INTEGER NOT NULL,
    dish_id TEXT NOT NULL REFERENCES dishes(dish_id) ON DELETE CASCADE,
    PRIMARY KEY (restaurant_id, position)
)`,
	`CREATE INDEX IF NOT EXISTS idx_restaurant_dishes_dish ON restaurant_dishes(dish_id)`,
}
