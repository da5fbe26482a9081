// JSONL loading at attach time and JSONL dumping after writes. SQLite is only
// the query engine: the JSONL files are the source of truth and the database
// is rebuilt from them on every Attach.
package sqlite

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/mesh-intelligence/carta/pkg/types"
)

// loadAllJSONL reads each JSONL file from dataDir and inserts the records
// into the matching SQLite table. Loading is transactional: either every
// file loads or the database stays empty. Malformed lines, records that
// violate a constraint, and membership rows pointing at unknown entities are
// skipped. Unknown fields are ignored.
func loadAllJSONL(db *sql.DB, dataDir string) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("beginning load transaction: %w", err)
	}
	defer tx.Rollback()

	for _, name := range jsonlFiles {
		records, err := readJSONL(filepath.Join(dataDir, name))
		if err != nil {
			return fmt.Errorf("reading %s: %w", name, err)
		}
		if len(records) == 0 {
			continue
		}
		if err := insertRecords(tx, name, records); err != nil {
			return fmt.Errorf("loading %s: %w", name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing load transaction: %w", err)
	}
	return nil
}

// insertRecords decodes records of one data file and inserts them.
func insertRecords(tx *sql.Tx, file string, records []json.RawMessage) error {
	var insertSQL string
	var args func(rec json.RawMessage) ([]any, bool)

	switch file {
	case dishesJSONL:
		insertSQL = "INSERT INTO dishes (dish_id, name, description, cost, category) VALUES (?, ?, ?, ?, ?)"
		args = func(rec json.RawMessage) ([]any, bool) {
			var d dishJSON
			if err := json.Unmarshal(rec, &d); err != nil || d.DishID == "" {
				return nil, false
			}
			if types.CheckDish(d.toDish()) != nil {
				return nil, false
			}
			return []any{d.DishID, d.Name, d.Description, d.Cost, d.Category}, true
		}
	case restaurantsJSONL:
		insertSQL = "INSERT INTO restaurants (restaurant_id, name, address, kitchen_type, website_url) VALUES (?, ?, ?, ?, ?)"
		args = func(rec json.RawMessage) ([]any, bool) {
			var r restaurantJSON
			if err := json.Unmarshal(rec, &r); err != nil || r.RestaurantID == "" {
				return nil, false
			}
			if types.CheckRestaurant(r.toRestaurant()) != nil {
				return nil, false
			}
			return []any{r.RestaurantID, r.Name, r.Address, r.KitchenType, r.WebsiteURL}, true
		}
	case restaurantDishesJSONL:
		insertSQL = `INSERT INTO restaurant_dishes (restaurant_id, position, dish_id)
SELECT ?, ?, ?
WHERE EXISTS (SELECT 1 FROM restaurants WHERE restaurant_id = ?)
  AND EXISTS (SELECT 1 FROM dishes WHERE dish_id = ?)`
		args = func(rec json.RawMessage) ([]any, bool) {
			var rd restaurantDishJSON
			if err := json.Unmarshal(rec, &rd); err != nil {
				return nil, false
			}
			return []any{rd.RestaurantID, rd.Position, rd.DishID, rd.RestaurantID, rd.DishID}, true
		}
	default:
		return fmt.Errorf("unknown data file %s", file)
	}

	stmt, err := tx.Prepare(insertSQL)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for _, rec := range records {
		values, ok := args(rec)
		if !ok {
			continue
		}
		// Constraint violations skip the record, not the file.
		_, _ = stmt.Exec(values...)
	}
	return nil
}

// queryer is satisfied by *sql.DB and *sql.Tx.
type queryer interface {
	Query(query string, args ...any) (*sql.Rows, error)
}

// dumpJSONL renders the current contents of the table behind a data file as
// JSONL records, in a stable order.
func dumpJSONL(db queryer, file string) ([]json.RawMessage, error) {
	switch file {
	case dishesJSONL:
		rows, err := db.Query("SELECT dish_id, name, description, cost, category FROM dishes ORDER BY dish_id")
		if err != nil {
			return nil, fmt.Errorf("querying dishes: %w", err)
		}
		defer rows.Close()
		var recs []dishJSON
		for rows.Next() {
			var d dishJSON
			if err := rows.Scan(&d.DishID, &d.Name, &d.Description, &d.Cost, &d.Category); err != nil {
				return nil, fmt.Errorf("scanning dish: %w", err)
			}
			recs = append(recs, d)
		}
		if err := rows.Err(); err != nil {
			return nil, err
		}
		return marshalRecords(recs)

	case restaurantsJSONL:
		rows, err := db.Query("SELECT restaurant_id, name, address, kitchen_type, website_url FROM restaurants ORDER BY restaurant_id")
		if err != nil {
			return nil, fmt.Errorf("querying restaurants: %w", err)
		}
		defer rows.Close()
		var recs []restaurantJSON
		for rows.Next() {
			var r restaurantJSON
			if err := rows.Scan(&r.RestaurantID, &r.Name, &r.Address, &r.KitchenType, &r.WebsiteURL); err != nil {
				return nil, fmt.Errorf("scanning restaurant: %w", err)
			}
			recs = append(recs, r)
		}
		if err := rows.Err(); err != nil {
			return nil, err
		}
		return marshalRecords(recs)

	case restaurantDishesJSONL:
		rows, err := db.Query("SELECT restaurant_id, position, dish_id FROM restaurant_dishes ORDER BY restaurant_id, position")
		if err != nil {
			return nil, fmt.Errorf("querying restaurant dishes: %w", err)
		}
		defer rows.Close()
		var recs []restaurantDishJSON
		for rows.Next() {
			var rd restaurantDishJSON
			if err := rows.Scan(&rd.RestaurantID, &rd.Position, &rd.DishID); err != nil {
				return nil, fmt.Errorf("scanning restaurant dish: %w", err)
			}
			recs = append(recs, rd)
		}
		if err := rows.Err(); err != nil {
			return nil, err
		}
		return marshalRecords(recs)
	}
	return nil, fmt.Errorf("unknown data file %s", file)
}
