package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/mesh-intelligence/carta/pkg/types"
)

// printJSON writes v as indented JSON.
func printJSON(w io.Writer, v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return systemError{fmt.Errorf("marshal JSON: %w", err)}
	}
	fmt.Fprintln(w, string(out))
	return nil
}

func printDishes(w io.Writer, dishes []*types.Dish) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tCATEGORY\tCOST")
	for _, d := range dishes {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%.2f\n", d.DishID, d.Name, d.Category, d.Cost)
	}
	tw.Flush()
}

func printDish(w io.Writer, d *types.Dish) {
	fmt.Fprintf(w, "ID:          %s\n", d.DishID)
	fmt.Fprintf(w, "Name:        %s\n", d.Name)
	fmt.Fprintf(w, "Description: %s\n", d.Description)
	fmt.Fprintf(w, "Category:    %s\n", d.Category)
	fmt.Fprintf(w, "Cost:        %.2f\n", d.Cost)
	if len(d.Restaurants) > 0 {
		names := make([]string, 0, len(d.Restaurants))
		for _, r := range d.Restaurants {
			names = append(names, r.Name)
		}
		fmt.Fprintf(w, "Restaurants: %s\n", strings.Join(names, ", "))
	}
}

func printRestaurants(w io.Writer, restaurants []*types.Restaurant) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tKITCHEN\tDISHES")
	for _, r := range restaurants {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\n", r.RestaurantID, r.Name, r.KitchenType, len(r.Dishes))
	}
	tw.Flush()
}

func printRestaurant(w io.Writer, r *types.Restaurant) {
	fmt.Fprintf(w, "ID:      %s\n", r.RestaurantID)
	fmt.Fprintf(w, "Name:    %s\n", r.Name)
	fmt.Fprintf(w, "Address: %s\n", r.Address)
	fmt.Fprintf(w, "Kitchen: %s\n", r.KitchenType)
	fmt.Fprintf(w, "Website: %s\n", r.WebsiteURL)
	fmt.Fprintf(w, "Dishes:  %d\n", len(r.Dishes))
	for i, d := range r.Dishes {
		fmt.Fprintf(w, "  %d. %s (%s)\n", i+1, d.Name, d.DishID)
	}
}

// emit writes v as JSON in --json mode and calls text otherwise.
func (a *app) emit(w io.Writer, v any, text func()) error {
	if a.flags.jsonMode {
		return printJSON(w, v)
	}
	text()
	return nil
}

func printDeleted(w io.Writer, kind, id string) {
	fmt.Fprintf(w, "Deleted %s %s\n", kind, id)
}
