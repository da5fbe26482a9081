package cli

import (
	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/carta/internal/catalog"
	"github.com/mesh-intelligence/carta/internal/validation"
)

type restaurantFlags struct {
	name        string
	address     string
	kitchenType string
	websiteURL  string
}

func (f *restaurantFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.name, "name", "", "restaurant name")
	cmd.Flags().StringVar(&f.address, "address", "", "street address")
	cmd.Flags().StringVar(&f.kitchenType, "kitchen-type", "", "italian, japanese, mexican, colombian, indian or international")
	cmd.Flags().StringVar(&f.websiteURL, "website-url", "", "website URL")
}

func (f *restaurantFlags) request(cmd *cobra.Command, base catalog.RestaurantRequest) catalog.RestaurantRequest {
	req := base
	if cmd.Flags().Changed("name") {
		req.Name = f.name
	}
	if cmd.Flags().Changed("address") {
		req.Address = f.address
	}
	if cmd.Flags().Changed("kitchen-type") {
		req.KitchenType = f.kitchenType
	}
	if cmd.Flags().Changed("website-url") {
		req.WebsiteURL = f.websiteURL
	}
	return req
}

func (a *app) newRestaurantCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "restaurant",
		Short: "Manage restaurants",
	}
	cmd.AddCommand(a.newRestaurantCreateCmd())
	cmd.AddCommand(a.newRestaurantGetCmd())
	cmd.AddCommand(a.newRestaurantListCmd())
	cmd.AddCommand(a.newRestaurantUpdateCmd())
	cmd.AddCommand(a.newRestaurantDeleteCmd())
	return cmd
}

func (a *app) newRestaurantCreateCmd() *cobra.Command {
	var f restaurantFlags
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a restaurant with an empty dish set",
		Args:  exactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			req := f.request(cmd, catalog.RestaurantRequest{})
			if err := validation.Struct(req); err != nil {
				return err
			}

			sess, err := a.open(quietLogMode)
			if err != nil {
				return err
			}
			defer sess.close(&err)

			restaurant, err := sess.catalog.Restaurants.Create(contextOf(cmd), req.Restaurant())
			if err != nil {
				return managerError(err)
			}
			out := cmd.OutOrStdout()
			return a.emit(out, restaurant, func() { printRestaurant(out, restaurant) })
		},
	}
	f.register(cmd)
	return cmd
}

func (a *app) newRestaurantGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <restaurant-id>",
		Short: "Show a restaurant and its dishes",
		Args:  exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			sess, err := a.open(quietLogMode)
			if err != nil {
				return err
			}
			defer sess.close(&err)

			restaurant, err := sess.catalog.Restaurants.FindOne(contextOf(cmd), args[0])
			if err != nil {
				return managerError(err)
			}
			out := cmd.OutOrStdout()
			return a.emit(out, restaurant, func() { printRestaurant(out, restaurant) })
		},
	}
}

func (a *app) newRestaurantListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List every restaurant",
		Args:  exactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			sess, err := a.open(quietLogMode)
			if err != nil {
				return err
			}
			defer sess.close(&err)

			restaurants, err := sess.catalog.Restaurants.FindAll(contextOf(cmd))
			if err != nil {
				return managerError(err)
			}
			out := cmd.OutOrStdout()
			return a.emit(out, restaurants, func() { printRestaurants(out, restaurants) })
		},
	}
}

func (a *app) newRestaurantUpdateCmd() *cobra.Command {
	var f restaurantFlags
	cmd := &cobra.Command{
		Use:   "update <restaurant-id>",
		Short: "Update a restaurant; unset flags keep their current value",
		Args:  exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			sess, err := a.open(quietLogMode)
			if err != nil {
				return err
			}
			defer sess.close(&err)

			ctx := contextOf(cmd)
			current, err := sess.catalog.Restaurants.FindOne(ctx, args[0])
			if err != nil {
				return managerError(err)
			}
			req := f.request(cmd, catalog.RestaurantRequest{
				Name:        current.Name,
				Address:     current.Address,
				KitchenType: current.KitchenType,
				WebsiteURL:  current.WebsiteURL,
			})
			if err := validation.Struct(req); err != nil {
				return err
			}

			restaurant, err := sess.catalog.Restaurants.Update(ctx, args[0], req.Restaurant())
			if err != nil {
				return managerError(err)
			}
			out := cmd.OutOrStdout()
			return a.emit(out, restaurant, func() { printRestaurant(out, restaurant) })
		},
	}
	f.register(cmd)
	return cmd
}

func (a *app) newRestaurantDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <restaurant-id>",
		Short: "Delete a restaurant; its dishes stay in the catalog",
		Args:  exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			sess, err := a.open(quietLogMode)
			if err != nil {
				return err
			}
			defer sess.close(&err)

			restaurant, err := sess.catalog.Restaurants.Delete(contextOf(cmd), args[0])
			if err != nil {
				return managerError(err)
			}
			out := cmd.OutOrStdout()
			return a.emit(out, restaurant, func() { printDeleted(out, "restaurant", restaurant.RestaurantID) })
		},
	}
}
