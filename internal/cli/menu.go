package cli

import (
	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/carta/internal/catalog"
	"github.com/mesh-intelligence/carta/internal/validation"
)

// newMenuCmd groups the commands that manage a restaurant's dish set.
func (a *app) newMenuCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "menu",
		Short: "Manage the dishes a restaurant offers",
	}
	cmd.AddCommand(a.newMenuAddCmd())
	cmd.AddCommand(a.newMenuListCmd())
	cmd.AddCommand(a.newMenuGetCmd())
	cmd.AddCommand(a.newMenuSetCmd())
	cmd.AddCommand(a.newMenuRemoveCmd())
	return cmd
}

func (a *app) newMenuAddCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add <restaurant-id> <dish-id>",
		Short: "Append a dish to a restaurant's set",
		Args:  exactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			sess, err := a.open(quietLogMode)
			if err != nil {
				return err
			}
			defer sess.close(&err)

			restaurant, err := sess.catalog.Menu.AddDishToRestaurant(contextOf(cmd), args[0], args[1])
			if err != nil {
				return managerError(err)
			}
			out := cmd.OutOrStdout()
			return a.emit(out, restaurant, func() { printRestaurant(out, restaurant) })
		},
	}
}

func (a *app) newMenuListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list <restaurant-id>",
		Short: "List the dishes of a restaurant in set order",
		Args:  exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			sess, err := a.open(quietLogMode)
			if err != nil {
				return err
			}
			defer sess.close(&err)

			dishes, err := sess.catalog.Menu.FindDishesFromRestaurant(contextOf(cmd), args[0])
			if err != nil {
				return managerError(err)
			}
			out := cmd.OutOrStdout()
			return a.emit(out, dishes, func() { printDishes(out, dishes) })
		},
	}
}

func (a *app) newMenuGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <restaurant-id> <dish-id>",
		Short: "Show a dish of a restaurant's set",
		Args:  exactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			sess, err := a.open(quietLogMode)
			if err != nil {
				return err
			}
			defer sess.close(&err)

			dish, err := sess.catalog.Menu.FindDishFromRestaurant(contextOf(cmd), args[0], args[1])
			if err != nil {
				return managerError(err)
			}
			out := cmd.OutOrStdout()
			return a.emit(out, dish, func() { printDish(out, dish) })
		},
	}
}

func (a *app) newMenuSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set <restaurant-id> <dish-id>...",
		Short: "Replace a restaurant's set with the given dishes, in order",
		Long:  "Replace a restaurant's set with the given dishes, in order.\nEvery dish must already belong to the set, so set reorders or trims it.",
		Args:  minimumArgs(1),
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			refs := make([]catalog.DishRef, 0, len(args)-1)
			for _, id := range args[1:] {
				refs = append(refs, catalog.DishRef{DishID: id})
			}
			if err := validation.Struct(refs); err != nil {
				return err
			}

			sess, err := a.open(quietLogMode)
			if err != nil {
				return err
			}
			defer sess.close(&err)

			restaurant, err := sess.catalog.Menu.UpdateDishesFromRestaurant(contextOf(cmd), args[0], catalog.DishRefs(refs))
			if err != nil {
				return managerError(err)
			}
			out := cmd.OutOrStdout()
			return a.emit(out, restaurant, func() { printRestaurant(out, restaurant) })
		},
	}
}

func (a *app) newMenuRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <restaurant-id> <dish-id>",
		Short: "Remove a dish from a restaurant's set",
		Args:  exactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			sess, err := a.open(quietLogMode)
			if err != nil {
				return err
			}
			defer sess.close(&err)

			restaurant, err := sess.catalog.Menu.DeleteDishFromRestaurant(contextOf(cmd), args[0], args[1])
			if err != nil {
				return managerError(err)
			}
			out := cmd.OutOrStdout()
			return a.emit(out, restaurant, func() { printRestaurant(out, restaurant) })
		},
	}
}
