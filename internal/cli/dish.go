package cli

import (
	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/carta/internal/catalog"
	"github.com/mesh-intelligence/carta/internal/validation"
)

// dishFlags binds the fields of a dish request to command flags.
type dishFlags struct {
	name        string
	description string
	cost        float64
	category    string
}

func (f *dishFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.name, "name", "", "dish name")
	cmd.Flags().StringVar(&f.description, "description", "", "dish description")
	cmd.Flags().Float64Var(&f.cost, "cost", 0, "dish cost, a positive number")
	cmd.Flags().StringVar(&f.category, "category", "", "starter, main, dessert or beverage")
}

// request builds a DishRequest from base, overriding the flags the user set.
func (f *dishFlags) request(cmd *cobra.Command, base catalog.DishRequest) catalog.DishRequest {
	req := base
	if cmd.Flags().Changed("name") {
		req.Name = f.name
	}
	if cmd.Flags().Changed("description") {
		req.Description = f.description
	}
	if cmd.Flags().Changed("cost") {
		cost := f.cost
		req.Cost = &cost
	}
	if cmd.Flags().Changed("category") {
		req.Category = f.category
	}
	return req
}

func (a *app) newDishCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dish",
		Short: "Manage dishes",
	}
	cmd.AddCommand(a.newDishCreateCmd())
	cmd.AddCommand(a.newDishGetCmd())
	cmd.AddCommand(a.newDishListCmd())
	cmd.AddCommand(a.newDishUpdateCmd())
	cmd.AddCommand(a.newDishDeleteCmd())
	return cmd
}

func (a *app) newDishCreateCmd() *cobra.Command {
	var f dishFlags
	cmd := &cobra.Command{
		Use:     "create",
		Short:   "Create a dish",
		Example: `  carta dish create --name Ajiaco --description "Chicken and potato soup" --cost 18.5 --category main`,
		Args:    exactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			req := f.request(cmd, catalog.DishRequest{})
			if err := validation.Struct(req); err != nil {
				return err
			}

			sess, err := a.open(quietLogMode)
			if err != nil {
				return err
			}
			defer sess.close(&err)

			dish, err := sess.catalog.Dishes.Create(contextOf(cmd), req.Dish())
			if err != nil {
				return managerError(err)
			}
			out := cmd.OutOrStdout()
			return a.emit(out, dish, func() { printDish(out, dish) })
		},
	}
	f.register(cmd)
	return cmd
}

func (a *app) newDishGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <dish-id>",
		Short: "Show a dish and the restaurants offering it",
		Args:  exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			sess, err := a.open(quietLogMode)
			if err != nil {
				return err
			}
			defer sess.close(&err)

			dish, err := sess.catalog.Dishes.FindOne(contextOf(cmd), args[0])
			if err != nil {
				return managerError(err)
			}
			out := cmd.OutOrStdout()
			return a.emit(out, dish, func() { printDish(out, dish) })
		},
	}
}

func (a *app) newDishListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List every dish",
		Args:  exactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			sess, err := a.open(quietLogMode)
			if err != nil {
				return err
			}
			defer sess.close(&err)

			dishes, err := sess.catalog.Dishes.FindAll(contextOf(cmd))
			if err != nil {
				return managerError(err)
			}
			out := cmd.OutOrStdout()
			return a.emit(out, dishes, func() { printDishes(out, dishes) })
		},
	}
}

func (a *app) newDishUpdateCmd() *cobra.Command {
	var f dishFlags
	cmd := &cobra.Command{
		Use:   "update <dish-id>",
		Short: "Update a dish; unset flags keep their current value",
		Args:  exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			sess, err := a.open(quietLogMode)
			if err != nil {
				return err
			}
			defer sess.close(&err)

			ctx := contextOf(cmd)
			current, err := sess.catalog.Dishes.FindOne(ctx, args[0])
			if err != nil {
				return managerError(err)
			}
			cost := current.Cost
			req := f.request(cmd, catalog.DishRequest{
				Name:        current.Name,
				Description: current.Description,
				Cost:        &cost,
				Category:    current.Category,
			})
			if err := validation.Struct(req); err != nil {
				return err
			}

			dish, err := sess.catalog.Dishes.Update(ctx, args[0], req.Dish())
			if err != nil {
				return managerError(err)
			}
			out := cmd.OutOrStdout()
			return a.emit(out, dish, func() { printDish(out, dish) })
		},
	}
	f.register(cmd)
	return cmd
}

func (a *app) newDishDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <dish-id>",
		Short: "Delete a dish and remove it from every restaurant",
		Args:  exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			sess, err := a.open(quietLogMode)
			if err != nil {
				return err
			}
			defer sess.close(&err)

			dish, err := sess.catalog.Dishes.Delete(contextOf(cmd), args[0])
			if err != nil {
				return managerError(err)
			}
			out := cmd.OutOrStdout()
			return a.emit(out, dish, func() { printDeleted(out, "dish", dish.DishID) })
		},
	}
}
