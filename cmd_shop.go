package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"retro-accessories/format"
	"retro-accessories/model"
	"retro-accessories/service"
)

// --- catalog ---

func newCatalogCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Browse accessories",
	}

	var query string
	list := &cobra.Command{
		Use:   "list",
		Short: "List accessories, optionally filtered by name or category",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			as, err := a.svc.ListAccessories(cmd.Context(), query)
			if err != nil {
				return err
			}
			tw := newTable(cmd.OutOrStdout())
			fmt.Fprintln(tw, "ID\tNAME\tCATEGORY\tPRICE\tRATING")
			for _, x := range as {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%.1f\n", x.ID, x.Name, x.Category, format.Money(x.Price), x.Rating)
			}
			return tw.Flush()
		},
	}
	list.Flags().StringVarP(&query, "query", "q", "", "search text")

	show := &cobra.Command{
		Use:   "show <id>",
		Short: "Show one accessory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			x, err := a.svc.GetAccessory(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s (%s)\n", x.Name, x.ID)
			fmt.Fprintf(out, "%s  %s  rated %.1f\n", x.Category, format.Money(x.Price), x.Rating)
			fmt.Fprintln(out, x.Description)
			return nil
		},
	}

	cmd.AddCommand(list, show)
	return cmd
}

// --- cart ---

func newCartCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cart",
		Short: "Inspect and change the cart",
	}

	show := &cobra.Command{
		Use:   "show",
		Short: "Show the cart and its totals",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return printCart(cmd.OutOrStdout(), a.svc.Cart())
		},
	}

	add := &cobra.Command{
		Use:   "add <id> [qty]",
		Short: "Add an accessory to the cart",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			qty := 1
			if len(args) == 2 {
				qty = service.ParseQuantity(args[1])
			}
			st, err := a.svc.AddToCart(cmd.Context(), args[0], qty)
			if err != nil {
				return err
			}
			return printCart(cmd.OutOrStdout(), st)
		},
	}

	update := &cobra.Command{
		Use:   "update <id> <qty>",
		Short: "Set the quantity of a cart line",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return printCart(cmd.OutOrStdout(), a.svc.UpdateCartQuantity(args[0], service.ParseQuantity(args[1])))
		},
	}

	remove := &cobra.Command{
		Use:     "remove <id>",
		Aliases: []string{"rm"},
		Short:   "Remove a line from the cart",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return printCart(cmd.OutOrStdout(), a.svc.RemoveFromCart(args[0]))
		},
	}

	clearCmd := &cobra.Command{
		Use:   "clear",
		Short: "Empty the cart",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return printCart(cmd.OutOrStdout(), a.svc.ClearCart())
		},
	}

	cmd.AddCommand(show, add, update, remove, clearCmd)
	return cmd
}

func printCart(w io.Writer, st model.CartState) error {
	if len(st.Items) == 0 {
		fmt.Fprintln(w, "Cart is empty.")
		return nil
	}
	tw := newTable(w)
	fmt.Fprintln(tw, "ID\tNAME\tQTY\tPRICE\tLINE")
	for _, it := range st.Items {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%s\t%s\n", it.ID, it.Name, it.Qty, format.Money(it.Price), format.Money(it.Price*float64(it.Qty)))
	}
	fmt.Fprintf(tw, "\t\t%d\tSubtotal\t%s\n", st.Count, format.Money(st.Subtotal))
	fmt.Fprintf(tw, "\t\t\tShipping\t%s\n", format.Money(st.Shipping))
	fmt.Fprintf(tw, "\t\t\tTotal\t%s\n", format.Money(st.Total))
	return tw.Flush()
}

// --- checkout & orders ---

func newCheckoutCmd(a *app) *cobra.Command {
	var cust model.Customer
	cmd := &cobra.Command{
		Use:   "checkout",
		Short: "Place an order for everything in the cart",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ord, err := a.svc.Checkout(cmd.Context(), cust)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Order %s %s, total %s, arriving in about %d minutes.\n",
				ord.ID, ord.Status, format.Money(ord.Total), ord.EtaMinutes)
			return nil
		},
	}
	cmd.Flags().StringVar(&cust.Name, "name", "Demo Rider", "recipient name")
	cmd.Flags().StringVar(&cust.Address, "address", "1987 Neon Ave", "delivery address")
	cmd.Flags().StringVar(&cust.Notes, "notes", "", "delivery notes")
	return cmd
}

func newOrdersCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "orders",
		Short: "List your orders",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			os, err := a.svc.ListOrders(cmd.Context())
			if err != nil {
				return err
			}
			return printOrders(cmd.OutOrStdout(), os)
		},
	}
}

func printOrders(w io.Writer, os []model.Order) error {
	tw := newTable(w)
	fmt.Fprintln(tw, "ID\tSTATUS\tETA\tITEMS\tTOTAL\tPLACED")
	for _, o := range os {
		names := make([]string, 0, len(o.Items))
		for _, it := range o.Items {
			names = append(names, fmt.Sprintf("%dx %s", it.Qty, it.Name))
		}
		fmt.Fprintf(tw, "%s\t%s\t%dm\t%s\t%s\t%s\n",
			o.ID, o.Status, o.EtaMinutes, strings.Join(names, ", "), format.Money(o.Total),
			o.CreatedAt.Local().Format("2006-01-02 15:04"))
	}
	return tw.Flush()
}

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
}
