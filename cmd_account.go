package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"retro-accessories/format"
	"retro-accessories/model"
)

// --- auth ---

func newAuthCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Log in, register, log out",
	}

	login := &cobra.Command{
		Use:   "login <email> <password>",
		Short: "Log in",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := a.svc.Login(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}
			printSession(cmd.OutOrStdout(), st)
			return nil
		},
	}

	register := &cobra.Command{
		Use:   "register <email> <password>",
		Short: "Create an account and log in",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := a.svc.Register(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}
			printSession(cmd.OutOrStdout(), st)
			return nil
		},
	}

	logout := &cobra.Command{
		Use:   "logout",
		Short: "Forget the current session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			printSession(cmd.OutOrStdout(), a.svc.Logout())
			return nil
		},
	}

	status := &cobra.Command{
		Use:   "status",
		Short: "Show who is logged in",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			printSession(cmd.OutOrStdout(), a.svc.Session())
			return nil
		},
	}

	cmd.AddCommand(login, register, logout, status)
	return cmd
}

func printSession(w io.Writer, st model.SessionState) {
	if !st.IsAuthed {
		fmt.Fprintln(w, "Not logged in.")
		return
	}
	fmt.Fprintf(w, "Logged in as %s (%s).\n", st.User.Email, st.User.Role)
}

// --- profile ---

func newProfileCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Show or change your profile",
	}

	show := &cobra.Command{
		Use:   "show",
		Short: "Show your profile",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := a.svc.GetProfile(cmd.Context())
			if err != nil {
				return err
			}
			printProfile(cmd.OutOrStdout(), p)
			return nil
		},
	}

	var patch model.Profile
	update := &cobra.Command{
		Use:   "update",
		Short: "Change profile fields given as flags",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := a.svc.GetProfile(cmd.Context())
			if err != nil {
				return err
			}
			f := cmd.Flags()
			if f.Changed("email") {
				p.Email = patch.Email
			}
			if f.Changed("name") {
				p.Name = patch.Name
			}
			if f.Changed("address") {
				p.Address = patch.Address
			}
			if f.Changed("phone") {
				p.Phone = patch.Phone
			}
			p, err = a.svc.UpdateProfile(cmd.Context(), p)
			if err != nil {
				return err
			}
			printProfile(cmd.OutOrStdout(), p)
			return nil
		},
	}
	update.Flags().StringVar(&patch.Email, "email", "", "email")
	update.Flags().StringVar(&patch.Name, "name", "", "name")
	update.Flags().StringVar(&patch.Address, "address", "", "address")
	update.Flags().StringVar(&patch.Phone, "phone", "", "phone")

	cmd.AddCommand(show, update)
	return cmd
}

func printProfile(w io.Writer, p model.Profile) {
	tw := newTable(w)
	fmt.Fprintf(tw, "Email\t%s\n", p.Email)
	fmt.Fprintf(tw, "Name\t%s\n", p.Name)
	fmt.Fprintf(tw, "Address\t%s\n", p.Address)
	fmt.Fprintf(tw, "Phone\t%s\n", p.Phone)
	_ = tw.Flush()
}

// --- admin ---

func newAdminCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Inventory and order management (admin session required)",
	}

	inventory := &cobra.Command{
		Use:   "inventory",
		Short: "List stock levels",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			items, err := a.svc.AdminListInventory(cmd.Context())
			if err != nil {
				return err
			}
			tw := newTable(cmd.OutOrStdout())
			fmt.Fprintln(tw, "ID\tNAME\tPRICE\tSTOCK")
			for _, it := range items {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%d\n", it.ID, it.Name, format.Money(it.Price), it.Stock)
			}
			return tw.Flush()
		},
	}

	stock := &cobra.Command{
		Use:   "stock <id> <count>",
		Short: "Set the stock level of an accessory",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("stock must be a whole number: %q", args[1])
			}
			it, err := a.svc.AdminUpdateStock(cmd.Context(), args[0], n)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s stock set to %d.\n", it.ID, it.Stock)
			return nil
		},
	}

	orders := &cobra.Command{
		Use:   "orders",
		Short: "List all orders",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			os, err := a.svc.AdminListOrders(cmd.Context())
			if err != nil {
				return err
			}
			return printOrders(cmd.OutOrStdout(), os)
		},
	}

	status := &cobra.Command{
		Use:   "status <order-id> <status>",
		Short: "Change an order's status (PLACED, PACKING, OUT_FOR_DELIVERY, DELIVERED, CANCELLED)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s := model.OrderStatus(strings.ToUpper(args[1]))
			o, err := a.svc.AdminUpdateOrderStatus(cmd.Context(), args[0], s)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s is now %s.\n", o.ID, o.Status)
			return nil
		},
	}

	cmd.AddCommand(inventory, stock, orders, status)
	return cmd
}

// --- health ---

func newHealthCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check that the API server answers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c := a.apiClient()
			body, err := c.Health(cmd.Context())
			if err != nil {
				return fmt.Errorf("%s: %w", c.BaseURL(), err)
			}
			out, _ := json.Marshal(body)
			fmt.Fprintf(cmd.OutOrStdout(), "%s is up: %s\n", c.BaseURL(), out)
			return nil
		},
	}
}
