package cli

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/kochabx/vetclinic/clientes"
	"github.com/kochabx/vetclinic/errors"
)

var (
	errUsage       = errors.New(0, "invalid arguments")
	errNotLoggedIn = errors.ErrNotAuthenticated
)

func newClientesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clientes [list | get | create | update | delete]",
		Short: "Manage clientes",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List clientes",
			RunE: func(cmd *cobra.Command, args []string) error {
				list, err := app.Clientes.List(cmd.Context())
				if err != nil {
					logError(cmd, err)
					return err
				}
				logJSON(cmd, list)
				return nil
			},
		},
		&cobra.Command{
			Use:   "get <id>",
			Short: "Show one cliente",
			RunE: func(cmd *cobra.Command, args []string) error {
				id, err := parseID(cmd, args, 1)
				if err != nil {
					return err
				}
				c, err := app.Clientes.Get(cmd.Context(), id)
				if err != nil {
					logError(cmd, err)
					return err
				}
				logJSON(cmd, c)
				return nil
			},
		},
		&cobra.Command{
			Use:   "create <JSON_cliente>",
			Short: "Create a cliente",
			Long: "Creates a cliente from a JSON document, e.g.\n" +
				`  vetctl clientes create '{"nombre_dueno":"Ana","nombre_mascota":"Firulais","especie":"perro"}'`,
			RunE: func(cmd *cobra.Command, args []string) error {
				if len(args) != 1 {
					logUsage(cmd)
					return errUsage
				}
				in, err := parseCliente(args[0])
				if err != nil {
					logError(cmd, err)
					return err
				}
				c, err := app.Clientes.Create(cmd.Context(), in)
				if err != nil {
					logError(cmd, err)
					return err
				}
				logJSON(cmd, c)
				return nil
			},
		},
		&cobra.Command{
			Use:   "update <id> <JSON_cliente>",
			Short: "Replace a cliente",
			RunE: func(cmd *cobra.Command, args []string) error {
				id, err := parseID(cmd, args, 2)
				if err != nil {
					return err
				}
				in, err := parseCliente(args[1])
				if err != nil {
					logError(cmd, err)
					return err
				}
				c, err := app.Clientes.Update(cmd.Context(), id, in)
				if err != nil {
					logError(cmd, err)
					return err
				}
				logJSON(cmd, c)
				return nil
			},
		},
		&cobra.Command{
			Use:   "delete <id>",
			Short: "Delete a cliente",
			RunE: func(cmd *cobra.Command, args []string) error {
				id, err := parseID(cmd, args, 1)
				if err != nil {
					return err
				}
				if err = app.Clientes.Delete(cmd.Context(), id); err != nil {
					logError(cmd, err)
					return err
				}
				logOK(cmd)
				return nil
			},
		},
	)

	return cmd
}

// parseID validates the argument count and parses args[0] as an id
func parseID(cmd *cobra.Command, args []string, n int) (int, error) {
	if len(args) != n {
		logUsage(cmd)
		return 0, errUsage
	}
	id, err := strconv.Atoi(args[0])
	if err != nil {
		err = fmt.Errorf("invalid id %q", args[0])
		logError(cmd, err)
		return 0, err
	}
	return id, nil
}

func parseCliente(data string) (clientes.Cliente, error) {
	var c clientes.Cliente
	if err := json.Unmarshal([]byte(data), &c); err != nil {
		return c, errors.Validation(errors.ErrInvalid, err)
	}
	return c, nil
}
