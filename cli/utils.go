package cli

import (
	"encoding/json"
	"fmt"

	"github.com/fatih/color"
	"github.com/hokaccha/go-prettyjson"
	"github.com/spf13/cobra"

	"github.com/kochabx/vetclinic/errors"
)

func logJSON(cmd *cobra.Command, iList ...any) {
	for _, i := range iList {
		m, err := json.Marshal(i)
		if err != nil {
			logError(cmd, err)
			return
		}

		if flags.raw {
			fmt.Fprintln(cmd.OutOrStdout(), string(m))
			continue
		}

		pj, err := prettyjson.Format(m)
		if err != nil {
			logError(cmd, err)
			return
		}

		fmt.Fprintf(cmd.OutOrStdout(), "\n%s\n\n", string(pj))
	}
}

func logUsage(cmd *cobra.Command) {
	fmt.Fprintf(cmd.ErrOrStderr(), color.YellowString("\nusage: %s\n\n"), cmd.UseLine())
}

// logError prints err, plus the status and server detail when the API sent them
func logError(cmd *cobra.Command, err error) {
	boldRed := color.New(color.FgRed, color.Bold)
	boldRed.Fprintf(cmd.ErrOrStderr(), "\nerror: ")

	var e *errors.Error
	if errors.As(err, &e) {
		msg := e.Message
		if e.Code != 0 {
			msg = fmt.Sprintf("%s (status %d)", msg, e.Code)
		}
		if detail := e.GetDetail(); detail != "" {
			msg += ": " + detail
		} else if cause := e.GetCause(); cause != nil {
			msg += ": " + cause.Error()
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "%s\n\n", color.RedString(msg))
		return
	}

	fmt.Fprintf(cmd.ErrOrStderr(), "%s\n\n", color.RedString(err.Error()))
}

func logOK(cmd *cobra.Command) {
	if flags.raw {
		fmt.Fprintln(cmd.OutOrStdout(), "ok")
		return
	}
	fmt.Fprintf(cmd.OutOrStdout(), "\n%s\n\n", color.BlueString("ok"))
}

func logValue(cmd *cobra.Command, label, v string) {
	if flags.raw {
		fmt.Fprintln(cmd.OutOrStdout(), v)
		return
	}
	fmt.Fprintf(cmd.OutOrStdout(), color.BlueString("\n%s: %s\n\n"), label, v)
}
