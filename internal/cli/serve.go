package cli

import (
	"strconv"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/robalobadob/wordle/apps/go-solver/internal/httpserver"
	"github.com/robalobadob/wordle/apps/go-solver/internal/store"
)

func (a *App) newServeCmd() *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the evaluate, next-guess and bench HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := a.load()
			if err != nil {
				return err
			}
			if port > 0 {
				e.cfg.Server.Port = port
			}
			srv := httpserver.New(store.NewMemoryStore(), e.list, *e.cfg)
			addr := ":" + strconv.Itoa(e.cfg.Server.Port)
			log.Info().Str("addr", addr).Int("words", len(e.list.Words)).Msg("starting go-solver")
			return srv.Start(addr)
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 0, "Listen port (overrides config and PORT)")
	return cmd
}
